// Package remote streams dump files from a remote host over SSH.
package remote

import (
	"context"
	"fmt"
	"io"
	"net"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/restoredb/restoredb/internal/models"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/ssh"
	"golang.org/x/crypto/ssh/knownhosts"
)

// Service defines the interface for remote dump access.
type Service interface {
	Open(ctx context.Context, host, path string, cfg models.SSHConfig) (io.ReadCloser, error)
}

// Session wraps ssh.Session for mocking.
type Session interface {
	StdoutPipe() (io.Reader, error)
	Start(cmd string) error
	Wait() error
	Close() error
}

// Client wraps ssh.Client for mocking.
type Client interface {
	NewSession() (Session, error)
	Close() error
}

// ClientFactory creates SSH clients.
type ClientFactory interface {
	NewClient(network, addr string, config *ssh.ClientConfig) (Client, error)
}

// DefaultClientFactory is the default SSH client factory.
type DefaultClientFactory struct{}

// NewClient creates a new SSH client.
func (f *DefaultClientFactory) NewClient(network, addr string, config *ssh.ClientConfig) (Client, error) {
	client, err := ssh.Dial(network, addr, config)
	if err != nil {
		return nil, err
	}
	return &defaultClient{client: client}, nil
}

type defaultClient struct {
	client *ssh.Client
}

func (c *defaultClient) NewSession() (Session, error) {
	session, err := c.client.NewSession()
	if err != nil {
		return nil, err
	}
	return &defaultSession{session: session}, nil
}

func (c *defaultClient) Close() error {
	return c.client.Close()
}

type defaultSession struct {
	session *ssh.Session
}

func (s *defaultSession) StdoutPipe() (io.Reader, error) { return s.session.StdoutPipe() }
func (s *defaultSession) Start(cmd string) error         { return s.session.Start(cmd) }
func (s *defaultSession) Wait() error                    { return s.session.Wait() }
func (s *defaultSession) Close() error                   { return s.session.Close() }

// Impl implements the remote Service interface.
type Impl struct {
	clientFactory ClientFactory
	logger        zerolog.Logger
}

// New creates a new remote service.
func New(logger zerolog.Logger) *Impl {
	return &Impl{
		clientFactory: &DefaultClientFactory{},
		logger:        logger,
	}
}

// NewWithClientFactory creates a new remote service with a custom client factory (for testing).
func NewWithClientFactory(logger zerolog.Logger, factory ClientFactory) *Impl {
	return &Impl{
		clientFactory: factory,
		logger:        logger,
	}
}

func (s *Impl) buildConfig(cfg models.SSHConfig, user string) (*ssh.ClientConfig, error) {
	key := cfg.PrivateKey
	if len(key) == 0 {
		if cfg.KeyPath == "" {
			return nil, fmt.Errorf("no private key provided")
		}
		var err error
		key, err = os.ReadFile(cfg.KeyPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read private key from %s: %w", cfg.KeyPath, err)
		}
	}

	signer, err := ssh.ParsePrivateKey(key)
	if err != nil {
		return nil, fmt.Errorf("failed to parse private key: %w", err)
	}

	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}

	hostKeys, err := hostKeyCallback(cfg)
	if err != nil {
		return nil, err
	}

	return &ssh.ClientConfig{
		User: user,
		Auth: []ssh.AuthMethod{
			ssh.PublicKeys(signer),
		},
		HostKeyCallback: hostKeys,
		Timeout:         timeout,
	}, nil
}

// hostKeyCallback verifies host keys against known_hosts unless the config
// explicitly opts out.
func hostKeyCallback(cfg models.SSHConfig) (ssh.HostKeyCallback, error) {
	if cfg.KnownHostsInsecure {
		return ssh.InsecureIgnoreHostKey(), nil //nolint:gosec // explicit opt-out
	}

	path := cfg.KnownHostsPath
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolving known_hosts location: %w", err)
		}
		path = filepath.Join(home, ".ssh", "known_hosts")
	}

	callback, err := knownhosts.New(path)
	if err != nil {
		return nil, fmt.Errorf("loading known hosts from %s: %w", path, err)
	}
	return callback, nil
}

// Open connects to user@host and streams the remote file's bytes.
func (s *Impl) Open(ctx context.Context, host, path string, cfg models.SSHConfig) (io.ReadCloser, error) {
	user, hostname, ok := strings.Cut(host, "@")
	if !ok {
		return nil, fmt.Errorf("remote host must be user@host, got %q", host)
	}

	sshConfig, err := s.buildConfig(cfg, user)
	if err != nil {
		return nil, err
	}

	port := cfg.Port
	if port == 0 {
		port = 22
	}
	addr := net.JoinHostPort(hostname, fmt.Sprintf("%d", port))

	s.logger.Info().
		Str("host", host).
		Str("path", path).
		Msg("opening remote dump")

	// Dial in a goroutine so the context can cut the wait short.
	clientChan := make(chan struct {
		client Client
		err    error
	}, 1)

	go func() {
		client, err := s.clientFactory.NewClient("tcp", addr, sshConfig)
		clientChan <- struct {
			client Client
			err    error
		}{client, err}
	}()

	var client Client
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-clientChan:
		if res.err != nil {
			return nil, fmt.Errorf("failed to connect: %w", res.err)
		}
		client = res.client
	}

	session, err := client.NewSession()
	if err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	stdout, err := session.StdoutPipe()
	if err != nil {
		_ = session.Close()
		_ = client.Close()
		return nil, fmt.Errorf("failed to open stdout pipe: %w", err)
	}

	cmd := "cat -- " + shellQuote(path)
	s.logger.Debug().Str("command", cmd).Msg("starting remote read")
	if err := session.Start(cmd); err != nil {
		_ = session.Close()
		_ = client.Close()
		return nil, fmt.Errorf("failed to start remote read: %w", err)
	}

	return &remoteReader{r: stdout, session: session, client: client}, nil
}

// remoteReader surfaces the remote command's exit status at end of stream, so
// a missing remote file does not pass for an empty dump.
type remoteReader struct {
	r       io.Reader
	session Session
	client  Client
	waited  bool
}

func (r *remoteReader) Read(p []byte) (int, error) {
	n, err := r.r.Read(p)
	if err == io.EOF && !r.waited {
		r.waited = true
		if werr := r.session.Wait(); werr != nil {
			return n, fmt.Errorf("remote read failed: %w", werr)
		}
	}
	return n, err
}

func (r *remoteReader) Close() error {
	_ = r.session.Close()
	return r.client.Close()
}

func shellQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}
