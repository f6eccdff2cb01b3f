// Package restore invokes the database restore tools with a dump stream on
// standard input.
package restore

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"github.com/restoredb/restoredb/internal/models"
	"github.com/rs/zerolog"
)

// Tool names.
const (
	ToolPsql      = "psql"
	ToolPgRestore = "pg_restore"
	ToolMySQL     = "mysql"
)

// Service defines the interface for restore tool invocation.
type Service interface {
	Plan(cfg models.RestoreConfig, source models.DumpSource, layers []models.CompressionKind, format models.DumpFormat) (*models.RestoreJob, error)
	Run(ctx context.Context, job *models.RestoreJob, input io.Reader) error
}

// CommandExecutor allows mocking exec.Command in tests.
type CommandExecutor interface {
	Run(ctx context.Context, stdin io.Reader, env []string, name string, args ...string) error
}

// DefaultExecutor is the default command executor using os/exec.
type DefaultExecutor struct{}

// Run executes the tool with the dump stream on stdin. Tool stdout is
// discarded, stderr is captured for the error report.
func (e *DefaultExecutor) Run(ctx context.Context, stdin io.Reader, env []string, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdin = stdin
	cmd.Stdout = io.Discard
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	cmd.Env = append(os.Environ(), env...)

	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return fmt.Errorf("%s: %w: %s", name, err, msg)
		}
		return fmt.Errorf("%s: %w", name, err)
	}
	return nil
}

// Impl implements the restore Service interface.
type Impl struct {
	executor CommandExecutor
	logger   zerolog.Logger
}

// New creates a new restore service.
func New(logger zerolog.Logger) *Impl {
	return &Impl{
		executor: &DefaultExecutor{},
		logger:   logger,
	}
}

// NewWithExecutor creates a new restore service with a custom executor (for testing).
func NewWithExecutor(logger zerolog.Logger, executor CommandExecutor) *Impl {
	return &Impl{
		executor: executor,
		logger:   logger,
	}
}

// Plan resolves the restore tool for the sniffed dump format and builds its
// full invocation: connection arguments, then config-file tool options, then
// command-line overrides, in that order.
func (s *Impl) Plan(cfg models.RestoreConfig, source models.DumpSource, layers []models.CompressionKind, format models.DumpFormat) (*models.RestoreJob, error) {
	tool, err := toolFor(cfg.Connector, format)
	if err != nil {
		return nil, err
	}

	args := baseArgs(tool, cfg)
	tc := cfg.Tools[tool]
	args = append(args, tc.Options...)
	args = append(args, cfg.Overrides[tool]...)

	path := tool
	if tc.Path != "" {
		path = tc.Path
	}

	var env []string
	if cfg.Database.Password != "" {
		switch tool {
		case ToolMySQL:
			env = append(env, "MYSQL_PWD="+cfg.Database.Password)
		default:
			env = append(env, "PGPASSWORD="+cfg.Database.Password)
		}
	}

	return &models.RestoreJob{
		Source: source,
		Layers: layers,
		Format: format,
		Tool:   tool,
		Path:   path,
		Args:   args,
		Env:    env,
	}, nil
}

// Run feeds the decompressed dump stream into the job's restore tool.
func (s *Impl) Run(ctx context.Context, job *models.RestoreJob, input io.Reader) error {
	s.logger.Info().
		Str("source", job.Source.Name()).
		Str("tool", job.Tool).
		Str("format", string(job.Format)).
		Msg("starting restore")

	start := time.Now()
	if err := s.executor.Run(ctx, input, job.Env, job.Path, job.Args...); err != nil {
		return fmt.Errorf("restore failed: %w", err)
	}

	s.logger.Info().
		Str("source", job.Source.Name()).
		Str("tool", job.Tool).
		Dur("duration", time.Since(start)).
		Msg("restore completed")

	return nil
}

func toolFor(connector string, format models.DumpFormat) (string, error) {
	switch connector {
	case models.ConnectorPostgres, "":
		switch format {
		case models.FormatPlainSQL:
			return ToolPsql, nil
		case models.FormatPgCustom, models.FormatPgTar:
			return ToolPgRestore, nil
		}
	case models.ConnectorMySQL:
		if format == models.FormatPlainSQL {
			return ToolMySQL, nil
		}
		return "", fmt.Errorf("%w: %s dumps cannot be restored through the mysql connector", models.ErrUnsupportedDumpFormat, format)
	default:
		return "", fmt.Errorf("unknown connector %q", connector)
	}
	return "", fmt.Errorf("%w: %s", models.ErrUnsupportedDumpFormat, format)
}

func baseArgs(tool string, cfg models.RestoreConfig) []string {
	db := cfg.Database
	var args []string

	switch tool {
	case ToolPsql, ToolPgRestore:
		args = append(args, "--dbname", db.Name)
		if db.Host != "" {
			args = append(args, "--host", db.Host)
		}
		if db.Port != 0 {
			args = append(args, "--port", strconv.Itoa(db.Port))
		}
		if db.Username != "" {
			args = append(args, "--username", db.Username)
		}
		if tool == ToolPgRestore {
			if cfg.Postgres.NoOwner {
				args = append(args, "--no-owner")
			}
			if cfg.Postgres.NoPrivileges {
				args = append(args, "--no-privileges")
			}
			if cfg.Postgres.Clean {
				args = append(args, "--clean")
			}
			if cfg.Postgres.Create {
				args = append(args, "--create")
			}
		}
	case ToolMySQL:
		args = append(args, "--database", db.Name)
		if db.Host != "" {
			args = append(args, "--host", db.Host)
		}
		if db.Port != 0 {
			args = append(args, "--port", strconv.Itoa(db.Port))
		}
		if db.Username != "" {
			args = append(args, "--user", db.Username)
		}
	}

	return args
}
