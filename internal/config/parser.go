// Package config provides configuration file parsing.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/restoredb/restoredb/internal/models"
	"github.com/spf13/viper"
)

// Parser handles configuration file parsing.
type Parser struct {
	v *viper.Viper
}

// NewParser creates a new configuration parser.
func NewParser() *Parser {
	v := viper.New()
	v.SetConfigType("yaml")
	return &Parser{v: v}
}

// Default returns the configuration used when no config file is given.
func Default() *models.RestoreConfig {
	return &models.RestoreConfig{
		Connector: models.ConnectorPostgres,
		Tools:     map[string]models.ToolConfig{},
		Overrides: map[string][]string{},
		SSH: models.SSHConfig{
			Port:    22,
			Timeout: 30 * time.Second,
		},
	}
}

// LoadFile loads configuration from a file path.
func (p *Parser) LoadFile(path string) (*models.RestoreConfig, error) {
	p.v.SetConfigFile(path)

	if err := p.v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	return p.parse()
}

// LoadReader loads configuration from a reader (useful for testing).
func (p *Parser) LoadReader(content string) (*models.RestoreConfig, error) {
	if err := p.v.ReadConfig(strings.NewReader(content)); err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	return p.parse()
}

func (p *Parser) parse() (*models.RestoreConfig, error) {
	cfg := Default()

	if p.v.IsSet("connector") {
		cfg.Connector = p.v.GetString("connector")
	}

	cfg.Database = models.DatabaseConfig{
		Name:     p.v.GetString("database.name"),
		Host:     p.v.GetString("database.host"),
		Port:     p.v.GetInt("database.port"),
		Username: p.v.GetString("database.username"),
		Password: p.expandEnv(p.v.GetString("database.password")),
	}

	for name := range p.v.GetStringMap("tools") {
		tc := models.ToolConfig{
			Path:    p.expandEnv(p.v.GetString("tools." + name + ".path")),
			Options: strings.Fields(p.v.GetString("tools." + name + ".options")),
		}
		cfg.Tools[name] = tc
	}

	if p.v.IsSet("ssh") {
		if port := p.v.GetInt("ssh.port"); port != 0 {
			cfg.SSH.Port = port
		}
		cfg.SSH.KeyPath = p.expandEnv(p.v.GetString("ssh.key_path"))
		cfg.SSH.KnownHostsPath = p.expandEnv(p.v.GetString("ssh.known_hosts"))
		cfg.SSH.KnownHostsInsecure = p.v.GetBool("ssh.known_hosts_insecure")
		if timeout := p.v.GetDuration("ssh.timeout"); timeout != 0 {
			cfg.SSH.Timeout = timeout
		}
	}

	return cfg, nil
}

// expandEnv expands environment variables in the format ${VAR} or $VAR.
func (p *Parser) expandEnv(s string) string {
	return os.ExpandEnv(s)
}

// ParseOverride parses one -o pass-through value of the form
// "tool=extra flags", splitting the flags into fields.
func ParseOverride(s string) (string, []string, error) {
	tool, rest, ok := strings.Cut(s, "=")
	if !ok || tool == "" {
		return "", nil, fmt.Errorf("tool option must be tool=flags, got %q", s)
	}
	return tool, strings.Fields(rest), nil
}

// Validate performs validation on the merged configuration.
func Validate(cfg *models.RestoreConfig) error {
	if cfg == nil {
		return fmt.Errorf("configuration is nil")
	}

	switch cfg.Connector {
	case models.ConnectorPostgres, models.ConnectorMySQL:
	default:
		return fmt.Errorf("connector must be one of: postgres, mysql")
	}

	if !cfg.ToStdout && cfg.Database.Name == "" {
		return fmt.Errorf("database name is required")
	}

	return nil
}
