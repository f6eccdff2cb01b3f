package models

import "time"

// Connector names.
const (
	ConnectorPostgres = "postgres"
	ConnectorMySQL    = "mysql"
)

// RestoreConfig holds the complete configuration for a restore run, merged
// from the optional config file and the command line.
type RestoreConfig struct {
	Connector string
	Database  DatabaseConfig
	Tools     map[string]ToolConfig // keyed by tool name: psql, pg_restore, mysql
	Overrides map[string][]string   // -o pass-through, appended after Tools options
	Postgres  PostgresFlags
	SSH       SSHConfig
	ToStdout  bool // write decoded dump to stdout instead of restoring
}

// DatabaseConfig holds target database connection parameters. Everything
// beyond the database name is passed through to the restore tool untouched.
type DatabaseConfig struct {
	Name     string
	Host     string
	Port     int
	Username string
	Password string
}

// ToolConfig overrides the binary path and default extra options for one
// underlying restore tool.
type ToolConfig struct {
	Path    string
	Options []string
}

// PostgresFlags are the pg_restore pass-through switches.
type PostgresFlags struct {
	NoOwner      bool
	NoPrivileges bool
	Clean        bool
	Create       bool
}

// SSHConfig configures the remote dump source.
type SSHConfig struct {
	Port       int
	KeyPath    string
	PrivateKey []byte // loaded from KeyPath, or injected in tests
	Timeout    time.Duration

	// KnownHostsPath overrides the known_hosts file consulted for host key
	// verification; empty means ~/.ssh/known_hosts.
	KnownHostsPath string
	// KnownHostsInsecure skips host key verification entirely.
	KnownHostsInsecure bool
}
