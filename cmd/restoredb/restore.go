package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/restoredb/restoredb/internal/config"
	"github.com/restoredb/restoredb/internal/models"
	"github.com/restoredb/restoredb/internal/services/runner"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	dbName       string
	connector    string
	toolOptions  []string
	dbHost       string
	dbPort       int
	dbUser       string
	noOwner      bool
	noPrivileges bool
	clean        bool
	create       bool
	toStdout     bool
	sshTarget    string
)

var restoreCmd = &cobra.Command{
	Use:   "restore [file ...]",
	Short: "Restore one or more dumps into the target database",
	Long: `Restore one or more dump files into the target database, in the order
given. With no file arguments, one dump is read from standard input.

Each dump's compression layers are detected from its filename suffix chain
(or magic bytes for standard input), stripped on the fly, and the decoded
content is piped into the restore tool selected by the dump format. A
failing dump does not stop the remaining ones; the exit code reflects
whether any job failed.`,
	RunE: runRestore,
}

func init() {
	restoreCmd.Flags().StringVarP(&dbName, "dbname", "d", "", "target database name")
	restoreCmd.Flags().StringVarP(&connector, "connector", "c", "", "database connector: postgres or mysql")
	restoreCmd.Flags().StringArrayVarP(&toolOptions, "tool-option", "o", nil, "extra options per tool, e.g. -o pg_restore=--no-owner (repeatable)")
	restoreCmd.Flags().StringVar(&dbHost, "host", "", "database server host or socket directory")
	restoreCmd.Flags().IntVarP(&dbPort, "port", "p", 0, "database server port")
	restoreCmd.Flags().StringVarP(&dbUser, "username", "U", "", "connect as this database user")
	restoreCmd.Flags().BoolVarP(&noOwner, "no-owner", "O", false, "skip restoration of object ownership")
	restoreCmd.Flags().BoolVarP(&noPrivileges, "no-privileges", "x", false, "skip restoration of access privileges")
	restoreCmd.Flags().BoolVar(&clean, "clean", false, "drop database objects before recreating them")
	restoreCmd.Flags().BoolVar(&create, "create", false, "create the database before restoring into it")
	restoreCmd.Flags().BoolVar(&toStdout, "stdout", false, "write the decoded dump to stdout instead of restoring")
	restoreCmd.Flags().StringVar(&sshTarget, "ssh", "", "restore a remote dump, as user@host:path")
}

func runRestore(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		log.Error().Err(err).Str("file", configFile).Msg("failed to load config")
		return err
	}

	mergeFlags(cfg)
	for _, o := range toolOptions {
		tool, opts, err := config.ParseOverride(o)
		if err != nil {
			log.Error().Err(err).Msg("invalid tool option")
			return err
		}
		cfg.Overrides[tool] = append(cfg.Overrides[tool], opts...)
	}

	if err := config.Validate(cfg); err != nil {
		log.Error().Err(err).Msg("invalid configuration")
		return err
	}

	sources, err := buildSources(args)
	if err != nil {
		log.Error().Err(err).Msg("no usable input")
		return err
	}

	// Set up context with signal handling
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		sig := <-sigChan
		log.Warn().Str("signal", sig.String()).Msg("received signal, shutting down")
		cancel()
	}()

	runnerSvc := runner.New(log.Logger)
	result, err := runnerSvc.Run(ctx, *cfg, sources)
	if err != nil {
		log.Error().Err(err).Msg("restore run aborted")
		return err
	}

	if result.Failed > 0 {
		err := fmt.Errorf("%d of %d restore jobs failed", result.Failed, len(result.Jobs))
		log.Error().Err(err).Msg("restore run finished with failures")
		return err
	}

	log.Info().Int("jobs", len(result.Jobs)).Msg("restore run completed successfully")
	return nil
}

func loadConfig() (*models.RestoreConfig, error) {
	if configFile == "" {
		return config.Default(), nil
	}
	return config.NewParser().LoadFile(configFile)
}

func mergeFlags(cfg *models.RestoreConfig) {
	if dbName != "" {
		cfg.Database.Name = dbName
	}
	if connector != "" {
		cfg.Connector = connector
	}
	if dbHost != "" {
		cfg.Database.Host = dbHost
	}
	if dbPort != 0 {
		cfg.Database.Port = dbPort
	}
	if dbUser != "" {
		cfg.Database.Username = dbUser
	}
	cfg.Postgres.NoOwner = cfg.Postgres.NoOwner || noOwner
	cfg.Postgres.NoPrivileges = cfg.Postgres.NoPrivileges || noPrivileges
	cfg.Postgres.Clean = cfg.Postgres.Clean || clean
	cfg.Postgres.Create = cfg.Postgres.Create || create
	cfg.ToStdout = toStdout
}

func buildSources(args []string) ([]models.DumpSource, error) {
	var sources []models.DumpSource
	for _, path := range args {
		sources = append(sources, models.DumpSource{
			Kind:     models.SourceFile,
			Path:     path,
			Position: len(sources),
		})
	}

	if sshTarget != "" {
		host, path, err := parseSSHTarget(sshTarget)
		if err != nil {
			return nil, err
		}
		sources = append(sources, models.DumpSource{
			Kind:     models.SourceRemote,
			Host:     host,
			Path:     path,
			Position: len(sources),
		})
	}

	if len(sources) == 0 {
		if stdinIsTerminal() {
			return nil, models.ErrMissingInput
		}
		sources = append(sources, models.DumpSource{Kind: models.SourceStdin})
	}
	return sources, nil
}

func parseSSHTarget(s string) (host, path string, err error) {
	host, path, ok := strings.Cut(s, ":")
	if !ok || !strings.Contains(host, "@") || path == "" {
		return "", "", fmt.Errorf("ssh target must be user@host:path, got %q", s)
	}
	return host, path, nil
}

func stdinIsTerminal() bool {
	fi, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return fi.Mode()&os.ModeCharDevice != 0
}
