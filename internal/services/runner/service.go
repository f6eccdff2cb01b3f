// Package runner orchestrates the restore workflow: one sequential
// RestoreJob per dump source, all against the same target database.
package runner

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/restoredb/restoredb/internal/models"
	"github.com/restoredb/restoredb/internal/services/remote"
	"github.com/restoredb/restoredb/internal/services/restore"
	"github.com/restoredb/restoredb/internal/sniff"
	"github.com/rs/zerolog"
)

// Service defines the interface for the restore runner.
type Service interface {
	Run(ctx context.Context, cfg models.RestoreConfig, sources []models.DumpSource) (*models.RunResult, error)
}

// Impl implements the runner Service interface.
type Impl struct {
	restoreSvc restore.Service
	remoteSvc  remote.Service
	logger     zerolog.Logger
	stdin      io.Reader
	stdout     io.Writer
}

// New creates a new runner service.
func New(logger zerolog.Logger) *Impl {
	return &Impl{
		restoreSvc: restore.New(logger),
		remoteSvc:  remote.New(logger),
		logger:     logger,
		stdin:      os.Stdin,
		stdout:     os.Stdout,
	}
}

// NewWithServices creates a new runner service with custom services and
// streams (for testing).
func NewWithServices(
	logger zerolog.Logger,
	restoreSvc restore.Service,
	remoteSvc remote.Service,
	stdin io.Reader,
	stdout io.Writer,
) *Impl {
	return &Impl{
		restoreSvc: restoreSvc,
		remoteSvc:  remoteSvc,
		logger:     logger,
		stdin:      stdin,
		stdout:     stdout,
	}
}

// Run processes the sources strictly in the caller-supplied order. One job's
// failure never stops the remaining jobs; failures are logged with the
// offending source and counted in the result.
func (s *Impl) Run(ctx context.Context, cfg models.RestoreConfig, sources []models.DumpSource) (*models.RunResult, error) {
	if len(sources) == 0 {
		return nil, models.ErrMissingInput
	}

	result := &models.RunResult{}
	for _, src := range sources {
		jr := s.runJob(ctx, cfg, src)
		if jr.Error != nil {
			result.Failed++
			s.logger.Error().
				Err(jr.Error).
				Str("source", src.Name()).
				Msg("restore job failed")
		}
		result.Jobs = append(result.Jobs, jr)

		if ctx.Err() != nil {
			return result, ctx.Err()
		}
	}
	return result, nil
}

func (s *Impl) runJob(ctx context.Context, cfg models.RestoreConfig, src models.DumpSource) (jr models.JobResult) {
	jr.Source = src
	start := time.Now()
	defer func() { jr.Duration = time.Since(start) }()

	in, err := s.open(ctx, cfg, src)
	if err != nil {
		jr.Error = fmt.Errorf("opening %s: %w", src.Name(), err)
		return jr
	}
	defer func() { _ = in.Close() }()

	res, err := sniff.Resolve(in, src.SniffName())
	if err != nil {
		jr.Error = err
		return jr
	}
	defer func() { _ = res.Reader.Close() }()
	jr.Layers = res.Layers
	jr.Format = res.Format

	s.logger.Info().
		Str("source", src.Name()).
		Strs("layers", layerNames(res.Layers)).
		Str("format", string(res.Format)).
		Msg("dump format resolved")

	if cfg.ToStdout {
		if _, err := io.Copy(s.stdout, res.Reader); err != nil {
			jr.Error = fmt.Errorf("writing decoded dump: %w", err)
		}
		return jr
	}

	job, err := s.restoreSvc.Plan(cfg, src, res.Layers, res.Format)
	if err != nil {
		jr.Error = err
		return jr
	}

	if err := s.restoreSvc.Run(ctx, job, res.Reader); err != nil {
		jr.Error = err
	}
	return jr
}

func (s *Impl) open(ctx context.Context, cfg models.RestoreConfig, src models.DumpSource) (io.ReadCloser, error) {
	switch src.Kind {
	case models.SourceStdin:
		return io.NopCloser(s.stdin), nil
	case models.SourceRemote:
		return s.remoteSvc.Open(ctx, src.Host, src.Path, cfg.SSH)
	default:
		return os.Open(src.Path)
	}
}

func layerNames(layers []models.CompressionKind) []string {
	names := make([]string, len(layers))
	for i, l := range layers {
		names[i] = string(l)
	}
	return names
}
