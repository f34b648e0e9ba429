package application

import (
	"context"
	"fmt"

	"github.com/gofrs/flock"
	"github.com/google/uuid"
	"github.com/spf13/afero"
	"go.uber.org/zap"

	"github.com/framepack/framepack/internal/config"
	"github.com/framepack/framepack/internal/distributor"
	"github.com/framepack/framepack/internal/inventory"
	"github.com/framepack/framepack/internal/materializer"
)

// App encapsulates the application dependencies and the run pipeline.
type App struct {
	cfg          config.Config
	logger       *zap.Logger
	scanner      *inventory.Scanner
	distributor  distributor.Distributor
	materializer *materializer.Materializer
	lock         *flock.Flock
}

// BinSummary describes one materialised (or planned) bin for reporting.
type BinSummary struct {
	Index int
	Files int
	Bytes int64
}

// RunReport summarises a completed run. Seed and RunID together let a run be
// audited and replayed.
type RunReport struct {
	RunID       string
	Seed        uint64
	Source      string
	Destination string
	DryRun      bool
	Bins        []BinSummary
	TotalFiles  int
	TotalBytes  int64
}

// New initializes the application against the host filesystem, with an
// advisory lock beside the destination so two runs cannot share it.
func New(cfg config.Config, logger *zap.Logger) *App {
	app := NewWithFs(cfg, logger, afero.NewOsFs())
	app.lock = flock.New(cfg.Destination + ".lock")
	return app
}

// NewWithFs initializes the application against an arbitrary filesystem and
// without a destination lock. Intended for tests.
func NewWithFs(cfg config.Config, logger *zap.Logger, fs afero.Fs) *App {
	return &App{
		cfg:          cfg,
		logger:       logger,
		scanner:      inventory.NewScanner(fs),
		distributor:  distributor.New(),
		materializer: materializer.New(fs, logger, materializer.WithCopyRate(cfg.CopyRate)),
	}
}

// Run executes the full pipeline: scan, plan, and (unless dry-run) copy.
func (a *App) Run(ctx context.Context) (*RunReport, error) {
	runID := uuid.NewString()
	logger := a.logger.With(zap.String("run_id", runID))

	extensions, err := inventory.NewExtensionSet(a.cfg.Extensions)
	if err != nil {
		return nil, err
	}

	entries, err := a.scanner.Scan(a.cfg.Source, extensions)
	if err != nil {
		return nil, err
	}
	logger.Info("inventory complete",
		zap.String("source", a.cfg.Source),
		zap.Int("files", len(entries)))

	plan, err := a.distributor.Distribute(entries, a.cfg.Seed,
		distributor.Limits{MaxFiles: a.cfg.MaxFiles, MaxBytes: a.cfg.MaxBytes})
	if err != nil {
		return nil, err
	}
	logger.Info("plan ready",
		zap.Uint64("seed", plan.Seed),
		zap.Int("bins", len(plan.Bins)),
		zap.Int("files", plan.TotalFiles),
		zap.Int64("bytes", plan.TotalBytes))

	if !a.cfg.DryRun {
		if a.lock != nil {
			held, err := a.lock.TryLock()
			if err != nil {
				return nil, fmt.Errorf("acquire destination lock: %w", err)
			}
			if !held {
				return nil, fmt.Errorf("destination %s is locked by another run", a.cfg.Destination)
			}
			defer func() {
				if err := a.lock.Unlock(); err != nil {
					logger.Warn("release destination lock", zap.Error(err))
				}
			}()
		}

		if err := a.materializer.PrepareDestination(a.cfg.Destination); err != nil {
			return nil, err
		}
		if err := a.materializer.Materialize(ctx, plan, a.cfg.Destination); err != nil {
			return nil, err
		}
		logger.Info("copy complete", zap.String("destination", a.cfg.Destination))
	}

	return buildReport(runID, a.cfg, plan), nil
}

func buildReport(runID string, cfg config.Config, plan *distributor.Plan) *RunReport {
	report := &RunReport{
		RunID:       runID,
		Seed:        plan.Seed,
		Source:      cfg.Source,
		Destination: cfg.Destination,
		DryRun:      cfg.DryRun,
		Bins:        make([]BinSummary, 0, len(plan.Bins)),
		TotalFiles:  plan.TotalFiles,
		TotalBytes:  plan.TotalBytes,
	}
	for _, bin := range plan.Bins {
		report.Bins = append(report.Bins, BinSummary{
			Index: bin.Index,
			Files: len(bin.Entries),
			Bytes: bin.TotalBytes,
		})
	}
	return report
}
