package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/lvgrid/internal/config"
	"github.com/katalvlaran/lvgrid/internal/ctxlog"
)

// ErrNoJobs is returned when the configuration yields no job to run.
var ErrNoJobs = errors.New("app: no jobs to run")

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW   io.Writer
	logger *slog.Logger
	cfg    *Config
	loader config.Loader
}

// NewApp returns an App with its own logger writing to outW. loader may be
// nil when cfg has no JobPaths.
func NewApp(outW io.Writer, cfg *Config, loader config.Loader) *App {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, outW)
	logger.Debug("Logger configured successfully.")

	return &App{outW: outW, logger: logger, cfg: cfg, loader: loader}
}

// Run loads the job model, then executes every job on the worker pool.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	model, err := a.model(ctx)
	if err != nil {
		return err
	}
	if len(model.Jobs) == 0 {
		return ErrNoJobs
	}
	workers := a.workers(model)
	a.logger.Info("Starting jobs.", "jobs", len(model.Jobs), "workers", workers)

	var bar *progress
	if a.cfg.Progress {
		bar = startProgress(a.cfg.ProgressOut, len(model.Jobs))
	}
	defer bar.stop()

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for _, job := range model.Jobs {
		job := job
		g.Go(func() error {
			defer bar.incr()
			if err := gctx.Err(); err != nil {
				return err
			}
			if err := runJob(gctx, job); err != nil {
				return fmt.Errorf("job %q: %w", job.Name, err)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		a.logger.Error("Run failed.", "error", err)
		return err
	}

	a.logger.Info("All jobs finished.", "jobs", len(model.Jobs))
	return nil
}

// model merges command-line jobs with those loaded from job files.
func (a *App) model(ctx context.Context) (*config.Model, error) {
	model := &config.Model{Jobs: append([]*config.Job(nil), a.cfg.Jobs...)}
	if len(a.cfg.JobPaths) == 0 {
		return model, nil
	}
	if a.loader == nil {
		return nil, errors.New("app: job files given without a loader")
	}
	loaded, err := a.loader.Load(ctx, a.cfg.JobPaths...)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	model.Settings = loaded.Settings
	model.Jobs = append(model.Jobs, loaded.Jobs...)
	return model, nil
}

// workers resolves the pool size: flag, then file settings, then
// GOMAXPROCS, never more than the number of jobs.
func (a *App) workers(model *config.Model) int {
	n := a.cfg.Workers
	if n == 0 {
		n = model.Settings.Workers
	}
	if n == 0 {
		n = runtime.GOMAXPROCS(0)
	}
	if n > len(model.Jobs) {
		n = len(model.Jobs)
	}
	return n
}
