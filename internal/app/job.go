package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/katalvlaran/lvgrid/depression"
	"github.com/katalvlaran/lvgrid/gridio"
	"github.com/katalvlaran/lvgrid/internal/config"
	"github.com/katalvlaran/lvgrid/internal/ctxlog"
	"github.com/katalvlaran/lvgrid/raster"
	"github.com/katalvlaran/lvgrid/region"
)

// ErrUnknownOperation is returned for a job whose operation is not supported.
var ErrUnknownOperation = errors.New("app: unknown operation")

// runJob loads the input raster, applies the operation and saves the output.
func runJob(ctx context.Context, job *config.Job) error {
	ctx = ctxlog.With(ctx, "job", job.Name, "operation", string(job.Operation))
	logger := ctxlog.FromContext(ctx)
	start := time.Now()

	g, err := gridio.Load(job.Input)
	if err != nil {
		return err
	}
	logger.Debug("Input loaded.", "path", job.Input, "rows", g.Rows(), "cols", g.Cols(), "valid", g.ValidCount())

	var out *raster.Grid
	switch job.Operation {
	case config.OpFill:
		out, err = fill(ctx, g)
	case config.OpLabel:
		out, err = label(ctx, g, job)
	case config.OpThreshold:
		out, err = threshold(ctx, g, job)
	default:
		err = fmt.Errorf("%w: %q", ErrUnknownOperation, job.Operation)
	}
	if err != nil {
		return err
	}

	if dir := filepath.Dir(job.Output); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output directory: %w", err)
		}
	}
	if err := gridio.Save(job.Output, out); err != nil {
		return err
	}

	logger.Info("Job finished.", "output", job.Output, "elapsed", time.Since(start))
	return nil
}

func fill(ctx context.Context, g *raster.Grid) (*raster.Grid, error) {
	logger := ctxlog.FromContext(ctx)
	res, err := depression.RemovePits(g,
		depression.WithContext(ctx),
		depression.WithInPlace(),
		depression.WithOnPit(func(id int, crest float64, raised int) {
			logger.Debug("Depression filled.", "pit", id, "crest", crest, "raised", raised)
		}),
	)
	if err != nil {
		return nil, err
	}
	logger.Info("Depressions removed.",
		"outlets", res.Outlets,
		"pits", res.Pits,
		"cells_raised", res.CellsRaised,
		"max_raise", res.MaxRaise,
	)
	return res.Grid, nil
}

func labelOptions(ctx context.Context, job *config.Job) []region.Option {
	logger := ctxlog.FromContext(ctx)
	opts := []region.Option{
		region.WithContext(ctx),
		region.WithOnFeature(func(id int32, cells uint64) {
			logger.Debug("Feature labelled.", "feature", id, "cells", cells)
		}),
	}
	if job.ValueDelimited {
		opts = append(opts, region.WithValueDelimited())
	}
	return opts
}

func label(ctx context.Context, g *raster.Grid, job *config.Job) (*raster.Grid, error) {
	res, err := region.Label(g, labelOptions(ctx, job)...)
	if err != nil {
		return nil, err
	}
	ctxlog.FromContext(ctx).Info("Features labelled.", "features", res.Count)
	return res.ToGrid(g)
}

func threshold(ctx context.Context, g *raster.Grid, job *config.Job) (*raster.Grid, error) {
	res, err := region.Label(g, labelOptions(ctx, job)...)
	if err != nil {
		return nil, err
	}
	out, removed, err := region.ApplyAreaThreshold(g, res, job.Area, job.Policy)
	if err != nil {
		return nil, err
	}
	ctxlog.FromContext(ctx).Info("Area threshold applied.",
		"features", res.Count,
		"removed", removed,
		"area", job.Area,
		"policy", job.Policy.String(),
	)
	return out, nil
}
