package app

import (
	"errors"
	"fmt"
	"io"

	"github.com/katalvlaran/lvgrid/internal/config"
)

// Config holds everything an App needs for one run.
type Config struct {
	// Jobs are built directly from the command line.
	Jobs []*config.Job
	// JobPaths are job files or directories handed to the config.Loader.
	JobPaths []string

	LogFormat string
	LogLevel  string

	// Workers caps concurrent jobs. Zero defers to the job file settings,
	// then to GOMAXPROCS.
	Workers int

	// Progress renders a job progress bar on ProgressOut.
	Progress    bool
	ProgressOut io.Writer
}

// NewConfig validates cfg and returns a copy.
func NewConfig(cfg Config) (*Config, error) {
	if len(cfg.Jobs) == 0 && len(cfg.JobPaths) == 0 {
		return nil, errors.New("at least one job or job file is required")
	}
	switch cfg.LogFormat {
	case "text", "json":
	default:
		return nil, fmt.Errorf("invalid log-format %q: must be 'text' or 'json'", cfg.LogFormat)
	}
	if _, ok := parseLevel(cfg.LogLevel); !ok {
		return nil, fmt.Errorf("invalid log-level %q: must be 'debug', 'info', 'warn', or 'error'", cfg.LogLevel)
	}
	if cfg.Workers < 0 {
		return nil, fmt.Errorf("invalid workers %d: must not be negative", cfg.Workers)
	}
	if cfg.Progress && cfg.ProgressOut == nil {
		return nil, errors.New("progress output is required when progress is enabled")
	}

	return &cfg, nil
}
