package cli

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/katalvlaran/lvgrid/internal/app"
	"github.com/katalvlaran/lvgrid/internal/config"
	"github.com/katalvlaran/lvgrid/region"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

func usageError(format string, args ...any) *ExitError {
	return &ExitError{Code: 2, Message: fmt.Sprintf(format, args...)}
}

const usage = `
lvgrid - raster depression filling and region labelling.

Usage:
  lvgrid [options] <command> [command options] <args>

Commands:
  fill <in> <out>
    Remove closed depressions from an elevation raster.
  label [-value-delimited] <in> <out>
    Write the connected-feature label map of a raster.
  threshold -area A [-policy drop_below|drop_above] [-value-delimited] <in> <out>
    Remove features by area (cells times cell area).
  run <jobs.hcl|dir>...
    Run every job declared in HCL job files.

Formats are chosen by extension: .asc (ESRI ASCII grid), .tif/.tiff.

Options:
`

// Parse processes command-line arguments. It returns a populated Config,
// a boolean indicating if the program should exit cleanly, or an ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")
	flagSet := flag.NewFlagSet("lvgrid", flag.ContinueOnError)
	flagSet.SetOutput(output)
	flagSet.Usage = func() {
		fmt.Fprint(output, usage)
		flagSet.PrintDefaults()
	}

	logFormatFlag := flagSet.String("log-format", "text", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")
	workersFlag := flagSet.Int("workers", 0, "Maximum concurrent jobs. 0 uses the job file setting or the CPU count.")
	progressFlag := flagSet.Bool("progress", false, "Render a job progress bar on stderr.")

	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, true, nil
		}
		return nil, false, usageError("%s", err.Error())
	}

	if flagSet.NArg() == 0 {
		slog.Debug("No command provided, printing usage and exiting.")
		flagSet.Usage()
		return nil, true, nil
	}

	cfg := app.Config{
		LogFormat:   strings.ToLower(*logFormatFlag),
		LogLevel:    strings.ToLower(*logLevelFlag),
		Workers:     *workersFlag,
		Progress:    *progressFlag,
		ProgressOut: os.Stderr,
	}

	command, rest := flagSet.Arg(0), flagSet.Args()[1:]
	var exit bool
	var err error
	switch command {
	case "run":
		if len(rest) == 0 {
			return nil, false, usageError("run: at least one job file or directory is required")
		}
		cfg.JobPaths = rest
	case string(config.OpFill), string(config.OpLabel), string(config.OpThreshold):
		var job *config.Job
		job, exit, err = parseJob(config.Operation(command), rest, output)
		if err != nil || exit {
			return nil, exit, err
		}
		cfg.Jobs = []*config.Job{job}
	default:
		return nil, false, usageError("unknown command %q", command)
	}

	appCfg, err := app.NewConfig(cfg)
	if err != nil {
		return nil, false, usageError("%s", err.Error())
	}

	slog.Debug("CLI parser finished successfully.", "command", command)
	return appCfg, false, nil
}

// parseJob reads the options and the two positional paths of a
// single-raster command.
func parseJob(op config.Operation, args []string, output io.Writer) (*config.Job, bool, error) {
	fs := flag.NewFlagSet("lvgrid "+string(op), flag.ContinueOnError)
	fs.SetOutput(output)

	var (
		area           *float64
		policy         *string
		valueDelimited *bool
	)
	if op != config.OpFill {
		valueDelimited = fs.Bool("value-delimited", false, "Only join neighbours with equal values.")
	}
	if op == config.OpThreshold {
		area = fs.Float64("area", -1, "Area threshold in squared map units (required).")
		policy = fs.String("policy", region.DropBelow.String(), "Which side of the threshold is removed: drop_below or drop_above.")
	}

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, true, nil
		}
		return nil, false, usageError("%s", err.Error())
	}
	if fs.NArg() != 2 {
		return nil, false, usageError("%s: expected <in> <out>, got %d arguments", op, fs.NArg())
	}

	job := &config.Job{
		Name:      filepath.Base(fs.Arg(0)),
		Operation: op,
		Input:     fs.Arg(0),
		Output:    fs.Arg(1),
	}
	if valueDelimited != nil {
		job.ValueDelimited = *valueDelimited
	}
	if op == config.OpThreshold {
		if *area < 0 {
			return nil, false, usageError("threshold: -area is required and must not be negative")
		}
		p, err := region.ParsePolicy(*policy)
		if err != nil {
			return nil, false, usageError("threshold: %v", err)
		}
		job.Area, job.Policy = *area, p
	}
	return job, false, nil
}
