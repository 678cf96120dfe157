package hclconfig

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"

	"github.com/katalvlaran/lvgrid/internal/config"
	"github.com/katalvlaran/lvgrid/internal/ctxlog"
	"github.com/katalvlaran/lvgrid/region"
)

// Sentinel errors returned by Load.
var (
	// ErrNoFiles indicates that the given paths contain no .hcl file.
	ErrNoFiles = errors.New("hclconfig: no .hcl files found")
	// ErrInvalidJob indicates a job block with missing or invalid attributes.
	ErrInvalidJob = errors.New("hclconfig: invalid job")
	// ErrDuplicateJob indicates two job blocks with the same name.
	ErrDuplicateJob = errors.New("hclconfig: duplicate job name")
	// ErrInvalidSettings indicates an invalid settings block.
	ErrInvalidSettings = errors.New("hclconfig: invalid settings")
)

// Loader is the HCL-specific implementation of config.Loader.
type Loader struct {
	env map[string]string
}

// NewLoader returns a loader whose env object mirrors os.Environ.
func NewLoader() *Loader {
	env := make(map[string]string)
	for _, kv := range os.Environ() {
		if k, v, ok := strings.Cut(kv, "="); ok && k != "" {
			env[k] = v
		}
	}
	return &Loader{env: env}
}

// NewLoaderWithEnv returns a loader with a fixed env object.
func NewLoaderWithEnv(env map[string]string) *Loader {
	return &Loader{env: env}
}

// fileRoot decodes all top-level blocks of one file.
type fileRoot struct {
	Settings *settingsBlock `hcl:"settings,block"`
	Jobs     []*jobBlock    `hcl:"job,block"`
}

type settingsBlock struct {
	Workers *int     `hcl:"workers,optional"`
	Remain  hcl.Body `hcl:",remain"`
}

type jobBlock struct {
	Name           string   `hcl:"name,label"`
	Operation      string   `hcl:"operation"`
	Input          string   `hcl:"input"`
	Output         string   `hcl:"output"`
	Area           *float64 `hcl:"area,optional"`
	Policy         *string  `hcl:"policy,optional"`
	ValueDelimited *bool    `hcl:"value_delimited,optional"`
	Remain         hcl.Body `hcl:",remain"`
}

// Load parses every .hcl file under paths into a single Model. Jobs keep
// file order; a later settings block overrides an earlier one.
func (l *Loader) Load(ctx context.Context, paths ...string) (*config.Model, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("HCL loader started.", "path_count", len(paths))

	files, err := findHCLFiles(paths)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("%w in %v", ErrNoFiles, paths)
	}
	logger.Debug("Discovered HCL files.", "count", len(files))

	parser := hclparse.NewParser()
	evalCtx := l.evalContext()
	model := &config.Model{}
	seen := make(map[string]hcl.Range)

	for _, file := range files {
		hclFile, diags := parser.ParseHCLFile(file)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to parse HCL file %s: %w", file, diags)
		}

		var root fileRoot
		if diags := gohcl.DecodeBody(hclFile.Body, evalCtx, &root); diags.HasErrors() {
			return nil, fmt.Errorf("failed to decode HCL file %s: %w", file, diags)
		}

		if root.Settings != nil {
			if err := translateSettings(root.Settings, &model.Settings); err != nil {
				return nil, err
			}
		}
		for _, jb := range root.Jobs {
			rng := jb.Remain.MissingItemRange()
			if prev, dup := seen[jb.Name]; dup {
				return nil, fmt.Errorf("%w: %q at %s, first declared at %s", ErrDuplicateJob, jb.Name, rng, prev)
			}
			seen[jb.Name] = rng

			job, err := translateJob(jb, filepath.Dir(file))
			if err != nil {
				return nil, fmt.Errorf("%w %q at %s: %w", ErrInvalidJob, jb.Name, rng, err)
			}
			model.Jobs = append(model.Jobs, job)
		}
	}

	logger.Debug("HCL loading complete.", "jobs", len(model.Jobs), "workers", model.Settings.Workers)
	return model, nil
}

// evalContext exposes the loader's environment as the env object.
func (l *Loader) evalContext() *hcl.EvalContext {
	vals := make(map[string]cty.Value, len(l.env))
	for k, v := range l.env {
		if utf8.ValidString(k) && utf8.ValidString(v) {
			vals[k] = cty.StringVal(v)
		}
	}
	return &hcl.EvalContext{
		Variables: map[string]cty.Value{"env": cty.ObjectVal(vals)},
	}
}

func translateSettings(sb *settingsBlock, dst *config.Settings) error {
	if err := rejectExtra(sb.Remain); err != nil {
		return fmt.Errorf("%w at %s: %v", ErrInvalidSettings, sb.Remain.MissingItemRange(), err)
	}
	if sb.Workers != nil {
		if *sb.Workers < 1 {
			return fmt.Errorf("%w at %s: workers must be at least 1, got %d",
				ErrInvalidSettings, sb.Remain.MissingItemRange(), *sb.Workers)
		}
		dst.Workers = *sb.Workers
	}
	return nil
}

func translateJob(jb *jobBlock, dir string) (*config.Job, error) {
	if err := rejectExtra(jb.Remain); err != nil {
		return nil, err
	}
	op, err := config.ParseOperation(jb.Operation)
	if err != nil {
		return nil, err
	}
	if jb.Input == "" || jb.Output == "" {
		return nil, errors.New("input and output must not be empty")
	}
	job := &config.Job{
		Name:      jb.Name,
		Operation: op,
		Input:     resolve(dir, jb.Input),
		Output:    resolve(dir, jb.Output),
	}
	if jb.ValueDelimited != nil {
		job.ValueDelimited = *jb.ValueDelimited
	}

	if op != config.OpThreshold {
		if jb.Area != nil || jb.Policy != nil {
			return nil, fmt.Errorf("area and policy only apply to %q", config.OpThreshold)
		}
		return job, nil
	}
	if jb.Area == nil {
		return nil, errors.New("threshold requires area")
	}
	if *jb.Area < 0 {
		return nil, fmt.Errorf("area must not be negative, got %g", *jb.Area)
	}
	job.Area = *jb.Area
	if jb.Policy != nil {
		if job.Policy, err = region.ParsePolicy(*jb.Policy); err != nil {
			return nil, err
		}
	}
	return job, nil
}

// rejectExtra fails on attributes or blocks not declared by the schema.
func rejectExtra(body hcl.Body) error {
	attrs, diags := body.JustAttributes()
	if diags.HasErrors() {
		return diags
	}
	if len(attrs) == 0 {
		return nil
	}
	names := make([]string, 0, len(attrs))
	for name := range attrs {
		names = append(names, name)
	}
	sort.Strings(names)
	return fmt.Errorf("unsupported attributes %s", strings.Join(names, ", "))
}

func resolve(dir, p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(dir, p)
}

// findHCLFiles walks paths and returns every .hcl file once, in walk order.
func findHCLFiles(paths []string) ([]string, error) {
	var all []string
	seen := make(map[string]struct{})
	add := func(p string) {
		if _, ok := seen[p]; !ok {
			all = append(all, p)
			seen[p] = struct{}{}
		}
	}

	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("error accessing path %s: %w", path, err)
		}
		if !info.IsDir() {
			if filepath.Ext(path) == ".hcl" {
				add(path)
			}
			continue
		}
		err = filepath.Walk(path, func(p string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}
			if !info.IsDir() && filepath.Ext(p) == ".hcl" {
				add(p)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	return all, nil
}
