package hclconfig_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvgrid/internal/config"
	"github.com/katalvlaran/lvgrid/internal/hclconfig"
	"github.com/katalvlaran/lvgrid/region"
)

func writeHCL(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad_FullFile(t *testing.T) {
	dir := t.TempDir()
	path := writeHCL(t, dir, "jobs.hcl", `
settings {
  workers = 3
}

job "dem" {
  operation = "fill"
  input     = "${env.DATA}/dem.asc"
  output    = "out/dem_filled.asc"
}

job "lakes" {
  operation       = "threshold"
  input           = "/abs/lakes.asc"
  output          = "out/lakes.tif"
  area            = 2500
  policy          = "drop_above"
  value_delimited = true
}

job "classes" {
  operation       = "label"
  input           = "landuse.asc"
  output          = "labels.asc"
  value_delimited = true
}
`)
	loader := hclconfig.NewLoaderWithEnv(map[string]string{"DATA": "/srv/data"})
	got, err := loader.Load(context.Background(), path)
	require.NoError(t, err)

	want := &config.Model{
		Settings: config.Settings{Workers: 3},
		Jobs: []*config.Job{
			{Name: "dem", Operation: config.OpFill, Input: "/srv/data/dem.asc", Output: filepath.Join(dir, "out/dem_filled.asc")},
			{Name: "lakes", Operation: config.OpThreshold, Input: "/abs/lakes.asc", Output: filepath.Join(dir, "out/lakes.tif"),
				Area: 2500, Policy: region.DropAbove, ValueDelimited: true},
			{Name: "classes", Operation: config.OpLabel, Input: filepath.Join(dir, "landuse.asc"), Output: filepath.Join(dir, "labels.asc"),
				ValueDelimited: true},
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("model mismatch (-want +got):\n%s", diff)
	}
}

func TestLoad_Directory(t *testing.T) {
	dir := t.TempDir()
	writeHCL(t, dir, "a.hcl", `job "a" {
  operation = "fill"
  input     = "a.asc"
  output    = "a_out.asc"
}`)
	writeHCL(t, dir, "nested/b.hcl", `job "b" {
  operation = "threshold"
  input     = "b.asc"
  output    = "b_out.asc"
  area      = 0
}`)
	writeHCL(t, dir, "notes.txt", "ignored")

	got, err := hclconfig.NewLoaderWithEnv(nil).Load(context.Background(), dir)
	require.NoError(t, err)
	require.Len(t, got.Jobs, 2)
	assert.Equal(t, "a", got.Jobs[0].Name)
	assert.Equal(t, filepath.Join(dir, "nested", "b.asc"), got.Jobs[1].Input)
	assert.Equal(t, region.DropBelow, got.Jobs[1].Policy)
	assert.Zero(t, got.Settings.Workers)
}

func TestLoad_Errors(t *testing.T) {
	cases := []struct {
		name, body string
		err        error
		contains   string
	}{
		{
			name: "unknown operation",
			body: `job "x" {
  operation = "resample"
  input     = "a.asc"
  output    = "b.asc"
}`,
			err:      hclconfig.ErrInvalidJob,
			contains: `unknown operation "resample"`,
		},
		{
			name: "threshold without area",
			body: `job "x" {
  operation = "threshold"
  input     = "a.asc"
  output    = "b.asc"
}`,
			err:      hclconfig.ErrInvalidJob,
			contains: "requires area",
		},
		{
			name: "negative area",
			body: `job "x" {
  operation = "threshold"
  input     = "a.asc"
  output    = "b.asc"
  area      = -1
}`,
			err: hclconfig.ErrInvalidJob,
		},
		{
			name: "bad policy",
			body: `job "x" {
  operation = "threshold"
  input     = "a.asc"
  output    = "b.asc"
  area      = 1
  policy    = "drop_middle"
}`,
			err: region.ErrUnknownPolicy,
		},
		{
			name: "area on fill",
			body: `job "x" {
  operation = "fill"
  input     = "a.asc"
  output    = "b.asc"
  area      = 1
}`,
			err: hclconfig.ErrInvalidJob,
		},
		{
			name: "unknown attribute",
			body: `job "x" {
  operation = "fill"
  input     = "a.asc"
  output    = "b.asc"
  polcy     = "drop_above"
}`,
			err:      hclconfig.ErrInvalidJob,
			contains: "polcy",
		},
		{
			name: "duplicate job",
			body: `job "x" {
  operation = "fill"
  input     = "a.asc"
  output    = "b.asc"
}
job "x" {
  operation = "label"
  input     = "a.asc"
  output    = "c.asc"
}`,
			err: hclconfig.ErrDuplicateJob,
		},
		{
			name: "zero workers",
			body: `settings {
  workers = 0
}`,
			err: hclconfig.ErrInvalidSettings,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			path := writeHCL(t, t.TempDir(), "jobs.hcl", tc.body)
			_, err := hclconfig.NewLoaderWithEnv(nil).Load(context.Background(), path)
			require.ErrorIs(t, err, tc.err)
			assert.Contains(t, err.Error(), "jobs.hcl")
			if tc.contains != "" {
				assert.Contains(t, err.Error(), tc.contains)
			}
		})
	}
}

func TestLoad_ParseAndPathErrors(t *testing.T) {
	dir := t.TempDir()
	bad := writeHCL(t, dir, "bad.hcl", `job "x" {`)
	_, err := hclconfig.NewLoaderWithEnv(nil).Load(context.Background(), bad)
	assert.ErrorContains(t, err, "failed to parse HCL file")

	missingEnv := writeHCL(t, dir, "env.hcl", `job "x" {
  operation = "fill"
  input     = env.NOPE
  output    = "b.asc"
}`)
	_, err = hclconfig.NewLoaderWithEnv(map[string]string{}).Load(context.Background(), missingEnv)
	assert.ErrorContains(t, err, "failed to decode HCL file")

	_, err = hclconfig.NewLoaderWithEnv(nil).Load(context.Background(), filepath.Join(dir, "missing"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	empty := t.TempDir()
	_, err = hclconfig.NewLoaderWithEnv(nil).Load(context.Background(), empty)
	assert.ErrorIs(t, err, hclconfig.ErrNoFiles)
}
