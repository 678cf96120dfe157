package region_test

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvgrid/raster"
	"github.com/katalvlaran/lvgrid/region"
)

// tenMetre gives every cell an area of 100 square units.
var tenMetre = raster.WithGeometry(raster.Geometry{CellWidth: 10, CellHeight: -10})

// TestApplyAreaThreshold_Policies checks both polarities against the 900
// and 400 square-unit islands.
func TestApplyAreaThreshold_Policies(t *testing.T) {
	g := twoIslands(t, tenMetre)
	res, err := region.Label(g)
	require.NoError(t, err)

	cases := []struct {
		name      string
		threshold float64
		policy    region.Policy
		removed   int
		valid     int
	}{
		{"DropBelowRemovesSmall", 500, region.DropBelow, 1, 9},
		{"DropAboveRemovesLarge", 500, region.DropAbove, 1, 4},
		{"DropBelowStrict", 400, region.DropBelow, 0, 13},
		{"DropAboveStrict", 900, region.DropAbove, 0, 13},
		{"DropBelowEverything", 1000, region.DropBelow, 2, 0},
		{"ZeroKeepsAll", 0, region.DropBelow, 0, 13},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			out, removed, err := region.ApplyAreaThreshold(g, res, tc.threshold, tc.policy)
			require.NoError(t, err)
			assert.Equal(t, tc.removed, removed)
			assert.Equal(t, tc.valid, out.ValidCount())
			assert.Equal(t, 13, g.ValidCount(), "input must not be modified")
			assert.Equal(t, g.Geometry(), out.Geometry())
		})
	}
}

// TestApplyAreaThreshold_Errors covers invalid inputs.
func TestApplyAreaThreshold_Errors(t *testing.T) {
	g := twoIslands(t)
	res, err := region.Label(g)
	require.NoError(t, err)

	flat, err := raster.New(5, 9, nd, raster.WithGeometry(raster.Geometry{CellWidth: 0, CellHeight: 1}))
	require.NoError(t, err)
	small, err := raster.New(2, 2, nd)
	require.NoError(t, err)

	cases := []struct {
		name string
		run  func() error
		err  error
	}{
		{"NilGrid", func() error { _, _, err := region.ApplyAreaThreshold(nil, res, 1, region.DropBelow); return err }, region.ErrNilGrid},
		{"NilResult", func() error { _, _, err := region.ApplyAreaThreshold(g, nil, 1, region.DropBelow); return err }, region.ErrNilResult},
		{"Negative", func() error { _, _, err := region.ApplyAreaThreshold(g, res, -1, region.DropBelow); return err }, region.ErrBadThreshold},
		{"NaN", func() error { _, _, err := region.ApplyAreaThreshold(g, res, math.NaN(), region.DropBelow); return err }, region.ErrBadThreshold},
		{"Policy", func() error { _, _, err := region.ApplyAreaThreshold(g, res, 1, region.Policy(7)); return err }, region.ErrUnknownPolicy},
		{"CellArea", func() error { _, _, err := region.ApplyAreaThreshold(flat, res, 1, region.DropBelow); return err }, region.ErrBadCellArea},
		{"Length", func() error { _, _, err := region.ApplyAreaThreshold(small, res, 1, region.DropBelow); return err }, region.ErrLabelLength},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if err := tc.run(); !errors.Is(err, tc.err) {
				t.Errorf("error = %v; want %v", err, tc.err)
			}
		})
	}
}

// TestRemoveSmallAndToGrid covers the convenience wrapper and the label
// grid rendering.
func TestRemoveSmallAndToGrid(t *testing.T) {
	g := twoIslands(t)
	out, removed, err := region.RemoveSmall(g, 5)
	require.NoError(t, err)
	assert.Equal(t, 1, removed)
	assert.Equal(t, 9, out.ValidCount())

	res, err := region.Label(g)
	require.NoError(t, err)
	lg, err := res.ToGrid(g)
	require.NoError(t, err)
	v, _ := lg.At(24)
	assert.Equal(t, 2.0, v)
	v, _ = lg.At(0)
	assert.Equal(t, nd, v)
}

// TestToGrid_SentinelCollision keeps every feature when the template's
// no-data value is also a feature id.
func TestToGrid_SentinelCollision(t *testing.T) {
	g, err := raster.From2D([][]float64{
		{5, -1, 7},
		{-1, -1, -1},
		{8, -1, 9},
	}, 1)
	require.NoError(t, err)

	res, err := region.Label(g)
	require.NoError(t, err)
	require.Equal(t, 1, res.Count)

	lg, err := res.ToGrid(g)
	require.NoError(t, err)
	assert.Equal(t, float64(region.Unlabeled), lg.NoData())
	assert.Equal(t, 9, lg.ValidCount())
	assert.Equal(t, []float64{1, 1, 1, 1, 1, 1, 1, 1, 1}, lg.Cells())
	assert.Equal(t, g.Geometry(), lg.Geometry())

	// A sentinel outside [1, Count] is kept.
	g2, err := raster.From2D([][]float64{{3, 1}, {1, 3}}, 2)
	require.NoError(t, err)
	res2, err := region.Label(g2)
	require.NoError(t, err)
	lg2, err := res2.ToGrid(g2)
	require.NoError(t, err)
	assert.Equal(t, 2.0, lg2.NoData())
	assert.Equal(t, 4, lg2.ValidCount())
}

// TestParsePolicy maps names to policies.
func TestParsePolicy(t *testing.T) {
	p, err := region.ParsePolicy("drop_above")
	require.NoError(t, err)
	assert.Equal(t, region.DropAbove, p)
	p, err = region.ParsePolicy("")
	require.NoError(t, err)
	assert.Equal(t, region.DropBelow, p)
	assert.Equal(t, "drop_below", p.String())
	_, err = region.ParsePolicy("keep")
	assert.ErrorIs(t, err, region.ErrUnknownPolicy)
}
