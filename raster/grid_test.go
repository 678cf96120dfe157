package raster_test

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvgrid/raster"
)

// TestNew_Errors verifies that constructors reject empty, ragged and
// mis-sized inputs.
func TestNew_Errors(t *testing.T) {
	cases := []struct {
		name string
		run  func() error
		err  error
	}{
		{"ZeroRows", func() error { _, err := raster.New(0, 3, -1); return err }, raster.ErrEmptyGrid},
		{"NegativeCols", func() error { _, err := raster.New(2, -1, -1); return err }, raster.ErrEmptyGrid},
		{"From2DEmpty", func() error { _, err := raster.From2D(nil, -1); return err }, raster.ErrEmptyGrid},
		{"From2DEmptyRow", func() error { _, err := raster.From2D([][]float64{{}}, -1); return err }, raster.ErrEmptyGrid},
		{"From2DRagged", func() error { _, err := raster.From2D([][]float64{{1, 2}, {3}}, -1); return err }, raster.ErrNonRectangular},
		{"FromSliceShort", func() error { _, err := raster.FromSlice(2, 2, []float64{1, 2, 3}, -1); return err }, raster.ErrLengthMismatch},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.run()
			if !errors.Is(err, tc.err) {
				t.Errorf("error = %v; want %v", err, tc.err)
			}
		})
	}
}

// TestGrid_Accessors checks indexing, row access and checked reads on a 2×3 grid.
func TestGrid_Accessors(t *testing.T) {
	g, err := raster.From2D([][]float64{
		{1, 2, 3},
		{4, 5, 6},
	}, -9999)
	require.NoError(t, err)

	assert.Equal(t, 2, g.Rows())
	assert.Equal(t, 3, g.Cols())
	assert.Equal(t, 6, g.Len())

	id, err := g.Index(1, 2)
	require.NoError(t, err)
	assert.Equal(t, 5, id)
	r, c := g.RowCol(id)
	assert.Equal(t, [2]int{1, 2}, [2]int{r, c})

	v, err := g.At(4)
	require.NoError(t, err)
	assert.Equal(t, 5.0, v)

	_, err = g.At(6)
	assert.ErrorIs(t, err, raster.ErrIndexOutOfRange)
	_, err = g.At(-1)
	assert.ErrorIs(t, err, raster.ErrIndexOutOfRange)
	_, err = g.Index(2, 0)
	assert.ErrorIs(t, err, raster.ErrIndexOutOfRange)
	assert.ErrorIs(t, g.Set(6, 1), raster.ErrIndexOutOfRange)

	row, err := g.Row(1)
	require.NoError(t, err)
	assert.Equal(t, []float64{4, 5, 6}, row)
	row[0] = 100 // copy, must not alias
	v, _ = g.At(3)
	assert.Equal(t, 4.0, v)

	require.NoError(t, g.SetRow(0, []float64{7, 8, 9}))
	assert.ErrorIs(t, g.SetRow(0, []float64{1}), raster.ErrLengthMismatch)
	assert.ErrorIs(t, g.SetRow(2, []float64{1, 2, 3}), raster.ErrIndexOutOfRange)
	assert.Equal(t, []float64{7, 8, 9, 4, 5, 6}, g.Cells())
}

// TestGrid_NoData covers numeric and NaN sentinels.
func TestGrid_NoData(t *testing.T) {
	g, err := raster.FromSlice(1, 4, []float64{-9999, 0, 1, -9999}, -9999)
	require.NoError(t, err)
	assert.Equal(t, 2, g.ValidCount())
	assert.False(t, g.IsValid(0))
	assert.True(t, g.IsValid(1))
	assert.False(t, g.IsValid(4))

	nan := math.NaN()
	gn, err := raster.FromSlice(1, 3, []float64{nan, 2, nan}, nan)
	require.NoError(t, err)
	assert.Equal(t, 1, gn.ValidCount())
	assert.True(t, gn.IsNoData(math.NaN()))
	assert.False(t, gn.IsNoData(2))
}

// TestGrid_CloneAndGeometry verifies deep copies and cell-area arithmetic.
func TestGrid_CloneAndGeometry(t *testing.T) {
	geom := raster.Geometry{OriginX: 100, OriginY: 200, CellWidth: 5, CellHeight: -5}
	g, err := raster.New(2, 2, -1, raster.WithGeometry(geom))
	require.NoError(t, err)
	assert.Equal(t, 25.0, g.CellArea())
	assert.Equal(t, geom, g.Geometry())

	c := g.Clone()
	require.NoError(t, c.Set(0, 42))
	v, _ := g.At(0)
	assert.Equal(t, 0.0, v, "clone must not share cells")
	assert.True(t, g.SameShape(c))
	assert.Equal(t, geom, c.Geometry())

	f := g.Filled(-1)
	assert.Equal(t, 0, f.ValidCount())
	assert.Equal(t, 1.0, raster.DefaultGeometry().CellArea())
}
