package gridio_test

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvgrid/gridio"
	"github.com/katalvlaran/lvgrid/raster"
)

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestFormatOf(t *testing.T) {
	cases := []struct {
		path string
		want gridio.Format
		err  error
	}{
		{"dem.asc", gridio.FormatASCII, nil},
		{"DEM.ASC", gridio.FormatASCII, nil},
		{"a/b/c.tif", gridio.FormatTIFF, nil},
		{"x.TIFF", gridio.FormatTIFF, nil},
		{"x.png", 0, gridio.ErrUnsupportedFormat},
		{"noext", 0, gridio.ErrUnsupportedFormat},
	}
	for _, tc := range cases {
		got, err := gridio.FormatOf(tc.path)
		if tc.err != nil {
			assert.ErrorIs(t, err, tc.err, tc.path)
			continue
		}
		require.NoError(t, err, tc.path)
		assert.Equal(t, tc.want, got, tc.path)
	}
}

func TestLoadASCII(t *testing.T) {
	path := writeFile(t, "dem.asc", `NCOLS 3
nrows 2
xllcorner 1000
yllcorner 2000
cellsize 30
NODATA_value -1

1 2 3
4 -1 6.5
`)
	g, err := gridio.Load(path)
	require.NoError(t, err)

	assert.Equal(t, 2, g.Rows())
	assert.Equal(t, 3, g.Cols())
	assert.Equal(t, -1.0, g.NoData())
	assert.Equal(t, []float64{1, 2, 3, 4, -1, 6.5}, g.Cells())
	assert.Equal(t, raster.Geometry{OriginX: 1000, OriginY: 2060, CellWidth: 30, CellHeight: 30}, g.Geometry())
	assert.Equal(t, 900.0, g.CellArea())
	assert.Equal(t, 5, g.ValidCount())
}

func TestLoadASCII_CenterAnchorAndDefaults(t *testing.T) {
	path := writeFile(t, "c.asc", "ncols 2\nnrows 1\nxllcenter 5\nyllcenter 5\ndx 2\ndy 4\n-9999 7\n")
	g, err := gridio.Load(path)
	require.NoError(t, err)

	assert.Equal(t, gridio.DefaultASCIINoData, g.NoData())
	assert.Equal(t, raster.Geometry{OriginX: 4, OriginY: 7, CellWidth: 2, CellHeight: 4}, g.Geometry())
	assert.True(t, g.IsNoData(g.Cells()[0]))
}

func TestLoadASCII_Errors(t *testing.T) {
	cases := []struct {
		name, body string
		err        error
	}{
		{"no ncols", "nrows 1\nxllcorner 0\nyllcorner 0\ncellsize 1\n1\n", gridio.ErrBadHeader},
		{"zero rows", "ncols 1\nnrows 0\nxllcorner 0\nyllcorner 0\ncellsize 1\n", gridio.ErrBadHeader},
		{"no cellsize", "ncols 1\nnrows 1\nxllcorner 0\nyllcorner 0\n1\n", gridio.ErrBadHeader},
		{"no anchor", "ncols 1\nnrows 1\nyllcorner 0\ncellsize 1\n1\n", gridio.ErrBadHeader},
		{"bad value", "ncols 1\nnrows 1\nxllcorner abc\nyllcorner 0\ncellsize 1\n1\n", gridio.ErrBadHeader},
		{"short row", "ncols 2\nnrows 1\nxllcorner 0\nyllcorner 0\ncellsize 1\n1\n", gridio.ErrRowLength},
		{"extra row", "ncols 1\nnrows 1\nxllcorner 0\nyllcorner 0\ncellsize 1\n1\n2\n", gridio.ErrRowIndex},
		{"missing row", "ncols 1\nnrows 2\nxllcorner 0\nyllcorner 0\ncellsize 1\n1\n", gridio.ErrIncomplete},
		{"huge shape", "ncols 4000000000\nnrows 4000000000\nxllcorner 0\nyllcorner 0\ncellsize 1\n1 2\n", gridio.ErrBadHeader},
		{"shape over cap", "ncols 65536\nnrows 65536\nxllcorner 0\nyllcorner 0\ncellsize 1\n1\n", gridio.ErrBadHeader},
		{"absurd rows", "ncols 1\nnrows 1e300\nxllcorner 0\nyllcorner 0\ncellsize 1\n1\n", gridio.ErrBadHeader},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := gridio.Load(writeFile(t, "bad.asc", tc.body))
			assert.ErrorIs(t, err, tc.err)
		})
	}

	_, err := gridio.Load(filepath.Join(t.TempDir(), "missing.asc"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestReader_ReadRowBounds(t *testing.T) {
	path := writeFile(t, "r.asc", "ncols 2\nnrows 2\nxllcorner 0\nyllcorner 0\ncellsize 1\n1 2\n3 4\n")
	rd, err := gridio.Open(path)
	require.NoError(t, err)
	defer rd.Close()

	row := make([]float64, 2)
	require.NoError(t, rd.ReadRow(1, row))
	assert.Equal(t, []float64{3, 4}, row)
	assert.ErrorIs(t, rd.ReadRow(2, row), gridio.ErrRowIndex)
	assert.ErrorIs(t, rd.ReadRow(-1, row), gridio.ErrRowIndex)
	assert.ErrorIs(t, rd.ReadRow(0, make([]float64, 3)), gridio.ErrRowLength)
}

func TestSaveLoad_ASCIIRoundTrip(t *testing.T) {
	geom := raster.Geometry{OriginX: 500, OriginY: 900, CellWidth: 10, CellHeight: 20}
	g, err := raster.From2D([][]float64{
		{0.1, 2, -9999},
		{1e-7, 123456.789, math.Pi},
	}, -9999, raster.WithGeometry(geom))
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "out.asc")
	require.NoError(t, gridio.Save(path, g))
	back, err := gridio.Load(path)
	require.NoError(t, err)

	assert.Equal(t, g.Cells(), back.Cells())
	assert.Equal(t, g.NoData(), back.NoData())
	assert.Equal(t, geom, back.Geometry())
}

func TestWriter_Incomplete(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.asc")
	w, err := gridio.Create(path, gridio.Meta{Rows: 2, Cols: 2, NoData: -9999, Geometry: raster.DefaultGeometry()})
	require.NoError(t, err)

	require.NoError(t, w.WriteRow(1, []float64{1, 2}))
	assert.ErrorIs(t, w.WriteRow(2, []float64{1, 2}), gridio.ErrRowIndex)
	assert.ErrorIs(t, w.WriteRow(0, []float64{1}), gridio.ErrRowLength)
	assert.ErrorIs(t, w.Close(), gridio.ErrIncomplete)
	_, statErr := os.Stat(path)
	assert.ErrorIs(t, statErr, os.ErrNotExist)

	_, err = gridio.Create(path, gridio.Meta{Rows: 0, Cols: 2})
	assert.ErrorIs(t, err, gridio.ErrBadHeader)
	_, err = gridio.Create(path, gridio.Meta{Rows: gridio.MaxCells, Cols: 2})
	assert.ErrorIs(t, err, gridio.ErrBadHeader)
	_, err = gridio.Create(filepath.Join(t.TempDir(), "x.png"), gridio.Meta{Rows: 1, Cols: 1})
	assert.ErrorIs(t, err, gridio.ErrUnsupportedFormat)
}

func TestSaveLoad_TIFF16(t *testing.T) {
	g, err := raster.From2D([][]float64{
		{0, 1.4, 1.6},
		{-9999, 65534, 300},
	}, -9999)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "out.tif")
	require.NoError(t, gridio.Save(path, g))
	back, err := gridio.Load(path)
	require.NoError(t, err)

	assert.Equal(t, float64(gridio.TIFFNoData16), back.NoData())
	assert.Equal(t, []float64{0, 1, 2, gridio.TIFFNoData16, 65534, 300}, back.Cells())
	assert.Equal(t, raster.DefaultGeometry(), back.Geometry())
	assert.Equal(t, 5, back.ValidCount())
}

func TestSaveLoad_TIFF8(t *testing.T) {
	g, err := raster.From2D([][]float64{{255, 0}, {7, 254}}, gridio.TIFFNoData8)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "out.tiff")
	require.NoError(t, gridio.Save(path, g))
	back, err := gridio.Load(path)
	require.NoError(t, err)

	assert.Equal(t, float64(gridio.TIFFNoData8), back.NoData())
	assert.Equal(t, g.Cells(), back.Cells())
}

func TestSave_TIFFValueRange(t *testing.T) {
	dir := t.TempDir()
	for _, v := range []float64{-1, 65535, 1e9} {
		g, err := raster.From2D([][]float64{{v}}, -9999)
		require.NoError(t, err)
		assert.ErrorIs(t, gridio.Save(filepath.Join(dir, "bad.tif"), g), gridio.ErrValueRange, "value %v", v)
	}

	g, err := raster.From2D([][]float64{{255, 255}}, 255)
	require.NoError(t, err)
	require.NoError(t, g.Set(1, 300))
	assert.ErrorIs(t, gridio.Save(filepath.Join(dir, "bad8.tif"), g), gridio.ErrValueRange)
}
