// SPDX-License-Identifier: MIT

package gridio

import (
	"fmt"
	"math"
	"path/filepath"
	"strings"

	"github.com/katalvlaran/lvgrid/raster"
)

// Meta describes a raster file: its shape, no-data sentinel and geometry.
// It doubles as the template for Create.
type Meta struct {
	Rows, Cols int
	NoData     float64
	Geometry   raster.Geometry
}

// MetaOf returns the Meta of an in-memory grid.
func MetaOf(g *raster.Grid) Meta {
	return Meta{Rows: g.Rows(), Cols: g.Cols(), NoData: g.NoData(), Geometry: g.Geometry()}
}

// MaxCells bounds rows·cols of any raster opened or created by this package.
const MaxCells = 1 << 28

// validate checks the shape.
func (m Meta) validate() error {
	if m.Rows <= 0 || m.Cols <= 0 {
		return fmt.Errorf("%w: shape %d×%d", ErrBadHeader, m.Rows, m.Cols)
	}
	if m.Rows > MaxCells/m.Cols {
		return fmt.Errorf("%w: shape %d×%d exceeds %d cells", ErrBadHeader, m.Rows, m.Cols, MaxCells)
	}
	return nil
}

// isNoData mirrors raster.Grid.IsNoData for a bare sentinel.
func (m Meta) isNoData(v float64) bool {
	if math.IsNaN(m.NoData) {
		return math.IsNaN(v)
	}
	return v == m.NoData
}

// checkRow validates a row index and buffer length.
func (m Meta) checkRow(r, n int) error {
	if r < 0 || r >= m.Rows {
		return fmt.Errorf("%w: row %d of %d", ErrRowIndex, r, m.Rows)
	}
	if n != m.Cols {
		return fmt.Errorf("%w: got %d values, want %d", ErrRowLength, n, m.Cols)
	}
	return nil
}

// Reader reads a raster one row at a time.
type Reader interface {
	Meta() Meta
	// ReadRow copies row r into dst, which must hold Meta().Cols values.
	ReadRow(r int, dst []float64) error
	Close() error
}

// Writer writes a raster one row at a time. Rows may arrive in any order;
// Close fails with ErrIncomplete unless every row was written.
type Writer interface {
	Meta() Meta
	WriteRow(r int, vals []float64) error
	Close() error
}

// Format identifies a supported file format.
type Format int

const (
	// FormatASCII is the ESRI ASCII grid (.asc).
	FormatASCII Format = iota
	// FormatTIFF is a single-band grayscale TIFF (.tif, .tiff).
	FormatTIFF
)

// String implements fmt.Stringer.
func (f Format) String() string {
	switch f {
	case FormatASCII:
		return "asc"
	case FormatTIFF:
		return "tiff"
	default:
		return fmt.Sprintf("Format(%d)", int(f))
	}
}

// FormatOf infers the format from the file extension.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".asc":
		return FormatASCII, nil
	case ".tif", ".tiff":
		return FormatTIFF, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnsupportedFormat, path)
	}
}

// Open opens path for reading, choosing the codec by extension.
func Open(path string) (Reader, error) {
	f, err := FormatOf(path)
	if err != nil {
		return nil, err
	}
	if f == FormatTIFF {
		return openTIFF(path)
	}
	return openASCII(path)
}

// Create opens path for writing with the shape, no-data and geometry of meta.
func Create(path string, meta Meta) (Writer, error) {
	if err := meta.validate(); err != nil {
		return nil, err
	}
	f, err := FormatOf(path)
	if err != nil {
		return nil, err
	}
	if f == FormatTIFF {
		return createTIFF(path, meta)
	}
	return createASCII(path, meta)
}

// Load reads the whole file at path into a Grid.
func Load(path string) (*raster.Grid, error) {
	rd, err := Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rd.Close() }()

	m := rd.Meta()
	g, err := raster.New(m.Rows, m.Cols, m.NoData, raster.WithGeometry(m.Geometry))
	if err != nil {
		return nil, fmt.Errorf("gridio: load %s: %w", path, err)
	}
	row := make([]float64, m.Cols)
	for r := 0; r < m.Rows; r++ {
		if err := rd.ReadRow(r, row); err != nil {
			return nil, err
		}
		if err := g.SetRow(r, row); err != nil {
			return nil, err
		}
	}

	return g, nil
}

// Save writes g to path. The codec is chosen by extension.
func Save(path string, g *raster.Grid) error {
	w, err := Create(path, MetaOf(g))
	if err != nil {
		return err
	}
	for r := 0; r < g.Rows(); r++ {
		row, err := g.Row(r)
		if err != nil {
			_ = w.Close()
			return err
		}
		if err := w.WriteRow(r, row); err != nil {
			_ = w.Close()
			return err
		}
	}

	return w.Close()
}

// rowBuffer holds rows until Close in both writers.
type rowBuffer struct {
	meta    Meta
	rows    [][]float64
	pending int
}

func newRowBuffer(meta Meta) rowBuffer {
	return rowBuffer{meta: meta, rows: make([][]float64, meta.Rows), pending: meta.Rows}
}

// put stores a copy of vals as row r.
func (b *rowBuffer) put(r int, vals []float64) error {
	if err := b.meta.checkRow(r, len(vals)); err != nil {
		return err
	}
	if b.rows[r] == nil {
		b.pending--
	}
	b.rows[r] = append(b.rows[r][:0], vals...)
	return nil
}

// complete fails with ErrIncomplete while rows are missing.
func (b *rowBuffer) complete() error {
	if b.pending > 0 {
		return fmt.Errorf("%w: %d of %d rows not written", ErrIncomplete, b.pending, b.meta.Rows)
	}
	return nil
}
