// SPDX-License-Identifier: MIT

package raster

import (
	"fmt"
	"math"
)

// New allocates a zero-filled rows×cols grid.
// Returns ErrEmptyGrid if either dimension is not positive.
func New(rows, cols int, noData float64, opts ...Option) (*Grid, error) {
	if rows <= 0 || cols <= 0 {
		return nil, fmt.Errorf("%w: %d×%d", ErrEmptyGrid, rows, cols)
	}
	g := &Grid{
		rows:   rows,
		cols:   cols,
		cells:  make([]float64, rows*cols),
		noData: noData,
		geom:   DefaultGeometry(),
	}
	for _, opt := range opts {
		opt(g)
	}

	return g, nil
}

// FromSlice builds a grid from a row-major cell slice. The slice is copied.
// Returns ErrEmptyGrid for non-positive dimensions and ErrLengthMismatch
// if len(cells) != rows*cols.
func FromSlice(rows, cols int, cells []float64, noData float64, opts ...Option) (*Grid, error) {
	g, err := New(rows, cols, noData, opts...)
	if err != nil {
		return nil, err
	}
	if len(cells) != rows*cols {
		return nil, fmt.Errorf("%w: got %d cells, want %d", ErrLengthMismatch, len(cells), rows*cols)
	}
	copy(g.cells, cells)

	return g, nil
}

// From2D builds a grid from a rectangular [row][col] slice, deep-copying it.
// Returns ErrEmptyGrid if values has no rows or no columns,
// ErrNonRectangular if any row length differs.
func From2D(values [][]float64, noData float64, opts ...Option) (*Grid, error) {
	if len(values) == 0 || len(values[0]) == 0 {
		return nil, ErrEmptyGrid
	}
	rows, cols := len(values), len(values[0])
	for _, row := range values {
		if len(row) != cols {
			return nil, ErrNonRectangular
		}
	}
	g, err := New(rows, cols, noData, opts...)
	if err != nil {
		return nil, err
	}
	for r, row := range values {
		copy(g.cells[r*cols:(r+1)*cols], row)
	}

	return g, nil
}

// Rows returns the number of rows.
func (g *Grid) Rows() int { return g.rows }

// Cols returns the number of columns.
func (g *Grid) Cols() int { return g.cols }

// Len returns rows*cols.
func (g *Grid) Len() int { return len(g.cells) }

// NoData returns the no-data sentinel.
func (g *Grid) NoData() float64 { return g.noData }

// Geometry returns the grid geometry.
func (g *Grid) Geometry() Geometry { return g.geom }

// CellArea returns the area of one cell in squared linear units.
func (g *Grid) CellArea() float64 { return g.geom.CellArea() }

// Cells exposes the backing slice. Writes through it bypass bounds checks.
func (g *Grid) Cells() []float64 { return g.cells }

// IsNoData reports whether v equals the no-data sentinel.
// A NaN sentinel matches every NaN value.
func (g *Grid) IsNoData(v float64) bool {
	if math.IsNaN(g.noData) {
		return math.IsNaN(v)
	}
	return v == g.noData
}

// Contains reports whether id addresses a cell of g.
func (g *Grid) Contains(id int) bool {
	return id >= 0 && id < len(g.cells)
}

// Index maps (row, col) to a linear id.
func (g *Grid) Index(row, col int) (int, error) {
	if row < 0 || row >= g.rows || col < 0 || col >= g.cols {
		return 0, fmt.Errorf("%w: (row=%d, col=%d) in %d×%d grid", ErrIndexOutOfRange, row, col, g.rows, g.cols)
	}
	return row*g.cols + col, nil
}

// RowCol converts a linear id back to (row, col). id is not validated.
func (g *Grid) RowCol(id int) (row, col int) {
	return id / g.cols, id % g.cols
}

// At returns the value of cell id.
func (g *Grid) At(id int) (float64, error) {
	if !g.Contains(id) {
		return 0, fmt.Errorf("%w: id=%d, len=%d", ErrIndexOutOfRange, id, len(g.cells))
	}
	return g.cells[id], nil
}

// Set stores v in cell id.
func (g *Grid) Set(id int, v float64) error {
	if !g.Contains(id) {
		return fmt.Errorf("%w: id=%d, len=%d", ErrIndexOutOfRange, id, len(g.cells))
	}
	g.cells[id] = v
	return nil
}

// IsValid reports whether cell id exists and holds data.
func (g *Grid) IsValid(id int) bool {
	return g.Contains(id) && !g.IsNoData(g.cells[id])
}

// Row returns a copy of row r.
func (g *Grid) Row(r int) ([]float64, error) {
	if r < 0 || r >= g.rows {
		return nil, fmt.Errorf("%w: row=%d, rows=%d", ErrIndexOutOfRange, r, g.rows)
	}
	out := make([]float64, g.cols)
	copy(out, g.cells[r*g.cols:(r+1)*g.cols])
	return out, nil
}

// SetRow overwrites row r with vals.
func (g *Grid) SetRow(r int, vals []float64) error {
	if r < 0 || r >= g.rows {
		return fmt.Errorf("%w: row=%d, rows=%d", ErrIndexOutOfRange, r, g.rows)
	}
	if len(vals) != g.cols {
		return fmt.Errorf("%w: row of %d values, want %d", ErrLengthMismatch, len(vals), g.cols)
	}
	copy(g.cells[r*g.cols:(r+1)*g.cols], vals)
	return nil
}

// ValidCount returns the number of cells that are not no-data.
func (g *Grid) ValidCount() int {
	n := 0
	for _, v := range g.cells {
		if !g.IsNoData(v) {
			n++
		}
	}
	return n
}

// SameShape reports whether other has the same rows and cols as g.
func (g *Grid) SameShape(other *Grid) bool {
	return other != nil && g.rows == other.rows && g.cols == other.cols
}

// Clone returns a deep copy of g.
func (g *Grid) Clone() *Grid {
	c := *g
	c.cells = make([]float64, len(g.cells))
	copy(c.cells, g.cells)
	return &c
}

// Filled returns a grid with g's shape, no-data and geometry whose cells
// are all set to v.
func (g *Grid) Filled(v float64) *Grid {
	c := *g
	c.cells = make([]float64, len(g.cells))
	for i := range c.cells {
		c.cells[i] = v
	}
	return &c
}
