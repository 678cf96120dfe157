// SPDX-License-Identifier: MIT

// Package raster holds the in-memory grid model shared by every lvgrid
// algorithm.
//
// What:
//
//   - Grid stores rows×cols float64 cells in a flat, row-major slice.
//   - A no-data sentinel marks cells that carry no value (NaN is supported).
//   - Geometry records the upper-left origin and the cell size, so callers
//     can convert cell counts to areas in the grid's linear units.
//
// Indexing:
//
//	id = row*cols + col,   0 <= id < rows*cols
//
// All spatial algorithms address cells by linear id. Checked accessors
// (At, Set, Row, SetRow, Index) fail with ErrIndexOutOfRange instead of
// clamping or wrapping; Cells exposes the backing slice for hot loops that
// already validated their indices through package topology.
//
// Errors:
//
//   - ErrEmptyGrid:       zero or negative dimensions, or no rows/columns.
//   - ErrNonRectangular:  From2D rows of differing lengths.
//   - ErrLengthMismatch:  FromSlice/SetRow length does not match the shape.
//   - ErrIndexOutOfRange: id, row or column outside the grid.
package raster
