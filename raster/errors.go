// SPDX-License-Identifier: MIT

package raster

import "errors"

var (
	// ErrEmptyGrid indicates a grid with no rows or no columns.
	ErrEmptyGrid = errors.New("raster: grid must have at least one row and one column")
	// ErrNonRectangular indicates input rows of differing lengths.
	ErrNonRectangular = errors.New("raster: all rows must have the same length")
	// ErrLengthMismatch indicates a cell slice whose length is not rows*cols.
	ErrLengthMismatch = errors.New("raster: cell count does not match grid shape")
	// ErrIndexOutOfRange indicates a cell id, row or column outside the grid.
	ErrIndexOutOfRange = errors.New("raster: index out of range")
)
