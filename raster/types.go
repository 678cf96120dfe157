// SPDX-License-Identifier: MIT

package raster

import "math"

// Geometry places a grid in its native coordinate system.
// OriginX/OriginY locate the upper-left corner of cell (0,0);
// CellWidth/CellHeight are the cell extents in linear units.
// No projection is implied or performed.
type Geometry struct {
	OriginX, OriginY      float64
	CellWidth, CellHeight float64
}

// DefaultGeometry returns unit cells anchored at (0,0).
func DefaultGeometry() Geometry {
	return Geometry{CellWidth: 1, CellHeight: 1}
}

// CellArea returns |CellWidth|·|CellHeight|.
func (g Geometry) CellArea() float64 {
	return math.Abs(g.CellWidth) * math.Abs(g.CellHeight)
}

// Option configures a Grid during construction.
type Option func(*Grid)

// WithGeometry sets the grid geometry.
func WithGeometry(geom Geometry) Option {
	return func(g *Grid) {
		g.geom = geom
	}
}

// Grid is a rows×cols raster of float64 cells stored in row-major order.
// A Grid is not safe for concurrent mutation; algorithms take exclusive
// ownership of it for the duration of one call.
type Grid struct {
	rows, cols int
	cells      []float64
	noData     float64
	geom       Geometry
}
