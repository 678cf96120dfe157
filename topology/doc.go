// SPDX-License-Identifier: MIT

// Package topology answers 8-connected neighbour queries over a row-major
// grid addressed by linear cell id.
//
// What:
//
//   - Direction enumerates the eight compass steps clockwise from
//     north-west: NW, N, NE, E, SE, S, SW, W (indices 0..7).
//   - Topology derives, from (rows, cols) alone, the neighbour id of a cell
//     in a direction, the edge membership of a cell, and which directions
//     stay on the grid.
//
// Edge predicates:
//
//	IsTop(id)    = id < cols
//	IsBottom(id) = total-id <= cols
//	IsLeft(id)   = id % cols == 0
//	IsRight(id)  = (id+1) % cols == 0
//
// A direction is invalid for a cell when it would cross one of those edges.
// Invalid steps report None (-1) and false; they never wrap to the opposite
// side of the grid or produce a negative index.
//
//	NW N NE
//	 W · E
//	SW S SE
//
// Complexity: every query is O(1) and allocation-free except
// ValidDirections.
//
// Errors (NeighborChecked):
//
//   - ErrIndexOutOfRange:  id outside [0, rows*cols).
//   - ErrInvalidDirection: direction outside NW..W.
//   - ErrOffGrid:          the step leaves the grid.
package topology
