// SPDX-License-Identifier: MIT

package topology

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/lvgrid/raster"
)

// None marks an off-grid neighbour in Neighbors results.
const None = -1

// Sentinel errors for topology queries.
var (
	// ErrEmptyShape indicates a non-positive row or column count.
	ErrEmptyShape = errors.New("topology: grid must have at least one row and one column")
	// ErrIndexOutOfRange indicates a cell id outside the grid.
	ErrIndexOutOfRange = errors.New("topology: cell index out of range")
	// ErrInvalidDirection indicates a direction outside NW..W.
	ErrInvalidDirection = errors.New("topology: undefined direction")
	// ErrOffGrid indicates a step that leaves the grid.
	ErrOffGrid = errors.New("topology: neighbour is off-grid")
)

// Topology is the neighbour structure of a rows×cols grid. It is immutable
// and safe for concurrent use.
type Topology struct {
	rows, cols, total int
	offsets           [NumDirections]int
}

// New builds the topology of a rows×cols grid.
func New(rows, cols int) (*Topology, error) {
	if rows <= 0 || cols <= 0 {
		return nil, fmt.Errorf("%w: %d×%d", ErrEmptyShape, rows, cols)
	}
	return &Topology{
		rows:  rows,
		cols:  cols,
		total: rows * cols,
		offsets: [NumDirections]int{
			NW: -cols - 1,
			N:  -cols,
			NE: -cols + 1,
			E:  1,
			SE: cols + 1,
			S:  cols,
			SW: cols - 1,
			W:  -1,
		},
	}, nil
}

// ForGrid returns the topology of g. A constructed raster.Grid always has a
// positive shape, so this cannot fail.
func ForGrid(g *raster.Grid) *Topology {
	t, _ := New(g.Rows(), g.Cols())
	return t
}

// Rows returns the row count.
func (t *Topology) Rows() int { return t.rows }

// Cols returns the column count.
func (t *Topology) Cols() int { return t.cols }

// Len returns rows*cols.
func (t *Topology) Len() int { return t.total }

// Contains reports whether id addresses a cell.
func (t *Topology) Contains(id int) bool { return id >= 0 && id < t.total }

// IsTop reports whether id lies on the first row.
func (t *Topology) IsTop(id int) bool { return id < t.cols }

// IsBottom reports whether id lies on the last row.
func (t *Topology) IsBottom(id int) bool { return t.total-id <= t.cols }

// IsLeft reports whether id lies on the first column.
func (t *Topology) IsLeft(id int) bool { return id%t.cols == 0 }

// IsRight reports whether id lies on the last column.
func (t *Topology) IsRight(id int) bool { return (id+1)%t.cols == 0 }

// IsEdge reports whether id lies on any border of the grid.
func (t *Topology) IsEdge(id int) bool {
	return t.IsTop(id) || t.IsBottom(id) || t.IsLeft(id) || t.IsRight(id)
}

// IsValidDirection reports whether stepping from id towards d stays on the
// grid. Out-of-range ids and undefined directions are never valid.
func (t *Topology) IsValidDirection(id int, d Direction) bool {
	if !t.Contains(id) || !d.Valid() {
		return false
	}
	switch d {
	case NW:
		return !t.IsTop(id) && !t.IsLeft(id)
	case N:
		return !t.IsTop(id)
	case NE:
		return !t.IsTop(id) && !t.IsRight(id)
	case E:
		return !t.IsRight(id)
	case SE:
		return !t.IsBottom(id) && !t.IsRight(id)
	case S:
		return !t.IsBottom(id)
	case SW:
		return !t.IsBottom(id) && !t.IsLeft(id)
	default: // W
		return !t.IsLeft(id)
	}
}

// Neighbor returns the id reached from id in direction d.
// It returns (None, false) when the step is invalid.
func (t *Topology) Neighbor(id int, d Direction) (int, bool) {
	if !t.IsValidDirection(id, d) {
		return None, false
	}
	return id + t.offsets[d], true
}

// NeighborChecked is Neighbor with a descriptive error for each failure.
func (t *Topology) NeighborChecked(id int, d Direction) (int, error) {
	if !t.Contains(id) {
		return None, fmt.Errorf("%w: id=%d, len=%d", ErrIndexOutOfRange, id, t.total)
	}
	if !d.Valid() {
		return None, fmt.Errorf("%w: %d", ErrInvalidDirection, uint8(d))
	}
	n, ok := t.Neighbor(id, d)
	if !ok {
		return None, fmt.Errorf("%w: id=%d direction=%s in %d×%d grid", ErrOffGrid, id, d, t.rows, t.cols)
	}
	return n, nil
}

// Neighbors returns the eight neighbour ids of id in direction order,
// with None for off-grid directions.
func (t *Topology) Neighbors(id int) [NumDirections]int {
	var out [NumDirections]int
	for _, d := range Directions {
		out[d], _ = t.Neighbor(id, d)
	}
	return out
}

// ValidDirections lists the directions that stay on the grid from id.
func (t *Topology) ValidDirections(id int) []Direction {
	out := make([]Direction, 0, NumDirections)
	for _, d := range Directions {
		if t.IsValidDirection(id, d) {
			out = append(out, d)
		}
	}
	return out
}
