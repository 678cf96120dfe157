// SPDX-License-Identifier: MIT

package depression

import (
	"fmt"
	"math"

	"github.com/katalvlaran/lvgrid/raster"
	"github.com/katalvlaran/lvgrid/topology"
)

// RemovePits raises every closed depression of g to its crest elevation so
// that each valid cell drains to an outlet along a non-ascending path.
//
// Outlets are valid border cells and valid cells with a no-data neighbour.
// They seed a min-priority queue ordered by (elevation, id). Popping a cell
// either removes the depression it bottoms (a pit), promotes it to
// FloodedDescending, or leaves it Flooded; its Unflooded neighbours are then
// queued with flow directions pointing back at it.
//
// Preconditions and validation:
//  1. g must be non-nil (ErrNilGrid).
//  2. every valid cell must be finite (ErrNonFinite).
//
// The output never lowers a cell and never changes an outlet. A grid made
// entirely of no-data has no outlets and is returned unchanged.
//
// Complexity:
//
//   - Time:  O(N log N) for the flood, plus the extent walks of each pit.
//   - Space: O(N) for flood state, flow directions and the queue.
func RemovePits(g *raster.Grid, opts ...Option) (*Result, error) {
	if g == nil {
		return nil, ErrNilGrid
	}
	cfg := DefaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}

	for id, v := range g.Cells() {
		if !g.IsNoData(v) && (math.IsNaN(v) || math.IsInf(v, 0)) {
			return nil, fmt.Errorf("%w: id=%d value=%v", ErrNonFinite, id, v)
		}
	}

	out := g
	if !cfg.InPlace {
		out = g.Clone()
	}
	orig := make([]float64, g.Len())
	copy(orig, g.Cells())

	f := &filler{
		grid:    out,
		topo:    topology.ForGrid(out),
		cells:   out.Cells(),
		options: cfg,
		st:      newFillState(out.Len()),
		res:     &Result{Grid: out},
	}
	f.init()
	if err := f.process(); err != nil {
		return nil, err
	}
	f.summarise(orig)

	return f.res, nil
}

// filler holds the mutable state for a single RemovePits execution.
type filler struct {
	grid    *raster.Grid
	topo    *topology.Topology
	cells   []float64
	options Options
	st      *FillState
	res     *Result
}

// valid reports whether id holds data.
func (f *filler) valid(id int) bool {
	return !f.grid.IsNoData(f.cells[id])
}

// isOutlet reports whether a valid cell lies on the border or next to no-data.
func (f *filler) isOutlet(id int) bool {
	if f.topo.IsEdge(id) {
		return true
	}
	for _, d := range topology.Directions {
		if n, ok := f.topo.Neighbor(id, d); ok && !f.valid(n) {
			return true
		}
	}
	return false
}

// init queues every outlet as FloodedDescending with FloodSource.
func (f *filler) init() {
	for id := range f.cells {
		if !f.valid(id) || !f.isOutlet(id) {
			continue
		}
		f.st.Flood[id] = FloodedDescending
		f.st.Flow[id] = FloodSource
		f.st.push(id, f.cells[id])
		f.res.Outlets++
	}
}

// process drains the priority queue.
func (f *filler) process() error {
	ctx := f.options.Ctx
	for f.st.queue.Len() > 0 {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		c := f.st.pop().id
		if f.isPit(c) {
			if err := f.removeDepression(c); err != nil {
				return err
			}
		} else if f.st.Flood[c] == Flooded {
			f.promote(c)
		}
		f.spread(c)
	}
	return nil
}

// isPit reports whether c is a local minimum without a confirmed outlet
// path: not FloodedDescending, no strictly lower valid neighbour and no
// equal-elevation neighbour that is still Unflooded. Equal neighbours that
// are already flooded do not disqualify c, so a flat floor ends at its
// last-flooded cell.
func (f *filler) isPit(c int) bool {
	if f.st.Flood[c] == FloodedDescending {
		return false
	}
	z := f.cells[c]
	for _, d := range topology.Directions {
		n, ok := f.topo.Neighbor(c, d)
		if !ok || !f.valid(n) {
			continue
		}
		zn := f.cells[n]
		if zn < z || (zn == z && f.st.Flood[n] == Unflooded) {
			return false
		}
	}
	return true
}

// promote marks a Flooded cell FloodedDescending when a neighbour that is
// already descending lies at or below it, and re-points its flow direction
// at that neighbour so descending flow paths never climb.
func (f *filler) promote(c int) {
	z := f.cells[c]
	for _, d := range topology.Directions {
		n, ok := f.topo.Neighbor(c, d)
		if !ok || !f.valid(n) {
			continue
		}
		if f.st.Flood[n] == FloodedDescending && f.cells[n] <= z {
			f.st.Flood[c] = FloodedDescending
			f.st.Flow[c] = FlowDirection(d)
			return
		}
	}
}

// spread queues the Unflooded neighbours of c.
func (f *filler) spread(c int) {
	z := f.cells[c]
	descending := f.st.Flood[c] == FloodedDescending
	for _, d := range topology.Directions {
		n, ok := f.topo.Neighbor(c, d)
		if !ok || !f.valid(n) || f.st.Flood[n] != Unflooded {
			continue
		}
		zn := f.cells[n]
		f.st.Flow[n] = FlowDirection(d.Opposite())
		if descending && zn >= z {
			f.st.Flood[n] = FloodedDescending
		} else {
			f.st.Flood[n] = Flooded
		}
		f.st.push(n, zn)
	}
}

// crest walks flow directions from pit p until an outlet, or a
// FloodedDescending cell lower than p, and returns the highest elevation
// seen on the way (p's own included).
func (f *filler) crest(p int) (float64, error) {
	zp := f.cells[p]
	top := zp
	cur := p
	for steps := 0; ; steps++ {
		if steps > len(f.cells) {
			return 0, fmt.Errorf("%w: cycle from pit %d", ErrBrokenFlowPath, p)
		}
		fd := f.st.Flow[cur]
		if fd == FloodSource {
			return top, nil
		}
		d, ok := fd.Direction()
		if !ok {
			return 0, fmt.Errorf("%w: cell %d on path from pit %d has no flow direction", ErrBrokenFlowPath, cur, p)
		}
		next, ok := f.topo.Neighbor(cur, d)
		if !ok {
			return 0, fmt.Errorf("%w: cell %d flows off-grid (%s)", ErrBrokenFlowPath, cur, d)
		}
		cur = next
		z := f.cells[cur]
		if z > top {
			top = z
		}
		if f.st.Flood[cur] == FloodedDescending && z < zp {
			return top, nil
		}
	}
}

// removeDepression fills the depression bottomed by pit p to its crest.
//
// The extent is a bounded flood from p over an explicit stack: a neighbour
// is entered when it is unvisited and its elevation lies between the
// current cell's and the crest. Cells already at the crest are entered but
// not expanded, since from there only other crest-level cells qualify.
// Every entered cell below the crest is raised to exactly the crest. A pit
// that is already at its crest (a plateau cell, or a cell raised by an
// earlier fill and popped at its old key) raises nothing and is not counted.
func (f *filler) removeDepression(p int) error {
	top, err := f.crest(p)
	if err != nil {
		return err
	}

	raised := 0
	st := f.st
	st.stack = append(st.stack[:0], p)
	st.visited[p] = true
	st.touched = append(st.touched, p)

	for len(st.stack) > 0 {
		u := st.stack[len(st.stack)-1]
		st.stack = st.stack[:len(st.stack)-1]
		zu := f.cells[u]
		if zu >= top {
			continue
		}
		for _, d := range topology.Directions {
			n, ok := f.topo.Neighbor(u, d)
			if !ok || st.visited[n] || !f.valid(n) {
				continue
			}
			if zn := f.cells[n]; zn >= zu && zn <= top {
				st.visited[n] = true
				st.touched = append(st.touched, n)
				st.stack = append(st.stack, n)
			}
		}
		f.cells[u] = top
		raised++
	}
	st.resetVisited()

	st.Flood[p] = FloodedDescending
	if raised > 0 {
		f.res.Pits++
		f.options.OnPit(p, top, raised)
	}
	return nil
}

// summarise fills the change statistics of the result.
func (f *filler) summarise(orig []float64) {
	for i, z := range f.cells {
		if diff := z - orig[i]; diff > 0 {
			f.res.CellsRaised++
			if diff > f.res.MaxRaise {
				f.res.MaxRaise = diff
			}
		}
	}
}
