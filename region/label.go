// SPDX-License-Identifier: MIT

package region

import (
	"math"

	"github.com/katalvlaran/lvgrid/raster"
	"github.com/katalvlaran/lvgrid/topology"
)

// labeler encapsulates the mutable state of one Label call.
type labeler struct {
	grid    *raster.Grid
	topo    *topology.Topology
	opts    Options
	cells   []float64
	visited []bool
	queue   []int
	res     *Result
}

// Label assigns a feature id to every maximal 8-connected set of valid
// cells of g and counts the cells of each feature.
//
// Cells are scanned in index order; each unvisited valid cell opens a new
// feature, filled breadth-first from an explicit FIFO queue. A cell is
// marked visited when it is enqueued, so it enters the queue exactly once
// and never receives two labels. With WithValueDelimited, a neighbour joins
// the feature only if its value equals the dequeued cell's value within
// Options.Tolerance.
//
// Returns ErrNilGrid, ErrOptionViolation, or the context error on
// cancellation. A grid without valid cells yields an empty Result.
//
// Time: O(rows·cols·8). Memory: O(rows·cols).
func Label(g *raster.Grid, opts ...Option) (*Result, error) {
	if g == nil {
		return nil, ErrNilGrid
	}
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.err != nil {
		return nil, o.err
	}

	n := g.Len()
	l := &labeler{
		grid:    g,
		topo:    topology.ForGrid(g),
		opts:    o,
		cells:   g.Cells(),
		visited: make([]bool, n),
		queue:   make([]int, 0, 64),
		res: &Result{
			Labels: make([]int32, n),
			Areas:  make(map[int32]uint64),
		},
	}
	if err := l.run(); err != nil {
		return nil, err
	}

	return l.res, nil
}

// run drives the outer index-order scan.
func (l *labeler) run() error {
	var next int32 = 1
	for id := range l.cells {
		if l.visited[id] || l.grid.IsNoData(l.cells[id]) {
			continue
		}
		area, err := l.fill(id, next)
		if err != nil {
			return err
		}
		l.res.Areas[next] = area
		l.res.Count++
		l.opts.OnFeature(next, area)
		next++
	}
	return nil
}

// fill floods one feature from seed and returns its cell count.
func (l *labeler) fill(seed int, feature int32) (uint64, error) {
	var area uint64
	l.queue = append(l.queue[:0], seed)
	l.visited[seed] = true

	for qi := 0; qi < len(l.queue); qi++ {
		select {
		case <-l.opts.Ctx.Done():
			return 0, l.opts.Ctx.Err()
		default:
		}

		u := l.queue[qi]
		l.res.Labels[u] = feature
		area++

		for _, d := range topology.Directions {
			v, ok := l.topo.Neighbor(u, d)
			if !ok || l.visited[v] || !l.connects(u, v) {
				continue
			}
			l.visited[v] = true
			l.queue = append(l.queue, v)
		}
	}
	return area, nil
}

// connects reports whether neighbour v joins the feature of u.
func (l *labeler) connects(u, v int) bool {
	if l.grid.IsNoData(l.cells[v]) {
		return false
	}
	if !l.opts.ValueDelimited {
		return true
	}
	return math.Abs(l.cells[u]-l.cells[v]) <= l.opts.Tolerance
}
