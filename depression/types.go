// SPDX-License-Identifier: MIT

package depression

import (
	"context"
	"errors"
	"fmt"

	"github.com/katalvlaran/lvgrid/raster"
	"github.com/katalvlaran/lvgrid/topology"
)

// Sentinel errors returned by RemovePits.
var (
	// ErrNilGrid indicates a nil grid.
	ErrNilGrid = errors.New("depression: grid is nil")

	// ErrNonFinite indicates a valid (non-no-data) cell holding NaN or ±Inf.
	ErrNonFinite = errors.New("depression: grid contains a non-finite elevation")

	// ErrBrokenFlowPath indicates a flow-direction walk that did not reach an
	// outlet. It signals an internal invariant violation.
	ErrBrokenFlowPath = errors.New("depression: flow path does not reach an outlet")
)

// FloodState is the per-cell flood marker. Transitions only move forward:
// Unflooded → Flooded → FloodedDescending, or Unflooded → FloodedDescending.
type FloodState uint8

const (
	// Unflooded cells have not been reached by the flood yet.
	Unflooded FloodState = iota
	// Flooded cells are queued or processed but lack a confirmed outlet path.
	Flooded
	// FloodedDescending cells have a confirmed non-ascending path to an outlet.
	FloodedDescending
)

// String implements fmt.Stringer.
func (s FloodState) String() string {
	switch s {
	case Unflooded:
		return "Unflooded"
	case Flooded:
		return "Flooded"
	case FloodedDescending:
		return "FloodedDescending"
	default:
		return fmt.Sprintf("FloodState(%d)", uint8(s))
	}
}

// FlowDirection points from a cell towards the neighbour that flooded it.
// Values 0..7 are topology.Direction; FloodSource and NoFlow are sentinels.
type FlowDirection int8

const (
	// NoFlow marks a cell that has not been flooded.
	NoFlow FlowDirection = -1
	// FloodSource marks an outlet: a border cell or a cell next to no-data.
	FloodSource FlowDirection = -2
)

// Direction returns the neighbour direction and true, or false for the
// sentinels.
func (f FlowDirection) Direction() (topology.Direction, bool) {
	if f < 0 {
		return 0, false
	}
	return topology.Direction(f), true
}

// Options configures RemovePits.
type Options struct {
	// Ctx allows cancellation; checked once per priority-queue pop.
	Ctx context.Context

	// InPlace fills the input grid instead of a copy.
	InPlace bool

	// OnPit is called after each depression removal with the pit id, the
	// crest elevation and the number of cells raised.
	OnPit func(id int, crest float64, raised int)
}

// Option configures RemovePits via functional arguments.
type Option func(*Options)

// DefaultOptions returns background context, copy semantics and a no-op
// OnPit hook.
func DefaultOptions() Options {
	return Options{
		Ctx:   context.Background(),
		OnPit: func(int, float64, int) {},
	}
}

// WithContext sets a context for cancellation.
func WithContext(ctx context.Context) Option {
	return func(o *Options) {
		if ctx != nil {
			o.Ctx = ctx
		}
	}
}

// WithInPlace mutates the input grid.
func WithInPlace() Option {
	return func(o *Options) {
		o.InPlace = true
	}
}

// WithOnPit registers a per-depression callback.
func WithOnPit(fn func(id int, crest float64, raised int)) Option {
	return func(o *Options) {
		if fn != nil {
			o.OnPit = fn
		}
	}
}

// Result summarises one RemovePits call.
//
// Grid is the filled grid (the input itself with WithInPlace). Outlets is
// the number of seed cells, Pits the number of depressions removed,
// CellsRaised the number of cells whose value changed and MaxRaise the
// largest single increase.
type Result struct {
	Grid        *raster.Grid
	Outlets     int
	Pits        int
	CellsRaised int
	MaxRaise    float64
}
