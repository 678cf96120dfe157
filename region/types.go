// SPDX-License-Identifier: MIT

// Package region defines options, results and sentinel errors for
// connected-component labelling of raster grids.
package region

import (
	"context"
	"errors"
	"fmt"
	"sort"
)

// Sentinel errors for region operations.
var (
	// ErrNilGrid is returned when a nil grid is passed.
	ErrNilGrid = errors.New("region: grid is nil")
	// ErrNilResult is returned when a nil labelling result is passed.
	ErrNilResult = errors.New("region: result is nil")
	// ErrLabelLength indicates a label vector whose length differs from the grid.
	ErrLabelLength = errors.New("region: label count does not match grid size")
	// ErrOptionViolation indicates an invalid Option.
	ErrOptionViolation = errors.New("region: invalid option supplied")
	// ErrBadThreshold indicates a negative or NaN area threshold.
	ErrBadThreshold = errors.New("region: area threshold must be a non-negative number")
	// ErrBadCellArea indicates a grid whose geometry yields a zero cell area.
	ErrBadCellArea = errors.New("region: cell area must be positive")
	// ErrUnknownPolicy indicates an undefined threshold policy.
	ErrUnknownPolicy = errors.New("region: unknown threshold policy")
)

// Unlabeled is the label of no-data cells.
const Unlabeled int32 = 0

// DefaultTolerance is the absolute tolerance used to compare cell values in
// value-delimited mode.
const DefaultTolerance = 1e-9

// Options configures Label.
type Options struct {
	// Ctx allows cancellation; checked once per dequeued cell.
	Ctx context.Context

	// ValueDelimited also breaks connectivity between cells whose values
	// differ by more than Tolerance.
	ValueDelimited bool

	// Tolerance is the absolute equality tolerance for ValueDelimited.
	Tolerance float64

	// OnFeature is called once per completed feature with its id and
	// cell count.
	OnFeature func(id int32, cells uint64)

	err error
}

// Option configures Label via functional arguments.
type Option func(*Options)

// DefaultOptions returns background context, plain connectivity,
// DefaultTolerance and a no-op OnFeature hook.
func DefaultOptions() Options {
	return Options{
		Ctx:       context.Background(),
		Tolerance: DefaultTolerance,
		OnFeature: func(int32, uint64) {},
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

// WithValueDelimited enables same-value connectivity.
func WithValueDelimited() Option {
	return func(o *Options) {
		o.ValueDelimited = true
	}
}

// WithTolerance sets the value-equality tolerance. Negative values are
// recorded as ErrOptionViolation.
func WithTolerance(tol float64) Option {
	return func(o *Options) {
		if tol < 0 {
			o.err = fmt.Errorf("%w: tolerance cannot be negative (%g)", ErrOptionViolation, tol)
			return
		}
		o.Tolerance = tol
	}
}

// WithOnFeature registers a completion callback.
func WithOnFeature(fn func(id int32, cells uint64)) Option {
	return func(o *Options) {
		if fn != nil {
			o.OnFeature = fn
		}
	}
}

// Result is the output of Label.
//
// Labels holds one entry per grid cell: a 1-based feature id, or Unlabeled
// for no-data cells. Areas maps each feature id to its cell count.
type Result struct {
	Labels []int32
	Areas  map[int32]uint64
	Count  int
}

// Features returns the feature ids in ascending order.
func (r *Result) Features() []int32 {
	ids := make([]int32, 0, len(r.Areas))
	for id := range r.Areas {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// TotalCells returns the sum of all feature areas in cells.
func (r *Result) TotalCells() uint64 {
	var n uint64
	for _, a := range r.Areas {
		n += a
	}
	return n
}

// Policy chooses which side of an area threshold is removed.
type Policy int

const (
	// DropBelow removes features whose area is strictly below the threshold.
	DropBelow Policy = iota
	// DropAbove removes features whose area is strictly above the threshold.
	DropAbove
)

// String implements fmt.Stringer.
func (p Policy) String() string {
	switch p {
	case DropBelow:
		return "drop_below"
	case DropAbove:
		return "drop_above"
	default:
		return fmt.Sprintf("Policy(%d)", int(p))
	}
}

// ParsePolicy maps "drop_below" and "drop_above" to a Policy.
func ParsePolicy(s string) (Policy, error) {
	switch s {
	case "drop_below", "":
		return DropBelow, nil
	case "drop_above":
		return DropAbove, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownPolicy, s)
	}
}

// drops reports whether a feature of the given area is removed.
func (p Policy) drops(area, threshold float64) bool {
	if p == DropAbove {
		return area > threshold
	}
	return area < threshold
}
