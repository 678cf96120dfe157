// SPDX-License-Identifier: MIT

package region

import (
	"fmt"
	"math"

	"github.com/katalvlaran/lvgrid/raster"
)

// Validate checks that r was produced for a grid of g's size.
func (r *Result) Validate(g *raster.Grid) error {
	if g == nil {
		return ErrNilGrid
	}
	if len(r.Labels) != g.Len() {
		return fmt.Errorf("%w: %d labels for %d cells", ErrLabelLength, len(r.Labels), g.Len())
	}
	return nil
}

// ToGrid renders the label map as a grid shaped like template, with feature
// ids as values and the no-data sentinel where a cell is Unlabeled. The
// sentinel is template's, unless that value is itself a feature id in
// [1, Count]; then Unlabeled (0) is used instead.
func (r *Result) ToGrid(template *raster.Grid) (*raster.Grid, error) {
	if err := r.Validate(template); err != nil {
		return nil, err
	}
	nd := template.NoData()
	if r.isFeatureID(nd) {
		nd = float64(Unlabeled)
	}
	out, err := raster.New(template.Rows(), template.Cols(), nd, raster.WithGeometry(template.Geometry()))
	if err != nil {
		return nil, err
	}
	cells := out.Cells()
	for i, id := range r.Labels {
		if id == Unlabeled {
			cells[i] = nd
		} else {
			cells[i] = float64(id)
		}
	}
	return out, nil
}

// isFeatureID reports whether v equals some feature id of r.
func (r *Result) isFeatureID(v float64) bool {
	return v >= 1 && v <= float64(r.Count) && v == math.Trunc(v)
}

// ApplyAreaThreshold removes features by area. The area of a feature is its
// cell count times g.CellArea(), in the grid's squared linear units; policy
// decides whether features strictly below (DropBelow) or strictly above
// (DropAbove) threshold are removed. Removed cells are set to no-data in a
// copy of g; g itself is not modified.
//
// Returns the filtered copy and the number of removed features.
func ApplyAreaThreshold(g *raster.Grid, r *Result, threshold float64, policy Policy) (*raster.Grid, int, error) {
	if g == nil {
		return nil, 0, ErrNilGrid
	}
	if r == nil {
		return nil, 0, ErrNilResult
	}
	if err := r.Validate(g); err != nil {
		return nil, 0, err
	}
	if math.IsNaN(threshold) || threshold < 0 {
		return nil, 0, fmt.Errorf("%w: %g", ErrBadThreshold, threshold)
	}
	if policy != DropBelow && policy != DropAbove {
		return nil, 0, fmt.Errorf("%w: %v", ErrUnknownPolicy, policy)
	}
	cellArea := g.CellArea()
	if cellArea <= 0 {
		return nil, 0, fmt.Errorf("%w: %g", ErrBadCellArea, cellArea)
	}

	dropped := make(map[int32]bool, len(r.Areas))
	for id, cells := range r.Areas {
		if policy.drops(float64(cells)*cellArea, threshold) {
			dropped[id] = true
		}
	}

	out := g.Clone()
	if len(dropped) == 0 {
		return out, 0, nil
	}
	cells := out.Cells()
	nd := g.NoData()
	for i, id := range r.Labels {
		if dropped[id] {
			cells[i] = nd
		}
	}
	return out, len(dropped), nil
}

// RemoveSmall labels g and drops every feature whose area is below
// minArea. It is Label followed by ApplyAreaThreshold with DropBelow.
func RemoveSmall(g *raster.Grid, minArea float64, opts ...Option) (*raster.Grid, int, error) {
	r, err := Label(g, opts...)
	if err != nil {
		return nil, 0, err
	}
	return ApplyAreaThreshold(g, r, minArea, DropBelow)
}
