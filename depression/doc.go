// SPDX-License-Identifier: MIT

// Package depression removes closed depressions ("pits") from an elevation
// raster so that every valid cell drains to an outlet.
//
// Overview:
//
//   - A depression is a connected set of cells from which no non-ascending
//     path reaches an outlet. Outlets are valid border cells and valid cells
//     adjacent to no-data.
//   - RemovePits raises each depression to its crest, the lowest elevation
//     at which water would spill out, and leaves every other cell alone.
//   - The result is the spill-level surface: each cell ends at the larger of
//     its own elevation and the lowest pass on any path to an outlet.
//
// Algorithm:
//
//  1. Every outlet is queued as FloodedDescending with flow direction
//     FloodSource. The queue is a min-heap keyed by (elevation, id).
//  2. Each pop classifies the cell:
//     - pit: not FloodedDescending, no lower valid neighbour and no
//     equal Unflooded neighbour. The depression it bottoms is filled.
//     - Flooded with a FloodedDescending neighbour at or below it:
//     promoted to FloodedDescending, flow re-pointed at that neighbour.
//  3. Unflooded neighbours are queued with a flow direction pointing back
//     at the popped cell. They inherit FloodedDescending only from a
//     FloodedDescending parent that is not higher than them.
//
// Filling a depression:
//
//   - The crest is the highest elevation met while following flow
//     directions from the pit to an outlet, or to a FloodedDescending
//     cell lower than the pit.
//   - The extent is grown from the pit over an explicit stack: a neighbour
//     joins when its elevation lies between the current cell's and the
//     crest. Members below the crest are raised to it exactly.
//   - The pit is then marked FloodedDescending and flooding resumes.
//
// Each valid cell is queued exactly once; cells raised by a fill keep the
// queue key they were pushed with.
//
// Options:
//
//   - WithContext: cancellation, checked once per pop.
//   - WithInPlace: fill the input grid instead of a copy.
//   - WithOnPit: callback after each fill with pit id, crest and raised count.
//
// Error handling (sentinel errors):
//
//   - ErrNilGrid: the grid is nil.
//   - ErrNonFinite: a valid cell holds NaN or ±Inf.
//   - ErrBrokenFlowPath: a crest walk failed to terminate; signals a bug.
//
// Complexity:
//
//   - Time:  O(N log N) for the flood plus the extent walks.
//   - Space: O(N).
//
// Example:
//
//	res, err := depression.RemovePits(dem, depression.WithContext(ctx))
//	if err != nil {
//	    return err
//	}
//	fmt.Println(res.Pits, res.CellsRaised, res.MaxRaise)
package depression
