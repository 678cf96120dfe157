// SPDX-License-Identifier: MIT

// Package region labels connected regions ("features") of a raster and
// filters them by area.
//
// A feature is a maximal set of valid (non-no-data) cells connected under
// 8-connectivity. In value-delimited mode cells must also share a value
// (within a tolerance) to be connected, which splits a classified raster
// into its homogeneous patches.
//
// Labelling:
//
//	res, err := region.Label(g, region.WithValueDelimited())
//	// res.Labels[id]: 1-based feature id, or region.Unlabeled
//	// res.Areas[fid]: cell count of feature fid
//
// Area threshold:
//
//	filtered, removed, err := region.ApplyAreaThreshold(g, res, 2500, region.DropBelow)
//
// The threshold is an area in the grid's squared linear units. Each
// feature's area is cells·|cellWidth|·|cellHeight|. DropBelow removes
// features with area strictly below the threshold; DropAbove removes those
// strictly above. The policy is always explicit.
//
// Complexity: Label is O(rows·cols·8) time and O(rows·cols) memory;
// ApplyAreaThreshold is O(rows·cols).
package region
