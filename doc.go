// SPDX-License-Identifier: MIT

// Package lvgrid is a toolkit for hydrological conditioning and region
// analysis of raster grids: elevation models, classified maps and masks.
//
// Under the hood, everything is organized in small packages:
//
//	raster/       Grid: flat row-major float64 cells, no-data sentinel, geometry
//	topology/     8-neighbour directions, edge predicates, checked lookup
//	region/       connected-feature labelling and area thresholds
//	depression/   priority-flood removal of closed depressions
//	gridio/       ESRI ASCII and grayscale TIFF readers/writers
//	cmd/lvgrid    command line and HCL batch runner
//
// Quick start:
//
//	dem, _ := gridio.Load("dem.asc")
//	res, _ := depression.RemovePits(dem)
//	_ = gridio.Save("dem_filled.asc", res.Grid)
//
//	mask, _ := gridio.Load("lakes.asc")
//	labels, _ := region.Label(mask)
//	big, removed, _ := region.ApplyAreaThreshold(mask, labels, 2500, region.DropBelow)
//
// Every algorithm is single-threaded per call and takes a context through
// WithContext; independent grids can be processed concurrently.
package lvgrid
