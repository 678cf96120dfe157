// SPDX-License-Identifier: MIT

// Package gridio reads and writes rasters row by row.
//
// The codec is chosen by file extension:
//
//   - .asc: ESRI ASCII grid. Header keys are case-insensitive: ncols, nrows,
//     xllcorner or xllcenter, yllcorner or yllcenter, cellsize or dx and dy,
//     and an optional NODATA_value (default -9999). The lower-left anchor is
//     converted to the upper-left origin used by raster.Geometry.
//   - .tif, .tiff: single-band grayscale TIFF via golang.org/x/image/tiff.
//     8-bit files use 255 as no-data, 16-bit files 65535. Geometry is not
//     stored; files read back with unit cells. Writing rounds values and
//     fails with ErrValueRange when a rounded value does not fit.
//
// Whole-grid helpers:
//
//	g, err := gridio.Load("dem.asc")
//	...
//	err = gridio.Save("filled.asc", g)
//
// Writers buffer rows and produce the file on Close, which fails with
// ErrIncomplete if any row is missing.
package gridio
