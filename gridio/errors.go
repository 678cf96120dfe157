// SPDX-License-Identifier: MIT

package gridio

import "errors"

// Sentinel errors returned by Open, Create and the format codecs.
var (
	// ErrUnsupportedFormat is returned for an unknown file extension or pixel type.
	ErrUnsupportedFormat = errors.New("gridio: unsupported format")

	// ErrBadHeader is returned for a missing, malformed or inconsistent header.
	ErrBadHeader = errors.New("gridio: bad header")

	// ErrRowIndex is returned for a row outside [0, rows).
	ErrRowIndex = errors.New("gridio: row index out of range")

	// ErrRowLength is returned when a row buffer or data line does not hold cols values.
	ErrRowLength = errors.New("gridio: row length mismatch")

	// ErrValueRange is returned when a value cannot be stored in the target pixel type.
	ErrValueRange = errors.New("gridio: value out of range for format")

	// ErrIncomplete is returned when a file ends early or a writer is closed
	// before every row was written.
	ErrIncomplete = errors.New("gridio: incomplete raster")
)
