// SPDX-License-Identifier: MIT

package gridio

import (
	"bufio"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/katalvlaran/lvgrid/raster"
)

// DefaultASCIINoData is the sentinel assumed when NODATA_value is absent.
const DefaultASCIINoData = -9999.0

// asciiReader holds a fully decoded ESRI ASCII grid.
type asciiReader struct {
	meta  Meta
	cells []float64
}

func openASCII(path string) (*asciiReader, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("gridio: open file: %w", err)
	}
	defer func() { _ = f.Close() }()

	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 64*1024*1024)

	hdr := map[string]float64{}
	var first []string
	line := 0
	for sc.Scan() {
		line++
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 {
			continue
		}
		key := strings.ToLower(fields[0])
		if !isHeaderKey(key) {
			first = fields
			break
		}
		if len(fields) != 2 {
			return nil, fmt.Errorf("%w: line %d: %q", ErrBadHeader, line, sc.Text())
		}
		v, err := strconv.ParseFloat(fields[1], 64)
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %s: %v", ErrBadHeader, line, key, err)
		}
		hdr[key] = v
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("gridio: read %s: %w", path, err)
	}

	meta, err := asciiMeta(hdr)
	if err != nil {
		return nil, err
	}
	// The header is not trusted for allocation; cells grow with the data read.
	rd := &asciiReader{meta: meta, cells: make([]float64, 0, min(meta.Rows*meta.Cols, 1<<16))}

	row := 0
	parse := func(fields []string) error {
		if row >= meta.Rows {
			return fmt.Errorf("%w: line %d: extra data after %d rows", ErrRowIndex, line, meta.Rows)
		}
		if len(fields) != meta.Cols {
			return fmt.Errorf("%w: line %d: got %d values, want %d", ErrRowLength, line, len(fields), meta.Cols)
		}
		for _, s := range fields {
			v, err := strconv.ParseFloat(s, 64)
			if err != nil {
				return fmt.Errorf("gridio: line %d: %w", line, err)
			}
			rd.cells = append(rd.cells, v)
		}
		row++
		return nil
	}
	if first != nil {
		if err := parse(first); err != nil {
			return nil, err
		}
	}
	for sc.Scan() {
		line++
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 {
			continue
		}
		if err := parse(fields); err != nil {
			return nil, err
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("gridio: read %s: %w", path, err)
	}
	if row < meta.Rows {
		return nil, fmt.Errorf("%w: %d of %d rows", ErrIncomplete, row, meta.Rows)
	}

	return rd, nil
}

var headerKeys = map[string]bool{
	"ncols": true, "nrows": true,
	"xllcorner": true, "xllcenter": true,
	"yllcorner": true, "yllcenter": true,
	"cellsize": true, "dx": true, "dy": true,
	"nodata_value": true,
}

func isHeaderKey(k string) bool { return headerKeys[k] }

// asciiMeta converts header values into Meta. The lower-left anchor of the
// file becomes an upper-left origin.
func asciiMeta(h map[string]float64) (Meta, error) {
	nc, okc := h["ncols"]
	nr, okr := h["nrows"]
	if !okc || !okr || nc != math.Trunc(nc) || nr != math.Trunc(nr) {
		return Meta{}, fmt.Errorf("%w: ncols and nrows must be integers", ErrBadHeader)
	}
	if nc > MaxCells || nr > MaxCells {
		return Meta{}, fmt.Errorf("%w: shape %g×%g exceeds %d cells", ErrBadHeader, nr, nc, MaxCells)
	}
	m := Meta{Rows: int(nr), Cols: int(nc), NoData: DefaultASCIINoData}
	if err := m.validate(); err != nil {
		return Meta{}, err
	}
	if v, ok := h["nodata_value"]; ok {
		m.NoData = v
	}

	dx, okx := h["dx"]
	dy, oky := h["dy"]
	if cs, ok := h["cellsize"]; ok {
		dx, dy, okx, oky = cs, cs, true, true
	}
	if !okx || !oky || dx <= 0 || dy <= 0 {
		return Meta{}, fmt.Errorf("%w: cellsize (or dx and dy) must be positive", ErrBadHeader)
	}

	var x0, y0 float64
	switch {
	case has(h, "xllcorner"):
		x0 = h["xllcorner"]
	case has(h, "xllcenter"):
		x0 = h["xllcenter"] - dx/2
	default:
		return Meta{}, fmt.Errorf("%w: missing xllcorner/xllcenter", ErrBadHeader)
	}
	switch {
	case has(h, "yllcorner"):
		y0 = h["yllcorner"]
	case has(h, "yllcenter"):
		y0 = h["yllcenter"] - dy/2
	default:
		return Meta{}, fmt.Errorf("%w: missing yllcorner/yllcenter", ErrBadHeader)
	}

	m.Geometry = raster.Geometry{
		OriginX:    x0,
		OriginY:    y0 + float64(m.Rows)*dy,
		CellWidth:  dx,
		CellHeight: dy,
	}
	return m, nil
}

func has(h map[string]float64, k string) bool {
	_, ok := h[k]
	return ok
}

func (rd *asciiReader) Meta() Meta { return rd.meta }

func (rd *asciiReader) ReadRow(r int, dst []float64) error {
	if err := rd.meta.checkRow(r, len(dst)); err != nil {
		return err
	}
	c := rd.meta.Cols
	copy(dst, rd.cells[r*c:(r+1)*c])
	return nil
}

func (rd *asciiReader) Close() error { return nil }

// asciiWriter buffers rows and writes the file on Close.
type asciiWriter struct {
	path string
	buf  rowBuffer
}

func createASCII(path string, meta Meta) (*asciiWriter, error) {
	if meta.Geometry.CellWidth == 0 || meta.Geometry.CellHeight == 0 {
		return nil, fmt.Errorf("%w: zero cell size", ErrBadHeader)
	}
	return &asciiWriter{path: path, buf: newRowBuffer(meta)}, nil
}

func (w *asciiWriter) Meta() Meta { return w.buf.meta }

func (w *asciiWriter) WriteRow(r int, vals []float64) error { return w.buf.put(r, vals) }

func (w *asciiWriter) Close() error {
	if err := w.buf.complete(); err != nil {
		return err
	}
	f, err := os.Create(filepath.Clean(w.path))
	if err != nil {
		return fmt.Errorf("gridio: create file: %w", err)
	}
	if err := w.encode(bufio.NewWriter(f)); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

func (w *asciiWriter) encode(bw *bufio.Writer) error {
	m := w.buf.meta
	g := m.Geometry
	dx, dy := math.Abs(g.CellWidth), math.Abs(g.CellHeight)

	fmt.Fprintf(bw, "ncols %d\n", m.Cols)
	fmt.Fprintf(bw, "nrows %d\n", m.Rows)
	fmt.Fprintf(bw, "xllcorner %s\n", formatValue(g.OriginX))
	fmt.Fprintf(bw, "yllcorner %s\n", formatValue(g.OriginY-float64(m.Rows)*dy))
	if dx == dy {
		fmt.Fprintf(bw, "cellsize %s\n", formatValue(dx))
	} else {
		fmt.Fprintf(bw, "dx %s\n", formatValue(dx))
		fmt.Fprintf(bw, "dy %s\n", formatValue(dy))
	}
	fmt.Fprintf(bw, "NODATA_value %s\n", formatValue(m.NoData))

	for _, row := range w.buf.rows {
		for c, v := range row {
			if c > 0 {
				_ = bw.WriteByte(' ')
			}
			_, _ = bw.WriteString(formatValue(v))
		}
		_ = bw.WriteByte('\n')
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("gridio: write %s: %w", w.path, err)
	}
	return nil
}

// formatValue prints the shortest representation that parses back exactly.
func formatValue(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
