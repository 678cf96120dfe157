// SPDX-License-Identifier: MIT

package gridio

import (
	"fmt"
	"image"
	"math"
	"os"
	"path/filepath"

	"golang.org/x/image/tiff"

	"github.com/katalvlaran/lvgrid/raster"
)

// No-data sentinels of the grayscale TIFF pixel types.
const (
	TIFFNoData8  = math.MaxUint8
	TIFFNoData16 = math.MaxUint16
)

// tiffReader serves rows from a decoded grayscale image.
type tiffReader struct {
	meta Meta
	img  image.Image
}

func openTIFF(path string) (*tiffReader, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("gridio: open file: %w", err)
	}
	defer func() { _ = f.Close() }()

	img, err := tiff.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("gridio: decode TIFF: %w", err)
	}

	var nd float64
	switch img.(type) {
	case *image.Gray:
		nd = TIFFNoData8
	case *image.Gray16:
		nd = TIFFNoData16
	default:
		return nil, fmt.Errorf("%w: TIFF pixel type %T", ErrUnsupportedFormat, img)
	}
	b := img.Bounds()
	meta := Meta{Rows: b.Dy(), Cols: b.Dx(), NoData: nd, Geometry: raster.DefaultGeometry()}
	if err := meta.validate(); err != nil {
		return nil, err
	}

	return &tiffReader{meta: meta, img: img}, nil
}

func (rd *tiffReader) Meta() Meta { return rd.meta }

func (rd *tiffReader) ReadRow(r int, dst []float64) error {
	if err := rd.meta.checkRow(r, len(dst)); err != nil {
		return err
	}
	b := rd.img.Bounds()
	y := b.Min.Y + r
	switch img := rd.img.(type) {
	case *image.Gray:
		for c := range dst {
			dst[c] = float64(img.GrayAt(b.Min.X+c, y).Y)
		}
	case *image.Gray16:
		for c := range dst {
			dst[c] = float64(img.Gray16At(b.Min.X+c, y).Y)
		}
	}
	return nil
}

func (rd *tiffReader) Close() error { return nil }

// tiffWriter stores 8-bit samples when the template's no-data is 255 and
// 16-bit samples otherwise. No-data cells map to the pixel type's sentinel;
// valid values are rounded and must fit below it.
type tiffWriter struct {
	path string
	buf  rowBuffer
	max  float64
}

func createTIFF(path string, meta Meta) (*tiffWriter, error) {
	w := &tiffWriter{path: path, buf: newRowBuffer(meta), max: TIFFNoData16}
	if meta.NoData == TIFFNoData8 {
		w.max = TIFFNoData8
	}
	return w, nil
}

func (w *tiffWriter) Meta() Meta { return w.buf.meta }

func (w *tiffWriter) WriteRow(r int, vals []float64) error {
	if err := w.buf.meta.checkRow(r, len(vals)); err != nil {
		return err
	}
	for c, v := range vals {
		if w.buf.meta.isNoData(v) {
			continue
		}
		if rv := math.Round(v); math.IsNaN(v) || rv < 0 || rv >= w.max {
			return fmt.Errorf("%w: row %d col %d value %v not in [0, %g)", ErrValueRange, r, c, v, w.max)
		}
	}
	return w.buf.put(r, vals)
}

// sample converts a cell to its stored pixel value.
func (w *tiffWriter) sample(v float64) float64 {
	if w.buf.meta.isNoData(v) {
		return w.max
	}
	return math.Round(v)
}

func (w *tiffWriter) Close() error {
	if err := w.buf.complete(); err != nil {
		return err
	}
	m := w.buf.meta
	rect := image.Rect(0, 0, m.Cols, m.Rows)

	var img image.Image
	if w.max == TIFFNoData8 {
		g := image.NewGray(rect)
		for r, row := range w.buf.rows {
			for c, v := range row {
				g.Pix[r*g.Stride+c] = uint8(w.sample(v))
			}
		}
		img = g
	} else {
		g := image.NewGray16(rect)
		for r, row := range w.buf.rows {
			for c, v := range row {
				s := uint16(w.sample(v))
				i := r*g.Stride + 2*c
				g.Pix[i], g.Pix[i+1] = uint8(s>>8), uint8(s)
			}
		}
		img = g
	}

	f, err := os.Create(filepath.Clean(w.path))
	if err != nil {
		return fmt.Errorf("gridio: create file: %w", err)
	}
	if err := tiff.Encode(f, img, &tiff.Options{Compression: tiff.Deflate}); err != nil {
		_ = f.Close()
		return fmt.Errorf("gridio: encode TIFF: %w", err)
	}
	return f.Close()
}
