// Package export turns a composited working canvas into a print-ready
// file: resize to the physical size at the configured DPI, convert to the
// print color model, write the raster container.
package export

import (
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"io"
	"math"
	"os"

	"github.com/nfnt/resize"

	"github.com/cardforge/cardforge/internal/config"
)

const mmPerInch = 25.4

// ConvertStrategy maps the working (screen) color model to the print
// color model. It is a swappable seam: the default is a direct channel
// mapping, and a profile-aware conversion can replace it without touching
// the compositor.
type ConvertStrategy interface {
	Convert(src image.Image) image.Image
	Name() string
}

// DirectCMYK converts via color.RGBToCMYK per pixel: a deterministic,
// uncalibrated channel mapping (gray component replacement, no ICC
// profile). Adequate for proofing and for print shops that accept
// untagged CMYK.
type DirectCMYK struct{}

func (DirectCMYK) Name() string { return "direct-cmyk" }

func (DirectCMYK) Convert(src image.Image) image.Image {
	bounds := src.Bounds()
	dst := image.NewCMYK(bounds)
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, _ := src.At(x, y).RGBA()
			c, m, ye, k := color.RGBToCMYK(uint8(r>>8), uint8(g>>8), uint8(b>>8))
			i := dst.PixOffset(x, y)
			dst.Pix[i+0] = c
			dst.Pix[i+1] = m
			dst.Pix[i+2] = ye
			dst.Pix[i+3] = k
		}
	}
	return dst
}

// Exporter writes composited canvases at a fixed physical size. Card size
// and bleed come from configuration, not hardcoded: the exported area is
// card plus bleed on every edge.
type Exporter struct {
	DPI          int
	CardWidthMM  float64
	CardHeightMM float64
	BleedMM      float64
	Format       string
	Convert      ConvertStrategy
}

// FromConfig builds an exporter with the direct CMYK strategy.
func FromConfig(page config.PageConfig) *Exporter {
	return &Exporter{
		DPI:          page.DPI,
		CardWidthMM:  page.CardWidthMM,
		CardHeightMM: page.CardHeightMM,
		BleedMM:      page.BleedMM,
		Format:       page.Format,
		Convert:      DirectCMYK{},
	}
}

// TargetSize returns the output pixel dimensions: physical size (with
// bleed) times DPI, rounded.
func (e *Exporter) TargetSize() (int, int) {
	w := int(math.Round((e.CardWidthMM + 2*e.BleedMM) / mmPerInch * float64(e.DPI)))
	h := int(math.Round((e.CardHeightMM + 2*e.BleedMM) / mmPerInch * float64(e.DPI)))
	return w, h
}

// Ext returns the output file extension for the configured format.
func (e *Exporter) Ext() string {
	if e.Format == "jpeg" {
		return "jpg"
	}
	return e.Format
}

// Export resizes the canvas to the target physical size, converts it to
// the print color model and writes it to path. Failures affect only this
// card; the caller keeps the batch going.
func (e *Exporter) Export(canvas image.Image, path string) error {
	w, h := e.TargetSize()
	resized := resize.Resize(uint(w), uint(h), canvas, resize.Lanczos3)

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("error creating %s: %v", path, err)
	}
	if err := e.encode(f, resized); err != nil {
		f.Close()
		return fmt.Errorf("error writing %s: %v", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("error writing %s: %v", path, err)
	}
	return nil
}

func (e *Exporter) encode(w io.Writer, img image.Image) error {
	switch e.Format {
	case "tiff":
		converted := e.Convert.Convert(img)
		cmyk, ok := converted.(*image.CMYK)
		if !ok {
			return fmt.Errorf("convert strategy %s did not produce CMYK", e.Convert.Name())
		}
		return encodeCMYKTIFF(w, cmyk, e.DPI)
	case "jpeg":
		// Proofing format: stays in the screen color model.
		return jpeg.Encode(w, img, &jpeg.Options{Quality: 95})
	case "png":
		return png.Encode(w, img)
	}
	return fmt.Errorf("unsupported output format %q", e.Format)
}
