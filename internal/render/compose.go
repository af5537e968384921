package render

import (
	"fmt"
	"image"
	"image/color"

	"github.com/disintegration/imaging"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"

	"github.com/cardforge/cardforge/internal/assets"
	"github.com/cardforge/cardforge/internal/layout"
)

// Ink colors on the card face. The title bar and cost sit on dark frame
// regions, the rules text on the light body panel.
var (
	lightInk = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	darkInk  = color.NRGBA{R: 0x14, G: 0x12, B: 0x10, A: 0xff}
)

// Compose layers one card onto a fresh working-resolution canvas. Bottom
// to top: artwork (center-cropped into the art window), the frame overlay,
// then the text regions at the sizes and line breaks the layout chose.
// The shared assets are never mutated.
func Compose(res assets.ResolvedAssets, l layout.Layout, fonts *assets.FontSet, geom layout.Geometry) (*image.NRGBA, error) {
	canvas := imaging.New(layout.CanvasW, layout.CanvasH, color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff})

	// Artwork fills its window edge to edge, preserving aspect ratio and
	// center-cropping any mismatch.
	art := imaging.Fill(res.Artwork, geom.Art.W, geom.Art.H, imaging.Center, imaging.Lanczos)
	canvas = imaging.Paste(canvas, art, image.Pt(geom.Art.X, geom.Art.Y))

	frame := res.Frame
	if frame.Bounds().Dx() != layout.CanvasW || frame.Bounds().Dy() != layout.CanvasH {
		frame = imaging.Resize(frame, layout.CanvasW, layout.CanvasH, imaging.Lanczos)
	}
	canvas = imaging.Overlay(canvas, frame, image.Pt(0, 0), 1.0)

	if err := drawBlock(canvas, fonts, l.Title, geom.Title, lightInk); err != nil {
		return nil, err
	}
	if err := drawBlock(canvas, fonts, l.TypeLine, geom.TypeLine, darkInk); err != nil {
		return nil, err
	}
	if err := drawCost(canvas, fonts, l.Cost, l.CostSize, geom.Cost); err != nil {
		return nil, err
	}
	if err := drawBlock(canvas, fonts, l.Body, geom.Body, darkInk); err != nil {
		return nil, err
	}
	if l.Strength != "" {
		if err := drawStrength(canvas, fonts, l.Strength, geom.Strength); err != nil {
			return nil, err
		}
	}

	return canvas, nil
}

// drawBlock renders a fitted text block left-aligned in its box. A single
// line is centered vertically; multi-line blocks start at the top.
func drawBlock(dst *image.NRGBA, fonts *assets.FontSet, block layout.TextBlock, box layout.Box, ink color.NRGBA) error {
	if len(block.Lines) == 0 {
		return nil
	}

	face, err := fonts.Face(block.Kind, block.Size)
	if err != nil {
		return err
	}
	metrics := face.Metrics()
	lineHeight := metrics.Height.Ceil()
	ascent := metrics.Ascent.Ceil()

	y := box.Y + ascent
	if len(block.Lines) == 1 && lineHeight < box.H {
		y = box.Y + (box.H-lineHeight)/2 + ascent
	}

	drawer := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(ink),
		Face: face,
	}
	for _, line := range block.Lines {
		drawer.Dot = fixed.P(box.X, y)
		drawer.DrawString(line)
		y += lineHeight
	}
	return nil
}

// drawCost renders the cost tokens right-aligned in the cost box. Known
// tokens use the symbol font; unknown ones fall back to their literal text
// in the body font.
func drawCost(dst *image.NRGBA, fonts *assets.FontSet, tokens []layout.CostToken, size float64, box layout.Box) error {
	if len(tokens) == 0 {
		return nil
	}

	symbolFace, err := fonts.Face(assets.FontSymbol, size)
	if err != nil {
		return err
	}
	literalFace, err := fonts.Face(assets.FontBody, size)
	if err != nil {
		return err
	}

	type run struct {
		text string
		face font.Face
	}
	runs := make([]run, 0, len(tokens))
	total := 0
	for _, token := range tokens {
		r := run{text: token.Text, face: literalFace}
		if token.Known {
			r = run{text: string(token.Glyph), face: symbolFace}
		}
		total += font.MeasureString(r.face, r.text).Ceil()
		runs = append(runs, r)
	}

	ascent := symbolFace.Metrics().Ascent.Ceil()
	height := symbolFace.Metrics().Height.Ceil()
	x := box.X + box.W - total
	y := box.Y + ascent
	if height < box.H {
		y = box.Y + (box.H-height)/2 + ascent
	}

	for _, r := range runs {
		drawer := &font.Drawer{
			Dst:  dst,
			Src:  image.NewUniform(lightInk),
			Face: r.face,
			Dot:  fixed.P(x, y),
		}
		drawer.DrawString(r.text)
		x += font.MeasureString(r.face, r.text).Ceil()
	}
	return nil
}

// strengthSize is fixed: the strength box only ever holds "N/N".
const strengthSize = 40.0

// drawStrength centers the strength text in its corner box.
func drawStrength(dst *image.NRGBA, fonts *assets.FontSet, text string, box layout.Box) error {
	face, err := fonts.Face(assets.FontTitle, strengthSize)
	if err != nil {
		return err
	}

	w := font.MeasureString(face, text).Ceil()
	if w > box.W {
		return fmt.Errorf("strength %q wider than its box", text)
	}
	metrics := face.Metrics()
	x := box.X + (box.W-w)/2
	y := box.Y + (box.H-metrics.Height.Ceil())/2 + metrics.Ascent.Ceil()

	drawer := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(darkInk),
		Face: face,
		Dot:  fixed.P(x, y),
	}
	drawer.DrawString(text)
	return nil
}
