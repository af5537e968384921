package assets

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/cardforge/cardforge/internal/card"
)

// Placeholder artwork matches the art window's aspect so the compositor
// does not crop it further.
const (
	placeholderW = 616
	placeholderH = 486
)

// artExtensions is the probe order for derived artwork paths.
var artExtensions = []string{".png", ".jpg", ".jpeg"}

// Library is the shared, read-only asset bundle for a run: the five color
// frames and the three fonts. It is loaded once before any card renders,
// so a missing frame or font aborts the run up front.
type Library struct {
	Dir    string
	Fonts  *FontSet
	frames map[card.Color]image.Image
}

// ResolvedAssets is the per-record bundle handed to the compositor. It is
// created fresh for each record and discarded after compositing.
type ResolvedAssets struct {
	Frame       image.Image
	Artwork     image.Image
	Placeholder bool // true when Artwork is generated, not loaded
}

// Open loads the frames and fonts from an asset directory. Any missing or
// undecodable shared asset is fatal.
func Open(dir string) (*Library, error) {
	lib := &Library{
		Dir:    dir,
		frames: make(map[card.Color]image.Image, len(card.Colors)),
	}

	for _, color := range card.Colors {
		path := framePath(dir, color)
		img, err := loadImage(path)
		if err != nil {
			return nil, fmt.Errorf("error loading %s frame: %v", strings.ToLower(string(color)), err)
		}
		lib.frames[color] = img
	}

	fonts, err := LoadFonts(dir)
	if err != nil {
		return nil, err
	}
	lib.Fonts = fonts

	return lib, nil
}

// Resolve builds the asset bundle for one record. The frame is an exact
// lookup by color. Artwork comes from the record's explicit path when set,
// otherwise from art/<slug>.<ext> under the asset directory; when neither
// loads, a placeholder gradient stands in and a warning is returned, since
// missing art is common while a set is being iterated on.
func (l *Library) Resolve(rec card.CardRecord) (ResolvedAssets, string) {
	res := ResolvedAssets{Frame: l.frames[rec.Color]}

	art, warn := l.findArtwork(rec)
	if art == nil {
		res.Artwork = placeholderArt(rec.Color)
		res.Placeholder = true
	} else {
		res.Artwork = art
	}
	return res, warn
}

// findArtwork probes the explicit path, then the derived slug paths.
// Returns a nil image and a warning when no artwork could be loaded.
func (l *Library) findArtwork(rec card.CardRecord) (image.Image, string) {
	if rec.ArtFile != "" {
		img, err := loadImage(rec.ArtFile)
		if err == nil {
			return img, ""
		}
		return nil, fmt.Sprintf("artwork %s unusable (%v), using placeholder", rec.ArtFile, err)
	}

	slug := card.Slug(rec.Name)
	for _, ext := range artExtensions {
		path := filepath.Join(l.Dir, "art", slug+ext)
		if _, err := os.Stat(path); os.IsNotExist(err) {
			continue
		}
		img, err := loadImage(path)
		if err == nil {
			return img, ""
		}
		return nil, fmt.Sprintf("artwork %s unusable (%v), using placeholder", path, err)
	}

	return nil, fmt.Sprintf("no artwork for %q (looked for art/%s.*), using placeholder", rec.Name, slug)
}

// framePath maps a color to its conventional frame file.
func framePath(dir string, color card.Color) string {
	return filepath.Join(dir, "frame_"+strings.ToLower(string(color))+".png")
}

// loadImage opens and decodes a raster image file.
func loadImage(path string) (image.Image, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %v", err)
	}
	return img, nil
}

// placeholderColors gives each card color a light and a dark anchor for
// the stand-in gradient.
var placeholderColors = map[card.Color][2]string{
	card.White: {"#f4efdf", "#b8b09a"},
	card.Blue:  {"#9db9d8", "#274a6d"},
	card.Black: {"#8a8486", "#26222a"},
	card.Red:   {"#d89a84", "#7d2a1d"},
	card.Green: {"#a7c09a", "#2e5339"},
}

// placeholderArt renders a vertical gradient in the card color so a
// frame's art window never ships empty.
func placeholderArt(c card.Color) image.Image {
	anchors := placeholderColors[c]
	top, _ := colorful.Hex(anchors[0])
	bottom, _ := colorful.Hex(anchors[1])

	img := image.NewNRGBA(image.Rect(0, 0, placeholderW, placeholderH))
	for y := 0; y < placeholderH; y++ {
		t := float64(y) / float64(placeholderH-1)
		r, g, b := top.BlendLab(bottom, t).Clamped().RGB255()
		for x := 0; x < placeholderW; x++ {
			i := img.PixOffset(x, y)
			img.Pix[i+0] = r
			img.Pix[i+1] = g
			img.Pix[i+2] = b
			img.Pix[i+3] = 0xff
		}
	}
	return img
}
