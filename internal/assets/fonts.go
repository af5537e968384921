package assets

import (
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
)

// FontKind names one of the three roles a face can play on a card.
type FontKind int

const (
	FontTitle FontKind = iota
	FontBody
	FontSymbol
)

// Conventional font file names inside the asset directory.
var fontFiles = map[FontKind]string{
	FontTitle:  "title.ttf",
	FontBody:   "body.ttf",
	FontSymbol: "symbols.ttf",
}

// FontSet holds the three parsed card fonts. Fonts are loaded once per
// process and shared read-only across records; faces are derived per size
// on demand and never mutate the parsed font. The set is always passed in
// explicitly so tests can substitute stub fonts.
type FontSet struct {
	title  *opentype.Font
	body   *opentype.Font
	symbol *opentype.Font
}

// LoadFonts parses the three card fonts from the asset directory. A
// missing or unparseable font is fatal: every card needs all three.
func LoadFonts(dir string) (*FontSet, error) {
	data := make(map[FontKind][]byte, len(fontFiles))
	for kind, name := range fontFiles {
		path := filepath.Join(dir, name)
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("error reading font %s: %v", path, err)
		}
		data[kind] = b
	}
	return NewFontSet(data[FontTitle], data[FontBody], data[FontSymbol])
}

// NewFontSet builds a font set from raw font bytes.
func NewFontSet(title, body, symbol []byte) (*FontSet, error) {
	parse := func(name string, b []byte) (*opentype.Font, error) {
		f, err := opentype.Parse(b)
		if err != nil {
			return nil, fmt.Errorf("error parsing %s font: %v", name, err)
		}
		return f, nil
	}

	var fs FontSet
	var err error
	if fs.title, err = parse("title", title); err != nil {
		return nil, err
	}
	if fs.body, err = parse("body", body); err != nil {
		return nil, err
	}
	if fs.symbol, err = parse("symbol", symbol); err != nil {
		return nil, err
	}
	return &fs, nil
}

// Face returns a font face of the given kind at a size in canvas pixels.
func (fs *FontSet) Face(kind FontKind, size float64) (font.Face, error) {
	var f *opentype.Font
	switch kind {
	case FontTitle:
		f = fs.title
	case FontBody:
		f = fs.body
	case FontSymbol:
		f = fs.symbol
	default:
		return nil, fmt.Errorf("unknown font kind %d", kind)
	}

	// 72 DPI makes the point size equal the pixel size, so layout math
	// stays in canvas pixels throughout.
	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("error creating %v face at %.1fpx: %v", kind, size, err)
	}
	return face, nil
}
