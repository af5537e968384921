// Package layout fits card text into the fixed regions of the card face.
// Physical card stock has no room for clipped text, so every region is
// laid out by measuring the rendered width and shrinking or wrapping until
// the text fits. Layout is a pure function of (text, box, font, starting
// size): identical inputs always produce identical line breaks and sizes.
package layout

import (
	"strconv"
	"strings"

	"golang.org/x/image/font"

	"github.com/cardforge/cardforge/internal/assets"
	"github.com/cardforge/cardforge/internal/card"
)

// Working canvas resolution: 63×88 mm at 300 DPI.
const (
	CanvasW = 744
	CanvasH = 1039
)

// Box is a named rectangle within the canvas coordinate space reserved
// for one region of the card face.
type Box struct {
	X, Y, W, H int
}

// Geometry holds the region boxes for one card face. Regions never
// overlap each other.
type Geometry struct {
	Title    Box
	Cost     Box
	Art      Box
	TypeLine Box
	Body     Box
	Strength Box
}

// Fixed vertical margins around the body region.
const (
	bodyTop      = 700
	bottomMargin = 109
)

// DefaultGeometry returns the standard card face regions. The body box
// height is derived from the canvas height minus the fixed margins.
func DefaultGeometry() Geometry {
	return Geometry{
		Title:    Box{X: 92, Y: 98, W: 396, H: 64},
		Cost:     Box{X: 500, Y: 100, W: 152, H: 60},
		Art:      Box{X: 64, Y: 164, W: 616, H: 486},
		TypeLine: Box{X: 92, Y: 658, W: 560, H: 38},
		Body:     Box{X: 92, Y: bodyTop, W: 560, H: CanvasH - bodyTop - bottomMargin},
		Strength: Box{X: 542, Y: 930, W: 110, H: 64},
	}
}

// Font sizing in canvas pixels. Shrink-to-fit walks down from the start
// size in fixed steps and never selects a size below the floor.
const (
	TitleStartSize = 60.0
	TitleMinSize   = 28.0

	TypeStartSize = 38.0
	TypeMinSize   = 22.0

	BodyStartSize = 34.0
	BodyMinSize   = 18.0

	SymbolSize = 44.0

	sizeStep = 2.0
)

// OverflowPolicy decides what happens when text still does not fit at the
// minimum font size.
type OverflowPolicy string

const (
	// Truncate cuts the text: single-line regions get a trailing ellipsis,
	// the body drops whole trailing lines. Print stock clips anything
	// outside a box anyway, so this is the default.
	Truncate OverflowPolicy = "truncate"
	// Overflow keeps all text at the minimum size and lets it run past
	// the box.
	Overflow OverflowPolicy = "overflow"
)

// TextBlock is the fitted result for one region: the final lines, the
// chosen size and whether the policy had to cut anything.
type TextBlock struct {
	Lines     []string
	Size      float64
	Kind      assets.FontKind
	Truncated bool
}

// CostToken is one brace-delimited element of the cost string. Known
// tokens carry a glyph from the symbol font; unknown ones fall back to
// their literal text in the body font.
type CostToken struct {
	Text  string
	Glyph rune
	Known bool
}

// Layout is the complete text layout for one card, consumed by the
// compositor. Computing it touches no raster.
type Layout struct {
	Title    TextBlock
	TypeLine TextBlock
	Body     TextBlock
	Cost     []CostToken
	CostSize float64
	Strength string // "2/2" for creatures, empty otherwise
}

// typeSeparator joins type and subtype on the type line.
const typeSeparator = " — " // em dash

// Measurer measures rendered text against a font set. It holds no
// per-record state, so one measurer serves a whole run.
type Measurer struct {
	fonts *assets.FontSet
}

// NewMeasurer wraps a font set for measurement.
func NewMeasurer(fonts *assets.FontSet) *Measurer {
	return &Measurer{fonts: fonts}
}

// Width returns the advance width of s in canvas pixels.
func (m *Measurer) Width(kind assets.FontKind, size float64, s string) (int, error) {
	face, err := m.fonts.Face(kind, size)
	if err != nil {
		return 0, err
	}
	return font.MeasureString(face, s).Ceil(), nil
}

// LineHeight returns the line advance for a face in canvas pixels.
func (m *Measurer) LineHeight(kind assets.FontKind, size float64) (int, error) {
	face, err := m.fonts.Face(kind, size)
	if err != nil {
		return 0, err
	}
	return face.Metrics().Height.Ceil(), nil
}

// Ascent returns the baseline offset from the top of a line.
func (m *Measurer) Ascent(kind assets.FontKind, size float64) (int, error) {
	face, err := m.fonts.Face(kind, size)
	if err != nil {
		return 0, err
	}
	return face.Metrics().Ascent.Ceil(), nil
}

// Card computes the full text layout for one record.
func Card(m *Measurer, rec card.CardRecord, geom Geometry, policy OverflowPolicy) (Layout, error) {
	var l Layout
	var err error

	// Title is set in capitals, like the reference frames expect.
	l.Title, err = FitLine(m, strings.ToUpper(rec.Name), geom.Title.W,
		assets.FontTitle, TitleStartSize, TitleMinSize, policy)
	if err != nil {
		return Layout{}, err
	}

	typeLine := string(rec.Type)
	if rec.Subtype != "" {
		typeLine += typeSeparator + rec.Subtype
	}
	l.TypeLine, err = FitLine(m, typeLine, geom.TypeLine.W,
		assets.FontBody, TypeStartSize, TypeMinSize, policy)
	if err != nil {
		return Layout{}, err
	}

	l.Body, err = WrapBody(m, rec.Description, geom.Body, policy)
	if err != nil {
		return Layout{}, err
	}

	l.Cost = ParseCost(rec.Cost)
	l.CostSize = SymbolSize

	if rec.Strength != nil {
		// Toughness mirrors strength until the data model grows one.
		s := strconv.Itoa(*rec.Strength)
		l.Strength = s + "/" + s
	}

	return l, nil
}

// FitLine fits a single line into a box width by reducing the font size in
// fixed decrements from start down to min. At the floor the overflow
// policy applies: truncate with a trailing ellipsis, or keep the full line
// and let it run past the box.
func FitLine(m *Measurer, text string, maxW int, kind assets.FontKind, start, min float64, policy OverflowPolicy) (TextBlock, error) {
	size := start
	for {
		w, err := m.Width(kind, size, text)
		if err != nil {
			return TextBlock{}, err
		}
		if w <= maxW {
			return TextBlock{Lines: []string{text}, Size: size, Kind: kind}, nil
		}
		if size <= min {
			break
		}
		size -= sizeStep
		if size < min {
			size = min
		}
	}

	if policy == Overflow {
		return TextBlock{Lines: []string{text}, Size: min, Kind: kind}, nil
	}
	cut, err := truncateLine(m, text, kind, min, maxW)
	if err != nil {
		return TextBlock{}, err
	}
	return TextBlock{Lines: []string{cut}, Size: min, Kind: kind, Truncated: true}, nil
}

// truncateLine removes trailing runes until text plus an ellipsis fits.
func truncateLine(m *Measurer, text string, kind assets.FontKind, size float64, maxW int) (string, error) {
	runes := []rune(text)
	for len(runes) > 0 {
		candidate := string(runes) + "…"
		w, err := m.Width(kind, size, candidate)
		if err != nil {
			return "", err
		}
		if w <= maxW {
			return candidate, nil
		}
		runes = runes[:len(runes)-1]
	}
	return "…", nil
}

// WrapBody wraps the description into its box with a greedy word wrap,
// shrinking the font in fixed steps and re-wrapping from scratch whenever
// the wrapped height exceeds the box height. At the floor the overflow
// policy applies: drop whole trailing lines, or keep them all and run past
// the box.
func WrapBody(m *Measurer, text string, box Box, policy OverflowPolicy) (TextBlock, error) {
	size := BodyStartSize
	for {
		lines, err := wrapAtSize(m, text, assets.FontBody, size, box.W)
		if err != nil {
			return TextBlock{}, err
		}
		lineHeight, err := m.LineHeight(assets.FontBody, size)
		if err != nil {
			return TextBlock{}, err
		}

		if len(lines)*lineHeight <= box.H {
			return TextBlock{Lines: lines, Size: size, Kind: assets.FontBody}, nil
		}
		if size <= BodyMinSize {
			if policy == Overflow {
				return TextBlock{Lines: lines, Size: size, Kind: assets.FontBody}, nil
			}
			keep := box.H / lineHeight
			if keep < 1 {
				keep = 1
			}
			return TextBlock{Lines: lines[:keep], Size: size, Kind: assets.FontBody, Truncated: true}, nil
		}
		size -= sizeStep
		if size < BodyMinSize {
			size = BodyMinSize
		}
	}
}

// wrapAtSize greedily packs words onto lines no wider than maxW at the
// given size. Embedded newlines force line breaks. A single word wider
// than the box is split at rune boundaries rather than overflowing.
func wrapAtSize(m *Measurer, text string, kind assets.FontKind, size float64, maxW int) ([]string, error) {
	var lines []string
	for _, paragraph := range strings.Split(text, "\n") {
		words := strings.Fields(paragraph)
		if len(words) == 0 {
			lines = append(lines, "")
			continue
		}

		current := ""
		for _, word := range words {
			candidate := word
			if current != "" {
				candidate = current + " " + word
			}
			w, err := m.Width(kind, size, candidate)
			if err != nil {
				return nil, err
			}
			if w <= maxW {
				current = candidate
				continue
			}
			if current != "" {
				lines = append(lines, current)
			}
			// The word alone may still be too wide for the box.
			pieces, err := splitWord(m, word, kind, size, maxW)
			if err != nil {
				return nil, err
			}
			lines = append(lines, pieces[:len(pieces)-1]...)
			current = pieces[len(pieces)-1]
		}
		lines = append(lines, current)
	}
	return lines, nil
}

// splitWord breaks a single word into chunks that each fit maxW. The last
// chunk is returned open so following words can join it.
func splitWord(m *Measurer, word string, kind assets.FontKind, size float64, maxW int) ([]string, error) {
	var pieces []string
	current := ""
	for _, r := range word {
		candidate := current + string(r)
		w, err := m.Width(kind, size, candidate)
		if err != nil {
			return nil, err
		}
		if w <= maxW || current == "" {
			current = candidate
			continue
		}
		pieces = append(pieces, current)
		current = string(r)
	}
	return append(pieces, current), nil
}
