package layout

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/cardforge/cardforge/internal/assets"
	"github.com/cardforge/cardforge/internal/card"
)

// testMeasurer builds a measurer over stub fonts (Go Regular for all
// three roles), so layout tests need no asset files.
func testMeasurer(t *testing.T) *Measurer {
	t.Helper()
	fonts, err := assets.NewFontSet(goregular.TTF, goregular.TTF, goregular.TTF)
	require.NoError(t, err)
	return NewMeasurer(fonts)
}

func TestDefaultGeometryBoxesDoNotOverlap(t *testing.T) {
	geom := DefaultGeometry()
	boxes := map[string]Box{
		"title":    geom.Title,
		"cost":     geom.Cost,
		"art":      geom.Art,
		"typeline": geom.TypeLine,
		"body":     geom.Body,
		"strength": geom.Strength,
	}

	overlaps := func(a, b Box) bool {
		return a.X < b.X+b.W && b.X < a.X+a.W && a.Y < b.Y+b.H && b.Y < a.Y+a.H
	}
	for na, a := range boxes {
		for nb, b := range boxes {
			if na == nb {
				continue
			}
			assert.Falsef(t, overlaps(a, b), "%s overlaps %s", na, nb)
		}
	}
}

func TestFitLineShrinksButRespectsFloor(t *testing.T) {
	m := testMeasurer(t)

	short, err := FitLine(m, "BEAR", 396, assets.FontTitle, TitleStartSize, TitleMinSize, Truncate)
	require.NoError(t, err)
	assert.Equal(t, TitleStartSize, short.Size)
	assert.False(t, short.Truncated)

	long, err := FitLine(m, "AN EXCEEDINGLY VERBOSE CARD TITLE THAT CANNOT FIT",
		396, assets.FontTitle, TitleStartSize, TitleMinSize, Truncate)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, long.Size, TitleMinSize)
	assert.Less(t, long.Size, TitleStartSize)
}

func TestFitLineTruncatesAtFloor(t *testing.T) {
	m := testMeasurer(t)
	text := strings.Repeat("UNFITTABLE ", 20)

	got, err := FitLine(m, text, 120, assets.FontTitle, TitleStartSize, TitleMinSize, Truncate)
	require.NoError(t, err)
	assert.Equal(t, TitleMinSize, got.Size)
	assert.True(t, got.Truncated)
	assert.True(t, strings.HasSuffix(got.Lines[0], "…"))

	w, err := m.Width(assets.FontTitle, got.Size, got.Lines[0])
	require.NoError(t, err)
	assert.LessOrEqual(t, w, 120)
}

func TestFitLineOverflowPolicyKeepsText(t *testing.T) {
	m := testMeasurer(t)
	text := strings.Repeat("UNFITTABLE ", 20)

	got, err := FitLine(m, text, 120, assets.FontTitle, TitleStartSize, TitleMinSize, Overflow)
	require.NoError(t, err)
	assert.Equal(t, TitleMinSize, got.Size)
	assert.False(t, got.Truncated)
	assert.Equal(t, strings.TrimSpace(text), strings.TrimSpace(got.Lines[0]))
}

func TestWrapBodyLinesFitBox(t *testing.T) {
	m := testMeasurer(t)
	box := Box{W: 560, H: 230}
	text := "Whenever Test Bear attacks, it gets +1/+0 until end of turn. " +
		"Then it draws a card and thinks very hard about honey."

	got, err := WrapBody(m, text, box, Truncate)
	require.NoError(t, err)
	require.NotEmpty(t, got.Lines)
	for _, line := range got.Lines {
		w, err := m.Width(assets.FontBody, got.Size, line)
		require.NoError(t, err)
		assert.LessOrEqualf(t, w, box.W, "line %q wider than box", line)
	}
}

func TestWrapBodyIsDeterministic(t *testing.T) {
	m := testMeasurer(t)
	box := Box{W: 560, H: 230}
	text := strings.Repeat("determinism matters for print proofs ", 12)

	a, err := WrapBody(m, text, box, Truncate)
	require.NoError(t, err)
	b, err := WrapBody(m, text, box, Truncate)
	require.NoError(t, err)

	assert.Equal(t, a.Size, b.Size)
	assert.Equal(t, a.Lines, b.Lines)
}

func TestWrapBodyShrinksForLongText(t *testing.T) {
	m := testMeasurer(t)
	box := Box{W: 560, H: 230}
	text := strings.Repeat("an unreasonably wordy rules paragraph that keeps going ", 18)

	got, err := WrapBody(m, text, box, Truncate)
	require.NoError(t, err)
	assert.Less(t, got.Size, BodyStartSize)
	assert.GreaterOrEqual(t, got.Size, BodyMinSize)

	lineHeight, err := m.LineHeight(assets.FontBody, got.Size)
	require.NoError(t, err)
	assert.LessOrEqual(t, len(got.Lines)*lineHeight, box.H)
}

func TestWrapBodyHonorsNewlines(t *testing.T) {
	m := testMeasurer(t)

	got, err := WrapBody(m, "First line.\n\nSecond paragraph.", Box{W: 560, H: 230}, Truncate)
	require.NoError(t, err)
	assert.Equal(t, []string{"First line.", "", "Second paragraph."}, got.Lines)
}

func TestWrapBodyBreaksOverlongWord(t *testing.T) {
	m := testMeasurer(t)
	box := Box{W: 120, H: 600}

	got, err := WrapBody(m, "Supercalifragilisticexpialidocious", box, Truncate)
	require.NoError(t, err)
	require.Greater(t, len(got.Lines), 1)
	for _, line := range got.Lines {
		w, err := m.Width(assets.FontBody, got.Size, line)
		require.NoError(t, err)
		assert.LessOrEqual(t, w, box.W)
	}
}

func TestParseCost(t *testing.T) {
	tokens := ParseCost("{2}{R}")
	require.Len(t, tokens, 2)
	assert.True(t, tokens[0].Known)
	assert.Equal(t, '2', tokens[0].Glyph)
	assert.True(t, tokens[1].Known)
	assert.Equal(t, 'R', tokens[1].Glyph)
}

func TestParseCostUnknownTokenFallsBackToLiteral(t *testing.T) {
	tokens := ParseCost("{1}{SNOW}")
	require.Len(t, tokens, 2)
	assert.True(t, tokens[0].Known)
	assert.False(t, tokens[1].Known)
	assert.Equal(t, "{SNOW}", tokens[1].Text)
}

func TestParseCostMalformedInput(t *testing.T) {
	assert.Empty(t, ParseCost(""))

	tokens := ParseCost("2R")
	require.Len(t, tokens, 1)
	assert.False(t, tokens[0].Known)
	assert.Equal(t, "2R", tokens[0].Text)

	tokens = ParseCost("{G}{")
	require.Len(t, tokens, 2)
	assert.True(t, tokens[0].Known)
	assert.Equal(t, "{", tokens[1].Text)
}

func TestCardLayout(t *testing.T) {
	m := testMeasurer(t)
	strength := 2
	rec := card.CardRecord{
		Name:        "Test Bear",
		Cost:        "{1}{G}",
		Type:        card.TypeCreature,
		Subtype:     "Bear",
		Color:       card.Green,
		Strength:    &strength,
		Description: "Whenever Test Bear attacks, it gets +1/+0.",
	}

	l, err := Card(m, rec, DefaultGeometry(), Truncate)
	require.NoError(t, err)

	assert.Equal(t, []string{"TEST BEAR"}, l.Title.Lines)
	assert.Equal(t, []string{"Creature — Bear"}, l.TypeLine.Lines)
	assert.NotEmpty(t, l.Body.Lines)
	assert.Len(t, l.Cost, 2)
	assert.Equal(t, "2/2", l.Strength)
}
