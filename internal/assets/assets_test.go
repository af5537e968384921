package assets

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/cardforge/cardforge/internal/card"
)

// writeTestDir lays out a complete asset directory: five tiny frames and
// the three fonts (Go Regular stands in for all of them).
func writeTestDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	for _, c := range card.Colors {
		writePNG(t, framePath(dir, c), color.NRGBA{R: 50, G: 50, B: 50, A: 200})
	}
	for _, name := range fontFiles {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), goregular.TTF, 0644))
	}
	return dir
}

func writePNG(t *testing.T, path string, c color.NRGBA) {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, 16, 22))
	for y := 0; y < 22; y++ {
		for x := 0; x < 16; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, img))
}

func TestOpenLoadsFramesAndFonts(t *testing.T) {
	lib, err := Open(writeTestDir(t))
	require.NoError(t, err)
	require.NotNil(t, lib.Fonts)

	for _, c := range card.Colors {
		assert.NotNilf(t, lib.frames[c], "frame for %s", c)
	}

	face, err := lib.Fonts.Face(FontTitle, 32)
	require.NoError(t, err)
	assert.Positive(t, face.Metrics().Height.Ceil())
}

func TestOpenFailsFastOnMissingFrame(t *testing.T) {
	dir := writeTestDir(t)
	require.NoError(t, os.Remove(framePath(dir, card.Red)))

	_, err := Open(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "red frame")
}

func TestOpenFailsFastOnMissingFont(t *testing.T) {
	dir := writeTestDir(t)
	require.NoError(t, os.Remove(filepath.Join(dir, "symbols.ttf")))

	_, err := Open(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "symbols.ttf")
}

func TestResolveDerivedArtworkPath(t *testing.T) {
	dir := writeTestDir(t)
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "art"), 0755))
	writePNG(t, filepath.Join(dir, "art", "test-bear.png"), color.NRGBA{R: 0, G: 200, B: 0, A: 255})

	lib, err := Open(dir)
	require.NoError(t, err)

	res, warn := lib.Resolve(card.CardRecord{Name: "Test Bear", Color: card.Green})
	assert.Empty(t, warn)
	assert.False(t, res.Placeholder)
	require.NotNil(t, res.Frame)
	require.NotNil(t, res.Artwork)
}

func TestResolveExplicitArtFile(t *testing.T) {
	dir := writeTestDir(t)
	artPath := filepath.Join(dir, "somewhere-else.png")
	writePNG(t, artPath, color.NRGBA{R: 9, G: 9, B: 200, A: 255})

	lib, err := Open(dir)
	require.NoError(t, err)

	res, warn := lib.Resolve(card.CardRecord{Name: "Test Bear", Color: card.Blue, ArtFile: artPath})
	assert.Empty(t, warn)
	assert.False(t, res.Placeholder)
}

func TestResolveMissingArtworkDegradesToPlaceholder(t *testing.T) {
	lib, err := Open(writeTestDir(t))
	require.NoError(t, err)

	res, warn := lib.Resolve(card.CardRecord{Name: "Test Bear", Color: card.Green})
	assert.True(t, res.Placeholder)
	require.NotNil(t, res.Artwork)
	assert.Contains(t, warn, "art/test-bear")
	assert.True(t, strings.Contains(warn, "placeholder"))
}

func TestCheckReportsMissingPrerequisites(t *testing.T) {
	dir := writeTestDir(t)
	require.NoError(t, os.Remove(framePath(dir, card.Black)))
	require.NoError(t, os.Remove(filepath.Join(dir, "body.ttf")))

	results := Check(dir)
	require.Len(t, results.Errors, 2)
	assert.NotEmpty(t, results.Warnings) // no art directory

	clean := writeTestDir(t)
	require.NoError(t, os.MkdirAll(filepath.Join(clean, "art"), 0755))
	results = Check(clean)
	assert.Empty(t, results.Errors)
	assert.Empty(t, results.Warnings)
}
