package render

import (
	"fmt"
	"path/filepath"

	"github.com/cardforge/cardforge/internal/assets"
	"github.com/cardforge/cardforge/internal/card"
	"github.com/cardforge/cardforge/internal/export"
	"github.com/cardforge/cardforge/internal/layout"
)

// Pipeline renders records start to finish, one at a time. The library
// and measurer are the only shared state and both are read-only after
// construction, so distinct records could render concurrently without
// locking if a caller ever wanted to.
type Pipeline struct {
	Library  *assets.Library
	Exporter *export.Exporter
	Geometry layout.Geometry
	Policy   layout.OverflowPolicy

	measurer *layout.Measurer
}

// Rendered records one successful export.
type Rendered struct {
	Name string
	Path string
}

// Result summarizes a run: what rendered, what was skipped and why, and
// any non-fatal warnings (typically placeholder artwork).
type Result struct {
	Rendered []Rendered
	Skipped  []card.Skip
	Warnings []string
}

// New builds a pipeline over an opened asset library.
func New(lib *assets.Library, exporter *export.Exporter, policy layout.OverflowPolicy) *Pipeline {
	return &Pipeline{
		Library:  lib,
		Exporter: exporter,
		Geometry: layout.DefaultGeometry(),
		Policy:   policy,
		measurer: layout.NewMeasurer(lib.Fonts),
	}
}

// RenderCard runs one record through resolve → layout → compose → export
// and returns the written path plus an optional warning.
func (p *Pipeline) RenderCard(rec card.CardRecord, outDir string) (string, string, error) {
	resolved, warn := p.Library.Resolve(rec)

	l, err := layout.Card(p.measurer, rec, p.Geometry, p.Policy)
	if err != nil {
		return "", warn, fmt.Errorf("error laying out %q: %v", rec.Name, err)
	}

	canvas, err := Compose(resolved, l, p.Library.Fonts, p.Geometry)
	if err != nil {
		return "", warn, fmt.Errorf("error compositing %q: %v", rec.Name, err)
	}

	path := filepath.Join(outDir, card.Slug(rec.Name)+"."+p.Exporter.Ext())
	if err := p.Exporter.Export(canvas, path); err != nil {
		return "", warn, fmt.Errorf("error exporting %q: %v", rec.Name, err)
	}
	return path, warn, nil
}

// Run renders every record, skipping the ones that fail so the rest of
// the batch still ships.
func (p *Pipeline) Run(records []card.CardRecord, outDir string) Result {
	var result Result
	for i, rec := range records {
		path, warn, err := p.RenderCard(rec, outDir)
		if warn != "" {
			result.Warnings = append(result.Warnings, warn)
		}
		if err != nil {
			result.Skipped = append(result.Skipped, card.Skip{Row: i + 1, Name: rec.Name, Reason: err.Error()})
			continue
		}
		result.Rendered = append(result.Rendered, Rendered{Name: rec.Name, Path: path})
	}
	return result
}
