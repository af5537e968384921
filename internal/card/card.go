package card

import (
	"fmt"
	"strconv"
	"strings"
)

// CardType is the kind of card being rendered.
type CardType string

const (
	TypeCreature CardType = "Creature"
	TypeSpell    CardType = "Spell"
)

// Color selects the frame a card is printed on.
type Color string

const (
	White Color = "White"
	Blue  Color = "Blue"
	Black Color = "Black"
	Red   Color = "Red"
	Green Color = "Green"
)

// Colors lists every recognized card color.
var Colors = []Color{White, Blue, Black, Red, Green}

// CardRecord is the validated, immutable representation of one data row.
type CardRecord struct {
	Name        string
	Cost        string // brace-delimited token sequence, e.g. "{2}{R}"
	Type        CardType
	Subtype     string
	Color       Color
	ArtFile     string // optional explicit artwork path
	Strength    *int   // present iff Type is Creature
	Description string
}

// ValidationError reports a bad or missing field in a single data row.
type ValidationError struct {
	Row   int
	Field string
	Value string
	Msg   string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("row %d: field %q: %s (got %q)", e.Row, e.Field, e.Msg, e.Value)
}

// Row is one tabular record keyed by lowercase header name. Missing
// columns read as the empty string.
type Row map[string]string

func (r Row) get(name string) string {
	return strings.TrimSpace(r[name])
}

// ParseRecord validates a single row and builds a CardRecord. It is a pure
// transform: the row is not modified and no files are touched.
func ParseRecord(row Row, index int) (CardRecord, error) {
	rec := CardRecord{
		Name:        row.get("name"),
		Cost:        row.get("cost"),
		Subtype:     row.get("subtype"),
		ArtFile:     row.get("art_file"),
		Description: row.get("description"),
	}

	if rec.Name == "" {
		return CardRecord{}, &ValidationError{Row: index, Field: "name", Msg: "must not be empty"}
	}

	typ, err := parseType(row.get("type"))
	if err != nil {
		return CardRecord{}, &ValidationError{Row: index, Field: "type", Value: row.get("type"), Msg: err.Error()}
	}
	rec.Type = typ

	col, err := parseColor(row.get("color"))
	if err != nil {
		return CardRecord{}, &ValidationError{Row: index, Field: "color", Value: row.get("color"), Msg: err.Error()}
	}
	rec.Color = col

	strength := row.get("strength")
	switch {
	case rec.Type == TypeCreature:
		n, err := strconv.Atoi(strength)
		if err != nil {
			return CardRecord{}, &ValidationError{Row: index, Field: "strength", Value: strength,
				Msg: "creatures require an integer strength"}
		}
		rec.Strength = &n
	case strength != "":
		return CardRecord{}, &ValidationError{Row: index, Field: "strength", Value: strength,
			Msg: "only creatures may have a strength"}
	}

	return rec, nil
}

// parseType recognizes the two card types, case-insensitively.
func parseType(s string) (CardType, error) {
	switch strings.ToLower(s) {
	case "creature":
		return TypeCreature, nil
	case "spell":
		return TypeSpell, nil
	}
	return "", fmt.Errorf("must be one of Creature, Spell")
}

// parseColor recognizes the five card colors, case-insensitively.
func parseColor(s string) (Color, error) {
	for _, c := range Colors {
		if strings.EqualFold(s, string(c)) {
			return c, nil
		}
	}
	return "", fmt.Errorf("must be one of White, Blue, Black, Red, Green")
}

// Slug derives a filesystem-safe identifier from a card name: lowercase,
// with every run of non-alphanumeric characters collapsed to a single
// hyphen. The same rule names output files and derived artwork paths, so a
// rendered card is always traceable back to its art.
func Slug(name string) string {
	var b strings.Builder
	pending := false
	for _, r := range strings.ToLower(name) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			if pending && b.Len() > 0 {
				b.WriteByte('-')
			}
			pending = false
			b.WriteRune(r)
		} else {
			pending = true
		}
	}
	return b.String()
}
