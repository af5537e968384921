package layout

import "strings"

// symbolGlyphs maps a cost token to its glyph in the symbol font.
var symbolGlyphs = map[string]rune{
	"0": '0', "1": '1', "2": '2', "3": '3', "4": '4',
	"5": '5', "6": '6', "7": '7', "8": '8', "9": '9',
	"X": 'X',
	"W": 'W', "U": 'U', "B": 'B', "R": 'R', "G": 'G',
}

// ParseCost splits a cost string like "{1}{G}" into its tokens. Tokens
// with a known glyph render in the symbol font; anything else, including
// text outside braces or an unclosed brace, keeps its literal text so bad
// data stays visible on the proof instead of vanishing.
func ParseCost(cost string) []CostToken {
	var tokens []CostToken
	literal := func(s string) {
		if s != "" {
			tokens = append(tokens, CostToken{Text: s})
		}
	}

	rest := cost
	for rest != "" {
		open := strings.IndexByte(rest, '{')
		if open < 0 {
			literal(rest)
			break
		}
		literal(rest[:open])

		end := strings.IndexByte(rest[open:], '}')
		if end < 0 {
			literal(rest[open:])
			break
		}

		token := rest[open+1 : open+end]
		if glyph, ok := symbolGlyphs[strings.ToUpper(token)]; ok {
			tokens = append(tokens, CostToken{Text: token, Glyph: glyph, Known: true})
		} else {
			literal("{" + token + "}")
		}
		rest = rest[open+end+1:]
	}
	return tokens
}
