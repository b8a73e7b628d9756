package parser

import (
	"github.com/shapestone/yamlcore/internal/scanner"
	"github.com/shapestone/yamlcore/internal/tokenizer"
)

// parseTag consumes a tag token ("!Name", "!!core", or verbatim "!<...>") at
// the scanner's current position and returns its expanded form. A bare "!"
// followed by whitespace is the non-specific tag and is silently absorbed,
// reporting ok=true with a nil tag.
//
// Grounded on spec.md §4.3(g) and §6 Tag form.
func parseTag(s *scanner.Scanner) (tag *string, ok bool) {
	if r, has := s.PeekChar(); !has || r != '!' {
		return nil, false
	}
	raw := tokenizer.ReadUnquotedStr(s, func(r rune) bool {
		return r == ' ' || r == '\t' || r == '\n'
	})
	if raw == "!" {
		return nil, true
	}
	name := coreTagName(raw)
	return &name, true
}
