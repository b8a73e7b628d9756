package tokenizer

import (
	"errors"

	"github.com/shapestone/yamlcore/internal/scanner"
)

// ErrUnbalancedFlow is returned by TokenizeFlow when input ends before the
// opening flow indicator's matching close is found.
var ErrUnbalancedFlow = errors.New("unbalanced flow collection")

// Tokenizer pulls one Token at a time from a Scanner. It is used directly by
// internal/parser for indicator and scalar recognition; block-context
// indentation and line structure are handled by the parser itself walking
// the Scanner line by line (see DESIGN.md), so Tokenizer only needs to know
// whether it is currently inside a flow collection.
//
// Grounded on the combinator-matcher organization of shapestone-shape-yaml's
// internal/tokenizer.Tokenizer, adapted to read from internal/scanner.Scanner
// directly instead of a byte/rune dual-path Stream.
type Tokenizer struct {
	s           *scanner.Scanner
	flowDepth   int
	atLineStart bool
	indent      int
}

// New creates a Tokenizer reading from s. atLineStart controls whether a "-"
// at the cursor is recognized as a block sequence indicator (only valid at
// the start of a line's content).
func New(s *scanner.Scanner, atLineStart bool) *Tokenizer {
	return &Tokenizer{s: s, atLineStart: atLineStart}
}

// matcher is one entry in the ordered table Next tries in turn. It reports
// whether it recognized and consumed a token at the current position.
type matcher func(t *Tokenizer) (Token, bool, error)

// matchers is tried in order; ordering is critical, since several indicators
// share a leading character with other constructs (e.g. "-" as a block
// sequence indicator versus the start of a plain scalar like "-1", or ":" as
// a map value indicator versus a colon inside a plain scalar like "a:b").
var matchers = []matcher{
	matchFlowSeqStart,
	matchFlowSeqEnd,
	matchFlowMapStart,
	matchFlowMapEnd,
	matchCollectEntry,
	matchMapValueIndicator,
	matchMapKeyIndicator,
	matchBlockSeqIndicator,
	matchLocalTag,
	matchDoubleQuoted,
	matchSingleQuoted,
}

// Next returns the next token, or ok=false at end of input. Leading spaces,
// tabs, and (inside a flow collection) line breaks are skipped without
// producing a token; spaces skipped at the start of a line are counted and
// recorded as the indent of every token produced until the next line break.
func (t *Tokenizer) Next() (Token, bool, error) {
	for {
		r, has := t.s.PeekChar()
		if !has {
			return Token{}, false, nil
		}
		if r == ' ' || r == '\t' {
			t.s.NextChar()
			if t.atLineStart && r == ' ' {
				t.indent++
			} else {
				t.atLineStart = false
			}
			continue
		}
		if r == '\n' && t.flowDepth > 0 {
			t.s.NextChar()
			t.atLineStart = true
			t.indent = 0
			continue
		}
		if r == '#' {
			t.s.AdvanceTillLineBreak()
			continue
		}
		break
	}

	start := t.s.DonePos()
	for _, m := range matchers {
		tok, ok, err := m(t)
		if err != nil {
			return Token{}, false, err
		}
		if ok {
			tok.Indent = t.indent
			tok.Start = start
			tok.End = t.s.DonePos()
			t.atLineStart = false
			return tok, true, nil
		}
	}

	text := ReadFlowPlainStr(t.s)
	if text == "" && t.s.DonePos() == start {
		// A stop character the matchers don't recognize at the current
		// nesting (e.g. a line break outside flow context) ends the token
		// region rather than looping forever on an empty scalar.
		return Token{}, false, nil
	}
	t.atLineStart = false
	return Token{Indent: t.indent, Start: start, End: t.s.DonePos(), Data: ScalarData{Text: text}}, true, nil
}

func matchFlowSeqStart(t *Tokenizer) (Token, bool, error) {
	if r, ok := t.s.PeekChar(); !ok || r != '[' {
		return Token{}, false, nil
	}
	t.s.NextChar()
	t.flowDepth++
	return Token{Data: FlowSequenceStartData{}}, true, nil
}

func matchFlowSeqEnd(t *Tokenizer) (Token, bool, error) {
	if r, ok := t.s.PeekChar(); !ok || r != ']' {
		return Token{}, false, nil
	}
	t.s.NextChar()
	if t.flowDepth > 0 {
		t.flowDepth--
	}
	return Token{Data: FlowSequenceEndData{}}, true, nil
}

func matchFlowMapStart(t *Tokenizer) (Token, bool, error) {
	if r, ok := t.s.PeekChar(); !ok || r != '{' {
		return Token{}, false, nil
	}
	t.s.NextChar()
	t.flowDepth++
	return Token{Data: FlowMapStartData{}}, true, nil
}

func matchFlowMapEnd(t *Tokenizer) (Token, bool, error) {
	if r, ok := t.s.PeekChar(); !ok || r != '}' {
		return Token{}, false, nil
	}
	t.s.NextChar()
	if t.flowDepth > 0 {
		t.flowDepth--
	}
	return Token{Data: FlowMapEndData{}}, true, nil
}

func matchCollectEntry(t *Tokenizer) (Token, bool, error) {
	if r, ok := t.s.PeekChar(); !ok || r != ',' {
		return Token{}, false, nil
	}
	t.s.NextChar()
	return Token{Data: CollectEntryData{}}, true, nil
}

// matchMapValueIndicator recognizes ":" only when followed by whitespace,
// end of input, or (inside flow) one of the flow delimiters; a bare colon
// inside a word, as in a URL or time-of-day scalar, is left for the plain
// scalar reader.
func matchMapValueIndicator(t *Tokenizer) (Token, bool, error) {
	if r, ok := t.s.PeekChar(); !ok || r != ':' {
		return Token{}, false, nil
	}
	next, has := t.s.PeekCharAt(1)
	if !has || next == ' ' || next == '\t' || next == '\n' || next == ',' || next == ']' || next == '}' {
		t.s.NextChar()
		return Token{Data: MapValueIndicatorData{}}, true, nil
	}
	return Token{}, false, nil
}

// matchMapKeyIndicator recognizes "?" only when followed by whitespace,
// marking an explicit complex mapping key.
func matchMapKeyIndicator(t *Tokenizer) (Token, bool, error) {
	if r, ok := t.s.PeekChar(); !ok || r != '?' {
		return Token{}, false, nil
	}
	if next, has := t.s.PeekCharAt(1); has && next != ' ' && next != '\t' && next != '\n' {
		return Token{}, false, nil
	}
	t.s.NextChar()
	return Token{Data: MapKeyIndicatorData{}}, true, nil
}

// matchBlockSeqIndicator recognizes "-" as a block sequence entry indicator:
// only at the start of a line's content, and only when followed by
// whitespace or end of input (otherwise it begins a plain scalar like "-1"
// or "-foo").
func matchBlockSeqIndicator(t *Tokenizer) (Token, bool, error) {
	if !t.atLineStart || t.flowDepth > 0 {
		return Token{}, false, nil
	}
	if r, ok := t.s.PeekChar(); !ok || r != '-' {
		return Token{}, false, nil
	}
	if next, has := t.s.PeekCharAt(1); has && next != ' ' && next != '\t' && next != '\n' {
		return Token{}, false, nil
	}
	t.s.NextChar()
	return Token{Data: BlockSequenceIndicatorData{}}, true, nil
}

// matchLocalTag recognizes "!" followed by zero or more tag-name characters,
// collecting the raw name; core-tag expansion happens in internal/parser.
func matchLocalTag(t *Tokenizer) (Token, bool, error) {
	if r, ok := t.s.PeekChar(); !ok || r != '!' {
		return Token{}, false, nil
	}
	t.s.NextChar()
	name := ReadUnquotedStr(t.s, func(r rune) bool {
		return r == ' ' || r == '\t' || r == '\n' || r == ',' || r == '[' || r == ']' || r == '{' || r == '}'
	})
	return Token{Data: LocalTagData{Name: name}}, true, nil
}

func matchDoubleQuoted(t *Tokenizer) (Token, bool, error) {
	if r, ok := t.s.PeekChar(); !ok || r != '"' {
		return Token{}, false, nil
	}
	t.s.NextChar()
	text, err := ReadDoubleQuoted(t.s)
	if err != nil {
		return Token{}, false, err
	}
	return Token{Data: ScalarData{Text: text}}, true, nil
}

func matchSingleQuoted(t *Tokenizer) (Token, bool, error) {
	if r, ok := t.s.PeekChar(); !ok || r != '\'' {
		return Token{}, false, nil
	}
	t.s.NextChar()
	text, err := ReadSingleQuoted(t.s)
	if err != nil {
		return Token{}, false, err
	}
	return Token{Data: ScalarData{Text: text}}, true, nil
}

// TokenizeFlow eagerly tokenizes a balanced flow collection, starting at an
// already-recognized opening FlowSequenceStart or FlowMapStart token and
// continuing through its matching close, and returns the whole region at
// once. internal/parser's flow sequence/mapping handlers do not use it; they
// pull tokens one at a time with Next.
//
// Grounded on the Design Notes' "Balanced-pair tokenization for flow" rule.
func TokenizeFlow(s *scanner.Scanner) ([]Token, error) {
	t := New(s, false)
	t.flowDepth = 1
	var tokens []Token
	for {
		tok, ok, err := t.Next()
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, ErrUnbalancedFlow
		}
		tokens = append(tokens, tok)
		if t.flowDepth == 0 {
			return tokens, nil
		}
	}
}
