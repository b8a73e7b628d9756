// Package tokenizer classifies raw YAML characters into the indicator and
// scalar tokens the event parser dispatches on, handling quoted-string
// escapes, local tags, and per-line indentation tracking.
//
// Grounded on the combinator-matcher organization of shapestone-shape-yaml's
// internal/tokenizer package; the matchers here read directly from
// internal/scanner rather than from a separate byte/rune Stream abstraction
// (see DESIGN.md for why the teacher's ByteStream fast path was dropped).
package tokenizer

import "github.com/shapestone/yamlcore/internal/scanner"

// TokenData is the sum type of token payloads. Each variant is a small
// struct implementing the marker method, following the same
// interface-as-sum-type idiom the teacher uses for ast.SchemaNode.
type TokenData interface {
	isTokenData()
}

// NullData marks a token with no payload (e.g. bare structural indicators
// handled purely by Kind in callers that don't need TokenData at all).
type NullData struct{}

func (NullData) isTokenData() {}

// BlockSequenceIndicatorData is the "-" block sequence entry indicator.
type BlockSequenceIndicatorData struct{}

func (BlockSequenceIndicatorData) isTokenData() {}

// FlowSequenceStartData is "[".
type FlowSequenceStartData struct{}

func (FlowSequenceStartData) isTokenData() {}

// FlowSequenceEndData is "]".
type FlowSequenceEndData struct{}

func (FlowSequenceEndData) isTokenData() {}

// FlowMapStartData is "{".
type FlowMapStartData struct{}

func (FlowMapStartData) isTokenData() {}

// FlowMapEndData is "}".
type FlowMapEndData struct{}

func (FlowMapEndData) isTokenData() {}

// MapKeyIndicatorData is "?".
type MapKeyIndicatorData struct{}

func (MapKeyIndicatorData) isTokenData() {}

// MapValueIndicatorData is ":".
type MapValueIndicatorData struct{}

func (MapValueIndicatorData) isTokenData() {}

// CollectEntryData is "," inside flow context.
type CollectEntryData struct{}

func (CollectEntryData) isTokenData() {}

// ScalarData carries a scalar's unescaped text.
type ScalarData struct {
	Text string
}

func (ScalarData) isTokenData() {}

// LocalTagData carries a tag name as collected by the tokenizer, before the
// core-tag-name expansion performed by internal/parser's expandFlowTag.
type LocalTagData struct {
	Name string
}

func (LocalTagData) isTokenData() {}

// Token is a single classified lexical unit.
//
// Indent is the number of leading spaces on the physical line that produced
// the token, inherited by later tokens on the same line (with the "- "
// adjustment described in spec.md §3 applied by the event parser, not here).
type Token struct {
	Indent int
	Start  scanner.Position
	End    scanner.Position
	Data   TokenData
}
