// Package yaml provides a YAML 1.2.2 reader/writer built on a four-stage
// pipeline: a character scanner, a tokenizer, a recursive-descent event
// parser, and a composer that builds an immutable Value tree.
//
// # Thread Safety
//
// All functions in this package are safe for concurrent use by multiple
// goroutines. Each call creates its own parser instance with no shared
// mutable state.
//
//	// SAFE: concurrent parsing
//	go func() { yaml.ParseText(input1) }()
//	go func() { yaml.ParseText(input2) }()
//
// # Parsing APIs
//
//   - ParseText(string) -> (*Value, error): parses and composes a document.
//   - Events(string) -> ([]Event, error): the raw event stream, an escape
//     hatch used by conformance tests to compare against golden test.event
//     files.
//   - Validate(string) -> error: parses and composes, discarding the
//     result.
//
// Example:
//
//	v, err := yaml.ParseText("name: Alice\nage: 30\n")
//	if err != nil {
//	    // handle error
//	}
//	m, _ := v.AsMap()
//	name, _ := m.Get("name")
//	text, _ := name.AsStr()
package yaml

import (
	"github.com/shapestone/yamlcore/internal/parser"
)

// Value is the composed, immutable tree produced by ParseText. It is a type
// alias (not a wrapper) so that internal/parser and pkg/yaml share one
// representation without an import cycle: internal/parser has no dependency
// on pkg/yaml, and pkg/yaml re-exports internal/parser's public surface.
type Value = parser.Value

// ValueData is the sum type of Value payloads: NullData, ScalarData,
// SequenceData, MapData, or TagData.
type ValueData = parser.ValueData

type NullData = parser.NullData
type ScalarData = parser.ScalarData
type SequenceData = parser.SequenceData
type MapData = parser.MapData
type TagData = parser.TagData

// OrderedMap preserves YAML mapping insertion order.
type OrderedMap = parser.OrderedMap

// MapEntry is one key/value pair of an OrderedMap.
type MapEntry = parser.MapEntry

// Event is one entry of the SAX-style event stream Events returns.
type Event = parser.Event

// ErrorKind is the closed enumeration of error kinds a parse can raise.
type ErrorKind = parser.ErrorKind

// Error is the kinded, position-bearing error type raised throughout the
// pipeline; its Error() string round-trips through ParseError.
type Error = parser.Error

// Re-export the ErrorKind constants so callers never need to import
// internal/parser directly.
const (
	Bug                           = parser.Bug
	InvalidPosition               = parser.InvalidPosition
	StartWithReservedIndicator    = parser.StartWithReservedIndicator
	InvalidEscapeScalar           = parser.InvalidEscapeScalar
	UnfinishedQuote               = parser.UnfinishedQuote
	InvalidErrorType              = parser.InvalidErrorType
	UnexpectedYamlNodeType        = parser.UnexpectedYamlNodeType
	InvalidBool                   = parser.InvalidBool
	InvalidNumber                 = parser.InvalidNumber
	NumberOverflow                = parser.NumberOverflow
	UnfinishedMapIndicator        = parser.UnfinishedMapIndicator
	UnfinishedSequenceIndicator   = parser.UnfinishedSequenceIndicator
	IndentTooSmall                = parser.IndentTooSmall
	InvalidStartOfToken           = parser.InvalidStartOfToken
	ExpectingCommentOrLineBreak   = parser.ExpectingCommentOrLineBreak
	InvalidPlainScalarStart       = parser.InvalidPlainScalarStart
	AmbiguityPlainScalar          = parser.AmbiguityPlainScalar
	InvalidImplicitKey            = parser.InvalidImplicitKey
	InvalidSequenceStartIndicator = parser.InvalidSequenceStartIndicator
	LessIndentedWithoutParent     = parser.LessIndentedWithoutParent
	NoSupportMultipleDocuments    = parser.NoSupportMultipleDocuments
)

// ParseError parses an Error's round-trippable text form back into an
// *Error, for external binding visitor callbacks that need to re-attach
// positions to their own errors using the same wire format.
func ParseError(s string) (*Error, error) {
	return parser.ParseError(s)
}

// ParseText parses a single YAML document and composes it into a Value
// tree. Non-goals (spec.md §1): anchors/aliases, multiple documents per
// input, floating-point coercion.
//
// Example:
//
//	v, err := yaml.ParseText(`
//	name: Alice
//	age: 30
//	`)
func ParseText(input string) (*Value, error) {
	events, err := parser.ParseToEvents(input)
	if err != nil {
		return nil, err
	}
	return parser.Compose(events)
}

// Events returns the raw SAX-style event stream for input without
// composing it into a Value tree. It exists as an escape hatch for
// conformance testing against the YAML 1.2 test suite's golden
// `test.event` files (spec.md §6).
func Events(input string) ([]Event, error) {
	return parser.ParseToEvents(input)
}
