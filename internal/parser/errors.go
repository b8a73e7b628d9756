// Package parser implements the YAML event parser and composer: the
// recursive-descent stage that turns tokenizer/scanner output into an
// ordered event stream, and the composer that folds that stream into an
// immutable Value tree.
package parser

import (
	"fmt"
	"strings"

	"github.com/shapestone/yamlcore/internal/scanner"
)

// ErrorKind is a closed enumeration of every error the parser, composer, and
// value layer can raise. It is closed deliberately: callers switch over it
// exhaustively rather than treating errors as open strings.
type ErrorKind int

const (
	Bug ErrorKind = iota
	InvalidPosition
	StartWithReservedIndicator
	InvalidEscapeScalar
	UnfinishedQuote
	InvalidErrorType
	UnexpectedYamlNodeType
	InvalidBool
	InvalidNumber
	NumberOverflow
	UnfinishedMapIndicator
	UnfinishedSequenceIndicator
	IndentTooSmall
	InvalidStartOfToken
	ExpectingCommentOrLineBreak
	InvalidPlainScalarStart
	AmbiguityPlainScalar
	InvalidImplicitKey
	InvalidSequenceStartIndicator
	LessIndentedWithoutParent
	NoSupportMultipleDocuments
)

var errorKindNames = [...]string{
	"Bug",
	"InvalidPosition",
	"StartWithReservedIndicator",
	"InvalidEscapeScalar",
	"UnfinishedQuote",
	"InvalidErrorType",
	"UnexpectedYamlNodeType",
	"InvalidBool",
	"InvalidNumber",
	"NumberOverflow",
	"UnfinishedMapIndicator",
	"UnfinishedSequenceIndicator",
	"IndentTooSmall",
	"InvalidStartOfToken",
	"ExpectingCommentOrLineBreak",
	"InvalidPlainScalarStart",
	"AmbiguityPlainScalar",
	"InvalidImplicitKey",
	"InvalidSequenceStartIndicator",
	"LessIndentedWithoutParent",
	"NoSupportMultipleDocuments",
}

// String renders the ErrorKind's name, matching the identifiers used in its
// round-trippable textual form.
func (k ErrorKind) String() string {
	if k < 0 || int(k) >= len(errorKindNames) {
		return "InvalidErrorType"
	}
	return errorKindNames[k]
}

var errorKindByName = func() map[string]ErrorKind {
	m := make(map[string]ErrorKind, len(errorKindNames))
	for i, name := range errorKindNames {
		m[name] = ErrorKind(i)
	}
	return m
}()

// ParseErrorKind resolves a kind name back to its ErrorKind, the inverse of
// String, as needed for round-tripping Error values through their text form.
func ParseErrorKind(s string) (ErrorKind, bool) {
	k, ok := errorKindByName[s]
	return k, ok
}

// Error is the kinded, position-bearing error produced anywhere in the
// pipeline. Its text form must round-trip through ParseError so that an
// external binding's visitor callbacks can re-attach positions to their own
// errors using the same wire format.
//
// Grounded on spec.md §4.8; the Rust original's Error/ErrorKind pair has no
// direct source file in original_source (errors are ad hoc there), so the
// shape here follows spec.md directly with the teacher's own error-wrapping
// idiom (error as a concrete struct implementing the error interface, not a
// chain of fmt.Errorf %w wraps, since positions need to be queryable fields).
type Error struct {
	Kind    ErrorKind
	Message string
	Start   scanner.Position
	End     scanner.Position
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s:%s kind: %s error: %s", e.Start, e.End, e.Kind, e.Message)
}

// NewError constructs an Error at a single position (Start == End).
func NewError(kind ErrorKind, pos scanner.Position, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...), Start: pos, End: pos}
}

// NewErrorRange constructs an Error spanning a position range.
func NewErrorRange(kind ErrorKind, start, end scanner.Position, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...), Start: start, End: end}
}

// ParseError parses the text form written by Error.Error: "<start>:<end>
// kind: <kind> error: <message>".
func ParseError(s string) (*Error, error) {
	startEnd, rest, ok := strings.Cut(s, " kind: ")
	if !ok {
		return nil, fmt.Errorf("parser: malformed error text %q: missing \" kind: \"", s)
	}
	kindStr, msg, ok := strings.Cut(rest, " error: ")
	if !ok {
		return nil, fmt.Errorf("parser: malformed error text %q: missing \" error: \"", s)
	}
	startStr, endStr, ok := strings.Cut(startEnd, ":")
	if !ok {
		return nil, fmt.Errorf("parser: malformed error text %q: missing start:end separator", s)
	}
	start, err := scanner.ParsePosition(strings.TrimSpace(startStr))
	if err != nil {
		return nil, fmt.Errorf("parser: malformed error text %q: %w", s, err)
	}
	end, err := scanner.ParsePosition(strings.TrimSpace(endStr))
	if err != nil {
		return nil, fmt.Errorf("parser: malformed error text %q: %w", s, err)
	}
	kind, ok := ParseErrorKind(strings.TrimSpace(kindStr))
	if !ok {
		return nil, fmt.Errorf("parser: malformed error text %q: unknown kind %q", s, kindStr)
	}
	return &Error{Kind: kind, Message: msg, Start: start, End: end}, nil
}
