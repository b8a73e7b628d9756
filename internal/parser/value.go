package parser

import (
	"strconv"
	"strings"

	"github.com/shapestone/yamlcore/internal/scanner"
)

// ValueData is the sum type of node payloads in a composed Value tree.
//
// Grounded on spec.md §3 Value / §4.6 Value Coercions; ported in spirit from
// original_source/src/value.rs, adapted to Go's interface-as-sum-type idiom
// (the teacher's ast.SchemaNode pattern) rather than a Rust enum.
type ValueData interface {
	isValueData()
}

type NullData struct{}

func (NullData) isValueData() {}

// ScalarData carries a scalar's raw text; all scalars are strings until a
// coercion is requested.
type ScalarData struct {
	Text string
}

func (ScalarData) isValueData() {}

type SequenceData struct {
	Items []*Value
}

func (SequenceData) isValueData() {}

// MapData wraps an insertion-ordered key/value map.
type MapData struct {
	Map *OrderedMap
}

func (MapData) isValueData() {}

// TagData wraps another ValueData with a tag name; tags do not recurse (a
// Tag's Data is never itself a TagData).
type TagData struct {
	Name string
	Data ValueData
}

func (TagData) isValueData() {}

// Value is one node of the composed tree, carrying the position range of
// the source construct it came from.
type Value struct {
	Data  ValueData
	Start scanner.Position
	End   scanner.Position
}

// scalarText returns the underlying text for a plain Scalar, or, for a
// tagged scalar, the tag's *name* rather than its content — per spec.md
// §4.6, so that an external binding can dispatch on variant tags via AsStr.
func (v *Value) scalarText() (string, bool) {
	switch d := v.Data.(type) {
	case ScalarData:
		return d.Text, true
	case TagData:
		if _, ok := d.Data.(ScalarData); ok {
			return d.Name, true
		}
	}
	return "", false
}

// AsStr returns the value's scalar text, or an InvalidErrorType error if the
// value is not a scalar (or a tag wrapping one).
func (v *Value) AsStr() (string, error) {
	if s, ok := v.scalarText(); ok {
		return s, nil
	}
	return "", NewErrorRange(InvalidErrorType, v.Start, v.End, "value is not a scalar")
}

// AsChar returns the value's scalar text as a single rune.
func (v *Value) AsChar() (rune, error) {
	s, err := v.AsStr()
	if err != nil {
		return 0, err
	}
	runes := []rune(s)
	if len(runes) != 1 {
		return 0, NewErrorRange(InvalidErrorType, v.Start, v.End, "scalar %q is not a single character", s)
	}
	return runes[0], nil
}

// AsBool parses "true"/"false".
func (v *Value) AsBool() (bool, error) {
	s, err := v.AsStr()
	if err != nil {
		return false, err
	}
	switch s {
	case "true":
		return true, nil
	case "false":
		return false, nil
	default:
		return false, NewErrorRange(InvalidBool, v.Start, v.End, "invalid bool %q", s)
	}
}

// IsInteger reports whether s parses as an integer literal in any of the
// supported bases. A leading sign is accepted on decimal literals only.
func IsInteger(s string) bool {
	_, _, ok := detectBase(s)
	return ok
}

// IsSignedInteger reports whether s parses as an integer literal that
// carries an explicit sign.
func IsSignedInteger(s string) bool {
	return IsInteger(s) && (strings.HasPrefix(s, "+") || strings.HasPrefix(s, "-"))
}

// detectBase strips a base prefix (0x/0X, 0o/0O, 0b/0B) or defaults to base
// 10, returning the digits (with sign, for base 10) and the base. ok is
// false unless every remaining character is a digit of the detected base.
func detectBase(s string) (digits string, base int, ok bool) {
	if s == "" {
		return "", 0, false
	}
	sign := ""
	rest := s
	if rest[0] == '+' || rest[0] == '-' {
		sign = string(rest[0])
		rest = rest[1:]
	}
	switch {
	case strings.HasPrefix(rest, "0x"), strings.HasPrefix(rest, "0X"):
		if sign != "" {
			return "", 0, false
		}
		return rest[2:], 16, validDigits(rest[2:], 16)
	case strings.HasPrefix(rest, "0o"), strings.HasPrefix(rest, "0O"):
		if sign != "" {
			return "", 0, false
		}
		return rest[2:], 8, validDigits(rest[2:], 8)
	case strings.HasPrefix(rest, "0b"), strings.HasPrefix(rest, "0B"):
		if sign != "" {
			return "", 0, false
		}
		return rest[2:], 2, validDigits(rest[2:], 2)
	default:
		return sign + rest, 10, validDigits(rest, 10)
	}
}

// validDigits reports whether s is non-empty and made entirely of digits of
// the given base.
func validDigits(s string, base int) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		var d int
		switch {
		case r >= '0' && r <= '9':
			d = int(r - '0')
		case r >= 'a' && r <= 'f':
			d = int(r-'a') + 10
		case r >= 'A' && r <= 'F':
			d = int(r-'A') + 10
		default:
			return false
		}
		if d >= base {
			return false
		}
	}
	return true
}

// AsU64 parses the scalar as an unsigned 64-bit integer with base detection.
func (v *Value) AsU64() (uint64, error) {
	s, err := v.AsStr()
	if err != nil {
		return 0, err
	}
	digits, base, ok := detectBase(s)
	if !ok {
		return 0, NewErrorRange(InvalidNumber, v.Start, v.End, "invalid number %q", s)
	}
	// ParseUint rejects sign prefixes outright; a leading "+" is valid YAML.
	n, err := strconv.ParseUint(strings.TrimPrefix(digits, "+"), base, 64)
	if err != nil {
		if strings.Contains(err.Error(), "value out of range") {
			return 0, NewErrorRange(NumberOverflow, v.Start, v.End, "number %q overflows u64", s)
		}
		return 0, NewErrorRange(InvalidNumber, v.Start, v.End, "invalid number %q", s)
	}
	return n, nil
}

// AsI64 parses the scalar as a signed 64-bit integer with base detection.
func (v *Value) AsI64() (int64, error) {
	s, err := v.AsStr()
	if err != nil {
		return 0, err
	}
	digits, base, ok := detectBase(s)
	if !ok {
		return 0, NewErrorRange(InvalidNumber, v.Start, v.End, "invalid number %q", s)
	}
	n, err := strconv.ParseInt(digits, base, 64)
	if err != nil {
		if strings.Contains(err.Error(), "value out of range") {
			return 0, NewErrorRange(NumberOverflow, v.Start, v.End, "number %q overflows i64", s)
		}
		return 0, NewErrorRange(InvalidNumber, v.Start, v.End, "invalid number %q", s)
	}
	return n, nil
}

// AsU32 narrows AsU64 to 32 bits, raising NumberOverflow if it does not fit.
func (v *Value) AsU32() (uint32, error) {
	n, err := v.AsU64()
	if err != nil {
		return 0, err
	}
	if n > 0xFFFFFFFF {
		return 0, NewErrorRange(NumberOverflow, v.Start, v.End, "number %d overflows u32", n)
	}
	return uint32(n), nil
}

// AsU16 narrows AsU64 to 16 bits.
func (v *Value) AsU16() (uint16, error) {
	n, err := v.AsU64()
	if err != nil {
		return 0, err
	}
	if n > 0xFFFF {
		return 0, NewErrorRange(NumberOverflow, v.Start, v.End, "number %d overflows u16", n)
	}
	return uint16(n), nil
}

// AsU8 narrows AsU64 to 8 bits.
func (v *Value) AsU8() (uint8, error) {
	n, err := v.AsU64()
	if err != nil {
		return 0, err
	}
	if n > 0xFF {
		return 0, NewErrorRange(NumberOverflow, v.Start, v.End, "number %d overflows u8", n)
	}
	return uint8(n), nil
}

// AsI32 narrows AsI64 to 32 bits.
func (v *Value) AsI32() (int32, error) {
	n, err := v.AsI64()
	if err != nil {
		return 0, err
	}
	if n > 0x7FFFFFFF || n < -0x80000000 {
		return 0, NewErrorRange(NumberOverflow, v.Start, v.End, "number %d overflows i32", n)
	}
	return int32(n), nil
}

// AsI16 narrows AsI64 to 16 bits.
func (v *Value) AsI16() (int16, error) {
	n, err := v.AsI64()
	if err != nil {
		return 0, err
	}
	if n > 32767 || n < -32768 {
		return 0, NewErrorRange(NumberOverflow, v.Start, v.End, "number %d overflows i16", n)
	}
	return int16(n), nil
}

// AsI8 narrows AsI64 to 8 bits.
func (v *Value) AsI8() (int8, error) {
	n, err := v.AsI64()
	if err != nil {
		return 0, err
	}
	if n > 127 || n < -128 {
		return 0, NewErrorRange(NumberOverflow, v.Start, v.End, "number %d overflows i8", n)
	}
	return int8(n), nil
}

// IsNull reports whether the value is the Null variant.
func (v *Value) IsNull() bool {
	_, ok := v.Data.(NullData)
	return ok
}

// AsSequence returns the value's items if it is a Sequence.
func (v *Value) AsSequence() ([]*Value, error) {
	if s, ok := v.Data.(SequenceData); ok {
		return s.Items, nil
	}
	return nil, NewErrorRange(InvalidErrorType, v.Start, v.End, "value is not a sequence")
}

// AsMap returns the value's OrderedMap if it is a Map.
func (v *Value) AsMap() (*OrderedMap, error) {
	if m, ok := v.Data.(MapData); ok {
		return m.Map, nil
	}
	return nil, NewErrorRange(InvalidErrorType, v.Start, v.End, "value is not a map")
}

// TagName returns the tag name if the value is a Tag, else "".
func (v *Value) TagName() string {
	if t, ok := v.Data.(TagData); ok {
		return t.Name
	}
	return ""
}
