package parser

import (
	"fmt"
	"strings"

	"github.com/shapestone/yamlcore/internal/scanner"
)

// EventData is the sum type of event payloads, following the same
// interface-as-sum-type idiom used for TokenData in internal/tokenizer.
type EventData interface {
	isEventData()
	// Render renders the event's conformance textual form, excluding any
	// trailing newline, per spec.md §6.
	Render() string
}

type StreamStartData struct{}

func (StreamStartData) isEventData() {}
func (StreamStartData) Render() string { return "+STR" }

type StreamEndData struct{}

func (StreamEndData) isEventData() {}
func (StreamEndData) Render() string  { return "-STR" }

// DocumentStartData records whether "---" was physically present.
type DocumentStartData struct {
	Explicit bool
}

func (DocumentStartData) isEventData() {}
func (d DocumentStartData) Render() string {
	if d.Explicit {
		return "+DOC ---"
	}
	return "+DOC"
}

// DocumentEndData records whether "..." was physically present.
type DocumentEndData struct {
	Explicit bool
}

func (DocumentEndData) isEventData() {}
func (d DocumentEndData) Render() string {
	if d.Explicit {
		return "-DOC ..."
	}
	return "-DOC"
}

type SequenceStartData struct {
	Tag *string
}

func (SequenceStartData) isEventData() {}
func (d SequenceStartData) Render() string { return "+SEQ" + tagSuffix(d.Tag) }

type SequenceEndData struct{}

func (SequenceEndData) isEventData() {}
func (SequenceEndData) Render() string  { return "-SEQ" }

type MapStartData struct {
	Tag *string
}

func (MapStartData) isEventData() {}
func (d MapStartData) Render() string { return "+MAP" + tagSuffix(d.Tag) }

type MapEndData struct{}

func (MapEndData) isEventData() {}
func (MapEndData) Render() string  { return "-MAP" }

// ScalarEventData carries a scalar's text. Literal is set for block scalars
// ('|' and '>'), which render with the "|" marker instead of ":" (the
// test-suite's ":text" vs "|text" distinction). Line breaks, tabs, and
// backslashes in Text are escaped in both forms.
type ScalarEventData struct {
	Tag     *string
	Text    string
	Literal bool
}

func (ScalarEventData) isEventData() {}
func (d ScalarEventData) Render() string {
	marker := ":"
	if d.Literal {
		marker = "|"
	}
	return "=VAL" + tagSuffix(d.Tag) + " " + marker + escapeEventText(d.Text)
}

func tagSuffix(tag *string) string {
	if tag == nil {
		return ""
	}
	return " " + *tag
}

func escapeEventText(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch r {
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		case '\t':
			b.WriteString(`\t`)
		case '\r':
			b.WriteString(`\r`)
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Event pairs a payload with its position range. Scalar events span
// Start..End; every other event is emitted at a single position, with End
// equal to Start.
//
// Grounded on spec.md §3 Event and §6 event textual form.
type Event struct {
	Data  EventData
	Start scanner.Position
	End   scanner.Position
}

// Text renders the event without its position, in the form the
// conformance harness compares against golden `test.event` files:
// "<event text>".
func (e Event) Text() string {
	return e.Data.Render()
}

func newEvent(data EventData, pos scanner.Position) Event {
	return Event{Data: data, Start: pos, End: pos}
}

func newRangeEvent(data EventData, start, end scanner.Position) Event {
	return Event{Data: data, Start: start, End: end}
}

// coreTagName expands a core shorthand ("!!str") to its URI form, and
// returns application-local tags ("!Name") and verbatim tags ("!<...>")
// unchanged, per spec.md §6 Tag form.
func coreTagName(raw string) string {
	if strings.HasPrefix(raw, "!!") {
		return fmt.Sprintf("<tag:yaml.org,2002:%s>", strings.TrimPrefix(raw, "!!"))
	}
	return raw
}
