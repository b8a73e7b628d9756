package yaml

import (
	"fmt"
	"strings"

	"github.com/shapestone/yamlcore/internal/parser"
	"github.com/shapestone/yamlcore/internal/scanner"
)

// SerializeOptions configures EmitText's output.
//
// Grounded on spec.md §4.7 and §6's options record; defaults follow
// original_source/src/serializer.rs.
type SerializeOptions struct {
	// LeadingStartIndicator emits a "---\n" prefix before the document body.
	LeadingStartIndicator bool
	// IndentCount is the number of spaces per nesting level. Must be >= 2.
	IndentCount int
	// MaxWidth is a column hint for scalar wrapping; 0 means unlimited.
	MaxWidth int
}

// DefaultSerializeOptions returns the spec's default options: no leading
// "---", 2-space indent, 80-column scalar wrapping hint.
func DefaultSerializeOptions() SerializeOptions {
	return SerializeOptions{IndentCount: 2, MaxWidth: 80}
}

// EmitText renders v as YAML text under opts. A trailing newline is trimmed
// before returning, per spec.md §4.7.
func EmitText(v *Value, opts SerializeOptions) (string, error) {
	if opts.IndentCount < 2 {
		return "", parser.NewError(parser.IndentTooSmall, scanner.Start, "indent_count must be at least 2, got %d", opts.IndentCount)
	}
	var b strings.Builder
	if opts.LeadingStartIndicator {
		b.WriteString("---\n")
	}
	emitBlock(&b, v, 0, opts)
	return strings.TrimRight(b.String(), "\n"), nil
}

// emitBlock renders v as a standalone top-level node at depth.
func emitBlock(b *strings.Builder, v *Value, depth int, opts SerializeOptions) {
	switch d := v.Data.(type) {
	case TagData:
		b.WriteString(d.Name)
		b.WriteString(" ")
		emitValueAfterColon(b, &Value{Data: d.Data}, depth, opts)
	case NullData:
		b.WriteString("null\n")
	case ScalarData:
		b.WriteString(renderScalar(d.Text, depth, opts))
		b.WriteString("\n")
	case SequenceData:
		emitSequence(b, d, depth, opts)
	case MapData:
		emitMap(b, d, depth, opts)
	}
}

// emitMap renders a mapping's entries, one "key: value" per line.
func emitMap(b *strings.Builder, d MapData, depth int, opts SerializeOptions) {
	if d.Map.Len() == 0 {
		b.WriteString(strings.Repeat(" ", depth*opts.IndentCount))
		b.WriteString("{}\n")
		return
	}
	for _, e := range d.Map.Entries() {
		b.WriteString(strings.Repeat(" ", depth*opts.IndentCount))
		keyText, _ := e.Key.AsStr()
		b.WriteString(keyText)
		b.WriteString(":")
		// Non-empty nested collections drop to the next line one level
		// deeper; everything else continues on the key's line.
		switch vd := e.Value.Data.(type) {
		case SequenceData:
			if len(vd.Items) > 0 {
				b.WriteString("\n")
				emitSequence(b, vd, depth+1, opts)
				continue
			}
		case MapData:
			if vd.Map.Len() > 0 {
				b.WriteString("\n")
				emitMap(b, vd, depth+1, opts)
				continue
			}
		}
		b.WriteString(" ")
		emitValueAfterColon(b, e.Value, depth+1, opts)
	}
}

// emitSequence renders a sequence's entries, one "- value" per line.
func emitSequence(b *strings.Builder, d SequenceData, depth int, opts SerializeOptions) {
	if len(d.Items) == 0 {
		b.WriteString(strings.Repeat(" ", depth*opts.IndentCount))
		b.WriteString("[]\n")
		return
	}
	for _, item := range d.Items {
		b.WriteString(strings.Repeat(" ", depth*opts.IndentCount))
		switch vd := item.Data.(type) {
		case SequenceData:
			if len(vd.Items) > 0 {
				b.WriteString("-\n")
				emitSequence(b, vd, depth+1, opts)
				continue
			}
		case MapData:
			if vd.Map.Len() > 0 {
				b.WriteString("-\n")
				emitMap(b, vd, depth+1, opts)
				continue
			}
		}
		b.WriteString("- ")
		emitValueAfterColon(b, item, depth+1, opts)
	}
}

// emitValueAfterColon renders v immediately following a "key:" or "- "
// prefix already written on the current line: scalars and empty
// collections continue on that line, while non-empty nested collections
// drop to the next line at depth.
func emitValueAfterColon(b *strings.Builder, v *Value, depth int, opts SerializeOptions) {
	switch d := v.Data.(type) {
	case TagData:
		b.WriteString(d.Name)
		b.WriteString(" ")
		emitValueAfterColon(b, &Value{Data: d.Data}, depth, opts)
	case NullData:
		b.WriteString("null\n")
	case ScalarData:
		b.WriteString(renderScalar(d.Text, depth, opts))
		b.WriteString("\n")
	case SequenceData:
		if len(d.Items) == 0 {
			b.WriteString("[]\n")
			return
		}
		b.WriteString("\n")
		emitSequence(b, d, depth, opts)
	case MapData:
		if d.Map.Len() == 0 {
			b.WriteString("{}\n")
			return
		}
		b.WriteString("\n")
		emitMap(b, d, depth, opts)
	}
}

// renderScalar returns text as a bare plain scalar, or double-quoted (with
// escapes) if it needs quoting structurally or exceeds the width budget.
func renderScalar(text string, depth int, opts SerializeOptions) string {
	needsQuote := scalarNeedsQuoting(text)
	if !needsQuote && opts.MaxWidth > 0 {
		avail := opts.MaxWidth - depth*opts.IndentCount
		if avail > 0 && len([]rune(text)) > avail {
			needsQuote = true
		}
	}
	if needsQuote {
		return quoteScalar(text)
	}
	return text
}

func scalarNeedsQuoting(text string) bool {
	if text == "" {
		return true
	}
	for _, r := range text {
		if r < 0x20 && r != '\t' {
			return true
		}
	}
	switch text[0] {
	case ' ', '\t', '-', '?', ':', ',', '[', ']', '{', '}', '#', '&', '*', '!', '|', '>', '\'', '"', '%', '@', '`':
		return true
	}
	if strings.Contains(text, ": ") || strings.HasSuffix(text, ":") || strings.Contains(text, " #") {
		return true
	}
	if text[len(text)-1] == ' ' || text[len(text)-1] == '\t' {
		return true
	}
	return false
}

func quoteScalar(text string) string {
	var b strings.Builder
	b.WriteByte('"')
	for _, r := range text {
		switch r {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		case '\t':
			b.WriteString(`\t`)
		case '\r':
			b.WriteString(`\r`)
		default:
			if r < 0x20 {
				fmt.Fprintf(&b, `\x%02x`, r)
			} else {
				b.WriteRune(r)
			}
		}
	}
	b.WriteByte('"')
	return b.String()
}
