package parser

import (
	"strings"

	"github.com/shapestone/yamlcore/internal/scanner"
)

// Parser is the top-down recursive-descent event parser. Block structure is
// parsed line-by-line against the Scanner, since indentation-sensitive
// parsing needs whole-line lookahead (scalar chomping, implicit keys) that a
// flat token stream would have to re-derive; flow (`[...]`/`{...}`) regions
// are indentation-insensitive and are pulled token-by-token from a
// tokenizer.Tokenizer instead (sequence.go, mapping.go). The tokenizer's
// scalar readers also serve quoted strings in block context.
//
// Grounded on spec.md §4.4; authored fresh (no single original_source file
// matches this shape — the Rust original additionally supports anchors and
// aliases, dropped here as a non-goal).
type Parser struct {
	s      *scanner.Scanner
	states stateStack
	events []Event
}

// ParseToEvents runs the full pipeline over input and returns its event
// stream, or the first error encountered. The parser does not attempt error
// recovery: the first error aborts and is returned with its localizing
// position range.
func ParseToEvents(input string) ([]Event, error) {
	p := &Parser{s: scanner.NewScanner(input)}
	if err := p.run(); err != nil {
		return nil, err
	}
	return p.events, nil
}

func (p *Parser) emit(data EventData, pos scanner.Position) {
	p.events = append(p.events, newEvent(data, pos))
}

func (p *Parser) emitRange(data EventData, start, end scanner.Position) {
	p.events = append(p.events, newRangeEvent(data, start, end))
}

func (p *Parser) run() error {
	p.emit(StreamStartData{}, scanner.Start)

	p.skipBlankAndCommentLines()
	docStarted := false
	docEnded := false
	directives := newDirectives()
	for {
		p.skipBlankAndCommentLines()
		if p.s.IsEmpty() {
			break
		}
		if line := p.s.PeekLine(); strings.HasPrefix(line, "%") {
			directives.recordDirectiveLine(strings.TrimPrefix(line, "%"))
			p.s.NextLine()
			continue
		}
		pos := p.s.DonePos()
		line := p.s.PeekLine()
		switch {
		case strings.HasPrefix(line, "---") && (len(line) == 3 || line[3] == ' ' || line[3] == '\t'):
			p.s.AdvanceOffset(3)
			if docStarted && !docEnded {
				p.emit(DocumentEndData{Explicit: false}, pos)
			}
			p.emit(DocumentStartData{Explicit: true}, pos)
			docStarted = true
			// The document's root node may start on the marker line itself
			// ("--- |", "--- foo"); only an empty remainder or a comment
			// consumes through the line break here.
			p.s.AdvanceTillNonSpace()
			if r, ok := p.s.PeekChar(); !ok || r == '\n' || r == '#' {
				if err := p.expectCommentOrLineBreak(pos); err != nil {
					return err
				}
			}
			if err := p.handleNode(0, 0, nil); err != nil {
				return err
			}
			docEnded = false
		case strings.HasPrefix(line, "...") && (len(line) == 3 || line[3] == ' ' || line[3] == '\t'):
			p.s.AdvanceOffset(3)
			if err := p.expectCommentOrLineBreak(pos); err != nil {
				return err
			}
			p.emit(DocumentEndData{Explicit: true}, pos)
			docEnded = true
		default:
			if docStarted && !docEnded {
				p.emit(DocumentEndData{Explicit: false}, pos)
			}
			p.emit(DocumentStartData{Explicit: false}, pos)
			docStarted = true
			if err := p.handleNode(0, 0, nil); err != nil {
				return err
			}
			docEnded = false
		}
	}

	if !docStarted {
		p.emit(DocumentStartData{Explicit: false}, p.s.DonePos())
	}
	if !docEnded {
		p.emit(DocumentEndData{Explicit: false}, p.s.DonePos())
	}
	p.emit(StreamEndData{}, p.s.DonePos())
	return nil
}

func (p *Parser) expectCommentOrLineBreak(pos scanner.Position) error {
	if err := p.s.ExpectCommentOrLineBreak(); err != nil {
		return NewError(ExpectingCommentOrLineBreak, pos, "expected a comment or line break")
	}
	return nil
}

// skipBlankAndCommentLines consumes leading blank lines and comment-only
// lines, regardless of their indentation.
func (p *Parser) skipBlankAndCommentLines() {
	for {
		if p.s.IsEmpty() {
			return
		}
		line := p.s.PeekLine()
		trimmed := strings.TrimLeft(line, " \t")
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			p.s.NextLine()
			continue
		}
		return
	}
}

func leadingIndent(line string) int {
	return len(line) - len(strings.TrimLeft(line, " "))
}

// looksLikeMapEntry reports whether a trimmed line reads as an implicit
// mapping key: it contains ": " or ends with ":" once any trailing comment
// is ignored, so a comment containing a colon cannot fake a mapping.
func looksLikeMapEntry(trimmed string) bool {
	if idx := strings.Index(trimmed, " #"); idx >= 0 {
		trimmed = trimmed[:idx]
	}
	trimmed = strings.TrimRight(trimmed, " \t")
	return strings.Contains(trimmed, ": ") || strings.HasSuffix(trimmed, ":")
}

// isDocumentMarker reports whether a trimmed line begins a "---" or "..."
// document boundary. Markers are only significant at column 1; callers check
// the indent.
func isDocumentMarker(trimmed string) bool {
	for _, marker := range []string{"---", "..."} {
		if trimmed == marker || strings.HasPrefix(trimmed, marker+" ") || strings.HasPrefix(trimmed, marker+"\t") {
			return true
		}
	}
	return false
}

// handleNode is the central dispatcher described in spec.md §4.4. It decides
// what kind of node starts at the scanner's current position and either
// emits a Scalar event directly or delegates to a container handler, which
// emits its own Start/End events.
func (p *Parser) handleNode(firstIndent, restIndent int, tag *string) error {
	p.skipBlankAndCommentLines()
	if p.s.IsEmpty() {
		p.emitRange(ScalarEventData{Tag: tag, Text: ""}, p.s.DonePos(), p.s.DonePos())
		return nil
	}

	line := p.s.PeekLine()
	indent := leadingIndent(line)
	pos := p.s.DonePos()

	if indent < firstIndent {
		if st, ok := p.states.top(); ok && isContainer(st) {
			return nil
		}
		return NewError(LessIndentedWithoutParent, pos, "line is less indented than its containing node")
	}

	trimmed := line[indent:]

	switch {
	case indent == 0 && isDocumentMarker(trimmed):
		// A new document boundary where a node was expected: the node is
		// absent. The marker itself is left for the stream loop.
		p.emitRange(ScalarEventData{Tag: tag, Text: ""}, pos, pos)
		return nil

	case trimmed == "-" || strings.HasPrefix(trimmed, "- "):
		return p.handleBlockSeq(restIndent+(indent-firstIndent), tag)

	case strings.HasPrefix(trimmed, "'") || strings.HasPrefix(trimmed, "\""):
		p.s.AdvanceOffset(indent)
		return p.handleFlowScalar(tag)

	case strings.HasPrefix(trimmed, "["):
		p.s.AdvanceOffset(indent)
		return p.handleFlowSeq(tag)

	case strings.HasPrefix(trimmed, "{"):
		p.s.AdvanceOffset(indent)
		return p.handleFlowMap(tag)

	case strings.HasPrefix(trimmed, "!"):
		p.s.AdvanceOffset(indent)
		innerTag, ok := parseTag(p.s)
		if !ok {
			return NewError(Bug, pos, "expected a tag")
		}
		p.s.AdvanceTillNonSpace()
		return p.handleNode(firstIndent, restIndent, innerTag)

	case strings.HasPrefix(trimmed, "\t"):
		return NewError(InvalidStartOfToken, pos, "line starts with a tab")

	case strings.HasPrefix(trimmed, "|") || strings.HasPrefix(trimmed, ">"):
		p.s.AdvanceOffset(indent)
		return p.handleBlockScalarNode(tag, max(firstIndent, indent))

	case looksLikeMapEntry(trimmed):
		return p.handleBlockMap(max(firstIndent, indent), max(restIndent, indent), tag)

	default:
		return p.handlePlainScalarNode(tag, max(firstIndent, indent), max(restIndent, indent))
	}
}
