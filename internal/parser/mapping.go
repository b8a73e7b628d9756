package parser

import (
	"strings"

	"github.com/shapestone/yamlcore/internal/scanner"
	"github.com/shapestone/yamlcore/internal/tokenizer"
)

// handleBlockMap implements spec.md §4.4's handle_block_map: emits MapStart,
// alternates key/value parsing at or above the desired indent, and emits
// MapEnd. Keys are implicit (plain, single-line, YAML §7.3.3).
func (p *Parser) handleBlockMap(firstIndent, restIndent int, tag *string) error {
	startPos := p.s.DonePos()
	p.emit(MapStartData{Tag: tag}, startPos)
	p.states.push(InBlockMapKey)
	prevDone := p.s.DonePos()
	first := true

	for {
		p.skipBlankAndCommentLines()
		if p.s.IsEmpty() {
			break
		}
		line := p.s.PeekLine()
		indent := leadingIndent(line)
		// A document marker at column 1 ends every open container; the
		// stream loop decides what to do with it.
		if indent == 0 && isDocumentMarker(line) {
			break
		}
		want := restIndent
		if first {
			want = firstIndent
		}
		if indent < want {
			break
		}

		lineStart := p.s.DonePos()
		keyStartPos := scanner.Position{Line: lineStart.Line, Column: lineStart.Column + indent}
		trimmed := line[indent:]
		// A trailing comment plays no part in deciding the entry's shape.
		keyLine := trimmed
		if idx := strings.Index(keyLine, " #"); idx >= 0 {
			keyLine = keyLine[:idx]
		}

		var keyText string
		var valueRestIndent int
		var hasInlineValue bool

		if colonIdx := strings.Index(keyLine, ": "); colonIdx >= 0 &&
			!inlineRestIsBlank(keyLine[colonIdx+2:]) {
			keyText = strings.TrimRight(keyLine[:colonIdx], " \t")
			p.s.AdvanceOffset(indent + colonIdx + 2)
			valueRestIndent = indent + len([]rune(keyLine[:colonIdx])) + 2
			hasInlineValue = true
		} else if rightTrimmed := strings.TrimRight(keyLine, " \t"); strings.HasSuffix(rightTrimmed, ":") {
			keyText = strings.TrimSuffix(rightTrimmed, ":")
			p.s.NextLine()
			hasInlineValue = false
		} else {
			return NewError(InvalidImplicitKey, keyStartPos, "expected an implicit mapping key on %q", line)
		}
		if keyText == "" {
			return NewError(InvalidImplicitKey, keyStartPos, "empty mapping key")
		}
		if err := plainStartError(keyText, keyStartPos); err != nil {
			return err
		}
		keyEndPos := scanner.Position{Line: keyStartPos.Line, Column: keyStartPos.Column + len([]rune(keyText)) - 1}
		p.emitRange(ScalarEventData{Text: keyText}, keyStartPos, keyEndPos)

		p.states.pop()
		p.states.push(InBlockMapValue)

		if hasInlineValue {
			if err := p.handleNode(0, valueRestIndent, nil); err != nil {
				return err
			}
		} else if p.s.IsEmpty() {
			pos := p.s.DonePos()
			p.emitRange(ScalarEventData{}, pos, pos)
		} else {
			next := p.s.PeekLine()
			nextIndent := leadingIndent(next)
			if nextIndent <= indent {
				pos := p.s.DonePos()
				p.emitRange(ScalarEventData{}, pos, pos)
			} else if err := p.handleNode(nextIndent, nextIndent, nil); err != nil {
				return err
			}
		}

		p.states.pop()
		p.states.push(InBlockMapKey)
		first = false

		done := p.s.DonePos()
		if done == prevDone {
			return NewError(Bug, done, "parser made no progress in block mapping")
		}
		prevDone = done
	}

	p.emit(MapEndData{}, p.s.DonePos())
	p.states.pop()
	return nil
}

// inlineRestIsBlank reports whether the text after a key's ": " holds no
// value: only whitespace or a comment. Such a line is a key-only line whose
// value, if any, starts on a more-indented following line.
func inlineRestIsBlank(rest string) bool {
	rest = strings.TrimLeft(rest, " \t")
	return rest == "" || strings.HasPrefix(rest, "#")
}

// handleFlowMap parses a "{...}" region through the tokenizer. The opening
// "{" has not yet been consumed when this is called; the scanner must be
// positioned directly on it.
func (p *Parser) handleFlowMap(tag *string) error {
	tk := tokenizer.New(p.s, false)
	open, ok, err := tk.Next()
	if err != nil {
		return wrapScalarErr(err, p.s.DonePos())
	}
	if !ok {
		return NewError(Bug, p.s.DonePos(), "expected '{' at start of flow mapping")
	}
	return p.flowMapBody(tk, open, tag)
}

// flowMapBody consumes a flow mapping's entries after its opening token:
// key, ":", value, then "," or "}". Unterminated regions report the opening
// delimiter's position.
func (p *Parser) flowMapBody(tk *tokenizer.Tokenizer, open tokenizer.Token, tag *string) error {
	p.emit(MapStartData{Tag: tag}, open.Start)
	p.states.push(InFlowMapKey)

	const (
		wantKeyOrEnd = iota
		wantColon
		wantValue
		wantSepOrEnd
	)
	phase := wantKeyOrEnd

	for {
		tok, ok, err := tk.Next()
		if err != nil {
			return wrapScalarErr(err, open.Start)
		}
		if !ok {
			return NewError(UnfinishedMapIndicator, open.Start, "unterminated flow mapping")
		}

		switch phase {
		case wantKeyOrEnd:
			if _, end := tok.Data.(tokenizer.FlowMapEndData); end {
				p.emit(MapEndData{}, tok.End)
				p.states.pop()
				return nil
			}
			if _, sep := tok.Data.(tokenizer.CollectEntryData); sep {
				return NewError(UnfinishedMapIndicator, open.Start, "unexpected ',' in flow mapping")
			}
			if err := p.flowNodeFromToken(tk, tok, nil); err != nil {
				return err
			}
			phase = wantColon

		case wantColon:
			if _, colon := tok.Data.(tokenizer.MapValueIndicatorData); !colon {
				return NewError(UnfinishedMapIndicator, open.Start, "expected ':' after flow mapping key")
			}
			p.states.pop()
			p.states.push(InFlowMapValue)
			phase = wantValue

		case wantValue:
			// "{a: }" and "{a: , b: 1}" carry an absent value.
			switch tok.Data.(type) {
			case tokenizer.FlowMapEndData:
				p.emitRange(ScalarEventData{}, tok.Start, tok.Start)
				p.emit(MapEndData{}, tok.End)
				p.states.pop()
				return nil
			case tokenizer.CollectEntryData:
				p.emitRange(ScalarEventData{}, tok.Start, tok.Start)
				p.states.pop()
				p.states.push(InFlowMapKey)
				phase = wantKeyOrEnd
				continue
			}
			if err := p.flowNodeFromToken(tk, tok, nil); err != nil {
				return err
			}
			p.states.pop()
			p.states.push(InFlowMapKey)
			phase = wantSepOrEnd

		case wantSepOrEnd:
			switch tok.Data.(type) {
			case tokenizer.CollectEntryData:
				phase = wantKeyOrEnd
			case tokenizer.FlowMapEndData:
				p.emit(MapEndData{}, tok.End)
				p.states.pop()
				return nil
			default:
				return NewError(UnfinishedMapIndicator, open.Start, "expected ',' or '}' in flow mapping")
			}
		}
	}
}
