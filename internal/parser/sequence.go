package parser

import (
	"strings"

	"github.com/shapestone/yamlcore/internal/tokenizer"
)

// handleBlockSeq implements spec.md §4.4's handle_block_seq: emits
// SequenceStart, consumes "-"/"- <node>" entries at or above indent, and
// emits SequenceEnd.
func (p *Parser) handleBlockSeq(indent int, tag *string) error {
	startPos := p.s.DonePos()
	p.emit(SequenceStartData{Tag: tag}, startPos)
	p.states.push(InBlockSequence)
	prevDone := p.s.DonePos()

	for {
		p.skipBlankAndCommentLines()
		if p.s.IsEmpty() {
			break
		}
		line := p.s.PeekLine()
		curIndent := leadingIndent(line)
		// A document marker at column 1 ends every open container; the
		// stream loop decides what to do with it.
		if curIndent == 0 && isDocumentMarker(line) {
			break
		}
		if curIndent < indent {
			break
		}
		trimmed := line[curIndent:]

		switch {
		case strings.TrimRight(trimmed, " \t") == "-":
			p.s.NextLine()
			entryDone := false
			if !p.s.IsEmpty() {
				next := p.s.PeekLine()
				nextIndent := leadingIndent(next)
				// The entry's node must sit deeper than its "-"; a line at
				// the same indent is the next entry and this one is empty.
				if nextIndent > curIndent {
					if err := p.handleNode(nextIndent, nextIndent, nil); err != nil {
						return err
					}
					entryDone = true
				}
			}
			if !entryDone {
				pos := p.s.DonePos()
				p.emitRange(ScalarEventData{}, pos, pos)
			}
		case strings.HasPrefix(trimmed, "- "):
			p.s.AdvanceOffset(curIndent + 2)
			if err := p.handleNode(0, curIndent+2, nil); err != nil {
				return err
			}
		default:
			return NewError(InvalidSequenceStartIndicator, p.s.DonePos(), "expected a block sequence entry")
		}

		done := p.s.DonePos()
		if done == prevDone {
			return NewError(Bug, done, "parser made no progress in block sequence")
		}
		prevDone = done
	}

	p.emit(SequenceEndData{}, p.s.DonePos())
	p.states.pop()
	return nil
}

// handleFlowSeq parses a "[...]" region through the tokenizer, which owns
// the flow-depth tracking. The opening "[" has not yet been consumed when
// this is called; the scanner must be positioned directly on it.
func (p *Parser) handleFlowSeq(tag *string) error {
	tk := tokenizer.New(p.s, false)
	open, ok, err := tk.Next()
	if err != nil {
		return wrapScalarErr(err, p.s.DonePos())
	}
	if !ok {
		return NewError(Bug, p.s.DonePos(), "expected '[' at start of flow sequence")
	}
	return p.flowSeqBody(tk, open, tag)
}

// flowSeqBody consumes a flow sequence's entries after its opening token.
// Unterminated regions report the opening delimiter's position, not the end
// of input.
func (p *Parser) flowSeqBody(tk *tokenizer.Tokenizer, open tokenizer.Token, tag *string) error {
	p.emit(SequenceStartData{Tag: tag}, open.Start)
	p.states.push(InFlowSequence)

	expectNode := true
	for {
		tok, ok, err := tk.Next()
		if err != nil {
			return wrapScalarErr(err, open.Start)
		}
		if !ok {
			return NewError(UnfinishedSequenceIndicator, open.Start, "unterminated flow sequence")
		}
		switch tok.Data.(type) {
		case tokenizer.FlowSequenceEndData:
			p.emit(SequenceEndData{}, tok.End)
			p.states.pop()
			return nil
		case tokenizer.CollectEntryData:
			if expectNode {
				return NewError(UnfinishedSequenceIndicator, open.Start, "unexpected ',' in flow sequence")
			}
			expectNode = true
		default:
			if !expectNode {
				return NewError(UnfinishedSequenceIndicator, open.Start, "expected ',' or ']' in flow sequence")
			}
			if err := p.flowNodeFromToken(tk, tok, nil); err != nil {
				return err
			}
			expectNode = false
		}
	}
}

// flowNodeFromToken emits the events for the single flow node starting at
// tok, recursing into nested flow collections through the shared tokenizer.
func (p *Parser) flowNodeFromToken(tk *tokenizer.Tokenizer, tok tokenizer.Token, tag *string) error {
	switch d := tok.Data.(type) {
	case tokenizer.ScalarData:
		if err := plainStartError(d.Text, tok.Start); err != nil {
			return err
		}
		p.emitRange(ScalarEventData{Tag: tag, Text: d.Text}, tok.Start, tok.End)
		return nil
	case tokenizer.LocalTagData:
		innerTag := expandFlowTag(d.Name)
		next, ok, err := tk.Next()
		if err != nil {
			return wrapScalarErr(err, tok.Start)
		}
		if !ok {
			return NewError(Bug, tok.Start, "input ended after a tag in flow context")
		}
		return p.flowNodeFromToken(tk, next, innerTag)
	case tokenizer.FlowSequenceStartData:
		return p.flowSeqBody(tk, tok, tag)
	case tokenizer.FlowMapStartData:
		return p.flowMapBody(tk, tok, tag)
	default:
		return NewError(UnexpectedYamlNodeType, tok.Start, "unexpected token in flow context")
	}
}

// expandFlowTag rebuilds a tokenizer LocalTagData name (collected without
// its leading "!") into the expanded tag form, or nil for the non-specific
// bare "!" tag.
func expandFlowTag(name string) *string {
	if name == "" {
		return nil
	}
	expanded := coreTagName("!" + name)
	return &expanded
}
