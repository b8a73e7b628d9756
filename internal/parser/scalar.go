package parser

import (
	"strings"

	"github.com/shapestone/yamlcore/internal/scanner"
	"github.com/shapestone/yamlcore/internal/tokenizer"
)

// readDoubleQuoted and readSingleQuoted are thin pass-throughs to
// internal/tokenizer's scalar readers, kept as local names so the block-level
// handlers in this file read uniformly.
func readDoubleQuoted(s *scanner.Scanner) (string, error) { return tokenizer.ReadDoubleQuoted(s) }
func readSingleQuoted(s *scanner.Scanner) (string, error) { return tokenizer.ReadSingleQuoted(s) }

// wrapScalarErr converts a tokenizer sentinel error into a position-bearing
// parser Error.
func wrapScalarErr(err error, pos scanner.Position) error {
	switch err {
	case tokenizer.ErrUnfinishedQuote:
		return NewError(UnfinishedQuote, pos, "unterminated quoted scalar")
	case tokenizer.ErrInvalidEscapeScalar:
		return NewError(InvalidEscapeScalar, pos, "invalid escape sequence")
	default:
		return NewError(Bug, pos, "%v", err)
	}
}

// plainStartError validates the first character of a plain scalar or
// implicit key per YAML 1.2.2 §7.3.3: reserved indicators may not start a
// plain scalar, and ":", "?", "-" may start one only when not followed by a
// space. Returns nil when text is a valid plain scalar start.
func plainStartError(text string, pos scanner.Position) *Error {
	if text == "" {
		return nil
	}
	r := []rune(text)[0]
	switch r {
	case '@', '`':
		return NewError(StartWithReservedIndicator, pos, "%q is a reserved indicator", r)
	case ',', ']', '}', '#', '&', '*', '%', '!', '|', '>', '\'', '"', '[', '{':
		return NewError(InvalidPlainScalarStart, pos, "plain scalar may not start with %q", r)
	case ':', '?', '-':
		if len(text) == 1 || text[1] == ' ' || text[1] == '\t' {
			return NewError(InvalidPlainScalarStart, pos, "%q may start a plain scalar only when not followed by a space", r)
		}
	}
	return nil
}

// handleFlowScalar parses a standalone quoted scalar encountered directly as
// a node in block context (spec.md §4.4's "begins with ' or \"" branch):
// indent-insensitive, and followed only by an optional comment to end of
// line. The scanner must be positioned on the opening quote.
func (p *Parser) handleFlowScalar(tag *string) error {
	start := p.s.DonePos()
	r, _ := p.s.PeekChar()
	p.s.NextChar()

	var text string
	var err error
	if r == '"' {
		text, err = readDoubleQuoted(p.s)
	} else {
		text, err = readSingleQuoted(p.s)
	}
	if err != nil {
		return wrapScalarErr(err, start)
	}
	// DonePos() lands one column past the closing quote; back it up to the
	// quote's own coordinate so End stays inclusive (spec.md §3). The quote
	// itself is never a line break, so the same line/column arithmetic
	// always applies.
	afterQuote := p.s.DonePos()
	end := scanner.Position{Line: afterQuote.Line, Column: afterQuote.Column - 1}
	if err := p.expectCommentOrLineBreak(start); err != nil {
		return err
	}
	p.emitRange(ScalarEventData{Tag: tag, Text: text}, start, end)
	return nil
}

// handlePlainScalarNode implements the "Plain (unquoted)" rules of spec.md
// §4.4.1: accumulates lines at or above restIndent, line-folding them,
// stopping at a line that looks like the start of a different construct or
// at a "#" comment preceded by whitespace.
func (p *Parser) handlePlainScalarNode(tag *string, firstIndent, restIndent int) error {
	start := p.s.DonePos()
	end := start
	var lines []string
	first := true

	for {
		if p.s.IsEmpty() {
			break
		}
		line := p.s.PeekLine()
		indent := leadingIndent(line)

		if !first {
			if strings.TrimSpace(line) == "" {
				lines = append(lines, "")
				p.s.NextLine()
				continue
			}
			if indent < restIndent {
				break
			}
			trimmedPeek := line[indent:]
			if indent == 0 && isDocumentMarker(trimmedPeek) {
				break
			}
			if trimmedPeek == "-" || strings.HasPrefix(trimmedPeek, "- ") || strings.HasPrefix(trimmedPeek, "#") {
				break
			}
			contentPeek := trimmedPeek
			if idx := strings.Index(contentPeek, " #"); idx >= 0 {
				contentPeek = contentPeek[:idx]
			}
			if strings.Contains(contentPeek, ": ") {
				return NewError(AmbiguityPlainScalar, p.s.DonePos(), "plain scalar continuation looks like a mapping key")
			}
		}

		content := line[indent:]
		if idx := strings.Index(content, " #"); idx >= 0 {
			content = content[:idx]
		}
		content = strings.TrimRight(content, " \t")
		if first {
			if err := plainStartError(content, start); err != nil {
				return err
			}
		}

		lineStart := p.s.DonePos()
		if content != "" {
			end = scanner.Position{
				Line:   lineStart.Line,
				Column: lineStart.Column + indent + len([]rune(content)) - 1,
			}
		}
		lines = append(lines, content)
		p.s.NextLine()
		first = false
	}

	// Trailing blank lines belong to whatever follows, not to the scalar.
	for len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}

	text := tokenizer.FoldLines(lines)
	p.emitRange(ScalarEventData{Tag: tag, Text: text}, start, end)
	return nil
}

// chompMode is the trailing-line-break policy for block scalars.
type chompMode int

const (
	chompClip chompMode = iota
	chompStrip
	chompKeep
)

// foldBlockLines folds a folded ('>') block scalar's content lines per YAML
// 1.2.2 §8.1.3: runs of equally-indented non-empty lines fold to single
// spaces, empty lines become line breaks, and more-indented lines are kept
// literal with breaks on both sides.
func foldBlockLines(lines []string) string {
	var out strings.Builder
	brokeWithNewline := false
	prevMore := false
	for i, line := range lines {
		more := strings.HasPrefix(line, " ") || strings.HasPrefix(line, "\t")
		if i == 0 {
			out.WriteString(line)
			prevMore = more
			continue
		}
		if line == "" {
			out.WriteByte('\n')
			brokeWithNewline = true
			prevMore = false
			continue
		}
		if !brokeWithNewline {
			if more || prevMore {
				out.WriteByte('\n')
			} else {
				out.WriteByte(' ')
			}
		}
		out.WriteString(line)
		brokeWithNewline = false
		prevMore = more
	}
	return out.String()
}

// handleBlockScalarNode implements the literal ("|") and folded (">") block
// scalar header and body rules of spec.md §4.4.1. The scanner must be
// positioned on the "|" or ">" indicator.
func (p *Parser) handleBlockScalarNode(tag *string, enclosingIndent int) error {
	start := p.s.DonePos()
	r, _ := p.s.PeekChar()
	literal := r == '|'
	p.s.NextChar()

	indentIndicator := 0
	chomp := chompClip
header:
	for i := 0; i < 2; i++ {
		c, ok := p.s.PeekChar()
		if !ok {
			break
		}
		switch {
		case c >= '1' && c <= '9' && indentIndicator == 0:
			indentIndicator = int(c - '0')
			p.s.NextChar()
		case c == '+':
			chomp = chompKeep
			p.s.NextChar()
		case c == '-':
			chomp = chompStrip
			p.s.NextChar()
		default:
			break header
		}
	}
	if err := p.expectCommentOrLineBreak(start); err != nil {
		return err
	}

	baseIndent := enclosingIndent + indentIndicator
	if indentIndicator == 0 {
		baseIndent = p.s.CountBlockIndentation()
	}

	var lines []string
	for {
		if p.s.IsEmpty() {
			break
		}
		line := p.s.PeekLine()
		if strings.TrimRight(line, " \t") == "" {
			// All-space lines are content when indented past the base, and
			// empty output lines otherwise; they never terminate the scalar.
			if leadingIndent(line) >= baseIndent {
				lines = append(lines, line[baseIndent:])
			} else {
				lines = append(lines, "")
			}
			p.s.NextLine()
			continue
		}
		if leadingIndent(line) < baseIndent {
			break
		}
		lines = append(lines, line[baseIndent:])
		p.s.NextLine()
	}

	var text string
	if literal {
		text = strings.Join(lines, "\n")
	} else {
		text = foldBlockLines(lines)
	}
	if len(lines) > 0 {
		text += "\n"
	}

	switch chomp {
	case chompStrip:
		text = strings.TrimRight(text, "\n")
	case chompKeep:
		// retain all trailing breaks as accumulated
	default: // chompClip
		text = strings.TrimRight(text, "\n")
		if text != "" {
			text += "\n"
		}
	}

	end := p.s.DonePos()
	p.emitRange(ScalarEventData{Tag: tag, Text: text, Literal: true}, start, end)
	return nil
}
