package tokenizer

import (
	"errors"
	"strings"

	"github.com/shapestone/yamlcore/internal/scanner"
)

// Sentinel errors returned by the scalar readers. internal/parser wraps these
// into a position-bearing ErrorKind (UnfinishedQuote / InvalidEscapeScalar).
var (
	ErrUnfinishedQuote     = errors.New("unfinished quoted scalar")
	ErrInvalidEscapeScalar = errors.New("invalid escape sequence")
)

// lineFolder implements the line-folding state machine shared by quoted and
// unquoted scalar reading: runs of trailing whitespace collapse to a single
// space, a lone line break folds to a space, and a run of two or more line
// breaks folds to one '\n' per break after the first.
//
// Grounded on original_source/src/scalar_str.rs::process_with_line_folding.
type lineFolder struct {
	pendingSpace   bool
	droppedNewline bool
}

func (f *lineFolder) feed(r rune, s *scanner.Scanner, out *strings.Builder) {
	switch {
	case r == ' ' || r == '\t':
		f.pendingSpace = true
	case r == '\n':
		f.pendingSpace = false
		if f.droppedNewline {
			out.WriteByte('\n')
			return
		}
		if next, ok := s.PeekChar(); ok && next == '\n' {
			f.droppedNewline = true
			return
		}
		f.pendingSpace = true
	default:
		if f.pendingSpace {
			out.WriteByte(' ')
			f.pendingSpace = false
		}
		out.WriteRune(r)
		f.droppedNewline = false
	}
}

// ReadDoubleQuoted reads a double-quoted scalar's content, assuming the
// opening '"' has already been consumed by the caller. It stops at the
// matching unescaped '"'.
//
// Grounded on original_source/src/scalar_str.rs::read_double_quoted_str.
func ReadDoubleQuoted(s *scanner.Scanner) (string, error) {
	var out strings.Builder
	var folder lineFolder
	for {
		r, ok := s.NextChar()
		if !ok {
			return "", ErrUnfinishedQuote
		}
		if r == '"' {
			return out.String(), nil
		}
		if r == '\\' {
			esc, err := ReadEscapedChar(s)
			if err != nil {
				return "", err
			}
			if folder.pendingSpace {
				out.WriteByte(' ')
				folder.pendingSpace = false
			}
			out.WriteRune(esc)
			folder.droppedNewline = false
			continue
		}
		folder.feed(r, s, &out)
	}
}

// ReadSingleQuoted reads a single-quoted scalar's content, assuming the
// opening "'" has already been consumed. A doubled "''" is a literal "'";
// any other character goes through line folding.
//
// Grounded on original_source/src/scalar_str.rs::read_single_quoted_str.
func ReadSingleQuoted(s *scanner.Scanner) (string, error) {
	var out strings.Builder
	var folder lineFolder
	for {
		r, ok := s.NextChar()
		if !ok {
			return "", ErrUnfinishedQuote
		}
		if r == '\'' {
			if next, ok2 := s.PeekChar(); ok2 && next == '\'' {
				s.NextChar()
				if folder.pendingSpace {
					out.WriteByte(' ')
					folder.pendingSpace = false
				}
				out.WriteByte('\'')
				folder.droppedNewline = false
				continue
			}
			return out.String(), nil
		}
		folder.feed(r, s, &out)
	}
}

// ReadEscapedChar reads one escape sequence immediately following a
// consumed backslash inside a double-quoted scalar.
//
// Grounded on original_source/src/scalar_str.rs::read_escaped_char.
func ReadEscapedChar(s *scanner.Scanner) (rune, error) {
	r, ok := s.NextChar()
	if !ok {
		return 0, ErrUnfinishedQuote
	}
	switch r {
	case '0':
		return 0, nil
	case 'a':
		return '\a', nil
	case 'b':
		return '\b', nil
	case 't':
		return '\t', nil
	case 'n':
		return '\n', nil
	case 'v':
		return '\v', nil
	case 'f':
		return '\f', nil
	case 'r':
		return '\r', nil
	case 'e':
		return '\x1b', nil
	case '"':
		return '"', nil
	case '\\':
		return '\\', nil
	case '/':
		return '/', nil
	case ' ':
		return ' ', nil
	case 'N':
		return '', nil
	case '_':
		return ' ', nil
	case 'L':
		return ' ', nil
	case 'P':
		return ' ', nil
	case 'x':
		return readHexDigits(s, 2)
	case 'u':
		return readHexDigits(s, 4)
	case 'U':
		return readHexDigits(s, 8)
	default:
		return 0, ErrInvalidEscapeScalar
	}
}

func readHexDigits(s *scanner.Scanner, n int) (rune, error) {
	var v rune
	for i := 0; i < n; i++ {
		r, ok := s.NextChar()
		if !ok {
			return 0, ErrInvalidEscapeScalar
		}
		digit, ok := hexDigit(r)
		if !ok {
			return 0, ErrInvalidEscapeScalar
		}
		v = v*16 + rune(digit)
	}
	return v, nil
}

func hexDigit(r rune) (int, bool) {
	switch {
	case r >= '0' && r <= '9':
		return int(r - '0'), true
	case r >= 'a' && r <= 'f':
		return int(r-'a') + 10, true
	case r >= 'A' && r <= 'F':
		return int(r-'A') + 10, true
	default:
		return 0, false
	}
}

// ReadUnquotedStr reads a flow-context plain scalar: characters are folded
// via lineFolder until a rune satisfying stopAt is peeked (not consumed) or
// input is exhausted. Any whitespace buffered but never flushed (because the
// scalar ended before a following non-space character) is dropped, which is
// exactly the "plain scalars never carry trailing whitespace" rule.
//
// Grounded on original_source/src/scalar_str.rs::read_unquoted_str, narrowed
// to the flow-scalar case; block-context plain scalars are handled at the
// line level by internal/parser/scalar.go (see DESIGN.md).
func ReadUnquotedStr(s *scanner.Scanner, stopAt func(rune) bool) string {
	var out strings.Builder
	var folder lineFolder
	for {
		r, ok := s.PeekChar()
		if !ok || stopAt(r) {
			return out.String()
		}
		s.NextChar()
		folder.feed(r, s, &out)
	}
}

// ReadFlowPlainStr reads a flow-context plain scalar with the delimiter rules
// of YAML 1.2.2 §7.3.3: it stops at flow indicators and line breaks, at "#"
// preceded by whitespace, and at ":" only when the colon is followed by
// whitespace, a flow delimiter, or end of input — so "a:b" and "http://x"
// stay single scalars while "a: 1" splits at the colon. Trailing whitespace
// is never emitted.
func ReadFlowPlainStr(s *scanner.Scanner) string {
	var out strings.Builder
	var folder lineFolder
	for {
		r, ok := s.PeekChar()
		if !ok {
			break
		}
		stop := false
		switch r {
		case ',', '[', ']', '{', '}', '\n':
			stop = true
		case '#':
			stop = folder.pendingSpace
		case ':':
			next, has := s.PeekCharAt(1)
			if !has || next == ' ' || next == '\t' || next == '\n' ||
				next == ',' || next == ']' || next == '}' {
				stop = true
			}
		}
		if stop {
			break
		}
		s.NextChar()
		folder.feed(r, s, &out)
	}
	return out.String()
}

// FoldLines folds a sequence of already-trimmed content lines into a single
// string per YAML plain-scalar/block-scalar line folding: the first line is
// taken verbatim, an empty line becomes a '\n', and a non-empty line
// following a non-empty line is joined with a single space.
//
// Grounded on original_source/src/scalar.rs::fold_string.
func FoldLines(lines []string) string {
	var out strings.Builder
	hasNewlineBreak := false
	for i, line := range lines {
		if i == 0 {
			out.WriteString(line)
			continue
		}
		if line == "" {
			hasNewlineBreak = true
			out.WriteByte('\n')
			continue
		}
		if !hasNewlineBreak {
			out.WriteByte(' ')
		}
		out.WriteString(line)
		hasNewlineBreak = false
	}
	return out.String()
}
