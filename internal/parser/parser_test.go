package parser

import (
	"testing"

	"github.com/shapestone/yamlcore/internal/scanner"
)

func assertNoError(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func eventTexts(events []Event) []string {
	out := make([]string, len(events))
	for i, e := range events {
		out[i] = e.Text()
	}
	return out
}

func assertEventTexts(t *testing.T, got []Event, want []string) {
	t.Helper()
	texts := eventTexts(got)
	if len(texts) != len(want) {
		t.Fatalf("got %d events %v, want %d events %v", len(texts), texts, len(want), want)
	}
	for i := range want {
		if texts[i] != want[i] {
			t.Errorf("event %d = %q, want %q", i, texts[i], want[i])
		}
	}
}

func TestParseTrueScalar(t *testing.T) {
	events, err := ParseToEvents("true")
	assertNoError(t, err)
	assertEventTexts(t, events, []string{
		"+STR", "+DOC", "=VAL :true", "-DOC", "-STR",
	})
}

func TestParseExplicitDocumentScalar(t *testing.T) {
	events, err := ParseToEvents("\n---\n123114")
	assertNoError(t, err)
	assertEventTexts(t, events, []string{
		"+STR", "+DOC ---", "=VAL :123114", "-DOC", "-STR",
	})
}

func TestParseNestedBlockMap(t *testing.T) {
	input := "uint_a: 500\nstr_b: \"abc\"\nbar:\n  data: false"
	events, err := ParseToEvents(input)
	assertNoError(t, err)
	assertEventTexts(t, events, []string{
		"+STR",
		"+DOC",
		"+MAP",
		"=VAL :uint_a", "=VAL :500",
		"=VAL :str_b", "=VAL :abc",
		"=VAL :bar",
		"+MAP",
		"=VAL :data", "=VAL :false",
		"-MAP",
		"-MAP",
		"-DOC",
		"-STR",
	})
}

func TestParseBlockSequencePositions(t *testing.T) {
	events, err := ParseToEvents("  - abc\n  - def\n")
	assertNoError(t, err)
	var scalars []Event
	for _, e := range events {
		if _, ok := e.Data.(ScalarEventData); ok {
			scalars = append(scalars, e)
		}
	}
	if len(scalars) != 2 {
		t.Fatalf("got %d scalars, want 2", len(scalars))
	}
	want := scanner.Position{Line: 1, Column: 5}
	if scalars[0].Start != want {
		t.Errorf("scalars[0].Start = %v, want %v", scalars[0].Start, want)
	}
}

func TestParseLiteralBlockScalar(t *testing.T) {
	events, err := ParseToEvents("--- |\n abc \n def\n")
	assertNoError(t, err)
	var got string
	for _, e := range events {
		if s, ok := e.Data.(ScalarEventData); ok {
			got = s.Text
		}
	}
	if got != "abc \ndef\n" {
		t.Fatalf("got %q, want %q", got, "abc \ndef\n")
	}
}

func TestParseLocalTag(t *testing.T) {
	events, err := ParseToEvents("!Abe 128")
	assertNoError(t, err)
	found := false
	for _, e := range events {
		if s, ok := e.Data.(ScalarEventData); ok {
			if s.Tag == nil || *s.Tag != "!Abe" || s.Text != "128" {
				t.Fatalf("scalar = %#v, want tag !Abe text 128", s)
			}
			found = true
		}
	}
	if !found {
		t.Fatal("no scalar event found")
	}
}

func TestParseFlowNestedSequences(t *testing.T) {
	events, err := ParseToEvents("[[1,2,3,4], [2,3,4,5]]")
	assertNoError(t, err)
	seqStarts, seqEnds, scalars := 0, 0, 0
	for _, e := range events {
		switch e.Data.(type) {
		case SequenceStartData:
			seqStarts++
		case SequenceEndData:
			seqEnds++
		case ScalarEventData:
			scalars++
		}
	}
	if seqStarts != 3 || seqEnds != 3 || scalars != 8 {
		t.Fatalf("seqStarts=%d seqEnds=%d scalars=%d, want 3/3/8", seqStarts, seqEnds, scalars)
	}
}

func TestParseFlowMap(t *testing.T) {
	input := `{ uint_a: 500, str_b: "abc", bar: {data: false}}`
	events, err := ParseToEvents(input)
	assertNoError(t, err)
	mapStarts, mapEnds := 0, 0
	for _, e := range events {
		switch e.Data.(type) {
		case MapStartData:
			mapStarts++
		case MapEndData:
			mapEnds++
		}
	}
	if mapStarts != 2 || mapEnds != 2 {
		t.Fatalf("mapStarts=%d mapEnds=%d, want 2/2", mapStarts, mapEnds)
	}
}

func TestParseEmptyInput(t *testing.T) {
	events, err := ParseToEvents("")
	assertNoError(t, err)
	assertEventTexts(t, events, []string{"+STR", "+DOC", "-DOC", "-STR"})

	v, err := Compose(events)
	assertNoError(t, err)
	if !v.IsNull() {
		t.Fatalf("empty document composed to %#v, want Null", v.Data)
	}
}

func TestParseExplicitDocumentEnd(t *testing.T) {
	events, err := ParseToEvents("abc\n...\n")
	assertNoError(t, err)
	assertEventTexts(t, events, []string{
		"+STR", "+DOC", "=VAL :abc", "-DOC ...", "-STR",
	})
}

func TestParseSameLineDocumentNode(t *testing.T) {
	events, err := ParseToEvents("--- abc\n")
	assertNoError(t, err)
	assertEventTexts(t, events, []string{
		"+STR", "+DOC ---", "=VAL :abc", "-DOC", "-STR",
	})
}

func TestParseMultipleDocumentsBalancedEvents(t *testing.T) {
	events, err := ParseToEvents("---\na\n---\nb\n")
	assertNoError(t, err)
	assertEventTexts(t, events, []string{
		"+STR",
		"+DOC ---", "=VAL :a", "-DOC",
		"+DOC ---", "=VAL :b", "-DOC",
		"-STR",
	})
}

func TestParseDirectivesAreRecordedNotResolved(t *testing.T) {
	events, err := ParseToEvents("%YAML 1.2\n---\nabc\n")
	assertNoError(t, err)
	assertEventTexts(t, events, []string{
		"+STR", "+DOC ---", "=VAL :abc", "-DOC", "-STR",
	})
}

func TestParseCoreTagExpansion(t *testing.T) {
	events, err := ParseToEvents("!!str abc\n")
	assertNoError(t, err)
	found := false
	for _, e := range events {
		if s, ok := e.Data.(ScalarEventData); ok {
			if s.Tag == nil || *s.Tag != "<tag:yaml.org,2002:str>" {
				t.Fatalf("scalar = %#v, want expanded core tag", s)
			}
			found = true
		}
	}
	if !found {
		t.Fatal("no scalar event found")
	}
}

func TestUnfinishedFlowReportsOpeningPosition(t *testing.T) {
	_, err := ParseToEvents("key: [1, 2\n")
	assertError(t, err, UnfinishedSequenceIndicator)
	perr := err.(*Error)
	want := scanner.Position{Line: 1, Column: 6}
	if perr.Start != want {
		t.Fatalf("error position = %v, want %v (the opening '[')", perr.Start, want)
	}

	_, err = ParseToEvents("{a: 1, b\n")
	assertError(t, err, UnfinishedMapIndicator)
	perr = err.(*Error)
	if perr.Start != (scanner.Position{Line: 1, Column: 1}) {
		t.Fatalf("error position = %v, want the opening '{'", perr.Start)
	}
}

func TestInvalidImplicitKey(t *testing.T) {
	_, err := ParseToEvents("a: 1\njunk line\n")
	assertError(t, err, InvalidImplicitKey)
}

func TestInvalidSequenceEntry(t *testing.T) {
	_, err := ParseToEvents("- a\nb c d: e: f\n")
	if err == nil {
		t.Fatal("expected an error")
	}
}

func TestDocumentMarkerInsideNestedMapping(t *testing.T) {
	_, err := ParseToEvents("a:\n  b: 1\n  c: 2\n--- d\n")
	if err != nil {
		// The marker at column 1 ends the indented mapping; a second
		// document is only rejected at compose time.
		t.Fatalf("unexpected parse error: %v", err)
	}
}

func TestFlowMapEmptyValue(t *testing.T) {
	events, err := ParseToEvents("{a: }\n")
	assertNoError(t, err)
	assertEventTexts(t, events, []string{
		"+STR", "+DOC", "+MAP", "=VAL :a", "=VAL :", "-MAP", "-DOC", "-STR",
	})
}

func TestFlowSeqTrailingComma(t *testing.T) {
	events, err := ParseToEvents("[a, b, ]\n")
	assertNoError(t, err)
	assertEventTexts(t, events, []string{
		"+STR", "+DOC", "+SEQ", "=VAL :a", "=VAL :b", "-SEQ", "-DOC", "-STR",
	})
}

func TestFlowTaggedNode(t *testing.T) {
	events, err := ParseToEvents("[!Abe 128, plain]\n")
	assertNoError(t, err)
	var tags []string
	for _, e := range events {
		if s, ok := e.Data.(ScalarEventData); ok {
			if s.Tag != nil {
				tags = append(tags, *s.Tag)
			} else {
				tags = append(tags, "")
			}
		}
	}
	if len(tags) != 2 || tags[0] != "!Abe" || tags[1] != "" {
		t.Fatalf("scalar tags = %q, want [!Abe \"\"]", tags)
	}
}

func TestBlockSequenceBareDashEntries(t *testing.T) {
	events, err := ParseToEvents("-\n-\n")
	assertNoError(t, err)
	assertEventTexts(t, events, []string{
		"+STR", "+DOC", "+SEQ", "=VAL :", "=VAL :", "-SEQ", "-DOC", "-STR",
	})

	events, err = ParseToEvents("-\n  nested: 1\n- plain\n")
	assertNoError(t, err)
	assertEventTexts(t, events, []string{
		"+STR", "+DOC", "+SEQ",
		"+MAP", "=VAL :nested", "=VAL :1", "-MAP",
		"=VAL :plain",
		"-SEQ", "-DOC", "-STR",
	})
}

func TestBlockMapKeyOnlyLineWithComment(t *testing.T) {
	events, err := ParseToEvents("a: # note\n  b: 1\n")
	assertNoError(t, err)
	assertEventTexts(t, events, []string{
		"+STR", "+DOC", "+MAP",
		"=VAL :a", "+MAP", "=VAL :b", "=VAL :1", "-MAP",
		"-MAP", "-DOC", "-STR",
	})
}

func TestBlockMapEmptyValueAtSameIndent(t *testing.T) {
	events, err := ParseToEvents("a:\nb: 1\n")
	assertNoError(t, err)
	assertEventTexts(t, events, []string{
		"+STR", "+DOC", "+MAP",
		"=VAL :a", "=VAL :",
		"=VAL :b", "=VAL :1",
		"-MAP", "-DOC", "-STR",
	})
}

func TestEventPositionsNonDecreasing(t *testing.T) {
	inputs := []string{
		"a: 1\nb:\n  - x\n  - y\nc: [1, {d: 2}]\n",
		"--- |\n text\n",
		"  - abc\n  - def\n",
	}
	for _, input := range inputs {
		events, err := ParseToEvents(input)
		assertNoError(t, err)
		prev := scanner.Position{Line: 1, Column: 1}
		for i, e := range events {
			if e.Start.IsEOF() {
				continue
			}
			if e.Start.Before(prev) {
				t.Fatalf("input %q: event %d at %v precedes %v", input, i, e.Start, prev)
			}
			prev = e.Start
		}
	}
}

func TestErrorTextRoundTrip(t *testing.T) {
	e := NewError(InvalidBool, scanner.Position{Line: 3, Column: 7}, "invalid bool %q", "yes")
	text := e.Error()
	parsed, err := ParseError(text)
	assertNoError(t, err)
	if parsed.Kind != InvalidBool || parsed.Message != e.Message {
		t.Fatalf("round-trip mismatch: got %+v, want %+v", parsed, e)
	}
}
