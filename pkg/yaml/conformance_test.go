package yaml_test

// Scenarios ported from spec.md §8 Testable Properties, hand-authored since
// no YAML test-suite fixture directory was retrieved alongside the spec.
// Structured after original_source/src/tree.rs's yaml_test_suit harness: one
// case per scenario, asserting on event text and/or composed coercions.

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shapestone/yamlcore/pkg/yaml"
)

// TestConformanceEventText pins the exact event textual form against
// hand-authored golden streams, the way the YAML test suite's test.event
// files would be compared if a fixture directory were present.
func TestConformanceEventText(t *testing.T) {
	cases := []struct {
		name       string
		input      string
		wantEvents []string
	}{
		{
			name:       "bare scalar",
			input:      "true",
			wantEvents: []string{"+STR", "+DOC", "=VAL :true", "-DOC", "-STR"},
		},
		{
			name:       "explicit document",
			input:      "\n---\n123114",
			wantEvents: []string{"+STR", "+DOC ---", "=VAL :123114", "-DOC", "-STR"},
		},
		{
			name:  "block sequence",
			input: "- a\n- b\n",
			wantEvents: []string{
				"+STR", "+DOC", "+SEQ", "=VAL :a", "=VAL :b", "-SEQ", "-DOC", "-STR",
			},
		},
		{
			name:  "nested block map",
			input: "uint_a: 500\nbar:\n  data: false\n",
			wantEvents: []string{
				"+STR", "+DOC", "+MAP",
				"=VAL :uint_a", "=VAL :500",
				"=VAL :bar", "+MAP", "=VAL :data", "=VAL :false", "-MAP",
				"-MAP", "-DOC", "-STR",
			},
		},
		{
			name:  "literal block scalar",
			input: "--- |\n abc \n def\n",
			wantEvents: []string{
				"+STR", "+DOC ---", `=VAL |abc \ndef\n`, "-DOC", "-STR",
			},
		},
		{
			name:       "local tag",
			input:      "!Abe 128",
			wantEvents: []string{"+STR", "+DOC", "=VAL !Abe :128", "-DOC", "-STR"},
		},
		{
			name:  "core tag expansion",
			input: "!!str abc",
			wantEvents: []string{
				"+STR", "+DOC", "=VAL <tag:yaml.org,2002:str> :abc", "-DOC", "-STR",
			},
		},
		{
			name:  "flow collections",
			input: "{a: [1, 2], b: x}",
			wantEvents: []string{
				"+STR", "+DOC", "+MAP",
				"=VAL :a", "+SEQ", "=VAL :1", "=VAL :2", "-SEQ",
				"=VAL :b", "=VAL :x",
				"-MAP", "-DOC", "-STR",
			},
		},
		{
			name:       "explicit document end",
			input:      "abc\n...\n",
			wantEvents: []string{"+STR", "+DOC", "=VAL :abc", "-DOC ...", "-STR"},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			events, err := yaml.Events(tc.input)
			require.NoError(t, err)
			got := make([]string, len(events))
			for i, e := range events {
				got[i] = e.Text()
			}
			assert.Equal(t, tc.wantEvents, got)
		})
	}
}

func TestConformanceScenario1TrueScalar(t *testing.T) {
	v, err := yaml.ParseText("true")
	require.NoError(t, err)
	b, err := v.AsBool()
	require.NoError(t, err)
	assert.True(t, b)
}

func TestConformanceScenario2ExplicitDocument(t *testing.T) {
	events, err := yaml.Events("\n---\n123114")
	require.NoError(t, err)
	require.Len(t, events, 5)
	assert.Equal(t, "+DOC ---", events[1].Text())

	v, err := yaml.ParseText("\n---\n123114")
	require.NoError(t, err)
	n, err := v.AsU32()
	require.NoError(t, err)
	assert.Equal(t, uint32(123114), n)
}

func TestConformanceScenario3NestedMap(t *testing.T) {
	v, err := yaml.ParseText("uint_a: 500\nstr_b: \"abc\"\nbar:\n  data: false\n")
	require.NoError(t, err)
	m, err := v.AsMap()
	require.NoError(t, err)
	assert.Equal(t, 3, m.Len())

	bar, ok := m.Get("bar")
	require.True(t, ok)
	nested, err := bar.AsMap()
	require.NoError(t, err)
	data, ok := nested.Get("data")
	require.True(t, ok)
	b, err := data.AsBool()
	require.NoError(t, err)
	assert.False(t, b)
}

func TestConformanceScenario4SequencePositions(t *testing.T) {
	events, err := yaml.Events("  - abc\n  - def\n")
	require.NoError(t, err)

	var scalars, seqStarts, seqEnds []yaml.Event
	for _, e := range events {
		switch e.Text() {
		case "+SEQ":
			seqStarts = append(seqStarts, e)
		case "-SEQ":
			seqEnds = append(seqEnds, e)
		case "=VAL :abc", "=VAL :def":
			scalars = append(scalars, e)
		}
	}
	require.Len(t, scalars, 2)
	require.Len(t, seqStarts, 1)
	require.Len(t, seqEnds, 1)

	assert.Equal(t, "line 1 column 5", scalars[0].Start.String())
	assert.Equal(t, "line 1 column 7", scalars[0].End.String())
	assert.Equal(t, "line 2 column 5", scalars[1].Start.String())
	assert.Equal(t, "line 2 column 7", scalars[1].End.String())
	assert.Equal(t, "line 1 column 1", seqStarts[0].Start.String())
	assert.Equal(t, "line 2 column 8", seqEnds[0].Start.String())
}

func TestConformanceScenario5LiteralBlockScalar(t *testing.T) {
	v, err := yaml.ParseText("--- |\n abc \n def\n")
	require.NoError(t, err)
	s, err := v.AsStr()
	require.NoError(t, err)
	assert.Equal(t, "abc \ndef\n", s)
}

func TestConformanceScenario6LocalTag(t *testing.T) {
	v, err := yaml.ParseText("!Abe 128")
	require.NoError(t, err)
	assert.Equal(t, "!Abe", v.TagName())

	// as_str on a tagged scalar yields the tag name, the discriminator an
	// external binding switches on (spec.md §4.6) — not the wrapped content.
	discriminator, err := v.AsStr()
	require.NoError(t, err)
	assert.Equal(t, "!Abe", discriminator)

	// Reaching the wrapped scalar itself requires unwrapping the tag.
	tag, ok := v.Data.(yaml.TagData)
	require.True(t, ok)
	inner := &yaml.Value{Data: tag.Data, Start: v.Start, End: v.End}
	n, err := inner.AsI64()
	require.NoError(t, err)
	assert.Equal(t, int64(128), n)
}

func TestConformanceScenario7FlowNestedSequences(t *testing.T) {
	v, err := yaml.ParseText("[[1,2,3,4], [2,3,4,5]]")
	require.NoError(t, err)
	outer, err := v.AsSequence()
	require.NoError(t, err)
	require.Len(t, outer, 2)
	first, err := outer[0].AsSequence()
	require.NoError(t, err)
	require.Len(t, first, 4)
	last, err := first[3].AsI64()
	require.NoError(t, err)
	assert.Equal(t, int64(4), last)
}

func TestConformanceScenario8FlowMapMatchesBlockForm(t *testing.T) {
	flow, err := yaml.ParseText(`{ uint_a: 500, str_b: "abc", bar: {data: false}}`)
	require.NoError(t, err)
	block, err := yaml.ParseText("uint_a: 500\nstr_b: \"abc\"\nbar:\n  data: false\n")
	require.NoError(t, err)

	flowMap, err := flow.AsMap()
	require.NoError(t, err)
	blockMap, err := block.AsMap()
	require.NoError(t, err)
	assert.Equal(t, blockMap.Len(), flowMap.Len())

	for _, key := range []string{"uint_a", "str_b", "bar"} {
		fv, ok := flowMap.Get(key)
		require.True(t, ok)
		bv, ok := blockMap.Get(key)
		require.True(t, ok)
		fs, _ := fv.AsStr()
		bs, _ := bv.AsStr()
		if key != "bar" {
			assert.Equal(t, bs, fs)
		}
	}
}
