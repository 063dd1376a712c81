package sourcemap

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rubyjs/compiler/ast"
)

// decodeVLQ is the inverse of EncodeVLQ: it reads one signed value starting
// at i and returns it plus the index just past its last digit.
func decodeVLQ(s string, i int) (int, int) {
	result := 0
	shift := 0
	for {
		digit := strings.IndexByte(base64Alphabet, s[i])
		i++
		cont := digit&vlqContinueBit != 0
		result |= (digit & vlqBaseMask) << shift
		shift += vlqBaseShift
		if !cont {
			break
		}
	}
	value := result >> 1
	if result&1 != 0 {
		value = -value
	}
	return value, i
}

// decodeMappingsLine decodes one semicolon-delimited group of the Source
// Map v3 mappings string into absolute (not delta-encoded) field values.
// The output column restarts on every line; the source index, line and
// column carry over between lines through prev.
func decodeMappingsLine(line string, prev *[3]int) [][]int {
	var out [][]int
	prevOutCol := 0
	for _, seg := range strings.Split(line, ",") {
		if seg == "" {
			continue
		}
		var fields []int
		for i := 0; i < len(seg); {
			var v int
			v, i = decodeVLQ(seg, i)
			fields = append(fields, v)
		}
		prevOutCol += fields[0]
		abs := []int{prevOutCol}
		if len(fields) > 1 {
			prev[0] += fields[1]
			prev[1] += fields[2]
			prev[2] += fields[3]
			abs = append(abs, prev[0], prev[1], prev[2])
		}
		out = append(out, abs)
	}
	return out
}

// TestScenarioSourceMapRoundTrip covers spec §8 scenario 6: three
// top-level assignments, each recorded as a segment at the output line its
// `=` token renders on, decode back to the source line they came from.
func TestScenarioSourceMapRoundTrip(t *testing.T) {
	src := ast.NewSource("three.rb", []byte("a = 1\nb = 2\nc = 3\n"))
	b := NewBuilder("three.js")
	b.Record(Segment{OutLine: 0, OutColumn: 2, Source: src, SourceLine: 1, SourceColumn: 2, Name: "a"})
	b.Record(Segment{OutLine: 1, OutColumn: 2, Source: src, SourceLine: 2, SourceColumn: 2, Name: "b"})
	b.Record(Segment{OutLine: 2, OutColumn: 2, Source: src, SourceLine: 3, SourceColumn: 2, Name: "c"})

	m := b.Build()
	require.Len(t, m.Sources, 1, "identical Source pointer must dedupe to one sources[] entry")
	assert.Equal(t, "three.rb", m.Sources[0])
	assert.Equal(t, []string{"a", "b", "c"}, m.Names)

	lines := strings.Split(m.Mappings, ";")
	require.Len(t, lines, 3)
	var prev [3]int
	for outLine, line := range lines {
		decoded := decodeMappingsLine(line, &prev)
		require.Len(t, decoded, 1)
		fields := decoded[0]
		assert.Equal(t, 2, fields[0], "output column")
		assert.Equal(t, 0, fields[1], "source index")
		assert.Equal(t, outLine+1, fields[2], "source line must match the assignment's own line")
	}
}

// TestScenarioSourceMapDedupesIdenticalContent verifies the Hash()-based
// dedup key: two distinct *ast.Source values holding byte-identical text
// (e.g. the same template re-read through two different names) collapse to
// a single sources[] entry, while two Sources with different text do not.
func TestScenarioSourceMapDedupesIdenticalContent(t *testing.T) {
	text := []byte("x = 1\n")
	srcA := ast.NewSource("a.rb", text)
	srcB := ast.NewSource("b.rb", text)
	srcC := ast.NewSource("c.rb", []byte("y = 2\n"))

	b := NewBuilder("out.js")
	b.Record(Segment{OutLine: 0, OutColumn: 0, Source: srcA, SourceLine: 1, SourceColumn: 0})
	b.Record(Segment{OutLine: 1, OutColumn: 0, Source: srcB, SourceLine: 1, SourceColumn: 0})
	b.Record(Segment{OutLine: 2, OutColumn: 0, Source: srcC, SourceLine: 1, SourceColumn: 0})

	m := b.Build()
	require.Len(t, m.Sources, 2, "identical-content sources dedupe, distinct-content ones don't")
}
