package sourcemap

import (
	"testing"

	"github.com/rubyjs/compiler/ast"
)

func TestEncodeVLQRoundTripsKnownValues(t *testing.T) {
	cases := map[int]string{0: "A", 1: "C", -1: "D", 15: "e", 16: "gB"}
	for v, want := range cases {
		got := string(EncodeVLQ(nil, v))
		if got != want {
			t.Fatalf("EncodeVLQ(%d) = %q, want %q", v, got, want)
		}
	}
}

func TestBuilderProducesDeduplicatedSources(t *testing.T) {
	src := ast.NewSource("a.rb", []byte("x = 1\ny = 2\n"))
	b := NewBuilder("out.js")
	b.Record(Segment{OutLine: 0, OutColumn: 0, Source: src, SourceLine: 1, SourceColumn: 0})
	b.Record(Segment{OutLine: 0, OutColumn: 4, Source: src, SourceLine: 1, SourceColumn: 4})
	b.Record(Segment{OutLine: 1, OutColumn: 0, Source: src, SourceLine: 2, SourceColumn: 0})

	m := b.Build()
	if len(m.Sources) != 1 || m.Sources[0] != "a.rb" {
		t.Fatalf("expected one deduplicated source, got %v", m.Sources)
	}
	if m.Version != 3 {
		t.Fatalf("expected version 3, got %d", m.Version)
	}
	if m.Mappings == "" {
		t.Fatal("expected non-empty mappings")
	}
}
