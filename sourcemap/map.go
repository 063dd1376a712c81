package sourcemap

import (
	"strconv"
	"strings"

	"github.com/rubyjs/compiler/ast"
)

// Map is the Source Map v3 object described in spec §4.5.11.
type Map struct {
	Version  int      `json:"version"`
	File     string   `json:"file,omitempty"`
	Sources  []string `json:"sources"`
	Names    []string `json:"names"`
	Mappings string   `json:"mappings"`
}

// Segment captures one output token's attribution: its output column, the
// source it came from, and the original line/column within that source.
// Name is set only for assignment targets and constant references.
type Segment struct {
	OutLine, OutColumn int
	Source             *ast.Source
	SourceLine         int
	SourceColumn       int
	Name               string
}

// ErbSpan translates a byte range in the compiled Ruby buffer back to the
// original ERB template's byte range, per spec §4.5.11's caller-supplied
// span list for templating languages that preprocess the source.
type ErbSpan struct {
	RubyStart, RubyEnd int
	ErbStart, ErbEnd   int
}

// Builder accumulates Segments as the Converter emits tokens and produces a
// finished Map on Build.
type Builder struct {
	File     string
	segments []Segment
	erbSpans []ErbSpan
}

func NewBuilder(file string) *Builder {
	return &Builder{File: file}
}

// SetErbSpans installs the span list used to translate Ruby offsets in
// attributed segments back to ERB-template offsets before emission.
func (b *Builder) SetErbSpans(spans []ErbSpan) { b.erbSpans = spans }

func (b *Builder) Record(seg Segment) {
	if b.erbSpans != nil && seg.Source != nil {
		seg.SourceLine, seg.SourceColumn = b.translateErb(seg.Source, seg.SourceLine, seg.SourceColumn)
	}
	b.segments = append(b.segments, seg)
}

// translateErb maps a (line, column) pair through the installed ERB spans
// when the underlying byte offset falls inside one of them; positions
// outside every span pass through unchanged.
func (b *Builder) translateErb(src *ast.Source, line, col int) (int, int) {
	offset := src.OffsetForLineCol(line, col)
	for _, span := range b.erbSpans {
		if offset >= span.RubyStart && offset < span.RubyEnd {
			erbOffset := span.ErbStart + (offset - span.RubyStart)
			return src.LineForPosition(erbOffset), src.ColumnForPosition(erbOffset)
		}
	}
	return line, col
}

// sourceDedupKey returns the content-hash key used to dedup sources entries,
// caching per Builder.Build call so a Source shared by many segments is only
// hashed once. Two Sources holding identical text (e.g. the same template
// re-read through two different names) collapse to one sources[] entry.
// Falls back to the Source's Name when hashing fails.
func sourceDedupKey(src *ast.Source, cache map[*ast.Source]string) string {
	if key, ok := cache[src]; ok {
		return key
	}
	key := src.Name
	if h, err := src.Hash(); err == nil {
		key = strconv.FormatUint(h, 16)
	}
	cache[src] = key
	return key
}

// Build renders the accumulated segments into a finished Source Map v3
// object: sources deduplicated in first-seen order, names likewise, and
// mappings VLQ-encoded with per-line semicolon separators. Following the
// Source Map v3 convention, the output-column delta restarts at every output
// line while the source index, source line, source column and name deltas
// continue from the previous segment across lines.
func (b *Builder) Build() *Map {
	sourceIndex := map[string]int{}
	var sources []string
	nameIndex := map[string]int{}
	var names []string
	hashCache := map[*ast.Source]string{}

	maxLine := 0
	for _, seg := range b.segments {
		if seg.OutLine > maxLine {
			maxLine = seg.OutLine
		}
	}

	byLine := make([][]Segment, maxLine+1)
	for _, seg := range b.segments {
		byLine[seg.OutLine] = append(byLine[seg.OutLine], seg)
	}

	var mappingLines []string
	prevSrcIdx, prevSrcLine, prevSrcCol, prevNameIdx := 0, 0, 0, 0
	for _, lineSegs := range byLine {
		var fields [][]int
		prevOutCol := 0
		for _, seg := range lineSegs {
			name, key := "", ""
			if seg.Source != nil {
				name = seg.Source.Name
				key = sourceDedupKey(seg.Source, hashCache)
			}
			idx, ok := sourceIndex[key]
			if !ok {
				idx = len(sources)
				sourceIndex[key] = idx
				sources = append(sources, name)
			}

			field := []int{seg.OutColumn - prevOutCol, idx - prevSrcIdx, seg.SourceLine - prevSrcLine, seg.SourceColumn - prevSrcCol}
			prevOutCol, prevSrcIdx, prevSrcLine, prevSrcCol = seg.OutColumn, idx, seg.SourceLine, seg.SourceColumn

			if seg.Name != "" {
				nIdx, ok := nameIndex[seg.Name]
				if !ok {
					nIdx = len(names)
					nameIndex[seg.Name] = nIdx
					names = append(names, seg.Name)
				}
				field = append(field, nIdx-prevNameIdx)
				prevNameIdx = nIdx
			}
			fields = append(fields, field)
		}
		mappingLines = append(mappingLines, EncodeSegments(fields))
	}

	return &Map{
		Version:  3,
		File:     b.File,
		Sources:  sources,
		Names:    names,
		Mappings: strings.Join(mappingLines, ";"),
	}
}
