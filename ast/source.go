package ast

import (
	"sort"
	"unicode/utf8"

	"github.com/minio/highwayhash"
)

var hashKey = []byte("rb2js-source-hash-key-0123456789")

// Source owns the original text of one compilation unit plus the tables
// needed to translate byte offsets (as reported by the tree-sitter parser)
// into line/column and UTF-16 code-unit positions (as required by
// JavaScript-indexed source maps).
//
// Offsets returned by every lookup method are monotonic in the input
// position, per the Data Model invariant.
type Source struct {
	Name string
	Text []byte

	lineOffsets []int // byte offset of the first byte of each line
	char16      []int // byte offset -> cumulative UTF-16 code units before it
}

// NewSource builds a Source buffer, computing its line and UTF-16 offset
// tables once up front.
func NewSource(name string, text []byte) *Source {
	s := &Source{Name: name, Text: text}
	s.buildLineOffsets()
	s.buildChar16Offsets()
	return s
}

func (s *Source) buildLineOffsets() {
	s.lineOffsets = []int{0}
	for i, b := range s.Text {
		if b == '\n' {
			s.lineOffsets = append(s.lineOffsets, i+1)
		}
	}
}

func (s *Source) buildChar16Offsets() {
	s.char16 = make([]int, len(s.Text)+1)
	units := 0
	i := 0
	for i < len(s.Text) {
		s.char16[i] = units
		r, size := utf8.DecodeRune(s.Text[i:])
		if r == utf8.RuneError && size <= 1 {
			units++
			i++
			continue
		}
		if r > 0xFFFF {
			units += 2 // surrogate pair
		} else {
			units++
		}
		for k := 1; k < size; k++ {
			s.char16[i+k] = units
		}
		i += size
	}
	s.char16[len(s.Text)] = units
}

// LineForPosition returns the 1-based line number containing the given byte
// offset.
func (s *Source) LineForPosition(pos int) int {
	idx := sort.Search(len(s.lineOffsets), func(i int) bool {
		return s.lineOffsets[i] > pos
	})
	return idx // idx-1 is 0-based line, so idx is the 1-based line number
}

// ColumnForPosition returns the 0-based byte column of pos within its line.
func (s *Source) ColumnForPosition(pos int) int {
	line := s.LineForPosition(pos) - 1
	if line < 0 || line >= len(s.lineOffsets) {
		return 0
	}
	return pos - s.lineOffsets[line]
}

// OffsetForLineCol is the inverse of LineForPosition/ColumnForPosition,
// converting a 1-based line and 0-based byte column back to a byte offset;
// used to translate source-map segments through ERB span tables.
func (s *Source) OffsetForLineCol(line, col int) int {
	idx := line - 1
	if idx < 0 || idx >= len(s.lineOffsets) {
		return len(s.Text)
	}
	return s.lineOffsets[idx] + col
}

// ByteToCharOffset converts a byte offset into a UTF-16 code-unit offset
// from the start of the buffer.
func (s *Source) ByteToCharOffset(bytePos int) int {
	if bytePos < 0 {
		return 0
	}
	if bytePos >= len(s.char16) {
		return s.char16[len(s.char16)-1]
	}
	return s.char16[bytePos]
}

// Slice returns the raw text for a span.
func (s *Source) Slice(span Span) []byte {
	if s == nil {
		return nil
	}
	if span.Start < 0 || span.End > len(s.Text) || span.Start > span.End {
		return nil
	}
	return s.Text[span.Start:span.End]
}

// Hash content-hashes the buffer, used to deduplicate entries in a source
// map's `sources` array and to key comment dedup sets.
func (s *Source) Hash() (uint64, error) {
	h, err := highwayhash.New64(hashKey)
	if err != nil {
		return 0, err
	}
	if _, err := h.Write(s.Text); err != nil {
		return 0, err
	}
	return h.Sum64(), nil
}
