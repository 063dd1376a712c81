package serializer

import "strings"

const defaultIndentWidth = 2

// Serializer accumulates Lines of Tokens, tracking indentation and a soft
// target column width. The Converter assembles each handler's output as a
// string and writes the finished text through a Serializer.
type Serializer struct {
	lines  []*Line
	cur    *Line
	indent int
	width  int
	cached *string
}

// New builds a Serializer targeting the given soft line width (spec §4.6;
// `width` option default is 80, enforced by the caller).
func New(width int) *Serializer {
	if width <= 0 {
		width = 80
	}
	s := &Serializer{width: width}
	s.cur = &Line{Indent: 0}
	return s
}

func (s *Serializer) invalidateCache() { s.cached = nil }

// Indent increases the current indentation level by one unit.
func (s *Serializer) Indent() { s.indent++; s.invalidateCache() }

// Dedent decreases the current indentation level by one unit, floored at 0.
func (s *Serializer) Dedent() {
	if s.indent > 0 {
		s.indent--
	}
	s.invalidateCache()
}

func (s *Serializer) indentWidth() int { return s.indent * defaultIndentWidth }

// Put appends s to the current line. A multi-line payload starts a fresh
// line (carrying the current indent) for every embedded "\n".
func (s *Serializer) Put(text string) {
	s.invalidateCache()
	if text == "" {
		return
	}
	parts := strings.Split(text, "\n")
	s.cur.Tokens = append(s.cur.Tokens, Token{Text: parts[0]})
	for _, p := range parts[1:] {
		s.lines = append(s.lines, s.cur)
		s.cur = &Line{Indent: s.indentWidth()}
		s.cur.Tokens = append(s.cur.Tokens, Token{Text: p})
	}
}

// Puts is Put followed by starting a fresh line.
func (s *Serializer) Puts(text string) {
	s.Put(text)
	s.newline()
}

// SPut starts a fresh line, then Puts text on it without ending the line.
func (s *Serializer) SPut(text string) {
	s.newline()
	s.Put(text)
}

func (s *Serializer) newline() {
	s.lines = append(s.lines, s.cur)
	s.cur = &Line{Indent: s.indentWidth()}
	s.invalidateCache()
}

// CurrentWidth reports how many columns the in-progress line already
// occupies, used by Wrap/Compact to decide whether a region still fits.
func (s *Serializer) CurrentWidth() int { return s.cur.Width() }

// Mark returns an opaque position in the current line; InsertAt uses it to
// splice text back in later (hoisted `let` declarations, per spec §4.5.5).
type Mark struct {
	lineIndex int
	tokenIdx  int
}

// PlaceMark records a splice point at the current line boundary.
func (s *Serializer) PlaceMark() Mark {
	s.lines = append(s.lines, s.cur)
	idx := len(s.lines) - 1
	s.cur = &Line{Indent: s.indentWidth()}
	return Mark{lineIndex: idx, tokenIdx: 0}
}

// InsertAt splices a new line of text immediately after the mark's line.
func (s *Serializer) InsertAt(m Mark, text string) {
	s.invalidateCache()
	newLine := &Line{Indent: s.lines[m.lineIndex].Indent, Tokens: []Token{{Text: text}}}
	tail := append([]*Line{newLine}, s.lines[m.lineIndex+1:]...)
	s.lines = append(s.lines[:m.lineIndex+1], tail...)
}

// Capture runs fn with output redirected into a scratch buffer and returns
// the rendered text without committing it to the main stream; used for
// source-map capture and for Wrap/Compact's one-line-vs-multi-line decision.
func (s *Serializer) Capture(fn func()) string {
	savedLines, savedCur, savedIndent := s.lines, s.cur, s.indent
	s.lines = nil
	s.cur = &Line{Indent: s.indentWidth()}

	fn()

	s.lines = append(s.lines, s.cur)
	text := s.render(s.lines)

	s.lines, s.cur, s.indent = savedLines, savedCur, savedIndent
	s.invalidateCache()
	return text
}

// Wrap emits open, runs fn, then emits close: on one line when the captured
// region has no internal newline and fits within the target width from the
// current column, otherwise indented on its own lines (spec §4.6 `wrap`).
func (s *Serializer) Wrap(open, close string, fn func()) {
	captured := s.Capture(fn)
	flat := collapse(captured)

	if !strings.Contains(captured, "\n") && s.CurrentWidth()+len(open)+len(flat)+len(close) <= s.width {
		s.Put(open)
		s.Put(flat)
		s.Put(close)
		return
	}

	s.Put(open)
	s.Indent()
	for _, line := range strings.Split(captured, "\n") {
		trimmed := strings.TrimLeft(line, " ")
		if trimmed == "" {
			continue
		}
		s.SPut(trimmed)
	}
	s.Dedent()
	s.SPut(close)
}

// Compact joins pre-rendered items with ", " on one line when they fit
// within ten columns of the target width, else lays one item per indented
// line with a trailing comma (spec §4.6 `compact`, used for argument lists).
func (s *Serializer) Compact(open, close string, items []string) {
	total := 0
	for _, it := range items {
		total += len(it) + 2
	}
	if s.CurrentWidth()+len(open)+total+len(close) <= s.width-10 {
		s.Put(open)
		s.Put(strings.Join(items, ", "))
		s.Put(close)
		return
	}
	s.Put(open)
	s.Indent()
	for i, it := range items {
		suffix := ","
		if i == len(items)-1 {
			suffix = ""
		}
		s.SPut(it + suffix)
	}
	s.Dedent()
	s.SPut(close)
}

func collapse(captured string) string {
	lines := strings.Split(captured, "\n")
	parts := make([]string, 0, len(lines))
	for _, l := range lines {
		t := strings.TrimSpace(l)
		if t != "" {
			parts = append(parts, t)
		}
	}
	return strings.Join(parts, "; ")
}

// Lines exposes the committed lines for respacing and source-map emission.
func (s *Serializer) Lines() []*Line {
	all := append(append([]*Line{}, s.lines...), s.cur)
	return all
}

func (s *Serializer) render(lines []*Line) string {
	parts := make([]string, len(lines))
	for i, l := range lines {
		parts[i] = strings.Repeat(" ", l.Indent) + l.Text()
	}
	return strings.Join(parts, "\n")
}

// String renders the committed buffer to text; the result is cached after
// the first call (spec §4.6 "to_s is idempotent").
func (s *Serializer) String() string {
	if s.cached != nil {
		return *s.cached
	}
	Respace(s)
	text := s.render(s.Lines())
	s.cached = &text
	return text
}
