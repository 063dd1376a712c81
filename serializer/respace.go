package serializer

import "strings"

// Respace recomputes each Line's indent from bracket depth and inserts a
// blank separator line before a comment that immediately follows a dedent,
// per spec §4.6. The pass never adds or removes tokens, only Line
// boundaries and indent columns.
func Respace(s *Serializer) {
	lines := s.Lines()
	depth := 0
	out := make([]*Line, 0, len(lines))
	prevWasDedent := false

	for _, l := range lines {
		trimmed := strings.TrimSpace(l.Text())

		lineDepth := depth
		if startsWithCloser(trimmed) {
			lineDepth = max0(depth - 1)
		}

		if trimmed != "" && strings.HasPrefix(trimmed, "//") && prevWasDedent {
			out = append(out, &Line{Indent: lineDepth * defaultIndentWidth})
		}

		l.Indent = lineDepth * defaultIndentWidth
		out = append(out, l)

		delta := bracketDelta(trimmed)
		depth = max0(depth + delta)
		prevWasDedent = delta < 0
	}

	if len(out) == 0 {
		s.lines = nil
		s.cur = &Line{Indent: 0}
		return
	}
	s.cur = out[len(out)-1]
	s.lines = out[:len(out)-1]
}

func max0(n int) int {
	if n < 0 {
		return 0
	}
	return n
}

func startsWithCloser(s string) bool {
	if s == "" {
		return false
	}
	switch s[0] {
	case ')', '}', ']':
		return true
	}
	return false
}

// bracketDelta counts net bracket depth change in a line of text, ignoring
// characters inside quoted strings (a heuristic, not a full lexer).
func bracketDelta(s string) int {
	delta := 0
	inString := byte(0)
	for i := 0; i < len(s); i++ {
		c := s[i]
		if inString != 0 {
			if c == '\\' {
				i++
				continue
			}
			if c == inString {
				inString = 0
			}
			continue
		}
		switch c {
		case '"', '\'', '`':
			inString = c
		case '(', '{', '[':
			delta++
		case ')', '}', ']':
			delta--
		}
	}
	return delta
}
