package convert

import "github.com/rubyjs/compiler/ast"

func spanKey(n ast.Node) (string, bool) {
	if n.Loc == nil || n.Loc.Source == nil {
		return "", false
	}
	return n.Loc.Source.Name + ":" + itoa(n.Loc.Start) + "-" + itoa(n.Loc.End), true
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	neg := n < 0
	if neg {
		n = -n
	}
	var buf [20]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	if neg {
		i--
		buf[i] = '-'
	}
	return string(buf[i:])
}

// emitLeadingComments writes every comment attached to n that is not a
// trailing comment of n itself, one per line, immediately before n's own
// text (spec §4.5.1: "emits any comments attached to the node when
// entering in statement state").
func (c *Converter) emitLeadingComments(n ast.Node) {
	key, ok := spanKey(n)
	if !ok {
		return
	}
	if c.emitted[key] {
		return
	}
	c.emitted[key] = true

	trailingKey := map[string]bool{}
	for _, t := range c.comments.Trailing {
		if tk, ok := spanKey(t.Node); ok && tk == key {
			trailingKey[t.Comment.Text] = true
		}
	}

	for _, cm := range c.comments.For(n) {
		if trailingKey[cm.Text] {
			continue
		}
		c.out.Puts(cm.Text)
	}
}

// trailingComment returns " " + the comment text for a comment following n
// on its own source line, emitted at the end of the current line after n's
// handler has produced its text (spec §4.5.1).
func (c *Converter) trailingComment(n ast.Node) string {
	key, ok := spanKey(n)
	if !ok {
		return ""
	}
	for _, t := range c.comments.Trailing {
		if tk, ok := spanKey(t.Node); ok && tk == key {
			return " " + t.Comment.Text
		}
	}
	return ""
}
