package ast

import (
	"sort"
	"strconv"
)

// Comment is a single located comment as parsed from the source.
type Comment struct {
	Text string // comment text, including leading `#` or `=begin`/`=end` markers
	Span Span
	Line int // 1-based source line the comment starts on
}

// TrailingComment pairs a node with a comment that follows it on the same
// source line.
type TrailingComment struct {
	Node    Node
	Comment Comment
}

// CommentsMap is the mapping Node -> []Comment described in the Data Model,
// plus the three reserved buckets. It is produced once by the Walker's
// associator, rewritten wholesale by the Pipeline after each filter run, and
// consumed by the Converter.
//
// Node identity is not stable under rewrite (a filter may clone or drop
// nodes), so this map is keyed by a stable synthetic key derived from a
// node's Location span rather than by Go pointer/value identity; nodes
// without a Location cannot carry attached comments and are skipped during
// attachment (they still appear as orphans if nothing else claims a nearby
// comment).
type CommentsMap struct {
	byKey    map[string][]Comment
	Raw      []Comment
	Trailing []TrailingComment
	Orphan   []Comment
}

// NewCommentsMap creates an empty comments map.
func NewCommentsMap() *CommentsMap {
	return &CommentsMap{byKey: make(map[string][]Comment)}
}

// keyFor derives the comment-dedup key for n: the owning Source's content
// hash (so two Source buffers holding identical text dedup together even
// under different names, e.g. an ERB template re-read through two URLs)
// plus its span. Falls back to the Source's Name when hashing fails.
func keyFor(n Node) (string, bool) {
	if n.Loc == nil || n.Loc.Source == nil {
		return "", false
	}
	return sourceKey(n.Loc.Source) + ":" + itoa(n.Loc.Start) + "-" + itoa(n.Loc.End), true
}

func sourceKey(src *Source) string {
	if h, err := src.Hash(); err == nil {
		return strconv.FormatUint(h, 16)
	}
	return src.Name
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

// For returns the comments attached to n, in source order.
func (c *CommentsMap) For(n Node) []Comment {
	key, ok := keyFor(n)
	if !ok {
		return nil
	}
	return c.byKey[key]
}

// Attach appends a comment to n's bucket.
func (c *CommentsMap) Attach(n Node, cm Comment) {
	key, ok := keyFor(n)
	if !ok {
		c.Orphan = append(c.Orphan, cm)
		return
	}
	c.byKey[key] = append(c.byKey[key], cm)
}

// LocatedNode pairs a node with its collected span, used by the
// comment-association pass (walker and pipeline both run the same
// algorithm, see Associate).
type LocatedNode struct {
	Node  Node
	Start int
	End   int
	Depth int
}

// Associate runs the comment-association procedure specified for both the
// Walker's initial pass and the Pipeline's post-rewrite re-association:
// sort located nodes by start offset (depth breaks ties), and for each
// comment in source order find (a) a trailing candidate: a node ending on
// the comment's line whose end offset is not after the comment's start,
// preferring the candidate with the largest end offset, and (b) failing
// that, an attached candidate: the first node whose start offset is at or
// after the comment's end offset. Comments matching neither become orphans.
func Associate(nodes []LocatedNode, comments []Comment) *CommentsMap {
	out := NewCommentsMap()
	out.Raw = comments

	sort.SliceStable(nodes, func(i, j int) bool {
		if nodes[i].Start != nodes[j].Start {
			return nodes[i].Start < nodes[j].Start
		}
		return nodes[i].Depth < nodes[j].Depth
	})

	for _, cm := range comments {
		if trailing, ok := bestTrailing(nodes, cm); ok {
			out.Trailing = append(out.Trailing, TrailingComment{Node: trailing.Node, Comment: cm})
			out.Attach(trailing.Node, cm)
			continue
		}
		idx := sort.Search(len(nodes), func(i int) bool {
			return nodes[i].Start >= cm.Span.End
		})
		if idx < len(nodes) {
			out.Attach(nodes[idx].Node, cm)
			continue
		}
		out.Orphan = append(out.Orphan, cm)
	}
	return out
}

func bestTrailing(nodes []LocatedNode, cm Comment) (LocatedNode, bool) {
	var best LocatedNode
	found := false
	for _, ln := range nodes {
		if ln.End <= cm.Span.Start && sameLineEnd(ln, cm) {
			if !found || ln.End > best.End {
				best = ln
				found = true
			}
		}
	}
	return best, found
}

// sameLineEnd approximates "the node ends on the same source line the
// comment starts on" using the node's Location when present; nodes without
// one never qualify as trailing candidates.
func sameLineEnd(ln LocatedNode, cm Comment) bool {
	node := ln.Node
	if node.Loc == nil || node.Loc.Source == nil {
		return false
	}
	return node.Loc.Source.LineForPosition(ln.End) == cm.Line
}
