package ast

// Span is an inclusive-exclusive byte range into a Source buffer.
type Span struct {
	Start int
	End   int
}

// Location carries the source position of a Node. Most nodes carry the byte
// range of the whole construct; send/attr/def nodes additionally carry a
// Selector sub-range (the method name, used by IsMethod) and def/defs nodes
// carry a Name sub-range plus an End marker distinguishing "def ... end" from
// an endless "def f = expr".
type Location struct {
	Span
	Source *Source

	// Selector is the byte range of a call's method name, used to decide
	// whether a call has parentheses (see Node.IsMethod).
	Selector *Span

	// Name is the byte range of a def/defs method name.
	Name *Span

	// HasEnd is true when a def/class/module/if/... construct is closed with
	// an explicit `end` keyword. False for an endless method definition
	// (`def f = expr`) or a single-line modifier form.
	HasEnd bool
}

// File returns the logical source file name this location belongs to, or
// the empty string if the location has no source.
func (l *Location) File() string {
	if l == nil || l.Source == nil {
		return ""
	}
	return l.Source.Name
}

// Line returns the 1-based source line the location starts on.
func (l *Location) Line() int {
	if l == nil || l.Source == nil {
		return 0
	}
	return l.Source.LineForPosition(l.Start)
}

// Column returns the 0-based column the location starts on.
func (l *Location) Column() int {
	if l == nil || l.Source == nil {
		return 0
	}
	return l.Source.ColumnForPosition(l.Start)
}
