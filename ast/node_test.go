package ast

import "testing"

func TestNodeEqualsStructural(t *testing.T) {
	a := New("send", New("lvar", "x"), "foo", New("int", int64(1)))
	b := New("send", New("lvar", "x"), "foo", New("int", int64(1)))
	if !a.Equals(b) {
		t.Fatalf("expected structural equality")
	}
	c := New("send", New("lvar", "y"), "foo", New("int", int64(1)))
	if a.Equals(c) {
		t.Fatalf("expected inequality on differing child")
	}
}

func TestUpdatedRoundTrip(t *testing.T) {
	n := New("send", New("lvar", "x"), "foo")
	u := n.Updated(n.Type, n.Children, nil)
	if !n.Equals(u) {
		t.Fatalf("n.Updated(n.Type, n.Children) must equal n")
	}
}

func TestUpdatedDoesNotMutate(t *testing.T) {
	n := New("int", int64(1))
	_ = n.Updated("float", []any{1.0}, nil)
	if n.Type != "int" {
		t.Fatalf("Updated must not mutate the receiver")
	}
}

func TestIsMethodAttrNeverParens(t *testing.T) {
	n := New("attr", New("self"), "name")
	if n.IsMethod() {
		t.Fatalf("attr should never be a method call")
	}
}

func TestIsMethodCallAlwaysParens(t *testing.T) {
	n := New("call", New("self"), "name")
	if !n.IsMethod() {
		t.Fatalf("call should always be a method call")
	}
}

func TestIsMethodSelectorPeek(t *testing.T) {
	src := NewSource("t.rb", []byte("foo()"))
	loc := &Location{Span: Span{Start: 0, End: 5}, Source: src, Selector: &Span{Start: 0, End: 3}}
	n := NewAt("send", loc, nil, "foo")
	if !n.IsMethod() {
		t.Fatalf("expected paren-following selector to be a method call")
	}

	src2 := NewSource("t.rb", []byte("foo"))
	loc2 := &Location{Span: Span{Start: 0, End: 3}, Source: src2, Selector: &Span{Start: 0, End: 3}}
	n2 := NewAt("send", loc2, nil, "foo")
	if n2.IsMethod() {
		t.Fatalf("expected no-paren selector to be a property access")
	}
}
