package serializer

import "testing"

func TestPutAccumulatesOnCurrentLine(t *testing.T) {
	s := New(80)
	s.Put("foo")
	s.Put("bar")
	if got := s.cur.Text(); got != "foobar" {
		t.Fatalf("expected foobar, got %q", got)
	}
}

func TestPutsStartsFreshLine(t *testing.T) {
	s := New(80)
	s.Puts("a")
	s.Put("b")
	if len(s.lines) != 1 {
		t.Fatalf("expected 1 committed line, got %d", len(s.lines))
	}
	if s.cur.Text() != "b" {
		t.Fatalf("expected current line to be b, got %q", s.cur.Text())
	}
}

func TestWrapCollapsesWhenItFits(t *testing.T) {
	s := New(80)
	s.Wrap("(", ")", func() {
		s.Put("a, b")
	})
	if got := s.String(); got != "(a, b)" {
		t.Fatalf("expected (a, b), got %q", got)
	}
}

func TestWrapExpandsWhenTooWide(t *testing.T) {
	s := New(10)
	s.Wrap("(", ")", func() {
		s.Puts("aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa")
	})
	out := s.String()
	if out == "(aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa)" {
		t.Fatalf("expected multi-line expansion, got collapsed: %q", out)
	}
}

func TestStringIsCached(t *testing.T) {
	s := New(80)
	s.Put("x")
	first := s.String()
	if again := s.String(); again != first {
		t.Fatalf("expected repeated String() to be stable, got %q then %q", first, again)
	}
	s.Put("y") // mutating after String() invalidates the cached render
	second := s.String()
	if second != "xy" {
		t.Fatalf("expected re-render after mutation to be %q, got %q", "xy", second)
	}
}

func TestCaptureDoesNotCommit(t *testing.T) {
	s := New(80)
	captured := s.Capture(func() {
		s.Put("scratch")
	})
	if captured != "scratch" {
		t.Fatalf("expected captured scratch text, got %q", captured)
	}
	if s.cur.Text() != "" {
		t.Fatalf("expected current line untouched after capture, got %q", s.cur.Text())
	}
}
