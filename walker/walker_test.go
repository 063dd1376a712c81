package walker

import (
	"testing"
)

func TestParseSimpleAssignment(t *testing.T) {
	res, err := Parse("test.rb", []byte("x = 1"))
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if res.Program.Type != "lvasgn" {
		t.Fatalf("expected lvasgn, got %s", res.Program.Type)
	}
}

func TestParseMethodCall(t *testing.T) {
	res, err := Parse("test.rb", []byte("foo.bar(1, 2)"))
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if res.Program.Type != "send" {
		t.Fatalf("expected send, got %s", res.Program.Type)
	}
}

func TestParseIfElse(t *testing.T) {
	res, err := Parse("test.rb", []byte("if x\n  1\nelse\n  2\nend"))
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if res.Program.Type != "if" {
		t.Fatalf("expected if, got %s", res.Program.Type)
	}
}

func TestParseCaptureComments(t *testing.T) {
	res, err := Parse("test.rb", []byte("# hello\nx = 1"))
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if len(res.Comments.Raw) != 1 {
		t.Fatalf("expected 1 comment, got %d", len(res.Comments.Raw))
	}
}

func TestParseSyntaxErrorReturnsDiagnostic(t *testing.T) {
	_, err := Parse("test.rb", []byte("def foo("))
	if err == nil {
		t.Fatal("expected a parse error")
	}
}
