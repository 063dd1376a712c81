package namespace

import "testing"

func TestEnterLeaveBalanced(t *testing.T) {
	ns := New()
	ns.Enter("Foo")
	ns.DefineProps(map[string]Descriptor{"bar": {Kind: KindSelf}})
	ns.Leave()
	if _, ok := ns.Find("bar"); ok {
		t.Fatalf("bar should not be visible after leaving its scope and with no enclosing definition")
	}
}

func TestFindWalksOutward(t *testing.T) {
	ns := New()
	ns.Enter("Outer")
	ns.DefineProps(map[string]Descriptor{"shared": {Kind: KindSelf}})
	ns.Enter("Inner")
	d, ok := ns.Find("shared")
	if !ok || d.Kind != KindSelf {
		t.Fatalf("expected nested scope to see enclosing definition")
	}
}

func TestReopeningScopeAccumulates(t *testing.T) {
	ns := New()
	ns.Enter("Foo")
	ns.DefineProps(map[string]Descriptor{"a": {Kind: KindSelf}})
	ns.Leave()

	ns.Enter("Foo") // reopen
	if _, ok := ns.Find("a"); !ok {
		t.Fatalf("reopening a class should see previously accumulated descriptors")
	}
	ns.DefineProps(map[string]Descriptor{"b": {Kind: KindSelf}})
	ns.Leave()

	ns.Enter("Foo")
	if _, ok := ns.Find("a"); !ok {
		t.Fatalf("a should still be visible")
	}
	if _, ok := ns.Find("b"); !ok {
		t.Fatalf("b should be visible after second reopening")
	}
}

func TestNearestDefinitionWins(t *testing.T) {
	ns := New()
	ns.Enter("Outer")
	ns.DefineProps(map[string]Descriptor{"x": {Kind: KindOwner}})
	ns.Enter("Inner")
	ns.DefineProps(map[string]Descriptor{"x": {Kind: KindSelf}})
	d, _ := ns.Find("x")
	if d.Kind != KindSelf {
		t.Fatalf("expected nearest (inner) definition to win, got %v", d.Kind)
	}
}
