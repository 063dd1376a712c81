package convert

import "github.com/rubyjs/compiler/serializer"

// pushScope enters a new hoisting scope, mirroring spec §4.5.5: each scope
// tracks name -> state, where state transitions from "pending" (referenced
// before a `let` is emitted) to "true" once declared. A serializer Mark is
// placed at the scope's entry point so a later `let name1, name2;` can be
// spliced in before the scope's first statement once sealed.
func (c *Converter) pushScope() *scope {
	s := newScope()
	s.entryMark = c.out.PlaceMark()
	c.scopes = append(c.scopes, s)
	return s
}

func (c *Converter) currentScope() *scope {
	return c.scopes[len(c.scopes)-1]
}

// popScope flushes any names still marked "pending" as a `let name1, name2;`
// declaration spliced at the scope's entry mark, then promotes them and
// discards the scope.
func (c *Converter) popScope() {
	s := c.currentScope()
	c.flushScopeDeclarations(s)
	c.scopes = c.scopes[:len(c.scopes)-1]
}

// flushPendingDeclarations flushes the outermost (program-level) scope;
// called once at the end of Convert.
func (c *Converter) flushPendingDeclarations() {
	if len(c.scopes) == 0 {
		return
	}
	c.flushScopeDeclarations(c.scopes[0])
}

func (c *Converter) flushScopeDeclarations(s *scope) {
	var pending []string
	for name, st := range s.vars {
		if st == "pending" {
			pending = append(pending, name)
			s.vars[name] = "true"
		}
	}
	if len(pending) == 0 {
		return
	}
	decl := "let "
	for i, name := range pending {
		if i > 0 {
			decl += ", "
		}
		decl += name
	}
	decl += ";"
	c.out.InsertAt(s.entryMark, decl)
}

// declareLocal marks name as declared with `let` in the current scope.
func (c *Converter) declareLocal(name string) {
	c.currentScope().vars[name] = "true"
}

// referenceLocal records a bare-name reference: if no enclosing scope has
// declared it, the innermost scope marks it "pending" so a `let` is
// spliced at that scope's entry once the scope is sealed; an already-known
// name is left alone.
func (c *Converter) referenceLocal(name string) {
	for i := len(c.scopes) - 1; i >= 0; i-- {
		if _, ok := c.scopes[i].vars[name]; ok {
			return
		}
	}
	c.currentScope().vars[name] = "pending"
}

// isDeclared reports whether name has already been declared (not merely
// pending) in any enclosing scope.
func (c *Converter) isDeclared(name string) bool {
	for i := len(c.scopes) - 1; i >= 0; i-- {
		if st, ok := c.scopes[i].vars[name]; ok && st == "true" {
			return true
		}
	}
	return false
}

// markMasgn records name as a multiple-assignment target, per spec §4.5.5.
func (c *Converter) markMasgn(name string) {
	c.currentScope().vars[name] = "masgn"
}

type scope struct {
	vars      map[string]string // name -> "true" | "pending" | "implicit" | "masgn"
	entryMark serializer.Mark
	async     bool
	usesSelf  bool
	loopDepth int
}

func newScope() *scope {
	return &scope{vars: map[string]string{}}
}
