package convert

import (
	"github.com/rubyjs/compiler/ast"
	"github.com/rubyjs/compiler/diagnostics"
)

func diagnosticsSecurity(n ast.Node) error {
	return diagnostics.NewSecurityError("backtick string requires a config.Binding", n.Loc)
}
