package check

import (
	"fmt"

	"tschecker/internal/assign"
	"tschecker/internal/ast"
	"tschecker/internal/diag"
	"tschecker/internal/symbols"
)

// CheckRedeclaration inspects a symbol with more than one contributing
// declaration and reports either a hard duplicate-identifier error (`let`
// or `const` may never redeclare) or a type mismatch across repeated `var`
// declarations (legal in JS, but only when every declaration agrees on a
// type).
func (c *Checker) CheckRedeclaration(sym symbols.SymbolID) {
	s := c.Symbols.Symbol(sym)
	if s == nil || len(s.Declarations) < 2 {
		return
	}

	if s.Flags.Has(symbols.FlagLet) || s.Flags.Has(symbols.FlagConst) {
		for _, decl := range s.Declarations[1:] {
			if n := c.node(decl); n != nil {
				c.report(diag.Error(diag.DuplicateIdentifier, n.Span,
					fmt.Sprintf("Cannot redeclare block-scoped variable '%s'.", c.nameOf(s.Name))))
			}
		}
		return
	}

	if !s.Type.IsValid() {
		return
	}
	for _, decl := range s.Declarations[1:] {
		n := c.node(decl)
		if n == nil || n.Kind != ast.StmtVarDecl || !n.TypeAnn.IsValid() {
			continue
		}
		declType := c.ResolveTypeNode(n.TypeAnn, s.Scope)
		if !assign.IsAssignable(c.Types, declType, s.Type) || !assign.IsAssignable(c.Types, s.Type, declType) {
			c.report(diag.Error(diag.VarRedeclarationTypeMismatch, n.Span,
				fmt.Sprintf("Subsequent variable declarations must have the same type. Variable '%s' must be of type '%s', but here has type '%s'.",
					c.nameOf(s.Name), c.Types.KindOf(s.Type), c.Types.KindOf(declType))))
		}
	}
}
