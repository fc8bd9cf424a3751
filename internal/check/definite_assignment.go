package check

import (
	"fmt"

	"tschecker/internal/ast"
	"tschecker/internal/diag"
	"tschecker/internal/flow"
	"tschecker/internal/flowgraph"
	"tschecker/internal/symbols"
)

// CheckUsedBeforeAssignment reports TS2454 when reading ident at flowNode is
// not guaranteed to see an assigned value: a `let`/`const` binding declared
// without an initializer whose definite-assignment state (per
// flow.AssignmentStateAnalyzer's three-state lattice) is anything but
// flow.StateAssigned at the read site. `var` bindings are exempt (they
// observe `undefined`, never a TDZ-style error) and so is any symbol this
// checker doesn't control the declaration shape of (parameters, ambient
// declarations).
func (c *Checker) CheckUsedBeforeAssignment(ident ast.NodeIndex, scope symbols.ScopeID, graph *flowgraph.Graph, flowNode flowgraph.NodeID) {
	n := c.node(ident)
	if n == nil || n.Kind != ast.ExprIdent {
		return
	}
	sym, _ := c.Symbols.Lookup(scope, n.Name)
	if !sym.IsValid() {
		return
	}
	s := c.Symbols.Symbol(sym)
	if s == nil || s.Kind != symbols.Variable {
		return
	}
	if !s.Flags.Has(symbols.FlagLet) && !s.Flags.Has(symbols.FlagConst) {
		return // `var` hoists to `undefined`; no TDZ-style check applies
	}
	if s.Flags.Has(symbols.FlagAmbient) {
		return
	}
	if declHasInitializer(c, s) {
		return // assigned at declaration: every path from Start is already StateAssigned
	}

	state := c.NewAssignmentStateAnalyzer(graph, scope).StateAt(flowNode, sym, flow.StateUnassigned)
	if state == flow.StateAssigned {
		return
	}
	c.report(diag.Error(diag.VariableUsedBeforeAssignment, n.Span,
		fmt.Sprintf("Variable '%s' is used before being assigned.", c.nameOf(n.Name))))
}

// declHasInitializer reports whether s's declaring var-decl node has an
// initializer expression.
func declHasInitializer(c *Checker, s *symbols.Symbol) bool {
	if !s.ValueDecl.IsValid() {
		return false
	}
	decl := c.node(s.ValueDecl)
	if decl == nil || decl.Kind != ast.StmtVarDecl {
		return false
	}
	return decl.Right.IsValid()
}
