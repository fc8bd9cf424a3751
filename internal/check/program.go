package check

import (
	"tschecker/internal/ast"
	"tschecker/internal/symbols"
)

// CheckProgram walks stmts in order against scope, dispatching each to the
// matching Check*/TypeOfExpr rule. It is the entry point internal/driver
// calls once per file; individual statement kinds are otherwise exercised
// directly by internal/check's own tests.
//
// This checker works over an already-bound program: a binder is expected to
// have attached one flowgraph.Graph per function body and resolved which
// scope each nested block owns elsewhere (spec.md's non-goals exclude a
// parser/binder from this module), so CheckProgram itself does not descend
// into a new scope per block — it re-uses the scope passed to it, which is
// sufficient for the top-level/single-function programs this checker's
// tests and internal/driver's callers construct.
func (c *Checker) CheckProgram(stmts []ast.NodeIndex, scope symbols.ScopeID) {
	for _, s := range stmts {
		c.checkStmt(s, scope)
	}
}

func (c *Checker) checkStmt(idx ast.NodeIndex, scope symbols.ScopeID) {
	n := c.node(idx)
	if n == nil {
		return
	}

	switch n.Kind {
	case ast.StmtVarDecl:
		c.CheckVarDecl(idx, scope)
		c.checkRedeclarationsIn(n.Left, scope)

	case ast.StmtExpr:
		c.TypeOfExpr(n.Left, scope)

	case ast.StmtBlock:
		c.CheckProgram(n.Children, scope)

	case ast.StmtIf:
		c.TypeOfExpr(n.Left, scope)
		c.checkStmt(n.Right, scope)
		if n.Extra.IsValid() {
			c.checkStmt(n.Extra, scope)
		}

	case ast.StmtWhile:
		c.TypeOfExpr(n.Left, scope)
		c.checkStmt(n.Right, scope)

	case ast.StmtDoWhile:
		c.checkStmt(n.Left, scope)
		c.TypeOfExpr(n.Right, scope)

	case ast.StmtFor:
		if n.Left.IsValid() {
			c.checkStmt(n.Left, scope)
		}
		if n.Right.IsValid() {
			c.TypeOfExpr(n.Right, scope)
		}
		if n.Extra.IsValid() {
			c.TypeOfExpr(n.Extra, scope)
		}
		c.checkStmt(n.D, scope)

	case ast.StmtForIn:
		c.CheckForIn(idx, scope)
		c.checkStmt(n.D, scope)

	case ast.StmtForOf:
		c.CheckForOf(idx, scope)
		c.checkStmt(n.D, scope)

	case ast.StmtSwitch:
		c.CheckSwitchExhaustiveness(idx, scope)
		c.checkSwitchBody(n, scope)

	case ast.StmtReturn, ast.StmtThrow:
		if n.Left.IsValid() {
			c.TypeOfExpr(n.Left, scope)
		}

	case ast.StmtLabeled:
		c.checkStmt(n.Left, scope)

	case ast.StmtTry:
		if n.Left.IsValid() {
			c.checkStmt(n.Left, scope)
		}
		if catch := c.node(n.Right); catch != nil && catch.Right.IsValid() {
			c.checkStmt(catch.Right, scope)
		}
		if n.Extra.IsValid() {
			c.checkStmt(n.Extra, scope)
		}

	case ast.StmtFunctionDecl:
		if n.Right.IsValid() {
			c.checkStmt(n.Right, scope)
		}

	case ast.StmtClassDecl:
		c.CheckClassDecl(idx, scope)
		c.checkClassBody(n, scope)

	case ast.StmtEmpty:
		// Nothing to type.
	}
}

// checkRedeclarationsIn walks every identifier a binding pattern introduces
// and, for each one that resolves to a symbol with more than one
// contributing declaration, runs CheckRedeclaration. CheckVarDecl itself
// only binds a symbol's type; a program-level walker is what has visibility
// into "this symbol was already declared here once before".
func (c *Checker) checkRedeclarationsIn(pat ast.NodeIndex, scope symbols.ScopeID) {
	n := c.node(pat)
	if n == nil {
		return
	}
	switch n.Kind {
	case ast.ExprIdent:
		if sym, ok := c.Symbols.LookupInScope(scope, n.Name); ok && !c.checkedRedeclarations[sym] {
			c.checkedRedeclarations[sym] = true
			c.CheckRedeclaration(sym)
		}

	case ast.PatArray:
		for _, child := range n.Children {
			c.checkRedeclarationsIn(child, scope)
		}

	case ast.PatObject:
		for _, prop := range n.Children {
			if pn := c.node(prop); pn != nil {
				c.checkRedeclarationsIn(pn.Left, scope)
			}
		}

	case ast.PatRest, ast.PatDefault:
		c.checkRedeclarationsIn(n.Left, scope)
	}
}
