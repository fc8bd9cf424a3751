package check

import (
	"tschecker/internal/ast"
	"tschecker/internal/flow"
	"tschecker/internal/flowgraph"
	"tschecker/internal/symbols"
	"tschecker/internal/types"
)

// NewFlowAnalyzer builds a flow.Analyzer wired to this Checker's AST and
// symbol table: ResolveGuard/ResolveAssignment read the real condition and
// assignment syntax a binder attached to graph's nodes, resolving
// identifiers against scope the same way TypeOfExpr does.
func (c *Checker) NewFlowAnalyzer(graph *flowgraph.Graph, scope symbols.ScopeID) *flow.Analyzer {
	subjectOf := func(idx ast.NodeIndex) symbols.SymbolID {
		n := c.node(idx)
		if n == nil || n.Kind != ast.ExprIdent {
			return symbols.NoSymbolID
		}
		sym, _ := c.Symbols.Lookup(scope, n.Name)
		return sym
	}
	return flow.NewAnalyzer(graph, c.Types,
		astGuards{c: c, scope: scope, subjectOf: subjectOf},
		astAssignments{c: c, scope: scope, subjectOf: subjectOf},
	)
}

// NarrowedTypeOfIdent resolves ident's flow-narrowed type at flowNode: the
// symbol's declared type, walked through graph's Condition/Assignment/Branch
// chain up to flowNode. Callers that have attached a flowgraph.NodeID to an
// identifier's read site use this instead of the unnarrowed TypeOfExpr.
func (c *Checker) NarrowedTypeOfIdent(ident ast.NodeIndex, scope symbols.ScopeID, graph *flowgraph.Graph, flowNode flowgraph.NodeID) types.TypeID {
	n := c.node(ident)
	if n == nil || n.Kind != ast.ExprIdent {
		return c.Types.Builtins().Any
	}
	sym, _ := c.Symbols.Lookup(scope, n.Name)
	if !sym.IsValid() {
		return c.Types.Builtins().Any
	}
	declared := c.Types.Builtins().Any
	if s := c.Symbols.Symbol(sym); s != nil && s.Type.IsValid() {
		declared = s.Type
	}
	t := c.NewFlowAnalyzer(graph, scope).TypeAt(flowNode, sym, declared)
	return c.setExprType(ident, t)
}

// NewAssignmentStateAnalyzer builds a flow.AssignmentStateAnalyzer wired to
// this Checker's AST, reusing astAssignments so a binding's definite-
// assignment state is tracked through the same Assignment nodes
// NewFlowAnalyzer narrows types through.
func (c *Checker) NewAssignmentStateAnalyzer(graph *flowgraph.Graph, scope symbols.ScopeID) *flow.AssignmentStateAnalyzer {
	subjectOf := func(idx ast.NodeIndex) symbols.SymbolID {
		n := c.node(idx)
		if n == nil || n.Kind != ast.ExprIdent {
			return symbols.NoSymbolID
		}
		sym, _ := c.Symbols.Lookup(scope, n.Name)
		return sym
	}
	return flow.NewAssignmentStateAnalyzer(graph, astAssignments{c: c, scope: scope, subjectOf: subjectOf})
}
