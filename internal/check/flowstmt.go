package check

import (
	"fmt"

	"tschecker/internal/ast"
	"tschecker/internal/diag"
	"tschecker/internal/flowgraph"
	"tschecker/internal/source"
	"tschecker/internal/symbols"
	"tschecker/internal/types"
)

// CheckForIn type-checks a `for (x in obj)` statement: obj must be an
// object-like type (not a primitive, null, or undefined), and the loop
// variable must have no annotation other than `string`/`any`.
func (c *Checker) CheckForIn(idx ast.NodeIndex, scope symbols.ScopeID) {
	n := c.node(idx)
	if n == nil || n.Kind != ast.StmtForIn {
		return
	}
	objType := c.Types.Unwrap(c.TypeOfExpr(n.Right, scope))
	if !isObjectLikeForIn(c.Types, objType) {
		c.report(diag.Error(diag.ForInNonObject, c.spanOf(n.Right, n.Span),
			"The right-hand side of a 'for...in' statement must be of type 'any', an object type or a type parameter."))
	}

	bindingNode := c.node(n.Left)
	if bindingNode != nil && bindingNode.TypeAnn.IsValid() {
		declared := c.ResolveTypeNode(bindingNode.TypeAnn, scope)
		b := c.Types.Builtins()
		if declared != b.String && declared != b.Any {
			c.report(diag.Error(diag.ForInLoopVarAnnotation, bindingNode.Span,
				"The left-hand side of a 'for...in' statement must be of type 'string' or 'any'."))
		}
	}
}

func isObjectLikeForIn(in *types.Interner, t types.TypeID) bool {
	b := in.Builtins()
	switch t {
	case b.Any, b.Unknown, b.ObjectIntrinsic:
		return true
	}
	switch in.KindOf(t) {
	case types.KindObject, types.KindArray, types.KindTuple, types.KindFunction:
		return true
	default:
		return false
	}
}

// CheckForOf type-checks a `for (x of iterable)` statement: iterable must
// be an array, tuple, or string (the iterable shapes the checker models;
// user-defined Symbol.iterator protocols are out of scope).
func (c *Checker) CheckForOf(idx ast.NodeIndex, scope symbols.ScopeID) {
	n := c.node(idx)
	if n == nil || n.Kind != ast.StmtForOf {
		return
	}
	b := c.Types.Builtins()
	iterType := c.Types.Unwrap(c.TypeOfExpr(n.Right, scope))

	elemType, ok := c.elementTypeOf(iterType)
	if !ok && iterType != b.Any && iterType != b.Unknown {
		c.report(diag.Error(diag.ForOfNonIterable, c.spanOf(n.Right, n.Span),
			fmt.Sprintf("Type '%s' is not an array type or a string type.", c.Types.KindOf(iterType))))
		return
	}

	bindingNode := c.node(n.Left)
	if bindingNode != nil && bindingNode.Kind == ast.ExprIdent {
		c.bindSymbol(scope, bindingNode.Name, elemType)
	}
}

func (c *Checker) elementTypeOf(t types.TypeID) (types.TypeID, bool) {
	b := c.Types.Builtins()
	if t == b.String {
		return b.String, true
	}
	if elem := c.Types.ArrayElem(t); elem.IsValid() {
		return elem, true
	}
	if info, ok := c.Types.TupleInfoOf(t); ok {
		members := make([]types.TypeID, 0, len(info.Elements))
		for _, e := range info.Elements {
			members = append(members, e.Type)
		}
		return c.Types.Union(members...), true
	}
	return b.Any, false
}

// CheckSwitchExhaustiveness reports TS2366 when a switch over a union of
// literal types has no `default` clause and at least one member is not
// covered by any case's literal test.
func (c *Checker) CheckSwitchExhaustiveness(idx ast.NodeIndex, scope symbols.ScopeID) {
	n := c.node(idx)
	if n == nil || n.Kind != ast.StmtSwitch {
		return
	}
	discType := c.TypeOfExpr(n.Left, scope)
	info, ok := c.Types.UnionInfoOf(discType)
	if !ok {
		return
	}

	covered := make(map[types.TypeID]bool, len(n.Children))
	hasDefault := false
	for _, cs := range n.Children {
		csNode := c.node(cs)
		if csNode == nil {
			continue
		}
		if !csNode.Left.IsValid() {
			hasDefault = true
			continue
		}
		covered[c.TypeOfExpr(csNode.Left, scope)] = true
	}
	if hasDefault {
		return
	}

	for _, m := range info.Members {
		if !covered[m] {
			c.report(diag.Error(diag.SwitchNotExhaustive, n.Span,
				"Switch is not exhaustive: not all union members are handled and no 'default' clause exists."))
			return
		}
	}
}

// switchCluster groups a run of fallthrough case labels (`case 1: case 2:
// body`, JS's empty-case fallthrough) sharing one body: tests holds every
// label's own test expression, isDefault marks the default clause, and body
// is the statement list the labels fall into.
type switchCluster struct {
	span      source.Span
	tests     []ast.NodeIndex
	isDefault bool
	body      []ast.NodeIndex
}

// clusterSwitchCases groups n's case clauses by JS fallthrough: consecutive
// labels with an empty body share whichever later label's body they fall
// into. A run of labels with no later non-empty body at all (cases at the
// very end of the switch with nothing in them) becomes its own cluster with
// an empty body, since control falls straight out of the switch from there.
func clusterSwitchCases(c *Checker, n *ast.Node) []switchCluster {
	var clusters []switchCluster
	var pending []ast.NodeIndex
	pendingDefault := false
	span := n.Span

	flush := func(body []ast.NodeIndex) {
		if len(pending) == 0 && !pendingDefault {
			return
		}
		clusters = append(clusters, switchCluster{span: span, tests: pending, isDefault: pendingDefault, body: body})
		pending = nil
		pendingDefault = false
	}

	for _, cs := range n.Children {
		csNode := c.node(cs)
		if csNode == nil {
			continue
		}
		if len(pending) == 0 && !pendingDefault {
			span = csNode.Span
		}
		if !csNode.Left.IsValid() {
			pendingDefault = true
		} else {
			pending = append(pending, csNode.Left)
		}
		if len(csNode.Children) > 0 {
			flush(csNode.Children)
		}
	}
	flush(nil)
	return clusters
}

// switchFallsThrough reports whether control can reach past the end of
// body without being diverted by a terminating statement — a crude,
// top-level-only check (it does not look inside nested if/try blocks for a
// statement that terminates on every path), matching the rest of this
// checker's conservative, non-exhaustive-CFG style of reachability check.
func switchFallsThrough(c *Checker, body []ast.NodeIndex) bool {
	if len(body) == 0 {
		return true
	}
	last := c.node(body[len(body)-1])
	if last == nil {
		return true
	}
	switch last.Kind {
	case ast.StmtReturn, ast.StmtThrow, ast.StmtBreak, ast.StmtContinue:
		return false
	default:
		return true
	}
}

// checkSwitchBody type-checks every case/default clause's body and, when
// the discriminant is a bare identifier, narrows it within each clause via
// a real flowgraph.SwitchClause node and merges the result back into the
// discriminant's type once control passes the switch statement: per
// spec.md §4.2, a clause whose body can't fall through (ends in
// return/throw/break/continue) does not contribute to that merge, and a
// switch with no default clause implicitly excludes every case's tested
// literal from whatever falls through without matching any of them.
func (c *Checker) checkSwitchBody(n *ast.Node, scope symbols.ScopeID) {
	clusters := clusterSwitchCases(c, n)
	sym := c.switchSubject(n.Left, scope)
	if !sym.IsValid() {
		for _, cl := range clusters {
			for _, t := range cl.tests {
				c.TypeOfExpr(t, scope)
			}
			c.CheckProgram(cl.body, scope)
		}
		return
	}

	preSwitch := c.Types.Builtins().Any
	if s := c.Symbols.Symbol(sym); s != nil && s.Type.IsValid() {
		preSwitch = s.Type
	}
	if t, ok := c.symbolTypes[sym]; ok {
		preSwitch = t
	}

	fb := flowgraph.NewBuilder(len(clusters) + 2)
	analyzer := c.NewFlowAnalyzer(fb.Graph, scope)

	var allTests []ast.NodeIndex
	hasDefault := false
	for _, cl := range clusters {
		if cl.isDefault {
			hasDefault = true
			continue
		}
		allTests = append(allTests, cl.tests...)
	}

	var survivors []types.TypeID
	narrowAndCheck := func(cl switchCluster, narrowed types.TypeID) {
		c.symbolTypes[sym] = narrowed
		c.CheckProgram(cl.body, scope)
		if switchFallsThrough(c, cl.body) {
			survivors = append(survivors, narrowed)
		}
	}

	for _, cl := range clusters {
		for _, t := range cl.tests {
			c.TypeOfExpr(t, scope)
		}
		if cl.isDefault {
			continue
		}
		node := fb.SwitchClause(cl.span, fb.Start(), n.Left, cl.tests, true)
		narrowAndCheck(cl, analyzer.TypeAt(node, sym, preSwitch))
	}

	excludeNode := fb.SwitchClause(n.Span, fb.Start(), n.Left, allTests, false)
	excluded := analyzer.TypeAt(excludeNode, sym, preSwitch)

	if hasDefault {
		for _, cl := range clusters {
			if cl.isDefault {
				narrowAndCheck(cl, excluded)
			}
		}
	} else {
		survivors = append(survivors, excluded)
	}

	merged := c.Types.Union(survivors...)
	c.symbolTypes[sym] = merged
	if s := c.Symbols.Symbol(sym); s != nil {
		s.Type = merged
	}
}

// switchSubject returns the symbol a switch's discriminant resolves to, or
// an invalid SymbolID when the discriminant isn't a bare identifier (a
// computed expression has nothing for a SwitchClause node to narrow).
func (c *Checker) switchSubject(discriminant ast.NodeIndex, scope symbols.ScopeID) symbols.SymbolID {
	n := c.node(discriminant)
	if n == nil || n.Kind != ast.ExprIdent {
		return symbols.NoSymbolID
	}
	sym, _ := c.Symbols.Lookup(scope, n.Name)
	return sym
}

// CheckReachableAt reports TS7027 for a statement whose flow-graph node is
// unreachable, unless allowUnreachableCode suppresses it.
func (c *Checker) CheckReachableAt(graph *flowgraph.Graph, node flowgraph.NodeID, stmt *ast.Node) {
	if stmt == nil || c.Options.AllowUnreachableCode {
		return
	}
	if flowgraph.IsUnreachable(graph, node) {
		c.report(diag.Warning(diag.UnreachableCode, stmt.Span, "Unreachable code detected."))
	}
}
