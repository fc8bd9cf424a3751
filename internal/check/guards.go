package check

import (
	"tschecker/internal/ast"
	"tschecker/internal/flowgraph"
	"tschecker/internal/narrow"
	"tschecker/internal/source"
	"tschecker/internal/symbols"
	"tschecker/internal/types"
)

// astGuards extracts a narrow.Guard from a flow-graph Condition/SwitchClause
// node's Condition expression, the real counterpart to internal/flow's test
// doubles: it reads the actual guard expression syntax the way a binder's
// narrowing pass would, instead of a fixed fake.
type astGuards struct {
	c     *Checker
	scope symbols.ScopeID
	// subjectOf reports the symbol an identifier expression refers to, so
	// ResolveGuard can tell whether a condition actually mentions subject.
	subjectOf func(ast.NodeIndex) symbols.SymbolID
}

func (g astGuards) ResolveGuard(node *flowgraph.Node, subject symbols.SymbolID, subjectType types.TypeID) (narrow.Guard, bool) {
	if node.Kind == flowgraph.SwitchClause {
		return g.switchGuard(node, subject, subjectType)
	}
	guard, negated, ok := g.guardFromExpr(node.Condition, subject, subjectType)
	if !ok {
		return narrow.Guard{}, false
	}
	sense := node.Sense
	if negated {
		sense = !sense
	}
	guard.Sense = sense
	return guard, true
}

// switchGuard builds the GuardSwitchExclude for a SwitchClause node: a
// matched clause (node.Sense true) keeps only members equal to one of its
// case-test literals (a fallthrough run of several labels shares this one
// set), and the "no case matched" clause (node.Sense false) excludes every
// case-test literal in the switch at once. Both require the discriminant
// itself to resolve to subject; a switch over anything else (a call, a
// member access) leaves the incoming type unnarrowed.
func (g astGuards) switchGuard(node *flowgraph.Node, subject symbols.SymbolID, subjectType types.TypeID) (narrow.Guard, bool) {
	if g.subjectOf(node.Condition) != subject {
		return narrow.Guard{}, false
	}
	literals := make([]types.TypeID, 0, len(node.CaseTests))
	for _, test := range node.CaseTests {
		literals = append(literals, g.c.TypeOfExpr(test, g.scope))
	}
	return narrow.Guard{
		Kind:             narrow.GuardSwitchExclude,
		Subject:          subjectType,
		Sense:            node.Sense,
		ExcludedLiterals: literals,
	}, true
}

// guardFromExpr parses idx's guard shape, returning negated=true once for
// every `!` crossed on the way there, so an arbitrary `!!!x` composes
// correctly with the branch's own Sense in ResolveGuard.
func (g astGuards) guardFromExpr(idx ast.NodeIndex, subject symbols.SymbolID, subjectType types.TypeID) (narrow.Guard, bool, bool) {
	n := g.c.node(idx)
	if n == nil {
		return narrow.Guard{}, false, false
	}

	switch n.Kind {
	case ast.ExprIdent:
		if g.subjectOf(idx) != subject {
			return narrow.Guard{}, false, false
		}
		return narrow.Guard{Kind: narrow.GuardTruthy, Subject: subjectType}, false, true

	case ast.ExprUnary:
		if n.Op != ast.OpNot {
			break
		}
		inner, negated, ok := g.guardFromExpr(n.Left, subject, subjectType)
		if !ok {
			return narrow.Guard{}, false, false
		}
		return inner, !negated, true

	case ast.ExprBinary:
		guard, ok := g.guardFromBinary(n, subject, subjectType)
		return guard, false, ok
	}
	return narrow.Guard{}, false, false
}

func (g astGuards) guardFromBinary(n *ast.Node, subject symbols.SymbolID, subjectType types.TypeID) (narrow.Guard, bool) {
	left := g.c.node(n.Left)
	right := g.c.node(n.Right)

	switch n.Op {
	case ast.OpInstanceof:
		if g.subjectOf(n.Left) != subject {
			return narrow.Guard{}, false
		}
		ctorType := g.c.TypeOfExpr(n.Right, g.scope)
		return narrow.Guard{Kind: narrow.GuardInstanceof, Subject: subjectType, InstanceofOf: ctorType}, true

	case ast.OpIn:
		if left == nil || left.Kind != ast.ExprLitString {
			return narrow.Guard{}, false
		}
		if g.subjectOf(n.Right) != subject {
			return narrow.Guard{}, false
		}
		return narrow.Guard{
			Kind:         narrow.GuardIn,
			Subject:      subjectType,
			PropertyName: g.c.Symbols.Strings.Intern(left.StrVal),
		}, true

	case ast.OpEq, ast.OpStrictEq, ast.OpNotEq, ast.OpStrictNotEq:
		eqOp := equalityOpOf(n.Op)

		if typeofSide, literalSide, ok := matchTypeofCompare(left, right); ok {
			typeofExprIdx := n.Left
			if typeofSide == right {
				typeofExprIdx = n.Right
			}
			typeofNode := g.c.node(typeofExprIdx)
			if g.subjectOf(typeofNode.Left) != subject {
				return narrow.Guard{}, false
			}
			return narrow.Guard{
				Kind:      narrow.GuardTypeof,
				Subject:   subjectType,
				TypeofTag: literalSide.StrVal,
			}, true
		}

		if path, litType, ok := g.matchDiscriminant(n, subject); ok {
			return narrow.Guard{
				Kind:         narrow.GuardDiscriminant,
				Subject:      subjectType,
				PropertyPath: path,
				LiteralValue: litType,
			}, true
		}

		if g.subjectOf(n.Left) == subject {
			return narrow.Guard{
				Kind:         narrow.GuardLiteralEquality,
				Subject:      subjectType,
				EqualityOp:   eqOp,
				LiteralValue: g.c.TypeOfExpr(n.Right, g.scope),
			}, true
		}
	}
	return narrow.Guard{}, false
}

// matchDiscriminant recognizes `x.p1.p2…pk === <literal>` where x is the
// guard's subject and every step is a non-computed member access; returns
// the property path in access order and the literal's type.
func (g astGuards) matchDiscriminant(n *ast.Node, subject symbols.SymbolID) ([]source.StringID, types.TypeID, bool) {
	path, ok := g.memberPath(g.c.node(n.Left), subject)
	if !ok {
		return nil, 0, false
	}
	return path, g.c.TypeOfExpr(n.Right, g.scope), true
}

// memberPath walks a chain of non-computed member expressions rooted at an
// identifier resolving to subject, returning the accessed property names in
// order: `x.shape.kind` yields ["shape", "kind"].
func (g astGuards) memberPath(n *ast.Node, subject symbols.SymbolID) ([]source.StringID, bool) {
	if n == nil || n.Kind != ast.ExprMember {
		return nil, false
	}
	base := g.c.node(n.Left)
	if base != nil && base.Kind == ast.ExprIdent && g.subjectOf(n.Left) == subject {
		return []source.StringID{n.Name}, true
	}
	parentPath, ok := g.memberPath(base, subject)
	if !ok {
		return nil, false
	}
	return append(parentPath, n.Name), true
}

func equalityOpOf(op ast.Operator) narrow.EqualityOp {
	switch op {
	case ast.OpEq:
		return narrow.EqLooseEqual
	case ast.OpNotEq:
		return narrow.EqLooseNotEqual
	case ast.OpStrictNotEq:
		return narrow.EqStrictNotEqual
	default:
		return narrow.EqStrictEqual
	}
}

// matchTypeofCompare recognizes `typeof x === "tag"` on either side of the
// comparison, returning whichever node is the typeof side and which is the
// string-literal side.
func matchTypeofCompare(left, right *ast.Node) (typeofSide, literalSide *ast.Node, ok bool) {
	if left != nil && left.Kind == ast.ExprUnary && left.Op == ast.OpTypeof && right != nil && right.Kind == ast.ExprLitString {
		return left, right, true
	}
	if right != nil && right.Kind == ast.ExprUnary && right.Op == ast.OpTypeof && left != nil && left.Kind == ast.ExprLitString {
		return right, left, true
	}
	return nil, nil, false
}

// astAssignments reports the assigned type of an Assignment flow node by
// re-typing its Assigned expression.
type astAssignments struct {
	c         *Checker
	scope     symbols.ScopeID
	subjectOf func(ast.NodeIndex) symbols.SymbolID
}

func (a astAssignments) ResolveAssignment(node *flowgraph.Node, subject symbols.SymbolID) (types.TypeID, bool) {
	if a.subjectOf(node.Reference) != subject {
		return types.NoTypeID, false
	}
	if !node.Assigned.IsValid() {
		return types.NoTypeID, false
	}
	return a.c.TypeOfExpr(node.Assigned, a.scope), true
}
