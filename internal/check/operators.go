package check

import (
	"fmt"

	"tschecker/internal/ast"
	"tschecker/internal/diag"
	"tschecker/internal/symbols"
	"tschecker/internal/types"
)

func (c *Checker) typeOfUnary(n *ast.Node, scope symbols.ScopeID) types.TypeID {
	b := c.Types.Builtins()
	operand := c.TypeOfExpr(n.Left, scope)
	switch n.Op {
	case ast.OpTypeof:
		return b.String
	case ast.OpVoid:
		return b.Undefined
	case ast.OpNot:
		return b.Boolean
	case ast.OpBitNot, ast.OpUnaryPlus, ast.OpUnaryMinus:
		if operand == b.BigInt {
			return b.BigInt
		}
		return b.Number
	default:
		return b.Any
	}
}

// isComparisonOp reports whether op produces a boolean result regardless of
// its operands' types.
func isComparisonOp(op ast.Operator) bool {
	switch op {
	case ast.OpEq, ast.OpStrictEq, ast.OpNotEq, ast.OpStrictNotEq,
		ast.OpLt, ast.OpLtEq, ast.OpGt, ast.OpGtEq,
		ast.OpIn, ast.OpInstanceof:
		return true
	default:
		return false
	}
}

func (c *Checker) typeOfBinary(n *ast.Node, scope symbols.ScopeID) types.TypeID {
	b := c.Types.Builtins()
	left := c.TypeOfExpr(n.Left, scope)
	right := c.TypeOfExpr(n.Right, scope)

	if isComparisonOp(n.Op) {
		return b.Boolean
	}

	switch n.Op {
	case ast.OpAdd:
		// String concatenation wins over arithmetic the moment either side
		// could be a string; a fully-numeric `+` yields number.
		if isStringLike(c.Types, left) || isStringLike(c.Types, right) {
			return b.String
		}
		if left == b.BigInt && right == b.BigInt {
			return b.BigInt
		}
		return b.Number
	case ast.OpSub, ast.OpMul, ast.OpDiv, ast.OpMod, ast.OpPow,
		ast.OpBitAnd, ast.OpBitOr, ast.OpBitXor, ast.OpShl, ast.OpShr, ast.OpUShr:
		if left == b.BigInt && right == b.BigInt {
			return b.BigInt
		}
		return b.Number
	default:
		return b.Any
	}
}

func isStringLike(in *types.Interner, t types.TypeID) bool {
	k := in.KindOf(t)
	return k == types.KindString || k == types.KindLiteralString || k == types.KindTemplateLiteral
}

func (c *Checker) typeOfLogical(n *ast.Node, scope symbols.ScopeID) types.TypeID {
	left := c.TypeOfExpr(n.Left, scope)
	right := c.TypeOfExpr(n.Right, scope)
	b := c.Types.Builtins()

	switch n.Op {
	case ast.OpAnd:
		// `a && b` evaluates to b whenever a is truthy; conservatively the
		// union of b's type and whatever falsy members a itself carries.
		return c.Types.Union(right, falsyMembersOf(c.Types, left))
	case ast.OpOr:
		return c.Types.Union(stripFalsy(c.Types, left), right)
	case ast.OpNullish:
		return c.Types.Union(stripNullish(c.Types, left), right)
	default:
		return b.Any
	}
}

func stripFalsy(in *types.Interner, t types.TypeID) types.TypeID {
	b := in.Builtins()
	info, ok := in.UnionInfoOf(t)
	members := info.Members
	if !ok {
		members = []types.TypeID{t}
	}
	kept := make([]types.TypeID, 0, len(members))
	for _, m := range members {
		if isDefinitelyFalsy(in, m) {
			continue
		}
		kept = append(kept, m)
	}
	if len(kept) == 0 {
		return b.Never
	}
	return in.Union(kept...)
}

func falsyMembersOf(in *types.Interner, t types.TypeID) types.TypeID {
	b := in.Builtins()
	info, ok := in.UnionInfoOf(t)
	members := info.Members
	if !ok {
		members = []types.TypeID{t}
	}
	var kept []types.TypeID
	for _, m := range members {
		if isDefinitelyFalsy(in, m) {
			kept = append(kept, m)
		}
	}
	if len(kept) == 0 {
		return b.Never
	}
	return in.Union(kept...)
}

func isDefinitelyFalsy(in *types.Interner, t types.TypeID) bool {
	b := in.Builtins()
	if t == b.Null || t == b.Undefined || t == b.False || t == b.Void {
		return true
	}
	if s, ok := in.LiteralStringValue(t); ok && s == "" {
		return true
	}
	if n, ok := in.LiteralNumberValue(t); ok && n == 0 {
		return true
	}
	return false
}

func (c *Checker) typeOfAssign(n *ast.Node, scope symbols.ScopeID) types.TypeID {
	value := c.TypeOfExpr(n.Right, scope)
	if c.pushToEvolvingIndexTarget(n.Left, value, scope) {
		return value
	}
	c.TypeOfExpr(n.Left, scope)
	c.checkReadonlyAssignmentTarget(n.Left, scope)
	return value
}

// pushToEvolvingIndexTarget special-cases `ident[i] = value` against ident's
// evolving array, if any: widening on a direct-index assignment must not
// itself freeze ident, the same way a `.push(value)` call doesn't. Returns
// false (doing nothing) for every other assignment target shape.
func (c *Checker) pushToEvolvingIndexTarget(idx ast.NodeIndex, value types.TypeID, scope symbols.ScopeID) bool {
	target := c.node(idx)
	if target == nil || target.Kind != ast.ExprIndex {
		return false
	}
	obj := c.node(target.Left)
	if obj == nil || obj.Kind != ast.ExprIdent {
		return false
	}
	sym, _ := c.Symbols.Lookup(scope, obj.Name)
	if !sym.IsValid() {
		return false
	}
	ea, ok := c.evolvingArrays[sym]
	if !ok {
		return false
	}
	c.TypeOfExpr(target.Right, scope)
	ea.Push(value)
	return true
}

// checkReadonlyAssignmentTarget reports TS2540 for a property-access target
// whose resolved property is readonly, and for an element-access target
// whose object type is a readonly array/tuple. `this.p` never triggers this
// today: ast.ExprThis resolves to `any` (see TypeOfExpr), which carries no
// property shape for Property to find a Readonly flag on, so the "exempt
// assignments inside the declaring class's own constructor" carve-out has no
// case to exempt until class instance types gain a structural shape.
func (c *Checker) checkReadonlyAssignmentTarget(idx ast.NodeIndex, scope symbols.ScopeID) {
	target := c.node(idx)
	if target == nil {
		return
	}
	switch target.Kind {
	case ast.ExprMember:
		objType := c.Types.Unwrap(c.TypeOfExpr(target.Left, scope))
		if prop, ok := c.Types.Property(objType, target.Name); ok && prop.Readonly {
			c.report(diag.Error(diag.AssignmentToReadonlyProperty, target.Span,
				fmt.Sprintf("Cannot assign to '%s' because it is a read-only property.", c.nameOf(target.Name))))
		}

	case ast.ExprIndex:
		objType := c.TypeOfExpr(target.Left, scope)
		if c.Types.IsReadonly(objType) {
			c.report(diag.Error(diag.AssignmentToReadonlyProperty, target.Span,
				"Cannot assign to the index of a read-only array or tuple."))
			return
		}
		unwrapped := c.Types.Unwrap(objType)
		if info, ok := c.Types.ObjectInfoOf(unwrapped); ok {
			for _, ix := range info.IndexSignatures {
				if ix.Readonly {
					c.report(diag.Error(diag.AssignmentToReadonlyProperty, target.Span,
						"Cannot assign to the index of a read-only property."))
					return
				}
			}
		}
	}
}
