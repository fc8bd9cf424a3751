// Package check is the declaration/statement/expression checker driver: it
// walks an already-bound program (an ast.Arena plus the symbols.Table and
// flowgraph.Graph a binder attached to it) and reports diagnostics through
// internal/diag, consulting internal/assign for assignability, internal/narrow
// and internal/flow for narrowed reference types, and internal/config for
// which optional checks are active.
package check

import (
	"fmt"

	"tschecker/internal/ast"
	"tschecker/internal/config"
	"tschecker/internal/diag"
	"tschecker/internal/flow"
	"tschecker/internal/source"
	"tschecker/internal/symbols"
	"tschecker/internal/types"
)

// Checker holds everything one check pass over a file needs: the arena and
// symbol table a binder produced, the type interner they were built
// against, and where diagnostics go.
type Checker struct {
	Arena    *ast.Arena
	Symbols  *symbols.Table
	Types    *types.Interner
	Options  config.EffectiveOptions
	Reporter diag.Reporter

	exprTypes   map[ast.NodeIndex]types.TypeID
	symbolTypes map[symbols.SymbolID]types.TypeID

	// checkedRedeclarations dedupes CheckProgram's per-declaration calls
	// into CheckRedeclaration: a symbol with N declarations is visited by
	// checkStmt once per declaration, but CheckRedeclaration itself always
	// reports for every declaration beyond the first, so each symbol must
	// only actually run the check once.
	checkedRedeclarations map[symbols.SymbolID]bool

	// evolvingArrays holds one flow.EvolvingArray per `let x = []` binding
	// still accumulating element types; a symbol is removed the moment it's
	// read anywhere other than as the object of `.push(...)` or an indexed
	// assignment, which is when it freezes into a fixed array type.
	evolvingArrays map[symbols.SymbolID]*flow.EvolvingArray
}

// NewChecker returns a Checker ready to walk arena's nodes.
func NewChecker(arena *ast.Arena, table *symbols.Table, in *types.Interner, opts config.EffectiveOptions, r diag.Reporter) *Checker {
	return &Checker{
		Arena:                 arena,
		Symbols:               table,
		Types:                 in,
		Options:               opts,
		Reporter:              r,
		exprTypes:             make(map[ast.NodeIndex]types.TypeID),
		symbolTypes:           make(map[symbols.SymbolID]types.TypeID),
		checkedRedeclarations: make(map[symbols.SymbolID]bool),
		evolvingArrays:        make(map[symbols.SymbolID]*flow.EvolvingArray),
	}
}

// Result is the product of a check pass: every expression's computed type
// and every symbol's resolved type, keyed for later consumers (hover,
// the driver's cache) to look up without re-walking the AST.
type Result struct {
	ExprTypes   map[ast.NodeIndex]types.TypeID
	SymbolTypes map[symbols.SymbolID]types.TypeID
}

// Finish snapshots the accumulated per-node and per-symbol types.
func (c *Checker) Finish() Result {
	return Result{ExprTypes: c.exprTypes, SymbolTypes: c.symbolTypes}
}

func (c *Checker) report(d diag.Diagnostic) {
	if c.Reporter != nil {
		c.Reporter.Report(d)
	}
}

func (c *Checker) node(idx ast.NodeIndex) *ast.Node { return c.Arena.Get(idx) }

func (c *Checker) nameOf(id source.StringID) string {
	if c.Symbols == nil || c.Symbols.Strings == nil {
		return ""
	}
	return c.Symbols.Strings.Lookup(id)
}

// setExprType records idx's computed type and returns it, so every typing
// rule can end in `return c.setExprType(idx, t)`.
func (c *Checker) setExprType(idx ast.NodeIndex, t types.TypeID) types.TypeID {
	c.exprTypes[idx] = t
	return t
}

// TypeOfExpr computes (and caches) the type of the expression at idx,
// resolving identifiers against scope. Unsupported/unrecognized expression
// shapes fall back to `any` rather than panicking, matching how a checker
// degrades gracefully on a node kind it doesn't yet model.
func (c *Checker) TypeOfExpr(idx ast.NodeIndex, scope symbols.ScopeID) types.TypeID {
	if t, ok := c.exprTypes[idx]; ok {
		return t
	}
	n := c.node(idx)
	if n == nil {
		return c.Types.Builtins().Any
	}
	b := c.Types.Builtins()

	switch n.Kind {
	case ast.ExprLitString:
		return c.setExprType(idx, c.Types.LiteralString(n.StrVal))
	case ast.ExprLitNumber:
		return c.setExprType(idx, c.Types.LiteralNumber(n.NumVal))
	case ast.ExprLitBoolean:
		return c.setExprType(idx, c.Types.LiteralBoolean(n.Flags.Has(ast.FlagConst)))
	case ast.ExprLitNull:
		return c.setExprType(idx, b.Null)
	case ast.ExprLitUndefined:
		return c.setExprType(idx, b.Undefined)
	case ast.ExprLitBigInt:
		return c.setExprType(idx, c.Types.LiteralBigInt(n.StrVal))

	case ast.ExprIdent:
		sym, _ := c.Symbols.Lookup(scope, n.Name)
		if !sym.IsValid() {
			c.report(diag.Error(diag.CannotFindName, n.Span,
				fmt.Sprintf("Cannot find name '%s'.", c.nameOf(n.Name))))
			return c.setExprType(idx, b.Any)
		}
		if ea, ok := c.evolvingArrays[sym]; ok {
			return c.setExprType(idx, c.freezeEvolvingArray(sym, ea))
		}
		if t, ok := c.symbolTypes[sym]; ok {
			return c.setExprType(idx, t)
		}
		if s := c.Symbols.Symbol(sym); s != nil && s.Type.IsValid() {
			return c.setExprType(idx, s.Type)
		}
		return c.setExprType(idx, b.Any)

	case ast.ExprThis:
		return c.setExprType(idx, b.Any)

	case ast.ExprArrayLit:
		elemTypes := make([]types.TypeID, 0, len(n.Children))
		for _, el := range n.Children {
			elemTypes = append(elemTypes, c.TypeOfExpr(el, scope))
		}
		if len(elemTypes) == 0 {
			return c.setExprType(idx, c.Types.Array(b.Any))
		}
		return c.setExprType(idx, c.Types.Array(c.Types.Union(elemTypes...)))

	case ast.ExprObjectLit:
		props := make([]types.PropertyInfo, 0, len(n.Children))
		for _, p := range n.Children {
			pn := c.node(p)
			if pn == nil || pn.Kind != ast.ExprObjectProp {
				continue
			}
			props = append(props, types.PropertyInfo{
				Name: pn.Name,
				Type: c.TypeOfExpr(pn.Left, scope),
			})
		}
		obj := c.Types.Object(props, nil, nil, nil)
		return c.setExprType(idx, c.Types.Fresh(obj))

	case ast.ExprMember:
		objType := c.TypeOfExpr(n.Left, scope)
		resolved := c.Types.Unwrap(objType)
		if prop, ok := c.Types.Property(resolved, n.Name); ok {
			return c.setExprType(idx, prop.Type)
		}
		if resolved == b.Any || resolved == b.Unknown {
			return c.setExprType(idx, b.Any)
		}
		c.report(diag.Error(diag.PropertyDoesNotExistOnType, n.Span,
			fmt.Sprintf("Property '%s' does not exist on type '%s'.", c.nameOf(n.Name), c.Types.KindOf(resolved))))
		return c.setExprType(idx, b.Any)

	case ast.ExprIndex:
		objType := c.Types.Unwrap(c.TypeOfExpr(n.Left, scope))
		c.TypeOfExpr(n.Right, scope)
		if elem := c.Types.ArrayElem(objType); elem.IsValid() {
			return c.setExprType(idx, elem)
		}
		return c.setExprType(idx, b.Any)

	case ast.ExprUnary:
		return c.setExprType(idx, c.typeOfUnary(n, scope))

	case ast.ExprUpdate:
		c.TypeOfExpr(n.Left, scope)
		c.checkReadonlyAssignmentTarget(n.Left, scope)
		return c.setExprType(idx, b.Number)

	case ast.ExprBinary:
		return c.setExprType(idx, c.typeOfBinary(n, scope))

	case ast.ExprLogical:
		return c.setExprType(idx, c.typeOfLogical(n, scope))

	case ast.ExprAssign:
		return c.setExprType(idx, c.typeOfAssign(n, scope))

	case ast.ExprConditional:
		c.TypeOfExpr(n.Left, scope)
		conseq := c.TypeOfExpr(n.Right, scope)
		alt := c.TypeOfExpr(n.Extra, scope)
		return c.setExprType(idx, c.Types.Union(conseq, alt))

	case ast.ExprNonNull:
		inner := c.TypeOfExpr(n.Left, scope)
		return c.setExprType(idx, stripNullish(c.Types, inner))

	case ast.ExprSequence:
		var last types.TypeID = b.Undefined
		for _, e := range n.Children {
			last = c.TypeOfExpr(e, scope)
		}
		return c.setExprType(idx, last)

	case ast.ExprCall:
		if t, ok := c.typeOfEvolvingPush(n, scope); ok {
			return c.setExprType(idx, t)
		}
		return c.setExprType(idx, c.typeOfCall(n, scope))

	case ast.ExprFunction:
		return c.setExprType(idx, b.Any)

	default:
		return c.setExprType(idx, b.Any)
	}
}

// freezeEvolvingArray resolves sym's accumulated element union into a fixed
// array type, per spec.md's "freeze at first flow-sensitive read in a
// non-assignment position" resolution of the evolving-`any[]` open question:
// once anything reads sym other than a `.push(...)` call or an indexed
// assignment, it stops evolving for good.
func (c *Checker) freezeEvolvingArray(sym symbols.SymbolID, ea *flow.EvolvingArray) types.TypeID {
	delete(c.evolvingArrays, sym)
	resolved := ea.Resolve(c.Types)
	c.symbolTypes[sym] = resolved
	if s := c.Symbols.Symbol(sym); s != nil {
		s.Type = resolved
	}
	return resolved
}

// stripNullish removes null/undefined from a union, the effect of the `!`
// non-null assertion operator.
func stripNullish(in *types.Interner, t types.TypeID) types.TypeID {
	b := in.Builtins()
	info, ok := in.UnionInfoOf(t)
	if !ok {
		if t == b.Null || t == b.Undefined {
			return b.Never
		}
		return t
	}
	kept := make([]types.TypeID, 0, len(info.Members))
	for _, m := range info.Members {
		if m == b.Null || m == b.Undefined {
			continue
		}
		kept = append(kept, m)
	}
	return in.Union(kept...)
}
