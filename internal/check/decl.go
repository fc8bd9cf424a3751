package check

import (
	"fmt"

	"tschecker/internal/assign"
	"tschecker/internal/ast"
	"tschecker/internal/diag"
	"tschecker/internal/flow"
	"tschecker/internal/source"
	"tschecker/internal/symbols"
	"tschecker/internal/types"
)

// CheckVarDecl type-checks one var/let/const declaration: the initializer
// (if any) against an explicit annotation, or widens the initializer's
// inferred type per spec §4.4.1 when there is none, then binds the result
// onto every symbol the binding pattern introduces.
func (c *Checker) CheckVarDecl(idx ast.NodeIndex, scope symbols.ScopeID) {
	n := c.node(idx)
	if n == nil || n.Kind != ast.StmtVarDecl {
		return
	}
	b := c.Types.Builtins()
	isConst := n.Flags.Has(ast.FlagConst)
	ambient := c.bindingIsAmbient(n.Left, scope)

	var initType types.TypeID
	hasInit := n.Right.IsValid()
	if hasInit {
		initType = c.TypeOfExpr(n.Right, scope)
	}

	var bound types.TypeID
	switch {
	case n.TypeAnn.IsValid():
		declared := c.ResolveTypeNode(n.TypeAnn, scope)
		if hasInit && !assign.IsAssignable(c.Types, initType, declared) {
			c.report(typeNotAssignable(c.spanOf(n.Right, n.Span), initType, declared, c.Types))
		}
		if hasInit && !ambient {
			for _, excess := range assign.CheckExcessProperties(c.Types, initType, declared) {
				c.report(excessProperty(c.spanOf(n.Right, n.Span), c.nameOf(excess.Name), declared, c.Types))
			}
		}
		bound = declared
	case hasInit:
		if sym, ok := c.evolvingArrayCandidate(n, scope, isConst); ok {
			c.evolvingArrays[sym] = flow.NewEvolvingArray()
			return
		}
		bound = flow.WidenForDeclaration(c.Types, isConst, initType)
	default:
		if c.Options.NoImplicitAny && !ambient {
			c.report(implicitAny(n, c.bindingName(n.Left)))
		}
		bound = b.Any
	}

	c.bindPattern(n.Left, bound, scope)
}

// evolvingArrayCandidate reports whether n is a mutable binding of a bare
// identifier to an empty array literal with no type annotation — the shape
// spec.md §4.4.1 grows into an evolving `any[]` instead of fixing `any[]`
// immediately, per flow.EvolvingArray's doc comment.
func (c *Checker) evolvingArrayCandidate(n *ast.Node, scope symbols.ScopeID, isConst bool) (symbols.SymbolID, bool) {
	if isConst || n.TypeAnn.IsValid() {
		return symbols.NoSymbolID, false
	}
	rightNode := c.node(n.Right)
	if rightNode == nil || rightNode.Kind != ast.ExprArrayLit || len(rightNode.Children) != 0 {
		return symbols.NoSymbolID, false
	}
	leftNode := c.node(n.Left)
	if leftNode == nil || leftNode.Kind != ast.ExprIdent {
		return symbols.NoSymbolID, false
	}
	sym, ok := c.Symbols.LookupInScope(scope, leftNode.Name)
	if !ok {
		return symbols.NoSymbolID, false
	}
	return sym, true
}

// bindingIsAmbient reports whether pat's introduced symbol (or its first
// identifier, for a destructuring pattern) carries symbols.FlagAmbient, the
// "declare" context spec.md §4.5 exempts from initializer-required and
// excess-property checks a normal declaration would otherwise get.
func (c *Checker) bindingIsAmbient(pat ast.NodeIndex, scope symbols.ScopeID) bool {
	n := c.node(pat)
	if n == nil {
		return false
	}
	var name source.StringID
	switch n.Kind {
	case ast.ExprIdent:
		name = n.Name
	case ast.PatDefault, ast.PatRest:
		return c.bindingIsAmbient(n.Left, scope)
	default:
		return false
	}
	sym, ok := c.Symbols.LookupInScope(scope, name)
	if !ok {
		return false
	}
	s := c.Symbols.Symbol(sym)
	return s != nil && s.Flags.Has(symbols.FlagAmbient)
}

// spanOf returns idx's own span if it resolves to a node, else fallback.
func (c *Checker) spanOf(idx ast.NodeIndex, fallback source.Span) source.Span {
	if n := c.node(idx); n != nil {
		return n.Span
	}
	return fallback
}

// bindPattern assigns t (or a destructured share of it) to every identifier
// reachable from pat.
func (c *Checker) bindPattern(pat ast.NodeIndex, t types.TypeID, scope symbols.ScopeID) {
	n := c.node(pat)
	if n == nil {
		return
	}
	switch n.Kind {
	case ast.ExprIdent:
		c.bindSymbol(scope, n.Name, t)

	case ast.PatArray:
		elem := c.Types.ArrayElem(t)
		if !elem.IsValid() {
			elem = c.Types.Builtins().Any
		}
		for _, el := range n.Children {
			c.bindPattern(el, elem, scope)
		}

	case ast.PatObject:
		for _, p := range n.Children {
			pn := c.node(p)
			if pn == nil {
				continue
			}
			propType := c.Types.Builtins().Any
			if prop, ok := c.Types.Property(c.Types.Unwrap(t), pn.Name); ok {
				propType = prop.Type
			}
			c.bindPattern(pn.Left, propType, scope)
		}

	case ast.PatRest:
		c.bindPattern(n.Left, c.Types.Array(t), scope)

	case ast.PatDefault:
		widened := c.Types.Union(t, c.TypeOfExpr(n.Right, scope))
		c.bindPattern(n.Left, widened, scope)
	}
}

// bindSymbol records t as the resolved type of the symbol named name in
// scope, the final step of checking a declaration: later identifier reads
// resolve through this symbol, not by re-inferring the declaration.
func (c *Checker) bindSymbol(scope symbols.ScopeID, name source.StringID, t types.TypeID) {
	sym, ok := c.Symbols.LookupInScope(scope, name)
	if !ok {
		return
	}
	c.symbolTypes[sym] = t
	if s := c.Symbols.Symbol(sym); s != nil {
		s.Type = t
	}
}

func (c *Checker) bindingName(pat ast.NodeIndex) string {
	n := c.node(pat)
	if n == nil {
		return ""
	}
	return c.nameOf(n.Name)
}

func typeNotAssignable(span source.Span, src, target types.TypeID, in *types.Interner) diag.Diagnostic {
	return diag.Error(diag.TypeNotAssignable, span,
		fmt.Sprintf("Type '%s' is not assignable to type '%s'.", in.KindOf(src), in.KindOf(target)))
}

func implicitAny(n *ast.Node, name string) diag.Diagnostic {
	return diag.Warning(diag.ImplicitAny, n.Span,
		fmt.Sprintf("Variable '%s' implicitly has an 'any' type.", name))
}

func excessProperty(span source.Span, name string, target types.TypeID, in *types.Interner) diag.Diagnostic {
	return diag.Error(diag.ObjectLiteralUnknownProperty, span,
		fmt.Sprintf("Object literal may only specify known properties, and '%s' does not exist in type '%s'.", name, in.KindOf(target)))
}
