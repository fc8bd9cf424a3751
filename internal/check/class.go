package check

import (
	"fmt"

	"tschecker/internal/assign"
	"tschecker/internal/ast"
	"tschecker/internal/diag"
	"tschecker/internal/source"
	"tschecker/internal/symbols"
	"tschecker/internal/types"
)

// CheckClassDecl runs every class-shape check spec.md §4.5 groups under one
// heading: circular-inheritance before any member typing, heritage clause
// resolution, duplicate member detection, abstract member implementation,
// override signature compatibility, and accessor type agreement.
func (c *Checker) CheckClassDecl(idx ast.NodeIndex, scope symbols.ScopeID) {
	n := c.node(idx)
	if n == nil || n.Kind != ast.StmtClassDecl {
		return
	}
	classSym, ok := c.Symbols.LookupInScope(scope, n.Name)
	if !ok || !classSym.IsValid() {
		return
	}

	if c.checkClassCircularInheritance(classSym, n) {
		// A class whose heritage chain loops back to itself has no
		// well-founded member set; stop at the cycle report instead of
		// cascading member errors off a heritage clause that doesn't resolve.
		return
	}

	baseSym, hasBase := c.resolveHeritage(n, scope, true)

	c.checkDuplicateClassMembers(n)
	c.checkAccessorAgreement(n, scope)
	c.checkParameterProperties(n)

	if hasBase {
		c.checkAbstractMembersImplemented(classSym, n, baseSym)
		c.checkOverrideCompatibility(n, baseSym, scope)
	}
}

// checkClassBody type-checks member initializers and method/static-block
// bodies, once CheckClassDecl has validated the class's own shape.
func (c *Checker) checkClassBody(n *ast.Node, scope symbols.ScopeID) {
	for _, m := range n.Children {
		mn := c.node(m)
		if mn == nil {
			continue
		}
		switch mn.Kind {
		case ast.ClassProperty:
			if mn.Right.IsValid() {
				c.TypeOfExpr(mn.Right, scope)
			}
		case ast.ClassMethod, ast.ClassStaticBlock:
			if mn.Right.IsValid() {
				c.checkStmt(mn.Right, scope)
			}
		}
	}
}

// identSymbol resolves idx, if it is a bare identifier, against scope.
func (c *Checker) identSymbol(idx ast.NodeIndex, scope symbols.ScopeID) (symbols.SymbolID, bool) {
	n := c.node(idx)
	if n == nil || n.Kind != ast.ExprIdent {
		return symbols.NoSymbolID, false
	}
	sym, _ := c.Symbols.Lookup(scope, n.Name)
	return sym, sym.IsValid()
}

// resolveHeritage resolves n's `extends` expression to the base class's
// symbol. hasBase is false with no diagnostic when n declares no base at
// all. When report is true, an unresolvable name reports TS2304; a name
// that resolves to an interface reports TS2689 (with the "did you mean
// implements" nudge real TypeScript gives), and a name that resolves to
// anything else non-constructible reports TS2507. A chain walk over
// already-declared classes passes report=false to avoid re-reporting a
// heritage error each ancestor it traverses through.
func (c *Checker) resolveHeritage(n *ast.Node, scope symbols.ScopeID, report bool) (symbols.SymbolID, bool) {
	if !n.Left.IsValid() {
		return symbols.NoSymbolID, false
	}
	ident := c.node(n.Left)
	sym, ok := c.identSymbol(n.Left, scope)
	if !ok {
		if report && ident != nil && ident.Kind == ast.ExprIdent {
			c.report(cannotFindName(ident, c.nameOf(ident.Name)))
		}
		return symbols.NoSymbolID, false
	}
	s := c.Symbols.Symbol(sym)
	if s == nil || s.Kind != symbols.Class {
		if report && ident != nil {
			if s != nil && s.Kind == symbols.Interface {
				c.report(diag.Error(diag.CannotExtendInterface, ident.Span,
					fmt.Sprintf("Cannot extend an interface '%s'. Did you mean 'implements %s'?",
						c.nameOf(ident.Name), c.nameOf(ident.Name))))
			} else {
				c.report(diag.Error(diag.HeritageBaseNotConstructor, ident.Span,
					fmt.Sprintf("Type '%s' is not a constructor function type.", c.nameOf(ident.Name))))
			}
		}
		return symbols.NoSymbolID, false
	}
	return sym, true
}

// checkClassCircularInheritance walks classSym's heritage chain looking for
// a cycle back to classSym itself, reporting TS2506 on the class's own span
// if one is found. Returns whether a cycle involving classSym was found.
func (c *Checker) checkClassCircularInheritance(classSym symbols.SymbolID, n *ast.Node) bool {
	visited := map[symbols.SymbolID]bool{classSym: true}
	cur := classSym
	for {
		s := c.Symbols.Symbol(cur)
		if s == nil {
			return false
		}
		decl := c.node(s.ValueDecl)
		if decl == nil || decl.Kind != ast.StmtClassDecl {
			return false
		}
		baseSym, ok := c.resolveHeritage(decl, s.Scope, false)
		if !ok {
			return false
		}
		if baseSym == classSym {
			c.report(diag.Error(diag.ClassCircularBaseExpression, n.Span,
				fmt.Sprintf("'%s' is referenced directly or indirectly in its own base expression.", c.nameOf(n.Name))))
			return true
		}
		if visited[baseSym] {
			return false // a cycle exists somewhere in the chain, but not through classSym
		}
		visited[baseSym] = true
		cur = baseSym
	}
}

// memberSlot identifies a class member's identity for duplicate detection:
// static and instance members live in separate namespaces, and a getter and
// a setter sharing a name are companions, not duplicates of each other.
type memberSlot struct {
	name     source.StringID
	static   bool
	accessor ast.NodeFlags // 0, FlagGetter, or FlagSetter
}

func (c *Checker) checkDuplicateClassMembers(n *ast.Node) {
	seen := make(map[memberSlot]bool)
	for _, m := range n.Children {
		mn := c.node(m)
		if mn == nil || mn.Kind == ast.ClassStaticBlock {
			continue
		}
		slot := memberSlot{name: mn.Name, static: mn.Flags.Has(ast.FlagStatic)}
		if mn.Kind == ast.ClassMethod {
			switch {
			case mn.Flags.Has(ast.FlagGetter):
				slot.accessor = ast.FlagGetter
			case mn.Flags.Has(ast.FlagSetter):
				slot.accessor = ast.FlagSetter
			}
		}
		if seen[slot] {
			c.report(diag.Error(diag.DuplicateIdentifier, mn.Span,
				fmt.Sprintf("Duplicate identifier '%s'.", c.nameOf(mn.Name))))
			continue
		}
		seen[slot] = true
	}
}

// checkAbstractMembersImplemented walks the base chain gathering abstract
// method names with no concrete override below them, then — if classSym
// itself isn't abstract — reports TS2515 for any that remain unimplemented
// once n's own members are folded in too.
func (c *Checker) checkAbstractMembersImplemented(classSym symbols.SymbolID, n *ast.Node, baseSym symbols.SymbolID) {
	var chain []symbols.SymbolID
	visited := map[symbols.SymbolID]bool{classSym: true}
	for cur := baseSym; cur.IsValid() && !visited[cur]; {
		visited[cur] = true
		chain = append(chain, cur)
		s := c.Symbols.Symbol(cur)
		if s == nil {
			break
		}
		decl := c.node(s.ValueDecl)
		if decl == nil || decl.Kind != ast.StmtClassDecl {
			break
		}
		next, ok := c.resolveHeritage(decl, s.Scope, false)
		if !ok {
			break
		}
		cur = next
	}

	var order []source.StringID
	unresolvedBase := make(map[source.StringID]string)
	// Process the root-most ancestor first so a nearer concrete override
	// further down the chain is considered last, and wins.
	for i := len(chain) - 1; i >= 0; i-- {
		s := c.Symbols.Symbol(chain[i])
		decl := c.node(s.ValueDecl)
		for _, m := range decl.Children {
			mn := c.node(m)
			if mn == nil || mn.Kind != ast.ClassMethod || mn.Flags.Has(ast.FlagStatic) {
				continue
			}
			if mn.Flags.Has(ast.FlagAbstract) {
				if _, ok := unresolvedBase[mn.Name]; !ok {
					order = append(order, mn.Name)
				}
				unresolvedBase[mn.Name] = c.nameOf(s.Name)
			} else {
				delete(unresolvedBase, mn.Name)
			}
		}
	}

	if s := c.Symbols.Symbol(classSym); s != nil && s.Flags.Has(symbols.FlagAbstract) {
		return // an abstract class may leave inherited abstract members unimplemented
	}
	for _, m := range n.Children {
		mn := c.node(m)
		if mn == nil || mn.Kind != ast.ClassMethod || mn.Flags.Has(ast.FlagStatic) || mn.Flags.Has(ast.FlagAbstract) {
			continue
		}
		delete(unresolvedBase, mn.Name)
	}

	for _, name := range order {
		baseName, ok := unresolvedBase[name]
		if !ok {
			continue
		}
		c.report(diag.Error(diag.AbstractMemberNotImplemented, n.Span,
			fmt.Sprintf("Non-abstract class '%s' does not implement inherited abstract member '%s' from class '%s'.",
				c.nameOf(n.Name), c.nameOf(name), baseName)))
	}
}

// checkOverrideCompatibility reports TS2416 for every own method marked
// FlagOverride that either names no same-named base member at all, or whose
// signature isn't assignable to the nearest same-named base member's.
func (c *Checker) checkOverrideCompatibility(n *ast.Node, baseSym symbols.SymbolID, scope symbols.ScopeID) {
	for _, m := range n.Children {
		mn := c.node(m)
		if mn == nil || mn.Kind != ast.ClassMethod || !mn.Flags.Has(ast.FlagOverride) {
			continue
		}
		baseName := ""
		if s := c.Symbols.Symbol(baseSym); s != nil {
			baseName = c.nameOf(s.Name)
		}
		baseSig, ok := c.findMemberSignature(baseSym, mn.Name, mn.Flags.Has(ast.FlagStatic))
		if !ok {
			c.report(diag.Error(diag.OverrideSignatureIncompatible, mn.Span,
				fmt.Sprintf("This member cannot have an 'override' modifier because it is not declared in the base class '%s'.", baseName)))
			continue
		}
		ownSig := c.methodSignature(mn, scope)
		if !assign.IsAssignable(c.Types, ownSig, baseSig) {
			c.report(diag.Error(diag.OverrideSignatureIncompatible, mn.Span,
				fmt.Sprintf("This member's type is not compatible with the same member in the base class '%s'.", baseName)))
		}
	}
}

// findMemberSignature searches from baseSym up the heritage chain for the
// nearest method named name (in the matching static/instance namespace),
// returning its signature type.
func (c *Checker) findMemberSignature(baseSym symbols.SymbolID, name source.StringID, static bool) (types.TypeID, bool) {
	visited := map[symbols.SymbolID]bool{}
	for cur := baseSym; cur.IsValid() && !visited[cur]; {
		visited[cur] = true
		s := c.Symbols.Symbol(cur)
		if s == nil {
			return types.NoTypeID, false
		}
		decl := c.node(s.ValueDecl)
		if decl == nil || decl.Kind != ast.StmtClassDecl {
			return types.NoTypeID, false
		}
		for _, m := range decl.Children {
			mn := c.node(m)
			if mn == nil || mn.Kind != ast.ClassMethod || mn.Name != name || mn.Flags.Has(ast.FlagStatic) != static {
				continue
			}
			return c.methodSignature(mn, s.Scope), true
		}
		next, ok := c.resolveHeritage(decl, s.Scope, false)
		if !ok {
			return types.NoTypeID, false
		}
		cur = next
	}
	return types.NoTypeID, false
}

// methodSignature builds the function TypeID for a ClassMethod node's
// parameter and return type annotations, the same shape ResolveTypeNode
// builds for a standalone function-type annotation.
func (c *Checker) methodSignature(mn *ast.Node, scope symbols.ScopeID) types.TypeID {
	params := make([]types.ParamInfo, 0, len(mn.Children))
	for _, p := range mn.Children {
		pn := c.node(p)
		if pn == nil {
			continue
		}
		params = append(params, types.ParamInfo{
			Type:     c.ResolveTypeNode(pn.TypeAnn, scope),
			Optional: pn.Flags.Has(ast.FlagOptional),
			Rest:     pn.Flags.Has(ast.FlagRest),
		})
	}
	return c.Types.Function(types.Signature{
		Params:     params,
		ReturnType: c.ResolveTypeNode(mn.TypeAnn, scope),
	})
}

// checkAccessorAgreement reports TS2380 when a getter and setter sharing a
// name disagree on type: the getter's return type must be assignable to the
// setter's parameter type.
func (c *Checker) checkAccessorAgreement(n *ast.Node, scope symbols.ScopeID) {
	type pair struct{ get, set *ast.Node }
	pairs := make(map[memberSlot]*pair)
	var order []memberSlot
	for _, m := range n.Children {
		mn := c.node(m)
		if mn == nil || mn.Kind != ast.ClassMethod {
			continue
		}
		slot := memberSlot{name: mn.Name, static: mn.Flags.Has(ast.FlagStatic)}
		p, exists := pairs[slot]
		if !exists {
			p = &pair{}
			pairs[slot] = p
			order = append(order, slot)
		}
		switch {
		case mn.Flags.Has(ast.FlagGetter):
			p.get = mn
		case mn.Flags.Has(ast.FlagSetter):
			p.set = mn
		}
	}

	for _, slot := range order {
		p := pairs[slot]
		if p.get == nil || p.set == nil || len(p.set.Children) == 0 {
			continue
		}
		setParam := c.node(p.set.Children[0])
		if setParam == nil {
			continue
		}
		getType := c.ResolveTypeNode(p.get.TypeAnn, scope)
		setType := c.ResolveTypeNode(setParam.TypeAnn, scope)
		if !assign.IsAssignable(c.Types, getType, setType) {
			c.report(diag.Error(diag.AccessorTypeMismatch, p.get.Span,
				fmt.Sprintf("'get' and 'set' accessor must have the same type, got '%s' and '%s'.",
					c.Types.KindOf(getType), c.Types.KindOf(setType))))
		}
	}
}

// checkParameterProperties reports TS2369 for every `ast.FlagParamProperty`
// parameter declared on a method other than the constructor: a parameter
// property is a constructor-parameter-only shorthand for declaring and
// assigning an instance member in one place.
func (c *Checker) checkParameterProperties(n *ast.Node) {
	for _, m := range n.Children {
		mn := c.node(m)
		if mn == nil || mn.Kind != ast.ClassMethod || mn.Flags.Has(ast.FlagConstructor) {
			continue
		}
		for _, p := range mn.Children {
			pn := c.node(p)
			if pn == nil || pn.Kind != ast.Param || !pn.Flags.Has(ast.FlagParamProperty) {
				continue
			}
			c.report(diag.Error(diag.ParameterPropertyOutsideCtor, pn.Span,
				"A parameter property is only allowed in a constructor implementation."))
		}
	}
}
