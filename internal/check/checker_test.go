package check

import (
	"testing"

	"tschecker/internal/ast"
	"tschecker/internal/config"
	"tschecker/internal/diag"
	"tschecker/internal/source"
	"tschecker/internal/symbols"
	"tschecker/internal/types"
)

// harness bundles a Builder, a symbol Table sharing its string interner, a
// type Interner, and a Bag-backed Checker, the minimum a test needs to hand
// construct a small bound program the way a real binder would.
type harness struct {
	t       *testing.T
	builder *ast.Builder
	table   *symbols.Table
	types   *types.Interner
	bag     *diag.Bag
	checker *Checker
}

func newHarness(t *testing.T, opts config.EffectiveOptions) *harness {
	t.Helper()
	strings := source.NewInterner()
	builder := ast.NewBuilder(64)
	table := symbols.NewTable(symbols.Hints{}, strings)
	in := types.NewInterner(strings)
	bag := diag.NewBag()
	c := NewChecker(builder.Arena, table, in, opts, diag.BagReporter{Bag: bag})
	return &harness{t: t, builder: builder, table: table, types: in, bag: bag, checker: c}
}

func (h *harness) intern(s string) source.StringID { return h.table.Strings.Intern(s) }

func (h *harness) declare(scope symbols.ScopeID, name string, kind symbols.Kind, flags symbols.Flags, decl ast.NodeIndex) symbols.SymbolID {
	return h.table.NewSymbol(symbols.Symbol{
		Name:         h.intern(name),
		Kind:         kind,
		Flags:        flags,
		Scope:        scope,
		Declarations: []ast.NodeIndex{decl},
		ValueDecl:    decl,
	})
}

func span(n uint32) source.Span { return source.Span{Start: n, End: n + 1} }

func TestTypeOfExprLiterals(t *testing.T) {
	h := newHarness(t, config.EffectiveOptions{})
	scope := h.table.NewScope(symbols.ScopeGlobal, symbols.NoScopeID, symbols.Scope{})

	strLit := h.builder.NewLiteralString(span(1), "hi")
	if got := h.checker.TypeOfExpr(strLit, scope); got != h.types.LiteralString("hi") {
		t.Fatalf("expected literal string type, got kind %v", h.types.KindOf(got))
	}

	numLit := h.builder.NewLiteralNumber(span(2), 42)
	if got := h.checker.TypeOfExpr(numLit, scope); got != h.types.LiteralNumber(42) {
		t.Fatalf("expected literal number type, got kind %v", h.types.KindOf(got))
	}

	nullLit := h.builder.NewLiteralNull(span(3))
	if got := h.checker.TypeOfExpr(nullLit, scope); got != h.types.Builtins().Null {
		t.Fatalf("expected null type, got kind %v", h.types.KindOf(got))
	}
}

func TestTypeOfExprIdentReportsCannotFindName(t *testing.T) {
	h := newHarness(t, config.EffectiveOptions{})
	scope := h.table.NewScope(symbols.ScopeGlobal, symbols.NoScopeID, symbols.Scope{})

	ident := h.builder.NewIdent(span(1), h.intern("missing"))
	got := h.checker.TypeOfExpr(ident, scope)
	if got != h.types.Builtins().Any {
		t.Fatalf("expected any for unresolved identifier, got kind %v", h.types.KindOf(got))
	}
	if h.bag.Len() != 1 || h.bag.Items()[0].Code != diag.CannotFindName {
		t.Fatalf("expected one CannotFindName diagnostic, got %v", h.bag.Items())
	}
}

func TestTypeOfExprIdentResolvesDeclaredType(t *testing.T) {
	h := newHarness(t, config.EffectiveOptions{})
	scope := h.table.NewScope(symbols.ScopeGlobal, symbols.NoScopeID, symbols.Scope{})

	decl := h.builder.NewIdent(span(1), h.intern("x"))
	sym := h.declare(scope, "x", symbols.Variable, symbols.FlagLet, decl)
	h.checker.symbolTypes[sym] = h.types.Builtins().String

	use := h.builder.NewIdent(span(2), h.intern("x"))
	if got := h.checker.TypeOfExpr(use, scope); got != h.types.Builtins().String {
		t.Fatalf("expected string, got kind %v", h.types.KindOf(got))
	}
	if h.bag.Len() != 0 {
		t.Fatalf("expected no diagnostics, got %v", h.bag.Items())
	}
}

func TestTypeOfExprMemberReportsMissingProperty(t *testing.T) {
	h := newHarness(t, config.EffectiveOptions{})
	scope := h.table.NewScope(symbols.ScopeGlobal, symbols.NoScopeID, symbols.Scope{})

	obj := h.types.Object([]types.PropertyInfo{{Name: h.intern("a"), Type: h.types.Builtins().Number}}, nil, nil, nil)
	decl := h.builder.NewIdent(span(1), h.intern("o"))
	sym := h.declare(scope, "o", symbols.Variable, symbols.FlagConst, decl)
	h.checker.symbolTypes[sym] = obj

	objRef := h.builder.NewIdent(span(2), h.intern("o"))
	okMember := h.builder.NewMember(span(3), objRef, h.intern("a"))
	if got := h.checker.TypeOfExpr(okMember, scope); got != h.types.Builtins().Number {
		t.Fatalf("expected number for existing property, got kind %v", h.types.KindOf(got))
	}

	objRef2 := h.builder.NewIdent(span(4), h.intern("o"))
	badMember := h.builder.NewMember(span(5), objRef2, h.intern("missing"))
	h.checker.TypeOfExpr(badMember, scope)

	found := false
	for _, d := range h.bag.Items() {
		if d.Code == diag.PropertyDoesNotExistOnType {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected PropertyDoesNotExistOnType diagnostic, got %v", h.bag.Items())
	}
}

func TestTypeOfExprArrayLitUnionsElements(t *testing.T) {
	h := newHarness(t, config.EffectiveOptions{})
	scope := h.table.NewScope(symbols.ScopeGlobal, symbols.NoScopeID, symbols.Scope{})

	elems := []ast.NodeIndex{
		h.builder.NewLiteralNumber(span(1), 1),
		h.builder.NewLiteralString(span(2), "a"),
	}
	arr := h.builder.NewArrayLit(span(3), elems)
	got := h.checker.TypeOfExpr(arr, scope)
	elem := h.types.ArrayElem(got)
	if !elem.IsValid() {
		t.Fatalf("expected an array type, got kind %v", h.types.KindOf(got))
	}
	info, ok := h.types.UnionInfoOf(elem)
	if !ok || len(info.Members) != 2 {
		t.Fatalf("expected a 2-member union element type, got %+v ok=%v", info, ok)
	}
}

func TestCheckVarDeclWidensLiteralForLet(t *testing.T) {
	h := newHarness(t, config.EffectiveOptions{})
	scope := h.table.NewScope(symbols.ScopeGlobal, symbols.NoScopeID, symbols.Scope{})

	binding := h.builder.NewIdent(span(1), h.intern("x"))
	init := h.builder.NewLiteralString(span(2), "hi")
	decl := h.builder.NewVarDecl(span(3), ast.DeclLet, binding, ast.NoNodeIndex, init)
	sym := h.declare(scope, "x", symbols.Variable, symbols.FlagLet, decl)

	h.checker.CheckVarDecl(decl, scope)

	got := h.table.Symbol(sym).Type
	if got != h.types.Builtins().String {
		t.Fatalf("expected widened 'string', got kind %v", h.types.KindOf(got))
	}
}

func TestCheckVarDeclKeepsLiteralForConst(t *testing.T) {
	h := newHarness(t, config.EffectiveOptions{})
	scope := h.table.NewScope(symbols.ScopeGlobal, symbols.NoScopeID, symbols.Scope{})

	binding := h.builder.NewIdent(span(1), h.intern("x"))
	init := h.builder.NewLiteralString(span(2), "hi")
	decl := h.builder.NewVarDecl(span(3), ast.DeclConst, binding, ast.NoNodeIndex, init)
	sym := h.declare(scope, "x", symbols.Variable, symbols.FlagConst, decl)

	h.checker.CheckVarDecl(decl, scope)

	got := h.table.Symbol(sym).Type
	if got != h.types.LiteralString("hi") {
		t.Fatalf("expected literal type 'hi' to survive for const, got kind %v", h.types.KindOf(got))
	}
}

func TestCheckVarDeclReportsTypeMismatchAgainstAnnotation(t *testing.T) {
	h := newHarness(t, config.EffectiveOptions{})
	scope := h.table.NewScope(symbols.ScopeGlobal, symbols.NoScopeID, symbols.Scope{})

	binding := h.builder.NewIdent(span(1), h.intern("x"))
	typeAnn := h.builder.NewTypeRef(span(2), h.intern("number"), nil)
	init := h.builder.NewLiteralString(span(3), "hi")
	decl := h.builder.NewVarDecl(span(4), ast.DeclLet, binding, typeAnn, init)
	h.declare(scope, "x", symbols.Variable, symbols.FlagLet, decl)

	h.checker.CheckVarDecl(decl, scope)

	if h.bag.Len() != 1 || h.bag.Items()[0].Code != diag.TypeNotAssignable {
		t.Fatalf("expected one TypeNotAssignable diagnostic, got %v", h.bag.Items())
	}
}

func TestCheckVarDeclReportsImplicitAnyWhenEnabled(t *testing.T) {
	h := newHarness(t, config.EffectiveOptions{NoImplicitAny: true})
	scope := h.table.NewScope(symbols.ScopeGlobal, symbols.NoScopeID, symbols.Scope{})

	binding := h.builder.NewIdent(span(1), h.intern("x"))
	decl := h.builder.NewVarDecl(span(2), ast.DeclLet, binding, ast.NoNodeIndex, ast.NoNodeIndex)
	sym := h.declare(scope, "x", symbols.Variable, symbols.FlagLet, decl)

	h.checker.CheckVarDecl(decl, scope)

	if h.bag.Len() != 1 || h.bag.Items()[0].Code != diag.ImplicitAny {
		t.Fatalf("expected one ImplicitAny diagnostic, got %v", h.bag.Items())
	}
	if got := h.table.Symbol(sym).Type; got != h.types.Builtins().Any {
		t.Fatalf("expected any binding, got kind %v", h.types.KindOf(got))
	}
}

func TestCheckVarDeclDestructuresArrayPattern(t *testing.T) {
	h := newHarness(t, config.EffectiveOptions{})
	scope := h.table.NewScope(symbols.ScopeGlobal, symbols.NoScopeID, symbols.Scope{})

	first := h.builder.NewIdent(span(1), h.intern("a"))
	pattern := h.builder.NewArrayPattern(span(2), []ast.NodeIndex{first})
	init := h.builder.NewArrayLit(span(3), []ast.NodeIndex{h.builder.NewLiteralNumber(span(4), 1)})
	decl := h.builder.NewVarDecl(span(5), ast.DeclConst, pattern, ast.NoNodeIndex, init)
	sym := h.declare(scope, "a", symbols.Variable, symbols.FlagConst, first)

	h.checker.CheckVarDecl(decl, scope)

	got := h.table.Symbol(sym).Type
	if got != h.types.Builtins().Number {
		t.Fatalf("expected destructured element type number, got kind %v", h.types.KindOf(got))
	}
}

func TestCheckRedeclarationFlagsBlockScopedDuplicate(t *testing.T) {
	h := newHarness(t, config.EffectiveOptions{})
	scope := h.table.NewScope(symbols.ScopeGlobal, symbols.NoScopeID, symbols.Scope{})

	decl1 := h.builder.NewIdent(span(1), h.intern("x"))
	decl2 := h.builder.NewIdent(span(2), h.intern("x"))
	sym := h.table.NewSymbol(symbols.Symbol{
		Name: h.intern("x"), Kind: symbols.Variable, Flags: symbols.FlagLet, Scope: scope,
		Declarations: []ast.NodeIndex{decl1, decl2},
	})

	h.checker.CheckRedeclaration(sym)

	if h.bag.Len() != 1 || h.bag.Items()[0].Code != diag.DuplicateIdentifier {
		t.Fatalf("expected one DuplicateIdentifier diagnostic, got %v", h.bag.Items())
	}
}

func TestCheckRedeclarationAllowsMatchingVarTypes(t *testing.T) {
	h := newHarness(t, config.EffectiveOptions{})
	scope := h.table.NewScope(symbols.ScopeGlobal, symbols.NoScopeID, symbols.Scope{})

	numAnn1 := h.builder.NewTypeRef(span(1), h.intern("number"), nil)
	binding1 := h.builder.NewIdent(span(2), h.intern("x"))
	decl1 := h.builder.NewVarDecl(span(3), ast.DeclVar, binding1, numAnn1, ast.NoNodeIndex)

	numAnn2 := h.builder.NewTypeRef(span(4), h.intern("number"), nil)
	binding2 := h.builder.NewIdent(span(5), h.intern("x"))
	decl2 := h.builder.NewVarDecl(span(6), ast.DeclVar, binding2, numAnn2, ast.NoNodeIndex)

	sym := h.table.NewSymbol(symbols.Symbol{
		Name: h.intern("x"), Kind: symbols.Variable, Flags: symbols.FlagVarLegacy, Scope: scope,
		Declarations: []ast.NodeIndex{decl1, decl2},
		Type:         h.types.Builtins().Number,
	})

	h.checker.CheckRedeclaration(sym)

	if h.bag.Len() != 0 {
		t.Fatalf("expected no diagnostics for agreeing var redeclarations, got %v", h.bag.Items())
	}
}

func TestCheckRedeclarationFlagsMismatchedVarTypes(t *testing.T) {
	h := newHarness(t, config.EffectiveOptions{})
	scope := h.table.NewScope(symbols.ScopeGlobal, symbols.NoScopeID, symbols.Scope{})

	numAnn := h.builder.NewTypeRef(span(1), h.intern("number"), nil)
	binding1 := h.builder.NewIdent(span(2), h.intern("x"))
	decl1 := h.builder.NewVarDecl(span(3), ast.DeclVar, binding1, numAnn, ast.NoNodeIndex)

	strAnn := h.builder.NewTypeRef(span(4), h.intern("string"), nil)
	binding2 := h.builder.NewIdent(span(5), h.intern("x"))
	decl2 := h.builder.NewVarDecl(span(6), ast.DeclVar, binding2, strAnn, ast.NoNodeIndex)

	sym := h.table.NewSymbol(symbols.Symbol{
		Name: h.intern("x"), Kind: symbols.Variable, Flags: symbols.FlagVarLegacy, Scope: scope,
		Declarations: []ast.NodeIndex{decl1, decl2},
		Type:         h.types.Builtins().Number,
	})

	h.checker.CheckRedeclaration(sym)

	if h.bag.Len() != 1 || h.bag.Items()[0].Code != diag.VarRedeclarationTypeMismatch {
		t.Fatalf("expected one VarRedeclarationTypeMismatch diagnostic, got %v", h.bag.Items())
	}
}

func TestCheckForInReportsNonObjectSubject(t *testing.T) {
	h := newHarness(t, config.EffectiveOptions{})
	scope := h.table.NewScope(symbols.ScopeGlobal, symbols.NoScopeID, symbols.Scope{})

	binding := h.builder.NewIdent(span(1), h.intern("k"))
	obj := h.builder.NewLiteralNumber(span(2), 1)
	body := h.builder.NewBlock(span(3), nil)
	stmt := h.builder.NewForIn(span(4), ast.DeclConst, true, binding, obj, body)

	h.checker.CheckForIn(stmt, scope)

	if h.bag.Len() != 1 || h.bag.Items()[0].Code != diag.ForInNonObject {
		t.Fatalf("expected one ForInNonObject diagnostic, got %v", h.bag.Items())
	}
}

func TestCheckForOfBindsElementType(t *testing.T) {
	h := newHarness(t, config.EffectiveOptions{})
	scope := h.table.NewScope(symbols.ScopeGlobal, symbols.NoScopeID, symbols.Scope{})

	arr := h.builder.NewArrayLit(span(1), []ast.NodeIndex{h.builder.NewLiteralNumber(span(2), 1)})
	binding := h.builder.NewIdent(span(3), h.intern("v"))
	body := h.builder.NewBlock(span(4), nil)
	stmt := h.builder.NewForOf(span(5), ast.DeclConst, true, false, binding, arr, body)
	sym := h.declare(scope, "v", symbols.Variable, symbols.FlagConst, binding)

	h.checker.CheckForOf(stmt, scope)

	if h.bag.Len() != 0 {
		t.Fatalf("expected no diagnostics, got %v", h.bag.Items())
	}
	got := h.checker.symbolTypes[sym]
	if got != h.types.Builtins().Number {
		t.Fatalf("expected element type number bound to loop variable, got kind %v", h.types.KindOf(got))
	}
}

func TestCheckForOfReportsNonIterable(t *testing.T) {
	h := newHarness(t, config.EffectiveOptions{})
	scope := h.table.NewScope(symbols.ScopeGlobal, symbols.NoScopeID, symbols.Scope{})

	num := h.builder.NewLiteralNumber(span(1), 1)
	binding := h.builder.NewIdent(span(2), h.intern("v"))
	body := h.builder.NewBlock(span(3), nil)
	stmt := h.builder.NewForOf(span(4), ast.DeclConst, true, false, binding, num, body)

	h.checker.CheckForOf(stmt, scope)

	if h.bag.Len() != 1 || h.bag.Items()[0].Code != diag.ForOfNonIterable {
		t.Fatalf("expected one ForOfNonIterable diagnostic, got %v", h.bag.Items())
	}
}

func TestCheckSwitchExhaustivenessReportsUncoveredMember(t *testing.T) {
	h := newHarness(t, config.EffectiveOptions{})
	scope := h.table.NewScope(symbols.ScopeGlobal, symbols.NoScopeID, symbols.Scope{})

	a := h.types.LiteralString("a")
	bT := h.types.LiteralString("b")
	union := h.types.Union(a, bT)

	decl := h.builder.NewIdent(span(1), h.intern("tag"))
	sym := h.declare(scope, "tag", symbols.Variable, symbols.FlagConst, decl)
	h.checker.symbolTypes[sym] = union

	disc := h.builder.NewIdent(span(2), h.intern("tag"))
	caseA := h.builder.NewCase(span(3), h.builder.NewLiteralString(span(4), "a"), nil)
	sw := h.builder.NewSwitch(span(5), disc, []ast.NodeIndex{caseA})

	h.checker.CheckSwitchExhaustiveness(sw, scope)

	if h.bag.Len() != 1 || h.bag.Items()[0].Code != diag.SwitchNotExhaustive {
		t.Fatalf("expected one SwitchNotExhaustive diagnostic, got %v", h.bag.Items())
	}
}

func TestCheckSwitchExhaustivenessAllowsDefault(t *testing.T) {
	h := newHarness(t, config.EffectiveOptions{})
	scope := h.table.NewScope(symbols.ScopeGlobal, symbols.NoScopeID, symbols.Scope{})

	a := h.types.LiteralString("a")
	bT := h.types.LiteralString("b")
	union := h.types.Union(a, bT)

	decl := h.builder.NewIdent(span(1), h.intern("tag"))
	sym := h.declare(scope, "tag", symbols.Variable, symbols.FlagConst, decl)
	h.checker.symbolTypes[sym] = union

	disc := h.builder.NewIdent(span(2), h.intern("tag"))
	caseA := h.builder.NewCase(span(3), h.builder.NewLiteralString(span(4), "a"), nil)
	def := h.builder.NewCase(span(5), ast.NoNodeIndex, nil)
	sw := h.builder.NewSwitch(span(6), disc, []ast.NodeIndex{caseA, def})

	h.checker.CheckSwitchExhaustiveness(sw, scope)

	if h.bag.Len() != 0 {
		t.Fatalf("expected no diagnostics with a default clause, got %v", h.bag.Items())
	}
}

func TestResolveTypeNodeUnknownReferencesReportCannotFindName(t *testing.T) {
	h := newHarness(t, config.EffectiveOptions{})
	scope := h.table.NewScope(symbols.ScopeGlobal, symbols.NoScopeID, symbols.Scope{})

	ref := h.builder.NewTypeRef(span(1), h.intern("Missing"), nil)
	got := h.checker.ResolveTypeNode(ref, scope)
	if got != h.types.Builtins().Any {
		t.Fatalf("expected any fallback, got kind %v", h.types.KindOf(got))
	}
	if h.bag.Len() != 1 || h.bag.Items()[0].Code != diag.CannotFindName {
		t.Fatalf("expected one CannotFindName diagnostic, got %v", h.bag.Items())
	}
}

func TestResolveTypeNodeUnionOfPrimitives(t *testing.T) {
	h := newHarness(t, config.EffectiveOptions{})
	scope := h.table.NewScope(symbols.ScopeGlobal, symbols.NoScopeID, symbols.Scope{})

	strRef := h.builder.NewTypeRef(span(1), h.intern("string"), nil)
	numRef := h.builder.NewTypeRef(span(2), h.intern("number"), nil)
	union := h.builder.NewUnionType(span(3), []ast.NodeIndex{strRef, numRef})

	got := h.checker.ResolveTypeNode(union, scope)
	want := h.types.Union(h.types.Builtins().String, h.types.Builtins().Number)
	if got != want {
		t.Fatalf("expected string|number union, got kind %v", h.types.KindOf(got))
	}
}

func TestCheckVarDeclReportsExcessPropertyOnFreshObjectLiteral(t *testing.T) {
	h := newHarness(t, config.EffectiveOptions{})
	scope := h.table.NewScope(symbols.ScopeGlobal, symbols.NoScopeID, symbols.Scope{})

	typeAnn := h.builder.NewObjectType(span(1), []ast.NodeIndex{
		h.builder.NewObjectTypeMember(span(2), h.intern("x"), h.builder.NewTypeRef(span(3), h.intern("number"), nil), false, false),
	})
	prop := h.builder.NewObjectProp(span(4), h.intern("x"), ast.NoNodeIndex, h.builder.NewLiteralNumber(span(5), 1), false)
	extra := h.builder.NewObjectProp(span(6), h.intern("y"), ast.NoNodeIndex, h.builder.NewLiteralNumber(span(7), 2), false)
	init := h.builder.NewObjectLit(span(8), []ast.NodeIndex{prop, extra})

	binding := h.builder.NewIdent(span(9), h.intern("o"))
	decl := h.builder.NewVarDecl(span(10), ast.DeclConst, binding, typeAnn, init)
	h.declare(scope, "o", symbols.Variable, symbols.FlagConst, decl)

	h.checker.CheckVarDecl(decl, scope)

	if h.bag.Len() != 1 || h.bag.Items()[0].Code != diag.ObjectLiteralUnknownProperty {
		t.Fatalf("expected one ObjectLiteralUnknownProperty diagnostic, got %v", h.bag.Items())
	}
}

func TestCheckVarDeclSkipsChecksForAmbientDeclarations(t *testing.T) {
	h := newHarness(t, config.EffectiveOptions{NoImplicitAny: true})
	scope := h.table.NewScope(symbols.ScopeGlobal, symbols.NoScopeID, symbols.Scope{})

	binding := h.builder.NewIdent(span(1), h.intern("x"))
	decl := h.builder.NewVarDecl(span(2), ast.DeclLet, binding, ast.NoNodeIndex, ast.NoNodeIndex)
	h.declare(scope, "x", symbols.Variable, symbols.FlagLet|symbols.FlagAmbient, decl)

	h.checker.CheckVarDecl(decl, scope)

	if h.bag.Len() != 0 {
		t.Fatalf("expected no diagnostics for an ambient declaration, got %v", h.bag.Items())
	}
}
