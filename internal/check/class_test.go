package check

import (
	"testing"

	"tschecker/internal/ast"
	"tschecker/internal/config"
	"tschecker/internal/diag"
	"tschecker/internal/symbols"
)

func TestCheckClassDeclReportsCircularInheritance(t *testing.T) {
	h := newHarness(t, config.EffectiveOptions{})
	scope := h.table.NewScope(symbols.ScopeGlobal, symbols.NoScopeID, symbols.Scope{})

	nameA := h.intern("A")
	nameB := h.intern("B")
	identB := h.builder.NewIdent(span(2), nameB)
	identA := h.builder.NewIdent(span(4), nameA)
	declA := h.builder.NewClassDecl(span(1), nameA, identB, nil)
	declB := h.builder.NewClassDecl(span(3), nameB, identA, nil)

	h.declare(scope, "A", symbols.Class, 0, declA)
	h.declare(scope, "B", symbols.Class, 0, declB)

	h.checker.CheckClassDecl(declA, scope)

	if h.bag.Len() != 1 || h.bag.Items()[0].Code != diag.ClassCircularBaseExpression {
		t.Fatalf("expected one ClassCircularBaseExpression diagnostic, got %v", h.bag.Items())
	}
}

func TestCheckClassDeclReportsUnresolvedHeritageName(t *testing.T) {
	h := newHarness(t, config.EffectiveOptions{})
	scope := h.table.NewScope(symbols.ScopeGlobal, symbols.NoScopeID, symbols.Scope{})

	nameC := h.intern("C")
	missing := h.builder.NewIdent(span(2), h.intern("Missing"))
	declC := h.builder.NewClassDecl(span(1), nameC, missing, nil)
	h.declare(scope, "C", symbols.Class, 0, declC)

	h.checker.CheckClassDecl(declC, scope)

	if h.bag.Len() != 1 || h.bag.Items()[0].Code != diag.CannotFindName {
		t.Fatalf("expected one CannotFindName diagnostic, got %v", h.bag.Items())
	}
}

func TestCheckClassDeclReportsHeritageNotConstructor(t *testing.T) {
	h := newHarness(t, config.EffectiveOptions{})
	scope := h.table.NewScope(symbols.ScopeGlobal, symbols.NoScopeID, symbols.Scope{})

	varBinding := h.builder.NewIdent(span(1), h.intern("NotAClass"))
	varDecl := h.builder.NewVarDecl(span(2), ast.DeclConst, varBinding, ast.NoNodeIndex, ast.NoNodeIndex)
	h.declare(scope, "NotAClass", symbols.Variable, symbols.FlagConst, varDecl)

	nameD := h.intern("D")
	heritage := h.builder.NewIdent(span(3), h.intern("NotAClass"))
	declD := h.builder.NewClassDecl(span(4), nameD, heritage, nil)
	h.declare(scope, "D", symbols.Class, 0, declD)

	h.checker.CheckClassDecl(declD, scope)

	if h.bag.Len() != 1 || h.bag.Items()[0].Code != diag.HeritageBaseNotConstructor {
		t.Fatalf("expected one HeritageBaseNotConstructor diagnostic, got %v", h.bag.Items())
	}
}

func TestCheckClassDeclReportsCannotExtendInterface(t *testing.T) {
	h := newHarness(t, config.EffectiveOptions{})
	scope := h.table.NewScope(symbols.ScopeGlobal, symbols.NoScopeID, symbols.Scope{})

	ifaceDecl := h.builder.NewClassDecl(span(1), h.intern("Shape"), ast.NoNodeIndex, nil)
	h.declare(scope, "Shape", symbols.Interface, 0, ifaceDecl)

	heritage := h.builder.NewIdent(span(2), h.intern("Shape"))
	declD := h.builder.NewClassDecl(span(3), h.intern("Circle"), heritage, nil)
	h.declare(scope, "Circle", symbols.Class, 0, declD)

	h.checker.CheckClassDecl(declD, scope)

	if h.bag.Len() != 1 || h.bag.Items()[0].Code != diag.CannotExtendInterface {
		t.Fatalf("expected one CannotExtendInterface diagnostic, got %v", h.bag.Items())
	}
}

func TestCheckDuplicateClassMembersReportsDuplicateProperty(t *testing.T) {
	h := newHarness(t, config.EffectiveOptions{})
	scope := h.table.NewScope(symbols.ScopeGlobal, symbols.NoScopeID, symbols.Scope{})

	xName := h.intern("x")
	prop1 := h.builder.NewClassProperty(span(1), xName, ast.NoNodeIndex, ast.NoNodeIndex, false, false, false, false)
	prop2 := h.builder.NewClassProperty(span(2), xName, ast.NoNodeIndex, ast.NoNodeIndex, false, false, false, false)
	declE := h.builder.NewClassDecl(span(3), h.intern("E"), ast.NoNodeIndex, []ast.NodeIndex{prop1, prop2})
	h.declare(scope, "E", symbols.Class, 0, declE)

	h.checker.CheckClassDecl(declE, scope)

	if h.bag.Len() != 1 || h.bag.Items()[0].Code != diag.DuplicateIdentifier {
		t.Fatalf("expected one DuplicateIdentifier diagnostic, got %v", h.bag.Items())
	}
}

func TestCheckDuplicateClassMembersAllowsGetSetPair(t *testing.T) {
	h := newHarness(t, config.EffectiveOptions{})
	scope := h.table.NewScope(symbols.ScopeGlobal, symbols.NoScopeID, symbols.Scope{})

	xName := h.intern("x")
	numType := h.builder.NewTypeRef(span(1), h.intern("number"), nil)
	param := h.builder.NewParam(span(2), h.builder.NewIdent(span(3), h.intern("v")), numType, ast.NoNodeIndex, false, false, false)
	getter := h.builder.NewClassMethod(span(4), xName, ast.MethodGetter, nil, numType, ast.NoNodeIndex, false, false, false, false, false)
	setter := h.builder.NewClassMethod(span(5), xName, ast.MethodSetter, []ast.NodeIndex{param}, ast.NoNodeIndex, ast.NoNodeIndex, false, false, false, false, false)
	declF := h.builder.NewClassDecl(span(6), h.intern("F"), ast.NoNodeIndex, []ast.NodeIndex{getter, setter})
	h.declare(scope, "F", symbols.Class, 0, declF)

	h.checker.CheckClassDecl(declF, scope)

	if h.bag.Len() != 0 {
		t.Fatalf("expected no diagnostics for a matching get/set pair, got %v", h.bag.Items())
	}
}

func TestCheckAccessorAgreementReportsMismatch(t *testing.T) {
	h := newHarness(t, config.EffectiveOptions{})
	scope := h.table.NewScope(symbols.ScopeGlobal, symbols.NoScopeID, symbols.Scope{})

	xName := h.intern("x")
	strType := h.builder.NewTypeRef(span(1), h.intern("string"), nil)
	numType := h.builder.NewTypeRef(span(2), h.intern("number"), nil)
	param := h.builder.NewParam(span(3), h.builder.NewIdent(span(4), h.intern("v")), numType, ast.NoNodeIndex, false, false, false)
	getter := h.builder.NewClassMethod(span(5), xName, ast.MethodGetter, nil, strType, ast.NoNodeIndex, false, false, false, false, false)
	setter := h.builder.NewClassMethod(span(6), xName, ast.MethodSetter, []ast.NodeIndex{param}, ast.NoNodeIndex, ast.NoNodeIndex, false, false, false, false, false)
	declG := h.builder.NewClassDecl(span(7), h.intern("G"), ast.NoNodeIndex, []ast.NodeIndex{getter, setter})
	h.declare(scope, "G", symbols.Class, 0, declG)

	h.checker.CheckClassDecl(declG, scope)

	if h.bag.Len() != 1 || h.bag.Items()[0].Code != diag.AccessorTypeMismatch {
		t.Fatalf("expected one AccessorTypeMismatch diagnostic, got %v", h.bag.Items())
	}
}

func TestCheckAbstractMembersImplementedReportsMissingImplementation(t *testing.T) {
	h := newHarness(t, config.EffectiveOptions{})
	scope := h.table.NewScope(symbols.ScopeGlobal, symbols.NoScopeID, symbols.Scope{})

	areaName := h.intern("area")
	abstractMethod := h.builder.NewClassMethod(span(1), areaName, ast.MethodPlain, nil, ast.NoNodeIndex, ast.NoNodeIndex, false, false, false, true, false)
	baseDecl := h.builder.NewClassDecl(span(2), h.intern("Shape"), ast.NoNodeIndex, []ast.NodeIndex{abstractMethod})
	h.declare(scope, "Shape", symbols.Class, symbols.FlagAbstract, baseDecl)

	heritage := h.builder.NewIdent(span(3), h.intern("Shape"))
	derivedDecl := h.builder.NewClassDecl(span(4), h.intern("Circle"), heritage, nil)
	h.declare(scope, "Circle", symbols.Class, 0, derivedDecl)

	h.checker.CheckClassDecl(derivedDecl, scope)

	if h.bag.Len() != 1 || h.bag.Items()[0].Code != diag.AbstractMemberNotImplemented {
		t.Fatalf("expected one AbstractMemberNotImplemented diagnostic, got %v", h.bag.Items())
	}
}

func TestCheckAbstractMembersImplementedAllowsOverride(t *testing.T) {
	h := newHarness(t, config.EffectiveOptions{})
	scope := h.table.NewScope(symbols.ScopeGlobal, symbols.NoScopeID, symbols.Scope{})

	areaName := h.intern("area")
	abstractMethod := h.builder.NewClassMethod(span(1), areaName, ast.MethodPlain, nil, ast.NoNodeIndex, ast.NoNodeIndex, false, false, false, true, false)
	baseDecl := h.builder.NewClassDecl(span(2), h.intern("Shape"), ast.NoNodeIndex, []ast.NodeIndex{abstractMethod})
	h.declare(scope, "Shape", symbols.Class, symbols.FlagAbstract, baseDecl)

	concreteMethod := h.builder.NewClassMethod(span(3), areaName, ast.MethodPlain, nil, ast.NoNodeIndex, ast.NoNodeIndex, false, false, false, false, false)
	heritage := h.builder.NewIdent(span(4), h.intern("Shape"))
	derivedDecl := h.builder.NewClassDecl(span(5), h.intern("Circle"), heritage, []ast.NodeIndex{concreteMethod})
	h.declare(scope, "Circle", symbols.Class, 0, derivedDecl)

	h.checker.CheckClassDecl(derivedDecl, scope)

	if h.bag.Len() != 0 {
		t.Fatalf("expected no diagnostics once the abstract member is overridden, got %v", h.bag.Items())
	}
}

func TestCheckOverrideCompatibilityReportsIncompatibleSignature(t *testing.T) {
	h := newHarness(t, config.EffectiveOptions{})
	scope := h.table.NewScope(symbols.ScopeGlobal, symbols.NoScopeID, symbols.Scope{})

	fooName := h.intern("foo")
	strType := h.builder.NewTypeRef(span(1), h.intern("string"), nil)
	baseParam := h.builder.NewParam(span(2), h.builder.NewIdent(span(3), h.intern("x")), strType, ast.NoNodeIndex, false, false, false)
	baseMethod := h.builder.NewClassMethod(span(4), fooName, ast.MethodPlain, []ast.NodeIndex{baseParam}, ast.NoNodeIndex, ast.NoNodeIndex, false, false, false, false, false)
	baseDecl := h.builder.NewClassDecl(span(5), h.intern("Base"), ast.NoNodeIndex, []ast.NodeIndex{baseMethod})
	h.declare(scope, "Base", symbols.Class, 0, baseDecl)

	numType := h.builder.NewTypeRef(span(6), h.intern("number"), nil)
	overrideParam := h.builder.NewParam(span(7), h.builder.NewIdent(span(8), h.intern("x")), numType, ast.NoNodeIndex, false, false, false)
	overrideMethod := h.builder.NewClassMethod(span(9), fooName, ast.MethodPlain, []ast.NodeIndex{overrideParam}, ast.NoNodeIndex, ast.NoNodeIndex, false, false, false, false, true)
	heritage := h.builder.NewIdent(span(10), h.intern("Base"))
	derivedDecl := h.builder.NewClassDecl(span(11), h.intern("Derived"), heritage, []ast.NodeIndex{overrideMethod})
	h.declare(scope, "Derived", symbols.Class, 0, derivedDecl)

	h.checker.CheckClassDecl(derivedDecl, scope)

	if h.bag.Len() != 1 || h.bag.Items()[0].Code != diag.OverrideSignatureIncompatible {
		t.Fatalf("expected one OverrideSignatureIncompatible diagnostic, got %v", h.bag.Items())
	}
}

func TestCheckOverrideCompatibilityAllowsCompatibleSignature(t *testing.T) {
	h := newHarness(t, config.EffectiveOptions{})
	scope := h.table.NewScope(symbols.ScopeGlobal, symbols.NoScopeID, symbols.Scope{})

	fooName := h.intern("foo")
	strType := h.builder.NewTypeRef(span(1), h.intern("string"), nil)
	baseParam := h.builder.NewParam(span(2), h.builder.NewIdent(span(3), h.intern("x")), strType, ast.NoNodeIndex, false, false, false)
	baseMethod := h.builder.NewClassMethod(span(4), fooName, ast.MethodPlain, []ast.NodeIndex{baseParam}, ast.NoNodeIndex, ast.NoNodeIndex, false, false, false, false, false)
	baseDecl := h.builder.NewClassDecl(span(5), h.intern("Base"), ast.NoNodeIndex, []ast.NodeIndex{baseMethod})
	h.declare(scope, "Base", symbols.Class, 0, baseDecl)

	strType2 := h.builder.NewTypeRef(span(6), h.intern("string"), nil)
	overrideParam := h.builder.NewParam(span(7), h.builder.NewIdent(span(8), h.intern("x")), strType2, ast.NoNodeIndex, false, false, false)
	overrideMethod := h.builder.NewClassMethod(span(9), fooName, ast.MethodPlain, []ast.NodeIndex{overrideParam}, ast.NoNodeIndex, ast.NoNodeIndex, false, false, false, false, true)
	heritage := h.builder.NewIdent(span(10), h.intern("Base"))
	derivedDecl := h.builder.NewClassDecl(span(11), h.intern("Derived"), heritage, []ast.NodeIndex{overrideMethod})
	h.declare(scope, "Derived", symbols.Class, 0, derivedDecl)

	h.checker.CheckClassDecl(derivedDecl, scope)

	if h.bag.Len() != 0 {
		t.Fatalf("expected no diagnostics for a compatible override, got %v", h.bag.Items())
	}
}

func TestCheckOverrideCompatibilityReportsMissingBaseMember(t *testing.T) {
	h := newHarness(t, config.EffectiveOptions{})
	scope := h.table.NewScope(symbols.ScopeGlobal, symbols.NoScopeID, symbols.Scope{})

	baseDecl := h.builder.NewClassDecl(span(1), h.intern("Base"), ast.NoNodeIndex, nil)
	h.declare(scope, "Base", symbols.Class, 0, baseDecl)

	overrideMethod := h.builder.NewClassMethod(span(2), h.intern("bar"), ast.MethodPlain, nil, ast.NoNodeIndex, ast.NoNodeIndex, false, false, false, false, true)
	heritage := h.builder.NewIdent(span(3), h.intern("Base"))
	derivedDecl := h.builder.NewClassDecl(span(4), h.intern("Derived"), heritage, []ast.NodeIndex{overrideMethod})
	h.declare(scope, "Derived", symbols.Class, 0, derivedDecl)

	h.checker.CheckClassDecl(derivedDecl, scope)

	if h.bag.Len() != 1 || h.bag.Items()[0].Code != diag.OverrideSignatureIncompatible {
		t.Fatalf("expected one OverrideSignatureIncompatible diagnostic for an unmatched override, got %v", h.bag.Items())
	}
}

func TestCheckParameterPropertiesReportsOutsideConstructor(t *testing.T) {
	h := newHarness(t, config.EffectiveOptions{})
	scope := h.table.NewScope(symbols.ScopeGlobal, symbols.NoScopeID, symbols.Scope{})

	numType := h.builder.NewTypeRef(span(1), h.intern("number"), nil)
	param := h.builder.NewParam(span(2), h.builder.NewIdent(span(3), h.intern("v")), numType, ast.NoNodeIndex, false, false, true)
	method := h.builder.NewClassMethod(span(4), h.intern("greet"), ast.MethodPlain, []ast.NodeIndex{param}, ast.NoNodeIndex, ast.NoNodeIndex, false, false, false, false, false)
	declH := h.builder.NewClassDecl(span(5), h.intern("H"), ast.NoNodeIndex, []ast.NodeIndex{method})
	h.declare(scope, "H", symbols.Class, 0, declH)

	h.checker.CheckClassDecl(declH, scope)

	if h.bag.Len() != 1 || h.bag.Items()[0].Code != diag.ParameterPropertyOutsideCtor {
		t.Fatalf("expected one ParameterPropertyOutsideCtor diagnostic, got %v", h.bag.Items())
	}
}

func TestCheckParameterPropertiesAllowsInsideConstructor(t *testing.T) {
	h := newHarness(t, config.EffectiveOptions{})
	scope := h.table.NewScope(symbols.ScopeGlobal, symbols.NoScopeID, symbols.Scope{})

	numType := h.builder.NewTypeRef(span(1), h.intern("number"), nil)
	param := h.builder.NewParam(span(2), h.builder.NewIdent(span(3), h.intern("v")), numType, ast.NoNodeIndex, false, false, true)
	ctor := h.builder.NewClassMethod(span(4), h.intern("constructor"), ast.MethodConstructor, []ast.NodeIndex{param}, ast.NoNodeIndex, ast.NoNodeIndex, false, false, false, false, false)
	declI := h.builder.NewClassDecl(span(5), h.intern("I"), ast.NoNodeIndex, []ast.NodeIndex{ctor})
	h.declare(scope, "I", symbols.Class, 0, declI)

	h.checker.CheckClassDecl(declI, scope)

	if h.bag.Len() != 0 {
		t.Fatalf("expected no diagnostics for a constructor parameter property, got %v", h.bag.Items())
	}
}
