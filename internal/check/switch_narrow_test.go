package check

import (
	"testing"

	"tschecker/internal/ast"
	"tschecker/internal/config"
	"tschecker/internal/diag"
	"tschecker/internal/symbols"
)

// TestCheckSwitchBodyNarrowsDiscriminantPastUnhandledCases builds
// `switch (x) { case 1: case 2: return; } x` for x: 1|2|3 and checks that,
// after the switch, x narrows to the literal 3 the two cases never matched —
// the fallthrough cluster's own body ends in return, so it never reaches the
// merge, leaving only the "no case matched" branch as a survivor.
func TestCheckSwitchBodyNarrowsDiscriminantPastUnhandledCases(t *testing.T) {
	h := newHarness(t, config.EffectiveOptions{})
	scope := h.table.NewScope(symbols.ScopeGlobal, symbols.NoScopeID, symbols.Scope{})

	one := h.types.LiteralNumber(1)
	two := h.types.LiteralNumber(2)
	three := h.types.LiteralNumber(3)
	union := h.types.Union(one, two, three)

	decl := h.builder.NewIdent(span(1), h.intern("x"))
	sym := h.declare(scope, "x", symbols.Variable, symbols.FlagLet, decl)
	h.checker.symbolTypes[sym] = union

	disc := h.builder.NewIdent(span(2), h.intern("x"))
	case1 := h.builder.NewCase(span(3), h.builder.NewLiteralNumber(span(4), 1), nil)
	case2 := h.builder.NewCase(span(5), h.builder.NewLiteralNumber(span(6), 2),
		[]ast.NodeIndex{h.builder.NewReturn(span(7), ast.NoNodeIndex)})
	sw := h.builder.NewSwitch(span(8), disc, []ast.NodeIndex{case1, case2})

	swNode := h.checker.node(sw)
	h.checker.checkSwitchBody(swNode, scope)

	got := h.checker.symbolTypes[sym]
	if got != three {
		t.Fatalf("expected x to narrow to literal 3 after the switch, got kind %v", h.types.KindOf(got))
	}
	if h.bag.Len() != 0 {
		t.Fatalf("expected no diagnostics from checkSwitchBody itself, got %v", h.bag.Items())
	}
}

// TestCheckSwitchBodyNarrowsWithinMatchedClause checks the matched-clause
// half: inside `case 1: case 2: body`, x narrows to 1|2 for the clause's own
// body, independent of whether the body returns.
func TestCheckSwitchBodyNarrowsWithinMatchedClause(t *testing.T) {
	h := newHarness(t, config.EffectiveOptions{})
	scope := h.table.NewScope(symbols.ScopeGlobal, symbols.NoScopeID, symbols.Scope{})

	one := h.types.LiteralNumber(1)
	two := h.types.LiteralNumber(2)
	three := h.types.LiteralNumber(3)
	union := h.types.Union(one, two, three)

	decl := h.builder.NewIdent(span(1), h.intern("x"))
	sym := h.declare(scope, "x", symbols.Variable, symbols.FlagLet, decl)
	h.checker.symbolTypes[sym] = union

	yDecl := h.builder.NewIdent(span(2), h.intern("y"))
	h.declare(scope, "y", symbols.Variable, symbols.FlagConst, yDecl)
	numberInit := h.builder.NewIdent(span(3), h.intern("x"))
	bodyVarDecl := h.builder.NewVarDecl(span(4), ast.DeclConst, yDecl, ast.NoNodeIndex, numberInit)

	disc := h.builder.NewIdent(span(5), h.intern("x"))
	case1 := h.builder.NewCase(span(6), h.builder.NewLiteralNumber(span(7), 1), nil)
	case2 := h.builder.NewCase(span(8), h.builder.NewLiteralNumber(span(9), 2), []ast.NodeIndex{bodyVarDecl})
	sw := h.builder.NewSwitch(span(10), disc, []ast.NodeIndex{case1, case2})

	swNode := h.checker.node(sw)
	h.checker.checkSwitchBody(swNode, scope)

	ySym, _ := h.table.Lookup(scope, h.intern("y"))
	yType := h.checker.symbolTypes[ySym]
	if info, ok := h.types.UnionInfoOf(yType); !ok || len(info.Members) != 2 {
		t.Fatalf("expected y to be bound to a two-member union (1|2) inside the matched clause, got kind %v", h.types.KindOf(yType))
	}
}

// TestCheckSwitchBodyDefaultClauseReceivesExcludedType checks that a
// `default` clause is narrowed to whatever no case's literal matched, not
// left at the pre-switch type.
func TestCheckSwitchBodyDefaultClauseReceivesExcludedType(t *testing.T) {
	h := newHarness(t, config.EffectiveOptions{})
	scope := h.table.NewScope(symbols.ScopeGlobal, symbols.NoScopeID, symbols.Scope{})

	one := h.types.LiteralNumber(1)
	two := h.types.LiteralNumber(2)
	union := h.types.Union(one, two)

	decl := h.builder.NewIdent(span(1), h.intern("x"))
	sym := h.declare(scope, "x", symbols.Variable, symbols.FlagLet, decl)
	h.checker.symbolTypes[sym] = union

	disc := h.builder.NewIdent(span(2), h.intern("x"))
	case1 := h.builder.NewCase(span(3), h.builder.NewLiteralNumber(span(4), 1),
		[]ast.NodeIndex{h.builder.NewReturn(span(5), ast.NoNodeIndex)})
	defaultClause := h.builder.NewCase(span(6), ast.NoNodeIndex, nil)
	sw := h.builder.NewSwitch(span(7), disc, []ast.NodeIndex{case1, defaultClause})

	swNode := h.checker.node(sw)
	h.checker.checkSwitchBody(swNode, scope)

	got := h.checker.symbolTypes[sym]
	if got != two {
		t.Fatalf("expected x to narrow to literal 2 after the switch (only the default clause survives), got kind %v", h.types.KindOf(got))
	}
}

// TestCheckSwitchBodyNonIdentDiscriminantSkipsNarrowing exercises the
// computed-discriminant fallback: checkSwitchBody must still type-check every
// clause's body, it just has no symbol to narrow.
func TestCheckSwitchBodyNonIdentDiscriminantSkipsNarrowing(t *testing.T) {
	h := newHarness(t, config.EffectiveOptions{})
	scope := h.table.NewScope(symbols.ScopeGlobal, symbols.NoScopeID, symbols.Scope{})

	callee := h.builder.NewIdent(span(1), h.intern("f"))
	call := h.builder.NewCall(span(2), callee, nil)
	case1 := h.builder.NewCase(span(3), h.builder.NewLiteralNumber(span(4), 1), nil)
	sw := h.builder.NewSwitch(span(5), call, []ast.NodeIndex{case1})

	swNode := h.checker.node(sw)
	h.checker.checkSwitchBody(swNode, scope)

	found := false
	for _, d := range h.bag.Items() {
		if d.Code == diag.CannotFindName {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected the call's callee 'f' to still be type-checked (CannotFindName), got %v", h.bag.Items())
	}
}
