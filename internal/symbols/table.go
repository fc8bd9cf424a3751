package symbols

import "tschecker/internal/source"

// Hints sizes the underlying arenas up front to avoid reallocation churn on
// typically-sized files.
type Hints struct{ Scopes, Symbols uint }

// Table is the per-file (or per-program) symbol table: a scope tree plus a
// flat symbol arena. It is built by an external binder and consumed
// read-mostly by the checker, with the checker allowed to attach resolved
// Type values onto existing symbols as it goes.
type Table struct {
	scopes  []Scope
	symbols []Symbol
	Strings *source.Interner
}

// NewTable allocates a table with optional capacity hints. If strings is
// nil, a fresh interner is created.
func NewTable(h Hints, strings *source.Interner) *Table {
	scopeCap := h.Scopes
	if scopeCap == 0 {
		scopeCap = 16
	}
	symCap := h.Symbols
	if symCap == 0 {
		symCap = 64
	}
	if strings == nil {
		strings = source.NewInterner()
	}
	return &Table{
		scopes:  make([]Scope, 1, scopeCap+1),
		symbols: make([]Symbol, 1, symCap+1),
		Strings: strings,
	}
}

// NewScope allocates a scope under parent (NoScopeID for a root scope).
func (t *Table) NewScope(kind ScopeKind, parent ScopeID, sc Scope) ScopeID {
	sc.Kind = kind
	sc.Parent = parent
	id := ScopeID(len(t.scopes))
	t.scopes = append(t.scopes, sc)
	if parent.IsValid() {
		if p := t.Scope(parent); p != nil {
			p.Children = append(p.Children, id)
		}
	}
	return id
}

// Scope returns a pointer to the scope at id, or nil if id is invalid.
func (t *Table) Scope(id ScopeID) *Scope {
	if !id.IsValid() || int(id) >= len(t.scopes) {
		return nil
	}
	return &t.scopes[id]
}

// NewSymbol allocates sym and, if sym.Scope is valid, registers it under
// sym.Name in that scope.
func (t *Table) NewSymbol(sym Symbol) SymbolID {
	id := SymbolID(len(t.symbols))
	t.symbols = append(t.symbols, sym)
	if scope := t.Scope(sym.Scope); scope != nil {
		if scope.Names == nil {
			scope.Names = make(map[source.StringID]SymbolID)
		}
		scope.Names[sym.Name] = id
	}
	return id
}

// Symbol returns a pointer to the symbol at id, or nil if id is invalid.
func (t *Table) Symbol(id SymbolID) *Symbol {
	if !id.IsValid() || int(id) >= len(t.symbols) {
		return nil
	}
	return &t.symbols[id]
}

// Lookup walks from scope up through Parent links looking for name,
// returning the binding and the scope it was found in. This implements
// lexical (non-hoisted) resolution; callers needing var-hoisting semantics
// resolve at the function/global scope directly instead of the block scope.
func (t *Table) Lookup(scope ScopeID, name source.StringID) (SymbolID, ScopeID) {
	for id := scope; id.IsValid(); {
		s := t.Scope(id)
		if s == nil {
			return NoSymbolID, NoScopeID
		}
		if sym, ok := s.Names[name]; ok {
			return sym, id
		}
		id = s.Parent
	}
	return NoSymbolID, NoScopeID
}

// LookupInScope returns the symbol bound to name directly in scope, without
// walking parents.
func (t *Table) LookupInScope(scope ScopeID, name source.StringID) (SymbolID, bool) {
	s := t.Scope(scope)
	if s == nil {
		return NoSymbolID, false
	}
	id, ok := s.Names[name]
	return id, ok
}

// NearestFunctionOrGlobal walks up from scope to the nearest function or
// global scope, the hoist target for `var` and function declarations.
func (t *Table) NearestFunctionOrGlobal(scope ScopeID) ScopeID {
	for id := scope; id.IsValid(); {
		s := t.Scope(id)
		if s == nil {
			return NoScopeID
		}
		if s.Kind == ScopeFunction || s.Kind == ScopeGlobal || s.Kind == ScopeModule {
			return id
		}
		id = s.Parent
	}
	return NoScopeID
}
