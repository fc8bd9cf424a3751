package symbols

import (
	"tschecker/internal/ast"
	"tschecker/internal/source"
)

// ScopeKind enumerates the lexical scope categories the checker cares about.
// Each maps to a distinct set of binding rules (var hoists to Function/Global,
// let/const are block-scoped).
type ScopeKind uint8

const (
	ScopeInvalid ScopeKind = iota
	ScopeGlobal
	ScopeModule
	ScopeFunction
	ScopeBlock
	ScopeClass
)

func (k ScopeKind) String() string {
	switch k {
	case ScopeGlobal:
		return "global"
	case ScopeModule:
		return "module"
	case ScopeFunction:
		return "function"
	case ScopeBlock:
		return "block"
	case ScopeClass:
		return "class"
	default:
		return "invalid"
	}
}

// Scope models one lexical scope: a parent pointer, the node that introduced
// it, and the symbols declared directly within it.
type Scope struct {
	Kind     ScopeKind
	Parent   ScopeID
	Owner    ast.NodeIndex
	Span     source.Span
	Names    map[source.StringID]SymbolID
	Children []ScopeID
}
