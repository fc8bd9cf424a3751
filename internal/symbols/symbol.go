package symbols

import (
	"tschecker/internal/ast"
	"tschecker/internal/source"
	"tschecker/internal/types"
)

// Kind classifies the semantic meaning of a symbol, independent of which
// declaration keyword introduced it.
type Kind uint8

const (
	Invalid Kind = iota
	Variable
	Function
	Class
	Interface
	TypeAlias
	Enum
	EnumMember
	Parameter
	Property
	Method
	Accessor
	Namespace
	TypeParam
	CatchBinding
)

func (k Kind) String() string {
	switch k {
	case Variable:
		return "variable"
	case Function:
		return "function"
	case Class:
		return "class"
	case Interface:
		return "interface"
	case TypeAlias:
		return "type alias"
	case Enum:
		return "enum"
	case EnumMember:
		return "enum member"
	case Parameter:
		return "parameter"
	case Property:
		return "property"
	case Method:
		return "method"
	case Accessor:
		return "accessor"
	case Namespace:
		return "namespace"
	case TypeParam:
		return "type parameter"
	case CatchBinding:
		return "catch binding"
	default:
		return "invalid"
	}
}

// Flags carries small boolean facts about a symbol's declaration that affect
// checking but don't belong in Kind.
type Flags uint16

const (
	FlagConst Flags = 1 << iota
	FlagLet
	FlagVarLegacy
	FlagExported
	FlagAmbient
	FlagOptional
	FlagReadonly
	FlagStatic
	FlagAbstract
	FlagDeclareMerged // this symbol was produced by merging >=2 declarations (e.g. function overloads, interface merging)
)

func (f Flags) Has(bit Flags) bool { return f&bit != 0 }

// Symbol is a named entity visible in some scope: a variable, a type, a
// class member, or a type parameter. Declarations is every syntactic site
// that contributes to this symbol (plural for merged interfaces/overloads);
// ValueDecl is the one declaration, if any, that supplies the value type.
type Symbol struct {
	Name         source.StringID
	Kind         Kind
	Flags        Flags
	Scope        ScopeID
	Span         source.Span
	Declarations []ast.NodeIndex
	ValueDecl    ast.NodeIndex
	Type         types.TypeID
	Parent       SymbolID // enclosing class/interface/enum/namespace symbol, if any
	Exports      map[source.StringID]SymbolID
	Members      map[source.StringID]SymbolID // class/interface/object-type own members
}
