package check

import (
	"tschecker/internal/ast"
	"tschecker/internal/symbols"
	"tschecker/internal/types"
)

// ResolveTypeNode turns a type-syntax node (one of the Type* ast.Kinds) into
// a TypeID, resolving TypeRef names against scope for user-defined
// aliases/interfaces/classes and falling back to the builtin primitives by
// name. An unresolvable reference degrades to `any` rather than failing the
// whole check; internal/symbols is the source of truth for what a binder
// already attached to the referenced declaration's Type field.
func (c *Checker) ResolveTypeNode(idx ast.NodeIndex, scope symbols.ScopeID) types.TypeID {
	n := c.node(idx)
	b := c.Types.Builtins()
	if n == nil {
		return b.Any
	}

	switch n.Kind {
	case ast.TypeRef:
		return c.resolveTypeRef(n, scope)

	case ast.TypeUnion:
		members := make([]types.TypeID, 0, len(n.Children))
		for _, m := range n.Children {
			members = append(members, c.ResolveTypeNode(m, scope))
		}
		return c.Types.Union(members...)

	case ast.TypeIntersection:
		members := make([]types.TypeID, 0, len(n.Children))
		for _, m := range n.Children {
			members = append(members, c.ResolveTypeNode(m, scope))
		}
		return c.Types.Intersection(members...)

	case ast.TypeArrayOf:
		return c.Types.Array(c.ResolveTypeNode(n.Left, scope))

	case ast.TypeTuple:
		elems := make([]types.TupleElementInfo, 0, len(n.Children))
		for _, e := range n.Children {
			en := c.node(e)
			if en == nil {
				continue
			}
			elems = append(elems, types.TupleElementInfo{
				Type:     c.ResolveTypeNode(en.Left, scope),
				Optional: en.Flags.Has(ast.FlagOptional),
				Rest:     en.Flags.Has(ast.FlagRest),
			})
		}
		return c.Types.Tuple(elems)

	case ast.TypeFunctionOf:
		params := make([]types.ParamInfo, 0, len(n.Children))
		for _, p := range n.Children {
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
			Params:        params,
			ReturnType:    c.ResolveTypeNode(n.TypeAnn, scope),
			IsConstructor: n.Flags.Has(ast.FlagConstructor),
		})

	case ast.TypeLiteral:
		switch {
		case n.StrVal != "":
			return c.Types.LiteralString(n.StrVal)
		case n.Flags.Has(ast.FlagOptional): // boolean literal marker, see Builder.NewLiteralBooleanType
			return c.Types.LiteralBoolean(n.Flags.Has(ast.FlagConst))
		default:
			return c.Types.LiteralNumber(n.NumVal)
		}

	case ast.TypeKeyof:
		return c.Types.Keyof(c.ResolveTypeNode(n.Left, scope))

	case ast.TypeIndexedAccess:
		return c.Types.IndexedAccess(c.ResolveTypeNode(n.Left, scope), c.ResolveTypeNode(n.Right, scope))

	case ast.TypeObjectLit:
		var props []types.PropertyInfo
		var indexes []types.IndexSignatureInfo
		for _, m := range n.Children {
			mn := c.node(m)
			if mn == nil {
				continue
			}
			switch mn.Kind {
			case ast.TypeObjectMember:
				props = append(props, types.PropertyInfo{
					Name:     mn.Name,
					Type:     c.ResolveTypeNode(mn.TypeAnn, scope),
					Optional: mn.Flags.Has(ast.FlagOptional),
					Readonly: mn.Flags.Has(ast.FlagReadonly),
				})
			case ast.TypeIndexSignature:
				indexes = append(indexes, types.IndexSignatureInfo{
					KeyType:   c.ResolveTypeNode(mn.Left, scope),
					ValueType: c.ResolveTypeNode(mn.Right, scope),
					Readonly:  mn.Flags.Has(ast.FlagReadonly),
				})
			}
		}
		return c.Types.Object(props, nil, nil, indexes)

	default:
		return b.Any
	}
}

func (c *Checker) resolveTypeRef(n *ast.Node, scope symbols.ScopeID) types.TypeID {
	b := c.Types.Builtins()
	switch c.nameOf(n.Name) {
	case "string":
		return b.String
	case "number":
		return b.Number
	case "boolean":
		return b.Boolean
	case "bigint":
		return b.BigInt
	case "symbol":
		return b.ESSymbol
	case "object":
		return b.ObjectIntrinsic
	case "any":
		return b.Any
	case "unknown":
		return b.Unknown
	case "never":
		return b.Never
	case "void":
		return b.Void
	case "null":
		return b.Null
	case "undefined":
		return b.Undefined
	}

	sym, _ := c.Symbols.Lookup(scope, n.Name)
	if !sym.IsValid() {
		c.report(cannotFindName(n, c.nameOf(n.Name)))
		return b.Any
	}
	if s := c.Symbols.Symbol(sym); s != nil && s.Type.IsValid() {
		return s.Type
	}
	return b.Any
}
