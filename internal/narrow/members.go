package narrow

import "tschecker/internal/types"

// members returns the individual constituents of id: its union members if
// id is a union, or the single-element slice [id] otherwise. This lets
// every guard implementation filter uniformly whether or not the subject
// happens to already be a union.
func members(in *types.Interner, id types.TypeID) []types.TypeID {
	if info, ok := in.UnionInfoOf(id); ok {
		return info.Members
	}
	return []types.TypeID{id}
}

// filterUnion rebuilds a union (or single type, or never) from the subset
// of id's members for which keep returns true.
func filterUnion(in *types.Interner, id types.TypeID, keep func(types.TypeID) bool) types.TypeID {
	all := members(in, id)
	var kept []types.TypeID
	for _, m := range all {
		if keep(m) {
			kept = append(kept, m)
		}
	}
	if len(kept) == 0 {
		return in.Builtins().Never
	}
	return in.Union(kept...)
}

// isNullish reports whether id is exactly null or undefined.
func isNullish(in *types.Interner, id types.TypeID) bool {
	k := in.KindOf(id)
	return k == types.KindNull || k == types.KindUndefined
}

// isFalsyLiteral reports whether id is a literal type whose sole value is
// JS-falsy: 0, "", or false (NaN has no literal representation here).
func isFalsyLiteral(in *types.Interner, id types.TypeID) bool {
	switch in.KindOf(id) {
	case types.KindLiteralString:
		v, _ := in.LiteralStringValue(id)
		return v == ""
	case types.KindLiteralNumber:
		v, _ := in.LiteralNumberValue(id)
		return v == 0
	case types.KindLiteralBoolean:
		v, _ := in.LiteralBooleanValue(id)
		return !v
	}
	return false
}

// isDefinitelyTruthy reports whether every value of id is JS-truthy: true,
// or a nonzero/non-empty literal.
func isDefinitelyTruthy(id types.TypeID, in *types.Interner) bool {
	switch in.KindOf(id) {
	case types.KindLiteralBoolean:
		v, _ := in.LiteralBooleanValue(id)
		return v
	case types.KindLiteralString:
		v, _ := in.LiteralStringValue(id)
		return v != ""
	case types.KindLiteralNumber:
		v, _ := in.LiteralNumberValue(id)
		return v != 0
	case types.KindObject, types.KindFunction, types.KindArray, types.KindTuple, types.KindUniqueSymbol, types.KindESSymbol:
		return true
	}
	return false
}
