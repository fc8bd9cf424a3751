package narrow

import (
	"tschecker/internal/source"
	"tschecker/internal/types"
)

// literalEqual reports whether two literal types denote the same runtime
// value, comparing by kind and backing value rather than TypeID identity
// (callers may be comparing a subject member against an independently
// constructed LiteralValue).
func literalEqual(in *types.Interner, a, b types.TypeID) bool {
	if a == b {
		return true
	}
	ka, kb := in.KindOf(a), in.KindOf(b)
	if ka != kb {
		return false
	}
	switch ka {
	case types.KindLiteralString:
		va, _ := in.LiteralStringValue(a)
		vb, _ := in.LiteralStringValue(b)
		return va == vb
	case types.KindLiteralNumber:
		va, _ := in.LiteralNumberValue(a)
		vb, _ := in.LiteralNumberValue(b)
		return va == vb
	case types.KindLiteralBoolean:
		va, _ := in.LiteralBooleanValue(a)
		vb, _ := in.LiteralBooleanValue(b)
		return va == vb
	}
	return false
}

func applyLiteralEquality(in *types.Interner, g Guard) Result {
	switch g.EqualityOp {
	case EqLooseEqual, EqLooseNotEqual:
		if isNullish(in, g.LiteralValue) {
			wantNullish := g.EqualityOp == EqLooseEqual
			if wantNullish == g.Sense {
				return reachable(in, filterUnion(in, g.Subject, func(m types.TypeID) bool {
					return isNullish(in, m)
				}))
			}
			return reachable(in, filterUnion(in, g.Subject, func(m types.TypeID) bool {
				return !isNullish(in, m)
			}))
		}
		return applyStrictEquality(in, g.Subject, g.LiteralValue, g.EqualityOp == EqLooseEqual == g.Sense)
	default:
		return applyStrictEquality(in, g.Subject, g.LiteralValue, (g.EqualityOp == EqStrictEqual) == g.Sense)
	}
}

// applyStrictEquality narrows subject to exactly literal when want is true
// (an equality test held), or removes literal as a possibility when want is
// false (a not-equal test held, or an equal test's else branch).
func applyStrictEquality(in *types.Interner, subject, literal types.TypeID, want bool) Result {
	if want {
		for _, m := range members(in, subject) {
			if literalEqual(in, m, literal) {
				return reachable(in, m)
			}
		}
		switch in.KindOf(subject) {
		case types.KindAny, types.KindUnknown:
			return reachable(in, literal)
		}
		return reachable(in, in.Builtins().Never)
	}
	return reachable(in, filterUnion(in, subject, func(m types.TypeID) bool {
		return !literalEqual(in, m, literal)
	}))
}

// applySwitchExclude tests every member of subject against g.ExcludedLiterals
// in one O(|base|) pass: Sense true keeps a member that matches any of them
// (a matched switch clause), Sense false keeps a member that matches none of
// them (the "no case matched" clause).
func applySwitchExclude(in *types.Interner, g Guard) Result {
	return reachable(in, filterUnion(in, g.Subject, func(m types.TypeID) bool {
		matches := false
		for _, lit := range g.ExcludedLiterals {
			if literalEqual(in, m, lit) {
				matches = true
				break
			}
		}
		if g.Sense {
			return matches
		}
		return !matches
	}))
}

// resolvePropertyPath walks path member-by-member starting at t, the way a
// chained discriminant access (`x.shape.kind`) reads each property in turn.
// It stops and reports failure the moment any step is missing.
func resolvePropertyPath(in *types.Interner, t types.TypeID, path []source.StringID) (types.TypeID, bool) {
	cur := t
	for _, name := range path {
		prop, ok := in.Property(cur, name)
		if !ok {
			return types.NoTypeID, false
		}
		cur = prop.Type
	}
	return cur, true
}

func applyDiscriminant(in *types.Interner, g Guard) Result {
	info, ok := in.UnionInfoOf(g.Subject)
	if !ok {
		return reachable(in, g.Subject)
	}
	for _, m := range info.Members {
		if _, ok := resolvePropertyPath(in, m, g.PropertyPath); !ok {
			// The path can't be evaluated on every member; back off to the
			// pre-guard type rather than wrongly excluding members this
			// guard can't actually discriminate between.
			return reachable(in, g.Subject)
		}
	}
	return reachable(in, filterUnion(in, g.Subject, func(m types.TypeID) bool {
		propType, _ := resolvePropertyPath(in, m, g.PropertyPath)
		matches := literalEqual(in, propType, g.LiteralValue)
		if g.Sense {
			return matches
		}
		return !matches
	}))
}
