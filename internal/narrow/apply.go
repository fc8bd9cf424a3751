package narrow

import "tschecker/internal/types"

// Apply computes the narrowed type for g against its Interner, dispatching
// on g.Kind.
func Apply(in *types.Interner, g Guard) Result {
	switch g.Kind {
	case GuardTruthy:
		return applyTruthy(in, g)
	case GuardTypeof:
		return applyTypeof(in, g)
	case GuardInstanceof:
		return applyInstanceof(in, g)
	case GuardIn:
		return applyIn(in, g)
	case GuardLiteralEquality:
		return applyLiteralEquality(in, g)
	case GuardDiscriminant:
		return applyDiscriminant(in, g)
	case GuardUserPredicate:
		return applyUserPredicate(in, g)
	case GuardSwitchExclude:
		return applySwitchExclude(in, g)
	default:
		return Result{Type: g.Subject}
	}
}

func reachable(in *types.Interner, t types.TypeID) Result {
	return Result{Type: t, Unreachable: t == in.Builtins().Never}
}

func applyTruthy(in *types.Interner, g Guard) Result {
	if g.Sense {
		return reachable(in, filterUnion(in, g.Subject, func(m types.TypeID) bool {
			if isNullish(in, m) || isFalsyLiteral(in, m) {
				return false
			}
			return true
		}))
	}
	return reachable(in, filterUnion(in, g.Subject, func(m types.TypeID) bool {
		if isNullish(in, m) || isFalsyLiteral(in, m) {
			return true
		}
		return !isDefinitelyTruthy(m, in)
	}))
}

func typeofMatches(in *types.Interner, m types.TypeID, tag string) bool {
	k := in.KindOf(m)
	switch tag {
	case "string":
		return k == types.KindString || k == types.KindLiteralString || k == types.KindTemplateLiteral
	case "number":
		return k == types.KindNumber || k == types.KindLiteralNumber || k == types.KindEnumMember
	case "boolean":
		return k == types.KindBoolean || k == types.KindLiteralBoolean
	case "bigint":
		return k == types.KindBigInt || k == types.KindLiteralBigInt
	case "symbol":
		return k == types.KindESSymbol || k == types.KindUniqueSymbol
	case "undefined":
		return k == types.KindUndefined || k == types.KindVoid
	case "object":
		return k == types.KindObject || k == types.KindObjectIntrinsic || k == types.KindNull ||
			k == types.KindArray || k == types.KindTuple
	case "function":
		return k == types.KindFunction
	default:
		return false
	}
}

func applyTypeof(in *types.Interner, g Guard) Result {
	b := in.Builtins()
	switch in.KindOf(g.Subject) {
	case types.KindAny, types.KindUnknown:
		if !g.Sense {
			return reachable(in, g.Subject)
		}
		switch g.TypeofTag {
		case "string":
			return reachable(in, b.String)
		case "number":
			return reachable(in, b.Number)
		case "boolean":
			return reachable(in, b.Boolean)
		case "bigint":
			return reachable(in, b.BigInt)
		case "symbol":
			return reachable(in, b.ESSymbol)
		case "undefined":
			return reachable(in, b.Undefined)
		case "object":
			return reachable(in, in.Union(b.ObjectIntrinsic, b.Null))
		default:
			return reachable(in, g.Subject)
		}
	}

	return reachable(in, filterUnion(in, g.Subject, func(m types.TypeID) bool {
		matches := typeofMatches(in, m, g.TypeofTag)
		if g.Sense {
			return matches
		}
		return !matches
	}))
}

func applyInstanceof(in *types.Interner, g Guard) Result {
	b := in.Builtins()
	if k := in.KindOf(g.Subject); k == types.KindAny || k == types.KindUnknown {
		if g.Sense {
			return reachable(in, g.InstanceofOf)
		}
		return reachable(in, g.Subject)
	}
	if g.Sense {
		// Every constituent assignable to the instance type survives; a
		// constituent with no structural relation to it is dropped, but
		// this package doesn't implement assignability, so conservatively
		// keep a member whenever it shares kind with the instance type and
		// otherwise fall back to intersecting it in.
		kept := filterUnion(in, g.Subject, func(m types.TypeID) bool {
			return in.KindOf(m) == in.KindOf(g.InstanceofOf)
		})
		if kept == b.Never {
			return reachable(in, g.InstanceofOf)
		}
		return reachable(in, kept)
	}
	return reachable(in, filterUnion(in, g.Subject, func(m types.TypeID) bool {
		return m != g.InstanceofOf
	}))
}

func applyIn(in *types.Interner, g Guard) Result {
	return reachable(in, filterUnion(in, g.Subject, func(m types.TypeID) bool {
		_, has := in.Property(m, g.PropertyName)
		if g.Sense {
			return has || in.HasIndexSignature(m)
		}
		return !has
	}))
}

func applyUserPredicate(in *types.Interner, g Guard) Result {
	if !g.PredicateType.IsValid() {
		return reachable(in, g.Subject)
	}
	if g.Sense {
		return reachable(in, g.PredicateType)
	}
	return reachable(in, filterUnion(in, g.Subject, func(m types.TypeID) bool {
		return m != g.PredicateType
	}))
}
