// Package assign implements the assignability judgment source <: target that
// drives variable initialization, parameter passing, return statements, and
// assignment expressions throughout the checker. It also implements excess
// property checking for object literals assigned directly to a typed
// location.
package assign

import (
	"tschecker/internal/source"
	"tschecker/internal/types"
)

// visitKey tracks an in-progress (source, target) comparison so that
// circular structural types (an interface whose property refers back to
// itself through a lazy reference) terminate instead of recursing forever.
// A pair seen again while still "visiting" is assumed assignable: TS applies
// the same coinductive assumption for recursive types.
type visitKey struct {
	Source, Target types.TypeID
}

type ctx struct {
	in       *types.Interner
	visiting map[visitKey]bool
}

// IsAssignable reports whether a value of type source can be used where
// target is expected.
func IsAssignable(in *types.Interner, source, target types.TypeID) bool {
	c := &ctx{in: in, visiting: make(map[visitKey]bool, 8)}
	return c.assignable(source, target)
}

func (c *ctx) resolve(id types.TypeID) types.TypeID {
	if c.in.KindOf(id) == types.KindLazyReference {
		if r, ok := c.in.Resolve(id); ok {
			return c.resolve(r)
		}
		return id
	}
	return c.in.Unwrap(id)
}

func (c *ctx) assignable(src, tgt types.TypeID) bool {
	b := c.in.Builtins()

	if src == tgt {
		return true
	}
	if tgt == b.Any || tgt == b.Unknown || src == b.Any {
		return true
	}
	if src == b.Never {
		return true
	}
	if tgt == b.Never {
		return false
	}

	src = c.resolve(src)
	tgt = c.resolve(tgt)
	if src == tgt {
		return true
	}
	if tgt == b.Any || tgt == b.Unknown || src == b.Any {
		return true
	}

	key := visitKey{src, tgt}
	if c.visiting[key] {
		return true
	}
	c.visiting[key] = true
	defer delete(c.visiting, key)

	// Union source: every constituent must be assignable.
	if info, ok := c.in.UnionInfoOf(src); ok {
		for _, m := range info.Members {
			if !c.assignable(m, tgt) {
				return false
			}
		}
		return true
	}
	// Union target: at least one constituent must accept source.
	if info, ok := c.in.UnionInfoOf(tgt); ok {
		for _, m := range info.Members {
			if c.assignable(src, m) {
				return true
			}
		}
		return false
	}
	// Intersection source: a value of the intersection has every member's
	// shape, so satisfying any one constituent's requirements suffices.
	if info, ok := c.in.IntersectionInfoOf(src); ok {
		for _, m := range info.Members {
			if c.assignable(m, tgt) {
				return true
			}
		}
		return false
	}
	// Intersection target: source must satisfy every member.
	if info, ok := c.in.IntersectionInfoOf(tgt); ok {
		for _, m := range info.Members {
			if !c.assignable(src, m) {
				return false
			}
		}
		return true
	}

	if widened, ok := c.widenLiteral(src); ok && c.assignable(widened, tgt) {
		return true
	}

	switch c.in.KindOf(tgt) {
	case types.KindObjectIntrinsic:
		return c.isObjectLike(src)
	case types.KindArray:
		return c.arrayAssignable(src, tgt)
	case types.KindTuple:
		return c.tupleAssignable(src, tgt)
	case types.KindObject:
		return c.objectAssignable(src, tgt)
	case types.KindFunction:
		return c.functionAssignable(src, tgt)
	case types.KindTypeParameter:
		return src == tgt
	}

	return false
}

// widenLiteral returns the primitive (or enum-backing) type a literal value
// widens to, for comparisons against a non-literal target.
func (c *ctx) widenLiteral(id types.TypeID) (types.TypeID, bool) {
	b := c.in.Builtins()
	switch c.in.KindOf(id) {
	case types.KindLiteralString:
		return b.String, true
	case types.KindLiteralNumber:
		return b.Number, true
	case types.KindLiteralBoolean:
		return b.Boolean, true
	case types.KindLiteralBigInt:
		return b.BigInt, true
	case types.KindEnumMember:
		if info, ok := c.in.EnumMemberInfoOf(id); ok {
			if info.IsString {
				return b.String, true
			}
			return b.Number, true
		}
	}
	return types.NoTypeID, false
}

func (c *ctx) isObjectLike(id types.TypeID) bool {
	switch c.in.KindOf(id) {
	case types.KindObject, types.KindArray, types.KindTuple, types.KindFunction, types.KindObjectIntrinsic:
		return true
	}
	return false
}

func (c *ctx) arrayAssignable(src, tgt types.TypeID) bool {
	tgtElem := c.in.ArrayElem(tgt)
	switch c.in.KindOf(src) {
	case types.KindArray:
		return c.assignable(c.in.ArrayElem(src), tgtElem)
	case types.KindTuple:
		info, _ := c.in.TupleInfoOf(src)
		for _, e := range info.Elements {
			if !c.assignable(e.Type, tgtElem) {
				return false
			}
		}
		return true
	}
	return false
}

func (c *ctx) tupleAssignable(src, tgt types.TypeID) bool {
	if c.in.KindOf(src) != types.KindTuple {
		return false
	}
	sInfo, _ := c.in.TupleInfoOf(src)
	tInfo, _ := c.in.TupleInfoOf(tgt)

	requiredLen := 0
	hasRest := false
	for _, e := range tInfo.Elements {
		if e.Rest {
			hasRest = true
			continue
		}
		if !e.Optional {
			requiredLen++
		}
	}
	if len(sInfo.Elements) < requiredLen {
		return false
	}
	if !hasRest && len(sInfo.Elements) > len(tInfo.Elements) {
		return false
	}
	for i, te := range tInfo.Elements {
		if te.Rest {
			for _, se := range sInfo.Elements[i:] {
				if !c.assignable(se.Type, te.Type) {
					return false
				}
			}
			break
		}
		if i >= len(sInfo.Elements) {
			if te.Optional {
				continue
			}
			return false
		}
		if !c.assignable(sInfo.Elements[i].Type, te.Type) {
			return false
		}
	}
	return true
}

func (c *ctx) objectAssignable(src, tgt types.TypeID) bool {
	if !c.isObjectLike(src) {
		return false
	}
	tInfo, ok := c.in.ObjectInfoOf(tgt)
	if !ok {
		return false
	}
	for _, tp := range tInfo.Properties {
		sp, ok := c.in.Property(src, tp.Name)
		if !ok {
			if tp.Optional {
				continue
			}
			return false
		}
		if !c.assignable(sp.Type, tp.Type) {
			return false
		}
	}
	for _, tcs := range tInfo.CallSignatures {
		if !c.hasCompatibleCallSignature(src, tcs) {
			return false
		}
	}
	return true
}

func (c *ctx) hasCompatibleCallSignature(src, targetSig types.TypeID) bool {
	sInfo, ok := c.in.ObjectInfoOf(src)
	if ok {
		for _, scs := range sInfo.CallSignatures {
			if c.assignable(scs, targetSig) {
				return true
			}
		}
		return false
	}
	if c.in.KindOf(src) == types.KindFunction {
		return c.assignable(src, targetSig)
	}
	return false
}

// functionAssignable implements parameters-contravariant, return-covariant
// signature compatibility. Parameter names are irrelevant; only position,
// arity, and type matter.
func (c *ctx) functionAssignable(src, tgt types.TypeID) bool {
	sSig, ok := c.in.SignatureOf(src)
	if !ok {
		return false
	}
	tSig, ok := c.in.SignatureOf(tgt)
	if !ok {
		return false
	}
	if sSig.IsConstructor != tSig.IsConstructor {
		return false
	}

	requiredSrcParams := 0
	for _, p := range sSig.Params {
		if !p.Optional && !p.Rest {
			requiredSrcParams++
		}
	}
	if requiredSrcParams > len(tSig.Params) {
		return false
	}
	for i, sp := range sSig.Params {
		if i >= len(tSig.Params) {
			if sp.Optional || sp.Rest {
				break
			}
			return false
		}
		tp := tSig.Params[i]
		if !c.assignable(tp.Type, sp.Type) {
			return false
		}
	}
	return c.assignable(sSig.ReturnType, tSig.ReturnType)
}

// ExcessProperty names a property present on a fresh object literal with no
// corresponding member (or covering index signature) on the target type.
type ExcessProperty struct {
	Name source.StringID
}

// CheckExcessProperties reports the excess-property-check violations for
// assigning a fresh object-literal type to target. It is a no-op (returns
// nil) unless src is actually a Fresh-wrapped object, matching the rule that
// excess property checking applies only to literals written directly at the
// assignment site, not to values that have already widened by passing
// through a variable.
func CheckExcessProperties(in *types.Interner, src, target types.TypeID) []ExcessProperty {
	if !in.IsFresh(src) {
		return nil
	}
	obj := in.Unwrap(src)
	objInfo, ok := in.ObjectInfoOf(obj)
	if !ok {
		return nil
	}

	targets := []types.TypeID{target}
	if uInfo, ok := in.UnionInfoOf(target); ok {
		targets = uInfo.Members
	}

	var excess []ExcessProperty
	for _, p := range objInfo.Properties {
		coveredByAny := false
		for _, t := range targets {
			if _, ok := in.Property(t, p.Name); ok {
				coveredByAny = true
				break
			}
			if in.HasIndexSignature(t) {
				coveredByAny = true
				break
			}
			if in.KindOf(t) == types.KindAny || in.KindOf(t) == types.KindUnknown {
				coveredByAny = true
				break
			}
		}
		if !coveredByAny {
			excess = append(excess, ExcessProperty{Name: p.Name})
		}
	}
	return excess
}
