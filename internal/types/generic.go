package types

import (
	"strconv"
	"strings"

	"tschecker/internal/source"
)

// TypeParamInfo is the side-table payload for KindTypeParameter.
// Type parameters are intentionally NOT structurally deduped the way other
// composite kinds are: `<T>` in two different declarations are distinct
// type parameters even though their constraint/default may coincide, so
// each call to TypeParameter mints a fresh TypeID.
type TypeParamInfo struct {
	Name       source.StringID
	Constraint TypeID // NoTypeID if unconstrained
	Default    TypeID // NoTypeID if no default
}

// TypeParameter mints a fresh type parameter. Unlike every other
// constructor in this package it is NOT idempotent: each call is a new
// declaration site, matching how `<T>` in two unrelated generic
// declarations never unify even with identical constraints.
func (in *Interner) TypeParameter(info TypeParamInfo) TypeID {
	slot := uint32(len(in.typeParams))
	in.typeParams = append(in.typeParams, info)
	return in.append(Type{Kind: KindTypeParameter, Payload: slot})
}

// TypeParamInfoOf returns the declaration info for id, or (zero, false) if
// id is not a type parameter.
func (in *Interner) TypeParamInfoOf(id TypeID) (TypeParamInfo, bool) {
	t, ok := in.Lookup(id)
	if !ok || t.Kind != KindTypeParameter {
		return TypeParamInfo{}, false
	}
	if int(t.Payload) >= len(in.typeParams) {
		return TypeParamInfo{}, false
	}
	return in.typeParams[t.Payload], true
}

// ApplicationInfo is the side-table payload for KindTypeApplication: a
// generic type (an alias, interface, or class) applied to concrete type
// arguments, before substitution has produced a concrete structural type.
type ApplicationInfo struct {
	Target TypeID // the generic target (commonly a KindLazyReference)
	Args   []TypeID
}

// Application interns `Target<Args...>`.
func (in *Interner) Application(target TypeID, args []TypeID) TypeID {
	var key strings.Builder
	key.WriteString("app:")
	key.WriteString(strconv.FormatUint(uint64(target), 10))
	key.WriteByte('<')
	for i, a := range args {
		if i > 0 {
			key.WriteByte(',')
		}
		key.WriteString(strconv.FormatUint(uint64(a), 10))
	}
	key.WriteByte('>')

	return in.internComposite(key.String(), func() Type {
		slot := uint32(len(in.applications))
		in.applications = append(in.applications, ApplicationInfo{Target: target, Args: append([]TypeID(nil), args...)})
		return Type{Kind: KindTypeApplication, Payload: slot}
	})
}

// ApplicationInfoOf returns the application info for id, or (zero, false)
// if id is not a type application.
func (in *Interner) ApplicationInfoOf(id TypeID) (ApplicationInfo, bool) {
	t, ok := in.Lookup(id)
	if !ok || t.Kind != KindTypeApplication {
		return ApplicationInfo{}, false
	}
	if int(t.Payload) >= len(in.applications) {
		return ApplicationInfo{}, false
	}
	return in.applications[t.Payload], true
}
