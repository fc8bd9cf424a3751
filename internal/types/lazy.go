package types

import "tschecker/internal/source"

// LazyInfo is the side-table payload for KindLazyReference: a named type
// whose resolution is deferred until its declaration has been checked, so
// forward references and recursive aliases can be interned before their
// target exists.
type LazyInfo struct {
	Name      source.StringID
	resolve   func() TypeID
	resolved  TypeID
	resolving bool
}

// Lazy mints a reference to name whose value is computed by resolve only
// once, the first time it is actually needed. Like TypeParameter, each call
// mints a fresh TypeID: two lazy references to the same name from different
// declaration sites are not the same type until resolved.
func (in *Interner) Lazy(name source.StringID, resolve func() TypeID) TypeID {
	slot := uint32(len(in.lazies))
	in.lazies = append(in.lazies, LazyInfo{Name: name, resolve: resolve})
	return in.append(Type{Kind: KindLazyReference, Payload: slot})
}

// Resolve forces a lazy reference, memoizing the result. ok is false if
// resolving id would re-enter its own resolution (a directly or indirectly
// recursive alias with no widening structural type along the cycle);
// callers use this to report a circular-type-reference diagnostic instead
// of recursing forever.
func (in *Interner) Resolve(id TypeID) (resolved TypeID, ok bool) {
	t, valid := in.Lookup(id)
	if !valid || t.Kind != KindLazyReference {
		return id, true
	}
	if int(t.Payload) >= len(in.lazies) {
		return NoTypeID, false
	}
	info := &in.lazies[t.Payload]
	if info.resolved.IsValid() {
		return info.resolved, true
	}
	if info.resolving {
		return NoTypeID, false
	}
	info.resolving = true
	result := info.resolve()
	info.resolving = false
	info.resolved = result
	return result, true
}

// LazyInfoOf returns the declaration name for id, or (zero, false) if id is
// not a lazy reference.
func (in *Interner) LazyInfoOf(id TypeID) (LazyInfo, bool) {
	t, ok := in.Lookup(id)
	if !ok || t.Kind != KindLazyReference {
		return LazyInfo{}, false
	}
	if int(t.Payload) >= len(in.lazies) {
		return LazyInfo{}, false
	}
	return in.lazies[t.Payload], true
}
