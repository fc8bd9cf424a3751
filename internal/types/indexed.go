package types

import "strconv"

// IndexedAccessInfo is the side-table payload for KindIndexedAccess:
// `Object[Index]`, resolved lazily once Object's shape is known.
type IndexedAccessInfo struct {
	Object TypeID
	Index  TypeID
}

// IndexedAccess interns `Object[Index]`.
func (in *Interner) IndexedAccess(object, index TypeID) TypeID {
	key := "idx:" + strconv.FormatUint(uint64(object), 10) + ":" + strconv.FormatUint(uint64(index), 10)
	return in.internComposite(key, func() Type {
		slot := uint32(len(in.indexed))
		in.indexed = append(in.indexed, IndexedAccessInfo{Object: object, Index: index})
		return Type{Kind: KindIndexedAccess, Payload: slot}
	})
}

// IndexedAccessInfoOf returns the object/index pair for id, or (zero, false)
// if id is not an indexed-access type.
func (in *Interner) IndexedAccessInfoOf(id TypeID) (IndexedAccessInfo, bool) {
	t, ok := in.Lookup(id)
	if !ok || t.Kind != KindIndexedAccess {
		return IndexedAccessInfo{}, false
	}
	if int(t.Payload) >= len(in.indexed) {
		return IndexedAccessInfo{}, false
	}
	return in.indexed[t.Payload], true
}
