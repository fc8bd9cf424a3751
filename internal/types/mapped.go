package types

import "strconv"

// Modifier encodes the tri-state `+`/`-`/absent modifier mapped types apply
// to `optional` and `readonly`.
type Modifier uint8

const (
	ModifierUnchanged Modifier = iota
	ModifierAdd
	ModifierRemove
)

// MappedInfo is the side-table payload for KindMapped:
// `{ [K in Constraint]: Template }`, with optional +?/-? and +readonly/-readonly.
type MappedInfo struct {
	Param      TypeID // a KindTypeParameter bound to each key of Constraint
	Constraint TypeID // typically a KindKeyof or a union of literal keys
	Template   TypeID // the per-property type, referencing Param
	Optional   Modifier
	Readonly   Modifier
}

// Mapped interns a mapped type.
func (in *Interner) Mapped(info MappedInfo) TypeID {
	key := "map:" +
		strconv.FormatUint(uint64(info.Param), 10) + ":" +
		strconv.FormatUint(uint64(info.Constraint), 10) + ":" +
		strconv.FormatUint(uint64(info.Template), 10) + ":" +
		strconv.Itoa(int(info.Optional)) + ":" +
		strconv.Itoa(int(info.Readonly))

	return in.internComposite(key, func() Type {
		slot := uint32(len(in.mappeds))
		in.mappeds = append(in.mappeds, info)
		return Type{Kind: KindMapped, Payload: slot}
	})
}

// MappedInfoOf returns the mapped-type shape for id, or (zero, false) if id
// is not a mapped type.
func (in *Interner) MappedInfoOf(id TypeID) (MappedInfo, bool) {
	t, ok := in.Lookup(id)
	if !ok || t.Kind != KindMapped {
		return MappedInfo{}, false
	}
	if int(t.Payload) >= len(in.mappeds) {
		return MappedInfo{}, false
	}
	return in.mappeds[t.Payload], true
}
