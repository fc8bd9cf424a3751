package types

import "strconv"

// ConditionalInfo is the side-table payload for KindConditional:
// `Check extends Extends ? True : False`.
type ConditionalInfo struct {
	Check   TypeID
	Extends TypeID
	True    TypeID
	False   TypeID
}

// Conditional interns a conditional type. Unlike union/intersection,
// conditional types are not simplified here (resolving `extends` requires
// assignability, which this package does not implement); the checker
// resolves conditional types to a concrete branch once Check is concrete.
func (in *Interner) Conditional(info ConditionalInfo) TypeID {
	key := "cond:" +
		strconv.FormatUint(uint64(info.Check), 10) + ":" +
		strconv.FormatUint(uint64(info.Extends), 10) + ":" +
		strconv.FormatUint(uint64(info.True), 10) + ":" +
		strconv.FormatUint(uint64(info.False), 10)

	return in.internComposite(key, func() Type {
		slot := uint32(len(in.conditionals))
		in.conditionals = append(in.conditionals, info)
		return Type{Kind: KindConditional, Payload: slot}
	})
}

// ConditionalInfoOf returns the branches of id, or (zero, false) if id is
// not a conditional type.
func (in *Interner) ConditionalInfoOf(id TypeID) (ConditionalInfo, bool) {
	t, ok := in.Lookup(id)
	if !ok || t.Kind != KindConditional {
		return ConditionalInfo{}, false
	}
	if int(t.Payload) >= len(in.conditionals) {
		return ConditionalInfo{}, false
	}
	return in.conditionals[t.Payload], true
}
