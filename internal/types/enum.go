package types

import (
	"strconv"

	"tschecker/internal/source"
)

// EnumMemberInfo is the side-table payload for KindEnumMember: one member
// of an enum, narrowed to its specific constant.
type EnumMemberInfo struct {
	EnumName   source.StringID
	MemberName source.StringID
	// Exactly one of StringValue/NumberValue is meaningful, selected by
	// IsString; string enums and numeric enums never mix members.
	IsString    bool
	StringValue source.StringID
	NumberValue float64
}

// EnumMember interns the literal type of one specific enum member.
func (in *Interner) EnumMember(info EnumMemberInfo) TypeID {
	key := "enumember:" + strconv.FormatUint(uint64(info.EnumName), 10) + ":" + strconv.FormatUint(uint64(info.MemberName), 10)
	return in.internComposite(key, func() Type {
		slot := uint32(len(in.enumMembers))
		in.enumMembers = append(in.enumMembers, info)
		return Type{Kind: KindEnumMember, Payload: slot}
	})
}

// EnumMemberInfoOf returns the member info for id, or (zero, false) if id
// is not an enum member type.
func (in *Interner) EnumMemberInfoOf(id TypeID) (EnumMemberInfo, bool) {
	t, ok := in.Lookup(id)
	if !ok || t.Kind != KindEnumMember {
		return EnumMemberInfo{}, false
	}
	if int(t.Payload) >= len(in.enumMembers) {
		return EnumMemberInfo{}, false
	}
	return in.enumMembers[t.Payload], true
}

// UniqueSymbolInfo is the side-table payload for KindUniqueSymbol: the
// nominal type of one specific `unique symbol` declaration.
type UniqueSymbolInfo struct {
	Name source.StringID
	// Ordinal distinguishes two `unique symbol` declarations that happen to
	// share a name (symbols are nominal, not structural: `unique symbol`
	// never unifies across declaration sites even by coincidence of name).
	Ordinal uint32
}

// UniqueSymbol mints a fresh `unique symbol` type. It is intentionally not
// deduped by name: every declaration site gets its own TypeID.
func (in *Interner) UniqueSymbol(name source.StringID) TypeID {
	slot := uint32(len(in.uniqueSyms))
	in.uniqueSyms = append(in.uniqueSyms, UniqueSymbolInfo{Name: name, Ordinal: slot})
	return in.append(Type{Kind: KindUniqueSymbol, Payload: slot})
}

// UniqueSymbolInfoOf returns the declaration info for id, or (zero, false)
// if id is not a unique symbol type.
func (in *Interner) UniqueSymbolInfoOf(id TypeID) (UniqueSymbolInfo, bool) {
	t, ok := in.Lookup(id)
	if !ok || t.Kind != KindUniqueSymbol {
		return UniqueSymbolInfo{}, false
	}
	if int(t.Payload) >= len(in.uniqueSyms) {
		return UniqueSymbolInfo{}, false
	}
	return in.uniqueSyms[t.Payload], true
}
