package types

import (
	"sort"
	"strconv"
	"strings"
)

// UnionInfo is the side-table payload for KindUnion: its final, flattened,
// deduplicated member list.
type UnionInfo struct {
	Members []TypeID
}

// Union interns A | B | ... | N, applying the algebra a structural union
// type must satisfy:
//   - nested unions flatten (Union(Union(A,B),C) == Union(A,B,C))
//   - `any` absorbs everything (Union(..., any) == any)
//   - `unknown` absorbs everything except `any`
//   - `never` members are dropped (it contributes no values)
//   - duplicate members (by TypeID, i.e. by structural identity) collapse
//   - a one-member result returns that member directly, not a KindUnion
//   - a zero-member result (everything was never) returns never
func (in *Interner) Union(members ...TypeID) TypeID {
	flat := in.flattenUnion(members)

	for _, m := range flat {
		if m == in.builtins.Any {
			return in.builtins.Any
		}
	}

	seen := make(map[TypeID]bool, len(flat))
	var kept []TypeID
	for _, m := range flat {
		if m == in.builtins.Never || m == NoTypeID {
			continue
		}
		if seen[m] {
			continue
		}
		seen[m] = true
		kept = append(kept, m)
	}

	for _, m := range kept {
		if m == in.builtins.Unknown {
			return in.builtins.Unknown
		}
	}

	switch len(kept) {
	case 0:
		return in.builtins.Never
	case 1:
		return kept[0]
	}

	sorted := append([]TypeID(nil), kept...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	var key strings.Builder
	key.WriteString("union{")
	for i, m := range sorted {
		if i > 0 {
			key.WriteByte(',')
		}
		key.WriteString(strconv.FormatUint(uint64(m), 10))
	}
	key.WriteByte('}')

	return in.internComposite(key.String(), func() Type {
		slot := uint32(len(in.unions))
		in.unions = append(in.unions, UnionInfo{Members: sorted})
		return Type{Kind: KindUnion, Payload: slot}
	})
}

func (in *Interner) flattenUnion(members []TypeID) []TypeID {
	var out []TypeID
	for _, m := range members {
		if info, ok := in.UnionInfoOf(m); ok {
			out = append(out, in.flattenUnion(info.Members)...)
			continue
		}
		out = append(out, m)
	}
	return out
}

// UnionInfoOf returns the member list for id, or (zero, false) if id is not
// a union type.
func (in *Interner) UnionInfoOf(id TypeID) (UnionInfo, bool) {
	t, ok := in.Lookup(id)
	if !ok || t.Kind != KindUnion {
		return UnionInfo{}, false
	}
	if int(t.Payload) >= len(in.unions) {
		return UnionInfo{}, false
	}
	return in.unions[t.Payload], true
}

// IsUnion reports whether id is a union type.
func (in *Interner) IsUnion(id TypeID) bool { return in.KindOf(id) == KindUnion }
