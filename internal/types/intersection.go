package types

import (
	"sort"
	"strconv"
	"strings"
)

// IntersectionInfo is the side-table payload for KindIntersection: its
// final, flattened, deduplicated member list.
type IntersectionInfo struct {
	Members []TypeID
}

// Intersection interns A & B & ... & N:
//   - nested intersections flatten
//   - `any` absorbs everything (Intersection(..., any) == any)
//   - `never` absorbs everything (Intersection(..., never) == never)
//   - `unknown` is the identity element and is dropped
//   - duplicate members collapse
//   - disjoint primitives (e.g. string & number) collapse to `never`
//   - a one-member result returns that member directly
func (in *Interner) Intersection(members ...TypeID) TypeID {
	flat := in.flattenIntersection(members)

	for _, m := range flat {
		if m == in.builtins.Any {
			return in.builtins.Any
		}
		if m == in.builtins.Never {
			return in.builtins.Never
		}
	}

	seen := make(map[TypeID]bool, len(flat))
	var kept []TypeID
	for _, m := range flat {
		if m == in.builtins.Unknown || m == NoTypeID {
			continue
		}
		if seen[m] {
			continue
		}
		seen[m] = true
		kept = append(kept, m)
	}

	if in.hasDisjointPrimitives(kept) {
		return in.builtins.Never
	}

	switch len(kept) {
	case 0:
		return in.builtins.Unknown
	case 1:
		return kept[0]
	}

	sorted := append([]TypeID(nil), kept...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	var key strings.Builder
	key.WriteString("isect{")
	for i, m := range sorted {
		if i > 0 {
			key.WriteByte(',')
		}
		key.WriteString(strconv.FormatUint(uint64(m), 10))
	}
	key.WriteByte('}')

	return in.internComposite(key.String(), func() Type {
		slot := uint32(len(in.intersections))
		in.intersections = append(in.intersections, IntersectionInfo{Members: sorted})
		return Type{Kind: KindIntersection, Payload: slot}
	})
}

// primitiveFamily groups a type's Kind into the mutually-exclusive value
// domain it belongs to (string-like, number-like, ...), mirroring
// internal/narrow's typeofMatches grouping. ok is false for structural
// kinds (object, function, array, ...), which never collapse an
// intersection just by appearing alongside another kind.
func primitiveFamily(in *Interner, t TypeID) (family int, ok bool) {
	switch in.KindOf(t) {
	case KindString, KindLiteralString, KindTemplateLiteral:
		return 1, true
	case KindNumber, KindLiteralNumber, KindEnumMember:
		return 2, true
	case KindBoolean, KindLiteralBoolean:
		return 3, true
	case KindBigInt, KindLiteralBigInt:
		return 4, true
	case KindESSymbol, KindUniqueSymbol:
		return 5, true
	case KindNull:
		return 6, true
	case KindUndefined, KindVoid:
		return 7, true
	default:
		return 0, false
	}
}

// hasDisjointPrimitives reports whether members contains two types from
// different primitive value domains (string & number, boolean & null, ...),
// which have no inhabitant in common.
func (in *Interner) hasDisjointPrimitives(members []TypeID) bool {
	family, have := 0, false
	for _, m := range members {
		f, ok := primitiveFamily(in, m)
		if !ok {
			continue
		}
		if have && f != family {
			return true
		}
		family, have = f, true
	}
	return false
}

func (in *Interner) flattenIntersection(members []TypeID) []TypeID {
	var out []TypeID
	for _, m := range members {
		if info, ok := in.IntersectionInfoOf(m); ok {
			out = append(out, in.flattenIntersection(info.Members)...)
			continue
		}
		out = append(out, m)
	}
	return out
}

// IntersectionInfoOf returns the member list for id, or (zero, false) if id
// is not an intersection type.
func (in *Interner) IntersectionInfoOf(id TypeID) (IntersectionInfo, bool) {
	t, ok := in.Lookup(id)
	if !ok || t.Kind != KindIntersection {
		return IntersectionInfo{}, false
	}
	if int(t.Payload) >= len(in.intersections) {
		return IntersectionInfo{}, false
	}
	return in.intersections[t.Payload], true
}

// IsIntersection reports whether id is an intersection type.
func (in *Interner) IsIntersection(id TypeID) bool { return in.KindOf(id) == KindIntersection }
