package types

import (
	"strconv"
	"strings"

	"tschecker/internal/source"
)

// TupleElementInfo describes one slot of a tuple type.
type TupleElementInfo struct {
	Type     TypeID
	Label    source.StringID // 0 (NoStringID) if unlabeled
	Optional bool
	Rest     bool // `...T[]` trailing rest element
}

// TupleInfo is the side-table payload for KindTuple.
type TupleInfo struct {
	Elements []TupleElementInfo
}

// Tuple interns a fixed-shape tuple type.
func (in *Interner) Tuple(elements []TupleElementInfo) TypeID {
	var key strings.Builder
	key.WriteString("tuple[")
	for i, e := range elements {
		if i > 0 {
			key.WriteByte(',')
		}
		key.WriteString(strconv.FormatUint(uint64(e.Type), 10))
		if e.Optional {
			key.WriteByte('?')
		}
		if e.Rest {
			key.WriteString("...")
		}
		if e.Label != source.NoStringID {
			key.WriteByte('@')
			key.WriteString(in.Atoms.Lookup(e.Label))
		}
	}
	key.WriteByte(']')

	return in.internComposite(key.String(), func() Type {
		slot := uint32(len(in.tuples))
		in.tuples = append(in.tuples, TupleInfo{Elements: append([]TupleElementInfo(nil), elements...)})
		return Type{Kind: KindTuple, Payload: slot}
	})
}

// TupleInfoOf returns the element list for id, or (zero, false) if id is
// not a tuple type.
func (in *Interner) TupleInfoOf(id TypeID) (TupleInfo, bool) {
	t, ok := in.Lookup(id)
	if !ok || t.Kind != KindTuple {
		return TupleInfo{}, false
	}
	if int(t.Payload) >= len(in.tuples) {
		return TupleInfo{}, false
	}
	return in.tuples[t.Payload], true
}
