package types

import (
	"strconv"
	"strings"
)

// TemplateLiteralInfo is the side-table payload for KindTemplateLiteral:
// an alternating sequence of literal text quasis and interpolated types,
// `` `prefix${T}middle${U}suffix` ``. Quasis always has one more element
// than Types.
type TemplateLiteralInfo struct {
	Quasis []string
	Types  []TypeID
}

// TemplateLiteral interns a template literal type.
func (in *Interner) TemplateLiteral(quasis []string, interpolated []TypeID) TypeID {
	var key strings.Builder
	key.WriteString("tmpl:")
	for i, q := range quasis {
		if i > 0 {
			key.WriteByte('\x00')
		}
		key.WriteString(q)
	}
	key.WriteString(":types:")
	for i, t := range interpolated {
		if i > 0 {
			key.WriteByte(',')
		}
		key.WriteString(strconv.FormatUint(uint64(t), 10))
	}

	return in.internComposite(key.String(), func() Type {
		slot := uint32(len(in.templates))
		in.templates = append(in.templates, TemplateLiteralInfo{
			Quasis: append([]string(nil), quasis...),
			Types:  append([]TypeID(nil), interpolated...),
		})
		return Type{Kind: KindTemplateLiteral, Payload: slot}
	})
}

// TemplateLiteralInfoOf returns the quasis/types for id, or (zero, false)
// if id is not a template literal type.
func (in *Interner) TemplateLiteralInfoOf(id TypeID) (TemplateLiteralInfo, bool) {
	t, ok := in.Lookup(id)
	if !ok || t.Kind != KindTemplateLiteral {
		return TemplateLiteralInfo{}, false
	}
	if int(t.Payload) >= len(in.templates) {
		return TemplateLiteralInfo{}, false
	}
	return in.templates[t.Payload], true
}
