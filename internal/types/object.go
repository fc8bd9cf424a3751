package types

import (
	"sort"
	"strconv"
	"strings"

	"tschecker/internal/source"
)

// PropertyInfo describes one property (or method) member of an object type.
type PropertyInfo struct {
	Name     source.StringID
	Type     TypeID
	Optional bool
	Readonly bool
}

// IndexSignatureInfo describes `[key: K]: V`.
type IndexSignatureInfo struct {
	KeyType   TypeID // string, number, or a template literal/union of literals
	ValueType TypeID
	Readonly  bool
}

// ObjectInfo is the side-table payload for KindObject: the structural shape
// an object, interface, or class instance type carries.
type ObjectInfo struct {
	Properties      []PropertyInfo
	CallSignatures  []TypeID // each a KindFunction type
	ConstructSigs   []TypeID
	IndexSignatures []IndexSignatureInfo
}

func propKey(in *Interner, p PropertyInfo) string {
	var b strings.Builder
	b.WriteString(in.Atoms.Lookup(p.Name))
	b.WriteByte('|')
	b.WriteString(strconv.FormatUint(uint64(p.Type), 10))
	if p.Optional {
		b.WriteString("|opt")
	}
	if p.Readonly {
		b.WriteString("|ro")
	}
	return b.String()
}

// Object interns a structural object type. Properties are sorted by name so
// that {a,b} and {b,a} intern identically, matching structural equality.
func (in *Interner) Object(props []PropertyInfo, calls, constructs []TypeID, indexes []IndexSignatureInfo) TypeID {
	sorted := append([]PropertyInfo(nil), props...)
	sort.Slice(sorted, func(i, j int) bool {
		return in.Atoms.Lookup(sorted[i].Name) < in.Atoms.Lookup(sorted[j].Name)
	})

	var key strings.Builder
	key.WriteString("obj{")
	for i, p := range sorted {
		if i > 0 {
			key.WriteByte(',')
		}
		key.WriteString(propKey(in, p))
	}
	key.WriteString("}calls{")
	for i, c := range calls {
		if i > 0 {
			key.WriteByte(',')
		}
		key.WriteString(strconv.FormatUint(uint64(c), 10))
	}
	key.WriteString("}news{")
	for i, c := range constructs {
		if i > 0 {
			key.WriteByte(',')
		}
		key.WriteString(strconv.FormatUint(uint64(c), 10))
	}
	key.WriteString("}idx{")
	for i, ix := range indexes {
		if i > 0 {
			key.WriteByte(',')
		}
		key.WriteString(strconv.FormatUint(uint64(ix.KeyType), 10))
		key.WriteByte(':')
		key.WriteString(strconv.FormatUint(uint64(ix.ValueType), 10))
		if ix.Readonly {
			key.WriteString(":ro")
		}
	}
	key.WriteByte('}')

	return in.internComposite(key.String(), func() Type {
		slot := uint32(len(in.objects))
		in.objects = append(in.objects, ObjectInfo{
			Properties:      sorted,
			CallSignatures:  append([]TypeID(nil), calls...),
			ConstructSigs:   append([]TypeID(nil), constructs...),
			IndexSignatures: append([]IndexSignatureInfo(nil), indexes...),
		})
		return Type{Kind: KindObject, Payload: slot}
	})
}

// ObjectInfoOf returns the object shape for id, or (zero, false) if id is
// not an object type.
func (in *Interner) ObjectInfoOf(id TypeID) (ObjectInfo, bool) {
	t, ok := in.Lookup(id)
	if !ok || t.Kind != KindObject {
		return ObjectInfo{}, false
	}
	if int(t.Payload) >= len(in.objects) {
		return ObjectInfo{}, false
	}
	return in.objects[t.Payload], true
}

// HasIndexSignature reports whether id is an object type carrying at least
// one index signature.
func (in *Interner) HasIndexSignature(id TypeID) bool {
	info, ok := in.ObjectInfoOf(id)
	return ok && len(info.IndexSignatures) > 0
}

// Property looks up a named own property on an object type.
func (in *Interner) Property(id TypeID, name source.StringID) (PropertyInfo, bool) {
	info, ok := in.ObjectInfoOf(id)
	if !ok {
		return PropertyInfo{}, false
	}
	for _, p := range info.Properties {
		if p.Name == name {
			return p, true
		}
	}
	return PropertyInfo{}, false
}
