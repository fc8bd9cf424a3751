package types

import (
	"strconv"
	"strings"

	"tschecker/internal/source"
)

// ParamInfo describes one parameter of a signature.
type ParamInfo struct {
	Name     source.StringID
	Type     TypeID
	Optional bool
	Rest     bool
}

// PredicateInfo describes a user-defined type-guard return type:
// `function f(x): x is T` or `function f(x): asserts x is T`.
type PredicateInfo struct {
	ParamName source.StringID // or the interned text "this"
	Asserts   bool
	Type      TypeID // NoTypeID for a bare `asserts x` with no narrowed type
}

// Signature is the side-table payload for KindFunction: one call shape
// (parameters, return type, generics, optional type-predicate).
type Signature struct {
	TypeParams    []TypeID // each a KindTypeParameter type
	Params        []ParamInfo
	ReturnType    TypeID
	IsConstructor bool
	Predicate     *PredicateInfo
}

func paramKey(p ParamInfo) string {
	var b strings.Builder
	b.WriteString(strconv.FormatUint(uint64(p.Type), 10))
	if p.Optional {
		b.WriteString("?")
	}
	if p.Rest {
		b.WriteString("...")
	}
	return b.String()
}

// Function interns a function/method/constructor signature type.
func (in *Interner) Function(sig Signature) TypeID {
	var key strings.Builder
	key.WriteString("fn<")
	for i, tp := range sig.TypeParams {
		if i > 0 {
			key.WriteByte(',')
		}
		key.WriteString(strconv.FormatUint(uint64(tp), 10))
	}
	key.WriteString(">(")
	for i, p := range sig.Params {
		if i > 0 {
			key.WriteByte(',')
		}
		key.WriteString(paramKey(p))
	}
	key.WriteString(")->")
	key.WriteString(strconv.FormatUint(uint64(sig.ReturnType), 10))
	if sig.IsConstructor {
		key.WriteString(":new")
	}
	if sig.Predicate != nil {
		key.WriteString(":pred:")
		key.WriteString(in.Atoms.Lookup(sig.Predicate.ParamName))
		key.WriteByte(':')
		key.WriteString(strconv.FormatUint(uint64(sig.Predicate.Type), 10))
		if sig.Predicate.Asserts {
			key.WriteString(":asserts")
		}
	}

	return in.internComposite(key.String(), func() Type {
		slot := uint32(len(in.fns))
		stored := sig
		stored.TypeParams = append([]TypeID(nil), sig.TypeParams...)
		stored.Params = append([]ParamInfo(nil), sig.Params...)
		if sig.Predicate != nil {
			p := *sig.Predicate
			stored.Predicate = &p
		}
		in.fns = append(in.fns, stored)
		return Type{Kind: KindFunction, Payload: slot}
	})
}

// SignatureOf returns the signature for id, or (zero, false) if id is not a
// function type.
func (in *Interner) SignatureOf(id TypeID) (Signature, bool) {
	t, ok := in.Lookup(id)
	if !ok || t.Kind != KindFunction {
		return Signature{}, false
	}
	if int(t.Payload) >= len(in.fns) {
		return Signature{}, false
	}
	return in.fns[t.Payload], true
}
