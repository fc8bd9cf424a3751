package types

import (
	"fmt"
	"math"

	"fortio.org/safecast"

	"tschecker/internal/source"
)

// Type is the compact descriptor stored for every TypeID. Elem, Name, and
// Bits are reused across unrelated Kinds (meaning documented on each
// constructor); Payload indexes into the side table that Kind names, for
// shapes too variable to fit these fixed fields.
type Type struct {
	Kind    Kind
	Elem    TypeID
	Name    source.StringID
	Bits    uint64
	Payload uint32
}

// directKey is the map key used for Kinds whose entire identity fits in the
// fixed Type fields, with no side-table payload.
type directKey struct {
	Kind Kind
	Elem TypeID
	Name source.StringID
	Bits uint64
}

// Builtins caches the TypeIDs of every intrinsic, so callers never re-intern
// them.
type Builtins struct {
	Any               TypeID
	Unknown           TypeID
	Never             TypeID
	Void              TypeID
	Null              TypeID
	Undefined         TypeID
	String            TypeID
	Number            TypeID
	Boolean           TypeID
	BigInt            TypeID
	ESSymbol          TypeID
	ObjectIntrinsic   TypeID
	True              TypeID
	False             TypeID
}

// Interner hands out stable TypeIDs for structurally-equal types. It owns
// every side table (object shapes, function signatures, union/intersection
// member lists, and so on) that a compact Type payload index points into.
type Interner struct {
	Atoms *source.Interner

	types []Type

	direct map[directKey]TypeID
	composite map[string]TypeID // composite kinds, keyed by a canonical content string

	builtins Builtins

	objects       []ObjectInfo
	fns           []Signature
	unions        []UnionInfo
	intersections []IntersectionInfo
	tuples        []TupleInfo
	typeParams    []TypeParamInfo
	applications  []ApplicationInfo
	lazies        []LazyInfo
	conditionals  []ConditionalInfo
	mappeds       []MappedInfo
	indexed       []IndexedAccessInfo
	templates     []TemplateLiteralInfo
	uniqueSyms    []UniqueSymbolInfo
	enumMembers   []EnumMemberInfo
}

// NewInterner returns an Interner seeded with every intrinsic type. If
// atoms is nil, a fresh atom interner is allocated.
func NewInterner(atoms *source.Interner) *Interner {
	if atoms == nil {
		atoms = source.NewInterner()
	}
	in := &Interner{
		Atoms:   atoms,
		types:   make([]Type, 1, 128), // index 0 reserved for NoTypeID
		direct:  make(map[directKey]TypeID, 128),
		composite: make(map[string]TypeID, 64),
	}
	// Reserve slot 0 in every side table so Payload==0 reliably means "none".
	in.objects = append(in.objects, ObjectInfo{})
	in.fns = append(in.fns, Signature{})
	in.unions = append(in.unions, UnionInfo{})
	in.intersections = append(in.intersections, IntersectionInfo{})
	in.tuples = append(in.tuples, TupleInfo{})
	in.typeParams = append(in.typeParams, TypeParamInfo{})
	in.applications = append(in.applications, ApplicationInfo{})
	in.lazies = append(in.lazies, LazyInfo{})
	in.conditionals = append(in.conditionals, ConditionalInfo{})
	in.mappeds = append(in.mappeds, MappedInfo{})
	in.indexed = append(in.indexed, IndexedAccessInfo{})
	in.templates = append(in.templates, TemplateLiteralInfo{})
	in.uniqueSyms = append(in.uniqueSyms, UniqueSymbolInfo{})
	in.enumMembers = append(in.enumMembers, EnumMemberInfo{})

	in.builtins.Any = in.internDirect(Type{Kind: KindAny})
	in.builtins.Unknown = in.internDirect(Type{Kind: KindUnknown})
	in.builtins.Never = in.internDirect(Type{Kind: KindNever})
	in.builtins.Void = in.internDirect(Type{Kind: KindVoid})
	in.builtins.Null = in.internDirect(Type{Kind: KindNull})
	in.builtins.Undefined = in.internDirect(Type{Kind: KindUndefined})
	in.builtins.String = in.internDirect(Type{Kind: KindString})
	in.builtins.Number = in.internDirect(Type{Kind: KindNumber})
	in.builtins.Boolean = in.internDirect(Type{Kind: KindBoolean})
	in.builtins.BigInt = in.internDirect(Type{Kind: KindBigInt})
	in.builtins.ESSymbol = in.internDirect(Type{Kind: KindESSymbol})
	in.builtins.ObjectIntrinsic = in.internDirect(Type{Kind: KindObjectIntrinsic})
	in.builtins.True = in.internDirect(Type{Kind: KindLiteralBoolean, Bits: 1})
	in.builtins.False = in.internDirect(Type{Kind: KindLiteralBoolean, Bits: 0})
	return in
}

// Builtins returns the cached intrinsic TypeIDs.
func (in *Interner) Builtins() Builtins { return in.builtins }

// Lookup returns the descriptor for id.
func (in *Interner) Lookup(id TypeID) (Type, bool) {
	if id == NoTypeID || int(id) >= len(in.types) {
		return Type{}, false
	}
	return in.types[id], true
}

// KindOf reports the Kind of id, or KindInvalid if id is not a valid TypeID.
func (in *Interner) KindOf(id TypeID) Kind {
	t, ok := in.Lookup(id)
	if !ok {
		return KindInvalid
	}
	return t.Kind
}

func (in *Interner) internDirect(t Type) TypeID {
	key := directKey{Kind: t.Kind, Elem: t.Elem, Name: t.Name, Bits: t.Bits}
	if id, ok := in.direct[key]; ok {
		return id
	}
	id := in.append(t)
	in.direct[key] = id
	return id
}

// internComposite looks up cacheKey in the structural cache; on a miss it
// calls build to allocate the side-table entry and construct the Type, then
// registers the result under cacheKey.
func (in *Interner) internComposite(cacheKey string, build func() Type) TypeID {
	if id, ok := in.composite[cacheKey]; ok {
		return id
	}
	id := in.append(build())
	in.composite[cacheKey] = id
	return id
}

func (in *Interner) append(t Type) TypeID {
	n, err := safecast.Conv[uint32](len(in.types))
	if err != nil {
		panic(fmt.Errorf("types: interner overflow: %w", err))
	}
	in.types = append(in.types, t)
	return TypeID(n)
}

// LiteralString interns the literal type for exactly this string value.
func (in *Interner) LiteralString(s string) TypeID {
	return in.internDirect(Type{Kind: KindLiteralString, Name: in.Atoms.Intern(s)})
}

// LiteralNumber interns the literal type for exactly this numeric value.
// NaN is normalized to a single canonical literal, matching IEEE-754
// bit-pattern equality otherwise.
func (in *Interner) LiteralNumber(v float64) TypeID {
	bits := math.Float64bits(v)
	if math.IsNaN(v) {
		bits = math.Float64bits(math.NaN())
	}
	return in.internDirect(Type{Kind: KindLiteralNumber, Bits: bits})
}

// LiteralBoolean interns `true` or `false` as a literal type.
func (in *Interner) LiteralBoolean(v bool) TypeID {
	if v {
		return in.builtins.True
	}
	return in.builtins.False
}

// LiteralBigInt interns the literal type for exactly these digits (the
// caller normalizes sign/leading zeros before calling, e.g. "-5" vs "-05"
// would otherwise intern to distinct types).
func (in *Interner) LiteralBigInt(digits string) TypeID {
	return in.internDirect(Type{Kind: KindLiteralBigInt, Name: in.Atoms.Intern(digits)})
}

// LiteralStringValue returns the backing string of a literal string type.
func (in *Interner) LiteralStringValue(id TypeID) (string, bool) {
	t, ok := in.Lookup(id)
	if !ok || t.Kind != KindLiteralString {
		return "", false
	}
	return in.Atoms.Lookup(t.Name), true
}

// LiteralNumberValue returns the backing float64 of a literal number type.
func (in *Interner) LiteralNumberValue(id TypeID) (float64, bool) {
	t, ok := in.Lookup(id)
	if !ok || t.Kind != KindLiteralNumber {
		return 0, false
	}
	return math.Float64frombits(t.Bits), true
}

// LiteralBooleanValue returns the backing bool of a literal boolean type.
func (in *Interner) LiteralBooleanValue(id TypeID) (bool, bool) {
	t, ok := in.Lookup(id)
	if !ok || t.Kind != KindLiteralBoolean {
		return false, false
	}
	return t.Bits != 0, true
}

// Array interns T[]. Use Readonly(Array(elem)) for ReadonlyArray<T>.
func (in *Interner) Array(elem TypeID) TypeID {
	return in.internDirect(Type{Kind: KindArray, Elem: elem})
}

// ArrayElem returns the element type of an array type, or NoTypeID if id is
// not an array.
func (in *Interner) ArrayElem(id TypeID) TypeID {
	t, ok := in.Lookup(id)
	if !ok || t.Kind != KindArray {
		return NoTypeID
	}
	return t.Elem
}

// Keyof interns `keyof T`.
func (in *Interner) Keyof(operand TypeID) TypeID {
	return in.internDirect(Type{Kind: KindKeyof, Elem: operand})
}

// KeyofOperand returns the operand of a keyof type.
func (in *Interner) KeyofOperand(id TypeID) TypeID {
	t, ok := in.Lookup(id)
	if !ok || t.Kind != KindKeyof {
		return NoTypeID
	}
	return t.Elem
}

// Readonly wraps inner in a readonly marker. Readonly(Readonly(T)) collapses
// to Readonly(T): the wrapper is idempotent.
func (in *Interner) Readonly(inner TypeID) TypeID {
	if in.KindOf(inner) == KindReadonly {
		return inner
	}
	return in.internDirect(Type{Kind: KindReadonly, Elem: inner})
}

// IsReadonly reports whether id is a Readonly wrapper.
func (in *Interner) IsReadonly(id TypeID) bool { return in.KindOf(id) == KindReadonly }

// Unwrap returns the inner type of a Readonly/Fresh wrapper, or id itself
// if it is not a wrapper.
func (in *Interner) Unwrap(id TypeID) TypeID {
	t, ok := in.Lookup(id)
	if !ok {
		return id
	}
	if t.Kind == KindReadonly || t.Kind == KindFresh {
		return t.Elem
	}
	return id
}

// Fresh marks an object type as "fresh": it was produced directly by an
// object literal expression and so is subject to excess-property checks at
// its first assignment. Freshness does not survive being assigned to a
// variable or passed through a wider type.
func (in *Interner) Fresh(inner TypeID) TypeID {
	if in.KindOf(inner) != KindObject {
		return inner
	}
	return in.internDirect(Type{Kind: KindFresh, Elem: inner})
}

// IsFresh reports whether id is a Fresh wrapper over an object type.
func (in *Interner) IsFresh(id TypeID) bool { return in.KindOf(id) == KindFresh }
