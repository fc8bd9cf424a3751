package types

import (
	"math"
	"testing"
)

func TestInternerBuiltinsAreDistinctAndStable(t *testing.T) {
	in := NewInterner(nil)
	b := in.Builtins()
	if b.Any == NoTypeID || b.String == NoTypeID || b.Never == NoTypeID {
		t.Fatal("expected builtins to be initialized")
	}
	if b.Any == b.Unknown || b.String == b.Number {
		t.Fatal("expected distinct intrinsics to have distinct TypeIDs")
	}
	if in.KindOf(b.String) != KindString {
		t.Fatalf("expected KindString, got %v", in.KindOf(b.String))
	}
}

func TestLiteralStringInterning(t *testing.T) {
	in := NewInterner(nil)
	a := in.LiteralString("hello")
	b := in.LiteralString("hello")
	c := in.LiteralString("world")
	if a != b {
		t.Fatal("identical string literals must intern to the same TypeID")
	}
	if a == c {
		t.Fatal("distinct string literals must intern to distinct TypeIDs")
	}
	v, ok := in.LiteralStringValue(a)
	if !ok || v != "hello" {
		t.Fatalf("expected round-tripped value %q, got %q (ok=%v)", "hello", v, ok)
	}
}

func TestLiteralNumberInterningHandlesNaN(t *testing.T) {
	in := NewInterner(nil)
	a := in.LiteralNumber(1)
	b := in.LiteralNumber(1)
	if a != b {
		t.Fatal("identical numeric literals must intern to the same TypeID")
	}
	nan1 := in.LiteralNumber(math.NaN())
	nan2 := in.LiteralNumber(math.NaN())
	if nan1 != nan2 {
		t.Fatal("NaN literals must canonicalize to a single TypeID")
	}
}

func TestLiteralBooleanSharesBuiltinSlots(t *testing.T) {
	in := NewInterner(nil)
	if in.LiteralBoolean(true) != in.Builtins().True {
		t.Fatal("expected LiteralBoolean(true) to reuse the cached True builtin")
	}
	if in.LiteralBoolean(false) == in.LiteralBoolean(true) {
		t.Fatal("true and false literals must differ")
	}
}

func TestArrayDeduplication(t *testing.T) {
	in := NewInterner(nil)
	str := in.Builtins().String
	a1 := in.Array(str)
	a2 := in.Array(str)
	if a1 != a2 {
		t.Fatal("arrays of the same element type must dedupe")
	}
	if in.ArrayElem(a1) != str {
		t.Fatal("expected ArrayElem to round-trip the element type")
	}
}

func TestReadonlyIsIdempotentWrapper(t *testing.T) {
	in := NewInterner(nil)
	arr := in.Array(in.Builtins().Number)
	r1 := in.Readonly(arr)
	r2 := in.Readonly(in.Readonly(arr))
	if r1 != r2 {
		t.Fatal("Readonly(Readonly(T)) must collapse to Readonly(T)")
	}
	if !in.IsReadonly(r1) {
		t.Fatal("expected IsReadonly to report true")
	}
	if in.Unwrap(r1) != arr {
		t.Fatal("expected Unwrap to recover the wrapped type")
	}
}

func TestUnionFlatteningAndAbsorption(t *testing.T) {
	in := NewInterner(nil)
	str := in.Builtins().String
	num := in.Builtins().Number

	nested := in.Union(in.Union(str, num), str)
	flat := in.Union(str, num)
	if nested != flat {
		t.Fatal("nested unions must flatten to the same TypeID as the flat form")
	}

	withNever := in.Union(str, in.Builtins().Never)
	if withNever != str {
		t.Fatal("never must be absorbed out of a union")
	}

	withAny := in.Union(str, in.Builtins().Any)
	if withAny != in.Builtins().Any {
		t.Fatal("any must absorb the whole union")
	}

	withUnknown := in.Union(str, in.Builtins().Unknown)
	if withUnknown != in.Builtins().Unknown {
		t.Fatal("unknown must absorb a union of narrower members")
	}

	allNever := in.Union(in.Builtins().Never, in.Builtins().Never)
	if allNever != in.Builtins().Never {
		t.Fatal("a union of only never members must reduce to never")
	}
}

func TestUnionOrderIndependence(t *testing.T) {
	in := NewInterner(nil)
	str := in.Builtins().String
	num := in.Builtins().Number
	boolT := in.Builtins().Boolean

	u1 := in.Union(str, num, boolT)
	u2 := in.Union(boolT, str, num)
	if u1 != u2 {
		t.Fatal("union member order must not affect identity")
	}
}

func TestIntersectionAbsorption(t *testing.T) {
	in := NewInterner(nil)
	str := in.Builtins().String

	withAny := in.Intersection(str, in.Builtins().Any)
	if withAny != in.Builtins().Any {
		t.Fatal("any must absorb an intersection")
	}
	withNever := in.Intersection(str, in.Builtins().Never)
	if withNever != in.Builtins().Never {
		t.Fatal("never must absorb an intersection")
	}
	withUnknown := in.Intersection(str, in.Builtins().Unknown)
	if withUnknown != str {
		t.Fatal("unknown must be the identity element for intersection")
	}
}

func TestObjectStructuralDeduplication(t *testing.T) {
	in := NewInterner(nil)
	nameX := in.Atoms.Intern("x")
	nameY := in.Atoms.Intern("y")
	num := in.Builtins().Number

	o1 := in.Object([]PropertyInfo{{Name: nameX, Type: num}, {Name: nameY, Type: num}}, nil, nil, nil)
	o2 := in.Object([]PropertyInfo{{Name: nameY, Type: num}, {Name: nameX, Type: num}}, nil, nil, nil)
	if o1 != o2 {
		t.Fatal("object types with the same properties in different declaration order must dedupe")
	}

	prop, ok := in.Property(o1, nameX)
	if !ok || prop.Type != num {
		t.Fatalf("expected to find property x with type number, got %+v (ok=%v)", prop, ok)
	}
}

func TestObjectDistinguishesOptionalAndReadonly(t *testing.T) {
	in := NewInterner(nil)
	name := in.Atoms.Intern("x")
	num := in.Builtins().Number

	plain := in.Object([]PropertyInfo{{Name: name, Type: num}}, nil, nil, nil)
	optional := in.Object([]PropertyInfo{{Name: name, Type: num, Optional: true}}, nil, nil, nil)
	readonly := in.Object([]PropertyInfo{{Name: name, Type: num, Readonly: true}}, nil, nil, nil)

	if plain == optional || plain == readonly || optional == readonly {
		t.Fatal("optional/readonly modifiers must affect object type identity")
	}
}

func TestTupleDeduplicationAndOrderSensitivity(t *testing.T) {
	in := NewInterner(nil)
	str := in.Builtins().String
	num := in.Builtins().Number

	t1 := in.Tuple([]TupleElementInfo{{Type: str}, {Type: num}})
	t2 := in.Tuple([]TupleElementInfo{{Type: str}, {Type: num}})
	t3 := in.Tuple([]TupleElementInfo{{Type: num}, {Type: str}})
	if t1 != t2 {
		t.Fatal("identical tuples must dedupe")
	}
	if t1 == t3 {
		t.Fatal("tuple element order must affect identity")
	}
}

func TestFunctionSignatureDeduplication(t *testing.T) {
	in := NewInterner(nil)
	str := in.Builtins().String
	num := in.Builtins().Number
	pname := in.Atoms.Intern("x")

	f1 := in.Function(Signature{Params: []ParamInfo{{Name: pname, Type: str}}, ReturnType: num})
	f2 := in.Function(Signature{Params: []ParamInfo{{Name: pname, Type: str}}, ReturnType: num})
	if f1 != f2 {
		t.Fatal("identical signatures must dedupe")
	}

	sig, ok := in.SignatureOf(f1)
	if !ok || sig.ReturnType != num {
		t.Fatalf("expected round-tripped return type number, got %+v (ok=%v)", sig, ok)
	}
}

func TestTypeParametersAreNotDeduped(t *testing.T) {
	in := NewInterner(nil)
	name := in.Atoms.Intern("T")
	p1 := in.TypeParameter(TypeParamInfo{Name: name})
	p2 := in.TypeParameter(TypeParamInfo{Name: name})
	if p1 == p2 {
		t.Fatal("two distinct <T> declarations must not unify even with identical names")
	}
}

func TestLazyResolveMemoizesAndDetectsCycles(t *testing.T) {
	in := NewInterner(nil)
	name := in.Atoms.Intern("Self")
	calls := 0
	var id TypeID
	id = in.Lazy(name, func() TypeID {
		calls++
		return in.Builtins().String
	})
	r1, ok1 := in.Resolve(id)
	r2, ok2 := in.Resolve(id)
	if !ok1 || !ok2 || r1 != r2 || r1 != in.Builtins().String {
		t.Fatalf("expected memoized resolution to string, got r1=%v ok1=%v r2=%v ok2=%v", r1, ok1, r2, ok2)
	}
	if calls != 1 {
		t.Fatalf("expected resolve callback to run exactly once, got %d", calls)
	}

	var cyclic TypeID
	cyclic = in.Lazy(name, func() TypeID {
		r, _ := in.Resolve(cyclic)
		return r
	})
	if _, ok := in.Resolve(cyclic); ok {
		t.Fatal("expected self-referential lazy resolution to report a cycle")
	}
}

func TestKeyofAndIndexedAccess(t *testing.T) {
	in := NewInterner(nil)
	name := in.Atoms.Intern("x")
	obj := in.Object([]PropertyInfo{{Name: name, Type: in.Builtins().Number}}, nil, nil, nil)

	k := in.Keyof(obj)
	if in.KeyofOperand(k) != obj {
		t.Fatal("expected KeyofOperand to round-trip the operand")
	}

	access := in.IndexedAccess(obj, in.LiteralString("x"))
	info, ok := in.IndexedAccessInfoOf(access)
	if !ok || info.Object != obj {
		t.Fatalf("expected indexed access info to round-trip, got %+v (ok=%v)", info, ok)
	}
}
