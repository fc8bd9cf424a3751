// Package flow computes the type of a variable reference at a particular
// point in its containing function by walking the flow graph backward from
// that point, applying narrowing at each condition/switch antecedent and
// substituting the declared (possibly widened) type at each assignment.
package flow

import "tschecker/internal/types"

// WidenForDeclaration applies the assigned-type widening rule a `let`/`var`
// binding's initializer or subsequent assignment gets before becoming that
// binding's type at this point in the flow graph: literal types widen to
// their primitive, and an object literal's freshness (used only for
// excess-property checking at the assignment site itself) does not persist
// into the flow-narrowed type. A `const` binding keeps the literal type
// exactly as written, since it can never be reassigned to something wider.
func WidenForDeclaration(in *types.Interner, isConst bool, assigned types.TypeID) types.TypeID {
	if isConst {
		return assigned
	}
	b := in.Builtins()
	switch in.KindOf(assigned) {
	case types.KindLiteralString:
		return b.String
	case types.KindLiteralNumber:
		return b.Number
	case types.KindLiteralBoolean:
		return b.Boolean
	case types.KindLiteralBigInt:
		return b.BigInt
	}
	if in.IsFresh(assigned) {
		return in.Unwrap(assigned)
	}
	return assigned
}

// EvolvingArray tracks the element types an implicitly-typed `let x = []`
// binding accumulates as the flow analyzer walks forward through pushes
// before the binding escapes its declaring scope (at which point the union
// of pushed element types becomes its fixed type, per the "evolving any[]"
// rule). Array literal form and direct-index assignment both widen it the
// same way a push would.
type EvolvingArray struct {
	elements []types.TypeID
}

// NewEvolvingArray starts tracking an empty evolving array.
func NewEvolvingArray() *EvolvingArray { return &EvolvingArray{} }

// Push records one more element type flowing into the array.
func (e *EvolvingArray) Push(t types.TypeID) { e.elements = append(e.elements, t) }

// Resolve produces the fixed array type once the evolving array stops
// evolving (control leaves the scope that could still push to it, or it is
// read from a nested function). An evolving array with no pushes at all
// resolves to any[], matching an empty-literal binding that is never
// written to.
func (e *EvolvingArray) Resolve(in *types.Interner) types.TypeID {
	if len(e.elements) == 0 {
		return in.Array(in.Builtins().Any)
	}
	return in.Array(in.Union(e.elements...))
}
