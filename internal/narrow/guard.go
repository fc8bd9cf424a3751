// Package narrow implements the type-guard algebra: given a guard
// expression and a branch sense (the condition held, or its negation did),
// compute how a type narrows. The flow analyzer in internal/flow supplies
// the reference's pre-guard type and consumes the narrowed result; this
// package has no notion of control flow itself; it only answers "given this
// guard and this starting type, what type results".
package narrow

import (
	"tschecker/internal/source"
	"tschecker/internal/types"
)

// GuardKind classifies the syntactic shape of a narrowing guard.
type GuardKind uint8

const (
	GuardInvalid GuardKind = iota
	// GuardTruthy narrows on a bare expression's truthiness (`if (x)`),
	// stripping null/undefined/0/""/false/NaN from the truthy branch and
	// narrowing to exactly those in the falsy branch where the starting
	// type makes that precise (literal 0/"" etc.).
	GuardTruthy
	// GuardTypeof narrows on `typeof x === "..."` (or `!==`).
	GuardTypeof
	// GuardInstanceof narrows on `x instanceof C`.
	GuardInstanceof
	// GuardIn narrows on `"prop" in x`.
	GuardIn
	// GuardLiteralEquality narrows on `x === <literal>` (or `!==`, `==`, `!=`).
	GuardLiteralEquality
	// GuardDiscriminant narrows a union of object types on `x.tag === "..."`
	// where tag is a discriminant property (a literal-typed property that
	// differs across every union member).
	GuardDiscriminant
	// GuardUserPredicate narrows on a call to a function whose return type
	// is a type predicate: `function isFoo(x): x is Foo`.
	GuardUserPredicate
	// GuardSwitchExclude narrows on a switch clause's test-literal set in one
	// pass: Sense true keeps only members matching one of ExcludedLiterals
	// (a matched clause, including a fallthrough run of several case
	// labels sharing a body), Sense false removes every member matching any
	// of them (the "no case matched" clause, the batched equivalent of
	// chaining GuardLiteralEquality's not-equal case once per prior test).
	GuardSwitchExclude
)

// EqualityOp distinguishes the four JS equality operators, since `==`/`!=`
// also narrow out null/undefined together (loose equality to null).
type EqualityOp uint8

const (
	EqStrictEqual EqualityOp = iota
	EqStrictNotEqual
	EqLooseEqual
	EqLooseNotEqual
)

// Guard describes one narrowing test and the branch being evaluated.
// Exactly the fields relevant to Kind are populated; see each Kind's doc.
type Guard struct {
	Kind GuardKind
	// Sense is true for the branch taken when the guard is true (e.g. the
	// `if` body), false for its negation (the `else` body, or after a
	// `continue`/`return` early-exits the true branch).
	Sense bool

	// Subject is the type being narrowed (the reference's pre-guard type).
	Subject types.TypeID

	TypeofTag    string       // "string", "number", "boolean", "bigint", "symbol", "undefined", "object", "function"
	InstanceofOf types.TypeID // constructor's instance type
	PropertyName source.StringID
	EqualityOp   EqualityOp
	LiteralValue types.TypeID // the literal type compared against
	// PropertyPath is the member chain a GuardDiscriminant walks, e.g.
	// `x.shape.kind === "circle"` yields ["shape", "kind"]. Length 1 is the
	// common single-property discriminant (`x.tag === "..."`).
	PropertyPath  []source.StringID
	PredicateType types.TypeID // the asserted type from a user-defined `x is T` predicate
	// ExcludedLiterals is the literal set a GuardSwitchExclude guard tests
	// Subject's members against (see GuardSwitchExclude's doc for Sense).
	ExcludedLiterals []types.TypeID
}

// Result is the outcome of applying a Guard: the narrowed type, plus
// whether narrowing determined the branch is statically unreachable
// (narrowed to never).
type Result struct {
	Type        types.TypeID
	Unreachable bool
}
