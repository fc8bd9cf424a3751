package diag

import "fmt"

// Code is a stable numeric diagnostic identifier. Numbering follows the
// reference TypeScript convention the specification calls for: grammar
// issues live in the 1000s, semantic issues in the 2000s, implicit-any
// issues in the 7000s, and modern-syntax placement issues in the 18000s.
// The numbers themselves (not just the ranges) are part of the checker's
// public contract — editors key quick fixes and suppressions off them.
type Code uint32

const (
	NoCode Code = 0

	// Grammar (1000-series): modifier placement and statement-shape errors
	// the checker itself is responsible for, as opposed to parse errors.
	ForInInitializerNotAllowed Code = 1189
	ForOfInitializerNotAllowed Code = 1190
	AwaitInStaticBlock         Code = 1163

	// Semantic (2000-series).
	CannotFindName                   Code = 2304
	TypeNotAssignable                Code = 2322
	PropertyDoesNotExistOnType       Code = 2339
	VarRedeclarationTypeMismatch     Code = 2403
	HeritageBaseNotConstructor       Code = 2507
	ObjectLiteralUnknownProperty     Code = 2353
	ParameterCountMismatch           Code = 2554
	NoOverlapInConditional           Code = 2367
	ClassCircularBaseExpression      Code = 2506
	CannotExtendInterface            Code = 2689
	PropertyNotDefinitelyAssigned    Code = 2564
	PropertyHasNoInitializer         Code = 2524
	AccessorTypeMismatch             Code = 2380
	VariableUsedBeforeAssignment     Code = 2454
	NotAllConstituentsCallable       Code = 2349
	SwitchNotExhaustive              Code = 2366
	ForInNonObject                   Code = 2407
	ForOfNonIterable                 Code = 2488
	ForInLoopVarAnnotation           Code = 2404
	ForOfLoopVarAnnotation           Code = 2483
	DuplicateIdentifier              Code = 2300
	TypeInstantiationExcessivelyDeep Code = 2589
	ThisImplicitlyHasTypeAny         Code = 2683
	AbstractMemberNotImplemented     Code = 2515
	OverrideSignatureIncompatible    Code = 2416
	CircularTypeReference            Code = 2456
	ConstAssertionInvalidTarget      Code = 2352
	AssignmentToReadonlyProperty     Code = 2540
	DestructuringLengthMismatch      Code = 2461
	ArgumentNotAssignableToParameter Code = 2345
	ParameterPropertyOutsideCtor     Code = 2369

	// Implicit-any (7000-series): only emitted when noImplicitAny (or a
	// cousin option) is set.
	ImplicitAny                Code = 7005
	ComputedPropertyImplicitAny Code = 7053
	ImplicitAnyCircularInit     Code = 7022
	ImplicitAnyCircularInitVar  Code = 7023
	UnreachableCode             Code = 7027
	UnusedLabel                 Code = 7028
	NotAllPathsReturnAValue     Code = 7030

	// Modern-syntax (18000-series).
	AwaitExpressionOnlyAllowedInAsync Code = 18037
)

func (c Code) String() string {
	if c == NoCode {
		return "TS0000"
	}
	return fmt.Sprintf("TS%04d", uint32(c))
}
