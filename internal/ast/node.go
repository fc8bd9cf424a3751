package ast

import "tschecker/internal/source"

// Kind tags every node in the arena. Dispatch on a node is always a switch
// over Kind; there is no runtime polymorphism between node "classes".
type Kind uint16

const (
	KindInvalid Kind = iota

	// Expressions.
	ExprIdent
	ExprThis
	ExprLitString
	ExprLitNumber
	ExprLitBoolean
	ExprLitNull
	ExprLitUndefined
	ExprLitBigInt
	ExprArrayLit
	ExprObjectLit
	ExprObjectProp  // Name/computed key (Right), value (Left), shorthand/spread flags
	ExprSpread      // Left: inner expression
	ExprTemplate    // Children: interpolated expressions; StrVal unused, quasis tracked by caller
	ExprFunction    // function expression/arrow: see FnShape accessors
	ExprCall        // Left: callee, Children: args
	ExprNew         // Left: callee, Children: args
	ExprMember      // Left: object, Name: property (non-computed)
	ExprIndex       // Left: object, Right: index expression (computed member access)
	ExprUnary       // Op, Left: operand
	ExprUpdate      // Op (Inc/Dec), Left: operand, Flags: prefix
	ExprBinary      // Op, Left, Right
	ExprLogical     // Op (&&, ||, ??), Left, Right
	ExprAssign      // Op (=, +=, ...), Left: target, Right: value
	ExprConditional // Left: test, Right: consequent, Extra: alternate
	ExprAs          // Left: expr, TypeAnn: target type, Flags: const-assertion
	ExprNonNull     // Left: expr  (expr!)
	ExprSequence    // Children: comma-separated expressions, value is the last

	// Binding patterns (destructuring targets).
	PatArray      // Children: element patterns (may include holes as NoNodeIndex)
	PatObject     // Children: PatObjectProp nodes
	PatObjectProp // Name/computed key (Right if computed), Left: value pattern, Flags: shorthand
	PatRest       // Left: inner pattern
	PatDefault    // Left: pattern, Right: default value expression

	// Statements.
	StmtBlock        // Children: statements
	StmtExpr         // Left: expression
	StmtVarDecl      // Left: binding pattern, TypeAnn: annotation, Right: initializer, Flags: const/let/var
	StmtIf           // Left: cond, Right: then, Extra: else (optional)
	StmtFor          // Left: init, Right: cond, Extra: post, D: body (each optional except body)
	StmtForIn        // Left: binding, Right: object expr, D: body, Flags: declared-kind
	StmtForOf        // Left: binding, Right: iterable expr, D: body, Flags: declared-kind | await
	StmtWhile        // Left: cond, Right: body
	StmtDoWhile       // Left: body, Right: cond
	StmtSwitch       // Left: discriminant, Children: StmtSwitchCase
	StmtSwitchCase   // Left: test (NoNodeIndex for default), Children: statements
	StmtReturn       // Left: argument (optional)
	StmtThrow        // Left: argument
	StmtBreak        // Name: label (optional)
	StmtContinue     // Name: label (optional)
	StmtLabeled      // Name: label, Left: body
	StmtTry          // Left: try block, Right: catch clause (optional), Extra: finally block (optional)
	StmtCatchClause  // Left: param pattern (optional), TypeAnn: param annotation, Right: block
	StmtFunctionDecl // Name, Children: params, TypeAnn: return type, Right: body, Flags: async/generator
	StmtClassDecl    // Name, Left: superclass expr (optional), Children: members
	StmtEmpty

	// Class members.
	ClassProperty    // Name, TypeAnn, Right: initializer (optional), Flags: static/readonly/optional/definite
	ClassMethod      // Name, Children: params, TypeAnn: return type, Right: body, Flags: static/async/generator/kind/abstract/override
	ClassStaticBlock // Right: block, Flags: async (static blocks may not themselves be async, tracked for nested-context checks)

	// Function pieces.
	Param // Left: binding pattern, TypeAnn, Right: default (optional), Flags: optional/rest/param-property

	// Type syntax (annotations in source; distinct from computed types.TypeID).
	TypeRef          // Name, Children: type arguments
	TypeUnion        // Children: members
	TypeIntersection // Children: members
	TypeArrayOf      // Left: element type
	TypeTuple        // Children: TypeTupleElement
	TypeTupleElement // Left: type, Name: label (optional), Flags: optional/rest
	TypeFunctionOf   // Children: params, TypeAnn: return type, Flags: constructor-type
	TypeLiteral      // StrVal/NumVal/Flags: which literal kind and its value
	TypeKeyof        // Left: operand
	TypeIndexedAccess // Left: object type, Right: index type
	TypeObjectLit    // Children: TypeObjectMember / TypeIndexSignature
	TypeObjectMember // Name, TypeAnn, Flags: optional/readonly
	TypeIndexSignature // Left: key type, Right: value type, Flags: readonly
	TypeConditional  // Left: check, Right: extends, Extra: true-branch, D: false-branch
	TypeMapped       // Name: param name, Left: constraint, Right: template, Flags: optional/readonly modifiers
	TypeParam        // Name, Left: constraint (optional), Right: default (optional)
	TypePredicate    // Name: parameter name ("this" allowed), TypeAnn: asserted type, Flags: asserts
)

// NodeFlags packs small booleans. Meaning is documented per Kind above;
// the same bit is reused across unrelated kinds the way a real compact AST
// node would, to avoid one struct field per boolean.
type NodeFlags uint32

const (
	FlagConst NodeFlags = 1 << iota
	FlagLet
	FlagVarLegacy
	FlagStatic
	FlagReadonly
	FlagOptional
	FlagRest
	FlagAsync
	FlagGenerator
	FlagAbstract
	FlagOverride
	FlagShorthand
	FlagComputed
	FlagConstAssertion
	FlagPrefix
	FlagAsserts
	FlagDefiniteAssignment
	FlagAwait
	FlagParamProperty
	FlagGetter
	FlagSetter
	FlagConstructor
	FlagMappedOptionalPlus
	FlagMappedOptionalMinus
	FlagMappedReadonlyPlus
	FlagMappedReadonlyMinus
)

func (f NodeFlags) Has(bit NodeFlags) bool { return f&bit != 0 }

// Operator enumerates unary/binary/assignment/update operators.
type Operator uint16

const (
	OpNone Operator = iota
	OpAdd
	OpSub
	OpMul
	OpDiv
	OpMod
	OpPow
	OpEq
	OpStrictEq
	OpNotEq
	OpStrictNotEq
	OpLt
	OpLtEq
	OpGt
	OpGtEq
	OpAnd
	OpOr
	OpNullish
	OpBitAnd
	OpBitOr
	OpBitXor
	OpShl
	OpShr
	OpUShr
	OpIn
	OpInstanceof
	OpTypeof
	OpVoid
	OpNot
	OpBitNot
	OpUnaryPlus
	OpUnaryMinus
	OpInc
	OpDec
	OpAssign
	OpAddAssign
	OpSubAssign
	OpMulAssign
	OpDivAssign
	OpModAssign
	OpPowAssign
	OpAndAssign
	OpOrAssign
	OpNullishAssign
	OpBitAndAssign
	OpBitOrAssign
	OpBitXorAssign
	OpShlAssign
	OpShrAssign
	OpUShrAssign
)

// Node is the single concrete node representation for every AST shape; see
// the doc comment on each Kind constant above for what each generic field
// means for that kind.
type Node struct {
	Kind   Kind
	Span   source.Span
	Flags  NodeFlags
	Op     Operator
	Name   source.StringID
	NumVal float64
	StrVal string

	Left, Right, Extra, D NodeIndex
	TypeAnn               NodeIndex
	Children              []NodeIndex
}
