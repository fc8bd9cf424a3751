package ast

import "tschecker/internal/source"

// Builder constructs nodes in an Arena. It is the only way to populate an
// Arena outside of tests that poke at nodes directly; every constructor
// below mirrors one Kind and documents which generic fields it fills.
type Builder struct {
	Arena *Arena
}

// NewBuilder returns a Builder over a freshly allocated Arena.
func NewBuilder(capHint int) *Builder {
	return &Builder{Arena: NewArena(capHint)}
}

func (b *Builder) node(n Node) NodeIndex { return b.Arena.alloc(n) }

// --- Expressions -----------------------------------------------------------

func (b *Builder) NewIdent(span source.Span, name source.StringID) NodeIndex {
	return b.node(Node{Kind: ExprIdent, Span: span, Name: name})
}

func (b *Builder) NewThis(span source.Span) NodeIndex {
	return b.node(Node{Kind: ExprThis, Span: span})
}

func (b *Builder) NewLiteralString(span source.Span, value string) NodeIndex {
	return b.node(Node{Kind: ExprLitString, Span: span, StrVal: value})
}

func (b *Builder) NewLiteralNumber(span source.Span, value float64) NodeIndex {
	return b.node(Node{Kind: ExprLitNumber, Span: span, NumVal: value})
}

func (b *Builder) NewLiteralBigInt(span source.Span, digits string) NodeIndex {
	return b.node(Node{Kind: ExprLitBigInt, Span: span, StrVal: digits})
}

func (b *Builder) NewLiteralBoolean(span source.Span, value bool) NodeIndex {
	var flags NodeFlags
	if value {
		flags = FlagConst
	}
	return b.node(Node{Kind: ExprLitBoolean, Span: span, Flags: flags})
}

func (b *Builder) NewLiteralNull(span source.Span) NodeIndex {
	return b.node(Node{Kind: ExprLitNull, Span: span})
}

func (b *Builder) NewLiteralUndefined(span source.Span) NodeIndex {
	return b.node(Node{Kind: ExprLitUndefined, Span: span})
}

func (b *Builder) NewArrayLit(span source.Span, elements []NodeIndex) NodeIndex {
	return b.node(Node{Kind: ExprArrayLit, Span: span, Children: elements})
}

func (b *Builder) NewObjectLit(span source.Span, props []NodeIndex) NodeIndex {
	return b.node(Node{Kind: ExprObjectLit, Span: span, Children: props})
}

// NewObjectProp builds `key: value` (or `key` for shorthand). computedKey is
// NoNodeIndex for a plain identifier/string key, in which case name holds it.
func (b *Builder) NewObjectProp(span source.Span, name source.StringID, computedKey, value NodeIndex, shorthand bool) NodeIndex {
	flags := NodeFlags(0)
	if shorthand {
		flags |= FlagShorthand
	}
	if computedKey.IsValid() {
		flags |= FlagComputed
	}
	return b.node(Node{Kind: ExprObjectProp, Span: span, Name: name, Right: computedKey, Left: value, Flags: flags})
}

func (b *Builder) NewSpread(span source.Span, inner NodeIndex) NodeIndex {
	return b.node(Node{Kind: ExprSpread, Span: span, Left: inner})
}

func (b *Builder) NewTemplateLiteral(span source.Span, quasis string, exprs []NodeIndex) NodeIndex {
	return b.node(Node{Kind: ExprTemplate, Span: span, StrVal: quasis, Children: exprs})
}

// NewFunctionExpr builds a function or arrow expression. params and typeParams
// are Param/TypeParam node lists; body is a StmtBlock, or a single expression
// node for a concise-body arrow (callers distinguish via FlagAsync's sibling
// bit on the body node itself if needed).
func (b *Builder) NewFunctionExpr(span source.Span, name source.StringID, params []NodeIndex, returnType, body NodeIndex, async, generator bool) NodeIndex {
	flags := NodeFlags(0)
	if async {
		flags |= FlagAsync
	}
	if generator {
		flags |= FlagGenerator
	}
	return b.node(Node{Kind: ExprFunction, Span: span, Name: name, Children: params, TypeAnn: returnType, Right: body, Flags: flags})
}

func (b *Builder) NewCall(span source.Span, callee NodeIndex, args []NodeIndex) NodeIndex {
	return b.node(Node{Kind: ExprCall, Span: span, Left: callee, Children: args})
}

func (b *Builder) NewNew(span source.Span, callee NodeIndex, args []NodeIndex) NodeIndex {
	return b.node(Node{Kind: ExprNew, Span: span, Left: callee, Children: args})
}

func (b *Builder) NewMember(span source.Span, object NodeIndex, property source.StringID) NodeIndex {
	return b.node(Node{Kind: ExprMember, Span: span, Left: object, Name: property})
}

func (b *Builder) NewIndex(span source.Span, object, index NodeIndex) NodeIndex {
	return b.node(Node{Kind: ExprIndex, Span: span, Left: object, Right: index})
}

func (b *Builder) NewUnary(span source.Span, op Operator, operand NodeIndex) NodeIndex {
	return b.node(Node{Kind: ExprUnary, Span: span, Op: op, Left: operand})
}

func (b *Builder) NewUpdate(span source.Span, op Operator, operand NodeIndex, prefix bool) NodeIndex {
	flags := NodeFlags(0)
	if prefix {
		flags |= FlagPrefix
	}
	return b.node(Node{Kind: ExprUpdate, Span: span, Op: op, Left: operand, Flags: flags})
}

func (b *Builder) NewBinary(span source.Span, op Operator, left, right NodeIndex) NodeIndex {
	return b.node(Node{Kind: ExprBinary, Span: span, Op: op, Left: left, Right: right})
}

func (b *Builder) NewLogical(span source.Span, op Operator, left, right NodeIndex) NodeIndex {
	return b.node(Node{Kind: ExprLogical, Span: span, Op: op, Left: left, Right: right})
}

func (b *Builder) NewAssign(span source.Span, op Operator, target, value NodeIndex) NodeIndex {
	return b.node(Node{Kind: ExprAssign, Span: span, Op: op, Left: target, Right: value})
}

func (b *Builder) NewConditional(span source.Span, test, conseq, alt NodeIndex) NodeIndex {
	return b.node(Node{Kind: ExprConditional, Span: span, Left: test, Right: conseq, Extra: alt})
}

func (b *Builder) NewAs(span source.Span, expr, targetType NodeIndex, constAssertion bool) NodeIndex {
	flags := NodeFlags(0)
	if constAssertion {
		flags |= FlagConstAssertion
	}
	return b.node(Node{Kind: ExprAs, Span: span, Left: expr, TypeAnn: targetType, Flags: flags})
}

func (b *Builder) NewNonNull(span source.Span, expr NodeIndex) NodeIndex {
	return b.node(Node{Kind: ExprNonNull, Span: span, Left: expr})
}

func (b *Builder) NewSequence(span source.Span, exprs []NodeIndex) NodeIndex {
	return b.node(Node{Kind: ExprSequence, Span: span, Children: exprs})
}

// --- Binding patterns --------------------------------------------------------

func (b *Builder) NewArrayPattern(span source.Span, elements []NodeIndex) NodeIndex {
	return b.node(Node{Kind: PatArray, Span: span, Children: elements})
}

func (b *Builder) NewObjectPattern(span source.Span, props []NodeIndex) NodeIndex {
	return b.node(Node{Kind: PatObject, Span: span, Children: props})
}

func (b *Builder) NewObjectPatternProp(span source.Span, name source.StringID, computedKey, value NodeIndex, shorthand bool) NodeIndex {
	flags := NodeFlags(0)
	if shorthand {
		flags |= FlagShorthand
	}
	return b.node(Node{Kind: PatObjectProp, Span: span, Name: name, Right: computedKey, Left: value, Flags: flags})
}

func (b *Builder) NewRestElement(span source.Span, inner NodeIndex) NodeIndex {
	return b.node(Node{Kind: PatRest, Span: span, Left: inner})
}

func (b *Builder) NewAssignPattern(span source.Span, pattern, defaultValue NodeIndex) NodeIndex {
	return b.node(Node{Kind: PatDefault, Span: span, Left: pattern, Right: defaultValue})
}

// --- Statements --------------------------------------------------------------

func (b *Builder) NewBlock(span source.Span, stmts []NodeIndex) NodeIndex {
	return b.node(Node{Kind: StmtBlock, Span: span, Children: stmts})
}

func (b *Builder) NewEmptyStmt(span source.Span) NodeIndex {
	return b.node(Node{Kind: StmtEmpty, Span: span})
}

func (b *Builder) NewExprStmt(span source.Span, expr NodeIndex) NodeIndex {
	return b.node(Node{Kind: StmtExpr, Span: span, Left: expr})
}

// DeclKind distinguishes var/let/const for declaration-shaped nodes.
type DeclKind uint8

const (
	DeclVar DeclKind = iota
	DeclLet
	DeclConst
)

func declFlags(k DeclKind) NodeFlags {
	switch k {
	case DeclConst:
		return FlagConst
	case DeclLet:
		return FlagLet
	default:
		return FlagVarLegacy
	}
}

func (b *Builder) NewVarDecl(span source.Span, kind DeclKind, binding, typeAnn, init NodeIndex) NodeIndex {
	return b.node(Node{Kind: StmtVarDecl, Span: span, Left: binding, TypeAnn: typeAnn, Right: init, Flags: declFlags(kind)})
}

func (b *Builder) NewIf(span source.Span, cond, then, els NodeIndex) NodeIndex {
	return b.node(Node{Kind: StmtIf, Span: span, Left: cond, Right: then, Extra: els})
}

func (b *Builder) NewFor(span source.Span, init, cond, post, body NodeIndex) NodeIndex {
	return b.node(Node{Kind: StmtFor, Span: span, Left: init, Right: cond, Extra: post, D: body})
}

func (b *Builder) NewForIn(span source.Span, kind DeclKind, declared bool, binding, object, body NodeIndex) NodeIndex {
	flags := NodeFlags(0)
	if declared {
		flags = declFlags(kind)
	}
	return b.node(Node{Kind: StmtForIn, Span: span, Left: binding, Right: object, D: body, Flags: flags})
}

func (b *Builder) NewForOf(span source.Span, kind DeclKind, declared, await bool, binding, iterable, body NodeIndex) NodeIndex {
	flags := NodeFlags(0)
	if declared {
		flags = declFlags(kind)
	}
	if await {
		flags |= FlagAwait
	}
	return b.node(Node{Kind: StmtForOf, Span: span, Left: binding, Right: iterable, D: body, Flags: flags})
}

func (b *Builder) NewWhile(span source.Span, cond, body NodeIndex) NodeIndex {
	return b.node(Node{Kind: StmtWhile, Span: span, Left: cond, Right: body})
}

func (b *Builder) NewDoWhile(span source.Span, body, cond NodeIndex) NodeIndex {
	return b.node(Node{Kind: StmtDoWhile, Span: span, Left: body, Right: cond})
}

func (b *Builder) NewSwitch(span source.Span, discriminant NodeIndex, cases []NodeIndex) NodeIndex {
	return b.node(Node{Kind: StmtSwitch, Span: span, Left: discriminant, Children: cases})
}

// NewCase builds a switch case/default clause. test is NoNodeIndex for default.
func (b *Builder) NewCase(span source.Span, test NodeIndex, body []NodeIndex) NodeIndex {
	return b.node(Node{Kind: StmtSwitchCase, Span: span, Left: test, Children: body})
}

func (b *Builder) NewReturn(span source.Span, argument NodeIndex) NodeIndex {
	return b.node(Node{Kind: StmtReturn, Span: span, Left: argument})
}

func (b *Builder) NewThrow(span source.Span, argument NodeIndex) NodeIndex {
	return b.node(Node{Kind: StmtThrow, Span: span, Left: argument})
}

func (b *Builder) NewBreak(span source.Span, label source.StringID) NodeIndex {
	return b.node(Node{Kind: StmtBreak, Span: span, Name: label})
}

func (b *Builder) NewContinue(span source.Span, label source.StringID) NodeIndex {
	return b.node(Node{Kind: StmtContinue, Span: span, Name: label})
}

func (b *Builder) NewLabeled(span source.Span, label source.StringID, body NodeIndex) NodeIndex {
	return b.node(Node{Kind: StmtLabeled, Span: span, Name: label, Left: body})
}

func (b *Builder) NewTry(span source.Span, tryBlock, catchClause, finallyBlock NodeIndex) NodeIndex {
	return b.node(Node{Kind: StmtTry, Span: span, Left: tryBlock, Right: catchClause, Extra: finallyBlock})
}

func (b *Builder) NewCatchClause(span source.Span, param, paramType, block NodeIndex) NodeIndex {
	return b.node(Node{Kind: StmtCatchClause, Span: span, Left: param, TypeAnn: paramType, Right: block})
}

func (b *Builder) NewFunctionDecl(span source.Span, name source.StringID, params []NodeIndex, returnType, body NodeIndex, async, generator bool) NodeIndex {
	flags := NodeFlags(0)
	if async {
		flags |= FlagAsync
	}
	if generator {
		flags |= FlagGenerator
	}
	return b.node(Node{Kind: StmtFunctionDecl, Span: span, Name: name, Children: params, TypeAnn: returnType, Right: body, Flags: flags})
}

func (b *Builder) NewClassDecl(span source.Span, name source.StringID, superclass NodeIndex, members []NodeIndex) NodeIndex {
	return b.node(Node{Kind: StmtClassDecl, Span: span, Name: name, Left: superclass, Children: members})
}

// --- Class members -----------------------------------------------------------

func (b *Builder) NewClassProperty(span source.Span, name source.StringID, typeAnn, init NodeIndex, static, readonly, optional, definite bool) NodeIndex {
	var flags NodeFlags
	if static {
		flags |= FlagStatic
	}
	if readonly {
		flags |= FlagReadonly
	}
	if optional {
		flags |= FlagOptional
	}
	if definite {
		flags |= FlagDefiniteAssignment
	}
	return b.node(Node{Kind: ClassProperty, Span: span, Name: name, TypeAnn: typeAnn, Right: init, Flags: flags})
}

// MethodKind distinguishes plain methods from accessors and constructors.
type MethodKind uint8

const (
	MethodPlain MethodKind = iota
	MethodGetter
	MethodSetter
	MethodConstructor
)

func (b *Builder) NewClassMethod(span source.Span, name source.StringID, kind MethodKind, params []NodeIndex, returnType, body NodeIndex, static, async, generator, abstract, override bool) NodeIndex {
	var flags NodeFlags
	switch kind {
	case MethodGetter:
		flags |= FlagGetter
	case MethodSetter:
		flags |= FlagSetter
	case MethodConstructor:
		flags |= FlagConstructor
	}
	if static {
		flags |= FlagStatic
	}
	if async {
		flags |= FlagAsync
	}
	if generator {
		flags |= FlagGenerator
	}
	if abstract {
		flags |= FlagAbstract
	}
	if override {
		flags |= FlagOverride
	}
	return b.node(Node{Kind: ClassMethod, Span: span, Name: name, Children: params, TypeAnn: returnType, Right: body, Flags: flags})
}

func (b *Builder) NewClassStaticBlock(span source.Span, body NodeIndex) NodeIndex {
	return b.node(Node{Kind: ClassStaticBlock, Span: span, Right: body})
}

// --- Function parameters ------------------------------------------------------

func (b *Builder) NewParam(span source.Span, binding, typeAnn, defaultValue NodeIndex, optional, rest, paramProperty bool) NodeIndex {
	var flags NodeFlags
	if optional {
		flags |= FlagOptional
	}
	if rest {
		flags |= FlagRest
	}
	if paramProperty {
		flags |= FlagParamProperty
	}
	return b.node(Node{Kind: Param, Span: span, Left: binding, TypeAnn: typeAnn, Right: defaultValue, Flags: flags})
}

// --- Type syntax ---------------------------------------------------------------

func (b *Builder) NewTypeRef(span source.Span, name source.StringID, typeArgs []NodeIndex) NodeIndex {
	return b.node(Node{Kind: TypeRef, Span: span, Name: name, Children: typeArgs})
}

func (b *Builder) NewUnionType(span source.Span, members []NodeIndex) NodeIndex {
	return b.node(Node{Kind: TypeUnion, Span: span, Children: members})
}

func (b *Builder) NewIntersectionType(span source.Span, members []NodeIndex) NodeIndex {
	return b.node(Node{Kind: TypeIntersection, Span: span, Children: members})
}

func (b *Builder) NewArrayType(span source.Span, elem NodeIndex) NodeIndex {
	return b.node(Node{Kind: TypeArrayOf, Span: span, Left: elem})
}

func (b *Builder) NewTupleType(span source.Span, elems []NodeIndex) NodeIndex {
	return b.node(Node{Kind: TypeTuple, Span: span, Children: elems})
}

func (b *Builder) NewTupleElement(span source.Span, typ NodeIndex, label source.StringID, optional, rest bool) NodeIndex {
	var flags NodeFlags
	if optional {
		flags |= FlagOptional
	}
	if rest {
		flags |= FlagRest
	}
	return b.node(Node{Kind: TypeTupleElement, Span: span, Left: typ, Name: label, Flags: flags})
}

func (b *Builder) NewFunctionType(span source.Span, params []NodeIndex, returnType NodeIndex, isConstructorType bool) NodeIndex {
	var flags NodeFlags
	if isConstructorType {
		flags |= FlagConstructor
	}
	return b.node(Node{Kind: TypeFunctionOf, Span: span, Children: params, TypeAnn: returnType, Flags: flags})
}

func (b *Builder) NewLiteralStringType(span source.Span, value string) NodeIndex {
	return b.node(Node{Kind: TypeLiteral, Span: span, StrVal: value})
}

func (b *Builder) NewLiteralNumberType(span source.Span, value float64) NodeIndex {
	return b.node(Node{Kind: TypeLiteral, Span: span, NumVal: value, Flags: FlagConst})
}

func (b *Builder) NewLiteralBooleanType(span source.Span, value bool) NodeIndex {
	flags := FlagOptional
	if value {
		flags |= FlagConst
	}
	return b.node(Node{Kind: TypeLiteral, Span: span, Flags: flags})
}

func (b *Builder) NewKeyofType(span source.Span, operand NodeIndex) NodeIndex {
	return b.node(Node{Kind: TypeKeyof, Span: span, Left: operand})
}

func (b *Builder) NewIndexedAccessType(span source.Span, object, index NodeIndex) NodeIndex {
	return b.node(Node{Kind: TypeIndexedAccess, Span: span, Left: object, Right: index})
}

func (b *Builder) NewObjectType(span source.Span, members []NodeIndex) NodeIndex {
	return b.node(Node{Kind: TypeObjectLit, Span: span, Children: members})
}

func (b *Builder) NewObjectTypeMember(span source.Span, name source.StringID, typeAnn NodeIndex, optional, readonly bool) NodeIndex {
	var flags NodeFlags
	if optional {
		flags |= FlagOptional
	}
	if readonly {
		flags |= FlagReadonly
	}
	return b.node(Node{Kind: TypeObjectMember, Span: span, Name: name, TypeAnn: typeAnn, Flags: flags})
}

func (b *Builder) NewIndexSignature(span source.Span, keyType, valueType NodeIndex, readonly bool) NodeIndex {
	var flags NodeFlags
	if readonly {
		flags |= FlagReadonly
	}
	return b.node(Node{Kind: TypeIndexSignature, Span: span, Left: keyType, Right: valueType, Flags: flags})
}

func (b *Builder) NewConditionalType(span source.Span, check, extends, trueBranch, falseBranch NodeIndex) NodeIndex {
	return b.node(Node{Kind: TypeConditional, Span: span, Left: check, Right: extends, Extra: trueBranch, D: falseBranch})
}

func (b *Builder) NewMappedType(span source.Span, paramName source.StringID, constraint, template NodeIndex, optionalMod, readonlyMod NodeFlags) NodeIndex {
	return b.node(Node{Kind: TypeMapped, Span: span, Name: paramName, Left: constraint, Right: template, Flags: optionalMod | readonlyMod})
}

func (b *Builder) NewTypeParam(span source.Span, name source.StringID, constraint, defaultType NodeIndex) NodeIndex {
	return b.node(Node{Kind: TypeParam, Span: span, Name: name, Left: constraint, Right: defaultType})
}

func (b *Builder) NewTypePredicate(span source.Span, paramName source.StringID, assertedType NodeIndex, asserts bool) NodeIndex {
	var flags NodeFlags
	if asserts {
		flags |= FlagAsserts
	}
	return b.node(Node{Kind: TypePredicate, Span: span, Name: paramName, TypeAnn: assertedType, Flags: flags})
}
