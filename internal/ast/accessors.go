package ast

// IsDeclKind reports whether flags encode one of var/let/const and returns
// which one; ok is false for nodes that never carry a declaration kind.
func (f NodeFlags) DeclKind() (kind DeclKind, ok bool) {
	switch {
	case f.Has(FlagConst):
		return DeclConst, true
	case f.Has(FlagLet):
		return DeclLet, true
	case f.Has(FlagVarLegacy):
		return DeclVar, true
	default:
		return DeclVar, false
	}
}

// Walk calls visit for idx and every descendant reachable through the
// generic operand fields and Children, in a fixed left-to-right order.
// visit returning false stops descent into that node's children.
func Walk(a *Arena, idx NodeIndex, visit func(NodeIndex) bool) {
	if !idx.IsValid() {
		return
	}
	n := a.Get(idx)
	if n == nil || !visit(idx) {
		return
	}
	for _, child := range [...]NodeIndex{n.Left, n.Right, n.Extra, n.D, n.TypeAnn} {
		Walk(a, child, visit)
	}
	for _, child := range n.Children {
		Walk(a, child, visit)
	}
}

// IsExpr reports whether k is one of the expression kinds.
func (k Kind) IsExpr() bool {
	return k >= ExprIdent && k <= ExprSequence
}

// IsStmt reports whether k is one of the statement kinds.
func (k Kind) IsStmt() bool {
	return k >= StmtBlock && k <= StmtEmpty
}

// IsType reports whether k is one of the type-syntax kinds.
func (k Kind) IsType() bool {
	return k >= TypeRef && k <= TypePredicate
}

// IsPattern reports whether k is one of the binding-pattern kinds.
func (k Kind) IsPattern() bool {
	return k >= PatArray && k <= PatDefault
}
