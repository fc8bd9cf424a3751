package check

import (
	"tschecker/internal/assign"
	"tschecker/internal/ast"
	"tschecker/internal/symbols"
	"tschecker/internal/types"
)

// typeOfCall resolves the callee's signature and checks each argument
// against the corresponding parameter, reporting TS2554 on an arity
// mismatch and TS2345 per incompatible argument.
func (c *Checker) typeOfCall(n *ast.Node, scope symbols.ScopeID) types.TypeID {
	b := c.Types.Builtins()
	calleeType := c.TypeOfExpr(n.Left, scope)
	resolved := c.Types.Unwrap(calleeType)

	if resolved == b.Any || resolved == b.Unknown {
		for _, a := range n.Children {
			c.TypeOfExpr(a, scope)
		}
		return b.Any
	}

	sig, ok := c.signatureOf(resolved)
	if !ok {
		for _, a := range n.Children {
			c.TypeOfExpr(a, scope)
		}
		return b.Any
	}

	required := 0
	for _, p := range sig.Params {
		if !p.Optional && !p.Rest {
			required++
		}
	}
	hasRest := len(sig.Params) > 0 && sig.Params[len(sig.Params)-1].Rest
	if len(n.Children) < required || (!hasRest && len(n.Children) > len(sig.Params)) {
		c.report(callSignatureMismatch(n, len(sig.Params), len(n.Children)))
	}

	for i, argIdx := range n.Children {
		argType := c.TypeOfExpr(argIdx, scope)
		param, ok := paramAt(sig.Params, i)
		if !ok {
			continue
		}
		if !assign.IsAssignable(c.Types, argType, param.Type) {
			argNode := c.node(argIdx)
			span := n.Span
			if argNode != nil {
				span = argNode.Span
			}
			c.report(callArgMismatch(span, i+1))
		}
	}

	return sig.ReturnType
}

// typeOfEvolvingPush special-cases `ident.push(...)` against ident's
// evolving array, if any: pushing one more element type must not itself
// count as the freezing read that ends evolution. Every other call shape
// returns ok=false and falls through to the normal typeOfCall path.
func (c *Checker) typeOfEvolvingPush(n *ast.Node, scope symbols.ScopeID) (types.TypeID, bool) {
	callee := c.node(n.Left)
	if callee == nil || callee.Kind != ast.ExprMember || c.nameOf(callee.Name) != "push" {
		return types.NoTypeID, false
	}
	obj := c.node(callee.Left)
	if obj == nil || obj.Kind != ast.ExprIdent {
		return types.NoTypeID, false
	}
	sym, _ := c.Symbols.Lookup(scope, obj.Name)
	if !sym.IsValid() {
		return types.NoTypeID, false
	}
	ea, ok := c.evolvingArrays[sym]
	if !ok {
		return types.NoTypeID, false
	}
	for _, a := range n.Children {
		ea.Push(c.TypeOfExpr(a, scope))
	}
	return c.Types.Builtins().Number, true
}

func (c *Checker) signatureOf(t types.TypeID) (types.Signature, bool) {
	if sig, ok := c.Types.SignatureOf(t); ok {
		return sig, true
	}
	if info, ok := c.Types.ObjectInfoOf(t); ok && len(info.CallSignatures) > 0 {
		return c.Types.SignatureOf(info.CallSignatures[0])
	}
	return types.Signature{}, false
}

func paramAt(params []types.ParamInfo, i int) (types.ParamInfo, bool) {
	if len(params) == 0 {
		return types.ParamInfo{}, false
	}
	if i < len(params) {
		p := params[i]
		if p.Rest {
			return types.ParamInfo{Type: p.Type}, true
		}
		return p, true
	}
	last := params[len(params)-1]
	if last.Rest {
		return types.ParamInfo{Type: last.Type}, true
	}
	return types.ParamInfo{}, false
}
