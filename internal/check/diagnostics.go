package check

import (
	"fmt"

	"tschecker/internal/ast"
	"tschecker/internal/diag"
	"tschecker/internal/source"
)

func callSignatureMismatch(n *ast.Node, want, got int) diag.Diagnostic {
	return diag.Error(diag.ParameterCountMismatch, n.Span,
		fmt.Sprintf("Expected %d arguments, but got %d.", want, got))
}

func callArgMismatch(span source.Span, position int) diag.Diagnostic {
	return diag.Error(diag.ArgumentNotAssignableToParameter, span,
		fmt.Sprintf("Argument of type is not assignable to parameter %d.", position))
}

func cannotFindName(n *ast.Node, name string) diag.Diagnostic {
	return diag.Error(diag.CannotFindName, n.Span, fmt.Sprintf("Cannot find name '%s'.", name))
}
