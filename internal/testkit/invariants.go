// Package testkit holds invariant-checking helpers shared across the
// checker's test suites, so each package's tests assert the same
// structural properties the specification calls out rather than
// re-deriving ad hoc checks per package.
package testkit

import (
	"fmt"

	"tschecker/internal/ast"
	"tschecker/internal/diag"
	"tschecker/internal/source"
)

// CheckSpanInvariants walks every node reachable from root and verifies
// that its span is non-empty and fully contained within root's span. This
// is the structural sanity check a hand-built AST must satisfy before any
// checker logic can trust span-based diagnostics.
func CheckSpanInvariants(a *ast.Arena, root ast.NodeIndex) error {
	if a == nil {
		return fmt.Errorf("testkit: nil arena")
	}
	n := a.Get(root)
	if n == nil {
		return fmt.Errorf("testkit: node %d not found", root)
	}
	if n.Span.End < n.Span.Start {
		return fmt.Errorf("testkit: node %d has inverted span %v", root, n.Span)
	}

	var walkErr error
	ast.Walk(a, root, func(child ast.NodeIndex) bool {
		if walkErr != nil {
			return false
		}
		cn := a.Get(child)
		if cn == nil {
			walkErr = fmt.Errorf("testkit: child node %d not found", child)
			return false
		}
		if cn.Span.End < cn.Span.Start {
			walkErr = fmt.Errorf("testkit: node %d has inverted span %v", child, cn.Span)
			return false
		}
		if !contains(n.Span, cn.Span) {
			walkErr = fmt.Errorf("testkit: child span %v of node %d escapes parent span %v of node %d",
				cn.Span, child, n.Span, root)
			return false
		}
		return true
	})
	return walkErr
}

func contains(outer, inner source.Span) bool {
	if outer.File != inner.File {
		return false
	}
	return inner.Start >= outer.Start && inner.End <= outer.End
}

// CheckDiagnosticOrder verifies the ordering invariant spec.md §8 invariant
// 9 requires: diagnostics for a file are emitted in non-decreasing
// (start, code) order. Callers should call Bag.Sort() before relying on
// this in production; this helper exists so tests can assert that Sort
// actually establishes the order it promises.
func CheckDiagnosticOrder(items []diag.Diagnostic) error {
	for i := 1; i < len(items); i++ {
		prev, cur := items[i-1], items[i]
		if prev.Primary.File != cur.Primary.File {
			continue
		}
		if cur.Primary.Start < prev.Primary.Start {
			return fmt.Errorf("testkit: diagnostic %d (start=%d) precedes diagnostic %d (start=%d) out of order",
				i, cur.Primary.Start, i-1, prev.Primary.Start)
		}
		if cur.Primary.Start == prev.Primary.Start && cur.Code < prev.Code {
			return fmt.Errorf("testkit: diagnostic %d (code=%v) precedes diagnostic %d (code=%v) at the same offset out of order",
				i, cur.Code, i-1, prev.Code)
		}
	}
	return nil
}
