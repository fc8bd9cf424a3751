// Package diag defines the diagnostic data model shared by every phase of
// the checker: a Diagnostic (severity, stable numeric Code, message, primary
// span, optional notes), a Reporter interface phases emit through, and a Bag
// that accumulates and sorts diagnostics for one file.
//
// Rendering diagnostics to a terminal, LSP payload, or SARIF document is
// explicitly outside this package — diag only defines the data producers and
// consumers agree on.
package diag
