package diag

// Reporter is the minimal contract the checker uses to hand diagnostics to
// whatever is collecting them. Passes never touch a Bag directly; this keeps
// the checker's core decoupled from how diagnostics are ultimately stored or
// rendered.
type Reporter interface {
	Report(d Diagnostic)
}

// BagReporter adapts a Bag to the Reporter interface.
type BagReporter struct{ Bag *Bag }

func (r BagReporter) Report(d Diagnostic) {
	if r.Bag == nil {
		return
	}
	r.Bag.Add(d)
}

// NopReporter discards every diagnostic. Useful for callers that only want
// the computed types (e.g. hover) and not diagnostics.
type NopReporter struct{}

func (NopReporter) Report(Diagnostic) {}
