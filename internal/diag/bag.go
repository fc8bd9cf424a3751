package diag

import "sort"

// Bag collects diagnostics for one check run (typically one source file) and
// knows how to put them into the stable order the specification requires:
// by (start offset, code) within a file.
type Bag struct {
	items []Diagnostic
}

// NewBag returns an empty Bag.
func NewBag() *Bag { return &Bag{} }

// Add appends a diagnostic.
func (b *Bag) Add(d Diagnostic) { b.items = append(b.items, d) }

// HasErrors reports whether any collected diagnostic has SevError severity.
func (b *Bag) HasErrors() bool {
	for _, d := range b.items {
		if d.Severity == SevError {
			return true
		}
	}
	return false
}

// Len returns the number of collected diagnostics.
func (b *Bag) Len() int { return len(b.items) }

// Items returns the diagnostics in insertion order. Callers must not mutate
// the returned slice.
func (b *Bag) Items() []Diagnostic { return b.items }

// Sort orders diagnostics by (file, start, end, code), matching the
// specification's invariant that diagnostics for a file are emitted in
// non-decreasing (start, code) order.
func (b *Bag) Sort() {
	sort.SliceStable(b.items, func(i, j int) bool {
		di, dj := b.items[i], b.items[j]
		if di.Primary.File != dj.Primary.File {
			return di.Primary.File < dj.Primary.File
		}
		if di.Primary.Start != dj.Primary.Start {
			return di.Primary.Start < dj.Primary.Start
		}
		if di.Primary.End != dj.Primary.End {
			return di.Primary.End < dj.Primary.End
		}
		return di.Code < dj.Code
	})
}

// Merge appends another bag's diagnostics (used when a multi-file driver
// combines per-worker bags into one report).
func (b *Bag) Merge(other *Bag) {
	if other == nil {
		return
	}
	b.items = append(b.items, other.items...)
}
