package diagfmt

import (
	"bytes"
	"testing"

	"github.com/google/go-cmp/cmp"

	"tschecker/internal/diag"
	"tschecker/internal/source"
)

type severityTally struct{ Errors, Warnings int }

func TestCountsTalliesBySeverity(t *testing.T) {
	_, id := buildFixture(t)
	bag := diag.NewBag()
	bag.Add(diag.Error(diag.CannotFindName, source.Span{File: id, Start: 4, End: 5}, "Cannot find name 'x'."))
	bag.Add(diag.Error(diag.DuplicateIdentifier, source.Span{File: id, Start: 0, End: 3}, "Duplicate identifier 'x'."))
	bag.Add(diag.Warning(diag.UnreachableCode, source.Span{File: id, Start: 10, End: 16}, "Unreachable code detected."))

	errors, warnings := Counts(bag)
	want := severityTally{Errors: 2, Warnings: 1}
	got := severityTally{Errors: errors, Warnings: warnings}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("Counts mismatch (-want +got):\n%s", diff)
	}
}

func TestSummaryPluralizesSingularCounts(t *testing.T) {
	_, id := buildFixture(t)
	bagOne := diag.NewBag()
	bagOne.Add(diag.Error(diag.CannotFindName, source.Span{File: id, Start: 4, End: 5}, "Cannot find name 'x'."))

	var buf bytes.Buffer
	Summary(&buf, []*diag.Bag{bagOne})
	if got := buf.String(); got != "1 error, 0 warnings.\n" {
		t.Fatalf("expected singular error wording, got %q", got)
	}
}

func TestSummaryPluralizesPluralCounts(t *testing.T) {
	_, id := buildFixture(t)
	bag := diag.NewBag()
	bag.Add(diag.Error(diag.CannotFindName, source.Span{File: id, Start: 4, End: 5}, "Cannot find name 'x'."))
	bag.Add(diag.Error(diag.DuplicateIdentifier, source.Span{File: id, Start: 0, End: 3}, "Duplicate identifier 'x'."))
	bag.Add(diag.Warning(diag.UnreachableCode, source.Span{File: id, Start: 10, End: 16}, "Unreachable code detected."))
	bag.Add(diag.Warning(diag.UnreachableCode, source.Span{File: id, Start: 20, End: 26}, "Unreachable code detected."))

	var buf bytes.Buffer
	Summary(&buf, []*diag.Bag{bag})
	if got := buf.String(); got != "2 errors, 2 warnings.\n" {
		t.Fatalf("expected plural wording, got %q", got)
	}
}

func TestSummaryReportsNoDiagnostics(t *testing.T) {
	var buf bytes.Buffer
	Summary(&buf, []*diag.Bag{diag.NewBag()})
	if got := buf.String(); got != "no diagnostics.\n" {
		t.Fatalf("expected the empty-run message, got %q", got)
	}
}
