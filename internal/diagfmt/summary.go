package diagfmt

import (
	"fmt"
	"io"

	"golang.org/x/text/feature/plural"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"tschecker/internal/diag"
)

func init() {
	if err := message.Set(language.English, "%d error(s)",
		plural.Selectf(1, "%d",
			plural.One, "1 error",
			plural.Other, "%[1]d errors",
		),
	); err != nil {
		panic(err)
	}
	if err := message.Set(language.English, "%d warning(s)",
		plural.Selectf(1, "%d",
			plural.One, "1 warning",
			plural.Other, "%[1]d warnings",
		),
	); err != nil {
		panic(err)
	}
}

var summaryPrinter = message.NewPrinter(language.English)

// Counts tallies a Bag's diagnostics by severity.
func Counts(bag *diag.Bag) (errors, warnings int) {
	if bag == nil {
		return 0, 0
	}
	for _, d := range bag.Items() {
		switch d.Severity {
		case diag.SevError:
			errors++
		case diag.SevWarning:
			warnings++
		}
	}
	return errors, warnings
}

// Summary writes a correctly-pluralized "N error(s), M warning(s)." line
// across every bag in bags combined, the way a CLI's final status line
// reports a whole run rather than one file at a time.
func Summary(w io.Writer, bags []*diag.Bag) {
	var errors, warnings int
	for _, bag := range bags {
		e, wn := Counts(bag)
		errors += e
		warnings += wn
	}
	if errors == 0 && warnings == 0 {
		io.WriteString(w, "no diagnostics.\n")
		return
	}
	errStr := summaryPrinter.Sprintf("%d error(s)", errors)
	warnStr := summaryPrinter.Sprintf("%d warning(s)", warnings)
	fmt.Fprintf(w, "%s, %s.\n", errStr, warnStr)
}
