package diagfmt

import (
	"encoding/json"
	"io"

	"tschecker/internal/diag"
	"tschecker/internal/source"
)

type jsonPosition struct {
	Line uint32 `json:"line"`
	Col  uint32 `json:"col"`
}

type jsonNote struct {
	Path  string       `json:"path"`
	Start jsonPosition `json:"start"`
	End   jsonPosition `json:"end"`
	Msg   string       `json:"message"`
}

type jsonDiagnostic struct {
	Path     string     `json:"path"`
	Severity string     `json:"severity"`
	Code     string     `json:"code"`
	Start    jsonPosition `json:"start"`
	End      jsonPosition `json:"end"`
	Message  string     `json:"message"`
	Notes    []jsonNote `json:"notes,omitempty"`
}

type jsonReport struct {
	Diagnostics []jsonDiagnostic `json:"diagnostics"`
	ErrorCount  int              `json:"errorCount"`
	WarningCount int             `json:"warningCount"`
}

// JSON encodes bag.Items() as a single JSON object with line/column
// positions resolved against fs, one entry per diagnostic in bag's current
// order (call bag.Sort() first for a stable report).
func JSON(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts JSONOpts) error {
	report := jsonReport{Diagnostics: make([]jsonDiagnostic, 0, bag.Len())}

	for _, d := range bag.Items() {
		start, end := fs.Resolve(d.Primary)
		f := fs.Get(d.Primary.File)

		jd := jsonDiagnostic{
			Path:     formatPath(f, opts.PathMode),
			Severity: d.Severity.String(),
			Code:     d.Code.String(),
			Start:    jsonPosition{Line: start.Line, Col: start.Col},
			End:      jsonPosition{Line: end.Line, Col: end.Col},
			Message:  d.Message,
		}
		if d.Severity == diag.SevError {
			report.ErrorCount++
		} else {
			report.WarningCount++
		}

		if opts.IncludeNotes {
			for _, note := range d.Notes {
				nf := fs.Get(note.Span.File)
				nStart, nEnd := fs.Resolve(note.Span)
				jd.Notes = append(jd.Notes, jsonNote{
					Path:  formatPath(nf, opts.PathMode),
					Start: jsonPosition{Line: nStart.Line, Col: nStart.Col},
					End:   jsonPosition{Line: nEnd.Line, Col: nEnd.Col},
					Msg:   note.Msg,
				})
			}
		}

		report.Diagnostics = append(report.Diagnostics, jd)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(report)
}
