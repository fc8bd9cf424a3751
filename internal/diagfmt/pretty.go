package diagfmt

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"fortio.org/safecast"
	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"tschecker/internal/diag"
	"tschecker/internal/source"
)

// formatPath renders f.Path per mode. PathModeAuto is a no-op since the
// FileSet only ever stores the path the caller passed in.
func formatPath(f *source.File, mode PathMode) string {
	switch mode {
	case PathModeAbsolute:
		if abs, err := filepath.Abs(f.Path); err == nil {
			return abs
		}
		return f.Path
	case PathModeBasename:
		return filepath.Base(f.Path)
	default:
		return f.Path
	}
}

// lineText returns the 1-based source line's text, without its trailing
// newline. line must be within [1, len(f.LineIdx)+1].
func lineText(f *source.File, line uint32) string {
	var start uint32
	if line > 1 {
		start = f.LineIdx[line-2] + 1
	}
	end := uint32(len(f.Content))
	if int(line-1) < len(f.LineIdx) {
		end = f.LineIdx[line-1]
	}
	if start > end || int(start) > len(f.Content) {
		return ""
	}
	if int(end) > len(f.Content) {
		end = uint32(len(f.Content))
	}
	return string(f.Content[start:end])
}

// visualWidthUpTo computes the on-screen column a byte offset into s lands
// at, treating tabs as advancing to the next tabWidth stop and wide runes
// (e.g. CJK) as occupying two columns.
func visualWidthUpTo(s string, byteCol uint32, tabWidth int) int {
	if byteCol <= 1 {
		return 0
	}
	bytePos, visualPos := 0, 0
	for _, r := range s {
		if bytePos >= int(byteCol-1) {
			break
		}
		if r == '\t' {
			visualPos = (visualPos + tabWidth) / tabWidth * tabWidth
		} else {
			visualPos += runewidth.RuneWidth(r)
		}
		bytePos += len(string(r))
	}
	return visualPos
}

// Pretty renders bag.Items() (expected pre-sorted via bag.Sort()) as
// human-readable text: one "path:line:col: severity TSxxxx: message" header
// per diagnostic, a snippet of surrounding source with a "~~~^" underline
// under the offending span, then any attached notes.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	errorColor := color.New(color.FgRed, color.Bold)
	warningColor := color.New(color.FgYellow, color.Bold)
	pathColor := color.New(color.FgWhite, color.Bold)
	codeColor := color.New(color.FgMagenta)
	lineNumColor := color.New(color.FgBlue)
	underlineColor := color.New(color.FgRed, color.Bold)
	noteColor := color.New(color.FgCyan, color.Bold)

	prevNoColor := color.NoColor
	defer func() { color.NoColor = prevNoColor }()
	color.NoColor = !opts.Color

	context, err := safecast.Conv[uint32](opts.Context)
	if err != nil {
		context = 2
	}
	if context == 0 {
		context = 1
	}

	for idx, d := range bag.Items() {
		if idx > 0 {
			fmt.Fprintln(w)
		}

		start, end := fs.Resolve(d.Primary)
		f := fs.Get(d.Primary.File)
		path := formatPath(f, opts.PathMode)

		sevStr := d.Severity.String()
		sevColored := sevStr
		switch d.Severity {
		case diag.SevError:
			sevColored = errorColor.Sprint(sevStr)
		case diag.SevWarning:
			sevColored = warningColor.Sprint(sevStr)
		}

		fmt.Fprintf(w, "%s:%d:%d: %s %s: %s\n",
			pathColor.Sprint(path), start.Line, start.Col,
			sevColored, codeColor.Sprint(d.Code.String()), d.Message)

		totalLines := uint32(len(f.LineIdx)) + 1

		lo := uint32(1)
		if start.Line > context {
			lo = start.Line - context
		}
		hi := min(start.Line+context, totalLines)

		if lo > 1 {
			fmt.Fprintln(w, "...")
		}

		numWidth := max(len(fmt.Sprintf("%d", hi)), 3)
		const tabWidth = 8

		for line := lo; line <= hi; line++ {
			text := lineText(f, line)
			gutterLen := numWidth + 3
			fmt.Fprint(w, lineNumColor.Sprint(fmt.Sprintf("%*d", numWidth, line)), " | ", text, "\n")

			if line != start.Line {
				continue
			}
			endCol := end.Col
			if end.Line > start.Line {
				endCol = uint32(len(text)) + 1
			}
			visStart := visualWidthUpTo(text, start.Col, tabWidth)
			visEnd := visualWidthUpTo(text, endCol, tabWidth)

			var underline strings.Builder
			for range gutterLen {
				underline.WriteByte(' ')
			}
			for range visStart {
				underline.WriteByte(' ')
			}
			span := visEnd - visStart
			if span <= 0 {
				underline.WriteByte('^')
			} else {
				for i := 0; i < span; i++ {
					if i == span-1 {
						underline.WriteByte('^')
					} else {
						underline.WriteByte('~')
					}
				}
			}
			fmt.Fprintln(w, underlineColor.Sprint(underline.String()))
		}

		if hi < totalLines {
			fmt.Fprintln(w, "...")
		}

		if opts.ShowNotes {
			for _, note := range d.Notes {
				nf := fs.Get(note.Span.File)
				noteStart, _ := fs.Resolve(note.Span)
				fmt.Fprintf(w, "  %s: %s:%d:%d: %s\n",
					noteColor.Sprint("note"), pathColor.Sprint(formatPath(nf, opts.PathMode)),
					noteStart.Line, noteStart.Col, note.Msg)
			}
		}
	}
}
