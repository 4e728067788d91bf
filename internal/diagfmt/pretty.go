package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"aic/internal/diag"
	"aic/internal/source"
)

type palette struct {
	err, warn, info, code, path, gutter, caret, note *color.Color
}

func newPalette(enabled bool) palette {
	p := palette{
		err:    color.New(color.FgRed, color.Bold),
		warn:   color.New(color.FgYellow, color.Bold),
		info:   color.New(color.FgCyan, color.Bold),
		code:   color.New(color.FgHiBlack),
		path:   color.New(color.Bold),
		gutter: color.New(color.FgBlue),
		caret:  color.New(color.FgRed, color.Bold),
		note:   color.New(color.FgCyan),
	}
	for _, c := range []*color.Color{p.err, p.warn, p.info, p.code, p.path, p.gutter, p.caret, p.note} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

func (p palette) severity(sev diag.Severity) *color.Color {
	switch sev {
	case diag.SevError:
		return p.err
	case diag.SevWarning:
		return p.warn
	default:
		return p.info
	}
}

// Pretty форматирует диагностики в человекочитаемый вид:
//
//	<path>:<line>:<col>: <SEV> <CODE>: <Message>
//	  12 | let a = b + 1;
//	     |         ^
//
// Bag is expected to be sorted by the caller.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	pal := newPalette(opts.Color)
	for _, d := range bag.Items() {
		writeOne(w, d, fs, opts, pal)
	}
}

func writeOne(w io.Writer, d diag.Diagnostic, fs *source.FileSet, opts PrettyOpts, pal palette) {
	f := fs.Get(d.Primary.File)
	start, _ := fs.Resolve(d.Primary)
	fmt.Fprintf(w, "%s: %s %s: %s\n",
		pal.path.Sprintf("%s:%d:%d", formatPath(f, opts.PathMode), start.Line, start.Col),
		pal.severity(d.Severity).Sprint(d.Severity.String()),
		pal.code.Sprint(d.Code.ID()),
		d.Message,
	)
	if f != nil {
		writeExcerpt(w, f, fs, d.Primary, pal)
	}
	if !opts.ShowNotes {
		return
	}
	for _, n := range d.Notes {
		nf := fs.Get(n.Span.File)
		ns, _ := fs.Resolve(n.Span)
		fmt.Fprintf(w, "  %s %s: %s\n",
			pal.note.Sprint("note:"),
			pal.path.Sprintf("%s:%d:%d", formatPath(nf, opts.PathMode), ns.Line, ns.Col),
			n.Msg,
		)
		if nf != nil {
			writeExcerpt(w, nf, fs, n.Span, pal)
		}
	}
}

// writeExcerpt prints the first line of span with a caret underline.
// Column widths are measured in terminal cells so wide runes stay aligned.
func writeExcerpt(w io.Writer, f *source.File, fs *source.FileSet, span source.Span, pal palette) {
	start, end := fs.Resolve(span)
	line := f.GetLine(start.Line)
	if line == "" && start.Col > 1 {
		return
	}
	gutter := fmt.Sprintf("%d", start.Line)
	pad := strings.Repeat(" ", len(gutter))

	from := clamp(int(start.Col)-1, len(line))
	to := len(line)
	if end.Line == start.Line {
		to = clamp(int(end.Col)-1, len(line))
	}
	if to < from {
		to = from
	}
	indent := runewidth.StringWidth(expandTabs(line[:from]))
	width := runewidth.StringWidth(expandTabs(line[from:to]))
	underline := "^"
	if width > 1 {
		underline += strings.Repeat("~", width-1)
	}

	fmt.Fprintf(w, " %s %s %s\n", pal.gutter.Sprint(gutter), pal.gutter.Sprint("|"), expandTabs(line))
	fmt.Fprintf(w, " %s %s %s%s\n", pad, pal.gutter.Sprint("|"), strings.Repeat(" ", indent), pal.caret.Sprint(underline))
}

func expandTabs(s string) string {
	return strings.ReplaceAll(s, "\t", "    ")
}

func clamp(v, hi int) int {
	if v < 0 {
		return 0
	}
	if v > hi {
		return hi
	}
	return v
}
