package diagfmt

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"sapling/internal/diag"
	"sapling/internal/source"
)

type palette struct {
	err, warn, info, note *color.Color
	code, path, gutter    *color.Color
	caret                 *color.Color
}

func newPalette(enabled bool) palette {
	p := palette{
		err:    color.New(color.FgRed, color.Bold),
		warn:   color.New(color.FgYellow, color.Bold),
		info:   color.New(color.FgCyan, color.Bold),
		note:   color.New(color.FgBlue, color.Bold),
		code:   color.New(color.Bold),
		path:   color.New(color.Bold),
		gutter: color.New(color.FgBlue),
		caret:  color.New(color.FgGreen, color.Bold),
	}
	for _, c := range []*color.Color{p.err, p.warn, p.info, p.note, p.code, p.path, p.gutter, p.caret} {
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

// Pretty форматирует диагностики в человекочитаемый вид.
// Идёт по bag.Items() (ожидается bag.Sort() заранее).
// Для каждого diag печатает:
// <path>:<line>:<col>: <SEV> <CODE>: <Message>
// затем строку исходника с подчёркиванием ^~~~ по Span, затем Notes.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	if bag == nil || fs == nil {
		return
	}
	if opts.TabWidth <= 0 {
		opts.TabWidth = 4
	}
	pal := newPalette(opts.Color)

	for i, d := range bag.Items() {
		if i > 0 {
			fmt.Fprintln(w)
		}
		f := fs.Get(d.Primary.File)
		if f == nil {
			fmt.Fprintf(w, "%s %s: %s\n", pal.severity(d.Severity).Sprint(d.Severity), pal.code.Sprint(d.Code.ID()), d.Message)
			continue
		}
		start, end := fs.Resolve(d.Primary)
		fmt.Fprintf(w, "%s:%d:%d: %s %s: %s\n",
			pal.path.Sprint(formatPath(f, fs, opts.PathMode)),
			start.Line, start.Col,
			pal.severity(d.Severity).Sprint(d.Severity),
			pal.code.Sprint(d.Code.ID()),
			d.Message,
		)
		writeSnippet(w, f, start, end, opts.TabWidth, pal)

		if !opts.ShowNotes {
			continue
		}
		for _, note := range d.Notes {
			nf := fs.Get(note.Span.File)
			if nf == nil {
				continue
			}
			nstart, nend := fs.Resolve(note.Span)
			fmt.Fprintf(w, "  %s %s:%d:%d: %s\n",
				pal.note.Sprint("note:"),
				formatPath(nf, fs, opts.PathMode),
				nstart.Line, nstart.Col,
				note.Msg,
			)
			writeSnippet(w, nf, nstart, nend, opts.TabWidth, pal)
		}
	}
}

// writeSnippet prints the first line of a span and a caret underline. Spans
// that run across lines are underlined to the end of the first line.
func writeSnippet(w io.Writer, f *source.File, start, end source.LineCol, tabWidth int, pal palette) {
	line := f.Line(start.Line)
	if line == "" && start.Line > 1 {
		return
	}
	// колонки в LineCol байтовые
	col := max(0, min(int(start.Col)-1, len(line)))
	endCol := len(line)
	if end.Line == start.Line {
		endCol = int(end.Col) - 1
	}
	endCol = max(col, min(endCol, len(line)))

	tabs := strings.Repeat(" ", tabWidth)
	expand := func(s string) string { return strings.ReplaceAll(s, "\t", tabs) }

	prefix := runewidth.StringWidth(expand(line[:col]))
	width := runewidth.StringWidth(expand(line[col:endCol]))
	if width == 0 {
		width = 1
	}

	num := strconv.FormatUint(uint64(start.Line), 10)
	pad := strings.Repeat(" ", len(num))
	fmt.Fprintf(w, " %s %s %s\n", pal.gutter.Sprint(num), pal.gutter.Sprint("|"), expand(line))
	fmt.Fprintf(w, " %s %s %s%s\n", pad, pal.gutter.Sprint("|"),
		strings.Repeat(" ", prefix),
		pal.caret.Sprint("^"+strings.Repeat("~", width-1)),
	)
}
