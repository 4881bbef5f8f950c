package diagfmt

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"sapling/internal/diag"
	"sapling/internal/source"
)

// ShortOpts configures the one-line-per-diagnostic output.
type ShortOpts struct {
	PathMode PathMode
	Notes    bool // print notes as extra "note" lines
}

// Short writes "<severity> <ID> <path>:<line>:<col> <message>" lines in bag
// order. Diagnostics without a file print "-" as the location. Messages are
// folded onto one line so the output stays grep-friendly.
func Short(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts ShortOpts) error {
	bw := bufio.NewWriter(w)
	for _, d := range bag.Items() {
		writeShortLine(bw, d.Severity.Label(), d.Code, d.Primary, d.Message, fs, opts.PathMode)
		if !opts.Notes {
			continue
		}
		for _, n := range d.Notes {
			writeShortLine(bw, "note", d.Code, n.Span, n.Msg, fs, opts.PathMode)
		}
	}
	return bw.Flush()
}

func writeShortLine(w *bufio.Writer, label string, code diag.Code, sp source.Span, msg string, fs *source.FileSet, mode PathMode) {
	w.WriteString(label)
	w.WriteByte(' ')
	w.WriteString(code.ID())
	w.WriteByte(' ')
	w.WriteString(shortLocation(sp, fs, mode))
	w.WriteByte(' ')
	w.WriteString(strings.Join(strings.Fields(msg), " "))
	w.WriteByte('\n')
}

func shortLocation(sp source.Span, fs *source.FileSet, mode PathMode) string {
	if fs == nil {
		return "-"
	}
	f := fs.Get(sp.File)
	if f == nil {
		return "-"
	}
	start, _ := fs.Resolve(sp)
	return formatPath(f, fs, mode) + ":" +
		strconv.FormatUint(uint64(start.Line), 10) + ":" +
		strconv.FormatUint(uint64(start.Col), 10)
}
