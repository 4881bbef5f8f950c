package diagfmt

import (
	"encoding/json"
	"io"

	"sapling/internal/diag"
	"sapling/internal/source"
)

// JSONLocation is a span as seen by editors: byte offsets plus, when
// requested, 1-based line/column of both ends.
type JSONLocation struct {
	File    string    `json:"file,omitempty"`
	Bytes   [2]uint32 `json:"bytes"`
	Line    uint32    `json:"line,omitempty"`
	Col     uint32    `json:"col,omitempty"`
	EndLine uint32    `json:"end_line,omitempty"`
	EndCol  uint32    `json:"end_col,omitempty"`
}

type JSONNote struct {
	Message  string       `json:"message"`
	Location JSONLocation `json:"location"`
}

type JSONDiagnostic struct {
	Severity string       `json:"severity"`
	Code     string       `json:"code"`
	Title    string       `json:"title"`
	Message  string       `json:"message"`
	Location JSONLocation `json:"location"`
	Notes    []JSONNote   `json:"notes,omitempty"`
}

// JSONReport is the document printed by JSON. Errors and Warnings count the
// whole bag even when Max trims Diagnostics.
type JSONReport struct {
	Errors      int              `json:"errors"`
	Warnings    int              `json:"warnings"`
	Diagnostics []JSONDiagnostic `json:"diagnostics"`
}

type jsonLocator struct {
	fs   *source.FileSet
	opts JSONOpts
}

func (l jsonLocator) locate(sp source.Span) JSONLocation {
	loc := JSONLocation{Bytes: [2]uint32{sp.Start, sp.End}}
	if l.fs == nil {
		return loc
	}
	f := l.fs.Get(sp.File)
	if f == nil {
		return loc
	}
	loc.File = formatPath(f, l.fs, l.opts.PathMode)
	if l.opts.IncludePositions {
		start, end := l.fs.Resolve(sp)
		loc.Line, loc.Col = start.Line, start.Col
		loc.EndLine, loc.EndCol = end.Line, end.Col
	}
	return loc
}

// NewJSONReport converts bag without encoding it.
func NewJSONReport(bag *diag.Bag, fs *source.FileSet, opts JSONOpts) JSONReport {
	l := jsonLocator{fs: fs, opts: opts}
	report := JSONReport{Diagnostics: []JSONDiagnostic{}}
	for _, d := range bag.Items() {
		switch d.Severity {
		case diag.SevError:
			report.Errors++
		case diag.SevWarning:
			report.Warnings++
		}
		if opts.Max > 0 && len(report.Diagnostics) == opts.Max {
			continue
		}
		jd := JSONDiagnostic{
			Severity: d.Severity.String(),
			Code:     d.Code.ID(),
			Title:    d.Code.Title(),
			Message:  d.Message,
			Location: l.locate(d.Primary),
		}
		if opts.IncludeNotes {
			for _, n := range d.Notes {
				jd.Notes = append(jd.Notes, JSONNote{Message: n.Msg, Location: l.locate(n.Span)})
			}
		}
		report.Diagnostics = append(report.Diagnostics, jd)
	}
	return report
}

// JSON writes bag as one indented JSONReport.
func JSON(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts JSONOpts) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(NewJSONReport(bag, fs, opts))
}
