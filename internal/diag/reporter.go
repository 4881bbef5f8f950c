package diag

import "sapling/internal/source"

// Reporter receives diagnostics as a phase finds them. The lexer reports
// through one; the parser and codegen return typed errors instead.
type Reporter interface {
	Report(d Diagnostic)
}

// ReporterFunc adapts a plain function to Reporter.
type ReporterFunc func(Diagnostic)

func (f ReporterFunc) Report(d Diagnostic) { f(d) }

// BagReporter stores reported diagnostics in Bag; past the bag limit they
// are dropped.
type BagReporter struct{ Bag *Bag }

func (r BagReporter) Report(d Diagnostic) {
	if r.Bag != nil {
		r.Bag.Add(d)
	}
}

// Warn reports a warning to r; a nil r swallows it.
func Warn(r Reporter, code Code, primary source.Span, msg string, notes ...Note) {
	if r == nil {
		return
	}
	d := New(SevWarning, code, primary, msg)
	d.Notes = notes
	r.Report(d)
}
