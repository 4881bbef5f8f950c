package diag

import (
	"errors"

	"sapling/internal/source"
)

type Note struct {
	Span source.Span
	Msg  string
}

type Diagnostic struct {
	Severity Severity
	Code     Code
	Message  string
	Primary  source.Span
	Notes    []Note
}

func New(sev Severity, code Code, primary source.Span, msg string) Diagnostic {
	return Diagnostic{
		Severity: sev,
		Code:     code,
		Primary:  primary,
		Message:  msg,
	}
}

func NewError(code Code, primary source.Span, msg string) Diagnostic {
	return New(SevError, code, primary, msg)
}

func (d Diagnostic) WithNote(sp source.Span, msg string) Diagnostic {
	d.Notes = append(d.Notes, Note{Span: sp, Msg: msg})
	return d
}

// Provider is implemented by errors that know how to describe themselves as a diagnostic.
type Provider interface {
	Diagnostic() Diagnostic
}

// FromError converts err into a diagnostic. Errors that do not implement
// Provider anywhere in their chain become UnknownCode errors at fallback.
func FromError(err error, fallback source.Span) Diagnostic {
	var p Provider
	if errors.As(err, &p) {
		return p.Diagnostic()
	}
	return NewError(UnknownCode, fallback, err.Error())
}
