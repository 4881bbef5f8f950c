package parser

import (
	"fmt"
	"strings"

	"sapling/internal/diag"
	"sapling/internal/source"
	"sapling/internal/token"
)

// UnexpectedTokenError reports a token of the wrong kind. Token is nil when
// the input ended where a token was required.
type UnexpectedTokenError struct {
	Token    *token.Token
	Expected []token.Kind
	Previous *token.Token
}

func (e *UnexpectedTokenError) Error() string {
	var b strings.Builder
	if e.Token != nil {
		fmt.Fprintf(&b, "unexpected token %s at %s", e.Token, e.Token.Loc)
	} else {
		b.WriteString("unexpected end of input")
	}
	if e.Previous != nil {
		fmt.Fprintf(&b, " after %s", e.Previous)
	}
	switch len(e.Expected) {
	case 0:
	case 1:
		fmt.Fprintf(&b, "; expected %s", e.Expected[0])
	default:
		names := make([]string, len(e.Expected))
		for i, k := range e.Expected {
			names[i] = k.String()
		}
		fmt.Fprintf(&b, "; expected one of [%s]", strings.Join(names, ", "))
	}
	return b.String()
}

func (e *UnexpectedTokenError) Diagnostic() diag.Diagnostic {
	var sp source.Span
	switch {
	case e.Token != nil:
		sp = e.Token.Span
	case e.Previous != nil:
		sp = source.Span{File: e.Previous.Span.File, Start: e.Previous.Span.End, End: e.Previous.Span.End}
	}
	d := diag.NewError(diag.SynUnexpectedToken, sp, e.Error())
	if e.Previous != nil {
		d = d.WithNote(e.Previous.Span, "after "+e.Previous.String())
	}
	return d
}

// UnhandledTokenError is returned for a token kind the grammar has no rule for.
type UnhandledTokenError struct {
	Token token.Token
}

func (e *UnhandledTokenError) Error() string {
	return fmt.Sprintf("unhandled token %s at %s", e.Token, e.Token.Loc)
}

func (e *UnhandledTokenError) Diagnostic() diag.Diagnostic {
	return diag.NewError(diag.SynUnhandledToken, e.Token.Span, e.Error())
}

// UnclosedDelimiterError means the input ended before Open was closed.
type UnclosedDelimiterError struct {
	Open  token.Token
	Close token.Kind
}

func (e *UnclosedDelimiterError) Error() string {
	return fmt.Sprintf("unclosed %s at %s; expected %s", e.Open, e.Open.Loc, e.Close)
}

func (e *UnclosedDelimiterError) Diagnostic() diag.Diagnostic {
	return diag.NewError(diag.SynUnclosedDelimiter, e.Open.Span, e.Error())
}
