package token

import (
	"fmt"

	"sapling/internal/source"
)

// Location is the 1-based line and column of a lexeme's first character.
type Location struct {
	Line uint32
	Col  uint32
}

func (l Location) String() string {
	return fmt.Sprintf("%d:%d", l.Line, l.Col)
}

// Token represents a single source token with its location.
type Token struct {
	Kind Kind
	Text string
	Loc  Location
	Span source.Span
}

// String renders the token as Kind:'text', the form used in error messages.
func (t Token) String() string {
	return fmt.Sprintf("%s:'%s'", t.Kind, t.Text)
}

// IsLiteral reports whether the token is a number or string literal.
func (t Token) IsLiteral() bool {
	return t.Kind == Number || t.Kind == String
}

// IsDelimiter reports whether the token is one of ( ) { } [ ].
func (t Token) IsDelimiter() bool {
	return t.Kind.IsOpening() || t.Kind.IsClosing()
}

// IsKeyword reports whether the token is a language keyword.
func (t Token) IsKeyword() bool {
	return t.Kind == KwFn || t.Kind == KwLet
}

// IsIdent reports whether the token is an identifier.
func (t Token) IsIdent() bool { return t.Kind == Ident }
