package lexer

import (
	"unicode"
	"unicode/utf8"

	"sapling/internal/token"
)

// classify resolves the kind of a finished lexeme.
func classify(text string) token.Kind {
	if len(text) >= 2 && text[0] == '"' && text[len(text)-1] == '"' {
		return token.String
	}
	first, _ := utf8.DecodeRuneInString(text)
	switch {
	case unicode.IsLetter(first):
		return narrow(text)
	case unicode.IsDigit(first):
		return token.Number
	default:
		return token.Operator
	}
}

// narrow treats text as an identifier and only checks for keywords.
func narrow(text string) token.Kind {
	if kw, ok := token.LookupKeyword(text); ok {
		return kw
	}
	return token.Ident
}

func isSpace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\r' || r == '\n'
}

func isOperator(r rune) bool {
	switch r {
	case '+', '-', '*', '/', '=':
		return true
	}
	return false
}

func delimiterKind(r rune) (token.Kind, bool) {
	switch r {
	case '(':
		return token.LParen, true
	case ')':
		return token.RParen, true
	case '{':
		return token.LBrace, true
	case '}':
		return token.RBrace, true
	case '[':
		return token.LBracket, true
	case ']':
		return token.RBracket, true
	}
	return token.Invalid, false
}
