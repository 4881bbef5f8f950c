package token

// Kind represents the category of a source token.
type Kind uint8

const (
	// Invalid is the zero value; the lexer never produces it.
	Invalid Kind = iota

	// Number represents a lexeme starting with a digit.
	Number
	// Operator represents + - * / = and any lexeme that is not a word, number or string.
	Operator
	// LParen represents the left parenthesis token.
	LParen // (
	// RParen represents the right parenthesis token.
	RParen // )
	// LBrace represents the left brace token.
	LBrace // {
	// RBrace represents the right brace token.
	RBrace // }
	// LBracket represents the left bracket token.
	LBracket // [
	// RBracket represents the right bracket token.
	RBracket // ]
	// String represents a double-quoted string literal, quotes included.
	String
	// KwFn represents the 'fn' keyword (function declaration).
	KwFn // fn
	// KwLet represents the 'let' keyword (variable declaration).
	KwLet // let
	// Ident represents an identifier token.
	Ident
)

var kindNames = [...]string{
	Invalid:  "Invalid",
	Number:   "Number",
	Operator: "Operator",
	LParen:   "LeftParenthesis",
	RParen:   "RightParenthesis",
	LBrace:   "LeftBrace",
	RBrace:   "RightBrace",
	LBracket: "LeftBracket",
	RBracket: "RightBracket",
	String:   "String",
	KwFn:     "FnDecl",
	KwLet:    "VariableDecl",
	Ident:    "Identifier",
}

// String returns the kind name used in diagnostics and token dumps.
func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "Kind(?)"
}

// IsOpening reports whether k opens a delimited group.
func (k Kind) IsOpening() bool {
	return k == LParen || k == LBrace || k == LBracket
}

// IsClosing reports whether k closes a delimited group.
func (k Kind) IsClosing() bool {
	return k == RParen || k == RBrace || k == RBracket
}

// Closing returns the kind that closes k, or Invalid if k is not an opening delimiter.
func (k Kind) Closing() Kind {
	switch k {
	case LParen:
		return RParen
	case LBrace:
		return RBrace
	case LBracket:
		return RBracket
	default:
		return Invalid
	}
}
