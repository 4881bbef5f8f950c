package lexer

import (
	"strings"

	"golang.org/x/text/unicode/norm"

	"sapling/internal/diag"
	"sapling/internal/source"
	"sapling/internal/token"
)

// flushMode selects how a pending lexeme is typed when it is flushed.
type flushMode uint8

const (
	// flushClassify runs the full classifier.
	flushClassify flushMode = iota
	// flushIdent treats the lexeme as an identifier candidate (keywords only).
	flushIdent
	// flushString emits the lexeme as a String as-is.
	flushString
)

// Lexer is a single-pass tokenizer. One Lexer serves one input; it is not reusable.
type Lexer struct {
	cursor Cursor
	opts   Options
	out    []token.Token

	buf      strings.Builder
	bufStart uint32
	bufEnd   uint32
	bufLoc   token.Location

	inComment bool
	inString  bool
	strOpen   source.Span
}

// New prepares a lexer over file content.
func New(file *source.File, opts Options) *Lexer {
	return &Lexer{
		cursor: NewCursor(file.ID, file.Content),
		opts:   opts,
	}
}

// Tokenize converts raw source text into tokens. It never fails:
// unknown characters end up in Operator lexemes.
func Tokenize(src string) []token.Token {
	lx := &Lexer{cursor: NewCursor(0, []byte(src))}
	return lx.Run()
}

// TokenizeFile tokenizes a loaded file; spans point into file.
func TokenizeFile(file *source.File, opts Options) []token.Token {
	return New(file, opts).Run()
}

// Run consumes the whole input and returns the token sequence.
func (lx *Lexer) Run() []token.Token {
	for !lx.cursor.EOF() {
		r, off, loc := lx.cursor.Next()
		lx.step(r, off, loc)
	}
	if lx.inString {
		lx.warn(diag.LexUnterminatedString, lx.strOpen, "unterminated string literal")
	}
	lx.flush(flushClassify)
	return lx.out
}

func (lx *Lexer) step(r rune, off uint32, loc token.Location) {
	if lx.inComment {
		if r == '\n' {
			lx.inComment = false
			lx.flush(flushClassify)
		}
		return
	}

	if lx.inString {
		lx.push(r, off, loc)
		if r == '"' {
			lx.inString = false
			lx.flush(flushString)
		}
		return
	}

	switch {
	case r == '#':
		lx.inComment = true
	case r == '"':
		lx.flush(flushClassify)
		lx.inString = true
		lx.strOpen = source.Span{File: lx.cursor.File, Start: off, End: lx.cursor.Off}
		lx.push(r, off, loc)
	case r == ',':
		lx.flush(flushClassify)
	case isOperator(r):
		lx.flush(flushClassify)
		lx.emit(token.Operator, string(r), off, loc)
	case isSpace(r):
		lx.flush(flushClassify)
	default:
		kind, ok := delimiterKind(r)
		if !ok {
			lx.push(r, off, loc)
			return
		}
		// ')' и ']' классифицируют накопленное, остальные скобки считают его идентификатором.
		if kind == token.RParen || kind == token.RBracket {
			lx.flush(flushClassify)
		} else {
			lx.flush(flushIdent)
		}
		lx.emit(kind, string(r), off, loc)
	}
}

// push appends r to the pending lexeme, remembering where it started.
func (lx *Lexer) push(r rune, off uint32, loc token.Location) {
	if lx.buf.Len() == 0 {
		lx.bufStart = off
		lx.bufLoc = loc
	}
	lx.buf.WriteRune(r)
	lx.bufEnd = lx.cursor.Off
}

func (lx *Lexer) flush(mode flushMode) {
	if lx.buf.Len() == 0 {
		return
	}
	text := lx.buf.String()
	lx.buf.Reset()

	var kind token.Kind
	switch mode {
	case flushString:
		kind = token.String
	case flushIdent:
		kind = narrow(text)
	default:
		kind = classify(text)
	}
	// имена сравниваются по NFC, строки остаются байт в байт
	if kind == token.Ident {
		text = norm.NFC.String(text)
	}
	lx.out = append(lx.out, token.Token{
		Kind: kind,
		Text: text,
		Loc:  lx.bufLoc,
		Span: source.Span{File: lx.cursor.File, Start: lx.bufStart, End: lx.bufEnd},
	})
}

// emit appends a single-rune token that was just read by the cursor.
func (lx *Lexer) emit(kind token.Kind, text string, off uint32, loc token.Location) {
	lx.out = append(lx.out, token.Token{
		Kind: kind,
		Text: text,
		Loc:  loc,
		Span: lx.cursor.SpanFrom(off),
	})
}
