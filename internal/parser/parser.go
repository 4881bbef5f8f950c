package parser

import (
	"sapling/internal/ast"
	"sapling/internal/source"
	"sapling/internal/token"
)

// Tag tells a nested parse what construct it is inside.
type Tag uint8

const (
	TagNone Tag = iota
	// TagFnDeclArgs: список параметров объявления: голые идентификаторы это имена параметров.
	TagFnDeclArgs
	// TagFnCallArgs: аргументы вызова: голые идентификаторы это ссылки.
	TagFnCallArgs
)

func (t Tag) String() string {
	switch t {
	case TagFnDeclArgs:
		return "FnDeclArgs"
	case TagFnCallArgs:
		return "FnCallArgs"
	default:
		return "None"
	}
}

// InArgs reports whether bare identifiers are allowed.
func (t Tag) InArgs() bool {
	return t == TagFnDeclArgs || t == TagFnCallArgs
}

// Context is threaded into nested parses. Anchor is the token that opened the
// enclosing construct, Previous the token right before the slice.
type Context struct {
	Anchor   *token.Token
	Previous *token.Token
	Tag      Tag
}

type parser struct {
	cur *Cursor
	ctx Context
}

// Parse builds a forest from tokens. Every nested argument list or body is
// parsed recursively over its own sub-slice with a fresh cursor.
// The first failure aborts the whole parse.
func Parse(tokens []token.Token, pctx Context) ([]ast.Node, error) {
	p := &parser{cur: NewCursor(tokens, 0), ctx: pctx}
	var nodes []ast.Node
	for p.cur.HasMore() {
		n, err := p.parseNode()
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, n)
	}
	return nodes, nil
}

func (p *parser) parseNode() (ast.Node, error) {
	tok, _ := p.cur.Consume()
	switch tok.Kind {
	case token.KwFn:
		return p.parseFnDecl(tok)
	case token.Ident:
		return p.parseIdent(tok)
	case token.String:
		return &ast.Literal{LitKind: ast.LitString, Value: tok.Text, Loc: tok.Loc, Sp: tok.Span}, nil
	case token.Number:
		return &ast.Literal{LitKind: ast.LitNumber, Value: tok.Text, Loc: tok.Loc, Sp: tok.Span}, nil
	case token.Operator:
		return &ast.Operator{Symbol: tok.Text, Loc: tok.Loc, Sp: tok.Span}, nil
	default:
		return nil, &UnhandledTokenError{Token: tok}
	}
}

// fn NAME { ... } | fn NAME ( params ) { ... }
func (p *parser) parseFnDecl(kw token.Token) (ast.Node, error) {
	name, ok := p.cur.Consume()
	if !ok {
		return nil, &UnexpectedTokenError{Expected: []token.Kind{token.Ident}, Previous: &kw}
	}
	if name.Kind != token.Ident {
		return nil, &UnexpectedTokenError{Token: &name, Expected: []token.Kind{token.Ident}, Previous: &kw}
	}

	decl := &ast.FnDecl{Name: name.Text, Loc: kw.Loc}

	open, ok := p.cur.Consume()
	if !ok {
		return nil, &UnexpectedTokenError{Expected: []token.Kind{token.LBrace, token.LParen}, Previous: &name}
	}
	switch open.Kind {
	case token.LBrace:
	case token.LParen:
		argToks, closed := p.cur.ConsumeBalanced(token.LParen, token.RParen)
		if !closed {
			return nil, &UnclosedDelimiterError{Open: open, Close: token.RParen}
		}
		args, err := Parse(argToks, Context{Anchor: &kw, Previous: &open, Tag: TagFnDeclArgs})
		if err != nil {
			return nil, err
		}
		decl.Args = args

		closeParen, _ := p.cur.Prev()
		brace, ok := p.cur.Consume()
		if !ok {
			return nil, &UnexpectedTokenError{Expected: []token.Kind{token.LBrace}, Previous: &closeParen}
		}
		if brace.Kind != token.LBrace {
			return nil, &UnexpectedTokenError{Token: &brace, Expected: []token.Kind{token.LBrace}, Previous: &closeParen}
		}
		open = brace
	default:
		return nil, &UnexpectedTokenError{Token: &open, Expected: []token.Kind{token.LBrace, token.LParen}, Previous: &name}
	}

	bodyToks, closed := p.cur.ConsumeBalanced(token.LBrace, token.RBrace)
	if !closed {
		return nil, &UnclosedDelimiterError{Open: open, Close: token.RBrace}
	}
	body, err := Parse(bodyToks, Context{Anchor: &kw, Previous: &open, Tag: TagNone})
	if err != nil {
		return nil, err
	}
	decl.Body = body
	decl.Sp = p.coverFrom(kw)
	return decl, nil
}

func (p *parser) parseIdent(ident token.Token) (ast.Node, error) {
	if p.cur.HasMore() && p.cur.Peek().Kind == token.LParen {
		open, _ := p.cur.Consume()
		argToks, closed := p.cur.ConsumeBalanced(token.LParen, token.RParen)
		if !closed {
			return nil, &UnclosedDelimiterError{Open: open, Close: token.RParen}
		}
		args, err := Parse(argToks, Context{Anchor: &ident, Previous: &open, Tag: TagFnCallArgs})
		if err != nil {
			return nil, err
		}
		return &ast.FnCall{Name: ident.Text, Args: args, Loc: ident.Loc, Sp: p.coverFrom(ident)}, nil
	}

	if p.ctx.Tag.InArgs() {
		return &ast.Ident{Name: ident.Text, Loc: ident.Loc, Sp: ident.Span}, nil
	}

	var next *token.Token
	if p.cur.HasMore() {
		tok := p.cur.Peek()
		next = &tok
	}
	return nil, &UnexpectedTokenError{Token: next, Expected: []token.Kind{token.LParen}, Previous: &ident}
}

// coverFrom spans from start to the last consumed token.
func (p *parser) coverFrom(start token.Token) source.Span {
	last, ok := p.cur.Prev()
	if !ok {
		return start.Span
	}
	return start.Span.Cover(last.Span)
}
