package parser_test

import (
	"errors"
	"testing"

	"sapling/internal/ast"
	"sapling/internal/diag"
	"sapling/internal/lexer"
	"sapling/internal/parser"
	"sapling/internal/source"
	"sapling/internal/token"
)

func parse(t *testing.T, src string) []ast.Node {
	t.Helper()
	nodes, err := parser.Parse(lexer.Tokenize(src), parser.Context{})
	if err != nil {
		t.Fatalf("parse %q: %v", src, err)
	}
	return nodes
}

func TestParseHelloWorld(t *testing.T) {
	nodes := parse(t, `fn helloworld { print("hello world") }`)
	if len(nodes) != 1 {
		t.Fatalf("expected 1 root, got %d", len(nodes))
	}
	decl, ok := nodes[0].(*ast.FnDecl)
	if !ok || decl.Name != "helloworld" || len(decl.Args) != 0 {
		t.Fatalf("unexpected root %#v", nodes[0])
	}
	if len(decl.Children()) != 1 {
		t.Fatalf("expected 1 body node, got %d", len(decl.Children()))
	}
	call, ok := decl.Body[0].(*ast.FnCall)
	if !ok || call.Name != "print" || len(call.Args) != 1 {
		t.Fatalf("unexpected body %#v", decl.Body[0])
	}
	lit, ok := call.Args[0].(*ast.Literal)
	if !ok || lit.LitKind != ast.LitString || lit.Value != `"hello world"` {
		t.Fatalf("unexpected argument %#v", call.Args[0])
	}
	if decl.Pos() != (token.Location{Line: 1, Col: 1}) || call.Pos() != (token.Location{Line: 1, Col: 17}) {
		t.Fatalf("positions: decl %s call %s", decl.Pos(), call.Pos())
	}
	if decl.Span().Start != 0 || decl.Span().End != 38 {
		t.Fatalf("decl span = %s", decl.Span())
	}
}

func TestParseParamsAndNestedCalls(t *testing.T) {
	nodes := parse(t, `fn add(a b) { print(concat(a, "!")) log(1) }`)
	decl := nodes[0].(*ast.FnDecl)
	if len(decl.Args) != 2 {
		t.Fatalf("expected 2 params, got %d", len(decl.Args))
	}
	for i, name := range []string{"a", "b"} {
		id, ok := decl.Args[i].(*ast.Ident)
		if !ok || id.Name != name {
			t.Fatalf("param %d = %#v", i, decl.Args[i])
		}
	}
	if len(decl.Body) != 2 {
		t.Fatalf("expected 2 body nodes, got %d", len(decl.Body))
	}
	outer := decl.Body[0].(*ast.FnCall)
	inner, ok := outer.Args[0].(*ast.FnCall)
	if !ok || inner.Name != "concat" || len(inner.Args) != 2 {
		t.Fatalf("unexpected inner call %#v", outer.Args[0])
	}
	if inner.Args[0].Kind() != ast.KindIdent || inner.Args[1].Kind() != ast.KindLiteral {
		t.Fatalf("unexpected inner args %v %v", inner.Args[0].Kind(), inner.Args[1].Kind())
	}
	if num := decl.Body[1].(*ast.FnCall).Args[0].(*ast.Literal); num.LitKind != ast.LitNumber || num.Value != "1" {
		t.Fatalf("unexpected number literal %#v", num)
	}
	if got := ast.Count(nodes); got != 9 {
		t.Fatalf("Count = %d, want 9", got)
	}
}

func TestParseLeaves(t *testing.T) {
	nodes := parse(t, `"x" 42 +`)
	want := []ast.NodeKind{ast.KindLiteral, ast.KindLiteral, ast.KindOperator}
	if len(nodes) != len(want) {
		t.Fatalf("expected %d nodes, got %d", len(want), len(nodes))
	}
	for i, k := range want {
		if nodes[i].Kind() != k {
			t.Errorf("node %d kind %s, want %s", i, nodes[i].Kind(), k)
		}
	}
	if len(parse(t, "")) != 0 {
		t.Fatal("empty input must give an empty forest")
	}
}

func TestParseBareIdentInArgContext(t *testing.T) {
	for _, tag := range []parser.Tag{parser.TagFnDeclArgs, parser.TagFnCallArgs} {
		nodes, err := parser.Parse(lexer.Tokenize("a b"), parser.Context{Tag: tag})
		if err != nil {
			t.Fatalf("%s: %v", tag, err)
		}
		if len(nodes) != 2 || nodes[0].Kind() != ast.KindIdent || nodes[1].Kind() != ast.KindIdent {
			t.Fatalf("%s: unexpected nodes %v", tag, nodes)
		}
	}
}

func TestParseUnexpectedToken(t *testing.T) {
	cases := []struct {
		name     string
		src      string
		expected []token.Kind
		gotEOF   bool
		msg      string
	}{
		{
			name:     "bare identifier at end",
			src:      "foo",
			expected: []token.Kind{token.LParen},
			gotEOF:   true,
			msg:      "unexpected end of input after Identifier:'foo'; expected LeftParenthesis",
		},
		{
			name:     "bare identifier before another",
			src:      "foo bar",
			expected: []token.Kind{token.LParen},
			msg:      "unexpected token Identifier:'bar' at 1:5 after Identifier:'foo'; expected LeftParenthesis",
		},
		{
			name:     "fn without name",
			src:      "fn",
			expected: []token.Kind{token.Ident},
			gotEOF:   true,
			msg:      "unexpected end of input after FnDecl:'fn'; expected Identifier",
		},
		{
			name:     "fn with number name",
			src:      "fn 42 {}",
			expected: []token.Kind{token.Ident},
			msg:      "unexpected token Number:'42' at 1:4 after FnDecl:'fn'; expected Identifier",
		},
		{
			name:     "fn name then garbage",
			src:      "fn f x {}",
			expected: []token.Kind{token.LBrace, token.LParen},
			msg:      "unexpected token Identifier:'x' at 1:6 after Identifier:'f'; expected one of [LeftBrace, LeftParenthesis]",
		},
		{
			name:     "fn name then end",
			src:      "fn f",
			expected: []token.Kind{token.LBrace, token.LParen},
			gotEOF:   true,
			msg:      "unexpected end of input after Identifier:'f'; expected one of [LeftBrace, LeftParenthesis]",
		},
		{
			name:     "params without body",
			src:      "fn f(a) x",
			expected: []token.Kind{token.LBrace},
			msg:      "unexpected token Identifier:'x' at 1:9 after RightParenthesis:')'; expected LeftBrace",
		},
		{
			name:     "bare identifier inside body",
			src:      "fn f { x }",
			expected: []token.Kind{token.LParen},
			gotEOF:   true,
			msg:      "unexpected end of input after Identifier:'x'; expected LeftParenthesis",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := parser.Parse(lexer.Tokenize(tc.src), parser.Context{})
			var ute *parser.UnexpectedTokenError
			if !errors.As(err, &ute) {
				t.Fatalf("expected UnexpectedTokenError, got %v", err)
			}
			if (ute.Token == nil) != tc.gotEOF {
				t.Fatalf("Token = %v, want EOF=%v", ute.Token, tc.gotEOF)
			}
			if len(ute.Expected) != len(tc.expected) {
				t.Fatalf("Expected = %v, want %v", ute.Expected, tc.expected)
			}
			for i := range tc.expected {
				if ute.Expected[i] != tc.expected[i] {
					t.Fatalf("Expected = %v, want %v", ute.Expected, tc.expected)
				}
			}
			if err.Error() != tc.msg {
				t.Fatalf("message:\nwant: %s\n got: %s", tc.msg, err.Error())
			}
			if d := ute.Diagnostic(); d.Code != diag.SynUnexpectedToken || d.Severity != diag.SevError {
				t.Fatalf("unexpected diagnostic %+v", d)
			}
		})
	}
}

func TestParseUnclosedDelimiter(t *testing.T) {
	cases := []struct {
		src   string
		open  token.Kind
		close token.Kind
	}{
		{`fn f { print("x")`, token.LBrace, token.RBrace},
		{`print("x"`, token.LParen, token.RParen},
		{`fn f(a { }`, token.LParen, token.RParen},
		{`fn f { print("x" }`, token.LParen, token.RParen},
	}
	for _, tc := range cases {
		_, err := parser.Parse(lexer.Tokenize(tc.src), parser.Context{})
		var ude *parser.UnclosedDelimiterError
		if !errors.As(err, &ude) {
			t.Fatalf("%q: expected UnclosedDelimiterError, got %v", tc.src, err)
		}
		if ude.Open.Kind != tc.open || ude.Close != tc.close {
			t.Fatalf("%q: got open %s close %s", tc.src, ude.Open.Kind, ude.Close)
		}
		if ude.Diagnostic().Code != diag.SynUnclosedDelimiter {
			t.Fatalf("%q: wrong diagnostic code", tc.src)
		}
	}
}

func TestParseUnhandledToken(t *testing.T) {
	for _, src := range []string{")", "let x = 1", "]"} {
		_, err := parser.Parse(lexer.Tokenize(src), parser.Context{})
		var ute *parser.UnhandledTokenError
		if !errors.As(err, &ute) {
			t.Fatalf("%q: expected UnhandledTokenError, got %v", src, err)
		}
		if ute.Token.Loc != (token.Location{Line: 1, Col: 1}) {
			t.Fatalf("%q: location %s", src, ute.Token.Loc)
		}
	}
}

func TestUnexpectedEOFDiagnosticPointsAfterPrevious(t *testing.T) {
	_, err := parser.Parse(lexer.Tokenize("foo"), parser.Context{})
	d := diag.FromError(err, source.Span{})
	if d.Primary.Start != 3 || d.Primary.End != 3 {
		t.Fatalf("span = %s", d.Primary)
	}
	if len(d.Notes) != 1 || d.Notes[0].Span.End != 3 {
		t.Fatalf("notes = %+v", d.Notes)
	}
}
