package lexer_test

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"sapling/internal/diag"
	"sapling/internal/lexer"
	"sapling/internal/source"
	"sapling/internal/token"
)

type kt struct {
	Kind token.Kind
	Text string
}

func kinds(toks []token.Token) []kt {
	out := make([]kt, 0, len(toks))
	for _, tok := range toks {
		out = append(out, kt{tok.Kind, tok.Text})
	}
	return out
}

func readFixture(t *testing.T, name string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("..", "..", "testdata", name))
	if err != nil {
		t.Fatalf("read fixture %s: %v", name, err)
	}
	return string(data)
}

func TestTokenizeFixtures(t *testing.T) {
	cases := []struct {
		file string
		want []kt
	}{
		{"hello_world.spl", []kt{
			{token.KwFn, "fn"},
			{token.Ident, "helloworld"},
			{token.LBrace, "{"},
			{token.Ident, "print"},
			{token.LParen, "("},
			{token.String, `"hello world"`},
			{token.RParen, ")"},
			{token.RBrace, "}"},
		}},
		{"variables.spl", []kt{
			{token.KwLet, "let"},
			{token.Ident, "arr"},
			{token.Operator, "="},
			{token.LBracket, "["},
			{token.Number, "1"},
			{token.Number, "2"},
			{token.Number, "3"},
			{token.RBracket, "]"},
			{token.KwLet, "let"},
			{token.Ident, "instance_name"},
			{token.Operator, "="},
			{token.String, `"abc123"`},
			{token.KwLet, "let"},
			{token.Ident, "index"},
			{token.Operator, "="},
			{token.Number, "34"},
		}},
		{"read_file.spl", []kt{
			{token.String, `"sapling"`},
			{token.LBrace, "{"},
			{token.Ident, "readfile"},
			{token.RBrace, "}"},
			{token.KwLet, "let"},
			{token.Ident, "content"},
			{token.Operator, "="},
			{token.Ident, "readfile"},
			{token.LParen, "("},
			{token.String, `"hello_world.spl"`},
			{token.RParen, ")"},
			{token.Ident, "print"},
			{token.LParen, "("},
			{token.Ident, "content"},
			{token.RParen, ")"},
		}},
	}

	for _, tc := range cases {
		t.Run(tc.file, func(t *testing.T) {
			got := kinds(lexer.Tokenize(readFixture(t, tc.file)))
			if !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("tokens mismatch\nwant: %v\n got: %v", tc.want, got)
			}
		})
	}
}

func TestTokenizeClassification(t *testing.T) {
	cases := []struct {
		name string
		src  string
		want []kt
	}{
		{"empty", "", []kt{}},
		{"only whitespace", " \t\r\n ", []kt{}},
		{"operators split words", "a+b", []kt{{token.Ident, "a"}, {token.Operator, "+"}, {token.Ident, "b"}}},
		{"digit first is number", "12ab", []kt{{token.Number, "12ab"}}},
		{"symbols are operators", "@@ ;", []kt{{token.Operator, "@@"}, {token.Operator, ";"}}},
		{"comma separates", "x,y", []kt{{token.Ident, "x"}, {token.Ident, "y"}}},
		{"unicode letter", "имя", []kt{{token.Ident, "имя"}}},
		{"decomposed ident is composed", "e\u0301x", []kt{{token.Ident, "\u00e9x"}}},
		{"decomposed string is kept", "\"e\u0301\"", []kt{{token.String, "\"e\u0301\""}}},
		{"tab before paren", "f\t(", []kt{{token.Ident, "f"}, {token.LParen, "("}}},
		{"keywords are case sensitive", "Fn LET", []kt{{token.Ident, "Fn"}, {token.Ident, "LET"}}},
		{"empty string", `""`, []kt{{token.String, `""`}}},
		{"string glued to word", `a"b c"`, []kt{{token.Ident, "a"}, {token.String, `"b c"`}}},
		{"hash inside string", `"a#b"`, []kt{{token.String, `"a#b"`}}},
		{"brace flush skips classifier", "{ 42}", []kt{{token.LBrace, "{"}, {token.Ident, "42"}, {token.RBrace, "}"}}},
		{"bracket flush classifies", "[42]", []kt{{token.LBracket, "["}, {token.Number, "42"}, {token.RBracket, "]"}}},
		{"nested call", `print(concat("a", b))`, []kt{
			{token.Ident, "print"}, {token.LParen, "("},
			{token.Ident, "concat"}, {token.LParen, "("},
			{token.String, `"a"`}, {token.Ident, "b"},
			{token.RParen, ")"}, {token.RParen, ")"},
		}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := kinds(lexer.Tokenize(tc.src))
			if !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("tokens mismatch for %q\nwant: %v\n got: %v", tc.src, tc.want, got)
			}
		})
	}
}

func TestTokenizeComments(t *testing.T) {
	if toks := lexer.Tokenize("# only a comment"); len(toks) != 0 {
		t.Fatalf("comment produced tokens: %v", toks)
	}

	toks := lexer.Tokenize("a # skip \"quoted\" (stuff)\nb")
	want := []kt{{token.Ident, "a"}, {token.Ident, "b"}}
	if got := kinds(toks); !reflect.DeepEqual(got, want) {
		t.Fatalf("want %v, got %v", want, got)
	}
	if toks[1].Loc != (token.Location{Line: 2, Col: 1}) {
		t.Fatalf("b location = %s", toks[1].Loc)
	}

	// Комментарий закрывается переводом строки, который работает как пробел.
	toks = lexer.Tokenize("x# trailing\ny")
	if got := kinds(toks); !reflect.DeepEqual(got, []kt{{token.Ident, "x"}, {token.Ident, "y"}}) {
		t.Fatalf("unexpected tokens %v", got)
	}
}

func TestTokenizeLocations(t *testing.T) {
	src := "fn main {\n  print(\"x\")\n}"
	want := []token.Location{
		{Line: 1, Col: 1},  // fn
		{Line: 1, Col: 4},  // main
		{Line: 1, Col: 9},  // {
		{Line: 2, Col: 3},  // print
		{Line: 2, Col: 8},  // (
		{Line: 2, Col: 9},  // "x"
		{Line: 2, Col: 12}, // )
		{Line: 3, Col: 1},  // }
	}
	toks := lexer.Tokenize(src)
	if len(toks) != len(want) {
		t.Fatalf("expected %d tokens, got %d: %v", len(want), len(toks), toks)
	}
	for i, tok := range toks {
		if tok.Loc != want[i] {
			t.Errorf("token %d %s at %s, want %s", i, tok, tok.Loc, want[i])
		}
	}
}

func TestTokenizeMultilineStringKeepsStart(t *testing.T) {
	toks := lexer.Tokenize("let s = \"a\nb\" x")
	if len(toks) != 5 {
		t.Fatalf("expected 5 tokens, got %v", toks)
	}
	str := toks[3]
	if str.Kind != token.String || str.Text != "\"a\nb\"" {
		t.Fatalf("unexpected string token %s", str)
	}
	if str.Loc != (token.Location{Line: 1, Col: 9}) {
		t.Fatalf("string location = %s", str.Loc)
	}
	if toks[4].Loc != (token.Location{Line: 2, Col: 4}) {
		t.Fatalf("x location = %s", toks[4].Loc)
	}
}

func TestTokenizeSpans(t *testing.T) {
	src := "let x = 42"
	toks := lexer.Tokenize(src)
	for _, tok := range toks {
		if got := src[tok.Span.Start:tok.Span.End]; got != tok.Text {
			t.Errorf("span of %s covers %q", tok, got)
		}
	}
	last := toks[len(toks)-1]
	if last.Span.Start != 8 || last.Span.End != 10 {
		t.Fatalf("number span = %s", last.Span)
	}
}

func TestTokenizeDeterministic(t *testing.T) {
	src := readFixture(t, "functions.spl")
	first := lexer.Tokenize(src)
	second := lexer.Tokenize(src)
	if !reflect.DeepEqual(first, second) {
		t.Fatal("tokenizing the same input twice gave different results")
	}
}

func TestTokenizeFileReportsUnterminatedString(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("broken.spl", []byte(`print("abc`))
	bag := diag.NewBag(0)

	toks := lexer.TokenizeFile(fs.Get(id), lexer.Options{Reporter: diag.BagReporter{Bag: bag}})

	want := []kt{{token.Ident, "print"}, {token.LParen, "("}, {token.Operator, `"abc`}}
	if got := kinds(toks); !reflect.DeepEqual(got, want) {
		t.Fatalf("want %v, got %v", want, got)
	}
	if bag.Len() != 1 {
		t.Fatalf("expected one diagnostic, got %d", bag.Len())
	}
	d := bag.Items()[0]
	if d.Code != diag.LexUnterminatedString || d.Severity != diag.SevWarning {
		t.Fatalf("unexpected diagnostic %+v", d)
	}
	if d.Primary.File != id || d.Primary.Start != 6 || d.Primary.End != 7 {
		t.Fatalf("diagnostic span = %s", d.Primary)
	}
	if bag.HasErrors() {
		t.Fatal("unterminated string must not be an error")
	}
}

func TestTokenizeFileWithoutReporter(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("broken.spl", []byte(`"open`))
	toks := lexer.TokenizeFile(fs.Get(id), lexer.Options{})
	if len(toks) != 1 || toks[0].Span.File != id {
		t.Fatalf("unexpected tokens %v", toks)
	}
}
