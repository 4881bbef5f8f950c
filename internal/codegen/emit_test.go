package codegen_test

import (
	"errors"
	"testing"

	"sapling/internal/ast"
	"sapling/internal/codegen"
	"sapling/internal/diag"
	"sapling/internal/lexer"
	"sapling/internal/parser"
)

func generate(t *testing.T, src string, opts codegen.Options) (string, error) {
	t.Helper()
	forest, err := parser.Parse(lexer.Tokenize(src), parser.Context{})
	if err != nil {
		t.Fatalf("parse %q: %v", src, err)
	}
	return codegen.Generate(forest, opts)
}

func TestGenerate(t *testing.T) {
	cases := []struct {
		name string
		src  string
		opts codegen.Options
		want string
	}{
		{
			name: "print inside declaration",
			src:  `fn f { print("x") }`,
			want: "function f() {\nconsole.log(\"x\")\n}\n",
		},
		{
			name: "declared params are dropped",
			src:  `fn f(a b) { print("x") }`,
			want: "function f() {\nconsole.log(\"x\")\n}\n",
		},
		{
			name: "declared params on request",
			src:  `fn f(a b) { print("x") }`,
			opts: codegen.Options{EmitParams: true},
			want: "function f(a, b) {\nconsole.log(\"x\")\n}\n",
		},
		{
			name: "empty body",
			src:  `fn noop {}`,
			want: "function noop() {\n}\n",
		},
		{
			name: "readfile and unmapped names",
			src:  `fn main { readfile("a.txt") greet() }`,
			want: "function main() {\nreadFileSync(\"a.txt\")\ngreet()\n}\n",
		},
		{
			name: "arguments are concatenated",
			src:  `show("a" 1)`,
			want: `show("a"1)`,
		},
		{
			name: "roots are concatenated",
			src:  `fn a {} fn b {}`,
			want: "function a() {\n}\nfunction b() {\n}\n",
		},
		{
			name: "builtins can be overridden",
			src:  `print("x") exit(0)`,
			opts: codegen.Options{Builtins: map[string]string{"print": "process.stdout.write", "exit": "process.exit"}},
			want: `process.stdout.write("x")process.exit(0)`,
		},
		{
			name: "empty forest",
			src:  "",
			want: "",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := generate(t, tc.src, tc.opts)
			if err != nil {
				t.Fatalf("generate: %v", err)
			}
			if got != tc.want {
				t.Fatalf("output mismatch\nwant: %q\n got: %q", tc.want, got)
			}
		})
	}
}

func TestGenerateUnhandledNode(t *testing.T) {
	cases := []struct {
		name string
		src  string
		kind ast.NodeKind
	}{
		{"operator at top level", `+`, ast.KindOperator},
		{"identifier argument", `print(x)`, ast.KindIdent},
		{"operator in body", `fn f { = }`, ast.KindOperator},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			out, err := generate(t, tc.src, codegen.Options{})
			var une *codegen.UnhandledNodeError
			if !errors.As(err, &une) {
				t.Fatalf("expected UnhandledNodeError, got %v (%q)", err, out)
			}
			if une.Node.Kind() != tc.kind {
				t.Fatalf("node kind %s, want %s", une.Node.Kind(), tc.kind)
			}
			if out != "" {
				t.Fatalf("partial output leaked: %q", out)
			}
			if une.Diagnostic().Code != diag.GenUnhandledNode {
				t.Fatal("wrong diagnostic code")
			}
		})
	}
}

func TestDefaultBuiltinsNotMutated(t *testing.T) {
	_, _ = codegen.Generate(nil, codegen.Options{Builtins: map[string]string{"print": "alert"}})
	if codegen.DefaultBuiltins["print"] != "console.log" {
		t.Fatal("options leaked into DefaultBuiltins")
	}
	e := codegen.NewEmitter(codegen.Options{})
	if e.Resolve("readfile") != "readFileSync" || e.Resolve("other") != "other" {
		t.Fatal("unexpected resolution")
	}
}
