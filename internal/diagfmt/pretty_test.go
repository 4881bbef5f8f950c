package diagfmt

import (
	"bytes"
	"strings"
	"testing"

	"sapling/internal/diag"
	"sapling/internal/source"
)

func TestPrettyPathModes(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("/home/user/project/src/test.spl", []byte(`print("abc`))
	fs.SetBaseDir("/home/user/project")

	bag := diag.NewBag(10)
	bag.Add(diag.New(diag.SevWarning, diag.LexUnterminatedString,
		source.Span{File: fileID, Start: 6, End: 7}, "unterminated string literal"))

	tests := []struct {
		name string
		mode PathMode
		want string
	}{
		{"absolute", PathModeAbsolute, "/home/user/project/src/test.spl:1:7:"},
		{"relative", PathModeRelative, "src/test.spl:1:7:"},
		{"basename", PathModeBasename, "test.spl:1:7:"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			Pretty(&buf, bag, fs, PrettyOpts{PathMode: tt.mode})
			if !strings.HasPrefix(buf.String(), tt.want) {
				t.Fatalf("output %q does not start with %q", buf.String(), tt.want)
			}
		})
	}
}

func TestPrettySnippet(t *testing.T) {
	fs := source.NewFileSet()
	fs.SetBaseDir("/p")
	fileID := fs.AddVirtual("/p/main.spl", []byte("fn f {\n\tfoo\n}\n"))

	bag := diag.NewBag(0)
	d := diag.NewError(diag.SynUnexpectedToken, source.Span{File: fileID, Start: 8, End: 11}, "unexpected token").
		WithNote(source.Span{File: fileID, Start: 0, End: 2}, "in this function")
	bag.Add(d)

	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{PathMode: PathModeRelative, ShowNotes: true})

	want := "main.spl:2:2: ERROR SYN2001: unexpected token\n" +
		" 2 |     foo\n" +
		"   |     ^~~\n" +
		"  note: main.spl:1:1: in this function\n" +
		" 1 | fn f {\n" +
		"   | ^~\n"
	if buf.String() != want {
		t.Fatalf("unexpected output:\nwant:\n%s\ngot:\n%s", want, buf.String())
	}
}

func TestPrettyWideRunes(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("wide.spl", []byte("let 名前 = x"))
	bag := diag.NewBag(0)
	bag.Add(diag.NewError(diag.SynUnhandledToken, source.Span{File: fileID, Start: 13, End: 14}, "x"))

	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{PathMode: PathModeBasename})
	lines := strings.Split(buf.String(), "\n")
	if len(lines) < 3 {
		t.Fatalf("unexpected output %q", buf.String())
	}
	if want := "   | " + strings.Repeat(" ", 11) + "^"; lines[2] != want {
		t.Fatalf("caret line %q, want %q", lines[2], want)
	}
}

func TestPrettyColor(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("c.spl", []byte("x"))
	bag := diag.NewBag(0)
	bag.Add(diag.NewError(diag.SynUnexpectedToken, source.Span{File: fileID, Start: 0, End: 1}, "boom"))

	var plain, colored bytes.Buffer
	Pretty(&plain, bag, fs, PrettyOpts{})
	Pretty(&colored, bag, fs, PrettyOpts{Color: true})
	if strings.Contains(plain.String(), "\x1b[") {
		t.Fatal("plain output contains escape codes")
	}
	if !strings.Contains(colored.String(), "\x1b[") {
		t.Fatal("colored output lacks escape codes")
	}
}
