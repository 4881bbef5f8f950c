package diagfmt

import (
	"bytes"
	"testing"

	"sapling/internal/diag"
	"sapling/internal/source"
)

func TestShort(t *testing.T) {
	fs := source.NewFileSet()
	fs.SetBaseDir("/workspace")
	file := fs.Add("/workspace/src/main.spl", []byte("fn a {\n  b(\n"), 0)

	bag := diag.NewBag(0)
	bag.Add(diag.NewError(diag.SynUnclosedDelimiter, source.Span{File: file, Start: 10, End: 11}, "unclosed\n  delimiter").
		WithNote(source.Span{File: file, Start: 5, End: 6}, "block opened here"))
	bag.Add(diag.New(diag.SevInfo, diag.ObsTimings, source.Span{File: 99}, "lex 1ms"))

	tests := []struct {
		name string
		opts ShortOpts
		want string
	}{
		{
			name: "with notes",
			opts: ShortOpts{PathMode: PathModeRelative, Notes: true},
			want: "error SYN2002 src/main.spl:2:4 unclosed delimiter\n" +
				"note SYN2002 src/main.spl:1:6 block opened here\n" +
				"info OBS6001 - lex 1ms\n",
		},
		{
			name: "basename without notes",
			opts: ShortOpts{PathMode: PathModeBasename},
			want: "error SYN2002 main.spl:2:4 unclosed delimiter\n" +
				"info OBS6001 - lex 1ms\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			if err := Short(&buf, bag, fs, tt.opts); err != nil {
				t.Fatal(err)
			}
			if buf.String() != tt.want {
				t.Fatalf("got:\n%s\nwant:\n%s", buf.String(), tt.want)
			}
		})
	}
}
