package fuzztests

import (
	"reflect"
	"testing"

	"sapling/internal/diag"
	"sapling/internal/lexer"
	"sapling/internal/source"
	"sapling/internal/testkit"
)

func FuzzLexer(f *testing.F) {
	addCorpusSeeds(f)
	f.Fuzz(func(t *testing.T, input []byte) {
		input = clampInput(input)

		fs := source.NewFileSet()
		content, flags := source.Normalize(input)
		file := fs.Get(fs.Add("fuzz.spl", content, flags|source.FileVirtual))

		bag := diag.NewBag(64)
		toks := lexer.TokenizeFile(file, lexer.Options{Reporter: diag.BagReporter{Bag: bag}})

		if err := testkit.CheckTokenInvariants(toks, file); err != nil {
			t.Fatal(err)
		}

		again := lexer.TokenizeFile(file, lexer.Options{})
		if !reflect.DeepEqual(toks, again) {
			t.Fatal("tokenizing twice gave different results")
		}
	})
}
