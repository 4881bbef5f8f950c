package driver

import (
	"fmt"

	"sapling/internal/ast"
	"sapling/internal/diag"
	"sapling/internal/lexer"
	"sapling/internal/parser"
	"sapling/internal/source"
	"sapling/internal/token"
)

// Unit is one file taken through the front end: tokens always, nodes when
// parsing was requested and succeeded.
type Unit struct {
	FileSet *source.FileSet
	File    *source.File
	Tokens  []token.Token
	Nodes   []ast.Node
	Bag     *diag.Bag
}

// Tokenize loads path and lexes it. Lexer warnings land in the Bag.
func Tokenize(path string, maxDiagnostics int) (*Unit, error) {
	return openUnit(path, maxDiagnostics)
}

// Parse is Tokenize followed by the parser. A syntax error becomes a
// diagnostic and leaves Nodes nil; the error return is for I/O only.
func Parse(path string, maxDiagnostics int) (*Unit, error) {
	u, err := openUnit(path, maxDiagnostics)
	if err != nil {
		return nil, err
	}
	if u.Nodes, err = parser.Parse(u.Tokens, parser.Context{}); err != nil {
		u.Bag.Add(diag.FromError(err, fileStart(u.File)))
		u.Nodes = nil
	}
	return u, nil
}

func openUnit(path string, maxDiagnostics int) (*Unit, error) {
	fs, file, err := loadSource(path)
	if err != nil {
		return nil, err
	}
	bag := diag.NewBag(maxDiagnostics)
	return &Unit{FileSet: fs, File: file, Tokens: lex(file, bag), Bag: bag}, nil
}

func loadSource(path string) (*source.FileSet, *source.File, error) {
	fs := source.NewFileSet()
	id, err := fs.Load(path)
	if err != nil {
		return nil, nil, fmt.Errorf("load %s: %w", path, err)
	}
	return fs, fs.Get(id), nil
}

func lex(file *source.File, bag *diag.Bag) []token.Token {
	return lexer.TokenizeFile(file, lexer.Options{Reporter: diag.BagReporter{Bag: bag}})
}

// fileStart is the fallback span for errors that carry no position.
func fileStart(file *source.File) source.Span {
	if file == nil {
		return source.Span{}
	}
	return source.Span{File: file.ID}
}
