package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"

	"sapling/internal/source"
	"sapling/internal/token"
)

type TokenOutput struct {
	Kind string      `json:"kind"`
	Text string      `json:"text"`
	Line uint32      `json:"line"`
	Col  uint32      `json:"col"`
	Span source.Span `json:"span"`
}

// FormatTokensPretty выводит токены в человекочитаемом формате:
// заголовок с количеством, затем по строке на токен "<kind> <text> @ line:col".
func FormatTokensPretty(w io.Writer, tokens []token.Token) error {
	if _, err := fmt.Fprintf(w, "# Tokens (%d):\n", len(tokens)); err != nil {
		return err
	}
	for i, tok := range tokens {
		if _, err := fmt.Fprintf(w, "%3d: %-17s %-20s @ %s\n", i+1, tok.Kind, tok.Text, tok.Loc); err != nil {
			return err
		}
	}
	return nil
}

// FormatTokensJSON выводит токены в JSON формате
func FormatTokensJSON(w io.Writer, tokens []token.Token) error {
	output := make([]TokenOutput, 0, len(tokens))
	for _, tok := range tokens {
		output = append(output, TokenOutput{
			Kind: tok.Kind.String(),
			Text: tok.Text,
			Line: tok.Loc.Line,
			Col:  tok.Loc.Col,
			Span: tok.Span,
		})
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(output)
}
