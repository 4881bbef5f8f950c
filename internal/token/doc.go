// Package token defines lexical token kinds for the sapling language.
// Invariants:
//   - Token.Text is the lexeme exactly as written; string tokens keep their quotes.
//   - Token.Loc points at the first character of the lexeme (1-based line and column).
//   - Token.Span matches Text in the owning source file (Start..End, bytes).
//   - Comments and whitespace never produce tokens.
//   - Commas separate lexemes but are not tokens themselves.
package token
