// Package diag defines the diagnostic model shared by the lexer, parser,
// code generator and the driver.
//
// # Data model
//
// Diagnostic is the central record:
//
//   - Severity – tri-level enum (Info, Warning, Error) defined in severity.go.
//   - Code – compact numeric identifier (see codes.go) with stable string form.
//   - Message – human oriented text; keep it short and actionable.
//   - Primary span – the canonical source.Span pointing to the issue.
//   - Notes – optional secondary spans/messages for additional context.
//
// # Emitting diagnostics
//
// Phases use a Reporter to decouple emission from storage. BagReporter
// aggregates diagnostics into a Bag, which supports sorting, deduplication and
// limits. The core pipeline (parser, codegen) returns typed errors instead of
// reporting; the driver converts them with FromError.
//
// Package diag does not perform any formatting or IO. Rendering lives in
// internal/diagfmt.
package diag
