// Package trace records nested spans of a sapling invocation so that slow or
// stuck builds can be inspected after the fact.
//
// Spans travel through context.Context: the command opens a root span, the
// build pipeline opens one per build, the driver one per file and one per
// phase (lex, parse, codegen). Level decides how deep that tree is recorded.
//
//	ctx = trace.WithTracer(ctx, tracer)
//	ctx, span := trace.Start(ctx, trace.ScopeFile, "compile_file", trace.String("path", p))
//	defer span.End("")
//
// Events go to a Stream (written as they happen), a Ring (the last N events,
// dumped on exit) or both.
package trace
