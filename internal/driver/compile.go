package driver

import (
	"context"
	"fmt"

	"sapling/internal/ast"
	"sapling/internal/codegen"
	"sapling/internal/diag"
	"sapling/internal/observ"
	"sapling/internal/parser"
	"sapling/internal/project"
	"sapling/internal/source"
	"sapling/internal/token"
	"sapling/internal/trace"
)

type CompileOptions struct {
	MaxDiagnostics int
	Codegen        codegen.Options
	// Cache may be nil; then every file is compiled from scratch.
	Cache    *DiskCache
	Observer PhaseObserver
}

type CompileResult struct {
	FileSet *source.FileSet
	File    *source.File
	// Tokens and Nodes are nil when Output came from the cache.
	Tokens []token.Token
	Nodes  []ast.Node
	Output string
	Bag    *diag.Bag
	Timing *observ.Timer
	Cached bool
}

// OK reports whether generated output is usable.
func (r *CompileResult) OK() bool {
	return r != nil && !r.Bag.HasErrors()
}

// Compile loads path and runs lex, parse and codegen over it. Diagnostics go
// to the result's Bag; the error is only for I/O failures and cancellation.
func Compile(ctx context.Context, path string, opts CompileOptions) (*CompileResult, error) {
	fs, file, err := loadSource(path)
	if err != nil {
		return nil, err
	}
	return compileFile(ctx, fs, file, opts)
}

// CompileSource is Compile for in-memory content (stdin, tests).
func CompileSource(ctx context.Context, name string, content []byte, opts CompileOptions) (*CompileResult, error) {
	fs := source.NewFileSet()
	normalized, flags := source.Normalize(content)
	fileID := fs.Add(name, normalized, flags|source.FileVirtual)
	return compileFile(ctx, fs, fs.Get(fileID), opts)
}

func compileFile(ctx context.Context, fs *source.FileSet, file *source.File, opts CompileOptions) (*CompileResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	ctx, fileSpan := trace.Start(ctx, trace.ScopeFile, "compile_file", trace.String("path", file.Path))

	res := &CompileResult{
		FileSet: fs,
		File:    file,
		Bag:     diag.NewBag(opts.MaxDiagnostics),
		Timing:  observ.NewTimer(),
	}

	key := CacheKey(project.Digest(file.Hash), opts.Codegen)
	if opts.Cache != nil {
		var payload DiskPayload
		hit, err := opts.Cache.Get(key, &payload)
		switch {
		case err != nil:
			res.Bag.Add(diag.New(diag.SevWarning, diag.IOCacheError, fileStart(file),
				fmt.Sprintf("cache read failed: %v", err)))
		case hit:
			res.Output = payload.Output
			res.Cached = true
			fileSpan.Set("cached", "true").End("")
			return res, nil
		}
	}

	runPhase := func(name string, fn func() error) error {
		opts.Observer.start(name)
		_, span := trace.Start(ctx, trace.ScopePhase, name)
		err := res.Timing.Measure(name, fn)
		detail := ""
		if err != nil {
			detail = "failed"
		}
		span.End(detail)
		opts.Observer.end(name, res.Timing.Duration(name))
		return err
	}

	_ = runPhase(PhaseLex, func() error {
		res.Tokens = lex(file, res.Bag)
		return nil
	})

	if err := runPhase(PhaseParse, func() error {
		nodes, err := parser.Parse(res.Tokens, parser.Context{})
		res.Nodes = nodes
		return err
	}); err != nil {
		res.Bag.Add(diag.FromError(err, fileStart(file)))
		fileSpan.End("parse failed")
		return res, nil
	}

	if err := runPhase(PhaseCodegen, func() error {
		out, err := codegen.Generate(res.Nodes, opts.Codegen)
		res.Output = out
		return err
	}); err != nil {
		res.Bag.Add(diag.FromError(err, fileStart(file)))
		fileSpan.End("codegen failed")
		return res, nil
	}

	// кешируем только чистый результат, иначе предупреждения потеряются при попадании
	if opts.Cache != nil && res.Bag.Len() == 0 {
		err := opts.Cache.Put(key, &DiskPayload{
			Path:        file.Path,
			ContentHash: project.Digest(file.Hash),
			Output:      res.Output,
			TokenCount:  len(res.Tokens),
			NodeCount:   ast.Count(res.Nodes),
		})
		if err != nil {
			res.Bag.Add(diag.New(diag.SevWarning, diag.IOCacheError, fileStart(file),
				fmt.Sprintf("cache write failed: %v", err)))
		}
	}

	fileSpan.End("")
	return res, nil
}
