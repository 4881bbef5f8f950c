// Package buildpipeline compiles many sapling files concurrently and writes
// the generated JavaScript next to each other under one output directory.
package buildpipeline

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"sapling/internal/codegen"
	"sapling/internal/driver"
	"sapling/internal/trace"
)

// ErrBuildFailed is returned when at least one file did not compile or
// could not be written.
var ErrBuildFailed = errors.New("build failed")

// BuildRequest configures a build.
type BuildRequest struct {
	Files          []string
	BaseDir        string
	OutDir         string
	Jobs           int
	MaxDiagnostics int
	Codegen        codegen.Options
	Cache          *driver.DiskCache
	Progress       ProgressSink
}

// FileResult is the outcome for one source file.
type FileResult struct {
	Path       string
	Name       string
	OutputPath string
	Compile    *driver.CompileResult
	Err        error
}

// OK reports whether the file compiled and was written.
func (r FileResult) OK() bool {
	return r.Err == nil && r.Compile.OK()
}

// BuildResult captures per-file results and timings.
type BuildResult struct {
	Files   []FileResult
	Timings *Timings
	Failed  int
	Cached  int
}

var phaseStage = map[string]Stage{
	driver.PhaseLex:     StageLex,
	driver.PhaseParse:   StageParse,
	driver.PhaseCodegen: StageGenerate,
}

// Build compiles every file with at most Jobs files in flight. A failing file
// does not stop the others; Build then returns ErrBuildFailed.
func Build(ctx context.Context, req *BuildRequest) (BuildResult, error) {
	result := BuildResult{Timings: &Timings{}}
	if req == nil {
		return result, fmt.Errorf("missing build request")
	}
	if req.OutDir == "" {
		return result, fmt.Errorf("missing output directory")
	}
	jobs := req.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	names, files := DisplayNames(req.Files, req.BaseDir)
	result.Files = make([]FileResult, len(files))
	emitQueued(req.Progress, names)

	ctx, span := trace.Start(ctx, trace.ScopeCommand, "build",
		trace.Int("files", len(files)), trace.Int("jobs", jobs))

	if err := os.MkdirAll(req.OutDir, 0o750); err != nil {
		span.End("failed")
		return result, fmt.Errorf("failed to create output dir: %w", err)
	}

	var failed, cached atomic.Int32
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(jobs)
	for i := range files {
		g.Go(func() error {
			fr := buildFile(gctx, req, files[i], names[i], result.Timings)
			result.Files[i] = fr
			if !fr.OK() {
				failed.Add(1)
			}
			if fr.Compile != nil && fr.Compile.Cached {
				cached.Add(1)
			}
			// отмена контекста прерывает всю сборку, остальные ошибки валят только файл
			if fr.Err != nil && gctx.Err() != nil {
				return fr.Err
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		span.End("cancelled")
		return result, err
	}

	result.Failed = int(failed.Load())
	result.Cached = int(cached.Load())
	if result.Failed > 0 {
		span.End("failed")
		return result, fmt.Errorf("%w: %d of %d files", ErrBuildFailed, result.Failed, len(files))
	}
	span.End("")
	return result, nil
}

func buildFile(ctx context.Context, req *BuildRequest, path, name string, timings *Timings) FileResult {
	fr := FileResult{Path: path, Name: name, OutputPath: outputPath(req.OutDir, name)}
	started := time.Now()

	opts := driver.CompileOptions{
		MaxDiagnostics: req.MaxDiagnostics,
		Codegen:        req.Codegen,
		Cache:          req.Cache,
		Observer: func(ev driver.PhaseEvent) {
			stage, ok := phaseStage[ev.Name]
			if !ok {
				return
			}
			if ev.Status == driver.PhaseStart {
				emit(req.Progress, Event{File: name, Stage: stage, Status: StatusWorking})
				return
			}
			timings.Add(stage, ev.Elapsed)
		},
	}
	res, err := driver.Compile(ctx, path, opts)
	fr.Compile = res
	if err != nil {
		fr.Err = err
		emit(req.Progress, Event{File: name, Stage: StageLex, Status: StatusError, Err: err, Elapsed: time.Since(started)})
		return fr
	}
	if !res.OK() {
		emit(req.Progress, Event{File: name, Stage: lastStage(res), Status: StatusError, Elapsed: time.Since(started)})
		return fr
	}

	emit(req.Progress, Event{File: name, Stage: StageWrite, Status: StatusWorking, Cached: res.Cached})
	writeStart := time.Now()
	err = writeOutput(fr.OutputPath, res.Output)
	timings.Add(StageWrite, time.Since(writeStart))
	if err != nil {
		fr.Err = err
		emit(req.Progress, Event{File: name, Stage: StageWrite, Status: StatusError, Err: err, Elapsed: time.Since(started)})
		return fr
	}
	emit(req.Progress, Event{File: name, Stage: StageWrite, Status: StatusDone, Elapsed: time.Since(started), Cached: res.Cached})
	return fr
}

// lastStage is the stage a failed compile stopped in.
func lastStage(res *driver.CompileResult) Stage {
	if res.Nodes == nil && res.Output == "" {
		return StageParse
	}
	return StageGenerate
}

func writeOutput(path, content string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return fmt.Errorf("failed to create %q: %w", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		return fmt.Errorf("failed to write build output %q: %w", path, err)
	}
	return nil
}
