package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/xyproto/env/v2"

	"sapling/internal/buildpipeline"
	"sapling/internal/ui"
)

// progressMode is the value of `build --ui`.
type progressMode uint8

const (
	progressAuto progressMode = iota
	progressOn
	progressOff
)

func parseProgressMode(value string) (progressMode, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "auto":
		return progressAuto, nil
	case "on":
		return progressOn, nil
	case "off":
		return progressOff, nil
	}
	return progressAuto, fmt.Errorf("invalid --ui value %q (expected auto|on|off)", value)
}

// enabled resolves auto: no UI when quiet, on CI, on a dumb terminal or when
// stdout is not a terminal.
func (m progressMode) enabled(quiet bool) bool {
	if m != progressAuto {
		return m == progressOn
	}
	if quiet || env.Str("CI") != "" || env.Str("TERM") == "dumb" {
		return false
	}
	return isTerminal(os.Stdout)
}

// runBuildWithUI runs the build on its own goroutine and renders its events
// until the pipeline closes the channel.
func runBuildWithUI(ctx context.Context, title string, names []string, req *buildpipeline.BuildRequest) (buildpipeline.BuildResult, error) {
	if req == nil {
		return buildpipeline.BuildResult{}, errors.New("missing build request")
	}
	events := make(chan buildpipeline.Event, 256)
	var (
		res      buildpipeline.BuildResult
		buildErr error
	)
	finished := make(chan struct{})

	withSink := *req
	withSink.Progress = buildpipeline.ChannelSink{Ch: events}
	go func() {
		defer close(finished)
		defer close(events)
		res, buildErr = buildpipeline.Build(ctx, &withSink)
	}()

	_, uiErr := tea.NewProgram(ui.NewBuildView(title, names, events), tea.WithOutput(os.Stdout)).Run()
	// после ctrl+c или ошибки UI канал дочитываем сами, иначе сборка встанет
	for range events {
	}
	<-finished
	if uiErr != nil {
		return res, fmt.Errorf("progress ui: %w", uiErr)
	}
	return res, buildErr
}
