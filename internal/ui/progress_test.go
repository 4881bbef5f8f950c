package ui

import (
	"errors"
	"math"
	"strings"
	"testing"
	"time"

	"sapling/internal/buildpipeline"
)

func TestApplyTracksRows(t *testing.T) {
	v := NewBuildView("build", []string{"a.spl", "b.spl"}, nil)

	v.apply(buildpipeline.Event{File: "a.spl", Stage: buildpipeline.StageParse, Status: buildpipeline.StatusWorking})
	if v.rows[0].state != rowRunning || v.rows[0].statusCell() == "" {
		t.Fatalf("row a = %+v", v.rows[0])
	}
	v.apply(buildpipeline.Event{File: "b.spl", Stage: buildpipeline.StageWrite, Status: buildpipeline.StatusDone, Cached: true})
	if v.rows[1].state != rowCached {
		t.Fatalf("row b = %+v", v.rows[1])
	}
	v.apply(buildpipeline.Event{File: "unknown.spl", Status: buildpipeline.StatusDone})

	if got := v.Fraction(); math.Abs(got-0.65) > 1e-9 {
		t.Fatalf("Fraction = %v", got)
	}

	v.apply(buildpipeline.Event{
		File: "a.spl", Stage: buildpipeline.StageParse, Status: buildpipeline.StatusError,
		Err: errors.New("unexpected token\nmore detail"),
	})
	if v.rows[0].err != "unexpected token" {
		t.Fatalf("error line = %q", v.rows[0].err)
	}
	if v.Fraction() != 1 {
		t.Fatalf("all files finished, Fraction = %v", v.Fraction())
	}
	if finished, failed := v.counts(); finished != 2 || failed != 1 {
		t.Fatalf("counts = %d, %d", finished, failed)
	}
}

func TestViewListsRows(t *testing.T) {
	v := NewBuildView("sapling build", []string{"main.spl", "util.spl"}, nil)
	v.apply(buildpipeline.Event{File: "main.spl", Stage: buildpipeline.StageLex, Status: buildpipeline.StatusWorking})
	v.apply(buildpipeline.Event{File: "util.spl", Stage: buildpipeline.StageWrite, Status: buildpipeline.StatusDone, Elapsed: 12 * time.Millisecond})
	view := v.View()
	for _, want := range []string{"sapling build", "1/2", "lexing", "main.spl", "built", "12ms"} {
		if !strings.Contains(view, want) {
			t.Fatalf("view missing %q:\n%s", want, view)
		}
	}
	if NewBuildView("x", nil, nil).View() != "" {
		t.Fatal("empty view must render nothing")
	}
}

func TestUpdateQuitsWhenEventsClose(t *testing.T) {
	events := make(chan buildpipeline.Event)
	close(events)
	v := NewBuildView("build", []string{"a.spl"}, events)
	msg := v.next()
	if _, ok := msg.(pipelineClosedMsg); !ok {
		t.Fatalf("next() = %T", msg)
	}
	_, cmd := v.Update(msg)
	if !v.closed || cmd == nil {
		t.Fatal("closed channel must finish the view")
	}
}

func TestTruncate(t *testing.T) {
	cases := []struct {
		in    string
		width int
		want  string
	}{
		{"short", 10, "short"},
		{"averyverylongname.spl", 10, "averyve..."},
		{"abcdef", 3, "abc"},
		{"日本語のファイル", 9, "日本語..."},
	}
	for _, tc := range cases {
		if got := truncate(tc.in, tc.width); got != tc.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", tc.in, tc.width, got, tc.want)
		}
	}
}
