// Package ui renders `sapling build` progress in the terminal.
package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-runewidth"

	"sapling/internal/buildpipeline"
)

// row is one source file in the list.
type row struct {
	name    string
	stage   buildpipeline.Stage
	state   rowState
	elapsed time.Duration
	err     string
}

type rowState uint8

const (
	rowQueued rowState = iota
	rowRunning
	rowBuilt
	rowCached
	rowFailed
)

func (r row) finished() bool { return r.state >= rowBuilt }

// stageShare is how much of one file is done once the stage has started.
var stageShare = map[buildpipeline.Stage]float64{
	buildpipeline.StageLex:      0.1,
	buildpipeline.StageParse:    0.3,
	buildpipeline.StageGenerate: 0.6,
	buildpipeline.StageWrite:    0.9,
}

var stageVerb = map[buildpipeline.Stage]string{
	buildpipeline.StageLex:      "lexing",
	buildpipeline.StageParse:    "parsing",
	buildpipeline.StageGenerate: "generating",
	buildpipeline.StageWrite:    "writing",
}

// BuildView is a Bubble Tea model fed by build pipeline events. It quits
// once the event channel is closed.
type BuildView struct {
	title  string
	events <-chan buildpipeline.Event
	spin   spinner.Model
	bar    progress.Model
	rows   []row
	byName map[string]int
	width  int
	closed bool
}

type pipelineMsg buildpipeline.Event

type pipelineClosedMsg struct{}

const statusColumn = 11

// NewBuildView lists names as queued rows and reads updates from events.
func NewBuildView(title string, names []string, events <-chan buildpipeline.Event) *BuildView {
	v := &BuildView{
		title:  title,
		events: events,
		spin:   spinner.New(spinner.WithSpinner(spinner.MiniDot), spinner.WithStyle(accentStyle)),
		bar:    progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage()),
		rows:   make([]row, len(names)),
		byName: make(map[string]int, len(names)),
		width:  80,
	}
	v.bar.Width = v.width - 10
	for i, name := range names {
		v.rows[i] = row{name: name}
		v.byName[name] = i
	}
	return v
}

func (v *BuildView) Init() tea.Cmd {
	return tea.Batch(v.spin.Tick, v.next)
}

// next blocks on the event channel; Bubble Tea runs it off the UI loop.
func (v *BuildView) next() tea.Msg {
	ev, ok := <-v.events
	if !ok {
		return pipelineClosedMsg{}
	}
	return pipelineMsg(ev)
}

func (v *BuildView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case pipelineMsg:
		return v, tea.Batch(v.apply(buildpipeline.Event(msg)), v.next)
	case pipelineClosedMsg:
		v.closed = true
		return v, tea.Quit
	case tea.KeyMsg:
		// сборку не прерываем, только перестаём рисовать
		if msg.String() == "ctrl+c" {
			return v, tea.Quit
		}
	case tea.WindowSizeMsg:
		if msg.Width > 20 {
			v.width = msg.Width
			v.bar.Width = msg.Width - 10
		}
	case spinner.TickMsg:
		if !v.closed {
			var cmd tea.Cmd
			v.spin, cmd = v.spin.Update(msg)
			return v, cmd
		}
	case progress.FrameMsg:
		m, cmd := v.bar.Update(msg)
		v.bar = m.(progress.Model)
		return v, cmd
	}
	return v, nil
}

// apply folds one event into the rows and returns the bar animation.
func (v *BuildView) apply(ev buildpipeline.Event) tea.Cmd {
	i, ok := v.byName[ev.File]
	if !ok {
		return nil
	}
	r := &v.rows[i]
	r.stage = ev.Stage
	switch ev.Status {
	case buildpipeline.StatusWorking:
		r.state = rowRunning
	case buildpipeline.StatusDone:
		r.state = rowBuilt
		if ev.Cached {
			r.state = rowCached
		}
		r.elapsed = ev.Elapsed
	case buildpipeline.StatusError:
		r.state = rowFailed
		r.elapsed = ev.Elapsed
		if ev.Err != nil {
			r.err, _, _ = strings.Cut(ev.Err.Error(), "\n")
		}
	}
	return v.bar.SetPercent(v.Fraction())
}

// Fraction is the overall completion in [0, 1].
func (v *BuildView) Fraction() float64 {
	if len(v.rows) == 0 {
		return 0
	}
	var sum float64
	for _, r := range v.rows {
		switch {
		case r.finished():
			sum++
		case r.state == rowRunning:
			sum += stageShare[r.stage]
		}
	}
	return sum / float64(len(v.rows))
}

func (v *BuildView) counts() (finished, failed int) {
	for _, r := range v.rows {
		if r.finished() {
			finished++
		}
		if r.state == rowFailed {
			failed++
		}
	}
	return finished, failed
}

func (v *BuildView) View() string {
	if len(v.rows) == 0 {
		return ""
	}
	finished, failed := v.counts()
	mark := v.spin.View()
	if v.closed {
		mark = doneStyle.Render("✓")
		if failed > 0 {
			mark = failStyle.Render("✗")
		}
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s %s\n\n", mark, titleStyle.Render(v.title),
		dimStyle.Render(fmt.Sprintf("%d/%d", finished, len(v.rows))))

	nameWidth := max(v.width-statusColumn-14, 16)
	for _, r := range v.rows {
		b.WriteString("  ")
		b.WriteString(r.statusCell())
		b.WriteByte(' ')
		b.WriteString(runewidth.FillRight(truncate(r.name, nameWidth), nameWidth))
		if r.finished() && r.elapsed > 0 {
			b.WriteString(dimStyle.Render(" " + r.elapsed.Round(time.Millisecond).String()))
		}
		b.WriteByte('\n')
		if r.err != "" {
			b.WriteString(strings.Repeat(" ", statusColumn+3))
			b.WriteString(failStyle.Render(truncate(r.err, nameWidth)))
			b.WriteByte('\n')
		}
	}
	b.WriteByte('\n')
	if v.closed {
		b.WriteString(v.bar.ViewAs(1))
	} else {
		b.WriteString(v.bar.View())
	}
	b.WriteByte('\n')
	return b.String()
}

func (r row) statusCell() string {
	var label string
	style := dimStyle
	switch r.state {
	case rowQueued:
		label = "queued"
	case rowRunning:
		label, style = stageVerb[r.stage], accentStyle
	case rowBuilt:
		label, style = "built", doneStyle
	case rowCached:
		label, style = "cached", doneStyle
	case rowFailed:
		label, style = "failed", failStyle
	}
	return style.Render(fmt.Sprintf("%*s", statusColumn, label))
}

// truncate shortens value to width terminal cells, marking the cut with "...".
func truncate(value string, width int) string {
	switch {
	case width <= 0 || runewidth.StringWidth(value) <= width:
		return value
	case width <= 3:
		return runewidth.Truncate(value, width, "")
	}
	return runewidth.Truncate(value, width, "...")
}
