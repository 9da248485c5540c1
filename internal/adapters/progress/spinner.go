package progress

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/briandowns/spinner"
	"github.com/degenpro/depr-deploy/internal/domain/config"
	"github.com/degenpro/depr-deploy/internal/usecase"
	"github.com/fatih/color"
)

// SpinnerProgressReporter shows a spinner while a transaction is pending and
// prints one line per confirmed step
type SpinnerProgressReporter struct {
	spinner *spinner.Spinner
	out     io.Writer
	stages  []stageInfo
}

type stageInfo struct {
	Stage     usecase.ExecutionStage
	Message   string
	StartTime time.Time
	EndTime   time.Time
}

// NewSpinnerProgressReporter creates a new spinner-based progress reporter
func NewSpinnerProgressReporter(out io.Writer) *SpinnerProgressReporter {
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(os.Stderr))
	s.HideCursor = false

	return &SpinnerProgressReporter{
		spinner: s,
		out:     out,
	}
}

// NewProgressSink picks the spinner for interactive table output and stays
// quiet otherwise, so json and yaml documents on stdout stay parseable
func NewProgressSink(cfg *config.RuntimeConfig) usecase.ProgressSink {
	if cfg.NonInteractive || (cfg.Output != "" && cfg.Output != "table") {
		return usecase.NopProgress{}
	}
	return NewSpinnerProgressReporter(os.Stdout)
}

// OnProgress handles progress events
func (r *SpinnerProgressReporter) OnProgress(ctx context.Context, event usecase.ProgressEvent) {
	if event.Stage != "" {
		r.beginStage(usecase.ExecutionStage(event.Stage), event.Message)
	}

	if event.Spinner {
		r.spinner.Suffix = " " + event.Message
		if event.Total > 0 {
			r.spinner.Suffix = fmt.Sprintf(" [%d/%d] %s", event.Current, event.Total, event.Message)
		}
		if !r.spinner.Active() {
			r.spinner.Start()
		}
		return
	}

	if r.spinner.Active() {
		r.spinner.Stop()
	}
	r.endStage()
}

// Info prints an info message
func (r *SpinnerProgressReporter) Info(message string) {
	r.printPaused(color.New(color.FgCyan), message)
}

// Error prints an error message
func (r *SpinnerProgressReporter) Error(message string) {
	r.printPaused(color.New(color.FgRed), message)
}

// Stages returns the stages seen so far with their durations
func (r *SpinnerProgressReporter) Stages() []string {
	lines := make([]string, 0, len(r.stages))
	for _, stage := range r.stages {
		line := fmt.Sprintf("%s %s", stage.Stage, stage.Message)
		if !stage.EndTime.IsZero() {
			line += fmt.Sprintf(" (%s)", stage.EndTime.Sub(stage.StartTime).Round(time.Millisecond))
		}
		lines = append(lines, line)
	}
	return lines
}

func (r *SpinnerProgressReporter) printPaused(c *color.Color, message string) {
	wasActive := r.spinner.Active()
	if wasActive {
		r.spinner.Stop()
	}

	c.Fprintln(r.out, message)

	if wasActive {
		r.spinner.Start()
	}
}

func (r *SpinnerProgressReporter) beginStage(stage usecase.ExecutionStage, message string) {
	r.endStage()
	r.stages = append(r.stages, stageInfo{
		Stage:     stage,
		Message:   message,
		StartTime: time.Now(),
	})
}

func (r *SpinnerProgressReporter) endStage() {
	if len(r.stages) == 0 {
		return
	}
	last := &r.stages[len(r.stages)-1]
	if last.EndTime.IsZero() {
		last.EndTime = time.Now()
	}
}

var _ usecase.ProgressSink = (*SpinnerProgressReporter)(nil)
