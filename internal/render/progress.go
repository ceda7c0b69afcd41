package render

import (
	"fmt"
	"io"
	"sync"

	"github.com/charmbracelet/bubbles/progress"
)

// ProgressReporter renders a bubbles/progress bar to an io.Writer each time
// Update is called, driven directly by pipeline.Coordinator.OnProgress
// rather than through a full Bubble Tea event loop: recon's progress
// reporting is a one-way status ticker, not an interactive program, so only
// the progress.Model's bar-rendering (ViewAs) is used.
type ProgressReporter struct {
	mu    sync.Mutex
	w     io.Writer
	model progress.Model
	label string
}

// NewProgressReporter creates a reporter writing to w.
func NewProgressReporter(w io.Writer) *ProgressReporter {
	return &ProgressReporter{
		w:     w,
		model: progress.New(progress.WithDefaultGradient()),
	}
}

// Update renders the bar for stage at done/total.
func (p *ProgressReporter) Update(stage string, done, total int) {
	p.mu.Lock()
	defer p.mu.Unlock()

	var pct float64
	if total > 0 {
		pct = float64(done) / float64(total)
	}

	if stage != p.label {
		fmt.Fprintln(p.w)
		p.label = stage
	}

	fmt.Fprintf(p.w, "\r%s %s %d/%d", stage, p.model.ViewAs(pct), done, total)
}

// Done finishes the current line.
func (p *ProgressReporter) Done() {
	p.mu.Lock()
	defer p.mu.Unlock()
	fmt.Fprintln(p.w)
}
