package exporter

import (
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/progress"
)

// exportProgressBar counts exported notes on one terminal line. The total
// grows as linked notes are discovered, so the ratio can drop. A nil bar
// ignores every call.
type exportProgressBar struct {
	out   io.Writer
	bar   progress.Model
	done  int
	total int
	label string
	drawn int
}

func newExportProgressBar(out io.Writer, cols int) *exportProgressBar {
	return &exportProgressBar{
		out:   out,
		total: 1,
		bar:   progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage(), progress.WithWidth(progressWidth(cols))),
	}
}

func progressWidth(cols int) int {
	if cols <= 0 {
		return 36
	}
	return min(max(cols-40, 16), 64)
}

func (p *exportProgressBar) Grow(n int) {
	if p == nil || n <= 0 {
		return
	}
	p.total += n
}

func (p *exportProgressBar) Advance(label string) {
	if p == nil {
		return
	}
	p.done = min(p.done+1, p.total)
	p.label = label
	p.draw()
}

func (p *exportProgressBar) Finish(label string) {
	if p == nil {
		return
	}
	p.done = p.total
	p.label = label
	p.draw()
	fmt.Fprintln(p.out)
	p.drawn = 0
}

func (p *exportProgressBar) Close() {
	if p == nil || p.drawn == 0 {
		return
	}
	fmt.Fprintln(p.out)
	p.drawn = 0
}

func (p *exportProgressBar) draw() {
	line := fmt.Sprintf("%s %d/%d %s", p.bar.ViewAs(float64(p.done)/float64(p.total)), p.done, p.total, p.label)
	fmt.Fprintf(p.out, "\r%-*s", p.drawn, line)
	p.drawn = len(line)
}
