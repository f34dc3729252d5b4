package types

import (
	"fmt"
	"io"
	"strconv"

	"github.com/gosuri/uilive"
)

// TerminalProgress rewrites a single status line for the running
// experiment every `frequency` episodes
type TerminalProgress struct {
	name      string
	frequency int
	writer    *uilive.Writer
	started   bool
}

var _ Progress = &TerminalProgress{}

func NewTerminalProgress(out io.Writer, name string, frequency int) *TerminalProgress {
	if frequency < 1 {
		frequency = 1
	}
	writer := uilive.New()
	writer.Out = out
	return &TerminalProgress{
		name:      name,
		frequency: frequency,
		writer:    writer,
	}
}

func (p *TerminalProgress) Episode(episode, total int, stats *Stats) {
	if episode%p.frequency != 0 && episode != total {
		return
	}
	if !p.started {
		p.writer.Start()
		p.started = true
	}
	padding := len(strconv.Itoa(total))
	fmt.Fprintf(p.writer, "Exp:%s, Eps:%*d/%d, Wins:%*d, Lost:%*d, Trunc:%*d\n",
		p.name, padding, episode, total,
		padding, stats.Count(OutcomeWon), padding, stats.Count(OutcomeLost), padding, stats.Count(OutcomeTruncated))
	if episode == total {
		p.Stop()
	}
}

// Stop flushes the last status line
func (p *TerminalProgress) Stop() {
	if !p.started {
		return
	}
	p.writer.Stop()
	p.started = false
}
