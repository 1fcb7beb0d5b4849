package main

import (
	"io"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// phase is one timed step of processing a file.
type phase struct {
	name    string
	elapsed time.Duration
}

// phaseTimer records consecutive phases. Each mark closes the phase that
// started at the previous mark (or at creation).
type phaseTimer struct {
	now    func() time.Time
	last   time.Time
	phases []phase
}

func newPhaseTimer(now func() time.Time) *phaseTimer {
	if now == nil {
		now = time.Now
	}
	return &phaseTimer{now: now, last: now()}
}

// mark ends the current phase under name and starts the next one.
func (t *phaseTimer) mark(name string) {
	end := t.now()
	t.phases = append(t.phases, phase{name: name, elapsed: end.Sub(t.last)})
	t.last = end
}

// elapsed returns the duration recorded for name, or 0.
func (t *phaseTimer) elapsed(name string) time.Duration {
	for _, p := range t.phases {
		if p.name == name {
			return p.elapsed
		}
	}
	return 0
}

// format renders the phases as "Load Time: 12 ms | Blur Time: 1,234 ms".
func (t *phaseTimer) format(p *message.Printer) string {
	parts := make([]string, len(t.phases))
	for i, ph := range t.phases {
		parts[i] = p.Sprintf("%s Time: %d ms", ph.name, ph.elapsed.Milliseconds())
	}
	return strings.Join(parts, " | ")
}

// report writes the formatted phases to w, prefixed when prefix is set.
func (t *phaseTimer) report(w io.Writer, prefix string) error {
	line := t.format(message.NewPrinter(language.English))
	if prefix != "" {
		line = prefix + ": " + line
	}
	_, err := io.WriteString(w, line+"\n")
	return err
}
