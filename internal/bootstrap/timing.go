package bootstrap

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/bnema/tilewm/internal/logging"
)

// Phase is one timed step of a run.
type Phase struct {
	Name     string
	Duration time.Duration
}

// PhaseTimer measures consecutive phases of a run, such as loading a
// scenario, building its tree and replaying its commands.
type PhaseTimer struct {
	mu     sync.Mutex
	now    func() time.Time
	start  time.Time
	last   time.Time
	phases []Phase
}

// NewPhaseTimer starts a timer.
func NewPhaseTimer() *PhaseTimer {
	return newPhaseTimer(time.Now)
}

func newPhaseTimer(now func() time.Time) *PhaseTimer {
	t := now()
	return &PhaseTimer{now: now, start: t, last: t}
}

// Mark closes the current phase under name and starts the next one.
func (t *PhaseTimer) Mark(name string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	now := t.now()
	t.phases = append(t.phases, Phase{Name: name, Duration: now.Sub(t.last)})
	t.last = now
}

// Phases returns the recorded phases in order.
func (t *PhaseTimer) Phases() []Phase {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]Phase(nil), t.phases...)
}

// Total returns the time since the timer started.
func (t *PhaseTimer) Total() time.Duration {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.now().Sub(t.start)
}

// Log writes all phases as one record at level.
func (t *PhaseTimer) Log(ctx context.Context, level zerolog.Level) {
	total := t.Total()
	event := logging.FromContext(ctx).WithLevel(level).Dur("total", total)
	for _, p := range t.Phases() {
		event = event.Dur(p.Name, p.Duration)
	}
	event.Msg("timing")
}
