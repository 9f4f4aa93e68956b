// Package poll decides when the task list should be refetched.
//
// Polling stands in for server push: the board refetches on an interval that
// adapts to terminal visibility. A hidden board polls not at all, a visible
// but unfocused one polls slowly, and regaining focus triggers an immediate
// refetch. Intervals are only ever slowed from the base, never sped up.
package poll

import (
	"sync"
	"time"
)

// Visibility describes how visible the board currently is.
type Visibility int

const (
	Hidden Visibility = iota
	Visible
	Focused
)

func (v Visibility) String() string {
	switch v {
	case Hidden:
		return "hidden"
	case Visible:
		return "visible"
	case Focused:
		return "focused"
	default:
		return "unknown"
	}
}

// Scheduler is the polling policy for one board.
type Scheduler struct {
	mu         sync.Mutex
	visibility Visibility
	focused    time.Duration
	blurred    time.Duration
}

// NewScheduler creates a scheduler with the given focused and blurred
// intervals. The blurred interval is clamped to at least the focused one so
// losing focus can only slow polling down.
func NewScheduler(focused, blurred time.Duration) *Scheduler {
	if blurred < focused {
		blurred = focused
	}
	return &Scheduler{
		visibility: Focused,
		focused:    focused,
		blurred:    blurred,
	}
}

// SetVisibility records a visibility change and reports whether an
// immediate refetch should fire, which it does whenever the board becomes
// more visible than it was.
func (s *Scheduler) SetVisibility(v Visibility) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev := s.visibility
	s.visibility = v
	return v > prev
}

// Visibility returns the current visibility state.
func (s *Scheduler) Visibility() Visibility {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.visibility
}

// ShouldPoll reports whether periodic polling is active at all.
func (s *Scheduler) ShouldPoll() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.visibility != Hidden
}

// Interval returns the current polling interval. Zero means polling is
// suspended; callers must re-check after the next visibility change.
func (s *Scheduler) Interval() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch s.visibility {
	case Hidden:
		return 0
	case Visible:
		return s.blurred
	default:
		return s.focused
	}
}
