package display

import "time"

const (
	// DefaultRefresh is the clock view redraw cadence.
	DefaultRefresh = 1 * time.Second
	// DefaultLinger is how long a status view stays up before the clock
	// returns.
	DefaultLinger = 2 * time.Second
)

// Scheduler decides, once per control-loop tick, whether a render is due.
//
// Two independent next-due instants drive it: nextClock paces the periodic
// clock redraw, statusUntil (nonzero only while a status view is up) holds
// the revert deadline. While a status view is up no periodic render is due;
// when the deadline passes, a fresh clock render is due immediately.
//
// It is cooperative and single-owner: polled from the loop, never preempting.
type Scheduler struct {
	refresh time.Duration
	linger  time.Duration
	now     func() time.Time

	nextClock   time.Time
	statusUntil time.Time
}

// NewScheduler builds a scheduler; zero durations get the defaults and a nil
// clock uses wall time. The zero nextClock makes the first Tick render the
// clock right away.
func NewScheduler(refresh, linger time.Duration, now func() time.Time) *Scheduler {
	if refresh <= 0 {
		refresh = DefaultRefresh
	}
	if linger <= 0 {
		linger = DefaultLinger
	}
	if now == nil {
		now = time.Now
	}
	return &Scheduler{refresh: refresh, linger: linger, now: now}
}

// Tick reports the view that is due now, if any.
func (s *Scheduler) Tick() (View, bool) {
	now := s.now()

	if !s.statusUntil.IsZero() {
		if now.Before(s.statusUntil) {
			return View{}, false
		}
		s.statusUntil = time.Time{}
		s.nextClock = now.Add(s.refresh)
		return View{Kind: ViewClock, Now: now}, true
	}

	if now.Before(s.nextClock) {
		return View{}, false
	}
	s.nextClock = now.Add(s.refresh)
	return View{Kind: ViewClock, Now: now}, true
}

// NoteAction switches to the status view for an input event and returns the
// view to render immediately. The revert deadline restarts on every action,
// so a burst of input keeps the status up.
func (s *Scheduler) NoteAction(layer, encoderValue int, label string) View {
	s.statusUntil = s.now().Add(s.linger)
	return View{
		Kind:         ViewStatus,
		Layer:        layer,
		EncoderValue: encoderValue,
		Label:        label,
	}
}
