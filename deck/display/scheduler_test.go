package display

import (
	"testing"
	"time"
)

type testClock struct {
	now time.Time
}

func (c *testClock) Now() time.Time          { return c.now }
func (c *testClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func newTestScheduler() (*Scheduler, *testClock) {
	clock := &testClock{now: time.Unix(5000, 0)}
	return NewScheduler(time.Second, 2*time.Second, clock.Now), clock
}

func TestFirstTickRendersClock(t *testing.T) {
	s, _ := newTestScheduler()
	v, due := s.Tick()
	if !due || v.Kind != ViewClock {
		t.Fatalf("first tick: due=%v view=%+v", due, v)
	}
}

func TestOneClockRenderPerInterval(t *testing.T) {
	s, clock := newTestScheduler()
	s.Tick() // initial render

	// Poll every 10ms for 3 full intervals: exactly 3 renders.
	renders := 0
	for i := 0; i < 300; i++ {
		clock.Advance(10 * time.Millisecond)
		if _, due := s.Tick(); due {
			renders++
		}
	}
	if renders != 3 {
		t.Fatalf("renders = %d, want 3", renders)
	}
}

func TestActionSwitchesToStatus(t *testing.T) {
	s, _ := newTestScheduler()
	s.Tick()

	v := s.NoteAction(0, 7, "PLAY")
	if v.Kind != ViewStatus || v.EncoderValue != 7 || v.Label != "PLAY" {
		t.Fatalf("status view = %+v", v)
	}
}

func TestStatusSuppressesClockUntilLingerElapses(t *testing.T) {
	// An action in clock mode enters status mode; no clock
	// render occurs until the revert threshold elapses, then exactly one.
	s, clock := newTestScheduler()
	s.Tick()

	clock.Advance(600 * time.Millisecond)
	s.NoteAction(0, 0, "NEXT")

	renders := 0
	for i := 0; i < 199; i++ { // 1990ms, just inside the 2s window
		clock.Advance(10 * time.Millisecond)
		if _, due := s.Tick(); due {
			renders++
		}
	}
	if renders != 0 {
		t.Fatalf("%d renders inside the status window", renders)
	}

	clock.Advance(20 * time.Millisecond) // deadline passed
	v, due := s.Tick()
	if !due || v.Kind != ViewClock {
		t.Fatalf("revert render: due=%v view=%+v", due, v)
	}
	if _, due := s.Tick(); due {
		t.Fatal("double render on revert")
	}
}

func TestActionRestartsLinger(t *testing.T) {
	s, clock := newTestScheduler()
	s.Tick()

	s.NoteAction(0, 1, "VOL+")
	clock.Advance(1500 * time.Millisecond)
	s.NoteAction(0, 2, "VOL+")

	// 1.5s after the second action: still inside its window.
	clock.Advance(1500 * time.Millisecond)
	if _, due := s.Tick(); due {
		t.Fatal("linger deadline did not restart")
	}
	clock.Advance(600 * time.Millisecond)
	if v, due := s.Tick(); !due || v.Kind != ViewClock {
		t.Fatal("clock did not return after restarted window")
	}
}

func TestClockCadenceResumesAfterRevert(t *testing.T) {
	s, clock := newTestScheduler()
	s.Tick()
	s.NoteAction(0, 0, "MUTE")

	clock.Advance(2 * time.Second)
	if _, due := s.Tick(); !due {
		t.Fatal("revert render missing")
	}

	// Next periodic render one full interval after the revert.
	clock.Advance(990 * time.Millisecond)
	if _, due := s.Tick(); due {
		t.Fatal("early periodic render")
	}
	clock.Advance(10 * time.Millisecond)
	if _, due := s.Tick(); !due {
		t.Fatal("periodic render missing after revert")
	}
}
