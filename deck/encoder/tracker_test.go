package encoder

import (
	"errors"
	"testing"
)

type fakeSource struct {
	pos     int
	held    bool
	posErr  error
	heldErr error
}

func (s *fakeSource) Position() (int, error) { return s.pos, s.posErr }
func (s *fakeSource) Pressed() (bool, error) { return s.held, s.heldErr }

func TestDirectionIsSignOfDelta(t *testing.T) {
	// Position 0 -> 1 -> 1 -> 2 gives directions +1, 0, +1.
	src := &fakeSource{}
	tr := New(src)

	want := []struct {
		pos int
		dir int
	}{
		{1, 1},
		{1, 0},
		{2, 1},
		{0, -1},
	}
	for i, w := range want {
		src.pos = w.pos
		dir, clicked, err := tr.Poll()
		if err != nil {
			t.Fatalf("poll %d: %v", i, err)
		}
		if dir != w.dir || clicked {
			t.Fatalf("poll %d: dir=%d clicked=%v, want dir=%d", i, dir, clicked, w.dir)
		}
	}
}

func TestZeroDeltaFreezesStoredPosition(t *testing.T) {
	src := &fakeSource{}
	tr := New(src)

	src.pos = 3
	if dir, _, _ := tr.Poll(); dir != 1 {
		t.Fatal("expected +1")
	}
	// Stored position must now be 3; returning there after a no-op poll must
	// not read as movement.
	if dir, _, _ := tr.Poll(); dir != 0 {
		t.Fatal("expected 0 on unchanged position")
	}
	src.pos = 3
	if dir, _, _ := tr.Poll(); dir != 0 {
		t.Fatal("stored position drifted on zero delta")
	}
}

func TestSustainedPressClicksOnce(t *testing.T) {
	// Switch levels up, down, down, up give clicks false, true,
	// false, false.
	src := &fakeSource{}
	tr := New(src)

	levels := []bool{false, true, true, false}
	want := []bool{false, true, false, false}
	for i, held := range levels {
		src.held = held
		_, clicked, err := tr.Poll()
		if err != nil {
			t.Fatalf("poll %d: %v", i, err)
		}
		if clicked != want[i] {
			t.Fatalf("poll %d: clicked=%v, want %v", i, clicked, want[i])
		}
	}
}

func TestRotationAndClickReportTogether(t *testing.T) {
	src := &fakeSource{}
	tr := New(src)

	src.pos = 1
	src.held = true
	dir, clicked, err := tr.Poll()
	if err != nil {
		t.Fatalf("Poll: %v", err)
	}
	if dir != 1 || !clicked {
		t.Fatalf("dir=%d clicked=%v, want both", dir, clicked)
	}
}

func TestSeedPositionSuppressesPhantomStep(t *testing.T) {
	src := &fakeSource{pos: 42}
	tr := New(src)

	if dir, _, _ := tr.Poll(); dir != 0 {
		t.Fatalf("phantom step %d from seed position", dir)
	}
	src.pos = 43
	if dir, _, _ := tr.Poll(); dir != 1 {
		t.Fatal("real step lost after seeding")
	}
}

func TestDisabledTrackerIsInert(t *testing.T) {
	tr := New(nil)
	if tr.Enabled() {
		t.Fatal("nil source must disable the tracker")
	}
	for i := 0; i < 3; i++ {
		dir, clicked, err := tr.Poll()
		if dir != 0 || clicked || err != nil {
			t.Fatalf("disabled poll reported dir=%d clicked=%v err=%v", dir, clicked, err)
		}
	}
}

func TestTransientFaultLeavesStateUntouched(t *testing.T) {
	src := &fakeSource{}
	tr := New(src)

	src.pos = 2
	src.posErr = errors.New("bus fault")
	dir, _, err := tr.Poll()
	if err == nil {
		t.Fatal("fault must be reported")
	}
	if dir != 0 {
		t.Fatalf("faulted poll reported dir=%d", dir)
	}

	// Recovery: the full delta is still there.
	src.posErr = nil
	dir, _, err = tr.Poll()
	if err != nil {
		t.Fatalf("Poll after fault: %v", err)
	}
	if dir != 1 {
		t.Fatalf("dir=%d after recovery, want 1", dir)
	}

	// Button fault must not consume a press edge.
	src.held = true
	src.heldErr = errors.New("bus fault")
	if _, clicked, err := tr.Poll(); clicked || err == nil {
		t.Fatalf("clicked=%v err=%v during button fault", clicked, err)
	}
	src.heldErr = nil
	if _, clicked, _ := tr.Poll(); !clicked {
		t.Fatal("press edge lost across button fault")
	}
}
