// Package encoder derives discrete rotation steps and click edges from a
// polled rotary encoder source.
package encoder

import (
	"fmt"

	"icedeck/hal"
)

// Tracker owns the encoder position and button state between polls.
//
// A Tracker built over a nil source is permanently disabled: Poll reports
// (0, false, nil) forever without touching hardware. The caller checks
// Enabled once at startup to log the degraded condition.
type Tracker struct {
	src     hal.Encoder
	lastPos int
	lastSW  bool
}

func New(src hal.Encoder) *Tracker {
	t := &Tracker{src: src}
	if src == nil {
		return t
	}
	// Seed from the current hardware position so a counter that starts
	// nonzero does not fire a phantom first step. A failed seed read keeps
	// zero; the first real poll then reconciles through the usual delta path.
	if pos, err := src.Position(); err == nil {
		t.lastPos = pos
	}
	return t
}

func (t *Tracker) Enabled() bool { return t.src != nil }

// Poll reports the rotation direction since the previous poll and whether the
// button was clicked.
//
// Direction is the sign of the position delta; the stored position advances
// only on a nonzero delta, so a momentary non-change never disturbs state.
// The click fires exactly once per press, on the not-held to held transition.
// Both can report true in the same poll when both genuinely changed.
//
// A transient source error leaves all stored state untouched and is returned
// for logging; the missed sample costs nothing because only confirmed deltas
// commit.
func (t *Tracker) Poll() (dir int, clicked bool, err error) {
	if t.src == nil {
		return 0, false, nil
	}

	pos, perr := t.src.Position()
	if perr != nil {
		err = fmt.Errorf("encoder: position: %w", perr)
	} else {
		switch {
		case pos > t.lastPos:
			dir = 1
			t.lastPos = pos
		case pos < t.lastPos:
			dir = -1
			t.lastPos = pos
		}
	}

	held, serr := t.src.Pressed()
	if serr != nil {
		if err == nil {
			err = fmt.Errorf("encoder: button: %w", serr)
		}
		return dir, false, err
	}
	clicked = held && !t.lastSW
	t.lastSW = held
	return dir, clicked, err
}
