// Package control runs the keypad's cooperative tick loop: scan, resolve,
// dispatch, display.
package control

import (
	"context"
	"fmt"
	"time"

	"icedeck/deck/display"
	"icedeck/deck/encoder"
	"icedeck/deck/keymap"
	"icedeck/deck/matrix"
	"icedeck/hal"
)

// Renderer is the display sink consumed by the loop.
type Renderer interface {
	Render(display.View) error
	Clear() error
	Enabled() bool
}

// Deps are the subsystems the loop owns. Ownership is exclusive: nothing else
// touches them once the loop is built, so no locking exists anywhere below.
type Deps struct {
	Log       hal.Logger
	Matrix    *matrix.Matrix
	Encoder   *encoder.Tracker
	Keymap    *keymap.Keymap
	Scheduler *display.Scheduler
	Renderer  Renderer
	HID       hal.HID
}

// Config carries the loop's runtime knobs.
type Config struct {
	// Layer is the keymap layer active at boot.
	Layer int
	// TickYield bounds CPU usage between ticks; cooperative only, not a
	// correctness knob.
	TickYield time.Duration
	// Sleep is injectable for tests.
	Sleep func(time.Duration)
}

const DefaultTickYield = 1 * time.Millisecond

// Loop is the single-threaded orchestrator. One full tick runs to completion
// before the next begins; the only sleeps are the intra-scan settle delay and
// the inter-tick yield.
type Loop struct {
	log   hal.Logger
	mx    *matrix.Matrix
	enc   *encoder.Tracker
	km    *keymap.Keymap
	sched *display.Scheduler
	rend  Renderer
	hid   hal.HID

	layer    int
	encValue int
	yield    time.Duration
	sleep    func(time.Duration)
	events   []matrix.Event
}

func New(d Deps, cfg Config) *Loop {
	if cfg.TickYield <= 0 {
		cfg.TickYield = DefaultTickYield
	}
	if cfg.Sleep == nil {
		cfg.Sleep = time.Sleep
	}
	return &Loop{
		log:   d.Log,
		mx:    d.Matrix,
		enc:   d.Encoder,
		km:    d.Keymap,
		sched: d.Scheduler,
		rend:  d.Renderer,
		hid:   d.HID,
		layer: cfg.Layer,
		sleep: cfg.Sleep,
		yield: cfg.TickYield,
	}
}

// EncoderValue is the signed counter adjusted by rotation events.
func (l *Loop) EncoderValue() int { return l.encValue }

// Layer is the active keymap layer.
func (l *Loop) Layer() int { return l.layer }

// Step executes one tick: due clock render, matrix scan, key dispatch,
// encoder poll, volume/mute dispatch. Transient faults are logged and never
// returned; an error from Step is fatal to the loop.
func (l *Loop) Step() error {
	if v, due := l.sched.Tick(); due {
		l.render(v)
	}

	evs, err := l.mx.Scan(l.events[:0])
	l.events = evs
	if err != nil {
		l.logLine(err.Error())
	}
	for _, ev := range evs {
		if ev.Edge != matrix.EdgePressed {
			// Releases update state only; no output action today.
			continue
		}
		act := l.km.Resolve(l.layer, ev.Row, ev.Col)
		if act.IsNoOp() {
			continue
		}
		l.dispatch(act)
		l.logLine(fmt.Sprintf("key: (%d,%d) -> %s", ev.Row, ev.Col, act.Label))
		l.render(l.sched.NoteAction(l.layer, l.encValue, act.Label))
	}

	dir, clicked, err := l.enc.Poll()
	if err != nil {
		l.logLine(err.Error())
	}
	switch {
	case dir > 0:
		l.dispatch(keymap.Media("VOL+", hal.ConsumerVolumeUp))
		l.encValue++
		l.logLine(fmt.Sprintf("encoder: volume up: %d", l.encValue))
		l.render(l.sched.NoteAction(l.layer, l.encValue, "VOL+"))
	case dir < 0:
		l.dispatch(keymap.Media("VOL-", hal.ConsumerVolumeDown))
		l.encValue--
		l.logLine(fmt.Sprintf("encoder: volume down: %d", l.encValue))
		l.render(l.sched.NoteAction(l.layer, l.encValue, "VOL-"))
	}
	if clicked {
		l.dispatch(keymap.Media("MUTE", hal.ConsumerMute))
		l.logLine("encoder: button pressed, mute toggle")
		l.render(l.sched.NoteAction(l.layer, l.encValue, "MUTE"))
	}

	return nil
}

// Run blocks until ctx is cancelled or a fatal error occurs; either way the
// safe-shutdown path runs before it returns. Cancellation is observed between
// ticks only, so no scan is abandoned with a column still asserted.
func (l *Loop) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			l.Shutdown()
			return ctx.Err()
		default:
		}
		if err := l.Step(); err != nil {
			l.Shutdown()
			return err
		}
		l.sleep(l.yield)
	}
}

// Shutdown deasserts every column driver and blanks the panel. Safe to call
// on a loop that never ran.
func (l *Loop) Shutdown() {
	if err := l.mx.Deactivate(); err != nil {
		l.logLine(err.Error())
	}
	if err := l.rend.Clear(); err != nil {
		l.logLine(err.Error())
	}
	l.logLine("icedeck: shutdown complete")
}

// Announce reports boot state, including permanently disabled devices. Each
// degraded condition is logged once here, at wiring time, not on every tick.
func (l *Loop) Announce() {
	l.logLine(fmt.Sprintf("icedeck: %dx%d matrix, %d layer(s), layer %d active",
		l.km.Rows(), l.km.Cols(), l.km.Layers(), l.layer))
	if !l.enc.Enabled() {
		l.logLine("encoder: disabled, hardware unavailable")
	}
	if !l.rend.Enabled() {
		l.logLine("display: disabled, hardware unavailable")
	}
}

func (l *Loop) dispatch(a keymap.Action) {
	var err error
	switch a.Op {
	case keymap.OpKey:
		err = l.hid.TapKey(0, a.Code)
	case keymap.OpChord:
		err = l.hid.TapKey(a.Mods, a.Code)
	case keymap.OpMedia:
		err = l.hid.TapConsumer(a.Media)
	default:
		return
	}
	if err != nil {
		l.logLine(err.Error())
	}
}

func (l *Loop) render(v display.View) {
	if err := l.rend.Render(v); err != nil {
		l.logLine(err.Error())
	}
}

func (l *Loop) logLine(s string) {
	if l.log != nil {
		l.log.WriteLineString(s)
	}
}
