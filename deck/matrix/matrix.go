// Package matrix turns raw electrical reads of a strobed key matrix into
// debounced press/release edge events.
package matrix

import (
	"fmt"
	"time"

	"icedeck/hal"
)

// Edge is a confirmed logical state change for one cell.
type Edge uint8

const (
	EdgePressed Edge = iota
	EdgeReleased
)

func (e Edge) String() string {
	if e == EdgePressed {
		return "pressed"
	}
	return "released"
}

// Event is one accepted edge, reported once per transition.
type Event struct {
	Row  int
	Col  int
	Edge Edge
}

// Config carries the scan timing knobs. The zero value gets the board
// defaults; Now and Sleep exist so tests can drive virtual time.
type Config struct {
	Debounce time.Duration
	Settle   time.Duration
	Now      func() time.Time
	Sleep    func(time.Duration)
}

const DefaultDebounce = 20 * time.Millisecond

// Matrix owns the per-cell debounce state for one key matrix.
type Matrix struct {
	rows []hal.Pin
	cols []hal.Pin

	debounce time.Duration
	settle   time.Duration
	now      func() time.Time
	sleep    func(time.Duration)

	pressed  [][]bool
	lastEdge [][]time.Time
}

// New wires a scanner to the matrix pins. Pins must already be configured
// (rows input, cols output); that is the HAL's job.
func New(port hal.Matrix, cfg Config) *Matrix {
	if cfg.Debounce <= 0 {
		cfg.Debounce = DefaultDebounce
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if cfg.Sleep == nil {
		cfg.Sleep = time.Sleep
	}

	rows := port.Rows()
	cols := port.Cols()
	m := &Matrix{
		rows:     rows,
		cols:     cols,
		debounce: cfg.Debounce,
		settle:   cfg.Settle,
		now:      cfg.Now,
		sleep:    cfg.Sleep,
		pressed:  make([][]bool, len(rows)),
		lastEdge: make([][]time.Time, len(rows)),
	}
	for r := range m.pressed {
		m.pressed[r] = make([]bool, len(cols))
		m.lastEdge[r] = make([]time.Time, len(cols))
	}
	return m
}

func (m *Matrix) Rows() int { return len(m.rows) }
func (m *Matrix) Cols() int { return len(m.cols) }

// Pressed reports the debounced logical state of one cell.
func (m *Matrix) Pressed(row, col int) bool { return m.pressed[row][col] }

// Scan strobes every column once and appends accepted edges to dst.
//
// Columns are driven one at a time and deasserted before the next is driven,
// which keeps simultaneous presses from ghosting through the diode network.
// A raw level that differs from the stored logical state is accepted only when
// the cell's debounce window has elapsed; otherwise it is left for the next
// scan, never queued.
//
// A failed pin access is a transient fault: the affected reading counts as
// "no change", the rest of the scan proceeds, and the first fault is returned
// alongside whatever edges were collected.
func (m *Matrix) Scan(dst []Event) ([]Event, error) {
	var firstErr error
	fault := func(op string, pin hal.Pin, err error) {
		if firstErr == nil {
			firstErr = fmt.Errorf("matrix: %s %s: %w", op, pin.Name(), err)
		}
	}

	now := m.now()
	for c, colPin := range m.cols {
		if err := colPin.Write(true); err != nil {
			// Column never asserted; its rows would read as idle noise.
			fault("drive", colPin, err)
			continue
		}
		if m.settle > 0 {
			m.sleep(m.settle)
		}

		for r, rowPin := range m.rows {
			raw, err := rowPin.Read()
			if err != nil {
				fault("read", rowPin, err)
				continue
			}
			if raw == m.pressed[r][c] {
				continue
			}
			if now.Sub(m.lastEdge[r][c]) <= m.debounce {
				continue
			}

			m.pressed[r][c] = raw
			m.lastEdge[r][c] = now
			edge := EdgeReleased
			if raw {
				edge = EdgePressed
			}
			dst = append(dst, Event{Row: r, Col: c, Edge: edge})
		}

		if err := colPin.Write(false); err != nil {
			fault("release", colPin, err)
		}
	}
	return dst, firstErr
}

// Deactivate deasserts every column driver. It is the safe-shutdown path and
// must run before the process exits, whatever state the last scan left.
func (m *Matrix) Deactivate() error {
	var firstErr error
	for _, colPin := range m.cols {
		if err := colPin.Write(false); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("matrix: release %s: %w", colPin.Name(), err)
		}
	}
	return firstErr
}
