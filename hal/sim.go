//go:build !tinygo

package hal

import (
	"fmt"
	"sync"
)

// simMatrix models the electrical behavior of a diode key matrix: a row pin
// reads high only while some column the held key sits on is driven high, so
// the strobed scan sees exactly what real hardware would.
type simMatrix struct {
	mu       sync.Mutex
	rows     []Pin
	cols     []Pin
	held     [][]bool
	colLevel []bool
}

func newSimMatrix(rows, cols int) *simMatrix {
	m := &simMatrix{
		held:     make([][]bool, rows),
		colLevel: make([]bool, cols),
	}
	for r := range m.held {
		m.held[r] = make([]bool, cols)
	}
	for r := 0; r < rows; r++ {
		m.rows = append(m.rows, &simRowPin{m: m, row: r})
	}
	for c := 0; c < cols; c++ {
		m.cols = append(m.cols, &simColPin{m: m, col: c})
	}
	return m
}

func (m *simMatrix) Rows() []Pin { return m.rows }
func (m *simMatrix) Cols() []Pin { return m.cols }

// SetKey sets the physical (undebounced) state of one key.
func (m *simMatrix) SetKey(row, col int, held bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if row < 0 || row >= len(m.held) || col < 0 || col >= len(m.colLevel) {
		return
	}
	m.held[row][col] = held
}

type simRowPin struct {
	m   *simMatrix
	row int
}

func (p *simRowPin) Name() string { return fmt.Sprintf("ROW%d", p.row) }

func (p *simRowPin) Configure(mode PinMode, pull PinPull) error {
	if mode != PinModeInput {
		return fmt.Errorf("pin %s: only input supported", p.Name())
	}
	return nil
}

func (p *simRowPin) Read() (bool, error) {
	p.m.mu.Lock()
	defer p.m.mu.Unlock()
	for c, driven := range p.m.colLevel {
		if driven && p.m.held[p.row][c] {
			return true, nil
		}
	}
	return false, nil
}

func (p *simRowPin) Write(level bool) error {
	return fmt.Errorf("pin %s: output unsupported", p.Name())
}

type simColPin struct {
	m   *simMatrix
	col int
}

func (p *simColPin) Name() string { return fmt.Sprintf("COL%d", p.col) }

func (p *simColPin) Configure(mode PinMode, pull PinPull) error {
	if mode != PinModeOutput {
		return fmt.Errorf("pin %s: only output supported", p.Name())
	}
	return nil
}

func (p *simColPin) Read() (bool, error) {
	p.m.mu.Lock()
	defer p.m.mu.Unlock()
	return p.m.colLevel[p.col], nil
}

func (p *simColPin) Write(level bool) error {
	p.m.mu.Lock()
	defer p.m.mu.Unlock()
	p.m.colLevel[p.col] = level
	return nil
}

// simEncoder is a rotary encoder fed from the simulator window.
type simEncoder struct {
	mu   sync.Mutex
	pos  int
	held bool
}

func (e *simEncoder) Position() (int, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.pos, nil
}

func (e *simEncoder) Pressed() (bool, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.held, nil
}

// Turn advances the position counter by delta detents.
func (e *simEncoder) Turn(delta int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.pos += delta
}

// SetPressed sets the physical level of the push switch.
func (e *simEncoder) SetPressed(held bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.held = held
}
