package keymap

import "fmt"

// Layer is one complete mapping from matrix cells to actions, row-major.
type Layer []Action

// Keymap holds the ordered layer stack. Layer 0 is active at boot.
type Keymap struct {
	rows   int
	cols   int
	layers []Layer
}

// New validates that every layer has exactly rows*cols entries and returns the
// keymap. Establishing this invariant here is what lets Resolve skip bounds
// checks inside a layer.
func New(rows, cols int, layers ...Layer) (*Keymap, error) {
	if rows <= 0 || cols <= 0 {
		return nil, fmt.Errorf("keymap: invalid geometry %dx%d", rows, cols)
	}
	if len(layers) == 0 {
		return nil, fmt.Errorf("keymap: no layers")
	}
	for i, l := range layers {
		if len(l) != rows*cols {
			return nil, fmt.Errorf("keymap: layer %d has %d entries, want %d", i, len(l), rows*cols)
		}
	}
	return &Keymap{rows: rows, cols: cols, layers: layers}, nil
}

func (k *Keymap) Rows() int   { return k.rows }
func (k *Keymap) Cols() int   { return k.cols }
func (k *Keymap) Layers() int { return len(k.layers) }

// Resolve returns the action bound to (row, col) on the given layer.
// An out-of-range layer resolves to NoOp: a malformed layer selection degrades
// instead of taking down the scan loop.
func (k *Keymap) Resolve(layer, row, col int) Action {
	if layer < 0 || layer >= len(k.layers) {
		return NoOp
	}
	return k.layers[layer][row*k.cols+col]
}
