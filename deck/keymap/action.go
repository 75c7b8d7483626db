// Package keymap maps matrix cells to output actions through layered keymaps.
package keymap

import "icedeck/hal"

// Op discriminates the Action variants.
type Op uint8

const (
	OpNone Op = iota
	OpKey
	OpChord
	OpMedia
)

// Action is one output binding. Actions are immutable configuration values;
// Label is the short text shown on the status view when the action fires.
type Action struct {
	Op    Op
	Mods  hal.Modifier
	Code  hal.Keycode
	Media hal.ConsumerCode
	Label string
}

// NoOp is the empty binding; it dispatches nothing.
var NoOp = Action{}

func (a Action) IsNoOp() bool { return a.Op == OpNone }

// Key binds a plain keyboard key.
func Key(label string, code hal.Keycode) Action {
	return Action{Op: OpKey, Code: code, Label: label}
}

// Chord binds a keyboard key with held modifiers.
func Chord(label string, mods hal.Modifier, code hal.Keycode) Action {
	return Action{Op: OpChord, Mods: mods, Code: code, Label: label}
}

// Media binds a consumer-page control (volume, transport, brightness).
func Media(label string, code hal.ConsumerCode) Action {
	return Action{Op: OpMedia, Media: code, Label: label}
}
