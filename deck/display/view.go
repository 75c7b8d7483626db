// Package display decides what the status OLED shows each tick and renders
// the chosen view.
package display

import "time"

// ViewKind discriminates the View variants.
type ViewKind uint8

const (
	ViewNone ViewKind = iota
	ViewClock
	ViewStatus
)

// View is one render decision. Views are transient values, built when a
// render is due and dropped after drawing; nothing persists them.
type View struct {
	Kind ViewKind

	// Clock fields.
	Now time.Time

	// Status fields.
	Layer        int
	EncoderValue int
	Label        string
}
