// Package config supplies the engine's static configuration: geometry, timing
// constants, and keymap contents. The engine consumes the result; it never
// parses anything itself.
package config

import (
	"time"

	"icedeck/deck/keymap"
	"icedeck/hal"
)

type Config struct {
	Rows int
	Cols int

	Debounce     time.Duration
	Settle       time.Duration
	Refresh      time.Duration
	StatusLinger time.Duration
	TickYield    time.Duration

	Layers []keymap.Layer
}

// Keymap builds and validates the layer stack. Called once before the loop
// starts; a malformed layer fails here, never inside a tick.
func (c Config) Keymap() (*keymap.Keymap, error) {
	return keymap.New(c.Rows, c.Cols, c.Layers...)
}

// Default is the compiled-in IceDeck V2 configuration: media transport on the
// top row, brightness on the middle, Discord chords on the bottom.
func Default() Config {
	return Config{
		Rows:         3,
		Cols:         3,
		Debounce:     20 * time.Millisecond,
		Settle:       100 * time.Microsecond,
		Refresh:      1 * time.Second,
		StatusLinger: 2 * time.Second,
		TickYield:    1 * time.Millisecond,
		Layers: []keymap.Layer{
			{
				keymap.Media("PREV", hal.ConsumerScanPrevious),
				keymap.Media("PLAY", hal.ConsumerPlayPause),
				keymap.Media("NEXT", hal.ConsumerScanNext),
				keymap.Media("BR-", hal.ConsumerBrightnessDown),
				keymap.NoOp,
				keymap.Media("BR+", hal.ConsumerBrightnessUp),
				keymap.Chord("MUTE DC", hal.ModLeftCtrl|hal.ModLeftAlt, hal.KeyM),
				keymap.Chord("DEAF DC", hal.ModLeftCtrl|hal.ModLeftAlt, hal.KeyD),
				keymap.Chord("DISCORD", hal.ModLeftCtrl|hal.ModLeftAlt, hal.KeySlash),
			},
		},
	}
}
