// Package app wires a HAL and a configuration into the running keypad engine.
package app

import (
	"context"

	"icedeck/deck/config"
	"icedeck/deck/control"
	"icedeck/deck/display"
	"icedeck/deck/encoder"
	"icedeck/deck/matrix"
	"icedeck/hal"
	"icedeck/internal/buildinfo"
)

// Build constructs the control loop from a HAL and configuration. All
// configuration validation happens here, before the first tick.
func Build(h hal.HAL, cfg config.Config) (*control.Loop, error) {
	km, err := cfg.Keymap()
	if err != nil {
		return nil, err
	}

	log := h.Logger()
	log.WriteLineString("icedeck " + buildinfo.Short())

	loop := control.New(control.Deps{
		Log: log,
		Matrix: matrix.New(h.Matrix(), matrix.Config{
			Debounce: cfg.Debounce,
			Settle:   cfg.Settle,
		}),
		Encoder:   encoder.New(h.Encoder()),
		Keymap:    km,
		Scheduler: display.NewScheduler(cfg.Refresh, cfg.StatusLinger, nil),
		Renderer:  display.NewRenderer(h.Display()),
		HID:       h.HID(),
	}, control.Config{TickYield: cfg.TickYield})
	loop.Announce()
	return loop, nil
}

// New builds the engine with the default configuration and returns its step
// function for the host runners.
func New(h hal.HAL) func() error {
	return NewWithConfig(h, config.Default())
}

// NewWithConfig is New with an explicit configuration. A configuration error
// surfaces through the first step so the runner exits with it.
func NewWithConfig(h hal.HAL, cfg config.Config) func() error {
	loop, err := Build(h, cfg)
	if err != nil {
		return func() error { return err }
	}
	return loop.Step
}

// Run starts the engine and blocks forever (TinyGo entrypoint). The context
// never cancels on the bare board; power-off is the only exit.
func Run(h hal.HAL) {
	loop, err := Build(h, config.Default())
	if err != nil {
		h.Logger().WriteLineString("icedeck: " + err.Error())
		select {}
	}
	loop.Run(context.Background())
}
