//go:build !tinygo

package config

import (
	"fmt"
	"os"
	"time"

	toml "github.com/pelletier/go-toml/v2"

	"icedeck/deck/keymap"
)

// fileConfig mirrors Config but uses strings for durations and action names
// to keep the TOML readable.
type fileConfig struct {
	Matrix struct {
		Rows     int    `toml:"rows"`
		Cols     int    `toml:"cols"`
		Debounce string `toml:"debounce"`
		Settle   string `toml:"settle"`
	} `toml:"matrix"`
	Display struct {
		Refresh      string `toml:"refresh"`
		StatusLinger string `toml:"status_linger"`
	} `toml:"display"`
	Layers [][]string `toml:"layers"`
}

// Load reads a TOML keymap file and applies it over the defaults. Anything
// the file leaves out keeps its default; anything it gets wrong fails here,
// before the control loop exists.
func Load(path string) (Config, error) {
	cfg := Default()

	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("config: %w", err)
	}
	var fc fileConfig
	if err := toml.Unmarshal(b, &fc); err != nil {
		return cfg, fmt.Errorf("config: %s: %w", path, err)
	}

	if fc.Matrix.Rows > 0 {
		cfg.Rows = fc.Matrix.Rows
	}
	if fc.Matrix.Cols > 0 {
		cfg.Cols = fc.Matrix.Cols
	}
	if err := setDuration(&cfg.Debounce, fc.Matrix.Debounce); err != nil {
		return cfg, fmt.Errorf("config: matrix.debounce: %w", err)
	}
	if err := setDuration(&cfg.Settle, fc.Matrix.Settle); err != nil {
		return cfg, fmt.Errorf("config: matrix.settle: %w", err)
	}
	if err := setDuration(&cfg.Refresh, fc.Display.Refresh); err != nil {
		return cfg, fmt.Errorf("config: display.refresh: %w", err)
	}
	if err := setDuration(&cfg.StatusLinger, fc.Display.StatusLinger); err != nil {
		return cfg, fmt.Errorf("config: display.status_linger: %w", err)
	}

	if len(fc.Layers) > 0 {
		layers := make([]keymap.Layer, 0, len(fc.Layers))
		for i, names := range fc.Layers {
			if len(names) != cfg.Rows*cfg.Cols {
				return cfg, fmt.Errorf("config: layer %d has %d entries, want %d",
					i, len(names), cfg.Rows*cfg.Cols)
			}
			layer := make(keymap.Layer, 0, len(names))
			for _, name := range names {
				a, err := ParseAction(name)
				if err != nil {
					return cfg, err
				}
				layer = append(layer, a)
			}
			layers = append(layers, layer)
		}
		cfg.Layers = layers
	}

	return cfg, nil
}

func setDuration(dst *time.Duration, s string) error {
	if s == "" {
		return nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return err
	}
	if d < 0 {
		return fmt.Errorf("negative duration %q", s)
	}
	*dst = d
	return nil
}
