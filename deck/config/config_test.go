package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"icedeck/deck/keymap"
	"icedeck/hal"
)

func TestDefaultKeymapIsValid(t *testing.T) {
	km, err := Default().Keymap()
	if err != nil {
		t.Fatalf("Keymap: %v", err)
	}
	if km.Layers() != 1 {
		t.Fatalf("layers = %d", km.Layers())
	}
	if a := km.Resolve(0, 0, 1); a.Op != keymap.OpMedia || a.Media != hal.ConsumerPlayPause {
		t.Fatalf("(0,1) = %+v", a)
	}
	if a := km.Resolve(0, 2, 0); a.Op != keymap.OpChord || a.Code != hal.KeyM {
		t.Fatalf("(2,0) = %+v", a)
	}
}

func TestParseAction(t *testing.T) {
	cases := []struct {
		in   string
		op   keymap.Op
		code hal.Keycode
		mods hal.Modifier
	}{
		{"NO", keymap.OpNone, 0, 0},
		{"", keymap.OpNone, 0, 0},
		{"MEDIA_PLAY_PAUSE", keymap.OpMedia, 0, 0},
		{"m", keymap.OpKey, hal.KeyM, 0},
		{"SLASH", keymap.OpKey, hal.KeySlash, 0},
		{"LCTRL+LALT+M", keymap.OpChord, hal.KeyM, hal.ModLeftCtrl | hal.ModLeftAlt},
		{"RCTRL+D", keymap.OpChord, hal.KeyD, hal.ModRightCtrl},
	}
	for _, c := range cases {
		a, err := ParseAction(c.in)
		if err != nil {
			t.Fatalf("ParseAction(%q): %v", c.in, err)
		}
		if a.Op != c.op || a.Code != c.code || a.Mods != c.mods {
			t.Fatalf("ParseAction(%q) = %+v", c.in, a)
		}
	}

	for _, bad := range []string{"WIBBLE", "LCTRL+WIBBLE", "HYPER+M"} {
		if _, err := ParseAction(bad); err == nil {
			t.Fatalf("ParseAction(%q) succeeded", bad)
		}
	}
}

func TestLoadAppliesOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "icedeck.toml")
	body := `
[matrix]
debounce = "35ms"

[display]
status_linger = "3s"

layers = [
  ["MEDIA_PLAY_PAUSE", "NO", "NO",
   "NO", "NO", "NO",
   "NO", "NO", "LCTRL+LALT+SLASH"],
]
`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Debounce != 35*time.Millisecond {
		t.Fatalf("debounce = %v", cfg.Debounce)
	}
	if cfg.StatusLinger != 3*time.Second {
		t.Fatalf("status_linger = %v", cfg.StatusLinger)
	}
	// Untouched fields keep defaults.
	if cfg.Refresh != time.Second || cfg.Rows != 3 {
		t.Fatalf("defaults overwritten: %+v", cfg)
	}

	km, err := cfg.Keymap()
	if err != nil {
		t.Fatalf("Keymap: %v", err)
	}
	if a := km.Resolve(0, 2, 2); a.Op != keymap.OpChord || a.Code != hal.KeySlash {
		t.Fatalf("(2,2) = %+v", a)
	}
}

func TestLoadRejectsShortLayer(t *testing.T) {
	path := filepath.Join(t.TempDir(), "icedeck.toml")
	body := `layers = [["NO", "NO"]]`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("short layer accepted")
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.toml")); err == nil {
		t.Fatal("missing file accepted")
	}
}
