package config

import (
	"fmt"
	"strings"

	"icedeck/deck/keymap"
	"icedeck/hal"
)

// Named consumer-page actions, KMK spelling.
var consumerActions = map[string]keymap.Action{
	"MEDIA_PREV_TRACK": keymap.Media("PREV", hal.ConsumerScanPrevious),
	"MEDIA_PLAY_PAUSE": keymap.Media("PLAY", hal.ConsumerPlayPause),
	"MEDIA_NEXT_TRACK": keymap.Media("NEXT", hal.ConsumerScanNext),
	"BRIGHTNESS_DOWN":  keymap.Media("BR-", hal.ConsumerBrightnessDown),
	"BRIGHTNESS_UP":    keymap.Media("BR+", hal.ConsumerBrightnessUp),
	"AUDIO_VOL_UP":     keymap.Media("VOL+", hal.ConsumerVolumeUp),
	"AUDIO_VOL_DOWN":   keymap.Media("VOL-", hal.ConsumerVolumeDown),
	"AUDIO_MUTE":       keymap.Media("MUTE", hal.ConsumerMute),
}

var modifierNames = map[string]hal.Modifier{
	"LCTRL": hal.ModLeftCtrl,
	"LSFT":  hal.ModLeftShift,
	"LALT":  hal.ModLeftAlt,
	"LGUI":  hal.ModLeftGUI,
	"RCTRL": hal.ModRightCtrl,
	"RSFT":  hal.ModRightShift,
	"RALT":  hal.ModRightAlt,
	"RGUI":  hal.ModRightGUI,
}

// ParseAction resolves one keymap entry. Accepted forms: "NO" (or empty) for
// the no-op, a named consumer action ("MEDIA_PLAY_PAUSE"), a single key name
// ("M", "SLASH"), or a chord joined with '+' ("LCTRL+LALT+M").
func ParseAction(name string) (keymap.Action, error) {
	name = strings.ToUpper(strings.TrimSpace(name))
	if name == "" || name == "NO" {
		return keymap.NoOp, nil
	}
	if a, ok := consumerActions[name]; ok {
		return a, nil
	}

	parts := strings.Split(name, "+")
	var mods hal.Modifier
	for _, p := range parts[:len(parts)-1] {
		m, ok := modifierNames[p]
		if !ok {
			return keymap.NoOp, fmt.Errorf("config: unknown modifier %q in %q", p, name)
		}
		mods |= m
	}

	code, err := parseKeycode(parts[len(parts)-1])
	if err != nil {
		return keymap.NoOp, fmt.Errorf("config: %q: %w", name, err)
	}
	if mods == 0 {
		return keymap.Key(name, code), nil
	}
	return keymap.Chord(name, mods, code), nil
}

func parseKeycode(name string) (hal.Keycode, error) {
	if len(name) == 1 && name[0] >= 'A' && name[0] <= 'Z' {
		return hal.KeyA + hal.Keycode(name[0]-'A'), nil
	}
	if name == "SLASH" {
		return hal.KeySlash, nil
	}
	return hal.KeyNone, fmt.Errorf("unknown key %q", name)
}
