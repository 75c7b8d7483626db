//go:build tinygo && baremetal

package hal

import (
	"fmt"

	kbd "machine/usb/hid/keyboard"
)

// keyboardPort is the slice of the TinyGo keyboard port the HID sink uses;
// the concrete port type is unexported upstream.
type keyboardPort interface {
	Down(c kbd.Keycode) error
	Up(c kbd.Keycode) error
	Press(c kbd.Keycode) error
}

// usbHID emits actions as USB HID reports through the TinyGo keyboard port.
type usbHID struct {
	port keyboardPort
}

func newUSBHID() HID {
	return &usbHID{port: kbd.Port()}
}

func (h *usbHID) TapKey(mods Modifier, code Keycode) error {
	kc, ok := keyboardKeycode(code)
	if !ok {
		return fmt.Errorf("hid: unmapped keycode %#02x", uint8(code))
	}

	var down []kbd.Keycode
	for _, m := range modifierKeycodes {
		if mods&m.bit != 0 {
			down = append(down, m.code)
		}
	}
	down = append(down, kc)

	for _, k := range down {
		if err := h.port.Down(k); err != nil {
			h.releaseAll(down)
			return fmt.Errorf("hid: %w", err)
		}
	}
	h.releaseAll(down)
	return nil
}

func (h *usbHID) releaseAll(down []kbd.Keycode) {
	for i := len(down) - 1; i >= 0; i-- {
		h.port.Up(down[i])
	}
}

func (h *usbHID) TapConsumer(code ConsumerCode) error {
	kc, ok := consumerKeycode(code)
	if !ok {
		return fmt.Errorf("hid: unmapped consumer code %#04x", uint16(code))
	}
	if err := h.port.Press(kc); err != nil {
		return fmt.Errorf("hid: %w", err)
	}
	return nil
}

var modifierKeycodes = [...]struct {
	bit  Modifier
	code kbd.Keycode
}{
	{ModLeftCtrl, kbd.KeyModifierLeftCtrl},
	{ModLeftShift, kbd.KeyModifierLeftShift},
	{ModLeftAlt, kbd.KeyModifierLeftAlt},
	{ModLeftGUI, kbd.KeyModifierLeftGUI},
	{ModRightCtrl, kbd.KeyModifierRightCtrl},
	{ModRightShift, kbd.KeyModifierRightShift},
	{ModRightAlt, kbd.KeyModifierRightAlt},
	{ModRightGUI, kbd.KeyModifierRightGUI},
}

// keyboardKeycode maps a USB keyboard-page usage ID to the TinyGo keycode
// encoding. Letters are contiguous in both spaces.
func keyboardKeycode(code Keycode) (kbd.Keycode, bool) {
	switch {
	case code >= KeyA && code <= KeyA+25:
		return kbd.KeyA + kbd.Keycode(code-KeyA), true
	case code == KeySlash:
		return kbd.KeySlash, true
	default:
		return 0, false
	}
}

func consumerKeycode(code ConsumerCode) (kbd.Keycode, bool) {
	switch code {
	case ConsumerVolumeUp:
		return kbd.KeyMediaVolumeInc, true
	case ConsumerVolumeDown:
		return kbd.KeyMediaVolumeDec, true
	case ConsumerMute:
		return kbd.KeyMediaMute, true
	case ConsumerPlayPause:
		return kbd.KeyMediaPlayPause, true
	case ConsumerScanNext:
		return kbd.KeyMediaNextTrack, true
	case ConsumerScanPrevious:
		return kbd.KeyMediaPrevTrack, true
	default:
		// Some consumer usages (display brightness among them) have no
		// TinyGo media keycode; report them instead of dropping silently.
		return 0, false
	}
}
