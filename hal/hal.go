package hal

import (
	"errors"
	"image/color"
)

// Logger writes newline-delimited log lines.
type Logger interface {
	WriteLineString(s string)
	WriteLineBytes(b []byte)
}

var ErrNotImplemented = errors.New("not implemented")

// ErrUnavailable marks a device that is absent for the life of the process.
// Callers receiving it enter a disabled mode instead of retrying.
var ErrUnavailable = errors.New("device unavailable")

// PinMode selects whether a pin is an input or output.
type PinMode uint8

const (
	PinModeInput PinMode = iota
	PinModeOutput
)

// PinPull selects the pull resistor configuration.
type PinPull uint8

const (
	PinPullNone PinPull = iota
	PinPullUp
	PinPullDown
)

// Pin is a single digital IO pin.
//
// Read and Write report transport faults as errors; a failed read is never
// folded into a silent "low".
type Pin interface {
	Name() string
	Configure(mode PinMode, pull PinPull) error
	Read() (level bool, err error)
	Write(level bool) error
}

// Matrix exposes the wired key matrix: column pins are driven one at a time,
// row pins are read back.
type Matrix interface {
	Rows() []Pin
	Cols() []Pin
}

// Encoder is a rotary encoder with a push switch.
//
// Pressed reports the normalized logical level: true means the switch is held,
// regardless of the electrical polarity of the hardware.
type Encoder interface {
	Position() (int, error)
	Pressed() (bool, error)
}

// Display is a monochrome pixel surface. The method set matches the tinygo
// drivers Displayer shape (plus ClearBuffer) so font rendering can draw on it
// directly and the SSD1306 driver satisfies it as-is.
type Display interface {
	Size() (x, y int16)
	SetPixel(x, y int16, c color.RGBA)
	ClearBuffer()
	Display() error
}

// Modifier is a USB HID boot-report modifier bitmask.
type Modifier uint8

const (
	ModLeftCtrl Modifier = 1 << iota
	ModLeftShift
	ModLeftAlt
	ModLeftGUI
	ModRightCtrl
	ModRightShift
	ModRightAlt
	ModRightGUI
)

// Keycode is a USB HID keyboard page (0x07) usage ID.
type Keycode uint8

const (
	KeyNone  Keycode = 0x00
	KeyA     Keycode = 0x04
	KeyD     Keycode = 0x07
	KeyM     Keycode = 0x10
	KeySlash Keycode = 0x38
)

// ConsumerCode is a USB HID consumer page (0x0C) usage ID.
type ConsumerCode uint16

const (
	ConsumerBrightnessUp   ConsumerCode = 0x006F
	ConsumerBrightnessDown ConsumerCode = 0x0070
	ConsumerScanNext       ConsumerCode = 0x00B5
	ConsumerScanPrevious   ConsumerCode = 0x00B6
	ConsumerPlayPause      ConsumerCode = 0x00CD
	ConsumerMute           ConsumerCode = 0x00E2
	ConsumerVolumeUp       ConsumerCode = 0x00E9
	ConsumerVolumeDown     ConsumerCode = 0x00EA
)

// HID delivers resolved actions to the host computer.
//
// A tap is a full press/release cycle. Failures are reported to the caller and
// logged there; they are never fatal to the scan loop.
type HID interface {
	TapKey(mods Modifier, code Keycode) error
	TapConsumer(code ConsumerCode) error
}

// HAL is the only contact point between the engine and the hardware.
//
// Encoder and Display may return nil when the device was found missing at
// construction time; consumers treat nil as a permanently disabled device.
type HAL interface {
	Logger() Logger
	Matrix() Matrix
	Encoder() Encoder
	Display() Display
	HID() HID
}
