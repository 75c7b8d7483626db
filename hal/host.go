//go:build !tinygo

package hal

import (
	"fmt"
	"os"
	"sync"
)

// Host simulator dimensions mirror the real board: 3x3 matrix, 128x32 OLED.
const (
	hostMatrixRows = 3
	hostMatrixCols = 3
	hostOLEDWidth  = 128
	hostOLEDHeight = 32
)

type hostHAL struct {
	logger *hostLogger
	matrix *simMatrix
	enc    *simEncoder
	fb     *monoFramebuffer
	hid    *hostHID
}

// New returns a host HAL implementation backed by simulated devices.
func New() HAL {
	logger := &hostLogger{w: os.Stdout}
	return &hostHAL{
		logger: logger,
		matrix: newSimMatrix(hostMatrixRows, hostMatrixCols),
		enc:    &simEncoder{},
		fb:     newMonoFramebuffer(hostOLEDWidth, hostOLEDHeight),
		hid:    &hostHID{logger: logger},
	}
}

func (h *hostHAL) Logger() Logger   { return h.logger }
func (h *hostHAL) Matrix() Matrix   { return h.matrix }
func (h *hostHAL) Encoder() Encoder { return h.enc }
func (h *hostHAL) Display() Display { return h.fb }
func (h *hostHAL) HID() HID         { return h.hid }

type hostLogger struct {
	mu sync.Mutex
	w  *os.File
}

func (l *hostLogger) WriteLineString(s string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintln(l.w, s)
}

func (l *hostLogger) WriteLineBytes(b []byte) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.w.Write(b)
	l.w.Write([]byte{'\n'})
}

// hostHID logs dispatched actions instead of emitting USB reports.
type hostHID struct {
	logger *hostLogger
}

func (h *hostHID) TapKey(mods Modifier, code Keycode) error {
	h.logger.WriteLineString(fmt.Sprintf("hid: key mods=%#02x code=%#02x", uint8(mods), uint8(code)))
	return nil
}

func (h *hostHID) TapConsumer(code ConsumerCode) error {
	h.logger.WriteLineString(fmt.Sprintf("hid: consumer code=%#04x", uint16(code)))
	return nil
}
