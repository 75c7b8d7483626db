//go:build tinygo && baremetal

package hal

import (
	"fmt"
	"machine"

	"tinygo.org/x/drivers/encoders"
	"tinygo.org/x/drivers/ssd1306"
)

// IceDeck V2 wiring (RP2040).
var (
	rowPins = [...]machine.Pin{machine.GP26, machine.GP27, machine.GP28}
	colPins = [...]machine.Pin{machine.GP1, machine.GP2, machine.GP4}
)

const (
	oledSDA  = machine.GP6
	oledSCL  = machine.GP7
	oledAddr = 0x3C

	encPinA  = machine.GP3
	encPinB  = machine.GP29
	encPinSW = machine.GP0
)

type boardHAL struct {
	logger *serialLogger
	matrix *boardMatrix
	enc    Encoder
	disp   Display
	hid    HID
}

// New returns the IceDeck board HAL.
//
// The display and encoder are probed here; a missing device leaves the
// corresponding accessor nil, which downstream components treat as a
// permanently disabled device.
func New() HAL {
	logger := &serialLogger{}

	m := &boardMatrix{}
	for i, p := range rowPins {
		pin := &machinePin{name: fmt.Sprintf("ROW%d", i), pin: p}
		pin.Configure(PinModeInput, PinPullDown)
		m.rows = append(m.rows, pin)
	}
	for i, p := range colPins {
		pin := &machinePin{name: fmt.Sprintf("COL%d", i), pin: p}
		pin.Configure(PinModeOutput, PinPullNone)
		pin.Write(false)
		m.cols = append(m.cols, pin)
	}

	disp, err := newBoardDisplay()
	if err != nil {
		logger.WriteLineString("display: " + err.Error())
		disp = nil
	}

	return &boardHAL{
		logger: logger,
		matrix: m,
		enc:    newBoardEncoder(),
		disp:   disp,
		hid:    newUSBHID(),
	}
}

func (h *boardHAL) Logger() Logger { return h.logger }
func (h *boardHAL) Matrix() Matrix { return h.matrix }
func (h *boardHAL) Encoder() Encoder {
	if h.enc == nil {
		return nil
	}
	return h.enc
}
func (h *boardHAL) Display() Display {
	if h.disp == nil {
		return nil
	}
	return h.disp
}
func (h *boardHAL) HID() HID { return h.hid }

type boardMatrix struct {
	rows []Pin
	cols []Pin
}

func (m *boardMatrix) Rows() []Pin { return m.rows }
func (m *boardMatrix) Cols() []Pin { return m.cols }

// machinePin adapts a machine.Pin to the Pin contract. GPIO on the RP2040
// cannot fail once configured, so Read and Write never return an error here.
type machinePin struct {
	name string
	pin  machine.Pin
}

func (p *machinePin) Name() string { return p.name }

func (p *machinePin) Configure(mode PinMode, pull PinPull) error {
	var m machine.PinMode
	switch mode {
	case PinModeOutput:
		m = machine.PinOutput
	case PinModeInput:
		switch pull {
		case PinPullUp:
			m = machine.PinInputPullup
		case PinPullDown:
			m = machine.PinInputPulldown
		default:
			m = machine.PinInput
		}
	default:
		return fmt.Errorf("pin %s: invalid mode", p.name)
	}
	p.pin.Configure(machine.PinConfig{Mode: m})
	return nil
}

func (p *machinePin) Read() (bool, error) { return p.pin.Get(), nil }

func (p *machinePin) Write(level bool) error { p.pin.Set(level); return nil }

func newBoardDisplay() (Display, error) {
	bus := machine.I2C1
	if err := bus.Configure(machine.I2CConfig{
		SDA:       oledSDA,
		SCL:       oledSCL,
		Frequency: 400_000,
	}); err != nil {
		return nil, fmt.Errorf("display: i2c: %w", err)
	}

	// Probe the panel before handing the bus to the driver.
	if err := bus.Tx(oledAddr, []byte{0x00}, nil); err != nil {
		return nil, fmt.Errorf("display: %w", ErrUnavailable)
	}

	dev := ssd1306.NewI2C(bus)
	dev.Configure(ssd1306.Config{
		Width:    128,
		Height:   32,
		Address:  oledAddr,
		VccState: ssd1306.SWITCHCAPVCC,
	})
	dev.ClearDisplay()
	return &dev, nil
}

type boardEncoder struct {
	dev *encoders.QuadratureDevice
	sw  machine.Pin
}

func newBoardEncoder() Encoder {
	dev := encoders.NewQuadratureViaInterrupt(encPinA, encPinB)
	dev.Configure(encoders.QuadratureConfig{Precision: 4})

	encPinSW.Configure(machine.PinConfig{Mode: machine.PinInputPullup})
	return &boardEncoder{dev: dev, sw: encPinSW}
}

func (e *boardEncoder) Position() (int, error) {
	return e.dev.Position(), nil
}

// Pressed normalizes the active-low switch to a logical held level.
func (e *boardEncoder) Pressed() (bool, error) {
	return !e.sw.Get(), nil
}

// serialLogger writes lines to the USB CDC console. UART0 is not an option on
// this board: GP0/GP1 are taken by the encoder switch and a matrix column.
type serialLogger struct{}

func (l *serialLogger) WriteLineString(s string) {
	for i := 0; i < len(s); i++ {
		machine.Serial.WriteByte(s[i])
	}
	machine.Serial.WriteByte('\r')
	machine.Serial.WriteByte('\n')
}

func (l *serialLogger) WriteLineBytes(b []byte) {
	for i := 0; i < len(b); i++ {
		machine.Serial.WriteByte(b[i])
	}
	machine.Serial.WriteByte('\r')
	machine.Serial.WriteByte('\n')
}
