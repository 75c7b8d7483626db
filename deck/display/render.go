package display

import (
	"fmt"
	"image/color"

	"tinygo.org/x/tinyfont"
	"tinygo.org/x/tinyfont/freemono"
	"tinygo.org/x/tinyfont/proggy"

	"icedeck/hal"
)

var (
	clockFont  = &freemono.Bold9pt7b
	statusFont = &proggy.TinySZ8pt7b
)

var pixelOn = color.RGBA{R: 255, G: 255, B: 255, A: 255}

// Renderer draws views onto the status OLED.
//
// A renderer over a nil display is permanently disabled and renders nothing;
// the keypad keeps working blind. Render failures are reported to the caller
// for logging and never affect engine state.
type Renderer struct {
	d hal.Display
}

func NewRenderer(d hal.Display) *Renderer {
	return &Renderer{d: d}
}

func (r *Renderer) Enabled() bool { return r.d != nil }

func (r *Renderer) Render(v View) error {
	if r.d == nil || v.Kind == ViewNone {
		return nil
	}

	r.d.ClearBuffer()
	w, h := r.d.Size()
	r.drawBorder(w, h)

	switch v.Kind {
	case ViewClock:
		text := v.Now.Format("15:04:05")
		_, outbox := tinyfont.LineWidth(clockFont, text)
		x := (w - int16(outbox)) / 2
		if x < 2 {
			x = 2
		}
		tinyfont.WriteLine(r.d, clockFont, x, h/2+6, text, pixelOn)
	case ViewStatus:
		tinyfont.WriteLine(r.d, statusFont, 4, 12,
			fmt.Sprintf("L:%d V:%d", v.Layer, v.EncoderValue), pixelOn)
		if v.Label != "" {
			tinyfont.WriteLine(r.d, statusFont, 4, 26, "Key: "+v.Label, pixelOn)
		}
	}

	if err := r.d.Display(); err != nil {
		return fmt.Errorf("display: %w", err)
	}
	return nil
}

// Clear blanks the panel; used on the shutdown path.
func (r *Renderer) Clear() error {
	if r.d == nil {
		return nil
	}
	r.d.ClearBuffer()
	if err := r.d.Display(); err != nil {
		return fmt.Errorf("display: %w", err)
	}
	return nil
}

func (r *Renderer) drawBorder(w, h int16) {
	for x := int16(0); x < w; x++ {
		r.d.SetPixel(x, 0, pixelOn)
		r.d.SetPixel(x, h-1, pixelOn)
	}
	for y := int16(0); y < h; y++ {
		r.d.SetPixel(0, y, pixelOn)
		r.d.SetPixel(w-1, y, pixelOn)
	}
}
