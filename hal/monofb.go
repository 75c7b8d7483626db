//go:build !tinygo

package hal

import (
	"image/color"
	"sync"
)

// monoFramebuffer is a 1bpp pixel surface standing in for the OLED on host
// builds. One byte per pixel; the window blits from a snapshot so rendering
// and drawing never race.
type monoFramebuffer struct {
	mu  sync.Mutex
	w   int
	h   int
	buf []byte
}

func newMonoFramebuffer(w, h int) *monoFramebuffer {
	return &monoFramebuffer{w: w, h: h, buf: make([]byte, w*h)}
}

func (f *monoFramebuffer) Size() (x, y int16) {
	return int16(f.w), int16(f.h)
}

func (f *monoFramebuffer) SetPixel(x, y int16, c color.RGBA) {
	ix := int(x)
	iy := int(y)
	if ix < 0 || ix >= f.w || iy < 0 || iy >= f.h {
		return
	}
	var on byte
	if c.R != 0 || c.G != 0 || c.B != 0 {
		on = 1
	}
	f.mu.Lock()
	f.buf[iy*f.w+ix] = on
	f.mu.Unlock()
}

func (f *monoFramebuffer) ClearBuffer() {
	f.mu.Lock()
	for i := range f.buf {
		f.buf[i] = 0
	}
	f.mu.Unlock()
}

// Display is a no-op on host; the window pulls a snapshot each frame.
func (f *monoFramebuffer) Display() error { return nil }

func (f *monoFramebuffer) snapshot(dst []byte) {
	f.mu.Lock()
	copy(dst, f.buf)
	f.mu.Unlock()
}
