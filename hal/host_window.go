//go:build !tinygo

package hal

import (
	"image"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"icedeck/internal/buildinfo"
)

const windowScale = 6

// RunWindow starts a desktop window that displays the OLED contents and maps
// the host keyboard onto the simulated keypad. It blocks until the window
// closes.
//
// Keys 1-9 press the 3x3 matrix cells, arrow up/down (or the mouse wheel)
// turns the encoder, M holds the encoder switch.
func RunWindow(newApp func(HAL) func() error) error {
	h := New().(*hostHAL)
	step := newApp(h)

	g := &hostGame{h: h, step: step}
	ebiten.SetWindowTitle("IceDeck (" + buildinfo.Short() + ")")
	ebiten.SetWindowSize(hostOLEDWidth*windowScale, hostOLEDHeight*windowScale)
	ebiten.SetTPS(60)
	return ebiten.RunGame(g)
}

var cellKeys = [hostMatrixRows * hostMatrixCols]ebiten.Key{
	ebiten.KeyDigit1, ebiten.KeyDigit2, ebiten.KeyDigit3,
	ebiten.KeyDigit4, ebiten.KeyDigit5, ebiten.KeyDigit6,
	ebiten.KeyDigit7, ebiten.KeyDigit8, ebiten.KeyDigit9,
}

type hostGame struct {
	h       *hostHAL
	img     *image.RGBA
	fbImg   *ebiten.Image
	scratch []byte
	wheel   float64
	step    func() error
}

func (g *hostGame) Update() error {
	g.pollInput()
	if g.step != nil {
		if err := g.step(); err != nil {
			return err
		}
	}
	return nil
}

// pollInput forwards the host keyboard to the simulated devices as raw levels;
// debouncing and edge detection stay with the engine.
func (g *hostGame) pollInput() {
	for i, key := range cellKeys {
		g.h.matrix.SetKey(i/hostMatrixCols, i%hostMatrixCols, ebiten.IsKeyPressed(key))
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyArrowUp) {
		g.h.enc.Turn(1)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowDown) {
		g.h.enc.Turn(-1)
	}
	_, dy := ebiten.Wheel()
	g.wheel += dy
	for g.wheel >= 1 {
		g.h.enc.Turn(1)
		g.wheel--
	}
	for g.wheel <= -1 {
		g.h.enc.Turn(-1)
		g.wheel++
	}

	g.h.enc.SetPressed(ebiten.IsKeyPressed(ebiten.KeyM))
}

func (g *hostGame) Draw(screen *ebiten.Image) {
	fb := g.h.fb
	if g.img == nil {
		g.img = image.NewRGBA(image.Rect(0, 0, fb.w, fb.h))
		g.scratch = make([]byte, len(fb.buf))
		g.fbImg = ebiten.NewImage(fb.w, fb.h)
	}

	fb.snapshot(g.scratch)

	dst := g.img.Pix
	for i, on := range g.scratch {
		j := i * 4
		var v byte
		if on != 0 {
			v = 0xFF
		}
		dst[j+0] = v
		dst[j+1] = v
		dst[j+2] = v
		dst[j+3] = 0xFF
	}

	g.fbImg.WritePixels(g.img.Pix)
	screen.DrawImage(g.fbImg, nil)
}

func (g *hostGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.h.fb.w, g.h.fb.h
}
