//go:build !tinygo && cgo

package hal

import (
	"errors"
	"image"
	"time"

	"brass/internal/buildinfo"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// errQuit ends the window loop cleanly.
var errQuit = errors.New("quit")

// WindowConfig controls the desktop window runner.
type WindowConfig struct {
	Host  HostConfig
	Scale int
}

// RunWindow starts a desktop window that displays the framebuffer.
// It blocks until the window closes.
//
// Keys: B / Shift+B battery -/+ 5%, C toggles charging, L toggles the phone link,
// H toggles 12/24h, M skips one minute ahead, Esc quits.
func RunWindow(cfg WindowConfig, newApp func(HAL) func() error) error {
	h := newHostHAL(cfg.Host)
	h.haptics = newHostHaptics(h.logger)
	step := newApp(h)

	scale := cfg.Scale
	if scale <= 0 {
		scale = 2
	}

	g := &hostGame{h: h, step: step}
	ebiten.SetWindowTitle("Brass (" + buildinfo.Short() + ")")
	ebiten.SetWindowSize(h.fb.width*scale, h.fb.height*scale)
	ebiten.SetTPS(30)
	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, errQuit) {
		return err
	}
	return nil
}

type hostGame struct {
	h       *hostHAL
	img     *image.RGBA
	fbImg   *ebiten.Image
	scratch []byte
	step    func() error
}

func (g *hostGame) Update() error {
	if err := g.poll(); err != nil {
		return err
	}
	g.h.t.step(1)
	if g.step != nil {
		if err := g.step(); err != nil {
			return err
		}
	}
	return nil
}

func (g *hostGame) poll() error {
	shift := ebiten.IsKeyPressed(ebiten.KeyShiftLeft) || ebiten.IsKeyPressed(ebiten.KeyShiftRight)

	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return errQuit
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyB) {
		if shift {
			g.h.power.adjust(5)
		} else {
			g.h.power.adjust(-5)
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyC) {
		g.h.power.toggleCharging()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyL) {
		g.h.link.toggle()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyH) {
		g.h.t.toggle24h()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyM) {
		g.h.t.advance(time.Minute)
	}
	return nil
}

func (g *hostGame) Draw(screen *ebiten.Image) {
	fb := g.h.fb
	if g.img == nil || g.img.Bounds().Dx() != fb.width || g.img.Bounds().Dy() != fb.height {
		g.img = image.NewRGBA(image.Rect(0, 0, fb.width, fb.height))
		g.scratch = make([]byte, len(fb.buf))
		if g.fbImg != nil {
			g.fbImg.Deallocate()
		}
		g.fbImg = ebiten.NewImage(fb.width, fb.height)
	}

	fb.snapshotRGB565(g.scratch)

	src := g.scratch
	dst := g.img.Pix
	for i := 0; i+1 < len(src) && i/2*4+3 < len(dst); i += 2 {
		r, gg, b := RGB888From565(uint16(src[i]) | uint16(src[i+1])<<8)
		j := (i / 2) * 4
		dst[j+0] = r
		dst[j+1] = gg
		dst[j+2] = b
		dst[j+3] = 0xFF
	}
	if g.h.shape == ShapeRound {
		maskRound(dst, fb.width, fb.height)
	}

	g.fbImg.WritePixels(g.img.Pix)
	screen.DrawImage(g.fbImg, nil)
}

func (g *hostGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.h.fb.width, g.h.fb.height
}

// maskRound blacks out the corners a round panel cannot show.
func maskRound(pix []byte, w, h int) {
	cx := w / 2
	cy := h / 2
	r := cx
	if cy < r {
		r = cy
	}
	rr := r * r
	for y := 0; y < h; y++ {
		dy := y - cy
		for x := 0; x < w; x++ {
			dx := x - cx
			if dx*dx+dy*dy <= rr {
				continue
			}
			j := (y*w + x) * 4
			if j+3 >= len(pix) {
				return
			}
			pix[j+0] = 0
			pix[j+1] = 0
			pix[j+2] = 0
		}
	}
}
