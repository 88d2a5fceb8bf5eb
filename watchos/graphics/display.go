package graphics

import (
	"image/color"

	"brass/hal"

	"tinygo.org/x/drivers"
)

var _ drivers.Displayer = (*fbDisplayer)(nil)

// fbDisplayer adapts a framebuffer to tinyfont, translating layer-local
// coordinates and dropping pixels outside clip.
type fbDisplayer struct {
	fb     hal.Framebuffer
	dx, dy int
	clip   Rect
}

func (d *fbDisplayer) Size() (x, y int16) {
	if d.fb == nil {
		return 0, 0
	}
	return int16(d.fb.Width()), int16(d.fb.Height())
}

func (d *fbDisplayer) SetPixel(x, y int16, c color.RGBA) {
	if d.fb == nil || d.fb.Format() != hal.PixelFormatRGB565 {
		return
	}
	buf := d.fb.Buffer()
	if buf == nil {
		return
	}

	ix := int(x) + d.dx
	iy := int(y) + d.dy
	if !d.clip.Contains(ix, iy) {
		return
	}
	if ix < 0 || ix >= d.fb.Width() || iy < 0 || iy >= d.fb.Height() {
		return
	}

	pixel := hal.RGB565(c.R, c.G, c.B)
	off := iy*d.fb.StrideBytes() + ix*2
	if off < 0 || off+1 >= len(buf) {
		return
	}
	buf[off] = byte(pixel)
	buf[off+1] = byte(pixel >> 8)
}

func (d *fbDisplayer) Display() error { return nil }

// fillRectRGB565 fills r, which must already be clipped to the framebuffer.
func fillRectRGB565(fb hal.Framebuffer, r Rect, pixel uint16) {
	if fb.Format() != hal.PixelFormatRGB565 {
		return
	}
	buf := fb.Buffer()
	if buf == nil {
		return
	}
	r = r.Intersect(Rect{W: fb.Width(), H: fb.Height()})
	stride := fb.StrideBytes()
	lo := byte(pixel)
	hi := byte(pixel >> 8)
	for yy := 0; yy < r.H; yy++ {
		row := (r.Y+yy)*stride + r.X*2
		for xx := 0; xx < r.W; xx++ {
			off := row + xx*2
			if off < 0 || off+1 >= len(buf) {
				continue
			}
			buf[off] = lo
			buf[off+1] = hi
		}
	}
}
