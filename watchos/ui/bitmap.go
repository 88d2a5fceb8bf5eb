package ui

import "brass/watchos/graphics"

// BitmapLayer draws a 1bpp bitmap centred in its frame.
type BitmapLayer struct {
	layer *Layer

	bmp *graphics.Bitmap
	fg  graphics.Color
	bg  graphics.Color
}

// NewBitmapLayer creates an empty bitmap layer drawing set bits in black.
func NewBitmapLayer(frame graphics.Rect) *BitmapLayer {
	b := &BitmapLayer{layer: NewLayer(frame), fg: graphics.ColorBlack}
	b.layer.SetUpdateProc(b.draw)
	return b
}

func (b *BitmapLayer) Layer() *Layer { return b.layer }

func (b *BitmapLayer) SetBitmap(bmp *graphics.Bitmap) {
	b.bmp = bmp
	b.layer.MarkDirty()
}

func (b *BitmapLayer) SetColors(fg, bg graphics.Color) {
	b.fg = fg
	b.bg = bg
	b.layer.MarkDirty()
}

// Destroy releases the layer. The bitmap itself is owned by the caller.
func (b *BitmapLayer) Destroy() error {
	err := b.layer.Destroy()
	b.bmp = nil
	return err
}

func (b *BitmapLayer) draw(l *Layer, ctx *graphics.Context) {
	if b.bmp == nil {
		return
	}
	r := l.Bounds()
	x := (r.W - b.bmp.Width) / 2
	y := (r.H - b.bmp.Height) / 2
	if x < 0 {
		x = 0
	}
	if y < 0 {
		y = 0
	}
	if b.bg.A != 0 {
		ctx.SetFillColor(b.bg)
		ctx.FillRect(r)
	}
	ctx.DrawBitmap(b.bmp, graphics.R(x, y, r.W-x, r.H-y), b.fg, graphics.ColorClear)
}
