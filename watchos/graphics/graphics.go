// Package graphics draws into a hal.Framebuffer.
//
// A Context is bound to one layer at a time: coordinates passed to its drawing
// methods are relative to the layer frame and clipped to it.
package graphics

import (
	"image/color"

	"brass/hal"

	"tinygo.org/x/tinyfont"
)

// Color is an 8-bit-per-channel colour; A == 0 means "do not draw".
type Color = color.RGBA

var (
	ColorClear    = Color{}
	ColorBlack    = Color{R: 0x00, G: 0x00, B: 0x00, A: 0xFF}
	ColorWhite    = Color{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}
	ColorDarkGray = Color{R: 0x55, G: 0x55, B: 0x55, A: 0xFF}
	ColorBrass    = Color{R: 0xAA, G: 0xAA, B: 0x55, A: 0xFF}
)

// Rect is an axis-aligned rectangle. W and H may be zero.
type Rect struct {
	X, Y, W, H int
}

func R(x, y, w, h int) Rect { return Rect{X: x, Y: y, W: w, H: h} }

func (r Rect) Empty() bool { return r.W <= 0 || r.H <= 0 }

// Contains reports whether the point lies inside r.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// Intersect returns the overlap of r and o.
func (r Rect) Intersect(o Rect) Rect {
	x0 := maxInt(r.X, o.X)
	y0 := maxInt(r.Y, o.Y)
	x1 := minInt(r.X+r.W, o.X+o.W)
	y1 := minInt(r.Y+r.H, o.Y+o.H)
	if x1 <= x0 || y1 <= y0 {
		return Rect{X: x0, Y: y0}
	}
	return Rect{X: x0, Y: y0, W: x1 - x0, H: y1 - y0}
}

// Offset returns r moved by dx, dy.
func (r Rect) Offset(dx, dy int) Rect {
	return Rect{X: r.X + dx, Y: r.Y + dy, W: r.W, H: r.H}
}

// Alignment positions a line of text inside its box.
type Alignment uint8

const (
	AlignLeft Alignment = iota
	AlignCenter
	AlignRight
)

// Context holds drawing state for the layer being redrawn.
type Context struct {
	fb hal.Framebuffer

	origin Rect
	clip   Rect

	stroke Color
	fill   Color
	text   Color
}

// NewContext returns a context covering the whole framebuffer.
func NewContext(fb hal.Framebuffer) *Context {
	full := Rect{W: fb.Width(), H: fb.Height()}
	return &Context{fb: fb, origin: full, clip: full, stroke: ColorBlack, fill: ColorWhite, text: ColorBlack}
}

// Framebuffer returns the target framebuffer.
func (c *Context) Framebuffer() hal.Framebuffer { return c.fb }

// Bind moves the context onto a layer whose frame, in screen coordinates, is frame.
// Drawing is clipped to frame intersected with clip.
func (c *Context) Bind(frame, clip Rect) {
	c.origin = frame
	c.clip = frame.Intersect(clip)
}

// Bounds returns the bound area in local coordinates.
func (c *Context) Bounds() Rect { return Rect{W: c.origin.W, H: c.origin.H} }

func (c *Context) SetStrokeColor(col Color) { c.stroke = col }
func (c *Context) SetFillColor(col Color)   { c.fill = col }
func (c *Context) SetTextColor(col Color)   { c.text = col }

// FillRect fills r (local coordinates) with the fill colour.
func (c *Context) FillRect(r Rect) {
	if c.fill.A == 0 {
		return
	}
	abs := r.Offset(c.origin.X, c.origin.Y).Intersect(c.clip)
	if abs.Empty() {
		return
	}
	fillRectRGB565(c.fb, abs, hal.RGB565(c.fill.R, c.fill.G, c.fill.B))
}

// DrawText renders one line of text inside box (local coordinates) with the text colour.
// Text wider than the box is clipped, not wrapped.
func (c *Context) DrawText(s string, font tinyfont.Fonter, box Rect, align Alignment) {
	if font == nil || s == "" || c.text.A == 0 {
		return
	}
	m := MeasureFont(font)
	w := TextWidth(font, s)

	x := box.X
	switch align {
	case AlignCenter:
		x = box.X + (box.W-w)/2
	case AlignRight:
		x = box.X + box.W - w
	}

	saved := c.clip
	c.clip = box.Offset(c.origin.X, c.origin.Y).Intersect(saved)
	tinyfont.WriteLine(c.displayer(), font, int16(x), int16(box.Y+m.Ascent), s, c.text)
	c.clip = saved
}

// DrawBitmap draws bmp with its top-left corner at the origin of r (local coordinates).
// Set bits use fg; clear bits use bg unless bg is ColorClear.
func (c *Context) DrawBitmap(bmp *Bitmap, r Rect, fg, bg Color) {
	if bmp == nil {
		return
	}
	d := c.displayer()
	w := minInt(bmp.Width, r.W)
	h := minInt(bmp.Height, r.H)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if bmp.At(x, y) {
				d.SetPixel(int16(r.X+x), int16(r.Y+y), fg)
			} else if bg.A != 0 {
				d.SetPixel(int16(r.X+x), int16(r.Y+y), bg)
			}
		}
	}
}

func (c *Context) displayer() *fbDisplayer {
	return &fbDisplayer{fb: c.fb, dx: c.origin.X, dy: c.origin.Y, clip: c.clip}
}

// FontMetrics are the vertical extents of a font.
type FontMetrics struct {
	// Ascent is the distance from the top of the line to the baseline.
	Ascent int
	Height int
}

// MeasureFont derives line metrics from the digit glyphs.
func MeasureFont(font tinyfont.Fonter) FontMetrics {
	h := int(font.GetYAdvance())
	info := font.GetGlyph('0').Info()
	ascent := -int(info.YOffset)
	if ascent <= 0 || ascent > h {
		ascent = h * 3 / 4
	}
	return FontMetrics{Ascent: ascent, Height: h}
}

// TextWidth returns the advance width of s in pixels.
func TextWidth(font tinyfont.Fonter, s string) int {
	_, outboxWidth := tinyfont.LineWidth(font, s)
	return int(outboxWidth)
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
