package ui

import (
	"brass/watchos/graphics"

	"tinygo.org/x/tinyfont"
)

// TextLayer draws one line of text over a solid background.
type TextLayer struct {
	layer *Layer

	text  string
	font  tinyfont.Fonter
	fg    graphics.Color
	bg    graphics.Color
	align graphics.Alignment
}

// NewTextLayer creates a text layer with black text on white, left aligned.
func NewTextLayer(frame graphics.Rect) *TextLayer {
	t := &TextLayer{
		layer: NewLayer(frame),
		fg:    graphics.ColorBlack,
		bg:    graphics.ColorWhite,
	}
	t.layer.SetUpdateProc(t.draw)
	return t
}

// Layer returns the underlying layer for attaching to a parent.
func (t *TextLayer) Layer() *Layer { return t.layer }

func (t *TextLayer) Text() string { return t.text }

// SetText replaces the text. The layer is only marked dirty on change.
func (t *TextLayer) SetText(s string) {
	t.layer.mustLive()
	if s == t.text {
		return
	}
	t.text = s
	t.layer.MarkDirty()
}

func (t *TextLayer) SetFont(f tinyfont.Fonter) {
	t.font = f
	t.layer.MarkDirty()
}

func (t *TextLayer) SetTextColor(c graphics.Color) {
	t.fg = c
	t.layer.MarkDirty()
}

func (t *TextLayer) SetBackgroundColor(c graphics.Color) {
	t.bg = c
	t.layer.MarkDirty()
}

func (t *TextLayer) SetAlignment(a graphics.Alignment) {
	t.align = a
	t.layer.MarkDirty()
}

func (t *TextLayer) Destroy() error {
	err := t.layer.Destroy()
	t.font = nil
	return err
}

func (t *TextLayer) draw(l *Layer, ctx *graphics.Context) {
	ctx.SetFillColor(t.bg)
	ctx.FillRect(l.Bounds())
	ctx.SetTextColor(t.fg)
	ctx.DrawText(t.text, t.font, l.Bounds(), t.align)
}
