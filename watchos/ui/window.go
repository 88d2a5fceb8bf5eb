package ui

import (
	"brass/hal"
	"brass/watchos/graphics"
)

// WindowHandlers are called when the window enters and leaves the stack.
type WindowHandlers struct {
	Load   func(w *Window)
	Unload func(w *Window)
}

// Window is a full-screen root layer plus lifecycle handlers.
type Window struct {
	root      *Layer
	bg        graphics.Color
	handlers  WindowHandlers
	loaded    bool
	destroyed bool
}

// NewWindow creates a window covering a display of the given size.
func NewWindow(width, height int) *Window {
	return &Window{
		root: NewLayer(graphics.R(0, 0, width, height)),
		bg:   graphics.ColorWhite,
	}
}

// RootLayer is the parent of every layer shown in the window.
func (w *Window) RootLayer() *Layer { return w.root }

func (w *Window) SetHandlers(h WindowHandlers) { w.handlers = h }

func (w *Window) SetBackgroundColor(c graphics.Color) {
	w.bg = c
	w.root.MarkDirty()
}

func (w *Window) Loaded() bool    { return w.loaded }
func (w *Window) Destroyed() bool { return w.destroyed }

// Destroy releases the root layer. A loaded window must be popped first.
func (w *Window) Destroy() error {
	if w.destroyed {
		return ErrDestroyed
	}
	w.destroyed = true
	return w.root.Destroy()
}

// WindowStack holds at most one live window.
type WindowStack struct {
	top *Window
}

// Push shows w and runs its load handler.
func (s *WindowStack) Push(w *Window) error {
	if w.destroyed {
		return ErrDestroyed
	}
	if s.top != nil {
		return ErrWindowActive
	}
	s.top = w
	w.loaded = true
	if w.handlers.Load != nil {
		w.handlers.Load(w)
	}
	if !w.destroyed {
		w.root.MarkDirty()
	}
	return nil
}

// Pop runs the unload handler of the top window and removes it.
func (s *WindowStack) Pop() (*Window, error) {
	w := s.top
	if w == nil {
		return nil, ErrNoWindow
	}
	s.top = nil
	w.loaded = false
	if w.handlers.Unload != nil {
		w.handlers.Unload(w)
	}
	return w, nil
}

func (s *WindowStack) Top() *Window { return s.top }

// Compositor renders the top window into a framebuffer.
type Compositor struct {
	fb  hal.Framebuffer
	ctx *graphics.Context

	frames uint64
}

func NewCompositor(fb hal.Framebuffer) *Compositor {
	return &Compositor{fb: fb, ctx: graphics.NewContext(fb)}
}

// Frames returns how many frames were presented.
func (c *Compositor) Frames() uint64 { return c.frames }

// Render redraws the whole window when any of its layers is dirty and presents it.
// It reports whether a frame was drawn.
func (c *Compositor) Render(s *WindowStack) (bool, error) {
	w := s.Top()
	if w == nil || w.destroyed || !w.root.treeDirty() {
		return false, nil
	}
	c.fb.ClearRGB(w.bg.R, w.bg.G, w.bg.B)
	screen := graphics.R(0, 0, c.fb.Width(), c.fb.Height())
	w.root.draw(c.ctx, 0, 0, screen)
	c.frames++
	return true, c.fb.Present()
}
