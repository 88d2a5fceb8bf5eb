// Package ui implements windows, layers and the compositor of the watch OS.
//
// All types are owned by the kernel event loop and are not safe for concurrent use.
package ui

import (
	"errors"

	"brass/watchos/graphics"
)

var (
	ErrDestroyed    = errors.New("ui: destroyed")
	ErrWindowActive = errors.New("ui: a window is already on the stack")
	ErrNoWindow     = errors.New("ui: window stack is empty")
)

// UpdateProc redraws a layer. ctx is bound to the layer frame.
type UpdateProc func(l *Layer, ctx *graphics.Context)

// Layer is a drawable region composited by the runtime.
type Layer struct {
	frame     graphics.Rect
	hidden    bool
	dirty     bool
	destroyed bool

	parent   *Layer
	children []*Layer
	update   UpdateProc
}

// NewLayer creates a detached layer. New layers start dirty.
func NewLayer(frame graphics.Rect) *Layer {
	return &Layer{frame: frame, dirty: true}
}

func (l *Layer) mustLive() {
	if l.destroyed {
		panic(ErrDestroyed)
	}
}

// Frame returns the layer rectangle in parent coordinates.
func (l *Layer) Frame() graphics.Rect { return l.frame }

// Bounds returns the layer rectangle in its own coordinates.
func (l *Layer) Bounds() graphics.Rect {
	return graphics.Rect{W: l.frame.W, H: l.frame.H}
}

// UnobstructedBounds returns the part of Bounds not covered by system overlays.
// The watch OS has no overlays, so it is always Bounds.
func (l *Layer) UnobstructedBounds() graphics.Rect { return l.Bounds() }

func (l *Layer) SetFrame(r graphics.Rect) {
	l.mustLive()
	l.frame = r
	l.MarkDirty()
}

func (l *Layer) SetUpdateProc(fn UpdateProc) {
	l.mustLive()
	l.update = fn
}

// MarkDirty schedules a redraw of the window holding l.
func (l *Layer) MarkDirty() {
	l.mustLive()
	l.dirty = true
}

func (l *Layer) Hidden() bool { return l.hidden }

func (l *Layer) SetHidden(hidden bool) {
	l.mustLive()
	if l.hidden == hidden {
		return
	}
	l.hidden = hidden
	l.dirty = true
	if l.parent != nil {
		l.parent.dirty = true
	}
}

// AddChild appends child on top of existing children, detaching it first if needed.
func (l *Layer) AddChild(child *Layer) {
	l.mustLive()
	child.mustLive()
	child.RemoveFromParent()
	child.parent = l
	l.children = append(l.children, child)
	l.dirty = true
}

// RemoveFromParent detaches l. It is a no-op for detached layers.
func (l *Layer) RemoveFromParent() {
	p := l.parent
	if p == nil {
		return
	}
	for i, c := range p.children {
		if c == l {
			p.children = append(p.children[:i], p.children[i+1:]...)
			break
		}
	}
	l.parent = nil
	p.dirty = true
}

func (l *Layer) Children() []*Layer { return l.children }

// Destroyed reports whether Destroy has been called.
func (l *Layer) Destroyed() bool { return l.destroyed }

// Destroy detaches l and releases it. Children are detached, not destroyed.
// Destroying a layer twice returns ErrDestroyed.
func (l *Layer) Destroy() error {
	if l.destroyed {
		return ErrDestroyed
	}
	l.RemoveFromParent()
	for _, c := range l.children {
		c.parent = nil
	}
	l.children = nil
	l.update = nil
	l.destroyed = true
	return nil
}

// treeDirty reports whether l or any visible descendant needs a redraw.
func (l *Layer) treeDirty() bool {
	if l.dirty {
		return true
	}
	for _, c := range l.children {
		if c.treeDirty() {
			return true
		}
	}
	return false
}

// draw renders l and its children; origin is the parent's screen position.
func (l *Layer) draw(ctx *graphics.Context, originX, originY int, clip graphics.Rect) {
	l.dirty = false
	if l.hidden {
		for _, c := range l.children {
			c.clearDirty()
		}
		return
	}
	abs := l.frame.Offset(originX, originY)
	if l.update != nil {
		ctx.Bind(abs, clip)
		l.update(l, ctx)
	}
	inner := abs.Intersect(clip)
	for _, c := range l.children {
		c.draw(ctx, abs.X, abs.Y, inner)
	}
}

func (l *Layer) clearDirty() {
	l.dirty = false
	for _, c := range l.children {
		c.clearDirty()
	}
}
