// Package haltest provides an in-memory HAL for tests.
package haltest

import (
	"strings"
	"sync"
	"time"

	"brass/hal"
)

// Framebuffer is an RGB565 pixel buffer that counts presents.
type Framebuffer struct {
	W, H     int
	Buf      []byte
	Presents int
}

func NewFramebuffer(w, h int) *Framebuffer {
	return &Framebuffer{W: w, H: h, Buf: make([]byte, w*h*2)}
}

func (f *Framebuffer) Width() int              { return f.W }
func (f *Framebuffer) Height() int             { return f.H }
func (f *Framebuffer) Format() hal.PixelFormat { return hal.PixelFormatRGB565 }
func (f *Framebuffer) StrideBytes() int        { return f.W * 2 }
func (f *Framebuffer) Buffer() []byte          { return f.Buf }

func (f *Framebuffer) Present() error {
	f.Presents++
	return nil
}

func (f *Framebuffer) ClearRGB(r, g, b uint8) {
	p := hal.RGB565(r, g, b)
	for i := 0; i+1 < len(f.Buf); i += 2 {
		f.Buf[i] = byte(p)
		f.Buf[i+1] = byte(p >> 8)
	}
}

// Pixel returns the raw RGB565 value at x, y.
func (f *Framebuffer) Pixel(x, y int) uint16 {
	off := y*f.W*2 + x*2
	return uint16(f.Buf[off]) | uint16(f.Buf[off+1])<<8
}

// Count returns how many pixels inside the rectangle equal p.
func (f *Framebuffer) Count(x0, y0, w, h int, p uint16) int {
	n := 0
	for y := y0; y < y0+h && y < f.H; y++ {
		for x := x0; x < x0+w && x < f.W; x++ {
			if f.Pixel(x, y) == p {
				n++
			}
		}
	}
	return n
}

// Logger records every line.
type Logger struct {
	mu    sync.Mutex
	Lines []string
}

func (l *Logger) WriteLineString(s string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.Lines = append(l.Lines, s)
}

func (l *Logger) WriteLineBytes(b []byte) { l.WriteLineString(string(b)) }

// Contains reports whether any line contains sub.
func (l *Logger) Contains(sub string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, line := range l.Lines {
		if strings.Contains(line, sub) {
			return true
		}
	}
	return false
}

// Haptics records every pattern.
type Haptics struct {
	Patterns [][]time.Duration
}

func (h *Haptics) Pulse(pattern []time.Duration) {
	h.Patterns = append(h.Patterns, append([]time.Duration(nil), pattern...))
}

// HAL is a scriptable hal.HAL. Fields may be changed between kernel steps.
type HAL struct {
	FB        *Framebuffer
	Log       *Logger
	Vibe      *Haptics
	DispShape hal.Shape
	DispColor bool

	Clock   time.Time
	Use24h  bool
	TickCh  chan uint64
	Battery hal.PowerState
	Linked  bool
}

// New returns a 144x168 colour watch at 2024-03-04 09:05 local time,
// 80% charged and connected.
func New() *HAL {
	return &HAL{
		FB:        NewFramebuffer(144, 168),
		Log:       &Logger{},
		Vibe:      &Haptics{},
		DispColor: true,
		Clock:     time.Date(2024, time.March, 4, 9, 5, 0, 0, time.Local),
		Use24h:    true,
		TickCh:    make(chan uint64, 64),
		Battery:   hal.PowerState{ChargePercent: 80},
		Linked:    true,
	}
}

func (h *HAL) Logger() hal.Logger   { return h.Log }
func (h *HAL) Display() hal.Display { return display{h: h} }
func (h *HAL) Time() hal.Time       { return clock{h: h} }
func (h *HAL) Power() hal.Power     { return power{h: h} }
func (h *HAL) Link() hal.Link       { return link{h: h} }
func (h *HAL) Haptics() hal.Haptics { return h.Vibe }

type display struct{ h *HAL }

func (d display) Framebuffer() hal.Framebuffer { return d.h.FB }
func (d display) Shape() hal.Shape             { return d.h.DispShape }
func (d display) Color() bool                  { return d.h.DispColor }

type clock struct{ h *HAL }

func (c clock) Ticks() <-chan uint64 { return c.h.TickCh }
func (c clock) Now() time.Time       { return c.h.Clock }
func (c clock) Is24Hour() bool       { return c.h.Use24h }

type power struct{ h *HAL }

func (p power) State() hal.PowerState { return p.h.Battery }

type link struct{ h *HAL }

func (l link) Connected() bool { return l.h.Linked }
