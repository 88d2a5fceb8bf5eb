package hal

import (
	"errors"
	"time"
)

// Logger writes newline-delimited log lines.
type Logger interface {
	WriteLineString(s string)
	WriteLineBytes(b []byte)
}

var ErrNotImplemented = errors.New("not implemented")

// PixelFormat defines the framebuffer pixel encoding.
type PixelFormat uint8

const (
	// PixelFormatRGB565 is 16bpp: rrrrrggggggbbbbb.
	PixelFormatRGB565 PixelFormat = iota + 1
)

// Framebuffer is a simple pixel buffer plus a "present" hook.
type Framebuffer interface {
	Width() int
	Height() int
	Format() PixelFormat
	StrideBytes() int
	Buffer() []byte
	ClearRGB(r, g, b uint8)
	Present() error
}

// Shape describes the physical outline of the panel.
type Shape uint8

const (
	ShapeRect Shape = iota
	ShapeRound
)

func (s Shape) String() string {
	switch s {
	case ShapeRound:
		return "round"
	default:
		return "rect"
	}
}

// Display provides access to the framebuffer (if available).
type Display interface {
	Framebuffer() Framebuffer
	Shape() Shape
	// Color reports whether the panel can show more than black and white.
	Color() bool
}

// Time provides a base tick stream and the wall clock.
//
// The tick duration is one millisecond on every platform.
type Time interface {
	Ticks() <-chan uint64
	Now() time.Time
	// Is24Hour reports the user's clock style preference.
	Is24Hour() bool
}

// PowerState is a battery sample.
type PowerState struct {
	// ChargePercent is 0..100.
	ChargePercent int
	Charging      bool
	Plugged       bool
}

// Power reports the battery state of charge.
type Power interface {
	State() PowerState
}

// Link reports connectivity to the paired phone.
type Link interface {
	Connected() bool
}

// Haptics drives the vibration motor.
//
// Pattern alternates on and off durations, starting with on. Pulse must not block.
type Haptics interface {
	Pulse(pattern []time.Duration)
}

// HAL provides the only contact point between the watch OS and the outside world.
type HAL interface {
	Logger() Logger
	Display() Display
	Time() Time
	Power() Power
	Link() Link
	Haptics() Haptics
}

// ClampPercent limits a raw charge reading to 0..100.
func ClampPercent(p int) int {
	if p < 0 {
		return 0
	}
	if p > 100 {
		return 100
	}
	return p
}
