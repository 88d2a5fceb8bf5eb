package watchface

import (
	"brass/hal"
	"brass/watchos/graphics"
)

// Offsets shift the face elements for a display shape.
type Offsets struct {
	TimeY    int
	DateY    int
	BatteryX int
	BatteryY int
	BTX      int
	BTY      int
}

// OffsetsFor returns the element offsets for shape.
func OffsetsFor(shape hal.Shape) Offsets {
	if shape == hal.ShapeRound {
		return Offsets{TimeY: 30, DateY: 68, BatteryX: 8, BatteryY: 0, BTX: 36, BTY: -14}
	}
	return Offsets{TimeY: 0, DateY: 44, BatteryX: 8, BatteryY: -16, BTX: 0, BTY: 0}
}

// Layout holds the element rectangles, fixed once the window loads.
type Layout struct {
	Bounds       graphics.Rect
	Unobstructed graphics.Rect

	Time         graphics.Rect
	Date         graphics.Rect
	Battery      graphics.Rect
	BatteryLabel graphics.Rect
	BTIcon       graphics.Rect
}

// NewLayout places the elements on a window with the given bounds.
func NewLayout(shape hal.Shape, bounds, unobstructed graphics.Rect) Layout {
	o := OffsetsFor(shape)
	u := unobstructed
	return Layout{
		Bounds:       bounds,
		Unobstructed: u,
		Time:         graphics.R(2, o.TimeY, bounds.W, 48),
		Date:         graphics.R(3, o.DateY, bounds.W, 28),
		Battery:      u,
		BatteryLabel: graphics.R(u.X+o.BatteryX, u.H/2+o.BatteryY, u.W, 24),
		BTIcon:       graphics.R(90+o.BTX, u.H*725/1000+o.BTY, 30, 30),
	}
}

// Palette is the face colour scheme.
type Palette struct {
	Background graphics.Color
	Text       graphics.Color
}

// PaletteFor returns brass and black on colour panels, white and black otherwise.
func PaletteFor(color bool) Palette {
	if color {
		return Palette{Background: graphics.ColorBrass, Text: graphics.ColorBlack}
	}
	return Palette{Background: graphics.ColorWhite, Text: graphics.ColorBlack}
}
