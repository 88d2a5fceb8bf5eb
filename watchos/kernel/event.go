package kernel

import (
	"time"

	"brass/hal"
)

// EventKind selects the subscriber an event is delivered to.
type EventKind uint8

const (
	EventTick EventKind = iota + 1
	EventBattery
	EventConnection
)

func (k EventKind) String() string {
	switch k {
	case EventTick:
		return "tick"
	case EventBattery:
		return "battery"
	case EventConnection:
		return "connection"
	default:
		return "unknown"
	}
}

// TimeUnits is a set of calendar units.
type TimeUnits uint8

const (
	MinuteUnit TimeUnits = 1 << iota
	HourUnit
	DayUnit
	MonthUnit
	YearUnit
)

// Event is one queued notification. Only the fields for Kind are set.
type Event struct {
	Kind EventKind

	Time  time.Time
	Units TimeUnits

	Power     hal.PowerState
	Connected bool
}

// unitsChanged returns the calendar units that differ between prev and now.
// A change in a larger unit implies all smaller ones.
func unitsChanged(prev, now time.Time) TimeUnits {
	var u TimeUnits
	switch {
	case prev.Year() != now.Year():
		u |= YearUnit
		fallthrough
	case prev.Month() != now.Month():
		u |= MonthUnit
		fallthrough
	case prev.Day() != now.Day():
		u |= DayUnit
		fallthrough
	case prev.Hour() != now.Hour():
		u |= HourUnit
		fallthrough
	case prev.Minute() != now.Minute():
		u |= MinuteUnit
	}
	return u
}
