package watchface

import (
	"time"

	"brass/watchos/kernel"
)

// Event is delivered to Face.Handle by the watch OS.
type Event interface {
	event()
}

// TickEvent reports a change of calendar units.
type TickEvent struct {
	Time  time.Time
	Units kernel.TimeUnits
}

// BatteryEvent carries a new battery sample.
type BatteryEvent struct {
	State BatteryState
}

// ConnectionEvent reports the phone link state.
type ConnectionEvent struct {
	Connected bool
}

// RedrawEvent is raised when the background canvas is redrawn.
type RedrawEvent struct{}

func (TickEvent) event()       {}
func (BatteryEvent) event()    {}
func (ConnectionEvent) event() {}
func (RedrawEvent) event()     {}
