package kernel

import (
	"time"

	"brass/hal"
)

var (
	shortPulse  = []time.Duration{150 * time.Millisecond}
	longPulse   = []time.Duration{500 * time.Millisecond}
	doublePulse = []time.Duration{100 * time.Millisecond, 100 * time.Millisecond, 100 * time.Millisecond}
)

// Vibes plays the stock vibration patterns.
type Vibes struct {
	h   hal.Haptics
	log Log
}

func (v Vibes) ShortPulse()  { v.play("short", shortPulse) }
func (v Vibes) LongPulse()   { v.play("long", longPulse) }
func (v Vibes) DoublePulse() { v.play("double", doublePulse) }

func (v Vibes) play(name string, pattern []time.Duration) {
	v.log.Debugf("vibes: %s pulse", name)
	if v.h == nil {
		return
	}
	v.h.Pulse(append([]time.Duration(nil), pattern...))
}
