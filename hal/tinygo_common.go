//go:build tinygo

package hal

import "time"

type tinyGoDisplay struct {
	fb    Framebuffer
	shape Shape
	color bool
}

func (d tinyGoDisplay) Framebuffer() Framebuffer { return d.fb }
func (d tinyGoDisplay) Shape() Shape             { return d.shape }
func (d tinyGoDisplay) Color() bool              { return d.color }

type tinyGoTime struct {
	ch     chan uint64
	seq    uint64
	use24h bool
}

func newTinyGoTime(use24h bool) *tinyGoTime {
	t := &tinyGoTime{ch: make(chan uint64, 16), use24h: use24h}
	go func() {
		ticker := time.NewTicker(1 * time.Millisecond)
		defer ticker.Stop()
		for range ticker.C {
			t.seq++
			select {
			case t.ch <- t.seq:
			default:
			}
		}
	}()
	return t
}

func (t *tinyGoTime) Ticks() <-chan uint64 { return t.ch }
func (t *tinyGoTime) Now() time.Time       { return time.Now() }
func (t *tinyGoTime) Is24Hour() bool       { return t.use24h }

type printLogger struct{}

func (l printLogger) WriteLineString(s string) {
	println(s)
}

func (l printLogger) WriteLineBytes(b []byte) {
	println(string(b))
}

type fixedPower struct {
	st PowerState
}

func (p fixedPower) State() PowerState { return p.st }

type fixedLink struct {
	connected bool
}

func (l fixedLink) Connected() bool { return l.connected }

type printHaptics struct {
	logger Logger
}

func (h printHaptics) Pulse(pattern []time.Duration) {
	for i, d := range pattern {
		if i%2 == 0 {
			h.logger.WriteLineString("vibe: on " + d.String())
		}
	}
}
