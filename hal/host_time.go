//go:build !tinygo

package hal

import (
	"sync"
	"time"
)

type hostTime struct {
	ch  chan uint64
	seq uint64

	last time.Time
	acc  time.Duration

	mu     sync.Mutex
	offset time.Duration
	use24h bool
}

func newHostTime(start time.Time, use24h bool) *hostTime {
	t := &hostTime{ch: make(chan uint64, 1024), use24h: use24h}
	if !start.IsZero() {
		t.offset = time.Until(start)
	}
	return t
}

func (t *hostTime) Ticks() <-chan uint64 { return t.ch }

func (t *hostTime) Now() time.Time {
	t.mu.Lock()
	defer t.mu.Unlock()
	return time.Now().Add(t.offset)
}

func (t *hostTime) Is24Hour() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.use24h
}

// advance moves the simulated wall clock forward without waiting.
func (t *hostTime) advance(d time.Duration) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.offset += d
}

func (t *hostTime) toggle24h() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.use24h = !t.use24h
}

func (t *hostTime) step(n uint64) {
	now := time.Now()
	if t.last.IsZero() {
		t.last = now
		t.acc = 0
		t.stepN(n)
		return
	}

	t.acc += now.Sub(t.last)
	t.last = now

	const tickDur = time.Millisecond
	ticks := uint64(t.acc / tickDur)
	if ticks == 0 {
		return
	}
	t.acc = t.acc % tickDur
	t.stepN(ticks)
}

func (t *hostTime) stepN(n uint64) {
	for i := uint64(0); i < n; i++ {
		t.seq++
		select {
		case t.ch <- t.seq:
		default:
		}
	}
}
