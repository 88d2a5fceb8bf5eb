//go:build !tinygo && cgo

package hal

import (
	"sync"
	"time"

	"github.com/hajimehoshi/ebiten/v2/audio"
)

const (
	hapticSampleRate = 22050
	hapticBuzzHz     = 160
	hapticAmplitude  = 6000
)

// hostHaptics renders vibration patterns as a low square-wave buzz.
type hostHaptics struct {
	log *logHaptics

	once sync.Once
	ctx  *audio.Context
}

func newHostHaptics(logger Logger) *hostHaptics {
	return &hostHaptics{log: &logHaptics{logger: logger}}
}

func (h *hostHaptics) Pulse(pattern []time.Duration) {
	h.log.Pulse(pattern)

	h.once.Do(func() {
		h.ctx = audio.NewContext(hapticSampleRate)
	})
	if h.ctx == nil {
		return
	}
	p := h.ctx.NewPlayerFromBytes(buzzPCM(pattern))
	p.Play()
}

// buzzPCM returns 16-bit little-endian stereo samples for pattern.
func buzzPCM(pattern []time.Duration) []byte {
	var total int
	for _, d := range pattern {
		total += int(d * hapticSampleRate / time.Second)
	}
	out := make([]byte, 0, total*4)

	period := hapticSampleRate / hapticBuzzHz
	for i, d := range pattern {
		n := int(d * hapticSampleRate / time.Second)
		on := i%2 == 0
		for s := 0; s < n; s++ {
			var v int16
			if on {
				v = hapticAmplitude
				if (s/(period/2))%2 == 1 {
					v = -hapticAmplitude
				}
			}
			out = append(out, byte(v), byte(v>>8), byte(v), byte(v>>8))
		}
	}
	return out
}
