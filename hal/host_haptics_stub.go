//go:build !tinygo && !cgo

package hal

// hostHaptics only logs when the audio backend is unavailable.
type hostHaptics = logHaptics

func newHostHaptics(logger Logger) *hostHaptics {
	return &logHaptics{logger: logger}
}
