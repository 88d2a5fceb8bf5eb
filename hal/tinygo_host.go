//go:build tinygo && !baremetal

package hal

type tinyGoHostHAL struct {
	logger printLogger
	fb     *ramFramebuffer
	t      *tinyGoTime
}

// New returns a TinyGo-on-host HAL implementation.
//
// This is used by `tinygo run` targets like linux/wasm where there is no MCU pin mapping.
// Battery and link are fixed at full charge and connected.
func New() HAL {
	return &tinyGoHostHAL{
		fb: newRAMFramebuffer(144, 168),
		t:  newTinyGoTime(true),
	}
}

func (h *tinyGoHostHAL) Logger() Logger { return h.logger }
func (h *tinyGoHostHAL) Display() Display {
	return tinyGoDisplay{fb: h.fb, shape: ShapeRect, color: true}
}
func (h *tinyGoHostHAL) Time() Time       { return h.t }
func (h *tinyGoHostHAL) Power() Power     { return fixedPower{st: PowerState{ChargePercent: 100}} }
func (h *tinyGoHostHAL) Link() Link       { return fixedLink{connected: true} }
func (h *tinyGoHostHAL) Haptics() Haptics { return printHaptics{logger: h.logger} }
