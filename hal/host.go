//go:build !tinygo

package hal

import (
	"fmt"
	"os"
	"strings"
	"sync"
	"time"
)

// HostConfig describes the simulated watch.
type HostConfig struct {
	Shape  Shape
	Width  int
	Height int
	Color  bool

	Use24h bool
	// Start, when set, is the wall clock time at startup.
	Start time.Time

	ChargePercent int
	Charging      bool
	Connected     bool
}

// DefaultHostConfig returns a rectangular colour watch, fully charged and connected.
func DefaultHostConfig() HostConfig {
	return HostConfig{
		Shape:         ShapeRect,
		Width:         144,
		Height:        168,
		Color:         true,
		Use24h:        true,
		ChargePercent: 100,
		Connected:     true,
	}
}

type hostHAL struct {
	logger  *hostLogger
	fb      *hostFramebuffer
	shape   Shape
	color   bool
	t       *hostTime
	power   *hostPower
	link    *hostLink
	haptics Haptics
}

// New returns a host HAL implementation with the default configuration.
func New() HAL {
	return newHostHAL(DefaultHostConfig())
}

// NewHost returns a host HAL implementation for cfg.
func NewHost(cfg HostConfig) HAL {
	return newHostHAL(cfg)
}

func newHostHAL(cfg HostConfig) *hostHAL {
	def := DefaultHostConfig()
	if cfg.Width <= 0 || cfg.Height <= 0 {
		cfg.Width, cfg.Height = def.Width, def.Height
		if cfg.Shape == ShapeRound {
			cfg.Width, cfg.Height = 180, 180
		}
	}
	logger := &hostLogger{w: os.Stdout}
	return &hostHAL{
		logger:  logger,
		fb:      newHostFramebuffer(cfg.Width, cfg.Height),
		shape:   cfg.Shape,
		color:   cfg.Color,
		t:       newHostTime(cfg.Start, cfg.Use24h),
		power:   &hostPower{st: PowerState{ChargePercent: ClampPercent(cfg.ChargePercent), Charging: cfg.Charging, Plugged: cfg.Charging}},
		link:    &hostLink{connected: cfg.Connected},
		haptics: &logHaptics{logger: logger},
	}
}

func (h *hostHAL) Logger() Logger   { return h.logger }
func (h *hostHAL) Display() Display { return hostDisplay{fb: h.fb, shape: h.shape, color: h.color} }
func (h *hostHAL) Time() Time       { return h.t }
func (h *hostHAL) Power() Power     { return h.power }
func (h *hostHAL) Link() Link       { return h.link }
func (h *hostHAL) Haptics() Haptics { return h.haptics }

type hostDisplay struct {
	fb    *hostFramebuffer
	shape Shape
	color bool
}

func (d hostDisplay) Framebuffer() Framebuffer { return d.fb }
func (d hostDisplay) Shape() Shape             { return d.shape }
func (d hostDisplay) Color() bool              { return d.color }

type hostLogger struct {
	mu sync.Mutex
	w  *os.File
}

func (l *hostLogger) WriteLineString(s string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintln(l.w, s)
}

func (l *hostLogger) WriteLineBytes(b []byte) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.w.Write(b)
	l.w.Write([]byte{'\n'})
}

type hostPower struct {
	mu sync.Mutex
	st PowerState
}

func (p *hostPower) State() PowerState {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.st
}

func (p *hostPower) set(percent int, charging bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.st = PowerState{ChargePercent: ClampPercent(percent), Charging: charging, Plugged: charging}
}

func (p *hostPower) adjust(delta int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.st.ChargePercent = ClampPercent(p.st.ChargePercent + delta)
}

func (p *hostPower) toggleCharging() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.st.Charging = !p.st.Charging
	p.st.Plugged = p.st.Charging
}

type hostLink struct {
	mu        sync.Mutex
	connected bool
}

func (l *hostLink) Connected() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.connected
}

func (l *hostLink) set(connected bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.connected = connected
}

func (l *hostLink) toggle() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.connected = !l.connected
}

// logHaptics prints vibration patterns instead of driving a motor.
type logHaptics struct {
	logger Logger
}

func (h *logHaptics) Pulse(pattern []time.Duration) {
	h.logger.WriteLineString("vibe: " + formatPattern(pattern))
}

func formatPattern(pattern []time.Duration) string {
	var b strings.Builder
	for i, d := range pattern {
		if i > 0 {
			b.WriteByte(' ')
		}
		if i%2 == 0 {
			b.WriteString("on=")
		} else {
			b.WriteString("off=")
		}
		b.WriteString(d.String())
	}
	return b.String()
}
