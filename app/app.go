// Package app wires a HAL to the watch OS kernel and the watch face.
package app

import (
	"time"

	"brass/hal"
	"brass/internal/buildinfo"
	"brass/watchface"
	"brass/watchos/kernel"
)

// frameInterval paces Run on boards without a host runner.
const frameInterval = 33 * time.Millisecond

type system struct {
	k    *kernel.Kernel
	face *watchface.Face
}

// Config holds the kernel tunables and the face options.
type Config struct {
	Kernel kernel.Config
	// Face overrides the options derived from the display when set.
	Face *watchface.Options
}

// DefaultConfig returns the kernel defaults and display-derived face options.
func DefaultConfig() Config {
	return Config{Kernel: kernel.DefaultConfig()}
}

// New starts the watch with the default config and returns the frame step.
func New(h hal.HAL) func() error {
	return NewWithConfig(h, DefaultConfig())
}

func NewWithConfig(h hal.HAL, cfg Config) func() error {
	s := newSystem(h, cfg)
	return s.k.Step
}

// Run starts the watch and steps it forever (TinyGo entrypoint).
func Run(h hal.HAL) {
	RunWithConfig(h, DefaultConfig())
}

func RunWithConfig(h hal.HAL, cfg Config) {
	s := newSystem(h, cfg)
	for {
		if err := s.k.Step(); err != nil {
			s.k.Log().Warnf("step: %v", err)
		}
		time.Sleep(frameInterval)
	}
}

func newSystem(h hal.HAL, cfg Config) *system {
	bootStep(h, "kernel")
	k := kernel.New(h, cfg.Kernel)
	installPanicHandler(h, k)

	opts := watchface.DefaultOptions(h.Display())
	if cfg.Face != nil {
		opts = *cfg.Face
	}
	k.Log().Infof("brass %s: %s display, color=%v, 24h=%v", buildinfo.Short(), opts.Shape, opts.Color, k.Is24h())

	bootStep(h, "watchface")
	face := watchface.New(k, opts)
	if err := face.Install(k); err != nil {
		k.Fault(err)
		return &system{k: k, face: face}
	}
	bootStep(h, "ready")
	return &system{k: k, face: face}
}
