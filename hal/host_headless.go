//go:build !tinygo

package hal

import (
	"context"
	"fmt"
	"time"
)

// ScriptStep changes the simulated watch once the runner reaches AtTick.
// Nil fields are left unchanged.
type ScriptStep struct {
	AtTick    uint64
	Battery   *int
	Charging  *bool
	Connected *bool
	// Advance moves the wall clock forward.
	Advance time.Duration
}

// HeadlessConfig controls the no-window host runner.
type HeadlessConfig struct {
	Enabled    bool
	Hz         int
	Ticks      uint64
	StepBudget int

	Host   HostConfig
	Script []ScriptStep
}

// RunHeadless runs the watch without opening a window.
func RunHeadless(ctx context.Context, newApp func(HAL) func() error, cfg HeadlessConfig) error {
	if cfg.Hz <= 0 {
		cfg.Hz = 60
	}
	if cfg.StepBudget <= 0 {
		cfg.StepBudget = 1
	}

	h := newHostHAL(cfg.Host)
	step := newApp(h)
	defer func() {
		h.logger.WriteLineString(fmt.Sprintf("headless: %d frames presented", h.fb.presentCount()))
	}()

	d := time.Second / time.Duration(cfg.Hz)
	if d <= 0 {
		return fmt.Errorf("invalid headless hz: %d", cfg.Hz)
	}
	t := time.NewTicker(d)
	defer t.Stop()

	script := cfg.Script
	var tick uint64
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-t.C:
			script = applyScript(h, script, tick)
			h.t.step(1)
			if step != nil {
				for i := 0; i < cfg.StepBudget; i++ {
					if err := step(); err != nil {
						return err
					}
				}
			}
			tick++
			if cfg.Ticks > 0 && tick >= cfg.Ticks {
				return nil
			}
		}
	}
}

// applyScript applies every step due at tick and returns the remainder.
// Steps are expected in AtTick order.
func applyScript(h *hostHAL, script []ScriptStep, tick uint64) []ScriptStep {
	for len(script) > 0 && script[0].AtTick <= tick {
		s := script[0]
		script = script[1:]

		st := h.power.State()
		if s.Battery != nil || s.Charging != nil {
			pct, chg := st.ChargePercent, st.Charging
			if s.Battery != nil {
				pct = *s.Battery
			}
			if s.Charging != nil {
				chg = *s.Charging
			}
			h.power.set(pct, chg)
		}
		if s.Connected != nil {
			h.link.set(*s.Connected)
		}
		if s.Advance > 0 {
			h.t.advance(s.Advance)
		}
	}
	return script
}
