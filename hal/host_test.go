//go:build !tinygo

package hal

import (
	"context"
	"testing"
	"time"
)

func TestClampPercent(t *testing.T) {
	for in, want := range map[int]int{-5: 0, 0: 0, 57: 57, 100: 100, 140: 100} {
		if got := ClampPercent(in); got != want {
			t.Fatalf("ClampPercent(%d) = %d, want %d", in, got, want)
		}
	}
}

func TestNewHostHALDefaults(t *testing.T) {
	h := newHostHAL(HostConfig{Shape: ShapeRound, ChargePercent: 250})
	if w, ht := h.fb.Width(), h.fb.Height(); w != 180 || ht != 180 {
		t.Fatalf("round size = %dx%d, want 180x180", w, ht)
	}
	if got := h.Power().State().ChargePercent; got != 100 {
		t.Fatalf("charge = %d, want clamped 100", got)
	}
	if h.Display().Shape() != ShapeRound {
		t.Fatal("shape not round")
	}

	h = newHostHAL(DefaultHostConfig())
	if w, ht := h.fb.Width(), h.fb.Height(); w != 144 || ht != 168 {
		t.Fatalf("rect size = %dx%d, want 144x168", w, ht)
	}
}

func TestFormatPattern(t *testing.T) {
	got := formatPattern([]time.Duration{100 * time.Millisecond, 50 * time.Millisecond, time.Second})
	if want := "on=100ms off=50ms on=1s"; got != want {
		t.Fatalf("formatPattern = %q, want %q", got, want)
	}
}

func TestApplyScript(t *testing.T) {
	start := time.Date(2024, time.March, 4, 9, 5, 0, 0, time.UTC)
	h := newHostHAL(HostConfig{Start: start, ChargePercent: 90, Connected: true})

	low, charging, off := 12, true, false
	script := []ScriptStep{
		{AtTick: 0, Battery: &low},
		{AtTick: 3, Charging: &charging, Connected: &off, Advance: time.Hour},
		{AtTick: 9, Battery: &low},
	}

	script = applyScript(h, script, 0)
	if len(script) != 2 || h.Power().State().ChargePercent != 12 {
		t.Fatalf("after tick 0: %d steps left, charge %d", len(script), h.Power().State().ChargePercent)
	}

	before := h.Time().Now()
	script = applyScript(h, script, 5)
	if len(script) != 1 {
		t.Fatalf("after tick 5: %d steps left, want 1", len(script))
	}
	st := h.Power().State()
	if !st.Charging || !st.Plugged || st.ChargePercent != 12 {
		t.Fatalf("power = %+v, want charging at 12%%", st)
	}
	if h.Link().Connected() {
		t.Fatal("link still connected")
	}
	if d := h.Time().Now().Sub(before); d < time.Hour || d > time.Hour+time.Minute {
		t.Fatalf("clock advanced by %v, want about 1h", d)
	}
}

func TestRunHeadlessStopsAfterTicks(t *testing.T) {
	steps := 0
	newApp := func(h HAL) func() error {
		return func() error {
			steps++
			return h.Display().Framebuffer().Present()
		}
	}
	cfg := HeadlessConfig{Enabled: true, Hz: 1000, Ticks: 5, StepBudget: 2}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := RunHeadless(ctx, newApp, cfg); err != nil {
		t.Fatalf("RunHeadless: %v", err)
	}
	if steps != 10 {
		t.Fatalf("steps = %d, want 10", steps)
	}
}

func TestRunHeadlessCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := RunHeadless(ctx, func(HAL) func() error { return nil }, HeadlessConfig{Hz: 10})
	if err != context.Canceled {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
}
