package kernel

import (
	"errors"
	"strings"
	"testing"
	"time"

	"brass/hal"
	"brass/hal/haltest"
	"brass/watchos/graphics"
	"brass/watchos/ui"
)

func TestUnitsChanged(t *testing.T) {
	base := time.Date(2024, time.March, 4, 9, 5, 30, 0, time.UTC)
	tests := []struct {
		name string
		now  time.Time
		want TimeUnits
	}{
		{"same minute", base.Add(20 * time.Second), 0},
		{"minute", base.Add(time.Minute), MinuteUnit},
		{"hour", time.Date(2024, time.March, 4, 10, 5, 0, 0, time.UTC), MinuteUnit | HourUnit},
		{"day", time.Date(2024, time.March, 5, 9, 5, 0, 0, time.UTC), MinuteUnit | HourUnit | DayUnit},
		{"year", time.Date(2025, time.March, 4, 9, 5, 0, 0, time.UTC), MinuteUnit | HourUnit | DayUnit | MonthUnit | YearUnit},
	}
	for _, tt := range tests {
		if got := unitsChanged(base, tt.now); got != tt.want {
			t.Fatalf("%s: unitsChanged = %05b, want %05b", tt.name, got, tt.want)
		}
	}
}

func TestMailboxDropsWhenFull(t *testing.T) {
	var mb mailbox
	for i := 0; i < mailboxSlots; i++ {
		if !mb.push(Event{Kind: EventTick}) {
			t.Fatalf("push failed at slot %d", i)
		}
	}
	if mb.push(Event{Kind: EventBattery}) {
		t.Fatal("push succeeded on a full mailbox")
	}
	if mb.dropped != 1 {
		t.Fatalf("dropped = %d, want 1", mb.dropped)
	}
	for i := 0; i < mailboxSlots; i++ {
		if ev, ok := mb.pop(); !ok || ev.Kind != EventTick {
			t.Fatalf("pop %d = %v, %v", i, ev.Kind, ok)
		}
	}
	if _, ok := mb.pop(); ok {
		t.Fatal("pop on empty mailbox succeeded")
	}
}

func TestMailboxWrapsAround(t *testing.T) {
	var mb mailbox
	for i := 0; i < 300; i++ {
		mb.push(Event{Units: TimeUnits(i)})
		ev, ok := mb.pop()
		if !ok || ev.Units != TimeUnits(i) {
			t.Fatalf("round %d: got %v, %v", i, ev.Units, ok)
		}
	}
	if mb.len() != 0 {
		t.Fatalf("len = %d, want 0", mb.len())
	}
}

func TestTickDispatch(t *testing.T) {
	h := haltest.New()
	k := New(h, Config{})

	var got []TimeUnits
	k.SubscribeTicks(MinuteUnit, func(_ time.Time, u TimeUnits) { got = append(got, u) })
	k.SubscribeTicks(DayUnit, func(_ time.Time, u TimeUnits) { got = append(got, u) })

	mustStep(t, k)
	if len(got) != 0 {
		t.Fatalf("tick fired without a clock change: %v", got)
	}

	h.Clock = h.Clock.Add(time.Minute)
	mustStep(t, k)
	h.Clock = h.Clock.Add(24 * time.Hour)
	mustStep(t, k)
	mustStep(t, k)

	if len(got) != 2 {
		t.Fatalf("got %d ticks, want 2", len(got))
	}
	if got[0] != MinuteUnit {
		t.Fatalf("first tick units = %05b, want minute", got[0])
	}
	if got[1]&DayUnit == 0 || got[1]&MinuteUnit == 0 {
		t.Fatalf("second tick units = %05b, want day and minute", got[1])
	}
}

func TestTickNotDeliveredForUnsubscribedUnits(t *testing.T) {
	h := haltest.New()
	k := New(h, Config{})
	calls := 0
	k.SubscribeTicks(DayUnit, func(time.Time, TimeUnits) { calls++ })

	h.Clock = h.Clock.Add(time.Minute)
	mustStep(t, k)
	if calls != 0 {
		t.Fatalf("day subscriber called on a minute change")
	}
}

func TestBatteryAndConnectionEvents(t *testing.T) {
	h := haltest.New()
	k := New(h, Config{})

	var levels []int
	var links []bool
	k.SubscribeBattery(func(st hal.PowerState) { levels = append(levels, st.ChargePercent) })
	k.SubscribeConnection(func(c bool) { links = append(links, c) })

	mustStep(t, k)
	if len(levels) != 0 || len(links) != 0 {
		t.Fatalf("events without a change: %v %v", levels, links)
	}

	h.Battery.ChargePercent = 75
	h.Linked = false
	mustStep(t, k)
	mustStep(t, k)
	h.Battery.ChargePercent = 140
	h.Linked = true
	mustStep(t, k)

	if len(levels) != 2 || levels[0] != 75 || levels[1] != 100 {
		t.Fatalf("levels = %v, want [75 100]", levels)
	}
	if len(links) != 2 || links[0] || !links[1] {
		t.Fatalf("links = %v, want [false true]", links)
	}
}

func TestBatteryPollInterval(t *testing.T) {
	h := haltest.New()
	k := New(h, Config{BatteryPollTicks: 1000})
	calls := 0
	k.SubscribeBattery(func(hal.PowerState) { calls++ })

	mustStep(t, k)
	h.Battery.ChargePercent = 10
	h.TickCh <- 500
	mustStep(t, k)
	if calls != 0 {
		t.Fatal("battery polled before the interval elapsed")
	}
	h.TickCh <- 1000
	mustStep(t, k)
	if calls != 1 {
		t.Fatalf("calls = %d, want 1", calls)
	}
}

func TestStepRendersTopWindow(t *testing.T) {
	h := haltest.New()
	k := New(h, Config{})

	w := ui.NewWindow(h.FB.W, h.FB.H)
	w.SetBackgroundColor(graphics.ColorBrass)
	if err := k.PushWindow(w); err != nil {
		t.Fatalf("PushWindow: %v", err)
	}
	mustStep(t, k)
	mustStep(t, k)

	if k.Frames() != 1 || h.FB.Presents != 1 {
		t.Fatalf("frames = %d, presents = %d, want 1", k.Frames(), h.FB.Presents)
	}
	if got, want := h.FB.Pixel(10, 10), hal.RGB565(0xAA, 0xAA, 0x55); got != want {
		t.Fatalf("pixel = %#04x, want %#04x", got, want)
	}
}

func TestHandlerStateChangeDrawnInSameStep(t *testing.T) {
	h := haltest.New()
	k := New(h, Config{})

	w := ui.NewWindow(h.FB.W, h.FB.H)
	l := ui.NewLayer(graphics.R(0, 0, 10, 10))
	level := 0
	drawn := 0
	l.SetUpdateProc(func(*ui.Layer, *graphics.Context) { drawn = level })
	w.RootLayer().AddChild(l)
	_ = k.PushWindow(w)
	mustStep(t, k)

	k.SubscribeBattery(func(st hal.PowerState) {
		level = st.ChargePercent
		l.MarkDirty()
	})
	h.Battery.ChargePercent = 42
	mustStep(t, k)
	if drawn != 42 {
		t.Fatalf("layer drew level %d, want 42", drawn)
	}
}

func TestPanicInHandler(t *testing.T) {
	h := haltest.New()
	k := New(h, Config{})

	var infos []PanicInfo
	k.SetPanicHandler(func(p PanicInfo) { infos = append(infos, p) })
	k.SubscribeConnection(func(bool) { panic("boom") })

	h.Linked = false
	mustStep(t, k)
	if !k.InPanicMode() {
		t.Fatal("kernel not in panic mode")
	}
	if len(infos) != 1 || infos[0].Event != EventConnection || infos[0].Value != "boom" {
		t.Fatalf("panic infos = %+v", infos)
	}
	if len(infos[0].Stack) == 0 {
		t.Fatal("stack not captured")
	}

	h.Linked = true
	mustStep(t, k)
	k.Fault(errors.New("again"))
	if len(infos) != 1 {
		t.Fatalf("handler called %d times, want 1", len(infos))
	}
	if !h.Log.Contains("panic in connection handler: boom") {
		t.Fatalf("panic not logged: %v", h.Log.Lines)
	}
}

func TestStepNotReentrant(t *testing.T) {
	h := haltest.New()
	k := New(h, Config{})

	var err error
	k.SubscribeBattery(func(hal.PowerState) { err = k.Step() })
	h.Battery.ChargePercent = 1
	mustStep(t, k)
	if !errors.Is(err, ErrReentrant) {
		t.Fatalf("nested Step err = %v, want ErrReentrant", err)
	}
}

func TestVibes(t *testing.T) {
	h := haltest.New()
	k := New(h, Config{})
	k.Vibes().DoublePulse()
	k.Vibes().ShortPulse()

	if len(h.Vibe.Patterns) != 2 {
		t.Fatalf("patterns = %d, want 2", len(h.Vibe.Patterns))
	}
	if got := len(h.Vibe.Patterns[0]); got != 3 {
		t.Fatalf("double pulse has %d segments, want 3", got)
	}
	if got := h.Vibe.Patterns[1][0]; got != 150*time.Millisecond {
		t.Fatalf("short pulse = %v, want 150ms", got)
	}
}

func TestLogLevels(t *testing.T) {
	out := &haltest.Logger{}
	NewLog(out, false).Debugf("hidden %d", 1)
	NewLog(out, false).Infof("shown %d", 2)
	NewLog(out, true).Debugf("shown %d", 3)

	got := strings.Join(out.Lines, "\n")
	if strings.Contains(got, "hidden") {
		t.Fatalf("debug line written with debug off: %q", got)
	}
	if !out.Contains("info: shown 2") || !out.Contains("debug: shown 3") {
		t.Fatalf("lines = %q", got)
	}
	Log{}.Warnf("nowhere")
}

func mustStep(t *testing.T, k *Kernel) {
	t.Helper()
	if err := k.Step(); err != nil {
		t.Fatalf("Step: %v", err)
	}
}
