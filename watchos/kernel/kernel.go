// Package kernel is the single-threaded event loop of the watch OS.
//
// Step drains the HAL into a fixed-size mailbox, runs every queued event to
// completion and then redraws the top window. Nothing here is safe for use from
// more than one goroutine.
package kernel

import (
	"errors"
	"time"

	"brass/hal"
	"brass/watchos/ui"
)

var ErrReentrant = errors.New("kernel: Step called from a handler")

// TickHandler receives the wall clock and the units that changed since the last tick.
type TickHandler func(now time.Time, changed TimeUnits)

type BatteryHandler func(st hal.PowerState)

type ConnectionHandler func(connected bool)

// Config holds the kernel tunables. Poll intervals are in HAL ticks; zero polls every Step.
type Config struct {
	Debug bool

	BatteryPollTicks uint64
	LinkPollTicks    uint64
}

// DefaultConfig polls the battery once a second and the link four times a second.
func DefaultConfig() Config {
	return Config{BatteryPollTicks: 1000, LinkPollTicks: 250}
}

// Kernel dispatches HAL events to the subscribed handlers.
type Kernel struct {
	h   hal.HAL
	cfg Config
	log Log

	mb      mailbox
	windows ui.WindowStack
	comp    *ui.Compositor

	seq        uint64
	batterySeq uint64
	linkSeq    uint64
	polled     bool

	lastTime time.Time
	battery  hal.PowerState
	linked   bool

	tickUnits   TimeUnits
	onTick      TickHandler
	onBattery   BatteryHandler
	onConnected ConnectionHandler

	dispatching bool
	panicked    bool
	onPanic     func(PanicInfo)
}

// New creates a kernel on h and samples the initial clock, battery and link state.
func New(h hal.HAL, cfg Config) *Kernel {
	k := &Kernel{h: h, cfg: cfg, log: NewLog(h.Logger(), cfg.Debug)}
	if d := h.Display(); d != nil {
		if fb := d.Framebuffer(); fb != nil {
			k.comp = ui.NewCompositor(fb)
		}
	}
	k.lastTime = k.Now()
	k.battery = k.PeekBattery()
	k.linked = k.PeekConnection()
	return k
}

func (k *Kernel) Log() Log { return k.log }

func (k *Kernel) Windows() *ui.WindowStack { return &k.windows }

// Display returns the HAL display, or nil on a headless board.
func (k *Kernel) Display() hal.Display { return k.h.Display() }

func (k *Kernel) Vibes() Vibes { return Vibes{h: k.h.Haptics(), log: k.log} }

// Now returns the wall clock.
func (k *Kernel) Now() time.Time {
	if t := k.h.Time(); t != nil {
		return t.Now()
	}
	return time.Now()
}

// Is24h reports the user's clock style.
func (k *Kernel) Is24h() bool {
	if t := k.h.Time(); t != nil {
		return t.Is24Hour()
	}
	return true
}

// Frames returns how many frames the compositor presented.
func (k *Kernel) Frames() uint64 {
	if k.comp == nil {
		return 0
	}
	return k.comp.Frames()
}

// Dropped returns how many events were lost to a full mailbox.
func (k *Kernel) Dropped() uint32 { return k.mb.dropped }

// SubscribeTicks adds units to the tick subscription and replaces the handler.
func (k *Kernel) SubscribeTicks(units TimeUnits, fn TickHandler) {
	k.tickUnits |= units
	k.onTick = fn
}

func (k *Kernel) UnsubscribeTicks() {
	k.tickUnits = 0
	k.onTick = nil
}

func (k *Kernel) SubscribeBattery(fn BatteryHandler) { k.onBattery = fn }
func (k *Kernel) UnsubscribeBattery()                { k.onBattery = nil }

func (k *Kernel) SubscribeConnection(fn ConnectionHandler) { k.onConnected = fn }
func (k *Kernel) UnsubscribeConnection()                   { k.onConnected = nil }

// PeekBattery reads the battery now.
func (k *Kernel) PeekBattery() hal.PowerState {
	p := k.h.Power()
	if p == nil {
		return hal.PowerState{ChargePercent: 100}
	}
	st := p.State()
	st.ChargePercent = hal.ClampPercent(st.ChargePercent)
	return st
}

// PeekConnection reads the phone link now.
func (k *Kernel) PeekConnection() bool {
	l := k.h.Link()
	if l == nil {
		return false
	}
	return l.Connected()
}

// Post queues ev for the next dispatch. It reports false if the mailbox is full.
func (k *Kernel) Post(ev Event) bool {
	ok := k.mb.push(ev)
	if !ok {
		k.log.Debugf("kernel: mailbox full, dropped %s event", ev.Kind)
	}
	return ok
}

// PushWindow loads w as the top window. A panic in its load handler stops the kernel.
func (k *Kernel) PushWindow(w *ui.Window) (err error) {
	defer k.recoverPanic(0)
	return k.windows.Push(w)
}

// PopWindow unloads the top window.
func (k *Kernel) PopWindow() (w *ui.Window, err error) {
	defer k.recoverPanic(0)
	return k.windows.Pop()
}

// Step polls the HAL, dispatches every queued event and renders.
func (k *Kernel) Step() error {
	if k.panicked {
		return nil
	}
	if k.dispatching {
		return ErrReentrant
	}
	k.dispatching = true
	defer func() { k.dispatching = false }()

	k.poll()
	for !k.panicked {
		ev, ok := k.mb.pop()
		if !ok {
			break
		}
		k.dispatch(ev)
	}
	if k.panicked {
		return nil
	}
	return k.render()
}

func (k *Kernel) poll() {
	if t := k.h.Time(); t != nil {
		k.drainTicks(t.Ticks())
	}

	now := k.Now()
	if changed := unitsChanged(k.lastTime, now); changed != 0 {
		k.lastTime = now
		if k.onTick != nil && changed&k.tickUnits != 0 {
			k.Post(Event{Kind: EventTick, Time: now, Units: changed})
		}
	}

	first := !k.polled
	k.polled = true
	if first || k.seq-k.batterySeq >= k.cfg.BatteryPollTicks {
		k.batterySeq = k.seq
		if st := k.PeekBattery(); st != k.battery {
			k.battery = st
			if k.onBattery != nil {
				k.Post(Event{Kind: EventBattery, Power: st})
			}
		}
	}
	if first || k.seq-k.linkSeq >= k.cfg.LinkPollTicks {
		k.linkSeq = k.seq
		if c := k.PeekConnection(); c != k.linked {
			k.linked = c
			if k.onConnected != nil {
				k.Post(Event{Kind: EventConnection, Connected: c})
			}
		}
	}
}

func (k *Kernel) drainTicks(ch <-chan uint64) {
	for {
		select {
		case seq, ok := <-ch:
			if !ok {
				return
			}
			k.seq = seq
		default:
			return
		}
	}
}

func (k *Kernel) dispatch(ev Event) {
	defer k.recoverPanic(ev.Kind)

	switch ev.Kind {
	case EventTick:
		if k.onTick != nil {
			k.onTick(ev.Time, ev.Units)
		}
	case EventBattery:
		if k.onBattery != nil {
			k.onBattery(ev.Power)
		}
	case EventConnection:
		if k.onConnected != nil {
			k.onConnected(ev.Connected)
		}
	}
}

func (k *Kernel) render() (err error) {
	if k.comp == nil {
		return nil
	}
	defer k.recoverPanic(0)
	_, err = k.comp.Render(&k.windows)
	return err
}
