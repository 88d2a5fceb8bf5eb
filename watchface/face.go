// Package watchface shows the time, date, battery charge and phone link state.
package watchface

import (
	"errors"
	"fmt"
	"time"

	"brass/hal"
	"brass/watchos/graphics"
	"brass/watchos/kernel"
	"brass/watchos/resources"
	"brass/watchos/ui"

	"tinygo.org/x/tinyfont"
)

var ErrLifecycle = errors.New("watchface: invalid lifecycle transition")

// Services are the watch OS calls made by the face.
type Services interface {
	Clock
	PeekBattery() hal.PowerState
	PeekConnection() bool
	Vibes() kernel.Vibes
	Log() kernel.Log
}

// Options select the panel variant and the packaged resources.
type Options struct {
	Shape hal.Shape
	Color bool

	TimeFont resources.ID
	TextFont resources.ID
	BTIcon   resources.ID
}

// DefaultOptions matches the panel of d.
func DefaultOptions(d hal.Display) Options {
	o := Options{
		Color:    true,
		TimeFont: resources.FontTime,
		TextFont: resources.FontText,
		BTIcon:   resources.BitmapBTDisconnected,
	}
	if d != nil {
		o.Shape = d.Shape()
		o.Color = d.Color()
	}
	return o
}

type lifecycle uint8

const (
	faceNew lifecycle = iota
	faceLoaded
	faceUnloaded
)

type release struct {
	name string
	fn   func() error
}

// Face is the watch face context. It owns every layer, font and bitmap
// between Load and Unload.
type Face struct {
	svc  Services
	opts Options
	log  kernel.Log

	state   lifecycle
	palette Palette
	layout  Layout

	window       *ui.Window
	canvas       *ui.Layer
	timeText     *ui.TextLayer
	dateText     *ui.TextLayer
	timeFont     tinyfont.Fonter
	textFont     tinyfont.Fonter
	btBitmap     *graphics.Bitmap
	batteryLayer *ui.Layer
	btLayer      *ui.BitmapLayer

	battery BatteryState
	bt      BluetoothIndicator

	timeBuf  [8]byte
	dateBuf  [len(dateLayout)]byte
	labelBuf [8]byte

	releases []release
	loadErr  error
}

func New(svc Services, opts Options) *Face {
	return &Face{svc: svc, opts: opts, log: svc.Log(), palette: PaletteFor(opts.Color)}
}

func (f *Face) Loaded() bool { return f.state == faceLoaded }

// Window returns the window passed to Load, or nil.
func (f *Face) Window() *ui.Window { return f.window }

func (f *Face) Layout() Layout { return f.layout }

// Battery returns the last battery state handled.
func (f *Face) Battery() BatteryState { return f.battery }

func (f *Face) TimeText() string {
	if f.timeText == nil {
		return ""
	}
	return f.timeText.Text()
}

func (f *Face) DateText() string {
	if f.dateText == nil {
		return ""
	}
	return f.dateText.Text()
}

// BTIconVisible reports whether the disconnected icon is shown.
func (f *Face) BTIconVisible() bool {
	return f.btLayer != nil && !f.btLayer.Layer().Hidden()
}

func (f *Face) acquired(name string, fn func() error) {
	f.releases = append(f.releases, release{name: name, fn: fn})
}

// releaseAll runs the release stack last in, first out.
func (f *Face) releaseAll() error {
	var errs []error
	for i := len(f.releases) - 1; i >= 0; i-- {
		r := f.releases[i]
		f.log.Debugf("watchface: release %s", r.name)
		if err := r.fn(); err != nil {
			f.log.Warnf("watchface: release %s: %v", r.name, err)
			errs = append(errs, fmt.Errorf("%s: %w", r.name, err))
		}
	}
	f.releases = nil
	return errors.Join(errs...)
}

// Load builds the face on w and primes every indicator from the current state.
// On error everything acquired so far, w included, is released.
func (f *Face) Load(w *ui.Window) error {
	if f.state == faceLoaded {
		return ErrLifecycle
	}
	if err := f.load(w); err != nil {
		_ = f.releaseAll()
		f.clearHandles()
		return err
	}
	f.state = faceLoaded

	f.setBattery(f.svc.PeekBattery())
	f.setConnected(f.svc.PeekConnection())
	f.updateTime()
	f.updateDate()
	return nil
}

func (f *Face) load(w *ui.Window) error {
	f.window = w
	f.acquired("window", w.Destroy)
	root := w.RootLayer()
	bounds := root.Bounds()

	f.canvas = ui.NewLayer(bounds)
	f.acquired("canvas layer", f.canvas.Destroy)
	f.canvas.SetUpdateProc(f.drawCanvas)
	root.AddChild(f.canvas)
	f.canvas.MarkDirty()

	f.layout = NewLayout(f.opts.Shape, bounds, root.UnobstructedBounds())

	f.timeText = ui.NewTextLayer(f.layout.Time)
	f.acquired("time layer", f.timeText.Destroy)
	f.dateText = ui.NewTextLayer(f.layout.Date)
	f.acquired("date layer", f.dateText.Destroy)

	var err error
	if f.timeFont, err = resources.LoadFont(f.opts.TimeFont); err != nil {
		return fmt.Errorf("load time font: %w", err)
	}
	f.acquired("time font", func() error { f.timeFont = nil; return nil })
	if f.textFont, err = resources.LoadFont(f.opts.TextFont); err != nil {
		return fmt.Errorf("load text font: %w", err)
	}
	f.acquired("text font", func() error { f.textFont = nil; return nil })

	for _, t := range []struct {
		layer *ui.TextLayer
		font  tinyfont.Fonter
	}{{f.timeText, f.timeFont}, {f.dateText, f.textFont}} {
		t.layer.SetBackgroundColor(f.palette.Background)
		t.layer.SetTextColor(f.palette.Text)
		t.layer.SetFont(t.font)
		t.layer.SetAlignment(graphics.AlignCenter)
	}

	if f.btBitmap, err = resources.LoadBitmap(f.opts.BTIcon); err != nil {
		return fmt.Errorf("load bluetooth icon: %w", err)
	}
	f.acquired("bluetooth bitmap", func() error { f.btBitmap = nil; return nil })

	f.batteryLayer = ui.NewLayer(f.layout.Battery)
	f.acquired("battery layer", f.batteryLayer.Destroy)
	f.batteryLayer.SetUpdateProc(f.drawBattery)

	f.btLayer = ui.NewBitmapLayer(f.layout.BTIcon)
	f.acquired("bluetooth layer", f.btLayer.Destroy)
	f.btLayer.SetBitmap(f.btBitmap)
	f.btLayer.SetColors(f.palette.Text, graphics.ColorClear)

	root.AddChild(f.timeText.Layer())
	root.AddChild(f.dateText.Layer())
	root.AddChild(f.btLayer.Layer())
	root.AddChild(f.batteryLayer)
	return nil
}

// Unload releases everything acquired by Load in reverse order, the window last.
func (f *Face) Unload() error {
	if f.state != faceLoaded {
		return ErrLifecycle
	}
	f.state = faceUnloaded
	err := f.releaseAll()
	f.clearHandles()
	return err
}

func (f *Face) clearHandles() {
	f.window = nil
	f.canvas = nil
	f.timeText = nil
	f.dateText = nil
	f.batteryLayer = nil
	f.btLayer = nil
	f.bt.reset()
}

// Handle applies one event. Events outside the loaded state are ignored.
func (f *Face) Handle(ev Event) {
	if f.state != faceLoaded {
		f.log.Debugf("watchface: %T ignored while not loaded", ev)
		return
	}
	switch ev := ev.(type) {
	case TickEvent:
		if ev.Units&kernel.MinuteUnit != 0 {
			f.updateTime()
		}
		if ev.Units&kernel.DayUnit != 0 {
			f.updateDate()
		}
	case BatteryEvent:
		f.setBattery(ev.State)
	case ConnectionEvent:
		f.setConnected(ev.Connected)
	case RedrawEvent:
		f.setBattery(f.svc.PeekBattery())
	}
}

func (f *Face) updateTime() {
	b := appendTime(f.timeBuf[:0], f.svc.Now(), f.svc.Is24h())
	f.timeText.SetText(string(b))
}

func (f *Face) updateDate() {
	b := appendDate(f.dateBuf[:0], f.svc.Now())
	f.dateText.SetText(string(b))
}

func (f *Face) setBattery(st BatteryState) {
	f.battery = st
	f.batteryLayer.MarkDirty()
}

func (f *Face) setConnected(connected bool) {
	hidden, pulse := f.bt.Apply(connected)
	f.btLayer.Layer().SetHidden(hidden)
	if pulse {
		f.log.Infof("watchface: phone disconnected")
		f.svc.Vibes().DoublePulse()
	}
}

func (f *Face) drawCanvas(_ *ui.Layer, ctx *graphics.Context) {
	ctx.SetStrokeColor(f.palette.Background)
	ctx.SetFillColor(f.palette.Background)
	ctx.FillRect(f.layout.Unobstructed)
	f.Handle(RedrawEvent{})
}

func (f *Face) drawBattery(_ *ui.Layer, ctx *graphics.Context) {
	label := appendBatteryLabel(f.labelBuf[:0], f.battery)
	f.log.Debugf("%s", label)
	ctx.SetTextColor(f.palette.Text)
	ctx.DrawText(string(label), f.textFont, f.layout.BatteryLabel, graphics.AlignLeft)
}

// Install creates the face window, subscribes to the watch OS services and
// pushes the window.
func (f *Face) Install(k *kernel.Kernel) error {
	w, h := 144, 168
	if d := k.Display(); d != nil && d.Framebuffer() != nil {
		w, h = d.Framebuffer().Width(), d.Framebuffer().Height()
	}
	win := ui.NewWindow(w, h)
	win.SetBackgroundColor(f.palette.Background)
	win.SetHandlers(ui.WindowHandlers{
		Load: func(w *ui.Window) { f.loadErr = f.Load(w) },
		Unload: func(*ui.Window) {
			if !f.Loaded() {
				return
			}
			if err := f.Unload(); err != nil {
				f.log.Warnf("watchface: unload: %v", err)
			}
		},
	})

	onTick := func(now time.Time, units kernel.TimeUnits) { f.Handle(TickEvent{Time: now, Units: units}) }
	k.SubscribeTicks(kernel.MinuteUnit, onTick)
	k.SubscribeTicks(kernel.DayUnit, onTick)
	k.SubscribeBattery(func(st hal.PowerState) { f.Handle(BatteryEvent{State: st}) })
	k.SubscribeConnection(func(c bool) { f.Handle(ConnectionEvent{Connected: c}) })

	f.loadErr = nil
	if err := k.PushWindow(win); err != nil {
		return err
	}
	if err := f.loadErr; err != nil {
		_, _ = k.PopWindow()
		return err
	}
	if !f.Loaded() {
		return fmt.Errorf("watchface: window did not load: %w", ErrLifecycle)
	}
	f.updateTime()
	f.updateDate()
	return nil
}

// Uninstall drops the subscriptions and pops the face window.
func (f *Face) Uninstall(k *kernel.Kernel) error {
	k.UnsubscribeTicks()
	k.UnsubscribeBattery()
	k.UnsubscribeConnection()
	if !f.Loaded() {
		return nil
	}
	_, err := k.PopWindow()
	return err
}
