//go:build tinygo && baremetal

package hal

import (
	"machine"
	"sync/atomic"
	"time"

	"tinygo.org/x/bluetooth"
	"tinygo.org/x/drivers/st7789"
)

// nRF52 wrist board wiring.
const (
	pinLCDSCK       = machine.Pin(2)
	pinLCDSDO       = machine.Pin(3)
	pinLCDCS        = machine.Pin(25)
	pinLCDDC        = machine.Pin(18)
	pinLCDReset     = machine.Pin(26)
	pinLCDBacklight = machine.Pin(23)
	pinVibrator     = machine.Pin(16)
	pinChargeInd    = machine.Pin(12)
	pinPowerPresent = machine.Pin(19)
	pinBatteryADC   = machine.Pin(31)

	panelSize = 240
	faceW     = 144
	faceH     = 168
)

type tinyGoHAL struct {
	logger  printLogger
	fb      *ramFramebuffer
	t       *tinyGoTime
	power   *adcPower
	link    *bleLink
	haptics *motorHaptics
}

// New returns the wrist board HAL implementation.
//
// The face is drawn into a 144x168 RAM framebuffer centred on the 240x240 ST7789 panel.
func New() HAL {
	logger := printLogger{}

	machine.SPI0.Configure(machine.SPIConfig{
		Frequency: 8_000_000,
		SCK:       pinLCDSCK,
		SDO:       pinLCDSDO,
		Mode:      3,
	})
	lcd := st7789.New(machine.SPI0, pinLCDReset, pinLCDDC, pinLCDCS, pinLCDBacklight)
	lcd.Configure(st7789.Config{
		Width:    panelSize,
		Height:   panelSize,
		Rotation: st7789.NO_ROTATION,
	})

	fb := newRAMFramebuffer(faceW, faceH)
	p := &panel{lcd: &lcd, row: make([]byte, faceW*2)}
	fb.present = p.blit

	return &tinyGoHAL{
		logger:  logger,
		fb:      fb,
		t:       newTinyGoTime(true),
		power:   newADCPower(),
		link:    newBLELink(logger),
		haptics: newMotorHaptics(),
	}
}

func (h *tinyGoHAL) Logger() Logger { return h.logger }
func (h *tinyGoHAL) Display() Display {
	return tinyGoDisplay{fb: h.fb, shape: ShapeRect, color: true}
}
func (h *tinyGoHAL) Time() Time       { return h.t }
func (h *tinyGoHAL) Power() Power     { return h.power }
func (h *tinyGoHAL) Link() Link       { return h.link }
func (h *tinyGoHAL) Haptics() Haptics { return h.haptics }

type panel struct {
	lcd *st7789.Device
	row []byte
}

func (p *panel) blit(buf []byte, w, h int) error {
	x0 := int16((panelSize - w) / 2)
	y0 := int16((panelSize - h) / 2)
	stride := w * 2
	for y := 0; y < h; y++ {
		src := buf[y*stride : y*stride+stride]
		for i := 0; i+1 < len(src); i += 2 {
			// The OS stores RGB565 in little-endian. The LCD expects big-endian.
			p.row[i] = src[i+1]
			p.row[i+1] = src[i]
		}
		if err := p.lcd.DrawRGBBitmap8(x0, y0+int16(y), p.row[:stride], int16(w), 1); err != nil {
			return err
		}
	}
	return nil
}

// adcPower samples battery voltage through a 1:2 divider.
type adcPower struct {
	adc machine.ADC
}

func newADCPower() *adcPower {
	machine.InitADC()
	adc := machine.ADC{Pin: pinBatteryADC}
	adc.Configure(machine.ADCConfig{})
	pinChargeInd.Configure(machine.PinConfig{Mode: machine.PinInput})
	pinPowerPresent.Configure(machine.PinConfig{Mode: machine.PinInput})
	return &adcPower{adc: adc}
}

func (p *adcPower) State() PowerState {
	raw := uint32(p.adc.Get())
	mv := int(raw * 3300 * 2 / 65535)
	// Linear 3.5V..4.2V; good enough for a face label.
	pct := ClampPercent((mv - 3500) * 100 / 700)
	return PowerState{
		ChargePercent: pct,
		Charging:      !pinChargeInd.Get(),
		Plugged:       !pinPowerPresent.Get(),
	}
}

type bleLink struct {
	connected atomic.Bool
}

func newBLELink(logger Logger) *bleLink {
	l := &bleLink{}
	adapter := bluetooth.DefaultAdapter
	if err := adapter.Enable(); err != nil {
		logger.WriteLineString("ble: enable: " + err.Error())
		return l
	}
	adapter.SetConnectHandler(func(device bluetooth.Device, connected bool) {
		l.connected.Store(connected)
	})
	adv := adapter.DefaultAdvertisement()
	if err := adv.Configure(bluetooth.AdvertisementOptions{LocalName: "Brass"}); err != nil {
		logger.WriteLineString("ble: advertise: " + err.Error())
		return l
	}
	if err := adv.Start(); err != nil {
		logger.WriteLineString("ble: advertise: " + err.Error())
	}
	return l
}

func (l *bleLink) Connected() bool { return l.connected.Load() }

// motorHaptics drives the active-low vibration motor.
type motorHaptics struct {
	busy atomic.Bool
}

func newMotorHaptics() *motorHaptics {
	pinVibrator.Configure(machine.PinConfig{Mode: machine.PinOutput})
	pinVibrator.High()
	return &motorHaptics{}
}

func (m *motorHaptics) Pulse(pattern []time.Duration) {
	if !m.busy.CompareAndSwap(false, true) {
		return
	}
	pat := append([]time.Duration(nil), pattern...)
	go func() {
		defer m.busy.Store(false)
		for i, d := range pat {
			if i%2 == 0 {
				pinVibrator.Low()
			} else {
				pinVibrator.High()
			}
			time.Sleep(d)
		}
		pinVibrator.High()
	}()
}
