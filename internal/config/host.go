//go:build !tinygo

package config

import (
	"brass/app"
	"brass/hal"
	"brass/watchos/kernel"
)

// HostConfig converts the config into the simulated watch settings.
// Call Validate first.
func (c *Config) HostConfig() hal.HostConfig {
	h := hal.DefaultHostConfig()
	h.Shape = hal.ShapeRect
	if c.Display.Shape == "round" {
		h.Shape = hal.ShapeRound
	}
	h.Width, h.Height = c.Display.Width, c.Display.Height
	h.Color = c.Display.Color
	h.Use24h = c.Clock.Use24h
	h.Start, _ = c.StartTime()
	h.ChargePercent = c.Battery.Percent
	h.Charging = c.Battery.Charging
	h.Connected = c.Link.Connected
	return h
}

// WindowConfig returns the desktop window settings.
func (c *Config) WindowConfig() hal.WindowConfig {
	return hal.WindowConfig{Host: c.HostConfig(), Scale: c.Display.Scale}
}

// HeadlessConfig returns the no-window runner settings, script included.
func (c *Config) HeadlessConfig() hal.HeadlessConfig {
	hc := hal.HeadlessConfig{
		Enabled: true,
		Hz:      c.Headless.Hz,
		Ticks:   c.Headless.Ticks,
		Host:    c.HostConfig(),
	}
	for _, s := range c.Script {
		d, _ := s.AdvanceDuration()
		hc.Script = append(hc.Script, hal.ScriptStep{
			AtTick:    s.AtTick,
			Battery:   s.Battery,
			Charging:  s.Charging,
			Connected: s.Connected,
			Advance:   d,
		})
	}
	return hc
}

// AppConfig returns the kernel settings for the watch.
func (c *Config) AppConfig() app.Config {
	return app.Config{Kernel: kernel.Config{
		Debug:            c.Log.Debug,
		BatteryPollTicks: c.Kernel.BatteryPoll,
		LinkPollTicks:    c.Kernel.LinkPoll,
	}}
}
