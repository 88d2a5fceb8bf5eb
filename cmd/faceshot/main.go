//go:build !tinygo

// Command faceshot renders one frame of the watch face to a PNG file.
package main

import (
	"flag"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"time"

	"brass/app"
	"brass/hal"
	"brass/internal/config"
)

const defaultOutPath = "face.png"

func main() {
	var configPath string
	var outPath string
	var at string
	var battery int
	var disconnected bool
	flag.StringVar(&configPath, "config", "", "Config file (YAML, or TOML by extension).")
	flag.StringVar(&outPath, "out", defaultOutPath, "Output PNG path.")
	flag.StringVar(&at, "at", "", "Wall clock time, RFC 3339 (default: config clock.start or now).")
	flag.IntVar(&battery, "battery", -1, "Battery percent (default: config).")
	flag.BoolVar(&disconnected, "disconnected", false, "Show the phone as disconnected.")
	flag.Parse()

	if outPath == "" {
		fmt.Fprintln(os.Stderr, "error: -out is required")
		os.Exit(2)
	}

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
	if at != "" {
		cfg.Clock.Start = at
	}
	if battery >= 0 {
		cfg.Battery.Percent = battery
	}
	if disconnected {
		cfg.Link.Connected = false
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(2)
	}

	if err := run(cfg, outPath); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, outPath string) error {
	img, err := snapshot(cfg)
	if err != nil {
		return err
	}

	f, err := os.OpenFile(outPath, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("open %q: %w", outPath, err)
	}
	if err := png.Encode(f, img); err != nil {
		_ = f.Close()
		return fmt.Errorf("encode %q: %w", outPath, err)
	}
	return f.Close()
}

// snapshot boots the watch on a host HAL and converts the first frame.
func snapshot(cfg *config.Config) (*image.RGBA, error) {
	hc := cfg.HostConfig()
	if hc.Start.IsZero() {
		hc.Start = time.Now()
	}
	h := hal.NewHost(hc)
	step := app.NewWithConfig(h, cfg.AppConfig())
	if err := step(); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}

	fb := h.Display().Framebuffer()
	if fb.Format() != hal.PixelFormatRGB565 {
		return nil, fmt.Errorf("framebuffer format %d: %w", fb.Format(), hal.ErrNotImplemented)
	}
	w, ht := fb.Width(), fb.Height()
	img := image.NewRGBA(image.Rect(0, 0, w, ht))
	buf := fb.Buffer()
	for y := 0; y < ht; y++ {
		row := buf[y*fb.StrideBytes():]
		for x := 0; x < w; x++ {
			p := uint16(row[x*2]) | uint16(row[x*2+1])<<8
			r, g, b := hal.RGB888From565(p)
			img.SetRGBA(x, y, color.RGBA{R: r, G: g, B: b, A: 0xFF})
		}
	}
	return img, nil
}
