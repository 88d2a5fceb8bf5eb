//go:build !tinygo

package main

import (
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"brass/internal/config"
)

func TestRunWritesPNG(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Display.Shape = "round"
	cfg.Clock.Start = "2024-03-04T09:05:00Z"
	out := filepath.Join(t.TempDir(), "face.png")

	if err := run(cfg, out); err != nil {
		t.Fatalf("run: %v", err)
	}

	f, err := os.Open(out)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 180 || b.Dy() != 180 {
		t.Fatalf("image size = %dx%d, want 180x180", b.Dx(), b.Dy())
	}
	r, g, b, _ := img.At(179, 179).RGBA()
	if r>>8 < 0xA0 || g>>8 < 0xA0 || b>>8 > 0x60 {
		t.Fatalf("corner colour = %02x%02x%02x, want brass", r>>8, g>>8, b>>8)
	}
}
