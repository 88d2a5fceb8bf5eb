package app

import (
	"testing"

	"brass/hal"
	"brass/hal/haltest"
	"brass/watchface"
	"brass/watchos/kernel"
	"brass/watchos/resources"
)

func TestNewRendersFace(t *testing.T) {
	h := haltest.New()
	step := New(h)
	if err := step(); err != nil {
		t.Fatalf("step: %v", err)
	}
	if h.FB.Presents != 1 {
		t.Fatalf("presents = %d, want 1", h.FB.Presents)
	}
	if got, want := h.FB.Pixel(0, h.FB.H-1), hal.RGB565(0xAA, 0xAA, 0x55); got != want {
		t.Fatalf("background = %#04x, want %#04x", got, want)
	}
	if !h.Log.Contains("info: brass dev: rect display") {
		t.Fatalf("startup line missing: %v", h.Log.Lines)
	}
}

func TestLoadFailureShowsFaultScreen(t *testing.T) {
	h := haltest.New()
	opts := watchface.DefaultOptions(h.Display())
	opts.TextFont = resources.ID(404)

	step := NewWithConfig(h, Config{Kernel: kernel.DefaultConfig(), Face: &opts})
	if !h.Log.Contains("Brass fault: panic: load text font: font 404: unknown resource") {
		t.Fatalf("fault not logged: %v", h.Log.Lines)
	}
	if h.FB.Presents != 1 {
		t.Fatalf("fault screen presents = %d, want 1", h.FB.Presents)
	}
	white := hal.RGB565(0xFF, 0xFF, 0xFF)
	black := hal.RGB565(0, 0, 0)
	if h.FB.Pixel(h.FB.W-1, h.FB.H-1) != white {
		t.Fatal("fault screen background not white")
	}
	if h.FB.Count(0, 0, h.FB.W, 16, black) == 0 {
		t.Fatal("fault screen has no text")
	}

	if err := step(); err != nil {
		t.Fatalf("step after fault: %v", err)
	}
	if h.FB.Presents != 1 {
		t.Fatal("kernel rendered after a fault")
	}
}

func TestTakeRunes(t *testing.T) {
	tests := []struct {
		s          string
		n          int
		head, tail string
	}{
		{"abcdef", 4, "abcd", "ef"},
		{"abc", 4, "abc", ""},
		{"héllo", 2, "hé", "llo"},
		{"x", 0, "", "x"},
	}
	for _, tt := range tests {
		head, tail := takeRunes(tt.s, tt.n)
		if head != tt.head || tail != tt.tail {
			t.Fatalf("takeRunes(%q, %d) = %q, %q; want %q, %q", tt.s, tt.n, head, tail, tt.head, tt.tail)
		}
	}
}
