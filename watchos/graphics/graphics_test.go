package graphics

import (
	"testing"

	"brass/hal"
	"brass/hal/haltest"

	"tinygo.org/x/tinyfont/freesans"
)

func TestRectIntersect(t *testing.T) {
	got := R(0, 0, 10, 10).Intersect(R(5, 5, 10, 10))
	if got != R(5, 5, 5, 5) {
		t.Fatalf("Intersect = %+v, want %+v", got, R(5, 5, 5, 5))
	}
	if !R(0, 0, 4, 4).Intersect(R(10, 10, 2, 2)).Empty() {
		t.Fatal("disjoint rects should intersect to an empty rect")
	}
}

func TestFillRectClipsToLayer(t *testing.T) {
	fb := haltest.NewFramebuffer(20, 20)
	c := NewContext(fb)
	c.Bind(R(5, 5, 4, 4), R(0, 0, 20, 20))
	c.SetFillColor(ColorWhite)
	c.FillRect(R(-10, -10, 100, 100))

	white := hal.RGB565(0xFF, 0xFF, 0xFF)
	if n := fb.Count(0, 0, 20, 20, white); n != 16 {
		t.Fatalf("filled %d pixels, want 16", n)
	}
	if fb.Pixel(5, 5) != white || fb.Pixel(8, 8) != white {
		t.Fatal("expected layer corners filled")
	}
	if fb.Pixel(4, 4) == white || fb.Pixel(9, 9) == white {
		t.Fatal("fill leaked outside the layer frame")
	}
}

func TestFillRectClearColorIsNoop(t *testing.T) {
	fb := haltest.NewFramebuffer(4, 4)
	c := NewContext(fb)
	c.SetFillColor(ColorClear)
	c.FillRect(R(0, 0, 4, 4))
	if n := fb.Count(0, 0, 4, 4, 0); n != 16 {
		t.Fatalf("clear fill touched %d pixels", 16-n)
	}
}

func TestDrawTextStaysInBox(t *testing.T) {
	fb := haltest.NewFramebuffer(144, 60)
	c := NewContext(fb)
	c.SetTextColor(ColorWhite)
	box := R(10, 10, 100, 30)
	c.DrawText("12:34", &freesans.Bold12pt7b, box, AlignCenter)

	white := hal.RGB565(0xFF, 0xFF, 0xFF)
	inside := fb.Count(box.X, box.Y, box.W, box.H, white)
	if inside == 0 {
		t.Fatal("expected text pixels inside the box")
	}
	if all := fb.Count(0, 0, 144, 60, white); all != inside {
		t.Fatalf("text leaked outside the box: %d pixels", all-inside)
	}
}

func TestDrawTextAlignment(t *testing.T) {
	font := &freesans.Bold12pt7b
	white := hal.RGB565(0xFF, 0xFF, 0xFF)
	w := TextWidth(font, "57%")
	if w <= 0 {
		t.Fatalf("TextWidth = %d, want > 0", w)
	}

	left := haltest.NewFramebuffer(144, 40)
	c := NewContext(left)
	c.SetTextColor(ColorWhite)
	c.DrawText("57%", font, R(0, 0, 144, 40), AlignLeft)
	if n := left.Count(w+2, 0, 144-w-2, 40, white); n != 0 {
		t.Fatalf("left-aligned text drew %d pixels past its width", n)
	}

	right := haltest.NewFramebuffer(144, 40)
	c = NewContext(right)
	c.SetTextColor(ColorWhite)
	c.DrawText("57%", font, R(0, 0, 144, 40), AlignRight)
	if n := right.Count(0, 0, 144-w-2, 40, white); n != 0 {
		t.Fatalf("right-aligned text drew %d pixels before its start", n)
	}
}

func TestParseBitmap(t *testing.T) {
	bmp, err := ParseBitmap([]string{
		"#........#",
		".#......#.",
	})
	if err != nil {
		t.Fatalf("ParseBitmap: %v", err)
	}
	if bmp.Width != 10 || bmp.Height != 2 || len(bmp.Data) != 4 {
		t.Fatalf("bitmap = %dx%d (%d bytes)", bmp.Width, bmp.Height, len(bmp.Data))
	}
	if !bmp.At(0, 0) || !bmp.At(9, 0) || !bmp.At(1, 1) || bmp.At(2, 1) {
		t.Fatal("unexpected pixel values")
	}
	if bmp.At(-1, 0) || bmp.At(10, 0) {
		t.Fatal("out of range pixels must read as clear")
	}

	if _, err := ParseBitmap([]string{"##", "#"}); err != ErrBadBitmap {
		t.Fatalf("ragged rows: err = %v, want ErrBadBitmap", err)
	}
	if _, err := NewBitmap(9, 1, []byte{0}); err != ErrBadBitmap {
		t.Fatalf("short data: err = %v, want ErrBadBitmap", err)
	}
}

func TestDrawBitmap(t *testing.T) {
	bmp, _ := ParseBitmap([]string{"#.", ".#"})
	fb := haltest.NewFramebuffer(4, 4)
	c := NewContext(fb)
	c.Bind(R(1, 1, 2, 2), R(0, 0, 4, 4))
	c.DrawBitmap(bmp, R(0, 0, 2, 2), ColorWhite, ColorClear)

	white := hal.RGB565(0xFF, 0xFF, 0xFF)
	if fb.Pixel(1, 1) != white || fb.Pixel(2, 2) != white {
		t.Fatal("expected set bits drawn")
	}
	if fb.Pixel(2, 1) != 0 || fb.Pixel(1, 2) != 0 {
		t.Fatal("clear bits must not be drawn with a clear background")
	}
}
