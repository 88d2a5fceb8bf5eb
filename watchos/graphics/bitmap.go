package graphics

import "errors"

var ErrBadBitmap = errors.New("bitmap: data does not match size")

// Bitmap is a 1bpp image, rows padded to whole bytes, most significant bit first.
type Bitmap struct {
	Width  int
	Height int
	Data   []byte
}

// NewBitmap validates data against the given size.
func NewBitmap(w, h int, data []byte) (*Bitmap, error) {
	if w <= 0 || h <= 0 || len(data) != rowBytes(w)*h {
		return nil, ErrBadBitmap
	}
	return &Bitmap{Width: w, Height: h, Data: data}, nil
}

// ParseBitmap builds a bitmap from rows of '#' (set) and any other rune (clear).
func ParseBitmap(rows []string) (*Bitmap, error) {
	if len(rows) == 0 {
		return nil, ErrBadBitmap
	}
	w := len(rows[0])
	stride := rowBytes(w)
	data := make([]byte, stride*len(rows))
	for y, row := range rows {
		if len(row) != w {
			return nil, ErrBadBitmap
		}
		for x := 0; x < w; x++ {
			if row[x] == '#' {
				data[y*stride+x/8] |= 0x80 >> (x % 8)
			}
		}
	}
	return NewBitmap(w, len(rows), data)
}

// At reports whether the pixel at x, y is set.
func (b *Bitmap) At(x, y int) bool {
	if x < 0 || y < 0 || x >= b.Width || y >= b.Height {
		return false
	}
	return b.Data[y*rowBytes(b.Width)+x/8]&(0x80>>(x%8)) != 0
}

func rowBytes(w int) int { return (w + 7) / 8 }
