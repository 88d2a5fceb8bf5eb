// Package resources maps build-time resource identifiers to fonts and bitmaps.
package resources

import (
	"errors"
	"fmt"

	"brass/watchos/graphics"

	"tinygo.org/x/tinyfont"
	"tinygo.org/x/tinyfont/freemono"
	"tinygo.org/x/tinyfont/freesans"
)

var ErrUnknownResource = errors.New("unknown resource")

// ID identifies a packaged resource.
type ID uint16

const (
	FontTime  ID = 1 // large digits for HH:MM
	FontText  ID = 2 // date line and battery label
	FontFault ID = 3 // fault screen

	BitmapBTDisconnected ID = 16
)

var fonts = map[ID]tinyfont.Fonter{
	FontTime:  &freesans.Bold24pt7b,
	FontText:  &freesans.Bold12pt7b,
	FontFault: &freemono.Regular9pt7b,
}

// LoadFont returns the font for id.
func LoadFont(id ID) (tinyfont.Fonter, error) {
	f, ok := fonts[id]
	if !ok {
		return nil, fmt.Errorf("font %d: %w", id, ErrUnknownResource)
	}
	return f, nil
}

// LoadBitmap decodes the bitmap for id. Each call returns a fresh bitmap.
func LoadBitmap(id ID) (*graphics.Bitmap, error) {
	rows, ok := bitmaps[id]
	if !ok {
		return nil, fmt.Errorf("bitmap %d: %w", id, ErrUnknownResource)
	}
	bmp, err := graphics.ParseBitmap(rows)
	if err != nil {
		return nil, fmt.Errorf("bitmap %d: %w", id, err)
	}
	return bmp, nil
}

var bitmaps = map[ID][]string{
	BitmapBTDisconnected: btDisconnected,
}

// Bluetooth rune with a strike-through, 24x24.
var btDisconnected = []string{
	"........................",
	"...........#............",
	"...........##...........",
	"#..........###..........",
	".#.........####.........",
	"..#........##.##........",
	"...#.......##..##.......",
	"....#......##...##......",
	".....##....##..##.......",
	"......##...##.##........",
	".......##..####.........",
	"........##.###..........",
	".........#####..........",
	"..........####..........",
	".........##.###.........",
	"........##.#####........",
	".......##..##.###.......",
	"......##...##..###......",
	".......#...##...###.....",
	"...........##..##..#....",
	"...........##.##....#...",
	"...........####......#..",
	"...........###........#.",
	"...........##..........#",
}
