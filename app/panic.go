package app

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"brass/hal"
	"brass/watchos/graphics"
	"brass/watchos/kernel"
	"brass/watchos/resources"
)

// installPanicHandler logs a kernel fault and replaces the face with a fault screen.
func installPanicHandler(h hal.HAL, k *kernel.Kernel) {
	k.SetPanicHandler(func(info kernel.PanicInfo) {
		if l := h.Logger(); l != nil {
			l.WriteLineString("Brass fault: " + info.String())
			for _, line := range stackLines(info.Stack) {
				l.WriteLineString(line)
			}
		}

		disp := h.Display()
		if disp == nil {
			return
		}
		fb := disp.Framebuffer()
		if fb == nil {
			return
		}
		drawFaultScreen(fb, info)
	})
}

func drawFaultScreen(fb hal.Framebuffer, info kernel.PanicInfo) {
	fb.ClearRGB(255, 255, 255)
	defer func() { _ = fb.Present() }()

	font, err := resources.LoadFont(resources.FontFault)
	if err != nil {
		return
	}
	m := graphics.MeasureFont(font)
	glyphW := graphics.TextWidth(font, "0")
	if glyphW <= 0 || m.Height <= 0 {
		return
	}

	lines := []string{"Brass fault", fmt.Sprintf("%v", info.Value)}
	if info.Event != 0 {
		lines = append(lines, "in: "+info.Event.String())
	}
	if st := stackLines(info.Stack); len(st) > 0 {
		lines = append(lines, "stack:")
		lines = append(lines, st...)
	}

	ctx := graphics.NewContext(fb)
	ctx.SetTextColor(graphics.ColorBlack)
	cols := fb.Width() / glyphW
	if cols <= 0 {
		cols = 1
	}

	y := 0
	for _, line := range lines {
		for len(line) > 0 {
			if y+m.Height > fb.Height() {
				return
			}
			chunk, rest := takeRunes(line, cols)
			ctx.DrawText(chunk, font, graphics.R(0, y, fb.Width(), m.Height), graphics.AlignLeft)
			y += m.Height
			line = strings.TrimLeft(rest, " \t")
		}
	}
}

func stackLines(stack []byte) []string {
	var out []string
	for _, line := range strings.Split(string(stack), "\n") {
		if line = strings.TrimSpace(line); line != "" {
			out = append(out, line)
		}
	}
	return out
}

func takeRunes(s string, n int) (prefix, rest string) {
	if n <= 0 || s == "" {
		return "", s
	}
	if len(s) <= n {
		return s, ""
	}
	var i, count int
	for i < len(s) && count < n {
		_, size := utf8.DecodeRuneInString(s[i:])
		i += size
		count++
	}
	return s[:i], s[i:]
}
