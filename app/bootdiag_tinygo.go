//go:build tinygo && bootdebug

package app

import (
	"machine"

	"brass/hal"
	"brass/watchos/graphics"
	"brass/watchos/resources"
)

// bootStep reports boot progress on the log, USB CDC and the display.
func bootStep(h hal.HAL, msg string) {
	if h == nil {
		return
	}
	line := "bootdiag: " + msg
	if l := h.Logger(); l != nil {
		l.WriteLineString(line)
	}
	if usb := machine.USBCDC; usb != nil {
		_, _ = usb.Write([]byte(line + "\r\n"))
	}

	disp := h.Display()
	if disp == nil {
		return
	}
	fb := disp.Framebuffer()
	if fb == nil {
		return
	}
	font, err := resources.LoadFont(resources.FontFault)
	if err != nil {
		return
	}

	fb.ClearRGB(0, 0, 0)
	ctx := graphics.NewContext(fb)
	ctx.SetTextColor(graphics.ColorWhite)
	ctx.DrawText("Brass boot", font, graphics.R(0, 0, fb.Width(), 16), graphics.AlignLeft)
	ctx.DrawText(msg, font, graphics.R(0, 16, fb.Width(), 16), graphics.AlignLeft)
	_ = fb.Present()
}
