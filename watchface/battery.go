package watchface

import "brass/hal"

// BatteryState is the last battery sample delivered to the face.
type BatteryState = hal.PowerState

// BatteryLabel renders "57%", or "100%+" while charging.
func BatteryLabel(s BatteryState) string {
	var buf [8]byte
	return string(appendBatteryLabel(buf[:0], s))
}

func appendBatteryLabel(dst []byte, s BatteryState) []byte {
	dst = AppendInt(dst, s.ChargePercent)
	dst = append(dst, '%')
	if s.Charging {
		dst = append(dst, '+')
	}
	return dst
}
