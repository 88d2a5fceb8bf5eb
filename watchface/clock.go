package watchface

import "time"

const (
	timeLayout24 = "15:04"
	timeLayout12 = "03:04"
	dateLayout   = "Mon Jan 02"
)

// Clock is the wall clock and the user's clock style.
type Clock interface {
	Now() time.Time
	Is24h() bool
}

// FormatTime renders HH:MM on a 24 or zero-padded 12 hour clock.
func FormatTime(t time.Time, use24h bool) string {
	var buf [8]byte
	return string(appendTime(buf[:0], t, use24h))
}

// FormatDate renders the weekday, month and day, e.g. "Mon Mar 04".
func FormatDate(t time.Time) string {
	var buf [len(dateLayout)]byte
	return string(appendDate(buf[:0], t))
}

func appendTime(dst []byte, t time.Time, use24h bool) []byte {
	if use24h {
		return t.AppendFormat(dst, timeLayout24)
	}
	return t.AppendFormat(dst, timeLayout12)
}

func appendDate(dst []byte, t time.Time) []byte {
	return t.AppendFormat(dst, dateLayout)
}
