package watchface

import (
	"math"
	"strconv"
	"testing"
	"time"
)

func TestFormatIntMatchesStrconv(t *testing.T) {
	for n := 0; n <= 9999; n++ {
		got := FormatInt(n)
		if want := strconv.Itoa(n); got.String() != want {
			t.Fatalf("FormatInt(%d) = %q, want %q", n, got, want)
		}
		if got.Len() != Digits(n) {
			t.Fatalf("FormatInt(%d).Len() = %d, want Digits = %d", n, got.Len(), Digits(n))
		}
	}
}

func TestFormatIntZero(t *testing.T) {
	if got := FormatInt(0).String(); got != "0" {
		t.Fatalf("FormatInt(0) = %q, want \"0\"", got)
	}
	if got := Digits(0); got != 1 {
		t.Fatalf("Digits(0) = %d, want 1", got)
	}
	var zero Decimal
	if zero.String() != "" || zero.Len() != 0 {
		t.Fatalf("zero Decimal = %q", zero.String())
	}
}

func TestFormatIntNegativeIsMagnitude(t *testing.T) {
	tests := []struct {
		in   int
		want string
	}{
		{-1, "1"},
		{-57, "57"},
		{-10000, "10000"},
		{math.MinInt64, "9223372036854775808"},
		{math.MaxInt64, "9223372036854775807"},
	}
	for _, tt := range tests {
		got := FormatInt(tt.in)
		if got.String() != tt.want {
			t.Fatalf("FormatInt(%d) = %q, want %q", tt.in, got, tt.want)
		}
		if got.Len() != Digits(tt.in) {
			t.Fatalf("FormatInt(%d).Len() = %d, want %d", tt.in, got.Len(), Digits(tt.in))
		}
	}
}

func TestDigitsMatchesLog10(t *testing.T) {
	for _, n := range []int{1, 9, 10, 99, 100, 999, 1000, 12345, 999999, 1000000, 2147483647} {
		want := int(math.Floor(math.Log10(float64(n)))) + 1
		if got := Digits(n); got != want {
			t.Fatalf("Digits(%d) = %d, want %d", n, got, want)
		}
	}
}

func TestPow10(t *testing.T) {
	if pow10(0) != 1 || pow10(1) != 10 || pow10(18) != 1e18 {
		t.Fatalf("pow10 = %d %d %d", pow10(0), pow10(1), pow10(18))
	}
}

func TestAppendIntReusesBuffer(t *testing.T) {
	buf := make([]byte, 0, 8)
	buf = AppendInt(buf, 42)
	buf = append(buf, ' ')
	buf = AppendInt(buf, 7)
	if string(buf) != "42 7" {
		t.Fatalf("AppendInt = %q", buf)
	}
}

func TestBatteryLabel(t *testing.T) {
	tests := []struct {
		st   BatteryState
		want string
	}{
		{BatteryState{ChargePercent: 57}, "57%"},
		{BatteryState{ChargePercent: 100, Charging: true}, "100%+"},
		{BatteryState{ChargePercent: 0}, "0%"},
		{BatteryState{ChargePercent: 5, Charging: true, Plugged: true}, "5%+"},
	}
	for _, tt := range tests {
		if got := BatteryLabel(tt.st); got != tt.want {
			t.Fatalf("BatteryLabel(%+v) = %q, want %q", tt.st, got, tt.want)
		}
	}
}

func TestFormatTime(t *testing.T) {
	evening := time.Date(2024, time.March, 4, 21, 7, 0, 0, time.UTC)
	morning := time.Date(2024, time.March, 4, 0, 30, 0, 0, time.UTC)
	tests := []struct {
		t      time.Time
		use24h bool
		want   string
	}{
		{evening, true, "21:07"},
		{evening, false, "09:07"},
		{morning, true, "00:30"},
		{morning, false, "12:30"},
	}
	for _, tt := range tests {
		if got := FormatTime(tt.t, tt.use24h); got != tt.want {
			t.Fatalf("FormatTime(%v, %v) = %q, want %q", tt.t, tt.use24h, got, tt.want)
		}
	}
}

func TestFormatDate(t *testing.T) {
	got := FormatDate(time.Date(2024, time.September, 25, 12, 0, 0, 0, time.UTC))
	if got != "Wed Sep 25" {
		t.Fatalf("FormatDate = %q, want \"Wed Sep 25\"", got)
	}
	if len(got) > len("XXX YYY 88") {
		t.Fatalf("FormatDate length %d", len(got))
	}
}

func TestBluetoothIndicator(t *testing.T) {
	var b BluetoothIndicator
	steps := []struct {
		connected bool
		hidden    bool
		pulse     bool
	}{
		{true, true, false},
		{false, false, true},
		{false, false, false},
		{true, true, false},
		{true, true, false},
		{false, false, true},
	}
	for i, s := range steps {
		hidden, pulse := b.Apply(s.connected)
		if hidden != s.hidden || pulse != s.pulse {
			t.Fatalf("step %d Apply(%v) = %v, %v; want %v, %v", i, s.connected, hidden, pulse, s.hidden, s.pulse)
		}
	}

	var fresh BluetoothIndicator
	if _, pulse := fresh.Apply(false); !pulse {
		t.Fatal("unknown -> disconnected did not pulse")
	}
}
