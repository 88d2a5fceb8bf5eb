package watchface

// maxDigits fits the magnitude of any 64-bit int.
const maxDigits = 20

// Decimal is the digit string of an integer, held by value.
type Decimal struct {
	buf [maxDigits]byte
	n   uint8
}

func (d Decimal) String() string { return string(d.buf[:d.n]) }

func (d Decimal) Len() int { return int(d.n) }

// FormatInt returns the decimal digits of |v| with no sign and no leading zeros.
func FormatInt(v int) Decimal {
	var d Decimal
	d.n = uint8(len(AppendInt(d.buf[:0], v)))
	return d
}

// AppendInt appends the decimal digits of |v| to dst, most significant first.
func AppendInt(dst []byte, v int) []byte {
	m := magnitude(v)
	var used uint64
	for i := countDigits(m); i > 0; i-- {
		p := pow10(i - 1)
		d := (m - used) / p
		dst = append(dst, byte('0'+d))
		used += d * p
	}
	return dst
}

// Digits returns the number of decimal digits of |n|. Digits(0) is 1.
func Digits(n int) int { return countDigits(magnitude(n)) }

func countDigits(m uint64) int {
	n := 1
	for m >= 10 {
		m /= 10
		n++
	}
	return n
}

func pow10(p int) uint64 {
	v := uint64(1)
	for ; p > 0; p-- {
		v *= 10
	}
	return v
}

// magnitude is |v| without overflow for the most negative int.
func magnitude(v int) uint64 {
	if v < 0 {
		return uint64(-(v + 1)) + 1
	}
	return uint64(v)
}
