// Package digits implements arithmetic on unsigned integers of unbounded size
// stored as sequences of decimal digits, most-significant digit first.
//
// Magnitude values are immutable. Every operation borrows its operands and
// returns a freshly allocated result, so a result never shares storage with
// the operands it was built from.
package digits

import (
	"errors"
	"strings"
)

var (
	ErrInvalidDigit       = errors.New("invalid decimal digit")
	ErrInvalidArgument    = errors.New("invalid magnitude argument")
	ErrDivisionByZero     = errors.New("division by zero")
	ErrNegativeDifference = errors.New("subtrahend is greater than minuend")
)

// Magnitude is a non-negative integer. The zero value is the number zero.
type Magnitude struct {
	d []byte
}

var (
	Zero = Magnitude{}
	One  = Magnitude{d: []byte{1}}
	two  = Magnitude{d: []byte{2}}
)

// Parse reads a string of ASCII digits. Leading zeros are dropped.
func Parse(s string) (Magnitude, error) {
	if s == "" {
		return Zero, ErrInvalidDigit
	}

	d := make([]byte, len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c < '0' || c > '9' {
			return Zero, ErrInvalidDigit
		}
		d[i] = c - '0'
	}
	return Magnitude{d: Normalize(d)}, nil
}

// MustParse is like Parse but panics on malformed input.
func MustParse(s string) Magnitude {
	m, err := Parse(s)
	if err != nil {
		panic("digits.MustParse(" + s + "): " + err.Error())
	}
	return m
}

// FromDigits builds a magnitude from digit values 0-9, most-significant first.
// The slice is copied.
func FromDigits(ds []byte) (Magnitude, error) {
	d := make([]byte, len(ds))
	for i, v := range ds {
		if v > 9 {
			return Zero, ErrInvalidDigit
		}
		d[i] = v
	}
	return Magnitude{d: Normalize(d)}, nil
}

func FromUint64(u uint64) Magnitude {
	var buf [20]byte
	i := len(buf)
	for u > 0 {
		i--
		buf[i] = byte(u % 10)
		u /= 10
	}
	return Magnitude{d: append([]byte(nil), buf[i:]...)}
}

// Digits returns a copy of the digit sequence. Zero has no digits.
func (m Magnitude) Digits() []byte {
	return append([]byte(nil), m.d...)
}

// Len reports the number of significant digits.
func (m Magnitude) Len() int {
	return len(m.d)
}

func (m Magnitude) IsZero() bool {
	return len(m.d) == 0
}

func (m Magnitude) IsOdd() bool {
	return len(m.d) > 0 && m.d[len(m.d)-1]%2 != 0
}

func (m Magnitude) String() string {
	if len(m.d) == 0 {
		return "0"
	}

	var sb strings.Builder
	sb.Grow(len(m.d))
	for _, v := range m.d {
		sb.WriteByte('0' + v)
	}
	return sb.String()
}

// Normalize strips leading zero digits. A sequence made only of zeros
// collapses to the empty sequence. The result aliases seq.
func Normalize(seq []byte) []byte {
	i := 0
	for i < len(seq) && seq[i] == 0 {
		i++
	}
	return seq[i:]
}
