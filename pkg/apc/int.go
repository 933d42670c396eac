// Package apc evaluates binary operations on signed integers of arbitrary
// size. Sign handling lives here; the magnitudes are computed by package
// digits.
package apc

import (
	"errors"
	"strings"

	"github.com/turbekoff/apcalc/pkg/digits"
)

var (
	ErrInvalidOperand   = errors.New("invalid operand")
	ErrInvalidOperator  = errors.New("invalid operator")
	ErrInvalidSyntax    = errors.New("invalid syntax")
	ErrNegativeExponent = errors.New("negative exponent not supported")
	ErrExponentTooLarge = errors.New("exponent too large to compute")
)

// Int is a signed integer. The zero value is 0.
type Int struct {
	neg bool
	abs digits.Magnitude
}

func NewInt(neg bool, abs digits.Magnitude) Int {
	return Int{neg: neg && !abs.IsZero(), abs: abs}
}

// Parse accepts an optional leading sign followed by decimal digits.
func Parse(s string) (Int, error) {
	var neg bool
	switch {
	case strings.HasPrefix(s, "-"):
		neg, s = true, s[1:]
	case strings.HasPrefix(s, "+"):
		s = s[1:]
	}

	abs, err := digits.Parse(s)
	if err != nil {
		return Int{}, ErrInvalidOperand
	}
	return NewInt(neg, abs), nil
}

func MustParse(s string) Int {
	x, err := Parse(s)
	if err != nil {
		panic("apc.MustParse(" + s + "): " + err.Error())
	}
	return x
}

func (x Int) Abs() digits.Magnitude {
	return x.abs
}

func (x Int) IsNegative() bool {
	return x.neg
}

// Sign returns -1, 0 or 1.
func (x Int) Sign() int {
	switch {
	case x.abs.IsZero():
		return 0
	case x.neg:
		return -1
	default:
		return 1
	}
}

func (x Int) Neg() Int {
	return NewInt(!x.neg, x.abs)
}

func (x Int) String() string {
	if x.neg {
		return "-" + x.abs.String()
	}
	return x.abs.String()
}
