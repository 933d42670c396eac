package apc

import (
	"strings"

	"golang.org/x/xerrors"

	"github.com/turbekoff/apcalc/pkg/digits"
)

// MaxExponentDigits bounds the exponent of a power so that the result stays
// within memory.
const MaxExponentDigits = 4

type Op rune

const (
	OpAdd Op = '+'
	OpSub Op = '-'
	OpMul Op = '*'
	OpDiv Op = '/'
	OpMod Op = '%'
	OpPow Op = '^'
)

// ParseOp accepts one of "+ - * x / % ^"; "x" is read as multiplication.
func ParseOp(s string) (Op, error) {
	if len(s) != 1 {
		return 0, xerrors.Errorf("%q: %w", s, ErrInvalidOperator)
	}

	switch op := Op(s[0]); op {
	case OpAdd, OpSub, OpMul, OpDiv, OpMod, OpPow:
		return op, nil
	case 'x', 'X':
		return OpMul, nil
	default:
		return 0, xerrors.Errorf("%q: %w", s, ErrInvalidOperator)
	}
}

func (op Op) String() string {
	return string(rune(op))
}

// Eval computes x op y exactly.
func Eval(x Int, op Op, y Int) (Int, error) {
	switch op {
	case OpAdd:
		return add(x, y), nil
	case OpSub:
		return add(x, y.Neg()), nil
	case OpMul:
		return NewInt(x.neg != y.neg, digits.Multiply(x.abs, y.abs)), nil
	case OpDiv:
		q, err := digits.Divide(x.abs, y.abs)
		if err != nil {
			return Int{}, xerrors.Errorf("failed to divide %s by %s: %w", x, y, err)
		}
		return NewInt(x.neg != y.neg, q), nil
	case OpMod:
		r, err := digits.Modulus(x.abs, y.abs)
		if err != nil {
			return Int{}, xerrors.Errorf("failed to take %s modulo %s: %w", x, y, err)
		}
		return NewInt(x.neg, r), nil
	case OpPow:
		if err := checkExponent(y); err != nil {
			return Int{}, err
		}
		p, err := digits.Power(x.abs, y.abs)
		if err != nil {
			return Int{}, xerrors.Errorf("failed to raise %s to %s: %w", x, y, err)
		}
		return NewInt(x.neg && y.abs.IsOdd(), p), nil
	default:
		return Int{}, xerrors.Errorf("%q: %w", rune(op), ErrInvalidOperator)
	}
}

// EvalString evaluates an expression of the form "<a> <op> <b>".
func EvalString(expr string) (Int, error) {
	x, op, y, err := ParseExpr(expr)
	if err != nil {
		return Int{}, err
	}
	return Eval(x, op, y)
}

// EvalArgs parses and evaluates one operation given as separate tokens.
func EvalArgs(a, op, b string) (Int, error) {
	x, o, y, err := ParseArgs(a, op, b)
	if err != nil {
		return Int{}, err
	}
	return Eval(x, o, y)
}

// ParseExpr splits expr on whitespace into exactly three tokens.
func ParseExpr(expr string) (Int, Op, Int, error) {
	fields := strings.Fields(expr)
	if len(fields) != 3 {
		return Int{}, 0, Int{}, xerrors.Errorf("expected <operand> <operator> <operand>, got %d tokens: %w", len(fields), ErrInvalidSyntax)
	}
	return ParseArgs(fields[0], fields[1], fields[2])
}

func ParseArgs(a, op, b string) (Int, Op, Int, error) {
	x, err := Parse(a)
	if err != nil {
		return Int{}, 0, Int{}, xerrors.Errorf("%q: %w", a, err)
	}

	o, err := ParseOp(op)
	if err != nil {
		return Int{}, 0, Int{}, err
	}

	y, err := Parse(b)
	if err != nil {
		return Int{}, 0, Int{}, xerrors.Errorf("%q: %w", b, err)
	}
	return x, o, y, nil
}

// add dispatches to the magnitude engine after deciding the sign: equal
// signs add, different signs subtract the smaller magnitude from the larger.
func add(x, y Int) Int {
	if x.neg == y.neg {
		return NewInt(x.neg, digits.Add(x.abs, y.abs))
	}

	switch digits.Cmp(x.abs, y.abs) {
	case digits.Equal:
		return Int{}
	case digits.Greater:
		d, _ := digits.Subtract(x.abs, y.abs)
		return NewInt(x.neg, d)
	default:
		d, _ := digits.Subtract(y.abs, x.abs)
		return NewInt(y.neg, d)
	}
}

func checkExponent(y Int) error {
	switch {
	case y.Sign() < 0:
		return xerrors.Errorf("%s: %w", y, ErrNegativeExponent)
	case y.abs.Len() > MaxExponentDigits:
		return xerrors.Errorf("%s has more than %d digits: %w", y, MaxExponentDigits, ErrExponentTooLarge)
	}
	return nil
}
