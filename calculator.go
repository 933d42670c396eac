package main

import (
	"errors"
	"strings"

	"github.com/turbekoff/apcalc/pkg/apc"
)

var ErrUnsupported = errors.New("unsupported input format")

type EvalFunc func(x apc.Int, op apc.Op, y apc.Int) (apc.Int, error)

// Calculator is the state behind one keypad message.
type Calculator struct {
	Display  string
	Operands [2]*apc.Int
	Operator *apc.Op
	failed   bool
	eval     EvalFunc
}

func NewCalculator(eval EvalFunc) *Calculator {
	if eval == nil {
		eval = apc.Eval
	}
	c := &Calculator{eval: eval}
	return c.reset()
}

func (c *Calculator) reset() *Calculator {
	c.Display = "0"
	c.Operator = nil
	c.Operands = [2]*apc.Int{}
	c.failed = false
	return c
}

func (c *Calculator) ProcessOperand(r rune) error {
	if r < '0' || r > '9' {
		return ErrUnsupported
	}

	if c.failed {
		c.reset()
	}

	if c.Operator != nil && c.Operands[1] == nil {
		c.Display = "0"
		c.Operands[1] = new(apc.Int)
	}

	switch c.Display {
	case "0":
		c.Display = string(r)
	case "-0":
		c.Display = "-" + string(r)
	default:
		c.Display += string(r)
	}
	return nil
}

func (c *Calculator) ProcessOperator(r rune) error {
	switch r {
	case 'C':
		c.Display = "0"
		c.failed = false
		return nil
	case 'T':
		if c.failed || c.Display == "0" {
			return nil
		}

		if strings.HasPrefix(c.Display, "-") {
			c.Display = c.Display[1:]
		} else {
			c.Display = "-" + c.Display
		}
		return nil
	case '=':
		return c.calculate()
	}

	op, err := apc.ParseOp(string(r))
	if err != nil || c.failed {
		return ErrUnsupported
	}

	// chained operators evaluate the pending operation first
	if c.Operator != nil && c.Operands[1] != nil {
		if err := c.calculate(); err != nil {
			return err
		}
	}

	if c.Operator == nil {
		operand, err := apc.Parse(c.Display)
		if err != nil {
			return ErrUnsupported
		}
		c.Operands[0] = &operand
	}
	c.Operator = &op
	return nil
}

func (c *Calculator) calculate() error {
	if c.Operator == nil || c.Operands[1] == nil {
		return ErrUnsupported
	}

	operand, err := apc.Parse(c.Display)
	if err != nil {
		return ErrUnsupported
	}
	c.Operands[1] = &operand

	result, err := c.eval(*c.Operands[0], *c.Operator, *c.Operands[1])
	c.reset()
	if err != nil {
		c.Display = "Error: " + rootCause(err).Error()
		c.failed = true
		return err
	}

	c.Display = result.String()
	return nil
}

func rootCause(err error) error {
	for {
		next := errors.Unwrap(err)
		if next == nil {
			return err
		}
		err = next
	}
}
