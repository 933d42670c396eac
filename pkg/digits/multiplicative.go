package digits

// Multiply returns a * b using schoolbook long multiplication.
func Multiply(a, b Magnitude) Magnitude {
	if a.IsZero() || b.IsZero() {
		return Zero
	}

	var total []byte
	for k := 0; k < len(b.d); k++ {
		digit := b.d[len(b.d)-1-k]
		if digit == 0 {
			continue
		}
		total = addDigits(total, partialProduct(a.d, digit, k))
	}
	return Magnitude{d: total}
}

// partialProduct returns a * digit followed by shift zero digits.
func partialProduct(a []byte, digit byte, shift int) []byte {
	out := make([]byte, len(a)+1+shift)
	var carry byte
	for i := len(a) - 1; i >= 0; i-- {
		p := a[i]*digit + carry
		out[i+1] = p % 10
		carry = p / 10
	}
	out[0] = carry
	return Normalize(out)
}

// Divide returns the quotient of long division, truncated.
func Divide(dividend, divisor Magnitude) (Magnitude, error) {
	q, _, err := DivMod(dividend, divisor)
	return q, err
}

// Modulus returns the remainder of long division.
func Modulus(dividend, divisor Magnitude) (Magnitude, error) {
	_, r, err := DivMod(dividend, divisor)
	return r, err
}

// DivMod returns both the quotient and the remainder of dividend / divisor.
func DivMod(dividend, divisor Magnitude) (q, r Magnitude, err error) {
	switch {
	case divisor.IsZero():
		return Zero, Zero, ErrDivisionByZero
	case cmpDigits(dividend.d, divisor.d) < 0:
		return Zero, Magnitude{d: dividend.Digits()}, nil
	}

	quo, rem := longDivide(dividend.d, divisor.d)
	return Magnitude{d: quo}, Magnitude{d: rem}, nil
}

// longDivide requires a >= b > 0, both canonical.
//
// The working window starts with the leading len(b) digits of a, widened by
// one digit when that is still smaller than b. Each step subtracts b from the
// window as many times as it fits, emits that count as the next quotient
// digit and brings down the next digit of a. The window is always smaller
// than 10*b when a step begins, so a step never counts past 9.
func longDivide(a, b []byte) (quo, rem []byte) {
	next := len(b)
	window := make([]byte, next, next+1)
	copy(window, a[:next])
	if cmpDigits(window, b) < 0 {
		window = append(window, a[next])
		next++
	}

	quo = make([]byte, 0, len(a)-next+1)
	for {
		window = Normalize(window)

		var count byte
		for cmpDigits(window, b) >= 0 {
			window = subDigits(window, b)
			count++
		}
		if len(window) == 0 {
			window = []byte{0}
		}
		quo = append(quo, count)

		if next == len(a) {
			break
		}
		window = append(window, a[next])
		next++
	}
	return Normalize(quo), Normalize(window)
}
