package digits

// Add returns a + b.
func Add(a, b Magnitude) Magnitude {
	if a.IsZero() && b.IsZero() {
		return Zero
	}
	return Magnitude{d: addDigits(a.d, b.d)}
}

// Subtract returns minuend - subtrahend. Operands are never swapped: when the
// subtrahend is larger the call fails with ErrNegativeDifference.
func Subtract(minuend, subtrahend Magnitude) (Magnitude, error) {
	switch {
	case subtrahend.IsZero():
		return Magnitude{d: minuend.Digits()}, nil
	case cmpDigits(minuend.d, subtrahend.d) < 0:
		return Zero, ErrNegativeDifference
	}
	return Magnitude{d: subDigits(minuend.d, subtrahend.d)}, nil
}

// addDigits walks both sequences from the least-significant end and fills
// the result from the back, so the most-significant digit is written last.
func addDigits(a, b []byte) []byte {
	n := len(a)
	if len(b) > n {
		n = len(b)
	}

	out := make([]byte, n+1)
	i, j, k := len(a)-1, len(b)-1, n
	var carry byte
	for ; k > 0; k-- {
		sum := carry
		if i >= 0 {
			sum += a[i]
			i--
		}
		if j >= 0 {
			sum += b[j]
			j--
		}
		out[k] = sum % 10
		carry = sum / 10
	}
	out[0] = carry
	return Normalize(out)
}

// subDigits requires a >= b.
func subDigits(a, b []byte) []byte {
	out := make([]byte, len(a))
	j := len(b) - 1
	var borrow int
	for i := len(a) - 1; i >= 0; i-- {
		diff := int(a[i]) - borrow
		if j >= 0 {
			diff -= int(b[j])
			j--
		}
		if diff < 0 {
			diff += 10
			borrow = 1
		} else {
			borrow = 0
		}
		out[i] = byte(diff)
	}
	return Normalize(out)
}
