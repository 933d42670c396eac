package digits

// Power returns base raised to exp by recursive squaring. Any base to the
// power zero is one, including zero itself.
//
// Power places no bound on exp; callers are expected to keep it small
// enough for the result to fit in memory.
func Power(base, exp Magnitude) (Magnitude, error) {
	switch {
	case exp.IsZero():
		return Magnitude{d: One.Digits()}, nil
	case Cmp(exp, One) == Equal:
		return Magnitude{d: base.Digits()}, nil
	}

	half, err := Divide(exp, two)
	if err != nil {
		return Zero, err
	}

	t, err := Power(base, half)
	if err != nil {
		return Zero, err
	}

	result := Multiply(t, t)
	// parity comes from this level's exponent, not from half
	if exp.IsOdd() {
		result = Multiply(result, base)
	}
	return result, nil
}
