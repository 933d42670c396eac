package digits

// Ordering is the result of comparing two magnitudes.
type Ordering int

const (
	Less    Ordering = -1
	Equal   Ordering = 0
	Greater Ordering = 1
)

func (o Ordering) String() string {
	switch o {
	case Less:
		return "LESS"
	case Equal:
		return "EQUAL"
	case Greater:
		return "GREATER"
	default:
		return "UNKNOWN"
	}
}

// Compare orders two magnitudes, treating nil as an absent operand.
// Two absent operands compare EQUAL; a single absent operand is
// ErrInvalidArgument.
func Compare(a, b *Magnitude) (Ordering, error) {
	switch {
	case a == nil && b == nil:
		return Equal, nil
	case a == nil || b == nil:
		return Equal, ErrInvalidArgument
	}
	return Cmp(*a, *b), nil
}

// Cmp orders two magnitudes by length, then digit by digit from the
// most-significant end.
func Cmp(a, b Magnitude) Ordering {
	return Ordering(cmpDigits(a.d, b.d))
}

// cmpDigits expects both sequences in canonical form.
func cmpDigits(a, b []byte) int {
	if len(a) != len(b) {
		if len(a) < len(b) {
			return -1
		}
		return 1
	}

	for i := range a {
		if a[i] != b[i] {
			if a[i] < b[i] {
				return -1
			}
			return 1
		}
	}
	return 0
}
