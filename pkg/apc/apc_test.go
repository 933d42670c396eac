package apc

import (
	"math/big"
	"testing"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turbekoff/apcalc/pkg/digits"
)

func TestParse(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		sign    int
		wantErr bool
	}{
		{in: "42", want: "42", sign: 1},
		{in: "+42", want: "42", sign: 1},
		{in: "-42", want: "-42", sign: -1},
		{in: "-000", want: "0", sign: 0},
		{in: "+0", want: "0", sign: 0},
		{in: "-0012", want: "-12", sign: -1},
		{in: "", wantErr: true},
		{in: "-", wantErr: true},
		{in: "+-1", wantErr: true},
		{in: "1.5", wantErr: true},
		{in: "1e9", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := Parse(tt.in)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidOperand)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.String())
			assert.Equal(t, tt.sign, got.Sign())
		})
	}
}

func TestParseOp(t *testing.T) {
	for in, want := range map[string]Op{
		"+": OpAdd, "-": OpSub, "*": OpMul, "x": OpMul, "X": OpMul,
		"/": OpDiv, "%": OpMod, "^": OpPow,
	} {
		got, err := ParseOp(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	for _, in := range []string{"", "++", "&", "÷"} {
		_, err := ParseOp(in)
		assert.ErrorIs(t, err, ErrInvalidOperator, in)
	}
}

func TestEvalSigns(t *testing.T) {
	tests := []struct {
		a, op, b string
		want     string
	}{
		{a: "-5", op: "+", b: "-7", want: "-12"},
		{a: "-5", op: "+", b: "7", want: "2"},
		{a: "-7", op: "+", b: "5", want: "-2"},
		{a: "5", op: "+", b: "-7", want: "-2"},
		{a: "7", op: "+", b: "-7", want: "0"},
		{a: "5", op: "-", b: "7", want: "-2"},
		{a: "-5", op: "-", b: "-7", want: "2"},
		{a: "-7", op: "-", b: "-5", want: "-2"},
		{a: "-5", op: "-", b: "7", want: "-12"},
		{a: "5", op: "-", b: "-7", want: "12"},
		{a: "5", op: "-", b: "5", want: "0"},
		{a: "-6", op: "x", b: "7", want: "-42"},
		{a: "-6", op: "*", b: "-7", want: "42"},
		{a: "-6", op: "*", b: "0", want: "0"},
		{a: "-100", op: "/", b: "7", want: "-14"},
		{a: "100", op: "/", b: "-7", want: "-14"},
		{a: "-100", op: "/", b: "-7", want: "14"},
		{a: "-5", op: "/", b: "7", want: "0"},
		{a: "-100", op: "%", b: "7", want: "-2"},
		{a: "100", op: "%", b: "-7", want: "2"},
		{a: "-14", op: "%", b: "7", want: "0"},
		{a: "-2", op: "^", b: "3", want: "-8"},
		{a: "-2", op: "^", b: "4", want: "16"},
		{a: "-2", op: "^", b: "+0", want: "1"},
		{a: "0", op: "^", b: "0", want: "1"},
		{a: "2", op: "^", b: "64", want: "18446744073709551616"},
	}

	for _, tt := range tests {
		t.Run(tt.a+tt.op+tt.b, func(t *testing.T) {
			got, err := EvalArgs(tt.a, tt.op, tt.b)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.String())
		})
	}
}

func TestEvalErrors(t *testing.T) {
	tests := []struct {
		expr string
		want error
	}{
		{expr: "1 / 0", want: digits.ErrDivisionByZero},
		{expr: "-1 % -0", want: digits.ErrDivisionByZero},
		{expr: "2 ^ -1", want: ErrNegativeExponent},
		{expr: "2 ^ 10000", want: ErrExponentTooLarge},
		{expr: "1 ? 2", want: ErrInvalidOperator},
		{expr: "1a + 2", want: ErrInvalidOperand},
		{expr: "1 + b", want: ErrInvalidOperand},
		{expr: "1 +", want: ErrInvalidSyntax},
		{expr: "1 + 2 + 3", want: ErrInvalidSyntax},
	}

	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			_, err := EvalString(tt.expr)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestExponentGuardIgnoresLeadingZeros(t *testing.T) {
	got, err := EvalString("3 ^ 00005")
	require.NoError(t, err)
	assert.Equal(t, "243", got.String())
}

func TestEvalMatchesBigInt(t *testing.T) {
	f := gofakeit.New(2024)
	ops := []string{"+", "-", "*", "/", "%"}

	for i := 0; i < 200; i++ {
		a := f.RandomString([]string{"", "-", "+"}) + f.DigitN(uint(f.IntRange(1, 40)))
		b := f.RandomString([]string{"", "-"}) + f.DigitN(uint(f.IntRange(1, 25)))
		op := ops[i%len(ops)]

		ba, _ := new(big.Int).SetString(a, 10)
		bb, _ := new(big.Int).SetString(b, 10)

		got, err := EvalArgs(a, op, b)
		if bb.Sign() == 0 && (op == "/" || op == "%") {
			assert.ErrorIs(t, err, digits.ErrDivisionByZero)
			continue
		}
		require.NoError(t, err)

		want := new(big.Int)
		switch op {
		case "+":
			want.Add(ba, bb)
		case "-":
			want.Sub(ba, bb)
		case "*":
			want.Mul(ba, bb)
		case "/":
			want.Quo(ba, bb)
		case "%":
			want.Rem(ba, bb)
		}
		assert.Equal(t, want.String(), got.String(), "%s %s %s", a, op, b)
	}
}

func TestNoNegativeZero(t *testing.T) {
	assert.Equal(t, "0", NewInt(true, digits.Zero).String())
	assert.Equal(t, 0, MustParse("-0").Neg().Sign())
}
