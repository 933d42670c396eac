package main

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turbekoff/apcalc/pkg/apc"
	"github.com/turbekoff/apcalc/pkg/digits"
)

func runApp(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	app := newApp(&stdout, &stderr)
	err := app.Run(append([]string{"apcalc"}, args...))
	return stdout.String(), err
}

func TestEvalCommand(t *testing.T) {
	tests := []struct {
		args []string
		want string
	}{
		{args: []string{"eval", "12345678901234567890", "+", "98765432109876543210"}, want: "111111111011111111100\n"},
		{args: []string{"eval", "55555", "x", "99999"}, want: "5555444445\n"},
		{args: []string{"eval", "-5", "-", "-7"}, want: "2\n"},
		{args: []string{"eval", "100", "%", "-7"}, want: "2\n"},
		{args: []string{"eval", "2", "^", "10"}, want: "1024\n"},
		{args: []string{"100", "/", "7"}, want: "14\n"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			out, err := runApp(t, tt.args...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, out)
		})
	}
}

func TestEvalCommandVerbose(t *testing.T) {
	out, err := runApp(t, "--verbose", "eval", "-2", "^", "3")
	require.NoError(t, err)
	assert.Equal(t, `------------------------------
Input:    -2
Operator: ^
Input:    3
------------------------------
Result:   -8
------------------------------
`, out)
}

func TestEvalCommandErrors(t *testing.T) {
	_, err := runApp(t, "eval", "1", "/", "0")
	assert.ErrorIs(t, err, digits.ErrDivisionByZero)

	_, err = runApp(t, "eval", "1", "+")
	assert.ErrorIs(t, err, apc.ErrInvalidSyntax)

	_, err = runApp(t, "eval", "2", "^", "12345")
	assert.ErrorIs(t, err, apc.ErrExponentTooLarge)

	_, err = runApp(t, "eval", "2", "&", "3")
	assert.ErrorIs(t, err, apc.ErrInvalidOperator)
}

func TestLoadConfig(t *testing.T) {
	t.Setenv("APCALC_TELEGRAM_TOKEN", "token")
	t.Setenv("APCALC_SESSION_TTL", "5m")

	cfg, err := LoadConfig(t.TempDir() + "/absent.env")
	require.NoError(t, err)
	assert.Equal(t, "token", cfg.BotToken)
	assert.Equal(t, 60, cfg.BotTimeout)
	assert.Equal(t, 5*time.Minute, cfg.SessionTTL)
	assert.Equal(t, 2*time.Minute, cfg.ShutdownTimeout)
	assert.Empty(t, cfg.MetricsAddr)
}
