package main

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turbekoff/apcalc/pkg/apc"
)

func TestMetricsEval(t *testing.T) {
	m := NewMetrics()

	got, err := m.Eval(apc.MustParse("6"), apc.OpMul, apc.MustParse("7"))
	require.NoError(t, err)
	assert.Equal(t, "42", got.String())

	_, err = m.Eval(apc.MustParse("6"), apc.OpDiv, apc.MustParse("0"))
	require.Error(t, err)
	_, err = m.Eval(apc.MustParse("6"), apc.OpPow, apc.MustParse("-1"))
	require.Error(t, err)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.evaluations.WithLabelValues("*", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.evaluations.WithLabelValues("/", "division_by_zero")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.evaluations.WithLabelValues("^", "exponent")))
}

func TestMetricsHandler(t *testing.T) {
	m := NewMetrics()
	_, _ = m.Eval(apc.MustParse("1"), apc.OpAdd, apc.MustParse("1"))

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `apcalc_evaluations_total{operator="+",outcome="ok"} 1`)
	assert.Contains(t, rec.Body.String(), "apcalc_result_digits_count 1")
}
