package main

import (
	"errors"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/turbekoff/apcalc/pkg/apc"
	"github.com/turbekoff/apcalc/pkg/digits"
)

// Metrics counts evaluations by operator and outcome.
type Metrics struct {
	registry    *prometheus.Registry
	evaluations *prometheus.CounterVec
	digits      prometheus.Histogram
}

func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)

	return &Metrics{
		registry: registry,
		evaluations: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "apcalc_evaluations_total",
			Help: "Number of evaluated operations by operator and outcome",
		}, []string{"operator", "outcome"}), // outcome: ok, division_by_zero, exponent, invalid
		digits: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "apcalc_result_digits",
			Help:    "Number of digits in successful results",
			Buckets: prometheus.ExponentialBuckets(1, 4, 8),
		}),
	}
}

// Eval is apc.Eval with the outcome recorded.
func (m *Metrics) Eval(x apc.Int, op apc.Op, y apc.Int) (apc.Int, error) {
	result, err := apc.Eval(x, op, y)
	m.evaluations.WithLabelValues(op.String(), outcome(err)).Inc()
	if err == nil {
		m.digits.Observe(float64(result.Abs().Len()))
	}
	return result, err
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func outcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, digits.ErrDivisionByZero):
		return "division_by_zero"
	case errors.Is(err, apc.ErrNegativeExponent), errors.Is(err, apc.ErrExponentTooLarge):
		return "exponent"
	default:
		return "invalid"
	}
}
