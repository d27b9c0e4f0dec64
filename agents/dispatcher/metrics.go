/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package dispatcher

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

type dispatchMetrics struct {
	initializations *prometheus.CounterVec
	requests        *prometheus.CounterVec
	duration        prometheus.Histogram
}

func newDispatchMetrics(r prometheus.Registerer) *dispatchMetrics {
	return &dispatchMetrics{
		initializations: register(r, prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "readme_agent_initializations_total",
			Help: "Agent initialization attempts by outcome.",
		}, []string{"outcome"})),
		requests: register(r, prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "readme_agent_requests_total",
			Help: "Handled conversations by outcome.",
		}, []string{"outcome"})),
		duration: register(r, prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "readme_agent_request_duration_seconds",
			Help:    "Time spent handling a conversation, including initialization.",
			Buckets: []float64{0.5, 1, 2.5, 5, 10, 30, 60, 120, 300},
		})),
	}
}

// register registers c on r, reusing the existing collector when an
// identical one is already registered.
func register[C prometheus.Collector](r prometheus.Registerer, c C) C {
	if err := r.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(C); ok {
				return existing
			}
		}
		// Fall back to an unregistered collector so recording still works.
		return c
	}
	return c
}

func (m *dispatchMetrics) observeRequest(outcome string, d time.Duration) {
	m.requests.WithLabelValues(outcome).Inc()
	m.duration.Observe(d.Seconds())
}
