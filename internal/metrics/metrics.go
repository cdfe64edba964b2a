// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package metrics defines the Prometheus collectors exposed on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTPRequestsTotal counts requests by method, route pattern, and status.
	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "portfolio_http_requests_total",
		Help: "Total number of HTTP requests.",
	}, []string{"method", "route", "status"})

	// HTTPRequestDuration observes request latency by method and route pattern.
	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "portfolio_http_request_duration_seconds",
		Help:    "HTTP request latency in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route"})

	// ContentMutations counts dashboard and API writes by entity kind
	// and action.
	ContentMutations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "portfolio_content_mutations_total",
		Help: "Total number of content mutations.",
	}, []string{"kind", "action"})

	// ContactMessagesReceived counts public contact form submissions.
	ContactMessagesReceived = promauto.NewCounter(prometheus.CounterOpts{
		Name: "portfolio_contact_messages_received_total",
		Help: "Total number of contact form submissions.",
	})
)
