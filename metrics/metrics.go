// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/danielhkuo/quickly-group/models"
)

// Outcome labels for allocation runs
const (
	OutcomeSuccess  = "success"
	OutcomeRejected = "rejected" // failed validation, engine not run
	OutcomeFailed   = "failed"   // engine returned success=false
)

type Metrics struct {
	registry     *prometheus.Registry
	requests     *prometheus.CounterVec
	duration     *prometheus.HistogramVec
	runs         *prometheus.CounterVec
	assigned     prometheus.Counter
	unassigned   prometheus.Counter
	satisfaction prometheus.Histogram
}

// New creates the collectors on a private registry so several servers
// (and tests) can coexist in one process
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total count of HTTP requests processed by route and status.",
		}, []string{"route", "status"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Histogram of HTTP request durations by route.",
			Buckets: prometheus.DefBuckets,
		}, []string{"route"}),
		runs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "allocation_runs_total",
			Help: "Allocation runs by outcome.",
		}, []string{"outcome"}),
		assigned: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "allocation_participants_assigned_total",
			Help: "Participants placed in a group across successful runs.",
		}),
		unassigned: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "allocation_participants_unassigned_total",
			Help: "Participants with preferences left without a group across successful runs.",
		}),
		satisfaction: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "allocation_satisfaction_score",
			Help:    "Satisfaction score (0-100) of successful runs.",
			Buckets: prometheus.LinearBuckets(10, 10, 10),
		}),
	}

	m.registry.MustRegister(
		m.requests,
		m.duration,
		m.runs,
		m.assigned,
		m.unassigned,
		m.satisfaction,
	)

	return m
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(status int) {
	s.status = status
	s.ResponseWriter.WriteHeader(status)
}

// WrapHandler counts and times requests under a fixed route label
func (m *Metrics) WrapHandler(route string, next http.HandlerFunc) http.HandlerFunc {
	if m == nil {
		return next
	}
	return func(w http.ResponseWriter, r *http.Request) {
		recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()

		next(recorder, r)

		m.requests.WithLabelValues(route, strconv.Itoa(recorder.status)).Inc()
		m.duration.WithLabelValues(route).Observe(time.Since(start).Seconds())
	}
}

// Handler serves the registry in the Prometheus text format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// RunRejected records an allocation refused by validation
func (m *Metrics) RunRejected() {
	if m == nil {
		return
	}
	m.runs.WithLabelValues(OutcomeRejected).Inc()
}

// ObserveRun records the outcome of one engine invocation
func (m *Metrics) ObserveRun(result models.AlgorithmResult) {
	if m == nil {
		return
	}
	if !result.Success {
		m.runs.WithLabelValues(OutcomeFailed).Inc()
		return
	}
	m.runs.WithLabelValues(OutcomeSuccess).Inc()
	m.assigned.Add(float64(result.Stats.Assigned))
	m.unassigned.Add(float64(result.Stats.Unassigned))
	m.satisfaction.Observe(result.Stats.SatisfactionScore)
}
