// Package metrics exposes Prometheus counters for the matching and
// gamification engine.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager owns a registry and the collectors registered on it. A nil
// *Manager is valid and records nothing.
type Manager struct {
	namespace        string
	histogramBuckets []float64
	registry         *prometheus.Registry

	xpAwarded          *prometheus.CounterVec
	levelUps           prometheus.Counter
	sessionTransitions *prometheus.CounterVec
	ratingsSubmitted   *prometheus.CounterVec
	recommendations    *prometheus.CounterVec
	externalCalls      *prometheus.HistogramVec
	httpRequests       *prometheus.CounterVec
	httpDuration       *prometheus.HistogramVec
}

func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "collabhub",
		histogramBuckets: prometheus.DefBuckets,
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.registry == nil {
		m.registry = prometheus.NewRegistry()
		m.registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
	}

	m.initializeMetrics()
	return m
}

func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.xpAwarded = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: "gamification",
		Name:      "xp_awarded_total",
		Help:      "XP granted by the ledger, by reason",
	}, []string{"reason"})

	m.levelUps = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: "gamification",
		Name:      "level_ups_total",
		Help:      "Number of awards that raised a user's level",
	})

	m.sessionTransitions = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: "sessions",
		Name:      "transitions_total",
		Help:      "Session status changes by target status and outcome",
	}, []string{"to", "outcome"})

	m.ratingsSubmitted = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: "ratings",
		Name:      "submitted_total",
		Help:      "Ratings stored, by score",
	}, []string{"score"})

	m.recommendations = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: "matching",
		Name:      "candidates_served_total",
		Help:      "Match candidates returned, by source",
	}, []string{"source"})

	m.externalCalls = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: "ai",
		Name:      "call_duration_seconds",
		Help:      "Latency of calls to the LLM and ML collaborators",
		Buckets:   m.histogramBuckets,
	}, []string{"target", "outcome"})

	m.httpRequests = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "HTTP requests by route, method and status code",
	}, []string{"route", "method", "status_code"})

	m.httpDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "HTTP request latency by route and method",
		Buckets:   m.histogramBuckets,
	}, []string{"route", "method"})
}

func (m *Manager) Registry() *prometheus.Registry {
	return m.registry
}

func (m *Manager) RecordXPAward(reason string, amount int, leveledUp bool) {
	if m == nil {
		return
	}
	m.xpAwarded.WithLabelValues(reason).Add(float64(amount))
	if leveledUp {
		m.levelUps.Inc()
	}
}

// RecordSessionTransition counts a transition attempt; outcome is "ok",
// "rejected" or "conflict".
func (m *Manager) RecordSessionTransition(to, outcome string) {
	if m == nil {
		return
	}
	m.sessionTransitions.WithLabelValues(to, outcome).Inc()
}

func (m *Manager) RecordRating(score int) {
	if m == nil {
		return
	}
	m.ratingsSubmitted.WithLabelValues(strconv.Itoa(score)).Inc()
}

func (m *Manager) RecordRecommendations(source string, count int) {
	if m == nil {
		return
	}
	m.recommendations.WithLabelValues(source).Add(float64(count))
}

// ObserveExternalCall records the latency of one call to an AI collaborator.
func (m *Manager) ObserveExternalCall(target string, started time.Time, err error) {
	if m == nil {
		return
	}
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	m.externalCalls.WithLabelValues(target, outcome).Observe(time.Since(started).Seconds())
}

func (m *Manager) ObserveHTTPRequest(route, method string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.httpRequests.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	m.httpDuration.WithLabelValues(route, method).Observe(elapsed.Seconds())
}
