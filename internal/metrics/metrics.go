// Package metrics holds the Prometheus collectors of the election backend.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Cast outcomes.
const (
	OutcomeAccepted    = "accepted"
	OutcomeRejected    = "rejected"
	OutcomeDuplicate   = "duplicate"
	OutcomeUnavailable = "unavailable"
	OutcomeError       = "error"
)

// Metrics groups every collector. A nil *Metrics is valid and records nothing.
type Metrics struct {
	VotesCastTotal      *prometheus.CounterVec
	StatusChangesTotal  *prometheus.CounterVec
	SideEffectFailures  *prometheus.CounterVec
	RecomputeDuration   prometheus.Histogram
	ResetsTotal         prometheus.Counter
	LiveSubscribers     prometheus.Gauge
	HTTPRequestDuration *prometheus.HistogramVec
}

// New creates the collectors and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		VotesCastTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "election_votes_cast_total",
				Help: "Cast attempts by outcome",
			},
			[]string{"outcome"},
		),
		StatusChangesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "election_vote_status_changes_total",
				Help: "Vote status transitions by target status",
			},
			[]string{"to"},
		),
		SideEffectFailures: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "election_side_effect_failures_total",
				Help: "Best-effort post-cast steps that failed",
			},
			[]string{"step"},
		),
		RecomputeDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "election_tally_recompute_duration_seconds",
				Help:    "Duration of one post tally recompute",
				Buckets: prometheus.DefBuckets,
			},
		),
		ResetsTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "election_resets_total",
				Help: "Completed emergency resets",
			},
		),
		LiveSubscribers: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "election_live_subscribers",
				Help: "Currently connected live-update subscribers",
			},
		),
		HTTPRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "election_http_request_duration_seconds",
				Help:    "Duration of HTTP requests",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "route", "status"},
		),
	}

	reg.MustRegister(
		m.VotesCastTotal,
		m.StatusChangesTotal,
		m.SideEffectFailures,
		m.RecomputeDuration,
		m.ResetsTotal,
		m.LiveSubscribers,
		m.HTTPRequestDuration,
	)

	return m
}

// VoteCast counts one cast attempt.
func (m *Metrics) VoteCast(outcome string) {
	if m == nil {
		return
	}
	m.VotesCastTotal.WithLabelValues(outcome).Inc()
}

// StatusChanged counts one status transition.
func (m *Metrics) StatusChanged(to string) {
	if m == nil {
		return
	}
	m.StatusChangesTotal.WithLabelValues(to).Inc()
}

// SideEffectFailed counts a failed best-effort step.
func (m *Metrics) SideEffectFailed(step string) {
	if m == nil {
		return
	}
	m.SideEffectFailures.WithLabelValues(step).Inc()
}

// ObserveRecompute records how long a recompute took.
func (m *Metrics) ObserveRecompute(d time.Duration) {
	if m == nil {
		return
	}
	m.RecomputeDuration.Observe(d.Seconds())
}

// ResetCompleted counts a completed emergency reset.
func (m *Metrics) ResetCompleted() {
	if m == nil {
		return
	}
	m.ResetsTotal.Inc()
}

// SubscriberAdded and SubscriberRemoved track live subscribers.
func (m *Metrics) SubscriberAdded() {
	if m == nil {
		return
	}
	m.LiveSubscribers.Inc()
}

func (m *Metrics) SubscriberRemoved() {
	if m == nil {
		return
	}
	m.LiveSubscribers.Dec()
}

// ObserveHTTP records one served request.
func (m *Metrics) ObserveHTTP(method, route, status string, d time.Duration) {
	if m == nil {
		return
	}
	m.HTTPRequestDuration.WithLabelValues(method, route, status).Observe(d.Seconds())
}
