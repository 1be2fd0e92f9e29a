// Package metrics provides Prometheus metrics for the squad engine.
package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Mentor lookup outcomes.
const (
	OutcomeFound = "found"
	OutcomeNone  = "none"
)

// scoreBuckets cover the [0,1] score range.
var scoreBuckets = []float64{0.1, 0.2, 0.3, 0.4, 0.5, 0.6, 0.7, 0.8, 0.9, 1}

// Manager manages all Prometheus metrics for the squad engine.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	registry         prometheus.Registerer

	// Formation metrics
	formations          prometheus.Counter
	teamsFormed         prometheus.Counter
	candidatesAssigned  prometheus.Counter
	candidatesRemaining prometheus.Counter
	formationLatency    prometheus.Histogram
	teamMatchScore      prometheus.Histogram
	poolSize            prometheus.Gauge

	// Mentor metrics
	mentorLookups    *prometheus.CounterVec
	mentorMatchScore prometheus.Histogram
	mentorLookupTime prometheus.Histogram

	// Error metrics
	invalidArguments *prometheus.CounterVec
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "squad",
		subsystem:        "engine",
		histogramBuckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 25, 50, 100},
		registry:         prometheus.DefaultRegisterer,
	}

	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()

	return m
}

// initializeMetrics creates all the Prometheus metrics.
func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.formations = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "formations_total",
		Help:      "Total number of completed team formation runs",
	})

	m.teamsFormed = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "teams_formed_total",
		Help:      "Total number of teams emitted by formation runs",
	})

	m.candidatesAssigned = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "candidates_assigned_total",
		Help:      "Total number of candidates placed into a team",
	})

	m.candidatesRemaining = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "candidates_unassigned_total",
		Help:      "Total number of candidates returned as remainder",
	})

	m.formationLatency = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "formation_latency_milliseconds",
		Help:      "Histogram of team formation latency in milliseconds",
		Buckets:   m.histogramBuckets,
	})

	m.teamMatchScore = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "team_match_score",
		Help:      "Distribution of formed teams' match scores",
		Buckets:   scoreBuckets,
	})

	m.poolSize = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "pool_size",
		Help:      "Candidate pool size of the most recent formation run",
	})

	m.mentorLookups = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "mentor_lookups_total",
			Help:      "Total number of mentor lookups by outcome",
		},
		[]string{"outcome"},
	)

	m.mentorMatchScore = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "mentor_match_score",
		Help:      "Distribution of chosen mentors' match scores",
		Buckets:   scoreBuckets,
	})

	m.mentorLookupTime = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "mentor_lookup_latency_milliseconds",
		Help:      "Histogram of mentor lookup latency in milliseconds",
		Buckets:   m.histogramBuckets,
	})

	m.invalidArguments = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "invalid_argument_total",
			Help:      "Total number of calls rejected as invalid, by operation",
		},
		[]string{"operation"},
	)
}

// RecordFormation records a completed run: its latency, pool size and outcome.
func (m *Manager) RecordFormation(latencyMs float64, poolSize, teams, assigned, remaining int) {
	m.formations.Inc()
	m.formationLatency.Observe(latencyMs)
	m.poolSize.Set(float64(poolSize))
	m.teamsFormed.Add(float64(teams))
	m.candidatesAssigned.Add(float64(assigned))
	m.candidatesRemaining.Add(float64(remaining))
}

// RecordTeamMatchScore observes one team's match score.
func (m *Manager) RecordTeamMatchScore(score float64) {
	m.teamMatchScore.Observe(score)
}

// RecordMentorLookup records a lookup; score is observed only when a mentor was found.
func (m *Manager) RecordMentorLookup(latencyMs float64, found bool, score float64) {
	m.mentorLookupTime.Observe(latencyMs)
	if !found {
		m.mentorLookups.WithLabelValues(OutcomeNone).Inc()
		return
	}
	m.mentorLookups.WithLabelValues(OutcomeFound).Inc()
	m.mentorMatchScore.Observe(score)
}

// RecordInvalidArgument counts a rejected call for operation.
func (m *Manager) RecordInvalidArgument(operation string) {
	m.invalidArguments.WithLabelValues(operation).Inc()
}

// RecordFormation records a run on the global manager.
func RecordFormation(latencyMs float64, poolSize, teams, assigned, remaining int) {
	globalManager.RecordFormation(latencyMs, poolSize, teams, assigned, remaining)
}

// RecordTeamMatchScore observes a team score on the global manager.
func RecordTeamMatchScore(score float64) {
	globalManager.RecordTeamMatchScore(score)
}

// RecordMentorLookup records a mentor lookup on the global manager.
func RecordMentorLookup(latencyMs float64, found bool, score float64) {
	globalManager.RecordMentorLookup(latencyMs, found, score)
}

// RecordInvalidArgument counts a rejected call on the global manager.
func RecordInvalidArgument(operation string) {
	globalManager.RecordInvalidArgument(operation)
}

// Configure replaces the global manager with one built from opts on a fresh
// registry, dropping previously recorded values. Call it before recording.
func Configure(opts ...Option) {
	customRegistry = prometheus.NewRegistry()
	globalManager = NewManager(append([]Option{WithPrometheusRegistry(customRegistry)}, opts...)...)
}

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}

// WriteTextfile writes the global registry to path in the text exposition
// format read by the node exporter textfile collector.
func WriteTextfile(path string) error {
	return writeTextfile(path, customRegistry)
}

func writeTextfile(path string, g prometheus.Gatherer) error {
	if path == "" {
		return fmt.Errorf("%w: empty path", ErrExportFailed)
	}
	if err := prometheus.WriteToTextfile(path, g); err != nil {
		return fmt.Errorf("%w: %w", ErrExportFailed, err)
	}
	return nil
}
