// Package metrics provides Prometheus metrics for the piste formula engine.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Poule sizes land between 3 and 12 in practice.
var pouleSizeBuckets = []float64{3, 4, 5, 6, 7, 8, 9, 10, 12} //nolint:gochecknoglobals // shared bucket layout

// Manager manages all Prometheus metrics for the formula engine.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	enabled          bool
	registry         prometheus.Registerer

	// Formula lifecycle
	tournamentsInitialized prometheus.Counter
	activeTournaments      prometheus.Gauge
	validationErrors       *prometheus.CounterVec
	presetImports          prometheus.Counter
	presetExports          prometheus.Counter

	// Poule generation
	poulesGenerated    prometheus.Counter
	athletesPlaced     prometheus.Counter
	forcedPlacements   prometheus.Counter
	separationFailures prometheus.Counter
	generationDuration prometheus.Histogram
	pouleSizes         prometheus.Histogram
	separationSuccess  prometheus.Gauge

	// Qualification
	qualificationsComputed prometheus.Counter
	athletesQualified      prometheus.Counter
	athletesEliminated     prometheus.Counter
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

// Initialize global metrics.
func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "piste",
		subsystem:        "formula",
		histogramBuckets: prometheus.DefBuckets,
		enabled:          true,
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

	m.tournamentsInitialized = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "tournaments_initialized_total",
		Help:      "Total number of tournaments initialized",
	})

	m.activeTournaments = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "active_tournaments",
		Help:      "Number of tournaments currently held in the engine",
	})

	m.validationErrors = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "validation_errors_total",
			Help:      "Total number of formula validation errors by problem type",
		},
		[]string{"problem"},
	)

	m.presetImports = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "preset_imports_total",
		Help:      "Total number of formula presets imported",
	})

	m.presetExports = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "preset_exports_total",
		Help:      "Total number of formula presets exported",
	})

	m.poulesGenerated = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "poules_generated_total",
		Help:      "Total number of poules generated",
	})

	m.athletesPlaced = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "athletes_placed_total",
		Help:      "Total number of athletes assigned to poules",
	})

	m.forcedPlacements = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "forced_placements_total",
		Help:      "Total number of placements that broke a separation rule",
	})

	m.separationFailures = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "separation_failures_total",
		Help:      "Total number of strict-mode generations aborted on separation",
	})

	m.generationDuration = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "generation_duration_milliseconds",
		Help:      "Poule generation duration in milliseconds",
		Buckets:   m.histogramBuckets,
	})

	m.pouleSizes = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "poule_size",
		Help:      "Distribution of generated poule sizes",
		Buckets:   pouleSizeBuckets,
	})

	m.separationSuccess = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "separation_success_percent",
		Help:      "Separation success percentage of the last generation",
	})

	m.qualificationsComputed = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "qualifications_computed_total",
		Help:      "Total number of qualification cuts computed",
	})

	m.athletesQualified = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "athletes_qualified_total",
		Help:      "Total number of athletes qualified to a next phase",
	})

	m.athletesEliminated = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "athletes_eliminated_total",
		Help:      "Total number of athletes eliminated at a qualification cut",
	})
}

// RecordTournamentInitialized increments the initialized tournaments counter.
func RecordTournamentInitialized() {
	globalManager.tournamentsInitialized.Inc()
}

// UpdateActiveTournaments sets the number of tournaments held in the engine.
func UpdateActiveTournaments(count int) {
	globalManager.activeTournaments.Set(float64(count))
}

// RecordValidationError counts a validation error by its problem type.
func RecordValidationError(problem string) {
	globalManager.validationErrors.WithLabelValues(problem).Inc()
}

// RecordPresetImport increments the preset imports counter.
func RecordPresetImport() {
	globalManager.presetImports.Inc()
}

// RecordPresetExport increments the preset exports counter.
func RecordPresetExport() {
	globalManager.presetExports.Inc()
}

// RecordPoulesGenerated counts the poules produced by one generation.
func RecordPoulesGenerated(count int) {
	globalManager.poulesGenerated.Add(float64(count))
}

// RecordAthletesPlaced counts the athletes assigned by one generation.
func RecordAthletesPlaced(count int) {
	globalManager.athletesPlaced.Add(float64(count))
}

// RecordForcedPlacements counts placements that broke a separation rule.
func RecordForcedPlacements(count int) {
	globalManager.forcedPlacements.Add(float64(count))
}

// RecordSeparationFailure increments the strict-mode abort counter.
func RecordSeparationFailure() {
	globalManager.separationFailures.Inc()
}

// RecordGenerationDuration records poule generation latency in milliseconds.
func RecordGenerationDuration(latencyMs float64) {
	globalManager.generationDuration.Observe(latencyMs)
}

// RecordPouleSize records the size of a generated poule.
func RecordPouleSize(size int) {
	globalManager.pouleSizes.Observe(float64(size))
}

// UpdateSeparationSuccess sets the last generation's separation success percentage.
func UpdateSeparationSuccess(percent float64) {
	globalManager.separationSuccess.Set(percent)
}

// RecordQualificationComputed increments the qualification cuts counter.
func RecordQualificationComputed() {
	globalManager.qualificationsComputed.Inc()
}

// RecordQualificationOutcome counts the qualified and eliminated athletes of a cut.
func RecordQualificationOutcome(qualified, eliminated int) {
	globalManager.athletesQualified.Add(float64(qualified))
	globalManager.athletesEliminated.Add(float64(eliminated))
}

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
