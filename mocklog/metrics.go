/*
Copyright © 2024 Acronis International GmbH.

Released under MIT license.
*/

package mocklog

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/acronis/go-mocklog/internal/libinfo"
	"github.com/acronis/go-mocklog/log"
)

// MetricsCollector represents a collector of metrics describing how overrides are used.
type MetricsCollector interface {
	// SetActiveOverrides sets the number of goroutines with an installed sink.
	SetActiveOverrides(int)

	// IncOverridesInstalled increments the total number of SetLogger calls.
	IncOverridesInstalled()

	// IncOverridesReleased increments the total number of removed overrides.
	IncOverridesReleased()

	// IncRecordsDelivered increments the total number of records delivered to installed sinks.
	IncRecordsDelivered(level log.Level)

	// IncRecordsFiltered increments the total number of records discarded by the min level of an installed sink.
	IncRecordsFiltered(level log.Level)

	// IncRecordsUnrouted increments the total number of records logged on goroutines without an installed sink.
	IncRecordsUnrouted()
}

// PrometheusMetricsOpts represents options for PrometheusMetrics.
type PrometheusMetricsOpts struct {
	// Namespace is a namespace for metrics. It will be prepended to all metric names.
	Namespace string

	// ConstLabels is a set of labels that will be applied to all metrics.
	ConstLabels prometheus.Labels

	// CurriedLabelNames is a list of label names that will be curried with the provided labels.
	// See PrometheusMetrics.MustCurryWith method for more details.
	CurriedLabelNames []string
}

const metricsLabelLevel = "level"

// PrometheusMetrics represents a Prometheus metrics for the Registry.
type PrometheusMetrics struct {
	ActiveOverrides    *prometheus.GaugeVec
	OverridesInstalled *prometheus.CounterVec
	OverridesReleased  *prometheus.CounterVec
	RecordsDelivered   *prometheus.CounterVec
	RecordsFiltered    *prometheus.CounterVec
	RecordsUnrouted    *prometheus.CounterVec
}

var _ MetricsCollector = (*PrometheusMetrics)(nil)

// NewPrometheusMetrics creates a new instance of PrometheusMetrics with default options.
func NewPrometheusMetrics() *PrometheusMetrics {
	return NewPrometheusMetricsWithOpts(PrometheusMetricsOpts{})
}

// NewPrometheusMetricsWithOpts creates a new instance of PrometheusMetrics with the provided options.
func NewPrometheusMetricsWithOpts(opts PrometheusMetricsOpts) *PrometheusMetrics {
	constLabels := libinfo.AddPrometheusLibVersionLabel(opts.ConstLabels)
	labelNames := append([]string{}, opts.CurriedLabelNames...)
	levelLabelNames := append(append([]string{}, opts.CurriedLabelNames...), metricsLabelLevel)

	newCounterVec := func(name, help string, labels []string) *prometheus.CounterVec {
		return prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   opts.Namespace,
			Name:        name,
			Help:        help,
			ConstLabels: constLabels,
		}, labels)
	}

	return &PrometheusMetrics{
		ActiveOverrides: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace:   opts.Namespace,
			Name:        "mocklog_active_overrides",
			Help:        "Number of goroutines with an installed sink.",
			ConstLabels: constLabels,
		}, labelNames),
		OverridesInstalled: newCounterVec("mocklog_overrides_installed_total",
			"Number of installed sinks.", labelNames),
		OverridesReleased: newCounterVec("mocklog_overrides_released_total",
			"Number of released sinks.", labelNames),
		RecordsDelivered: newCounterVec("mocklog_records_delivered_total",
			"Number of records delivered to installed sinks.", levelLabelNames),
		RecordsFiltered: newCounterVec("mocklog_records_filtered_total",
			"Number of records discarded by the min level of installed sinks.", levelLabelNames),
		RecordsUnrouted: newCounterVec("mocklog_records_unrouted_total",
			"Number of records logged on goroutines without an installed sink.", labelNames),
	}
}

// MustCurryWith curries the metrics collector with the provided labels.
func (pm *PrometheusMetrics) MustCurryWith(labels prometheus.Labels) *PrometheusMetrics {
	return &PrometheusMetrics{
		ActiveOverrides:    pm.ActiveOverrides.MustCurryWith(labels),
		OverridesInstalled: pm.OverridesInstalled.MustCurryWith(labels),
		OverridesReleased:  pm.OverridesReleased.MustCurryWith(labels),
		RecordsDelivered:   pm.RecordsDelivered.MustCurryWith(labels),
		RecordsFiltered:    pm.RecordsFiltered.MustCurryWith(labels),
		RecordsUnrouted:    pm.RecordsUnrouted.MustCurryWith(labels),
	}
}

func (pm *PrometheusMetrics) collectors() []prometheus.Collector {
	return []prometheus.Collector{
		pm.ActiveOverrides,
		pm.OverridesInstalled,
		pm.OverridesReleased,
		pm.RecordsDelivered,
		pm.RecordsFiltered,
		pm.RecordsUnrouted,
	}
}

// MustRegister does registration of metrics collector in Prometheus and panics if any error occurs.
func (pm *PrometheusMetrics) MustRegister() {
	prometheus.MustRegister(pm.collectors()...)
}

// Unregister cancels registration of metrics collector in Prometheus.
func (pm *PrometheusMetrics) Unregister() {
	for _, c := range pm.collectors() {
		prometheus.Unregister(c)
	}
}

// SetActiveOverrides sets the number of goroutines with an installed sink.
func (pm *PrometheusMetrics) SetActiveOverrides(n int) {
	pm.ActiveOverrides.With(nil).Set(float64(n))
}

// IncOverridesInstalled increments the total number of SetLogger calls.
func (pm *PrometheusMetrics) IncOverridesInstalled() {
	pm.OverridesInstalled.With(nil).Inc()
}

// IncOverridesReleased increments the total number of removed overrides.
func (pm *PrometheusMetrics) IncOverridesReleased() {
	pm.OverridesReleased.With(nil).Inc()
}

// IncRecordsDelivered increments the total number of records delivered to installed sinks.
func (pm *PrometheusMetrics) IncRecordsDelivered(level log.Level) {
	pm.RecordsDelivered.With(prometheus.Labels{metricsLabelLevel: string(level)}).Inc()
}

// IncRecordsFiltered increments the total number of records discarded by the min level of an installed sink.
func (pm *PrometheusMetrics) IncRecordsFiltered(level log.Level) {
	pm.RecordsFiltered.With(prometheus.Labels{metricsLabelLevel: string(level)}).Inc()
}

// IncRecordsUnrouted increments the total number of records logged on goroutines without an installed sink.
func (pm *PrometheusMetrics) IncRecordsUnrouted() {
	pm.RecordsUnrouted.With(nil).Inc()
}

type disabledMetrics struct{}

func (disabledMetrics) SetActiveOverrides(int)        {}
func (disabledMetrics) IncOverridesInstalled()        {}
func (disabledMetrics) IncOverridesReleased()         {}
func (disabledMetrics) IncRecordsDelivered(log.Level) {}
func (disabledMetrics) IncRecordsFiltered(log.Level)  {}
func (disabledMetrics) IncRecordsUnrouted()           {}

var disabledMetricsCollector = disabledMetrics{}
