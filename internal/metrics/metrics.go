// Package metrics registers the rig's Prometheus collectors. Every helper is
// safe to call before Init; it then records nothing.
package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	metricPrefix = "rig_"

	ResultSuccess  = "success"
	ResultFailed   = "failed"
	ResultCanceled = "canceled"
)

var (
	registerOnce sync.Once

	poursTotal         *prometheus.CounterVec
	ingredientOutcomes *prometheus.CounterVec
	pumpRunSeconds     *prometheus.HistogramVec
	maintenanceTotal   *prometheus.CounterVec
	busyRejections     prometheus.Counter
)

// Init registers the collectors with the default registry.
func Init() {
	registerOnce.Do(func() {
		poursTotal = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "pours_total",
				Help: "Total pours by result",
			},
			[]string{"result"},
		)
		ingredientOutcomes = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "ingredient_outcomes_total",
				Help: "Total ingredient outcomes by kind",
			},
			[]string{"outcome"},
		)
		pumpRunSeconds = prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    metricPrefix + "pump_run_seconds",
				Help:    "Commanded pump run time in seconds",
				Buckets: []float64{1, 2, 4, 8, 16, 32, 64, 128},
			},
			[]string{"direction"},
		)
		maintenanceTotal = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "maintenance_total",
				Help: "Total prime and clean cycles by result",
			},
			[]string{"kind", "result"},
		)
		busyRejections = prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: metricPrefix + "busy_rejections_total",
				Help: "Operations rejected because another one was running",
			},
		)

		prometheus.MustRegister(
			poursTotal,
			ingredientOutcomes,
			pumpRunSeconds,
			maintenanceTotal,
			busyRejections,
		)
	})
}

// IncPour counts a finished pour.
func IncPour(result string) {
	if result == "" {
		result = ResultSuccess
	}
	if poursTotal != nil {
		poursTotal.WithLabelValues(result).Inc()
	}
}

// IncIngredientOutcome counts one per-ingredient outcome.
func IncIngredientOutcome(outcome string) {
	if outcome == "" {
		outcome = "unknown"
	}
	if ingredientOutcomes != nil {
		ingredientOutcomes.WithLabelValues(outcome).Inc()
	}
}

// ObservePumpRun records a completed motor run.
func ObservePumpRun(direction string, d time.Duration) {
	if d < 0 {
		d = 0
	}
	if pumpRunSeconds != nil {
		pumpRunSeconds.WithLabelValues(direction).Observe(d.Seconds())
	}
}

// IncMaintenance counts a finished prime or clean cycle.
func IncMaintenance(kind, result string) {
	if result == "" {
		result = ResultSuccess
	}
	if maintenanceTotal != nil {
		maintenanceTotal.WithLabelValues(kind, result).Inc()
	}
}

func IncBusyRejection() {
	if busyRejections != nil {
		busyRejections.Inc()
	}
}
