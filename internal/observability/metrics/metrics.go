// Package metrics expone los colectores Prometheus del servicio.
// Init los registra una sola vez en el registro por defecto; antes de Init las
// funciones Observe*/Inc* son no-op, lo que permite usar los casos de uso en tests.
package metrics

import (
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const metricPrefix = "mantenpro_"

var (
	registerOnce sync.Once

	alertsTotal        *prometheus.CounterVec
	alertsSkipped      *prometheus.CounterVec
	alertEvalLatency   *prometheus.HistogramVec
	httpRequestsTotal  *prometheus.CounterVec
	httpRequestLatency *prometheus.HistogramVec
	historyWrites      *prometheus.CounterVec
)

// Init registra los colectores. Llamadas repetidas no tienen efecto.
func Init() {
	registerOnce.Do(func() {
		alertsTotal = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "alerts_total",
				Help: "Alertas generadas por categoría y prioridad",
			},
			[]string{"category", "priority"},
		)
		alertsSkipped = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "alert_records_skipped_total",
				Help: "Registros omitidos al evaluar alertas, por motivo",
			},
			[]string{"reason"},
		)
		alertEvalLatency = prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    metricPrefix + "alert_evaluation_seconds",
				Help:    "Latencia de evaluación de alertas por rol",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"role"},
		)
		httpRequestsTotal = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "http_requests_total",
				Help: "Peticiones HTTP por método, ruta y código",
			},
			[]string{"method", "route", "status"},
		)
		httpRequestLatency = prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    metricPrefix + "http_request_seconds",
				Help:    "Latencia de peticiones HTTP",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		)
		historyWrites = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "history_entries_total",
				Help: "Entradas de historial escritas por evento",
			},
			[]string{"event"},
		)

		prometheus.MustRegister(
			alertsTotal,
			alertsSkipped,
			alertEvalLatency,
			httpRequestsTotal,
			httpRequestLatency,
			historyWrites,
		)
	})
}

// IncAlert cuenta una alerta emitida.
func IncAlert(category, priority string) {
	if alertsTotal != nil {
		alertsTotal.WithLabelValues(category, priority).Inc()
	}
}

// IncAlertSkipped cuenta un registro omitido durante la evaluación.
func IncAlertSkipped(reason string) {
	if reason == "" {
		reason = "unknown"
	}
	if alertsSkipped != nil {
		alertsSkipped.WithLabelValues(reason).Inc()
	}
}

// ObserveAlertEvaluation registra la latencia de una evaluación completa.
func ObserveAlertEvaluation(role string, duration time.Duration) {
	if role == "" {
		role = "unknown"
	}
	if alertEvalLatency != nil {
		alertEvalLatency.WithLabelValues(role).Observe(duration.Seconds())
	}
}

// ObserveHTTPRequest registra una petición atendida.
func ObserveHTTPRequest(method, route string, status int, duration time.Duration) {
	if route == "" {
		route = "unmatched"
	}
	if httpRequestsTotal != nil {
		httpRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	}
	if httpRequestLatency != nil {
		httpRequestLatency.WithLabelValues(method, route).Observe(duration.Seconds())
	}
}

// IncHistoryWrite cuenta una entrada de historial escrita (scheduled, status_change).
func IncHistoryWrite(event string) {
	if historyWrites != nil {
		historyWrites.WithLabelValues(event).Inc()
	}
}
