// Package metrics expone contadores Prometheus del ledger de eventos y de la capa HTTP.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/jhoicas/eventportal-api/internal/application/ledger"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "eventportal"

var _ ledger.Recorder = (*Metrics)(nil)

// Metrics agrupa los collectors sobre un registry propio (no el global),
// así cada instancia de la app y cada test tienen sus contadores aislados.
type Metrics struct {
	registry *prometheus.Registry

	eventsCreated  *prometheus.CounterVec
	eventsDeleted  *prometheus.CounterVec
	eventsRejected *prometheus.CounterVec

	requestDuration *prometheus.HistogramVec
	requestTotal    *prometheus.CounterVec
}

// New registra los collectors del portal más los de proceso y runtime de Go.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		eventsCreated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "ledger",
			Name:      "events_created_total",
			Help:      "Eventos creados que consumieron una unidad de cuota.",
		}, []string{"company_id"}),
		eventsDeleted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "ledger",
			Name:      "events_deleted_total",
			Help:      "Eventos eliminados que devolvieron una unidad de cuota.",
		}, []string{"company_id"}),
		eventsRejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "ledger",
			Name:      "events_rejected_total",
			Help:      "Intentos de creación de eventos rechazados, por motivo.",
		}, []string{"reason"}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duración de las peticiones HTTP.",
			Buckets:   []float64{0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}, []string{"method", "route", "status"}),
		requestTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total de peticiones HTTP atendidas.",
		}, []string{"method", "route", "status"}),
	}

	m.registry.MustRegister(
		m.eventsCreated, m.eventsDeleted, m.eventsRejected,
		m.requestDuration, m.requestTotal,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// EventCreated implementa ledger.Recorder.
func (m *Metrics) EventCreated(companyID string) { m.eventsCreated.WithLabelValues(companyID).Inc() }

// EventDeleted implementa ledger.Recorder.
func (m *Metrics) EventDeleted(companyID string) { m.eventsDeleted.WithLabelValues(companyID).Inc() }

// EventRejected implementa ledger.Recorder.
func (m *Metrics) EventRejected(reason string) { m.eventsRejected.WithLabelValues(reason).Inc() }

// ObserveRequest registra una petición HTTP. route es el patrón de la ruta (ej. /api/events/:id).
func (m *Metrics) ObserveRequest(method, route string, status int, elapsed time.Duration) {
	code := strconv.Itoa(status)
	m.requestDuration.WithLabelValues(method, route, code).Observe(elapsed.Seconds())
	m.requestTotal.WithLabelValues(method, route, code).Inc()
}

// Handler devuelve el handler net/http de exposición (montado en /metrics vía adaptor de fiber).
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Registry expone el registry para tests.
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }
