package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const Namespace = "agendamento"

// Outcomes de appointments_total.
const (
	OutcomeCreated  = "created"
	OutcomeUpdated  = "updated"
	OutcomeDeleted  = "deleted"
	OutcomeConflict = "conflict"
	OutcomeRejected = "rejected"
	OutcomeFailed   = "failed"
)

type Collector struct {
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec

	AppointmentsTotal *prometheus.CounterVec

	NotificationsSent    prometheus.Counter
	NotificationsDropped prometheus.Counter

	BirthdayRuns *prometheus.CounterVec
}

// NewCollector registra as métricas em reg (prometheus.DefaultRegisterer no binário,
// um registry novo por teste).
func NewCollector(reg prometheus.Registerer) *Collector {
	f := promauto.With(reg)

	return &Collector{
		RequestsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests by method, path, and status code.",
		}, []string{"method", "path", "status"}),

		RequestDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: Namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency distribution.",
			Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0},
		}, []string{"method", "path", "status"}),

		AppointmentsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Subsystem: "scheduling",
			Name:      "appointments_total",
			Help:      "Appointment write attempts by outcome.",
		}, []string{"outcome"}),

		NotificationsSent: f.NewCounter(prometheus.CounterOpts{
			Namespace: Namespace,
			Subsystem: "notification",
			Name:      "sent_total",
			Help:      "Notifications persisted.",
		}),

		NotificationsDropped: f.NewCounter(prometheus.CounterOpts{
			Namespace: Namespace,
			Subsystem: "notification",
			Name:      "dropped_total",
			Help:      "Notifications dropped due to full queue. Alert if non-zero.",
		}),

		BirthdayRuns: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Subsystem: "jobs",
			Name:      "birthday_runs_total",
			Help:      "Birthday reminder executions by result.",
		}, []string{"result"}),
	}
}

// Appointment incrementa appointments_total; aceita collector nil.
func (c *Collector) Appointment(outcome string) {
	if c == nil {
		return
	}
	c.AppointmentsTotal.WithLabelValues(outcome).Inc()
}

func Handler() http.Handler {
	return promhttp.Handler()
}
