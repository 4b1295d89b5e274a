package deadline

import (
	"github.com/go-projects-nosql/internal/domain"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics are the scheduler's Prometheus instruments.
type Metrics struct {
	ticks      *prometheus.CounterVec
	created    *prometheus.CounterVec
	suppressed *prometheus.CounterVec
	failures   *prometheus.CounterVec
	duration   prometheus.Histogram
}

// NewMetrics registers the scheduler metrics on reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		ticks: f.NewCounterVec(prometheus.CounterOpts{
			Name: "deadline_scheduler_ticks_total",
			Help: "Scheduler runs by trigger and outcome.",
		}, []string{"trigger", "outcome"}),
		created: f.NewCounterVec(prometheus.CounterOpts{
			Name: "deadline_notifications_created_total",
			Help: "Deadline notifications persisted, by type.",
		}, []string{"type"}),
		suppressed: f.NewCounterVec(prometheus.CounterOpts{
			Name: "deadline_notifications_suppressed_total",
			Help: "Notifications suppressed by the recency window, by type.",
		}, []string{"type"}),
		failures: f.NewCounterVec(prometheus.CounterOpts{
			Name: "deadline_task_failures_total",
			Help: "Per-task failures during a pass, by stage.",
		}, []string{"stage"}),
		duration: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "deadline_scheduler_tick_duration_seconds",
			Help:    "Wall time of a full scheduler tick.",
			Buckets: prometheus.ExponentialBuckets(0.05, 2, 10),
		}),
	}
}

// The methods below are nil-safe so the scheduler can run without metrics.

func (m *Metrics) tick(trigger, outcome string) {
	if m != nil {
		m.ticks.WithLabelValues(trigger, outcome).Inc()
	}
}

func (m *Metrics) notificationCreated(t domain.NotificationType) {
	if m != nil {
		m.created.WithLabelValues(string(t)).Inc()
	}
}

func (m *Metrics) notificationSuppressed(t domain.NotificationType) {
	if m != nil {
		m.suppressed.WithLabelValues(string(t)).Inc()
	}
}

func (m *Metrics) taskFailed(stage string) {
	if m != nil {
		m.failures.WithLabelValues(stage).Inc()
	}
}

func (m *Metrics) observeTick(seconds float64) {
	if m != nil {
		m.duration.Observe(seconds)
	}
}
