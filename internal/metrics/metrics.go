// Package metrics exposes Prometheus counters for sign-ups, access decisions and marketplace actions.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Recorder is what the server and dashboards report to
type Recorder interface {
	RecordVerification(outcome string)
	RecordSessionCreated(role string)
	RecordSessionCorrupt()
	RecordAccessDenied(view string)
	RecordTaskCreated()
	RecordModeration(kind, status string)
}

type Collector struct {
	verifications   *prometheus.CounterVec
	sessionsCreated *prometheus.CounterVec
	sessionsCorrupt prometheus.Counter
	accessDenied    *prometheus.CounterVec
	tasksCreated    prometheus.Counter
	moderation      *prometheus.CounterVec
}

var _ Recorder = (*Collector)(nil)

func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		verifications: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "campusmate_verifications_total",
			Help: "Identity verification attempts by outcome",
		}, []string{"outcome"}),
		sessionsCreated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "campusmate_sessions_created_total",
			Help: "Sessions created by role",
		}, []string{"role"}),
		sessionsCorrupt: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "campusmate_sessions_corrupt_total",
			Help: "Stored sessions discarded as unreadable",
		}),
		accessDenied: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "campusmate_access_denied_total",
			Help: "Protected view mounts bounced to the auth screen",
		}, []string{"view"}),
		tasksCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "campusmate_tasks_created_total",
			Help: "Tasks posted by students",
		}),
		moderation: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "campusmate_moderation_actions_total",
			Help: "Admin status changes by target kind and new status",
		}, []string{"kind", "status"}),
	}
	reg.MustRegister(c.verifications, c.sessionsCreated, c.sessionsCorrupt, c.accessDenied, c.tasksCreated, c.moderation)
	return c
}

func (c *Collector) RecordVerification(outcome string) {
	c.verifications.WithLabelValues(outcome).Inc()
}

func (c *Collector) RecordSessionCreated(role string) {
	c.sessionsCreated.WithLabelValues(role).Inc()
}

func (c *Collector) RecordSessionCorrupt() {
	c.sessionsCorrupt.Inc()
}

func (c *Collector) RecordAccessDenied(view string) {
	c.accessDenied.WithLabelValues(view).Inc()
}

func (c *Collector) RecordTaskCreated() {
	c.tasksCreated.Inc()
}

func (c *Collector) RecordModeration(kind, status string) {
	c.moderation.WithLabelValues(kind, status).Inc()
}

// Handler serves the registry in the Prometheus text format
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

// Nop discards everything
type Nop struct{}

var _ Recorder = Nop{}

func (Nop) RecordVerification(string)       {}
func (Nop) RecordSessionCreated(string)     {}
func (Nop) RecordSessionCorrupt()           {}
func (Nop) RecordAccessDenied(string)       {}
func (Nop) RecordTaskCreated()              {}
func (Nop) RecordModeration(string, string) {}
