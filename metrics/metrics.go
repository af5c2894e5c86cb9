// Package metrics exposes Prometheus counters for submissions and admin
// actions.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"loan-eligibility/domain"
)

// Recorder owns the application's collectors on its own registry, so tests
// can create as many as they like.
type Recorder struct {
	registry    *prometheus.Registry
	submissions *prometheus.CounterVec
	adminOps    *prometheus.CounterVec
	rateLimited *prometheus.CounterVec
}

func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		submissions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "loancalc",
			Name:      "submissions_total",
			Help:      "Loan applications by outcome and risk category.",
		}, []string{"outcome", "risk"}),
		adminOps: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "loancalc",
			Name:      "admin_operations_total",
			Help:      "Admin operations by name and result.",
		}, []string{"operation", "result"}),
		rateLimited: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "loancalc",
			Name:      "rate_limited_total",
			Help:      "Requests rejected by the rate limiter, by route.",
		}, []string{"route"}),
	}
	r.registry.MustRegister(r.submissions, r.adminOps, r.rateLimited)
	return r
}

func (r *Recorder) RecordSubmission(outcome string, category domain.RiskCategory) {
	r.submissions.WithLabelValues(outcome, string(category)).Inc()
}

func (r *Recorder) RecordAdminOperation(operation, result string) {
	r.adminOps.WithLabelValues(operation, result).Inc()
}

func (r *Recorder) RecordRateLimited(route string) {
	r.rateLimited.WithLabelValues(route).Inc()
}

// Registry is exposed for tests.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// Handler serves the registry in the Prometheus text format.
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}
