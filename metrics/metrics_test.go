package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"loan-eligibility/domain"
)

func counterValue(t *testing.T, r *Recorder, name string, labels map[string]string) float64 {
	t.Helper()

	families, err := r.Registry().Gather()
	require.NoError(t, err)

	for _, f := range families {
		if f.GetName() != name {
			continue
		}
	metric:
		for _, m := range f.GetMetric() {
			for _, lp := range m.GetLabel() {
				if labels[lp.GetName()] != lp.GetValue() {
					continue metric
				}
			}
			return m.GetCounter().GetValue()
		}
	}
	return 0
}

func TestRecorder(t *testing.T) {
	r := NewRecorder()

	r.RecordSubmission("approved", domain.RiskLow)
	r.RecordSubmission("approved", domain.RiskLow)
	r.RecordSubmission("invalid", "")
	r.RecordAdminOperation("login", "denied")
	r.RecordRateLimited("apply")

	assert.Equal(t, 2.0, counterValue(t, r, "loancalc_submissions_total", map[string]string{"outcome": "approved", "risk": "low"}))
	assert.Equal(t, 1.0, counterValue(t, r, "loancalc_submissions_total", map[string]string{"outcome": "invalid", "risk": ""}))
	assert.Equal(t, 1.0, counterValue(t, r, "loancalc_admin_operations_total", map[string]string{"operation": "login", "result": "denied"}))
	assert.Equal(t, 1.0, counterValue(t, r, "loancalc_rate_limited_total", map[string]string{"route": "apply"}))
}

func TestHandler(t *testing.T) {
	r := NewRecorder()
	r.RecordRateLimited("login")

	w := httptest.NewRecorder()
	r.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `loancalc_rate_limited_total{route="login"} 1`)
}
