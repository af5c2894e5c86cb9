package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"loan-eligibility/auth"
	"loan-eligibility/repository"
	"loan-eligibility/service"
)

const adminPassword = "admin123"

type testServer struct {
	handler http.Handler
	records *repository.RecordRepositoryMemory
	limiter *RateLimiter
}

func newTestServer(t *testing.T, passwordHash string, limiter *RateLimiter) *testServer {
	t.Helper()

	records := repository.NewRecordRepositoryMemory()
	tokens, err := auth.NewTokenIssuer("test-secret", "loancalc-test", time.Hour)
	require.NoError(t, err)

	loans := service.NewLoanService(records, nil, nil)
	admin := service.NewAdminService(
		records,
		auth.NewHashAuthenticator(passwordHash),
		tokens,
		repository.NewMemorySessionRepository(),
		nil,
	)

	return &testServer{
		handler: NewRouter(RouterDeps{
			Loans:   NewLoanHandler(loans, nil),
			Admin:   NewAdminHandler(admin, nil, nil),
			Limiter: limiter,
		}),
		records: records,
		limiter: limiter,
	}
}

func (s *testServer) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if raw, ok := body.(string); ok {
			buf.WriteString(raw)
		} else {
			require.NoError(t, json.NewEncoder(&buf).Encode(body))
		}
	}

	req := httptest.NewRequest(method, path, &buf)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.handler.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()

	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v))
	return v
}
