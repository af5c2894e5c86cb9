package http

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

// RouterDeps is what NewRouter wires together. Limiter and Metrics are
// optional.
type RouterDeps struct {
	Loans       *LoanHandler
	Admin       *AdminHandler
	Limiter     *RateLimiter
	Metrics     http.Handler
	OnRateLimit RateLimitHook
	Logger      *zap.Logger
}

// NewRouter builds the HTTP surface: the public apply endpoint, the
// session-gated admin endpoints, health and metrics.
func NewRouter(deps RouterDeps) http.Handler {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	limit := func(route string, h http.Handler) http.Handler {
		if deps.Limiter == nil {
			return h
		}
		return RateLimitMiddleware(deps.Limiter, route, logger, deps.OnRateLimit, h)
	}

	r := mux.NewRouter()
	r.Use(requestLogger(logger))

	r.Handle("/loan/apply", limit("apply", http.HandlerFunc(deps.Loans.Apply))).Methods(http.MethodPost)

	r.Handle("/admin/login", limit("login", http.HandlerFunc(deps.Admin.Login))).Methods(http.MethodPost)

	admin := r.PathPrefix("/admin").Subrouter()
	admin.Use(deps.Admin.RequireSession)
	admin.HandleFunc("/logout", deps.Admin.Logout).Methods(http.MethodPost)
	admin.HandleFunc("/records", deps.Admin.ListRecords).Methods(http.MethodGet)
	admin.HandleFunc("/records", deps.Admin.DeleteAllRecords).Methods(http.MethodDelete)
	admin.HandleFunc("/records/{id:[0-9]+}", deps.Admin.DeleteRecord).Methods(http.MethodDelete)
	admin.HandleFunc("/metrics", deps.Admin.Metrics).Methods(http.MethodGet)

	r.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(logger, w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods(http.MethodGet)

	if deps.Metrics != nil {
		r.Handle("/metrics", deps.Metrics).Methods(http.MethodGet)
	}

	return r
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

func requestLogger(logger *zap.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(rec, r)
			logger.Debug("request served",
				zap.String("op", "http.request"),
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", rec.status),
				zap.Duration("duration", time.Since(start)),
			)
		})
	}
}
