package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"loan-eligibility/auth"
	"loan-eligibility/domain"
	"loan-eligibility/repository"
	"loan-eligibility/service"
)

const maxLoginBodyBytes = 4 * 1024

type sessionKey struct{}

// AdminOperationHook is told the result of every admin operation.
type AdminOperationHook func(operation, result string)

type AdminHandler struct {
	service *service.AdminService
	logger  *zap.Logger
	hook    AdminOperationHook
}

func NewAdminHandler(service *service.AdminService, logger *zap.Logger, hook AdminOperationHook) *AdminHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	if hook == nil {
		hook = func(string, string) {}
	}
	return &AdminHandler{service: service, logger: logger, hook: hook}
}

type loginRequest struct {
	Password string `json:"password"`
}

type deleteAllResponse struct {
	Deleted int64 `json:"deleted"`
}

func (h *AdminHandler) Login(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxLoginBodyBytes)

	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(h.logger, w, http.StatusBadRequest, "invalid request body")
		return
	}

	session, err := h.service.Login(r.Context(), req.Password)
	switch {
	case err == nil:
		h.hook("login", "ok")
		writeJSON(h.logger, w, http.StatusOK, session)
	case errors.Is(err, auth.ErrNotConfigured):
		h.hook("login", "not_configured")
		respondError(h.logger, w, http.StatusServiceUnavailable, err.Error())
	case errors.Is(err, service.ErrInvalidCredential):
		h.hook("login", "denied")
		respondError(h.logger, w, http.StatusUnauthorized, err.Error())
	default:
		h.fail(w, "login", err)
	}
}

// RequireSession resolves the bearer token into a Session for the wrapped
// handler, or answers 401.
func (h *AdminHandler) RequireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := bearerToken(r)
		if !ok {
			respondError(h.logger, w, http.StatusUnauthorized, "missing bearer token")
			return
		}

		session, err := h.service.Resume(r.Context(), token)
		if err != nil {
			if errors.Is(err, service.ErrUnauthorized) {
				respondError(h.logger, w, http.StatusUnauthorized, "unauthorized")
				return
			}
			h.fail(w, "resume", err)
			return
		}

		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), sessionKey{}, session)))
	})
}

func (h *AdminHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Logout(r.Context(), sessionFrom(r)); err != nil {
		h.fail(w, "logout", err)
		return
	}
	h.hook("logout", "ok")
	w.WriteHeader(http.StatusNoContent)
}

func (h *AdminHandler) ListRecords(w http.ResponseWriter, r *http.Request) {
	records, err := h.service.ListRecords(r.Context(), sessionFrom(r))
	if err != nil {
		h.fail(w, "list", err)
		return
	}
	h.hook("list", "ok")
	writeJSON(h.logger, w, http.StatusOK, records)
}

func (h *AdminHandler) Metrics(w http.ResponseWriter, r *http.Request) {
	m, err := h.service.Metrics(r.Context(), sessionFrom(r))
	if err != nil {
		h.fail(w, "metrics", err)
		return
	}
	h.hook("metrics", "ok")
	writeJSON(h.logger, w, http.StatusOK, m)
}

func (h *AdminHandler) DeleteRecord(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil || id <= 0 {
		respondError(h.logger, w, http.StatusBadRequest, "invalid record id")
		return
	}

	err = h.service.DeleteRecord(r.Context(), sessionFrom(r), id)
	if errors.Is(err, repository.ErrRecordNotFound) {
		h.hook("delete", "not_found")
		respondError(h.logger, w, http.StatusNotFound, "record not found")
		return
	}
	if err != nil {
		h.fail(w, "delete", err)
		return
	}
	h.hook("delete", "ok")
	w.WriteHeader(http.StatusNoContent)
}

// DeleteAllRecords needs ?confirm=true; the store itself never asks.
func (h *AdminHandler) DeleteAllRecords(w http.ResponseWriter, r *http.Request) {
	confirmed, _ := strconv.ParseBool(r.URL.Query().Get("confirm"))

	n, err := h.service.DeleteAllRecords(r.Context(), sessionFrom(r), confirmed)
	if errors.Is(err, service.ErrConfirmationRequired) {
		h.hook("delete_all", "unconfirmed")
		respondError(h.logger, w, http.StatusConflict, err.Error())
		return
	}
	if err != nil {
		h.fail(w, "delete_all", err)
		return
	}
	h.hook("delete_all", "ok")
	writeJSON(h.logger, w, http.StatusOK, deleteAllResponse{Deleted: n})
}

func (h *AdminHandler) fail(w http.ResponseWriter, operation string, err error) {
	if errors.Is(err, service.ErrUnauthorized) {
		h.hook(operation, "unauthorized")
		respondError(h.logger, w, http.StatusUnauthorized, "unauthorized")
		return
	}
	h.hook(operation, "error")
	h.logger.Error("admin operation failed",
		zap.String("op", "http.AdminHandler"),
		zap.String("operation", operation),
		zap.Error(err),
	)
	respondError(h.logger, w, http.StatusInternalServerError, err.Error())
}

func sessionFrom(r *http.Request) domain.Session {
	s, _ := r.Context().Value(sessionKey{}).(domain.Session)
	return s
}

func bearerToken(r *http.Request) (string, bool) {
	h := r.Header.Get("Authorization")
	const prefix = "Bearer "
	if len(h) <= len(prefix) || !strings.EqualFold(h[:len(prefix)], prefix) {
		return "", false
	}
	return strings.TrimSpace(h[len(prefix):]), true
}
