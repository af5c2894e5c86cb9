package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"loan-eligibility/domain"
	"loan-eligibility/service"
)

const maxApplyBodyBytes = 16 * 1024

type LoanHandler struct {
	service *service.LoanService
	logger  *zap.Logger
}

func NewLoanHandler(service *service.LoanService, logger *zap.Logger) *LoanHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LoanHandler{service: service, logger: logger}
}

type applyResponse struct {
	service.Decision
	Error string `json:"error,omitempty"`
}

// Apply runs one application through the pipeline.
//
//	200 eligible and saved, or ineligible (eligible=false with reasons)
//	422 form bounds or validation failed
//	500 computed but not saved; the result is still returned
func (h *LoanHandler) Apply(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxApplyBodyBytes)

	var input domain.ApplicantInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		h.logger.Debug("invalid request body",
			zap.String("op", "http.Apply"),
			zap.Error(err),
		)
		respondError(h.logger, w, http.StatusBadRequest, "invalid request body")
		return
	}

	if errs := service.CheckFormBounds(input); len(errs) > 0 {
		writeJSON(h.logger, w, http.StatusUnprocessableEntity, applyResponse{
			Decision: service.Decision{Errors: errs},
			Error:    service.ValidationErrors(errs).Error(),
		})
		return
	}

	decision, err := h.service.Submit(r.Context(), input)

	var (
		verrs      service.ValidationErrors
		ineligible *service.IneligibleError
		storageErr *service.StorageError
	)
	switch {
	case err == nil:
		writeJSON(h.logger, w, http.StatusOK, applyResponse{Decision: decision})
	case errors.As(err, &verrs):
		writeJSON(h.logger, w, http.StatusUnprocessableEntity, applyResponse{Decision: decision, Error: err.Error()})
	case errors.As(err, &ineligible):
		writeJSON(h.logger, w, http.StatusOK, applyResponse{Decision: decision, Error: err.Error()})
	case errors.As(err, &storageErr):
		writeJSON(h.logger, w, http.StatusInternalServerError, applyResponse{
			Decision: decision,
			Error:    "result computed but could not be saved",
		})
	default:
		h.logger.Error("unexpected submission error",
			zap.String("op", "http.Apply"),
			zap.Error(err),
		)
		respondError(h.logger, w, http.StatusInternalServerError, "internal server error")
	}
}
