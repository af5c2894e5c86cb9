package service

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"loan-eligibility/domain"
	"loan-eligibility/repository"
)

// Submission outcomes, used for logs and metrics.
const (
	OutcomeInvalid      = "invalid"
	OutcomeIneligible   = "ineligible"
	OutcomeApproved     = "approved"
	OutcomeStorageError = "storage_error"
)

// OutcomeRecorder counts submission outcomes.
type OutcomeRecorder interface {
	RecordSubmission(outcome string, category domain.RiskCategory)
}

type nopRecorder struct{}

func (nopRecorder) RecordSubmission(string, domain.RiskCategory) {}

// Decision is everything the pipeline produced for one submission. Fields
// are filled in as far as the pipeline got.
type Decision struct {
	Errors    []ValidationError         `json:"errors,omitempty"`
	Eligible  bool                      `json:"eligible"`
	Reasons   []string                  `json:"reasons,omitempty"`
	Result    *domain.ComputationResult `json:"result,omitempty"`
	Risk      *RiskAssessment           `json:"risk,omitempty"`
	RecordID  int64                     `json:"record_id,omitempty"`
	Persisted bool                      `json:"persisted"`
}

type LoanService struct {
	repo     repository.RecordRepository
	terms    domain.LoanTerms
	logger   *zap.Logger
	recorder OutcomeRecorder
}

// NewLoanService creates a LoanService that saves into repo.
func NewLoanService(
	repo repository.RecordRepository,
	logger *zap.Logger,
	recorder OutcomeRecorder,
) *LoanService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if recorder == nil {
		recorder = nopRecorder{}
	}
	return &LoanService{
		repo:     repo,
		terms:    domain.DefaultLoanTerms,
		logger:   logger,
		recorder: recorder,
	}
}

// Compute runs the EMI calculator and the risk scorer for an input that has
// already passed validation and the eligibility gate.
func (s *LoanService) Compute(input domain.ApplicantInput) (domain.ComputationResult, RiskAssessment) {
	emi := ComputeEMI(input.LoanAmount, s.terms.AnnualInterestRate, input.LoanTermYears)
	risk := ScoreRisk(
		input.Age,
		input.MonthlyIncome,
		input.LoanAmount,
		input.LoanTermYears,
		s.terms.AnnualInterestRate,
	)

	return domain.ComputationResult{
		EMI:           emi.EMI,
		TotalInterest: emi.TotalInterest,
		TotalPayment:  emi.TotalPayment,
		RiskCategory:  risk.Category,
	}, risk
}

// Submit runs validate → eligibility → compute → persist.
//
// The returned error is a ValidationErrors, *IneligibleError or
// *StorageError. On a StorageError the Decision still carries the computed
// result with Persisted=false. Nothing is retried.
func (s *LoanService) Submit(ctx context.Context, input domain.ApplicantInput) (Decision, error) {
	var d Decision

	if errs := Validate(input); len(errs) > 0 {
		d.Errors = errs
		s.logger.Info("application rejected by validation",
			zap.String("op", "service.Submit"),
			zap.Int("errors", len(errs)),
		)
		s.recorder.RecordSubmission(OutcomeInvalid, "")
		return d, ValidationErrors(errs)
	}

	eligible, reasons := CheckEligibility(input.Age, input.MonthlyIncome)
	d.Eligible = eligible
	if !eligible {
		d.Reasons = reasons
		s.logger.Info("applicant not eligible",
			zap.String("op", "service.Submit"),
			zap.Strings("reasons", reasons),
		)
		s.recorder.RecordSubmission(OutcomeIneligible, "")
		return d, &IneligibleError{Reasons: reasons}
	}

	result, risk := s.Compute(input)
	d.Result = &result
	d.Risk = &risk

	id, err := s.repo.Append(ctx, domain.NewApplicationRecord(input, result))
	if err != nil {
		s.logger.Error("failed to persist application",
			zap.String("op", "service.Submit"),
			zap.Error(err),
		)
		s.recorder.RecordSubmission(OutcomeStorageError, result.RiskCategory)
		return d, &StorageError{Err: err}
	}

	d.RecordID = id
	d.Persisted = true
	s.logger.Info("application saved",
		zap.String("op", "service.Submit"),
		zap.Int64("id", id),
		zap.String("risk", string(result.RiskCategory)),
	)
	s.recorder.RecordSubmission(OutcomeApproved, result.RiskCategory)
	return d, nil
}

// IsUserError reports whether err is a recoverable, applicant-facing outcome.
func IsUserError(err error) bool {
	var verrs ValidationErrors
	var ineligible *IneligibleError
	return errors.As(err, &verrs) || errors.As(err, &ineligible)
}
