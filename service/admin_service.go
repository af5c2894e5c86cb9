package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"loan-eligibility/auth"
	"loan-eligibility/domain"
	"loan-eligibility/repository"
)

const sessionActive = "active"

// AdminService is the record-management surface. Every operation takes an
// explicit Session obtained from Login; nothing about the admin state lives
// in the service itself beyond the session repository.
type AdminService struct {
	repo          repository.RecordRepository
	authenticator auth.Authenticator
	tokens        *auth.TokenIssuer
	sessions      repository.SessionRepository
	logger        *zap.Logger
}

func NewAdminService(
	repo repository.RecordRepository,
	authenticator auth.Authenticator,
	tokens *auth.TokenIssuer,
	sessions repository.SessionRepository,
	logger *zap.Logger,
) *AdminService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AdminService{
		repo:          repo,
		authenticator: authenticator,
		tokens:        tokens,
		sessions:      sessions,
		logger:        logger,
	}
}

// Login checks credential and opens a session. It returns
// auth.ErrNotConfigured when no admin password exists and
// ErrInvalidCredential on a mismatch.
func (s *AdminService) Login(ctx context.Context, credential string) (domain.Session, error) {
	ok, err := s.authenticator.Verify(credential)
	if err != nil {
		return domain.Session{}, err
	}
	if !ok {
		s.logger.Warn("admin login failed",
			zap.String("op", "service.Login"),
		)
		return domain.Session{}, ErrInvalidCredential
	}

	token, id, expiresAt, err := s.tokens.Issue()
	if err != nil {
		return domain.Session{}, err
	}
	if err := s.sessions.Set(ctx, id, sessionActive, s.tokens.Expiration()); err != nil {
		return domain.Session{}, fmt.Errorf("failed to store session: %w", err)
	}

	s.logger.Info("admin logged in",
		zap.String("op", "service.Login"),
		zap.String("session", id),
	)
	return domain.Session{ID: id, Token: token, ExpiresAt: expiresAt}, nil
}

// Resume rebuilds a Session from a bearer token, checking that it has not
// been revoked.
func (s *AdminService) Resume(ctx context.Context, token string) (domain.Session, error) {
	claims, err := s.tokens.Parse(token)
	if err != nil {
		return domain.Session{}, fmt.Errorf("%w: %v", ErrUnauthorized, err)
	}

	_, ok, err := s.sessions.Get(ctx, claims.ID)
	if err != nil {
		return domain.Session{}, fmt.Errorf("failed to look up session: %w", err)
	}
	if !ok {
		return domain.Session{}, fmt.Errorf("%w: session revoked or expired", ErrUnauthorized)
	}

	return domain.Session{ID: claims.ID, Token: token, ExpiresAt: claims.ExpiresAt.Time}, nil
}

// Logout revokes the session.
func (s *AdminService) Logout(ctx context.Context, session domain.Session) error {
	if err := s.authorize(ctx, session); err != nil {
		return err
	}
	if err := s.sessions.Delete(ctx, session.ID); err != nil {
		return fmt.Errorf("failed to revoke session: %w", err)
	}
	s.logger.Info("admin logged out",
		zap.String("op", "service.Logout"),
		zap.String("session", session.ID),
	)
	return nil
}

func (s *AdminService) authorize(ctx context.Context, session domain.Session) error {
	if session.Token == "" {
		return ErrUnauthorized
	}
	resumed, err := s.Resume(ctx, session.Token)
	if err != nil {
		return err
	}
	if session.ID != "" && session.ID != resumed.ID {
		return ErrUnauthorized
	}
	return nil
}

// ListRecords returns every stored record in creation order.
func (s *AdminService) ListRecords(ctx context.Context, session domain.Session) ([]domain.ApplicationRecord, error) {
	if err := s.authorize(ctx, session); err != nil {
		return nil, err
	}
	records, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load records: %w", err)
	}
	return records, nil
}

// Metrics aggregates the stored records: applicant count, total and average
// loan amount, and the per-applicant loan distribution.
func (s *AdminService) Metrics(ctx context.Context, session domain.Session) (domain.RecordMetrics, error) {
	records, err := s.ListRecords(ctx, session)
	if err != nil {
		return domain.RecordMetrics{}, err
	}
	return ComputeMetrics(records), nil
}

// ComputeMetrics sums with decimal arithmetic so totals over many records do
// not drift.
func ComputeMetrics(records []domain.ApplicationRecord) domain.RecordMetrics {
	m := domain.RecordMetrics{
		TotalApplicants: len(records),
		Distribution:    make([]domain.LoanDistribution, 0, len(records)),
	}
	if len(records) == 0 {
		return m
	}

	total := decimal.Zero
	for _, rec := range records {
		total = total.Add(decimal.NewFromFloat(rec.LoanAmount))
		m.Distribution = append(m.Distribution, domain.LoanDistribution{
			ID:         rec.ID,
			Name:       rec.Name,
			LoanAmount: rec.LoanAmount,
		})
	}

	avg := total.Div(decimal.NewFromInt(int64(len(records))))
	m.TotalLoanAmount = total.Round(2).InexactFloat64()
	m.AverageLoanAmount = avg.Round(2).InexactFloat64()
	return m
}

// DeleteRecord removes one record. A missing id yields
// repository.ErrRecordNotFound and leaves the store unchanged.
func (s *AdminService) DeleteRecord(ctx context.Context, session domain.Session, id int64) error {
	if err := s.authorize(ctx, session); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		if !errors.Is(err, repository.ErrRecordNotFound) {
			s.logger.Error("failed to delete record",
				zap.String("op", "service.DeleteRecord"),
				zap.Int64("id", id),
				zap.Error(err),
			)
		}
		return err
	}
	s.logger.Info("record deleted",
		zap.String("op", "service.DeleteRecord"),
		zap.Int64("id", id),
	)
	return nil
}

// DeleteAllRecords wipes the store. confirmed must reflect an explicit
// confirmation obtained from the admin.
func (s *AdminService) DeleteAllRecords(ctx context.Context, session domain.Session, confirmed bool) (int64, error) {
	if err := s.authorize(ctx, session); err != nil {
		return 0, err
	}
	if !confirmed {
		return 0, ErrConfirmationRequired
	}
	n, err := s.repo.DeleteAll(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to delete records: %w", err)
	}
	s.logger.Warn("all records deleted",
		zap.String("op", "service.DeleteAllRecords"),
		zap.Int64("count", n),
	)
	return n, nil
}
