package repository

import (
	"context"
	"errors"

	"loan-eligibility/domain"
)

var ErrRecordNotFound = errors.New("record not found")

// RecordRepository persists eligible applications. Every method is atomic on
// its own; callers get no cross-call transactions.
type RecordRepository interface {
	// Append stores record and returns its new id. record.ID is ignored.
	Append(ctx context.Context, record domain.ApplicationRecord) (int64, error)
	// ListAll returns every record in creation order.
	ListAll(ctx context.Context) ([]domain.ApplicationRecord, error)
	// Delete removes one record, or returns ErrRecordNotFound.
	Delete(ctx context.Context, id int64) error
	// DeleteAll removes every record and reports how many were removed.
	// Confirmation is the caller's responsibility.
	DeleteAll(ctx context.Context) (int64, error)
}
