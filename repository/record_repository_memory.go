package repository

import (
	"context"
	"fmt"
	"sync"

	"loan-eligibility/domain"
)

// RecordRepositoryMemory is an in-memory RecordRepository. Ids are never
// reused, matching the SQLite AUTOINCREMENT behaviour.
type RecordRepositoryMemory struct {
	mu     sync.Mutex
	data   []domain.ApplicationRecord
	lastID int64
}

// NewRecordRepositoryMemory creates an empty in-memory record store.
func NewRecordRepositoryMemory() *RecordRepositoryMemory {
	return &RecordRepositoryMemory{
		data: []domain.ApplicationRecord{},
	}
}

func (r *RecordRepositoryMemory) Append(
	ctx context.Context,
	record domain.ApplicationRecord,
) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, fmt.Errorf("append record: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.lastID++
	record.ID = r.lastID
	r.data = append(r.data, record)
	return record.ID, nil
}

func (r *RecordRepositoryMemory) ListAll(ctx context.Context) ([]domain.ApplicationRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("list records: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]domain.ApplicationRecord, len(r.data))
	copy(out, r.data)
	return out, nil
}

func (r *RecordRepositoryMemory) Delete(ctx context.Context, id int64) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("delete record %d: %w", id, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for i, rec := range r.data {
		if rec.ID == id {
			r.data = append(r.data[:i], r.data[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("delete record %d: %w", id, ErrRecordNotFound)
}

func (r *RecordRepositoryMemory) DeleteAll(ctx context.Context) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, fmt.Errorf("delete all records: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	n := int64(len(r.data))
	r.data = []domain.ApplicationRecord{}
	return n, nil
}
