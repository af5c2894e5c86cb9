package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "github.com/mattn/go-sqlite3" // SQLite driver
	"go.uber.org/zap"

	"loan-eligibility/domain"
)

// SQLiteRecordRepository stores records in the single flat `loans` table.
type SQLiteRecordRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewSQLiteRecordRepository opens (creating if needed) the database at
// dbPath. Use ":memory:" for an ephemeral store. Call Migrate before use.
func NewSQLiteRecordRepository(dbPath string, logger *zap.Logger) (*SQLiteRecordRepository, error) {
	if strings.TrimSpace(dbPath) == "" {
		return nil, errors.New("database path cannot be empty")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	if dbPath != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(dbPath), 0750); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// One connection keeps each statement atomic and keeps ":memory:"
	// databases from splitting across connections.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &SQLiteRecordRepository{db: db, logger: logger}, nil
}

// Close closes the database connection.
func (s *SQLiteRecordRepository) Close() error {
	return s.db.Close()
}

func (s *SQLiteRecordRepository) Append(ctx context.Context, record domain.ApplicationRecord) (int64, error) {
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO loans
			(name, age, income, loan_amt, loan_term, emi, total_interest, total_payment, risk)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		record.Name,
		record.Age,
		record.MonthlyIncome,
		record.LoanAmount,
		record.LoanTermYears,
		record.EMI,
		record.TotalInterest,
		record.TotalPayment,
		string(record.RiskCategory),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to insert record: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to read record id: %w", err)
	}

	s.logger.Debug("record appended",
		zap.String("op", "repository.Append"),
		zap.Int64("id", id),
	)
	return id, nil
}

func (s *SQLiteRecordRepository) ListAll(ctx context.Context) ([]domain.ApplicationRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, age, income, loan_amt, loan_term, emi, total_interest, total_payment, risk
		FROM loans
		ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query records: %w", err)
	}
	defer func() { _ = rows.Close() }()

	records := []domain.ApplicationRecord{}
	for rows.Next() {
		var (
			rec  domain.ApplicationRecord
			risk string
		)
		if err := rows.Scan(
			&rec.ID,
			&rec.Name,
			&rec.Age,
			&rec.MonthlyIncome,
			&rec.LoanAmount,
			&rec.LoanTermYears,
			&rec.EMI,
			&rec.TotalInterest,
			&rec.TotalPayment,
			&risk,
		); err != nil {
			return nil, fmt.Errorf("failed to scan record: %w", err)
		}

		category, err := domain.ParseRiskCategory(risk)
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", rec.ID, err)
		}
		rec.RiskCategory = category
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate records: %w", err)
	}

	return records, nil
}

func (s *SQLiteRecordRepository) Delete(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM loans WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete record %d: %w", id, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("delete record %d: %w", id, ErrRecordNotFound)
	}
	return nil
}

func (s *SQLiteRecordRepository) DeleteAll(ctx context.Context) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM loans`)
	if err != nil {
		return 0, fmt.Errorf("failed to delete records: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to read affected rows: %w", err)
	}

	s.logger.Info("all records deleted",
		zap.String("op", "repository.DeleteAll"),
		zap.Int64("count", n),
	)
	return n, nil
}
