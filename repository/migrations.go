package repository

import (
	"context"
	"database/sql"
	"fmt"

	"go.uber.org/zap"
)

// ExpectedSchemaVersion is the schema version the application needs.
const ExpectedSchemaVersion = 1

type migration struct {
	Up          func(*sql.Tx) error
	Description string
	Version     int
}

var migrations = []migration{
	{
		Version:     1,
		Description: "Create loans table",
		Up: func(tx *sql.Tx) error {
			// AUTOINCREMENT so ids are never handed out twice, even after
			// every row has been deleted.
			_, err := tx.Exec(`
				CREATE TABLE IF NOT EXISTS loans (
					id INTEGER PRIMARY KEY AUTOINCREMENT,
					name TEXT NOT NULL,
					age INTEGER NOT NULL,
					income REAL NOT NULL,
					loan_amt REAL NOT NULL,
					loan_term INTEGER NOT NULL,
					emi REAL NOT NULL,
					total_interest REAL NOT NULL,
					total_payment REAL NOT NULL,
					risk TEXT NOT NULL
				)
			`)
			return err
		},
	},
}

// Migrate applies pending schema migrations, tracked with PRAGMA user_version.
func (s *SQLiteRecordRepository) Migrate(ctx context.Context) error {
	var currentVersion int
	if err := s.db.QueryRowContext(ctx, "PRAGMA user_version").Scan(&currentVersion); err != nil {
		return fmt.Errorf("failed to get schema version: %w", err)
	}

	for _, m := range migrations {
		if m.Version <= currentVersion {
			continue
		}

		tx, err := s.db.BeginTx(ctx, nil)
		if err != nil {
			return fmt.Errorf("failed to begin transaction: %w", err)
		}

		if err := m.Up(tx); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("migration %d failed: %w", m.Version, err)
		}

		if _, err := tx.Exec(fmt.Sprintf("PRAGMA user_version = %d", m.Version)); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("failed to update schema version: %w", err)
		}

		if err := tx.Commit(); err != nil {
			return fmt.Errorf("failed to commit migration %d: %w", m.Version, err)
		}

		s.logger.Info("applied migration",
			zap.String("op", "repository.Migrate"),
			zap.Int("version", m.Version),
			zap.String("description", m.Description),
		)
	}

	var finalVersion int
	if err := s.db.QueryRowContext(ctx, "PRAGMA user_version").Scan(&finalVersion); err != nil {
		return fmt.Errorf("failed to verify final schema version: %w", err)
	}
	if finalVersion != ExpectedSchemaVersion {
		return fmt.Errorf("database schema version mismatch: expected %d, got %d", ExpectedSchemaVersion, finalVersion)
	}

	return nil
}
