package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
)

// ExpectedSchemaVersion is the latest schema version the application
// expects. If the database cannot be migrated to this version, it's a
// fatal error.
const ExpectedSchemaVersion = 2

// Migration represents a database schema migration.
type Migration struct {
	Up          func(*sql.Tx) error
	Description string
	Version     int
}

var migrations = []Migration{
	{
		Version:     1,
		Description: "Initial schema",
		Up: func(tx *sql.Tx) error {
			queries := []string{
				`CREATE TABLE IF NOT EXISTS charges (
					id INTEGER PRIMARY KEY AUTOINCREMENT,
					charge_date DATETIME NOT NULL,
					description TEXT NOT NULL,
					amount TEXT NOT NULL,
					category TEXT NOT NULL,
					raw_animal_name TEXT NOT NULL,
					animal_name TEXT NOT NULL,
					animal_code TEXT,
					resolved INTEGER NOT NULL DEFAULT 0,
					created_at DATETIME DEFAULT CURRENT_TIMESTAMP
				)`,
				`CREATE INDEX idx_charges_date ON charges(charge_date)`,
				`CREATE INDEX idx_charges_resolved ON charges(resolved)`,

				`CREATE TABLE IF NOT EXISTS processed_invoices (
					invoice_id TEXT NOT NULL,
					invoice_date DATETIME NOT NULL,
					clinic TEXT NOT NULL,
					filename TEXT NOT NULL,
					processed_at DATETIME DEFAULT CURRENT_TIMESTAMP,
					PRIMARY KEY (invoice_id, invoice_date)
				)`,
			}
			for _, q := range queries {
				if _, err := tx.Exec(q); err != nil {
					return err
				}
			}
			return nil
		},
	},
	{
		Version:     2,
		Description: "Structured treatment fields on charges",
		Up: func(tx *sql.Tx) error {
			columns := []string{
				"test_type", "test_performed", "test_due", "test_comments",
				"vaccine_type", "vaccine_given", "vaccine_due", "vaccine_comments",
				"med_given", "med_name", "med_dosage", "med_comments",
			}
			for _, col := range columns {
				q := fmt.Sprintf(`ALTER TABLE charges ADD COLUMN %s TEXT NOT NULL DEFAULT ''`, col)
				if _, err := tx.Exec(q); err != nil {
					return err
				}
			}
			return nil
		},
	},
}

// Migrate applies all pending migrations.
func (s *SQLiteStorage) Migrate(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS schema_versions (
		version INTEGER PRIMARY KEY,
		applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
	)`); err != nil {
		return fmt.Errorf("failed to create schema_versions table: %w", err)
	}

	current, err := s.schemaVersion(ctx)
	if err != nil {
		return err
	}

	for _, m := range migrations {
		if m.Version <= current {
			continue
		}
		slog.Info("applying migration", "version", m.Version, "description", m.Description)
		if err := s.withTx(ctx, func(tx *sql.Tx) error {
			if err := m.Up(tx); err != nil {
				return fmt.Errorf("migration %d failed: %w", m.Version, err)
			}
			_, err := tx.Exec(`INSERT INTO schema_versions (version) VALUES (?)`, m.Version)
			return err
		}); err != nil {
			return err
		}
	}
	return nil
}

func (s *SQLiteStorage) schemaVersion(ctx context.Context) (int, error) {
	var version sql.NullInt64
	err := s.db.QueryRowContext(ctx, `SELECT MAX(version) FROM schema_versions`).Scan(&version)
	if err != nil {
		return 0, fmt.Errorf("failed to read schema version: %w", err)
	}
	return int(version.Int64), nil
}
