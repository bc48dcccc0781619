package storage

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/chin-tech/furangel-invoices/internal/common"
	"github.com/chin-tech/furangel-invoices/internal/model"
)

const chargeColumns = `charge_date, description, amount, category,
	raw_animal_name, animal_name, animal_code, resolved,
	test_type, test_performed, test_due, test_comments,
	vaccine_type, vaccine_given, vaccine_due, vaccine_comments,
	med_given, med_name, med_dosage, med_comments`

// SaveCharges inserts a batch of charge records in one transaction.
func (s *SQLiteStorage) SaveCharges(ctx context.Context, charges []model.ChargeRecord) error {
	return s.withTx(ctx, func(tx *sql.Tx) error {
		stmt, err := tx.Prepare(fmt.Sprintf(`INSERT INTO charges (%s)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`, chargeColumns))
		if err != nil {
			return fmt.Errorf("failed to prepare charge insert: %w", err)
		}
		defer stmt.Close()

		for i := range charges {
			if _, err := stmt.Exec(chargeArgs(&charges[i])...); err != nil {
				return fmt.Errorf("failed to insert charge: %w", err)
			}
		}
		return nil
	})
}

// ReplaceCharges deletes every stored charge and saves the given set in
// its place. Used after corrections rewrite or split records.
func (s *SQLiteStorage) ReplaceCharges(ctx context.Context, charges []model.ChargeRecord) error {
	return s.withTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.Exec(`DELETE FROM charges`); err != nil {
			return fmt.Errorf("failed to clear charges: %w", err)
		}
		stmt, err := tx.Prepare(fmt.Sprintf(`INSERT INTO charges (%s)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`, chargeColumns))
		if err != nil {
			return fmt.Errorf("failed to prepare charge insert: %w", err)
		}
		defer stmt.Close()

		for i := range charges {
			if _, err := stmt.Exec(chargeArgs(&charges[i])...); err != nil {
				return fmt.Errorf("failed to insert charge: %w", err)
			}
		}
		return nil
	})
}

// ListCharges returns all stored charges ordered by date.
func (s *SQLiteStorage) ListCharges(ctx context.Context) ([]model.ChargeRecord, error) {
	return s.queryCharges(ctx, fmt.Sprintf(
		`SELECT %s FROM charges ORDER BY charge_date, id`, chargeColumns))
}

// ListUnresolved returns charges whose animal name could not be matched
// against the shelter roster.
func (s *SQLiteStorage) ListUnresolved(ctx context.Context) ([]model.ChargeRecord, error) {
	return s.queryCharges(ctx, fmt.Sprintf(
		`SELECT %s FROM charges WHERE resolved = 0 ORDER BY charge_date, id`, chargeColumns))
}

func (s *SQLiteStorage) queryCharges(ctx context.Context, query string) ([]model.ChargeRecord, error) {
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query charges: %w", err)
	}
	defer rows.Close()

	var charges []model.ChargeRecord
	for rows.Next() {
		c, err := scanCharge(rows)
		if err != nil {
			return nil, err
		}
		charges = append(charges, c)
	}
	return charges, rows.Err()
}

// MarkInvoiceProcessed records that an invoice's charges have been
// extracted, keyed on invoice ID and date. Returns ErrDuplicateEntry if
// the invoice was seen before.
func (s *SQLiteStorage) MarkInvoiceProcessed(ctx context.Context, doc *model.InvoiceDocument, filename string) error {
	_, err := s.db.ExecContext(ctx, `INSERT INTO processed_invoices
		(invoice_id, invoice_date, clinic, filename) VALUES (?, ?, ?, ?)`,
		doc.ID, doc.Date, doc.Clinic, filename)
	if err != nil {
		if isUniqueViolation(err) {
			return common.ErrDuplicateEntry
		}
		return fmt.Errorf("failed to record processed invoice: %w", err)
	}
	return nil
}

// IsInvoiceProcessed reports whether an invoice with this ID and date
// has already been extracted.
func (s *SQLiteStorage) IsInvoiceProcessed(ctx context.Context, invoiceID string, invoiceDate time.Time) (bool, error) {
	var count int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM processed_invoices
		WHERE invoice_id = ? AND invoice_date = ?`, invoiceID, invoiceDate).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("failed to check processed invoice: %w", err)
	}
	return count > 0, nil
}

func chargeArgs(c *model.ChargeRecord) []any {
	var code string
	if c.Resolution.Resolved {
		code = c.Resolution.ShelterCode
	}
	return []any{
		c.Date, c.Description, c.Amount.String(), string(c.Category),
		c.RawAnimalName, c.Resolution.Name, code, c.Resolution.Resolved,
		c.TestType, c.TestPerformed, c.TestDue, c.TestComments,
		c.VaccineType, c.VaccineGiven, c.VaccineDue, c.VaccineComments,
		c.MedicationGiven, c.MedicationName, c.MedicationDosage, c.MedicationNotes,
	}
}

func scanCharge(rows *sql.Rows) (model.ChargeRecord, error) {
	var (
		c        model.ChargeRecord
		amount   string
		category string
		code     sql.NullString
		resolved bool
	)
	err := rows.Scan(
		&c.Date, &c.Description, &amount, &category,
		&c.RawAnimalName, &c.Resolution.Name, &code, &resolved,
		&c.TestType, &c.TestPerformed, &c.TestDue, &c.TestComments,
		&c.VaccineType, &c.VaccineGiven, &c.VaccineDue, &c.VaccineComments,
		&c.MedicationGiven, &c.MedicationName, &c.MedicationDosage, &c.MedicationNotes,
	)
	if err != nil {
		return c, fmt.Errorf("failed to scan charge: %w", err)
	}
	c.Amount, err = decimal.NewFromString(amount)
	if err != nil {
		return c, fmt.Errorf("invalid stored amount %q: %w", amount, err)
	}
	c.Category = model.CostCategory(category)
	c.Resolution.Resolved = resolved
	c.Resolution.ShelterCode = code.String
	return c, nil
}

func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
