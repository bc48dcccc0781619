package model

import (
	"fmt"
	"time"
)

// InvoiceDocument is one parsed invoice: its identity plus the charge
// records extracted from its itemized sections. It exists only between
// dispatch and charge emission; nothing persists it as a unit.
type InvoiceDocument struct {
	Clinic  string
	Abbrev  string
	ID      string
	Date    time.Time
	Charges []ChargeRecord
}

// Filename is the canonical archive name for the source PDF, derived once
// the invoice id and date are known.
func (d *InvoiceDocument) Filename() string {
	return fmt.Sprintf("%s_%s_%s.pdf", d.Abbrev, d.ID, d.Date.Format("2006-01-02"))
}
