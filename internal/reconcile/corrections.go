// Package reconcile applies human-supplied corrections to unresolved
// charges, including splitting one ambiguous charge across the several
// animals it actually covered.
package reconcile

import (
	"regexp"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/chin-tech/furangel-invoices/internal/model"
)

// provenanceID pulls the invoice id out of the description prefix
// "[clinic - id - date] " every extractor writes.
var provenanceID = regexp.MustCompile(` - (\S+) - \d{4}-\d{2}-\d{2}\]`)

// GroupKey identifies the charges a single correction covers: every line
// for the same raw name on the same invoice was mis-resolved the same way.
type GroupKey struct {
	RawName   string
	InvoiceID string
}

// KeyFor derives the correction group for a charge.
func KeyFor(rec model.ChargeRecord) GroupKey {
	key := GroupKey{RawName: rec.RawAnimalName}
	if m := provenanceID.FindStringSubmatch(rec.Description); m != nil {
		key.InvoiceID = m[1]
	}
	return key
}

// ChosenAnimal is one reviewer-selected animal.
type ChosenAnimal struct {
	Name        string
	ShelterCode string
}

// Correction maps one unresolved group to its chosen animal or animals.
type Correction struct {
	Key     GroupKey
	Animals []ChosenAnimal
}

// Apply rewrites the charge set with the given corrections. A group
// corrected to one animal keeps its records with the resolution rewritten
// in place. A group corrected to several animals — one charge line that
// covered a multi-pet visit — is replaced: each original record is split
// into one record per animal with the amount divided evenly, remainder
// cents going to the earliest splits so every group's total is preserved
// exactly. Charges outside any correction pass through untouched.
func Apply(charges []model.ChargeRecord, corrections []Correction) []model.ChargeRecord {
	byKey := make(map[GroupKey]Correction, len(corrections))
	for _, c := range corrections {
		if len(c.Animals) > 0 {
			byKey[c.Key] = c
		}
	}

	out := make([]model.ChargeRecord, 0, len(charges))
	var split []model.ChargeRecord
	for _, rec := range charges {
		correction, ok := byKey[KeyFor(rec)]
		if !ok {
			out = append(out, rec)
			continue
		}
		if len(correction.Animals) == 1 {
			chosen := correction.Animals[0]
			rec.Resolution = model.ResolvedAnimal(chosen.Name, chosen.ShelterCode)
			out = append(out, rec)
			continue
		}
		shares := splitEven(rec.Amount, len(correction.Animals))
		for i, chosen := range correction.Animals {
			part := rec
			part.Amount = shares[i]
			part.Resolution = model.ResolvedAnimal(chosen.Name, chosen.ShelterCode)
			split = append(split, part)
		}
	}
	return append(out, split...)
}

// splitEven divides an amount into n cent-exact shares summing to the
// original.
func splitEven(amount decimal.Decimal, n int) []decimal.Decimal {
	cents := amount.Mul(decimal.NewFromInt(100)).Round(0).IntPart()
	base := cents / int64(n)
	remainder := cents % int64(n)
	shares := make([]decimal.Decimal, n)
	for i := range shares {
		c := base
		if int64(i) < remainder {
			c++
		}
		shares[i] = decimal.New(c, -2)
	}
	return shares
}

// Prune drops records that carry no information: uncategorized lines with
// a zero amount. Priced lines always survive, categorized or not.
func Prune(charges []model.ChargeRecord) []model.ChargeRecord {
	out := make([]model.ChargeRecord, 0, len(charges))
	for _, rec := range charges {
		if rec.Category == model.CategoryOther && rec.Amount.IsZero() {
			continue
		}
		out = append(out, rec)
	}
	return out
}

// SortByDate orders charges chronologically for upload, preserving the
// original order within a day.
func SortByDate(charges []model.ChargeRecord) {
	sort.SliceStable(charges, func(i, j int) bool {
		return charges[i].Date.Before(charges[j].Date)
	})
}

// Unresolved returns the charges still awaiting correction.
func Unresolved(charges []model.ChargeRecord) []model.ChargeRecord {
	var out []model.ChargeRecord
	for _, rec := range charges {
		if !rec.Resolution.Resolved {
			out = append(out, rec)
		}
	}
	return out
}
