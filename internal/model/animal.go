package model

import (
	"regexp"
	"strings"
	"time"
)

var nameNoise = regexp.MustCompile(`[,'"]`)

// ShelterAnimalRecord is one shelter stay, snapshotted from the shelter
// management export at the start of a reconciliation run. The snapshot is
// read-only for the duration of a batch.
type ShelterAnimalRecord struct {
	Name           string // display name, free text
	NormalizedName string // lowercase, punctuation stripped
	ShelterCode    string
	Intake         time.Time
	DaysOnShelter  int
	Departure      time.Time // Intake + DaysOnShelter + 1
}

// NormalizeName lowercases a display name and strips the punctuation the
// shelter system allows in names but invoices never carry.
func NormalizeName(name string) string {
	return strings.TrimSpace(nameNoise.ReplaceAllString(strings.ToLower(name), ""))
}

// ComputeDeparture derives the end of a stay interval from the intake date
// and the recorded days on shelter.
func ComputeDeparture(intake time.Time, days int) time.Time {
	return intake.AddDate(0, 0, days+1)
}

// Contains reports whether the stay interval [Intake, Departure] includes
// the given date.
func (a ShelterAnimalRecord) Contains(date time.Time) bool {
	return !date.Before(a.Intake) && !date.After(a.Departure)
}
