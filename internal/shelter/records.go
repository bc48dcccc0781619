// Package shelter ingests the shelter management system's animal export
// into the in-memory record snapshot the matcher runs against.
package shelter

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/gocarina/gocsv"

	"github.com/chin-tech/furangel-invoices/internal/model"
)

// shelterRow mirrors the export's column names. Extra columns in the
// report are ignored.
type shelterRow struct {
	AnimalName    string `csv:"ANIMALNAME"`
	ShelterCode   string `csv:"SHELTERCODE"`
	DateBroughtIn string `csv:"DATEBROUGHTIN"`
	TotalDays     string `csv:"TOTALDAYSONSHELTER"`
}

// intakeDateFormats covers the mixed formats the report emits for the
// intake column.
var intakeDateFormats = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"1/2/2006",
	"1-2-2006",
	"01-02-06",
}

// LoadRecords parses the animal export into a snapshot, computing each
// stay's departure date and normalized name. The export sometimes carries
// preamble bytes before the header row; everything before the first quote
// is discarded. The returned slice is sorted by departure date and must be
// treated as read-only for the duration of a processing batch.
func LoadRecords(r io.Reader) ([]model.ShelterAnimalRecord, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read shelter export: %w", err)
	}
	text := string(data)
	if i := strings.IndexByte(text, '"'); i > 0 {
		text = text[i:]
	}
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("shelter export was empty")
	}

	var rows []*shelterRow
	if err := gocsv.UnmarshalString(text, &rows); err != nil {
		return nil, fmt.Errorf("failed to parse shelter export: %w", err)
	}

	records := make([]model.ShelterAnimalRecord, 0, len(rows))
	for _, row := range rows {
		name := strings.TrimSpace(row.AnimalName)
		if name == "" {
			continue
		}
		intake, err := parseIntakeDate(row.DateBroughtIn)
		if err != nil {
			return nil, fmt.Errorf("animal %q: %w", name, err)
		}
		days, err := parseDays(row.TotalDays)
		if err != nil {
			return nil, fmt.Errorf("animal %q: %w", name, err)
		}
		records = append(records, model.ShelterAnimalRecord{
			Name:           name,
			NormalizedName: model.NormalizeName(name),
			ShelterCode:    strings.TrimSpace(row.ShelterCode),
			Intake:         intake,
			DaysOnShelter:  days,
			Departure:      model.ComputeDeparture(intake, days),
		})
	}

	sort.SliceStable(records, func(i, j int) bool {
		return records[i].Departure.Before(records[j].Departure)
	})
	return records, nil
}

func parseIntakeDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range intakeDateFormats {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unparseable intake date %q", s)
}

func parseDays(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	if days, err := strconv.Atoi(s); err == nil {
		return days, nil
	}
	// Some report revisions emit the day count as a float.
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return int(f), nil
	}
	return 0, fmt.Errorf("unparseable days on shelter %q", s)
}
