// Package match resolves free-text animal names from invoices against the
// shelter record snapshot, windowed by shelter stay intervals.
package match

import (
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/chin-tech/furangel-invoices/internal/model"
)

var namePunctuation = regexp.MustCompile(`['?,"]`)

// CleanName lowercases a raw name and strips the punctuation clinics
// sprinkle into patient names.
func CleanName(raw string) string {
	return strings.TrimSpace(namePunctuation.ReplaceAllString(strings.ToLower(raw), ""))
}

// tokenPattern builds a whole-word alternation from the cleaned name's
// tokens: "max b" matches records containing "max" OR "b" as whole words.
// The OR is deliberate — invoices abbreviate and misspell, and ambiguity
// is resolved by the caller, never by guessing.
func tokenPattern(cleaned string) (*regexp.Regexp, error) {
	tokens := strings.Fields(cleaned)
	escaped := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		escaped = append(escaped, regexp.QuoteMeta(tok))
	}
	return regexp.Compile(`\b(?:` + strings.Join(escaped, `|`) + `)\b`)
}

// Match finds the single shelter record for a raw animal name and charge
// date. Records whose stay interval contains the date are preferred; if
// the date excludes every record the full snapshot is searched instead,
// because charge dates are sometimes slightly off relative to recorded
// stay boundaries. Exact substring matching runs before token matching so
// specificity wins. Zero or multiple candidates yield an unresolved
// result carrying the original name; ambiguity is never auto-resolved.
func Match(rawName string, date time.Time, records []model.ShelterAnimalRecord) model.Resolution {
	cleaned := CleanName(rawName)
	if cleaned == "" {
		return model.UnresolvedAnimal(rawName)
	}

	candidates := windowByDate(records, date)

	if exact := matching(candidates, func(r model.ShelterAnimalRecord) bool {
		return strings.Contains(r.NormalizedName, cleaned)
	}); len(exact) == 1 {
		return model.ResolvedAnimal(exact[0].Name, exact[0].ShelterCode)
	}

	re, err := tokenPattern(cleaned)
	if err != nil {
		return model.UnresolvedAnimal(rawName)
	}
	if tokens := matching(candidates, func(r model.ShelterAnimalRecord) bool {
		return re.MatchString(r.NormalizedName)
	}); len(tokens) == 1 {
		return model.ResolvedAnimal(tokens[0].Name, tokens[0].ShelterCode)
	}

	return model.UnresolvedAnimal(rawName)
}

// Apply attaches a resolution to every charge in place, using each
// charge's own date for windowing. The record snapshot is read-only.
func Apply(charges []model.ChargeRecord, records []model.ShelterAnimalRecord) {
	for i := range charges {
		charges[i].Resolution = Match(charges[i].RawAnimalName, charges[i].Date, records)
	}
}

// windowByDate filters records to stays containing the date, falling open
// to the full set when the filter empties it or no date is supplied.
func windowByDate(records []model.ShelterAnimalRecord, date time.Time) []model.ShelterAnimalRecord {
	if date.IsZero() {
		return records
	}
	windowed := matching(records, func(r model.ShelterAnimalRecord) bool {
		return r.Contains(date)
	})
	if len(windowed) == 0 {
		return records
	}
	return windowed
}

func matching(records []model.ShelterAnimalRecord, keep func(model.ShelterAnimalRecord) bool) []model.ShelterAnimalRecord {
	var out []model.ShelterAnimalRecord
	for _, r := range records {
		if keep(r) {
			out = append(out, r)
		}
	}
	return out
}

// Candidates lists up to n plausible records for an unresolved name, for
// the correction surface. Token matches come first; if none, the snapshot
// is ranked by name similarity so a reviewer always sees something close.
func Candidates(rawName string, date time.Time, records []model.ShelterAnimalRecord, n int) []model.ShelterAnimalRecord {
	cleaned := CleanName(rawName)
	if cleaned == "" || n <= 0 {
		return nil
	}

	candidates := windowByDate(records, date)

	if exact := matching(candidates, func(r model.ShelterAnimalRecord) bool {
		return strings.Contains(r.NormalizedName, cleaned)
	}); len(exact) == 1 {
		return exact
	}

	pool := candidates
	if re, err := tokenPattern(cleaned); err == nil {
		hits := matching(candidates, func(r model.ShelterAnimalRecord) bool {
			return re.MatchString(r.NormalizedName)
		})
		if len(hits) == 0 {
			hits = matching(records, func(r model.ShelterAnimalRecord) bool {
				return re.MatchString(r.NormalizedName)
			})
		}
		if len(hits) > 0 {
			pool = hits
		}
	}

	ranked := make([]model.ShelterAnimalRecord, len(pool))
	copy(ranked, pool)
	sort.SliceStable(ranked, func(i, j int) bool {
		return fuzzy.LevenshteinDistance(cleaned, ranked[i].NormalizedName) <
			fuzzy.LevenshteinDistance(cleaned, ranked[j].NormalizedName)
	})
	if len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}
