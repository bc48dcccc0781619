// Package taxonomy maps free-text charge descriptions to cost categories
// and structured treatment fields via an ordered table of regex patterns.
package taxonomy

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/chin-tech/furangel-invoices/internal/common"
	"github.com/chin-tech/furangel-invoices/internal/model"
)

// CostPattern pairs a regex with the category it assigns and the
// structured fields to populate on a match. Table order is significant:
// the first matching pattern wins.
type CostPattern struct {
	Pattern  string
	Category model.CostCategory
	Fields   []string
}

type compiledPattern struct {
	regex *regexp.Regexp
	CostPattern
}

// Options tunes the classifier. Both the pattern table and the fuzzy
// acceptance threshold are calibration data, not derived constants.
type Options struct {
	Patterns       []CostPattern // nil means DefaultPatterns()
	FuzzyThreshold int           // 0 means DefaultFuzzyThreshold
}

// DefaultFuzzyThreshold is the minimum similarity (0-100) a vocabulary
// match must reach before a sub-classifier accepts it.
const DefaultFuzzyThreshold = 50

// Classifier assigns cost categories to charge descriptions.
type Classifier struct {
	patterns    []compiledPattern
	medications *subClassifier
	tests       *subClassifier
	vaccines    *subClassifier
}

// NewClassifier compiles the pattern table and sub-classifier rules.
func NewClassifier(opts Options) (*Classifier, error) {
	patterns := opts.Patterns
	if patterns == nil {
		patterns = DefaultPatterns()
	}
	threshold := opts.FuzzyThreshold
	if threshold == 0 {
		threshold = DefaultFuzzyThreshold
	}

	compiled := make([]compiledPattern, 0, len(patterns))
	for _, p := range patterns {
		re, err := regexp.Compile(p.Pattern)
		if err != nil {
			return nil, fmt.Errorf("failed to compile cost pattern %q: %w", p.Pattern, err)
		}
		compiled = append(compiled, compiledPattern{regex: re, CostPattern: p})
	}

	return &Classifier{
		patterns:    compiled,
		medications: newMedicationClassifier(threshold),
		tests:       newTestClassifier(threshold),
		vaccines:    newVaccineClassifier(threshold),
	}, nil
}

// Classify matches the description against the pattern table in order and
// fills the record's category and structured fields. Structured fields are
// populated by field-name convention: DATE fields get the charge date,
// COMMENT fields the matched text, TYPE fields a test or vaccine
// sub-classification, NAME fields the medication name, DOSAGE fields the
// first captured group. An unmatched description falls into Other with the
// text preserved verbatim; a priced line is never dropped for being
// unclassifiable.
func (c *Classifier) Classify(description string, chargeDate time.Time, rec *model.ChargeRecord) {
	option := strings.ToLower(description)
	dateStr := chargeDate.Format(common.DisplayDate)

	for _, p := range c.patterns {
		m := p.regex.FindStringSubmatch(option)
		if m == nil {
			continue
		}
		rec.Category = p.Category
		rec.Description += option
		for _, field := range p.Fields {
			switch {
			case strings.Contains(field, "DATE"):
				rec.SetField(field, dateStr)
			case strings.Contains(field, "COMMENT"):
				rec.SetField(field, option)
			case strings.Contains(field, "TYPE"):
				if strings.Contains(field, "TEST") {
					rec.SetField(field, c.tests.classify(option))
				} else {
					rec.SetField(field, c.vaccines.classify(option))
				}
			case strings.Contains(field, "NAME"):
				rec.SetField(field, c.medications.classify(option))
			case strings.Contains(field, "DOSAGE"):
				if len(m) > 1 {
					rec.SetField(field, m[1])
				}
			}
		}
		return
	}

	rec.Category = model.CategoryOther
	rec.Description += option
}

// MedicationName exposes the medication sub-classifier for callers that
// need name normalization outside full classification.
func (c *Classifier) MedicationName(text string) string {
	return c.medications.classify(text)
}

// TestType exposes the medical-test sub-classifier.
func (c *Classifier) TestType(text string) string {
	return c.tests.classify(text)
}

// VaccineType exposes the vaccine sub-classifier.
func (c *Classifier) VaccineType(text string) string {
	return c.vaccines.classify(text)
}
