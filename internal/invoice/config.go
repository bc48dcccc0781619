// Package invoice turns extracted veterinary invoice text into charge
// records. A single parsing algorithm is parameterized by per-clinic
// pattern sets; adding a clinic is a pure data change.
package invoice

import (
	"fmt"
	"regexp"
)

// ClinicConfig is one clinic's pattern set. All patterns are RE2; patterns
// applied to the full invoice text are compiled in multiline mode.
type ClinicConfig struct {
	Clinic string // display name
	Abbrev string

	// Signature identifies this clinic in the extracted text.
	Signature string

	// LayoutText marks clinics whose line patterns depend on column
	// alignment and therefore need layout-preserving extraction.
	LayoutText bool

	InvoiceIDPattern   string
	InvoiceDatePattern string

	// NamePattern enumerates patient names across the full text, in
	// invoice order. Group 1 is the name.
	NamePattern string
	// ExcludeNames filters false positives the name pattern cannot
	// avoid (column headers, the literal DIAGNOSIS row, ...).
	ExcludeNames []string
	// LineNamePattern optionally re-binds the current patient from a
	// charge line itself. Most clinics rely on positional sections.
	LineNamePattern string

	// SectionBeginPattern finds the start of each patient's itemized
	// section; SectionEndMarker is the literal text ending it.
	SectionBeginPattern string
	SectionEndMarker    string
	// SectionReducePattern joins wrapped continuation lines back into
	// single logical lines. Group 1 is the character to keep.
	SectionReducePattern string

	LineDatePattern string
	PricePattern    string
	ChargePattern   string
}

// clinicPatterns is a ClinicConfig with its regexes compiled.
type clinicPatterns struct {
	cfg           ClinicConfig
	signature     *regexp.Regexp
	invoiceID     *regexp.Regexp
	invoiceDate   *regexp.Regexp
	names         *regexp.Regexp
	lineName      *regexp.Regexp
	sectionBegin  *regexp.Regexp
	sectionReduce *regexp.Regexp
	lineDate      *regexp.Regexp
	price         *regexp.Regexp
	charge        *regexp.Regexp
}

func compileClinic(cfg ClinicConfig) (*clinicPatterns, error) {
	p := &clinicPatterns{cfg: cfg}

	compile := func(dst **regexp.Regexp, pattern string, multiline bool) error {
		if pattern == "" {
			return nil
		}
		if multiline {
			pattern = "(?m)" + pattern
		}
		re, err := regexp.Compile(pattern)
		if err != nil {
			return fmt.Errorf("%s: bad pattern %q: %w", cfg.Abbrev, pattern, err)
		}
		*dst = re
		return nil
	}

	steps := []error{
		compile(&p.signature, cfg.Signature, false),
		compile(&p.invoiceID, cfg.InvoiceIDPattern, true),
		compile(&p.invoiceDate, cfg.InvoiceDatePattern, true),
		compile(&p.names, cfg.NamePattern, true),
		compile(&p.lineName, cfg.LineNamePattern, false),
		compile(&p.sectionBegin, cfg.SectionBeginPattern, true),
		compile(&p.sectionReduce, cfg.SectionReducePattern, false),
		compile(&p.lineDate, cfg.LineDatePattern, false),
		compile(&p.price, cfg.PricePattern, false),
		compile(&p.charge, cfg.ChargePattern, false),
	}
	for _, err := range steps {
		if err != nil {
			return nil, err
		}
	}
	return p, nil
}
