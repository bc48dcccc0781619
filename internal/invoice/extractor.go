package invoice

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/chin-tech/furangel-invoices/internal/common"
	"github.com/chin-tech/furangel-invoices/internal/model"
	"github.com/chin-tech/furangel-invoices/internal/taxonomy"
)

// Parser turns one invoice's extracted text into an InvoiceDocument.
type Parser interface {
	Parse(ctx context.Context) (*model.InvoiceDocument, error)
}

// minChargeLineLength filters layout noise: itemized charge lines carry a
// description plus a price column and are long; shorter lines are headers,
// subtotals, or wrapping artifacts.
const minChargeLineLength = 60

// Extractor applies one clinic's pattern set to extracted invoice text.
type Extractor struct {
	patterns   *clinicPatterns
	classifier *taxonomy.Classifier
	text       string
	filename   string
}

// NewExtractor binds a clinic configuration to extracted text.
func NewExtractor(cfg ClinicConfig, classifier *taxonomy.Classifier, text, filename string) (*Extractor, error) {
	patterns, err := compileClinic(cfg)
	if err != nil {
		return nil, err
	}
	return &Extractor{
		patterns:   patterns,
		classifier: classifier,
		text:       text,
		filename:   filename,
	}, nil
}

// Clinic returns the bound clinic's display name.
func (e *Extractor) Clinic() string { return e.patterns.cfg.Clinic }

// parseState is the fold state threaded through line processing: charges
// are not always dated or named per line, so each line inherits the prior
// line's date and the section's patient until overridden.
type parseState struct {
	name string
	date time.Time
}

// Parse runs the shared extraction algorithm: locate invoice id and date,
// enumerate patient names, slice itemized sections, and walk each
// section's lines into charge records. Missing id, date, or names is a
// structural failure that aborts the whole invoice.
func (e *Extractor) Parse(_ context.Context) (*model.InvoiceDocument, error) {
	id, err := e.invoiceID()
	if err != nil {
		return nil, err
	}
	invoiceDate, err := e.invoiceDate()
	if err != nil {
		return nil, err
	}
	names, err := e.patientNames()
	if err != nil {
		return nil, err
	}

	doc := &model.InvoiceDocument{
		Clinic: e.patterns.cfg.Clinic,
		Abbrev: e.patterns.cfg.Abbrev,
		ID:     id,
		Date:   invoiceDate,
	}

	state := parseState{date: invoiceDate}
	for i, section := range e.itemizedSections() {
		// Sections and names are emitted in matching invoice order;
		// associate positionally.
		if i < len(names) {
			state.name = names[i]
		}
		for lineNo, line := range strings.Split(section, "\n") {
			if lineNo == 0 || len(line) < minChargeLineLength {
				continue
			}
			rec, ok, err := e.parseLine(line, &state, id, invoiceDate)
			if err != nil {
				return nil, err
			}
			if ok {
				doc.Charges = append(doc.Charges, rec)
			}
		}
	}
	return doc, nil
}

func (e *Extractor) invoiceID() (string, error) {
	m := e.patterns.invoiceID.FindStringSubmatch(e.text)
	if m == nil {
		return "", common.NewParseError(e.filename, "invoice id", e.patterns.cfg.InvoiceIDPattern, common.ErrNoInvoiceID)
	}
	return m[1], nil
}

func (e *Extractor) invoiceDate() (time.Time, error) {
	m := e.patterns.invoiceDate.FindStringSubmatch(e.text)
	if m == nil {
		return time.Time{}, common.NewParseError(e.filename, "invoice date", e.patterns.cfg.InvoiceDatePattern, common.ErrNoInvoiceDate)
	}
	date, err := common.ParseInvoiceDate(m[1])
	if err != nil {
		return time.Time{}, &common.ParseError{
			Filename: e.filename,
			Field:    "invoice date",
			Found:    m[1],
			Err:      err,
		}
	}
	return date, nil
}

func (e *Extractor) patientNames() ([]string, error) {
	var names []string
	for _, m := range e.patterns.names.FindAllStringSubmatch(e.text, -1) {
		name := strings.TrimSpace(m[1])
		if name == "" || e.excludedName(name) {
			continue
		}
		names = append(names, name)
	}
	if len(names) == 0 {
		return nil, common.NewParseError(e.filename, "patient names", e.patterns.cfg.NamePattern, common.ErrNoPatients)
	}
	return names, nil
}

func (e *Extractor) excludedName(name string) bool {
	upper := strings.ToUpper(name)
	for _, ex := range e.patterns.cfg.ExcludeNames {
		if strings.HasPrefix(upper, strings.ToUpper(ex)) {
			return true
		}
	}
	return false
}

// itemizedSections slices the text into per-patient charge blocks, from
// each begin-pattern match to the next end marker. Wrapped continuation
// lines are folded back into their logical line when the clinic's layout
// wraps descriptions.
func (e *Extractor) itemizedSections() []string {
	var sections []string
	for _, loc := range e.patterns.sectionBegin.FindAllStringIndex(e.text, -1) {
		section := e.text[loc[0]:]
		if end := strings.Index(section, e.patterns.cfg.SectionEndMarker); end >= 0 {
			section = section[:end]
		}
		if e.patterns.sectionReduce != nil {
			for e.patterns.sectionReduce.MatchString(section) {
				section = e.patterns.sectionReduce.ReplaceAllString(section, " $1")
			}
		}
		sections = append(sections, section)
	}
	return sections
}

// parseLine converts one itemized line to a charge record. Lines with
// neither a description match nor a positive price are dropped as layout
// noise; that is routine, not an error.
func (e *Extractor) parseLine(line string, state *parseState, id string, invoiceDate time.Time) (model.ChargeRecord, bool, error) {
	lower := strings.ToLower(line)

	if e.patterns.lineDate != nil {
		if m := e.patterns.lineDate.FindStringSubmatch(lower); m != nil {
			date, err := common.ParseInvoiceDate(m[1])
			if err != nil {
				return model.ChargeRecord{}, false, &common.ParseError{
					Filename: e.filename,
					Field:    "charge date",
					Found:    m[1],
					Err:      err,
				}
			}
			state.date = date
		}
	}

	if e.patterns.lineName != nil {
		if m := e.patterns.lineName.FindStringSubmatch(lower); m != nil {
			if name := strings.TrimSpace(m[1]); name != "" && !e.excludedName(name) {
				state.name = name
			}
		}
	}

	price := e.price(lower)
	charge := e.charge(lower)
	if charge == "" && price.Sign() <= 0 {
		return model.ChargeRecord{}, false, nil
	}

	rec := model.ChargeRecord{
		Date:          state.date,
		Description:   fmt.Sprintf("[%s - %s - %s] ", e.patterns.cfg.Clinic, id, invoiceDate.Format("2006-01-02")),
		Amount:        price,
		RawAnimalName: state.name,
		Resolution:    model.UnresolvedAnimal(state.name),
	}
	e.classifier.Classify(charge, state.date, &rec)
	return rec, true, nil
}

// price extracts the charge amount; the last numeric match wins, which
// handles lines carrying both a quantity and a price.
func (e *Extractor) price(line string) decimal.Decimal {
	matches := e.patterns.price.FindAllStringSubmatch(line, -1)
	if len(matches) == 0 {
		return decimal.Zero
	}
	last := matches[len(matches)-1]
	value := last[len(last)-1]
	price, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Zero
	}
	return price
}

func (e *Extractor) charge(line string) string {
	if e.patterns.charge == nil {
		return ""
	}
	m := e.patterns.charge.FindStringSubmatch(line)
	if m == nil {
		return ""
	}
	return strings.TrimSpace(m[1])
}
