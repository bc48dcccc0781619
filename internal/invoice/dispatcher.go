package invoice

import (
	"fmt"
	"log/slog"
	"regexp"

	"github.com/chin-tech/furangel-invoices/internal/common"
	"github.com/chin-tech/furangel-invoices/internal/llm"
	"github.com/chin-tech/furangel-invoices/internal/taxonomy"
)

// nonInvoiceName screens attachments that are never invoices: statements,
// estimates, medical histories, photos.
var nonInvoiceName = regexp.MustCompile(`(?i)statement|treatment|estimate|record|payment|medical_history|care_instructions|reval|\.jpe?g|rescue`)

// IsLikelyInvoice reports whether a filename looks like an invoice worth
// dispatching at all.
func IsLikelyInvoice(filename string) bool {
	return !nonInvoiceName.MatchString(filename)
}

// Dispatcher selects the extractor for an invoice by matching clinic
// signatures against the extracted text, falling back to the AI-assisted
// extractor for unknown layouts.
type Dispatcher struct {
	classifier *taxonomy.Classifier
	ai         llm.Client
	clinics    []ClinicConfig
	signatures []*regexp.Regexp
}

// NewDispatcher builds a dispatcher over the given clinic set, or the
// known clinics when none are supplied.
func NewDispatcher(classifier *taxonomy.Classifier, ai llm.Client, clinics ...ClinicConfig) (*Dispatcher, error) {
	if len(clinics) == 0 {
		clinics = KnownClinics()
	}
	signatures := make([]*regexp.Regexp, 0, len(clinics))
	for _, cfg := range clinics {
		re, err := regexp.Compile(cfg.Signature)
		if err != nil {
			return nil, fmt.Errorf("%s: bad signature %q: %w", cfg.Abbrev, cfg.Signature, err)
		}
		signatures = append(signatures, re)
	}
	return &Dispatcher{
		classifier: classifier,
		ai:         ai,
		clinics:    clinics,
		signatures: signatures,
	}, nil
}

// Dispatch extracts the PDF's text once, picks the matching clinic
// extractor, and re-extracts in layout mode for clinics whose patterns
// depend on column alignment.
func (d *Dispatcher) Dispatch(pdfData []byte, filename string) (Parser, error) {
	text, err := ExtractText(pdfData, ModePlain)
	if err != nil {
		return nil, &common.ParseError{Filename: filename, Field: "pdf text", Err: err}
	}

	for i, cfg := range d.clinics {
		if !d.signatures[i].MatchString(text) {
			continue
		}
		if cfg.LayoutText {
			layoutText, layoutErr := ExtractText(pdfData, ModeLayout)
			if layoutErr != nil {
				slog.Warn("layout extraction failed, using plain text",
					"file", filename, "clinic", cfg.Abbrev, "error", layoutErr)
			} else {
				text = layoutText
			}
		}
		slog.Debug("matched clinic signature", "file", filename, "clinic", cfg.Clinic)
		return NewExtractor(cfg, d.classifier, text, filename)
	}

	slog.Debug("no clinic signature matched, using ai extractor", "file", filename)
	return NewAIExtractor(d.ai, d.classifier, text, filename), nil
}

// DispatchText is Dispatch for already-extracted text; layout-sensitive
// clinics get the text as supplied.
func (d *Dispatcher) DispatchText(text, filename string) (Parser, error) {
	for i, cfg := range d.clinics {
		if d.signatures[i].MatchString(text) {
			return NewExtractor(cfg, d.classifier, text, filename)
		}
	}
	return NewAIExtractor(d.ai, d.classifier, text, filename), nil
}
