package invoice

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/gocarina/gocsv"
	"github.com/shopspring/decimal"

	"github.com/chin-tech/furangel-invoices/internal/common"
	"github.com/chin-tech/furangel-invoices/internal/llm"
	"github.com/chin-tech/furangel-invoices/internal/model"
	"github.com/chin-tech/furangel-invoices/internal/taxonomy"
)

const aiPrompt = `Extract the following information from the text:
clinic, invoiceNumber, date, dogName, description, quantity, totalPrice
and return the data as a comma separated table.
If you cannot parse the content only return an empty string.

Text:
%s
`

// aiRow is one row of the fixed-column table the text-generation service
// returns for unrecognized invoices.
type aiRow struct {
	Clinic        string `csv:"clinic"`
	InvoiceNumber string `csv:"invoiceNumber"`
	Date          string `csv:"date"`
	DogName       string `csv:"dogName"`
	Description   string `csv:"description"`
	Quantity      string `csv:"quantity"`
	TotalPrice    string `csv:"totalPrice"`
}

// AIExtractor handles invoices from clinics outside the configured set by
// asking a text-generation service for the itemized table, then running
// the rows through the same classification path as the clinic extractors.
type AIExtractor struct {
	client     llm.Client
	classifier *taxonomy.Classifier
	text       string
	filename   string
}

// NewAIExtractor binds the fallback extractor to extracted text.
func NewAIExtractor(client llm.Client, classifier *taxonomy.Classifier, text, filename string) *AIExtractor {
	return &AIExtractor{client: client, classifier: classifier, text: text, filename: filename}
}

// Parse asks the service for the charge table and converts its rows. An
// empty response is a structural parse failure, same as a clinic extractor
// failing to find an invoice id.
func (e *AIExtractor) Parse(ctx context.Context) (*model.InvoiceDocument, error) {
	raw, err := e.client.Generate(ctx, fmt.Sprintf(aiPrompt, e.text))
	if err != nil {
		return nil, &common.ParseError{Filename: e.filename, Field: "ai extraction", Err: err}
	}
	table := extractCSVTable(raw)
	if table == "" {
		return nil, &common.ParseError{Filename: e.filename, Field: "ai extraction", Err: common.ErrEmptyAIResult}
	}

	var rows []*aiRow
	if err := gocsv.UnmarshalString(table, &rows); err != nil {
		return nil, &common.ParseError{Filename: e.filename, Field: "ai extraction", Err: fmt.Errorf("bad csv table: %w", err)}
	}
	if len(rows) == 0 {
		return nil, &common.ParseError{Filename: e.filename, Field: "ai extraction", Err: common.ErrEmptyAIResult}
	}

	clinic := strings.TrimSpace(rows[0].Clinic)
	doc := &model.InvoiceDocument{
		Clinic: clinic,
		Abbrev: MakeClinicAbbreviation(clinic),
		ID:     minInvoiceNumber(rows),
	}

	for _, row := range rows {
		date, err := parseAIDate(row.Date)
		if err != nil {
			return nil, &common.ParseError{Filename: e.filename, Field: "charge date", Found: row.Date, Err: err}
		}
		if date.After(doc.Date) {
			doc.Date = date
		}

		price := parsePrice(row.TotalPrice)
		description := strings.TrimSpace(row.Description)
		if description == "" && price.Sign() <= 0 {
			continue
		}

		name := strings.TrimSpace(row.DogName)
		rec := model.ChargeRecord{
			Date:          date,
			Description:   fmt.Sprintf("[%s - %s - %s] ", row.Clinic, row.InvoiceNumber, date.Format("2006-01-02")),
			Amount:        price,
			RawAnimalName: name,
			Resolution:    model.UnresolvedAnimal(name),
		}
		e.classifier.Classify(description, date, &rec)
		doc.Charges = append(doc.Charges, rec)
	}
	return doc, nil
}

// extractCSVTable strips markdown fences and any prose before the header
// row; generation output is close to CSV but rarely exactly CSV.
func extractCSVTable(raw string) string {
	var lines []string
	started := false
	for _, line := range strings.Split(raw, "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "```") {
			continue
		}
		if !started {
			if strings.HasPrefix(strings.ToLower(trimmed), "clinic,") {
				started = true
			} else {
				continue
			}
		}
		if trimmed == "" {
			continue
		}
		lines = append(lines, trimmed)
	}
	if len(lines) < 2 {
		return ""
	}
	return strings.Join(lines, "\n")
}

// parseAIDate accepts ISO dates plus the invoice date formats; generation
// output usually normalizes to ISO but not reliably.
func parseAIDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	return common.ParseInvoiceDate(s)
}

func parsePrice(s string) decimal.Decimal {
	s = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(s), "$"))
	if s == "" {
		return decimal.Zero
	}
	price, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return price
}

// minInvoiceNumber picks the lowest invoice number across rows; multi-page
// invoices sometimes repeat with incremented sub-numbers.
func minInvoiceNumber(rows []*aiRow) string {
	minStr := ""
	minVal := int64(0)
	numeric := true
	for _, row := range rows {
		n := strings.TrimSpace(row.InvoiceNumber)
		if n == "" {
			continue
		}
		if v, err := strconv.ParseInt(n, 10, 64); err == nil {
			if minStr == "" || (numeric && v < minVal) {
				minStr, minVal = n, v
			}
		} else {
			numeric = false
			if minStr == "" || n < minStr {
				minStr = n
			}
		}
	}
	return minStr
}

// MakeClinicAbbreviation derives a clinic abbreviation from the initials
// of capitalized words longer than two characters.
func MakeClinicAbbreviation(clinicName string) string {
	var sb strings.Builder
	for _, word := range strings.Fields(clinicName) {
		runes := []rune(word)
		if len(runes) > 2 && unicode.IsUpper(runes[0]) {
			sb.WriteRune(runes[0])
		}
	}
	return sb.String()
}
