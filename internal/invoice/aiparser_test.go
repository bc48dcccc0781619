package invoice

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chin-tech/furangel-invoices/internal/common"
	"github.com/chin-tech/furangel-invoices/internal/llm"
	"github.com/chin-tech/furangel-invoices/internal/model"
)

const aiTableResponse = "```csv\n" +
	"clinic,invoiceNumber,date,dogName,description,quantity,totalPrice\n" +
	"Ohana Veterinary Hospital,8802,2024-08-03,Luna,office visit,1,65.00\n" +
	"Ohana Veterinary Hospital,8802,2024-08-03,Luna,rabies vaccination,1,$28.50\n" +
	"Ohana Veterinary Hospital,8801,2024-08-02,Luna,,0,\n" +
	"```"

func TestAIExtractorParse(t *testing.T) {
	mock := &llm.MockClient{Response: aiTableResponse}
	extractor := NewAIExtractor(mock, newTestClassifier(t), "raw invoice text", "scan007.pdf")

	doc, err := extractor.Parse(context.Background())
	require.NoError(t, err)

	require.Len(t, mock.Prompts, 1)
	assert.Contains(t, mock.Prompts[0], "raw invoice text")

	assert.Equal(t, "Ohana Veterinary Hospital", doc.Clinic)
	assert.Equal(t, "OVH", doc.Abbrev)
	assert.Equal(t, "8801", doc.ID)
	assert.Equal(t, time.Date(2024, 8, 3, 0, 0, 0, 0, time.UTC), doc.Date)

	// The empty zero-price row is dropped.
	require.Len(t, doc.Charges, 2)

	visit := doc.Charges[0]
	assert.Equal(t, model.CategoryExamination, visit.Category)
	assert.Equal(t, "65.00", visit.Amount.StringFixed(2))
	assert.Equal(t, "Luna", visit.RawAnimalName)
	assert.False(t, visit.Resolution.Resolved)

	vaccine := doc.Charges[1]
	assert.Equal(t, model.CategoryVaccination, vaccine.Category)
	assert.Equal(t, "28.50", vaccine.Amount.StringFixed(2))
}

func TestAIExtractorFailures(t *testing.T) {
	tests := []struct {
		name     string
		response string
		err      error
	}{
		{
			name:     "generation error",
			err:      errors.New("rate limited"),
		},
		{
			name:     "empty response",
			response: "",
		},
		{
			name:     "prose without table",
			response: "I could not find an itemized table in this document.",
		},
		{
			name:     "header without rows",
			response: "clinic,invoiceNumber,date,dogName,description,quantity,totalPrice",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := &llm.MockClient{Response: tt.response, Err: tt.err}
			extractor := NewAIExtractor(mock, newTestClassifier(t), "text", "scan.pdf")

			_, err := extractor.Parse(context.Background())
			require.Error(t, err)
			assert.True(t, common.IsParseFailure(err))
		})
	}
}

func TestExtractCSVTable(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{
			name: "fenced with prose",
			raw:  "Here is the table:\n```\nclinic,invoiceNumber\nA,1\n```\nLet me know!",
			want: "clinic,invoiceNumber\nA,1",
		},
		{
			name: "bare table",
			raw:  "clinic,invoiceNumber\nA,1\nA,2",
			want: "clinic,invoiceNumber\nA,1\nA,2",
		},
		{
			name: "no header",
			raw:  "some,random,csv\nA,1,2",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, extractCSVTable(tt.raw))
		})
	}
}

func TestMakeClinicAbbreviation(t *testing.T) {
	tests := []struct {
		name   string
		clinic string
		want   string
	}{
		{"initials of capitalized words", "Waipio Pet Clinic", "WPC"},
		{"short and lowercase words skipped", "Ohana vet Co", "O"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MakeClinicAbbreviation(tt.clinic))
		})
	}
}
