package invoice

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chin-tech/furangel-invoices/internal/llm"
)

func TestIsLikelyInvoice(t *testing.T) {
	tests := []struct {
		filename string
		want     bool
	}{
		{"invoice_12345.pdf", true},
		{"WPC_12345_2024-08-01.pdf", true},
		{"statement_july.pdf", false},
		{"Treatment Plan.pdf", false},
		{"estimate-0042.pdf", false},
		{"medical_history.pdf", false},
		{"photo.jpeg", false},
		{"payment_receipt.pdf", false},
	}

	for _, tt := range tests {
		t.Run(tt.filename, func(t *testing.T) {
			assert.Equal(t, tt.want, IsLikelyInvoice(tt.filename))
		})
	}
}

func TestDispatchTextSelectsClinic(t *testing.T) {
	d, err := NewDispatcher(newTestClassifier(t), &llm.MockClient{})
	require.NoError(t, err)

	parser, err := d.DispatchText(waipioInvoiceText, "scan001.pdf")
	require.NoError(t, err)

	extractor, ok := parser.(*Extractor)
	require.True(t, ok, "expected a clinic extractor")
	assert.Equal(t, "Waipio Pet Clinic", extractor.Clinic())
}

func TestDispatchTextFallsBackToAI(t *testing.T) {
	d, err := NewDispatcher(newTestClassifier(t), &llm.MockClient{})
	require.NoError(t, err)

	parser, err := d.DispatchText("Some Unknown Clinic\nInvoice: 99", "scan002.pdf")
	require.NoError(t, err)

	_, ok := parser.(*AIExtractor)
	assert.True(t, ok, "expected the ai fallback")
}

func TestNewDispatcherRejectsBadSignature(t *testing.T) {
	cfg := waipioConfig(t)
	cfg.Signature = `[bad`

	_, err := NewDispatcher(newTestClassifier(t), &llm.MockClient{}, cfg)
	require.Error(t, err)
}
