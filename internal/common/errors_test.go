package common

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseErrorMessage(t *testing.T) {
	tests := []struct {
		name string
		err  *ParseError
		want string
	}{
		{
			name: "field only",
			err:  &ParseError{Filename: "a.pdf", Field: "invoice id"},
			want: "a.pdf: unable to parse invoice id",
		},
		{
			name: "with pattern and cause",
			err: &ParseError{
				Filename: "a.pdf",
				Field:    "invoice id",
				Pattern:  `Invoice:\s*(\d+)`,
				Err:      ErrNoInvoiceID,
			},
			want: `a.pdf: unable to parse invoice id (pattern "Invoice:\\s*(\\d+)"): no invoice id found`,
		},
		{
			name: "with found text",
			err: &ParseError{
				Filename: "a.pdf",
				Field:    "invoice date",
				Found:    "13-45-99",
			},
			want: `a.pdf: unable to parse invoice date (found "13-45-99")`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
		})
	}
}

func TestIsParseFailure(t *testing.T) {
	pe := NewParseError("a.pdf", "invoice id", "", ErrNoInvoiceID)
	assert.True(t, IsParseFailure(pe))
	assert.True(t, IsParseFailure(fmt.Errorf("wrapped: %w", pe)))
	assert.False(t, IsParseFailure(errors.New("other")))
	assert.False(t, IsParseFailure(nil))
}

func TestParseErrorUnwrap(t *testing.T) {
	pe := NewParseError("a.pdf", "invoice date", "", ErrBadDate)
	assert.ErrorIs(t, pe, ErrBadDate)
}
