// Package llm provides the text-generation client used as the extraction
// fallback for invoices no configured clinic pattern matches.
package llm

import (
	"context"
	"fmt"
)

// Client defines the interface to a text-generation provider.
type Client interface {
	// Generate sends a prompt and returns the raw text response.
	Generate(ctx context.Context, prompt string) (string, error)
}

// Config holds provider settings.
type Config struct {
	Provider string
	APIKey   string
	Model    string
}

// NewClient creates a client for the configured provider.
func NewClient(cfg Config) (Client, error) {
	switch cfg.Provider {
	case "gemini", "":
		return newGeminiClient(cfg)
	default:
		return nil, fmt.Errorf("unknown llm provider: %q", cfg.Provider)
	}
}

// ErrDisabled is returned by the disabled client.
var ErrDisabled = fmt.Errorf("no llm provider configured")

type disabledClient struct{}

func (disabledClient) Generate(_ context.Context, _ string) (string, error) {
	return "", ErrDisabled
}

// Disabled returns a client whose Generate always fails. Runs configured
// without an API key still handle known clinics; only the fallback path
// errors out.
func Disabled() Client {
	return disabledClient{}
}
