package llm

import "context"

// MockClient returns canned responses for tests.
type MockClient struct {
	Response string
	Err      error
	Prompts  []string
}

// Generate records the prompt and returns the configured response.
func (m *MockClient) Generate(_ context.Context, prompt string) (string, error) {
	m.Prompts = append(m.Prompts, prompt)
	if m.Err != nil {
		return "", m.Err
	}
	return m.Response, nil
}
