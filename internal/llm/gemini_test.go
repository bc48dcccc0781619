package llm

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClient(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr bool
	}{
		{
			name:   "gemini with key",
			config: Config{Provider: "gemini", APIKey: "test-key"},
		},
		{
			name:   "default provider",
			config: Config{APIKey: "test-key"},
		},
		{
			name:    "missing key",
			config:  Config{Provider: "gemini"},
			wantErr: true,
		},
		{
			name:    "unknown provider",
			config:  Config{Provider: "carrier-pigeon", APIKey: "test-key"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, err := NewClient(tt.config)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, client)
		})
	}
}

func testGeminiClient(t *testing.T, handler http.HandlerFunc) *geminiClient {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := newGeminiClient(Config{APIKey: "test-key"})
	require.NoError(t, err)
	gc, ok := client.(*geminiClient)
	require.True(t, ok)
	gc.baseURL = server.URL
	return gc
}

func TestGeminiGenerate(t *testing.T) {
	client := testGeminiClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Contains(t, r.URL.String(), "gemini-2.0-flash:generateContent")
		assert.Equal(t, "test-key", r.URL.Query().Get("key"))

		_, _ = w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"hello "},{"text":"world"}]}}]}`))
	})

	got, err := client.Generate(context.Background(), "say hello")
	require.NoError(t, err)
	assert.Equal(t, "hello world", got)
}

func TestGeminiGenerateErrors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantMsg string
	}{
		{
			name:    "http error status",
			status:  http.StatusTooManyRequests,
			body:    `quota exceeded`,
			wantMsg: "status 429",
		},
		{
			name:    "api error payload",
			status:  http.StatusOK,
			body:    `{"error":{"code":400,"message":"invalid key"}}`,
			wantMsg: "invalid key",
		},
		{
			name:    "malformed json",
			status:  http.StatusOK,
			body:    `not json`,
			wantMsg: "failed to parse response",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := testGeminiClient(t, func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			})

			_, err := client.Generate(context.Background(), "prompt")
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestDisabledClient(t *testing.T) {
	_, err := Disabled().Generate(context.Background(), "prompt")
	assert.ErrorIs(t, err, ErrDisabled)
}
