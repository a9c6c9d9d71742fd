package redact_test

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/phrazzld/pantry-chef/internal/redact"
	"github.com/stretchr/testify/assert"
)

var testKey = "AIza" + strings.Repeat("B", 35)

func TestRedactString(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "empty string",
			input:    "",
			expected: "",
		},
		{
			name:     "no sensitive data",
			input:    "This is a normal log message",
			expected: "This is a normal log message",
		},
		{
			name:     "key in gemini request URL",
			input:    "Post https://generativelanguage.googleapis.com/v1beta/models/gemini-2.5-flash:generateContent?key=" + testKey + ": dial tcp: i/o timeout",
			expected: "Post https://generativelanguage.googleapis.com/v1beta/models/gemini-2.5-flash:generateContent?key=[REDACTED_KEY] dial tcp: i/o timeout",
		},
		{
			name:     "key query parameter after others",
			input:    "GET https://example.com/v1/models?alt=json&key=secret-value-123",
			expected: "GET https://example.com/v1/models?alt=json&key=[REDACTED_KEY]",
		},
		{
			name:     "api key header",
			input:    "header x-goog-api-key: abc123def456",
			expected: "header x-goog-api-key: [REDACTED_KEY]",
		},
		{
			name:     "bearer token",
			input:    "Authorization: Bearer ya29.a0AfH6SMB",
			expected: "Authorization: Bearer [REDACTED_TOKEN]",
		},
		{
			name:     "api key assignment",
			input:    "Using api_key=abcdef1234567890 for authentication",
			expected: "Using [REDACTED_KEY] for authentication",
		},
		{
			name:     "bare google key",
			input:    "key " + testKey + " rejected",
			expected: "key [REDACTED_KEY] rejected",
		},
		{
			name:     "email",
			input:    "contact chef@example.com for help",
			expected: "contact [REDACTED_EMAIL] for help",
		},
		{
			name:     "file path",
			input:    "failed to read prompt template from /etc/pantry/prompt.tmpl: no such file",
			expected: "failed to read prompt template from [REDACTED_PATH]: no such file",
		},
		{
			name:     "leading file path",
			input:    "/var/lib/app/config.yaml missing",
			expected: "[REDACTED_PATH] missing",
		},
		{
			name:     "home directory path",
			input:    "open /home/chef/.env: permission denied",
			expected: "open [REDACTED_PATH]: permission denied",
		},
		{
			name:     "route path kept",
			input:    "POST /api/recipes returned 502",
			expected: "POST /api/recipes returned 502",
		},
		{
			name:     "bare route kept",
			input:    "/api/recipes",
			expected: "/api/recipes",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, redact.String(tt.input))
		})
	}
}

func TestRedactError(t *testing.T) {
	assert.Equal(t, "", redact.Error(nil))

	err := fmt.Errorf("gemini call failed: %w", errors.New("bad request for key="+testKey))
	got := redact.Error(err)
	assert.NotContains(t, got, testKey)
	assert.Contains(t, got, "gemini call failed")
}

type opaqueError struct{ cause error }

func (e opaqueError) Error() string { return "something went wrong" }
func (e opaqueError) Unwrap() error { return e.cause }

func TestRedactErrorIncludesHiddenCause(t *testing.T) {
	err := opaqueError{cause: errors.New("quota exceeded for key=" + testKey)}

	got := redact.Error(err)

	assert.Contains(t, got, "something went wrong: quota exceeded")
	assert.NotContains(t, got, testKey)
}
