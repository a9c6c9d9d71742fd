// Package redact scrubs credentials and other sensitive fragments from
// strings before they are logged or returned in error responses. Errors from
// the Gemini client can echo request URLs and headers that carry the API key,
// so every error detail that reaches a log goes through this package.
package redact

import (
	"errors"
	"regexp"
	"strings"
)

// Constants for redaction placeholders
const (
	RedactedPathPlaceholder  = "[REDACTED_PATH]"
	RedactedKeyPlaceholder   = "[REDACTED_KEY]"
	RedactedTokenPlaceholder = "[REDACTED_TOKEN]"
	RedactedEmailPlaceholder = "[REDACTED_EMAIL]"
)

type rule struct {
	pattern     *regexp.Regexp
	placeholder string
}

// rules are applied in order; URL query keys go before the generic
// assignment rule so the parameter name survives.
var rules = []rule{
	// Google API keys, wherever they appear
	{regexp.MustCompile(`AIza[0-9A-Za-z_\-]{35}`), RedactedKeyPlaceholder},
	// ?key=... and &key=... in request URLs
	{regexp.MustCompile(`([?&](?:key|api_key|access_token)=)[^&\s"']+`), "${1}" + RedactedKeyPlaceholder},
	// x-goog-api-key: ... header dumps
	{regexp.MustCompile(`(?i)(x-goog-api-key["']?\s*[:=]\s*["']?)[^\s"',}]+`), "${1}" + RedactedKeyPlaceholder},
	// Bearer tokens
	{regexp.MustCompile(`(?i)(bearer\s+)[A-Za-z0-9_\-.~+/]+=*`), "${1}" + RedactedTokenPlaceholder},
	// api_key=..., token: ..., secret=...
	{regexp.MustCompile(`(?i)\b(api[_-]?key|token|secret|password)(["']?\s*[:=]\s*["']?)[A-Za-z0-9_\-.~+/]{6,}`), RedactedKeyPlaceholder},
	// Email addresses
	{regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`), RedactedEmailPlaceholder},
	// Absolute file paths under the usual filesystem roots. URL paths such
	// as /api/recipes are left alone.
	{regexp.MustCompile(`(^|[\s"'=(])/(?:home|Users|root|etc|tmp|var|usr|opt|srv|private|app)(?:/[\w.-]+)+`), "${1}" + RedactedPathPlaceholder},
}

// String redacts sensitive information from the input string
func String(input string) string {
	if input == "" {
		return input
	}

	result := input
	for _, r := range rules {
		result = r.pattern.ReplaceAllString(result, r.placeholder)
	}

	return result
}

// Error redacts sensitive information from an error's Error() output. When
// the message hides the wrapped cause, the cause is appended.
func Error(err error) string {
	if err == nil {
		return ""
	}

	msg := err.Error()
	if cause := errors.Unwrap(err); cause != nil && !strings.Contains(msg, cause.Error()) {
		msg += ": " + cause.Error()
	}
	return String(msg)
}
