// Package redact provides utilities for redacting sensitive information from strings
// before they are logged. Store drivers echo connection strings, credentials, host
// addresses and the offending column values in their error text; none of that may
// reach a log line verbatim.
package redact

import (
	"regexp"
)

// Placeholders substituted for redacted fragments.
const (
	RedactedCredentialPlaceholder = "[REDACTED_CREDENTIAL]"
	RedactedValuePlaceholder      = "[REDACTED_VALUE]"
	RedactedHostPlaceholder       = "[REDACTED_HOST]"
	RedactedPathPlaceholder       = "[REDACTED_PATH]"
	RedactedEmailPlaceholder      = "[REDACTED_EMAIL]"
)

type rule struct {
	pattern     *regexp.Regexp
	replacement string
}

// rules are applied in order; earlier rules see the original text.
var rules = []rule{
	// URL-style connection strings: scheme://user:password@
	{
		regexp.MustCompile(`(?i)\b(postgres|postgresql|sqlserver|mysql|db|database)://[^@\s]+@`),
		RedactedCredentialPlaceholder,
	},
	// Key/value connection strings and config dumps: password=secret
	{
		regexp.MustCompile(`(?i)\b(password|passwd|pwd)\s*[=:]\s*['"]?[^'"&\s]+['"]?`),
		RedactedCredentialPlaceholder,
	},
	// Constraint violation details: Key (id)=(A000000001)
	{
		regexp.MustCompile(`Key \(([^)]*)\)=\([^)]*\)`),
		"Key ($1)=(" + RedactedValuePlaceholder + ")",
	},
	// Quoted SQL string literals
	{
		regexp.MustCompile(`'(?:[^']|'')*'`),
		"'" + RedactedValuePlaceholder + "'",
	},
	{
		regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`),
		RedactedEmailPlaceholder,
	},
	// IPv4 addresses with an optional port
	{
		regexp.MustCompile(`\b(?:\d{1,3}\.){3}\d{1,3}(?::\d{1,5})?\b`),
		RedactedHostPlaceholder,
	},
	{
		regexp.MustCompile(`(?i)\bhost=\S+`),
		"host=" + RedactedHostPlaceholder,
	},
	// Absolute filesystem paths with at least two segments
	{
		regexp.MustCompile(`(/[\w.-]+){2,}`),
		RedactedPathPlaceholder,
	},
}

// String redacts sensitive information from the input string.
func String(input string) string {
	if input == "" {
		return input
	}

	result := input
	for _, r := range rules {
		result = r.pattern.ReplaceAllString(result, r.replacement)
	}
	return result
}

// Error redacts sensitive information from an error's Error() output.
func Error(err error) string {
	if err == nil {
		return ""
	}
	return String(err.Error())
}
