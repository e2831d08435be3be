package subdomain

import (
	"regexp"
	"strings"
)

const (
	minLength = 3
	maxLength = 63
)

// formatPattern requires alphanumeric first and last characters; hyphens
// are only allowed in the interior.
var formatPattern = regexp.MustCompile(`^[a-z0-9][a-z0-9-]*[a-z0-9]$`)

// ValidationError carries a machine-readable reason code alongside the
// user-facing message.
type ValidationError struct {
	Reason  string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

var (
	errRequired = &ValidationError{Reason: "required", Message: "Subdomain is required"}
	errLength   = &ValidationError{Reason: "length", Message: "Subdomain must be between 3 and 63 characters"}
	errFormat   = &ValidationError{Reason: "format", Message: "Subdomain must start and end with a letter or digit and may only contain lowercase letters, digits and hyphens"}
	errHyphens  = &ValidationError{Reason: "double-hyphen", Message: "Subdomain must not contain consecutive hyphens"}
)

// Normalize lowercases and trims a candidate without validating it.
func Normalize(candidate string) string {
	return strings.ToLower(strings.TrimSpace(candidate))
}

// Validate normalizes the candidate and applies the syntax rules in order,
// first failure wins. It performs no I/O.
func Validate(candidate string) (string, *ValidationError) {
	normalized := Normalize(candidate)

	if normalized == "" {
		return "", errRequired
	}
	if len(normalized) < minLength || len(normalized) > maxLength {
		return "", errLength
	}
	if !formatPattern.MatchString(normalized) {
		return "", errFormat
	}
	if strings.Contains(normalized, "--") {
		return "", errHyphens
	}

	return normalized, nil
}
