package resilience

import (
	"errors"
	"net/http"
	"strings"
)

// QuotaError wraps an error that indicates a quota or rate-limit violation
// (HTTP 429 or an equivalent provider signal).
type QuotaError struct {
	Err        error
	StatusCode int
}

func (e *QuotaError) Error() string {
	return e.Err.Error()
}

func (e *QuotaError) Unwrap() error {
	return e.Err
}

// NewQuotaError wraps an error as a quota violation with an optional HTTP
// status code.
func NewQuotaError(err error, statusCode int) *QuotaError {
	return &QuotaError{Err: err, StatusCode: statusCode}
}

// IsQuotaExceeded returns true if the error (or any error in its chain) is a
// QuotaError, or if it matches common quota-violation patterns emitted by
// LLM provider clients.
func IsQuotaExceeded(err error) bool {
	if err == nil {
		return false
	}

	var qe *QuotaError
	if errors.As(err, &qe) {
		return true
	}

	// String-based heuristics for wrapped errors from SDK clients that do
	// not expose a typed status.
	msg := strings.ToLower(err.Error())
	quotaPatterns := []string{
		"status 429",
		"429 too many requests",
		"rate limit",
		"rate-limited",
		"quota exceeded",
		"insufficient quota",
	}
	for _, p := range quotaPatterns {
		if strings.Contains(msg, p) {
			return true
		}
	}

	return false
}

// IsQuotaHTTPStatus returns true for status codes that indicate a quota
// violation rather than a transient server fault.
func IsQuotaHTTPStatus(statusCode int) bool {
	return statusCode == http.StatusTooManyRequests
}
