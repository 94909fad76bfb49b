package gemini

import (
	"errors"
	"net/http"
	"strings"

	"prepdeck/internal/inference"
)

// isRetryableError determines if an error should trigger a retry
func isRetryableError(err error) bool {
	if err == nil {
		return false
	}

	// Retry on rate limiting (429) and server errors (5xx)
	var requestErr *inference.RequestError
	if errors.As(err, &requestErr) {
		return requestErr.StatusCode == http.StatusTooManyRequests ||
			requestErr.StatusCode >= http.StatusInternalServerError
	}

	// Retry on network-related errors
	errStr := err.Error()
	if strings.Contains(errStr, "connection refused") ||
		strings.Contains(errStr, "connection reset") ||
		strings.Contains(errStr, "i/o timeout") {
		return true
	}

	return false
}
