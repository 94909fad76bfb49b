package inference

import "fmt"

// RequestError reports a failed generation request: a non-2xx status, a
// transport failure, or a reply with no usable candidate. Message carries
// the diagnostic detail extracted from the service; callers present a
// generic message and log the detail.
type RequestError struct {
	StatusCode int
	Message    string
	Err        error
}

func (e *RequestError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("request failed with status %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("request failed: %s", e.Message)
}

func (e *RequestError) Unwrap() error {
	return e.Err
}
