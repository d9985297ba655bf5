package evaluator

import (
	"errors"
	"strings"
)

// TransientError marks a failure worth retrying (rate limits, quota,
// temporary upstream outages). Anything else is permanent and fails the
// segment immediately.
type TransientError struct {
	Err error
}

func (e *TransientError) Error() string {
	return "transient: " + e.Err.Error()
}

func (e *TransientError) Unwrap() error {
	return e.Err
}

// Transient wraps err as retryable.
func Transient(err error) error {
	if err == nil {
		return nil
	}
	return &TransientError{Err: err}
}

// IsTransient reports whether err (or anything it wraps) is retryable.
func IsTransient(err error) bool {
	var te *TransientError
	return errors.As(err, &te)
}

var transientMarkers = []string{
	"429",
	"quota",
	"RESOURCE_EXHAUSTED",
	"rate limit",
	"500",
	"503",
	"unavailable",
	"deadline exceeded",
}

// isRetryableMessage classifies an upstream error message.
func isRetryableMessage(msg string) bool {
	lower := strings.ToLower(msg)
	for _, marker := range transientMarkers {
		if strings.Contains(lower, strings.ToLower(marker)) {
			return true
		}
	}
	return false
}
