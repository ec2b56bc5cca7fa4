package steam

import "errors"

var (
	// ErrUnavailable covers every recoverable failure of the marketplace
	// lookup: network errors, bad responses, unparsable prices. Callers fall
	// back to a null-price result; this error never aborts a resolution.
	ErrUnavailable = errors.New("marketplace price unavailable")

	// errRetryable marks failures worth another attempt.
	errRetryable = errors.New("retryable request error")
	// errNonRetryable marks failures that will not improve on retry.
	errNonRetryable = errors.New("non-retryable request error")
)
