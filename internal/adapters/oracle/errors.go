package oracle

import "errors"

// Sentinel kinds for oracle errors. Every failure path wraps one of
// these so callers can branch with errors.Is.
var (
	// ErrOracle is the base kind: the classifier call failed and the
	// round must be abandoned or retried, never scored.
	ErrOracle = errors.New("classifier oracle failed")

	// ErrRateLimited marks a 429 from the provider. Transient.
	ErrRateLimited = errors.New("classifier oracle rate limited")

	// ErrUnavailable marks provider 5xx or network failure. Transient.
	ErrUnavailable = errors.New("classifier oracle unavailable")

	// ErrEmptyResponse marks a reply with no text content.
	ErrEmptyResponse = errors.New("classifier oracle returned no text")

	// ErrBadImage marks an image payload that could not be decoded.
	ErrBadImage = errors.New("image could not be decoded")
)

// IsOracle reports whether err is any oracle failure kind.
func IsOracle(err error) bool {
	return errors.Is(err, ErrOracle) ||
		errors.Is(err, ErrRateLimited) ||
		errors.Is(err, ErrUnavailable) ||
		errors.Is(err, ErrEmptyResponse)
}

// isTransient reports whether a failed call is worth retrying.
func isTransient(err error) bool {
	return errors.Is(err, ErrRateLimited) || errors.Is(err, ErrUnavailable)
}
