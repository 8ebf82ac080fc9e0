package round

import "errors"

// Sentinel kinds for round lifecycle errors.
var (
	// ErrValidation marks bad player input: empty name or empty
	// prediction set. Recoverable by the hosting UI.
	ErrValidation = errors.New("invalid round input")

	// ErrInvalidTransition marks a lifecycle call made out of order.
	ErrInvalidTransition = errors.New("invalid round transition")
)
