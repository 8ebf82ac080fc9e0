package api

import "errors"

// Sentinel kinds for API errors.
var (
	ErrBadRequest    = errors.New("bad request")
	ErrImageTooLarge = errors.New("image exceeds size limit")
)
