package charging

import "errors"

var (
	// ErrMalformedRecord marks a record whose present field cannot be
	// coerced to its expected type, or a detail row missing a required
	// field. Retrying cannot fix bad data, so callers should not retry.
	ErrMalformedRecord = errors.New("malformed charging record")

	// ErrInvalidRange marks a self-inconsistent or out-of-bounds date
	// window request.
	ErrInvalidRange = errors.New("invalid date range")
)
