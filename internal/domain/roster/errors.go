package roster

import "errors"

// Sentinel kinds for roster loading. Sources wrap these so callers can use errors.Is.
var (
	// ErrMissingSource means a required table could not be read at all.
	ErrMissingSource = errors.New("roster source unavailable")
	// ErrMalformedSource means a table was read but its contents do not fit the schema.
	ErrMalformedSource = errors.New("roster source malformed")
)
