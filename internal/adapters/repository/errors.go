package repository

import "errors"

// Sentinel kinds for roster file errors. Read failures are also wrapped in
// roster.ErrMissingSource or roster.ErrMalformedSource.
var (
	ErrUnsupportedFormat = errors.New("unsupported roster file format")
	ErrMissingColumn     = errors.New("required column missing")
	ErrBadCell           = errors.New("bad numeric cell")
)
