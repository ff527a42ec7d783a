package stats

import "errors"

// ErrUnknownAttribute is returned when a correlation is requested over a
// column that is not a skill rating.
var ErrUnknownAttribute = errors.New("unknown skill attribute")
