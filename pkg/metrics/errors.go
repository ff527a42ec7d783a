package metrics

import (
	"errors"
)

// Sentinel kinds for metrics errors.
var (
	ErrNilManager = errors.New("metrics manager is nil")
	ErrNoGatherer = errors.New("metrics registry cannot be gathered")
)
