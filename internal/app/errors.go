package service

import "errors"

// Sentinel kinds for service errors.
var (
	ErrPlayerNotFound = errors.New("player not in filtered roster")
	ErrNoAttributes   = errors.New("no skill attributes configured")
)
