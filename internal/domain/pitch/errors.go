package pitch

import "errors"

// Layout validation errors.
var (
	ErrNoSlots       = errors.New("bucket has no slots")
	ErrUnknownBucket = errors.New("code maps to an unknown bucket")
	ErrDuplicate     = errors.New("bucket defined twice")
)
