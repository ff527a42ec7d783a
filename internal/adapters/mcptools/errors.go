package mcptools

import "errors"

// Error constants
var (
	ErrPlayerIDs = errors.New("a and b must be positive player ids")
	ErrNilDeps   = errors.New("mcp tools need a roster service")
)
