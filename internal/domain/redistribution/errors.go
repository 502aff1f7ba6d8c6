package redistribution

import "errors"

// Sentinel kinds for redistribution errors.
var (
	ErrUnknownStrategy = errors.New("unknown redistribution strategy")
)
