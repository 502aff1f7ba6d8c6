package roster

import "errors"

// Sentinel kinds for roster errors.
var (
	ErrPartnerNotFound = errors.New("partner not found")
)
