package app

import (
	"errors"
)

// Sentinel kinds for service errors. Wrap with fmt.Errorf("%w", ...) and
// check with errors.Is.
var (
	ErrUnknownTournament = errors.New("unknown tournament")
	ErrUnknownPhase      = errors.New("unknown phase")
	ErrNilRoster         = errors.New("nil athlete roster")
)
