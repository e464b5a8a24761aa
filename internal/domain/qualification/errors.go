package qualification

import "errors"

// Sentinel error kinds for this package. These allow errors.Is/As from callers.
var (
	// ErrMissingRule reports a poule phase with no qualification rule.
	// There is no silent default.
	ErrMissingRule = errors.New("phase has no qualification rule")

	// ErrInvalidRule reports a rule whose quota/percentage does not match
	// its declared method.
	ErrInvalidRule = errors.New("invalid qualification rule")
)
