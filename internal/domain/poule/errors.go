package poule

import "errors"

// Sentinel error kinds for this package. These allow errors.Is/As from callers.
var (
	// ErrInvalidPolicy reports a size policy that cannot produce a partition.
	ErrInvalidPolicy = errors.New("invalid poule size policy")

	// ErrSeparationInfeasible reports that strict assignment found an athlete
	// no poule can accept under the active separation rules.
	ErrSeparationInfeasible = errors.New("separation constraints cannot be satisfied")

	// ErrNoCapacity reports that every poule is already at target size.
	ErrNoCapacity = errors.New("no poule has remaining capacity")
)
