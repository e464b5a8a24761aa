package formula

import "errors"

// Sentinel error kinds for this package. These allow errors.Is/As from callers.
var (
	// ErrNotInitialized reports an engine call before InitializeTournament
	// succeeded.
	ErrNotInitialized = errors.New("tournament not initialized")

	// ErrInvalidPhase reports a phase that does not belong to the
	// initialized tournament or has the wrong type for the operation.
	ErrInvalidPhase = errors.New("invalid phase for this operation")

	// ErrIncompletePoule reports an undersized poule when the caller
	// disallowed incomplete poules.
	ErrIncompletePoule = errors.New("generated sizes include an incomplete poule")

	// ErrUnknownPreset reports a preset id with no built-in template.
	ErrUnknownPreset = errors.New("unknown preset")

	// ErrInvalidPreset reports a preset payload that failed validation on
	// import.
	ErrInvalidPreset = errors.New("invalid preset")

	// ErrInvalidEngardeFormula reports an engarde rounds description that
	// cannot be mapped to a tournament config.
	ErrInvalidEngardeFormula = errors.New("invalid engarde formula")
)
