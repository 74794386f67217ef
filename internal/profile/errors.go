package profile

import "errors"

// Sentinel errors returned while parsing, loading and validating profiles.
var (
	// ErrUnknownValue indicates an answer outside the closed set of a choice field.
	ErrUnknownValue = errors.New("unknown answer value")

	// ErrUnknownField indicates an answer addressed to a field that does not exist.
	ErrUnknownField = errors.New("unknown profile field")

	// ErrTypeMismatch indicates an Answer whose value has the wrong Go type for its field.
	ErrTypeMismatch = errors.New("answer value has wrong type")

	// ErrOutOfRange indicates a numeric answer outside its accepted range.
	ErrOutOfRange = errors.New("answer out of range")

	// ErrIncompatibleSchema indicates a profile document written for an unsupported schema version.
	ErrIncompatibleSchema = errors.New("incompatible profile schema version")
)
