package greenops

// constError is an immutable error type for sentinel errors.
type constError string

func (e constError) Error() string { return string(e) }

// Sentinel errors, compared with errors.Is.
var (
	// ErrInvalidUnit is returned by NormalizeToKg for an unknown unit.
	ErrInvalidUnit = constError("invalid carbon unit")

	// ErrNegativeValue is returned for a negative carbon mass.
	ErrNegativeValue = constError("negative carbon value")

	// ErrCalculationOverflow is returned for NaN, Inf or overflowing values.
	ErrCalculationOverflow = constError("calculation overflow")

	// ErrInvalidGridIntensity is returned for a negative or non-finite grid intensity.
	ErrInvalidGridIntensity = constError("invalid grid intensity")
)
