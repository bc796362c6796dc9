package types

import "fmt"

// InputValidationError signals malformed bar input: not sorted, duplicate
// timestamps, negative volume, low > high. Fatal per symbol.
type InputValidationError struct {
	Reason string
}

func (e *InputValidationError) Error() string {
	return fmt.Sprintf("input validation: %s", e.Reason)
}

// InsufficientDataError means fewer bars were supplied than the pipeline
// needs to ever emit a pattern. Nothing in the pipeline returns it: on too
// few bars, Detector.DetectPatterns logs an "insufficient_data" warning and
// the symbol simply produces zero patterns.
type InsufficientDataError struct {
	Have int
	Need int
}

func (e *InsufficientDataError) Error() string {
	return fmt.Sprintf("insufficient data: have %d bars, need at least %d", e.Have, e.Need)
}

// ConfigInvalidError signals a construction-time configuration violation,
// e.g. fib_range.min >= fib_range.max, or a negative length parameter.
type ConfigInvalidError struct {
	Reason string
}

func (e *ConfigInvalidError) Error() string {
	return fmt.Sprintf("config invalid: %s", e.Reason)
}

// NumericDegenerateError exists for completeness with the §7 taxonomy.
// Feature extraction never returns it: zero denominators are defaulted per
// §4.5, not raised.
type NumericDegenerateError struct {
	Field string
}

func (e *NumericDegenerateError) Error() string {
	return fmt.Sprintf("numeric degenerate: %s", e.Field)
}
