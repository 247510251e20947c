package temporal

import "fmt"

// FormatError indicates a malformed GTFS scalar, such as a date that is not
// eight digits or a clock value that does not split into three integer
// fields. A malformed scalar means the feed is corrupt and the load aborts.
type FormatError struct {
	Field string
	Value string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("malformed %s value %q", e.Field, e.Value)
}

// DataError indicates a structurally valid but semantically invalid field,
// such as a non-positive headway or an unrecognised exception_type code.
type DataError struct {
	Field  string
	Value  string
	Reason string
}

func (e *DataError) Error() string {
	return fmt.Sprintf("invalid %s value %q: %s", e.Field, e.Value, e.Reason)
}

// MissingFieldError indicates a row without a required identifier.
type MissingFieldError struct {
	File  string
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("%s row is missing required field %s", e.File, e.Field)
}

// UnknownTripError is returned by operating-day queries for a trip id that
// was never loaded. An unknown trip is distinct from a trip that runs on no
// qualifying day.
type UnknownTripError struct {
	TripID string
}

func (e *UnknownTripError) Error() string {
	return fmt.Sprintf("unknown trip id %q", e.TripID)
}
