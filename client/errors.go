package client

import "fmt"

// AmbiguousTypeError is returned when the service reports a type code that
// maps to more than one variant and the property probes could not settle
// which one the object actually is.
type AmbiguousTypeError struct {
	Key     string
	Code    int
	Version int
}

func (e *AmbiguousTypeError) Error() string {
	return fmt.Sprintf("type code %d for %q is ambiguous on service version %d",
		e.Code, e.Key, e.Version)
}

// ValidationError is a locally detected precondition failure. No remote call
// is made for the failing operation.
type ValidationError struct {
	Operation string
	Key       string
	Reason    string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s %q: %s", e.Operation, e.Key, e.Reason)
}
