package dispatch

import (
	"fmt"

	"github.com/artpar/schedclient/domain/variant"
	"github.com/artpar/schedclient/ports"
)

// CapabilityError reports an operation invoked on a variant outside its
// allow-set. It is raised locally, before any remote call, and is not
// retryable.
type CapabilityError struct {
	Operation string
	Variant   variant.Variant
	Allowed   variant.Set
}

func (e *CapabilityError) Error() string {
	return fmt.Sprintf("operation %s not permitted for variant %s (allowed: %s)",
		e.Operation, e.Variant, e.Allowed)
}

// RemoteProtocolError wraps a structured failure returned by the remote
// service. The service's own human-readable description is surfaced
// unchanged.
type RemoteProtocolError struct {
	Operation string
	Variant   variant.Variant
	Fault     *ports.Fault
}

func (e *RemoteProtocolError) Error() string {
	return fmt.Sprintf("%s on %s failed: %s", e.Operation, e.Variant, e.Fault.Description)
}

func (e *RemoteProtocolError) Unwrap() error {
	return e.Fault
}
