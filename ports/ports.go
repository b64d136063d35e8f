// Package ports defines interfaces (contracts) between layers.
// These interfaces enable dependency injection and testability.
// Implementations live in adapters/.
package ports

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// -----------------------------------------------------------------------------
// Remote service boundary
// -----------------------------------------------------------------------------

// Args carries named arguments for a remote operation invocation.
type Args map[string]any

// ErrPropertyAbsent is returned by RemoteHandle.Property when the remote
// object does not expose the named property. The type-resolution probe
// builds its tri-state on this sentinel: absent is an answer, not a failure.
var ErrPropertyAbsent = errors.New("property not exposed by remote object")

// RemoteHandle is an opaque reference to one object living in the remote
// scheduler service. The handle is held, never owned: its lifetime is the
// service's responsibility. Handles are not safe for concurrent use.
type RemoteHandle interface {
	// Invoke calls a named operation with named arguments. Results are
	// scalars, RemoteHandles, or []RemoteHandle for enumerable collections.
	Invoke(ctx context.Context, op string, args Args) (any, error)

	// Property reads a named property. Returns ErrPropertyAbsent when the
	// object does not expose the property.
	Property(ctx context.Context, name string) (any, error)

	// SetProperty writes a named property on the pending object state.
	// Writes become visible to the service after an Update invocation.
	SetProperty(ctx context.Context, name string, value any) error
}

// Fault is the structured error payload the remote service attaches to a
// failed call. Description is the human-readable message surfaced to
// callers.
type Fault struct {
	Code        int
	Source      string
	Description string
	HelpFile    string
	HelpContext int
}

func (f *Fault) Error() string {
	return fmt.Sprintf("remote fault %d from %s: %s", f.Code, f.Source, f.Description)
}

// Credentials authenticate a connection. Empty fields mean integrated
// authentication on the service side.
type Credentials struct {
	Username string
	Password string
}

// Transport owns the wire to the scheduler service. Connect hands back the
// root object handle and the service version the session negotiated.
type Transport interface {
	Connect(ctx context.Context, server string, creds Credentials) (root RemoteHandle, version int, err error)
	Disconnect(ctx context.Context) error
}

// -----------------------------------------------------------------------------
// Infrastructure ports
// -----------------------------------------------------------------------------

// Clock abstracts time for testability.
type Clock interface {
	Now() time.Time
}

// AuditEntry is one recorded dispatch, as persisted by an AuditStore.
type AuditEntry struct {
	ID        string // correlation ID of the dispatch event
	Operation string
	Variant   string
	Outcome   string
	Detail    string // error text for failed dispatches, empty otherwise
	At        time.Time
}

// AuditStore persists the dispatch audit trail.
type AuditStore interface {
	// Record appends one entry.
	Record(ctx context.Context, e AuditEntry) error

	// List returns the most recent entries, newest first.
	List(ctx context.Context, limit int) ([]AuditEntry, error)
}
