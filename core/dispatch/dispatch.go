// Package dispatch is the capability-gated call path to the remote service.
// Every operation this layer performs against a remote object goes through
// Dispatcher.Call: the capability table is consulted first, and disallowed
// combinations fail locally so that malformed calls can never corrupt
// remote session state. Every dispatch, successful or not, is logged with
// its full argument context and published as a structured event.
package dispatch

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/artpar/schedclient/core/events"
	"github.com/artpar/schedclient/core/registry"
	"github.com/artpar/schedclient/domain/variant"
	"github.com/artpar/schedclient/ports"
)

// Dispatcher gates and forwards operation invocations.
type Dispatcher struct {
	reg    *registry.Registry
	logger zerolog.Logger
	bus    *events.Bus
	clock  ports.Clock
}

// New creates a dispatcher. The bus may be shared with any number of sinks;
// pass a fresh bus if no observers are wanted.
func New(reg *registry.Registry, logger zerolog.Logger, bus *events.Bus, clock ports.Clock) *Dispatcher {
	return &Dispatcher{reg: reg, logger: logger, bus: bus, clock: clock}
}

// Call checks the capability table and, if the variant is permitted,
// forwards the operation to the remote handle. Errors are never swallowed:
// they are logged with the bound arguments, published on the event bus, and
// returned to the caller.
func (d *Dispatcher) Call(ctx context.Context, h ports.RemoteHandle, v variant.Variant, op string, args ports.Args) (any, error) {
	id := uuid.New().String()
	log := d.logger.With().
		Str("dispatch_id", id).
		Str("operation", op).
		Str("variant", v.String()).
		Interface("args", args).
		Logger()

	allowed, known := d.reg.Lookup(op)
	if !known || !allowed.Contains(v) {
		err := &CapabilityError{Operation: op, Variant: v, Allowed: allowed}
		log.Warn().Str("allowed", allowed.String()).Msg("operation not permitted for variant")
		d.publish(ctx, id, op, v, args, events.OutcomeDenied, err)
		return nil, err
	}

	result, err := h.Invoke(ctx, op, args)
	if err == nil {
		log.Debug().Msg("dispatched")
		d.publish(ctx, id, op, v, args, events.OutcomeOK, nil)
		return result, nil
	}

	outcome := events.OutcomeError
	var fault *ports.Fault
	switch {
	case errors.As(err, &fault):
		err = &RemoteProtocolError{Operation: op, Variant: v, Fault: fault}
		log.Error().Err(err).Str("remote_description", fault.Description).Msg("remote call failed")
		outcome = events.OutcomeRemote
	case errors.Is(err, ports.ErrPropertyAbsent):
		log.Warn().Err(err).Msg("attribute failure during dispatch")
		outcome = events.OutcomeProperty
	default:
		log.Error().Err(err).Msg("dispatch failed")
	}

	d.publish(ctx, id, op, v, args, outcome, err)
	return nil, err
}

func (d *Dispatcher) publish(ctx context.Context, id, op string, v variant.Variant, args ports.Args, outcome events.Outcome, err error) {
	d.bus.Publish(ctx, events.Event{
		ID:        id,
		Operation: op,
		Variant:   v,
		Args:      args,
		Outcome:   outcome,
		Err:       err,
		At:        d.clock.Now(),
	})
}

// Probe is the tri-state answer of a property probe.
type Probe int

const (
	ProbePresent Probe = iota
	ProbeAbsent
	ProbeFailed
)

// ProbeProperty attempts to read a property and reports presence as data
// rather than control flow. ProbeFailed carries the underlying error.
func ProbeProperty(ctx context.Context, h ports.RemoteHandle, name string) (Probe, error) {
	_, err := h.Property(ctx, name)
	switch {
	case err == nil:
		return ProbePresent, nil
	case errors.Is(err, ports.ErrPropertyAbsent):
		return ProbeAbsent, nil
	default:
		return ProbeFailed, err
	}
}
