// Package client is the object model over the remote scheduler service.
// A Session owns one connection; every object the session hands out is a
// Proxy pairing a remote handle with its resolved variant. All remote
// traffic funnels through the capability-gated dispatcher, so a proxy can
// never issue an operation its variant is not permitted to invoke.
package client

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/artpar/schedclient/adapters/clock"
	"github.com/artpar/schedclient/core/dispatch"
	"github.com/artpar/schedclient/core/events"
	"github.com/artpar/schedclient/core/registry"
	"github.com/artpar/schedclient/domain/variant"
	"github.com/artpar/schedclient/ports"
)

// Options configure a session. Transport is required; everything else has a
// working default.
type Options struct {
	Transport ports.Transport
	Logger    zerolog.Logger
	Bus       *events.Bus
	Clock     ports.Clock
	Registry  *registry.Registry

	// Version overrides the service version the transport negotiated.
	// Zero means trust the transport.
	Version int
}

// Session is one live connection to the scheduler service.
type Session struct {
	id        string
	server    string
	version   int
	transport ports.Transport
	d         *dispatch.Dispatcher
	bus       *events.Bus
	logger    zerolog.Logger
	clock     ports.Clock
	root      *Proxy
	openedAt  time.Time
}

// Connect establishes a session and returns it with the root scheduler
// proxy attached.
func Connect(ctx context.Context, server string, creds ports.Credentials, opts Options) (*Session, error) {
	if opts.Transport == nil {
		return nil, errors.New("client: transport is required")
	}
	ck := opts.Clock
	if ck == nil {
		ck = clock.Real{}
	}
	bus := opts.Bus
	if bus == nil {
		bus = events.NewBus(opts.Logger)
	}
	reg := opts.Registry
	if reg == nil {
		reg = registry.New()
	}

	rootHandle, version, err := opts.Transport.Connect(ctx, server, creds)
	if err != nil {
		return nil, fmt.Errorf("client: connecting to %s: %w", server, err)
	}
	if opts.Version != 0 {
		version = opts.Version
	}

	s := &Session{
		id:        uuid.New().String(),
		server:    server,
		version:   version,
		transport: opts.Transport,
		bus:       bus,
		logger:    opts.Logger,
		clock:     ck,
		openedAt:  ck.Now(),
	}
	s.d = dispatch.New(reg, opts.Logger, bus, ck)
	s.root = &Proxy{s: s, h: rootHandle, v: variant.JobScheduler, key: "/"}

	s.logger.Info().
		Str("session_id", s.id).
		Str("server", server).
		Int("service_version", version).
		Msg("session opened")
	return s, nil
}

// Disconnect closes the session and logs its duration.
func (s *Session) Disconnect(ctx context.Context) error {
	err := s.transport.Disconnect(ctx)
	s.logger.Info().
		Str("session_id", s.id).
		Str("server", s.server).
		Dur("duration", s.clock.Now().Sub(s.openedAt)).
		Err(err).
		Msg("session closed")
	if err != nil {
		return fmt.Errorf("client: disconnecting from %s: %w", s.server, err)
	}
	return nil
}

// ID is the session correlation ID.
func (s *Session) ID() string { return s.id }

// Version is the service version this session negotiated (or was told).
func (s *Session) Version() int { return s.version }

// Root returns the scheduler root proxy.
func (s *Session) Root() *Proxy { return s.root }

// Bus returns the event bus dispatch events are published on, so callers
// can attach additional sinks after connecting.
func (s *Session) Bus() *events.Bus { return s.bus }

// Exists reports whether a key resolves on the service.
func (s *Session) Exists(ctx context.Context, key string) (bool, error) {
	res, err := s.call(ctx, s.root, registry.OpObjectExists, ports.Args{"ObjectKey": key})
	if err != nil {
		return false, err
	}
	b, _ := res.(bool)
	return b, nil
}

// Object fetches the object at key as a proxy. lite selects the reduced
// representation the service serves for enumeration.
func (s *Session) Object(ctx context.Context, key string, lite bool) (*Proxy, error) {
	op := registry.OpGetObject
	if lite {
		op = registry.OpGetObjectLite
	}
	h, err := s.fetchHandle(ctx, op, key)
	if err != nil {
		return nil, err
	}
	v, err := s.resolveVariant(ctx, h, key, lite)
	if err != nil {
		return nil, err
	}
	return &Proxy{s: s, h: h, v: v, key: key}, nil
}

// call dispatches an operation on behalf of a proxy.
func (s *Session) call(ctx context.Context, p *Proxy, op string, args ports.Args) (any, error) {
	return s.d.Call(ctx, p.h, p.v, op, args)
}

func toInt(v any) int {
	switch n := v.(type) {
	case int:
		return n
	case int64:
		return int(n)
	case float64:
		return int(n)
	}
	return 0
}
