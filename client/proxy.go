package client

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/artpar/schedclient/core/dispatch"
	"github.com/artpar/schedclient/core/registry"
	"github.com/artpar/schedclient/domain/variant"
	"github.com/artpar/schedclient/ports"
)

// Proxy pairs a remote handle with its resolved variant. Operation legality
// is decided by the capability table at dispatch time, never by the proxy's
// Go type. Proxies are not safe for concurrent use, matching the handles
// they wrap.
type Proxy struct {
	s   *Session
	h   ports.RemoteHandle
	v   variant.Variant
	key string // hierarchical key; filled lazily from the FullPath property

	// counterpart caches the opposite-density twin. Per proxy, never
	// shared: two proxies of the same object each pay their own fetch.
	counterpart *Proxy
}

// Variant is the proxy's resolved variant.
func (p *Proxy) Variant() variant.Variant { return p.v }

// Call dispatches an arbitrary vocabulary operation on this proxy.
func (p *Proxy) Call(ctx context.Context, op string, args ports.Args) (any, error) {
	return p.s.call(ctx, p, op, args)
}

// Key returns the hierarchical key, reading the FullPath property on first
// use for proxies materialized from enumeration results.
func (p *Proxy) Key(ctx context.Context) (string, error) {
	if p.key != "" {
		return p.key, nil
	}
	v, err := p.h.Property(ctx, "FullPath")
	if err != nil {
		return "", fmt.Errorf("client: reading key of %s proxy: %w", p.v, err)
	}
	p.key, _ = v.(string)
	return p.key, nil
}

// ID reads the object's numeric identity.
func (p *Proxy) ID(ctx context.Context) (int64, error) {
	v, err := p.h.Property(ctx, "ID")
	if err != nil {
		return 0, err
	}
	switch n := v.(type) {
	case int64:
		return n, nil
	case int:
		return int64(n), nil
	case float64:
		return int64(n), nil
	}
	return 0, fmt.Errorf("client: ID property is %T, want integer", v)
}

// Name reads the object's name.
func (p *Proxy) Name(ctx context.Context) (string, error) {
	v, err := p.h.Property(ctx, "Name")
	if err != nil {
		return "", err
	}
	s, _ := v.(string)
	return s, nil
}

// Label reads the object's display label.
func (p *Proxy) Label(ctx context.Context) (string, error) {
	v, err := p.h.Property(ctx, "Label")
	if err != nil {
		return "", err
	}
	s, _ := v.(string)
	return s, nil
}

// Enabled reads the object's enabled flag.
func (p *Proxy) Enabled(ctx context.Context) (bool, error) {
	v, err := p.h.Property(ctx, "Enabled")
	if err != nil {
		return false, err
	}
	b, _ := v.(bool)
	return b, nil
}

// Counterpart returns the opposite-density twin of this proxy, fetching it
// on first use and caching it on this proxy. Single-density variants are
// their own counterpart.
func (p *Proxy) Counterpart(ctx context.Context) (*Proxy, error) {
	other := p.v.Other()
	if other == p.v {
		return p, nil
	}
	if p.counterpart != nil {
		return p.counterpart, nil
	}

	// The pairing is keyed by the stable numeric ID: a hierarchical key
	// goes stale the moment the object moves or is renamed.
	id, err := p.ID(ctx)
	if err != nil {
		return nil, err
	}
	op := registry.OpGetObject
	if other.IsLite() {
		op = registry.OpGetObjectLite
	}
	h, err := p.s.fetchHandle(ctx, op, id)
	if err != nil {
		return nil, err
	}
	p.counterpart = &Proxy{s: p.s, h: h, v: other}
	return p.counterpart, nil
}

// Delete removes the object on the service.
func (p *Proxy) Delete(ctx context.Context) error {
	_, err := p.s.call(ctx, p, registry.OpDelete, nil)
	return err
}

// Enable turns the object on.
func (p *Proxy) Enable(ctx context.Context) error {
	_, err := p.s.call(ctx, p, registry.OpEnable, nil)
	return err
}

// Disable turns the object off.
func (p *Proxy) Disable(ctx context.Context) error {
	_, err := p.s.call(ctx, p, registry.OpDisable, nil)
	return err
}

// Update commits pending property writes to the service.
func (p *Proxy) Update(ctx context.Context) error {
	_, err := p.s.call(ctx, p, registry.OpUpdate, nil)
	return err
}

// Trigger fires the object immediately.
func (p *Proxy) Trigger(ctx context.Context) error {
	_, err := p.s.call(ctx, p, registry.OpTrigger, nil)
	return err
}

// Children enumerates the object's direct children as lite proxies.
func (p *Proxy) Children(ctx context.Context) ([]*Proxy, error) {
	res, err := p.s.call(ctx, p, registry.OpGetChildren, nil)
	if err != nil {
		return nil, err
	}
	return p.s.materialize(ctx, res, false)
}

// AssociatedSchedules returns the schedules attached to a plan or job.
// Variants the table does not permit the query for get an empty collection:
// no schedules is the truthful answer, and the denial is already logged and
// published by the dispatcher.
func (p *Proxy) AssociatedSchedules(ctx context.Context) ([]*Proxy, error) {
	res, err := p.s.call(ctx, p, registry.OpGetAssociatedSchedules, nil)
	if err != nil {
		var capErr *dispatch.CapabilityError
		if errors.As(err, &capErr) {
			return []*Proxy{}, nil
		}
		return nil, err
	}
	handles, _ := res.([]ports.RemoteHandle)
	out := make([]*Proxy, 0, len(handles))
	for _, h := range handles {
		out = append(out, &Proxy{s: p.s, h: h, v: variant.Schedule})
	}
	return out, nil
}

// Instances lists run instances filtered by the state mask. A zero from/to
// defaults to the year ending now.
func (p *Proxy) Instances(ctx context.Context, states variant.InstanceState, from, to time.Time) ([]*Proxy, error) {
	if to.IsZero() {
		to = p.s.clock.Now()
	}
	if from.IsZero() {
		from = to.AddDate(-1, 0, 0)
	}
	res, err := p.s.call(ctx, p, registry.OpGetInstances, ports.Args{
		"InstanceStateMask": int(states),
		"From":              from.Format(time.RFC3339),
		"To":                to.Format(time.RFC3339),
	})
	if err != nil {
		return nil, err
	}
	handles, _ := res.([]ports.RemoteHandle)
	out := make([]*Proxy, 0, len(handles))
	for _, h := range handles {
		out = append(out, &Proxy{s: p.s, h: h, v: variant.Unsupported})
	}
	return out, nil
}

// Variables returns the object's variable collection handles.
func (p *Proxy) Variables(ctx context.Context) (any, error) {
	return p.s.call(ctx, p, registry.OpGetVariables, nil)
}

// Counters returns the object's counter collection handles.
func (p *Proxy) Counters(ctx context.Context) (any, error) {
	return p.s.call(ctx, p, registry.OpGetCounters, nil)
}

// HasPermission asks the service whether the session's account holds the
// given access mask on this object.
func (p *Proxy) HasPermission(ctx context.Context, access variant.Access) (bool, error) {
	res, err := p.s.call(ctx, p, registry.OpHasPermission, ports.Args{"AccessMask": int(access)})
	if err != nil {
		return false, err
	}
	b, _ := res.(bool)
	return b, nil
}

// materialize turns a dispatch result collection into proxies. full=true
// refetches each hit at full density by key.
func (s *Session) materialize(ctx context.Context, res any, full bool) ([]*Proxy, error) {
	handles, _ := res.([]ports.RemoteHandle)
	out := make([]*Proxy, 0, len(handles))
	for _, h := range handles {
		lite := &Proxy{s: s, h: h, v: variant.Unsupported}
		key, err := lite.Key(ctx)
		if err != nil {
			return nil, err
		}
		if full {
			p, err := s.Object(ctx, key, false)
			if err != nil {
				return nil, err
			}
			out = append(out, p)
			continue
		}
		v, err := s.resolveVariant(ctx, h, key, true)
		if err != nil {
			return nil, err
		}
		lite.v = v
		out = append(out, lite)
	}
	return out, nil
}
