package client

import (
	"context"
	"strings"

	"github.com/artpar/schedclient/core/registry"
	"github.com/artpar/schedclient/ports"
)

// MoveTo relocates the object under the destination container. With
// createIfMissing the destination path is built first; either way the
// destination must resolve to a folder, plan, or the scheduler root, and a
// non-container destination fails locally with a ValidationError before any
// move is attempted.
func (p *Proxy) MoveTo(ctx context.Context, destKey string, createIfMissing bool) error {
	if createIfMissing {
		if _, err := p.s.EnsurePath(ctx, destKey); err != nil {
			return err
		}
	}
	if err := p.s.requireContainer(ctx, registry.OpMoveObject, destKey); err != nil {
		return err
	}
	srcKey, err := p.Key(ctx)
	if err != nil {
		return err
	}
	_, err = p.s.call(ctx, p.s.root, registry.OpMoveObject, ports.Args{
		"SourceKey":      srcKey,
		"DestinationKey": destKey,
	})
	if err != nil {
		return err
	}

	name, err := p.Name(ctx)
	if err != nil {
		return err
	}
	p.key = joinKey(destKey, name)
	p.counterpart = nil
	return nil
}

// CopyTo duplicates the object's subtree under the destination container by
// exporting it and importing the payload at the destination. With
// createIfMissing the destination path is built first; otherwise it must
// already exist and be a container.
func (p *Proxy) CopyTo(ctx context.Context, destKey string, createIfMissing bool) (*Proxy, error) {
	if createIfMissing {
		if _, err := p.s.EnsurePath(ctx, destKey); err != nil {
			return nil, err
		}
	}
	if err := p.s.requireContainer(ctx, registry.OpCopyObject, destKey); err != nil {
		return nil, err
	}
	srcKey, err := p.Key(ctx)
	if err != nil {
		return nil, err
	}

	payload, err := p.s.utilityCall(ctx, "Export", registry.OpExport,
		ports.Args{"ObjectKey": srcKey})
	if err != nil {
		return nil, err
	}
	if _, err := p.s.utilityCall(ctx, "Import", registry.OpImport, ports.Args{
		"DestinationKey": destKey,
		"Payload":        payload,
	}); err != nil {
		return nil, err
	}

	name, err := p.Name(ctx)
	if err != nil {
		return nil, err
	}
	return p.s.Object(ctx, joinKey(destKey, name), false)
}

// requireContainer validates that a key exists and resolves to a variant
// that may hold children.
func (s *Session) requireContainer(ctx context.Context, op, key string) error {
	exists, err := s.Exists(ctx, key)
	if err != nil {
		return err
	}
	if !exists {
		return &ValidationError{Operation: op, Key: key, Reason: "destination does not exist"}
	}
	v, err := s.VariantOf(ctx, key, true)
	if err != nil {
		return err
	}
	if !v.IsContainer() {
		return &ValidationError{Operation: op, Key: key,
			Reason: "destination is a " + v.String() + ", not a container"}
	}
	return nil
}

// utilityCall creates one of the scheduler's helper objects and invokes its
// single operation.
func (s *Session) utilityCall(ctx context.Context, helper, op string, args ports.Args) (any, error) {
	res, err := s.call(ctx, s.root, registry.OpCreateObject, ports.Args{"ObjectName": helper})
	if err != nil {
		return nil, err
	}
	h, ok := res.(ports.RemoteHandle)
	if !ok {
		return nil, &ValidationError{Operation: op, Key: helper,
			Reason: "service returned no helper handle"}
	}
	return s.d.Call(ctx, h, s.root.v, op, args)
}

func joinKey(parent, name string) string {
	if parent == "/" {
		return "/" + name
	}
	return strings.TrimRight(parent, "/") + "/" + name
}
