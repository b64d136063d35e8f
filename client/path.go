package client

import (
	"context"

	"github.com/artpar/schedclient/core/registry"
	"github.com/artpar/schedclient/domain/objpath"
	"github.com/artpar/schedclient/ports"
)

// EnsurePath makes every folder along the hierarchical key exist, root to
// leaf, creating the missing ones, then returns the leaf as a full proxy.
// Already-existing components are left untouched, so the call is idempotent.
//
// Numeric ID keys name an object but not a location: there is nothing to
// create for them. They are logged and skipped, returning a nil proxy.
func (s *Session) EnsurePath(ctx context.Context, key string) (*Proxy, error) {
	if objpath.IsNumericID(key) {
		s.logger.Warn().
			Str("key", key).
			Msg("ensure-path skipped: numeric ID carries no hierarchy")
		return nil, nil
	}

	for _, c := range objpath.Decompose(key) {
		exists, err := s.Exists(ctx, c.Key)
		if err != nil {
			return nil, err
		}
		if exists {
			continue
		}
		if err := s.createFolder(ctx, c); err != nil {
			return nil, err
		}
		s.logger.Info().
			Str("key", c.Key).
			Str("parent", c.Parent).
			Msg("folder created")
	}
	return s.Object(ctx, key, false)
}

// createFolder creates one detached folder, names it, and files it under
// its parent.
func (s *Session) createFolder(ctx context.Context, c objpath.Component) error {
	res, err := s.call(ctx, s.root, registry.OpCreateObject, ports.Args{"ObjectName": "Folder"})
	if err != nil {
		return err
	}
	h, ok := res.(ports.RemoteHandle)
	if !ok {
		return &ValidationError{Operation: registry.OpCreateObject, Key: c.Key,
			Reason: "service returned no object handle"}
	}
	if err := h.SetProperty(ctx, "Name", c.Label); err != nil {
		return err
	}
	if err := h.SetProperty(ctx, "Label", c.Label); err != nil {
		return err
	}
	_, err = s.call(ctx, s.root, registry.OpAddObject, ports.Args{
		"DestinationKey": c.Parent,
		"Object":         h,
	})
	return err
}
