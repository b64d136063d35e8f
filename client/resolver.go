package client

import (
	"context"
	"fmt"

	"github.com/artpar/schedclient/core/dispatch"
	"github.com/artpar/schedclient/core/registry"
	"github.com/artpar/schedclient/domain/variant"
	"github.com/artpar/schedclient/ports"
)

// VariantOf resolves the variant of the object at key without fetching it.
// The heuristic probe for ambiguous codes needs a full-density handle, so
// resolution may cost one full fetch on old services.
func (s *Session) VariantOf(ctx context.Context, key string, lite bool) (variant.Variant, error) {
	code, err := s.typeCode(ctx, key)
	if err != nil {
		return variant.Unsupported, err
	}
	if !s.codeAmbiguous(code) {
		return variant.FromCode(code, lite), nil
	}
	h, err := s.fetchHandle(ctx, registry.OpGetObject, key)
	if err != nil {
		return variant.Unsupported, err
	}
	return s.probeAmbiguousCode(ctx, h, key, code, lite)
}

func (s *Session) typeCode(ctx context.Context, key string) (int, error) {
	res, err := s.call(ctx, s.root, registry.OpGetObjectType, ports.Args{"ObjectKey": key})
	if err != nil {
		return 0, err
	}
	return toInt(res), nil
}

// resolveVariant classifies an already-fetched handle. A full handle is
// probed directly; the distinguishing properties only exist on the full
// representation, so a lite handle costs one full fetch when the code is
// ambiguous.
func (s *Session) resolveVariant(ctx context.Context, h ports.RemoteHandle, key string, lite bool) (variant.Variant, error) {
	code, err := s.typeCode(ctx, key)
	if err != nil {
		return variant.Unsupported, err
	}
	if !s.codeAmbiguous(code) {
		return variant.FromCode(code, lite), nil
	}
	if lite {
		h, err = s.fetchHandle(ctx, registry.OpGetObject, key)
		if err != nil {
			return variant.Unsupported, err
		}
	}
	return s.probeAmbiguousCode(ctx, h, key, code, lite)
}

// fetchHandle dispatches a retrieval operation and asserts the result is a
// handle. key may be a hierarchical key or a stable numeric ID.
func (s *Session) fetchHandle(ctx context.Context, op string, key any) (ports.RemoteHandle, error) {
	res, err := s.call(ctx, s.root, op, ports.Args{"ObjectKey": key})
	if err != nil {
		return nil, err
	}
	h, ok := res.(ports.RemoteHandle)
	if !ok {
		return nil, fmt.Errorf("client: %s for %v returned %T, want handle", op, key, res)
	}
	return h, nil
}

// codeAmbiguous reports whether a type code cannot be trusted on this
// service version. Versions through 9 report folders with the plan code.
func (s *Session) codeAmbiguous(code int) bool {
	return s.version <= 9 && code == variant.CodePlan
}

// probeAmbiguousCode settles plan-vs-folder by probing full-density
// properties only one of the two exposes. Plans (and jobs) carry
// DisableTemplateOnError; folders carry ReplacePermissionsOnChildObjects
// without it.
func (s *Session) probeAmbiguousCode(ctx context.Context, h ports.RemoteHandle, key string, code int, lite bool) (variant.Variant, error) {
	probe, err := dispatch.ProbeProperty(ctx, h, "DisableTemplateOnError")
	if err != nil {
		return variant.Unsupported, fmt.Errorf("client: probing type of %q: %w", key, err)
	}
	if probe == dispatch.ProbePresent {
		return pickDensity(variant.Plan, lite), nil
	}

	probe, err = dispatch.ProbeProperty(ctx, h, "ReplacePermissionsOnChildObjects")
	if err != nil {
		return variant.Unsupported, fmt.Errorf("client: probing type of %q: %w", key, err)
	}
	if probe == dispatch.ProbePresent {
		return pickDensity(variant.Folder, lite), nil
	}

	ambErr := &AmbiguousTypeError{Key: key, Code: code, Version: s.version}
	s.logger.Error().
		Str("key", key).
		Int("type_code", code).
		Int("service_version", s.version).
		Msg("type resolution exhausted both probes")
	return variant.Unsupported, ambErr
}

func pickDensity(full variant.Variant, lite bool) variant.Variant {
	if lite {
		return full.Other()
	}
	return full
}
