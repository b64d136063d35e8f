package client

import (
	"context"

	"github.com/artpar/schedclient/core/registry"
	"github.com/artpar/schedclient/domain/variant"
	"github.com/artpar/schedclient/ports"
)

// SearchOptions narrow a Search. Zero values mean: search everything under
// the root, recursively, returning lite proxies.
type SearchOptions struct {
	Root    string               // subtree to search; "" means "/"
	Pattern string               // substring match on object names
	Filter  variant.ObjectFilter // object-kind bitmask; 0 means FilterAll
	Fields  string               // field-name selector; "" means "AllFields"
	Flat    bool                 // restrict to direct children of Root

	// Full refetches every hit at full density. Costs one extra fetch per
	// hit; without it hits are lite proxies and the full twin is a
	// Counterpart call away.
	Full bool
}

// Search finds objects under a subtree and materializes them as proxies.
func (s *Session) Search(ctx context.Context, o SearchOptions) ([]*Proxy, error) {
	root := o.Root
	if root == "" {
		root = "/"
	}
	filter := o.Filter
	if filter == 0 {
		filter = variant.FilterAll
	}
	fields := o.Fields
	if fields == "" {
		fields = "AllFields"
	}
	res, err := s.call(ctx, s.root, registry.OpSearch, ports.Args{
		"SearchRootKey": root,
		"SearchString":  o.Pattern,
		"ObjectFilter":  int(filter),
		"FieldNames":    fields,
		"Recursive":     !o.Flat,
	})
	if err != nil {
		return nil, err
	}
	return s.materialize(ctx, res, o.Full)
}
