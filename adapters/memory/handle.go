package memory

import (
	"context"
	"fmt"
	"strings"

	"github.com/artpar/schedclient/domain/variant"
	"github.com/artpar/schedclient/ports"
)

// handle is a fake remote handle. Utility handles (Export/Import helpers)
// have a non-empty util field and no backing object.
type handle struct {
	svc  *Service
	obj  *object
	lite bool
	util string
}

var _ ports.RemoteHandle = (*handle)(nil)

func (h *handle) Invoke(_ context.Context, op string, args ports.Args) (any, error) {
	s := h.svc
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls[op]++

	if h.util != "" {
		return h.invokeUtilLocked(op, args)
	}

	switch op {
	case "GetObjectType":
		key := keyArg(args, "ObjectKey")
		obj := s.lookupLocked(key)
		if obj == nil {
			return nil, notFound(key)
		}
		// Versions <= 9 report folders with the plan code. Known service
		// defect, fixed in 10.
		if s.version <= 9 && obj.code == variant.CodeFolder {
			return variant.CodePlan, nil
		}
		return obj.code, nil

	case "ObjectExists":
		return s.lookupLocked(keyArg(args, "ObjectKey")) != nil, nil

	case "GetObject", "GetObjectLite":
		key := keyArg(args, "ObjectKey")
		obj := s.lookupLocked(key)
		if obj == nil {
			return nil, notFound(key)
		}
		return &handle{svc: s, obj: obj, lite: op == "GetObjectLite"}, nil

	case "CreateObject":
		name, _ := args["ObjectName"].(string)
		switch name {
		case "Export", "Import":
			return &handle{svc: s, util: name}, nil
		case "Folder":
			// Created detached; AddObject files it under a parent.
			obj := s.newObjectLocked(variant.CodeFolder, "", nil)
			return &handle{svc: s, obj: obj}, nil
		default:
			return nil, &ports.Fault{Code: 4010, Source: "scheduler",
				Description: fmt.Sprintf("%q is not a creatable object name", name)}
		}

	case "AddObject":
		destKey := keyArg(args, "DestinationKey")
		dest := s.lookupLocked(destKey)
		if dest == nil {
			return nil, notFound(destKey)
		}
		child, ok := args["Object"].(*handle)
		if !ok {
			return nil, &ports.Fault{Code: 4011, Source: "scheduler",
				Description: "AddObject requires an object handle"}
		}
		s.detachLocked(child.obj)
		s.attachLocked(dest, child.obj)
		return nil, nil

	case "MoveObject":
		srcKey := keyArg(args, "SourceKey")
		destKey := keyArg(args, "DestinationKey")
		src := s.lookupLocked(srcKey)
		if src == nil {
			return nil, notFound(srcKey)
		}
		dest := s.lookupLocked(destKey)
		if dest == nil {
			return nil, notFound(destKey)
		}
		s.detachLocked(src)
		s.attachLocked(dest, src)
		return nil, nil

	case "Search":
		rootKey := keyArg(args, "SearchRootKey")
		root := s.lookupLocked(rootKey)
		if root == nil {
			return nil, notFound(rootKey)
		}
		pattern, _ := args["SearchString"].(string)
		var out []ports.RemoteHandle
		s.searchLocked(root, pattern, &out)
		return out, nil

	case "GetObjectsLite":
		var out []ports.RemoteHandle
		for _, c := range h.obj.children {
			if !c.deleted {
				out = append(out, &handle{svc: s, obj: c, lite: true})
			}
		}
		return out, nil

	case "GetAssociatedSchedules":
		var out []ports.RemoteHandle
		for _, id := range h.obj.schedules {
			if sched, ok := s.byID[id]; ok && !sched.deleted {
				out = append(out, &handle{svc: s, obj: sched})
			}
		}
		return out, nil

	case "TimeSpec_GetExactTimes":
		if times, ok := h.obj.props["TimeSpec_ExactTimes"].([]string); ok {
			return times, nil
		}
		return []string{}, nil

	case "Delete", "DeleteEx":
		h.obj.deleted = true
		s.detachLocked(h.obj)
		return nil, nil

	case "Enable":
		h.obj.enabled = true
		return nil, nil

	case "Disable":
		h.obj.enabled = false
		return nil, nil

	case "GetInstances", "GetChildInstances", "GetVariables", "GetCounters",
		"GetAudits", "GetAssociations", "GetAlerts", "GetDependencies":
		return []ports.RemoteHandle{}, nil

	case "HasPermission":
		return true, nil

	case "Update", "RefreshData", "TakeOwnership", "ResetCounters",
		"ResetAverage", "UpdateCounters", "Trigger", "FlushInstances",
		"Publish", "Unpublish":
		return nil, nil
	}

	return nil, &ports.Fault{Code: 4001, Source: "scheduler",
		Description: fmt.Sprintf("operation %q not supported by this object", op)}
}

func (h *handle) invokeUtilLocked(op string, args ports.Args) (any, error) {
	s := h.svc
	switch {
	case h.util == "Export" && op == "Export":
		key := keyArg(args, "ObjectKey", "ID")
		obj := s.lookupLocked(key)
		if obj == nil {
			return nil, notFound(key)
		}
		return marshalExport(s.exportLocked(obj))

	case h.util == "Import" && op == "Import":
		destKey := keyArg(args, "DestinationKey")
		dest := s.lookupLocked(destKey)
		if dest == nil {
			return nil, notFound(destKey)
		}
		payload, _ := args["Payload"].(string)
		node, err := unmarshalExport(payload)
		if err != nil {
			return nil, &ports.Fault{Code: 4020, Source: "scheduler",
				Description: "import payload is not a valid interchange document"}
		}
		s.importLocked(dest, node)
		return nil, nil
	}
	return nil, &ports.Fault{Code: 4001, Source: "scheduler",
		Description: fmt.Sprintf("operation %q not supported by %s helper", op, h.util)}
}

func (s *Service) searchLocked(root *object, pattern string, out *[]ports.RemoteHandle) {
	for _, c := range root.children {
		if c.deleted {
			continue
		}
		if pattern == "" || pattern == "*" || strings.Contains(c.name, pattern) {
			*out = append(*out, &handle{svc: s, obj: c, lite: true})
		}
		s.searchLocked(c, pattern, out)
	}
}

func (h *handle) Property(_ context.Context, name string) (any, error) {
	s := h.svc
	s.mu.Lock()
	defer s.mu.Unlock()

	if h.util != "" {
		return nil, ports.ErrPropertyAbsent
	}
	switch name {
	case "ID":
		return h.obj.id, nil
	case "Name":
		return h.obj.name, nil
	case "Label":
		return h.obj.label, nil
	case "FullPath", "Path":
		return h.obj.fullPath(), nil
	case "Enabled":
		return h.obj.enabled, nil
	case "ParentID":
		if h.obj.parent == nil {
			return int64(0), nil
		}
		return h.obj.parent.id, nil
	}
	// Lite handles carry only the identity fields above, mirroring the
	// live service's reduced representation.
	if h.lite {
		return nil, ports.ErrPropertyAbsent
	}
	if v, ok := h.obj.props[name]; ok {
		return v, nil
	}
	return nil, ports.ErrPropertyAbsent
}

func (h *handle) SetProperty(_ context.Context, name string, value any) error {
	s := h.svc
	s.mu.Lock()
	defer s.mu.Unlock()

	if h.util != "" {
		return ports.ErrPropertyAbsent
	}
	switch name {
	case "Name":
		h.obj.name, _ = value.(string)
	case "Label":
		h.obj.label, _ = value.(string)
	default:
		h.obj.props[name] = value
	}
	return nil
}
