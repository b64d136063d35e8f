// Package memory provides an in-memory stand-in for the remote scheduler
// service. It honors the same handle contract as the real transport,
// including the version<=9 type-code defect, so the resolution heuristics
// can be exercised without a live service.
package memory

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/artpar/schedclient/domain/variant"
	"github.com/artpar/schedclient/ports"
)

// Service is one fake scheduler instance holding an object tree.
// All access is serialized internally so tests may share one instance.
type Service struct {
	mu      sync.Mutex
	version int
	nextID  int64
	root    *object
	byID    map[int64]*object
	calls   map[string]int
}

type object struct {
	id       int64
	code     int
	name     string
	label    string
	enabled  bool
	deleted  bool
	parent   *object
	children []*object
	props    map[string]any

	// associated schedule object IDs, for plans and jobs
	schedules []int64
}

// NewService creates a fake service reporting the given version. The tree
// starts with only the scheduler root ("/").
func NewService(version int) *Service {
	s := &Service{
		version: version,
		nextID:  1000,
		byID:    make(map[int64]*object),
		calls:   make(map[string]int),
	}
	s.root = &object{
		id:      s.nextID,
		code:    variant.CodeJobScheduler,
		name:    "scheduler",
		enabled: true,
		props:   map[string]any{},
	}
	s.byID[s.root.id] = s.root
	return s
}

// Add creates an object of the given raw type code under parentKey and
// returns its ID. Plans and jobs automatically carry the plan-distinguishing
// property; plans and folders carry the folder-distinguishing one, matching
// the live service.
func (s *Service) Add(parentKey string, code int, name string, props map[string]any) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	parent := s.lookupLocked(parentKey)
	if parent == nil {
		return 0, fmt.Errorf("memory: parent %q not found", parentKey)
	}
	obj := s.newObjectLocked(code, name, props)
	s.attachLocked(parent, obj)
	return obj.id, nil
}

// Associate links a schedule to a plan or job for GetAssociatedSchedules.
func (s *Service) Associate(ownerKey, scheduleKey string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	owner := s.lookupLocked(ownerKey)
	sched := s.lookupLocked(scheduleKey)
	if owner == nil || sched == nil {
		return fmt.Errorf("memory: association %q -> %q not resolvable", ownerKey, scheduleKey)
	}
	owner.schedules = append(owner.schedules, sched.id)
	return nil
}

// Calls returns how many times an operation was invoked, any object.
func (s *Service) Calls(op string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls[op]
}

// ResetCalls zeroes the per-operation counters.
func (s *Service) ResetCalls() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = make(map[string]int)
}

// Exists reports whether a key currently resolves, bypassing the handle
// contract. Test helper.
func (s *Service) Exists(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lookupLocked(key) != nil
}

func (s *Service) newObjectLocked(code int, name string, props map[string]any) *object {
	s.nextID++
	obj := &object{
		id:      s.nextID,
		code:    code,
		name:    name,
		label:   name,
		enabled: true,
		props:   map[string]any{},
	}
	for k, v := range props {
		obj.props[k] = v
	}
	if code == variant.CodePlan || code == variant.CodeJob {
		if _, ok := obj.props["DisableTemplateOnError"]; !ok {
			obj.props["DisableTemplateOnError"] = false
		}
	}
	if code == variant.CodePlan || code == variant.CodeFolder {
		if _, ok := obj.props["ReplacePermissionsOnChildObjects"]; !ok {
			obj.props["ReplacePermissionsOnChildObjects"] = false
		}
	}
	s.byID[obj.id] = obj
	return obj
}

func (s *Service) attachLocked(parent, child *object) {
	child.parent = parent
	parent.children = append(parent.children, child)
}

func (s *Service) detachLocked(child *object) {
	if child.parent == nil {
		return
	}
	siblings := child.parent.children
	for i, c := range siblings {
		if c == child {
			child.parent.children = append(siblings[:i], siblings[i+1:]...)
			break
		}
	}
	child.parent = nil
}

// lookupLocked resolves a path ("/a/b"), "/" for the root, or a numeric ID.
func (s *Service) lookupLocked(key string) *object {
	if key == "/" || key == "" {
		return s.root
	}
	var id int64
	if _, err := fmt.Sscanf(key, "%d", &id); err == nil && fmt.Sprintf("%d", id) == key {
		if obj, ok := s.byID[id]; ok && !obj.deleted {
			return obj
		}
		return nil
	}
	cur := s.root
	for _, seg := range strings.Split(strings.Trim(key, "/"), "/") {
		var next *object
		for _, c := range cur.children {
			if c.name == seg && !c.deleted {
				next = c
				break
			}
		}
		if next == nil {
			return nil
		}
		cur = next
	}
	return cur
}

func keyArg(args ports.Args, names ...string) string {
	for _, n := range names {
		if v, ok := args[n]; ok {
			switch k := v.(type) {
			case string:
				return k
			case int:
				return fmt.Sprintf("%d", k)
			case int64:
				return fmt.Sprintf("%d", k)
			case float64:
				return fmt.Sprintf("%d", int64(k))
			}
		}
	}
	return ""
}

func (o *object) fullPath() string {
	if o.parent == nil {
		return "/"
	}
	parent := o.parent.fullPath()
	if parent == "/" {
		return "/" + o.name
	}
	return parent + "/" + o.name
}

func notFound(key string) *ports.Fault {
	return &ports.Fault{
		Code:        4005,
		Source:      "scheduler",
		Description: fmt.Sprintf("object %q does not exist", key),
	}
}

// exportNode is the interchange representation used by Export/Import.
type exportNode struct {
	Code     int            `json:"code"`
	Name     string         `json:"name"`
	Label    string         `json:"label"`
	Props    map[string]any `json:"props,omitempty"`
	Children []exportNode   `json:"children,omitempty"`
}

func (s *Service) exportLocked(obj *object) exportNode {
	node := exportNode{Code: obj.code, Name: obj.name, Label: obj.label, Props: obj.props}
	for _, c := range obj.children {
		if !c.deleted {
			node.Children = append(node.Children, s.exportLocked(c))
		}
	}
	return node
}

func (s *Service) importLocked(parent *object, node exportNode) *object {
	obj := s.newObjectLocked(node.Code, node.Name, node.Props)
	obj.label = node.Label
	s.attachLocked(parent, obj)
	for _, c := range node.Children {
		s.importLocked(obj, c)
	}
	return obj
}

func marshalExport(node exportNode) (string, error) {
	b, err := json.Marshal(node)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func unmarshalExport(payload string) (exportNode, error) {
	var node exportNode
	err := json.Unmarshal([]byte(payload), &node)
	return node, err
}

// Transport implements ports.Transport over a fake service.
type Transport struct {
	svc       *Service
	connected bool
}

// NewTransport wraps a service.
func NewTransport(svc *Service) *Transport {
	return &Transport{svc: svc}
}

// Connect hands out the root handle at full density.
func (t *Transport) Connect(_ context.Context, _ string, _ ports.Credentials) (ports.RemoteHandle, int, error) {
	t.connected = true
	return &handle{svc: t.svc, obj: t.svc.root}, t.svc.version, nil
}

// Disconnect drops the connection flag.
func (t *Transport) Disconnect(context.Context) error {
	t.connected = false
	return nil
}

var _ ports.Transport = (*Transport)(nil)
