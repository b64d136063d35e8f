package remote

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/artpar/schedclient/ports"
)

type bridgeStub struct {
	mux      *http.ServeMux
	requests []string
}

func newBridgeStub(t *testing.T) (*bridgeStub, *httptest.Server) {
	t.Helper()
	b := &bridgeStub{mux: http.NewServeMux()}

	b.mux.HandleFunc("/connect", func(w http.ResponseWriter, r *http.Request) {
		b.requests = append(b.requests, "/connect")
		var req connectRequest
		json.NewDecoder(r.Body).Decode(&req)
		if req.Server == "unreachable" {
			w.WriteHeader(http.StatusBadGateway)
			json.NewEncoder(w).Encode(faultBody{
				Code: 4040, Source: "bridge", Description: "scheduler unreachable",
			})
			return
		}
		json.NewEncoder(w).Encode(connectResponse{Root: "h-root", Version: 11})
	})
	b.mux.HandleFunc("/disconnect", func(w http.ResponseWriter, r *http.Request) {
		b.requests = append(b.requests, "/disconnect")
		w.WriteHeader(http.StatusOK)
	})
	b.mux.HandleFunc("/invoke", func(w http.ResponseWriter, r *http.Request) {
		var req invokeRequest
		json.NewDecoder(r.Body).Decode(&req)
		b.requests = append(b.requests, "/invoke:"+req.Operation)
		switch req.Operation {
		case "ObjectExists":
			json.NewEncoder(w).Encode(invokeResponse{Kind: "scalar", Value: json.RawMessage("true")})
		case "GetObject":
			json.NewEncoder(w).Encode(invokeResponse{Kind: "handle", Handle: "h-obj"})
		case "GetObjectsLite":
			json.NewEncoder(w).Encode(invokeResponse{Kind: "handles", Handles: []string{"h-1", "h-2"}})
		case "AddObject":
			// Handles travel as their tokens.
			if req.Args["Object"] != "h-obj" {
				w.WriteHeader(http.StatusBadRequest)
				json.NewEncoder(w).Encode(faultBody{
					Code: 4011, Source: "bridge", Description: "missing object token",
				})
				return
			}
			json.NewEncoder(w).Encode(invokeResponse{Kind: "none"})
		default:
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(faultBody{
				Code: 4001, Source: "scheduler", Description: "unsupported operation",
			})
		}
	})
	b.mux.HandleFunc("/property/get", func(w http.ResponseWriter, r *http.Request) {
		var req propertyRequest
		json.NewDecoder(r.Body).Decode(&req)
		b.requests = append(b.requests, "/property/get:"+req.Name)
		if req.Name == "Name" {
			json.NewEncoder(w).Encode(propertyResponse{Value: "plan"})
			return
		}
		json.NewEncoder(w).Encode(propertyResponse{Absent: true})
	})

	srv := httptest.NewServer(b.mux)
	t.Cleanup(srv.Close)
	return b, srv
}

func TestConnectAndInvoke(t *testing.T) {
	_, srv := newBridgeStub(t)
	tr := New(Config{BaseURL: srv.URL})
	ctx := context.Background()

	root, version, err := tr.Connect(ctx, "sched01", ports.Credentials{Username: "svc"})
	if err != nil {
		t.Fatalf("Connect: %v", err)
	}
	if version != 11 {
		t.Errorf("version = %d", version)
	}

	exists, err := root.Invoke(ctx, "ObjectExists", ports.Args{"ObjectKey": "/plan"})
	if err != nil {
		t.Fatalf("Invoke: %v", err)
	}
	if exists != true {
		t.Errorf("exists = %v", exists)
	}

	obj, err := root.Invoke(ctx, "GetObject", ports.Args{"ObjectKey": "/plan"})
	if err != nil {
		t.Fatalf("GetObject: %v", err)
	}
	h, ok := obj.(ports.RemoteHandle)
	if !ok {
		t.Fatalf("result = %T", obj)
	}

	kids, err := root.Invoke(ctx, "GetObjectsLite", nil)
	if err != nil {
		t.Fatalf("GetObjectsLite: %v", err)
	}
	if hs, ok := kids.([]ports.RemoteHandle); !ok || len(hs) != 2 {
		t.Errorf("children = %#v", kids)
	}

	// Handle-valued args are rewritten to their tokens.
	if _, err := root.Invoke(ctx, "AddObject", ports.Args{"DestinationKey": "/", "Object": h}); err != nil {
		t.Fatalf("AddObject: %v", err)
	}

	if err := tr.Disconnect(ctx); err != nil {
		t.Fatalf("Disconnect: %v", err)
	}
}

func TestFaultDecoding(t *testing.T) {
	_, srv := newBridgeStub(t)
	tr := New(Config{BaseURL: srv.URL})

	_, _, err := tr.Connect(context.Background(), "unreachable", ports.Credentials{})
	var fault *ports.Fault
	if !errors.As(err, &fault) {
		t.Fatalf("want Fault, got %v", err)
	}
	if fault.Code != 4040 || fault.Description != "scheduler unreachable" {
		t.Errorf("fault = %+v", fault)
	}
}

func TestPropertyAbsentSentinel(t *testing.T) {
	_, srv := newBridgeStub(t)
	tr := New(Config{BaseURL: srv.URL})
	ctx := context.Background()

	root, _, err := tr.Connect(ctx, "sched01", ports.Credentials{})
	if err != nil {
		t.Fatalf("Connect: %v", err)
	}

	name, err := root.Property(ctx, "Name")
	if err != nil || name != "plan" {
		t.Errorf("Name = %v, %v", name, err)
	}
	_, err = root.Property(ctx, "NoSuch")
	if !errors.Is(err, ports.ErrPropertyAbsent) {
		t.Errorf("absent property error = %v", err)
	}
}
