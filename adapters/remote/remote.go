// Package remote implements the transport against the HTTP bridge that
// fronts the scheduler's automation interface. The bridge speaks JSON:
// object handles are opaque string tokens it issues, and remote faults come
// back as a structured error body that maps onto ports.Fault.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/artpar/schedclient/ports"
)

// Config configures the bridge client.
type Config struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
	Headers map[string]string
}

// Transport implements ports.Transport over the bridge.
type Transport struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	headers    map[string]string
}

// New creates a bridge transport.
func New(cfg Config) *Transport {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	return &Transport{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    cfg.BaseURL,
		apiKey:     cfg.APIKey,
		headers:    cfg.Headers,
	}
}

type connectRequest struct {
	Server   string `json:"server"`
	Username string `json:"username,omitempty"`
	Password string `json:"password,omitempty"`
}

type connectResponse struct {
	Root    string `json:"root"`
	Version int    `json:"version"`
}

// Connect opens a bridge session and returns the root object handle and the
// service version the bridge negotiated.
func (t *Transport) Connect(ctx context.Context, server string, creds ports.Credentials) (ports.RemoteHandle, int, error) {
	var resp connectResponse
	err := t.post(ctx, "/connect", connectRequest{
		Server:   server,
		Username: creds.Username,
		Password: creds.Password,
	}, &resp)
	if err != nil {
		return nil, 0, err
	}
	return &bridgeHandle{t: t, id: resp.Root}, resp.Version, nil
}

// Disconnect closes the bridge session.
func (t *Transport) Disconnect(ctx context.Context) error {
	return t.post(ctx, "/disconnect", struct{}{}, nil)
}

// faultBody is the bridge's structured error payload.
type faultBody struct {
	Code        int    `json:"code"`
	Source      string `json:"source"`
	Description string `json:"description"`
	HelpFile    string `json:"helpFile"`
	HelpContext int    `json:"helpContext"`
}

func (t *Transport) post(ctx context.Context, path string, body, result any) error {
	data, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.baseURL+path, bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if t.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+t.apiKey)
	}
	for k, v := range t.headers {
		req.Header.Set(k, v)
	}

	resp, err := t.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		raw, _ := io.ReadAll(resp.Body)
		var fb faultBody
		if json.Unmarshal(raw, &fb) == nil && fb.Description != "" {
			return &ports.Fault{
				Code:        fb.Code,
				Source:      fb.Source,
				Description: fb.Description,
				HelpFile:    fb.HelpFile,
				HelpContext: fb.HelpContext,
			}
		}
		return fmt.Errorf("bridge error %d: %s", resp.StatusCode, string(raw))
	}

	if result != nil {
		if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}

// bridgeHandle is one opaque bridge-issued object token.
type bridgeHandle struct {
	t  *Transport
	id string
}

type invokeRequest struct {
	Handle    string     `json:"handle"`
	Operation string     `json:"operation"`
	Args      ports.Args `json:"args,omitempty"`
}

// invokeResponse distinguishes scalar results from handle results, since a
// handle token on the wire is just a string.
type invokeResponse struct {
	Kind    string          `json:"kind"` // "scalar", "handle", "handles", "none"
	Value   json.RawMessage `json:"value,omitempty"`
	Handle  string          `json:"handle,omitempty"`
	Handles []string        `json:"handles,omitempty"`
}

func (h *bridgeHandle) Invoke(ctx context.Context, op string, args ports.Args) (any, error) {
	var resp invokeResponse
	err := h.t.post(ctx, "/invoke", invokeRequest{
		Handle:    h.id,
		Operation: op,
		Args:      marshalArgs(args),
	}, &resp)
	if err != nil {
		return nil, err
	}

	switch resp.Kind {
	case "handle":
		return &bridgeHandle{t: h.t, id: resp.Handle}, nil
	case "handles":
		out := make([]ports.RemoteHandle, len(resp.Handles))
		for i, id := range resp.Handles {
			out[i] = &bridgeHandle{t: h.t, id: id}
		}
		return out, nil
	case "scalar":
		var v any
		if err := json.Unmarshal(resp.Value, &v); err != nil {
			return nil, fmt.Errorf("decode scalar result: %w", err)
		}
		return v, nil
	}
	return nil, nil
}

type propertyRequest struct {
	Handle string `json:"handle"`
	Name   string `json:"name"`
	Value  any    `json:"value,omitempty"`
}

type propertyResponse struct {
	Value  any  `json:"value"`
	Absent bool `json:"absent"`
}

func (h *bridgeHandle) Property(ctx context.Context, name string) (any, error) {
	var resp propertyResponse
	err := h.t.post(ctx, "/property/get", propertyRequest{Handle: h.id, Name: name}, &resp)
	if err != nil {
		return nil, err
	}
	if resp.Absent {
		return nil, ports.ErrPropertyAbsent
	}
	return resp.Value, nil
}

func (h *bridgeHandle) SetProperty(ctx context.Context, name string, value any) error {
	return h.t.post(ctx, "/property/set", propertyRequest{Handle: h.id, Name: name, Value: value}, nil)
}

// marshalArgs replaces handle values with their bridge tokens so arguments
// carrying objects (AddObject) survive JSON encoding.
func marshalArgs(args ports.Args) ports.Args {
	if args == nil {
		return nil
	}
	out := make(ports.Args, len(args))
	for k, v := range args {
		if bh, ok := v.(*bridgeHandle); ok {
			out[k] = bh.id
			continue
		}
		out[k] = v
	}
	return out
}

var (
	_ ports.Transport    = (*Transport)(nil)
	_ ports.RemoteHandle = (*bridgeHandle)(nil)
)
