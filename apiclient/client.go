// Package apiclient talks to a running Quill API server over its TCP line
// protocol.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/quill-input/quill/apitypes"
)

// Client provides a high-level interface to the Quill API, handling request
// formatting, response parsing, and error handling.
type Client struct{ transport *Transport }

// New constructs a high-level API client using the internal low-level Transport.
// The addr parameter specifies the TCP address (host:port) of the Quill API server.
func New(addr string) *Client { return &Client{transport: NewTransport(addr)} }

// NewWithPassword constructs a client that authenticates with the given password.
func NewWithPassword(addr, password string) *Client {
	return &Client{transport: NewTransportWithPassword(addr, password)}
}

// NewWithConfig constructs a client with custom transport timeouts.
func NewWithConfig(addr string, cfg *Config) *Client {
	return &Client{transport: NewTransportWithConfig(addr, cfg)}
}

// WithTransport constructs a Client using a custom Transport implementation.
// This is primarily useful for testing or when advanced transport configuration is needed.
func WithTransport(t *Transport) *Client { return &Client{transport: t} }

// Ping returns the version and identity of the Quill server.
func (c *Client) Ping() (*apitypes.PingResponse, error) {
	return c.PingCtx(context.Background())
}

// PingCtx is the context-aware version of Ping.
func (c *Client) PingCtx(ctx context.Context) (*apitypes.PingResponse, error) {
	const path = "ping"
	raw, err := c.transport.DoCtx(ctx, path, nil, nil)
	if err != nil {
		return nil, err
	}
	return parse[apitypes.PingResponse](raw)
}

// Type types the given text on the server's keyboard.
func (c *Client) Type(text string) (*apitypes.TypeResponse, error) {
	return c.TypeCtx(context.Background(), text)
}

func (c *Client) TypeCtx(ctx context.Context, text string) (*apitypes.TypeResponse, error) {
	const path = "type"
	raw, err := c.transport.DoCtx(ctx, path, apitypes.TypeRequest{Text: text}, nil)
	if err != nil {
		return nil, err
	}
	return parse[apitypes.TypeResponse](raw)
}

// Key presses, releases or clicks a named key on the server's keyboard.
// The direction is "press", "release" or "click".
func (c *Client) Key(name, direction string) (*apitypes.KeyResponse, error) {
	return c.KeyCtx(context.Background(), name, direction)
}

func (c *Client) KeyCtx(ctx context.Context, name, direction string) (*apitypes.KeyResponse, error) {
	if direction == "" {
		direction = "click"
	}
	pathParams := map[string]string{"action": direction}
	const path = "key/{action}"
	raw, err := c.transport.DoCtx(ctx, path, apitypes.KeyRequest{Key: name}, pathParams)
	if err != nil {
		return nil, err
	}
	return parse[apitypes.KeyResponse](raw)
}

// MouseMove moves the server's pointer, relative by default or absolute.
func (c *Client) MouseMove(x, y int, absolute bool) (*apitypes.MouseMoveResponse, error) {
	return c.MouseMoveCtx(context.Background(), x, y, absolute)
}

func (c *Client) MouseMoveCtx(ctx context.Context, x, y int, absolute bool) (*apitypes.MouseMoveResponse, error) {
	const path = "mouse/move"
	req := apitypes.MouseMoveRequest{X: x, Y: y, Absolute: absolute}
	raw, err := c.transport.DoCtx(ctx, path, req, nil)
	if err != nil {
		return nil, err
	}
	return parse[apitypes.MouseMoveResponse](raw)
}

// MouseButton presses, releases or clicks a mouse button on the server.
func (c *Client) MouseButton(button, direction string) (*apitypes.MouseButtonResponse, error) {
	return c.MouseButtonCtx(context.Background(), button, direction)
}

func (c *Client) MouseButtonCtx(ctx context.Context, button, direction string) (*apitypes.MouseButtonResponse, error) {
	const path = "mouse/button"
	req := apitypes.MouseButtonRequest{Button: button, Direction: direction}
	raw, err := c.transport.DoCtx(ctx, path, req, nil)
	if err != nil {
		return nil, err
	}
	return parse[apitypes.MouseButtonResponse](raw)
}

// MouseScroll scrolls the server's mouse wheel along the given axis.
func (c *Client) MouseScroll(axis string, amount int) (*apitypes.MouseScrollResponse, error) {
	return c.MouseScrollCtx(context.Background(), axis, amount)
}

func (c *Client) MouseScrollCtx(ctx context.Context, axis string, amount int) (*apitypes.MouseScrollResponse, error) {
	const path = "mouse/scroll"
	req := apitypes.MouseScrollRequest{Axis: axis, Amount: amount}
	raw, err := c.transport.DoCtx(ctx, path, req, nil)
	if err != nil {
		return nil, err
	}
	return parse[apitypes.MouseScrollResponse](raw)
}

// Status reports the server's backend name and keycode ledger counters.
func (c *Client) Status() (*apitypes.StatusResponse, error) {
	return c.StatusCtx(context.Background())
}

func (c *Client) StatusCtx(ctx context.Context) (*apitypes.StatusResponse, error) {
	const path = "status"
	raw, err := c.transport.DoCtx(ctx, path, nil, nil)
	if err != nil {
		return nil, err
	}
	return parse[apitypes.StatusResponse](raw)
}

func parse[T any](data string) (*T, error) {
	if data == "" {
		return nil, errors.New("empty response")
	}
	var problem apitypes.ApiError
	if err := json.Unmarshal([]byte(data), &problem); err == nil && (problem.Status != 0 || problem.Title != "") {
		return nil, &problem
	}
	var out T
	dec := json.NewDecoder(bytes.NewReader([]byte(data)))
	if err := dec.Decode(&out); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	return &out, nil
}
