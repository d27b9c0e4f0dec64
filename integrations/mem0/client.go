/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package mem0 is a small client for the Mem0 memory REST API, exposed as
// memory tool callbacks.
package mem0

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"chainguard.dev/readmeagent/agents/toolcall/callbacks"
)

// DefaultBaseURL is the hosted Mem0 memories endpoint.
const DefaultBaseURL = "https://api.mem0.ai/v1/memories/"

// Client talks to Mem0 on behalf of a single user.
type Client struct {
	apiKey  string
	userID  string
	baseURL string
	http    *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides DefaultBaseURL.
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = strings.TrimSuffix(u, "/") + "/" }
}

// WithHTTPClient sets the HTTP client used for requests.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// New returns a client scoped to userID.
func New(apiKey, userID string, opts ...Option) (*Client, error) {
	if apiKey == "" {
		return nil, errors.New("mem0 api key is required")
	}
	if userID == "" {
		return nil, errors.New("mem0 user id is required")
	}
	c := &Client{
		apiKey:  apiKey,
		userID:  userID,
		baseURL: DefaultBaseURL,
		http:    &http.Client{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Callbacks exposes the client as memory tool callbacks.
func (c *Client) Callbacks() callbacks.MemoryCallbacks {
	return callbacks.MemoryCallbacks{
		Add:    c.Add,
		Search: c.Search,
		List:   c.List,
	}
}

// Close releases idle connections.
func (c *Client) Close() error {
	c.http.CloseIdleConnections()
	return nil
}

type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Add stores content as a user message and returns the memories Mem0
// derived from it.
func (c *Client) Add(ctx context.Context, content string) ([]callbacks.Memory, error) {
	body := map[string]any{
		"messages": []message{{Role: "user", Content: content}},
		"user_id":  c.userID,
	}
	return c.do(ctx, http.MethodPost, c.baseURL, body)
}

// Search returns up to limit memories relevant to query.
func (c *Client) Search(ctx context.Context, query string, limit int) ([]callbacks.Memory, error) {
	body := map[string]any{
		"query":   query,
		"user_id": c.userID,
	}
	if limit > 0 {
		body["limit"] = limit
	}
	return c.do(ctx, http.MethodPost, c.baseURL+"search/", body)
}

// List returns every memory of the user.
func (c *Client) List(ctx context.Context) ([]callbacks.Memory, error) {
	return c.do(ctx, http.MethodGet, c.baseURL+"?"+url.Values{"user_id": {c.userID}}.Encode(), nil)
}

func (c *Client) do(ctx context.Context, method, target string, body any) ([]callbacks.Memory, error) {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Authorization", "Token "+c.apiKey)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("mem0 %s: %w", method, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &APIError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(raw))}
	}
	return decodeMemories(raw)
}

// decodeMemories accepts both a bare array and a {"results": [...]} object.
func decodeMemories(raw []byte) ([]callbacks.Memory, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return []callbacks.Memory{}, nil
	}
	var mems []callbacks.Memory
	if raw[0] == '[' {
		if err := json.Unmarshal(raw, &mems); err != nil {
			return nil, fmt.Errorf("decode memories: %w", err)
		}
		return mems, nil
	}
	var wrapped struct {
		Results []callbacks.Memory `json:"results"`
	}
	if err := json.Unmarshal(raw, &wrapped); err != nil {
		return nil, fmt.Errorf("decode memories: %w", err)
	}
	if wrapped.Results == nil {
		return []callbacks.Memory{}, nil
	}
	return wrapped.Results, nil
}

// APIError is a non-2xx response from Mem0.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("mem0 returned %d: %s", e.StatusCode, e.Body)
}
