/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package mem0_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"chainguard.dev/readmeagent/agents/toolcall/callbacks"
	"chainguard.dev/readmeagent/integrations/mem0"
	"github.com/google/go-cmp/cmp"
)

type recorded struct {
	method, path, query, auth string
	body                      map[string]any
}

func fakeMem0(t *testing.T, status int, reply string) (*mem0.Client, *[]recorded) {
	t.Helper()
	var reqs []recorded
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := recorded{method: r.Method, path: r.URL.Path, query: r.URL.RawQuery, auth: r.Header.Get("Authorization")}
		if b, _ := io.ReadAll(r.Body); len(b) > 0 {
			_ = json.Unmarshal(b, &rec.body)
		}
		reqs = append(reqs, rec)
		w.WriteHeader(status)
		_, _ = io.WriteString(w, reply)
	}))
	t.Cleanup(srv.Close)

	c, err := mem0.New("m0-key", "readme-generator-agent", mem0.WithBaseURL(srv.URL+"/v1/memories"), mem0.WithHTTPClient(srv.Client()))
	if err != nil {
		t.Fatalf("New() = %v", err)
	}
	return c, &reqs
}

func TestAdd(t *testing.T) {
	c, reqs := fakeMem0(t, http.StatusOK, `{"results":[{"id":"m1","memory":"Prefers shields.io badges","event":"ADD"}]}`)

	got, err := c.Callbacks().Add(context.Background(), "I like shields.io badges")
	if err != nil {
		t.Fatalf("Add() = %v", err)
	}
	want := []callbacks.Memory{{ID: "m1", Memory: "Prefers shields.io badges", Event: "ADD"}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Add() (-want +got):\n%s", diff)
	}

	req := (*reqs)[0]
	if req.method != http.MethodPost || req.path != "/v1/memories/" {
		t.Errorf("request: got = %s %s, wanted = POST /v1/memories/", req.method, req.path)
	}
	if req.auth != "Token m0-key" {
		t.Errorf("Authorization: got = %q, wanted = %q", req.auth, "Token m0-key")
	}
	wantBody := map[string]any{
		"messages": []any{map[string]any{"role": "user", "content": "I like shields.io badges"}},
		"user_id":  "readme-generator-agent",
	}
	if diff := cmp.Diff(wantBody, req.body); diff != "" {
		t.Errorf("body (-want +got):\n%s", diff)
	}
}

func TestSearchAndList(t *testing.T) {
	c, reqs := fakeMem0(t, http.StatusOK, `[{"id":"m1","memory":"Uses MIT license","score":0.91}]`)
	ctx := context.Background()

	got, err := c.Search(ctx, "license", 3)
	if err != nil {
		t.Fatalf("Search() = %v", err)
	}
	if len(got) != 1 || got[0].Score != 0.91 {
		t.Errorf("Search(): got = %+v, wanted one scored memory", got)
	}
	if req := (*reqs)[0]; req.path != "/v1/memories/search/" || req.body["limit"] != float64(3) {
		t.Errorf("search request: got = %s %v, wanted /v1/memories/search/ with limit 3", req.path, req.body)
	}

	if _, err := c.List(ctx); err != nil {
		t.Fatalf("List() = %v", err)
	}
	if req := (*reqs)[1]; req.method != http.MethodGet || req.query != "user_id=readme-generator-agent" {
		t.Errorf("list request: got = %s ?%s, wanted GET ?user_id=readme-generator-agent", req.method, req.query)
	}
}

func TestAPIError(t *testing.T) {
	c, _ := fakeMem0(t, http.StatusUnauthorized, `{"detail":"Invalid API key"}`)
	_, err := c.List(context.Background())
	var apiErr *mem0.APIError
	if !errors.As(err, &apiErr) || apiErr.StatusCode != http.StatusUnauthorized {
		t.Errorf("List(): got = %v, wanted APIError 401", err)
	}
}

func TestNewValidation(t *testing.T) {
	if _, err := mem0.New("", "user"); err == nil {
		t.Error("New(no key): got = nil, wanted error")
	}
	if _, err := mem0.New("key", ""); err == nil {
		t.Error("New(no user): got = nil, wanted error")
	}
}
