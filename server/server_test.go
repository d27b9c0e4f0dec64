/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package server

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"chainguard.dev/readmeagent/agents/conversation"
	"chainguard.dev/readmeagent/agents/dispatcher"
	"chainguard.dev/readmeagent/agents/executor/openaiexecutor"
	"chainguard.dev/readmeagent/config"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeHandler struct {
	err  error
	init bool
	got  conversation.Conversation
}

func (f *fakeHandler) Handle(_ context.Context, conv conversation.Conversation) (*openaiexecutor.Result, error) {
	f.got = conv
	if f.err != nil {
		return nil, f.err
	}
	return &openaiexecutor.Result{RunID: "run-1", Status: openaiexecutor.StatusCompleted, Content: "# widget"}, nil
}

func (f *fakeHandler) Initialized() bool { return f.init }

func newTestServer(t *testing.T, cfg *config.AgentConfig, h Handler) *Server {
	t.Helper()
	s, err := New(cfg, h, WithGatherer(prometheus.NewRegistry()), WithSkills("get_repository", "write_file"))
	require.NoError(t, err)
	return s
}

func post(t *testing.T, s http.Handler, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/v1/runs", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	return rec
}

func TestRun(t *testing.T) {
	h := &fakeHandler{}
	s := newTestServer(t, config.Default(), h)

	rec := post(t, s, `{"messages":[{"role":"user","content":"Generate a README for acme/widget"}]}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var result openaiexecutor.Result
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	require.Equal(t, "# widget", result.Content)
	require.Equal(t, conversation.Conversation{conversation.User("Generate a README for acme/widget")}, h.got)
	require.NotEmpty(t, rec.Header().Get("X-Request-Id"))
}

func TestRunErrorStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{{
		name: "empty conversation",
		err:  conversation.ErrEmpty,
		want: http.StatusBadRequest,
	}, {
		name: "invalid role",
		err:  conversation.ErrInvalidRole,
		want: http.StatusBadRequest,
	}, {
		name: "initialization failure",
		err:  &dispatcher.InitError{Err: errors.New("no API key provided")},
		want: http.StatusServiceUnavailable,
	}, {
		name: "uninitialized",
		err:  dispatcher.ErrUninitialized,
		want: http.StatusServiceUnavailable,
	}, {
		name: "provider failure",
		err:  errors.New("chat completion: 500 Internal Server Error"),
		want: http.StatusBadGateway,
	}}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := newTestServer(t, config.Default(), &fakeHandler{err: tc.err})
			rec := post(t, s, `{"messages":[{"role":"user","content":"hi"}]}`)
			require.Equal(t, tc.want, rec.Code)

			var body map[string]string
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			require.Equal(t, tc.err.Error(), body["error"])
		})
	}
}

func TestRunMalformedBody(t *testing.T) {
	s := newTestServer(t, config.Default(), &fakeHandler{})
	rec := post(t, s, `{"messages":`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHealth(t *testing.T) {
	s := newTestServer(t, config.Default(), &fakeHandler{init: true})
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"status":"ok","initialized":true}`, rec.Body.String())
}

func TestAgentCard(t *testing.T) {
	s := newTestServer(t, config.Default(), &fakeHandler{})
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/.well-known/agent.json", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var card Card
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &card))
	require.Equal(t, "readme-generator-agent", card.Name)
	require.Equal(t, "http://127.0.0.1:3773", card.URL)
	require.Equal(t, []string{"get_repository", "write_file"}, card.Skills)
	require.Contains(t, card.InputSchema, "properties")
	require.Contains(t, card.OutputSchema, "properties")
}

func TestAgentCardHidden(t *testing.T) {
	cfg := config.Default()
	cfg.Deployment.Expose = false
	s := newTestServer(t, cfg, &fakeHandler{})
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/.well-known/agent.json", nil))
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCORS(t *testing.T) {
	cfg := config.Default()
	cfg.Deployment.CORSOrigins = []string{"https://docs.example.com"}
	s := newTestServer(t, cfg, &fakeHandler{})

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set("Origin", "https://docs.example.com")
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	require.Equal(t, "https://docs.example.com", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestInvalidTrustedProxy(t *testing.T) {
	cfg := config.Default()
	cfg.Deployment.ProxyURLs = []string{"not-an-ip"}
	_, err := New(cfg, &fakeHandler{}, WithGatherer(prometheus.NewRegistry()))
	require.Error(t, err)
}

func TestMetricsEndpoint(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := prometheus.NewCounter(prometheus.CounterOpts{Name: "readme_agent_test_total", Help: "test"})
	reg.MustRegister(c)
	c.Inc()

	s, err := New(config.Default(), &fakeHandler{}, WithGatherer(reg))
	require.NoError(t, err)
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "readme_agent_test_total 1")
}

func TestServeShutsDownWithContext(t *testing.T) {
	s := newTestServer(t, config.Default(), &fakeHandler{})
	lis, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Serve(ctx, lis) }()

	resp, err := http.Get("http://" + lis.Addr().String() + "/healthz")
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Serve did not return after cancellation")
	}
}

func TestRunRateLimit(t *testing.T) {
	cfg := config.Default()
	cfg.Deployment.RateLimitRPM = 1
	cfg.Deployment.RateBurst = 2
	s := newTestServer(t, cfg, &fakeHandler{})

	body := `{"messages":[{"role":"user","content":"hi"}]}`
	for i, want := range []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests} {
		if rec := post(t, s, body); rec.Code != want {
			t.Errorf("request %d: got = %d, wanted = %d", i, rec.Code, want)
		}
	}

	// Other endpoints are not limited.
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	require.Equal(t, http.StatusOK, rec.Code)
}
