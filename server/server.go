/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package server exposes the README generator agent over HTTP.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"slices"
	"time"

	"chainguard.dev/readmeagent/agents/conversation"
	"chainguard.dev/readmeagent/agents/dispatcher"
	"chainguard.dev/readmeagent/agents/executor/openaiexecutor"
	"chainguard.dev/readmeagent/config"
	"github.com/chainguard-dev/clog"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Handler runs conversations on behalf of the server.
type Handler interface {
	Handle(ctx context.Context, conv conversation.Conversation) (*openaiexecutor.Result, error)
	Initialized() bool
}

// Server routes HTTP requests to a Handler.
type Server struct {
	cfg     *config.AgentConfig
	handler Handler
	router  *gin.Engine
}

// Option configures a Server.
type Option func(*options)

type options struct {
	gatherer prometheus.Gatherer
	skills   []string
}

// WithGatherer serves metrics from g instead of prometheus.DefaultGatherer.
func WithGatherer(g prometheus.Gatherer) Option {
	return func(o *options) { o.gatherer = g }
}

// WithSkills lists the tool names advertised in the agent card.
func WithSkills(names ...string) Option {
	return func(o *options) { o.skills = names }
}

type runRequest struct {
	Messages conversation.Conversation `json:"messages"`
}

// New builds the router for cfg.
func New(cfg *config.AgentConfig, h Handler, opts ...Option) (*Server, error) {
	o := options{gatherer: prometheus.DefaultGatherer}
	for _, opt := range opts {
		opt(&o)
	}

	router := gin.New()
	router.Use(gin.Recovery(), requestLogger())
	if err := router.SetTrustedProxies(cfg.Deployment.ProxyURLs); err != nil {
		return nil, fmt.Errorf("setting trusted proxies: %w", err)
	}
	if origins := cfg.Deployment.CORSOrigins; len(origins) > 0 {
		cc := cors.Config{
			AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
			AllowHeaders: []string{"Origin", "Content-Type", "Authorization"},
			MaxAge:       12 * time.Hour,
		}
		if slices.Contains(origins, "*") {
			cc.AllowAllOrigins = true
		} else {
			cc.AllowOrigins = origins
		}
		router.Use(cors.New(cc))
	}

	s := &Server{cfg: cfg, handler: h, router: router}
	runs := []gin.HandlerFunc{s.run}
	if rpm := cfg.Deployment.RateLimitRPM; rpm > 0 {
		runs = append([]gin.HandlerFunc{newClientLimiter(rpm, cfg.Deployment.RateBurst).middleware()}, runs...)
	}
	router.POST("/v1/runs", runs...)
	router.GET("/healthz", s.health)
	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(o.gatherer, promhttp.HandlerOpts{})))
	if cfg.Deployment.Expose {
		card, err := NewCard(cfg, o.skills)
		if err != nil {
			return nil, err
		}
		router.GET("/.well-known/agent.json", func(c *gin.Context) {
			c.JSON(http.StatusOK, card)
		})
	}
	return s, nil
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// ListenAndServe serves on the deployment address until ctx is done, then
// shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	addr, err := s.cfg.Deployment.ListenAddr()
	if err != nil {
		return err
	}
	lis, err := (&net.ListenConfig{}).Listen(ctx, "tcp", addr)
	if err != nil {
		return fmt.Errorf("listening on %s: %w", addr, err)
	}
	return s.Serve(ctx, lis)
}

// Serve serves on lis until ctx is done.
func (s *Server) Serve(ctx context.Context, lis net.Listener) error {
	srv := &http.Server{
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	errCh := make(chan error, 1)
	go func() {
		clog.InfoContextf(ctx, "Serving %s on %s", s.cfg.Name, lis.Addr())
		errCh <- srv.Serve(lis)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down: %w", err)
	}
	if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) run(c *gin.Context) {
	var req runRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("decoding request: %v", err)})
		return
	}

	ctx := c.Request.Context()
	result, err := s.handler.Handle(ctx, req.Messages)
	if err != nil {
		status := statusFor(err)
		if status >= http.StatusInternalServerError {
			clog.ErrorContextf(ctx, "Run failed: %v", err)
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, result)
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":      "ok",
		"initialized": s.handler.Initialized(),
	})
}

func statusFor(err error) int {
	var initErr *dispatcher.InitError
	switch {
	case errors.Is(err, conversation.ErrEmpty), errors.Is(err, conversation.ErrInvalidRole):
		return http.StatusBadRequest
	case errors.As(err, &initErr), errors.Is(err, dispatcher.ErrUninitialized):
		return http.StatusServiceUnavailable
	default:
		return http.StatusBadGateway
	}
}
