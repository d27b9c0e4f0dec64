/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package dispatcher

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"sync/atomic"
	"time"

	"chainguard.dev/readmeagent/agents/conversation"
	"chainguard.dev/readmeagent/agents/executor/openaiexecutor"
	"github.com/chainguard-dev/clog"
	"github.com/prometheus/client_golang/prometheus"
)

// ErrUninitialized is returned when a run is attempted without a runner.
var ErrUninitialized = errors.New("agent not initialized")

// Runner runs one conversation.
type Runner interface {
	Run(ctx context.Context, conv conversation.Conversation) (*openaiexecutor.Result, error)
}

// Constructor builds the runner. It receives a context that is not
// cancelled with the caller's.
type Constructor func(ctx context.Context) (Runner, error)

// InitError wraps a constructor failure.
type InitError struct {
	Err error
}

func (e *InitError) Error() string { return fmt.Sprintf("initializing agent: %v", e.Err) }
func (e *InitError) Unwrap() error { return e.Err }

// Dispatcher owns the process-wide runner.
type Dispatcher struct {
	construct Constructor
	metrics   *dispatchMetrics

	mu          sync.Mutex
	initialized atomic.Bool
	runner      Runner
}

// Option configures a Dispatcher.
type Option func(*options)

type options struct {
	registerer prometheus.Registerer
}

// WithRegisterer registers the dispatcher metrics on r instead of
// prometheus.DefaultRegisterer.
func WithRegisterer(r prometheus.Registerer) Option {
	return func(o *options) { o.registerer = r }
}

// New returns an uninitialized dispatcher.
func New(construct Constructor, opts ...Option) *Dispatcher {
	o := options{registerer: prometheus.DefaultRegisterer}
	for _, opt := range opts {
		opt(&o)
	}
	return &Dispatcher{
		construct: construct,
		metrics:   newDispatchMetrics(o.registerer),
	}
}

// Initialized reports whether the runner has been constructed.
func (d *Dispatcher) Initialized() bool {
	return d.initialized.Load()
}

// Handle validates conv, constructs the runner if needed, and runs conv.
// The conversation is copied before it is handed to the runner.
func (d *Dispatcher) Handle(ctx context.Context, conv conversation.Conversation) (result *openaiexecutor.Result, err error) {
	start := time.Now()
	defer func() {
		d.metrics.observeRequest(outcome(err), time.Since(start))
	}()

	if err := conv.Validate(); err != nil {
		return nil, err
	}
	if err := d.ensureInitialized(ctx); err != nil {
		return nil, err
	}
	return d.run(ctx, conv.Clone())
}

func (d *Dispatcher) ensureInitialized(ctx context.Context) error {
	if d.initialized.Load() {
		return nil
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	if d.initialized.Load() {
		return nil
	}

	clog.InfoContextf(ctx, "Initializing README generator agent")
	runner, err := d.construct(context.WithoutCancel(ctx))
	if err != nil {
		d.metrics.initializations.WithLabelValues("error").Inc()
		clog.ErrorContextf(ctx, "Agent initialization failed: %v", err)
		return &InitError{Err: err}
	}
	if runner == nil {
		d.metrics.initializations.WithLabelValues("error").Inc()
		return &InitError{Err: errors.New("constructor returned no runner")}
	}
	d.runner = runner
	d.initialized.Store(true)
	d.metrics.initializations.WithLabelValues("success").Inc()
	return nil
}

func (d *Dispatcher) run(ctx context.Context, conv conversation.Conversation) (*openaiexecutor.Result, error) {
	if !d.initialized.Load() {
		return nil, ErrUninitialized
	}
	d.mu.Lock()
	runner := d.runner
	d.mu.Unlock()
	if runner == nil {
		return nil, ErrUninitialized
	}
	return runner.Run(ctx, conv)
}

// Close releases the runner if it implements io.Closer and returns the
// dispatcher to its uninitialized state, so the next Handle constructs a new
// runner. It is safe to call on a dispatcher that never initialized.
func (d *Dispatcher) Close(ctx context.Context) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	clog.InfoContextf(ctx, "Cleaning up README generator agent resources")
	if !d.initialized.Load() {
		return nil
	}
	runner := d.runner
	d.runner = nil
	d.initialized.Store(false)
	if c, ok := runner.(io.Closer); ok {
		if err := c.Close(); err != nil {
			return fmt.Errorf("closing agent: %w", err)
		}
	}
	return nil
}

func outcome(err error) string {
	var initErr *InitError
	switch {
	case err == nil:
		return "success"
	case errors.Is(err, conversation.ErrEmpty), errors.Is(err, conversation.ErrInvalidRole):
		return "invalid"
	case errors.As(err, &initErr), errors.Is(err, ErrUninitialized):
		return "uninitialized"
	default:
		return "error"
	}
}
