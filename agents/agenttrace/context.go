/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package agenttrace

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
)

// ExecutionContext carries run-level metadata used to label spans and
// metrics.
type ExecutionContext struct {
	RunID      string `json:"run_id,omitempty"`
	Backend    string `json:"backend,omitempty"`    // "openai" or "openrouter"
	Repository string `json:"repository,omitempty"` // "owner/repo" when known
}

// EnrichAttributes appends bounded execution attributes to base. RunID is
// left out because every run would create a new series.
func (e ExecutionContext) EnrichAttributes(base []attribute.KeyValue) []attribute.KeyValue {
	attrs := make([]attribute.KeyValue, len(base), len(base)+2)
	copy(attrs, base)
	if e.Backend != "" {
		attrs = append(attrs, attribute.String("backend", e.Backend))
	}
	if e.Repository != "" {
		attrs = append(attrs, attribute.String("repository", e.Repository))
	}
	return attrs
}

type executionContextKey struct{}

// WithExecutionContext attaches execCtx to ctx.
func WithExecutionContext(ctx context.Context, execCtx ExecutionContext) context.Context {
	return context.WithValue(ctx, executionContextKey{}, execCtx)
}

// GetExecutionContext returns the execution context on ctx, or the zero value.
func GetExecutionContext(ctx context.Context) ExecutionContext {
	execCtx, _ := ctx.Value(executionContextKey{}).(ExecutionContext)
	return execCtx
}
