/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package openaiexecutor

import "time"

// StatusCompleted is the status of a run that produced a reply.
const StatusCompleted = "COMPLETED"

// Result is the outcome of one run.
type Result struct {
	RunID     string            `json:"run_id" jsonschema:"required,description=Unique identifier of the run"`
	Status    string            `json:"status" jsonschema:"required,enum=COMPLETED"`
	Content   string            `json:"content" jsonschema:"required,description=Final assistant reply"`
	Model     string            `json:"model" jsonschema:"required"`
	Backend   string            `json:"backend" jsonschema:"required,enum=openai,enum=openrouter"`
	ToolCalls []ToolCallSummary `json:"tool_calls"`
	Usage     Usage             `json:"usage"`
	CreatedAt time.Time         `json:"created_at"`
}

// ToolCallSummary records one tool call made during the run.
type ToolCallSummary struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Error string `json:"error,omitempty"`
}

// Usage is the token count summed over every model call of the run.
type Usage struct {
	InputTokens  int64 `json:"input_tokens"`
	OutputTokens int64 `json:"output_tokens"`
}

func (r *Result) String() string {
	if r == nil {
		return "<nil>"
	}
	return r.Content
}
