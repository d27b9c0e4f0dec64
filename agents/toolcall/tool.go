/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package toolcall

import (
	"context"
	"fmt"
	"maps"
	"slices"

	"chainguard.dev/readmeagent/agents/agenttrace"
	"chainguard.dev/readmeagent/agents/toolcall/params"
	"github.com/chainguard-dev/clog"
)

// ToolCall is a provider-independent representation of a tool call.
type ToolCall struct {
	ID   string
	Name string
	Args map[string]any
}

// Definition describes a tool's schema (name, description, parameters).
type Definition struct {
	Name        string
	Description string
	Parameters  []Parameter
}

// Parameter describes a single tool parameter.
type Parameter struct {
	Name        string
	Type        string // "string", "integer", "boolean", "number"
	Description string
	Required    bool
}

// JSONSchema renders the parameters as a JSON schema object.
func (d Definition) JSONSchema() map[string]any {
	props := make(map[string]any, len(d.Parameters))
	required := []string{}
	for _, p := range d.Parameters {
		props[p.Name] = map[string]any{
			"type":        p.Type,
			"description": p.Description,
		}
		if p.Required {
			required = append(required, p.Name)
		}
	}
	return map[string]any{
		"type":       "object",
		"properties": props,
		"required":   required,
	}
}

// Handler executes a tool call and returns the response sent back to the
// model. Failures are reported in the response, never as a Go error.
type Handler[Resp any] func(ctx context.Context, call ToolCall, trace *agenttrace.Trace[Resp]) map[string]any

// Tool is a definition plus the handler that serves it.
type Tool[Resp any] struct {
	Def     Definition
	Handler Handler[Resp]
}

// ToolProvider turns a callback struct into tools.
type ToolProvider[Resp, CB any] interface {
	Tools(cb CB) map[string]Tool[Resp]
}

// Merge combines tool maps, rejecting duplicate names.
func Merge[Resp any](sets ...map[string]Tool[Resp]) (map[string]Tool[Resp], error) {
	out := map[string]Tool[Resp]{}
	for _, set := range sets {
		for name, tool := range set {
			if _, dup := out[name]; dup {
				return nil, fmt.Errorf("duplicate tool %q", name)
			}
			out[name] = tool
		}
	}
	return out, nil
}

// Names returns the sorted tool names.
func Names[Resp any](tools map[string]Tool[Resp]) []string {
	return slices.Sorted(maps.Keys(tools))
}

// Param extracts a required parameter from the tool call args.
// On error, records a bad tool call on the trace and returns an error response.
func Param[T any](call ToolCall, trace interface {
	BadToolCall(string, string, map[string]any, error)
}, name string) (T, map[string]any) {
	v, err := params.Extract[T](call.Args, name)
	if err != nil {
		trace.BadToolCall(call.ID, call.Name, call.Args, fmt.Errorf("missing %s parameter", name))
		return v, params.Error("%s", err)
	}
	return v, nil
}

// OptionalParam extracts an optional parameter from the tool call args.
func OptionalParam[T any](call ToolCall, name string, defaultValue T) (T, map[string]any) {
	v, err := params.ExtractOptional[T](call.Args, name, defaultValue)
	if err != nil {
		return v, params.Error("%s", err)
	}
	return v, nil
}

// invoke runs fn inside a traced tool call. logged is recorded as the call's
// parameters and echoed back in error responses.
func invoke[Resp any](ctx context.Context, call ToolCall, trace *agenttrace.Trace[Resp], logged map[string]any, fn func() (map[string]any, error)) map[string]any {
	tc := trace.StartToolCall(call.ID, call.Name, logged)
	result, err := fn()
	if err != nil {
		clog.FromContext(ctx).With("tool", call.Name, "error", err).Warn("Tool call failed")
		resp := params.ErrorWithContext(err, logged)
		tc.Complete(resp, err)
		return resp
	}
	tc.Complete(result, nil)
	return result
}
