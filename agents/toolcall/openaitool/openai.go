/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package openaitool

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"chainguard.dev/readmeagent/agents/agenttrace"
	"chainguard.dev/readmeagent/agents/toolcall"
	"chainguard.dev/readmeagent/agents/toolcall/params"
	"github.com/chainguard-dev/clog"
	"github.com/openai/openai-go"
)

// Metadata pairs an OpenAI tool definition with its handler.
type Metadata[Resp any] struct {
	Definition openai.ChatCompletionToolParam
	Handler    toolcall.Handler[Resp]
}

// FromTool converts a provider-independent tool.
func FromTool[Resp any](t toolcall.Tool[Resp]) Metadata[Resp] {
	return Metadata[Resp]{
		Definition: openai.ChatCompletionToolParam{
			Function: openai.FunctionDefinitionParam{
				Name:        t.Def.Name,
				Description: openai.String(t.Def.Description),
				Parameters:  openai.FunctionParameters(t.Def.JSONSchema()),
			},
		},
		Handler: t.Handler,
	}
}

// Map converts every tool in tools.
func Map[Resp any](tools map[string]toolcall.Tool[Resp]) map[string]Metadata[Resp] {
	out := make(map[string]Metadata[Resp], len(tools))
	for name, t := range tools {
		out[name] = FromTool(t)
	}
	return out
}

// Definitions returns the tool params in name order, so requests are stable.
func Definitions[Resp any](tools map[string]toolcall.Tool[Resp]) []openai.ChatCompletionToolParam {
	names := toolcall.Names(tools)
	defs := make([]openai.ChatCompletionToolParam, 0, len(names))
	for _, name := range names {
		defs = append(defs, FromTool(tools[name]).Definition)
	}
	return defs
}

// Dispatch executes one tool call from a model reply and returns the JSON
// content of the tool message. Unknown tools and malformed arguments are
// recorded as bad tool calls and reported to the model. The returned error
// mirrors any error reported in the content; it never aborts the run.
func Dispatch[Resp any](ctx context.Context, call openai.ChatCompletionMessageToolCall, tools map[string]Metadata[Resp], trace *agenttrace.Trace[Resp]) (string, error) {
	log := clog.FromContext(ctx).With("tool", call.Function.Name, "tool_call_id", call.ID)

	meta, found := tools[call.Function.Name]
	if !found {
		log.Warn("Model requested unknown tool")
		err := fmt.Errorf("unknown tool %q", call.Function.Name)
		trace.BadToolCall(call.ID, call.Function.Name, map[string]any{"arguments": call.Function.Arguments}, err)
		return encode(params.Error("%s", err)), err
	}

	args, err := decodeArguments(call.Function.Arguments)
	if err != nil {
		log.With("error", err).Warn("Malformed tool arguments")
		err = fmt.Errorf("invalid arguments: %w", err)
		trace.BadToolCall(call.ID, call.Function.Name, map[string]any{"arguments": call.Function.Arguments}, err)
		return encode(params.Error("%s", err)), err
	}

	resp := meta.Handler(ctx, toolcall.ToolCall{
		ID:   call.ID,
		Name: call.Function.Name,
		Args: args,
	}, trace)
	if msg, failed := resp["error"]; failed {
		return encode(resp), fmt.Errorf("%v", msg)
	}
	return encode(resp), nil
}

func decodeArguments(raw string) (map[string]any, error) {
	args := map[string]any{}
	if raw == "" {
		return args, nil
	}
	if err := json.Unmarshal([]byte(raw), &args); err != nil {
		return nil, err
	}
	if args == nil {
		return nil, errors.New("arguments must be a JSON object")
	}
	return args, nil
}

func encode(resp map[string]any) string {
	b, err := json.Marshal(resp)
	if err != nil {
		b, _ = json.Marshal(params.Error("failed to encode tool response: %v", err))
	}
	return string(b)
}
