/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package toolcall

import (
	"context"

	"chainguard.dev/readmeagent/agents/agenttrace"
	"chainguard.dev/readmeagent/agents/toolcall/callbacks"
)

const defaultSearchLimit = 5

type memoryToolsProvider[Resp any] struct{}

var _ ToolProvider[any, callbacks.MemoryCallbacks] = memoryToolsProvider[any]{}

// NewMemoryToolsProvider returns the long-term memory tools.
func NewMemoryToolsProvider[Resp any]() ToolProvider[Resp, callbacks.MemoryCallbacks] {
	return memoryToolsProvider[Resp]{}
}

func (memoryToolsProvider[Resp]) Tools(cb callbacks.MemoryCallbacks) map[string]Tool[Resp] {
	tools := map[string]Tool[Resp]{}

	if cb.Add != nil {
		tools["add_memory"] = Tool[Resp]{
			Def: Definition{
				Name:        "add_memory",
				Description: "Store a fact worth remembering across runs, such as a user's README preferences.",
				Parameters: []Parameter{
					{Name: "content", Type: "string", Description: "The fact to remember", Required: true},
				},
			},
			Handler: func(ctx context.Context, call ToolCall, trace *agenttrace.Trace[Resp]) map[string]any {
				content, errResp := Param[string](call, trace, "content")
				if errResp != nil {
					return errResp
				}
				return invoke(ctx, call, trace, map[string]any{"size": len(content)}, func() (map[string]any, error) {
					mems, err := cb.Add(ctx, content)
					if err != nil {
						return nil, err
					}
					return map[string]any{"memories": mems, "success": true}, nil
				})
			},
		}
	}

	if cb.Search != nil {
		tools["search_memory"] = Tool[Resp]{
			Def: Definition{
				Name:        "search_memory",
				Description: "Search stored memories relevant to a query.",
				Parameters: []Parameter{
					{Name: "query", Type: "string", Description: "What to look for", Required: true},
					{Name: "limit", Type: "integer", Description: "Maximum number of results (default 5)"},
				},
			},
			Handler: func(ctx context.Context, call ToolCall, trace *agenttrace.Trace[Resp]) map[string]any {
				query, errResp := Param[string](call, trace, "query")
				if errResp != nil {
					return errResp
				}
				limit, errResp := OptionalParam(call, "limit", defaultSearchLimit)
				if errResp != nil {
					return errResp
				}
				logged := map[string]any{"query": query, "limit": limit}
				return invoke(ctx, call, trace, logged, func() (map[string]any, error) {
					mems, err := cb.Search(ctx, query, limit)
					if err != nil {
						return nil, err
					}
					return map[string]any{"memories": mems, "count": len(mems)}, nil
				})
			},
		}
	}

	if cb.List != nil {
		tools["list_memories"] = Tool[Resp]{
			Def: Definition{
				Name:        "list_memories",
				Description: "List all stored memories.",
			},
			Handler: func(ctx context.Context, call ToolCall, trace *agenttrace.Trace[Resp]) map[string]any {
				return invoke(ctx, call, trace, map[string]any{}, func() (map[string]any, error) {
					mems, err := cb.List(ctx)
					if err != nil {
						return nil, err
					}
					return map[string]any{"memories": mems, "count": len(mems)}, nil
				})
			},
		}
	}

	return tools
}
