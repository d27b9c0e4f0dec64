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

type fileSystemToolsProvider[Resp any] struct{}

var _ ToolProvider[any, callbacks.FileSystemCallbacks] = fileSystemToolsProvider[any]{}

// NewFileSystemToolsProvider returns the local output directory tools.
func NewFileSystemToolsProvider[Resp any]() ToolProvider[Resp, callbacks.FileSystemCallbacks] {
	return fileSystemToolsProvider[Resp]{}
}

func (fileSystemToolsProvider[Resp]) Tools(cb callbacks.FileSystemCallbacks) map[string]Tool[Resp] {
	tools := map[string]Tool[Resp]{}

	if cb.WriteFile != nil {
		tools["write_file"] = Tool[Resp]{
			Def: Definition{
				Name:        "write_file",
				Description: "Create or overwrite a file in the output directory. Parent directories are created as needed.",
				Parameters: []Parameter{
					{Name: "path", Type: "string", Description: "File path relative to the output directory, e.g. README.md", Required: true},
					{Name: "content", Type: "string", Description: "The complete file content", Required: true},
				},
			},
			Handler: func(ctx context.Context, call ToolCall, trace *agenttrace.Trace[Resp]) map[string]any {
				path, errResp := Param[string](call, trace, "path")
				if errResp != nil {
					return errResp
				}
				content, errResp := Param[string](call, trace, "content")
				if errResp != nil {
					return errResp
				}
				logged := map[string]any{"path": path, "size": len(content)}
				return invoke(ctx, call, trace, logged, func() (map[string]any, error) {
					if err := cb.WriteFile(ctx, path, content); err != nil {
						return nil, err
					}
					return map[string]any{"path": path, "size": len(content), "success": true}, nil
				})
			},
		}
	}

	if cb.ReadFile != nil {
		tools["read_file"] = Tool[Resp]{
			Def: Definition{
				Name:        "read_file",
				Description: "Read a file from the output directory.",
				Parameters: []Parameter{
					{Name: "path", Type: "string", Description: "File path relative to the output directory", Required: true},
				},
			},
			Handler: func(ctx context.Context, call ToolCall, trace *agenttrace.Trace[Resp]) map[string]any {
				path, errResp := Param[string](call, trace, "path")
				if errResp != nil {
					return errResp
				}
				logged := map[string]any{"path": path}
				return invoke(ctx, call, trace, logged, func() (map[string]any, error) {
					content, err := cb.ReadFile(ctx, path)
					if err != nil {
						return nil, err
					}
					return map[string]any{"path": path, "content": content, "size": len(content)}, nil
				})
			},
		}
	}

	if cb.ListFiles != nil {
		tools["list_files"] = Tool[Resp]{
			Def: Definition{
				Name:        "list_files",
				Description: "List entries of a directory in the output directory. Directories end with a slash.",
				Parameters: []Parameter{
					{Name: "path", Type: "string", Description: "Directory path relative to the output directory; defaults to the root"},
				},
			},
			Handler: func(ctx context.Context, call ToolCall, trace *agenttrace.Trace[Resp]) map[string]any {
				path, errResp := OptionalParam(call, "path", ".")
				if errResp != nil {
					return errResp
				}
				logged := map[string]any{"path": path}
				return invoke(ctx, call, trace, logged, func() (map[string]any, error) {
					entries, err := cb.ListFiles(ctx, path)
					if err != nil {
						return nil, err
					}
					return map[string]any{"path": path, "entries": entries, "count": len(entries)}, nil
				})
			},
		}
	}

	return tools
}
