/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package toolcall_test

import (
	"context"
	"errors"
	"testing"

	"chainguard.dev/readmeagent/agents/agenttrace"
	"chainguard.dev/readmeagent/agents/toolcall"
	"chainguard.dev/readmeagent/agents/toolcall/callbacks"
	"github.com/google/go-cmp/cmp"
)

func newTrace(t *testing.T) *agenttrace.Trace[string] {
	t.Helper()
	ctx := agenttrace.WithTracer[string](context.Background(), agenttrace.ByCode[string]())
	return agenttrace.StartTrace[string](ctx, "test")
}

func TestDefinitionJSONSchema(t *testing.T) {
	def := toolcall.Definition{
		Name: "write_file",
		Parameters: []toolcall.Parameter{
			{Name: "path", Type: "string", Description: "The path", Required: true},
			{Name: "limit", Type: "integer", Description: "A limit"},
		},
	}
	want := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"path":  map[string]any{"type": "string", "description": "The path"},
			"limit": map[string]any{"type": "integer", "description": "A limit"},
		},
		"required": []string{"path"},
	}
	if diff := cmp.Diff(want, def.JSONSchema()); diff != "" {
		t.Errorf("JSONSchema() (-want +got):\n%s", diff)
	}
}

func TestProvidersOmitNilCallbacks(t *testing.T) {
	repo := toolcall.NewRepositoryToolsProvider[string]().Tools(callbacks.RepositoryCallbacks{
		GetReadme: func(context.Context, string, string) (string, error) { return "", nil },
	})
	if diff := cmp.Diff([]string{"get_readme"}, toolcall.Names(repo)); diff != "" {
		t.Errorf("repository tools (-want +got):\n%s", diff)
	}
	if mem := toolcall.NewMemoryToolsProvider[string]().Tools(callbacks.MemoryCallbacks{}); len(mem) != 0 {
		t.Errorf("memory tools: got = %v, wanted none", toolcall.Names(mem))
	}
}

func TestMerge(t *testing.T) {
	fs := toolcall.NewFileSystemToolsProvider[string]().Tools(callbacks.FileSystemCallbacks{
		WriteFile: func(context.Context, string, string) error { return nil },
		ReadFile:  func(context.Context, string) (string, error) { return "", nil },
		ListFiles: func(context.Context, string) ([]string, error) { return nil, nil },
	})
	mem := toolcall.NewMemoryToolsProvider[string]().Tools(callbacks.MemoryCallbacks{
		List: func(context.Context) ([]callbacks.Memory, error) { return nil, nil },
	})

	merged, err := toolcall.Merge(fs, mem)
	if err != nil {
		t.Fatalf("Merge() = %v", err)
	}
	want := []string{"list_files", "list_memories", "read_file", "write_file"}
	if diff := cmp.Diff(want, toolcall.Names(merged)); diff != "" {
		t.Errorf("Merge() names (-want +got):\n%s", diff)
	}

	if _, err := toolcall.Merge(fs, fs); err == nil {
		t.Error("Merge(duplicate): got = nil, wanted error")
	}
}

func TestWriteFileHandler(t *testing.T) {
	var gotPath, gotContent string
	tools := toolcall.NewFileSystemToolsProvider[string]().Tools(callbacks.FileSystemCallbacks{
		WriteFile: func(_ context.Context, path, content string) error {
			if path == "../escape.md" {
				return errors.New("path escapes from parent")
			}
			gotPath, gotContent = path, content
			return nil
		},
	})
	handler := tools["write_file"].Handler

	tests := []struct {
		name string
		args map[string]any
		want map[string]any
	}{{
		name: "success",
		args: map[string]any{"path": "README.md", "content": "# widget"},
		want: map[string]any{"path": "README.md", "size": 8, "success": true},
	}, {
		name: "missing content",
		args: map[string]any{"path": "README.md"},
		want: map[string]any{"error": "content parameter is required"},
	}, {
		name: "callback error",
		args: map[string]any{"path": "../escape.md", "content": "x"},
		want: map[string]any{"path": "../escape.md", "size": 1, "error": "path escapes from parent"},
	}}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			trace := newTrace(t)
			got := handler(context.Background(), toolcall.ToolCall{ID: "1", Name: "write_file", Args: tc.args}, trace)
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Errorf("handler (-want +got):\n%s", diff)
			}
			if len(trace.ToolCalls) != 1 {
				t.Errorf("trace tool calls: got = %d, wanted = 1", len(trace.ToolCalls))
			}
		})
	}
	if gotPath != "README.md" || gotContent != "# widget" {
		t.Errorf("WriteFile: got = %q, %q, wanted = %q, %q", gotPath, gotContent, "README.md", "# widget")
	}
}

func TestRepositoryHandlers(t *testing.T) {
	tools := toolcall.NewRepositoryToolsProvider[string]().Tools(callbacks.RepositoryCallbacks{
		GetLanguages: func(_ context.Context, owner, repo string) ([]callbacks.Language, error) {
			return []callbacks.Language{{Name: "Go", Bytes: 1200}}, nil
		},
		ListContents: func(_ context.Context, owner, repo, path string) ([]callbacks.Entry, error) {
			return []callbacks.Entry{{Name: "main.go", Path: "main.go", Type: "file"}}, nil
		},
	})

	got := tools["get_repository_languages"].Handler(context.Background(), toolcall.ToolCall{
		ID: "1", Name: "get_repository_languages", Args: map[string]any{"owner": "acme", "repo": "widget"},
	}, newTrace(t))
	want := map[string]any{"languages": []callbacks.Language{{Name: "Go", Bytes: 1200}}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("get_repository_languages (-want +got):\n%s", diff)
	}

	got = tools["list_repository_contents"].Handler(context.Background(), toolcall.ToolCall{
		ID: "2", Name: "list_repository_contents", Args: map[string]any{"owner": "acme", "repo": "widget"},
	}, newTrace(t))
	want = map[string]any{"path": "", "entries": []callbacks.Entry{{Name: "main.go", Path: "main.go", Type: "file"}}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("list_repository_contents (-want +got):\n%s", diff)
	}

	got = tools["list_repository_contents"].Handler(context.Background(), toolcall.ToolCall{
		ID: "3", Name: "list_repository_contents", Args: map[string]any{"owner": "acme"},
	}, newTrace(t))
	if _, ok := got["error"]; !ok {
		t.Errorf("missing repo: got = %v, wanted error response", got)
	}
}

func TestSearchMemoryDefaultLimit(t *testing.T) {
	var gotLimit int
	tools := toolcall.NewMemoryToolsProvider[string]().Tools(callbacks.MemoryCallbacks{
		Search: func(_ context.Context, _ string, limit int) ([]callbacks.Memory, error) {
			gotLimit = limit
			return []callbacks.Memory{{ID: "m1", Memory: "prefers badges"}}, nil
		},
	})
	got := tools["search_memory"].Handler(context.Background(), toolcall.ToolCall{
		ID: "1", Name: "search_memory", Args: map[string]any{"query": "style"},
	}, newTrace(t))
	if gotLimit != 5 {
		t.Errorf("limit: got = %d, wanted = 5", gotLimit)
	}
	if got["count"] != 1 {
		t.Errorf("count: got = %v, wanted = 1", got["count"])
	}
}
