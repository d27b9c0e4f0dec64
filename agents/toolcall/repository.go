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

var ownerRepoParams = []Parameter{
	{Name: "owner", Type: "string", Description: "Repository owner (user or organization)", Required: true},
	{Name: "repo", Type: "string", Description: "Repository name", Required: true},
}

func withOwnerRepo(extra ...Parameter) []Parameter {
	return append(append([]Parameter{}, ownerRepoParams...), extra...)
}

type repositoryToolsProvider[Resp any] struct{}

var _ ToolProvider[any, callbacks.RepositoryCallbacks] = repositoryToolsProvider[any]{}

// NewRepositoryToolsProvider returns the GitHub repository tools.
func NewRepositoryToolsProvider[Resp any]() ToolProvider[Resp, callbacks.RepositoryCallbacks] {
	return repositoryToolsProvider[Resp]{}
}

func (repositoryToolsProvider[Resp]) Tools(cb callbacks.RepositoryCallbacks) map[string]Tool[Resp] {
	tools := map[string]Tool[Resp]{}

	if cb.GetRepository != nil {
		tools["get_repository"] = Tool[Resp]{
			Def: Definition{
				Name:        "get_repository",
				Description: "Get repository metadata: description, default branch, topics, license, homepage, stars and forks.",
				Parameters:  withOwnerRepo(),
			},
			Handler: ownerRepoHandler[Resp](func(ctx context.Context, owner, repo string) (map[string]any, error) {
				r, err := cb.GetRepository(ctx, owner, repo)
				if err != nil {
					return nil, err
				}
				return map[string]any{"repository": r}, nil
			}),
		}
	}

	if cb.GetLanguages != nil {
		tools["get_repository_languages"] = Tool[Resp]{
			Def: Definition{
				Name:        "get_repository_languages",
				Description: "List the languages used in the repository, largest first, with their size in bytes.",
				Parameters:  withOwnerRepo(),
			},
			Handler: ownerRepoHandler[Resp](func(ctx context.Context, owner, repo string) (map[string]any, error) {
				langs, err := cb.GetLanguages(ctx, owner, repo)
				if err != nil {
					return nil, err
				}
				return map[string]any{"languages": langs}, nil
			}),
		}
	}

	if cb.ListContents != nil {
		tools["list_repository_contents"] = Tool[Resp]{
			Def: Definition{
				Name:        "list_repository_contents",
				Description: "List files and directories at a path in the repository. Use an empty path for the root.",
				Parameters: withOwnerRepo(Parameter{
					Name: "path", Type: "string", Description: "Directory path relative to the repository root",
				}),
			},
			Handler: func(ctx context.Context, call ToolCall, trace *agenttrace.Trace[Resp]) map[string]any {
				owner, repo, errResp := ownerRepo(call, trace)
				if errResp != nil {
					return errResp
				}
				path, errResp := OptionalParam(call, "path", "")
				if errResp != nil {
					return errResp
				}
				logged := map[string]any{"owner": owner, "repo": repo, "path": path}
				return invoke(ctx, call, trace, logged, func() (map[string]any, error) {
					entries, err := cb.ListContents(ctx, owner, repo, path)
					if err != nil {
						return nil, err
					}
					return map[string]any{"path": path, "entries": entries}, nil
				})
			},
		}
	}

	if cb.GetFileContent != nil {
		tools["get_file_content"] = Tool[Resp]{
			Def: Definition{
				Name:        "get_file_content",
				Description: "Read the content of a file in the repository.",
				Parameters: withOwnerRepo(Parameter{
					Name: "path", Type: "string", Description: "File path relative to the repository root", Required: true,
				}),
			},
			Handler: func(ctx context.Context, call ToolCall, trace *agenttrace.Trace[Resp]) map[string]any {
				owner, repo, errResp := ownerRepo(call, trace)
				if errResp != nil {
					return errResp
				}
				path, errResp := Param[string](call, trace, "path")
				if errResp != nil {
					return errResp
				}
				logged := map[string]any{"owner": owner, "repo": repo, "path": path}
				return invoke(ctx, call, trace, logged, func() (map[string]any, error) {
					content, err := cb.GetFileContent(ctx, owner, repo, path)
					if err != nil {
						return nil, err
					}
					return map[string]any{"path": path, "content": content, "size": len(content)}, nil
				})
			},
		}
	}

	if cb.GetReadme != nil {
		tools["get_readme"] = Tool[Resp]{
			Def: Definition{
				Name:        "get_readme",
				Description: "Get the repository's current README, if it has one.",
				Parameters:  withOwnerRepo(),
			},
			Handler: ownerRepoHandler[Resp](func(ctx context.Context, owner, repo string) (map[string]any, error) {
				content, err := cb.GetReadme(ctx, owner, repo)
				if err != nil {
					return nil, err
				}
				return map[string]any{"content": content}, nil
			}),
		}
	}

	return tools
}

func ownerRepo[Resp any](call ToolCall, trace *agenttrace.Trace[Resp]) (string, string, map[string]any) {
	owner, errResp := Param[string](call, trace, "owner")
	if errResp != nil {
		return "", "", errResp
	}
	repo, errResp := Param[string](call, trace, "repo")
	if errResp != nil {
		return "", "", errResp
	}
	return owner, repo, nil
}

func ownerRepoHandler[Resp any](fn func(ctx context.Context, owner, repo string) (map[string]any, error)) Handler[Resp] {
	return func(ctx context.Context, call ToolCall, trace *agenttrace.Trace[Resp]) map[string]any {
		owner, repo, errResp := ownerRepo(call, trace)
		if errResp != nil {
			return errResp
		}
		logged := map[string]any{"owner": owner, "repo": repo}
		return invoke(ctx, call, trace, logged, func() (map[string]any, error) {
			return fn(ctx, owner, repo)
		})
	}
}
