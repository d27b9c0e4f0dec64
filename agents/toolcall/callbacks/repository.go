/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package callbacks

import "context"

// Repository is the metadata of a GitHub repository.
type Repository struct {
	FullName      string   `json:"full_name"`
	Description   string   `json:"description,omitempty"`
	DefaultBranch string   `json:"default_branch,omitempty"`
	HTMLURL       string   `json:"html_url,omitempty"`
	Homepage      string   `json:"homepage,omitempty"`
	License       string   `json:"license,omitempty"` // SPDX identifier
	Topics        []string `json:"topics,omitempty"`
	Stars         int      `json:"stars"`
	Forks         int      `json:"forks"`
	Archived      bool     `json:"archived,omitempty"`
}

// Language is one language of a repository and its size in bytes.
type Language struct {
	Name  string `json:"name"`
	Bytes int64  `json:"bytes"`
}

// Entry is one item of a repository directory listing.
type Entry struct {
	Name string `json:"name"`
	Path string `json:"path"`
	Type string `json:"type"` // "file", "dir", "symlink" or "submodule"
	Size int    `json:"size,omitempty"`
}

// RepositoryCallbacks provides read access to GitHub repositories.
type RepositoryCallbacks struct {
	// GetRepository returns repository metadata.
	GetRepository func(ctx context.Context, owner, repo string) (*Repository, error)

	// GetLanguages returns the repository languages, largest first.
	GetLanguages func(ctx context.Context, owner, repo string) ([]Language, error)

	// ListContents lists a directory on the default branch.
	ListContents func(ctx context.Context, owner, repo, path string) ([]Entry, error)

	// GetFileContent returns the decoded content of a file.
	GetFileContent func(ctx context.Context, owner, repo, path string) (string, error)

	// GetReadme returns the decoded content of the current README.
	GetReadme func(ctx context.Context, owner, repo string) (string, error)
}
