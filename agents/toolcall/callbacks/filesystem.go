/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package callbacks

import "context"

// FileSystemCallbacks provides file operations confined to an output
// directory. Paths are relative to that directory.
type FileSystemCallbacks struct {
	WriteFile func(ctx context.Context, path, content string) error
	ReadFile  func(ctx context.Context, path string) (string, error)
	ListFiles func(ctx context.Context, path string) ([]string, error)
}
