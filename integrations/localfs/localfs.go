/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package localfs implements the file tool callbacks against a local output
// directory. All access goes through an os.Root, so no path can resolve
// outside that directory, symlinks included.
package localfs

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"chainguard.dev/readmeagent/agents/toolcall/callbacks"
	"github.com/chainguard-dev/clog"
)

// Dir is an output directory opened for confined access.
type Dir struct {
	root *os.Root
}

// New creates dir if needed and opens it.
func New(dir string) (*Dir, error) {
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create output directory: %w", err)
	}
	root, err := os.OpenRoot(dir)
	if err != nil {
		return nil, fmt.Errorf("open output directory: %w", err)
	}
	return &Dir{root: root}, nil
}

// Path returns the directory's path.
func (d *Dir) Path() string {
	return d.root.Name()
}

// Close releases the directory handle.
func (d *Dir) Close() error {
	return d.root.Close()
}

// Callbacks exposes the directory as file tool callbacks.
func (d *Dir) Callbacks() callbacks.FileSystemCallbacks {
	return callbacks.FileSystemCallbacks{
		WriteFile: d.WriteFile,
		ReadFile:  d.ReadFile,
		ListFiles: d.ListFiles,
	}
}

// relative turns model-supplied paths into root-relative names. A leading
// slash means the directory root.
func relative(path string) string {
	p := strings.TrimLeft(filepath.ToSlash(path), "/")
	if p == "" {
		return "."
	}
	return filepath.FromSlash(p)
}

// WriteFile writes content to path, creating parent directories.
func (d *Dir) WriteFile(ctx context.Context, path, content string) error {
	name := relative(path)
	if parent := filepath.Dir(name); parent != "." {
		if err := d.root.MkdirAll(parent, 0o755); err != nil {
			return fmt.Errorf("create %s: %w", parent, err)
		}
	}
	if err := d.root.WriteFile(name, []byte(content), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	clog.FromContext(ctx).With("path", name, "size", len(content)).Info("Wrote file")
	return nil
}

// ReadFile returns the content of path.
func (d *Dir) ReadFile(_ context.Context, path string) (string, error) {
	b, err := d.root.ReadFile(relative(path))
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	return string(b), nil
}

// ListFiles returns the sorted entry names of the directory at path.
// Directory names end with a slash.
func (d *Dir) ListFiles(_ context.Context, path string) ([]string, error) {
	f, err := d.root.Open(relative(path))
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	entries, err := f.ReadDir(-1)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", path, err)
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() {
			name += "/"
		}
		names = append(names, name)
	}
	slices.Sort(names)
	return names, nil
}
