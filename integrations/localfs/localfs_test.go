/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package localfs_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"chainguard.dev/readmeagent/integrations/localfs"
	"github.com/google/go-cmp/cmp"
)

func open(t *testing.T) (*localfs.Dir, string) {
	t.Helper()
	base := t.TempDir()
	out := filepath.Join(base, "out")
	d, err := localfs.New(out)
	if err != nil {
		t.Fatalf("New() = %v", err)
	}
	t.Cleanup(func() { _ = d.Close() })
	return d, base
}

func TestWriteReadList(t *testing.T) {
	d, base := open(t)
	ctx := context.Background()

	if err := d.WriteFile(ctx, "README.md", "# widget\n"); err != nil {
		t.Fatalf("WriteFile() = %v", err)
	}
	if err := d.WriteFile(ctx, "/docs/usage/cli.md", "usage"); err != nil {
		t.Fatalf("WriteFile(nested) = %v", err)
	}

	b, err := os.ReadFile(filepath.Join(base, "out", "docs", "usage", "cli.md"))
	if err != nil || string(b) != "usage" {
		t.Errorf("nested file: got = %q, %v, wanted = %q", b, err, "usage")
	}

	got, err := d.ReadFile(ctx, "README.md")
	if err != nil || got != "# widget\n" {
		t.Errorf("ReadFile(): got = %q, %v, wanted = %q", got, err, "# widget\n")
	}

	names, err := d.ListFiles(ctx, ".")
	if err != nil {
		t.Fatalf("ListFiles() = %v", err)
	}
	if diff := cmp.Diff([]string{"README.md", "docs/"}, names); diff != "" {
		t.Errorf("ListFiles() (-want +got):\n%s", diff)
	}
}

func TestRootConfinement(t *testing.T) {
	d, base := open(t)
	ctx := context.Background()

	for _, path := range []string{"../escape.md", "docs/../../escape.md", "../sibling/x.md"} {
		if err := d.WriteFile(ctx, path, "nope"); err == nil {
			t.Errorf("WriteFile(%q): got = nil, wanted error", path)
		}
	}
	for _, name := range []string{"escape.md", "sibling"} {
		if _, err := os.Stat(filepath.Join(base, name)); !os.IsNotExist(err) {
			t.Errorf("%s outside the root: got = %v, wanted not exist", name, err)
		}
	}

	// Symlinks pointing outside the root are not followed.
	if err := os.Symlink(base, filepath.Join(base, "out", "link")); err != nil {
		t.Fatalf("Symlink() = %v", err)
	}
	if err := d.WriteFile(ctx, "link/escape.md", "nope"); err == nil {
		t.Error("WriteFile(through symlink): got = nil, wanted error")
	}
	if _, err := d.ReadFile(ctx, "../out/README.md"); err == nil {
		t.Error("ReadFile(escaping): got = nil, wanted error")
	}
}
