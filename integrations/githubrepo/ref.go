/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package githubrepo

import (
	"fmt"
	"net/url"
	"strings"
)

// ParseRepository splits a repository reference into owner and name. It
// accepts "owner/repo", "https://github.com/owner/repo" (optionally ending in
// ".git" or a trailing path) and "git@github.com:owner/repo.git".
func ParseRepository(ref string) (owner, repo string, err error) {
	ref = strings.TrimSpace(ref)
	path := ref

	switch {
	case strings.HasPrefix(ref, "git@"):
		_, after, ok := strings.Cut(ref, ":")
		if !ok {
			return "", "", fmt.Errorf("invalid repository reference %q", ref)
		}
		path = after
	case strings.Contains(ref, "://"):
		u, err := url.Parse(ref)
		if err != nil {
			return "", "", fmt.Errorf("invalid repository reference %q: %w", ref, err)
		}
		path = u.Path
	}

	parts := strings.Split(strings.Trim(path, "/"), "/")
	if len(parts) < 2 || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("invalid repository reference %q: want owner/repo", ref)
	}
	// Bare references must be exactly owner/repo.
	if path == ref && len(parts) != 2 {
		return "", "", fmt.Errorf("invalid repository reference %q: want owner/repo", ref)
	}
	return parts[0], strings.TrimSuffix(parts[1], ".git"), nil
}
