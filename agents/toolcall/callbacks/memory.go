/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package callbacks

import "context"

// Memory is one stored long-term memory.
type Memory struct {
	ID        string  `json:"id"`
	Memory    string  `json:"memory"`
	Event     string  `json:"event,omitempty"` // set by Add: "ADD", "UPDATE", ...
	Score     float64 `json:"score,omitempty"` // set by Search
	CreatedAt string  `json:"created_at,omitempty"`
}

// MemoryCallbacks provides access to a long-term memory store scoped to
// one user.
type MemoryCallbacks struct {
	Add    func(ctx context.Context, content string) ([]Memory, error)
	Search func(ctx context.Context, query string, limit int) ([]Memory, error)
	List   func(ctx context.Context) ([]Memory, error)
}
