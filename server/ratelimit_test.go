/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package server

import (
	"testing"
	"time"
)

func TestClientLimiter(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	l := newClientLimiter(60, 1)
	l.now = func() time.Time { return now }

	if !l.allow("10.0.0.1") {
		t.Fatal("first request: got = false, wanted = true")
	}
	if l.allow("10.0.0.1") {
		t.Error("second request: got = true, wanted = false")
	}
	if !l.allow("10.0.0.2") {
		t.Error("other client: got = false, wanted = true")
	}

	now = now.Add(time.Second)
	if !l.allow("10.0.0.1") {
		t.Error("after refill: got = false, wanted = true")
	}

	now = now.Add(2 * staleAfter)
	l.allow("10.0.0.3")
	if _, ok := l.buckets["10.0.0.2"]; ok {
		t.Error("stale bucket was not swept")
	}
}
