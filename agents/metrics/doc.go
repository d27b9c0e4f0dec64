/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package metrics records token usage and tool calls of model executions
// through the OpenTelemetry metric API.
package metrics
