/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

/*
Package agenttrace records what happens during a single agent run: the input
prompt, each tool call with its parameters and outcome, token usage, and the
final result.

Each Trace and ToolCall is backed by an OpenTelemetry span, so runs show up
in whatever trace exporter the process has configured. Completed traces are
handed to a Tracer taken from the context; without one, the default tracer
logs a summary through clog.

	ctx = agenttrace.WithExecutionContext(ctx, agenttrace.ExecutionContext{
		RunID:   runID,
		Backend: "openai",
	})

	trace := agenttrace.StartTrace[*Result](ctx, prompt)
	tc := trace.StartToolCall("call_1", "get_repository", map[string]any{"repository": "acme/widget"})
	tc.Complete(repo, nil)
	trace.Complete(result, nil)
*/
package agenttrace
