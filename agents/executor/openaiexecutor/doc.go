/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

/*
Package openaiexecutor runs a conversation against an OpenAI-compatible
chat-completions endpoint, executing tool calls until the model replies with
plain text.

The same executor serves OpenAI and OpenRouter; only the client's base URL,
headers and the model name differ:

	client := openai.NewClient(
		option.WithAPIKey(key),
		option.WithBaseURL("https://openrouter.ai/api/v1"),
		option.WithMaxRetries(0),
	)
	exec, err := openaiexecutor.New(client,
		openaiexecutor.WithModel("openai/gpt-4o"),
		openaiexecutor.WithBackend("openrouter"),
		openaiexecutor.WithSystemInstructions(prompt),
	)
	result, err := exec.Execute(ctx, conv, tools)

Tool failures, unknown tools and malformed arguments are reported back to
the model as tool messages and never end the run. Provider errors are
returned wrapped, so *openai.Error can be inspected with errors.As.
*/
package openaiexecutor
