/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package openaitool adapts toolcall tools to the OpenAI chat-completions
// API: it renders tool definitions as openai-go tool params and dispatches
// the tool calls found in a model reply.
package openaitool
