/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package openaiexecutor

import (
	"context"
	"errors"
	"fmt"
	"time"

	"chainguard.dev/readmeagent/agents/agenttrace"
	"chainguard.dev/readmeagent/agents/conversation"
	"chainguard.dev/readmeagent/agents/metrics"
	"chainguard.dev/readmeagent/agents/promptbuilder"
	"chainguard.dev/readmeagent/agents/toolcall"
	"chainguard.dev/readmeagent/agents/toolcall/openaitool"
	"github.com/chainguard-dev/clog"
	"github.com/google/uuid"
	"github.com/openai/openai-go"
)

// ErrEmptyReply is returned when the model replies without text or tool
// calls.
var ErrEmptyReply = errors.New("model returned an empty reply")

// Interface runs conversations against a chat-completions endpoint.
type Interface interface {
	Execute(ctx context.Context, conv conversation.Conversation, tools map[string]toolcall.Tool[*Result], opts ...CallOption) (*Result, error)
}

type executor struct {
	client             openai.Client
	modelName          string
	backend            string
	systemInstructions *promptbuilder.Prompt
	maxTokens          int64
	temperature        *float64
	genaiMetrics       *metrics.GenAI
}

// New creates an executor for client. The client's own retry behavior
// applies to each model call; the executor adds none.
func New(client openai.Client, opts ...Option) (Interface, error) {
	e := &executor{
		client:       client,
		modelName:    string(openai.ChatModelGPT4o),
		backend:      "openai",
		genaiMetrics: metrics.NewGenAI("chainguard.ai.agents"),
	}
	for _, opt := range opts {
		if err := opt(e); err != nil {
			return nil, fmt.Errorf("failed to apply option: %w", err)
		}
	}
	return e, nil
}

// Execute sends conv to the model and serves tool calls until the model
// replies with text.
func (e *executor) Execute(ctx context.Context, conv conversation.Conversation, tools map[string]toolcall.Tool[*Result], opts ...CallOption) (result *Result, err error) {
	if err := conv.Validate(); err != nil {
		return nil, err
	}
	c := callOptions{system: e.systemInstructions}
	for _, opt := range opts {
		opt(&c)
	}

	execCtx := agenttrace.GetExecutionContext(ctx)
	if execCtx.RunID == "" {
		execCtx.RunID = uuid.NewString()
	}
	execCtx.Backend = e.backend
	ctx = agenttrace.WithExecutionContext(ctx, execCtx)

	log := clog.FromContext(ctx).With("run_id", execCtx.RunID, "model", e.modelName, "backend", e.backend)
	ctx = clog.WithLogger(ctx, log)

	trace := agenttrace.StartTrace[*Result](ctx, conv.LastUserContent())
	defer func() {
		trace.Complete(result, err)
	}()

	msgs, err := buildMessages(c.system, conv)
	if err != nil {
		return nil, err
	}

	params := openai.ChatCompletionNewParams{
		Model:    openai.ChatModel(e.modelName),
		Messages: msgs,
	}
	if e.temperature != nil {
		params.Temperature = openai.Float(*e.temperature)
	}
	if e.maxTokens > 0 {
		params.MaxTokens = openai.Int(e.maxTokens)
	}
	if len(tools) > 0 {
		params.Tools = openaitool.Definitions(tools)
	}
	handlers := openaitool.Map(tools)

	result = &Result{
		RunID:     execCtx.RunID,
		Status:    StatusCompleted,
		Model:     e.modelName,
		Backend:   e.backend,
		ToolCalls: []ToolCallSummary{},
		CreatedAt: time.Now().UTC(),
	}

	log.With("messages", len(conv), "tools", len(tools)).Info("Starting agent execution")

	for {
		resp, err := e.client.Chat.Completions.New(ctx, params)
		if err != nil {
			return nil, fmt.Errorf("chat completion: %w", err)
		}

		in, out := resp.Usage.PromptTokens, resp.Usage.CompletionTokens
		if in > 0 || out > 0 {
			result.Usage.InputTokens += in
			result.Usage.OutputTokens += out
			e.genaiMetrics.RecordTokens(ctx, e.modelName, in, out)
			trace.RecordTokenUsage(e.modelName, result.Usage.InputTokens, result.Usage.OutputTokens)
		}

		if len(resp.Choices) == 0 {
			return nil, errors.New("chat completion returned no choices")
		}
		msg := resp.Choices[0].Message

		if len(msg.ToolCalls) > 0 {
			params.Messages = append(params.Messages, msg.ToParam())
			for _, call := range msg.ToolCalls {
				log.With("tool", call.Function.Name, "id", call.ID).Info("Executing tool call")

				content, toolErr := openaitool.Dispatch(ctx, call, handlers, trace)
				e.genaiMetrics.RecordToolCall(ctx, e.modelName, call.Function.Name, toolErr != nil)

				summary := ToolCallSummary{ID: call.ID, Name: call.Function.Name}
				if toolErr != nil {
					summary.Error = toolErr.Error()
				}
				result.ToolCalls = append(result.ToolCalls, summary)
				params.Messages = append(params.Messages, openai.ToolMessage(content, call.ID))
			}
			continue
		}

		if msg.Content == "" {
			return nil, ErrEmptyReply
		}
		result.Content = msg.Content
		log.With("tool_calls", len(result.ToolCalls)).Info("Completed agent execution")
		return result, nil
	}
}

func buildMessages(prompt *promptbuilder.Prompt, conv conversation.Conversation) ([]openai.ChatCompletionMessageParamUnion, error) {
	messages := make([]openai.ChatCompletionMessageParamUnion, 0, len(conv)+1)
	if prompt != nil {
		system, err := prompt.Build()
		if err != nil {
			return nil, fmt.Errorf("building system prompt: %w", err)
		}
		messages = append(messages, openai.SystemMessage(system))
	}
	for _, m := range conv {
		switch m.Role {
		case conversation.RoleSystem:
			messages = append(messages, openai.SystemMessage(m.Content))
		case conversation.RoleUser:
			messages = append(messages, openai.UserMessage(m.Content))
		case conversation.RoleAssistant:
			messages = append(messages, openai.AssistantMessage(m.Content))
		}
	}
	return messages, nil
}
