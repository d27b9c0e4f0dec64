/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package openaiexecutor

import (
	"errors"
	"fmt"

	"chainguard.dev/readmeagent/agents/metrics"
	"chainguard.dev/readmeagent/agents/promptbuilder"
)

// Option is a functional option for configuring the executor.
type Option func(*executor) error

// WithModel overrides the model name sent to the endpoint.
func WithModel(model string) Option {
	return func(e *executor) error {
		if model == "" {
			return errors.New("model cannot be empty")
		}
		e.modelName = model
		return nil
	}
}

// WithBackend sets the backend name reported in results and metrics.
func WithBackend(backend string) Option {
	return func(e *executor) error {
		if backend == "" {
			return errors.New("backend cannot be empty")
		}
		e.backend = backend
		return nil
	}
}

// WithSystemInstructions sets the system prompt prepended to every run.
func WithSystemInstructions(prompt *promptbuilder.Prompt) Option {
	return func(e *executor) error {
		if prompt == nil {
			return errors.New("system instructions prompt cannot be nil")
		}
		e.systemInstructions = prompt
		return nil
	}
}

// WithMaxTokens limits the tokens of each reply. Zero leaves the limit to
// the endpoint.
func WithMaxTokens(tokens int64) Option {
	return func(e *executor) error {
		if tokens < 0 {
			return fmt.Errorf("max tokens must not be negative, got %d", tokens)
		}
		e.maxTokens = tokens
		return nil
	}
}

// WithTemperature sets the sampling temperature, between 0.0 and 2.0.
// Without it the endpoint's default applies.
func WithTemperature(temp float64) Option {
	return func(e *executor) error {
		if temp < 0.0 || temp > 2.0 {
			return fmt.Errorf("temperature must be between 0.0 and 2.0, got %f", temp)
		}
		e.temperature = &temp
		return nil
	}
}

// WithAttributeEnricher sets the enricher applied to token and tool call
// metrics.
func WithAttributeEnricher(enricher metrics.AttributeEnricher) Option {
	return func(e *executor) error {
		e.genaiMetrics.SetAttributeEnricher(enricher)
		return nil
	}
}

// WithMetrics replaces the GenAI metrics instance.
func WithMetrics(m *metrics.GenAI) Option {
	return func(e *executor) error {
		if m == nil {
			return errors.New("metrics cannot be nil")
		}
		e.genaiMetrics = m
		return nil
	}
}

// CallOption configures a single Execute call.
type CallOption func(*callOptions)

type callOptions struct {
	system *promptbuilder.Prompt
}

// WithCallInstructions replaces the system prompt for one call. A nil
// prompt sends no system prompt.
func WithCallInstructions(prompt *promptbuilder.Prompt) CallOption {
	return func(c *callOptions) { c.system = prompt }
}
