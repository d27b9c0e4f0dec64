/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package server

import (
	"fmt"

	"chainguard.dev/readmeagent/agents/conversation"
	"chainguard.dev/readmeagent/agents/executor/openaiexecutor"
	"chainguard.dev/readmeagent/agents/schema"
	"chainguard.dev/readmeagent/config"
)

// Card is the discovery document served at /.well-known/agent.json.
type Card struct {
	Name                 string               `json:"name"`
	Description          string               `json:"description"`
	Version              string               `json:"version"`
	URL                  string               `json:"url"`
	ProtocolVersion      string               `json:"protocol_version"`
	Skills               []string             `json:"skills,omitempty"`
	InputSchema          map[string]any       `json:"input_schema"`
	OutputSchema         map[string]any       `json:"output_schema"`
	EnvironmentVariables []config.EnvVariable `json:"environment_variables,omitempty"`
}

// NewCard describes the agent configured by cfg.
func NewCard(cfg *config.AgentConfig, skills []string) (*Card, error) {
	in, err := schema.Document[conversation.Message]()
	if err != nil {
		return nil, fmt.Errorf("input schema: %w", err)
	}
	out, err := schema.Document[openaiexecutor.Result]()
	if err != nil {
		return nil, fmt.Errorf("output schema: %w", err)
	}
	return &Card{
		Name:                 cfg.Name,
		Description:          cfg.Description,
		Version:              cfg.Version,
		URL:                  cfg.Deployment.URL,
		ProtocolVersion:      cfg.Deployment.ProtocolVersion,
		Skills:               skills,
		InputSchema:          in,
		OutputSchema:         out,
		EnvironmentVariables: cfg.EnvironmentVariables,
	}, nil
}
