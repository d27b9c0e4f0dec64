/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package config

import (
	"context"
	"fmt"

	"github.com/sethvargo/go-envconfig"
)

// Credentials holds the secrets and runtime settings read from the
// environment.
type Credentials struct {
	OpenAIAPIKey      string `env:"OPENAI_API_KEY"`
	OpenRouterAPIKey  string `env:"OPENROUTER_API_KEY"`
	GitHubAccessToken string `env:"GITHUB_ACCESS_TOKEN"`
	Mem0APIKey        string `env:"MEM0_API_KEY"`
	ModelName         string `env:"MODEL_NAME,default=openai/gpt-4o"`
	ConfigPath        string `env:"AGENT_CONFIG"`
	OutputDir         string `env:"README_OUTPUT_DIR,default=."`
	Mem0UserID        string `env:"MEM0_USER_ID,default=readme-generator-agent"`
	LogLevel          string `env:"LOG_LEVEL,default=info"`
}

// LoadCredentials reads credentials from the environment. Non-empty values
// in overrides, keyed by variable name, take precedence.
func LoadCredentials(ctx context.Context, overrides map[string]string) (Credentials, error) {
	return loadCredentials(ctx, overrides, envconfig.OsLookuper())
}

func loadCredentials(ctx context.Context, overrides map[string]string, base envconfig.Lookuper) (Credentials, error) {
	set := make(map[string]string, len(overrides))
	for k, v := range overrides {
		if v != "" {
			set[k] = v
		}
	}

	var creds Credentials
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   &creds,
		Lookuper: envconfig.MultiLookuper(envconfig.MapLookuper(set), base),
	}); err != nil {
		return Credentials{}, fmt.Errorf("processing credentials: %w", err)
	}
	return creds, nil
}
