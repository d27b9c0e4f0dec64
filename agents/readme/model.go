/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package readme

import (
	"errors"

	"chainguard.dev/readmeagent/config"
)

// Backend names.
const (
	BackendOpenAI     = "openai"
	BackendOpenRouter = "openrouter"
)

const (
	openAIModel       = "gpt-4o"
	openRouterBaseURL = "https://openrouter.ai/api/v1"
	defaultModelName  = "openai/gpt-4o"
	attributionTitle  = "README Generator Agent"
)

// ErrMissingCredential is returned when neither an OpenAI nor an OpenRouter
// API key is configured.
var ErrMissingCredential = errors.New("no API key provided: set OPENAI_API_KEY or OPENROUTER_API_KEY (https://platform.openai.com/api-keys, https://openrouter.ai/keys)")

// ModelSelection is the backend chosen from the credentials.
type ModelSelection struct {
	Backend string
	Model   string
	BaseURL string // empty for the OpenAI default
	APIKey  string `json:"-"`
}

// SelectModel picks the backend. An OpenAI key wins over an OpenRouter key,
// and with an OpenAI key the model name setting is ignored.
func SelectModel(creds config.Credentials) (ModelSelection, error) {
	switch {
	case creds.OpenAIAPIKey != "":
		return ModelSelection{
			Backend: BackendOpenAI,
			Model:   openAIModel,
			APIKey:  creds.OpenAIAPIKey,
		}, nil
	case creds.OpenRouterAPIKey != "":
		model := creds.ModelName
		if model == "" {
			model = defaultModelName
		}
		return ModelSelection{
			Backend: BackendOpenRouter,
			Model:   model,
			BaseURL: openRouterBaseURL,
			APIKey:  creds.OpenRouterAPIKey,
		}, nil
	default:
		return ModelSelection{}, ErrMissingCredential
	}
}
