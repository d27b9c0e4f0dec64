/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package config loads the agent's deployment configuration file and its
// credentials.
package config

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"

	"github.com/chainguard-dev/clog"
)

// FileName is the configuration file looked up during discovery.
const FileName = "agent_config.json"

// AgentConfig describes the agent and how it is served.
type AgentConfig struct {
	Name                 string        `json:"name"`
	Description          string        `json:"description"`
	Version              string        `json:"version"`
	Deployment           Deployment    `json:"deployment"`
	EnvironmentVariables []EnvVariable `json:"environment_variables"`
}

// Deployment holds the serving parameters.
type Deployment struct {
	URL             string   `json:"url"`
	Expose          bool     `json:"expose"`
	ProtocolVersion string   `json:"protocol_version"`
	ProxyURLs       []string `json:"proxy_urls"`
	CORSOrigins     []string `json:"cors_origins"`
	// RateLimitRPM caps runs per client address per minute. Zero disables
	// the limit.
	RateLimitRPM int `json:"rate_limit_rpm"`
	RateBurst    int `json:"rate_burst"`
}

// EnvVariable documents one environment variable the agent reads.
type EnvVariable struct {
	Key         string `json:"key"`
	Description string `json:"description"`
	Required    bool   `json:"required"`
}

// ListenAddr returns the host:port to listen on, taken from the deployment
// URL.
func (d Deployment) ListenAddr() (string, error) {
	u, err := url.Parse(d.URL)
	if err != nil {
		return "", fmt.Errorf("parse deployment url %q: %w", d.URL, err)
	}
	if u.Host == "" {
		return "", fmt.Errorf("deployment url %q has no host", d.URL)
	}
	if u.Port() == "" {
		if u.Scheme == "https" {
			return u.Host + ":443", nil
		}
		return u.Host + ":80", nil
	}
	return u.Host, nil
}

// Default returns the configuration used when no file can be loaded.
func Default() *AgentConfig {
	return &AgentConfig{
		Name:        "readme-generator-agent",
		Description: "AI-powered README generator that creates comprehensive, professional documentation for open source projects by analyzing GitHub repositories",
		Version:     "1.0.0",
		Deployment: Deployment{
			URL:             "http://127.0.0.1:3773",
			Expose:          true,
			ProtocolVersion: "1.0.0",
			ProxyURLs:       []string{"127.0.0.1"},
			CORSOrigins:     []string{"*"},
		},
		EnvironmentVariables: []EnvVariable{
			{Key: "OPENAI_API_KEY", Description: "OpenAI API key for LLM calls"},
			{Key: "OPENROUTER_API_KEY", Description: "OpenRouter API key for LLM calls"},
			{Key: "GITHUB_ACCESS_TOKEN", Description: "GitHub personal access token for repository access"},
			{Key: "MEM0_API_KEY", Description: "Mem0 API key for memory operations"},
		},
	}
}

// Candidates returns the paths tried by Load, in order: the explicit path
// if any, the parent of the executable's directory, the executable's
// directory, and the working directory.
func Candidates(explicit string) []string {
	var paths []string
	if explicit != "" {
		paths = append(paths, explicit)
	}
	if exe, err := os.Executable(); err == nil {
		dir := filepath.Dir(exe)
		paths = append(paths,
			filepath.Join(filepath.Dir(dir), FileName),
			filepath.Join(dir, FileName))
	}
	if wd, err := os.Getwd(); err == nil {
		paths = append(paths, filepath.Join(wd, FileName))
	}
	return paths
}

// Load returns the first readable and well-formed configuration among
// Candidates(explicit), with the path it came from. Unusable files are
// logged and skipped; when none is usable the default configuration is
// returned with an empty path.
func Load(ctx context.Context, explicit string) (*AgentConfig, string) {
	return load(ctx, Candidates(explicit))
}

func load(ctx context.Context, candidates []string) (*AgentConfig, string) {
	for _, path := range candidates {
		cfg, err := readFile(path)
		switch {
		case err == nil:
			clog.InfoContextf(ctx, "Loaded configuration from %s", path)
			return cfg, path
		case errors.Is(err, os.ErrNotExist):
			continue
		default:
			clog.WarnContextf(ctx, "Skipping configuration %s: %v", path, err)
		}
	}
	clog.WarnContextf(ctx, "No usable %s found, using default configuration", FileName)
	return Default(), ""
}

func readFile(path string) (*AgentConfig, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	// Fields missing from the file keep their defaults.
	cfg := Default()
	if err := json.Unmarshal(b, cfg); err != nil {
		return nil, fmt.Errorf("parse: %w", err)
	}
	return cfg, nil
}
