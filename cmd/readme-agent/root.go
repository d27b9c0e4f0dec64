/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"chainguard.dev/readmeagent/agents/dispatcher"
	"chainguard.dev/readmeagent/agents/readme"
	"chainguard.dev/readmeagent/config"
	"github.com/chainguard-dev/clog"
	"github.com/spf13/cobra"
)

// globalFlags mirror the environment variables they override.
type globalFlags struct {
	openAIAPIKey      string
	openRouterAPIKey  string
	githubAccessToken string
	mem0APIKey        string
	model             string
	configPath        string
	outputDir         string
	logLevel          string
}

// overrides maps each flag to the variable it replaces. Empty values leave
// the environment in charge.
func (f *globalFlags) overrides() map[string]string {
	return map[string]string{
		"OPENAI_API_KEY":      f.openAIAPIKey,
		"OPENROUTER_API_KEY":  f.openRouterAPIKey,
		"GITHUB_ACCESS_TOKEN": f.githubAccessToken,
		"MEM0_API_KEY":        f.mem0APIKey,
		"MODEL_NAME":          f.model,
		"AGENT_CONFIG":        f.configPath,
		"README_OUTPUT_DIR":   f.outputDir,
		"LOG_LEVEL":           f.logLevel,
	}
}

func newRootCmd() *cobra.Command {
	var flags globalFlags
	var creds config.Credentials

	cmd := &cobra.Command{
		Use:           "readme-agent",
		Short:         "Generate README files for GitHub repositories with an LLM agent",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			var err error
			if creds, err = config.LoadCredentials(cmd.Context(), flags.overrides()); err != nil {
				return reportError(cmd, err)
			}
			ctx, err := withLogger(cmd.Context(), cmd.ErrOrStderr(), creds.LogLevel)
			if err != nil {
				return reportError(cmd, err)
			}
			cmd.SetContext(ctx)
			return nil
		},
	}

	pf := cmd.PersistentFlags()
	pf.StringVar(&flags.openAIAPIKey, "openai-api-key", "", "OpenAI API key (overrides OPENAI_API_KEY)")
	pf.StringVar(&flags.openRouterAPIKey, "openrouter-api-key", "", "OpenRouter API key (overrides OPENROUTER_API_KEY)")
	pf.StringVar(&flags.githubAccessToken, "github-access-token", "", "GitHub token (overrides GITHUB_ACCESS_TOKEN)")
	pf.StringVar(&flags.mem0APIKey, "mem0-api-key", "", "Mem0 API key (overrides MEM0_API_KEY)")
	pf.StringVar(&flags.model, "model", "", "OpenRouter model name (overrides MODEL_NAME)")
	pf.StringVar(&flags.configPath, "config", "", "path to agent_config.json (overrides AGENT_CONFIG)")
	pf.StringVar(&flags.outputDir, "output-dir", "", "directory README files are written to (overrides README_OUTPUT_DIR)")
	pf.StringVar(&flags.logLevel, "log-level", "", "debug, info, warn or error (overrides LOG_LEVEL)")

	serve := newServeCmd(&creds, &flags)
	cmd.AddCommand(serve, newGenerateCmd(&flags), newToolsCmd(&creds))
	// serve is the default command.
	cmd.RunE = serve.RunE
	return cmd
}

// agentConstructor builds the agent from credentials read at each attempt,
// so an initialization retried after a failure sees the current environment.
func agentConstructor(flags *globalFlags) dispatcher.Constructor {
	return func(ctx context.Context) (dispatcher.Runner, error) {
		creds, err := config.LoadCredentials(ctx, flags.overrides())
		if err != nil {
			return nil, err
		}
		return readme.New(ctx, creds)
	}
}

// withLogger installs a JSON slog handler writing to w at level.
func withLogger(ctx context.Context, w io.Writer, level string) (context.Context, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	handler := slog.NewJSONHandler(w, &slog.HandlerOptions{Level: lvl})
	slog.SetDefault(slog.New(handler))
	return clog.WithLogger(ctx, clog.New(handler)), nil
}

// reportError prints err for the user and returns it so the process exits 1.
func reportError(cmd *cobra.Command, err error) error {
	fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
	return err
}
