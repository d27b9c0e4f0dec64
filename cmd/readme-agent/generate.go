/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package main

import (
	"context"
	"fmt"
	"io"

	"chainguard.dev/readmeagent/agents/conversation"
	"chainguard.dev/readmeagent/agents/dispatcher"
	"chainguard.dev/readmeagent/agents/result"
	"chainguard.dev/readmeagent/integrations/githubrepo"
	"github.com/chainguard-dev/clog"
	"github.com/spf13/cobra"
)

func newGenerateCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "generate <owner/repo | github URL>",
		Short: "Generate a README for one repository and print it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d := dispatcher.New(agentConstructor(flags))
			if err := generate(cmd.Context(), d, args[0], cmd.OutOrStdout()); err != nil {
				return reportError(cmd, err)
			}
			return nil
		},
	}
}

func generate(ctx context.Context, d *dispatcher.Dispatcher, ref string, w io.Writer) error {
	owner, repo, err := githubrepo.ParseRepository(ref)
	if err != nil {
		return err
	}
	defer func() {
		if err := d.Close(context.WithoutCancel(ctx)); err != nil {
			clog.WarnContextf(ctx, "Cleanup failed: %v", err)
		}
	}()

	conv := conversation.Conversation{
		conversation.User(fmt.Sprintf("Generate a README for %s/%s", owner, repo)),
	}
	res, err := d.Handle(ctx, conv)
	if interrupted(ctx, err) {
		clog.InfoContextf(ctx, "Interrupted, no README generated")
		return nil
	}
	if err != nil {
		return err
	}
	clog.InfoContextf(ctx, "Run %s finished: %d tool calls, %d input and %d output tokens",
		res.RunID, len(res.ToolCalls), res.Usage.InputTokens, res.Usage.OutputTokens)
	_, err = fmt.Fprintln(w, result.ExtractMarkdown(res.Content))
	return err
}
