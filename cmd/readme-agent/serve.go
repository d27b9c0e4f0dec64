/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package main

import (
	"context"

	"chainguard.dev/readmeagent/agents/dispatcher"
	"chainguard.dev/readmeagent/agents/readme"
	"chainguard.dev/readmeagent/config"
	"chainguard.dev/readmeagent/server"
	"github.com/chainguard-dev/clog"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

func newServeCmd(creds *config.Credentials, flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the agent over HTTP until interrupted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := serve(cmd.Context(), *creds, agentConstructor(flags)); err != nil {
				return reportError(cmd, err)
			}
			return nil
		},
	}
}

func serve(ctx context.Context, creds config.Credentials, construct dispatcher.Constructor) error {
	cfg, _ := config.Load(ctx, creds.ConfigPath)

	// Fail fast on a missing model credential rather than on the first
	// request.
	model, err := readme.SelectModel(creds)
	if err != nil {
		clog.ErrorContextf(ctx, "Cannot start: %v", err)
		return err
	}
	clog.InfoContextf(ctx, "Starting %s v%s with %s model %s", cfg.Name, cfg.Version, model.Backend, model.Model)

	d := dispatcher.New(construct)
	defer func() {
		if err := d.Close(context.WithoutCancel(ctx)); err != nil {
			clog.WarnContextf(ctx, "Cleanup failed: %v", err)
		}
	}()

	var skills []string
	for _, c := range readme.Plan(creds) {
		if c.Enabled {
			skills = append(skills, c.Name)
		}
	}
	srv, err := server.New(cfg, d, server.WithSkills(skills...))
	if err != nil {
		return err
	}

	eg, egCtx := errgroup.WithContext(ctx)
	eg.Go(func() error { return srv.ListenAndServe(egCtx) })
	eg.Go(func() error {
		<-egCtx.Done()
		if ctx.Err() != nil {
			clog.InfoContextf(ctx, "Received shutdown signal")
		}
		return nil
	})
	if err := eg.Wait(); err != nil {
		return err
	}
	clog.InfoContextf(ctx, "Shut down cleanly")
	return nil
}
