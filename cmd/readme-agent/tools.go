/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package main

import (
	"context"
	"io"
	"strings"

	"chainguard.dev/readmeagent/agents/readme"
	"chainguard.dev/readmeagent/config"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/renderer"
	"github.com/olekukonko/tablewriter/tw"
	"github.com/spf13/cobra"
)

func newToolsCmd(creds *config.Credentials) *cobra.Command {
	return &cobra.Command{
		Use:   "tools",
		Short: "Show which tool groups are enabled with the current credentials",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := printTools(cmd.Context(), *creds, cmd.OutOrStdout()); err != nil {
				return reportError(cmd, err)
			}
			return nil
		},
	}
}

func printTools(ctx context.Context, creds config.Credentials, w io.Writer) error {
	b, err := readme.New(ctx, creds)
	if err != nil {
		return err
	}
	defer b.Close()

	model := b.Model()
	table := newTable(w, "CAPABILITY", "STATUS", "TOOLS")
	_ = table.Append([]string{"model", "enabled", model.Backend + " " + model.Model})
	for _, c := range b.Capabilities() {
		status, detail := "enabled", strings.Join(c.Tools, ", ")
		if !c.Enabled {
			status, detail = "disabled", c.Reason
		}
		_ = table.Append([]string{c.Name, status, detail})
	}
	return table.Render()
}

func newTable(w io.Writer, headers ...string) *tablewriter.Table {
	cfg := tablewriter.Config{
		Header: tw.CellConfig{
			Alignment:  tw.CellAlignment{Global: tw.AlignLeft},
			Formatting: tw.CellFormatting{AutoFormat: tw.Off},
		},
		Row: tw.CellConfig{
			Alignment: tw.CellAlignment{Global: tw.AlignLeft},
		},
		Behavior: tw.Behavior{TrimSpace: tw.Off},
	}
	return tablewriter.NewTable(w,
		tablewriter.WithConfig(cfg),
		tablewriter.WithHeader(headers),
		tablewriter.WithRenderer(renderer.NewBlueprint()),
		tablewriter.WithRendition(tw.Rendition{
			Symbols: tw.NewSymbols(tw.StyleMarkdown),
			Borders: tw.Border{Left: tw.On, Top: tw.Off, Right: tw.On, Bottom: tw.Off},
		}),
		tablewriter.WithRowAutoWrap(tw.WrapNone),
	)
}
