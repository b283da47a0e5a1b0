package main

import (
	"context"
	"encoding/json"

	"github.com/spf13/cobra"

	"github.com/marcus-crane/steamshame/report"
)

func newLookupCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "lookup <steam id | vanity name | profile url>",
		Short: "Print a shame report for one profile",
		Long: `Lookup resolves a Steam profile and prints its shame report as Markdown.

Examples:
  steamshame lookup 76561197960287930
  steamshame lookup gabelogannewell
  steamshame lookup https://steamcommunity.com/id/gabelogannewell/
  steamshame lookup --json gabelogannewell`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, svc, err := setup()
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			ctx, cancel := context.WithTimeout(ctx, 3*cfg.SteamTimeout())
			defer cancel()

			r, err := svc.Lookup(ctx, args[0])
			if err != nil {
				return err
			}

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(r)
			}
			return report.NewMarkdownWriter(cmd.OutOrStdout()).Write(r, svc.Policy().Name())
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the report as JSON instead of Markdown")

	return cmd
}
