// Resonance - Visitor Personalization and Content Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/resonance

package cli

import (
	"fmt"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/tomtom215/resonance/internal/recommend"
)

func newRecommendCmd(opts *options) *cobra.Command {
	var contextPath string
	var limit int

	cmd := &cobra.Command{
		Use:     "recommend",
		Short:   "Rank recommendations for a visitor",
		Example: "  resonance recommend --context visitor.json --limit 5 --format text",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if limit < 0 {
				return fmt.Errorf("--limit must not be negative")
			}
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}
			clk, err := opts.clock()
			if err != nil {
				return err
			}
			vc, err := readContext(contextPath, cmd.InOrStdin())
			if err != nil {
				return err
			}
			cat, err := opts.openCatalog(cfg)
			if err != nil {
				return err
			}

			composer := recommend.NewComposer(&cfg.Recommend, cat.Contents, cat.Stores, clk, zerolog.Nop())
			resp := composer.Recommend(cmd.Context(), vc)
			resp.Items = resp.Top(limit)

			if opts.format == formatJSON {
				return writeJSON(cmd.OutOrStdout(), resp)
			}

			out := cmd.OutOrStdout()
			for i, it := range resp.Items {
				fmt.Fprintf(out, "%2d. [%s] %s (priority %d, %s)\n", i+1, it.Strategy, it.ContentType, it.Priority, it.Reason)
			}
			if resp.Degraded {
				fmt.Fprintln(out, "degraded: every strategy failed, showing defaults")
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&contextPath, "context", "", "Visitor context JSON file, or - for stdin (required)")
	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "Maximum items (0 for all)")
	_ = cmd.MarkFlagRequired("context")
	return cmd
}
