// Resonance - Visitor Personalization and Content Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/resonance

package cli

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/tomtom215/resonance/internal/content"
	"github.com/tomtom215/resonance/internal/resonance"
)

func newScoreCmd(opts *options) *cobra.Command {
	var contextPath, contentPath, contentID string

	cmd := &cobra.Command{
		Use:   "score",
		Short: "Compute the resonance of one content item for a visitor",
		Example: "  resonance score --context visitor.json --id store-wuhua-wenlin\n" +
			"  resonance score --context visitor.json --content item.json --at 2026-10-20T11:00:00Z",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if (contentPath == "") == (contentID == "") {
				return errors.New("exactly one of --content or --id is required")
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

			var item content.Item
			if contentPath != "" {
				data, err := os.ReadFile(contentPath)
				if err != nil {
					return fmt.Errorf("read content: %w", err)
				}
				if err := json.Unmarshal(data, &item); err != nil {
					return fmt.Errorf("decode content %s: %w", contentPath, err)
				}
			} else {
				cat, err := opts.openCatalog(cfg)
				if err != nil {
					return err
				}
				if item, err = cat.Get(cmd.Context(), contentID); err != nil {
					return err
				}
			}

			result := resonance.NewScorer(&cfg.Scoring, clk).Calculate(vc, item)
			if opts.format == formatText {
				return printScore(cmd, item, result)
			}
			return writeJSON(cmd.OutOrStdout(), result)
		},
	}

	cmd.Flags().StringVar(&contextPath, "context", "", "Visitor context JSON file, or - for stdin (required)")
	cmd.Flags().StringVar(&contentPath, "content", "", "Content item JSON file")
	cmd.Flags().StringVar(&contentID, "id", "", "Content or store ID from the catalog")
	_ = cmd.MarkFlagRequired("context")
	return cmd
}

func printScore(cmd *cobra.Command, item content.Item, r resonance.Result) error {
	out := cmd.OutOrStdout()
	c := r.Components
	fmt.Fprintf(out, "%s  score=%.3f  strength=%s\n", item.ID, r.Score, r.Strength)
	fmt.Fprintf(out, "  interest=%.2f location=%.2f behavior=%.2f temporal=%.2f journey=%.2f\n",
		c.Interest, c.Location, c.Behavior, c.Temporal, c.Journey)
	if r.DistanceKm != nil {
		fmt.Fprintf(out, "  distance=%.1fkm\n", *r.DistanceKm)
	}
	if len(r.Reasons) > 0 {
		fmt.Fprintf(out, "  reasons: %s\n", strings.Join(r.Reasons, "; "))
	}
	return nil
}
