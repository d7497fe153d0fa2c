// Resonance - Visitor Personalization and Content Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/resonance

package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tomtom215/resonance/internal/catalog"
	"github.com/tomtom215/resonance/internal/content"
	"github.com/tomtom215/resonance/internal/resonance"
)

func newRankCmd(opts *options) *cobra.Command {
	var contextPath, kind string
	var limit int

	cmd := &cobra.Command{
		Use:     "rank",
		Short:   "Score every catalog item for a visitor, best first",
		Example: "  resonance rank --context visitor.json --kind store --limit 3",
		RunE: func(cmd *cobra.Command, _ []string) error {
			var filter content.Kind
			if kind != "" {
				k, err := content.ParseKind(kind)
				if err != nil {
					return err
				}
				filter = k
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

			seedPath := cfg.Catalog.SeedPath
			if opts.seedPath != "" {
				seedPath = opts.seedPath
			}
			seed, err := catalog.LoadSeed(seedPath)
			if err != nil {
				return err
			}

			candidates := make([]content.Item, 0, len(seed.Content)+len(seed.Stores))
			for _, it := range append(append([]content.Item{}, seed.Content...), seed.Stores...) {
				if filter == content.KindUnknown || content.Classify(it) == filter {
					candidates = append(candidates, it)
				}
			}

			ranked := resonance.NewScorer(&cfg.Scoring, clk).ScoreBatch(vc, candidates)
			if limit > 0 && limit < len(ranked) {
				ranked = ranked[:limit]
			}

			if opts.format == formatJSON {
				return writeJSON(cmd.OutOrStdout(), ranked)
			}
			out := cmd.OutOrStdout()
			for i, s := range ranked {
				fmt.Fprintf(out, "%2d. %-24s %.3f %s\n", i+1, s.Item.ID, s.Result.Score, s.Result.Strength)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&contextPath, "context", "", "Visitor context JSON file, or - for stdin (required)")
	cmd.Flags().StringVarP(&kind, "kind", "k", "", "Only rank items of this kind (store, product, training, ...)")
	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "Maximum items (0 for all)")
	_ = cmd.MarkFlagRequired("context")
	return cmd
}
