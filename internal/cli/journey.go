// Resonance - Visitor Personalization and Content Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/resonance

package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tomtom215/resonance/internal/recommend"
	"github.com/tomtom215/resonance/internal/visitor"
)

// journeyReport is the output of the journey command.
type journeyReport struct {
	VisitorID       string                  `json:"visitor_id"`
	Journey         visitor.JourneyStage    `json:"journey"`
	EngagementLevel visitor.EngagementLevel `json:"engagement_level"`
	NextActions     []string                `json:"next_actions"`
}

func newJourneyCmd(opts *options) *cobra.Command {
	var contextPath string

	cmd := &cobra.Command{
		Use:   "journey",
		Short: "Classify a visitor's journey stage and engagement",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}
			vc, err := readContext(contextPath, cmd.InOrStdin())
			if err != nil {
				return err
			}

			report := journeyReport{
				VisitorID:       vc.VisitorID,
				Journey:         vc.Journey,
				EngagementLevel: vc.EngagementLevel,
				NextActions:     recommend.NextActions(vc, cfg.Recommend.MaxNextActions),
			}

			if opts.format == formatJSON {
				return writeJSON(cmd.OutOrStdout(), report)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "journey=%s engagement=%s\nnext: %s\n",
				report.Journey, report.EngagementLevel, strings.Join(report.NextActions, ", "))
			return nil
		},
	}

	cmd.Flags().StringVar(&contextPath, "context", "", "Visitor context JSON file, or - for stdin (required)")
	_ = cmd.MarkFlagRequired("context")
	return cmd
}
