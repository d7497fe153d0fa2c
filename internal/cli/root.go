// Resonance - Visitor Personalization and Content Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/resonance

// Package cli implements the resonance command line tool.
//
// The commands run the scorer, the recommendation composer and journey
// inference against visitor contexts stored as JSON files, without a
// running server. They are meant for tuning weights and checking seeds.
package cli

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/tomtom215/resonance/internal/catalog"
	"github.com/tomtom215/resonance/internal/clock"
	"github.com/tomtom215/resonance/internal/config"
	"github.com/tomtom215/resonance/internal/visitor"
)

const (
	formatJSON = "json"
	formatText = "text"
)

// options holds the persistent flags shared by every command.
type options struct {
	configPath string
	seedPath   string
	format     string
	at         string
}

// NewRootCmd builds the command tree.
func NewRootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:   "resonance",
		Short: "Score and rank content for a visitor context",
		Long: "Offline tools for the Resonance personalization engine. Reads visitor " +
			"contexts from JSON files and prints resonance scores, recommendations " +
			"and journey classification.",
		SilenceUsage: true,
		PersistentPreRunE: func(*cobra.Command, []string) error {
			if opts.format != formatJSON && opts.format != formatText {
				return fmt.Errorf("unknown format %q (want json or text)", opts.format)
			}
			return nil
		},
	}

	root.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "Config file (default: $CONFIG_PATH or ./config.yaml)")
	root.PersistentFlags().StringVarP(&opts.seedPath, "seed", "s", "", "Catalog seed JSON (default: embedded seed)")
	root.PersistentFlags().StringVarP(&opts.format, "format", "f", formatJSON, "Output format: json or text")
	root.PersistentFlags().StringVar(&opts.at, "at", "", "Evaluation time in RFC3339 (default: now)")

	root.AddCommand(newScoreCmd(opts), newRecommendCmd(opts), newRankCmd(opts), newJourneyCmd(opts))
	return root
}

// Execute runs the root command with os.Args.
func Execute() error {
	return NewRootCmd().Execute()
}

func (o *options) loadConfig() (*config.Config, error) {
	if o.configPath != "" {
		return config.LoadFrom(o.configPath)
	}
	return config.Load()
}

func (o *options) clock() (clock.Clock, error) {
	if o.at == "" {
		return clock.Real{}, nil
	}
	t, err := time.Parse(time.RFC3339, o.at)
	if err != nil {
		return nil, fmt.Errorf("parse --at: %w", err)
	}
	return clock.NewFixed(t), nil
}

func (o *options) openCatalog(cfg *config.Config) (*catalog.Catalog, error) {
	catCfg := cfg.Catalog
	if o.seedPath != "" {
		catCfg.SeedPath = o.seedPath
	}
	return catalog.Open(catCfg, zerolog.Nop())
}

// readContext loads a visitor context from path, or stdin for "-". The
// derived fields are recomputed so hand-written files stay consistent.
func readContext(path string, stdin io.Reader) (visitor.Context, error) {
	var data []byte
	var err error
	if path == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return visitor.Context{}, fmt.Errorf("read context: %w", err)
	}

	var vc visitor.Context
	if err := json.Unmarshal(data, &vc); err != nil {
		return visitor.Context{}, fmt.Errorf("decode context %s: %w", path, err)
	}
	if vc.VisitorID == "" {
		vc.VisitorID = "cli"
	}
	return visitor.Derive(vc), nil
}

func writeJSON(w io.Writer, v interface{}) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(b))
	return err
}
