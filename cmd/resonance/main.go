// Resonance - Visitor Personalization and Content Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/resonance

// Command resonance is the offline scoring and recommendation tool.
package main

import (
	"os"

	"github.com/tomtom215/resonance/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
