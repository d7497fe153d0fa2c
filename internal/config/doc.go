// Resonance - Visitor Personalization and Content Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/resonance

/*
Package config provides centralized configuration management for Resonance.

Configuration is layered with Koanf v2:

 1. Defaults from defaultConfig(), including the scoring, recommendation,
    catalog and behavior defaults owned by those packages
 2. An optional YAML file (CONFIG_PATH, ./config.yaml or /etc/resonance/config.yaml)
 3. Environment variables listed in envMappings

Unmapped environment variables are ignored.

# Environment Variables

	HTTP_PORT, HTTP_HOST, ENVIRONMENT           server
	LOG_LEVEL, LOG_FORMAT, LOG_CALLER           logging
	CORS_ORIGINS, RATE_LIMIT_REQUESTS           security (comma-separated origins)
	SCORING_WEIGHT_INTEREST ... _JOURNEY        resonance weights
	RECOMMEND_*_THRESHOLD, RECOMMEND_MAX_ITEMS  composer
	CATALOG_SEED_PATH, CATALOG_BREAKER_*        content catalog
	STORE_PERSIST, STORE_PATH, STORE_*_TTL      visitor context store
	EVENTS_ENABLED, EVENTS_TOPIC, EVENTS_BUFFER event bus
	BEHAVIOR_*                                  behavior tracking

# Example

	cfg, err := config.Load()
	if err != nil {
	    log.Fatal().Err(err).Msg("load config")
	}
	scorer := resonance.NewScorer(&cfg.Scoring, clock.Real{})

Validate wraps every failure in ErrInvalidConfig.
*/
package config
