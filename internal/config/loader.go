// Riffline - Social Music Collaboration and Discovery Platform
// Copyright 2026 Tristan Hayes (tristanhayes)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tristanhayes/riffline

// Package config loads the discovery engine configuration from layered
// sources with the precedence ENV > file > defaults.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"

	"github.com/tristanhayes/riffline/internal/discovery"
)

// DefaultConfigPaths lists the paths where config files are searched in
// order of priority. The first file found wins.
var DefaultConfigPaths = []string{
	"discovery.yaml",
	"discovery.yml",
	"/etc/riffline/discovery.yaml",
	"/etc/riffline/discovery.yml",
}

// ConfigPathEnvVar overrides the config file path when set.
const ConfigPathEnvVar = "RIFFLINE_CONFIG_PATH"

// envPrefix namespaces the engine's environment variables.
const envPrefix = "RIFFLINE_"

// Load builds a discovery configuration from layered sources:
//  1. Defaults: discovery.DefaultConfig
//  2. Config file: optional YAML file (if one exists)
//  3. Environment variables: override any setting
func Load() (*discovery.Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(discovery.DefaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if configPath := findConfigFile(); configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	if err := k.Load(env.Provider(envPrefix, ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := processSliceFields(k); err != nil {
		return nil, fmt.Errorf("failed to process slice fields: %w", err)
	}

	cfg := &discovery.Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// findConfigFile returns the first readable config file path, or empty.
func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}

	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// sliceConfigPaths defines which config paths are parsed as
// comma-separated slices when they arrive as env strings.
var sliceConfigPaths = []string{
	"supported_genres",
}

// processSliceFields converts comma-separated string values to slices for
// known slice fields. Env vars come in as strings, but the config expects
// slices.
func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		val := k.Get(path)
		if val == nil {
			continue
		}

		// Already a slice (from the YAML file or the defaults).
		if _, ok := val.([]interface{}); ok {
			continue
		}
		if _, ok := val.([]string); ok {
			continue
		}

		strVal, ok := val.(string)
		if !ok || strVal == "" {
			continue
		}
		parts := strings.Split(strVal, ",")
		trimmed := make([]string, 0, len(parts))
		for _, p := range parts {
			p = strings.TrimSpace(p)
			if p != "" {
				trimmed = append(trimmed, p)
			}
		}
		if len(trimmed) > 0 {
			if err := k.Set(path, trimmed); err != nil {
				return fmt.Errorf("failed to set %s: %w", path, err)
			}
		}
	}
	return nil
}

// envTransformFunc maps environment variable names to koanf config paths.
//
// Examples:
//   - RIFFLINE_TRENDING_VOTE_WEIGHT -> trending.weights.vote
//   - RIFFLINE_RECOMMEND_LIMIT -> recommend.limit
//   - RIFFLINE_CACHE_ENABLED -> cache.enabled
func envTransformFunc(key string) string {
	key = strings.ToLower(strings.TrimPrefix(key, envPrefix))

	envMappings := map[string]string{
		// Trending scorer mappings
		"trending_vote_weight":       "trending.weights.vote",
		"trending_collab_weight":     "trending.weights.collaboration",
		"trending_recency_weight":    "trending.weights.recency",
		"trending_recency_half_life": "trending.recency_half_life",
		"trending_recency_floor":     "trending.recency_floor",
		"trending_vote_saturation":   "trending.vote_saturation",
		"trending_collab_saturation": "trending.collab_saturation",

		// Profile builder mappings
		"profile_activity_window":  "profile.activity_window",
		"profile_medium_threshold": "profile.activity_thresholds.medium",
		"profile_high_threshold":   "profile.activity_thresholds.high",

		// Chart generator mappings
		"charts_default_limit":  "charts.default_limit",
		"charts_rising_window":  "charts.rising_window",
		"chart_update_schedule": "chart_update_schedule",

		// Recommendation engine mappings
		"recommend_limit":          "recommend.limit",
		"recommend_trend_weight":   "recommend.trend_weight",
		"recommend_profile_weight": "recommend.profile_weight",
		"recommend_genre_weight":   "recommend.genre_weight",
		"recommend_mood_weight":    "recommend.mood_weight",
		"recommend_skill_weight":   "recommend.skill_weight",

		// Collaboration matcher mappings
		"match_limit":             "match.limit",
		"match_skill_weight":      "match.skill_weight",
		"match_confidence_weight": "match.confidence_weight",
		"match_trend_weight":      "match.trend_weight",

		// Search engine mappings
		"search_max_results":        "search.max_results",
		"search_autocomplete_limit": "search.autocomplete_limit",

		// Result cache mappings
		"cache_enabled":     "cache.enabled",
		"cache_ttl":         "cache.ttl",
		"cache_max_entries": "cache.max_entries",

		// Catalog mappings
		"supported_genres": "supported_genres",
	}

	if mapped, ok := envMappings[key]; ok {
		return mapped
	}

	// Unmapped keys are skipped so stray environment variables never
	// pollute the configuration.
	return ""
}

// WatchConfigFile invokes callback whenever the config file changes. The
// caller owns mutex protection around any configuration swap.
func WatchConfigFile(path string, callback func()) error {
	provider := file.Provider(path)

	return provider.Watch(func(event interface{}, err error) {
		if err != nil {
			return
		}
		callback()
	})
}
