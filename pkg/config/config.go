// Package config defines the analysis settings shared by the CLI and the
// engine packages. Field tags follow viper's mapstructure convention so a
// config file or environment override can populate any of them.
package config

import (
	"github.com/beadviewer/bvgraph/pkg/analysis"
)

// Config holds every tunable for a full analysis run.
type Config struct {
	PageRank    analysis.PageRankConfig    `mapstructure:"pagerank"`
	Eigenvector analysis.EigenvectorConfig `mapstructure:"eigenvector"`
	HITS        analysis.HITSConfig        `mapstructure:"hits"`
	Betweenness BetweennessConfig          `mapstructure:"betweenness"`
	Insights    InsightsConfig             `mapstructure:"insights"`
	WhatIf      WhatIfConfig               `mapstructure:"what_if"`
}

type BetweennessConfig struct {
	// SampleSize caps the number of pivot sources; 0 lets the engine pick
	// a size from the node count.
	SampleSize int `mapstructure:"sample_size"`
	// Seed makes sampled runs reproducible.
	Seed int64 `mapstructure:"seed"`
}

type InsightsConfig struct {
	// Limit is the number of entries kept per insight category.
	Limit int `mapstructure:"limit"`
}

type WhatIfConfig struct {
	// Limit caps the ranked results returned by top and all.
	Limit int `mapstructure:"limit"`
}

// Default returns a configuration with sensible default values.
func Default() Config {
	return Config{
		PageRank:    analysis.DefaultPageRankConfig(),
		Eigenvector: analysis.DefaultEigenvectorConfig(),
		HITS:        analysis.DefaultHITSConfig(),
		Betweenness: BetweennessConfig{
			SampleSize: 0,
			Seed:       42,
		},
		Insights: InsightsConfig{
			Limit: 5,
		},
		WhatIf: WhatIfConfig{
			Limit: 10,
		},
	}
}

// ComputeOptions translates the configuration into engine options for a
// graph of the given size.
func (c Config) ComputeOptions(nodeCount int) analysis.ComputeOptions {
	sample := c.Betweenness.SampleSize
	if sample <= 0 {
		sample = analysis.RecommendSampleSize(nodeCount)
	}
	return analysis.ComputeOptions{
		BetweennessSampleSize: sample,
		BetweennessSeed:       c.Betweenness.Seed,
		PageRank:              c.PageRank,
		Eigenvector:           c.Eigenvector,
		HITS:                  c.HITS,
	}
}
