package config

import (
	"errors"
	"fmt"

	"dario.cat/mergo"
)

// configBuilder accumulates one partial config per source, in priority
// order, and merges them in build. Source failures are joined rather than
// aborting so one build call reports all of them.
type configBuilder struct {
	configs []*StructuredConfig
	err     error
}

func newConfigBuilder() *configBuilder {
	return &configBuilder{configs: make([]*StructuredConfig, 0, 4)}
}

// build merges the collected sources into a single validated config.
// Earlier sources win: mergo only fills fields still at their zero value.
func (b *configBuilder) build() (*StructuredConfig, error) {
	if b.err != nil {
		return nil, fmt.Errorf("config sources failed: %w", b.err)
	}

	merged := new(StructuredConfig)
	for _, src := range b.configs {
		if err := mergo.Merge(merged, src); err != nil {
			return nil, fmt.Errorf("merge config source: %w", err)
		}
	}

	return merged, merged.validate()
}

func (b *configBuilder) withEnv() *configBuilder {
	src := new(StructuredConfig)
	if err := parseEnv(src); err != nil {
		b.err = errors.Join(b.err, err)
		return b
	}

	b.configs = append(b.configs, src)
	return b
}

func (b *configBuilder) withFlags() *configBuilder {
	b.configs = append(b.configs, ParseFlags())
	return b
}

// withJSON loads the optional JSON file. The path comes from whichever
// earlier source set JSONFilePath, so env and flags must be added first.
func (b *configBuilder) withJSON() *configBuilder {
	path := b.jsonPath()
	if path == "" {
		return b
	}

	src, err := parseJSON(path)
	if err != nil {
		b.err = errors.Join(b.err, err)
		return b
	}

	b.configs = append(b.configs, src)
	return b
}

// jsonPath returns the JSON config path from the latest source that set one.
func (b *configBuilder) jsonPath() string {
	path := ""
	for _, src := range b.configs {
		if src.JSONFilePath != "" {
			path = src.JSONFilePath
		}
	}
	return path
}
