// Copyright 2024 Canonical Ltd.
// Licensed under Apache 2.0, see LICENCE file for details.

package sqlarray

import (
	"fmt"

	"github.com/canonical/sqlarray/collector"
	"github.com/canonical/sqlarray/internal/rawarray"
	"github.com/canonical/sqlarray/mapper"
)

// ElementSource splits one array-like raw column value into its raw
// elements, in order.
type ElementSource interface {
	Elements(raw any) ([]any, error)
}

// ElementsFunc is an adapter allowing a plain function to be used as an
// ElementSource.
type ElementsFunc func(raw any) ([]any, error)

// Elements calls f(raw).
func (f ElementsFunc) Elements(raw any) ([]any, error) {
	return f(raw)
}

// Config holds the collaborators used to resolve mappers. A Config must not
// be copied after first use. The registries it points to may be extended at
// any time; they are safe for concurrent use.
type Config struct {
	// Mappers finds the mapper of element types.
	Mappers *mapper.Registry
	// Collectors finds the strategy and element type of container types.
	Collectors *collector.Registry
	// Elements splits raw values of container columns into raw elements.
	Elements ElementSource
}

// Option configures a Config built by NewConfig.
type Option func(*Config)

// WithMappers sets the mapper registry. The resolver is registered into it
// as a factory.
func WithMappers(r *mapper.Registry) Option {
	return func(cfg *Config) {
		cfg.Mappers = r
	}
}

// WithCollectors sets the container strategy registry.
func WithCollectors(r *collector.Registry) Option {
	return func(cfg *Config) {
		cfg.Collectors = r
	}
}

// WithElements sets the source splitting raw container values into
// elements.
func WithElements(s ElementSource) Option {
	return func(cfg *Config) {
		cfg.Elements = s
	}
}

// NewConfig returns a Config using the built-in registries unless
// overridden by options. The array and container resolver is registered as
// a factory of cfg.Mappers, so that elements may themselves be arrays or
// containers.
func NewConfig(options ...Option) *Config {
	cfg := &Config{}
	for _, option := range options {
		option(cfg)
	}
	if cfg.Mappers == nil {
		cfg.Mappers = mapper.NewRegistry()
	}
	if cfg.Collectors == nil {
		cfg.Collectors = collector.NewRegistry()
	}
	if cfg.Elements == nil {
		cfg.Elements = ElementsFunc(rawarray.Elements)
	}
	if err := cfg.Mappers.RegisterFactory(Factory(cfg)); err != nil {
		panic(fmt.Sprintf("internal error: %s", err))
	}
	return cfg
}

func (cfg *Config) validate() {
	if cfg == nil || cfg.Mappers == nil || cfg.Collectors == nil || cfg.Elements == nil {
		panic("sqlarray: incomplete Config, use NewConfig")
	}
}
