// Package config loads lumen.yaml, the optional runtime configuration: the
// constants a fresh context starts with and the extensions it requires.
package config

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/lumenlang/lumen/internal/runtime"
	"github.com/lumenlang/lumen/internal/values"
)

// DefaultFileName is where Load looks when no explicit path is given.
const DefaultFileName = "lumen.yaml"

// Config represents the top-level lumen.yaml configuration.
type Config struct {
	// Constants are defined into the context at startup, case-sensitive.
	Constants map[string]interface{} `yaml:"constants,omitempty"`

	// ConstantsIgnoreCase are defined reachable under any spelling.
	ConstantsIgnoreCase map[string]interface{} `yaml:"constants_ignore_case,omitempty"`

	// Extensions lists extensions the run requires. Apply fails when one
	// is not loaded.
	Extensions []string `yaml:"extensions,omitempty"`
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return Parse(data)
}

func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	for i, ext := range c.Extensions {
		if ext == "" {
			return fmt.Errorf("extensions[%d]: name must not be empty", i)
		}
	}
	for name := range c.Constants {
		if _, dup := c.ConstantsIgnoreCase[name]; dup {
			return fmt.Errorf("constant %q listed both case-sensitive and ignore-case", name)
		}
	}
	return nil
}

// Apply checks required extensions and defines the configured constants
// into ctx. Constants are defined in sorted name order so collisions
// resolve the same way on every run.
func (c *Config) Apply(ctx *runtime.Context) error {
	for _, ext := range c.Extensions {
		if !ctx.IsExtensionLoaded(ext) {
			return fmt.Errorf("required extension %q is not loaded", ext)
		}
	}

	m := values.NewMarshaller()
	if err := defineAll(ctx, m, c.Constants, false); err != nil {
		return err
	}
	return defineAll(ctx, m, c.ConstantsIgnoreCase, true)
}

func defineAll(ctx *runtime.Context, m *values.Marshaller, src map[string]interface{}, ignoreCase bool) error {
	names := make([]string, 0, len(src))
	for name := range src {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		v, err := m.ToValue(src[name])
		if err != nil {
			return fmt.Errorf("constant %q: %w", name, err)
		}
		if !ctx.DefineConstant(name, v, ignoreCase) {
			return fmt.Errorf("constant %q is already defined", name)
		}
	}
	return nil
}
