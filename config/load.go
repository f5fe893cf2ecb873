package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"dario.cat/mergo"
	"github.com/goccy/go-yaml"

	"github.com/talav/oasgen/model"
)

// fileConfig is the on-disk shape of Config. TOML and YAML cannot key a
// map by a struct (model.Reference), so TypeOverrides round-trips through
// "<kind>:<name>" string keys here and is expanded into Config.TypeOverrides
// by toConfig.
type fileConfig struct {
	Generate          []Target          `toml:"generate" yaml:"generate"`
	AdditionalImports []string          `toml:"additionalImports" yaml:"additionalImports"`
	NamingStrategy    NamingStrategy    `toml:"namingStrategy" yaml:"namingStrategy"`
	NameOverrides     map[string]string `toml:"nameOverrides" yaml:"nameOverrides"`
	TypeOverrides     map[string]string `toml:"typeOverrides" yaml:"typeOverrides"`
	Filter            Filter            `toml:"filter" yaml:"filter"`
	FeatureFlags      map[string]bool   `toml:"featureFlags" yaml:"featureFlags"`
	Access            Access            `toml:"access" yaml:"access"`
}

// Load reads a Config from a TOML or YAML file (selected by extension) and
// merges it over Default(), with file values winning field-by-field via
// dario.cat/mergo (the same "load, then layer over defaults" shape
// rivaas.dev/config uses for its richer multi-backend configuration).
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	var fc fileConfig
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		if err := toml.Unmarshal(data, &fc); err != nil {
			return Config{}, fmt.Errorf("config: parse toml %s: %w", path, err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &fc); err != nil {
			return Config{}, fmt.Errorf("config: parse yaml %s: %w", path, err)
		}
	default:
		return Config{}, fmt.Errorf("config: unrecognized config file extension %q", ext)
	}

	loaded, err := toConfig(fc)
	if err != nil {
		return Config{}, err
	}

	return Merge(Default(), loaded)
}

// Merge layers override on top of base, with any non-zero field of
// override winning, using dario.cat/mergo the way rivaas.dev/config layers
// file/env/flag configuration sources. Map fields are merged key by key,
// except Generate: a non-nil override.Generate replaces the base target set
// whole, so targets it does not list are not generated.
func Merge(base, override Config) (Config, error) {
	result := base
	if override.Generate != nil {
		result.Generate = nil
	}
	if err := mergo.Merge(&result, override, mergo.WithOverride()); err != nil {
		return Config{}, fmt.Errorf("config: merge: %w", err)
	}

	return result, nil
}

func toConfig(fc fileConfig) (Config, error) {
	c := Config{
		AdditionalImports: fc.AdditionalImports,
		NamingStrategy:    fc.NamingStrategy,
		NameOverrides:     fc.NameOverrides,
		Filter:            fc.Filter,
		FeatureFlags:      fc.FeatureFlags,
		Access:            fc.Access,
	}

	if len(fc.Generate) > 0 {
		c.Generate = Targets{}
		for _, t := range fc.Generate {
			c.Generate[t] = true
		}
	}

	if len(fc.TypeOverrides) > 0 {
		c.TypeOverrides = make(map[model.Reference]string, len(fc.TypeOverrides))
		for key, typeName := range fc.TypeOverrides {
			kind, name, ok := strings.Cut(key, ":")
			if !ok {
				return Config{}, fmt.Errorf("config: invalid typeOverrides key %q, want \"<kind>:<name>\"", key)
			}
			c.TypeOverrides[model.Reference{Kind: model.ComponentKind(kind), Name: name}] = typeName
		}
	}

	return c, nil
}
