// Package config defines the generator's external configuration record
// (spec §6) and the naming-strategy enumeration used throughout the
// translation pipeline (spec §4.7).
package config

import "github.com/talav/oasgen/model"

// Target is one of the three artifacts the generator can emit.
type Target string

// The three generation modes named in spec §6.
const (
	TargetTypes  Target = "types"
	TargetClient Target = "client"
	TargetServer Target = "server"
)

// Targets is the subset of Target to generate.
type Targets map[Target]bool

// Has reports whether t is present in the set.
func (t Targets) Has(target Target) bool {
	return t[target]
}

// AllTargets returns the set containing every known Target, used as the
// default "generate everything" configuration.
func AllTargets() Targets {
	return Targets{TargetTypes: true, TargetClient: true, TargetServer: true}
}

// NamingStrategy selects between the two identifier sanitization
// strategies described in spec §4.7.
type NamingStrategy string

const (
	// Defensive replaces every non-identifier character with an explicit
	// escape token. Maximally unambiguous, minimally readable.
	Defensive NamingStrategy = "defensive"

	// Idiomatic splits on word boundaries and re-cases, producing
	// PascalCase type names and camelCase member names.
	Idiomatic NamingStrategy = "idiomatic"
)

// Access is the visibility applied to the emitted public surface (structs,
// enums, functions). The generator treats this as an opaque string handed
// to the renderer, which maps it onto the target language's own
// visibility keywords (e.g. "public"/"internal"/"package").
type Access string

// Common access levels; a target language's renderer may accept others.
const (
	AccessPublic   Access = "public"
	AccessInternal Access = "internal"
	AccessPackage  Access = "package"
)

// Filter selects a subset of a document's paths/operations/schemas to
// translate (spec §4.1).
type Filter struct {
	Tags         []string
	Paths        []string
	OperationIDs []string
	Schemas      []string
}

// IsZero reports whether the filter selects nothing in particular, i.e.
// the whole document should be translated.
func (f Filter) IsZero() bool {
	return len(f.Tags) == 0 && len(f.Paths) == 0 && len(f.OperationIDs) == 0 && len(f.Schemas) == 0
}

// Config is the generator's external configuration record, corresponding
// to the table in spec §6.
type Config struct {
	// Generate controls which output files are produced.
	Generate Targets

	// AdditionalImports lists extra module names to prepend as imports in
	// each output file.
	AdditionalImports []string

	// NamingStrategy selects defensive or idiomatic identifier sanitization.
	NamingStrategy NamingStrategy

	// NameOverrides maps a documented name directly to an identifier,
	// short-circuiting both naming strategies (spec §4.7).
	NameOverrides map[string]string

	// TypeOverrides maps a component reference to an external dotted type
	// name (spec §4.2's "vendor override").
	TypeOverrides map[model.Reference]string

	// Filter restricts translation to a subset of the document.
	Filter Filter

	// FeatureFlags are opt-in switches for behavior changes not on by
	// default, e.g. "validateExtensionValues" (SPEC_FULL.md §11).
	FeatureFlags map[string]bool

	// Access is the visibility applied to the emitted public surface.
	Access Access
}

// Default returns the zero-config baseline: generate everything, idiomatic
// naming, public access, no filter, no overrides.
func Default() Config {
	return Config{
		Generate:       AllTargets(),
		NamingStrategy: Idiomatic,
		Access:         AccessPublic,
	}
}

// Feature reports whether the named feature flag is enabled.
func (c Config) Feature(name string) bool {
	return c.FeatureFlags[name]
}
