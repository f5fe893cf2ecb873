// Package naming implements the two identifier sanitization strategies of
// spec §4.7 (Defensive and Idiomatic) and the TypeName value used to name
// every generated declaration (spec §3).
package naming

import "github.com/talav/oasgen/config"

// Kind distinguishes a type-name position from a member-name position: the
// two strategies may (and for Idiomatic, do) produce different identifiers
// for the same documented name.
type Kind int

const (
	// Type positions are cased PascalCase under the Idiomatic strategy.
	Type Kind = iota
	// Member positions are cased camelCase under the Idiomatic strategy.
	Member
)

// Sanitize converts a documented name into a safe identifier. overrides,
// if it contains an exact match for name, short-circuits both strategies
// (spec §4.7). Sanitize is a pure function of its arguments, satisfying
// the Name safety property of spec §8.
func Sanitize(name string, strategy config.NamingStrategy, kind Kind, overrides map[string]string) string {
	if id, ok := overrides[name]; ok {
		return id
	}

	switch strategy {
	case config.Defensive:
		return defensive(name)
	case config.Idiomatic:
		return idiomatic(name, kind)
	default:
		return idiomatic(name, kind)
	}
}
