package naming

import "strings"

// Component is one segment of a TypeName: a source-language-safe
// identifier paired with the JSON pointer fragment it was derived from,
// so the schema translator can annotate a declaration with its origin
// (spec §4.4 "Every generated declaration is wrapped in a doc comment
// naming the JSON pointer origin").
type Component struct {
	Identifier string
	Pointer    string
}

// TypeName is an ordered sequence of Components identifying a generated
// declaration's fully-qualified dotted path (spec §3). The root component
// is fixed ("Components" or "Operations"); everything else is produced by
// Appending, a pure function of its inputs.
type TypeName struct {
	components []Component
}

// Root returns a new single-component TypeName, used for the two fixed
// roots "Components" and "Operations".
func Root(identifier string) TypeName {
	return TypeName{components: []Component{{Identifier: identifier}}}
}

// Appending returns a new TypeName with an additional component. TypeName
// values are never mutated in place, so sharing a parent TypeName across
// multiple Appending calls is always safe.
func (t TypeName) Appending(identifier, pointer string) TypeName {
	next := make([]Component, len(t.components), len(t.components)+1)
	copy(next, t.components)
	next = append(next, Component{Identifier: identifier, Pointer: pointer})

	return TypeName{components: next}
}

// Components returns the ordered components of the name.
func (t TypeName) Components() []Component {
	return t.components
}

// Last returns the final component, or the zero Component if t is empty.
func (t TypeName) Last() Component {
	if len(t.components) == 0 {
		return Component{}
	}

	return t.components[len(t.components)-1]
}

// Dotted renders the fully-qualified dotted name, e.g.
// "Components.Schemas.Pet".
func (t TypeName) Dotted() string {
	ids := make([]string, len(t.components))
	for i, c := range t.components {
		ids[i] = c.Identifier
	}

	return strings.Join(ids, ".")
}

// Pointer returns the JSON pointer fragment of the last component, which
// is the origin of the declaration this TypeName names.
func (t TypeName) Pointer() string {
	return t.Last().Pointer
}
