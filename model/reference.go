package model

import (
	"fmt"
	"strings"
)

// ComponentKind identifies one of the nine reusable collections under
// components, plus pathItems which is kept alongside them for the purposes
// of reference resolution even though it is a top-level sibling in 3.1.
type ComponentKind string

// The recognized component kinds, matching the keys of #/components/*.
const (
	KindSchemas         ComponentKind = "schemas"
	KindParameters      ComponentKind = "parameters"
	KindHeaders         ComponentKind = "headers"
	KindResponses       ComponentKind = "responses"
	KindRequestBodies   ComponentKind = "requestBodies"
	KindCallbacks       ComponentKind = "callbacks"
	KindExamples        ComponentKind = "examples"
	KindLinks           ComponentKind = "links"
	KindPathItems       ComponentKind = "pathItems"
	KindSecuritySchemes ComponentKind = "securitySchemes"
)

// Reference is a resolved pointer into #/components/<kind>/<name>.
// External references (pointing outside the document) are rejected by the
// generator; ParseReference reports them as such rather than silently
// dropping the distinction.
type Reference struct {
	Kind ComponentKind
	Name string
}

// String renders the reference in its canonical JSON-pointer-ish form.
func (r Reference) String() string {
	return fmt.Sprintf("#/components/%s/%s", r.Kind, r.Name)
}

// ParseReference parses a raw $ref string. Only internal references of the
// shape "#/components/<kind>/<name>" are supported; anything else
// (external files, URLs, non-components JSON pointers) returns ok=false so
// the caller can raise the fatal "external reference" diagnostic described
// in spec §7.1.
func ParseReference(raw string) (ref Reference, ok bool) {
	const prefix = "#/components/"
	if !strings.HasPrefix(raw, prefix) {
		return Reference{}, false
	}

	rest := strings.TrimPrefix(raw, prefix)
	parts := strings.SplitN(rest, "/", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return Reference{}, false
	}

	kind := ComponentKind(parts[0])
	switch kind {
	case KindSchemas, KindParameters, KindHeaders, KindResponses, KindRequestBodies,
		KindCallbacks, KindExamples, KindLinks, KindPathItems, KindSecuritySchemes:
		return Reference{Kind: kind, Name: parts[1]}, true
	default:
		return Reference{}, false
	}
}

// Components holds reusable, named objects referenceable via Reference.
type Components struct {
	Schemas         map[string]*Schema
	Responses       map[string]*Response
	Parameters      map[string]*Parameter
	Examples        map[string]*Example
	RequestBodies   map[string]*RequestBody
	Headers         map[string]*Header
	SecuritySchemes map[string]*SecurityScheme
	Links           map[string]*Link
	Callbacks       map[string]*Callback
	PathItems       map[string]*PathItem
}

// Lookup resolves ref against the document's components, returning the
// stored object as an `any` (the caller type-switches on the expected
// kind) and whether it was found.
func (d *Document) Lookup(ref Reference) (any, bool) {
	if d == nil || d.Components == nil {
		return nil, false
	}

	c := d.Components
	switch ref.Kind {
	case KindSchemas:
		v, ok := c.Schemas[ref.Name]
		return v, ok
	case KindResponses:
		v, ok := c.Responses[ref.Name]
		return v, ok
	case KindParameters:
		v, ok := c.Parameters[ref.Name]
		return v, ok
	case KindExamples:
		v, ok := c.Examples[ref.Name]
		return v, ok
	case KindRequestBodies:
		v, ok := c.RequestBodies[ref.Name]
		return v, ok
	case KindHeaders:
		v, ok := c.Headers[ref.Name]
		return v, ok
	case KindSecuritySchemes:
		v, ok := c.SecuritySchemes[ref.Name]
		return v, ok
	case KindLinks:
		v, ok := c.Links[ref.Name]
		return v, ok
	case KindCallbacks:
		v, ok := c.Callbacks[ref.Name]
		return v, ok
	case KindPathItems:
		v, ok := c.PathItems[ref.Name]
		return v, ok
	default:
		return nil, false
	}
}

// ResolveSchema looks up a schema by reference, following nothing further
// (schema-to-schema $ref chasing is the type matcher's job, since a $ref to
// a schema is itself a terminal, referenceable position).
func (d *Document) ResolveSchema(ref Reference) (*Schema, bool) {
	if d == nil || d.Components == nil {
		return nil, false
	}
	s, ok := d.Components.Schemas[ref.Name]
	return s, ok
}
