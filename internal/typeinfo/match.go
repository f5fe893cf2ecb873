package typeinfo

import "github.com/talav/oasgen/model"

// Shape classifies how a schema position is represented downstream.
type Shape int

const (
	// ShapeBuiltin maps directly to a built-in type.
	ShapeBuiltin Shape = iota
	// ShapeReference maps to an existing named component; referenceable,
	// no declaration of its own is generated at this position.
	ShapeReference
	// ShapeArray is a sequence; referenceable iff its Element is.
	ShapeArray
	// ShapeMap is an additionalProperties-only container; referenceable
	// iff its Element is.
	ShapeMap
	// ShapeInline is a structured schema (object-with-properties, enum,
	// composition) that must be inlined as a nested generated declaration.
	ShapeInline
)

// Match is the type matcher's full answer for one schema position (spec
// §4.2): its shape, whether it can be referenced without a new
// declaration, whether it behaves as a keyed container, and whether the
// position is optional.
type Match struct {
	Shape     Shape
	Builtin   Builtin
	Reference model.Reference
	Element   *Match

	Referenceable bool
	KeyValuePair  bool
	Optional      bool
}

// MatchSchema answers all four type-matcher questions for schema s, which is
// required in its container iff requiredHere is true.
func MatchSchema(doc *model.Document, s *model.Schema, requiredHere bool) Match {
	m := matchShape(doc, s)
	m.KeyValuePair = IsKeyValuePair(doc, s)
	m.Optional = IsOptional(doc, s, requiredHere)

	return m
}

func matchShape(doc *model.Document, s *model.Schema) Match {
	if s == nil {
		return Match{Shape: ShapeBuiltin, Builtin: BuiltinOpaqueValue, Referenceable: true}
	}

	if s.Ref != "" {
		ref, ok := model.ParseReference(s.Ref)
		if !ok {
			return Match{Shape: ShapeBuiltin, Builtin: BuiltinOpaqueValue, Referenceable: true}
		}

		return Match{Shape: ShapeReference, Reference: ref, Referenceable: true}
	}

	if s.Type == "array" {
		element := MatchSchema(doc, s.Items, true)
		return Match{Shape: ShapeArray, Element: &element, Referenceable: element.Referenceable}
	}

	if s.Type == "object" && len(s.Properties) == 0 && s.Additional != nil && s.Additional.Schema != nil {
		element := MatchSchema(doc, s.Additional.Schema, true)
		return Match{Shape: ShapeMap, Element: &element, Referenceable: element.Referenceable}
	}

	if IsEnumerated(s) {
		return Match{Shape: ShapeInline, Referenceable: false}
	}

	if builtin, ok := matchBuiltin(s); ok {
		return Match{Shape: ShapeBuiltin, Builtin: builtin, Referenceable: true}
	}

	// Everything else — object-with-properties, allOf/anyOf/oneOf/not
	// compositions — requires a nested declaration.
	return Match{Shape: ShapeInline, Referenceable: false}
}

// IsEnumerated reports whether s is a string/integer/untyped schema
// carrying an `enum` list, which spec §4.4 always inlines as a sum type
// with an `undocumented` fallback case rather than mapping to the bare
// built-in — regardless of whether the position is a named component or
// nested inline (object property, array item, parameter schema, ...).
// internal/schemagen's dispatch uses this same check to decide when to
// emit the enum declaration; both call sites share it so the two
// decisions can never drift apart.
func IsEnumerated(s *model.Schema) bool {
	return s != nil && len(s.Enum) > 0 && (s.Type == "string" || s.Type == "integer" || s.Type == "")
}
