package model

// Schema is a version-agnostic JSON Schema / OpenAPI schema object. It is
// not a tagged union in the Go sense: a single Schema value may carry a
// Ref, primitive fields, Properties, and a composition (AllOf/AnyOf/OneOf)
// simultaneously, exactly as the wire format allows — it is the type
// matcher's (§4.2) job to decide what "shape" a given Schema represents,
// not this struct's.
type Schema struct {
	// Ref is set when this position is a $ref. When Ref is non-empty every
	// other field except Description is ignored by the translator.
	Ref string

	// Type is the JSON Schema "type" keyword. For a nullable 3.1 union
	// such as ["string","null"] the parser frontend is expected to have
	// normalized this down to Type="string", Nullable=true, matching the
	// invariant in spec §3.
	Type string

	// Nullable is true if the value may be null, whether expressed as
	// OpenAPI 3.0's `nullable: true` or a 3.1 `type: [T, "null"]` union.
	Nullable bool

	Title       string
	Description string
	Format      string

	ContentEncoding  string
	ContentMediaType string

	Deprecated bool
	ReadOnly   bool
	WriteOnly  bool

	Example  any
	Examples []any

	Pattern   string
	MinLength *int
	MaxLength *int

	Minimum    *Bound
	Maximum    *Bound
	MultipleOf *float64

	Items       *Schema
	MinItems    *int
	MaxItems    *int
	UniqueItems bool

	Properties map[string]*Schema
	Required   []string

	// Additional controls additionalProperties. nil means unspecified
	// (JSON Schema default: true, i.e. an opaque map of extra values).
	Additional *Additional

	MinProperties *int
	MaxProperties *int

	AllOf []*Schema
	AnyOf []*Schema
	OneOf []*Schema
	Not   *Schema

	Enum  []any
	Const any

	Default any

	Discriminator *Discriminator

	// ReplaceType is a vendor override ("replace-type" extension): when
	// set, the schema translator emits a typealias from the assigned name
	// to this external dotted type name instead of a generated
	// declaration (spec §4.2).
	ReplaceType string

	Extensions map[string]any
}

// Bound represents a numeric bound (minimum or maximum) with exclusive flag,
// unifying OpenAPI 3.0's boolean exclusiveMinimum/Maximum and 3.1's numeric
// form.
type Bound struct {
	Value     float64
	Exclusive bool
}

// Additional represents additionalProperties configuration for an object
// schema.
//
//   - nil                                  => unspecified (defaults to allowed)
//   - Allow != nil, *Allow == false, Schema == nil => additionalProperties: false
//   - Allow != nil, *Allow == true,  Schema == nil => additionalProperties: true
//   - Schema != nil                        => additionalProperties: <schema> (wins over Allow)
type Additional struct {
	Allow  *bool
	Schema *Schema
}

// Disallowed reports whether additional properties are explicitly forbidden.
func (a *Additional) Disallowed() bool {
	return a != nil && a.Allow != nil && !*a.Allow && a.Schema == nil
}

// Discriminator is used for polymorphism in oneOf/allOf compositions.
type Discriminator struct {
	PropertyName string
	Mapping      map[string]string
}
