package ir

// Declaration is the tagged variant enumerated in spec §3: struct, enum
// (case-only or with associated values), typealias, variable (property),
// extension, protocol, function, enumCase, commentable(comment, inner),
// deprecated(info, inner).
type Declaration interface {
	isDeclaration()
}

// Struct is a product-type declaration (spec §4.4 object-with-properties,
// allOf-merge).
type Struct struct {
	Name         string
	Access       string
	Conformances []string
	Members      []Declaration
}

func (Struct) isDeclaration() {}

// AssociatedValue is one payload slot of an EnumCase.
type AssociatedValue struct {
	Label string
	Type  string
}

// EnumCase is a single `case name(...)` arm, or, when RawValueLiteral is
// set, a raw-value arm `case name = <literal>` (string/int enums, spec
// §4.4; CodingKeys-equivalent enumerations). The two forms are mutually
// exclusive: a case either carries associated values or a raw value.
type EnumCase struct {
	Name             string
	AssociatedValues []AssociatedValue
	RawValueLiteral  string
}

func (EnumCase) isDeclaration() {}

// Enum is a sum-type declaration: case-only (string/int enums, spec
// §4.4) or with associated values (oneOf/anyOf, discriminated unions).
// Indirect marks a cycle-breaking boxed enum (spec §4.3).
type Enum struct {
	Name         string
	Access       string
	Conformances []string
	Indirect     bool
	Cases        []EnumCase
	Members      []Declaration
}

func (Enum) isDeclaration() {}

// Typealias is `typealias Name = Target` (spec §4.2 vendor overrides,
// §4.4 reference schemas).
type Typealias struct {
	Name   string
	Access string
	Target string
}

func (Typealias) isDeclaration() {}

// Variable is a stored or computed property/top-level binding.
type Variable struct {
	Name         string
	Access       string
	Type         string
	Kind         string // "let" or "var"
	DefaultValue Expression
	Body         []CodeBlock // non-nil for a computed property/getter
}

func (Variable) isDeclaration() {}

// Extension adds members to OnType, optionally adding protocol
// conformances.
type Extension struct {
	OnType       string
	Conformances []string
	Members      []Declaration
}

func (Extension) isDeclaration() {}

// Protocol declares a protocol with its requirement declarations.
type Protocol struct {
	Name         string
	Access       string
	Requirements []Declaration
}

func (Protocol) isDeclaration() {}

// Parameter is one function parameter.
type Parameter struct {
	Label string
	Name  string
	Type  string
}

// Function declares a function or method. Failable only applies to an
// initializer (Name == "init") and renders as `init?`.
type Function struct {
	Name       string
	Access     string
	Static     bool
	Failable   bool
	Parameters []Parameter
	ReturnType string
	Throws     bool
	Async      bool
	Body       []CodeBlock
}

func (Function) isDeclaration() {}

// Commentable wraps Inner with a single doc comment (spec §4.4 "every
// generated declaration is wrapped in a doc comment naming the JSON
// pointer origin").
type Commentable struct {
	Comment string
	Inner   Declaration
}

func (Commentable) isDeclaration() {}

// Deprecated wraps Inner with deprecation metadata (SPEC_FULL.md §12,
// propagating `deprecated: true` into the generated declaration).
type Deprecated struct {
	Info  string
	Inner Declaration
}

func (Deprecated) isDeclaration() {}

// StripTopComment removes exactly one layer of Commentable or Deprecated
// wrapping from d, returning d unchanged if it carries neither. It is
// idempotent: a declaration never carries more than one layer of
// top-level comment/deprecation wrapping (spec §3), so a second call is a
// no-op.
func StripTopComment(d Declaration) Declaration {
	switch v := d.(type) {
	case Commentable:
		return v.Inner
	case Deprecated:
		return v.Inner
	default:
		return d
	}
}
