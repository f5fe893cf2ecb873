package diagnostic

import (
	"fmt"

	jsonv2 "github.com/go-json-experiment/json"
	"github.com/santhosh-tekuri/jsonschema/v6"

	"github.com/talav/oasgen/model"
)

// ValidateLiteral checks a schema's own `example`/`examples`/`default`
// literal values against a meta-schema fragment derived from that same schema's
// constraints (type, pattern, numeric bounds, string length, enum
// membership), appending a CodeExampleValueMismatch warning to c for any
// literal that does not conform. This only runs when the driver's
// "validateExtensionValues" feature flag is enabled (SPEC_FULL.md §11):
// author-supplied examples are otherwise trusted as-is, matching spec.md's
// stance that the generator does not reject a document for an
// inconsistent example.
func (c *Collector) ValidateLiteral(pointer string, s *model.Schema) {
	if s == nil {
		return
	}

	sch, err := compileFragment(s)
	if err != nil {
		// A schema shape the meta-schema fragment cannot express (e.g. an
		// unresolved $ref) is not itself an inconsistency; skip silently.
		return
	}

	if s.Example != nil {
		c.checkLiteral(pointer+"/example", sch, s.Example)
	}

	for i, ex := range s.Examples {
		c.checkLiteral(fmt.Sprintf("%s/examples/%d", pointer, i), sch, ex)
	}

	if s.Default != nil {
		c.checkLiteral(pointer+"/default", sch, s.Default)
	}
}

func (c *Collector) checkLiteral(pointer string, sch *jsonschema.Schema, value any) {
	inst, err := roundTripJSON(value)
	if err != nil {
		return
	}

	if err := sch.Validate(inst); err != nil {
		c.Warnf(CodeExampleValueMismatch, pointer, "literal value does not satisfy the schema's own constraints: %s", err)
	}
}

// roundTripJSON normalizes value (which may already be a map/slice decoded
// by go-json-experiment/json, or a plain Go literal) into the
// map[string]any/[]any/... shape jsonschema.Schema.Validate expects.
func roundTripJSON(value any) (any, error) {
	encoded, err := jsonv2.Marshal(value)
	if err != nil {
		return nil, err
	}

	var inst any
	if err := jsonv2.Unmarshal(encoded, &inst); err != nil {
		return nil, err
	}

	return inst, nil
}

// compileFragment builds a throwaway JSON Schema document mirroring s's
// own validation keywords and compiles it with santhosh-tekuri/jsonschema,
// the same library the teacher's internal/export/validator.go uses to
// validate a whole OpenAPI document against its meta-schema, scaled down
// here to a single schema's own literal-consistency check.
func compileFragment(s *model.Schema) (*jsonschema.Schema, error) {
	const uri = "literal-check.json"

	c := jsonschema.NewCompiler()
	if err := c.AddResource(uri, schemaFragment(s)); err != nil {
		return nil, err
	}

	return c.Compile(uri)
}

func schemaFragment(s *model.Schema) map[string]any {
	f := map[string]any{}

	if s.Type != "" {
		f["type"] = s.Type
	}
	if s.Pattern != "" {
		f["pattern"] = s.Pattern
	}
	if s.MinLength != nil {
		f["minLength"] = *s.MinLength
	}
	if s.MaxLength != nil {
		f["maxLength"] = *s.MaxLength
	}
	if s.Minimum != nil {
		f["minimum"] = s.Minimum.Value
		if s.Minimum.Exclusive {
			f["exclusiveMinimum"] = s.Minimum.Value
			delete(f, "minimum")
		}
	}
	if s.Maximum != nil {
		f["maximum"] = s.Maximum.Value
		if s.Maximum.Exclusive {
			f["exclusiveMaximum"] = s.Maximum.Value
			delete(f, "maximum")
		}
	}
	if s.MultipleOf != nil {
		f["multipleOf"] = *s.MultipleOf
	}
	if len(s.Enum) > 0 {
		f["enum"] = s.Enum
	}

	return f
}
