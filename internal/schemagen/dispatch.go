package schemagen

import (
	"github.com/talav/oasgen/diagnostic"
	"github.com/talav/oasgen/internal/ir"
	"github.com/talav/oasgen/internal/naming"
	"github.com/talav/oasgen/internal/typeinfo"
	"github.com/talav/oasgen/model"
)

// dispatch emits the declaration for a structured schema position, named
// tn, regardless of whether tn was assigned by reference (a named
// component) or inline (a nested position the type matcher decided must
// be its own declaration). It always returns exactly one primary
// declaration; siblings holds any further declaration that had nowhere
// else to live (currently only an anonymous array/map element type named
// at this same scope).
func (t *Translator) dispatch(tn naming.TypeName, s *model.Schema) (ir.Declaration, []ir.Declaration) {
	access := string(t.cfg.Access)
	name := tn.Last().Identifier

	if s == nil {
		return ir.Typealias{Name: name, Access: access, Target: "OpenAPIValue"}, nil
	}

	if schemaName, ok := schemaNameFor(tn); ok {
		ref := model.Reference{Kind: model.KindSchemas, Name: schemaName}
		if override, ok := typeinfo.VendorOverride(ref, t.cfg); ok {
			return ir.Typealias{Name: name, Access: access, Target: override}, nil
		}
	}

	if override, ok := typeinfo.SchemaVendorOverride(s); ok {
		return ir.Typealias{Name: name, Access: access, Target: override}, nil
	}

	switch {
	case s.Ref != "":
		return t.dispatchReference(tn, s), nil

	case typeinfo.IsEnumerated(s):
		return t.dispatchEnum(tn, s), nil

	case len(s.OneOf) > 0:
		return t.dispatchOneOf(tn, s), nil

	case len(s.AnyOf) > 0:
		return t.dispatchAnyOf(tn, s), nil

	case len(s.AllOf) > 0:
		return t.dispatchAllOf(tn, s), nil

	case s.Type == "array":
		elem := t.translatePosition(tn, "", tn.Pointer()+"/items", s.Items, true)
		decl := ir.Typealias{Name: name, Access: access, Target: "[" + elem.TypeExpr + "]"}
		return decl, nestedAsSiblings(elem.Nested)

	case s.Type == "object" && len(s.Properties) == 0 && s.Additional != nil && s.Additional.Schema != nil:
		elem := t.translatePosition(tn, "", tn.Pointer()+"/additionalProperties", s.Additional.Schema, true)
		decl := ir.Typealias{Name: name, Access: access, Target: "[String: " + elem.TypeExpr + "]"}
		return decl, nestedAsSiblings(elem.Nested)

	case s.Type == "object" || len(s.Properties) > 0:
		return t.dispatchObject(tn, s), nil

	default:
		return t.dispatchScalar(tn, s), nil
	}
}

func nestedAsSiblings(d ir.Declaration) []ir.Declaration {
	if d == nil {
		return nil
	}

	return []ir.Declaration{d}
}

func (t *Translator) dispatchReference(tn naming.TypeName, s *model.Schema) ir.Declaration {
	access := string(t.cfg.Access)
	name := tn.Last().Identifier

	ref, ok := model.ParseReference(s.Ref)
	if !ok {
		t.diags.Errorf(diagnostic.CodeExternalReference, tn.Pointer(), "schema references an external document: %s", s.Ref)
		return ir.Typealias{Name: name, Access: access, Target: "OpenAPIValue"}
	}

	return ir.Typealias{Name: name, Access: access, Target: typeinfo.AssignReference(ref, t.cfg).Dotted()}
}

func (t *Translator) dispatchScalar(tn naming.TypeName, s *model.Schema) ir.Declaration {
	access := string(t.cfg.Access)
	name := tn.Last().Identifier

	match := typeinfo.MatchSchema(t.doc, s, true)
	if match.Shape == typeinfo.ShapeBuiltin {
		return ir.Typealias{Name: name, Access: access, Target: builtinTypeExpr(match.Builtin)}
	}

	t.diags.Warnf(diagnostic.CodeSchemaTypeConflict, tn.Pointer(), "schema has no recognizable shape; falling back to an opaque value")

	return ir.Typealias{Name: name, Access: access, Target: "OpenAPIValue"}
}
