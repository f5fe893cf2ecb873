// Package typeinfo implements the type assigner and type matcher of spec
// §4.2: computing a canonical TypeName for any reference or inline schema
// position, and answering the four questions that govern how a schema
// position is represented (built-in mapping, referenceable vs. inlinable,
// key-value-pair shape, optionality). Grounded on the teacher's
// internal/build/schema.go lookUpByType/lookUpByKind table-driven dispatch,
// generalized from Go-reflection-to-schema to schema-to-target-type.
package typeinfo

import "github.com/talav/oasgen/model"

// Builtin names a target-language built-in type that a schema position can
// map onto directly, without a generated declaration.
type Builtin string

// The built-in mappings enumerated in spec §4.2.1.
const (
	BuiltinString       Builtin = "String"
	BuiltinRawBody      Builtin = "RawBody"
	BuiltinBase64Bytes  Builtin = "Base64Bytes"
	BuiltinTimestamp    Builtin = "Timestamp"
	BuiltinInt32        Builtin = "Int32"
	BuiltinInt64        Builtin = "Int64"
	BuiltinFloat        Builtin = "Float"
	BuiltinDouble       Builtin = "Double"
	BuiltinBool         Builtin = "Bool"
	BuiltinOpaqueValue  Builtin = "OpaqueValue"
	BuiltinOpaqueObject Builtin = "OpaqueObject"
)

// matchBuiltin answers the first type-matcher question for a schema that
// is not a $ref, not an array, and not a structured object/composition:
// does it map to a built-in, and if so which one.
func matchBuiltin(s *model.Schema) (Builtin, bool) {
	switch s.Type {
	case "string":
		switch s.Format {
		case "binary":
			return BuiltinRawBody, true
		case "base64":
			return BuiltinBase64Bytes, true
		case "date-time":
			return BuiltinTimestamp, true
		default:
			if s.ContentEncoding == "base64" {
				return BuiltinBase64Bytes, true
			}
			return BuiltinString, true
		}
	case "integer":
		if s.Format == "int32" {
			return BuiltinInt32, true
		}
		return BuiltinInt64, true
	case "number":
		if s.Format == "float" {
			return BuiltinFloat, true
		}
		return BuiltinDouble, true
	case "boolean":
		return BuiltinBool, true
	case "object":
		if isOpaqueObject(s) {
			return BuiltinOpaqueObject, true
		}
		return "", false
	case "":
		if isFragment(s) {
			return BuiltinOpaqueValue, true
		}
		return "", false
	default:
		return "", false
	}
}

// isOpaqueObject reports whether s is an object with no declared
// properties and no additionalProperties schema, which spec §4.2.1 maps
// to an opaque object map rather than a generated product type.
func isOpaqueObject(s *model.Schema) bool {
	if len(s.Properties) > 0 {
		return false
	}
	if s.Additional != nil && s.Additional.Schema != nil {
		return false
	}

	return true
}

// isFragment reports whether s carries no constraints at all: a schema
// position with no type, no properties, no composition, and no
// enumeration is the "fragment" primitive of spec §3's Schema variant.
func isFragment(s *model.Schema) bool {
	return s.Type == "" &&
		len(s.Properties) == 0 &&
		s.Items == nil &&
		len(s.AllOf) == 0 &&
		len(s.AnyOf) == 0 &&
		len(s.OneOf) == 0 &&
		s.Not == nil &&
		len(s.Enum) == 0 &&
		(s.Additional == nil || s.Additional.Schema == nil)
}
