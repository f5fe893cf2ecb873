package typeinfo

import "github.com/talav/oasgen/model"

// IsKeyValuePair answers the type matcher's third question (spec §4.2.3):
// true for objects with properties, the fragment primitive, references to
// such, allOf when any member is key-value-pair, and anyOf/oneOf when at
// least one member is.
func IsKeyValuePair(doc *model.Document, s *model.Schema) bool {
	if s == nil {
		return false
	}

	if s.Ref != "" {
		resolved, ok := resolveRef(doc, s.Ref)
		if !ok {
			return false
		}
		return IsKeyValuePair(doc, resolved)
	}

	if len(s.Properties) > 0 || isFragment(s) {
		return true
	}

	for _, member := range s.AllOf {
		if IsKeyValuePair(doc, member) {
			return true
		}
	}
	for _, member := range s.AnyOf {
		if IsKeyValuePair(doc, member) {
			return true
		}
	}
	for _, member := range s.OneOf {
		if IsKeyValuePair(doc, member) {
			return true
		}
	}

	return false
}

// IsNullable answers whether s admits null, either directly or because its
// $ref target does (spec §4.2.4 "its referent is nullable, propagated
// through $ref").
func IsNullable(doc *model.Document, s *model.Schema) bool {
	if s == nil {
		return false
	}
	if s.Nullable {
		return true
	}
	if s.Ref == "" {
		return false
	}

	resolved, ok := resolveRef(doc, s.Ref)
	if !ok {
		return false
	}

	return IsNullable(doc, resolved)
}

// IsOptional answers the type matcher's fourth question (spec §4.2.4): the
// most permissive of nullability and "omitted from required" applies.
// requiredHere is the caller's local knowledge of whether the position is
// listed in its container's `required` (for a property) or carries
// `required: true` (for a parameter) — the two circumstances the matcher
// itself cannot observe from the schema alone.
func IsOptional(doc *model.Document, s *model.Schema, requiredHere bool) bool {
	return !requiredHere || IsNullable(doc, s)
}

func resolveRef(doc *model.Document, raw string) (*model.Schema, bool) {
	ref, ok := model.ParseReference(raw)
	if !ok {
		return nil, false
	}

	return doc.ResolveSchema(ref)
}
