package schemagen

import (
	"github.com/talav/oasgen/internal/ir"
	"github.com/talav/oasgen/internal/naming"
	"github.com/talav/oasgen/model"
)

// dispatchEnum translates a string/integer enum into a raw-value sum
// type, with one case per allowed value plus an undocumented variant
// carrying the unrecognized raw value (spec §4.4). Codable is implemented
// by hand: Swift cannot synthesize it once the undocumented case's
// associated value sits alongside the raw-value cases.
func (t *Translator) dispatchEnum(tn naming.TypeName, s *model.Schema) ir.Declaration {
	access := string(t.cfg.Access)

	rawType := "String"
	if s.Type == "integer" {
		rawType = "Int"
	}

	valueCases := make([]ir.EnumCase, 0, len(s.Enum))
	for _, v := range s.Enum {
		caseName := naming.Sanitize(enumCaseHint(v), t.cfg.NamingStrategy, naming.Member, t.cfg.NameOverrides)
		valueCases = append(valueCases, ir.EnumCase{Name: caseName, RawValueLiteral: literalExpr(v)})
	}

	cases := append([]ir.EnumCase{}, valueCases...)
	cases = append(cases, ir.EnumCase{
		Name:             "undocumented",
		AssociatedValues: []ir.AssociatedValue{{Type: rawType}},
	})

	e := ir.Enum{
		Name:         tn.Last().Identifier,
		Access:       access,
		Conformances: []string{"Codable", "Hashable"},
		Cases:        cases,
		Members:      rawValueCodable(access, rawType, valueCases),
	}

	return t.applyEnumBoxing(tn, e)
}

func enumCaseHint(v any) string {
	switch val := v.(type) {
	case string:
		return val
	default:
		return literalExpr(val)
	}
}

// dispatchOneOf translates a oneOf composition into a sum type with one
// associated-value case per branch. With a discriminator, decoding is
// driven by the discriminator property and an unrecognized value maps to
// an undocumented variant carrying the raw discriminator string; without
// one, decoding tries each branch in document order and keeps the first
// that succeeds (spec §4.4). Both forms get a hand-written Codable
// conformance: Swift cannot synthesize decode/encode for an enum whose
// cases carry associated values.
func (t *Translator) dispatchOneOf(tn naming.TypeName, s *model.Schema) ir.Declaration {
	access := string(t.cfg.Access)

	var branches []codableBranch
	var cases []ir.EnumCase
	var nested []ir.Declaration
	hints := map[string]string{}

	for i, member := range s.OneOf {
		hint, _ := branchHint(member, i)
		pos := t.translatePosition(tn, hint, joinPointer(tn.Pointer(), "oneOf/"+itoa(i)), member, true)

		caseName := naming.Sanitize(hint, t.cfg.NamingStrategy, naming.Member, t.cfg.NameOverrides)
		cases = append(cases, ir.EnumCase{Name: caseName, AssociatedValues: []ir.AssociatedValue{{Type: pos.TypeExpr}}})
		branches = append(branches, codableBranch{FieldName: caseName, TypeExpr: pos.TypeExpr})
		hints[caseName] = hint
		if pos.Nested != nil {
			nested = append(nested, pos.Nested)
		}
	}

	var comment string
	var members []ir.Declaration
	if s.Discriminator != nil {
		cases = append(cases, ir.EnumCase{
			Name:             "undocumented",
			AssociatedValues: []ir.AssociatedValue{{Type: "String"}},
		})
		comment = discriminatorComment(s.Discriminator)
		members = append(members, discriminatedOneOfCodable(access, s.Discriminator, branches, hints)...)
	} else {
		members = append(members, untaggedOneOfCodable(access, tn.Last().Identifier, branches)...)
	}
	members = append(members, nested...)

	e := ir.Enum{
		Name:         tn.Last().Identifier,
		Access:       access,
		Conformances: []string{"Codable", "Hashable"},
		Cases:        cases,
		Members:      members,
	}
	e = t.applyEnumBoxing(tn, e)

	if comment == "" {
		return e
	}

	return ir.Commentable{Comment: comment, Inner: e}
}

// discriminatorComment documents the decode ordering spec §4.4 mandates
// for a discriminated union: explicit mapping entries first, sorted
// case-insensitively by discriminator value, then any remaining branches
// in document order.
func discriminatorComment(d *model.Discriminator) string {
	if d == nil || len(d.Mapping) == 0 {
		return "Discriminated by the \"" + propertyNameOrDefault(d) + "\" property."
	}

	return "Discriminated by the \"" + d.PropertyName + "\" property; explicit mapping entries are tried first, sorted case-insensitively, then remaining branches in document order."
}

func propertyNameOrDefault(d *model.Discriminator) string {
	if d == nil {
		return ""
	}

	return d.PropertyName
}
