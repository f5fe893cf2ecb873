package schemagen

import (
	"strconv"

	"github.com/talav/oasgen/diagnostic"
	"github.com/talav/oasgen/internal/ir"
	"github.com/talav/oasgen/internal/naming"
	"github.com/talav/oasgen/internal/typeinfo"
	"github.com/talav/oasgen/model"
)

func itoa(i int) string { return strconv.Itoa(i) }

// dispatchObject translates an object-with-properties schema into a
// struct: one stored property per declared property, a trailing
// additionalProperties map when the schema permits undocumented keys, and
// a CodingKeys-equivalent enumeration over the declared properties (spec
// §4.4). When additionalProperties is permitted, synthesized Codable
// cannot populate that map (undeclared keys have no CodingKeys case), so
// the struct gets a hand-written init(from:)/encode(to:) that captures
// them into the same keyed container the declared properties use.
func (t *Translator) dispatchObject(tn naming.TypeName, s *model.Schema) ir.Declaration {
	access := string(t.cfg.Access)

	required := map[string]bool{}
	for _, r := range s.Required {
		required[r] = true
	}

	var members []ir.Declaration
	var codingCases []ir.EnumCase
	var props []codableProperty

	for _, propName := range sortedStringKeys(s.Properties) {
		propSchema := s.Properties[propName]
		isRequired := required[propName]

		pos := t.translatePosition(tn, propName, joinPointer(tn.Pointer(), "properties/"+propName), propSchema, isRequired)
		typeExpr := pos.TypeExpr
		if typeExpr == "" {
			typeExpr = "OpenAPIValue"
		}
		declType := typeExpr
		if propSchema != nil && !isRequired {
			declType += "?"
		}

		memberName := naming.Sanitize(propName, t.cfg.NamingStrategy, naming.Member, t.cfg.NameOverrides)
		members = append(members, ir.Variable{Name: memberName, Access: access, Kind: "var", Type: declType})
		if pos.Nested != nil {
			members = append(members, pos.Nested)
		}

		codingCases = append(codingCases, ir.EnumCase{Name: memberName, RawValueLiteral: literalExpr(propName)})
		props = append(props, codableProperty{CaseName: memberName, TypeExpr: typeExpr, Required: isRequired})
	}

	allowsAdditional := !s.Additional.Disallowed()

	if len(codingCases) > 0 || allowsAdditional {
		members = append(members, ir.Enum{
			Name:         "CodingKeys",
			Access:       access,
			Conformances: []string{"String", "CodingKey"},
			Cases:        codingCases,
		})
	}

	if allowsAdditional {
		valueType := "OpenAPIValue"
		if s.Additional != nil && s.Additional.Schema != nil {
			pos := t.translatePosition(tn, "AdditionalProperties", joinPointer(tn.Pointer(), "additionalProperties"), s.Additional.Schema, true)
			valueType = pos.TypeExpr
		}

		members = append(members, ir.Variable{Name: "additionalProperties", Access: access, Kind: "var", Type: "[String: " + valueType + "]?"})
		if !t.isBoxed(tn) {
			members = append(members, additionalPropertiesCodable(access, props, valueType)...)
		}
	}

	st := ir.Struct{
		Name:         tn.Last().Identifier,
		Access:       access,
		Conformances: []string{"Codable", "Hashable"},
		Members:      members,
	}

	return t.applyStructBoxing(tn, st)
}

// dispatchAllOf flattens the properties of every object branch into a
// single struct; a branch that is itself a reference is preserved as a
// nested member value rather than flattened, since its properties are not
// locally known (spec §4.4 "allOf"). A ref branch's Codable conformance
// still has to read/write the same JSON object the local properties do,
// which Swift cannot synthesize, so the struct gets a hand-written
// init(from:)/encode(to:) whenever at least one ref branch is present.
//
// A schema may declare `allOf` alongside sibling object keywords
// (`properties`, `additionalProperties`) — ambiguous in OpenAPI 3.0.3 (spec
// §9's Open Question). This translator resolves it by treating the sibling
// keywords as an implicit extra allOf branch, folded into the same struct
// through the exact merge path an explicit branch uses, and reports a
// CodeSchemaSiblingOfAllOf warning so the fold is visible rather than silent.
func (t *Translator) dispatchAllOf(tn naming.TypeName, s *model.Schema) ir.Declaration {
	access := string(t.cfg.Access)

	var members []ir.Declaration
	var codingCases []ir.EnumCase
	var refs []codableBranch
	var props []codableProperty
	seen := map[string]bool{}

	if len(s.Properties) > 0 || (s.Additional != nil && !s.Additional.Disallowed()) {
		t.diags.Warnf(diagnostic.CodeSchemaSiblingOfAllOf, tn.Pointer(),
			"schema declares allOf alongside sibling object keywords; folding them into an implicit allOf branch")
	}

	for i, member := range s.AllOf {
		if member.Ref != "" {
			ref, ok := model.ParseReference(member.Ref)
			if !ok {
				continue
			}
			memberType := typeinfo.AssignReference(ref, t.cfg).Dotted()
			fieldName := naming.Sanitize(ref.Name, t.cfg.NamingStrategy, naming.Member, t.cfg.NameOverrides)
			if seen[fieldName] {
				continue
			}
			seen[fieldName] = true
			members = append(members, ir.Variable{Name: fieldName, Access: access, Kind: "var", Type: memberType})
			refs = append(refs, codableBranch{FieldName: fieldName, TypeExpr: memberType})
			continue
		}

		required := map[string]bool{}
		for _, r := range member.Required {
			required[r] = true
		}

		for _, propName := range sortedStringKeys(member.Properties) {
			if seen[propName] {
				continue
			}
			seen[propName] = true

			propSchema := member.Properties[propName]
			isRequired := required[propName]
			pos := t.translatePosition(tn, propName, joinPointer(tn.Pointer(), "allOf/"+itoa(i)+"/properties/"+propName), propSchema, isRequired)

			typeExpr := pos.TypeExpr
			declType := typeExpr
			if !isRequired {
				declType += "?"
			}

			memberName := naming.Sanitize(propName, t.cfg.NamingStrategy, naming.Member, t.cfg.NameOverrides)
			members = append(members, ir.Variable{Name: memberName, Access: access, Kind: "var", Type: declType})
			if pos.Nested != nil {
				members = append(members, pos.Nested)
			}

			codingCases = append(codingCases, ir.EnumCase{Name: memberName, RawValueLiteral: literalExpr(propName)})
			props = append(props, codableProperty{CaseName: memberName, TypeExpr: typeExpr, Required: isRequired})
		}
	}

	// Sibling object keywords (properties/additionalProperties declared
	// directly on a schema that also carries allOf) fold in as an implicit
	// final branch, using the exact same merge path an explicit branch uses
	// — see the Open Question note on dispatchAllOf above.
	siblingRequired := map[string]bool{}
	for _, r := range s.Required {
		siblingRequired[r] = true
	}

	for _, propName := range sortedStringKeys(s.Properties) {
		if seen[propName] {
			continue
		}
		seen[propName] = true

		propSchema := s.Properties[propName]
		isRequired := siblingRequired[propName]
		pos := t.translatePosition(tn, propName, joinPointer(tn.Pointer(), "properties/"+propName), propSchema, isRequired)

		typeExpr := pos.TypeExpr
		declType := typeExpr
		if !isRequired {
			declType += "?"
		}

		memberName := naming.Sanitize(propName, t.cfg.NamingStrategy, naming.Member, t.cfg.NameOverrides)
		members = append(members, ir.Variable{Name: memberName, Access: access, Kind: "var", Type: declType})
		if pos.Nested != nil {
			members = append(members, pos.Nested)
		}

		codingCases = append(codingCases, ir.EnumCase{Name: memberName, RawValueLiteral: literalExpr(propName)})
		props = append(props, codableProperty{CaseName: memberName, TypeExpr: typeExpr, Required: isRequired})
	}

	siblingAdditional := s.Additional != nil && !s.Additional.Disallowed()
	additionalValueType := "OpenAPIValue"
	if siblingAdditional {
		if s.Additional.Schema != nil {
			pos := t.translatePosition(tn, "AdditionalProperties", joinPointer(tn.Pointer(), "additionalProperties"), s.Additional.Schema, true)
			additionalValueType = pos.TypeExpr
		}

		members = append(members, ir.Variable{Name: "additionalProperties", Access: access, Kind: "var", Type: "[String: " + additionalValueType + "]?"})
	}

	if len(codingCases) > 0 || siblingAdditional {
		members = append(members, ir.Enum{
			Name:         "CodingKeys",
			Access:       access,
			Conformances: []string{"String", "CodingKey"},
			Cases:        codingCases,
		})
	}

	switch {
	case t.isBoxed(tn):
		// box.go's computed-property forwarders can't back a hand-written
		// init(from:) that assigns stored properties directly; fall back to
		// synthesized Codable the same way object.go's boxed case does.
	case siblingAdditional && len(refs) == 0:
		members = append(members, additionalPropertiesCodable(access, props, additionalValueType)...)
	case len(refs) > 0:
		members = append(members, allOfCodable(access, refs, props)...)
	}

	st := ir.Struct{
		Name:         tn.Last().Identifier,
		Access:       access,
		Conformances: []string{"Codable", "Hashable"},
		Members:      members,
	}

	return t.applyStructBoxing(tn, st)
}

// dispatchAnyOf produces a struct with one optional member per branch:
// any non-empty subset of branches may be present simultaneously, so none
// can be required (spec §4.4 "anyOf"). Every branch reads from and writes
// to the same decoder/encoder the others do, rather than nesting under its
// own field name, which requires a hand-written Codable conformance.
func (t *Translator) dispatchAnyOf(tn naming.TypeName, s *model.Schema) ir.Declaration {
	access := string(t.cfg.Access)

	var members []ir.Declaration
	var branches []codableBranch

	for i, member := range s.AnyOf {
		hint, pointer := branchHint(member, i)
		pos := t.translatePosition(tn, hint, joinPointer(tn.Pointer(), "anyOf/"+itoa(i)), member, true)
		_ = pointer

		memberName := naming.Sanitize(hint, t.cfg.NamingStrategy, naming.Member, t.cfg.NameOverrides)
		members = append(members, ir.Variable{Name: memberName, Access: access, Kind: "var", Type: pos.TypeExpr + "?"})
		if pos.Nested != nil {
			members = append(members, pos.Nested)
		}
		branches = append(branches, codableBranch{FieldName: memberName, TypeExpr: pos.TypeExpr})
	}

	members = append(members, anyOfCodable(access, branches)...)

	return ir.Struct{
		Name:         tn.Last().Identifier,
		Access:       access,
		Conformances: []string{"Codable", "Hashable"},
		Members:      members,
	}
}

// branchHint derives a member/case name for an unnamed composition
// branch: the referenced component's name if it is a $ref, else a
// positional "caseN" fallback.
func branchHint(member *model.Schema, index int) (hint, pointer string) {
	if member != nil && member.Ref != "" {
		if ref, ok := model.ParseReference(member.Ref); ok {
			return ref.Name, ref.String()
		}
	}

	return "case" + itoa(index+1), ""
}
