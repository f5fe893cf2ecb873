package opgen

import (
	"sort"
	"strings"

	"github.com/talav/oasgen/diagnostic"
	"github.com/talav/oasgen/internal/ir"
	"github.com/talav/oasgen/internal/naming"
	"github.com/talav/oasgen/model"
)

// locationGroup names one of the four parameter-location sub-namespaces
// spec §4.5 requires nested inside Input ("Path", "Query", "Headers",
// "Cookies"), keyed by model.Parameter.In.
var locationGroup = map[string]string{
	"path":   "Path",
	"query":  "Query",
	"header": "Headers",
	"cookie": "Cookies",
}

// buildInput assembles the Input struct for one operation: a nested
// product type per parameter location that has at least one surviving
// parameter (Path/Query/Headers/Cookies, spec §4.5), plus an optional body
// property when the operation declares a requestBody (SPEC_FULL.md §12).
// Cookie parameters are always unsupported (spec §4.6) so no Cookies
// member is ever emitted; other locations are omitted when empty so a
// dropped or absent parameter set leaves no trace on Input.
func (t *Translator) buildInput(ns naming.TypeName, pointer string, op *model.Operation) (ir.Declaration, error) {
	access := string(t.cfg.Access)
	inputNS := ns.Appending("Input", pointer)

	grouped := map[string][]model.Parameter{}
	order := []string{"path", "query", "header"}
	for _, p := range op.Parameters {
		if p.In == "cookie" {
			t.diags.Warnf(diagnostic.CodeUnsupportedCookieParameter, pointer,
				"cookie parameter %q is not supported and was dropped", p.Name)
			continue
		}

		if !parameterStyleSupported(p) {
			t.diags.Warnf(diagnostic.CodeUnsupportedParameterStyle, pointer,
				"parameter %q uses an unsupported style/explode combination and was dropped", p.Name)
			continue
		}

		grouped[p.In] = append(grouped[p.In], p)
	}

	var members []ir.Declaration

	for _, loc := range order {
		params := grouped[loc]
		if len(params) == 0 {
			continue
		}

		groupName := locationGroup[loc]
		groupNS := inputNS.Appending(groupName, joinPointer(pointer, "parameters/"+loc))

		var groupMembers []ir.Declaration
		for _, p := range params {
			propPointer := joinPointer(pointer, "parameters/"+p.In+"/"+p.Name)
			typeExpr, nested := t.paramTypeExpr(groupNS, propPointer, p)
			if nested != nil {
				// The nested declaration is a member of the group struct, so
				// it is named relative to that struct.
				typeExpr = strings.ReplaceAll(typeExpr, groupNS.Dotted()+".", "")
			}
			if !p.Required {
				typeExpr += "?"
			}

			memberName := naming.Sanitize(p.Name, t.cfg.NamingStrategy, naming.Member, t.cfg.NameOverrides)
			groupMembers = append(groupMembers, ir.Variable{Name: memberName, Access: access, Kind: "var", Type: typeExpr})
			if nested != nil {
				groupMembers = append(groupMembers, nested)
			}
		}

		group := ir.Struct{Name: groupName, Access: access, Conformances: []string{"Hashable"}, Members: groupMembers}
		memberName := naming.Sanitize(groupName, t.cfg.NamingStrategy, naming.Member, t.cfg.NameOverrides)
		members = append(members, ir.Variable{Name: memberName, Access: access, Kind: "var", Type: groupName})
		members = append(members, group)
	}

	if op.RequestBody != nil {
		bodyType, nested := t.bodyTypeExpr(inputNS, joinPointer(pointer, "requestBody"), op.RequestBody.Content)
		if bodyType != "" {
			if !op.RequestBody.Required {
				bodyType = "OptionalBody<" + bodyType + ">"
			}
			members = append(members, ir.Variable{Name: "body", Access: access, Kind: "var", Type: bodyType})
			if nested != nil {
				members = append(members, nested)
			}
		}
	}

	st := ir.Struct{Name: "Input", Access: access, Conformances: []string{"Hashable"}, Members: members}

	comment := "The input parameters and body for this operation."
	if schemes := securitySchemeNames(op.Security); len(schemes) > 0 {
		comment += " Requires security scheme(s): " + strings.Join(schemes, ", ") + "."
	}

	return ir.Commentable{Comment: comment, Inner: st}, nil
}

// securitySchemeNames collects the distinct security scheme names named
// across an operation's security requirements, sorted for determinism (spec
// §8). Each model.SecurityRequirement is an AND of schemes; the operation as
// a whole accepts any one requirement (an OR across the slice), but Input's
// doc comment only documents which schemes are in play, not the
// alternatives' logical structure (SPEC_FULL.md §12).
func securitySchemeNames(reqs []model.SecurityRequirement) []string {
	seen := map[string]bool{}
	for _, req := range reqs {
		for name := range req {
			seen[name] = true
		}
	}

	if len(seen) == 0 {
		return nil
	}

	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)

	return names
}

// paramTypeExpr resolves a single parameter's schema position, delegating
// to the schema translator (internal/schemagen) so parameter schemas
// inline/box exactly like component/body schemas do.
func (t *Translator) paramTypeExpr(parent naming.TypeName, pointer string, p model.Parameter) (string, ir.Declaration) {
	if p.Schema != nil {
		return t.schema.TranslatePosition(parent, p.Name, pointer+"/schema", p.Schema, true)
	}

	// Content-based parameter: take the schema of its single media-type
	// entry (spec §4.6 "mutually exclusive with Schema").
	for _, ct := range sortedStringKeys(p.Content) {
		mt := p.Content[ct]
		if mt != nil {
			return t.schema.TranslatePosition(parent, p.Name, pointer+"/content/"+ct+"/schema", mt.Schema, true)
		}
	}

	return "String", nil
}

// parameterStyleSupported reports whether p's style/explode combination
// matches the serialization policy table of spec §4.6. style=simple
// path/header parameters accept either explode value for an array-valued
// schema (SPEC_FULL.md §12 "Header parameter arrays": the client serializer
// picks comma-joined vs repeated key=value based on it); explode=true is
// still unsupported for non-array schemas, where simple style has no
// well-defined repeated-key form.
func parameterStyleSupported(p model.Parameter) bool {
	if p.Content != nil {
		return true
	}

	style := p.Style
	if style == "" {
		style = defaultStyle(p.In)
	}

	simpleExplodeOK := !p.Explode || (p.Schema != nil && p.Schema.Type == "array")

	switch p.In {
	case "path":
		return style == "simple" && simpleExplodeOK
	case "query":
		return style == "form"
	case "header":
		return style == "simple" && simpleExplodeOK
	default:
		return false
	}
}

func defaultStyle(in string) string {
	switch in {
	case "query", "cookie":
		return "form"
	default:
		return "simple"
	}
}

// bodyTypeExpr resolves a request body's content map to a sum type with
// one case per supported content type (spec §4.5 "an optional Body sum
// whose cases correspond to supported request content types"), the same
// shape the operation translator uses for response bodies
// (responseBodyTypeExpr in output.go).
func (t *Translator) bodyTypeExpr(parent naming.TypeName, pointer string, content map[string]*model.MediaType) (string, ir.Declaration) {
	if len(content) == 0 {
		return "", nil
	}

	access := string(t.cfg.Access)
	var cases []ir.EnumCase
	var nested []ir.Declaration

	for _, ct := range sortedStringKeys(content) {
		mt := content[ct]
		if mt == nil {
			continue
		}

		caseName := contentTypeCaseName(ct, t.cfg)
		typeExpr, decl := t.schema.TranslatePosition(parent, caseName, pointer+"/content/"+ct+"/schema", mt.Schema, true)
		cases = append(cases, ir.EnumCase{Name: caseName, AssociatedValues: []ir.AssociatedValue{{Type: typeExpr}}})
		if decl != nil {
			nested = append(nested, decl)
		}
	}

	e := ir.Enum{Name: "Body", Access: access, Conformances: []string{"Hashable"}, Cases: cases, Members: nested}

	return parent.Appending("Body", pointer).Dotted(), e
}
