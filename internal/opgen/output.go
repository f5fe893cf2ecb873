package opgen

import (
	"sort"
	"strings"

	"github.com/talav/oasgen/internal/ir"
	"github.com/talav/oasgen/internal/naming"
	"github.com/talav/oasgen/model"
)

// wellKnownStatusNames maps a documented literal status code to the
// friendly case name spec §4.5's testable scenario expects
// ("Output.ok.body.json" for a 200 response).
var wellKnownStatusNames = map[string]string{
	"200": "ok",
	"201": "created",
	"202": "accepted",
	"204": "noContent",
	"301": "movedPermanently",
	"302": "found",
	"304": "notModified",
	"400": "badRequest",
	"401": "unauthorized",
	"403": "forbidden",
	"404": "notFound",
	"405": "methodNotAllowed",
	"406": "notAcceptable",
	"408": "requestTimeout",
	"409": "conflict",
	"410": "gone",
	"412": "preconditionFailed",
	"415": "unsupportedMediaType",
	"422": "unprocessableContent",
	"429": "tooManyRequests",
	"500": "internalServerError",
	"502": "badGateway",
	"503": "serviceUnavailable",
	"504": "gatewayTimeout",
}

// rangeStatusNames maps a documented status-code range ("2XX") to its
// friendly case name.
var rangeStatusNames = map[string]string{
	"1XX": "informational1xx",
	"2XX": "successful2xx",
	"3XX": "redirect3xx",
	"4XX": "clientError4xx",
	"5XX": "serverError5xx",
}

// responseCaseName derives the friendly enum case name for a documented
// response key (spec §4.5): a well-known literal status, a range, the
// literal "default" (sanitized to "_default" since it collides with the
// Swift keyword), or a "status<code>" fallback for an undocumented literal
// code.
func responseCaseName(status string) string {
	if name, ok := wellKnownStatusNames[status]; ok {
		return name
	}

	upper := strings.ToUpper(status)
	if name, ok := rangeStatusNames[upper]; ok {
		return name
	}

	if status == "default" {
		return "_default"
	}

	return "status" + status
}

// buildOutput assembles the Output sum type: one case per documented
// response status (friendly-named per responseCaseName), each carrying
// that response's headers and body, plus a mandatory "undocumented" case
// for any status the document did not describe (spec §4.5).
func (t *Translator) buildOutput(ns naming.TypeName, pointer string, op *model.Operation) ir.Declaration {
	access := string(t.cfg.Access)
	outputNS := ns.Appending("Output", pointer)

	var cases []ir.EnumCase
	var nested []ir.Declaration

	for _, status := range sortedResponseKeys(op.Responses) {
		resp := op.Responses[status]
		if resp == nil {
			continue
		}

		caseName := responseCaseName(status)
		respPointer := joinPointer(pointer, "responses/"+status)

		payloadType, payloadDecl := t.buildResponsePayload(outputNS, caseName, respPointer, resp)
		cases = append(cases, ir.EnumCase{Name: caseName, AssociatedValues: []ir.AssociatedValue{{Type: payloadType}}})
		if payloadDecl != nil {
			nested = append(nested, payloadDecl)
		}
	}

	cases = append(cases, ir.EnumCase{
		Name: "undocumented",
		AssociatedValues: []ir.AssociatedValue{
			{Label: "statusCode", Type: "Int"},
			{Label: "headers", Type: "[String: String]?"},
			{Type: "RawBody"},
		},
	})

	e := ir.Enum{
		Name:         "Output",
		Access:       access,
		Conformances: []string{"Hashable"},
		Cases:        cases,
		Members:      nested,
	}

	return ir.Commentable{Comment: "The possible outputs for this operation, by response status.", Inner: e}
}

// buildResponsePayload emits the per-status Body/Headers struct that an
// Output case's associated value carries, and returns its type name.
// Responses documenting no content at all (no Content, no Headers) carry
// no payload struct; their case is associated with Void.
func (t *Translator) buildResponsePayload(outputNS naming.TypeName, caseName, pointer string, resp *model.Response) (string, ir.Declaration) {
	access := string(t.cfg.Access)

	if len(resp.Content) == 0 && len(resp.Headers) == 0 {
		return "Void", nil
	}

	payloadName := naming.Sanitize(caseName, t.cfg.NamingStrategy, naming.Type, t.cfg.NameOverrides)
	payloadNS := outputNS.Appending(payloadName, pointer)

	var members []ir.Declaration

	for _, name := range sortedStringKeys(resp.Headers) {
		h := resp.Headers[name]
		if h == nil {
			continue
		}

		typeExpr, nested := t.schema.TranslatePosition(payloadNS, name, joinPointer(pointer, "headers/"+name+"/schema"), h.Schema, h.Required)
		if !h.Required {
			typeExpr += "?"
		}

		memberName := naming.Sanitize(name, t.cfg.NamingStrategy, naming.Member, t.cfg.NameOverrides)
		members = append(members, ir.Variable{Name: memberName, Access: access, Kind: "var", Type: typeExpr})
		if nested != nil {
			members = append(members, nested)
		}
	}

	if len(resp.Content) > 0 {
		bodyType, bodyNested := t.responseBodyTypeExpr(payloadNS, joinPointer(pointer, "content"), resp.Content)
		members = append(members, ir.Variable{Name: "body", Access: access, Kind: "var", Type: bodyType})
		if bodyNested != nil {
			members = append(members, bodyNested)
		}
	}

	st := ir.Struct{Name: payloadName, Access: access, Conformances: []string{"Hashable"}, Members: members}

	return payloadNS.Dotted(), st
}

// responseBodyTypeExpr resolves a response body's content map to a
// per-content-type sum type whose case names are the contentTypeCaseName
// names AcceptableContentType also uses (SPEC_FULL.md §12). Even a single documented content type still gets its
// own case (e.g. "body.json"), per spec §8's listPets scenario
// ("Output.ok.body.json type is [Components.Schemas.Pet]").
func (t *Translator) responseBodyTypeExpr(parent naming.TypeName, pointer string, content map[string]*model.MediaType) (string, ir.Declaration) {
	keys := sortedStringKeys(content)

	access := string(t.cfg.Access)
	var cases []ir.EnumCase
	var nested []ir.Declaration

	for _, ct := range keys {
		mt := content[ct]
		caseName := contentTypeCaseName(ct, t.cfg)
		typeExpr, decl := t.schema.TranslatePosition(parent, caseName, pointer+"/"+ct+"/schema", mt.Schema, true)
		cases = append(cases, ir.EnumCase{Name: caseName, AssociatedValues: []ir.AssociatedValue{{Type: typeExpr}}})
		if decl != nil {
			nested = append(nested, decl)
		}
	}

	e := ir.Enum{Name: "Body", Access: access, Conformances: []string{"Hashable"}, Cases: cases, Members: nested}

	return parent.Appending("Body", pointer).Dotted(), e
}

// hasHeaderOnlyResponse reports whether op documents at least one response
// (in sorted status order) that declares headers but no body content —
// SPEC_FULL.md §12's "default response reuse": when a live status matches
// neither a documented response nor "default", the client deserializer's
// undocumented case carries the live response's raw headers, undecoded,
// whenever such a response exists, instead of silently dropping them.
func hasHeaderOnlyResponse(responses map[string]*model.Response) bool {
	for _, status := range sortedResponseKeys(responses) {
		resp := responses[status]
		if resp != nil && len(resp.Headers) > 0 && len(resp.Content) == 0 {
			return true
		}
	}

	return false
}

func sortedResponseKeys(responses map[string]*model.Response) []string {
	keys := make([]string, 0, len(responses))
	for k := range responses {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	return keys
}
