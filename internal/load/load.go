// Package load decodes an OpenAPI 3.0/3.1 document from YAML or JSON bytes
// into model.Document. It is deliberately kept out of the core translation
// packages: spec.md §1 treats "a parsed, validated OpenAPI document" as a
// collaborator's output, not part of the core (the "Parser frontend (5%)"
// line item). This package is that collaborator, grounded on the teacher's
// config.Load's "decode to a generic tree, then convert field by field"
// shape, using goccy/go-yaml since it accepts both YAML and JSON input.
package load

import (
	"fmt"
	"sort"
	"strings"

	"github.com/goccy/go-yaml"

	"github.com/talav/oasgen/model"
)

// Document decodes data (YAML or JSON; goccy/go-yaml parses both) into a
// model.Document. It performs no semantic validation of its own beyond
// what is needed to build the data model. The only validation elsewhere is
// the driver's optional featureFlags-gated check of schema literals against
// their own schemas (diagnostic.ValidateLiteral); nothing validates the
// document against the OpenAPI meta-schema.
func Document(data []byte) (*model.Document, error) {
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("load: parse document: %w", err)
	}

	return FromMap(raw), nil
}

// FromMap converts an already-decoded document tree (string-keyed maps,
// []any slices, scalar leaves) into a model.Document. Document decodes
// bytes with goccy/go-yaml and calls this; internal/fixtures decodes the
// same tree shape with gopkg.in/yaml.v3 for its test documents so that a
// fixture-parsing bug never gets confused with a Document-decoding bug
// under test, while both share this single map-to-model conversion.
func FromMap(raw map[string]any) *model.Document {
	doc := &model.Document{
		Info:       decodeInfo(asMap(raw["info"])),
		Servers:    decodeServers(asSlice(raw["servers"])),
		Paths:      decodePaths(asMap(raw["paths"])),
		Components: decodeComponents(asMap(raw["components"])),
		Tags:       decodeTags(asSlice(raw["tags"])),
		Security:   decodeSecurityRequirements(asSlice(raw["security"])),
		Extensions: extensionFields(raw),
	}

	if docs, ok := raw["externalDocs"]; ok {
		doc.ExternalDocs = decodeExternalDocs(asMap(docs))
	}

	return doc
}

func decodeInfo(m map[string]any) model.Info {
	info := model.Info{
		Title:          asString(m["title"]),
		Description:    asString(m["description"]),
		TermsOfService: asString(m["termsOfService"]),
		Version:        asString(m["version"]),
	}

	if c, ok := m["contact"]; ok {
		cm := asMap(c)
		info.Contact = &model.Contact{Name: asString(cm["name"]), URL: asString(cm["url"]), Email: asString(cm["email"])}
	}

	if l, ok := m["license"]; ok {
		lm := asMap(l)
		info.License = &model.License{Name: asString(lm["name"]), URL: asString(lm["url"])}
	}

	return info
}

func decodeServers(list []any) []model.Server {
	servers := make([]model.Server, 0, len(list))
	for _, item := range list {
		m := asMap(item)
		srv := model.Server{URL: asString(m["url"]), Description: asString(m["description"])}

		if vars, ok := m["variables"]; ok {
			srv.Variables = map[string]*model.ServerVariable{}
			for name, v := range asMap(vars) {
				vm := asMap(v)
				srv.Variables[name] = &model.ServerVariable{
					Enum:        asStringSlice(vm["enum"]),
					Default:     asString(vm["default"]),
					Description: asString(vm["description"]),
				}
			}
		}

		servers = append(servers, srv)
	}

	return servers
}

func decodeExternalDocs(m map[string]any) *model.ExternalDocs {
	if m == nil {
		return nil
	}

	return &model.ExternalDocs{Description: asString(m["description"]), URL: asString(m["url"])}
}

func decodeTags(list []any) []model.Tag {
	tags := make([]model.Tag, 0, len(list))
	for _, item := range list {
		m := asMap(item)
		tags = append(tags, model.Tag{
			Name:         asString(m["name"]),
			Description:  asString(m["description"]),
			ExternalDocs: decodeExternalDocs(asMap(m["externalDocs"])),
		})
	}

	return tags
}

func decodeSecurityRequirements(list []any) []model.SecurityRequirement {
	reqs := make([]model.SecurityRequirement, 0, len(list))
	for _, item := range list {
		req := model.SecurityRequirement{}
		for name, scopes := range asMap(item) {
			req[name] = asStringSlice(scopes)
		}
		reqs = append(reqs, req)
	}

	return reqs
}

func decodePaths(m map[string]any) map[string]*model.PathItem {
	paths := make(map[string]*model.PathItem, len(m))
	for path, v := range m {
		paths[path] = decodePathItem(asMap(v))
	}

	return paths
}

func decodePathItem(m map[string]any) *model.PathItem {
	item := &model.PathItem{
		Ref:         asString(m["$ref"]),
		Summary:     asString(m["summary"]),
		Description: asString(m["description"]),
		Parameters:  decodeParameters(asSlice(m["parameters"])),
		Servers:     decodeServers(asSlice(m["servers"])),
	}

	methods := map[string]**model.Operation{
		"get": &item.Get, "put": &item.Put, "post": &item.Post, "delete": &item.Delete,
		"options": &item.Options, "head": &item.Head, "patch": &item.Patch, "trace": &item.Trace,
	}
	for key, slot := range methods {
		if v, ok := m[key]; ok {
			op := decodeOperation(asMap(v))
			op.Parameters = mergeParameters(item.Parameters, op.Parameters)
			*slot = op
		}
	}

	return item
}

// mergeParameters combines pathItem-level parameters with operation-level
// ones per spec §3: pathItem-level first, operation-level winning on a
// (location, name) collision. Header parameters named "accept",
// "content-type", or "authorization" are silently dropped per the OpenAPI
// 3.0.3 rule (spec §3's Parameter invariant).
func mergeParameters(pathLevel, opLevel []model.Parameter) []model.Parameter {
	overridden := make(map[string]bool, len(opLevel))
	for _, p := range opLevel {
		overridden[p.In+"\x00"+p.Name] = true
	}

	merged := make([]model.Parameter, 0, len(pathLevel)+len(opLevel))
	for _, p := range pathLevel {
		if overridden[p.In+"\x00"+p.Name] || isReservedHeaderParameter(p) {
			continue
		}
		merged = append(merged, p)
	}
	for _, p := range opLevel {
		if isReservedHeaderParameter(p) {
			continue
		}
		merged = append(merged, p)
	}

	return merged
}

// isReservedHeaderParameter reports whether p names one of the three
// header parameters OpenAPI 3.0.3 reserves for the HTTP transport itself
// and which the generator must silently drop rather than declare.
func isReservedHeaderParameter(p model.Parameter) bool {
	if p.In != "header" {
		return false
	}

	switch strings.ToLower(p.Name) {
	case "accept", "content-type", "authorization":
		return true
	default:
		return false
	}
}

func decodeOperation(m map[string]any) *model.Operation {
	op := &model.Operation{
		Tags:         asStringSlice(m["tags"]),
		Summary:      asString(m["summary"]),
		Description:  asString(m["description"]),
		ExternalDocs: decodeExternalDocs(asMap(m["externalDocs"])),
		OperationID:  asString(m["operationId"]),
		Parameters:   decodeParameters(asSlice(m["parameters"])),
		Deprecated:   asBool(m["deprecated"]),
	}

	if rb, ok := m["requestBody"]; ok {
		op.RequestBody = decodeRequestBody(asMap(rb))
	}

	op.Responses = decodeResponses(asMap(m["responses"]))

	if cb, ok := m["callbacks"]; ok {
		op.Callbacks = map[string]*model.Callback{}
		for name, v := range asMap(cb) {
			op.Callbacks[name] = decodeCallback(asMap(v))
		}
	}

	if sec, ok := m["security"]; ok {
		op.Security = decodeSecurityRequirements(asSlice(sec))
	}

	return op
}

func decodeParameters(list []any) []model.Parameter {
	params := make([]model.Parameter, 0, len(list))
	for _, item := range list {
		params = append(params, decodeParameter(asMap(item)))
	}

	return params
}

func decodeParameter(m map[string]any) model.Parameter {
	p := model.Parameter{
		Ref:         asString(m["$ref"]),
		Name:        asString(m["name"]),
		In:          asString(m["in"]),
		Description: asString(m["description"]),
		Required:    asBool(m["required"]),
		Deprecated:  asBool(m["deprecated"]),
		Style:       asString(m["style"]),
		Explode:     asBool(m["explode"]),
	}

	if s, ok := m["schema"]; ok {
		p.Schema = decodeSchema(asMap(s))
	}

	if c, ok := m["content"]; ok {
		p.Content = decodeContent(asMap(c))
	}

	return p
}

func decodeRequestBody(m map[string]any) *model.RequestBody {
	return &model.RequestBody{
		Ref:         asString(m["$ref"]),
		Description: asString(m["description"]),
		Required:    asBool(m["required"]),
		Content:     decodeContent(asMap(m["content"])),
	}
}

func decodeResponses(m map[string]any) map[string]*model.Response {
	responses := make(map[string]*model.Response, len(m))
	for status, v := range m {
		responses[status] = decodeResponse(asMap(v))
	}

	return responses
}

func decodeResponse(m map[string]any) *model.Response {
	resp := &model.Response{
		Ref:         asString(m["$ref"]),
		Description: asString(m["description"]),
		Content:     decodeContent(asMap(m["content"])),
	}

	if h, ok := m["headers"]; ok {
		resp.Headers = map[string]*model.Header{}
		for name, v := range asMap(h) {
			resp.Headers[name] = decodeHeader(asMap(v))
		}
	}

	if l, ok := m["links"]; ok {
		resp.Links = map[string]*model.Link{}
		for name, v := range asMap(l) {
			resp.Links[name] = decodeLink(asMap(v))
		}
	}

	return resp
}

func decodeHeader(m map[string]any) *model.Header {
	h := &model.Header{
		Ref:         asString(m["$ref"]),
		Description: asString(m["description"]),
		Required:    asBool(m["required"]),
		Deprecated:  asBool(m["deprecated"]),
	}

	if s, ok := m["schema"]; ok {
		h.Schema = decodeSchema(asMap(s))
	}
	if c, ok := m["content"]; ok {
		h.Content = decodeContent(asMap(c))
	}

	return h
}

func decodeLink(m map[string]any) *model.Link {
	return &model.Link{
		Ref:          asString(m["$ref"]),
		OperationRef: asString(m["operationRef"]),
		OperationID:  asString(m["operationId"]),
		Parameters:   asMap(m["parameters"]),
		RequestBody:  m["requestBody"],
		Description:  asString(m["description"]),
	}
}

func decodeCallback(m map[string]any) *model.Callback {
	cb := &model.Callback{PathItems: map[string]*model.PathItem{}}
	for expr, v := range m {
		cb.PathItems[expr] = decodePathItem(asMap(v))
	}

	return cb
}

func decodeContent(m map[string]any) map[string]*model.MediaType {
	content := make(map[string]*model.MediaType, len(m))
	for ct, v := range m {
		content[ct] = decodeMediaType(asMap(v))
	}

	return content
}

func decodeMediaType(m map[string]any) *model.MediaType {
	mt := &model.MediaType{Example: m["example"]}

	if s, ok := m["schema"]; ok {
		mt.Schema = decodeSchema(asMap(s))
	}

	if ex, ok := m["examples"]; ok {
		mt.Examples = map[string]*model.Example{}
		for name, v := range asMap(ex) {
			em := asMap(v)
			mt.Examples[name] = &model.Example{
				Ref:           asString(em["$ref"]),
				Summary:       asString(em["summary"]),
				Description:   asString(em["description"]),
				Value:         em["value"],
				ExternalValue: asString(em["externalValue"]),
			}
		}
	}

	if enc, ok := m["encoding"]; ok {
		mt.Encoding = map[string]*model.Encoding{}
		for name, v := range asMap(enc) {
			encm := asMap(v)
			e := &model.Encoding{
				ContentType:   asString(encm["contentType"]),
				Style:         asString(encm["style"]),
				Explode:       asBool(encm["explode"]),
				AllowReserved: asBool(encm["allowReserved"]),
			}
			if h, ok := encm["headers"]; ok {
				e.Headers = map[string]*model.Header{}
				for hname, hv := range asMap(h) {
					e.Headers[hname] = decodeHeader(asMap(hv))
				}
			}
			mt.Encoding[name] = e
		}
	}

	return mt
}

// decodeSchema converts a raw JSON-Schema-ish node into a model.Schema.
// The wire format's "additionalProperties" and "exclusiveMinimum"/
// "exclusiveMaximum" (which vary shape between OpenAPI 3.0's boolean form
// and 3.1's numeric form) need explicit handling no generic decoder would
// get right, which is the core reason this package exists as hand-written
// code rather than a generic unmarshal.
func decodeSchema(m map[string]any) *model.Schema {
	if m == nil {
		return nil
	}

	if ref := asString(m["$ref"]); ref != "" {
		return &model.Schema{Ref: ref, Description: asString(m["description"])}
	}

	s := &model.Schema{
		Type:             schemaType(m["type"]),
		Nullable:         schemaNullable(m),
		Title:            asString(m["title"]),
		Description:      asString(m["description"]),
		Format:           asString(m["format"]),
		ContentEncoding:  asString(m["contentEncoding"]),
		ContentMediaType: asString(m["contentMediaType"]),
		Deprecated:       asBool(m["deprecated"]),
		ReadOnly:         asBool(m["readOnly"]),
		WriteOnly:        asBool(m["writeOnly"]),
		Pattern:          asString(m["pattern"]),
		MinLength:        asIntPtr(m["minLength"]),
		MaxLength:        asIntPtr(m["maxLength"]),
		MultipleOf:       asFloatPtr(m["multipleOf"]),
		MinItems:         asIntPtr(m["minItems"]),
		MaxItems:         asIntPtr(m["maxItems"]),
		UniqueItems:      asBool(m["uniqueItems"]),
		Required:         asStringSlice(m["required"]),
		MinProperties:    asIntPtr(m["minProperties"]),
		MaxProperties:    asIntPtr(m["maxProperties"]),
		Enum:             asSlice(m["enum"]),
		Const:            m["const"],
		Default:          m["default"],
		ReplaceType:      asString(m["x-replace-type"]),
	}

	if ex, ok := m["example"]; ok {
		s.Example = ex
	}
	if exs, ok := m["examples"]; ok {
		s.Examples = asSlice(exs)
	}

	s.Minimum = decodeBound(m["minimum"], m["exclusiveMinimum"])
	s.Maximum = decodeBound(m["maximum"], m["exclusiveMaximum"])

	if items, ok := m["items"]; ok {
		s.Items = decodeSchema(asMap(items))
	}

	if props, ok := m["properties"]; ok {
		s.Properties = map[string]*model.Schema{}
		for name, v := range asMap(props) {
			s.Properties[name] = decodeSchema(asMap(v))
		}
	}

	s.Additional = decodeAdditional(m["additionalProperties"])

	s.AllOf = decodeSchemaList(m["allOf"])
	s.AnyOf = decodeSchemaList(m["anyOf"])
	s.OneOf = decodeSchemaList(m["oneOf"])
	if not, ok := m["not"]; ok {
		s.Not = decodeSchema(asMap(not))
	}

	if d, ok := m["discriminator"]; ok {
		dm := asMap(d)
		disc := &model.Discriminator{PropertyName: asString(dm["propertyName"])}
		if mapping, ok := dm["mapping"]; ok {
			disc.Mapping = map[string]string{}
			for k, v := range asMap(mapping) {
				disc.Mapping[k] = asString(v)
			}
		}
		s.Discriminator = disc
	}

	s.Extensions = extensionFields(m)

	return s
}

func schemaType(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case []any:
		// OpenAPI 3.1 nullable union ["string","null"]: the parser
		// frontend is expected to normalize this to a single type plus
		// Nullable=true (spec §3's invariant); this package does that
		// normalization since it is the boundary that first sees the
		// raw union.
		for _, item := range t {
			if s, ok := item.(string); ok && s != "null" {
				return s
			}
		}
	}

	return ""
}

func schemaNullable(m map[string]any) bool {
	if asBool(m["nullable"]) {
		return true
	}

	if list, ok := m["type"].([]any); ok {
		for _, item := range list {
			if s, ok := item.(string); ok && s == "null" {
				return true
			}
		}
	}

	return false
}

func decodeBound(value, exclusive any) *model.Bound {
	if value == nil && exclusive == nil {
		return nil
	}

	// 3.1: exclusiveMinimum/Maximum carry the bound value directly and
	// "minimum"/"maximum" is absent; 3.0: exclusiveMinimum/Maximum is a
	// bool modifying "minimum"/"maximum".
	if f, ok := asFloatOK(exclusive); ok {
		return &model.Bound{Value: f, Exclusive: true}
	}

	if value == nil {
		return nil
	}

	return &model.Bound{Value: asFloat(value), Exclusive: asBool(exclusive)}
}

func decodeAdditional(v any) *model.Additional {
	switch t := v.(type) {
	case nil:
		return nil
	case bool:
		allow := t
		return &model.Additional{Allow: &allow}
	default:
		return &model.Additional{Schema: decodeSchema(asMap(t))}
	}
}

func decodeSchemaList(v any) []*model.Schema {
	list := asSlice(v)
	if len(list) == 0 {
		return nil
	}

	out := make([]*model.Schema, 0, len(list))
	for _, item := range list {
		out = append(out, decodeSchema(asMap(item)))
	}

	return out
}

// extensionFields collects every "x-"-prefixed key as a document
// extension (spec §3's Extensions field), sorted for deterministic
// iteration by downstream consumers.
func extensionFields(m map[string]any) map[string]any {
	var keys []string
	for k := range m {
		if strings.HasPrefix(k, "x-") {
			keys = append(keys, k)
		}
	}
	if len(keys) == 0 {
		return nil
	}
	sort.Strings(keys)

	ext := make(map[string]any, len(keys))
	for _, k := range keys {
		ext[k] = m[k]
	}

	return ext
}

func decodeComponents(m map[string]any) *model.Components {
	if m == nil {
		return &model.Components{}
	}

	c := &model.Components{}

	if v, ok := m["schemas"]; ok {
		c.Schemas = map[string]*model.Schema{}
		for name, sv := range asMap(v) {
			c.Schemas[name] = decodeSchema(asMap(sv))
		}
	}

	if v, ok := m["responses"]; ok {
		c.Responses = map[string]*model.Response{}
		for name, rv := range asMap(v) {
			c.Responses[name] = decodeResponse(asMap(rv))
		}
	}

	if v, ok := m["parameters"]; ok {
		c.Parameters = map[string]*model.Parameter{}
		for name, pv := range asMap(v) {
			p := decodeParameter(asMap(pv))
			c.Parameters[name] = &p
		}
	}

	if v, ok := m["examples"]; ok {
		c.Examples = map[string]*model.Example{}
		for name, ev := range asMap(v) {
			em := asMap(ev)
			c.Examples[name] = &model.Example{
				Ref:           asString(em["$ref"]),
				Summary:       asString(em["summary"]),
				Description:   asString(em["description"]),
				Value:         em["value"],
				ExternalValue: asString(em["externalValue"]),
			}
		}
	}

	if v, ok := m["requestBodies"]; ok {
		c.RequestBodies = map[string]*model.RequestBody{}
		for name, rv := range asMap(v) {
			c.RequestBodies[name] = decodeRequestBody(asMap(rv))
		}
	}

	if v, ok := m["headers"]; ok {
		c.Headers = map[string]*model.Header{}
		for name, hv := range asMap(v) {
			c.Headers[name] = decodeHeader(asMap(hv))
		}
	}

	if v, ok := m["securitySchemes"]; ok {
		c.SecuritySchemes = map[string]*model.SecurityScheme{}
		for name, sv := range asMap(v) {
			c.SecuritySchemes[name] = decodeSecurityScheme(asMap(sv))
		}
	}

	if v, ok := m["links"]; ok {
		c.Links = map[string]*model.Link{}
		for name, lv := range asMap(v) {
			c.Links[name] = decodeLink(asMap(lv))
		}
	}

	if v, ok := m["callbacks"]; ok {
		c.Callbacks = map[string]*model.Callback{}
		for name, cv := range asMap(v) {
			c.Callbacks[name] = decodeCallback(asMap(cv))
		}
	}

	if v, ok := m["pathItems"]; ok {
		c.PathItems = map[string]*model.PathItem{}
		for name, pv := range asMap(v) {
			c.PathItems[name] = decodePathItem(asMap(pv))
		}
	}

	return c
}

func decodeSecurityScheme(m map[string]any) *model.SecurityScheme {
	scheme := &model.SecurityScheme{
		Type:             asString(m["type"]),
		Description:      asString(m["description"]),
		Name:             asString(m["name"]),
		In:               asString(m["in"]),
		Scheme:           asString(m["scheme"]),
		BearerFormat:     asString(m["bearerFormat"]),
		OpenIDConnectURL: asString(m["openIdConnectUrl"]),
	}

	if flows, ok := m["flows"]; ok {
		fm := asMap(flows)
		scheme.Flows = &model.OAuthFlows{}
		for key, slot := range map[string]**model.OAuthFlow{
			"implicit": &scheme.Flows.Implicit, "password": &scheme.Flows.Password,
			"clientCredentials": &scheme.Flows.ClientCredentials, "authorizationCode": &scheme.Flows.AuthorizationCode,
		} {
			if v, ok := fm[key]; ok {
				vm := asMap(v)
				flow := &model.OAuthFlow{
					AuthorizationURL: asString(vm["authorizationUrl"]),
					TokenURL:         asString(vm["tokenUrl"]),
					RefreshURL:       asString(vm["refreshUrl"]),
				}
				if scopes, ok := vm["scopes"]; ok {
					flow.Scopes = map[string]string{}
					for k, v := range asMap(scopes) {
						flow.Scopes[k] = asString(v)
					}
				}
				*slot = flow
			}
		}
	}

	return scheme
}
