package filter

import "github.com/talav/oasgen/model"

// assemble builds the reduced document from the retained endpoint
// selections and the accumulated reference closure.
func (c *closure) assemble(retained map[string]*endpointSelection, pathFilterActive bool) (*model.Document, error) {
	out := &model.Document{
		Info:         c.doc.Info,
		Servers:      c.doc.Servers,
		Tags:         c.doc.Tags,
		Security:     c.doc.Security,
		ExternalDocs: c.doc.ExternalDocs,
		Extensions:   c.doc.Extensions,
		Paths:        map[string]*model.PathItem{},
	}

	for _, path := range sortedKeys(retained) {
		sel := retained[path]
		original := c.doc.Paths[path]

		if !pathFilterActive || sel.methods == nil {
			out.Paths[path] = original
			continue
		}

		resolved, err := c.resolvePathItem(original)
		if err != nil {
			return nil, err
		}
		out.Paths[path] = filteredPathItem(resolved, sel.methods)
	}

	out.Components = &model.Components{
		Schemas:         map[string]*model.Schema{},
		Responses:       map[string]*model.Response{},
		Parameters:      map[string]*model.Parameter{},
		Examples:        map[string]*model.Example{},
		RequestBodies:   map[string]*model.RequestBody{},
		Headers:         map[string]*model.Header{},
		SecuritySchemes: c.doc.Components.SecuritySchemes,
		Links:           map[string]*model.Link{},
		Callbacks:       map[string]*model.Callback{},
		PathItems:       map[string]*model.PathItem{},
	}

	for name := range c.schemas {
		if s, ok := c.doc.Components.Schemas[name]; ok {
			out.Components.Schemas[name] = s
		}
	}
	for name := range c.parameters {
		if p, ok := c.doc.Components.Parameters[name]; ok {
			out.Components.Parameters[name] = p
		}
	}
	for name := range c.headers {
		if h, ok := c.doc.Components.Headers[name]; ok {
			out.Components.Headers[name] = h
		}
	}
	for name := range c.responses {
		if r, ok := c.doc.Components.Responses[name]; ok {
			out.Components.Responses[name] = r
		}
	}
	for name := range c.requestBodies {
		if rb, ok := c.doc.Components.RequestBodies[name]; ok {
			out.Components.RequestBodies[name] = rb
		}
	}
	for name := range c.callbacks {
		if cb, ok := c.doc.Components.Callbacks[name]; ok {
			out.Components.Callbacks[name] = cb
		}
	}
	for name := range c.examples {
		if ex, ok := c.doc.Components.Examples[name]; ok {
			out.Components.Examples[name] = ex
		}
	}
	for name := range c.links {
		if l, ok := c.doc.Components.Links[name]; ok {
			out.Components.Links[name] = l
		}
	}
	for name := range c.pathItems {
		if item, ok := c.doc.Components.PathItems[name]; ok {
			out.Components.PathItems[name] = filteredReferencedPathItem(item)
		}
	}

	return out, nil
}

// filteredPathItem returns a copy of item retaining only the endpoints
// named in methods (spec §4.1 "Output assembly": endpoint-level filtering
// on a retained path item).
func filteredPathItem(item *model.PathItem, methods map[string]bool) *model.PathItem {
	out := &model.PathItem{
		Summary:     item.Summary,
		Description: item.Description,
		Servers:     item.Servers,
		Parameters:  item.Parameters,
	}

	if methods["GET"] {
		out.Get = item.Get
	}
	if methods["PUT"] {
		out.Put = item.Put
	}
	if methods["POST"] {
		out.Post = item.Post
	}
	if methods["DELETE"] {
		out.Delete = item.Delete
	}
	if methods["OPTIONS"] {
		out.Options = item.Options
	}
	if methods["HEAD"] {
		out.Head = item.Head
	}
	if methods["PATCH"] {
		out.Patch = item.Patch
	}
	if methods["TRACE"] {
		out.Trace = item.Trace
	}

	return out
}

// filteredReferencedPathItem stores an unfiltered copy of a components-level
// path item reached only through a callback or $ref: its own endpoints were
// not subject to tag/path/operationID filtering, only reference-closure
// inclusion, so it is kept whole.
func filteredReferencedPathItem(item *model.PathItem) *model.PathItem {
	return item
}
