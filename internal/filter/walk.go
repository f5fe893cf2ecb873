package filter

import (
	"fmt"

	"github.com/talav/oasgen/model"
	"github.com/talav/oasgen/oaserr"
)

// resolvePathItem returns item itself, or the path item it references
// if item.Ref is set. A ref to an external document is fatal.
func (c *closure) resolvePathItem(item *model.PathItem) (*model.PathItem, error) {
	if item == nil || item.Ref == "" {
		return item, nil
	}

	ref, ok := model.ParseReference(item.Ref)
	if !ok {
		return nil, fmt.Errorf("filter: path item ref %q: %w", item.Ref, oaserr.ErrExternalReference)
	}

	resolved, ok := c.doc.Components.PathItems[ref.Name]
	if !ok {
		return nil, fmt.Errorf("filter: path item ref %q: %w", item.Ref, oaserr.ErrReferenceNotFound)
	}

	c.insertPathItem(ref.Name)

	return resolved, nil
}

func (c *closure) walkPathItem(item *model.PathItem) {
	if item == nil {
		return
	}
	for _, p := range item.Parameters {
		c.walkParameter(&p)
	}
	for _, ep := range item.Endpoints() {
		c.walkOperation(ep.Operation)
	}
}

func (c *closure) walkOperation(op *model.Operation) {
	if op == nil {
		return
	}

	for _, p := range op.Parameters {
		c.walkParameter(&p)
	}

	c.walkRequestBody(op.RequestBody)

	for _, status := range sortedKeys(op.Responses) {
		c.walkResponse(op.Responses[status])
	}

	for _, name := range sortedKeys(op.Callbacks) {
		c.walkCallback(op.Callbacks[name])
	}
}

func (c *closure) walkParameter(p *model.Parameter) {
	if p == nil {
		return
	}

	if p.Ref != "" {
		if ref, ok := model.ParseReference(p.Ref); ok {
			c.insertParameter(ref.Name)
			return
		}
		return
	}

	c.walkSchema(p.Schema)
	for _, mt := range p.Content {
		c.walkMediaType(mt)
	}
}

func (c *closure) walkRequestBody(rb *model.RequestBody) {
	if rb == nil {
		return
	}

	if rb.Ref != "" {
		if ref, ok := model.ParseReference(rb.Ref); ok {
			c.insertRequestBody(ref.Name)
			return
		}
		return
	}

	for _, name := range sortedKeys(rb.Content) {
		c.walkMediaType(rb.Content[name])
	}
}

func (c *closure) walkResponse(r *model.Response) {
	if r == nil {
		return
	}

	if r.Ref != "" {
		if ref, ok := model.ParseReference(r.Ref); ok {
			c.insertResponse(ref.Name)
			return
		}
		return
	}

	for _, name := range sortedKeys(r.Content) {
		c.walkMediaType(r.Content[name])
	}
	for _, name := range sortedKeys(r.Headers) {
		c.walkHeader(r.Headers[name])
	}
	for _, name := range sortedKeys(r.Links) {
		c.walkLink(r.Links[name])
	}
}

func (c *closure) walkHeader(h *model.Header) {
	if h == nil {
		return
	}

	if h.Ref != "" {
		if ref, ok := model.ParseReference(h.Ref); ok {
			c.insertHeader(ref.Name)
			return
		}
		return
	}

	c.walkSchema(h.Schema)
	for _, mt := range h.Content {
		c.walkMediaType(mt)
	}
}

func (c *closure) walkLink(l *model.Link) {
	if l == nil {
		return
	}

	if l.Ref != "" {
		if ref, ok := model.ParseReference(l.Ref); ok {
			c.insertLink(ref.Name)
		}
	}
}

func (c *closure) walkCallback(cb *model.Callback) {
	if cb == nil {
		return
	}

	if cb.Ref != "" {
		if ref, ok := model.ParseReference(cb.Ref); ok {
			c.insertCallback(ref.Name)
			return
		}
		return
	}

	for _, expr := range sortedKeys(cb.PathItems) {
		c.walkPathItem(cb.PathItems[expr])
	}
}

func (c *closure) walkMediaType(mt *model.MediaType) {
	if mt == nil {
		return
	}

	c.walkSchema(mt.Schema)
	for _, name := range sortedKeys(mt.Examples) {
		c.walkExample(mt.Examples[name])
	}
	for _, name := range sortedKeys(mt.Encoding) {
		for _, hname := range sortedKeys(mt.Encoding[name].Headers) {
			c.walkHeader(mt.Encoding[name].Headers[hname])
		}
	}
}

func (c *closure) walkExample(ex *model.Example) {
	if ex == nil {
		return
	}

	if ex.Ref != "" {
		if ref, ok := model.ParseReference(ex.Ref); ok {
			c.insertExample(ref.Name)
		}
	}
}

func (c *closure) walkSchema(s *model.Schema) {
	if s == nil {
		return
	}

	if s.Ref != "" {
		if ref, ok := model.ParseReference(s.Ref); ok {
			c.insertSchema(ref.Name)
		}
		return
	}

	c.walkSchema(s.Items)
	if s.Additional != nil {
		c.walkSchema(s.Additional.Schema)
	}
	for _, name := range sortedKeys(s.Properties) {
		c.walkSchema(s.Properties[name])
	}
	for _, sub := range s.AllOf {
		c.walkSchema(sub)
	}
	for _, sub := range s.AnyOf {
		c.walkSchema(sub)
	}
	for _, sub := range s.OneOf {
		c.walkSchema(sub)
	}
	c.walkSchema(s.Not)
}

// insert* functions mark a component name in its kind's set and, the
// first time a name is newly inserted, recursively walk its resolved
// object so transitively reachable references are also included (spec
// §4.1's "terminating condition: no new references in any set").

func (c *closure) insertSchema(name string) {
	if c.schemas[name] {
		return
	}
	c.schemas[name] = true

	if s, ok := c.doc.Components.Schemas[name]; ok {
		c.walkSchema(s)
	}
}

func (c *closure) insertParameter(name string) {
	if c.parameters[name] {
		return
	}
	c.parameters[name] = true

	if p, ok := c.doc.Components.Parameters[name]; ok {
		c.walkSchema(p.Schema)
		for _, mt := range p.Content {
			c.walkMediaType(mt)
		}
	}
}

func (c *closure) insertHeader(name string) {
	if c.headers[name] {
		return
	}
	c.headers[name] = true

	if h, ok := c.doc.Components.Headers[name]; ok {
		c.walkSchema(h.Schema)
		for _, mt := range h.Content {
			c.walkMediaType(mt)
		}
	}
}

func (c *closure) insertResponse(name string) {
	if c.responses[name] {
		return
	}
	c.responses[name] = true

	if r, ok := c.doc.Components.Responses[name]; ok {
		for _, mname := range sortedKeys(r.Content) {
			c.walkMediaType(r.Content[mname])
		}
		for _, hname := range sortedKeys(r.Headers) {
			c.walkHeader(r.Headers[hname])
		}
		for _, lname := range sortedKeys(r.Links) {
			c.walkLink(r.Links[lname])
		}
	}
}

func (c *closure) insertRequestBody(name string) {
	if c.requestBodies[name] {
		return
	}
	c.requestBodies[name] = true

	if rb, ok := c.doc.Components.RequestBodies[name]; ok {
		for _, mname := range sortedKeys(rb.Content) {
			c.walkMediaType(rb.Content[mname])
		}
	}
}

func (c *closure) insertCallback(name string) {
	if c.callbacks[name] {
		return
	}
	c.callbacks[name] = true

	if cb, ok := c.doc.Components.Callbacks[name]; ok {
		for _, expr := range sortedKeys(cb.PathItems) {
			c.walkPathItem(cb.PathItems[expr])
		}
	}
}

func (c *closure) insertExample(name string) {
	c.examples[name] = true
}

func (c *closure) insertLink(name string) {
	c.links[name] = true
}

func (c *closure) insertPathItem(name string) {
	if c.pathItems[name] {
		return
	}
	c.pathItems[name] = true

	if item, ok := c.doc.Components.PathItems[name]; ok {
		c.walkPathItem(item)
	}
}
