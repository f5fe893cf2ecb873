// Package filter implements the document filter of spec §4.1: given a
// document and a filter spec (tags, paths, operationIDs, schema names), it
// produces a reduced document whose components are the transitive closure
// of references reachable from the retained paths plus the explicitly
// named schemas. Grounded on the teacher's sortSpec/processOperations
// pass over *model.Spec in api.go, generalized from a single build-time
// pass into a standalone, reusable closure walker.
package filter

import (
	"fmt"
	"sort"

	"github.com/talav/oasgen/config"
	"github.com/talav/oasgen/model"
	"github.com/talav/oasgen/oaserr"
)

// closure accumulates the reachable reference sets while walking the
// document. Each set is keyed by component name within its kind.
type closure struct {
	doc *model.Document

	schemas       map[string]bool
	parameters    map[string]bool
	headers       map[string]bool
	responses     map[string]bool
	requestBodies map[string]bool
	callbacks     map[string]bool
	examples      map[string]bool
	links         map[string]bool
	pathItems     map[string]bool

	matchedTags    map[string]bool
	matchedPaths   map[string]bool
	matchedOpIDs   map[string]bool
	matchedSchemas map[string]bool
}

func newClosure(doc *model.Document) *closure {
	return &closure{
		doc:            doc,
		schemas:        map[string]bool{},
		parameters:     map[string]bool{},
		headers:        map[string]bool{},
		responses:      map[string]bool{},
		requestBodies:  map[string]bool{},
		callbacks:      map[string]bool{},
		examples:       map[string]bool{},
		links:          map[string]bool{},
		pathItems:      map[string]bool{},
		matchedTags:    map[string]bool{},
		matchedPaths:   map[string]bool{},
		matchedOpIDs:   map[string]bool{},
		matchedSchemas: map[string]bool{},
	}
}

// Apply runs the document filter described in spec §4.1 and returns the
// reduced document. A zero-valued spec retains every path, and its
// components are still reduced to the closure reachable from those paths.
func Apply(doc *model.Document, spec config.Filter) (*model.Document, error) {
	if doc == nil {
		return nil, nil
	}

	c := newClosure(doc)

	pathFilterActive := len(spec.Tags) > 0 || len(spec.Paths) > 0 || len(spec.OperationIDs) > 0

	retained, err := c.selectEndpoints(spec, pathFilterActive)
	if err != nil {
		return nil, err
	}

	for _, name := range spec.Schemas {
		if _, ok := doc.Components.Schemas[name]; !ok {
			return nil, fmt.Errorf("filter: schema %q: %w", name, oaserr.ErrFilterTargetNotFound)
		}
		c.matchedSchemas[name] = true
		c.insertSchema(name)
	}

	if err := c.checkTargetsMatched(spec); err != nil {
		return nil, err
	}

	return c.assemble(retained, pathFilterActive)
}

// endpointSelection records, per path, the set of retained HTTP methods.
// A nil method set means "path item's own Endpoints() were not filtered
// method-by-method" (the no-path-filter case); a path named outright gets a
// method set holding every one of its endpoints.
type endpointSelection struct {
	methods map[string]bool
}

func (c *closure) selectEndpoints(spec config.Filter, active bool) (map[string]*endpointSelection, error) {
	retained := map[string]*endpointSelection{}

	paths := sortedKeys(c.doc.Paths)
	for _, path := range paths {
		item := c.doc.Paths[path]

		resolved, err := c.resolvePathItem(item)
		if err != nil {
			return nil, err
		}

		if !active {
			retained[path] = &endpointSelection{}
			c.walkPathItem(resolved)
			continue
		}

		sel := &endpointSelection{methods: map[string]bool{}}
		for _, ep := range resolved.Endpoints() {
			if !endpointMatches(path, ep, spec, c) {
				continue
			}
			sel.methods[ep.Method] = true
			c.walkOperation(ep.Operation)
		}

		if len(sel.methods) > 0 {
			retained[path] = sel
		}
	}

	return retained, nil
}

func endpointMatches(path string, ep model.Endpoint, spec config.Filter, c *closure) bool {
	matched := false

	for _, p := range spec.Paths {
		if p == path {
			c.matchedPaths[p] = true
			matched = true
		}
	}

	for _, tag := range ep.Operation.Tags {
		for _, want := range spec.Tags {
			if tag == want {
				c.matchedTags[want] = true
				matched = true
			}
		}
	}

	for _, want := range spec.OperationIDs {
		if ep.Operation.OperationID == want {
			c.matchedOpIDs[want] = true
			matched = true
		}
	}

	return matched
}

func (c *closure) checkTargetsMatched(spec config.Filter) error {
	for _, p := range spec.Paths {
		if !c.matchedPaths[p] {
			return fmt.Errorf("filter: path %q: %w", p, oaserr.ErrFilterTargetNotFound)
		}
	}
	for _, tag := range spec.Tags {
		if !c.matchedTags[tag] {
			return fmt.Errorf("filter: tag %q: %w", tag, oaserr.ErrFilterTargetNotFound)
		}
	}
	for _, id := range spec.OperationIDs {
		if !c.matchedOpIDs[id] {
			return fmt.Errorf("filter: operationID %q: %w", id, oaserr.ErrFilterTargetNotFound)
		}
	}

	return nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	return keys
}
