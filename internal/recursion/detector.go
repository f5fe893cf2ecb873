// Package recursion implements the recursion detector of spec §4.3: an
// iterative depth-first walk over the graph of named component schemas
// that selects the minimum set of "boxed" types needed to break every
// cycle of unbreakable (non-array, non-map) references. Iterative DFS is
// mandatory per spec §4.3 ("schemas can nest to depths that blow a native
// call stack"); grounded in shape on the teacher's iterative-closure style
// in internal/build/schema.go's cache-driven recursion guards, generalized
// to an explicit stack since the teacher's own recursion guard is a depth
// counter rather than a cycle-boxing algorithm.
package recursion

import (
	"fmt"
	"sort"

	"github.com/talav/oasgen/model"
	"github.com/talav/oasgen/oaserr"
)

// Result is the outcome of running the detector over a document's named
// schemas: the set of type names that must carry heap indirection.
type Result struct {
	Boxed map[string]bool
}

// Boxed reports whether the named component schema must be boxed.
func (r Result) Boxed(name string) bool {
	return r.Boxed[name]
}

type frame struct {
	name string
	idx  int
}

// Detect runs the recursion detector over doc's #/components/schemas and
// returns the boxed set, or a wrapped oaserr.ErrUnbreakableRecursion if
// some cycle has no boxable participant.
func Detect(doc *model.Document) (Result, error) {
	if doc == nil || doc.Components == nil {
		return Result{Boxed: map[string]bool{}}, nil
	}

	names := sortedSchemaNames(doc.Components.Schemas)
	edges := buildEdges(doc.Components.Schemas, names)

	d := &detector{
		edges:      edges,
		boxable:    buildBoxable(doc.Components.Schemas),
		boxed:      map[string]bool{},
		globalSeen: map[string]bool{},
	}

	for _, root := range names {
		if d.globalSeen[root] {
			continue
		}
		if err := d.walk(root); err != nil {
			return Result{}, err
		}
	}

	return Result{Boxed: d.boxed}, nil
}

type detector struct {
	edges      map[string][]string
	boxable    map[string]bool
	boxed      map[string]bool
	globalSeen map[string]bool
}

// walk performs one iterative DFS rooted at root, boxing the first
// boxable member of every cycle it discovers.
func (d *detector) walk(root string) error {
	stack := []frame{{name: root}}
	onStack := map[string]int{root: 0}

	for len(stack) > 0 {
		top := &stack[len(stack)-1]
		refs := d.edges[top.name]

		if top.idx >= len(refs) {
			delete(onStack, top.name)
			d.globalSeen[top.name] = true
			stack = stack[:len(stack)-1]
			continue
		}

		next := refs[top.idx]
		top.idx++

		if d.globalSeen[next] {
			continue
		}

		if pos, onS := onStack[next]; onS {
			cycle := namesFromFrames(stack[pos:])
			chosen := d.firstBoxable(cycle)
			if chosen == "" {
				return fmt.Errorf("recursion: cycle %v: %w", cycle, oaserr.ErrUnbreakableRecursion)
			}
			d.boxed[chosen] = true
			d.globalSeen[chosen] = true
			continue
		}

		stack = append(stack, frame{name: next})
		onStack[next] = len(stack) - 1
	}

	return nil
}

// firstBoxable returns the first node in cycle that is already boxed (the
// cycle is already broken) or is boxable and not yet boxed; empty if
// neither exists, meaning the cycle is unbreakable.
func (d *detector) firstBoxable(cycle []string) string {
	for _, n := range cycle {
		if d.boxed[n] || d.boxable[n] {
			return n
		}
	}

	return ""
}

func namesFromFrames(frames []frame) []string {
	names := make([]string, len(frames))
	for i, f := range frames {
		names[i] = f.name
	}

	return names
}

func sortedSchemaNames(schemas map[string]*model.Schema) []string {
	names := make([]string, 0, len(schemas))
	for name := range schemas {
		names = append(names, name)
	}
	sort.Strings(names)

	return names
}

// buildBoxable decides, per named schema, whether it is a candidate for
// boxing: a product type (object-with-properties, allOf) or a sum type
// with associated values (anyOf, oneOf). A typealias-only schema (plain
// $ref, array, map, enum-without-payload, builtin) is never boxable.
func buildBoxable(schemas map[string]*model.Schema) map[string]bool {
	boxable := make(map[string]bool, len(schemas))
	for name, s := range schemas {
		boxable[name] = isBoxableShape(s)
	}

	return boxable
}

func isBoxableShape(s *model.Schema) bool {
	if s == nil || s.Ref != "" {
		return false
	}

	return len(s.Properties) > 0 || len(s.AllOf) > 0 || len(s.AnyOf) > 0 || len(s.OneOf) > 0
}

// buildEdges computes, for every named schema, its direct unbreakable
// outgoing references: property values, and allOf/anyOf/oneOf members,
// that are themselves a bare $ref to another named schema. References
// reached only through an array's items or a map's additionalProperties
// already carry indirection and are not edges (spec §4.3).
func buildEdges(schemas map[string]*model.Schema, names []string) map[string][]string {
	edges := make(map[string][]string, len(schemas))
	for _, name := range names {
		edges[name] = directRefs(schemas[name])
	}

	return edges
}

func directRefs(s *model.Schema) []string {
	if s == nil {
		return nil
	}

	if ref := refName(s); ref != "" {
		return []string{ref}
	}

	var refs []string

	propNames := make([]string, 0, len(s.Properties))
	for name := range s.Properties {
		propNames = append(propNames, name)
	}
	sort.Strings(propNames)

	for _, name := range propNames {
		if ref := refName(s.Properties[name]); ref != "" {
			refs = append(refs, ref)
		}
	}

	for _, groups := range [][]*model.Schema{s.AllOf, s.AnyOf, s.OneOf} {
		for _, member := range groups {
			if ref := refName(member); ref != "" {
				refs = append(refs, ref)
			}
		}
	}

	return refs
}

func refName(s *model.Schema) string {
	if s == nil || s.Ref == "" {
		return ""
	}

	ref, ok := model.ParseReference(s.Ref)
	if !ok || ref.Kind != model.KindSchemas {
		return ""
	}

	return ref.Name
}
