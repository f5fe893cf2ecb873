// Package opgen implements the operation translator of spec §4.5: for each
// operation it assembles an Input/Output namespace plus the client
// serializer/deserializer and server deserializer/serializer declarations
// that move values between the Input/Output types and the wire. Grounded on
// the schema translator's TypeName-driven dispatch style
// (internal/schemagen), keyed here by (path, method) rather than a named
// component schema, and reusing internal/schemagen's position translation
// for parameter schemas and request/response bodies so both translators
// agree on builtin mapping, inlining, and boxing.
package opgen

import (
	"fmt"
	"sort"
	"strings"

	"github.com/talav/oasgen/config"
	"github.com/talav/oasgen/diagnostic"
	"github.com/talav/oasgen/internal/ir"
	"github.com/talav/oasgen/internal/naming"
	"github.com/talav/oasgen/internal/recursion"
	"github.com/talav/oasgen/internal/schemagen"
	"github.com/talav/oasgen/model"
	"github.com/talav/oasgen/oaserr"
)

// Translator holds the shared context threaded through every operation
// translation call, mirroring internal/schemagen.Translator.
type Translator struct {
	doc    *model.Document
	cfg    config.Config
	diags  *diagnostic.Collector
	schema *schemagen.Translator
}

// New builds a Translator. boxed is the recursion detector's result,
// shared with the schema translator so request/response body positions box
// consistently with component schemas.
func New(doc *model.Document, boxed recursion.Result, cfg config.Config, diags *diagnostic.Collector) *Translator {
	return &Translator{
		doc:    doc,
		cfg:    cfg,
		diags:  diags,
		schema: schemagen.New(doc, boxed, cfg, diags),
	}
}

// TranslateOperations walks doc.Paths in sorted order and emits one
// CodeBlock per operation's namespace (spec §4.5). It returns a wrapped
// oaserr sentinel for any fatal structural condition (duplicate
// operationId, unresolved/missing path parameter) per spec §7.1.
func (t *Translator) TranslateOperations() ([]ir.CodeBlock, error) {
	var blocks []ir.CodeBlock
	seenOpIDs := map[string]bool{}

	for _, path := range sortedPathKeys(t.doc.Paths) {
		item := t.doc.Paths[path]
		if item == nil {
			continue
		}

		for _, ep := range item.Endpoints() {
			opID := ep.Operation.OperationID
			if opID == "" {
				opID = synthesizeOperationID(ep.Method, path)
			}

			if seenOpIDs[opID] {
				return nil, fmt.Errorf("opgen: operationId %q used by more than one operation: %w", opID, oaserr.ErrDuplicateOperation)
			}
			seenOpIDs[opID] = true

			if err := validatePathParameters(path, ep.Operation.Parameters); err != nil {
				return nil, err
			}

			block, err := t.translateOperation(path, ep.Method, opID, ep.Operation)
			if err != nil {
				return nil, err
			}
			blocks = append(blocks, block)
		}
	}

	return blocks, nil
}

// translateOperation builds the Operations.<opId> namespace for a single
// endpoint: Input, Output, AcceptableContentType, and the four transport
// closures (spec §4.5).
func (t *Translator) translateOperation(path, method, opID string, op *model.Operation) (ir.CodeBlock, error) {
	access := string(t.cfg.Access)
	pointer := operationPointer(path, method)

	// The operation namespace keeps the documented operationId's casing
	// (camelCase member-style, not PascalCase) per spec §8's listPets
	// scenario: "Operations.listPets.Input.Query", not "Operations.ListPets...".
	name := naming.Sanitize(opID, t.cfg.NamingStrategy, naming.Member, t.cfg.NameOverrides)
	ns := root().Appending(name, pointer)

	input, err := t.buildInput(ns, pointer, op)
	if err != nil {
		return ir.CodeBlock{}, err
	}

	output := t.buildOutput(ns, pointer, op)
	acceptable := t.buildAcceptableContentType(ns, op)

	members := []ir.Declaration{input, output}
	if acceptable != nil {
		members = append(members, acceptable)
	}
	members = append(members,
		t.clientSerializer(ns, path, op),
		t.clientDeserializer(ns, op),
		t.serverDeserializer(ns, path, op),
		t.serverSerializer(ns, op),
	)

	namespace := ir.Enum{Name: name, Access: access, Members: members}

	var decl ir.Declaration = ir.Commentable{
		Comment: fmt.Sprintf("Generated from %s %s.", method, path),
		Inner:   namespace,
	}
	if op.Deprecated {
		decl = ir.Deprecated{Info: "operation " + opID + " is deprecated", Inner: decl}
	}

	return ir.DeclarationBlock(decl), nil
}

// root is the fixed "Operations" TypeName every operation namespace hangs
// off of (spec §4.2).
func root() naming.TypeName {
	return naming.Root("Operations")
}

func sortedPathKeys(paths map[string]*model.PathItem) []string {
	keys := make([]string, 0, len(paths))
	for k := range paths {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	return keys
}

// synthesizeOperationID produces the "<method><path>" fallback operationId
// named in spec §3 when the document omits one. translateOperation
// sanitizes it as a member name, like a documented operationId: "/"
// splits words and "{"/"}" are escaped rather than dropped, so "get/pets"
// becomes the camelCase namespace "getPets".
func synthesizeOperationID(method, path string) string {
	return strings.ToLower(method) + path
}

// operationPointer renders the JSON pointer origin used for doc comments
// and TypeName provenance, escaping "/" within the path per RFC 6901.
func operationPointer(path, method string) string {
	escaped := strings.ReplaceAll(strings.ReplaceAll(path, "~", "~0"), "/", "~1")
	return "#/paths/" + escaped + "/" + strings.ToLower(method)
}

func joinPointer(base, segment string) string {
	if base == "" {
		return segment
	}

	return strings.TrimRight(base, "/") + "/" + strings.TrimLeft(segment, "/")
}

// pathSegment is one element of a parsed path template (spec §4.6): either
// a literal run of text or a "{name}" placeholder.
type pathSegment struct {
	Literal string
	Var     string
}

// parsePathTemplate splits path into literal and "{name}" placeholder
// segments per the grammar named in spec §4.6.
func parsePathTemplate(path string) []pathSegment {
	var segs []pathSegment

	i := 0
	for i < len(path) {
		start := strings.IndexByte(path[i:], '{')
		if start < 0 {
			segs = append(segs, pathSegment{Literal: path[i:]})
			break
		}
		start += i

		if start > i {
			segs = append(segs, pathSegment{Literal: path[i:start]})
		}

		end := strings.IndexByte(path[start:], '}')
		if end < 0 {
			segs = append(segs, pathSegment{Literal: path[start:]})
			break
		}
		end += start

		segs = append(segs, pathSegment{Var: path[start+1 : end]})
		i = end + 1
	}

	return segs
}

func pathTemplateVars(path string) []string {
	var vars []string
	for _, s := range parsePathTemplate(path) {
		if s.Var != "" {
			vars = append(vars, s.Var)
		}
	}

	return vars
}

// validatePathParameters enforces spec §4.6's path-parameter invariant: a
// template variable with no declared path parameter, and a declared path
// parameter absent from the template, are both fatal.
func validatePathParameters(path string, params []model.Parameter) error {
	declared := map[string]bool{}
	for _, p := range params {
		if p.In == "path" {
			declared[p.Name] = true
		}
	}

	inTemplate := map[string]bool{}
	for _, v := range pathTemplateVars(path) {
		inTemplate[v] = true
		if !declared[v] {
			return fmt.Errorf("opgen: path %q references undeclared path parameter %q: %w", path, v, oaserr.ErrUnresolvedPathParameter)
		}
	}

	for _, p := range params {
		if p.In == "path" && !inTemplate[p.Name] {
			return fmt.Errorf("opgen: path %q: declared path parameter %q does not appear in the path template: %w", path, p.Name, oaserr.ErrMissingPathParameter)
		}
	}

	return nil
}

func sortedStringKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	return keys
}
