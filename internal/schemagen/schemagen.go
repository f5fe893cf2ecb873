// Package schemagen implements the schema translator of spec §4.4: it
// emits a structured declaration (internal/ir) for every named component
// schema, recursively inlining any nested structured schema position that
// the type matcher (internal/typeinfo) says is not referenceable.
// Grounded on the teacher's internal/build/schema.go dispatch style
// (table-driven per-kind generation, doc comments naming the source),
// generalized from Go-reflection-driven generation to schema-driven
// generation, and on the teacher's debug.Warning for diagnostics.
package schemagen

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/talav/oasgen/config"
	"github.com/talav/oasgen/diagnostic"
	"github.com/talav/oasgen/internal/ir"
	"github.com/talav/oasgen/internal/naming"
	"github.com/talav/oasgen/internal/recursion"
	"github.com/talav/oasgen/internal/typeinfo"
	"github.com/talav/oasgen/model"
)

// Translator holds the shared context (document, boxed-type set,
// configuration, diagnostic sink) threaded through every schema
// translation call.
type Translator struct {
	doc   *model.Document
	boxed recursion.Result
	cfg   config.Config
	diags *diagnostic.Collector
}

// New builds a Translator.
func New(doc *model.Document, boxed recursion.Result, cfg config.Config, diags *diagnostic.Collector) *Translator {
	return &Translator{doc: doc, boxed: boxed, cfg: cfg, diags: diags}
}

// TranslateComponents emits one CodeBlock per named schema in
// #/components/schemas, in sorted order for determinism (spec §8).
func (t *Translator) TranslateComponents() []ir.CodeBlock {
	var blocks []ir.CodeBlock

	for _, name := range sortedSchemaNames(t.doc.Components.Schemas) {
		ref := model.Reference{Kind: model.KindSchemas, Name: name}
		tn := typeinfo.AssignReference(ref, t.cfg)

		schema := t.doc.Components.Schemas[name]
		primary, siblings := t.dispatch(tn, schema)

		var decl ir.Declaration = ir.Commentable{
			Comment: fmt.Sprintf("Generated from %s.", ref.String()),
			Inner:   primary,
		}
		if schema != nil && schema.Deprecated {
			decl = ir.Deprecated{Info: "schema " + name + " is deprecated", Inner: decl}
		}

		blocks = append(blocks, ir.DeclarationBlock(decl))
		for _, sib := range siblings {
			blocks = append(blocks, ir.DeclarationBlock(sib))
		}
	}

	return blocks
}

// TranslatePosition exposes the schema translator's nested-position
// resolution (spec §4.2) to the operation translator (internal/opgen),
// which needs the same builtin/reference/array/map/inline dispatch for
// parameter schemas and request/response bodies that object properties use
// here. nested is non-nil only when s required a freshly generated nested
// declaration (spec §4.4's "anything structured... must be inlined").
func (t *Translator) TranslatePosition(parent naming.TypeName, hint, pointer string, s *model.Schema, requiredHere bool) (typeExpr string, nested ir.Declaration) {
	pos := t.translatePosition(parent, hint, pointer, s, requiredHere)
	return pos.TypeExpr, pos.Nested
}

// position is the outcome of translating a schema at a nested (non-named)
// position: the type expression to use for a property/parameter/array
// element, and, when the position required a freshly generated nested
// declaration, that declaration.
type position struct {
	TypeExpr string
	Nested   ir.Declaration
}

// translatePosition translates schema s appearing nested inside parent
// under the given local name hint, dispatching on the type matcher's
// shape (spec §4.2): builtins and references need no new declaration;
// everything structured is inlined as a nested declaration named by the
// type assigner.
func (t *Translator) translatePosition(parent naming.TypeName, hint, pointer string, s *model.Schema, requiredHere bool) position {
	if s == nil {
		return position{TypeExpr: "OpenAPIValue"}
	}

	if override, ok := typeinfo.SchemaVendorOverride(s); ok {
		return position{TypeExpr: override}
	}

	match := typeinfo.MatchSchema(t.doc, s, requiredHere)

	switch match.Shape {
	case typeinfo.ShapeBuiltin:
		return position{TypeExpr: builtinTypeExpr(match.Builtin)}
	case typeinfo.ShapeReference:
		return position{TypeExpr: typeinfo.AssignReference(match.Reference, t.cfg).Dotted()}
	case typeinfo.ShapeArray:
		elem := t.translatePosition(parent, hint, pointer+"/items", s.Items, true)
		return position{TypeExpr: "[" + elem.TypeExpr + "]", Nested: elem.Nested}
	case typeinfo.ShapeMap:
		elem := t.translatePosition(parent, hint, pointer+"/additionalProperties", s.Additional.Schema, true)
		return position{TypeExpr: "[String: " + elem.TypeExpr + "]", Nested: elem.Nested}
	default: // ShapeInline
		tn := typeinfo.AssignInline(parent, hint, pointer, t.cfg)
		decl, siblings := t.dispatch(tn, s)
		// dispatch returns siblings only for array and map schemas, which
		// MatchSchema classifies as ShapeArray/ShapeMap and the cases above
		// handle, so an inline position has none; siblings is discarded.
		_ = siblings
		return position{TypeExpr: tn.Dotted(), Nested: decl}
	}
}

func sortedSchemaNames(schemas map[string]*model.Schema) []string {
	names := make([]string, 0, len(schemas))
	for name := range schemas {
		names = append(names, name)
	}
	sort.Strings(names)

	return names
}

func sortedStringKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	return keys
}

func containsString(list []string, want string) bool {
	for _, v := range list {
		if v == want {
			return true
		}
	}

	return false
}

// builtinTypeExpr renders a typeinfo.Builtin as the type expression the
// renderer emits.
func builtinTypeExpr(b typeinfo.Builtin) string {
	switch b {
	case typeinfo.BuiltinRawBody:
		return "RawBody"
	case typeinfo.BuiltinBase64Bytes:
		return "Base64Bytes"
	case typeinfo.BuiltinTimestamp:
		return "Date"
	case typeinfo.BuiltinInt32:
		return "Int32"
	case typeinfo.BuiltinInt64:
		return "Int64"
	case typeinfo.BuiltinFloat:
		return "Float"
	case typeinfo.BuiltinDouble:
		return "Double"
	case typeinfo.BuiltinBool:
		return "Bool"
	case typeinfo.BuiltinOpaqueObject:
		return "[String: OpenAPIValue]"
	case typeinfo.BuiltinOpaqueValue:
		return "OpenAPIValue"
	default:
		return "String"
	}
}

// literalExpr renders an arbitrary documented `enum`/`const`/`default`
// value as a raw-value literal token.
func literalExpr(v any) string {
	switch val := v.(type) {
	case string:
		return strconv.Quote(val)
	case nil:
		return "nil"
	default:
		return fmt.Sprintf("%v", val)
	}
}

func joinPointer(base, segment string) string {
	if base == "" {
		return segment
	}

	return strings.TrimRight(base, "/") + "/" + strings.TrimLeft(segment, "/")
}
