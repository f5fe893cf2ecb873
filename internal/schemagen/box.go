package schemagen

import (
	"strings"

	"github.com/talav/oasgen/internal/ir"
	"github.com/talav/oasgen/internal/naming"
)

// schemaNameFor returns the #/components/schemas/<name> key tn was
// assigned from, if any. Only named component schemas can participate in
// a recursion cycle (spec §4.3 walks #/components/schemas exclusively),
// so inline positions never match.
func schemaNameFor(tn naming.TypeName) (string, bool) {
	const prefix = "#/components/schemas/"

	pointer := tn.Pointer()
	if !strings.HasPrefix(pointer, prefix) {
		return "", false
	}

	return strings.TrimPrefix(pointer, prefix), true
}

// isBoxed reports whether tn is the cycle-breaking node applyStructBoxing
// would rewrite. A hand-written Codable conformance that assigns
// self.<property> directly cannot coexist with that rewrite, since boxing
// turns every stored property but _storage into a get-only computed
// forwarder; callers that would otherwise emit one skip it for a boxed
// schema.
func (t *Translator) isBoxed(tn naming.TypeName) bool {
	name, ok := schemaNameFor(tn)
	return ok && t.boxed.Boxed(name)
}

// applyStructBoxing wraps s's stored properties behind a private nested
// Storage class when the recursion detector selected this schema as the
// cycle-breaking node (spec §4.3). Swift enums get the language's native
// `indirect` keyword; structs have no equivalent, so the generator
// approximates heap indirection the way a hand-written copy-on-write
// wrapper would: the stored fields move onto a private reference type,
// and the struct's public members become computed properties that
// forward to it.
func (t *Translator) applyStructBoxing(tn naming.TypeName, s ir.Struct) ir.Struct {
	name, ok := schemaNameFor(tn)
	if !ok || !t.boxed.Boxed(name) {
		return s
	}

	stored := make([]ir.Declaration, 0, len(s.Members))
	forwarded := make([]ir.Declaration, 0, len(s.Members))

	for _, m := range s.Members {
		v, ok := m.(ir.Variable)
		if !ok {
			// Nested declarations (CodingKeys, inline payload types) stay
			// on the outer struct; only stored properties move into
			// Storage.
			forwarded = append(forwarded, m)
			continue
		}

		stored = append(stored, ir.Variable{Name: v.Name, Access: "", Kind: "var", Type: v.Type})
		forwarded = append(forwarded, ir.Variable{
			Name:   v.Name,
			Access: v.Access,
			Kind:   "var",
			Type:   v.Type,
			Body: []ir.CodeBlock{
				ir.ExpressionBlock(ir.MemberAccess{
					Base:   ir.MemberAccess{Base: ir.Identifier{Name: "self"}, Member: "_storage"},
					Member: v.Name,
				}),
			},
		})
	}

	storage := ir.Struct{
		Name:         "Storage",
		Access:       "private",
		Conformances: []string{"Codable", "Hashable"},
		Members:      stored,
	}

	members := append([]ir.Declaration{storage, ir.Variable{Name: "_storage", Access: "private", Kind: "var", Type: "Storage"}}, forwarded...)

	return ir.Struct{Name: s.Name, Access: s.Access, Conformances: s.Conformances, Members: members}
}

// applyEnumBoxing marks e Indirect when the recursion detector selected
// this schema as the cycle-breaking node; Swift's native `indirect`
// keyword handles heap indirection for enum cases directly, unlike
// structs.
func (t *Translator) applyEnumBoxing(tn naming.TypeName, e ir.Enum) ir.Enum {
	name, ok := schemaNameFor(tn)
	if !ok || !t.boxed.Boxed(name) {
		return e
	}

	e.Indirect = true

	return e
}
