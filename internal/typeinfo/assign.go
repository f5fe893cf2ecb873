package typeinfo

import (
	"github.com/talav/oasgen/config"
	"github.com/talav/oasgen/internal/naming"
	"github.com/talav/oasgen/model"
)

// kindNamespace is the fixed dotted-path segment for each component kind,
// per spec §4.2 ("Components.<KindNamespace>.<SafeName(name)>").
var kindNamespace = map[model.ComponentKind]string{
	model.KindSchemas:         "Schemas",
	model.KindParameters:      "Parameters",
	model.KindHeaders:         "Headers",
	model.KindResponses:       "Responses",
	model.KindRequestBodies:   "RequestBodies",
	model.KindCallbacks:       "Callbacks",
	model.KindExamples:        "Examples",
	model.KindLinks:           "Links",
	model.KindPathItems:       "PathItems",
	model.KindSecuritySchemes: "SecuritySchemes",
}

// ComponentsRoot is the fixed root TypeName every named component hangs
// off of.
func ComponentsRoot() naming.TypeName {
	return naming.Root("Components")
}

// OperationsRoot is the fixed root TypeName every operation's Input/Output
// namespace hangs off of (spec §4.5).
func OperationsRoot() naming.TypeName {
	return naming.Root("Operations")
}

// AssignReference computes the fixed dotted TypeName for a reference to a
// named component (spec §4.2's first resolution rule). The assigned name
// is unaffected by a vendor override: §4.2 has the generator emit a
// typealias from the assigned name to the external type, so downstream
// consumers keep referencing the assigned name regardless (see
// VendorOverride).
func AssignReference(ref model.Reference, cfg config.Config) naming.TypeName {
	safe := naming.Sanitize(ref.Name, cfg.NamingStrategy, naming.Type, cfg.NameOverrides)

	return ComponentsRoot().
		Appending(kindNamespace[ref.Kind], "#/components/"+string(ref.Kind)).
		Appending(safe, ref.String())
}

// AssignInline computes the TypeName for a schema nested inside parent at
// an unnamed (inline) position. hint is the documented property/parameter
// name, if any; an empty hint (an inline schema in an already-unnamed
// position, e.g. an array's items or a oneOf branch) gets the fixed
// "Payload" suffix per spec §4.2.
func AssignInline(parent naming.TypeName, hint, pointer string, cfg config.Config) naming.TypeName {
	name := hint
	if name == "" {
		name = "Payload"
	}

	safe := naming.Sanitize(name, cfg.NamingStrategy, naming.Type, cfg.NameOverrides)

	return parent.Appending(safe, pointer)
}

// VendorOverride returns the external dotted type name configured for ref
// via the driver's configuration (spec §6 typeOverrides), if any.
func VendorOverride(ref model.Reference, cfg config.Config) (string, bool) {
	name, ok := cfg.TypeOverrides[ref]
	return name, ok
}

// SchemaVendorOverride returns the external dotted type name the document
// itself declares for s (spec §3's per-schema "replace-type: X.Y.Z"), if
// any. A document-embedded override and a config-provided one (VendorOverride)
// are both routed to the same typealias-emission behavior by schemagen;
// the config override wins when both are present.
func SchemaVendorOverride(s *model.Schema) (string, bool) {
	if s == nil || s.ReplaceType == "" {
		return "", false
	}

	return s.ReplaceType, true
}
