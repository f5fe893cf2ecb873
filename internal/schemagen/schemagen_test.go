package schemagen_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talav/oasgen/config"
	"github.com/talav/oasgen/diagnostic"
	"github.com/talav/oasgen/internal/ir"
	"github.com/talav/oasgen/internal/naming"
	"github.com/talav/oasgen/internal/recursion"
	"github.com/talav/oasgen/internal/render"
	"github.com/talav/oasgen/internal/schemagen"
	"github.com/talav/oasgen/model"
)

func newTranslator(doc *model.Document, boxed recursion.Result) (*schemagen.Translator, *diagnostic.Collector) {
	diags := diagnostic.NewCollector()
	return schemagen.New(doc, boxed, config.Default(), diags), diags
}

func render1(decl ir.Declaration) string {
	return render.File(&ir.File{Blocks: []ir.CodeBlock{ir.DeclarationBlock(decl)}})
}

func TestTranslateComponents_ObjectWithProperties(t *testing.T) {
	doc := &model.Document{
		Components: &model.Components{
			Schemas: map[string]*model.Schema{
				"Pet": {
					Type:       "object",
					Properties: map[string]*model.Schema{"name": {Type: "string"}, "age": {Type: "integer", Format: "int32"}},
					Required:   []string{"name"},
				},
			},
		},
	}

	tr, _ := newTranslator(doc, recursion.Result{})
	blocks := tr.TranslateComponents()
	require.Len(t, blocks, 1)

	out := render.File(&ir.File{Blocks: blocks})
	assert.Contains(t, out, "struct Pet")
	assert.Contains(t, out, "var name: String")
	assert.Contains(t, out, "var age: Int32?")
	assert.Contains(t, out, "enum CodingKeys")
	assert.Contains(t, out, "Generated from #/components/schemas/Pet.")
}

func TestTranslateComponents_StringEnum(t *testing.T) {
	doc := &model.Document{
		Components: &model.Components{
			Schemas: map[string]*model.Schema{
				"Habitat": {Type: "string", Enum: []any{"forest", "ocean"}},
			},
		},
	}

	tr, _ := newTranslator(doc, recursion.Result{})
	blocks := tr.TranslateComponents()
	out := render.File(&ir.File{Blocks: blocks})

	assert.Contains(t, out, "enum Habitat")
	assert.Contains(t, out, "case forest")
	assert.Contains(t, out, "case ocean")
	assert.Contains(t, out, "case undocumented(String)")
}

func TestTranslateComponents_OneOfWithDiscriminator(t *testing.T) {
	doc := &model.Document{
		Components: &model.Components{
			Schemas: map[string]*model.Schema{
				"Walk":              {Type: "object", Properties: map[string]*model.Schema{"kind": {Type: "string"}}},
				"MessagedExercise":  {Type: "object", Properties: map[string]*model.Schema{"kind": {Type: "string"}}},
				"Exercise": {
					OneOf: []*model.Schema{
						{Ref: "#/components/schemas/Walk"},
						{Ref: "#/components/schemas/MessagedExercise"},
					},
					Discriminator: &model.Discriminator{PropertyName: "kind"},
				},
			},
		},
	}

	tr, _ := newTranslator(doc, recursion.Result{})
	blocks := tr.TranslateComponents()
	out := render.File(&ir.File{Blocks: blocks})

	assert.Contains(t, out, "enum Exercise")
	assert.Contains(t, out, "case walk(Components.Schemas.Walk)")
	assert.Contains(t, out, "case messagedExercise(Components.Schemas.MessagedExercise)")
	assert.Contains(t, out, "case undocumented(String)")
	assert.Contains(t, out, `Discriminated by the "kind" property`)
}

func TestTranslateComponents_RecursiveSchemaIsBoxed(t *testing.T) {
	doc := &model.Document{
		Components: &model.Components{
			Schemas: map[string]*model.Schema{
				"RecursivePet": {
					Type: "object",
					Properties: map[string]*model.Schema{
						"name":   {Type: "string"},
						"parent": {Ref: "#/components/schemas/RecursivePet"},
					},
					Required: []string{"name"},
				},
			},
		},
	}

	boxed := recursion.Result{Boxed: map[string]bool{"RecursivePet": true}}
	tr, _ := newTranslator(doc, boxed)
	blocks := tr.TranslateComponents()
	out := render.File(&ir.File{Blocks: blocks})

	assert.Contains(t, out, "struct Storage")
	assert.Contains(t, out, "var _storage: Storage")
	assert.Contains(t, out, "var parent: Components.Schemas.RecursivePet?")
}

func TestTranslateComponents_AllOfFlattensIntoOneStruct(t *testing.T) {
	doc := &model.Document{
		Components: &model.Components{
			Schemas: map[string]*model.Schema{
				"Named": {Type: "object", Properties: map[string]*model.Schema{"name": {Type: "string"}}, Required: []string{"name"}},
				"Pet": {
					AllOf: []*model.Schema{
						{Ref: "#/components/schemas/Named"},
						{Type: "object", Properties: map[string]*model.Schema{"age": {Type: "integer", Format: "int32"}}},
					},
				},
			},
		},
	}

	tr, _ := newTranslator(doc, recursion.Result{})
	blocks := tr.TranslateComponents()
	out := render.File(&ir.File{Blocks: blocks})

	assert.Contains(t, out, "struct Pet")
	assert.Contains(t, out, "var named: Components.Schemas.Named")
	assert.Contains(t, out, "var age: Int32?")
}

func TestTranslateComponents_AllOfWithSiblingPropertiesFoldsInAndWarns(t *testing.T) {
	doc := &model.Document{
		Components: &model.Components{
			Schemas: map[string]*model.Schema{
				"Named": {Type: "object", Properties: map[string]*model.Schema{"name": {Type: "string"}}, Required: []string{"name"}},
				"Pet": {
					AllOf:      []*model.Schema{{Ref: "#/components/schemas/Named"}},
					Properties: map[string]*model.Schema{"age": {Type: "integer", Format: "int32"}},
					Required:   []string{"age"},
				},
			},
		},
	}

	tr, diags := newTranslator(doc, recursion.Result{})
	blocks := tr.TranslateComponents()
	out := render.File(&ir.File{Blocks: blocks})

	assert.Contains(t, out, "struct Pet")
	assert.Contains(t, out, "var named: Components.Schemas.Named")
	assert.Contains(t, out, "var age: Int32")
	assert.True(t, diags.Has(diagnostic.CodeSchemaSiblingOfAllOf))
	assert.False(t, diags.HasError())
}

func TestTranslateComponents_DeprecatedSchemaIsWrapped(t *testing.T) {
	doc := &model.Document{
		Components: &model.Components{
			Schemas: map[string]*model.Schema{
				"OldThing": {Type: "string", Deprecated: true},
			},
		},
	}

	tr, _ := newTranslator(doc, recursion.Result{})
	blocks := tr.TranslateComponents()
	out := render.File(&ir.File{Blocks: blocks})

	assert.Contains(t, out, "OldThing is deprecated")
}

func TestTranslateComponents_AnyOfProducesOptionalMembers(t *testing.T) {
	doc := &model.Document{
		Components: &model.Components{
			Schemas: map[string]*model.Schema{
				"Dog": {Type: "object", Properties: map[string]*model.Schema{"name": {Type: "string"}}},
				"Cat": {Type: "object", Properties: map[string]*model.Schema{"name": {Type: "string"}}},
				"DogOrCat": {
					AnyOf: []*model.Schema{
						{Ref: "#/components/schemas/Dog"},
						{Ref: "#/components/schemas/Cat"},
					},
				},
			},
		},
	}

	tr, _ := newTranslator(doc, recursion.Result{})
	blocks := tr.TranslateComponents()
	out := render.File(&ir.File{Blocks: blocks})

	assert.Contains(t, out, "struct DogOrCat")
	assert.Contains(t, out, "var dog: Components.Schemas.Dog?")
	assert.Contains(t, out, "var cat: Components.Schemas.Cat?")
}

func TestTranslateComponents_ArrayAndMapTypealiases(t *testing.T) {
	doc := &model.Document{
		Components: &model.Components{
			Schemas: map[string]*model.Schema{
				"PetList": {Type: "array", Items: &model.Schema{Type: "string"}},
				"PetMap":  {Type: "object", Additional: &model.Additional{Schema: &model.Schema{Type: "string"}}},
			},
		},
	}

	tr, _ := newTranslator(doc, recursion.Result{})
	blocks := tr.TranslateComponents()
	out := render.File(&ir.File{Blocks: blocks})

	assert.Contains(t, out, "typealias PetList = [String]")
	assert.Contains(t, out, "typealias PetMap = [String: String]")
}

func TestTranslateComponents_VendorOverrideEmitsTypealias(t *testing.T) {
	doc := &model.Document{
		Components: &model.Components{
			Schemas: map[string]*model.Schema{
				"Money": {Type: "string", ReplaceType: "Foundation.Decimal"},
			},
		},
	}

	tr, _ := newTranslator(doc, recursion.Result{})
	blocks := tr.TranslateComponents()
	out := render.File(&ir.File{Blocks: blocks})

	assert.Contains(t, out, "typealias Money = Foundation.Decimal")
}

func TestTranslateComponents_ExternalReferenceIsFatalDiagnostic(t *testing.T) {
	doc := &model.Document{
		Components: &model.Components{
			Schemas: map[string]*model.Schema{
				"Bad": {Ref: "external.yaml#/Foo"},
			},
		},
	}

	tr, diags := newTranslator(doc, recursion.Result{})
	tr.TranslateComponents()

	assert.True(t, diags.Has(diagnostic.CodeExternalReference))
	assert.True(t, diags.HasError())
}

func TestTranslatePosition_InlineObjectGetsNestedDeclaration(t *testing.T) {
	doc := &model.Document{Components: &model.Components{Schemas: map[string]*model.Schema{}}}
	tr, _ := newTranslator(doc, recursion.Result{})

	parent := naming.Root("Components").
		Appending("Schemas", "#/components/schemas").
		Appending("Person", "#/components/schemas/Person")

	inline := &model.Schema{Type: "object", Properties: map[string]*model.Schema{"street": {Type: "string"}}, Required: []string{"street"}}
	typeExpr, nested := tr.TranslatePosition(parent, "address", "#/components/schemas/Person/properties/address", inline, true)

	assert.Equal(t, "Components.Schemas.Person.Address", typeExpr)
	require.NotNil(t, nested)
	assert.Contains(t, render1(nested), "struct Address")
}
