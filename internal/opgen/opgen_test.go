package opgen_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talav/oasgen/config"
	"github.com/talav/oasgen/diagnostic"
	"github.com/talav/oasgen/internal/ir"
	"github.com/talav/oasgen/internal/opgen"
	"github.com/talav/oasgen/internal/recursion"
	"github.com/talav/oasgen/internal/render"
	"github.com/talav/oasgen/model"
)

func newTranslator(doc *model.Document) (*opgen.Translator, *diagnostic.Collector) {
	diags := diagnostic.NewCollector()
	return opgen.New(doc, recursion.Result{}, config.Default(), diags), diags
}

func listPetsDoc() *model.Document {
	return &model.Document{
		Components: &model.Components{Schemas: map[string]*model.Schema{
			"Pet": {Type: "object", Properties: map[string]*model.Schema{"name": {Type: "string"}}, Required: []string{"name"}},
		}},
		Paths: map[string]*model.PathItem{
			"/pets": {
				Get: &model.Operation{
					OperationID: "listPets",
					Parameters: []model.Parameter{
						{Name: "limit", In: "query", Schema: &model.Schema{Type: "integer", Format: "int32"}},
						{Name: "habitat", In: "query", Schema: &model.Schema{Type: "string", Enum: []any{"forest", "ocean"}}},
					},
					Responses: map[string]*model.Response{
						"200": {
							Content: map[string]*model.MediaType{
								"application/json": {Schema: &model.Schema{Type: "array", Items: &model.Schema{Ref: "#/components/schemas/Pet"}}},
							},
						},
					},
				},
			},
		},
	}
}

func TestTranslateOperations_ListPetsScenario(t *testing.T) {
	doc := listPetsDoc()
	tr, _ := newTranslator(doc)

	blocks, err := tr.TranslateOperations()
	require.NoError(t, err)
	require.Len(t, blocks, 1)

	out := render.File(&ir.File{Blocks: blocks})

	assert.Contains(t, out, "enum listPets")
	assert.Contains(t, out, "var limit: Int32?")
	assert.Contains(t, out, "var habitat: Habitat?")
	assert.Contains(t, out, "struct Query")
	assert.Contains(t, out, "case ok(")
	assert.Contains(t, out, "case json([Components.Schemas.Pet])")
}

func TestTranslateOperations_DuplicateOperationIDIsFatal(t *testing.T) {
	doc := &model.Document{
		Components: &model.Components{Schemas: map[string]*model.Schema{}},
		Paths: map[string]*model.PathItem{
			"/a": {Get: &model.Operation{OperationID: "dup", Responses: map[string]*model.Response{}}},
			"/b": {Get: &model.Operation{OperationID: "dup", Responses: map[string]*model.Response{}}},
		},
	}
	tr, _ := newTranslator(doc)

	_, err := tr.TranslateOperations()
	assert.Error(t, err)
}

func TestTranslateOperations_UnresolvedPathParameterIsFatal(t *testing.T) {
	doc := &model.Document{
		Components: &model.Components{Schemas: map[string]*model.Schema{}},
		Paths: map[string]*model.PathItem{
			"/pets/{petId}": {Get: &model.Operation{OperationID: "getPet", Responses: map[string]*model.Response{}}},
		},
	}
	tr, _ := newTranslator(doc)

	_, err := tr.TranslateOperations()
	assert.Error(t, err)
}

func TestTranslateOperations_CookieParameterDroppedWithWarning(t *testing.T) {
	doc := &model.Document{
		Components: &model.Components{Schemas: map[string]*model.Schema{}},
		Paths: map[string]*model.PathItem{
			"/pets": {
				Get: &model.Operation{
					OperationID: "listPets",
					Parameters: []model.Parameter{
						{Name: "session", In: "cookie", Schema: &model.Schema{Type: "string"}},
						{Name: "limit", In: "query", Schema: &model.Schema{Type: "integer", Format: "int32"}},
					},
					Responses: map[string]*model.Response{},
				},
			},
		},
	}
	tr, diags := newTranslator(doc)

	blocks, err := tr.TranslateOperations()
	require.NoError(t, err)

	out := render.File(&ir.File{Blocks: blocks})
	assert.True(t, diags.Has(diagnostic.CodeUnsupportedCookieParameter))
	assert.NotContains(t, out, "struct Cookies")
	assert.Contains(t, out, "struct Query")
	assert.Contains(t, out, "var limit: Int32?")
}

func TestTranslateOperations_DeprecatedOperationIsWrapped(t *testing.T) {
	doc := &model.Document{
		Components: &model.Components{Schemas: map[string]*model.Schema{}},
		Paths: map[string]*model.PathItem{
			"/pets": {Get: &model.Operation{OperationID: "listPets", Deprecated: true, Responses: map[string]*model.Response{}}},
		},
	}
	tr, _ := newTranslator(doc)

	blocks, err := tr.TranslateOperations()
	require.NoError(t, err)

	out := render.File(&ir.File{Blocks: blocks})
	assert.Contains(t, out, "deprecated")
}

func TestTranslateOperations_SecuritySchemesDocumentedOnInput(t *testing.T) {
	doc := &model.Document{
		Components: &model.Components{Schemas: map[string]*model.Schema{}},
		Paths: map[string]*model.PathItem{
			"/pets": {
				Get: &model.Operation{
					OperationID: "listPets",
					Security: []model.SecurityRequirement{
						{"apiKey": {}},
						{"oauth2": {"pets:read"}},
					},
					Responses: map[string]*model.Response{},
				},
			},
		},
	}
	tr, _ := newTranslator(doc)

	blocks, err := tr.TranslateOperations()
	require.NoError(t, err)

	out := render.File(&ir.File{Blocks: blocks})
	assert.Contains(t, out, "Requires security scheme(s): apiKey, oauth2.")
}

func TestTranslateOperations_ArrayHeaderParamCarriesExplodeToSerializer(t *testing.T) {
	doc := &model.Document{
		Components: &model.Components{Schemas: map[string]*model.Schema{}},
		Paths: map[string]*model.PathItem{
			"/pets": {
				Get: &model.Operation{
					OperationID: "listPets",
					Parameters: []model.Parameter{
						{Name: "tags", In: "header", Explode: true, Schema: &model.Schema{Type: "array", Items: &model.Schema{Type: "string"}}},
					},
					Responses: map[string]*model.Response{},
				},
			},
		},
	}
	tr, diags := newTranslator(doc)

	blocks, err := tr.TranslateOperations()
	require.NoError(t, err)
	assert.False(t, diags.Has(diagnostic.CodeUnsupportedParameterStyle))

	out := render.File(&ir.File{Blocks: blocks})
	assert.Contains(t, out, `("tags", true)`)
	assert.Contains(t, out, "arrayStyles")
}

func TestTranslateOperations_UndocumentedStatusReusesHeaderOnlyResponse(t *testing.T) {
	doc := &model.Document{
		Components: &model.Components{Schemas: map[string]*model.Schema{}},
		Paths: map[string]*model.PathItem{
			"/pets": {
				Get: &model.Operation{
					OperationID: "listPets",
					Responses: map[string]*model.Response{
						"default": {Headers: map[string]*model.Header{"X-Request-Id": {Schema: &model.Schema{Type: "string"}}}},
					},
				},
			},
		},
	}
	tr, _ := newTranslator(doc)

	blocks, err := tr.TranslateOperations()
	require.NoError(t, err)

	out := render.File(&ir.File{Blocks: blocks})
	assert.Contains(t, out, "response.rawHeaders")
}

func TestTranslateOperations_SynthesizesOperationIDWhenAbsent(t *testing.T) {
	doc := &model.Document{
		Components: &model.Components{Schemas: map[string]*model.Schema{}},
		Paths: map[string]*model.PathItem{
			"/pets": {Get: &model.Operation{Responses: map[string]*model.Response{}}},
		},
	}
	tr, _ := newTranslator(doc)

	blocks, err := tr.TranslateOperations()
	require.NoError(t, err)
	require.Len(t, blocks, 1)

	out := render.File(&ir.File{Blocks: blocks})
	assert.Contains(t, out, "enum getPets")
}
