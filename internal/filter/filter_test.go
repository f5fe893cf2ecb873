package filter_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talav/oasgen/config"
	"github.com/talav/oasgen/internal/filter"
	"github.com/talav/oasgen/model"
)

// petstoreDoc builds a small document with two endpoints on the same path,
// one tagged "pets" and one untagged, and a Pet schema reachable only from
// the tagged endpoint. This mirrors spec §8 scenario 5.
func petstoreDoc() *model.Document {
	petSchema := &model.Schema{
		Type: "object",
		Properties: map[string]*model.Schema{
			"name": {Type: "string"},
		},
	}

	ownerSchema := &model.Schema{
		Type: "object",
		Properties: map[string]*model.Schema{
			"name": {Type: "string"},
		},
	}

	return &model.Document{
		Paths: map[string]*model.PathItem{
			"/pets": {
				Get: &model.Operation{
					OperationID: "listPets",
					Tags:        []string{"pets"},
					Responses: map[string]*model.Response{
						"200": {
							Content: map[string]*model.MediaType{
								"application/json": {
									Schema: &model.Schema{Ref: "#/components/schemas/Pet"},
								},
							},
						},
					},
				},
				Patch: &model.Operation{
					OperationID: "patchPets",
					Responses: map[string]*model.Response{
						"200": {
							Content: map[string]*model.MediaType{
								"application/json": {
									Schema: &model.Schema{Ref: "#/components/schemas/Owner"},
								},
							},
						},
					},
				},
			},
		},
		Components: &model.Components{
			Schemas: map[string]*model.Schema{
				"Pet":   petSchema,
				"Owner": ownerSchema,
			},
		},
	}
}

func TestApply_NoFilter_RetainsEverything(t *testing.T) {
	doc := petstoreDoc()

	out, err := filter.Apply(doc, config.Filter{})
	require.NoError(t, err)

	assert.Len(t, out.Paths, 1)
	assert.NotNil(t, out.Paths["/pets"].Get)
	assert.NotNil(t, out.Paths["/pets"].Patch)
	assert.Contains(t, out.Components.Schemas, "Pet")
	assert.Contains(t, out.Components.Schemas, "Owner")
}

func TestApply_FilterByTag_RetainsOnlyMatchingEndpointAndClosure(t *testing.T) {
	doc := petstoreDoc()

	out, err := filter.Apply(doc, config.Filter{Tags: []string{"pets"}})
	require.NoError(t, err)

	require.Contains(t, out.Paths, "/pets")
	assert.NotNil(t, out.Paths["/pets"].Get)
	assert.Nil(t, out.Paths["/pets"].Patch)

	assert.Contains(t, out.Components.Schemas, "Pet")
	assert.NotContains(t, out.Components.Schemas, "Owner")
}

func TestApply_FilterByOperationID(t *testing.T) {
	doc := petstoreDoc()

	out, err := filter.Apply(doc, config.Filter{OperationIDs: []string{"patchPets"}})
	require.NoError(t, err)

	assert.Nil(t, out.Paths["/pets"].Get)
	assert.NotNil(t, out.Paths["/pets"].Patch)
	assert.Contains(t, out.Components.Schemas, "Owner")
	assert.NotContains(t, out.Components.Schemas, "Pet")
}

func TestApply_ExplicitSchemaName_IncludedEvenIfUnreferenced(t *testing.T) {
	doc := petstoreDoc()

	out, err := filter.Apply(doc, config.Filter{Tags: []string{"pets"}, Schemas: []string{"Owner"}})
	require.NoError(t, err)

	assert.Contains(t, out.Components.Schemas, "Pet")
	assert.Contains(t, out.Components.Schemas, "Owner")
}

func TestApply_UnknownTag_IsFatal(t *testing.T) {
	doc := petstoreDoc()

	_, err := filter.Apply(doc, config.Filter{Tags: []string{"does-not-exist"}})
	require.Error(t, err)
}

func TestApply_UnknownPath_IsFatal(t *testing.T) {
	doc := petstoreDoc()

	_, err := filter.Apply(doc, config.Filter{Paths: []string{"/missing"}})
	require.Error(t, err)
}

func TestApply_UnknownSchema_IsFatal(t *testing.T) {
	doc := petstoreDoc()

	_, err := filter.Apply(doc, config.Filter{Schemas: []string{"DoesNotExist"}})
	require.Error(t, err)
}

func TestApply_TransitiveSchemaClosure(t *testing.T) {
	doc := &model.Document{
		Paths: map[string]*model.PathItem{
			"/things": {
				Get: &model.Operation{
					OperationID: "listThings",
					Responses: map[string]*model.Response{
						"200": {
							Content: map[string]*model.MediaType{
								"application/json": {
									Schema: &model.Schema{Ref: "#/components/schemas/Thing"},
								},
							},
						},
					},
				},
			},
		},
		Components: &model.Components{
			Schemas: map[string]*model.Schema{
				"Thing": {
					Type: "object",
					Properties: map[string]*model.Schema{
						"owner": {Ref: "#/components/schemas/Owner"},
					},
				},
				"Owner": {Type: "object"},
				"Unused": {Type: "object"},
			},
		},
	}

	out, err := filter.Apply(doc, config.Filter{})
	require.NoError(t, err)

	assert.Contains(t, out.Components.Schemas, "Thing")
	assert.Contains(t, out.Components.Schemas, "Owner")
	assert.NotContains(t, out.Components.Schemas, "Unused")
}
