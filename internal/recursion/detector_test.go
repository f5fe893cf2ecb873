package recursion_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talav/oasgen/internal/recursion"
	"github.com/talav/oasgen/model"
)

func TestDetect_SelfReferencingSchemaIsBoxed(t *testing.T) {
	doc := &model.Document{
		Components: &model.Components{
			Schemas: map[string]*model.Schema{
				"RecursivePet": {
					Type: "object",
					Properties: map[string]*model.Schema{
						"name":   {Type: "string"},
						"parent": {Ref: "#/components/schemas/RecursivePet", Nullable: true},
					},
				},
			},
		},
	}

	result, err := recursion.Detect(doc)
	require.NoError(t, err)
	assert.True(t, result.Boxed("RecursivePet"))
}

func TestDetect_MutualCycleBoxesOneParticipant(t *testing.T) {
	doc := &model.Document{
		Components: &model.Components{
			Schemas: map[string]*model.Schema{
				"A": {
					Type:       "object",
					Properties: map[string]*model.Schema{"b": {Ref: "#/components/schemas/B"}},
				},
				"B": {
					Type:       "object",
					Properties: map[string]*model.Schema{"a": {Ref: "#/components/schemas/A"}},
				},
			},
		},
	}

	result, err := recursion.Detect(doc)
	require.NoError(t, err)
	assert.True(t, result.Boxed("A") || result.Boxed("B"))
	assert.False(t, result.Boxed("A") && result.Boxed("B"), "boxed set should be minimal")
}

func TestDetect_ArrayBreaksCycleWithoutBoxing(t *testing.T) {
	doc := &model.Document{
		Components: &model.Components{
			Schemas: map[string]*model.Schema{
				"Node": {
					Type: "object",
					Properties: map[string]*model.Schema{
						"children": {
							Type:  "array",
							Items: &model.Schema{Ref: "#/components/schemas/Node"},
						},
					},
				},
			},
		},
	}

	result, err := recursion.Detect(doc)
	require.NoError(t, err)
	assert.False(t, result.Boxed("Node"))
}

func TestDetect_TypealiasOnlyCycleIsUnbreakable(t *testing.T) {
	doc := &model.Document{
		Components: &model.Components{
			Schemas: map[string]*model.Schema{
				"X": {Ref: "#/components/schemas/Y"},
				"Y": {Ref: "#/components/schemas/X"},
			},
		},
	}

	_, err := recursion.Detect(doc)
	require.Error(t, err)
}

func TestDetect_NoSchemas(t *testing.T) {
	result, err := recursion.Detect(&model.Document{Components: &model.Components{}})
	require.NoError(t, err)
	assert.Empty(t, result.Boxed)
}
