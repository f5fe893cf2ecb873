package typeinfo_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/talav/oasgen/config"
	"github.com/talav/oasgen/internal/typeinfo"
	"github.com/talav/oasgen/model"
)

func TestMatchSchema_Builtins(t *testing.T) {
	doc := &model.Document{Components: &model.Components{Schemas: map[string]*model.Schema{}}}

	cases := []struct {
		name    string
		schema  *model.Schema
		builtin typeinfo.Builtin
	}{
		{"string", &model.Schema{Type: "string"}, typeinfo.BuiltinString},
		{"binary", &model.Schema{Type: "string", Format: "binary"}, typeinfo.BuiltinRawBody},
		{"base64 format", &model.Schema{Type: "string", Format: "base64"}, typeinfo.BuiltinBase64Bytes},
		{"base64 content encoding", &model.Schema{Type: "string", ContentEncoding: "base64"}, typeinfo.BuiltinBase64Bytes},
		{"date-time", &model.Schema{Type: "string", Format: "date-time"}, typeinfo.BuiltinTimestamp},
		{"int32", &model.Schema{Type: "integer", Format: "int32"}, typeinfo.BuiltinInt32},
		{"int64 default", &model.Schema{Type: "integer"}, typeinfo.BuiltinInt64},
		{"float", &model.Schema{Type: "number", Format: "float"}, typeinfo.BuiltinFloat},
		{"double default", &model.Schema{Type: "number"}, typeinfo.BuiltinDouble},
		{"boolean", &model.Schema{Type: "boolean"}, typeinfo.BuiltinBool},
		{"fragment", &model.Schema{}, typeinfo.BuiltinOpaqueValue},
		{"opaque object", &model.Schema{Type: "object"}, typeinfo.BuiltinOpaqueObject},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			m := typeinfo.MatchSchema(doc, tc.schema, true)
			assert.Equal(t, typeinfo.ShapeBuiltin, m.Shape)
			assert.Equal(t, tc.builtin, m.Builtin)
			assert.True(t, m.Referenceable)
		})
	}
}

func TestMatchSchema_ObjectWithPropertiesIsInline(t *testing.T) {
	doc := &model.Document{Components: &model.Components{Schemas: map[string]*model.Schema{}}}
	s := &model.Schema{Type: "object", Properties: map[string]*model.Schema{"name": {Type: "string"}}}

	m := typeinfo.MatchSchema(doc, s, true)
	assert.Equal(t, typeinfo.ShapeInline, m.Shape)
	assert.False(t, m.Referenceable)
	assert.True(t, m.KeyValuePair)
}

func TestMatchSchema_MapOfAdditionalProperties(t *testing.T) {
	doc := &model.Document{Components: &model.Components{Schemas: map[string]*model.Schema{}}}
	s := &model.Schema{
		Type:       "object",
		Additional: &model.Additional{Schema: &model.Schema{Type: "string"}},
	}

	m := typeinfo.MatchSchema(doc, s, true)
	assert.Equal(t, typeinfo.ShapeMap, m.Shape)
	assert.True(t, m.Referenceable)
	assert.False(t, m.KeyValuePair)
}

func TestMatchSchema_ArrayReferenceable(t *testing.T) {
	doc := &model.Document{Components: &model.Components{Schemas: map[string]*model.Schema{
		"Pet": {Type: "object", Properties: map[string]*model.Schema{"name": {Type: "string"}}},
	}}}
	s := &model.Schema{Type: "array", Items: &model.Schema{Ref: "#/components/schemas/Pet"}}

	m := typeinfo.MatchSchema(doc, s, true)
	assert.Equal(t, typeinfo.ShapeArray, m.Shape)
	assert.True(t, m.Referenceable)
	assert.Equal(t, typeinfo.ShapeReference, m.Element.Shape)
}

func TestMatchSchema_NullablePropagatesThroughRef(t *testing.T) {
	doc := &model.Document{Components: &model.Components{Schemas: map[string]*model.Schema{
		"NullableThing": {Type: "string", Nullable: true},
	}}}
	s := &model.Schema{Ref: "#/components/schemas/NullableThing"}

	assert.True(t, typeinfo.IsNullable(doc, s))
	assert.True(t, typeinfo.IsOptional(doc, s, true))
}

func TestMatchSchema_RequiredFalseIsOptional(t *testing.T) {
	doc := &model.Document{Components: &model.Components{Schemas: map[string]*model.Schema{}}}
	s := &model.Schema{Type: "string"}

	assert.True(t, typeinfo.IsOptional(doc, s, false))
	assert.False(t, typeinfo.IsOptional(doc, s, true))
}

func TestIsKeyValuePair_AllOfAnyMember(t *testing.T) {
	doc := &model.Document{Components: &model.Components{Schemas: map[string]*model.Schema{}}}
	s := &model.Schema{
		AllOf: []*model.Schema{
			{Type: "string"},
			{Type: "object", Properties: map[string]*model.Schema{"name": {Type: "string"}}},
		},
	}

	assert.True(t, typeinfo.IsKeyValuePair(doc, s))
}

func TestAssignReference_DottedPath(t *testing.T) {
	cfg := config.Default()
	ref := model.Reference{Kind: model.KindSchemas, Name: "Pet"}

	tn := typeinfo.AssignReference(ref, cfg)
	assert.Equal(t, "Components.Schemas.Pet", tn.Dotted())
}

func TestAssignInline_EmptyHintGetsPayloadSuffix(t *testing.T) {
	cfg := config.Default()
	parent := typeinfo.OperationsRoot().Appending("listPets", "#/paths/~1pets/get")

	tn := typeinfo.AssignInline(parent, "", "#/paths/~1pets/get/responses/200", cfg)
	assert.Equal(t, "Operations.listPets.Payload", tn.Dotted())
}
