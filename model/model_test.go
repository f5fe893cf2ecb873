package model_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talav/oasgen/model"
)

func TestParseReference_InternalComponentsRef(t *testing.T) {
	ref, ok := model.ParseReference("#/components/schemas/Pet")
	require.True(t, ok)
	assert.Equal(t, model.KindSchemas, ref.Kind)
	assert.Equal(t, "Pet", ref.Name)
	assert.Equal(t, "#/components/schemas/Pet", ref.String())
}

func TestParseReference_RejectsExternalAndMalformed(t *testing.T) {
	cases := []string{
		"external.yaml#/components/schemas/Pet",
		"#/paths/~1pets/get",
		"#/components/schemas/",
		"#/components/bogusKind/Pet",
		"",
	}

	for _, raw := range cases {
		_, ok := model.ParseReference(raw)
		assert.Falsef(t, ok, "expected %q to be rejected", raw)
	}
}

func TestDocument_LookupAndResolveSchema(t *testing.T) {
	pet := &model.Schema{Type: "object"}
	doc := &model.Document{
		Components: &model.Components{
			Schemas: map[string]*model.Schema{"Pet": pet},
		},
	}

	v, ok := doc.Lookup(model.Reference{Kind: model.KindSchemas, Name: "Pet"})
	require.True(t, ok)
	assert.Same(t, pet, v)

	s, ok := doc.ResolveSchema(model.Reference{Kind: model.KindSchemas, Name: "Pet"})
	require.True(t, ok)
	assert.Same(t, pet, s)

	_, ok = doc.ResolveSchema(model.Reference{Kind: model.KindSchemas, Name: "Missing"})
	assert.False(t, ok)
}

func TestDocument_LookupOnNilComponentsIsFalse(t *testing.T) {
	var doc *model.Document
	_, ok := doc.Lookup(model.Reference{Kind: model.KindSchemas, Name: "Pet"})
	assert.False(t, ok)

	doc = &model.Document{}
	_, ok = doc.Lookup(model.Reference{Kind: model.KindSchemas, Name: "Pet"})
	assert.False(t, ok)
}

func TestPathItem_EndpointsPreservesMethodOrder(t *testing.T) {
	get := &model.Operation{OperationID: "get"}
	post := &model.Operation{OperationID: "post"}
	item := &model.PathItem{Get: get, Post: post}

	endpoints := item.Endpoints()
	require.Len(t, endpoints, 2)
	assert.Equal(t, "GET", endpoints[0].Method)
	assert.Same(t, get, endpoints[0].Operation)
	assert.Equal(t, "POST", endpoints[1].Method)
	assert.Same(t, post, endpoints[1].Operation)
}

func TestPathItem_EndpointsOnNilReceiverIsEmpty(t *testing.T) {
	var item *model.PathItem
	assert.Nil(t, item.Endpoints())
}
