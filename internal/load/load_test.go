package load_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talav/oasgen/internal/load"
)

const petstoreYAML = `
info:
  title: Petstore
  version: "1.0.0"
paths:
  /pets/{petId}:
    parameters:
      - name: petId
        in: path
        required: true
        schema:
          type: string
      - name: X-Request-Id
        in: header
        schema:
          type: string
    get:
      operationId: getPet
      parameters:
        - name: Accept
          in: header
          schema:
            type: string
        - name: petId
          in: path
          required: true
          schema:
            type: integer
      responses:
        "200":
          description: ok
          content:
            application/json:
              schema:
                $ref: "#/components/schemas/Pet"
components:
  schemas:
    Pet:
      type: object
      required: [name]
      properties:
        name:
          type: string
        kind:
          type: string
          nullable: true
      x-replace-type: CustomPet
`

func TestDocument_DecodesInfoAndPaths(t *testing.T) {
	doc, err := load.Document([]byte(petstoreYAML))
	require.NoError(t, err)

	assert.Equal(t, "Petstore", doc.Info.Title)
	assert.Equal(t, "1.0.0", doc.Info.Version)

	item := doc.Paths["/pets/{petId}"]
	require.NotNil(t, item)
	require.NotNil(t, item.Get)
	assert.Equal(t, "getPet", item.Get.OperationID)
}

func TestDocument_MergesPathItemParametersIntoOperation(t *testing.T) {
	doc, err := load.Document([]byte(petstoreYAML))
	require.NoError(t, err)

	params := doc.Paths["/pets/{petId}"].Get.Parameters

	var petID *int
	var found []string
	for i, p := range params {
		found = append(found, p.In+":"+p.Name)
		if p.Name == "petId" {
			idx := i
			petID = &idx
		}
	}

	// The operation-level petId (schema type "integer") must win over the
	// pathItem-level petId (schema type "string").
	require.NotNil(t, petID)
	assert.Equal(t, "integer", params[*petID].Schema.Type)

	// Exactly one petId parameter survives the merge, not two.
	count := 0
	for _, p := range params {
		if p.In == "path" && p.Name == "petId" {
			count++
		}
	}
	assert.Equal(t, 1, count)
}

func TestDocument_DropsReservedHeaderParameters(t *testing.T) {
	doc, err := load.Document([]byte(petstoreYAML))
	require.NoError(t, err)

	params := doc.Paths["/pets/{petId}"].Get.Parameters
	for _, p := range params {
		if p.In == "header" {
			assert.NotEqual(t, "accept", p.Name)
			assert.NotEqual(t, "Accept", p.Name)
		}
	}

	// X-Request-Id is not reserved and must survive the merge.
	var sawRequestID bool
	for _, p := range params {
		if p.In == "header" && p.Name == "X-Request-Id" {
			sawRequestID = true
		}
	}
	assert.True(t, sawRequestID)
}

func TestDocument_DecodesSchemaDetails(t *testing.T) {
	doc, err := load.Document([]byte(petstoreYAML))
	require.NoError(t, err)

	pet := doc.Components.Schemas["Pet"]
	require.NotNil(t, pet)
	assert.Equal(t, "object", pet.Type)
	assert.Equal(t, []string{"name"}, pet.Required)
	assert.Equal(t, "CustomPet", pet.ReplaceType)

	kind := pet.Properties["kind"]
	require.NotNil(t, kind)
	assert.True(t, kind.Nullable)
}

func TestDocument_ExclusiveBoundDistinguishes30And31Forms(t *testing.T) {
	doc, err := load.Document([]byte(`
components:
  schemas:
    Legacy:
      type: number
      minimum: 1
      exclusiveMinimum: true
    Modern:
      type: number
      exclusiveMinimum: 1
`))
	require.NoError(t, err)

	legacy := doc.Components.Schemas["Legacy"]
	require.NotNil(t, legacy.Minimum)
	assert.Equal(t, 1.0, legacy.Minimum.Value)
	assert.True(t, legacy.Minimum.Exclusive)

	modern := doc.Components.Schemas["Modern"]
	require.NotNil(t, modern.Minimum)
	assert.Equal(t, 1.0, modern.Minimum.Value)
	assert.True(t, modern.Minimum.Exclusive)
}

func TestDocument_NullableUnionTypeNormalizes(t *testing.T) {
	doc, err := load.Document([]byte(`
components:
  schemas:
    Thing:
      type: ["string", "null"]
`))
	require.NoError(t, err)

	thing := doc.Components.Schemas["Thing"]
	require.NotNil(t, thing)
	assert.Equal(t, "string", thing.Type)
	assert.True(t, thing.Nullable)
}

func TestDocument_ExtensionFieldsAreCollected(t *testing.T) {
	doc, err := load.Document([]byte(`
info:
  title: X
  version: "1"
x-internal-owner: team-a
`))
	require.NoError(t, err)

	require.NotNil(t, doc.Extensions)
	assert.Equal(t, "team-a", doc.Extensions["x-internal-owner"])
}

func TestDocument_RefSchemaKeepsOnlyRefAndDescription(t *testing.T) {
	doc, err := load.Document([]byte(`
components:
  schemas:
    A:
      $ref: "#/components/schemas/B"
      description: an alias
    B:
      type: string
`))
	require.NoError(t, err)

	a := doc.Components.Schemas["A"]
	require.NotNil(t, a)
	assert.Equal(t, "#/components/schemas/B", a.Ref)
	assert.Equal(t, "an alias", a.Description)
	assert.Empty(t, a.Type)
}
