// Package fixtures supplies shared OpenAPI document fixtures for
// table-driven tests across the translation pipeline. It decodes YAML
// literals with gopkg.in/yaml.v3 rather than the runtime goccy/go-yaml
// path internal/load uses, and hands the result to load.FromMap — so a
// fixture-decoding bug never gets confused with a bug in the decoder the
// pipeline actually ships with, while both share the same map-to-model
// conversion. Grounded on the teacher's own style of embedding small
// literal documents as Go string constants, decoded per test case.
package fixtures

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/talav/oasgen/internal/load"
	"github.com/talav/oasgen/model"
)

// Parse decodes an OpenAPI document literal into a model.Document. It
// panics on malformed YAML since fixtures are test-authored literals, not
// user input — a malformed fixture is a bug in the test, not a case to
// recover from.
func Parse(yamlSrc string) *model.Document {
	var raw map[string]any
	if err := yaml.Unmarshal([]byte(yamlSrc), &raw); err != nil {
		panic(fmt.Sprintf("fixtures: parse: %v", err))
	}

	return load.FromMap(raw)
}

// Petstore is the spec §8 scenario 1 document: a single GET /pets
// operation with optional "limit" (int32) and "habitat" (string enum)
// query parameters, returning a 200 application/json array of Pet.
const Petstore = `
info:
  title: Petstore
  version: 1.0.0
paths:
  /pets:
    get:
      operationId: listPets
      parameters:
        - name: limit
          in: query
          required: false
          schema:
            type: integer
            format: int32
        - name: habitat
          in: query
          required: false
          schema:
            type: string
            enum: [indoor, outdoor, both]
      responses:
        "200":
          description: a page of pets
          content:
            application/json:
              schema:
                type: array
                items:
                  $ref: "#/components/schemas/Pet"
components:
  schemas:
    Pet:
      type: object
      required: [name]
      properties:
        name:
          type: string
        tag:
          type: string
`

// RecursivePet is the spec §8 scenario 3 document: a self-referencing
// schema whose "parent" property points back at RecursivePet, forcing
// recursion detection to box it.
const RecursivePet = `
info:
  title: Recursive
  version: 1.0.0
paths: {}
components:
  schemas:
    RecursivePet:
      type: object
      required: [name]
      properties:
        name:
          type: string
        parent:
          $ref: "#/components/schemas/RecursivePet"
`

// DiscriminatedWalk is the spec §8 scenario 2 document: a oneOf with an
// implicit (mapping-absent) discriminator over two object branches that
// both carry a "kind" string property.
const DiscriminatedWalk = `
info:
  title: Discriminated
  version: 1.0.0
paths: {}
components:
  schemas:
    Walk:
      type: object
      required: [kind]
      properties:
        kind:
          type: string
        minutes:
          type: integer
    MessagedExercise:
      type: object
      required: [kind]
      properties:
        kind:
          type: string
        message:
          type: string
    OneOfObjectsWithDiscriminator:
      oneOf:
        - $ref: "#/components/schemas/Walk"
        - $ref: "#/components/schemas/MessagedExercise"
      discriminator:
        propertyName: kind
`
