package naming

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/talav/oasgen/config"
)

func TestSanitize_Defensive(t *testing.T) {
	assert.Equal(t, "Retry_hyphen_After", Sanitize("Retry-After", config.Defensive, Type, nil))
	assert.Equal(t, "_default", Sanitize("default", config.Defensive, Type, nil))
	assert.Equal(t, "_empty", Sanitize("", config.Defensive, Type, nil))
	assert.Equal(t, "_underscore_", Sanitize("_", config.Defensive, Type, nil))
	assert.Equal(t, "_3foo", Sanitize("3foo", config.Defensive, Type, nil))
}

func TestSanitize_IdiomaticType(t *testing.T) {
	assert.Equal(t, "RetryAfter", Sanitize("Retry-After", config.Idiomatic, Type, nil))
	assert.Equal(t, "_default", Sanitize("default", config.Idiomatic, Type, nil))
	assert.Equal(t, "_Empty_", Sanitize("", config.Idiomatic, Type, nil))
	assert.Equal(t, "_underscore_", Sanitize("_", config.Idiomatic, Type, nil))
	assert.Equal(t, "_3foo", Sanitize("3foo", config.Idiomatic, Type, nil))
}

func TestSanitize_IdiomaticMember(t *testing.T) {
	assert.Equal(t, "retryAfter", Sanitize("Retry-After", config.Idiomatic, Member, nil))
	assert.Equal(t, "_default", Sanitize("default", config.Idiomatic, Member, nil))
	assert.Equal(t, "_empty_", Sanitize("", config.Idiomatic, Member, nil))
	assert.Equal(t, "_underscore_", Sanitize("_", config.Idiomatic, Member, nil))
	assert.Equal(t, "_3foo", Sanitize("3foo", config.Idiomatic, Member, nil))
}

func TestSanitize_OverrideShortCircuits(t *testing.T) {
	overrides := map[string]string{"Retry-After": "retryAfterOverride"}

	assert.Equal(t, "retryAfterOverride", Sanitize("Retry-After", config.Idiomatic, Member, overrides))
	assert.Equal(t, "retryAfterOverride", Sanitize("Retry-After", config.Defensive, Type, overrides))
}

func TestSanitize_AcronymPreserved(t *testing.T) {
	assert.Equal(t, "HTTPServer", Sanitize("HTTPServer", config.Idiomatic, Type, nil))
	assert.Equal(t, "httpServer", Sanitize("HTTPServer", config.Idiomatic, Member, nil))
	assert.Equal(t, "PetId", Sanitize("pet_id", config.Idiomatic, Type, nil))
}

func TestSanitize_PreservesUnknownStrategyAsIdiomatic(t *testing.T) {
	assert.Equal(t, "RetryAfter", Sanitize("Retry-After", config.NamingStrategy("bogus"), Type, nil))
}

func TestTypeName_Dotted(t *testing.T) {
	tn := Root("Components").
		Appending("Schemas", "#/components/schemas").
		Appending("Pet", "#/components/schemas/Pet")

	assert.Equal(t, "Components.Schemas.Pet", tn.Dotted())
	assert.Equal(t, "#/components/schemas/Pet", tn.Pointer())
	assert.Equal(t, "Pet", tn.Last().Identifier)
}

func TestTypeName_AppendingDoesNotMutateParent(t *testing.T) {
	root := Root("Operations")
	child1 := root.Appending("getPet", "#/paths/~1pets~1{id}/get")
	child2 := root.Appending("listPets", "#/paths/~1pets/get")

	assert.Equal(t, "Operations", root.Dotted())
	assert.Equal(t, "Operations.getPet", child1.Dotted())
	assert.Equal(t, "Operations.listPets", child2.Dotted())
}

func TestTypeName_LastOnEmpty(t *testing.T) {
	var tn TypeName
	assert.Equal(t, Component{}, tn.Last())
	assert.Equal(t, "", tn.Dotted())
}
