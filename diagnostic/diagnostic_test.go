package diagnostic_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talav/oasgen/diagnostic"
)

func TestCollector_HasError(t *testing.T) {
	c := diagnostic.NewCollector()
	assert.False(t, c.HasError())

	c.Warnf(diagnostic.CodeUnsupportedCookieParameter, "#/paths/~1pets/get/parameters/0", "cookie parameters are unsupported")
	assert.False(t, c.HasError())

	c.Errorf(diagnostic.CodeReferenceNotFound, "#/components/schemas/Missing", "reference not found")
	assert.True(t, c.HasError())
}

func TestCollector_Has(t *testing.T) {
	c := diagnostic.NewCollector()
	c.Notef(diagnostic.CodeNamingCollision, "#/components/schemas/Foo", "renamed to Foo2")

	assert.True(t, c.Has(diagnostic.CodeNamingCollision))
	assert.False(t, c.Has(diagnostic.CodeReferenceNotFound))
}

func TestCollector_All_IsSnapshot(t *testing.T) {
	c := diagnostic.NewCollector()
	c.Notef(diagnostic.CodeNamingCollision, "", "first")

	snap := c.All()
	require.Len(t, snap, 1)

	c.Notef(diagnostic.CodeNamingCollision, "", "second")
	assert.Len(t, snap, 1, "previously returned snapshot must not observe later appends")
	assert.Len(t, c.All(), 2)
}

func TestCollector_ConcurrentAppend(t *testing.T) {
	c := diagnostic.NewCollector()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c.Notef(diagnostic.CodeNamingCollision, "", "concurrent")
		}()
	}
	wg.Wait()

	assert.Len(t, c.All(), 50)
}

func TestDiagnostic_String(t *testing.T) {
	d := diagnostic.Diagnostic{Severity: diagnostic.SeverityWarning, Code: diagnostic.CodeUnsupportedContentType, Path: "#/x", Message: "nope"}
	assert.Equal(t, "warning[UNSUPPORTED_CONTENT_TYPE] at #/x: nope", d.String())

	d2 := diagnostic.Diagnostic{Severity: diagnostic.SeverityNote, Code: diagnostic.CodeNamingCollision, Message: "ok"}
	assert.Equal(t, "note[NAMING_COLLISION]: ok", d2.String())
}
