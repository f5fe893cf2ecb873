// Package diagnostic collects non-fatal issues encountered while
// translating an OpenAPI document, generalizing the advisory-only
// [Warning] pattern used elsewhere in this module family into the three
// severities spec §7 requires: note, warning, and error. Only error
// aborts generation; note and warning are purely informational.
package diagnostic

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// Severity classifies how serious a diagnostic is.
type Severity string

// The three severities named in spec §6 "Diagnostics".
const (
	// SeverityNote is purely informational.
	SeverityNote Severity = "note"

	// SeverityWarning indicates a recoverable issue: the affected element
	// was skipped or translated on a best-effort basis.
	SeverityWarning Severity = "warning"

	// SeverityError is fatal. Any error present causes the driver to
	// discard generated output (spec §7).
	SeverityError Severity = "error"
)

// Code identifies a specific diagnostic condition. Compare against the
// Code* constants for type-safe checks rather than comparing message text.
type Code string

// Structural (fatal) diagnostic codes, spec §7.1.
const (
	CodeReferenceNotFound       Code = "REFERENCE_NOT_FOUND"
	CodeExternalReference       Code = "EXTERNAL_REFERENCE"
	CodeUnresolvedPathParameter Code = "UNRESOLVED_PATH_PARAMETER"
	CodeUnbreakableRecursion    Code = "UNBREAKABLE_RECURSION"
	CodeFilterTargetNotFound    Code = "FILTER_TARGET_NOT_FOUND"
	CodeDuplicateOperation      Code = "DUPLICATE_OPERATION"
)

// Unsupported-element diagnostic codes, spec §7.2 (recoverable warnings).
const (
	CodeUnsupportedParameterStyle  Code = "UNSUPPORTED_PARAMETER_STYLE"
	CodeUnsupportedContentType     Code = "UNSUPPORTED_CONTENT_TYPE"
	CodeNonInlinableContext        Code = "NON_INLINABLE_CONTEXT"
	CodeUnsupportedCookieParameter Code = "UNSUPPORTED_COOKIE_PARAMETER"
)

// Schema inconsistency and naming diagnostic codes, spec §7.3-§7.4.
const (
	CodeSchemaSiblingOfAllOf  Code = "SCHEMA_SIBLING_OF_ALLOF"
	CodeSchemaTypeConflict    Code = "SCHEMA_TYPE_CONFLICT"
	CodeNamingCollision       Code = "NAMING_COLLISION"
	CodeExampleValueMismatch  Code = "EXAMPLE_VALUE_MISMATCH"
)

// Diagnostic is a single record produced during translation.
type Diagnostic struct {
	Severity Severity
	Code     Code

	// Path is the JSON pointer to the affected document element, e.g.
	// "#/components/schemas/Pet/properties/name".
	Path string

	Message string
}

// String renders a human-readable one-line form, e.g. for log output.
func (d Diagnostic) String() string {
	if d.Path == "" {
		return fmt.Sprintf("%s[%s]: %s", d.Severity, d.Code, d.Message)
	}

	return fmt.Sprintf("%s[%s] at %s: %s", d.Severity, d.Code, d.Path, d.Message)
}

// Collector is an append-only, thread-safe sink for diagnostics. A
// generator run creates exactly one Collector; if the driver parallelizes
// file generation (spec §5), multiple goroutines may append to the same
// Collector concurrently.
type Collector struct {
	// RunID uniquely identifies this generator invocation, letting build
	// tooling correlate a "discarded output" error back to the run that
	// produced it when many runs execute concurrently.
	RunID uuid.UUID

	mu   sync.Mutex
	recs []Diagnostic
}

// NewCollector creates an empty Collector stamped with a fresh run ID.
func NewCollector() *Collector {
	return &Collector{RunID: uuid.New()}
}

// Add appends a diagnostic.
func (c *Collector) Add(d Diagnostic) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.recs = append(c.recs, d)
}

// Notef appends a SeverityNote diagnostic.
func (c *Collector) Notef(code Code, path, format string, args ...any) {
	c.Add(Diagnostic{Severity: SeverityNote, Code: code, Path: path, Message: fmt.Sprintf(format, args...)})
}

// Warnf appends a SeverityWarning diagnostic.
func (c *Collector) Warnf(code Code, path, format string, args ...any) {
	c.Add(Diagnostic{Severity: SeverityWarning, Code: code, Path: path, Message: fmt.Sprintf(format, args...)})
}

// Errorf appends a SeverityError diagnostic. Unlike a Go error return, this
// does not itself stop translation: callers must still check HasError (or
// propagate a real error for conditions that cannot be recovered from at
// all, per spec §7.1) and stop walking once it would be unsafe to
// continue.
func (c *Collector) Errorf(code Code, path, format string, args ...any) {
	c.Add(Diagnostic{Severity: SeverityError, Code: code, Path: path, Message: fmt.Sprintf(format, args...)})
}

// All returns a snapshot of every collected diagnostic, in append order.
func (c *Collector) All() []Diagnostic {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]Diagnostic, len(c.recs))
	copy(out, c.recs)

	return out
}

// HasError reports whether any SeverityError diagnostic was collected.
// Per spec §7, the driver must discard generated output when this is true.
func (c *Collector) HasError() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, d := range c.recs {
		if d.Severity == SeverityError {
			return true
		}
	}

	return false
}

// Has reports whether any diagnostic with the given code was collected,
// mirroring the teacher package's Warnings.Has helper.
func (c *Collector) Has(code Code) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, d := range c.recs {
		if d.Code == code {
			return true
		}
	}

	return false
}
