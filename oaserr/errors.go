// Package oaserr defines the sentinel errors shared across the translation
// pipeline (spec §7). It exists as its own leaf package, rather than living
// in the root oasgen package, purely so that internal/filter,
// internal/recursion, and internal/opgen can return them with errors.Is
// semantics without an import cycle back through the package that wires
// them together.
package oaserr

import "errors"

// Structural errors (spec §7.1) are fatal: the driver aborts translation
// and surfaces the wrapping error as-is.
var (
	// ErrReferenceNotFound indicates a $ref pointed at a component that
	// does not exist in the document.
	ErrReferenceNotFound = errors.New("oasgen: reference not found")

	// ErrExternalReference indicates a $ref outside "#/components/...",
	// which the generator does not resolve.
	ErrExternalReference = errors.New("oasgen: external references are not supported")

	// ErrUnresolvedPathParameter indicates a path template segment with no
	// matching declared parameter.
	ErrUnresolvedPathParameter = errors.New("oasgen: path template references an undeclared parameter")

	// ErrMissingPathParameter indicates a declared required path parameter
	// that the path template never references.
	ErrMissingPathParameter = errors.New("oasgen: declared path parameter is missing from the path template")

	// ErrUnbreakableRecursion indicates a schema reference cycle with no
	// boxable participant.
	ErrUnbreakableRecursion = errors.New("oasgen: recursive schema cycle has no boxable member")

	// ErrFilterTargetNotFound indicates a requested tag, path, operationID,
	// or schema name the filter spec named that does not exist in the
	// document.
	ErrFilterTargetNotFound = errors.New("oasgen: filter target not found in document")

	// ErrDuplicateOperation indicates two operations share the same
	// operationId.
	ErrDuplicateOperation = errors.New("oasgen: duplicate operationId")
)
