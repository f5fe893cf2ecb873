// Package oasgen wires the translation pipeline together: document
// filter (internal/filter), recursion detector (internal/recursion),
// schema translator (internal/schemagen), operation translator
// (internal/opgen), and renderer (internal/render). Grounded on the
// teacher's api.go Build method, which drove its own fixed pipeline
// (validate, sort, process operations, export) over a single *model.Spec;
// here the pipeline runs over an already-parsed *model.Document and emits
// source text rather than an OpenAPI JSON document.
package oasgen

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/talav/oasgen/config"
	"github.com/talav/oasgen/diagnostic"
	"github.com/talav/oasgen/internal/filter"
	"github.com/talav/oasgen/internal/ir"
	"github.com/talav/oasgen/internal/opgen"
	"github.com/talav/oasgen/internal/recursion"
	"github.com/talav/oasgen/internal/render"
	"github.com/talav/oasgen/internal/schemagen"
	"github.com/talav/oasgen/model"
)

// topComment is the fixed header every generated file carries, naming
// this tool so a reader never mistakes generated output for hand-written
// code.
const topComment = "Generated by oasgen, do not modify."

// Result is the outcome of a successful generation run: the rendered
// source text for each requested target, plus every diagnostic collected
// along the way (spec §7).
type Result struct {
	Types  string
	Client string
	Server string

	// RunID correlates this result back to the Collector that produced
	// it, so a caller running many generations concurrently (spec §5) can
	// tell a discarded-output error apart from any other run's.
	RunID uuid.UUID

	Diagnostics []diagnostic.Diagnostic
}

// Generate runs the full pipeline against doc under cfg: filter, detect
// recursion, translate schemas and operations, then render the targets
// named in cfg.Generate. Per spec §7, any SeverityError diagnostic
// collected during translation discards all generated output; Generate
// then returns the diagnostics alongside a non-nil error so the caller can
// report what went wrong.
func Generate(doc *model.Document, cfg config.Config) (*Result, error) {
	diags := diagnostic.NewCollector()

	reduced, err := filter.Apply(doc, cfg.Filter)
	if err != nil {
		return nil, fmt.Errorf("oasgen: filter: %w", err)
	}

	boxed, err := recursion.Detect(reduced)
	if err != nil {
		return nil, fmt.Errorf("oasgen: recursion detection: %w", err)
	}

	if cfg.Feature("validateExtensionValues") {
		validateLiterals(reduced, diags)
	}

	schemaBlocks := schemagen.New(reduced, boxed, cfg, diags).TranslateComponents()

	opBlocks, err := opgen.New(reduced, boxed, cfg, diags).TranslateOperations()
	if err != nil {
		return nil, fmt.Errorf("oasgen: operation translation: %w", err)
	}

	if diags.HasError() {
		return &Result{RunID: diags.RunID, Diagnostics: diags.All()}, fmt.Errorf("oasgen: generation discarded: %d diagnostic(s) reported a structural error", countErrors(diags.All()))
	}

	result := &Result{RunID: diags.RunID, Diagnostics: diags.All()}

	if cfg.Generate.Has(config.TargetTypes) {
		result.Types = render.File(&ir.File{TopComment: topComment, Imports: cfg.AdditionalImports, Blocks: schemaBlocks})
	}

	if cfg.Generate.Has(config.TargetClient) {
		result.Client = render.File(&ir.File{TopComment: topComment, Imports: cfg.AdditionalImports, Blocks: opBlocks})
	}

	if cfg.Generate.Has(config.TargetServer) {
		result.Server = render.File(&ir.File{TopComment: topComment, Imports: cfg.AdditionalImports, Blocks: opBlocks})
	}

	return result, nil
}

func countErrors(diags []diagnostic.Diagnostic) int {
	n := 0
	for _, d := range diags {
		if d.Severity == diagnostic.SeverityError {
			n++
		}
	}

	return n
}

// validateLiterals runs diagnostic.Collector.ValidateLiteral over every
// named component schema when the "validateExtensionValues" feature flag
// is enabled (SPEC_FULL.md §11).
func validateLiterals(doc *model.Document, diags *diagnostic.Collector) {
	if doc == nil || doc.Components == nil {
		return
	}

	for name, s := range doc.Components.Schemas {
		diags.ValidateLiteral("#/components/schemas/"+name, s)
	}
}
