package render_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/talav/oasgen/internal/ir"
	"github.com/talav/oasgen/internal/render"
)

func TestFile_StructWithDocComment(t *testing.T) {
	f := &ir.File{
		TopComment: "Generated by oasgen, do not modify.",
		Imports:    []string{"Foundation"},
		Blocks: []ir.CodeBlock{
			ir.DeclarationBlock(ir.Commentable{
				Comment: "Origin: #/components/schemas/Pet",
				Inner: ir.Struct{
					Name:         "Pet",
					Access:       "public",
					Conformances: []string{"Codable", "Hashable"},
					Members: []ir.Declaration{
						ir.Variable{Name: "name", Access: "public", Kind: "var", Type: "String"},
					},
				},
			}),
		},
	}

	out := render.File(f)

	assert.Contains(t, out, "Generated by oasgen, do not modify.")
	assert.Contains(t, out, "import Foundation")
	assert.Contains(t, out, "/// Origin: #/components/schemas/Pet")
	assert.Contains(t, out, "public struct Pet: Codable, Hashable {")
	assert.Contains(t, out, "public var name: String")
}

func TestFile_EnumWithAssociatedValues(t *testing.T) {
	f := &ir.File{
		Blocks: []ir.CodeBlock{
			ir.DeclarationBlock(ir.Enum{
				Name:     "Output",
				Access:   "public",
				Indirect: true,
				Cases: []ir.EnumCase{
					{Name: "ok", AssociatedValues: []ir.AssociatedValue{{Label: "body", Type: "Pet"}}},
					{Name: "undocumented", AssociatedValues: []ir.AssociatedValue{{Type: "Int"}}},
				},
			}),
		},
	}

	out := render.File(f)
	assert.Contains(t, out, "public indirect enum Output {")
	assert.Contains(t, out, "case ok(body: Pet)")
	assert.Contains(t, out, "case undocumented(Int)")
}

func TestFile_SwitchInsideFunction(t *testing.T) {
	f := &ir.File{
		Blocks: []ir.CodeBlock{
			ir.DeclarationBlock(ir.Function{
				Name:       "decode",
				Access:     "public",
				ReturnType: "Output",
				Throws:     true,
				Body: []ir.CodeBlock{
					ir.ExpressionBlock(ir.Switch{
						Subject: ir.Identifier{Name: "statusCode"},
						Cases: []ir.SwitchCase{
							{
								Pattern: "200",
								Body: []ir.CodeBlock{
									ir.ExpressionBlock(ir.ValueBinding{
										Kind:  "let",
										Name:  "body",
										Value: ir.Identifier{Name: "decodedBody"},
									}),
								},
							},
						},
					}),
				},
			}),
		},
	}

	out := render.File(f)
	lines := strings.Split(out, "\n")

	assert.Contains(t, out, "public func decode() throws -> Output {")
	assert.Contains(t, out, "switch statusCode {")
	assert.Contains(t, out, "case 200:")
	assert.Contains(t, out, "let body = decodedBody")

	// The switch's case body must be indented deeper than the case label,
	// and the case label deeper than the function's opening brace.
	var funcDepth, caseDepth, bodyDepth int
	for _, line := range lines {
		trimmed := strings.TrimLeft(line, " ")
		indent := (len(line) - len(trimmed)) / 4
		switch trimmed {
		case "public func decode() throws -> Output {":
			funcDepth = indent
		case "case 200:":
			caseDepth = indent
		case "let body = decodedBody":
			bodyDepth = indent
		}
	}
	assert.Less(t, funcDepth, caseDepth)
	assert.Less(t, caseDepth, bodyDepth)
}

func TestStripTopComment_Idempotent(t *testing.T) {
	inner := ir.Struct{Name: "Pet"}
	wrapped := ir.Commentable{Comment: "doc", Inner: inner}

	once := ir.StripTopComment(wrapped)
	twice := ir.StripTopComment(once)

	assert.Equal(t, inner, once)
	assert.Equal(t, inner, twice)
}
