package opgen

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/talav/oasgen/internal/ir"
	"github.com/talav/oasgen/internal/naming"
	"github.com/talav/oasgen/model"
)

// clientSerializer emits the static function a generated client uses to
// turn an Input value into an outgoing request (spec §4.5): substituting
// path parameters into the template, attaching query/header parameters
// per their serialization style, and encoding the body per its content
// type.
func (t *Translator) clientSerializer(ns naming.TypeName, path string, op *model.Operation) ir.Declaration {
	_ = ns

	// SPEC_FULL.md §12 "Header parameter arrays": style=simple array-valued
	// path/header parameters serialize differently depending on explode
	// (comma-joined vs repeated key=value); the serializer computes and
	// passes each surviving parameter's explode choice to the runtime
	// rather than leaving the decision entirely opaque to attachParameters.
	body := []ir.CodeBlock{
		ir.ExpressionBlock(ir.ValueBinding{
			Kind: "var",
			Name: "request",
			Value: ir.FunctionCall{
				Callee: ir.Identifier{Name: "HTTPRequest"},
				Arguments: []ir.Argument{
					{Label: "path", Value: ir.FunctionCall{
						Callee:    ir.Identifier{Name: "renderPath"},
						Arguments: []ir.Argument{{Value: ir.Literal{Value: path}}, {Value: ir.Identifier{Name: "input"}}},
					}},
					{Label: "method", Value: ir.Identifier{Name: "method"}},
				},
			},
		}),
		ir.ExpressionBlock(ir.FunctionCall{
			Callee: ir.MemberAccess{Base: ir.Identifier{Name: "request"}, Member: "attachParameters"},
			Arguments: []ir.Argument{
				{Value: ir.Identifier{Name: "input"}},
				{Label: "arrayStyles", Value: ir.Identifier{Name: simpleStyleArrayParams(op)}},
			},
		}),
		ir.ExpressionBlock(ir.FunctionCall{
			Callee:    ir.MemberAccess{Base: ir.Identifier{Name: "request"}, Member: "attachBody"},
			Arguments: []ir.Argument{{Value: ir.MemberAccess{Base: ir.Identifier{Name: "input"}, Member: "body"}}},
		}),
		ir.ExpressionBlock(ir.UnaryKeyword{Keyword: "return", Operand: ir.Identifier{Name: "request"}}),
	}

	fn := ir.Function{
		Name:       "serializeRequest",
		Access:     string(t.cfg.Access),
		Static:     true,
		Parameters: []ir.Parameter{{Label: "_", Name: "input", Type: "Input"}, {Label: "method", Name: "method", Type: "HTTPMethod"}},
		ReturnType: "HTTPRequest",
		Throws:     true,
		Body:       body,
	}

	return ir.Commentable{Comment: "Builds the outgoing request for this operation's Input, substituting path parameters and attaching headers, query items, and the body.", Inner: fn}
}

// clientDeserializer emits the static function a generated client uses to
// turn a raw HTTP response back into an Output value, dispatching on
// status code to pick the matching case (spec §4.5).
func (t *Translator) clientDeserializer(ns naming.TypeName, op *model.Operation) ir.Declaration {
	cases := make([]ir.SwitchCase, 0, len(op.Responses)+1)

	for _, status := range sortedResponseKeys(op.Responses) {
		caseName := responseCaseName(status)
		cases = append(cases, ir.SwitchCase{
			Pattern: statusPattern(status),
			Body: []ir.CodeBlock{
				ir.ExpressionBlock(ir.UnaryKeyword{
					Keyword: "return",
					Operand: ir.FunctionCall{
						Callee:    ir.MemberAccess{Base: ir.Identifier{Name: "Output"}, Member: caseName},
						Arguments: []ir.Argument{{Value: ir.UnaryKeyword{Keyword: "try", Operand: ir.FunctionCall{Callee: ir.Identifier{Name: "decodePayload"}, Arguments: []ir.Argument{{Value: ir.Identifier{Name: "response"}}}}}}},
					},
				}),
			},
		})
	}

	// SPEC_FULL.md §12 "default response reuse": when the live status
	// matches neither a documented response nor "default", pass the live
	// response's raw headers to the undocumented case whenever some
	// documented response is header-only, rather than silently dropping them.
	var undocumentedHeaders ir.Expression = ir.Literal{Value: nil}
	if hasHeaderOnlyResponse(op.Responses) {
		undocumentedHeaders = ir.MemberAccess{Base: ir.Identifier{Name: "response"}, Member: "rawHeaders"}
	}

	cases = append(cases, ir.SwitchCase{
		Pattern: "default",
		Body: []ir.CodeBlock{
			ir.ExpressionBlock(ir.UnaryKeyword{
				Keyword: "return",
				Operand: ir.FunctionCall{
					Callee: ir.MemberAccess{Base: ir.Identifier{Name: "Output"}, Member: "undocumented"},
					Arguments: []ir.Argument{
						{Label: "statusCode", Value: ir.MemberAccess{Base: ir.Identifier{Name: "response"}, Member: "statusCode"}},
						{Label: "headers", Value: undocumentedHeaders},
						{Value: ir.MemberAccess{Base: ir.Identifier{Name: "response"}, Member: "body"}},
					},
				},
			}),
		},
	})

	body := []ir.CodeBlock{
		ir.ExpressionBlock(ir.UnaryKeyword{
			Keyword: "return",
			Operand: ir.Switch{
				Subject: ir.MemberAccess{Base: ir.Identifier{Name: "response"}, Member: "statusCode"},
				Cases:   cases,
			},
		}),
	}

	fn := ir.Function{
		Name:       "deserializeResponse",
		Access:     string(t.cfg.Access),
		Static:     true,
		Parameters: []ir.Parameter{{Label: "_", Name: "response", Type: "HTTPResponse"}},
		ReturnType: "Output",
		Throws:     true,
		Body:       body,
	}

	return ir.Commentable{Comment: "Maps a raw HTTP response to this operation's Output by status code.", Inner: fn}
}

// serverDeserializer emits the static function a generated server stub
// uses to parse an incoming request into an Input value (spec §4.5),
// validating the path template matched and decoding the declared body.
func (t *Translator) serverDeserializer(ns naming.TypeName, path string, op *model.Operation) ir.Declaration {
	_ = op

	body := []ir.CodeBlock{
		ir.ExpressionBlock(ir.ValueBinding{
			Kind: "let",
			Name: "matched",
			Value: ir.UnaryKeyword{
				Keyword: "try",
				Operand: ir.FunctionCall{
					Callee:    ir.Identifier{Name: "matchPath"},
					Arguments: []ir.Argument{{Value: ir.Literal{Value: path}}, {Value: ir.MemberAccess{Base: ir.Identifier{Name: "request"}, Member: "path"}}},
				},
			},
		}),
		ir.ExpressionBlock(ir.UnaryKeyword{
			Keyword: "return",
			Operand: ir.UnaryKeyword{
				Keyword: "try",
				Operand: ir.FunctionCall{
					Callee:    ir.Identifier{Name: "decodeInput"},
					Arguments: []ir.Argument{{Value: ir.Identifier{Name: "request"}}, {Value: ir.Identifier{Name: "matched"}}},
				},
			},
		}),
	}

	fn := ir.Function{
		Name:       "deserializeRequest",
		Access:     string(t.cfg.Access),
		Static:     true,
		Parameters: []ir.Parameter{{Label: "_", Name: "request", Type: "HTTPRequest"}},
		ReturnType: "Input",
		Throws:     true,
		Body:       body,
	}

	return ir.Commentable{Comment: "Parses an incoming request into this operation's Input.", Inner: fn}
}

// serverSerializer emits the static function a generated server stub uses
// to turn a handler's Output value back into an outgoing response (spec
// §4.5), selecting the status code and content type the case represents.
func (t *Translator) serverSerializer(ns naming.TypeName, op *model.Operation) ir.Declaration {
	cases := make([]ir.SwitchCase, 0, len(op.Responses)+1)

	for _, status := range sortedResponseKeys(op.Responses) {
		caseName := responseCaseName(status)
		cases = append(cases, ir.SwitchCase{
			Pattern: "." + caseName + "(let payload)",
			Body: []ir.CodeBlock{
				ir.ExpressionBlock(ir.UnaryKeyword{
					Keyword: "return",
					Operand: ir.FunctionCall{
						Callee: ir.Identifier{Name: "encodeResponse"},
						Arguments: []ir.Argument{
							{Label: "status", Value: ir.Literal{Value: status}},
							{Label: "payload", Value: ir.Identifier{Name: "payload"}},
						},
					},
				}),
			},
		})
	}

	cases = append(cases, ir.SwitchCase{
		Pattern: ".undocumented(let statusCode, let headers, let body)",
		Body: []ir.CodeBlock{
			ir.ExpressionBlock(ir.UnaryKeyword{
				Keyword: "return",
				Operand: ir.FunctionCall{
					Callee: ir.Identifier{Name: "HTTPResponse"},
					Arguments: []ir.Argument{
						{Label: "statusCode", Value: ir.Identifier{Name: "statusCode"}},
						{Label: "headers", Value: ir.BinaryOperation{Left: ir.Identifier{Name: "headers"}, Operator: "??", Right: ir.Identifier{Name: "[:]"}}},
						{Label: "body", Value: ir.Identifier{Name: "body"}},
					},
				},
			}),
		},
	})

	body := []ir.CodeBlock{
		ir.ExpressionBlock(ir.UnaryKeyword{
			Keyword: "return",
			Operand: ir.Switch{Subject: ir.Identifier{Name: "output"}, Cases: cases},
		}),
	}

	fn := ir.Function{
		Name:       "serializeResponse",
		Access:     string(t.cfg.Access),
		Static:     true,
		Parameters: []ir.Parameter{{Label: "_", Name: "output", Type: "Output"}},
		ReturnType: "HTTPResponse",
		Throws:     true,
		Body:       body,
	}

	return ir.Commentable{Comment: "Builds the outgoing response for this operation's Output.", Inner: fn}
}

// simpleStyleArrayParams renders a Swift array literal of (name, explode)
// tuples for every style=simple array-valued path/header parameter the
// operation declares, in declaration order (spec §8 Determinism): explode
// chooses comma-joined vs repeated key=value array serialization in the
// runtime's attachParameters (SPEC_FULL.md §12 "Header parameter arrays").
// Parameters that don't survive filtering (unsupported style, cookie
// location) are never in op.Parameters' style-supported subset, so this
// only ever names a parameter the rest of Input actually carries.
func simpleStyleArrayParams(op *model.Operation) string {
	var parts []string

	for _, p := range op.Parameters {
		if p.In != "path" && p.In != "header" {
			continue
		}
		if !parameterStyleSupported(p) {
			continue
		}
		if p.Schema == nil || p.Schema.Type != "array" {
			continue
		}

		parts = append(parts, fmt.Sprintf("(%s, %t)", strconv.Quote(p.Name), p.Explode))
	}

	if len(parts) == 0 {
		return "[]"
	}

	return "[" + strings.Join(parts, ", ") + "]"
}

// statusPattern renders the switch-case pattern matching a documented
// response key: a literal status code, a range's leading-digit pattern,
// or "default".
func statusPattern(status string) string {
	switch status {
	case "1XX", "2XX", "3XX", "4XX", "5XX":
		digit := status[:1]
		return digit + "00..." + digit + "99"
	case "default":
		return "default"
	default:
		return status
	}
}
