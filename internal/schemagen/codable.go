package schemagen

import (
	"sort"
	"strings"

	"github.com/talav/oasgen/internal/ir"
	"github.com/talav/oasgen/model"
)

// codableProperty is a locally-declared struct property that participates
// in a custom init(from:)/encode(to:) pair keyed by CodingKeys.
type codableProperty struct {
	CaseName string
	TypeExpr string
	Required bool
}

// codableBranch is a struct member whose value is decoded/encoded as its
// own Codable type, read from (or written to) the same container/decoder
// rather than nested under its own key — used for allOf's ref branches and
// every anyOf branch (spec §4.4).
type codableBranch struct {
	FieldName string
	TypeExpr  string
}

func initFunction(access string, body []ir.CodeBlock) ir.Declaration {
	return ir.Function{
		Name:       "init",
		Access:     access,
		Parameters: []ir.Parameter{{Label: "from", Name: "decoder", Type: "Decoder"}},
		Throws:     true,
		Body:       body,
	}
}

func encodeFunction(access string, body []ir.CodeBlock) ir.Declaration {
	return ir.Function{
		Name:       "encode",
		Access:     access,
		Parameters: []ir.Parameter{{Label: "to", Name: "encoder", Type: "Encoder"}},
		Throws:     true,
		Body:       body,
	}
}

// dotCase renders an implicit member expression, e.g. `.indoor`.
func dotCase(name string) ir.Expression { return ir.Identifier{Name: "." + name} }

func tryExpr(e ir.Expression) ir.Expression { return ir.UnaryKeyword{Keyword: "try", Operand: e} }

func memberCall(base, method string, args ...ir.Argument) ir.Expression {
	return ir.FunctionCall{Callee: ir.MemberAccess{Base: ir.Identifier{Name: base}, Member: method}, Arguments: args}
}

// bareReturn is a `return` statement with no value.
func bareReturn() ir.Expression { return ir.Identifier{Name: "return"} }

// rawValueCodable builds the custom init(from:)/encode(to:) pair a
// raw-value sum type needs once an `undocumented` associated-value case
// sits alongside its raw-value cases: Swift cannot synthesize Codable for
// an enum mixing the two case forms (spec §4.4).
func rawValueCodable(access, rawType string, cases []ir.EnumCase) []ir.Declaration {
	decodeCases := make([]ir.SwitchCase, 0, len(cases)+1)
	encodeCases := make([]ir.SwitchCase, 0, len(cases)+1)

	for _, c := range cases {
		decodeCases = append(decodeCases, ir.SwitchCase{
			Pattern: c.RawValueLiteral,
			Body:    []ir.CodeBlock{ir.ExpressionBlock(ir.Assignment{Left: ir.Identifier{Name: "self"}, Right: dotCase(c.Name)})},
		})
		encodeCases = append(encodeCases, ir.SwitchCase{
			Pattern: "." + c.Name,
			Body:    []ir.CodeBlock{ir.ExpressionBlock(tryExpr(memberCall("container", "encode", ir.Argument{Value: ir.Identifier{Name: c.RawValueLiteral}})))},
		})
	}

	decodeCases = append(decodeCases, ir.SwitchCase{
		Pattern: "default",
		Body: []ir.CodeBlock{ir.ExpressionBlock(ir.Assignment{
			Left:  ir.Identifier{Name: "self"},
			Right: ir.FunctionCall{Callee: dotCase("undocumented"), Arguments: []ir.Argument{{Value: ir.Identifier{Name: "rawValue"}}}},
		})},
	})
	encodeCases = append(encodeCases, ir.SwitchCase{
		Pattern: ".undocumented(let rawValue)",
		Body:    []ir.CodeBlock{ir.ExpressionBlock(tryExpr(memberCall("container", "encode", ir.Argument{Value: ir.Identifier{Name: "rawValue"}})))},
	})

	decodeBody := []ir.CodeBlock{
		ir.ExpressionBlock(ir.ValueBinding{Kind: "let", Name: "container", Value: tryExpr(memberCall("decoder", "singleValueContainer"))}),
		ir.ExpressionBlock(ir.ValueBinding{
			Kind: "let", Name: "rawValue",
			Value: tryExpr(memberCall("container", "decode", ir.Argument{Value: ir.MemberAccess{Base: ir.Identifier{Name: rawType}, Member: "self"}})),
		}),
		ir.ExpressionBlock(ir.Switch{Subject: ir.Identifier{Name: "rawValue"}, Cases: decodeCases}),
	}

	encodeBody := []ir.CodeBlock{
		ir.ExpressionBlock(ir.ValueBinding{Kind: "var", Name: "container", Value: memberCall("encoder", "singleValueContainer")}),
		ir.ExpressionBlock(ir.Switch{Subject: ir.Identifier{Name: "self"}, Cases: encodeCases}),
	}

	return []ir.Declaration{initFunction(access, decodeBody), encodeFunction(access, encodeBody)}
}

// untaggedOneOfCodable builds decode-by-trying-each-branch-in-order and
// encode-whichever-case-is-set for a oneOf with no discriminator (spec
// §4.4).
func untaggedOneOfCodable(access, typeName string, branches []codableBranch) []ir.Declaration {
	var decodeBody []ir.CodeBlock

	for _, b := range branches {
		decodeBody = append(decodeBody, ir.ExpressionBlock(ir.If{
			Condition: ir.ValueBinding{
				Kind: "let", Name: "value",
				Value: ir.UnaryKeyword{Keyword: "try?", Operand: ir.FunctionCall{
					Callee:    ir.Identifier{Name: b.TypeExpr},
					Arguments: []ir.Argument{{Label: "from", Value: ir.Identifier{Name: "decoder"}}},
				}},
			},
			Then: []ir.CodeBlock{
				ir.ExpressionBlock(ir.Assignment{
					Left:  ir.Identifier{Name: "self"},
					Right: ir.FunctionCall{Callee: dotCase(b.FieldName), Arguments: []ir.Argument{{Value: ir.Identifier{Name: "value"}}}},
				}),
				ir.ExpressionBlock(bareReturn()),
			},
		}))
	}

	decodeBody = append(decodeBody, ir.ExpressionBlock(ir.UnaryKeyword{
		Keyword: "throw",
		Operand: ir.FunctionCall{
			Callee: ir.MemberAccess{Base: ir.Identifier{Name: "DecodingError"}, Member: "dataCorrupted"},
			Arguments: []ir.Argument{{Value: ir.FunctionCall{
				Callee: ir.MemberAccess{Base: ir.Identifier{Name: "DecodingError"}, Member: "Context"},
				Arguments: []ir.Argument{
					{Label: "codingPath", Value: ir.MemberAccess{Base: ir.Identifier{Name: "decoder"}, Member: "codingPath"}},
					{Label: "debugDescription", Value: ir.Literal{Value: "No branch of " + typeName + " matched"}},
				},
			}}},
		},
	}))

	encodeCases := make([]ir.SwitchCase, 0, len(branches))
	for _, b := range branches {
		encodeCases = append(encodeCases, ir.SwitchCase{
			Pattern: "." + b.FieldName + "(let value)",
			Body:    []ir.CodeBlock{ir.ExpressionBlock(tryExpr(memberCall("value", "encode", ir.Argument{Label: "to", Value: ir.Identifier{Name: "encoder"}})))},
		})
	}

	encodeBody := []ir.CodeBlock{ir.ExpressionBlock(ir.Switch{Subject: ir.Identifier{Name: "self"}, Cases: encodeCases})}

	return []ir.Declaration{initFunction(access, decodeBody), encodeFunction(access, encodeBody)}
}

// discriminatedOneOfCodable builds decode-by-discriminator-property and
// encode-whichever-case-is-set for a oneOf carrying a discriminator (spec
// §4.4): explicit mapping entries are tried first, sorted case-
// insensitively, then remaining branches keyed by their own hint in
// document order; an unrecognized discriminator value falls back to
// undocumented.
func discriminatedOneOfCodable(access string, d *model.Discriminator, branches []codableBranch, hints map[string]string) []ir.Declaration {
	keyEnum := ir.Enum{
		Name:         "DiscriminatorKey",
		Access:       "private",
		Conformances: []string{"String", "CodingKey"},
		Cases:        []ir.EnumCase{{Name: "value", RawValueLiteral: literalExpr(d.PropertyName)}},
	}

	used := map[string]bool{}
	type mapped struct {
		value  string
		branch codableBranch
	}
	var ordered []mapped

	mappingKeys := make([]string, 0, len(d.Mapping))
	for k := range d.Mapping {
		mappingKeys = append(mappingKeys, k)
	}
	sort.Slice(mappingKeys, func(i, j int) bool { return strings.ToLower(mappingKeys[i]) < strings.ToLower(mappingKeys[j]) })

	for _, value := range mappingKeys {
		ref, ok := model.ParseReference(d.Mapping[value])
		if !ok {
			continue
		}
		for _, b := range branches {
			if hints[b.FieldName] == ref.Name && !used[b.FieldName] {
				used[b.FieldName] = true
				ordered = append(ordered, mapped{value: value, branch: b})
				break
			}
		}
	}
	for _, b := range branches {
		if used[b.FieldName] {
			continue
		}
		ordered = append(ordered, mapped{value: hints[b.FieldName], branch: b})
	}

	decodeCases := make([]ir.SwitchCase, 0, len(ordered)+1)
	encodeCases := make([]ir.SwitchCase, 0, len(ordered)+1)
	for _, m := range ordered {
		decodeCases = append(decodeCases, ir.SwitchCase{
			Pattern: literalExpr(m.value),
			Body: []ir.CodeBlock{ir.ExpressionBlock(ir.Assignment{
				Left: ir.Identifier{Name: "self"},
				Right: ir.FunctionCall{
					Callee: dotCase(m.branch.FieldName),
					Arguments: []ir.Argument{{Value: tryExpr(ir.FunctionCall{
						Callee:    ir.Identifier{Name: m.branch.TypeExpr},
						Arguments: []ir.Argument{{Label: "from", Value: ir.Identifier{Name: "decoder"}}},
					})}},
				},
			})},
		})
		encodeCases = append(encodeCases, ir.SwitchCase{
			Pattern: "." + m.branch.FieldName + "(let value)",
			Body:    []ir.CodeBlock{ir.ExpressionBlock(tryExpr(memberCall("value", "encode", ir.Argument{Label: "to", Value: ir.Identifier{Name: "encoder"}})))},
		})
	}
	decodeCases = append(decodeCases, ir.SwitchCase{
		Pattern: "default",
		Body: []ir.CodeBlock{ir.ExpressionBlock(ir.Assignment{
			Left:  ir.Identifier{Name: "self"},
			Right: ir.FunctionCall{Callee: dotCase("undocumented"), Arguments: []ir.Argument{{Value: ir.Identifier{Name: "discriminatorValue"}}}},
		})},
	})
	encodeCases = append(encodeCases, ir.SwitchCase{Pattern: ".undocumented", Body: []ir.CodeBlock{ir.ExpressionBlock(ir.Identifier{Name: "break"})}})

	decodeBody := []ir.CodeBlock{
		ir.ExpressionBlock(ir.ValueBinding{
			Kind: "let", Name: "container",
			Value: tryExpr(memberCall("decoder", "container", ir.Argument{Label: "keyedBy", Value: ir.MemberAccess{Base: ir.Identifier{Name: "DiscriminatorKey"}, Member: "self"}})),
		}),
		ir.ExpressionBlock(ir.ValueBinding{
			Kind: "let", Name: "discriminatorValue",
			Value: tryExpr(memberCall("container", "decode", ir.Argument{Value: ir.MemberAccess{Base: ir.Identifier{Name: "String"}, Member: "self"}}, ir.Argument{Label: "forKey", Value: dotCase("value")})),
		}),
		ir.ExpressionBlock(ir.Switch{Subject: ir.Identifier{Name: "discriminatorValue"}, Cases: decodeCases}),
	}

	encodeBody := []ir.CodeBlock{ir.ExpressionBlock(ir.Switch{Subject: ir.Identifier{Name: "self"}, Cases: encodeCases})}

	return []ir.Declaration{keyEnum, initFunction(access, decodeBody), encodeFunction(access, encodeBody)}
}

// allOfCodable flattens every ref branch's Codable conformance into the
// same container/decoder the local properties use, instead of nesting it
// under its own field name (spec §4.4 "allOf-merge").
func allOfCodable(access string, refs []codableBranch, props []codableProperty) []ir.Declaration {
	var decodeBody []ir.CodeBlock
	var encodeBody []ir.CodeBlock

	if len(props) > 0 {
		decodeBody = append(decodeBody, ir.ExpressionBlock(ir.ValueBinding{
			Kind: "let", Name: "container",
			Value: tryExpr(memberCall("decoder", "container", ir.Argument{Label: "keyedBy", Value: ir.MemberAccess{Base: ir.Identifier{Name: "CodingKeys"}, Member: "self"}})),
		}))
		encodeBody = append(encodeBody, ir.ExpressionBlock(ir.ValueBinding{
			Kind: "var", Name: "container",
			Value: memberCall("encoder", "container", ir.Argument{Label: "keyedBy", Value: ir.MemberAccess{Base: ir.Identifier{Name: "CodingKeys"}, Member: "self"}}),
		}))

		for _, p := range props {
			decodeMethod := "decode"
			if !p.Required {
				decodeMethod = "decodeIfPresent"
			}
			decodeBody = append(decodeBody, ir.ExpressionBlock(ir.Assignment{
				Left: ir.MemberAccess{Base: ir.Identifier{Name: "self"}, Member: p.CaseName},
				Right: tryExpr(memberCall("container", decodeMethod,
					ir.Argument{Value: ir.MemberAccess{Base: ir.Identifier{Name: p.TypeExpr}, Member: "self"}},
					ir.Argument{Label: "forKey", Value: dotCase(p.CaseName)})),
			}))
			encodeBody = append(encodeBody, ir.ExpressionBlock(tryExpr(memberCall("container", "encode",
				ir.Argument{Value: ir.MemberAccess{Base: ir.Identifier{Name: "self"}, Member: p.CaseName}},
				ir.Argument{Label: "forKey", Value: dotCase(p.CaseName)}))))
		}
	}

	for _, r := range refs {
		decodeBody = append(decodeBody, ir.ExpressionBlock(ir.Assignment{
			Left: ir.MemberAccess{Base: ir.Identifier{Name: "self"}, Member: r.FieldName},
			Right: tryExpr(ir.FunctionCall{
				Callee:    ir.Identifier{Name: r.TypeExpr},
				Arguments: []ir.Argument{{Label: "from", Value: ir.Identifier{Name: "decoder"}}},
			}),
		}))
		encodeBody = append(encodeBody, ir.ExpressionBlock(tryExpr(memberCall(r.FieldName, "encode", ir.Argument{Label: "to", Value: ir.Identifier{Name: "encoder"}}))))
	}

	return []ir.Declaration{initFunction(access, decodeBody), encodeFunction(access, encodeBody)}
}

// anyOfCodable decodes every branch independently, optimistically, from
// the same decoder, and encodes whichever branches ended up non-nil (spec
// §4.4 "anyOf": any non-empty subset of branches may be present
// simultaneously).
func anyOfCodable(access string, branches []codableBranch) []ir.Declaration {
	var decodeBody []ir.CodeBlock
	var encodeBody []ir.CodeBlock

	for _, b := range branches {
		decodeBody = append(decodeBody, ir.ExpressionBlock(ir.Assignment{
			Left: ir.MemberAccess{Base: ir.Identifier{Name: "self"}, Member: b.FieldName},
			Right: ir.UnaryKeyword{Keyword: "try?", Operand: ir.FunctionCall{
				Callee:    ir.Identifier{Name: b.TypeExpr},
				Arguments: []ir.Argument{{Label: "from", Value: ir.Identifier{Name: "decoder"}}},
			}},
		}))
		encodeBody = append(encodeBody, ir.ExpressionBlock(ir.If{
			Condition: ir.ValueBinding{Kind: "let", Name: "value", Value: ir.MemberAccess{Base: ir.Identifier{Name: "self"}, Member: b.FieldName}},
			Then:      []ir.CodeBlock{ir.ExpressionBlock(tryExpr(memberCall("value", "encode", ir.Argument{Label: "to", Value: ir.Identifier{Name: "encoder"}})))},
		}))
	}

	return []ir.Declaration{initFunction(access, decodeBody), encodeFunction(access, encodeBody)}
}

// dynamicCodingKeyStruct is a private CodingKey conformance that can
// represent any JSON object key, used to enumerate and decode/encode the
// keys additionalPropertiesCodable doesn't already know about.
func dynamicCodingKeyStruct() ir.Declaration {
	return ir.Struct{
		Name:         "DynamicKey",
		Access:       "private",
		Conformances: []string{"CodingKey"},
		Members: []ir.Declaration{
			ir.Variable{Name: "stringValue", Kind: "var", Type: "String"},
			ir.Variable{Name: "intValue", Kind: "var", Type: "Int?"},
			ir.Function{
				Name: "init", Failable: true,
				Parameters: []ir.Parameter{{Name: "stringValue", Type: "String"}},
				Body: []ir.CodeBlock{
					ir.ExpressionBlock(ir.Assignment{Left: ir.MemberAccess{Base: ir.Identifier{Name: "self"}, Member: "stringValue"}, Right: ir.Identifier{Name: "stringValue"}}),
					ir.ExpressionBlock(ir.Assignment{Left: ir.MemberAccess{Base: ir.Identifier{Name: "self"}, Member: "intValue"}, Right: ir.Literal{Value: nil}}),
				},
			},
			ir.Function{
				Name: "init", Failable: true,
				Parameters: []ir.Parameter{{Name: "intValue", Type: "Int"}},
				Body: []ir.CodeBlock{
					ir.ExpressionBlock(ir.Assignment{
						Left:  ir.MemberAccess{Base: ir.Identifier{Name: "self"}, Member: "stringValue"},
						Right: ir.FunctionCall{Callee: ir.Identifier{Name: "String"}, Arguments: []ir.Argument{{Value: ir.Identifier{Name: "intValue"}}}},
					}),
					ir.ExpressionBlock(ir.Assignment{Left: ir.MemberAccess{Base: ir.Identifier{Name: "self"}, Member: "intValue"}, Right: ir.Identifier{Name: "intValue"}}),
				},
			},
		},
	}
}

// additionalPropertiesCodable captures any JSON key not covered by props
// into the additionalProperties dictionary, decoded from (and re-encoded
// into) the same keyed container the declared properties use (spec §4.4).
func additionalPropertiesCodable(access string, props []codableProperty, valueType string) []ir.Declaration {
	var decodeBody []ir.CodeBlock
	var encodeBody []ir.CodeBlock

	if len(props) > 0 {
		decodeBody = append(decodeBody, ir.ExpressionBlock(ir.ValueBinding{
			Kind: "let", Name: "container",
			Value: tryExpr(memberCall("decoder", "container", ir.Argument{Label: "keyedBy", Value: ir.MemberAccess{Base: ir.Identifier{Name: "CodingKeys"}, Member: "self"}})),
		}))
		encodeBody = append(encodeBody, ir.ExpressionBlock(ir.ValueBinding{
			Kind: "var", Name: "container",
			Value: memberCall("encoder", "container", ir.Argument{Label: "keyedBy", Value: ir.MemberAccess{Base: ir.Identifier{Name: "CodingKeys"}, Member: "self"}}),
		}))

		for _, p := range props {
			decodeMethod := "decode"
			if !p.Required {
				decodeMethod = "decodeIfPresent"
			}
			decodeBody = append(decodeBody, ir.ExpressionBlock(ir.Assignment{
				Left: ir.MemberAccess{Base: ir.Identifier{Name: "self"}, Member: p.CaseName},
				Right: tryExpr(memberCall("container", decodeMethod,
					ir.Argument{Value: ir.MemberAccess{Base: ir.Identifier{Name: p.TypeExpr}, Member: "self"}},
					ir.Argument{Label: "forKey", Value: dotCase(p.CaseName)})),
			}))
			encodeBody = append(encodeBody, ir.ExpressionBlock(tryExpr(memberCall("container", "encode",
				ir.Argument{Value: ir.MemberAccess{Base: ir.Identifier{Name: "self"}, Member: p.CaseName}},
				ir.Argument{Label: "forKey", Value: dotCase(p.CaseName)}))))
		}
	}

	decodeBody = append(decodeBody,
		ir.ExpressionBlock(ir.ValueBinding{
			Kind: "let", Name: "dynamicContainer",
			Value: tryExpr(memberCall("decoder", "container", ir.Argument{Label: "keyedBy", Value: ir.MemberAccess{Base: ir.Identifier{Name: "DynamicKey"}, Member: "self"}})),
		}),
		ir.ExpressionBlock(ir.ValueBinding{Kind: "var", Name: "extra", Value: ir.Identifier{Name: "[String: " + valueType + "]()"}}),
		ir.ExpressionBlock(ir.ForIn{
			Pattern:  "key",
			Sequence: ir.MemberAccess{Base: ir.Identifier{Name: "dynamicContainer"}, Member: "allKeys"},
			Where: ir.BinaryOperation{
				Left: ir.FunctionCall{
					Callee:    ir.Identifier{Name: "CodingKeys"},
					Arguments: []ir.Argument{{Label: "stringValue", Value: ir.MemberAccess{Base: ir.Identifier{Name: "key"}, Member: "stringValue"}}},
				},
				Operator: "==",
				Right:    ir.Literal{Value: nil},
			},
			Body: []ir.CodeBlock{
				ir.ExpressionBlock(ir.Assignment{
					Left: ir.Subscript{Base: ir.Identifier{Name: "extra"}, Index: ir.MemberAccess{Base: ir.Identifier{Name: "key"}, Member: "stringValue"}},
					Right: tryExpr(memberCall("dynamicContainer", "decode",
						ir.Argument{Value: ir.MemberAccess{Base: ir.Identifier{Name: valueType}, Member: "self"}},
						ir.Argument{Label: "forKey", Value: ir.Identifier{Name: "key"}})),
				}),
			},
		}),
		ir.ExpressionBlock(ir.If{
			Condition: ir.MemberAccess{Base: ir.Identifier{Name: "extra"}, Member: "isEmpty"},
			Then: []ir.CodeBlock{ir.ExpressionBlock(ir.Assignment{
				Left: ir.MemberAccess{Base: ir.Identifier{Name: "self"}, Member: "additionalProperties"}, Right: ir.Literal{Value: nil},
			})},
			Else: []ir.CodeBlock{ir.ExpressionBlock(ir.Assignment{
				Left: ir.MemberAccess{Base: ir.Identifier{Name: "self"}, Member: "additionalProperties"}, Right: ir.Identifier{Name: "extra"},
			})},
		}),
	)

	encodeBody = append(encodeBody,
		ir.ExpressionBlock(ir.ValueBinding{
			Kind: "var", Name: "dynamicContainer",
			Value: memberCall("encoder", "container", ir.Argument{Label: "keyedBy", Value: ir.MemberAccess{Base: ir.Identifier{Name: "DynamicKey"}, Member: "self"}}),
		}),
		ir.ExpressionBlock(ir.ForIn{
			Pattern:  "(key, value)",
			Sequence: ir.BinaryOperation{Left: ir.MemberAccess{Base: ir.Identifier{Name: "self"}, Member: "additionalProperties"}, Operator: "??", Right: ir.Identifier{Name: "[:]"}},
			Body: []ir.CodeBlock{
				ir.ExpressionBlock(tryExpr(memberCall("dynamicContainer", "encode",
					ir.Argument{Value: ir.Identifier{Name: "value"}},
					ir.Argument{Label: "forKey", Value: ir.ForceUnwrap{Operand: ir.FunctionCall{
						Callee:    ir.Identifier{Name: "DynamicKey"},
						Arguments: []ir.Argument{{Label: "stringValue", Value: ir.Identifier{Name: "key"}}},
					}}},
				))),
			},
		}),
	)

	return []ir.Declaration{dynamicCodingKeyStruct(), initFunction(access, decodeBody), encodeFunction(access, encodeBody)}
}
