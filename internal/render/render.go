package render

import (
	"fmt"
	"strings"

	"github.com/talav/oasgen/internal/ir"
)

// File renders a complete *ir.File: top comment, imports, then every code
// block in order.
func File(f *ir.File) string {
	w := newIndentWriter()

	if f.TopComment != "" {
		w.writeLines(f.TopComment)
		w.writeLine("")
	}

	for _, imp := range f.Imports {
		w.writeLine(fmt.Sprintf("import %s", imp))
	}
	if len(f.Imports) > 0 {
		w.writeLine("")
	}

	for i, block := range f.Blocks {
		if i > 0 {
			w.writeLine("")
		}
		renderBlock(w, block)
	}

	return w.String()
}

func renderBlock(w *indentWriter, block ir.CodeBlock) {
	if block.Comment != "" {
		writeDocComment(w, block.Comment)
	}

	switch item := block.Item.(type) {
	case ir.Declaration:
		renderDeclaration(w, item)
	case ir.Expression:
		w.writeLines(renderExpr(item))
	default:
		// Nothing else is a legal CodeBlock payload (spec §4.8); an empty
		// block is simply a standalone comment.
	}
}

func writeDocComment(w *indentWriter, comment string) {
	for _, line := range strings.Split(comment, "\n") {
		w.writeLine("/// " + line)
	}
}

func renderDeclaration(w *indentWriter, d ir.Declaration) {
	switch v := d.(type) {
	case ir.Commentable:
		writeDocComment(w, v.Comment)
		renderDeclaration(w, v.Inner)
	case ir.Deprecated:
		w.writeLine(fmt.Sprintf("@available(*, deprecated, message: %q)", v.Info))
		renderDeclaration(w, v.Inner)
	case ir.Struct:
		renderStruct(w, v)
	case ir.Enum:
		renderEnum(w, v)
	case ir.EnumCase:
		w.writeLine("case " + renderEnumCaseSignature(v))
	case ir.Typealias:
		w.writeLine(accessPrefix(v.Access) + "typealias " + v.Name + " = " + v.Target)
	case ir.Variable:
		renderVariable(w, v)
	case ir.Extension:
		renderExtension(w, v)
	case ir.Protocol:
		renderProtocol(w, v)
	case ir.Function:
		renderFunction(w, v)
	}
}

func accessPrefix(access string) string {
	if access == "" {
		return ""
	}
	return access + " "
}

func renderConformances(conformances []string) string {
	if len(conformances) == 0 {
		return ""
	}
	return ": " + strings.Join(conformances, ", ")
}

func renderStruct(w *indentWriter, s ir.Struct) {
	w.writeLine(fmt.Sprintf("%sstruct %s%s {", accessPrefix(s.Access), s.Name, renderConformances(s.Conformances)))
	w.indent()
	renderMembers(w, s.Members)
	w.outdent()
	w.writeLine("}")
}

func renderEnum(w *indentWriter, e ir.Enum) {
	indirect := ""
	if e.Indirect {
		indirect = "indirect "
	}
	w.writeLine(fmt.Sprintf("%s%senum %s%s {", accessPrefix(e.Access), indirect, e.Name, renderConformances(e.Conformances)))
	w.indent()
	for _, c := range e.Cases {
		w.writeLine("case " + renderEnumCaseSignature(c))
	}
	renderMembers(w, e.Members)
	w.outdent()
	w.writeLine("}")
}

func renderEnumCaseSignature(c ir.EnumCase) string {
	if c.RawValueLiteral != "" {
		return c.Name + " = " + c.RawValueLiteral
	}

	if len(c.AssociatedValues) == 0 {
		return c.Name
	}

	parts := make([]string, len(c.AssociatedValues))
	for i, av := range c.AssociatedValues {
		if av.Label == "" {
			parts[i] = av.Type
		} else {
			parts[i] = av.Label + ": " + av.Type
		}
	}

	return fmt.Sprintf("%s(%s)", c.Name, strings.Join(parts, ", "))
}

func renderVariable(w *indentWriter, v ir.Variable) {
	decl := fmt.Sprintf("%s%s %s: %s", accessPrefix(v.Access), v.Kind, v.Name, v.Type)
	if v.DefaultValue != nil {
		decl += " = " + renderExpr(v.DefaultValue)
	}

	if len(v.Body) == 0 {
		w.writeLine(decl)
		return
	}

	w.writeLine(decl + " {")
	w.indent()
	renderBlocks(w, v.Body)
	w.outdent()
	w.writeLine("}")
}

func renderExtension(w *indentWriter, e ir.Extension) {
	w.writeLine(fmt.Sprintf("extension %s%s {", e.OnType, renderConformances(e.Conformances)))
	w.indent()
	renderMembers(w, e.Members)
	w.outdent()
	w.writeLine("}")
}

func renderProtocol(w *indentWriter, p ir.Protocol) {
	w.writeLine(fmt.Sprintf("%sprotocol %s {", accessPrefix(p.Access), p.Name))
	w.indent()
	renderMembers(w, p.Requirements)
	w.outdent()
	w.writeLine("}")
}

func renderFunction(w *indentWriter, f ir.Function) {
	params := make([]string, len(f.Parameters))
	for i, p := range f.Parameters {
		if p.Label == "" || p.Label == p.Name {
			params[i] = fmt.Sprintf("%s: %s", p.Name, p.Type)
		} else {
			params[i] = fmt.Sprintf("%s %s: %s", p.Label, p.Name, p.Type)
		}
	}

	isInit := f.Name == "init"

	sig := fmt.Sprintf("%s", accessPrefix(f.Access))
	if f.Static {
		sig += "static "
	}
	if isInit {
		name := f.Name
		if f.Failable {
			name += "?"
		}
		sig += fmt.Sprintf("%s(%s)", name, strings.Join(params, ", "))
	} else {
		sig += fmt.Sprintf("func %s(%s)", f.Name, strings.Join(params, ", "))
	}
	if f.Async {
		sig += " async"
	}
	if f.Throws {
		sig += " throws"
	}
	if !isInit && f.ReturnType != "" {
		sig += " -> " + f.ReturnType
	}
	sig += " {"

	w.writeLine(sig)
	w.indent()
	renderBlocks(w, f.Body)
	w.outdent()
	w.writeLine("}")
}

func renderMembers(w *indentWriter, members []ir.Declaration) {
	for i, m := range members {
		if i > 0 {
			w.writeLine("")
		}
		renderDeclaration(w, m)
	}
}

func renderBlocks(w *indentWriter, blocks []ir.CodeBlock) {
	for _, b := range blocks {
		renderBlock(w, b)
	}
}
