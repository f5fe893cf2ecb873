package render

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/talav/oasgen/internal/ir"
)

// renderExpr renders e to a single-line (or, for switch/if/do-catch,
// brace-delimited multi-line) string. Blocks nested inside a control-flow
// expression are rendered with a fresh indentWriter and spliced in, since
// Expression itself carries no indentation state.
func renderExpr(e ir.Expression) string {
	switch v := e.(type) {
	case ir.Literal:
		return renderLiteral(v.Value)
	case ir.Identifier:
		return v.Name
	case ir.MemberAccess:
		return renderExpr(v.Base) + "." + v.Member
	case ir.FunctionCall:
		return renderExpr(v.Callee) + "(" + renderArguments(v.Arguments) + ")"
	case ir.Assignment:
		return renderExpr(v.Left) + " = " + renderExpr(v.Right)
	case ir.Switch:
		return renderSwitch(v)
	case ir.If:
		return renderIf(v)
	case ir.DoCatch:
		return renderDoCatch(v)
	case ir.ValueBinding:
		return v.Kind + " " + v.Name + " = " + renderExpr(v.Value)
	case ir.UnaryKeyword:
		return v.Keyword + " " + renderExpr(v.Operand)
	case ir.BinaryKeyword:
		return renderExpr(v.Left) + " " + v.Keyword + " " + v.Right
	case ir.ClosureInvocation:
		args := make([]string, len(v.Arguments))
		for i, a := range v.Arguments {
			args[i] = renderExpr(a)
		}
		return renderExpr(v.Closure) + "(" + strings.Join(args, ", ") + ")"
	case ir.BinaryOperation:
		return renderExpr(v.Left) + " " + v.Operator + " " + renderExpr(v.Right)
	case ir.InOut:
		return "&" + renderExpr(v.Operand)
	case ir.OptionalChaining:
		return renderExpr(v.Operand) + "?"
	case ir.Tuple:
		return "(" + renderTupleElements(v.Elements) + ")"
	case ir.Subscript:
		return renderExpr(v.Base) + "[" + renderExpr(v.Index) + "]"
	case ir.ForceUnwrap:
		return renderExpr(v.Operand) + "!"
	case ir.ForIn:
		return renderForIn(v)
	default:
		return ""
	}
}

func renderForIn(v ir.ForIn) string {
	w := newIndentWriter()
	header := fmt.Sprintf("for %s in %s", v.Pattern, renderExpr(v.Sequence))
	if v.Where != nil {
		header += " where " + renderExpr(v.Where)
	}
	w.writeLine(header + " {")
	w.indent()
	renderBlocks(w, v.Body)
	w.outdent()
	w.writeLine("}")

	return strings.TrimSuffix(w.String(), "\n")
}

func renderLiteral(value any) string {
	switch v := value.(type) {
	case nil:
		return "nil"
	case string:
		return strconv.Quote(v)
	case bool:
		return strconv.FormatBool(v)
	default:
		return fmt.Sprintf("%v", v)
	}
}

func renderArguments(args []ir.Argument) string {
	parts := make([]string, len(args))
	for i, a := range args {
		if a.Label == "" {
			parts[i] = renderExpr(a.Value)
		} else {
			parts[i] = a.Label + ": " + renderExpr(a.Value)
		}
	}

	return strings.Join(parts, ", ")
}

func renderTupleElements(elements []ir.TupleElement) string {
	parts := make([]string, len(elements))
	for i, el := range elements {
		if el.Label == "" {
			parts[i] = renderExpr(el.Value)
		} else {
			parts[i] = el.Label + ": " + renderExpr(el.Value)
		}
	}

	return strings.Join(parts, ", ")
}

func renderSwitch(v ir.Switch) string {
	w := newIndentWriter()
	w.writeLine(fmt.Sprintf("switch %s {", renderExpr(v.Subject)))
	for _, c := range v.Cases {
		if c.Pattern == "default" {
			w.writeLine("default:")
		} else {
			w.writeLine("case " + c.Pattern + ":")
		}
		w.indent()
		renderBlocks(w, c.Body)
		w.outdent()
	}
	w.writeLine("}")

	return strings.TrimSuffix(w.String(), "\n")
}

func renderIf(v ir.If) string {
	w := newIndentWriter()
	w.writeLine(fmt.Sprintf("if %s {", renderExpr(v.Condition)))
	w.indent()
	renderBlocks(w, v.Then)
	w.outdent()
	if len(v.Else) > 0 {
		w.writeLine("} else {")
		w.indent()
		renderBlocks(w, v.Else)
		w.outdent()
	}
	w.writeLine("}")

	return strings.TrimSuffix(w.String(), "\n")
}

func renderDoCatch(v ir.DoCatch) string {
	w := newIndentWriter()
	w.writeLine("do {")
	w.indent()
	renderBlocks(w, v.Body)
	w.outdent()
	for _, c := range v.Catches {
		header := "} catch {"
		if c.Pattern != "" {
			header = "} catch " + c.Pattern + " {"
		}
		w.writeLine(header)
		w.indent()
		renderBlocks(w, c.Body)
		w.outdent()
	}
	w.writeLine("}")

	return strings.TrimSuffix(w.String(), "\n")
}
