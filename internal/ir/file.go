package ir

// CodeBlock pairs an optional leading comment with exactly one Declaration
// or Expression (spec §4.8). It is the unit the renderer walks: nothing
// besides a *File tree crosses the boundary between a translator and the
// renderer (spec §4.8 "The tree is the contract... nothing else leaks").
type CodeBlock struct {
	Comment string
	Item    any // Declaration or Expression
}

// DeclarationBlock wraps a Declaration as a CodeBlock.
func DeclarationBlock(d Declaration) CodeBlock {
	return CodeBlock{Item: d}
}

// ExpressionBlock wraps an Expression as a CodeBlock.
func ExpressionBlock(e Expression) CodeBlock {
	return CodeBlock{Item: e}
}

// File is the top-level unit the renderer produces one text output from:
// a top comment, an import list, and an ordered sequence of code blocks.
type File struct {
	TopComment string
	Imports    []string
	Blocks     []CodeBlock
}
