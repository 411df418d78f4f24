package ast

import (
	"go/token"
)

// Node is the base interface for all AST nodes.
type Node interface {
	Positioner
}

// Expr is the interface for all expression nodes in the AST.
//
// The tree is the desugared form of a Jsonnet program, so there are no
// object-level locals, no method fields and no implicit '+':
//
//	Object:              object literal, fields only
//	ObjectComprehension: {[k]: v for x in arr}
//	Local:               mutually recursive local bindings
//	Apply:               function call
//	Function:            function abstraction
//	BinaryOp, UnaryOp:   operators, including inheritance with '+'
//	Conditional:         if-then-else
//	Self, Var:           self and variable references
//	Index:               target[index], also target.field
//	SuperIndex, InSuper: super[index], index in super
//	Literal*:            literal values
//	Array, Error, Import, BuiltinFunction
type Expr interface {
	Node
	// ExprName is the Name of the syntax-type of the expression.
	ExprName() string
	// Describe is what to call this expression in error messages
	Describe() string

	exprNode() // Marker method to distinguish expressions
}

// File is a parsed program: a single top-level expression
type File struct {
	Range
	Name string
	Root Expr
	// Size is the length of the source in bytes
	Size int
	// Lines holds the offset of the first character of each line,
	// in the form expected by token.File.SetLines
	Lines []int
}

// FileSet returns a token.FileSet containing only f, along with the
// token.File which positions of f refer to
func (f File) FileSet() (*token.FileSet, *token.File) {
	fset := token.NewFileSet()
	tf := fset.AddFile(f.Name, -1, max(f.Size, 0))
	if len(f.Lines) > 0 {
		// SetLines rejects tables that do not fit the file,
		// in which case positions simply have no line information
		_ = tf.SetLines(f.Lines)
	}
	return fset, tf
}

// LineOffsets computes the table of line start offsets of src
func LineOffsets(src []byte) []int {
	lines := []int{0}
	for i, b := range src {
		if b == '\n' && i+1 < len(src) {
			lines = append(lines, i+1)
		}
	}
	return lines
}
