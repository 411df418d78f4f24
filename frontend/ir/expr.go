package ir

import (
	"github.com/cottand/jtype/frontend/ast"
)

// Expr is the core calculus that objects and inheritance are lowered to:
//
//	Identifier: variable reference
//	Apply:      single-argument application
//	Lambda:     single-parameter abstraction
//	LetrecAnd:  mutually recursive bindings scoped over a body
//	Inherit:    base + child, where child is a record
//	Literal:    number, string or boolean constant
type Expr interface {
	ast.Positioner
	ExprName() string
	Describe() string

	irNode()
}

var (
	_ Expr = (*Identifier)(nil)
	_ Expr = (*Apply)(nil)
	_ Expr = (*Lambda)(nil)
	_ Expr = (*LetrecAnd)(nil)
	_ Expr = (*Inherit)(nil)
	_ Expr = (*Literal)(nil)
)

type Identifier struct {
	ast.Range
	Name string
}

type Apply struct {
	ast.Range
	Func Expr
	Arg  Expr
}

type Lambda struct {
	ast.Range
	Param string
	Body  Expr
}

// Binding is a single name bound by a LetrecAnd.
// Field is set when the binding is the body of an object field,
// in which case Name is self.f for field f and Range covers the field.
type Binding struct {
	ast.Range
	Name  string
	Value Expr
	Field bool
}

type LetrecAnd struct {
	ast.Range
	Bindings []Binding
	Body     Expr
}

// Bound returns the names bound by l in order
func (l *LetrecAnd) Bound() []string {
	names := make([]string, len(l.Bindings))
	for i, b := range l.Bindings {
		names[i] = b.Name
	}
	return names
}

type Inherit struct {
	ast.Range
	Base  Expr
	Child Expr
}

type LiteralKind uint8

const (
	Number LiteralKind = iota
	String
	Boolean
)

func (k LiteralKind) String() string {
	switch k {
	case Number:
		return "number"
	case String:
		return "string"
	case Boolean:
		return "boolean"
	default:
		return "invalid"
	}
}

type Literal struct {
	ast.Range
	Kind LiteralKind
	// Value is the canonical syntax of the literal
	Value string
}

func (*Identifier) irNode() {}
func (*Apply) irNode()      {}
func (*Lambda) irNode()     {}
func (*LetrecAnd) irNode()  {}
func (*Inherit) irNode()    {}
func (*Literal) irNode()    {}

func (*Identifier) ExprName() string { return "Identifier" }
func (*Apply) ExprName() string      { return "Apply" }
func (*Lambda) ExprName() string     { return "Lambda" }
func (*LetrecAnd) ExprName() string  { return "LetrecAnd" }
func (*Inherit) ExprName() string    { return "Inherit" }
func (*Literal) ExprName() string    { return "Literal" }

func (e *Identifier) Describe() string { return "identifier '" + e.Name + "'" }
func (*Apply) Describe() string        { return "application" }
func (*Lambda) Describe() string       { return "function" }
func (*LetrecAnd) Describe() string    { return "recursive bindings" }
func (*Inherit) Describe() string      { return "inheritance" }
func (e *Literal) Describe() string    { return e.Kind.String() + " literal" }
