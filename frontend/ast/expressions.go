package ast

import "fmt"

var (
	_ Expr = (*Object)(nil)
	_ Expr = (*ObjectComprehension)(nil)
	_ Expr = (*Local)(nil)
	_ Expr = (*Apply)(nil)
	_ Expr = (*Function)(nil)
	_ Expr = (*BinaryOp)(nil)
	_ Expr = (*UnaryOp)(nil)
	_ Expr = (*Conditional)(nil)
	_ Expr = (*Self)(nil)
	_ Expr = (*Var)(nil)
	_ Expr = (*Index)(nil)
	_ Expr = (*SuperIndex)(nil)
	_ Expr = (*InSuper)(nil)
	_ Expr = (*LiteralNumber)(nil)
	_ Expr = (*LiteralString)(nil)
	_ Expr = (*LiteralBoolean)(nil)
	_ Expr = (*LiteralNull)(nil)
	_ Expr = (*Array)(nil)
	_ Expr = (*Error)(nil)
	_ Expr = (*Import)(nil)
	_ Expr = (*BuiltinFunction)(nil)
)

// Visibility of an object field, as written after its name
type Visibility int

const (
	VisibilityInherit Visibility = iota // :
	VisibilityHidden                    // ::
	VisibilityForced                    // :::
)

func (v Visibility) String() string {
	switch v {
	case VisibilityHidden:
		return "::"
	case VisibilityForced:
		return ":::"
	default:
		return ":"
	}
}

type Object struct {
	Range
	Fields []Field
}

type Field struct {
	Range
	// Name is usually a *LiteralString, computed field names are any Expr
	Name       Expr
	Visibility Visibility
	Body       Expr
}

// LiteralName returns the name of f if it is not computed
func (f *Field) LiteralName() (string, bool) {
	if s, ok := f.Name.(*LiteralString); ok {
		return s.Value, true
	}
	return "", false
}

type ObjectComprehension struct {
	Range
	Name  Expr
	Body  Expr
	Id    string
	Array Expr
}

type Local struct {
	Range
	Binds []Bind
	Body  Expr
}

type Bind struct {
	Range
	Name string
	Body Expr
}

type Apply struct {
	Range
	Target Expr
	Args   []Arg
}

// Arg is a function call argument. Name is empty for positional arguments.
type Arg struct {
	Name  string
	Value Expr
}

type Function struct {
	Range
	Params []Param
	Body   Expr
}

type Param struct {
	Range
	Name string
	// Default may be nil
	Default Expr
}

type BinaryOp struct {
	Range
	Left  Expr
	Op    BinaryOperator
	Right Expr
}

type UnaryOp struct {
	Range
	Op      UnaryOperator
	Operand Expr
}

type Conditional struct {
	Range
	Cond Expr
	Then Expr
	// Else may be nil
	Else Expr
}

type Self struct {
	Range
}

type Var struct {
	Range
	Name string
}

type Index struct {
	Range
	Target Expr
	Index  Expr
}

type SuperIndex struct {
	Range
	Index Expr
}

type InSuper struct {
	Range
	Index Expr
}

type LiteralNumber struct {
	Range
	Value float64
	// Text is the number as it was written in the source
	Text string
}

type LiteralString struct {
	Range
	Value string
}

type LiteralBoolean struct {
	Range
	Value bool
}

type LiteralNull struct {
	Range
}

type Array struct {
	Range
	Elements []Expr
}

type Error struct {
	Range
	Expr Expr
}

type ImportKind int

const (
	ImportCode ImportKind = iota
	ImportString
	ImportBinary
)

func (k ImportKind) String() string {
	switch k {
	case ImportString:
		return "importstr"
	case ImportBinary:
		return "importbin"
	default:
		return "import"
	}
}

type Import struct {
	Range
	Kind ImportKind
	Path string
}

// BuiltinFunction is a function of the standard library implemented natively
type BuiltinFunction struct {
	Range
	Name   string
	Params []string
}

func (*Object) exprNode()              {}
func (*ObjectComprehension) exprNode() {}
func (*Local) exprNode()               {}
func (*Apply) exprNode()               {}
func (*Function) exprNode()            {}
func (*BinaryOp) exprNode()            {}
func (*UnaryOp) exprNode()             {}
func (*Conditional) exprNode()         {}
func (*Self) exprNode()                {}
func (*Var) exprNode()                 {}
func (*Index) exprNode()               {}
func (*SuperIndex) exprNode()          {}
func (*InSuper) exprNode()             {}
func (*LiteralNumber) exprNode()       {}
func (*LiteralString) exprNode()       {}
func (*LiteralBoolean) exprNode()      {}
func (*LiteralNull) exprNode()         {}
func (*Array) exprNode()               {}
func (*Error) exprNode()               {}
func (*Import) exprNode()              {}
func (*BuiltinFunction) exprNode()     {}

func (*Object) ExprName() string              { return "Object" }
func (*ObjectComprehension) ExprName() string { return "ObjectComprehension" }
func (*Local) ExprName() string               { return "Local" }
func (*Apply) ExprName() string               { return "Apply" }
func (*Function) ExprName() string            { return "Function" }
func (*BinaryOp) ExprName() string            { return "BinaryOp" }
func (*UnaryOp) ExprName() string             { return "UnaryOp" }
func (*Conditional) ExprName() string         { return "Conditional" }
func (*Self) ExprName() string                { return "Self" }
func (*Var) ExprName() string                 { return "Var" }
func (*Index) ExprName() string               { return "Index" }
func (*SuperIndex) ExprName() string          { return "SuperIndex" }
func (*InSuper) ExprName() string             { return "InSuper" }
func (*LiteralNumber) ExprName() string       { return "LiteralNumber" }
func (*LiteralString) ExprName() string       { return "LiteralString" }
func (*LiteralBoolean) ExprName() string      { return "LiteralBoolean" }
func (*LiteralNull) ExprName() string         { return "LiteralNull" }
func (*Array) ExprName() string               { return "Array" }
func (*Error) ExprName() string               { return "Error" }
func (*Import) ExprName() string              { return "Import" }
func (*BuiltinFunction) ExprName() string     { return "BuiltinFunction" }

func (*Object) Describe() string              { return "object" }
func (*ObjectComprehension) Describe() string { return "object comprehension" }
func (*Local) Describe() string               { return "local binding" }
func (*Apply) Describe() string               { return "function call" }
func (*Function) Describe() string            { return "function" }
func (e *BinaryOp) Describe() string          { return fmt.Sprintf("'%s' operation", e.Op) }
func (e *UnaryOp) Describe() string           { return fmt.Sprintf("unary '%s' operation", e.Op) }
func (*Conditional) Describe() string         { return "conditional" }
func (*Self) Describe() string                { return "self" }
func (*Var) Describe() string                 { return "variable" }
func (*Index) Describe() string               { return "index" }
func (*SuperIndex) Describe() string          { return "super lookup" }
func (*InSuper) Describe() string             { return "'in super' check" }
func (*LiteralNumber) Describe() string       { return "number literal" }
func (*LiteralString) Describe() string       { return "string literal" }
func (*LiteralBoolean) Describe() string      { return "boolean literal" }
func (*LiteralNull) Describe() string         { return "null" }
func (*Array) Describe() string               { return "array" }
func (*Error) Describe() string               { return "error expression" }
func (e *Import) Describe() string            { return e.Kind.String() }
func (*BuiltinFunction) Describe() string     { return "built-in function" }
