package types

// Type is either a Var, an *Operator or a *Row.
//
// Vars only mean something relative to the Arena that created them,
// so anything that needs to look through a Var (printing, pruning,
// unification) goes through an Arena.
type Type interface {
	typeNode()
}

var (
	_ Type = Var(0)
	_ Type = (*Operator)(nil)
	_ Type = (*Row)(nil)
)

// Var is a handle to a type variable slot in an Arena
type Var int

func (Var) typeNode() {}

// FunctionName is the name of the binary function type operator
const FunctionName = "->"

// Operator is an n-ary named type constructor.
// Nullary operators are the base types.
type Operator struct {
	Name string
	Args []Type
}

func (*Operator) typeNode() {}

var (
	Number  = &Operator{Name: "number"}
	Boolean = &Operator{Name: "boolean"}
	String  = &Operator{Name: "string"}
)

// Function returns the type of functions from 'from' to 'to'
func Function(from, to Type) *Operator {
	return &Operator{Name: FunctionName, Args: []Type{from, to}}
}

// IsFunction reports whether t is a function type, without pruning
func IsFunction(t Type) bool {
	op, ok := t.(*Operator)
	return ok && op.Name == FunctionName && len(op.Args) == 2
}
