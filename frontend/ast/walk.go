package ast

// Children returns the direct subexpressions of e in source order
func Children(e Expr) []Expr {
	switch e := e.(type) {
	case *Object:
		children := make([]Expr, 0, 2*len(e.Fields))
		for _, f := range e.Fields {
			children = append(children, f.Name, f.Body)
		}
		return children
	case *ObjectComprehension:
		return []Expr{e.Name, e.Body, e.Array}
	case *Local:
		children := make([]Expr, 0, len(e.Binds)+1)
		for _, b := range e.Binds {
			children = append(children, b.Body)
		}
		return append(children, e.Body)
	case *Apply:
		children := []Expr{e.Target}
		for _, arg := range e.Args {
			children = append(children, arg.Value)
		}
		return children
	case *Function:
		var children []Expr
		for _, p := range e.Params {
			if p.Default != nil {
				children = append(children, p.Default)
			}
		}
		return append(children, e.Body)
	case *BinaryOp:
		return []Expr{e.Left, e.Right}
	case *UnaryOp:
		return []Expr{e.Operand}
	case *Conditional:
		if e.Else == nil {
			return []Expr{e.Cond, e.Then}
		}
		return []Expr{e.Cond, e.Then, e.Else}
	case *Index:
		return []Expr{e.Target, e.Index}
	case *SuperIndex:
		return []Expr{e.Index}
	case *InSuper:
		return []Expr{e.Index}
	case *Array:
		return e.Elements
	case *Error:
		return []Expr{e.Expr}
	case *Self, *Var, *LiteralNumber, *LiteralString, *LiteralBoolean, *LiteralNull, *Import, *BuiltinFunction:
		return nil
	default:
		panic("ast: unhandled expression " + e.ExprName())
	}
}

// Inspect traverses e depth-first: it calls f(e) and, if f returns true,
// recurses into each of the children of e
func Inspect(e Expr, f func(Expr) bool) {
	if e == nil || !f(e) {
		return
	}
	for _, child := range Children(e) {
		Inspect(child, f)
	}
}
