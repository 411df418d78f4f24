package ir

import (
	"github.com/hashicorp/go-set/v3"
)

// Children returns the direct subexpressions of e, binding values first
func Children(e Expr) []Expr {
	switch e := e.(type) {
	case *Apply:
		return []Expr{e.Func, e.Arg}
	case *Lambda:
		return []Expr{e.Body}
	case *LetrecAnd:
		children := make([]Expr, 0, len(e.Bindings)+1)
		for _, b := range e.Bindings {
			children = append(children, b.Value)
		}
		return append(children, e.Body)
	case *Inherit:
		return []Expr{e.Base, e.Child}
	case *Identifier, *Literal:
		return nil
	default:
		panic("ir: unexpected expression type " + e.ExprName())
	}
}

// Inspect traverses e depth-first, calling f on every node until it returns false
func Inspect(e Expr, f func(Expr) bool) {
	if !f(e) {
		return
	}
	for _, child := range Children(e) {
		Inspect(child, f)
	}
}

// Identifiers returns the names of every Identifier within e,
// regardless of what binds them
func Identifiers(e Expr) *set.Set[string] {
	names := set.New[string](0)
	Inspect(e, func(e Expr) bool {
		if id, ok := e.(*Identifier); ok {
			names.Insert(id.Name)
		}
		return true
	})
	return names
}
