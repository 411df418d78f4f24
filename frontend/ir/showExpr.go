package ir

import (
	"strconv"
	"strings"
)

// ExprString renders expr on a single line:
//
//	letrec x = e1 and y = e2 in body
//	fn x -> body
//	f(x)
//	base inherit child
func ExprString(expr Expr) string {
	ctx := newShowContext()
	ctx.showExprWalker(expr, 0)
	return ctx.String()
}

type showContext struct {
	*strings.Builder
}

func newShowContext() *showContext {
	return &showContext{
		Builder: &strings.Builder{},
	}
}

// showExprWalker prints to ctx
//
// precedences are as follows:
// 0: can be shown on its own
// 5: left of inherit
// 6: right of inherit
// 10: function position of an application
func (ctx *showContext) showExprWalker(expr Expr, outerPrecedence int16) {
	if expr == nil {
		ctx.WriteString("nil")
		return
	}
	switch expr := expr.(type) {
	case *Identifier:
		ctx.WriteString(expr.Name)
	case *Literal:
		if expr.Kind == String {
			ctx.WriteString(strconv.Quote(expr.Value))
		} else {
			ctx.WriteString(expr.Value)
		}
	case *Apply:
		ctx.showExprWalker(expr.Func, 10)
		ctx.WriteString("(")
		ctx.showExprWalker(expr.Arg, 0)
		ctx.WriteString(")")
	case *Lambda:
		ctx.parenthesise(outerPrecedence > 0, func() {
			ctx.WriteString("fn " + expr.Param + " -> ")
			ctx.showExprWalker(expr.Body, 0)
		})
	case *LetrecAnd:
		ctx.parenthesise(outerPrecedence > 0, func() {
			ctx.WriteString("letrec")
			for i, binding := range expr.Bindings {
				if i > 0 {
					ctx.WriteString(" and")
				}
				ctx.WriteString(" " + binding.Name + " = ")
				ctx.showExprWalker(binding.Value, 1)
			}
			ctx.WriteString(" in ")
			ctx.showExprWalker(expr.Body, 0)
		})
	case *Inherit:
		ctx.parenthesise(outerPrecedence > 5, func() {
			ctx.showExprWalker(expr.Base, 5)
			ctx.WriteString(" inherit ")
			ctx.showExprWalker(expr.Child, 6)
		})
	default:
		if outerPrecedence > 0 {
			ctx.WriteString("(" + expr.ExprName() + ")")
		} else {
			ctx.WriteString(expr.ExprName())
		}
	}
}

func (ctx *showContext) parenthesise(do bool, show func()) {
	if do {
		ctx.WriteString("(")
	}
	show()
	if do {
		ctx.WriteString(")")
	}
}
