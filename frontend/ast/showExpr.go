package ast

import (
	"strconv"
	"strings"
)

// ExprString renders expr in Jsonnet syntax, on a single line
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
// outerPrecedence is the precedence of the enclosing binary operator,
// 0 when expr can be shown on its own and 11 when it is the operand of
// a unary operator or of a postfix expression
func (ctx *showContext) showExprWalker(expr Expr, outerPrecedence int) {
	if expr == nil {
		ctx.WriteString("nil")
		return
	}
	switch expr := expr.(type) {
	case *LiteralNumber:
		if expr.Text != "" {
			ctx.WriteString(expr.Text)
		} else {
			ctx.WriteString(strconv.FormatFloat(expr.Value, 'g', -1, 64))
		}
	case *LiteralString:
		ctx.WriteString(strconv.Quote(expr.Value))
	case *LiteralBoolean:
		ctx.WriteString(strconv.FormatBool(expr.Value))
	case *LiteralNull:
		ctx.WriteString("null")
	case *Self:
		ctx.WriteString("self")
	case *Var:
		ctx.WriteString(expr.Name)
	case *Object:
		if len(expr.Fields) == 0 {
			ctx.WriteString("{}")
			return
		}
		ctx.WriteString("{ ")
		for i, f := range expr.Fields {
			if i > 0 {
				ctx.WriteString(", ")
			}
			if name, ok := f.LiteralName(); ok && isIdentifier(name) {
				ctx.WriteString(name)
			} else if ok {
				ctx.WriteString(strconv.Quote(name))
			} else {
				ctx.WriteString("[")
				ctx.showExprWalker(f.Name, 0)
				ctx.WriteString("]")
			}
			ctx.WriteString(f.Visibility.String() + " ")
			ctx.showExprWalker(f.Body, 0)
		}
		ctx.WriteString(" }")
	case *ObjectComprehension:
		ctx.WriteString("{ [")
		ctx.showExprWalker(expr.Name, 0)
		ctx.WriteString("]: ")
		ctx.showExprWalker(expr.Body, 0)
		ctx.WriteString(" for " + expr.Id + " in ")
		ctx.showExprWalker(expr.Array, 0)
		ctx.WriteString(" }")
	case *Local:
		ctx.parenthesise(outerPrecedence > 0, func() {
			ctx.WriteString("local ")
			for i, b := range expr.Binds {
				if i > 0 {
					ctx.WriteString(", ")
				}
				ctx.WriteString(b.Name + " = ")
				ctx.showExprWalker(b.Body, 0)
			}
			ctx.WriteString("; ")
			ctx.showExprWalker(expr.Body, 0)
		})
	case *Apply:
		ctx.showExprWalker(expr.Target, 11)
		ctx.WriteString("(")
		for i, arg := range expr.Args {
			if i > 0 {
				ctx.WriteString(", ")
			}
			if arg.Name != "" {
				ctx.WriteString(arg.Name + "=")
			}
			ctx.showExprWalker(arg.Value, 0)
		}
		ctx.WriteString(")")
	case *Function:
		ctx.parenthesise(outerPrecedence > 0, func() {
			ctx.WriteString("function(")
			for i, p := range expr.Params {
				if i > 0 {
					ctx.WriteString(", ")
				}
				ctx.WriteString(p.Name)
				if p.Default != nil {
					ctx.WriteString("=")
					ctx.showExprWalker(p.Default, 0)
				}
			}
			ctx.WriteString(") ")
			ctx.showExprWalker(expr.Body, 0)
		})
	case *BinaryOp:
		prec := expr.Op.Precedence()
		ctx.parenthesise(outerPrecedence > prec, func() {
			ctx.showExprWalker(expr.Left, prec)
			ctx.WriteString(" " + expr.Op.String() + " ")
			// operators are left associative
			ctx.showExprWalker(expr.Right, prec+1)
		})
	case *UnaryOp:
		ctx.WriteString(expr.Op.String())
		ctx.showExprWalker(expr.Operand, 11)
	case *Conditional:
		ctx.parenthesise(outerPrecedence > 0, func() {
			ctx.WriteString("if ")
			ctx.showExprWalker(expr.Cond, 0)
			ctx.WriteString(" then ")
			ctx.showExprWalker(expr.Then, 0)
			if expr.Else != nil {
				ctx.WriteString(" else ")
				ctx.showExprWalker(expr.Else, 0)
			}
		})
	case *Index:
		ctx.showExprWalker(expr.Target, 11)
		ctx.showIndex(expr.Index)
	case *SuperIndex:
		ctx.WriteString("super")
		ctx.showIndex(expr.Index)
	case *InSuper:
		ctx.parenthesise(outerPrecedence > OpIn.Precedence(), func() {
			ctx.showExprWalker(expr.Index, OpIn.Precedence())
			ctx.WriteString(" in super")
		})
	case *Array:
		ctx.WriteString("[")
		for i, elem := range expr.Elements {
			if i > 0 {
				ctx.WriteString(", ")
			}
			ctx.showExprWalker(elem, 0)
		}
		ctx.WriteString("]")
	case *Error:
		ctx.parenthesise(outerPrecedence > 0, func() {
			ctx.WriteString("error ")
			ctx.showExprWalker(expr.Expr, 0)
		})
	case *Import:
		ctx.WriteString(expr.Kind.String() + " " + strconv.Quote(expr.Path))
	case *BuiltinFunction:
		ctx.WriteString("std." + expr.Name)
	default:
		ctx.WriteString("(" + expr.ExprName() + ")")
	}
}

func (ctx *showContext) showIndex(index Expr) {
	if s, ok := index.(*LiteralString); ok && isIdentifier(s.Value) {
		ctx.WriteString("." + s.Value)
		return
	}
	ctx.WriteString("[")
	ctx.showExprWalker(index, 0)
	ctx.WriteString("]")
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

func isIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		isLetter := r == '_' || 'a' <= r && r <= 'z' || 'A' <= r && r <= 'Z'
		if !isLetter && (i == 0 || r < '0' || r > '9') {
			return false
		}
	}
	return true
}
