// The MIT License (MIT)
//
// Copyright (c) 2019 West Damron
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.

package infer

import (
	"strings"

	"github.com/benbjohnson/immutable"
	"github.com/cottand/jtype/frontend/ast"
	"github.com/cottand/jtype/frontend/ilerr"
	"github.com/cottand/jtype/frontend/ir"
	"github.com/cottand/jtype/frontend/types"
)

type typeEnv = *immutable.Map[string, types.Type]

// Infer returns the type of e. Inheritances whose base is still unknown
// once e has been inferred take the row of their child.
func (ctx *Context) Infer(e ir.Expr) (types.Type, ilerr.IleError) {
	t, err := ctx.infer(ctx.env, immutable.NewList[types.Type](), e)
	if err != nil {
		return nil, err
	}
	if err := ctx.settleInherits(true); err != nil {
		return nil, err
	}
	return t, nil
}

func (ctx *Context) infer(env typeEnv, ng nonGeneric, e ir.Expr) (types.Type, ilerr.IleError) {
	switch e := e.(type) {
	case *ir.Identifier:
		t, ok := env.Get(e.Name)
		if !ok {
			return nil, ilerr.New(ilerr.NewUndefinedVariable{Range: e.Range, Name: displayName(e.Name)})
		}
		return ctx.instantiate(t, ng), nil

	case *ir.Literal:
		switch e.Kind {
		case ir.Number:
			return types.Number, nil
		case ir.String:
			return types.String, nil
		case ir.Boolean:
			return types.Boolean, nil
		}
		return nil, ilerr.New(ilerr.NewInternal{Range: e.Range, Message: "unknown literal kind " + e.Kind.String()})

	case *ir.Apply:
		fnT, err := ctx.infer(env, ng, e.Func)
		if err != nil {
			return nil, err
		}
		argT, err := ctx.infer(env, ng, e.Arg)
		if err != nil {
			return nil, err
		}
		result := ctx.arena.Fresh()
		if err := ctx.unify(types.Function(argT, result), fnT); err != nil {
			return nil, ctx.locate(err, e.Range, "")
		}
		return ctx.arena.Prune(result), nil

	case *ir.Lambda:
		param := ctx.arena.Fresh()
		bodyT, err := ctx.infer(env.Set(e.Param, param), ng.Append(param), e.Body)
		if err != nil {
			return nil, err
		}
		return types.Function(param, bodyT), nil

	case *ir.LetrecAnd:
		return ctx.inferLetrec(env, ng, e)

	case *ir.Inherit:
		baseT, err := ctx.infer(env, ng, e.Base)
		if err != nil {
			return nil, err
		}
		childT, err := ctx.infer(env, ng, e.Child)
		if err != nil {
			return nil, err
		}
		return ctx.inherit(baseT, childT, e.Range)

	default:
		return nil, ilerr.New(ilerr.NewInternal{Range: ast.RangeOf(e), Message: "cannot infer " + e.ExprName()})
	}
}

// inferLetrec binds a placeholder per binding before inferring any of
// them, so bindings may refer to each other. The placeholders stay
// non-generic in the body as well.
func (ctx *Context) inferLetrec(env typeEnv, ng nonGeneric, e *ir.LetrecAnd) (types.Type, ilerr.IleError) {
	placeholders := make([]types.Var, len(e.Bindings))
	for i, b := range e.Bindings {
		placeholders[i] = ctx.arena.Fresh()
		env = env.Set(b.Name, placeholders[i])
		ng = ng.Append(placeholders[i])
	}
	for i, b := range e.Bindings {
		t, err := ctx.infer(env, ng, b.Value)
		if err == nil {
			err = ctx.unify(t, placeholders[i])
		}
		if err != nil {
			if b.Field {
				return nil, ctx.locate(err, b.Range, strings.TrimPrefix(b.Name, fieldPrefix))
			}
			return nil, err
		}
	}
	if err := ctx.settleInherits(false); err != nil {
		return nil, err
	}
	return ctx.infer(env, ng, e.Body)
}

// displayName is how name was spelled before locals were renamed
func displayName(name string) string {
	if i := strings.IndexByte(name, '$'); i > 0 {
		return name[:i]
	}
	return name
}
