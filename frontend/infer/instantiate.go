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
	"github.com/benbjohnson/immutable"
	"github.com/cottand/jtype/frontend/types"
)

// nonGeneric holds the types of lambda parameters and of the placeholders
// of the letrec groups being inferred. Variables occurring in them must
// not be instantiated.
type nonGeneric = *immutable.List[types.Type]

func (ctx *Context) isGeneric(v types.Var, ng nonGeneric) bool {
	itr := ng.Iterator()
	for !itr.Done() {
		_, t := itr.Next()
		if ctx.arena.Occurs(v, t) {
			return false
		}
	}
	return true
}

// instantiate copies t, replacing each of its generic variables by a fresh
// one. Occurrences of the same variable map to the same fresh variable.
func (ctx *Context) instantiate(t types.Type, ng nonGeneric) types.Type {
	return ctx.fresh(t, ng, make(map[types.Var]types.Var))
}

func (ctx *Context) fresh(t types.Type, ng nonGeneric, mappings map[types.Var]types.Var) types.Type {
	switch t := ctx.arena.Prune(t).(type) {
	case types.Var:
		if !ctx.isGeneric(t, ng) {
			return t
		}
		if v, ok := mappings[t]; ok {
			return v
		}
		v := ctx.arena.Fresh()
		mappings[t] = v
		return v

	case *types.Operator:
		if len(t.Args) == 0 {
			return t
		}
		args := make([]types.Type, len(t.Args))
		for i, arg := range t.Args {
			args[i] = ctx.fresh(arg, ng, mappings)
		}
		return &types.Operator{Name: t.Name, Args: args}

	case *types.Row:
		row := types.NewRow()
		for _, field := range t.Fields() {
			field.Type = ctx.fresh(field.Type, ng, mappings)
			row.Add(field)
		}
		return row
	}
	panic("unexpected type to instantiate")
}
