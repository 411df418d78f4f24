package infer

import (
	"errors"

	"github.com/cottand/jtype/frontend/ast"
	"github.com/cottand/jtype/frontend/ilerr"
	"github.com/cottand/jtype/frontend/types"
)

// unify makes found and expected the same type, binding type variables
// as needed. Mismatches report found first.
func (ctx *Context) unify(found, expected types.Type) ilerr.IleError {
	a, b := ctx.arena.Prune(found), ctx.arena.Prune(expected)
	if av, ok := a.(types.Var); ok {
		return ctx.bindVar(av, b)
	}
	if bv, ok := b.(types.Var); ok {
		return ctx.bindVar(bv, a)
	}
	switch a := a.(type) {
	case *types.Operator:
		b, ok := b.(*types.Operator)
		if !ok || a.Name != b.Name || len(a.Args) != len(b.Args) {
			return ctx.mismatch(a, b)
		}
		for i := range a.Args {
			if err := ctx.unify(a.Args[i], b.Args[i]); err != nil {
				return err
			}
		}
		return nil
	case *types.Row:
		b, ok := b.(*types.Row)
		if !ok {
			return ctx.mismatch(a, b)
		}
		return ctx.unifyRows(a, b)
	default:
		return ilerr.New(ilerr.NewInternal{Message: "cannot unify " + ctx.arena.TypeString(a)})
	}
}

// bindVar binds v to t. Between two variables, the one created last is
// bound to the other.
func (ctx *Context) bindVar(v types.Var, t types.Type) ilerr.IleError {
	if other, ok := t.(types.Var); ok {
		switch {
		case other == v:
		case other > v:
			ctx.arena.Bind(other, v)
		default:
			ctx.arena.Bind(v, other)
		}
		return nil
	}
	if ctx.arena.Occurs(v, t) {
		p := types.NewPrinter(ctx.arena)
		return ilerr.New(ilerr.NewInfiniteType{Var: p.Print(v), Type: p.Print(t)})
	}
	ctx.arena.Bind(v, t)
	return nil
}

// unifyRows unifies the fields a and b share. A field only one of them
// has must be Required there.
func (ctx *Context) unifyRows(a, b *types.Row) ilerr.IleError {
	for _, fa := range a.Fields() {
		fb, ok := b.Field(fa.Name)
		if !ok {
			if fa.Flag != types.Required {
				return withField(ctx.mismatch(a, b), fa.Name)
			}
			continue
		}
		if err := ctx.unify(fa.Type, fb.Type); err != nil {
			return withField(err, fa.Name)
		}
	}
	for _, fb := range b.Fields() {
		if !a.Has(fb.Name) && fb.Flag != types.Required {
			return withField(ctx.mismatch(a, b), fb.Name)
		}
	}
	return nil
}

func (ctx *Context) mismatch(found, expected types.Type) ilerr.IleError {
	p := types.NewPrinter(ctx.arena)
	return ilerr.New(ilerr.NewTypeMismatch{Found: p.Print(found), Expected: p.Print(expected)})
}

// withField names the field a mismatch happened in, unless it already
// has one or has been located
func withField(err ilerr.IleError, field string) ilerr.IleError {
	var mismatch ilerr.NewTypeMismatch
	if !errors.As(err, &mismatch) || mismatch.Located() || mismatch.Field != "" {
		return err
	}
	mismatch.Field = field
	return mismatch
}

// locate attaches r, and field when not empty, to a mismatch which has no
// location yet
func (ctx *Context) locate(err ilerr.IleError, r ast.Range, field string) ilerr.IleError {
	if err == nil || !r.IsValid() {
		return err
	}
	var mismatch ilerr.NewTypeMismatch
	if errors.As(err, &mismatch) {
		if mismatch.Located() {
			return err
		}
		return mismatch.At(r, ctx.file, field)
	}
	return err
}
