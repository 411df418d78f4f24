package infer

import (
	"github.com/cottand/jtype/frontend/ast"
	"github.com/cottand/jtype/frontend/ilerr"
	"github.com/cottand/jtype/frontend/types"
)

// pendingInherit is an inheritance whose base was an unbound variable when
// it was inferred, like a function parameter or a sibling field which is
// inferred later. result stands for the merged row until base is known.
type pendingInherit struct {
	ast.Range
	base   types.Type
	child  *types.Row
	result types.Var
}

func (ctx *Context) inherit(baseT, childT types.Type, r ast.Range) (types.Type, ilerr.IleError) {
	child, ok := ctx.arena.Prune(childT).(*types.Row)
	if !ok {
		return nil, ilerr.New(ilerr.NewInternal{Range: r, Message: "the child of an inheritance is not a row: " + ctx.arena.TypeString(childT)})
	}
	switch base := ctx.arena.Prune(baseT).(type) {
	case *types.Row:
		merged, err := ctx.merge(base, child)
		if err != nil {
			return nil, ctx.locate(err, r, "")
		}
		return merged, nil
	case types.Var:
		result := ctx.arena.Fresh()
		ctx.pending = append(ctx.pending, &pendingInherit{Range: r, base: base, child: child, result: result})
		logger.Debug("deferred inheritance", "base", ctx.arena.TypeString(base), "child", ctx.arena.TypeString(child))
		return result, nil
	default:
		return nil, ctx.locate(ctx.mismatch(base, child), r, "")
	}
}

// merge computes the row of base + child: the fields child declares, then
// those of base, then those child requires and base does not have.
// Fields both have must unify, and are Declared if either declares them.
func (ctx *Context) merge(base, child *types.Row) (*types.Row, ilerr.IleError) {
	merged := types.NewRow()
	for _, f := range child.Fields() {
		if f.Flag == types.Declared {
			merged.Add(f)
		}
	}
	for _, fb := range base.Fields() {
		fc, shared := child.Field(fb.Name)
		if !shared {
			merged.Add(fb)
			continue
		}
		if err := ctx.unify(fc.Type, fb.Type); err != nil {
			return nil, withField(err, fb.Name)
		}
		if fc.Flag == types.Required {
			if fb.Flag == types.Declared {
				fc.Flag = types.Declared
			}
			merged.Add(fc)
		}
	}
	for _, f := range child.Fields() {
		if f.Flag == types.Required && !base.Has(f.Name) {
			merged.Add(f)
		}
	}
	return merged, nil
}

// settleInherits merges the pending inheritances whose base has become a
// row. When final is set, those whose base will never be known take the
// row of their child.
func (ctx *Context) settleInherits(final bool) ilerr.IleError {
	for len(ctx.pending) > 0 {
		settled, err := ctx.settleKnownBases()
		if err != nil {
			return err
		}
		if settled {
			continue
		}
		if !final {
			return nil
		}
		// nothing else can be settled, so the oldest base stays unknown
		p := ctx.pending[0]
		ctx.pending = ctx.pending[1:]
		logger.Debug("inheriting from an unknown base", "child", ctx.arena.TypeString(p.child))
		if err := ctx.unify(p.child, p.result); err != nil {
			return ctx.locate(err, p.Range, "")
		}
	}
	return nil
}

// settleKnownBases merges every pending inheritance whose base is no
// longer a variable, and reports whether there was any
func (ctx *Context) settleKnownBases() (bool, ilerr.IleError) {
	settled := false
	remaining := make([]*pendingInherit, 0, len(ctx.pending))
	for i, p := range ctx.pending {
		if _, unknown := ctx.arena.Prune(p.base).(types.Var); unknown {
			remaining = append(remaining, p)
			continue
		}
		settled = true
		merged, err := ctx.inherit(p.base, p.child, p.Range)
		if err == nil {
			err = ctx.locate(ctx.unify(merged, p.result), p.Range, "")
		}
		if err != nil {
			ctx.pending = append(remaining, ctx.pending[i+1:]...)
			return settled, err
		}
	}
	ctx.pending = remaining
	return settled, nil
}
