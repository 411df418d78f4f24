package infer

import (
	"fmt"

	"github.com/cottand/jtype/frontend/ast"
	"github.com/cottand/jtype/frontend/ilerr"
	"github.com/cottand/jtype/frontend/types"
	"github.com/cottand/jtype/internal/log"
	"github.com/samber/lo"
)

var recordsLogger = ast.ExprLogger(log.DefaultLogger.With("section", "records"))

// Record is the row type of one object literal, along with the name its
// constructor is bound to in the environment
type Record struct {
	ID  string
	Row *types.Row
}

// Constructor is the curried function taking one value per field of
// r.Row, in field order, and returning r.Row.
// The constructor of an empty row is the row itself.
func (r *Record) Constructor() types.Type {
	return lo.ReduceRight(r.Row.Fields(), func(acc types.Type, f types.Field, _ int) types.Type {
		return types.Function(f.Type, acc)
	}, types.Type(r.Row))
}

// BuildRecords allocates a Record for every object literal within root,
// with a fresh type variable per declared field
func (ctx *Context) BuildRecords(root ast.Expr) ilerr.IleError {
	switch e := root.(type) {
	case *ast.Object:
		if err := ctx.buildRecord(e); err != nil {
			return err
		}
		for _, f := range e.Fields {
			if err := ctx.BuildRecords(f.Body); err != nil {
				return err
			}
		}
		return nil
	case *ast.Array:
		return unsupported(e, "arrays")
	case *ast.BuiltinFunction:
		return unsupported(e, "built-in functions")
	case *ast.ObjectComprehension:
		return unsupported(e, "object comprehensions")
	case *ast.SuperIndex, *ast.InSuper:
		return unsupported(e, "super")
	}
	for _, child := range ast.Children(root) {
		if err := ctx.BuildRecords(child); err != nil {
			return err
		}
	}
	return nil
}

func (ctx *Context) buildRecord(obj *ast.Object) ilerr.IleError {
	row := types.NewRow()
	for _, f := range obj.Fields {
		name, ok := f.LiteralName()
		if !ok {
			return unsupported(f.Name, "computed field names")
		}
		added := row.Add(types.Field{Name: name, Type: ctx.arena.Fresh(), Flag: types.Declared})
		if !added {
			return ilerr.New(ilerr.NewDuplicateField{Range: f.Range, Name: name})
		}
	}
	record := &Record{ID: fmt.Sprintf("#record_%d", ctx.recordCount), Row: row}
	ctx.recordCount++
	ctx.records[obj] = record
	ctx.declare(record.ID, record.Constructor())
	recordsLogger.Debug("built record", "id", record.ID, "fields", row.Names(), "object", obj)
	return nil
}

func unsupported(at ast.Positioner, construct string) ilerr.IleError {
	return ilerr.New(ilerr.NewUnsupported{Range: ast.RangeOf(at), Construct: construct})
}
