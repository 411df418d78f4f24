package infer

import (
	"github.com/cottand/jtype/frontend/ast"
	"github.com/cottand/jtype/frontend/ilerr"
	"github.com/cottand/jtype/frontend/types"
	"github.com/cottand/jtype/internal/log"
)

var extendLogger = ast.ExprLogger(log.DefaultLogger.With("section", "extend"))

// ExtendRecords adds a Required field to the record of the enclosing
// object for every self.f where f is not already part of its row.
// Running it more than once has no further effect.
func (ctx *Context) ExtendRecords(root ast.Expr) ilerr.IleError {
	return ctx.extend(root, nil)
}

// extend walks e, where current is the record self refers to
func (ctx *Context) extend(e ast.Expr, current *Record) ilerr.IleError {
	switch e := e.(type) {
	case *ast.Object:
		record, ok := ctx.records[e]
		if !ok {
			return ilerr.New(ilerr.NewInternal{Range: e.Range, Message: "object has no record, records must be built before they are extended"})
		}
		for _, f := range e.Fields {
			if err := ctx.extend(f.Body, record); err != nil {
				return err
			}
		}
		return nil
	case *ast.Index:
		name, isSelfField := selfField(e)
		if !isSelfField {
			break
		}
		if current == nil {
			return unsupported(e, "self outside of an object")
		}
		return ctx.require(current, name, e)
	case *ast.Self:
		if current == nil {
			return unsupported(e, "self outside of an object")
		}
	}
	for _, child := range ast.Children(e) {
		if err := ctx.extend(child, current); err != nil {
			return err
		}
	}
	return nil
}

// require makes sure the row of record has a field called name
func (ctx *Context) require(record *Record, name string, at *ast.Index) ilerr.IleError {
	if record.Row == nil {
		return ilerr.New(ilerr.NewInternal{Range: at.Range, Message: "record " + record.ID + " has no row"})
	}
	if record.Row.Has(name) {
		return nil
	}
	record.Row.Add(types.Field{Name: name, Type: ctx.arena.Fresh(), Flag: types.Required})
	ctx.declare(record.ID, record.Constructor())
	extendLogger.Debug("required field", "id", record.ID, "field", name, "access", at)
	return nil
}

// selfField returns f when e is self.f or self['f']
func selfField(e *ast.Index) (string, bool) {
	if _, ok := e.Target.(*ast.Self); !ok {
		return "", false
	}
	key, ok := e.Index.(*ast.LiteralString)
	if !ok {
		return "", false
	}
	return key.Value, true
}
