package infer

import (
	"go/token"
	"log/slog"

	"github.com/benbjohnson/immutable"
	"github.com/cottand/jtype/frontend/ast"
	"github.com/cottand/jtype/frontend/ilerr"
	"github.com/cottand/jtype/frontend/ir"
	"github.com/cottand/jtype/frontend/types"
	"github.com/cottand/jtype/internal/log"
)

// Names bound in every environment. Neither can be spelled as a field
// or as a renamed local, so they never clash with user names.
const (
	nullName = "null"
	selfName = "self"
)

// fieldPrefix starts the name a field value is bound to, which is how
// self.f is spelled. No identifier contains a dot, so a field never
// captures a variable of the same name.
const fieldPrefix = selfName + "."

func fieldBinding(field string) string { return fieldPrefix + field }

// Context is the state of a single inference run: the type variables,
// the environment, the records of every object and the inheritances
// waiting for their base to become known.
//
// A Context must not be shared between runs.
type Context struct {
	arena   *types.Arena
	env     *immutable.Map[string, types.Type]
	records map[*ast.Object]*Record
	pending []*pendingInherit

	recordCount   int
	operatorCount int

	// file turns positions into line numbers for error messages, may be nil
	file *token.File
}

var logger = slog.New(ir.SlogHandler(log.DefaultLogger.With("section", "infer").Handler()))

func NewContext(file *token.File) *Context {
	ctx := &Context{
		arena:   types.NewArena(),
		env:     immutable.NewMap[string, types.Type](immutable.NewHasher("")),
		records: make(map[*ast.Object]*Record),
		file:    file,
	}
	// null and self can take any type, and a different one at every use
	ctx.declare(nullName, ctx.arena.Fresh())
	ctx.declare(selfName, ctx.arena.Fresh())
	return ctx
}

func (ctx *Context) declare(name string, t types.Type) {
	ctx.env = ctx.env.Set(name, t)
}

// Arena holds the type variables of this run
func (ctx *Context) Arena() *types.Arena { return ctx.arena }

// Record returns the record built for obj, if any
func (ctx *Context) Record(obj *ast.Object) (*Record, bool) {
	r, ok := ctx.records[obj]
	return r, ok
}

// Lower runs the passes which turn root into the intermediate tree:
// BuildRecords, ExtendRecords and Desugar
func (ctx *Context) Lower(root ast.Expr) (ir.Expr, ilerr.IleError) {
	if err := ctx.BuildRecords(root); err != nil {
		return nil, err
	}
	if err := ctx.ExtendRecords(root); err != nil {
		return nil, err
	}
	return ctx.Desugar(root)
}

// Run infers the type of root and returns it in its printed form
func (ctx *Context) Run(root ast.Expr) (string, ilerr.IleError) {
	lowered, err := ctx.Lower(root)
	if err != nil {
		return "", err
	}
	logger.Debug("lowered expression", "ir", lowered)
	t, err := ctx.Infer(lowered)
	if err != nil {
		return "", err
	}
	return ctx.arena.TypeString(t), nil
}

// Check infers the type of root within a fresh Context
func Check(root ast.Expr, file *token.File) (string, ilerr.IleError) {
	return NewContext(file).Run(root)
}
