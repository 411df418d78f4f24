package infer

import (
	"fmt"
	"strconv"

	"github.com/cottand/jtype/frontend/ast"
	"github.com/cottand/jtype/frontend/ilerr"
	"github.com/cottand/jtype/frontend/ir"
	"github.com/cottand/jtype/frontend/types"
	"github.com/cottand/jtype/internal/log"
	"github.com/hashicorp/go-set/v3"
	"github.com/samber/lo"
)

var desugarLogger = ast.ExprLogger(log.DefaultLogger.With("section", "desugar"))

// operatorNames name the environment entries of synthesized operators,
// as in #plus_3
var operatorNames = map[ast.BinaryOperator]string{
	ast.OpPlus:            "plus",
	ast.OpMinus:           "minus",
	ast.OpMult:            "mult",
	ast.OpDiv:             "div",
	ast.OpPercent:         "percent",
	ast.OpShiftL:          "shiftl",
	ast.OpShiftR:          "shiftr",
	ast.OpBitwiseAnd:      "bitand",
	ast.OpBitwiseXor:      "bitxor",
	ast.OpBitwiseOr:       "bitor",
	ast.OpAnd:             "and",
	ast.OpOr:              "or",
	ast.OpLess:            "less",
	ast.OpLessEq:          "lesseq",
	ast.OpGreater:         "greater",
	ast.OpGreaterEq:       "greatereq",
	ast.OpManifestEqual:   "equal",
	ast.OpManifestUnequal: "unequal",
}

// Desugar lowers e into the intermediate tree. Records must have been
// built and extended beforehand.
func (ctx *Context) Desugar(e ast.Expr) (ir.Expr, ilerr.IleError) {
	switch e := e.(type) {
	case *ast.Object:
		return ctx.desugarObject(e)
	case *ast.Local:
		return ctx.desugarLocal(e)
	case *ast.Apply:
		return ctx.desugarApply(e)
	case *ast.Function:
		return ctx.desugarFunction(e)
	case *ast.BinaryOp:
		return ctx.desugarBinaryOp(e)
	case *ast.Index:
		if name, ok := selfField(e); ok {
			return &ir.Identifier{Range: e.Range, Name: fieldBinding(name)}, nil
		}
		return nil, unsupported(e, "indexing anything but self")
	case *ast.Self:
		return &ir.Identifier{Range: e.Range, Name: selfName}, nil
	case *ast.Var:
		return &ir.Identifier{Range: e.Range, Name: e.Name}, nil
	case *ast.LiteralNull:
		return &ir.Identifier{Range: e.Range, Name: nullName}, nil
	case *ast.LiteralNumber:
		text := e.Text
		if text == "" {
			text = strconv.FormatFloat(e.Value, 'g', -1, 64)
		}
		return &ir.Literal{Range: e.Range, Kind: ir.Number, Value: text}, nil
	case *ast.LiteralString:
		return &ir.Literal{Range: e.Range, Kind: ir.String, Value: e.Value}, nil
	case *ast.LiteralBoolean:
		return &ir.Literal{Range: e.Range, Kind: ir.Boolean, Value: strconv.FormatBool(e.Value)}, nil
	case *ast.Array:
		return nil, unsupported(e, "arrays")
	case *ast.Conditional:
		return nil, unsupported(e, "conditionals")
	case *ast.UnaryOp:
		return nil, unsupported(e, "unary operators")
	case *ast.SuperIndex, *ast.InSuper:
		return nil, unsupported(e, "super")
	case *ast.ObjectComprehension:
		return nil, unsupported(e, "object comprehensions")
	case *ast.BuiltinFunction:
		return nil, unsupported(e, "built-in functions")
	case *ast.Import:
		return nil, unsupported(e, "imports")
	case *ast.Error:
		return nil, unsupported(e, "error expressions")
	default:
		return nil, ilerr.New(ilerr.NewInternal{Range: ast.RangeOf(e), Message: fmt.Sprintf("cannot desugar %T", e)})
	}
}

// desugarObject binds every field of the row of obj in a single group,
// each as self.f, and applies the constructor of obj to them. Required fields are bound
// to null, as only inheritance can give them a value.
func (ctx *Context) desugarObject(obj *ast.Object) (ir.Expr, ilerr.IleError) {
	record, ok := ctx.records[obj]
	if !ok {
		return nil, ilerr.New(ilerr.NewInternal{Range: obj.Range, Message: "object has no record"})
	}
	bodies := make(map[string]ast.Field, len(obj.Fields))
	for _, f := range obj.Fields {
		name, _ := f.LiteralName()
		bodies[name] = f
	}
	bindings := make([]ir.Binding, 0, record.Row.Len())
	for _, field := range record.Row.Fields() {
		if field.Flag == types.Required {
			bindings = append(bindings, ir.Binding{Name: fieldBinding(field.Name), Value: &ir.Identifier{Name: nullName}, Field: true})
			continue
		}
		f, ok := bodies[field.Name]
		if !ok {
			return nil, ilerr.New(ilerr.NewInternal{Range: obj.Range, Message: "declared field '" + field.Name + "' has no body"})
		}
		value, err := ctx.Desugar(f.Body)
		if err != nil {
			return nil, err
		}
		bindings = append(bindings, ir.Binding{Range: f.Range, Name: fieldBinding(field.Name), Value: value, Field: true})
	}
	constructor := ir.Expr(&ir.Identifier{Range: obj.Range, Name: record.ID})
	body := lo.Reduce(record.Row.Names(), func(acc ir.Expr, name string, _ int) ir.Expr {
		return &ir.Apply{Range: obj.Range, Func: acc, Arg: &ir.Identifier{Range: obj.Range, Name: fieldBinding(name)}}
	}, constructor)
	return &ir.LetrecAnd{Range: obj.Range, Bindings: bindings, Body: body}, nil
}

// desugarLocal joins the bindings of e with those the body of e
// produces, unless one of the bindings of e would then refer to a
// binding of the body instead of to what it referred to before
func (ctx *Context) desugarLocal(e *ast.Local) (ir.Expr, ilerr.IleError) {
	bindings := make([]ir.Binding, len(e.Binds))
	referenced := set.New[string](0)
	for i, b := range e.Binds {
		value, err := ctx.Desugar(b.Body)
		if err != nil {
			return nil, err
		}
		bindings[i] = ir.Binding{Range: b.Range, Name: b.Name, Value: value}
		referenced.InsertSet(ir.Identifiers(value))
	}
	body, err := ctx.Desugar(e.Body)
	if err != nil {
		return nil, err
	}
	letrec, isLetrec := body.(*ir.LetrecAnd)
	if isLetrec && !lo.ContainsBy(letrec.Bound(), referenced.Contains) {
		merged := append(append([]ir.Binding(nil), letrec.Bindings...), bindings...)
		desugarLogger.Debug("merged local into body", "names", lo.Map(bindings, func(b ir.Binding, _ int) string { return b.Name }), "local", e)
		return &ir.LetrecAnd{Range: letrec.Range, Bindings: merged, Body: letrec.Body}, nil
	}
	return &ir.LetrecAnd{Range: e.Range, Bindings: bindings, Body: body}, nil
}

func (ctx *Context) desugarApply(e *ast.Apply) (ir.Expr, ilerr.IleError) {
	if lo.ContainsBy(e.Args, func(arg ast.Arg) bool { return arg.Name != "" }) {
		return nil, unsupported(e, "named arguments")
	}
	fn, err := ctx.Desugar(e.Target)
	if err != nil {
		return nil, err
	}
	args := make([]ir.Expr, len(e.Args))
	for i, arg := range e.Args {
		if args[i], err = ctx.Desugar(arg.Value); err != nil {
			return nil, err
		}
	}
	return lo.Reduce(args, func(acc ir.Expr, arg ir.Expr, _ int) ir.Expr {
		return &ir.Apply{Range: e.Range, Func: acc, Arg: arg}
	}, fn), nil
}

func (ctx *Context) desugarFunction(e *ast.Function) (ir.Expr, ilerr.IleError) {
	if lo.ContainsBy(e.Params, func(p ast.Param) bool { return p.Default != nil }) {
		return nil, unsupported(e, "default parameters")
	}
	body, err := ctx.Desugar(e.Body)
	if err != nil {
		return nil, err
	}
	return lo.ReduceRight(e.Params, func(acc ir.Expr, p ast.Param, _ int) ir.Expr {
		return &ir.Lambda{Range: e.Range, Param: p.Name, Body: acc}
	}, body), nil
}

func (ctx *Context) desugarBinaryOp(e *ast.BinaryOp) (ir.Expr, ilerr.IleError) {
	left, err := ctx.Desugar(e.Left)
	if err != nil {
		return nil, err
	}
	right, err := ctx.Desugar(e.Right)
	if err != nil {
		return nil, err
	}
	if _, isObject := e.Right.(*ast.Object); isObject && e.Op == ast.OpPlus {
		return &ir.Inherit{Range: e.Range, Base: left, Child: right}, nil
	}
	t, ok := ctx.operatorType(e.Op)
	if !ok {
		return nil, unsupported(e, fmt.Sprintf("operator '%s'", e.Op))
	}
	name := fmt.Sprintf("#%s_%d", operatorNames[e.Op], ctx.operatorCount)
	ctx.operatorCount++
	ctx.declare(name, t)
	op := &ir.Identifier{Range: e.Range, Name: name}
	return &ir.Apply{
		Range: e.Range,
		Func:  &ir.Apply{Range: e.Range, Func: op, Arg: left},
		Arg:   right,
	}, nil
}

// operatorType is the type of a fresh instance of op
func (ctx *Context) operatorType(op ast.BinaryOperator) (types.Type, bool) {
	binary := func(operand, result types.Type) types.Type {
		return types.Function(operand, types.Function(operand, result))
	}
	switch op {
	case ast.OpPlus:
		v := ctx.arena.Fresh()
		return binary(v, v), true
	case ast.OpMinus, ast.OpMult, ast.OpDiv, ast.OpPercent, ast.OpShiftL, ast.OpShiftR, ast.OpBitwiseAnd, ast.OpBitwiseXor, ast.OpBitwiseOr:
		return binary(types.Number, types.Number), true
	case ast.OpAnd, ast.OpOr:
		return binary(types.Boolean, types.Boolean), true
	case ast.OpLess, ast.OpLessEq, ast.OpGreater, ast.OpGreaterEq, ast.OpManifestEqual, ast.OpManifestUnequal:
		return binary(ctx.arena.Fresh(), types.Boolean), true
	default:
		return nil, false
	}
}
