package ast

// CopyExpr returns a deep copy of e. Positions are kept as they are.
func CopyExpr(e Expr) Expr {
	if e == nil {
		return nil
	}
	switch e := e.(type) {
	case *Object:
		fields := make([]Field, len(e.Fields))
		for i, f := range e.Fields {
			fields[i] = Field{Range: f.Range, Name: CopyExpr(f.Name), Visibility: f.Visibility, Body: CopyExpr(f.Body)}
		}
		return &Object{Range: e.Range, Fields: fields}
	case *ObjectComprehension:
		return &ObjectComprehension{Range: e.Range, Name: CopyExpr(e.Name), Body: CopyExpr(e.Body), Id: e.Id, Array: CopyExpr(e.Array)}
	case *Local:
		binds := make([]Bind, len(e.Binds))
		for i, b := range e.Binds {
			binds[i] = Bind{Range: b.Range, Name: b.Name, Body: CopyExpr(b.Body)}
		}
		return &Local{Range: e.Range, Binds: binds, Body: CopyExpr(e.Body)}
	case *Apply:
		args := make([]Arg, len(e.Args))
		for i, arg := range e.Args {
			args[i] = Arg{Name: arg.Name, Value: CopyExpr(arg.Value)}
		}
		return &Apply{Range: e.Range, Target: CopyExpr(e.Target), Args: args}
	case *Function:
		params := make([]Param, len(e.Params))
		for i, p := range e.Params {
			params[i] = Param{Range: p.Range, Name: p.Name, Default: CopyExpr(p.Default)}
		}
		return &Function{Range: e.Range, Params: params, Body: CopyExpr(e.Body)}
	case *BinaryOp:
		return &BinaryOp{Range: e.Range, Left: CopyExpr(e.Left), Op: e.Op, Right: CopyExpr(e.Right)}
	case *UnaryOp:
		return &UnaryOp{Range: e.Range, Op: e.Op, Operand: CopyExpr(e.Operand)}
	case *Conditional:
		return &Conditional{Range: e.Range, Cond: CopyExpr(e.Cond), Then: CopyExpr(e.Then), Else: CopyExpr(e.Else)}
	case *Self:
		return &Self{Range: e.Range}
	case *Var:
		return &Var{Range: e.Range, Name: e.Name}
	case *Index:
		return &Index{Range: e.Range, Target: CopyExpr(e.Target), Index: CopyExpr(e.Index)}
	case *SuperIndex:
		return &SuperIndex{Range: e.Range, Index: CopyExpr(e.Index)}
	case *InSuper:
		return &InSuper{Range: e.Range, Index: CopyExpr(e.Index)}
	case *LiteralNumber:
		return &LiteralNumber{Range: e.Range, Value: e.Value, Text: e.Text}
	case *LiteralString:
		return &LiteralString{Range: e.Range, Value: e.Value}
	case *LiteralBoolean:
		return &LiteralBoolean{Range: e.Range, Value: e.Value}
	case *LiteralNull:
		return &LiteralNull{Range: e.Range}
	case *Array:
		elements := make([]Expr, len(e.Elements))
		for i, elem := range e.Elements {
			elements[i] = CopyExpr(elem)
		}
		return &Array{Range: e.Range, Elements: elements}
	case *Error:
		return &Error{Range: e.Range, Expr: CopyExpr(e.Expr)}
	case *Import:
		return &Import{Range: e.Range, Kind: e.Kind, Path: e.Path}
	case *BuiltinFunction:
		return &BuiltinFunction{Range: e.Range, Name: e.Name, Params: append([]string(nil), e.Params...)}
	default:
		panic("ast: cannot copy " + e.ExprName())
	}
}
