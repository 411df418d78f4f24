package parser

import (
	"strconv"

	"github.com/cottand/jtype/frontend/ast"
	"github.com/cottand/jtype/frontend/ilerr"
)

type parser struct {
	l     *Lexer
	tok   Token
	buf   []Token
	lines []int
	err   ilerr.IleError
}

func (p *parser) next() {
	if len(p.buf) > 0 {
		p.tok = p.buf[0]
		p.buf = p.buf[1:]
	} else {
		p.tok = p.l.Next()
	}
	if p.tok.Type == Illegal {
		p.errorAt(p.tok, "%s", p.tok.Data)
	}
}

func (p *parser) peek() Token {
	if len(p.buf) == 0 {
		p.buf = append(p.buf, p.l.Next())
	}
	return p.buf[0]
}

func (p *parser) expect(t TokenType) Token {
	tok := p.tok
	if tok.Type != t {
		p.unexpected(t.String())
	}
	p.next()
	return tok
}

func rangeOf(start, end int) ast.Range {
	return ast.Range{PosStart: ast.PosOf(start), PosEnd: ast.PosOf(end)}
}

func tokenRange(tok Token) ast.Range { return rangeOf(tok.Start, tok.End) }

func between(start Token, end ast.Positioner) ast.Range {
	return ast.Range{PosStart: ast.PosOf(start.Start), PosEnd: end.End()}
}

// endOf is the range from start to the token that was just consumed
func (p *parser) endOf(start Token, last Token) ast.Range {
	return rangeOf(start.Start, last.End)
}

func (p *parser) parseFile() ast.Expr {
	e := p.parseExpr(0)
	if p.tok.Type != EOF {
		p.unexpected("end of file")
	}
	return e
}

// parseExpr parses binary operations whose precedence is at least minPrec
func (p *parser) parseExpr(minPrec int) ast.Expr {
	lhs := p.parseUnary()
	for {
		op, ok := p.binaryOperator()
		if !ok || op.Precedence() < minPrec {
			return lhs
		}
		p.next()
		if op == ast.OpIn && p.tok.Type == Super {
			super := p.tok
			p.next()
			lhs = &ast.InSuper{Range: ast.Range{PosStart: lhs.Pos(), PosEnd: ast.PosOf(super.End)}, Index: lhs}
			continue
		}
		// all binary operators are left associative
		rhs := p.parseExpr(op.Precedence() + 1)
		lhs = &ast.BinaryOp{Range: ast.RangeBetween(lhs, rhs), Left: lhs, Op: op, Right: rhs}
	}
}

func (p *parser) binaryOperator() (ast.BinaryOperator, bool) {
	switch p.tok.Type {
	case In:
		return ast.OpIn, true
	case Operator:
		return ast.BinaryOperatorOf(p.tok.Data)
	}
	return 0, false
}

func (p *parser) parseUnary() ast.Expr {
	if p.tok.Type == Operator {
		op, ok := ast.UnaryOperatorOf(p.tok.Data)
		if !ok {
			p.unexpected("expression")
		}
		start := p.tok
		p.next()
		operand := p.parseUnary()
		return &ast.UnaryOp{Range: between(start, operand), Op: op, Operand: operand}
	}
	return p.parsePostfix(p.parsePrimary())
}

func (p *parser) parsePostfix(e ast.Expr) ast.Expr {
	for {
		switch p.tok.Type {
		case Period:
			p.next()
			id := p.expect(Ident)
			e = &ast.Index{
				Range:  ast.Range{PosStart: e.Pos(), PosEnd: ast.PosOf(id.End)},
				Target: e,
				Index:  &ast.LiteralString{Range: tokenRange(id), Value: id.Data},
			}
		case LeftBracket:
			p.next()
			index := p.parseExpr(0)
			if p.tok.Type == Colon || p.tok.Type == DoubleColon {
				p.errorAt(p.tok, "slices are not supported")
			}
			end := p.expect(RightBracket)
			e = &ast.Index{Range: ast.Range{PosStart: e.Pos(), PosEnd: ast.PosOf(end.End)}, Target: e, Index: index}
		case LeftParen:
			args, end := p.parseArgs()
			e = &ast.Apply{Range: ast.Range{PosStart: e.Pos(), PosEnd: ast.PosOf(end.End)}, Target: e, Args: args}
			if p.tok.Type == TailStrict {
				p.next()
			}
		case LeftBrace:
			// e { ... } is sugar for e + { ... }
			child := p.parseObject()
			e = &ast.BinaryOp{Range: ast.RangeBetween(e, child), Left: e, Op: ast.OpPlus, Right: child}
		default:
			return e
		}
	}
}

func (p *parser) parseArgs() ([]ast.Arg, Token) {
	p.expect(LeftParen)
	var args []ast.Arg
	for p.tok.Type != RightParen {
		var arg ast.Arg
		if p.tok.Type == Ident && p.peek().Type == Equals {
			arg.Name = p.tok.Data
			p.next()
			p.next()
		} else if len(args) > 0 && args[len(args)-1].Name != "" {
			p.errorAt(p.tok, "positional argument after a named argument")
		}
		arg.Value = p.parseExpr(0)
		args = append(args, arg)
		if p.tok.Type != Comma {
			break
		}
		p.next()
	}
	return args, p.expect(RightParen)
}

func (p *parser) parseParams() ([]ast.Param, Token) {
	p.expect(LeftParen)
	var params []ast.Param
	for p.tok.Type != RightParen {
		id := p.expect(Ident)
		param := ast.Param{Range: tokenRange(id), Name: id.Data}
		if p.tok.Type == Equals {
			p.next()
			param.Default = p.parseExpr(0)
			param.Range = between(id, param.Default)
		}
		params = append(params, param)
		if p.tok.Type != Comma {
			break
		}
		p.next()
	}
	return params, p.expect(RightParen)
}

func (p *parser) parsePrimary() ast.Expr {
	tok := p.tok
	r := tokenRange(tok)
	switch tok.Type {
	case Number:
		p.next()
		value, err := strconv.ParseFloat(tok.Data, 64)
		if err != nil {
			p.errorAt(tok, "invalid number %s", tok.Data)
		}
		return &ast.LiteralNumber{Range: r, Value: value, Text: tok.Data}
	case String:
		p.next()
		return &ast.LiteralString{Range: r, Value: tok.Data}
	case True, False:
		p.next()
		return &ast.LiteralBoolean{Range: r, Value: tok.Type == True}
	case Null:
		p.next()
		return &ast.LiteralNull{Range: r}
	case Self:
		p.next()
		return &ast.Self{Range: r}
	case Dollar:
		p.next()
		return &ast.Var{Range: r, Name: "$"}
	case Ident:
		p.next()
		return &ast.Var{Range: r, Name: tok.Data}
	case Super:
		p.next()
		switch p.tok.Type {
		case Period:
			p.next()
			id := p.expect(Ident)
			return &ast.SuperIndex{Range: p.endOf(tok, id), Index: &ast.LiteralString{Range: tokenRange(id), Value: id.Data}}
		case LeftBracket:
			p.next()
			index := p.parseExpr(0)
			end := p.expect(RightBracket)
			return &ast.SuperIndex{Range: p.endOf(tok, end), Index: index}
		default:
			p.unexpected("'.' or '[' after super")
		}
	case LeftBrace:
		return p.parseObject()
	case LeftBracket:
		return p.parseArray()
	case LeftParen:
		p.next()
		e := p.parseExpr(0)
		p.expect(RightParen)
		return e
	case Local:
		p.next()
		binds := p.parseBinds()
		p.expect(Semicolon)
		body := p.parseExpr(0)
		return &ast.Local{Range: between(tok, body), Binds: binds, Body: body}
	case Function:
		p.next()
		params, _ := p.parseParams()
		body := p.parseExpr(0)
		return &ast.Function{Range: between(tok, body), Params: params, Body: body}
	case If:
		p.next()
		cond := p.parseExpr(0)
		p.expect(Then)
		then := p.parseExpr(0)
		cond2 := &ast.Conditional{Range: between(tok, then), Cond: cond, Then: then}
		if p.tok.Type == Else {
			p.next()
			cond2.Else = p.parseExpr(0)
			cond2.Range = between(tok, cond2.Else)
		}
		return cond2
	case Error:
		p.next()
		msg := p.parseExpr(0)
		return &ast.Error{Range: between(tok, msg), Expr: msg}
	case Assert:
		p.next()
		cond, msg := p.parseAssertion(tok)
		p.expect(Semicolon)
		rest := p.parseExpr(0)
		return &ast.Conditional{Range: between(tok, rest), Cond: cond, Then: rest, Else: msg}
	case Import, ImportStr, ImportBin:
		p.next()
		path := p.expect(String)
		kind := map[TokenType]ast.ImportKind{Import: ast.ImportCode, ImportStr: ast.ImportString, ImportBin: ast.ImportBinary}[tok.Type]
		return &ast.Import{Range: p.endOf(tok, path), Kind: kind, Path: path.Data}
	}
	p.unexpected("expression")
	return nil
}

// parseAssertion parses what follows 'assert' and returns the condition
// along with the error raised when it does not hold
func (p *parser) parseAssertion(start Token) (ast.Expr, ast.Expr) {
	cond := p.parseExpr(0)
	var msg ast.Expr = &ast.LiteralString{Range: between(start, cond), Value: "Assertion failed"}
	if p.tok.Type == Colon {
		p.next()
		msg = p.parseExpr(0)
	}
	return cond, &ast.Error{Range: ast.RangeOf(msg), Expr: msg}
}

func (p *parser) parseBinds() []ast.Bind {
	var binds []ast.Bind
	for {
		binds = append(binds, p.parseBind())
		if p.tok.Type != Comma {
			return binds
		}
		p.next()
	}
}

// parseBind parses 'x = e' and 'f(params) = e'
func (p *parser) parseBind() ast.Bind {
	id := p.expect(Ident)
	var params []ast.Param
	isFunction := p.tok.Type == LeftParen
	if isFunction {
		params, _ = p.parseParams()
	}
	p.expect(Equals)
	body := p.parseExpr(0)
	if isFunction {
		body = &ast.Function{Range: between(id, body), Params: params, Body: body}
	}
	return ast.Bind{Range: between(id, body), Name: id.Data, Body: body}
}

func (p *parser) parseArray() ast.Expr {
	start := p.expect(LeftBracket)
	var elements []ast.Expr
	for p.tok.Type != RightBracket {
		elements = append(elements, p.parseExpr(0))
		if p.tok.Type == For {
			p.errorAt(p.tok, "array comprehensions are not supported")
		}
		if p.tok.Type != Comma {
			break
		}
		p.next()
	}
	end := p.expect(RightBracket)
	return &ast.Array{Range: p.endOf(start, end), Elements: elements}
}

// parseObject parses an object literal and desugars it: object locals are
// copied into the body of every field, method fields become functions and
// 'f+: e' becomes 'f: super.f + e'
func (p *parser) parseObject() ast.Expr {
	start := p.expect(LeftBrace)
	var (
		locals []ast.Bind
		fields []ast.Field
	)
	for p.tok.Type != RightBrace {
		switch p.tok.Type {
		case Local:
			p.next()
			locals = append(locals, p.parseBind())
		case Assert:
			p.errorAt(p.tok, "object assertions are not supported")
		default:
			field, plus := p.parseField()
			if p.tok.Type == For {
				return p.parseObjectComprehension(start, field, locals, fields)
			}
			if plus {
				name := field.Name
				super := &ast.SuperIndex{Range: ast.RangeOf(name), Index: ast.CopyExpr(name)}
				field.Body = &ast.BinaryOp{Range: ast.RangeOf(field.Body), Left: super, Op: ast.OpPlus, Right: field.Body}
			}
			fields = append(fields, field)
		}
		if p.tok.Type != Comma {
			break
		}
		p.next()
	}
	end := p.expect(RightBrace)
	if len(locals) > 0 {
		for i := range fields {
			body := fields[i].Body
			binds := make([]ast.Bind, len(locals))
			for j, b := range locals {
				binds[j] = ast.Bind{Range: b.Range, Name: b.Name, Body: ast.CopyExpr(b.Body)}
			}
			fields[i].Body = &ast.Local{Range: ast.RangeOf(body), Binds: binds, Body: body}
		}
	}
	return &ast.Object{Range: p.endOf(start, end), Fields: fields}
}

func (p *parser) parseField() (field ast.Field, plus bool) {
	nameTok := p.tok
	switch nameTok.Type {
	case Ident, String:
		p.next()
		field.Name = &ast.LiteralString{Range: tokenRange(nameTok), Value: nameTok.Data}
	case LeftBracket:
		p.next()
		field.Name = p.parseExpr(0)
		p.expect(RightBracket)
	default:
		if nameTok.Type >= Assert {
			p.errorAt(nameTok, "keyword %s cannot be used as a field name without quotes", nameTok.Type)
		}
		p.unexpected("field name")
	}
	var params []ast.Param
	isMethod := p.tok.Type == LeftParen
	if isMethod {
		params, _ = p.parseParams()
	}
	switch p.tok.Type {
	case Colon:
	case DoubleColon:
		field.Visibility = ast.VisibilityHidden
	case TripleColon:
		field.Visibility = ast.VisibilityForced
	case PlusColon:
		plus = true
	case PlusDoubleColon:
		plus, field.Visibility = true, ast.VisibilityHidden
	case PlusTripleColon:
		plus, field.Visibility = true, ast.VisibilityForced
	default:
		p.unexpected("':'")
	}
	p.next()
	field.Body = p.parseExpr(0)
	if isMethod {
		if plus {
			p.errorAt(nameTok, "method fields cannot use '+:'")
		}
		field.Body = &ast.Function{Range: between(nameTok, field.Body), Params: params, Body: field.Body}
	}
	field.Range = between(nameTok, field.Body)
	return field, plus
}

func (p *parser) parseObjectComprehension(start Token, field ast.Field, locals []ast.Bind, fields []ast.Field) ast.Expr {
	if len(fields) > 0 {
		p.errorAt(p.tok, "object comprehensions can only have a single field")
	}
	if len(locals) > 0 {
		p.errorAt(p.tok, "object comprehensions with locals are not supported")
	}
	if _, ok := field.LiteralName(); ok {
		p.errorAt(p.tok, "object comprehension fields must have a computed name")
	}
	p.expect(For)
	id := p.expect(Ident)
	p.expect(In)
	array := p.parseExpr(0)
	if p.tok.Type == For || p.tok.Type == If {
		p.errorAt(p.tok, "nested comprehension clauses are not supported")
	}
	end := p.expect(RightBrace)
	return &ast.ObjectComprehension{Range: p.endOf(start, end), Name: field.Name, Body: field.Body, Id: id.Data, Array: array}
}
