package ast

import (
	"encoding/json"
	"io"
	"math"
	"strconv"

	"github.com/pkg/errors"
)

// InterchangeVersion is the version of the JSON document produced by
// EncodeJSON and accepted by DecodeJSON
const InterchangeVersion = 1

// document is the JSON interchange format used to receive trees from an
// external parser:
//
//	{"version": 1, "filename": "a.jsonnet", "size": 42, "lines": [0, 12], "root": NODE}
//
// Each NODE is an object with a "kind" (the ExprName of the node),
// "begin" and "end" byte offsets, and the fields of that kind.
type document struct {
	Version  int       `json:"version"`
	Filename string    `json:"filename,omitempty"`
	Size     int       `json:"size"`
	Lines    []int     `json:"lines,omitempty"`
	Root     *jsonNode `json:"root"`
}

type jsonNode struct {
	Kind  string `json:"kind"`
	Begin int    `json:"begin"`
	End   int    `json:"end"`

	// Var, BuiltinFunction
	Id string `json:"id,omitempty"`
	// BinaryOp, UnaryOp
	Op string `json:"op,omitempty"`
	// literals
	Value json.RawMessage `json:"value,omitempty"`
	// LiteralNumber
	Text string `json:"text,omitempty"`
	// Import
	ImportKind string `json:"importKind,omitempty"`
	Path       string `json:"path,omitempty"`

	Fields   []jsonField `json:"fields,omitempty"`
	Binds    []jsonBind  `json:"binds,omitempty"`
	Args     []jsonArg   `json:"args,omitempty"`
	Params   []jsonParam `json:"params,omitempty"`
	Builtins []string    `json:"builtinParams,omitempty"`
	Elements []*jsonNode `json:"elements,omitempty"`

	Name    *jsonNode `json:"name,omitempty"`
	Body    *jsonNode `json:"body,omitempty"`
	Target  *jsonNode `json:"target,omitempty"`
	Index   *jsonNode `json:"index,omitempty"`
	Left    *jsonNode `json:"left,omitempty"`
	Right   *jsonNode `json:"right,omitempty"`
	Operand *jsonNode `json:"operand,omitempty"`
	Cond    *jsonNode `json:"cond,omitempty"`
	Then    *jsonNode `json:"then,omitempty"`
	Else    *jsonNode `json:"else,omitempty"`
	Expr    *jsonNode `json:"expr,omitempty"`
	Array   *jsonNode `json:"array,omitempty"`
}

type jsonField struct {
	Begin      int       `json:"begin"`
	End        int       `json:"end"`
	Name       *jsonNode `json:"name"`
	Visibility string    `json:"visibility,omitempty"`
	Body       *jsonNode `json:"body"`
}

type jsonBind struct {
	Begin int       `json:"begin"`
	End   int       `json:"end"`
	Id    string    `json:"id"`
	Body  *jsonNode `json:"body"`
}

type jsonArg struct {
	Id   string    `json:"id,omitempty"`
	Expr *jsonNode `json:"expr"`
}

type jsonParam struct {
	Begin   int       `json:"begin"`
	End     int       `json:"end"`
	Id      string    `json:"id"`
	Default *jsonNode `json:"default,omitempty"`
}

// DecodeJSON reads an interchange document
func DecodeJSON(r io.Reader) (File, error) {
	var doc document
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&doc); err != nil {
		return File{}, errors.Wrap(err, "could not decode interchange document")
	}
	if doc.Version != InterchangeVersion {
		return File{}, errors.Errorf("unsupported interchange version %d, expected %d", doc.Version, InterchangeVersion)
	}
	if doc.Root == nil {
		return File{}, errors.New("interchange document has no root expression")
	}
	if doc.Size < 0 {
		return File{}, errors.Errorf("invalid source size %d", doc.Size)
	}
	if err := doc.Root.checkOffsets(doc.Size); err != nil {
		return File{}, err
	}
	root, err := doc.Root.decode()
	if err != nil {
		return File{}, err
	}
	return File{
		Range: RangeOf(root),
		Name:  doc.Filename,
		Root:  root,
		Size:  doc.Size,
		Lines: doc.Lines,
	}, nil
}

// checkSpan accepts offsets within a source of size bytes, or -1 on
// both ends for a node with no position
func checkSpan(what string, begin, end, size int) error {
	if begin == -1 && end == -1 {
		return nil
	}
	if begin < 0 || end < 0 || begin > size || end > size {
		return errors.Errorf("%s spans offsets %d to %d, outside of a source of %d bytes", what, begin, end, size)
	}
	return nil
}

func (n *jsonNode) checkOffsets(size int) error {
	if n == nil {
		return nil
	}
	if err := checkSpan(n.Kind, n.Begin, n.End, size); err != nil {
		return err
	}
	children := []*jsonNode{n.Name, n.Body, n.Target, n.Index, n.Left, n.Right, n.Operand, n.Cond, n.Then, n.Else, n.Expr, n.Array}
	children = append(children, n.Elements...)
	for _, f := range n.Fields {
		if err := checkSpan("field", f.Begin, f.End, size); err != nil {
			return err
		}
		children = append(children, f.Name, f.Body)
	}
	for _, b := range n.Binds {
		if err := checkSpan("binding "+strconv.Quote(b.Id), b.Begin, b.End, size); err != nil {
			return err
		}
		children = append(children, b.Body)
	}
	for _, p := range n.Params {
		if err := checkSpan("parameter "+strconv.Quote(p.Id), p.Begin, p.End, size); err != nil {
			return err
		}
		children = append(children, p.Default)
	}
	for _, a := range n.Args {
		children = append(children, a.Expr)
	}
	for _, child := range children {
		if err := child.checkOffsets(size); err != nil {
			return err
		}
	}
	return nil
}

func rangeOf(begin, end int) Range {
	return Range{PosStart: PosOf(begin), PosEnd: PosOf(end)}
}

func (n *jsonNode) required(field string, child *jsonNode) (Expr, error) {
	if child == nil {
		return nil, errors.Errorf("%s at offset %d is missing its %q", n.Kind, n.Begin, field)
	}
	return child.decode()
}

func (n *jsonNode) optional(child *jsonNode) (Expr, error) {
	if child == nil {
		return nil, nil
	}
	return child.decode()
}

func (n *jsonNode) decode() (Expr, error) {
	r := rangeOf(n.Begin, n.End)
	switch n.Kind {
	case "Object":
		fields := make([]Field, len(n.Fields))
		for i, f := range n.Fields {
			if f.Name == nil || f.Body == nil {
				return nil, errors.Errorf("field %d of object at offset %d is incomplete", i, n.Begin)
			}
			name, err := f.Name.decode()
			if err != nil {
				return nil, err
			}
			body, err := f.Body.decode()
			if err != nil {
				return nil, err
			}
			visibility, err := visibilityOf(f.Visibility)
			if err != nil {
				return nil, err
			}
			fields[i] = Field{Range: rangeOf(f.Begin, f.End), Name: name, Visibility: visibility, Body: body}
		}
		return &Object{Range: r, Fields: fields}, nil
	case "ObjectComprehension":
		name, err := n.required("name", n.Name)
		if err != nil {
			return nil, err
		}
		body, err := n.required("body", n.Body)
		if err != nil {
			return nil, err
		}
		array, err := n.required("array", n.Array)
		if err != nil {
			return nil, err
		}
		return &ObjectComprehension{Range: r, Name: name, Body: body, Id: n.Id, Array: array}, nil
	case "Local":
		binds := make([]Bind, len(n.Binds))
		for i, b := range n.Binds {
			if b.Body == nil {
				return nil, errors.Errorf("binding %q at offset %d has no body", b.Id, b.Begin)
			}
			body, err := b.Body.decode()
			if err != nil {
				return nil, err
			}
			binds[i] = Bind{Range: rangeOf(b.Begin, b.End), Name: b.Id, Body: body}
		}
		body, err := n.required("body", n.Body)
		if err != nil {
			return nil, err
		}
		return &Local{Range: r, Binds: binds, Body: body}, nil
	case "Apply":
		target, err := n.required("target", n.Target)
		if err != nil {
			return nil, err
		}
		args := make([]Arg, len(n.Args))
		for i, arg := range n.Args {
			value, err := n.required("args", arg.Expr)
			if err != nil {
				return nil, err
			}
			args[i] = Arg{Name: arg.Id, Value: value}
		}
		return &Apply{Range: r, Target: target, Args: args}, nil
	case "Function":
		params := make([]Param, len(n.Params))
		for i, p := range n.Params {
			def, err := n.optional(p.Default)
			if err != nil {
				return nil, err
			}
			params[i] = Param{Range: rangeOf(p.Begin, p.End), Name: p.Id, Default: def}
		}
		body, err := n.required("body", n.Body)
		if err != nil {
			return nil, err
		}
		return &Function{Range: r, Params: params, Body: body}, nil
	case "BinaryOp":
		op, ok := BinaryOperatorOf(n.Op)
		if !ok {
			return nil, errors.Errorf("unknown binary operator %q at offset %d", n.Op, n.Begin)
		}
		left, err := n.required("left", n.Left)
		if err != nil {
			return nil, err
		}
		right, err := n.required("right", n.Right)
		if err != nil {
			return nil, err
		}
		return &BinaryOp{Range: r, Left: left, Op: op, Right: right}, nil
	case "UnaryOp":
		op, ok := UnaryOperatorOf(n.Op)
		if !ok {
			return nil, errors.Errorf("unknown unary operator %q at offset %d", n.Op, n.Begin)
		}
		operand, err := n.required("operand", n.Operand)
		if err != nil {
			return nil, err
		}
		return &UnaryOp{Range: r, Op: op, Operand: operand}, nil
	case "Conditional":
		cond, err := n.required("cond", n.Cond)
		if err != nil {
			return nil, err
		}
		then, err := n.required("then", n.Then)
		if err != nil {
			return nil, err
		}
		els, err := n.optional(n.Else)
		if err != nil {
			return nil, err
		}
		return &Conditional{Range: r, Cond: cond, Then: then, Else: els}, nil
	case "Self":
		return &Self{Range: r}, nil
	case "Var":
		if n.Id == "" {
			return nil, errors.Errorf("variable at offset %d has no id", n.Begin)
		}
		return &Var{Range: r, Name: n.Id}, nil
	case "Index":
		target, err := n.required("target", n.Target)
		if err != nil {
			return nil, err
		}
		index, err := n.required("index", n.Index)
		if err != nil {
			return nil, err
		}
		return &Index{Range: r, Target: target, Index: index}, nil
	case "SuperIndex":
		index, err := n.required("index", n.Index)
		if err != nil {
			return nil, err
		}
		return &SuperIndex{Range: r, Index: index}, nil
	case "InSuper":
		index, err := n.required("index", n.Index)
		if err != nil {
			return nil, err
		}
		return &InSuper{Range: r, Index: index}, nil
	case "LiteralNumber":
		var value float64
		if err := json.Unmarshal(n.Value, &value); err != nil {
			return nil, errors.Wrapf(err, "invalid number literal at offset %d", n.Begin)
		}
		return &LiteralNumber{Range: r, Value: value, Text: n.Text}, nil
	case "LiteralString":
		var value string
		if err := json.Unmarshal(n.Value, &value); err != nil {
			return nil, errors.Wrapf(err, "invalid string literal at offset %d", n.Begin)
		}
		return &LiteralString{Range: r, Value: value}, nil
	case "LiteralBoolean":
		var value bool
		if err := json.Unmarshal(n.Value, &value); err != nil {
			return nil, errors.Wrapf(err, "invalid boolean literal at offset %d", n.Begin)
		}
		return &LiteralBoolean{Range: r, Value: value}, nil
	case "LiteralNull":
		return &LiteralNull{Range: r}, nil
	case "Array":
		elements := make([]Expr, len(n.Elements))
		for i, elem := range n.Elements {
			decoded, err := n.required("elements", elem)
			if err != nil {
				return nil, err
			}
			elements[i] = decoded
		}
		return &Array{Range: r, Elements: elements}, nil
	case "Error":
		expr, err := n.required("expr", n.Expr)
		if err != nil {
			return nil, err
		}
		return &Error{Range: r, Expr: expr}, nil
	case "Import":
		var kind ImportKind
		switch n.ImportKind {
		case "", "import":
			kind = ImportCode
		case "importstr":
			kind = ImportString
		case "importbin":
			kind = ImportBinary
		default:
			return nil, errors.Errorf("unknown import kind %q at offset %d", n.ImportKind, n.Begin)
		}
		return &Import{Range: r, Kind: kind, Path: n.Path}, nil
	case "BuiltinFunction":
		return &BuiltinFunction{Range: r, Name: n.Id, Params: n.Builtins}, nil
	default:
		return nil, errors.Errorf("unknown node kind %q at offset %d", n.Kind, n.Begin)
	}
}

func visibilityOf(s string) (Visibility, error) {
	switch s {
	case "", ":":
		return VisibilityInherit, nil
	case "::":
		return VisibilityHidden, nil
	case ":::":
		return VisibilityForced, nil
	default:
		return 0, errors.Errorf("unknown field visibility %q", s)
	}
}

// EncodeJSON writes f as an interchange document
func EncodeJSON(w io.Writer, f File) error {
	doc := document{
		Version:  InterchangeVersion,
		Filename: f.Name,
		Size:     f.Size,
		Lines:    f.Lines,
		Root:     encodeNode(f.Root),
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return errors.Wrap(enc.Encode(doc), "could not encode interchange document")
}

func encodeNode(e Expr) *jsonNode {
	if e == nil {
		return nil
	}
	n := &jsonNode{Kind: e.ExprName(), Begin: OffsetOf(e.Pos()), End: OffsetOf(e.End())}
	switch e := e.(type) {
	case *Object:
		n.Fields = make([]jsonField, len(e.Fields))
		for i, f := range e.Fields {
			n.Fields[i] = jsonField{
				Begin:      OffsetOf(f.Pos()),
				End:        OffsetOf(f.End()),
				Name:       encodeNode(f.Name),
				Visibility: f.Visibility.String(),
				Body:       encodeNode(f.Body),
			}
		}
	case *ObjectComprehension:
		n.Name, n.Body, n.Id, n.Array = encodeNode(e.Name), encodeNode(e.Body), e.Id, encodeNode(e.Array)
	case *Local:
		n.Binds = make([]jsonBind, len(e.Binds))
		for i, b := range e.Binds {
			n.Binds[i] = jsonBind{Begin: OffsetOf(b.Pos()), End: OffsetOf(b.End()), Id: b.Name, Body: encodeNode(b.Body)}
		}
		n.Body = encodeNode(e.Body)
	case *Apply:
		n.Target = encodeNode(e.Target)
		n.Args = make([]jsonArg, len(e.Args))
		for i, arg := range e.Args {
			n.Args[i] = jsonArg{Id: arg.Name, Expr: encodeNode(arg.Value)}
		}
	case *Function:
		n.Params = make([]jsonParam, len(e.Params))
		for i, p := range e.Params {
			n.Params[i] = jsonParam{Begin: OffsetOf(p.Pos()), End: OffsetOf(p.End()), Id: p.Name, Default: encodeNode(p.Default)}
		}
		n.Body = encodeNode(e.Body)
	case *BinaryOp:
		n.Left, n.Op, n.Right = encodeNode(e.Left), e.Op.String(), encodeNode(e.Right)
	case *UnaryOp:
		n.Op, n.Operand = e.Op.String(), encodeNode(e.Operand)
	case *Conditional:
		n.Cond, n.Then, n.Else = encodeNode(e.Cond), encodeNode(e.Then), encodeNode(e.Else)
	case *Var:
		n.Id = e.Name
	case *Index:
		n.Target, n.Index = encodeNode(e.Target), encodeNode(e.Index)
	case *SuperIndex:
		n.Index = encodeNode(e.Index)
	case *InSuper:
		n.Index = encodeNode(e.Index)
	case *LiteralNumber:
		if math.IsInf(e.Value, 0) || math.IsNaN(e.Value) {
			n.Value = json.RawMessage("0")
		} else {
			n.Value = json.RawMessage(strconv.FormatFloat(e.Value, 'g', -1, 64))
		}
		n.Text = e.Text
	case *LiteralString:
		value, _ := json.Marshal(e.Value)
		n.Value = value
	case *LiteralBoolean:
		n.Value = json.RawMessage(strconv.FormatBool(e.Value))
	case *Array:
		n.Elements = make([]*jsonNode, len(e.Elements))
		for i, elem := range e.Elements {
			n.Elements[i] = encodeNode(elem)
		}
	case *Error:
		n.Expr = encodeNode(e.Expr)
	case *Import:
		n.ImportKind, n.Path = e.Kind.String(), e.Path
	case *BuiltinFunction:
		n.Id, n.Builtins = e.Name, e.Params
	}
	return n
}
