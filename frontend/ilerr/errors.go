package ilerr

import (
	"fmt"
	"go/token"
	"runtime/debug"
	"strings"

	"github.com/cottand/jtype/frontend/ast"
)

// enableDebugErrorPrinting makes FormatWithCode include where an error was raised
const enableDebugErrorPrinting bool = false
const enableDebugFullStacktrace bool = false

type ErrCode int

const (
	None ErrCode = iota
	Parse
	Unsupported
	UndefinedVariable
	InfiniteType
	TypeMismatch
	DuplicateField
	Internal
)

type IleError interface {
	Error() string
	Code() ErrCode
	ast.Positioner

	withStack([]byte) IleError
	getStack() []byte
}

func FormatWithCode(e IleError) string {
	if enableDebugErrorPrinting && e.getStack() != nil {
		stack := string(e.getStack())
		if !enableDebugFullStacktrace {
			stack = strings.Split(stack, "\n")[6]
		}
		return fmt.Sprintf("%s:(E%03d) %s", stack, e.Code(), e.Error())
	}
	return fmt.Sprintf("(E%03d) %s", e.Code(), e.Error())
}

// FormatWithCodeAndSource prefixes FormatWithCode with the file position
// of e, when e has one
func FormatWithCodeAndSource(e IleError, fset *token.FileSet) string {
	if fset == nil || !e.Pos().IsValid() {
		return FormatWithCode(e)
	}
	return fmt.Sprintf("%s: %s", fset.Position(e.Pos()), FormatWithCode(e))
}

func New[E IleError](err E) IleError {
	return err.withStack(debug.Stack())
}

type Unclassified struct {
	From error
	ast.Range
	stack []byte
}

func (e Unclassified) Error() string {
	return fmt.Sprintf("unclassified error: %v", e.From)
}
func (e Unclassified) Code() ErrCode    { return None }
func (e Unclassified) Unwrap() error    { return e.From }
func (e Unclassified) getStack() []byte { return e.stack }
func (e Unclassified) withStack(stack []byte) IleError {
	e.stack = stack
	return e
}

type NewSyntax struct {
	ast.Range
	Line, Column  int
	ParserMessage string
	stack         []byte
}

func (e NewSyntax) Error() string {
	if e.Line == 0 {
		return "syntax error: " + e.ParserMessage
	}
	return fmt.Sprintf("syntax error at %d:%d: %s", e.Line, e.Column, e.ParserMessage)
}
func (e NewSyntax) Code() ErrCode    { return Parse }
func (e NewSyntax) getStack() []byte { return e.stack }
func (e NewSyntax) withStack(stack []byte) IleError {
	e.stack = stack
	return e
}

// NewUnsupported is raised for constructs which are deliberately not typed,
// like arrays or conditionals
type NewUnsupported struct {
	ast.Range
	Construct string
	stack     []byte
}

func (e NewUnsupported) Error() string {
	return fmt.Sprintf("unsupported construct: %s", e.Construct)
}
func (e NewUnsupported) Code() ErrCode    { return Unsupported }
func (e NewUnsupported) getStack() []byte { return e.stack }
func (e NewUnsupported) withStack(stack []byte) IleError {
	e.stack = stack
	return e
}

type NewUndefinedVariable struct {
	ast.Range
	Name  string
	stack []byte
}

func (e NewUndefinedVariable) Code() ErrCode { return UndefinedVariable }
func (e NewUndefinedVariable) Error() string {
	return fmt.Sprintf("variable '%s' is not defined", e.Name)
}
func (e NewUndefinedVariable) getStack() []byte { return e.stack }
func (e NewUndefinedVariable) withStack(stack []byte) IleError {
	e.stack = stack
	return e
}

// NewInfiniteType is the occurs check failing: Var would have to contain itself
type NewInfiniteType struct {
	ast.Range
	Var, Type string
	stack     []byte
}

func (e NewInfiniteType) Code() ErrCode { return InfiniteType }
func (e NewInfiniteType) Error() string {
	return fmt.Sprintf("Recursive unification: %s occurs in %s", e.Var, e.Type)
}
func (e NewInfiniteType) getStack() []byte { return e.stack }
func (e NewInfiniteType) withStack(stack []byte) IleError {
	e.stack = stack
	return e
}

// NewTypeMismatch is two types which cannot be unified.
//
// The source location and the field are filled in by whichever construct
// first handles the error on its way up, so an error may have neither.
type NewTypeMismatch struct {
	ast.Range
	Found, Expected    string
	StartLine, EndLine int
	Field              string
	stack              []byte
}

func (e NewTypeMismatch) Error() string {
	sb := &strings.Builder{}
	fmt.Fprintf(sb, "Type mismatch: %s != %s", e.Found, e.Expected)
	switch {
	case e.StartLine == 0:
	case e.StartLine == e.EndLine:
		fmt.Fprintf(sb, ", line %d", e.StartLine)
	default:
		fmt.Fprintf(sb, ", lines %d-%d", e.StartLine, e.EndLine)
	}
	if e.Field != "" {
		fmt.Fprintf(sb, ", field '%s'", e.Field)
	}
	return sb.String()
}

// Located reports whether a source location was attached to e
func (e NewTypeMismatch) Located() bool { return e.Range.IsValid() }

// At returns e located at r inside file, along with field if e has no field yet
func (e NewTypeMismatch) At(r ast.Range, file *token.File, field string) NewTypeMismatch {
	e.Range = r
	e.StartLine, e.EndLine = r.Lines(file)
	if e.Field == "" {
		e.Field = field
	}
	return e
}

func (e NewTypeMismatch) Code() ErrCode    { return TypeMismatch }
func (e NewTypeMismatch) getStack() []byte { return e.stack }
func (e NewTypeMismatch) withStack(stack []byte) IleError {
	e.stack = stack
	return e
}

type NewDuplicateField struct {
	ast.Range
	Name  string
	stack []byte
}

func (e NewDuplicateField) Code() ErrCode { return DuplicateField }
func (e NewDuplicateField) Error() string {
	return fmt.Sprintf("duplicate field '%s'", e.Name)
}
func (e NewDuplicateField) getStack() []byte { return e.stack }
func (e NewDuplicateField) withStack(stack []byte) IleError {
	e.stack = stack
	return e
}

// NewInternal signals a broken invariant between passes, never bad input
type NewInternal struct {
	ast.Range
	Message string
	stack   []byte
}

func (e NewInternal) Code() ErrCode { return Internal }
func (e NewInternal) Error() string {
	return "internal error: " + e.Message
}
func (e NewInternal) getStack() []byte { return e.stack }
func (e NewInternal) withStack(stack []byte) IleError {
	e.stack = stack
	return e
}
