package jtype

import (
	"bytes"
	"context"
	"os"

	"github.com/cottand/jtype/frontend"
	"github.com/cottand/jtype/frontend/ast"
	"github.com/cottand/jtype/frontend/ilerr"
	"github.com/cottand/jtype/internal/log"
	"github.com/pkg/errors"
)

var checkLogger = log.DefaultLogger.With("section", "jtype")

// Options configures how CheckFile obtains the AST of a file
type Options struct {
	// ParserCmd is the command line of an external parser which prints the
	// interchange document of the file it is given. Empty means the
	// built-in parser is used.
	ParserCmd []string
	// ASTJSON is set when the file already is an interchange document
	ASTJSON bool
}

// Result is the outcome of checking a single file: its type if the file
// is well-typed, the errors found otherwise
type Result struct {
	File   ast.File
	Type   string
	Errors *ilerr.Errors
}

func (r Result) Failed() bool {
	return r.Errors.HasError()
}

// Diagnostics formats every error of r along with its position in the file
func (r Result) Diagnostics() []string {
	fset, _ := r.File.FileSet()
	diagnostics := make([]string, 0, len(r.Errors.Errors()))
	for _, err := range r.Errors.Errors() {
		diagnostics = append(diagnostics, ilerr.FormatWithCodeAndSource(err, fset))
	}
	return diagnostics
}

// Check parses src and infers the type of its root expression.
// Each call runs in a context of its own, so Check may be called concurrently.
func Check(src []byte, filename string) Result {
	file, errs := frontend.ParseToAST(src, filename)
	if errs.HasError() {
		return Result{File: file, Errors: errs}
	}
	return CheckAST(file)
}

// CheckAST infers the type of an already parsed file. A tree which makes
// the checker panic is reported as an ilerr.Unclassified error.
func CheckAST(file ast.File) (result Result) {
	defer func() {
		r := recover()
		if r == nil {
			return
		}
		err, ok := r.(error)
		if !ok {
			err = errors.Errorf("%v", r)
		}
		checkLogger.Error("type checker panicked", "file", file.Name, "error", err)
		unclassified := ilerr.New(ilerr.Unclassified{From: err, Range: file.Range})
		result = Result{File: file, Errors: (*ilerr.Errors)(nil).With(unclassified)}
	}()
	t, errs := frontend.TypeCheck(file)
	if errs.HasError() {
		checkLogger.Info("type check failed", "file", file.Name, "errors", errs)
	}
	return Result{File: file, Type: t, Errors: errs}
}

// LoadFile obtains the AST of the file at path as configured by opts.
// Syntax errors found by the built-in parser are returned as *ilerr.Errors,
// any other failure as an error.
func LoadFile(ctx context.Context, path string, opts Options) (ast.File, *ilerr.Errors, error) {
	switch {
	case len(opts.ParserCmd) > 0:
		parser := frontend.ExternalParser{Command: opts.ParserCmd[0], Args: opts.ParserCmd[1:]}
		file, err := parser.Parse(ctx, path)
		return file, nil, err

	case opts.ASTJSON:
		data, err := os.ReadFile(path)
		if err != nil {
			return ast.File{}, nil, errors.Wrap(err, "could not read AST")
		}
		file, err := frontend.DecodeAST(bytes.NewReader(data))
		if err != nil {
			return ast.File{}, nil, errors.Wrapf(err, "in %s", path)
		}
		if file.Name == "" {
			file.Name = path
		}
		return file, nil, nil

	default:
		data, err := os.ReadFile(path)
		if err != nil {
			return ast.File{}, nil, errors.Wrap(err, "could not read source")
		}
		file, errs := frontend.ParseToAST(data, path)
		return file, errs, nil
	}
}

// CheckFile reads the file at path and checks it. The returned error is
// only set when the file could not be loaded: syntax and type errors are
// reported in the Result.
func CheckFile(ctx context.Context, path string, opts Options) (Result, error) {
	file, errs, err := LoadFile(ctx, path, opts)
	if err != nil {
		return Result{}, err
	}
	if errs.HasError() {
		return Result{File: file, Errors: errs}, nil
	}
	return CheckAST(file), nil
}
