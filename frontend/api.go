package frontend

import (
	"io"

	"github.com/cottand/jtype/frontend/ast"
	"github.com/cottand/jtype/frontend/ilerr"
	"github.com/cottand/jtype/frontend/infer"
	"github.com/cottand/jtype/frontend/ir"
	"github.com/cottand/jtype/internal/log"
	"github.com/cottand/jtype/parser"
	"github.com/pkg/errors"
)

var logger = log.DefaultLogger.With("section", "jtype")

// ParseToAST returns the desugared AST of a Jsonnet program without any
// additional processing, like renaming or type inference
func ParseToAST(data []byte, filename string) (ast.File, *ilerr.Errors) {
	return parser.ParseToAST(data, filename)
}

// DecodeAST reads an AST in the JSON interchange format
func DecodeAST(r io.Reader) (ast.File, error) {
	file, err := ast.DecodeJSON(r)
	if err != nil {
		return ast.File{}, errors.Wrap(err, "failed to decode AST")
	}
	return file, nil
}

// Lower renames file and turns it into the intermediate tree, within the
// inference context it returns
func Lower(file ast.File) (ir.Expr, *infer.Context, *ilerr.Errors) {
	renamed := RenamePhase(file)
	_, tokenFile := renamed.FileSet()
	ctx := infer.NewContext(tokenFile)
	lowered, err := ctx.Lower(renamed.Root)
	if err != nil {
		logger.Debug("failed to lower file", "file", file.Name, "error", ilerr.FormatWithCode(err))
		return nil, ctx, (*ilerr.Errors)(nil).With(err)
	}
	return lowered, ctx, nil
}

// TypeCheck infers the type of the root expression of file, and returns it
// in its printed form
func TypeCheck(file ast.File) (string, *ilerr.Errors) {
	if file.Root == nil {
		return "", (*ilerr.Errors)(nil).With(ilerr.New(ilerr.NewInternal{Range: file.Range, Message: "file has no expression"}))
	}
	renamed := RenamePhase(file)
	_, tokenFile := renamed.FileSet()
	printed, err := infer.Check(renamed.Root, tokenFile)
	if err != nil {
		logger.Debug("type check failed", "file", file.Name, "error", ilerr.FormatWithCode(err))
		return "", (*ilerr.Errors)(nil).With(err)
	}
	logger.Debug("inferred type", "file", file.Name, "type", printed)
	return printed, nil
}
