package parser

import (
	"github.com/cottand/jtype/frontend/ast"
	"github.com/cottand/jtype/frontend/ilerr"
	"github.com/cottand/jtype/internal/log"
)

// ParseToAST parses a Jsonnet program into its desugared AST.
// Parsing stops at the first syntax error.
func ParseToAST(data []byte, filename string) (ast.File, *ilerr.Errors) {
	logger := log.DefaultLogger.With("section", "parser")
	lines := ast.LineOffsets(data)
	file := ast.File{
		Range: ast.Range{PosStart: ast.PosOf(0), PosEnd: ast.PosOf(len(data))},
		Name:  filename,
		Size:  len(data),
		Lines: lines,
	}
	p := &parser{l: NewLexer(data), lines: lines}
	root := p.parse()
	if p.err != nil {
		logger.Debug("syntax error", "file", filename, "error", p.err)
		return file, (*ilerr.Errors)(nil).With(p.err)
	}
	file.Root = root
	logger.Debug("parsed file", "file", filename, "root", ast.Slog(root))
	return file, nil
}

func (p *parser) parse() (root ast.Expr) {
	defer p.recoverSyntax()
	p.next()
	return p.parseFile()
}
