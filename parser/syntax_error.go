package parser

import (
	"fmt"
	"sort"

	"github.com/cottand/jtype/frontend/ilerr"
)

// bailout is raised by errorAt to abandon parsing after the first error
type bailout struct{}

// lineColumn returns the 1-based line and column of offset
func (p *parser) lineColumn(offset int) (int, int) {
	line := sort.Search(len(p.lines), func(i int) bool { return p.lines[i] > offset })
	if line == 0 {
		return 1, offset + 1
	}
	return line, offset - p.lines[line-1] + 1
}

func (p *parser) errorAt(tok Token, format string, args ...any) {
	line, column := p.lineColumn(tok.Start)
	p.err = ilerr.New(ilerr.NewSyntax{
		Range:         rangeOf(tok.Start, tok.End),
		Line:          line,
		Column:        column,
		ParserMessage: fmt.Sprintf(format, args...),
	})
	panic(bailout{})
}

func (p *parser) unexpected(expected string) {
	p.errorAt(p.tok, "expected %s but found %s", expected, p.tok)
}

// recoverSyntax stops a bailout, leaving the error in p.err
func (p *parser) recoverSyntax() {
	if r := recover(); r != nil {
		if _, ok := r.(bailout); !ok {
			panic(r)
		}
	}
}
