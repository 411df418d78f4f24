package parser_test

import (
	"go/token"
	"testing"

	"github.com/cottand/jtype/frontend/ast"
	"github.com/cottand/jtype/frontend/ilerr"
	"github.com/cottand/jtype/parser"
	"github.com/kr/pretty"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testParse(t *testing.T, input string) ast.File {
	t.Helper()
	f, errs := parser.ParseToAST([]byte(input), "test.jsonnet")
	require.False(t, errs.HasError(), "unexpected errors: %v", errs)
	return f
}

func testSyntaxError(t *testing.T, input string) ilerr.NewSyntax {
	t.Helper()
	_, errs := parser.ParseToAST([]byte(input), "test.jsonnet")
	require.True(t, errs.HasError(), "expected a syntax error")
	require.IsType(t, ilerr.NewSyntax{}, errs.First())
	return errs.First().(ilerr.NewSyntax)
}

func TestNoPanics(t *testing.T) {
	files := map[string]string{
		"empty program":        ``,
		"unclosed object":      `{x: 1`,
		"unclosed string":      `"abc`,
		"unclosed comment":     `1 /* 2`,
		"dangling operator":    `1 +`,
		"only a keyword":       `local`,
		"stray closing brace":  `}`,
		"illegal character":    `{x: 1 ? 2}`,
		"text block no indent": "|||\nx\n|||",
	}

	for name, file := range files {
		t.Run(name, func(t *testing.T) {
			assert.NotPanics(t, func() {
				_, _ = parser.ParseToAST([]byte(file), "test.jsonnet")
			})
		})
	}
}

func TestDesugaredShape(t *testing.T) {
	cases := []struct {
		name, input, expected string
	}{
		{"object", `{x: 1}`, `{ x: 1 }`},
		{"empty object", `{}`, `{}`},
		{"quoted field", `{"a b": true}`, `{ "a b": true }`},
		{"hidden field", `{x:: 'a'}`, `{ x:: "a" }`},
		{"precedence", `local a = 1; a + 2 * 3`, `local a = 1; a + 2 * 3`},
		{"parens", `(1 + 2) * 3`, `(1 + 2) * 3`},
		{"left associative", `1 - 2 - 3`, `1 - 2 - 3`},
		{"postfix", `a.b[c](d)`, `a.b[c](d)`},
		{"object juxtaposition", `b {k: 1}`, `b + { k: 1 }`},
		{"plus field", `{x+: 1}`, `{ x: super.x + 1 }`},
		{"method field", `{f(x): x}`, `{ f: function(x) x }`},
		{"object locals", `{local a = 1, x: a, y: a}`, `{ x: local a = 1; a, y: local a = 1; a }`},
		{"local function", `local f(x) = x; f(1)`, `local f = function(x) x; f(1)`},
		{"mutual locals", `local a = b, b = 1; a`, `local a = b, b = 1; a`},
		{"assert", `assert true; 1`, `if true then 1 else error "Assertion failed"`},
		{"assert with message", `assert x : 'no'; 1`, `if x then 1 else error "no"`},
		{"comprehension", `{[k]: 1 for k in ks}`, `{ [k]: 1 for k in ks }`},
		{"dollar", `{x: $.y}`, `{ x: $.y }`},
		{"in super", `{x: 'y' in super}`, `{ x: "y" in super }`},
		{"unary", `-a.b`, `-a.b`},
		{"named argument", `f(1, y=2)`, `f(1, y=2)`},
		{"default parameter", `function(x, y=1) x`, `function(x, y=1) x`},
		{"if without else", `if a then 1`, `if a then 1`},
		{"import", `import 'a.libsonnet'`, `import "a.libsonnet"`},
		{"array", `[1, 'a',]`, `[1, "a"]`},
		{"text block", "|||\n  hi\n  there\n|||", `"hi\nthere\n"`},
		{"verbatim string", `@'it''s'`, `"it's"`},
		{"comments", "# a\n{x: 1 /* b */} // c", `{ x: 1 }`},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			f := testParse(t, c.input)
			assert.Equal(t, c.expected, ast.ExprString(f.Root))
		})
	}
}

func TestObjectLocalsAreCopied(t *testing.T) {
	f := testParse(t, `{local a = {}, x: a, y: a}`)
	obj := f.Root.(*ast.Object)
	require.Len(t, obj.Fields, 2)

	xLocal := obj.Fields[0].Body.(*ast.Local)
	yLocal := obj.Fields[1].Body.(*ast.Local)
	assert.NotSame(t, xLocal.Binds[0].Body, yLocal.Binds[0].Body)
	if diff := pretty.Diff(xLocal.Binds[0].Body, yLocal.Binds[0].Body); len(diff) != 0 {
		t.Errorf("copies of the same local differ: %v", diff)
	}
}

func TestPositions(t *testing.T) {
	src := "{\n  x: a {\n    b: 1,\n  },\n}"
	f := testParse(t, src)
	_, tf := f.FileSet()

	obj := f.Root.(*ast.Object)
	start, end := obj.Range.Lines(tf)
	assert.Equal(t, 1, start)
	assert.Equal(t, 5, end)

	inherit := obj.Fields[0].Body.(*ast.BinaryOp)
	assert.Equal(t, ast.OpPlus, inherit.Op)
	start, end = inherit.Range.Lines(tf)
	assert.Equal(t, 2, start)
	assert.Equal(t, 4, end)

	assert.Equal(t, token.Pos(1), f.Root.Pos())
	assert.Equal(t, ast.PosOf(len(src)), f.Root.End())
}

func TestSyntaxErrors(t *testing.T) {
	cases := []struct {
		name, input, message string
		line, column         int
	}{
		{"missing body", `{x: }`, "expected expression but found '}'", 1, 5},
		{"missing colon", "{\n x 1}", "expected ':' but found number \"1\"", 2, 4},
		{"array comprehension", `[x for x in y]`, "array comprehensions are not supported", 1, 4},
		{"object assertion", `{assert true}`, "object assertions are not supported", 1, 2},
		{"unterminated string", `{x: "abc`, "unterminated string", 1, 5},
		{"trailing tokens", `1 2`, "expected end of file but found number \"2\"", 1, 3},
		{"keyword field", `{local: 1}`, "expected identifier but found ':'", 1, 7},
		{"positional after named", `f(x=1, 2)`, "positional argument after a named argument", 1, 8},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			err := testSyntaxError(t, c.input)
			assert.Equal(t, c.message, err.ParserMessage)
			assert.Equal(t, c.line, err.Line)
			assert.Equal(t, c.column, err.Column)
			assert.Equal(t, ilerr.Parse, err.Code())
		})
	}
}

func TestLexer(t *testing.T) {
	l := parser.NewLexer([]byte("local x = 'a\\n'; x.y +: 1e3 // c"))
	var types []parser.TokenType
	var data []string
	for tok := l.Next(); tok.Type != parser.EOF; tok = l.Next() {
		types = append(types, tok.Type)
		data = append(data, tok.Data)
	}
	assert.Equal(t, []parser.TokenType{
		parser.Local, parser.Ident, parser.Equals, parser.String, parser.Semicolon,
		parser.Ident, parser.Period, parser.Ident, parser.PlusColon, parser.Number,
	}, types)
	assert.Equal(t, []string{"", "x", "", "a\n", "", "x", "", "y", "", "1e3"}, data)
}
