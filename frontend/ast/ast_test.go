package ast_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/cottand/jtype/frontend/ast"
	"github.com/cottand/jtype/parser"
	"github.com/kr/pretty"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parse(t *testing.T, src string) ast.File {
	t.Helper()
	f, errs := parser.ParseToAST([]byte(src), "test.jsonnet")
	require.False(t, errs.HasError(), "unexpected errors: %v", errs)
	return f
}

func TestJSONRoundTrip(t *testing.T) {
	sources := map[string]string{
		"object":        `{a: 1, b:: 'x', c::: true, d: null}`,
		"locals":        "{\n  local p = {name: 'a'},\n  s: p {age: 3},\n}",
		"functions":     `local f(x, y=2) = x + y; f(1, y=3)`,
		"indexing":      `{x: self.y, y: $.z.w, z: {w: 1}}`,
		"operators":     `{x: -1 * 2 < 3 && !false}`,
		"conditional":   `if true then 1 else error 'no'`,
		"arrays":        `[1, 'a', [true]]`,
		"super":         `{x+: 1, y: 'a' in super}`,
		"imports":       `{a: import 'a.libsonnet', b: importstr 'b.txt'}`,
		"comprehension": `{[k]: 1 for k in ks}`,
	}
	for name, src := range sources {
		t.Run(name, func(t *testing.T) {
			original := parse(t, src)

			buf := &bytes.Buffer{}
			require.NoError(t, ast.EncodeJSON(buf, original))
			decoded, err := ast.DecodeJSON(buf)
			require.NoError(t, err)

			assert.Equal(t, original.Name, decoded.Name)
			assert.Equal(t, original.Size, decoded.Size)
			assert.Equal(t, original.Lines, decoded.Lines)
			assert.Equal(t, ast.ExprString(original.Root), ast.ExprString(decoded.Root))
			if diff := pretty.Diff(original.Root, decoded.Root); len(diff) != 0 {
				t.Errorf("decoded tree differs: %v", diff)
			}
		})
	}
}

func TestDecodeJSONErrors(t *testing.T) {
	cases := map[string]struct {
		doc, message string
	}{
		"version":        {`{"version": 2, "root": {"kind": "Self"}}`, "unsupported interchange version 2"},
		"no root":        {`{"version": 1}`, "no root expression"},
		"unknown kind":   {`{"version": 1, "root": {"kind": "Lambda"}}`, `unknown node kind "Lambda"`},
		"unknown field":  {`{"version": 1, "extra": 1, "root": {"kind": "Self"}}`, "could not decode"},
		"missing child":  {`{"version": 1, "root": {"kind": "Index", "target": {"kind": "Self"}}}`, `Index at offset 0 is missing its "index"`},
		"bad operator":   {`{"version": 1, "root": {"kind": "BinaryOp", "op": "**"}}`, `unknown binary operator "**"`},
		"var without id": {`{"version": 1, "root": {"kind": "Var"}}`, "has no id"},
		"negative size":  {`{"version": 1, "size": -1, "root": {"kind": "Object", "begin": 0, "end": 2}}`, "invalid source size -1"},
		"past the end":   {`{"version": 1, "size": 2, "root": {"kind": "Object", "begin": 0, "end": 3}}`, "Object spans offsets 0 to 3, outside of a source of 2 bytes"},
		"negative offset": {
			`{"version": 1, "size": 8, "root": {"kind": "Object", "begin": 0, "end": 8, "fields": [
				{"begin": 1, "end": 7, "name": {"kind": "LiteralString", "begin": -4, "end": 2, "value": "a"},
				 "body": {"kind": "LiteralNumber", "begin": 6, "end": 7, "value": 1}}]}}`,
			"LiteralString spans offsets -4 to 2",
		},
		"field past the end": {
			`{"version": 1, "size": 8, "root": {"kind": "Object", "begin": 0, "end": 8, "fields": [
				{"begin": 1, "end": 9, "name": {"kind": "LiteralString", "begin": 1, "end": 2, "value": "a"},
				 "body": {"kind": "LiteralNumber", "begin": 6, "end": 7, "value": 1}}]}}`,
			"field spans offsets 1 to 9",
		},
	}
	for name, c := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := ast.DecodeJSON(strings.NewReader(c.doc))
			require.Error(t, err)
			assert.Contains(t, err.Error(), c.message)
		})
	}
}

func TestDecodeJSONPositions(t *testing.T) {
	doc := `{
  "version": 1,
  "filename": "x.jsonnet",
  "size": 8,
  "lines": [0, 4],
  "root": {"kind": "Object", "begin": 0, "end": 8, "fields": [
    {"begin": 4, "end": 7, "name": {"kind": "LiteralString", "begin": 4, "end": 5, "value": "a"},
     "body": {"kind": "LiteralNumber", "begin": 6, "end": 7, "value": 1}}
  ]}
}`
	f, err := ast.DecodeJSON(strings.NewReader(doc))
	require.NoError(t, err)
	assert.Equal(t, "x.jsonnet", f.Name)
	assert.Equal(t, "{ a: 1 }", ast.ExprString(f.Root))

	_, tf := f.FileSet()
	field := f.Root.(*ast.Object).Fields[0]
	start, end := field.Range.Lines(tf)
	assert.Equal(t, 2, start)
	assert.Equal(t, 2, end)
}

func TestFileSetOfInvalidSize(t *testing.T) {
	assert.NotPanics(t, func() {
		_, tf := ast.File{Name: "x.jsonnet", Size: -1}.FileSet()
		assert.Equal(t, 0, tf.Size())
	})
}

func TestCopyExpr(t *testing.T) {
	original := parse(t, `{local a = {b: 1}, x: a {c: self.b}, f(y): y}`).Root
	copied := ast.CopyExpr(original)

	assert.NotSame(t, original, copied)
	assert.Equal(t, ast.ExprString(original), ast.ExprString(copied))
	if diff := pretty.Diff(original, copied); len(diff) != 0 {
		t.Errorf("copy differs: %v", diff)
	}

	copied.(*ast.Object).Fields[0].Body.(*ast.Local).Binds[0].Name = "renamed"
	assert.Equal(t, "a", original.(*ast.Object).Fields[0].Body.(*ast.Local).Binds[0].Name)
	assert.Nil(t, ast.CopyExpr(nil))
}

func TestChildren(t *testing.T) {
	root := parse(t, `local a = 1; a + f(2)`).Root
	var kinds []string
	ast.Inspect(root, func(e ast.Expr) bool {
		kinds = append(kinds, e.ExprName())
		return true
	})
	assert.Equal(t, []string{"Local", "LiteralNumber", "BinaryOp", "Var", "Apply", "Var", "LiteralNumber"}, kinds)
}
