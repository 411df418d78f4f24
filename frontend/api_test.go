package frontend

import (
	"bytes"
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cottand/jtype/frontend/ast"
	"github.com/cottand/jtype/frontend/ilerr"
	"github.com/cottand/jtype/frontend/ir"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTypeCheck(t *testing.T) {
	typ, errs := TypeCheck(parse(t, `{ local l = {x: 3, y: 4}, z: l {t: self.y} }`))
	require.False(t, errs.HasError(), "unexpected errors: %v", errs)
	assert.Equal(t, "{z: {t: number, x: number, y: number}}", typ)
}

func TestTypeCheckWithoutRoot(t *testing.T) {
	_, errs := TypeCheck(ast.File{Name: "empty.jsonnet"})
	require.True(t, errs.HasError())
	assert.Equal(t, ilerr.Internal, errs.First().Code())
}

func TestLower(t *testing.T) {
	lowered, ctx, errs := Lower(parse(t, `{x: 1}`))
	require.False(t, errs.HasError(), "unexpected errors: %v", errs)
	require.NotNil(t, ctx)
	assert.Equal(t, `letrec self.x = 1 in #record_0(self.x)`, ir.ExprString(lowered))

	_, _, errs = Lower(parse(t, `{x: [1]}`))
	require.True(t, errs.HasError())
	assert.Equal(t, ilerr.Unsupported, errs.First().Code())
}

func TestDecodeAST(t *testing.T) {
	original := parse(t, "{\n  a: 1,\n  b: self.a + 'x',\n}")
	buf := &bytes.Buffer{}
	require.NoError(t, ast.EncodeJSON(buf, original))

	decoded, err := DecodeAST(buf)
	require.NoError(t, err)
	_, errs := TypeCheck(decoded)
	require.True(t, errs.HasError())
	assert.Equal(t, "Type mismatch: string != number, line 3", errs.First().Error())

	_, err = DecodeAST(strings.NewReader("not json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to decode AST")

	negative := `{"version": 1, "size": -1, "root": {"kind": "Object", "begin": 0, "end": 2}}`
	assert.NotPanics(t, func() {
		_, err = DecodeAST(strings.NewReader(negative))
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid source size -1")
}

func TestExternalParser(t *testing.T) {
	if _, err := exec.LookPath("cat"); err != nil {
		t.Skip("cat is not available")
	}
	original := parse(t, `{a: {b: true}}`)
	buf := &bytes.Buffer{}
	require.NoError(t, ast.EncodeJSON(buf, original))
	path := filepath.Join(t.TempDir(), "tree.json")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))

	// cat prints the interchange document back, standing in for a parser
	file, err := ExternalParser{Command: "cat"}.Parse(context.Background(), path)
	require.NoError(t, err)
	typ, errs := TypeCheck(file)
	require.False(t, errs.HasError(), "unexpected errors: %v", errs)
	assert.Equal(t, "{a: {b: boolean}}", typ)

	_, err = ExternalParser{Command: "cat"}.Parse(context.Background(), filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parser cat failed")

	_, err = ExternalParser{}.Parse(context.Background(), path)
	require.Error(t, err)
}
