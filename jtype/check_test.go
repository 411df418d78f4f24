package jtype

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cottand/jtype/frontend/ast"
	"github.com/cottand/jtype/frontend/ilerr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testDiagnostics(t *testing.T, prog string, shouldContain ...string) {
	t.Helper()
	result := Check([]byte(prog), "test.jsonnet")
	require.True(t, result.Failed(), "expected errors, got type %s", result.Type)

	msg := strings.Join(result.Diagnostics(), "\n-----------\n")
	for _, s := range shouldContain {
		assert.Contains(t, msg, s)
	}
	t.Log("error message:\n" + msg)
}

func TestCheck(t *testing.T) {
	result := Check([]byte(`{ local person = {name: ''}, student: person {name: 'Ali', age: 19} }`), "test.jsonnet")
	require.False(t, result.Failed(), "unexpected errors: %v", result.Errors)
	assert.Equal(t, "{student: {name: string, age: number}}", result.Type)
	assert.Empty(t, result.Diagnostics())
}

func TestDiagnosticSyntaxError(t *testing.T) {
	prog := `{
  x: 1,
  y: ,
}`
	testDiagnostics(t, prog, "test.jsonnet:3:6: (E001) syntax error at 3:6: expected expression but found ','")
}

func TestDiagnosticTypeMismatch(t *testing.T) {
	prog := `{
  x: 1,
  y: true,

  z: self.x + self.y,
}`
	testDiagnostics(t, prog, "test.jsonnet:5:", "(E005) Type mismatch: boolean != number, line 5")
}

func TestDiagnosticUndefinedVariable(t *testing.T) {
	prog := `{
  a: 1,
  b: c,
}`
	testDiagnostics(t, prog, "test.jsonnet:3:6: (E003) variable 'c' is not defined")
}

func TestDiagnosticFieldIsNotAVariable(t *testing.T) {
	prog := `{
  a: 1,
  b: a,
}`
	testDiagnostics(t, prog, "test.jsonnet:3:6: (E003) variable 'a' is not defined")
}

func TestCheckASTRecoversPanics(t *testing.T) {
	file := ast.File{Name: "broken.jsonnet", Root: (*ast.Object)(nil)}
	var result Result
	require.NotPanics(t, func() { result = CheckAST(file) })
	require.True(t, result.Failed())

	err := result.Errors.First()
	assert.Equal(t, ilerr.None, err.Code())
	assert.IsType(t, ilerr.Unclassified{}, err)
	assert.Contains(t, err.Error(), "unclassified error: runtime error")
	assert.Len(t, result.Diagnostics(), 1)
}

func TestConcurrentChecks(t *testing.T) {
	for i := range 20 {
		t.Run(fmt.Sprint(i), func(t *testing.T) {
			t.Parallel()
			src := fmt.Sprintf(`{euro: self.dol, dol: self.euro, n: %d}`, i)
			result := Check([]byte(src), "test.jsonnet")
			require.False(t, result.Failed(), "unexpected errors: %v", result.Errors)
			assert.Equal(t, "{euro: a, dol: a, n: number}", result.Type)
		})
	}
}

func writeFile(t *testing.T, name string, content []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, content, 0o644))
	return path
}

func TestCheckFile(t *testing.T) {
	ctx := context.Background()
	src := []byte("{\n  local l = {x: 3, y: 4},\n  z: l {t: self.y},\n}\n")
	expected := "{z: {t: number, x: number, y: number}}"

	t.Run("source", func(t *testing.T) {
		result, err := CheckFile(ctx, writeFile(t, "a.jsonnet", src), Options{})
		require.NoError(t, err)
		assert.Equal(t, expected, result.Type)
	})

	parsed := Check(src, "a.jsonnet")
	require.False(t, parsed.Failed())
	doc := &bytes.Buffer{}
	require.NoError(t, ast.EncodeJSON(doc, parsed.File))

	t.Run("interchange document", func(t *testing.T) {
		result, err := CheckFile(ctx, writeFile(t, "a.json", doc.Bytes()), Options{ASTJSON: true})
		require.NoError(t, err)
		assert.Equal(t, expected, result.Type)
	})

	t.Run("external parser", func(t *testing.T) {
		path := writeFile(t, "a.json", doc.Bytes())
		result, err := CheckFile(ctx, path, Options{ParserCmd: []string{"cat", "--"}})
		require.NoError(t, err)
		assert.Equal(t, expected, result.Type)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := CheckFile(ctx, filepath.Join(t.TempDir(), "missing.jsonnet"), Options{})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "could not read source")
	})

	t.Run("invalid document", func(t *testing.T) {
		_, err := CheckFile(ctx, writeFile(t, "a.json", src), Options{ASTJSON: true})
		require.Error(t, err)
	})

	t.Run("type errors are not failures", func(t *testing.T) {
		result, err := CheckFile(ctx, writeFile(t, "b.jsonnet", []byte(`{x: 1 {a: 1}}`)), Options{})
		require.NoError(t, err)
		require.True(t, result.Failed())
		assert.Equal(t, ilerr.TypeMismatch, result.Errors.First().Code())
	})
}
