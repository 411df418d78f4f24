package infer

import (
	"testing"

	"github.com/cottand/jtype/frontend/ast"
	"github.com/cottand/jtype/frontend/ilerr"
	"github.com/cottand/jtype/frontend/types"
	"github.com/cottand/jtype/parser"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parse(t *testing.T, src string) ast.Expr {
	t.Helper()
	file, errs := parser.ParseToAST([]byte(src), "test.jsonnet")
	require.False(t, errs.HasError(), "unexpected errors: %v", errs)
	return file.Root
}

func recordOf(t *testing.T, ctx *Context, e ast.Expr) *Record {
	t.Helper()
	obj, ok := e.(*ast.Object)
	require.True(t, ok, "%s is not an object", ast.ExprString(e))
	record, ok := ctx.Record(obj)
	require.True(t, ok, "no record for %s", ast.ExprString(e))
	return record
}

// arity counts the parameters of a curried function type
func arity(ctx *Context, t types.Type) int {
	n := 0
	for {
		op, ok := ctx.arena.Prune(t).(*types.Operator)
		if !ok || !types.IsFunction(op) {
			return n
		}
		n++
		t = op.Args[1]
	}
}

func TestBuildRecords(t *testing.T) {
	root := parse(t, `{a: 1, b: {c: true}}`)
	ctx := NewContext(nil)
	require.NoError(t, ctx.BuildRecords(root))

	outer := recordOf(t, ctx, root)
	inner := recordOf(t, ctx, root.(*ast.Object).Fields[1].Body)
	assert.Equal(t, "#record_0", outer.ID)
	assert.Equal(t, "#record_1", inner.ID)
	assert.Equal(t, []string{"a", "b"}, outer.Row.Names())
	assert.Equal(t, []string{"c"}, inner.Row.Names())

	constructor, ok := ctx.env.Get(outer.ID)
	require.True(t, ok)
	assert.Equal(t, "(a -> (b -> {a: a, b: b}))", ctx.arena.TypeString(constructor))
	for _, f := range outer.Row.Fields() {
		assert.Equal(t, types.Declared, f.Flag)
	}
}

func TestBuildRecordsNested(t *testing.T) {
	root := parse(t, `local f(x) = {y: x}; f({z: 1}) {w: 2}`)
	ctx := NewContext(nil)
	require.NoError(t, ctx.BuildRecords(root))
	assert.Len(t, ctx.records, 3)
	assert.Equal(t, 3, ctx.recordCount)
}

func TestEmptyObjectConstructor(t *testing.T) {
	root := parse(t, `{}`)
	ctx := NewContext(nil)
	require.NoError(t, ctx.BuildRecords(root))

	record := recordOf(t, ctx, root)
	assert.Equal(t, "{}", ctx.arena.TypeString(record.Constructor()))
	assert.Equal(t, 0, arity(ctx, record.Constructor()))
}

func TestBuildRecordsErrors(t *testing.T) {
	cases := []struct {
		name, src string
		code      ilerr.ErrCode
		message   string
	}{
		{"duplicate field", `{a: 1, a: 2}`, ilerr.DuplicateField, "duplicate field 'a'"},
		{"array", `{a: [1]}`, ilerr.Unsupported, "unsupported construct: arrays"},
		{"computed field", `{[x]: 1}`, ilerr.Unsupported, "unsupported construct: computed field names"},
		{"comprehension", `{[x]: 1 for x in y}`, ilerr.Unsupported, "unsupported construct: object comprehensions"},
		{"super", `{a: super.b}`, ilerr.Unsupported, "unsupported construct: super"},
		{"plus field", `{a+: 1}`, ilerr.Unsupported, "unsupported construct: super"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			err := NewContext(nil).BuildRecords(parse(t, c.src))
			require.Error(t, err)
			assert.Equal(t, c.code, err.Code())
			assert.Equal(t, c.message, err.Error())
		})
	}
}
