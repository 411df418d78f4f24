package infer_test

import (
	"testing"

	"github.com/cottand/jtype/frontend"
	"github.com/cottand/jtype/frontend/ilerr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func typeCheck(t *testing.T, src string) (string, *ilerr.Errors) {
	t.Helper()
	file, errs := frontend.ParseToAST([]byte(src), "test.jsonnet")
	require.False(t, errs.HasError(), "failed to parse: %v", errs)
	return frontend.TypeCheck(file)
}

func TestInferTypes(t *testing.T) {
	tests := []struct {
		name     string
		src      string
		expected string
	}{
		{"number", `{x: 1}`, `{x: number}`},
		{"boolean", `{x: true}`, `{x: boolean}`},
		{"string", `{x: 'a'}`, `{x: string}`},
		{"empty object", `{}`, `{}`},
		{"base types", `{n: 1.5, s: "a", b: false}`, `{n: number, s: string, b: boolean}`},
		{"local", `local x = 1; x`, `number`},
		{"mutual self", `{euro: self.dol, dol: self.euro}`, `{euro: a, dol: a}`},
		{"local field rec", `{local x = y, local y = self.z, z: 2, t: x}`, `{z: number, t: number}`},
		{"local of a field", `{local x = self.t, z: x, t: 1}`, `{z: number, t: number}`},
		{"binary plus", `{x: 1, y: 2, z: self.x + self.y}`, `{x: number, y: number, z: number}`},
		{"comparison", `{x: 1 < 2, y: 'a' == 'b'}`, `{x: boolean, y: boolean}`},
		{"logic", `{x: true && false}`, `{x: boolean}`},
		{
			"inheritance",
			`{
  local person = {
    name: '',
  },
  student: person {
    name: 'Ali',
    age: 19,
    best_friend: person {
      age: 18,
      has_friend: true,
    },
  },
}`,
			`{student: {name: string, age: number, best_friend: {age: number, has_friend: boolean, name: string}}}`,
		},
		{
			"inherited inline object",
			`{student: {name: ''} {age: 19, best_friend: {name: 'Bob'} {age: 20}}}`,
			`{student: {age: number, best_friend: {age: number, name: string}, name: string}}`,
		},
		{"simple case", `{local a = self.b {e: true}, b: {d: 1}}`, `{b: {d: number}}`},
		{"using local object with inheritance", `{local a = self.b {e: true}, b: {d: 1}, c: a}`, `{b: {d: number}, c: {e: boolean, d: number}}`},
		{"local object used twice", `{local a = {d: 1}, b: a, c: a {e: true}}`, `{b: {d: number}, c: {e: boolean, d: number}}`},
		{"inherit base twice", `{local base = {a: null}, x: base {a: 3}, y: base {a: "str"}}`, `{x: {a: number}, y: {a: string}}`},
		{"inherit parameter twice", `{local f(p) = p {}, x: f({a: 1}), y: f({a: 'a'})}`, `{x: {a: number}, y: {a: string}}`},
		{
			"inheritance2",
			`{
  local base = {
    local b = self.a {
      z: 3,
    },
    a: {
      z: null,
    },
  },
  x: base {k: 1},
  y: base {s: "str"},
}`,
			`{x: {k: number, a: {z: number}}, y: {s: string, a: {z: number}}}`,
		},
		{"unrecognized base field", `{ local l = {x: 3, y: 4}, z: l {t: self.y} }`, `{z: {t: number, x: number, y: number}}`},
		{"unrecognized child field", `{local base = {z: self.k}, x: base {k: 1}}`, `{x: {k: number, z: number}}`},
		{"base field read by the child", `{local b = {z: 1}, x: b {k: self.z}}`, `{x: {k: number, z: number}}`},
		{"sibling as base", `{x: self.y {z: true}, y: {t: 1}}`, `{x: {z: boolean, t: number}, y: {t: number}}`},
		{"function result as base", `{local f(base) = {a: base}, res: f(1) {b: self.a}}`, `{res: {b: number, a: number}}`},
		{"method", `{f(x): x, y: self.f(1)}`, `{f: (number -> number), y: number}`},
		{"field named like a builtin", `{'null': 1, 'self': 'a', x: self['null']}`, `{null: number, self: string, x: number}`},
		{"two levels", `{local a = {x: self.y}, local b = a {z: 1}, c: b {y: 'hi'}}`, `{c: {y: string, z: number, x: string}}`},
		{
			"three levels",
			`{
  local a = {x: self.y},
  local b = a {z: self.y},
  local c = b {w: true},
  d: c {y: 1},
}`,
			`{d: {y: number, w: boolean, z: number, x: number}}`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			actual, errs := typeCheck(t, tt.src)
			require.False(t, errs.HasError(), "unexpected errors: %v", errs)
			assert.Equal(t, tt.expected, actual)
		})
	}
}

func TestInferErrors(t *testing.T) {
	tests := []struct {
		name    string
		src     string
		code    ilerr.ErrCode
		message string
	}{
		{
			"field type mismatch",
			`{
  local person = {
    name: 0,
  },

  student: person {
    name: 'Ali',
  },
}`,
			ilerr.TypeMismatch,
			"Type mismatch: string != number, lines 6-8, field 'name'",
		},
		{
			"plus type error",
			`{
  x: 1,
  y: true,

  z: self.x + self.y,
}`,
			ilerr.TypeMismatch,
			"Type mismatch: boolean != number, line 5",
		},
		{
			"inheritance failure",
			`{
  local currency = {
    euro: self.dollar,
    dollar: self.euro,
  },
  x: currency {
    euro: 1,
    dollar: 'smth',
  },
}`,
			ilerr.TypeMismatch,
			"Type mismatch: string != number, lines 6-9, field 'dollar'",
		},
		{
			"inherit param inside function",
			`{
  local f(base) = {
    x: base {
      a: 3,
    },
    y: base {
      a: "str",
    },
  },
  res: f({a: null}),
}`,
			ilerr.TypeMismatch,
			"Type mismatch: string != number, lines 6-8, field 'a'",
		},
		{"inherited field mismatch", `{local a = {x: 1}, b: a {x: 'hi'}}`, ilerr.TypeMismatch, "Type mismatch: string != number, line 1, field 'x'"},
		{"inherited parameter mismatch", `{local f(p) = p {x: 'a'}, y: f({x: 1})}`, ilerr.TypeMismatch, "Type mismatch: string != number, line 1, field 'x'"},
		{"base is not an object", `{x: 1 {a: 1}}`, ilerr.TypeMismatch, "Type mismatch: number != {a: number}, line 1"},
		{"undefined variable", `{x: y}`, ilerr.UndefinedVariable, "variable 'y' is not defined"},
		{"variable named like a sibling field", `{x: y, y: 1}`, ilerr.UndefinedVariable, "variable 'y' is not defined"},
		{"variable named like an outer field", `{a: 1, b: {c: a}}`, ilerr.UndefinedVariable, "variable 'a' is not defined"},
		{"undefined local", `{local a = b, x: a}`, ilerr.UndefinedVariable, "variable 'b' is not defined"},
		{"array", `{x: [1]}`, ilerr.Unsupported, "unsupported construct: arrays"},
		{"conditional", `{x: if true then 1 else 2}`, ilerr.Unsupported, "unsupported construct: conditionals"},
		{"self outside object", `self.x`, ilerr.Unsupported, "unsupported construct: self outside of an object"},
		{"duplicate field", `{a: 1, a: 2}`, ilerr.DuplicateField, "duplicate field 'a'"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			actual, errs := typeCheck(t, tt.src)
			require.True(t, errs.HasError(), "expected an error, got type %s", actual)
			err := errs.First()
			assert.Equal(t, tt.code, err.Code())
			assert.Equal(t, tt.message, err.Error())
		})
	}
}

func TestInferIsDeterministic(t *testing.T) {
	src := `{local a = {x: self.y}, b: a {y: self.z}, z: self.w, w: self.z}`
	first, errs := typeCheck(t, src)
	require.False(t, errs.HasError(), "unexpected errors: %v", errs)
	for range 10 {
		again, errs := typeCheck(t, src)
		require.False(t, errs.HasError())
		assert.Equal(t, first, again)
	}
}
