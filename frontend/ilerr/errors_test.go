package ilerr

import (
	"go/token"
	"testing"

	"github.com/cottand/jtype/frontend/ast"
	"github.com/stretchr/testify/assert"
)

func fileOf(src string) *token.File {
	_, file := ast.File{Name: "test.jsonnet", Size: len(src), Lines: ast.LineOffsets([]byte(src))}.FileSet()
	return file
}

func TestTypeMismatchFormat(t *testing.T) {
	src := "{\n  a: 1,\n  b: 2,\n}\n"
	file := fileOf(src)

	mismatch := NewTypeMismatch{Found: "string", Expected: "number"}
	assert.Equal(t, "Type mismatch: string != number", mismatch.Error())
	assert.False(t, mismatch.Located())

	// 'a: 1' sits on line 2 only
	singleLine := ast.Range{PosStart: ast.PosOf(4), PosEnd: ast.PosOf(8)}
	assert.Equal(t, "Type mismatch: string != number, line 2", mismatch.At(singleLine, file, "").Error())

	// the whole object spans lines 1 to 4
	whole := ast.Range{PosStart: ast.PosOf(0), PosEnd: ast.PosOf(len(src) - 1)}
	located := mismatch.At(whole, file, "a")
	assert.True(t, located.Located())
	assert.Equal(t, "Type mismatch: string != number, lines 1-4, field 'a'", located.Error())

	// a field set closer to where the error was raised wins
	mismatch.Field = "inner"
	assert.Equal(t, "Type mismatch: string != number, lines 1-4, field 'inner'", mismatch.At(whole, file, "outer").Error())
}

func TestTypeMismatchWithoutLineInformation(t *testing.T) {
	r := ast.Range{PosStart: ast.PosOf(3), PosEnd: ast.PosOf(5)}
	located := NewTypeMismatch{Found: "boolean", Expected: "number"}.At(r, nil, "x")
	assert.True(t, located.Located())
	assert.Equal(t, "Type mismatch: boolean != number, field 'x'", located.Error())
}

func TestFormatWithCode(t *testing.T) {
	err := New(NewUndefinedVariable{Name: "foo"})
	assert.Equal(t, "(E003) variable 'foo' is not defined", FormatWithCode(err))

	fset, _ := ast.File{Name: "test.jsonnet", Size: 10, Lines: []int{0, 5}}.FileSet()
	positioned := New(NewUnsupported{Range: ast.Range{PosStart: ast.PosOf(6), PosEnd: ast.PosOf(8)}, Construct: "arrays"})
	assert.Equal(t, "test.jsonnet:2:2: (E002) unsupported construct: arrays", FormatWithCodeAndSource(positioned, fset))
}

func TestErrors(t *testing.T) {
	var errs *Errors
	assert.False(t, errs.HasError())
	assert.Nil(t, errs.First())
	assert.Empty(t, errs.Errors())

	errs = errs.With(New(NewDuplicateField{Name: "a"}))
	errs = errs.Merge((*Errors)(nil).With(New(NewInternal{Message: "oops"})))
	assert.True(t, errs.HasError())
	assert.Len(t, errs.Errors(), 2)
	assert.Equal(t, "duplicate field 'a'", errs.First().Error())
	assert.Equal(t, "duplicate field 'a'\ninternal error: oops", errs.Error())
}
