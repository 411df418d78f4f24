package ast

import (
	"fmt"
	"go/token"
)

// Positioner allows finding the location in the original source file.
type Positioner interface {
	Pos() token.Pos // position of first character belonging to the node
	End() token.Pos // position of first character immediately after the node
}

// Range represents a range of positions in the source code.
// The zero Range means the position is unknown.
type Range struct {
	PosStart token.Pos
	PosEnd   token.Pos
}

// Pos returns the starting position of the range.
func (r Range) Pos() token.Pos { return r.PosStart }

// End returns the ending position of the range.
func (r Range) End() token.Pos { return r.PosEnd }

// IsValid reports whether the range points somewhere in a file
func (r Range) IsValid() bool { return r.PosStart.IsValid() }

// String returns a string representation of the range.
func (r Range) String() string {
	if r.PosStart == r.PosEnd {
		return fmt.Sprintf("%v", r.PosStart)
	}
	return fmt.Sprintf("%v-%v", r.PosStart, r.PosEnd)
}

// Lines returns the line of the first and of the last character of r in file.
// Both are 0 when file is nil or r is not a valid range of file.
func (r Range) Lines(file *token.File) (start, end int) {
	if file == nil || !r.IsValid() {
		return 0, 0
	}
	base, size := token.Pos(file.Base()), file.Size()
	inFile := func(p token.Pos) bool { return p >= base && int(p-base) <= size }
	if !inFile(r.PosStart) {
		return 0, 0
	}
	last := r.PosEnd - 1
	if last < r.PosStart || !inFile(last) {
		last = r.PosStart
	}
	return file.Line(r.PosStart), file.Line(last)
}

// RangeBetween creates a Range between two Positioners.
func RangeBetween(fst, snd Positioner) Range {
	return Range{fst.Pos(), snd.End()}
}

// RangeOf creates a Range from a Positioner.
func RangeOf(expr Positioner) Range {
	if expr == nil {
		return Range{}
	}
	if asRange, ok := expr.(*Range); ok {
		return *asRange
	}
	if asRange, ok := expr.(Range); ok {
		return asRange
	}
	return Range{expr.Pos(), expr.End()}
}

// PosOf converts a byte offset of a single-file program into a token.Pos.
// Files are always added to a fresh token.FileSet, so their base is 1.
func PosOf(offset int) token.Pos { return token.Pos(offset + 1) }

// OffsetOf is the inverse of PosOf
func OffsetOf(p token.Pos) int { return int(p) - 1 }
