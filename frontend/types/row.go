package types

import "fmt"

// Flag records where a Row field comes from
type Flag uint8

const (
	// Declared fields are defined in the body of an object literal
	Declared Flag = iota
	// Required fields are accessed through self but not defined locally.
	// Some other object has to provide them, typically the base of an inheritance.
	Required
)

func (f Flag) String() string {
	switch f {
	case Declared:
		return "declared"
	case Required:
		return "required"
	default:
		return fmt.Sprintf("Flag(%d)", uint8(f))
	}
}

type Field struct {
	Name string
	Type Type
	Flag Flag
}

// Row is a closed record type. Fields keep their insertion order,
// which is the order they are displayed in.
type Row struct {
	fields []Field
	index  map[string]int
}

func (*Row) typeNode() {}

func NewRow(fields ...Field) *Row {
	r := &Row{index: make(map[string]int, len(fields))}
	for _, f := range fields {
		r.Add(f)
	}
	return r
}

func (r *Row) Len() int { return len(r.fields) }

// Fields returns the fields of r in order. The slice must not be modified.
func (r *Row) Fields() []Field { return r.fields }

func (r *Row) Field(name string) (Field, bool) {
	i, ok := r.index[name]
	if !ok {
		return Field{}, false
	}
	return r.fields[i], true
}

func (r *Row) Has(name string) bool {
	_, ok := r.index[name]
	return ok
}

// Add appends f to r, unless r already has a field with that name,
// in which case r is left untouched and Add returns false
func (r *Row) Add(f Field) bool {
	if r.Has(f.Name) {
		return false
	}
	r.index[f.Name] = len(r.fields)
	r.fields = append(r.fields, f)
	return true
}

// Names returns the field names of r in order
func (r *Row) Names() []string {
	names := make([]string, len(r.fields))
	for i, f := range r.fields {
		names[i] = f.Name
	}
	return names
}
