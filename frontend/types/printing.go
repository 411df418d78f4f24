package types

import (
	"strconv"
	"strings"
)

// Printer renders types in their canonical form:
//
//	number, boolean, string
//	(a -> b)                  for functions
//	{x: number, y: a}         for rows, in field order
//
// Unbound variables are named a, b, c... in the order the Printer first
// meets them, so a single Printer should be used for types that are
// displayed together.
type Printer struct {
	arena *Arena
	names map[Var]string
}

func NewPrinter(arena *Arena) *Printer {
	return &Printer{arena: arena, names: make(map[Var]string)}
}

// TypeString prints t with a Printer of its own
func (a *Arena) TypeString(t Type) string {
	return NewPrinter(a).Print(t)
}

func (p *Printer) Print(t Type) string {
	sb := &strings.Builder{}
	p.write(sb, t)
	return sb.String()
}

func (p *Printer) write(sb *strings.Builder, t Type) {
	switch t := p.arena.Prune(t).(type) {
	case Var:
		sb.WriteString(p.nameOf(t))
	case *Operator:
		switch {
		case len(t.Args) == 0:
			sb.WriteString(t.Name)
		case len(t.Args) == 2:
			sb.WriteByte('(')
			p.write(sb, t.Args[0])
			sb.WriteString(" " + t.Name + " ")
			p.write(sb, t.Args[1])
			sb.WriteByte(')')
		default:
			sb.WriteString(t.Name)
			for _, arg := range t.Args {
				sb.WriteByte(' ')
				p.write(sb, arg)
			}
		}
	case *Row:
		sb.WriteByte('{')
		for i, f := range t.fields {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(f.Name)
			sb.WriteString(": ")
			p.write(sb, f.Type)
		}
		sb.WriteByte('}')
	case nil:
		sb.WriteString("<nil>")
	}
}

func (p *Printer) nameOf(v Var) string {
	if name, ok := p.names[v]; ok {
		return name
	}
	n := len(p.names)
	name := string(rune('a' + n%26))
	if n >= 26 {
		name += strconv.Itoa(n / 26)
	}
	p.names[v] = name
	return name
}
