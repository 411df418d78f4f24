package types

// Arena owns the type variables of a single inference run.
//
// Each Var indexes a slot holding its instance: nil while the variable is
// unbound, otherwise the type it was unified with. Slots form union-find
// forwarding chains which Prune follows and compresses.
type Arena struct {
	instances []Type
}

func NewArena() *Arena {
	return &Arena{}
}

// Fresh allocates a new unbound variable. Variables are numbered in
// allocation order, so a smaller Var was always created earlier.
func (a *Arena) Fresh() Var {
	a.instances = append(a.instances, nil)
	return Var(len(a.instances) - 1)
}

// Len is the number of variables allocated so far
func (a *Arena) Len() int { return len(a.instances) }

// Instance returns what v is bound to, or nil if v is unbound
func (a *Arena) Instance(v Var) Type {
	return a.instances[v]
}

// Bind sets the instance of an unbound variable.
// Binding an already bound variable is a bug in the caller.
func (a *Arena) Bind(v Var, t Type) {
	if a.instances[v] != nil {
		panic("types: rebinding a bound type variable")
	}
	a.instances[v] = t
}

// Prune returns the representative of t: t itself unless t is a bound
// Var, in which case the end of its forwarding chain.
func (a *Arena) Prune(t Type) Type {
	v, ok := t.(Var)
	if !ok {
		return t
	}
	instance := a.instances[v]
	if instance == nil {
		return v
	}
	pruned := a.Prune(instance)
	a.instances[v] = pruned
	return pruned
}

// Occurs reports whether v appears anywhere inside t once pruned
func (a *Arena) Occurs(v Var, t Type) bool {
	switch t := a.Prune(t).(type) {
	case Var:
		return t == v
	case *Operator:
		for _, arg := range t.Args {
			if a.Occurs(v, arg) {
				return true
			}
		}
	case *Row:
		for _, field := range t.fields {
			if a.Occurs(v, field.Type) {
				return true
			}
		}
	}
	return false
}
