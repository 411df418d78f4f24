package frontend

import (
	"fmt"
	"slices"

	"github.com/cottand/jtype/frontend/ast"
	"github.com/cottand/jtype/internal/log"
	"github.com/cottand/jtype/util"
	"github.com/hashicorp/go-set/v3"
)

var renameLogger = log.DefaultLogger.With("section", "rename")

// RenamePhase returns file where every local, function parameter and
// comprehension variable has a name of the form name$N, unique within
// the file. Free variables keep their name.
// The tree of file is left untouched.
func RenamePhase(file ast.File) ast.File {
	r := &renamer{}
	file.Root = ast.CopyExpr(file.Root)
	r.rename(file.Root)
	renameLogger.Debug("renamed locals", "file", file.Name, "count", r.count, "free", FreeVariables(file.Root).Slice())
	return file
}

// FreeVariables returns the names of the variables of e which are not
// bound within e
func FreeVariables(e ast.Expr) *set.Set[string] {
	r := &renamer{dryRun: true}
	r.rename(e)
	return util.SetFromSeq(util.MapIter(slices.Values(r.free), func(v *ast.Var) string { return v.Name }), len(r.free))
}

type renamer struct {
	scopes util.Stack[map[string]string]
	count  int
	free   []*ast.Var
	// dryRun finds free variables without renaming anything
	dryRun bool
}

func (r *renamer) bind(names ...string) map[string]string {
	scope := make(map[string]string, len(names))
	for _, name := range names {
		r.count++
		scope[name] = fmt.Sprintf("%s$%d", name, r.count)
	}
	r.scopes.Push(scope)
	return scope
}

func (r *renamer) lookup(name string) (string, bool) {
	for scope := range r.scopes.FromTop() {
		if renamed, ok := scope[name]; ok {
			return renamed, true
		}
	}
	return "", false
}

func (r *renamer) rename(e ast.Expr) {
	switch e := e.(type) {
	case *ast.Var:
		renamed, ok := r.lookup(e.Name)
		if !ok {
			r.free = append(r.free, e)
			return
		}
		if !r.dryRun {
			e.Name = renamed
		}
		return
	case *ast.Local:
		names := make([]string, len(e.Binds))
		for i, b := range e.Binds {
			names[i] = b.Name
		}
		scope := r.bind(names...)
		defer r.scopes.Pop()
		for i := range e.Binds {
			r.rename(e.Binds[i].Body)
			if !r.dryRun {
				e.Binds[i].Name = scope[e.Binds[i].Name]
			}
		}
		r.rename(e.Body)
		return
	case *ast.Function:
		names := make([]string, len(e.Params))
		for i, p := range e.Params {
			names[i] = p.Name
		}
		scope := r.bind(names...)
		defer r.scopes.Pop()
		for i := range e.Params {
			if e.Params[i].Default != nil {
				r.rename(e.Params[i].Default)
			}
			if !r.dryRun {
				e.Params[i].Name = scope[e.Params[i].Name]
			}
		}
		r.rename(e.Body)
		return
	case *ast.ObjectComprehension:
		r.rename(e.Array)
		scope := r.bind(e.Id)
		defer r.scopes.Pop()
		r.rename(e.Name)
		r.rename(e.Body)
		if !r.dryRun {
			e.Id = scope[e.Id]
		}
		return
	}
	for _, child := range ast.Children(e) {
		r.rename(child)
	}
}
