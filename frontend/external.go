package frontend

import (
	"bytes"
	"context"
	"os/exec"

	"github.com/cottand/jtype/frontend/ast"
	"github.com/pkg/errors"
)

// ExternalParser obtains the AST of a file from another program, which
// is given the path of the file as its last argument and must print the
// AST in the JSON interchange format
type ExternalParser struct {
	Command string
	Args    []string
}

func (p ExternalParser) Parse(ctx context.Context, path string) (ast.File, error) {
	if p.Command == "" {
		return ast.File{}, errors.New("no parser command configured")
	}
	args := append(append([]string(nil), p.Args...), path)
	cmd := exec.CommandContext(ctx, p.Command, args...)
	stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
	cmd.Stdout, cmd.Stderr = stdout, stderr

	logger.Debug("running external parser", "command", p.Command, "args", args)
	if err := cmd.Run(); err != nil {
		return ast.File{}, errors.Wrapf(err, "parser %s failed on %s: %s", p.Command, path, bytes.TrimSpace(stderr.Bytes()))
	}
	file, err := DecodeAST(stdout)
	if err != nil {
		return ast.File{}, errors.Wrapf(err, "parser %s produced an invalid AST for %s", p.Command, path)
	}
	if file.Name == "" {
		file.Name = path
	}
	return file, nil
}
