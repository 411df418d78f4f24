package cmd

import (
	"fmt"

	"github.com/cottand/jtype/frontend/ast"
	"github.com/cottand/jtype/jtype"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var AstCmd = &cobra.Command{
	Use:          "ast FILE",
	Short:        "Print the AST interchange document of a Jsonnet file",
	RunE:         runAst,
	Args:         cobra.ExactArgs(1),
	SilenceUsage: true,
}

var astFlags loadFlags

func init() {
	astFlags.register(AstCmd)
}

func runAst(cmd *cobra.Command, args []string) error {
	opts, err := astFlags.options()
	if err != nil {
		return err
	}
	file, errs, err := jtype.LoadFile(cmd.Context(), args[0], opts)
	if err != nil {
		return errors.Wrapf(err, "could not load %s", args[0])
	}
	if errs.HasError() {
		for _, ileError := range errs.Errors() {
			fmt.Fprintln(cmd.OutOrStdout(), ileError.Error())
		}
		return ErrIllTyped
	}
	return ast.EncodeJSON(cmd.OutOrStdout(), file)
}
