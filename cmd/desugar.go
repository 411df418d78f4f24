package cmd

import (
	"fmt"

	"github.com/cottand/jtype/frontend"
	"github.com/cottand/jtype/frontend/ir"
	"github.com/cottand/jtype/jtype"
	"github.com/pkg/errors"
	"github.com/sanity-io/litter"
	"github.com/spf13/cobra"
)

var DesugarCmd = &cobra.Command{
	Use:          "desugar FILE",
	Short:        "Print the lambda-calculus form a Jsonnet file is typed as",
	RunE:         runDesugar,
	Args:         cobra.ExactArgs(1),
	SilenceUsage: true,
}

var (
	desugarFlags loadFlags
	desugarDump  *bool
)

func init() {
	desugarFlags.register(DesugarCmd)
	desugarDump = DesugarCmd.Flags().Bool("dump", false, "print the whole tree, positions included")
}

func runDesugar(cmd *cobra.Command, args []string) error {
	opts, err := desugarFlags.options()
	if err != nil {
		return err
	}
	file, errs, err := jtype.LoadFile(cmd.Context(), args[0], opts)
	if err != nil {
		return errors.Wrapf(err, "could not load %s", args[0])
	}
	var lowered ir.Expr
	if !errs.HasError() {
		lowered, _, errs = frontend.Lower(file)
	}
	if errs.HasError() {
		for _, ileError := range errs.Errors() {
			fmt.Fprintln(cmd.OutOrStdout(), ileError.Error())
		}
		return ErrIllTyped
	}

	if *desugarDump {
		fmt.Fprintln(cmd.OutOrStdout(), litter.Options{StripPackageNames: true, HideZeroValues: true}.Sdump(lowered))
		return nil
	}
	fmt.Fprintln(cmd.OutOrStdout(), ir.ExprString(lowered))
	return nil
}
