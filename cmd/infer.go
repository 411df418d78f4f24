package cmd

import (
	"fmt"

	"github.com/cottand/jtype/jtype"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var InferCmd = &cobra.Command{
	Use:          "infer FILE",
	Short:        "Infer the type of a Jsonnet file",
	RunE:         runInfer,
	Args:         cobra.ExactArgs(1),
	SilenceUsage: true,
}

// ErrIllTyped is returned by commands when the program they were given
// has errors. The errors themselves have been printed already.
var ErrIllTyped = errors.New("the program has errors")

var inferFlags loadFlags

func init() {
	inferFlags.register(InferCmd)
}

func runInfer(cmd *cobra.Command, args []string) error {
	opts, err := inferFlags.options()
	if err != nil {
		return err
	}
	result, err := jtype.CheckFile(cmd.Context(), args[0], opts)
	if err != nil {
		return errors.Wrapf(err, "could not check %s", args[0])
	}
	if result.Failed() {
		for _, ileError := range result.Errors.Errors() {
			fmt.Fprintln(cmd.OutOrStdout(), ileError.Error())
		}
		return ErrIllTyped
	}
	fmt.Fprintln(cmd.OutOrStdout(), result.Type)
	return nil
}
