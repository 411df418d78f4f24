//go:build !(js || wasm)

package main

import (
	"os"

	"github.com/cottand/jtype/cmd"
	"github.com/spf13/cobra"
)

func main() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:          "jtype [subcommand]",
	Short:        "jtype infers structural types for Jsonnet objects and their inheritance",
	Args:         cobra.MinimumNArgs(1),
	SilenceUsage: true,
}

func init() {
	rootCmd.AddCommand(cmd.InferCmd)
	rootCmd.AddCommand(cmd.DesugarCmd)
	rootCmd.AddCommand(cmd.AstCmd)
}
