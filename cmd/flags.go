package cmd

import (
	"strings"

	"github.com/cottand/jtype/internal/log"
	"github.com/cottand/jtype/jtype"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

// loadFlags are the flags of every command reading a FILE
type loadFlags struct {
	logLevel  string
	astJSON   bool
	parserCmd string
}

func (f *loadFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.logLevel, "log-level", "l", "warn", "log level: debug, info, warn or error")
	cmd.Flags().BoolVar(&f.astJSON, "ast-json", false, "FILE is an AST interchange document")
	cmd.Flags().StringVar(&f.parserCmd, "parser-cmd", "", "external parser, run with the path of FILE as its last argument")
}

// options applies the log level and returns how FILE should be loaded
func (f *loadFlags) options() (jtype.Options, error) {
	level, err := log.ParseLevel(f.logLevel)
	if err != nil {
		return jtype.Options{}, errors.Wrapf(err, "invalid log level %q", f.logLevel)
	}
	log.SetLevel(level)
	if f.astJSON && f.parserCmd != "" {
		return jtype.Options{}, errors.New("--ast-json and --parser-cmd are mutually exclusive")
	}
	return jtype.Options{ParserCmd: strings.Fields(f.parserCmd), ASTJSON: f.astJSON}, nil
}
