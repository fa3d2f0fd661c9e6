package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"axiom/internal/diagfmt"
	"axiom/internal/driver"
)

var tokenizeCmd = &cobra.Command{
	Use:   "tokenize [flags] [file.axm]",
	Short: "Tokenize an assembler unit",
	Long:  `Tokenize runs the lexer pipeline over a unit and prints the resulting tokens`,
	Args:  cobra.MaximumNArgs(1),
	RunE:  runTokenize,
}

func init() {
	tokenizeCmd.Flags().String("format", "pretty", "output format (pretty|json)")
	tokenizeCmd.Flags().String("stage", "", "stop after the named lexer pass (tokenize or a pass name)")
}

func runTokenize(cmd *cobra.Command, args []string) error {
	defer dumpTraceOnPanic()

	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	if format != "pretty" && format != "json" {
		return fmt.Errorf("unknown format: %s", format)
	}
	stage, err := cmd.Flags().GetString("stage")
	if err != nil {
		return fmt.Errorf("failed to get stage flag: %w", err)
	}

	env, err := newRunEnv(cmd)
	if err != nil {
		return err
	}
	path, err := env.mainTarget(args)
	if err != nil {
		return err
	}
	opts := env.opts
	opts.StopAfter = stage

	result, err := driver.Tokenize(cmd.Context(), path, opts)
	defer env.printTimings(cmd.ErrOrStderr())
	if err != nil {
		if result == nil {
			return env.report(cmd.ErrOrStderr(), err, nil)
		}
		return env.report(cmd.ErrOrStderr(), err, result.Set)
	}

	if format == "json" {
		return diagfmt.FormatTokensJSON(cmd.OutOrStdout(), result.Tokens, result.Set)
	}
	return diagfmt.FormatTokensPretty(cmd.OutOrStdout(), result.Tokens)
}
