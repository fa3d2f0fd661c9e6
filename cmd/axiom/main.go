package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"axiom/internal/prof"
	"axiom/internal/version"
)

// errReported marks failures whose errors were already rendered.
var errReported = errors.New("errors reported")

var (
	traceCleanup func()
	profiling    *prof.Session
)

var rootCmd = &cobra.Command{
	Use:           "axiom",
	Short:         "Axiom assembler front end",
	Long:          `Axiom tokenizes assembler units and parses their compositor directives`,
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cleanup, err := setupTracing(cmd)
		if err != nil {
			return err
		}
		traceCleanup = cleanup
		profiling, err = setupProfiling(cmd)
		return err
	},
}

// main registers the subcommands and persistent flags and executes the root command.
// Any failure exits with status 1.
func main() {
	// Устанавливаем версию для автоматического флага --version
	rootCmd.Version = version.Collect().Version

	rootCmd.AddCommand(tokenizeCmd)
	rootCmd.AddCommand(parseCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(versionCmd)

	// Глобальные флаги
	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().Bool("quiet", false, "suppress non-essential output")
	rootCmd.PersistentFlags().Bool("timings", false, "show timing information")
	rootCmd.PersistentFlags().Int("max-errors", 100, "maximum number of errors collected by directory runs")
	rootCmd.PersistentFlags().Int("max-depth", 0, "maximum bracket nesting accepted by the compositor (0=default)")
	registerTraceFlags(rootCmd)
	rootCmd.PersistentFlags().String("cpu-profile", "", "write a CPU profile to the file")
	rootCmd.PersistentFlags().String("mem-profile", "", "write a heap profile to the file on exit")
	rootCmd.PersistentFlags().String("runtime-trace", "", "write a Go runtime trace to the file")

	err := rootCmd.Execute()
	finish()
	if err != nil {
		if !errors.Is(err, errReported) {
			fmt.Fprintf(os.Stderr, "axiom: %v\n", err)
		}
		os.Exit(1)
	}
}

// finish stops profiling and flushes the tracer; PostRun hooks are skipped on failure.
func finish() {
	if err := profiling.Stop(); err != nil {
		fmt.Fprintf(os.Stderr, "profiling: %v\n", err)
	}
	if traceCleanup != nil {
		traceCleanup()
	}
}

// isTerminal проверяет, является ли файл терминалом
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
