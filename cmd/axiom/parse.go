package main

import (
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"axiom/internal/diagfmt"
	"axiom/internal/driver"
	"axiom/internal/source"
)

var parseCmd = &cobra.Command{
	Use:   "parse [flags] [file.axm]",
	Short: "Parse an assembler unit and print its directive tree",
	Long: `Parse lexes a unit, parses its compositor directives and prints the resulting tree.
With --program the literal includes are followed and every reachable unit is printed.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runParse,
}

func init() {
	parseCmd.Flags().String("format", "pretty", "output format (pretty|json|yaml)")
	parseCmd.Flags().Bool("program", false, "follow literal includes and parse every reachable unit")
	parseCmd.Flags().StringSliceP("include", "I", nil, "additional include directories")
}

// programUnitOutput is one unit of a --program dump.
type programUnitOutput struct {
	Unit string             `json:"unit" yaml:"unit"`
	Tree []diagfmt.TreeNode `json:"tree" yaml:"tree"`
}

func runParse(cmd *cobra.Command, args []string) error {
	defer dumpTraceOnPanic()

	formatStr, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	format, err := diagfmt.ParseTreeFormat(formatStr)
	if err != nil {
		return err
	}
	program, err := cmd.Flags().GetBool("program")
	if err != nil {
		return fmt.Errorf("failed to get program flag: %w", err)
	}
	includes, err := cmd.Flags().GetStringSlice("include")
	if err != nil {
		return fmt.Errorf("failed to get include flag: %w", err)
	}

	env, err := newRunEnv(cmd)
	if err != nil {
		return err
	}
	path, err := env.mainTarget(args)
	if err != nil {
		return err
	}
	defer env.printTimings(cmd.ErrOrStderr())

	if program {
		return runParseProgram(cmd, env, path, includes, format)
	}

	result, err := driver.Parse(cmd.Context(), path, env.opts)
	if err != nil {
		if result == nil {
			return env.report(cmd.ErrOrStderr(), err, nil)
		}
		return env.report(cmd.ErrOrStderr(), err, result.Set)
	}
	return diagfmt.FormatTree(cmd.OutOrStdout(), result.Tree, format)
}

func runParseProgram(cmd *cobra.Command, env *runEnv, path string, includes []string, format diagfmt.TreeFormat) error {
	// абсолютные пути дают один id на файл при любом каталоге поиска
	path, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	base := filepath.Dir(path)
	dirs := []string{base}
	if env.manifest != nil {
		base = env.manifest.Root
		dirs = append(dirs, env.manifest.IncludeDirs()...)
	}
	for _, dir := range includes {
		abs, err := filepath.Abs(dir)
		if err != nil {
			return err
		}
		dirs = append(dirs, abs)
	}

	set := source.NewUnitSetWithBase(base)
	load := source.LoadOptions{NFC: env.opts.NFC}
	entry, err := set.Load(path, load)
	if err != nil {
		return fmt.Errorf("cannot load %s: %w", path, err)
	}
	opts := env.opts
	opts.Memo = driver.NewUnitCache(8)
	resolver := &driver.DirResolver{Set: set, Dirs: dirs, Load: load}

	prog, err := driver.ParseProgram(cmd.Context(), set, entry, resolver, opts)
	if err != nil {
		return env.report(cmd.ErrOrStderr(), err, set)
	}

	out := cmd.OutOrStdout()
	switch format {
	case diagfmt.TreeJSON, diagfmt.TreeYAML:
		units := make([]programUnitOutput, 0, len(prog.Units))
		for _, u := range prog.Units {
			units = append(units, programUnitOutput{Unit: set.DisplayPath(u.Unit), Tree: diagfmt.BuildTree(u.Tree)})
		}
		return encodeUnits(out, units, format)
	default:
		for i, u := range prog.Units {
			if !env.quiet {
				if i > 0 {
					fmt.Fprintln(out)
				}
				fmt.Fprintf(out, "== %s ==\n", set.DisplayPath(u.Unit))
			}
			if err := diagfmt.FormatTree(out, u.Tree, format); err != nil {
				return err
			}
		}
		return nil
	}
}

func encodeUnits(w io.Writer, units []programUnitOutput, format diagfmt.TreeFormat) error {
	if format == diagfmt.TreeYAML {
		encoder := yaml.NewEncoder(w)
		encoder.SetIndent(2)
		if err := encoder.Encode(units); err != nil {
			return err
		}
		return encoder.Close()
	}
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(units)
}
