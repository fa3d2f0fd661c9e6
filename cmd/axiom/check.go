package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"axiom/internal/diag"
	"axiom/internal/diagfmt"
	"axiom/internal/driver"
	"axiom/internal/project"
	"axiom/internal/source"
)

var checkCmd = &cobra.Command{
	Use:   "check [flags] [<file.axm|directory>...]",
	Short: "Check assembler units for lexical and directive errors",
	Long: `Check parses every given unit, or every *.axm file of the given directories,
and reports the errors found. Without arguments the project root is checked.`,
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().String("format", "pretty", "error output format (pretty|json|short)")
	checkCmd.Flags().Int("jobs", 0, "max parallel workers for directory processing (0=auto)")
	checkCmd.Flags().Bool("no-cache", false, "disable the persistent unit cache")
	checkCmd.Flags().Bool("drop-cache", false, "clear the persistent unit cache before checking")
}

// checkTarget is the outcome of one command line argument.
type checkTarget struct {
	set     *source.UnitSet
	results []driver.UnitResult
	errs    []*diag.Error
}

func runCheck(cmd *cobra.Command, args []string) error {
	defer dumpTraceOnPanic()

	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	switch format {
	case "pretty", "json", "short":
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
	jobs, err := cmd.Flags().GetInt("jobs")
	if err != nil {
		return fmt.Errorf("failed to get jobs flag: %w", err)
	}
	noCache, err := cmd.Flags().GetBool("no-cache")
	if err != nil {
		return fmt.Errorf("failed to get no-cache flag: %w", err)
	}
	dropCache, err := cmd.Flags().GetBool("drop-cache")
	if err != nil {
		return fmt.Errorf("failed to get drop-cache flag: %w", err)
	}

	env, err := newRunEnv(cmd)
	if err != nil {
		return err
	}
	if len(args) == 0 {
		if env.manifest == nil {
			return fmt.Errorf("no %s found\nplease specify units or directories to check", project.ManifestName)
		}
		args = []string{env.manifest.Root}
	}

	if !noCache {
		cache, err := driver.OpenDiskCache("axiom")
		if err != nil {
			return fmt.Errorf("failed to open cache: %w", err)
		}
		if dropCache {
			if err := cache.DropAll(); err != nil {
				return fmt.Errorf("failed to drop cache: %w", err)
			}
			if cache, err = driver.OpenDiskCache("axiom"); err != nil {
				return fmt.Errorf("failed to open cache: %w", err)
			}
		}
		env.opts.Cache = cache
	}

	targets := make([]checkTarget, 0, len(args))
	failed := false
	for _, arg := range args {
		target, err := checkPath(cmd.Context(), arg, env.opts, jobs)
		if err != nil {
			return err
		}
		failed = failed || len(target.errs) > 0
		targets = append(targets, target)
	}

	out, errOut := cmd.OutOrStdout(), cmd.ErrOrStderr()
	if !env.quiet {
		for _, t := range targets {
			printSummaries(out, t)
		}
	}
	if err := printCheckErrors(errOut, out, env, targets, format); err != nil {
		return err
	}
	env.printTimings(errOut)
	if failed {
		return errReported
	}
	return nil
}

func checkPath(ctx context.Context, path string, opts driver.Options, jobs int) (checkTarget, error) {
	st, err := os.Stat(path)
	if err != nil {
		return checkTarget{}, fmt.Errorf("failed to stat path: %w", err)
	}
	if st.IsDir() {
		set, results, bag, err := driver.ParseDir(ctx, path, opts, jobs)
		if err != nil {
			return checkTarget{}, fmt.Errorf("checking %s failed: %w", path, err)
		}
		return checkTarget{set: set, results: results, errs: bag.Items()}, nil
	}

	res, err := driver.Parse(ctx, path, opts)
	if res == nil {
		d, ok := diag.As(err)
		if !ok {
			return checkTarget{}, err
		}
		return checkTarget{errs: []*diag.Error{d}}, nil
	}
	target := checkTarget{set: res.Set}
	var d *diag.Error
	if err != nil {
		var ok bool
		if d, ok = diag.As(err); !ok {
			return checkTarget{}, err
		}
		target.errs = append(target.errs, d)
	}
	target.results = []driver.UnitResult{{
		Path:    path,
		Unit:    res.Unit,
		Tree:    res.Tree,
		Summary: driver.Summarize(res.Tree, d),
	}}
	return target, nil
}

func printSummaries(w io.Writer, t checkTarget) {
	for _, r := range t.results {
		name := r.Path
		if r.Unit != nil && t.set != nil {
			name = t.set.DisplayPath(r.Unit)
		}
		status := "ok  "
		if r.Summary.Err != nil {
			status = "FAIL"
		}
		line := fmt.Sprintf("%s %s: %d tokens, %d directives", status, name, r.Summary.Tokens, r.Summary.Directives)
		if len(r.Summary.Includes) > 0 {
			line += ", includes " + strings.Join(r.Summary.Includes, ", ")
		}
		if r.Cached {
			line += " (cached)"
		}
		fmt.Fprintln(w, line)
	}
}

func printCheckErrors(errOut, out io.Writer, env *runEnv, targets []checkTarget, format string) error {
	for _, t := range targets {
		if len(t.errs) == 0 {
			continue
		}
		switch format {
		case "json":
			opts := diagfmt.JSONOpts{IncludePositions: true, IncludeNotes: true, Max: env.opts.MaxErrors}
			if err := diagfmt.JSON(out, t.errs, t.set, opts); err != nil {
				return err
			}
		case "short":
			fmt.Fprintln(errOut, diag.FormatShort(t.errs, t.set, true))
		default:
			diagfmt.Pretty(errOut, t.errs, t.set, diagfmt.PrettyOpts{
				Color:     env.color,
				Context:   1,
				ShowNotes: true,
			})
		}
	}
	return nil
}
