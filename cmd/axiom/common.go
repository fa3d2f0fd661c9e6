package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"axiom/internal/diag"
	"axiom/internal/diagfmt"
	"axiom/internal/driver"
	"axiom/internal/observ"
	"axiom/internal/project"
	"axiom/internal/source"
)

// runEnv gathers what every command reads from the persistent flags and the manifest.
type runEnv struct {
	opts     driver.Options
	manifest *project.Manifest
	color    bool
	quiet    bool
}

func newRunEnv(cmd *cobra.Command) (*runEnv, error) {
	root := cmd.Root().PersistentFlags()
	colorFlag, err := root.GetString("color")
	if err != nil {
		return nil, fmt.Errorf("failed to get color flag: %w", err)
	}
	useColor, err := colorEnabled(colorFlag, os.Stderr)
	if err != nil {
		return nil, err
	}
	quiet, err := root.GetBool("quiet")
	if err != nil {
		return nil, fmt.Errorf("failed to get quiet flag: %w", err)
	}
	showTimings, err := root.GetBool("timings")
	if err != nil {
		return nil, fmt.Errorf("failed to get timings flag: %w", err)
	}
	maxErrors, err := root.GetInt("max-errors")
	if err != nil {
		return nil, fmt.Errorf("failed to get max-errors flag: %w", err)
	}
	maxDepth, err := root.GetInt("max-depth")
	if err != nil {
		return nil, fmt.Errorf("failed to get max-depth flag: %w", err)
	}

	manifest, _, err := project.Find(".")
	if err != nil {
		return nil, err
	}

	env := &runEnv{
		opts: driver.Options{
			MaxDepth:  maxDepth,
			MaxErrors: maxErrors,
			NFC:       manifest.NFC(),
		},
		manifest: manifest,
		color:    useColor,
		quiet:    quiet,
	}
	if showTimings {
		env.opts.Timer = observ.NewTimer()
	}
	return env, nil
}

func colorEnabled(flag string, f *os.File) (bool, error) {
	switch strings.ToLower(flag) {
	case "on":
		return true, nil
	case "off":
		return false, nil
	case "auto":
		return isTerminal(f), nil
	default:
		return false, fmt.Errorf("unknown color mode %q (must be auto, on or off)", flag)
	}
}

// mainTarget returns args[0] or, without arguments, the manifest entry unit.
func (env *runEnv) mainTarget(args []string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	if env.manifest == nil {
		return "", fmt.Errorf("no %s found\nplease specify the unit explicitly, e.g.:\n  axiom parse path/to/main%s",
			project.ManifestName, driver.UnitExt)
	}
	return env.manifest.MainPath()
}

// report renders err when it is an assembler error and returns errReported;
// other errors are returned unchanged.
func (env *runEnv) report(w io.Writer, err error, set *source.UnitSet) error {
	if err == nil {
		return nil
	}
	d, ok := diag.As(err)
	if !ok {
		return err
	}
	diagfmt.Pretty(w, []*diag.Error{d}, set, diagfmt.PrettyOpts{
		Color:     env.color,
		Context:   1,
		ShowNotes: true,
	})
	return errReported
}

func (env *runEnv) printTimings(w io.Writer) {
	if env.opts.Timer == nil {
		return
	}
	fmt.Fprint(w, env.opts.Timer.Summary())
}
