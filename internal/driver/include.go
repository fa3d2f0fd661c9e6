package driver

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"axiom/internal/compositor"
	"axiom/internal/diag"
	"axiom/internal/source"
	"axiom/internal/trace"
)

// ErrUnitNotFound is returned by resolvers for unknown unit ids.
var ErrUnitNotFound = errors.New("unit not found")

// Resolver maps an include target to a loaded unit.
type Resolver interface {
	Resolve(id string) (*source.Unit, error)
}

// DirResolver searches include targets in a list of directories.
// A target without extension also matches the file with UnitExt appended.
type DirResolver struct {
	Set  *source.UnitSet
	Dirs []string
	Load source.LoadOptions
}

// Resolve loads the first matching file; a unit loaded earlier is reused.
func (r *DirResolver) Resolve(id string) (*source.Unit, error) {
	names := []string{filepath.FromSlash(id)}
	if filepath.Ext(id) == "" {
		names = append(names, filepath.FromSlash(id)+UnitExt)
	}
	for _, dir := range r.Dirs {
		for _, name := range names {
			path := filepath.Join(dir, name)
			info, err := os.Stat(path)
			if err != nil || info.IsDir() {
				continue
			}
			if unit, ok := r.Set.Get(filepath.ToSlash(filepath.Clean(path))); ok {
				return unit, nil
			}
			return r.Set.Load(path, r.Load)
		}
	}
	return nil, fmt.Errorf("%w: %s (searched %v)", ErrUnitNotFound, id, r.Dirs)
}

// Program is an entry unit together with every unit it includes, transitively.
type Program struct {
	Set *source.UnitSet
	// Units are in breadth-first discovery order, the entry first.
	Units []ProgramUnit
}

// ProgramUnit is one parsed unit of a program.
type ProgramUnit struct {
	Unit     *source.Unit
	Tree     []compositor.Token
	Includes []string
}

// ParseProgram parses entry and, breadth first, every literal include target
// reachable from it. Each unit is parsed once. Placeholder targets are not
// followed. The first error stops the walk; the partial program is returned.
func ParseProgram(ctx context.Context, set *source.UnitSet, entry *source.Unit, resolver Resolver, opts Options) (*Program, error) {
	prog := &Program{Set: set}
	ctx, span := trace.Start(ctx, trace.ScopeDriver, "program", trace.Site{Unit: entry.ID})

	seen := map[string]bool{entry.ID: true}
	queue := []*source.Unit{entry}
	for len(queue) > 0 {
		unit := queue[0]
		queue = queue[1:]

		uctx, uspan := trace.Start(ctx, trace.ScopeUnit, "unit", trace.Site{Unit: unit.ID})
		tree, err := parseMemo(uctx, unit, opts)
		uspan.End(err)
		if err != nil {
			span.Tokens(len(prog.Units)).End(err)
			return prog, err
		}
		pu := ProgramUnit{Unit: unit, Tree: tree, Includes: CollectIncludes(tree)}
		prog.Units = append(prog.Units, pu)

		for _, inc := range compositor.Includes(tree) {
			target, ok := inc.Target.(compositor.Value[string])
			if !ok {
				continue
			}
			dep, err := resolver.Resolve(target.Value)
			if err != nil {
				derr := diag.Wrap(diag.DrvMissingUnit, target.Span, err, fmt.Sprintf("cannot resolve unit %q", target.Value))
				span.Tokens(len(prog.Units)).End(derr)
				return prog, derr
			}
			if seen[dep.ID] {
				continue
			}
			seen[dep.ID] = true
			queue = append(queue, dep)
		}
	}
	span.Tokens(len(prog.Units)).End(nil)
	return prog, nil
}

func parseMemo(ctx context.Context, unit *source.Unit, opts Options) ([]compositor.Token, error) {
	if tree, derr, ok := opts.Memo.Get(unit); ok {
		if derr != nil {
			return nil, derr
		}
		return tree, nil
	}
	tree, err := parseUnit(ctx, unit, opts)
	if err != nil {
		if d, ok := diag.As(err); ok {
			opts.Memo.Put(unit, nil, d)
		}
		return nil, err
	}
	opts.Memo.Put(unit, tree, nil)
	return tree, nil
}
