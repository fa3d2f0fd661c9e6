package driver

import (
	"context"
	"io/fs"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"axiom/internal/compositor"
	"axiom/internal/diag"
	"axiom/internal/source"
	"axiom/internal/trace"
)

// UnitResult содержит результат разбора одного юнита.
type UnitResult struct {
	Path string       // путь к файлу
	Unit *source.Unit // nil, если файл не загрузился
	// Tree is nil when the unit failed or the summary came from the disk cache.
	Tree    []compositor.Token
	Summary Summary
	Cached  bool
}

// listUnits возвращает отсортированный список всех *.axm файлов в директории
func listUnits(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(path, UnitExt) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	// Сортируем для детерминированного порядка
	sort.Strings(files)
	return files, nil
}

// ParseDir разбирает все *.axm файлы в директории параллельно.
// Lexical, grammar and load errors are collected per unit and in the bag;
// only cancellation and cache I/O failures abort the run.
func ParseDir(ctx context.Context, dir string, opts Options, jobs int) (*source.UnitSet, []UnitResult, *diag.Bag, error) {
	files, err := listUnits(dir)
	if err != nil {
		return nil, nil, nil, err
	}
	set := source.NewUnitSetWithBase(dir)
	bag := diag.NewBag(opts.MaxErrors)
	if len(files) == 0 {
		return set, nil, bag, nil
	}

	ctx, dirSpan := trace.Start(ctx, trace.ScopeDriver, "parse-dir", trace.Site{})

	// UnitSet не потокобезопасен: загружаем всё заранее
	results := make([]UnitResult, len(files))
	_ = opts.Timer.Measure("load", func() error {
		for i, path := range files {
			results[i].Path = path
			unit, err := set.Load(path, opts.load())
			if err != nil {
				d := diag.Wrap(diag.DrvLoadFile, nil, err, "cannot load "+path)
				results[i].Summary.Err = d
				bag.Add(d)
				continue
			}
			results[i].Unit = unit
		}
		return nil
	})

	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	unitOpts := opts
	unitOpts.Timer = nil

	err = opts.Timer.Measure("units", func() error {
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(min(jobs, len(files)))
		for i := range results {
			if results[i].Unit == nil {
				continue
			}
			i := i
			g.Go(func() error {
				uctx, span := trace.Start(gctx, trace.ScopeUnit, "unit", trace.Site{Unit: results[i].Unit.ID})
				err := processUnit(uctx, &results[i], unitOpts, bag)
				span.Tokens(results[i].Summary.Tokens).End(unitErr(err, results[i].Summary.Err))
				return err
			})
		}
		return g.Wait()
	})
	if err != nil {
		dirSpan.End(err)
		return set, nil, bag, err
	}
	bag.Sort()
	dirSpan.Tokens(len(files)).End(nil)
	return set, results, bag, nil
}

// unitErr is what a unit span ends with: the run failure, else the unit's own error.
func unitErr(runErr error, d *diag.Error) error {
	if runErr != nil {
		return runErr
	}
	if d != nil {
		return d
	}
	return nil
}

// processUnit fills res from the disk cache or by parsing the unit.
func processUnit(ctx context.Context, res *UnitResult, opts Options, bag *diag.Bag) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if opts.Cache != nil {
		summary, ok, err := opts.Cache.Get(res.Unit, opts)
		if err != nil {
			return err
		}
		if ok {
			res.Summary, res.Cached = summary, true
			bag.Add(summary.Err)
			return nil
		}
	}

	tree, err := parseUnit(ctx, res.Unit, opts)
	if err != nil {
		d, ok := diag.As(err)
		if !ok {
			return err
		}
		res.Summary = Summarize(nil, d)
		bag.Add(d)
	} else {
		res.Tree = tree
		res.Summary = Summarize(tree, nil)
	}
	if opts.Cache != nil {
		return opts.Cache.Put(res.Unit, opts, res.Summary)
	}
	return nil
}
