package app

import (
	"context"
	stderrors "errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/gobwas/glob"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"emblint/internal/core/errors"
	"emblint/internal/data/history"
	"emblint/internal/shared/observability"
	"emblint/internal/shared/util"
	"emblint/internal/ui/report"
)

// Run lints every configured path once and returns the ordered result.
func (a *App) Run(ctx context.Context) (report.Result, error) {
	ctx, span := observability.Tracer.Start(ctx, "app.Run", trace.WithAttributes())
	defer span.End()

	start := time.Now()
	defer func() {
		observability.RunDuration.Observe(time.Since(start).Seconds())
	}()

	roots := make([]string, 0, len(a.Config.LintPaths))
	for _, p := range a.Config.LintPaths {
		if !filepath.IsAbs(p) {
			p = filepath.Join(a.Config.Paths.ProjectRoot, p)
		}
		roots = append(roots, filepath.Clean(p))
	}

	files, err := a.ScanDirectories(roots, a.Config.Exclude.Dirs, a.Config.Exclude.Files)
	if err != nil {
		return report.Result{}, errors.AddContext(err, errors.CtxOperation, "scan_directories")
	}

	res, err := a.LintFiles(ctx, files)
	if err != nil {
		return report.Result{}, err
	}

	if a.historyStore != nil {
		if err := a.recordRun(res, time.Since(start)); err != nil {
			return report.Result{}, err
		}
	}

	return res, nil
}

// ScanDirectories walks the roots and returns every lintable file in
// deterministic order.
func (a *App) ScanDirectories(paths []string, excludeDirs, excludeFiles []string) ([]string, error) {
	var files []string

	dirGlobs := make([]glob.Glob, 0, len(excludeDirs))
	for _, p := range excludeDirs {
		g, err := glob.Compile(p)
		if err != nil {
			return nil, errors.Wrap(err, errors.CodeConfigError, fmt.Sprintf("invalid exclude dir pattern %q", p))
		}
		dirGlobs = append(dirGlobs, g)
	}

	fileGlobs := make([]glob.Glob, 0, len(excludeFiles))
	for _, p := range excludeFiles {
		g, err := glob.Compile(p)
		if err != nil {
			return nil, errors.Wrap(err, errors.CodeConfigError, fmt.Sprintf("invalid exclude file pattern %q", p))
		}
		fileGlobs = append(fileGlobs, g)
	}

	for _, root := range paths {
		err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}

			base := filepath.Base(path)
			if d.IsDir() {
				for _, g := range dirGlobs {
					if g.Match(base) {
						return filepath.SkipDir
					}
				}
				return nil
			}

			if !a.codeParser.IsSupportedPath(path) {
				return nil
			}

			for _, g := range fileGlobs {
				if g.Match(base) {
					return nil
				}
			}

			files = append(files, path)
			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	sort.Strings(files)
	return files, nil
}

// LintFiles parses and evaluates the files concurrently. Result order
// matches the input order regardless of worker scheduling.
func (a *App) LintFiles(ctx context.Context, files []string) (report.Result, error) {
	results := make([]report.FileResult, len(files))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(a.Config.Performance.Workers)

	for i, path := range files {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results[i] = a.lintFile(ctx, path)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return report.Result{}, err
	}

	return report.Result{Files: results}, nil
}

func (a *App) lintFile(ctx context.Context, path string) report.FileResult {
	_, span := observability.Tracer.Start(ctx, "app.lintFile", trace.WithAttributes())
	defer span.End()

	display := a.displayPath(path)
	start := time.Now()

	content, err := os.ReadFile(path)
	if err != nil {
		observability.ParseFailuresTotal.Inc()
		return report.FileResult{Path: display, ParseError: fmt.Sprintf("read file: %v", err)}
	}

	mod, err := a.codeParser.ParseFile(path, content)
	observability.LintDuration.WithLabelValues(a.codeParser.GetLanguage(path)).Observe(time.Since(start).Seconds())
	observability.FilesLintedTotal.Inc()
	if err != nil {
		observability.ParseFailuresTotal.Inc()
		return report.FileResult{
			Path:           display,
			ParseError:     err.Error(),
			ParseErrorLine: errorLine(err),
		}
	}

	// Rules see the display path so that violations match report paths.
	mod.Path = display
	violations := a.ruleSet.Evaluate(mod)
	for _, v := range violations {
		observability.ViolationsTotal.WithLabelValues(v.RuleID).Inc()
	}

	return report.FileResult{Path: display, Violations: violations}
}

// displayPath makes report paths relative to the project root when the
// file lives inside it.
func (a *App) displayPath(path string) string {
	root := a.Config.Paths.ProjectRoot
	if root == "" || root == "." || !util.HasPathPrefix(path, root) {
		return filepath.ToSlash(path)
	}
	if rel, err := filepath.Rel(root, path); err == nil {
		return filepath.ToSlash(rel)
	}
	return filepath.ToSlash(path)
}

func (a *App) recordRun(res report.Result, duration time.Duration) error {
	clean := 0
	for _, file := range res.Files {
		if file.ParseError == "" && len(file.Violations) == 0 {
			clean++
		}
	}

	_, err := a.historyStore.SaveRun(history.Run{
		FileCount:       len(res.Files),
		CleanCount:      clean,
		ViolationCount:  res.ViolationCount(),
		ParseErrorCount: res.ParseErrorCount(),
		RuleCounts:      res.CountByRule(),
		Duration:        duration,
	})
	return err
}

// errorLine digs the line number out of a parse error's context.
func errorLine(err error) int {
	var de *errors.DomainError
	if !stderrors.As(err, &de) || de.Context == nil {
		return 0
	}
	if line, ok := de.Context[errors.CtxLine].(int); ok {
		return line
	}
	return 0
}
