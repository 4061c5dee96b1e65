package app

import (
	"context"
	"log/slog"
	"path/filepath"

	"emblint/internal/shared/observability"
	"emblint/internal/ui/report"
	"emblint/internal/watcher"
)

// StartWatcher relints on file changes until ctx is cancelled. Each
// batch of changes triggers one full run so that cross-file state such
// as the clean count stays accurate; onResult receives every result.
func (a *App) StartWatcher(ctx context.Context, onResult func(report.Result)) error {
	roots := make([]string, 0, len(a.Config.LintPaths))
	for _, p := range a.Config.LintPaths {
		if !filepath.IsAbs(p) {
			p = filepath.Join(a.Config.Paths.ProjectRoot, p)
		}
		roots = append(roots, filepath.Clean(p))
	}

	runs := make(chan []string, 1)
	w, err := watcher.New(
		a.Config.Watch.Debounce,
		a.Config.Exclude.Dirs,
		a.Config.Exclude.Files,
		a.codeParser.SupportedExtensions(),
		func(paths []string) {
			select {
			case runs <- paths:
			default:
				// A relint is already queued; the next run picks the
				// changes up anyway.
			}
		},
	)
	if err != nil {
		return err
	}
	defer w.Close()

	if err := w.Watch(roots); err != nil {
		return err
	}
	slog.Info("watching for changes", "paths", roots, "debounce", a.Config.Watch.Debounce)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case changed := <-runs:
			observability.WatchRunsTotal.Inc()
			slog.Info("relinting after change", "files", len(changed))

			res, err := a.Run(ctx)
			if err != nil {
				slog.Error("relint failed", "error", err)
				continue
			}
			if err := a.WriteOutputs(res); err != nil {
				slog.Error("failed to write outputs", "error", err)
			}
			if onResult != nil {
				onResult(res)
			}
		}
	}
}
