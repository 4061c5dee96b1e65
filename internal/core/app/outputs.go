package app

import (
	"bytes"
	"log/slog"

	"emblint/internal/shared/util"
	"emblint/internal/ui/report"
)

// WriteOutputs persists the result to every output path the config
// names. Missing paths mean the format is not wanted.
func (a *App) WriteOutputs(res report.Result) error {
	if path := a.Config.Output.Text; path != "" {
		var buf bytes.Buffer
		report.RenderText(&buf, res)
		if err := util.WriteFileWithDirs(path, buf.Bytes(), 0o644); err != nil {
			return err
		}
		slog.Debug("wrote text report", "path", path)
	}

	if path := a.Config.Output.JSON; path != "" {
		data, err := report.GenerateJSON(res)
		if err != nil {
			return err
		}
		if err := util.WriteFileWithDirs(path, data, 0o644); err != nil {
			return err
		}
		slog.Debug("wrote json report", "path", path)
	}

	if path := a.Config.Output.SARIF; path != "" {
		data, err := report.GenerateSARIF(a.Config.Paths.ProjectRoot, a.ruleSet.Rules(), res)
		if err != nil {
			return err
		}
		if err := util.WriteFileWithDirs(path, data, 0o644); err != nil {
			return err
		}
		slog.Debug("wrote sarif report", "path", path)
	}

	return nil
}
