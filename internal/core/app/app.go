package app

import (
	"context"
	"log/slog"
	"time"

	"emblint/internal/config"
	"emblint/internal/data/history"
	"emblint/internal/engine/parser"
	"emblint/internal/engine/rules"
	"emblint/internal/shared/observability"
)

// App wires the parser, rule set and supporting services together for
// one lint session.
type App struct {
	Config *config.Config

	codeParser *parser.Parser
	ruleSet    *rules.RuleSet

	historyStore    *history.Store
	metricsServer   *observability.Server
	tracingShutdown func(context.Context) error
}

// New builds the session from a validated config. Unknown rule ids in
// the config surface here as CONFIG_ERROR, before any file is parsed.
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	ruleSet, err := rules.NewRuleSet(rules.Settings{
		Enabled:  cfg.Rules.Enabled,
		Disabled: cfg.Rules.Disabled,
		Severity: cfg.Rules.Severity,
	})
	if err != nil {
		return nil, err
	}

	codeParser := parser.NewParser(parser.NewGrammarLoader())
	codeParser.RegisterDefaultExtractors()

	a := &App{
		Config:     cfg,
		codeParser: codeParser,
		ruleSet:    ruleSet,
	}

	if cfg.History.Enabled {
		store, err := history.Open(cfg.History.Path)
		if err != nil {
			return nil, err
		}
		a.historyStore = store
	}

	if cfg.Observability.OTLPEndpoint != "" {
		shutdown, err := observability.InitTracing(ctx, cfg.Observability.OTLPEndpoint)
		if err != nil {
			a.Close(ctx)
			return nil, err
		}
		a.tracingShutdown = shutdown
	}

	if cfg.Observability.MetricsAddr != "" {
		a.metricsServer = observability.NewServer(cfg.Observability.MetricsAddr)
		if err := a.metricsServer.Start(ctx); err != nil {
			a.Close(ctx)
			return nil, err
		}
	}

	return a, nil
}

func (a *App) RuleSet() *rules.RuleSet {
	return a.ruleSet
}

func (a *App) History() *history.Store {
	return a.historyStore
}

func (a *App) Close(ctx context.Context) error {
	var firstErr error

	if a.metricsServer != nil {
		shutdownCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
		if err := a.metricsServer.Stop(shutdownCtx); err != nil {
			firstErr = err
		}
		cancel()
	}
	if a.tracingShutdown != nil {
		shutdownCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
		if err := a.tracingShutdown(shutdownCtx); err != nil && firstErr == nil {
			firstErr = err
		}
		cancel()
	}
	if a.historyStore != nil {
		if err := a.historyStore.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}

	if firstErr != nil {
		slog.Warn("shutdown finished with errors", "error", firstErr)
	}
	return firstErr
}
