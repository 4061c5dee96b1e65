package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"emblint/internal/config"
	"emblint/internal/core/app"
	"emblint/internal/data/history"
	"emblint/internal/engine/rules"
	"emblint/internal/shared/version"
	"emblint/internal/ui/report"
)

var (
	configPath  = flag.String("config", "./emblint.toml", "Path to config file")
	once        = flag.Bool("once", false, "Run a single lint pass even when -watch is set")
	watch       = flag.Bool("watch", false, "Relint on file changes")
	format      = flag.String("format", "text", "Output format: text, json or sarif")
	showHistory = flag.Bool("history", false, "Print recorded lint runs and exit")
	listRules   = flag.Bool("list-rules", false, "Print the rule catalog and exit")
	verbose     = flag.Bool("verbose", false, "Enable verbose logging")
	showVersion = flag.Bool("version", false, "Print version and exit")
)

func main() {
	flag.Parse()

	if *showVersion {
		fmt.Printf("emblint v%s\n", version.Version)
		os.Exit(0)
	}

	if *listRules {
		for _, rule := range rules.AllRules() {
			fmt.Printf("%-28s %-8s %s\n", rule.ID(), rule.DefaultSeverity(), rule.Describe())
		}
		os.Exit(0)
	}

	logLevel := slog.LevelInfo
	if *verbose {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	cfg, err := config.Load(*configPath)
	if err != nil {
		if os.IsNotExist(err) && !isFlagSet("config") {
			cfg = config.Default()
		} else {
			slog.Error("failed to load config", "path", *configPath, "error", err)
			os.Exit(2)
		}
	}

	// Positional arguments override the configured lint paths.
	if flag.NArg() > 0 {
		cfg.LintPaths = flag.Args()
	}

	switch *format {
	case "text", "json", "sarif":
	default:
		fmt.Fprintf(os.Stderr, "unknown format %q (want text, json or sarif)\n", *format)
		os.Exit(2)
	}

	if *showHistory {
		if err := printHistory(cfg); err != nil {
			slog.Error("failed to read history", "error", err)
			os.Exit(2)
		}
		os.Exit(0)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := app.New(ctx, cfg)
	if err != nil {
		slog.Error("failed to initialize", "error", err)
		os.Exit(2)
	}
	defer a.Close(context.Background())

	res, err := a.Run(ctx)
	if err != nil {
		slog.Error("lint run failed", "error", err)
		os.Exit(2)
	}
	if err := a.WriteOutputs(res); err != nil {
		slog.Error("failed to write outputs", "error", err)
		os.Exit(2)
	}
	if err := render(a, res); err != nil {
		slog.Error("failed to render report", "error", err)
		os.Exit(2)
	}

	if *watch && !*once {
		err := a.StartWatcher(ctx, func(res report.Result) {
			if err := render(a, res); err != nil {
				slog.Error("failed to render report", "error", err)
			}
		})
		if err != nil && ctx.Err() == nil {
			slog.Error("watcher failed", "error", err)
			os.Exit(2)
		}
		os.Exit(0)
	}

	if res.HasErrors() {
		os.Exit(1)
	}
}

func render(a *app.App, res report.Result) error {
	switch *format {
	case "json":
		data, err := report.GenerateJSON(res)
		if err != nil {
			return err
		}
		fmt.Println(string(data))
	case "sarif":
		data, err := report.GenerateSARIF(a.Config.Paths.ProjectRoot, a.RuleSet().Rules(), res)
		if err != nil {
			return err
		}
		fmt.Println(string(data))
	default:
		report.RenderText(os.Stdout, res)
	}
	return nil
}

func printHistory(cfg *config.Config) error {
	path := cfg.History.Path
	if path == "" {
		path = filepath.Join(".emblint", "history.db")
	}
	store, err := history.Open(path)
	if err != nil {
		return err
	}
	defer store.Close()

	runs, err := store.LoadRuns(time.Time{})
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("no recorded runs")
		return nil
	}

	fmt.Printf("%-25s %8s %8s %12s %8s %10s\n", "TIMESTAMP", "FILES", "CLEAN", "VIOLATIONS", "PARSE", "DURATION")
	for _, run := range runs {
		fmt.Printf("%-25s %8d %8d %12d %8d %10s\n",
			run.Timestamp.Format(time.RFC3339),
			run.FileCount,
			run.CleanCount,
			run.ViolationCount,
			run.ParseErrorCount,
			run.Duration)
	}
	return nil
}

func isFlagSet(name string) bool {
	set := false
	flag.Visit(func(f *flag.Flag) {
		if f.Name == name {
			set = true
		}
	})
	return set
}
