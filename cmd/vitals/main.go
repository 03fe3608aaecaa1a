package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/alexanderramin/vitals/internal/cli"
	"github.com/alexanderramin/vitals/internal/config"
	"github.com/alexanderramin/vitals/internal/db"
	"github.com/alexanderramin/vitals/internal/intelligence"
	"github.com/alexanderramin/vitals/internal/llm"
	"github.com/alexanderramin/vitals/internal/oura"
	"github.com/alexanderramin/vitals/internal/repository"
	"github.com/alexanderramin/vitals/internal/service"
	"github.com/mattn/go-isatty"
)

var version = "dev"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	database, err := db.OpenDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	// Logging stays off until --verbose; VITALS_LLM_LOG_CALLS logs model
	// calls regardless.
	verbose := cli.NewVerboseObserver(service.NewLogUseCaseObserver(os.Stderr), llm.NewLogObserver(os.Stderr))
	var llmObserver llm.Observer = verbose.LLM()
	if cfg.LLM.LogCalls {
		llmObserver = llm.NewLogObserver(os.Stderr)
	}

	var extractorAt func(now func() time.Time) intelligence.CommandExtractor
	if cfg.LLM.Enabled {
		client, err := llm.NewClient(cfg.LLM, llmObserver)
		if err != nil {
			return fmt.Errorf("configuring llm: %w", err)
		}
		extractorAt = func(now func() time.Time) intelligence.CommandExtractor {
			return intelligence.NewCommandExtractor(client, now)
		}
	}

	store := repository.NewSQLiteMetricStore(database)
	askAt := func(now func() time.Time) service.AskService {
		var extractor intelligence.CommandExtractor
		if extractorAt != nil {
			extractor = extractorAt(now)
		}
		return service.NewAskService(store, extractor,
			service.AskConfig{LLMEnabled: cfg.LLM.Enabled, Now: now}, verbose)
	}

	uow := db.NewSQLiteUnitOfWork(database)
	app := &cli.App{
		Config: cfg,
		Ask:    askAt(time.Now),
		AskAt: func(today time.Time) service.AskService {
			return askAt(func() time.Time { return today })
		},
		Sync: service.NewSyncService(
			oura.NewClient(cfg.Oura),
			uow,
			repository.NewSQLiteSyncRunRepo(database),
			time.Now,
			verbose,
		),
		Days:    service.NewDaysService(store, time.Now),
		Import:  service.NewImportService(uow, verbose),
		Verbose: verbose,
		IsInteractive: func() bool {
			return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
		},
		Version: version,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return cli.NewRootCmd(app).ExecuteContext(ctx)
}
