package main

import (
	"context"
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/alexanderramin/lumen/internal/analysis"
	"github.com/alexanderramin/lumen/internal/cache"
	"github.com/alexanderramin/lumen/internal/cli"
	"github.com/alexanderramin/lumen/internal/cli/formatter"
	"github.com/alexanderramin/lumen/internal/config"
	"github.com/alexanderramin/lumen/internal/db"
	"github.com/alexanderramin/lumen/internal/logging"
	"github.com/alexanderramin/lumen/internal/repository"
	"github.com/alexanderramin/lumen/internal/service"
	"github.com/alexanderramin/lumen/internal/trust"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func isTerminal(f *os.File) bool {
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

func run() error {
	stdoutTTY := isTerminal(os.Stdout)
	formatter.SetPlain(!stdoutTTY)

	var closers []func() error
	defer func() {
		for i := len(closers) - 1; i >= 0; i-- {
			_ = closers[i]()
		}
	}()

	app := &cli.App{Interactive: stdoutTTY && isTerminal(os.Stdin)}
	app.Setup = func(ctx context.Context, configPath string) error {
		return wire(ctx, app, configPath, &closers)
	}
	return cli.NewRootCmd(app).ExecuteContext(context.Background())
}

// wire loads configuration and builds every service behind the commands.
func wire(ctx context.Context, app *cli.App, configPath string, closers *[]func() error) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	logger, err := logging.New(cfg.Log, os.Stderr)
	if err != nil {
		return err
	}

	dbPath, err := cfg.DBPath()
	if err != nil {
		return err
	}
	database, err := db.OpenDB(dbPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	*closers = append(*closers, database.Close)

	// Wire repositories
	userRepo := repository.NewSQLiteUserRepo(database)
	moodRepo := repository.NewSQLiteMoodRepo(database)
	completionRepo := repository.NewSQLiteCompletionRepo(database)
	habitRepo := repository.NewSQLiteHabitRepo(database)
	correlationRepo := repository.NewSQLiteCorrelationRepo(database)
	store := repository.NewStoreTimeSeries(moodRepo, completionRepo, habitRepo, cfg.Analysis.MaxSamples)
	uow := db.NewSQLiteUnitOfWork(database)

	var counter repository.InteractionCounter = userRepo
	if cfg.Trust.CounterBackend == config.BackendRedis {
		client, err := repository.NewRedisClient(ctx, cfg.Redis.URL)
		if err != nil {
			return err
		}
		*closers = append(*closers, client.Close)
		counter = repository.NewRedisInteractionCounter(client)
	}

	reg, err := cache.NewRegistry(cfg.CacheNamespaces())
	if err != nil {
		return fmt.Errorf("building cache: %w", err)
	}

	promReg := prometheus.NewRegistry()
	metrics := service.NewMetricsObserver()
	if err := metrics.Register(promReg); err != nil {
		return fmt.Errorf("registering metrics: %w", err)
	}
	if err := cache.NewCollector(reg).Register(promReg); err != nil {
		return fmt.Errorf("registering cache metrics: %w", err)
	}
	observers := []service.UseCaseObserver{service.NewLogUseCaseObserver(logger), metrics}

	// Wire services
	machine := trust.NewMachine(counter, reg, logger)
	analysisSvc := service.NewAnalysisService(store, correlationRepo, reg, analysis.NewAnalyzer(), cfg.Analysis.DefaultDays, logger, observers...)

	app.Users = service.NewUserService(userRepo, uow, reg)
	app.Habits = service.NewHabitService(habitRepo, reg)
	app.Ingest = service.NewIngestService(moodRepo, completionRepo, habitRepo, reg, observers...)
	app.Analysis = analysisSvc
	app.Insights = service.NewInsightService(analysisSvc, machine, reg, observers...)
	app.Dashboard = service.NewDashboardService(analysisSvc, machine, reg, cfg.Analysis.DefaultDays, observers...)
	app.Trust = machine
	app.Cache = reg
	app.Metrics = promReg
	return nil
}
