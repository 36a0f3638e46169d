package main

import (
	"fmt"
	"os"
	"time"

	"github.com/alexanderramin/firmdesk/internal/cli"
	"github.com/alexanderramin/firmdesk/internal/config"
	"github.com/alexanderramin/firmdesk/internal/db"
	"github.com/alexanderramin/firmdesk/internal/logging"
	"github.com/alexanderramin/firmdesk/internal/repository"
	"github.com/alexanderramin/firmdesk/internal/service"
	"github.com/alexanderramin/firmdesk/internal/worker"
	"github.com/mattn/go-isatty"
	"go.uber.org/zap"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// FIRMDESK_CONFIG points at an explicit file; otherwise firmdesk.yaml is
	// looked up in the working directory and ~/.firmdesk.
	cfg, err := config.Load(os.Getenv("FIRMDESK_CONFIG"))
	if err != nil {
		return err
	}

	logger, err := logging.New(logging.Options{Level: cfg.LogLevel, File: cfg.LogFile})
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()
	logger.Info("starting", zap.String("db", cfg.DBPath), zap.String("config", cfg.Source))

	database, err := db.OpenDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	// Wire repositories and the unit of work for transactional operations
	engagementRepo := repository.NewSQLiteEngagementRepo(database)
	prospectRepo := repository.NewSQLiteProspectRepo(database)
	uow := db.NewSQLiteUnitOfWork(database)

	observer := service.NewLogUseCaseObserver(logger)
	engagements := service.NewEngagementService(engagementRepo, uow, observer)
	prospects := service.NewProspectService(prospectRepo, observer)

	app := &cli.App{
		Engagements: engagements,
		Prospects:   prospects,
		Import:      service.NewImportService(uow, cfg.Catalog, observer),
		Loader:      service.NewLoader(engagements, prospects, time.Now),
		Worker:      worker.New(worker.Config{Buffer: cfg.WorkerBuffer, Logger: logger}),
		Settings: cli.Settings{
			Batch:        cfg.Batch,
			Step:         cfg.Step,
			OptionSample: cfg.OptionSample,
			RowHeight:    cfg.RowHeight,
			Catalog:      cfg.Catalog,
		},
		Clock:  time.Now,
		Logger: logger,
	}

	// Detect interactive terminal for the TUI entrypoint.
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
	}

	return cli.NewRootCmd(app).Execute()
}
