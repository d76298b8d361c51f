package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"BarInventory/internal/adapter"
	_ "BarInventory/internal/adapter/cocktaildb"
	_ "BarInventory/internal/adapter/file"
	"BarInventory/internal/api"
	"BarInventory/internal/config"
	"BarInventory/internal/database"
	"BarInventory/internal/repository"
	"BarInventory/internal/service"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

var configDir string

// app holds everything both commands need.
type app struct {
	cfg    *config.Config
	logger *logrus.Logger
	db     *gorm.DB
	build  *service.BuildService
}

func setup() (*app, error) {
	// 1. config
	cfg, err := config.LoadConfig(configDir)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	// 2. logger
	logger := logrus.New()
	level, err := logrus.ParseLevel(cfg.Log.Level)
	if err != nil {
		return nil, fmt.Errorf("log.level: %w", err)
	}
	logger.SetLevel(level)
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	logger.Info("config loaded")

	// 3. store
	db, err := database.Open(&cfg.Store, logger)
	if err != nil {
		return nil, err
	}

	// 4. catalog provider
	lookup, err := adapter.New(&cfg.Catalog, logger)
	if err != nil {
		return nil, err
	}

	// 5. pipeline
	store := repository.NewStoreRepository(db, cfg.Store.BatchSize)
	return &app{
		cfg:    cfg,
		logger: logger,
		db:     db,
		build:  service.NewBuildService(cfg, lookup, store, logger),
	}, nil
}

func (a *app) close() {
	if sqlDB, err := a.db.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			a.logger.WithError(err).Warn("close store failed")
		}
	}
}

func runBuild(cmd *cobra.Command, _ []string) error {
	a, err := setup()
	if err != nil {
		return err
	}
	defer a.close()

	res, err := a.build.Run(cmd.Context())
	if err != nil {
		a.logger.WithError(err).Error("build failed, store left unchanged")
		return err
	}
	a.logger.Infof("build %s done: %d remediation(s)", res.RunID, len(res.Remediations))
	return nil
}

func runServe(cmd *cobra.Command, _ []string) error {
	a, err := setup()
	if err != nil {
		return err
	}
	defer a.close()

	r := api.NewRouter(a.cfg.Server.Mode,
		api.NewBuildHandler(a.build, a.logger),
		api.NewReportHandler(a.db, a.logger),
	)
	a.logger.Infof("gin mode %s, listening on :%d", a.cfg.Server.Mode, a.cfg.Server.Port)

	errCh := make(chan error, 1)
	go func() { errCh <- r.Run(fmt.Sprintf(":%d", a.cfg.Server.Port)) }()
	select {
	case err := <-errCh:
		return fmt.Errorf("serve: %w", err)
	case <-cmd.Context().Done():
		a.logger.Info("shutting down")
		return nil
	}
}

func main() {
	root := &cobra.Command{
		Use:          "barinventory",
		Short:        "Build the bar inventory database from venue logs and the cocktail catalog",
		SilenceUsage: true,
		RunE:         runBuild,
	}
	root.PersistentFlags().StringVar(&configDir, "config", "./config", "directory containing config.yaml")

	root.AddCommand(
		&cobra.Command{
			Use:   "build",
			Short: "Load sources, reconcile with the catalog and rewrite the store (default)",
			RunE:  runBuild,
		},
		&cobra.Command{
			Use:   "serve",
			Short: "Serve the report API and accept build requests",
			RunE:  runServe,
		},
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := root.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}
