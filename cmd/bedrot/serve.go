package main

import (
	"fmt"
	"os/signal"
	"syscall"

	"bedrot-sim/internal/common/config"
	"bedrot-sim/internal/common/logging"
	"bedrot-sim/internal/server"
	"bedrot-sim/internal/wizard/capture"
	"bedrot-sim/internal/wizard/catalog"
	"bedrot-sim/internal/wizard/handlers"
	"bedrot-sim/internal/wizard/mapper"
	"bedrot-sim/internal/wizard/repository"
	"bedrot-sim/internal/wizard/service"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the wizard HTTP API",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().String("port", "", "listen port")
	serveCmd.Flags().String("asset-root", "", "directory holding ingredients/ and backgrounds/")
	_ = viper.BindPFlag("port", serveCmd.Flags().Lookup("port"))
	_ = viper.BindPFlag("asset_root", serveCmd.Flags().Lookup("asset-root"))

	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(viper.GetViper())
	if err != nil {
		return err
	}

	log, err := logging.New(cfg.Environment, cfg.LogLevel)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := repository.OpenSQLite(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	defer db.Close()

	repo := repository.New(db)
	if err := repo.Init(ctx, cfg.MigrationsPath); err != nil {
		return fmt.Errorf("init db: %w", err)
	}

	cat, err := catalog.Default()
	if err != nil {
		return fmt.Errorf("load catalog: %w", err)
	}

	sessions := service.NewSessionManager(log)
	go sessions.Run(ctx, cfg.SweepInterval, cfg.SessionIdleTTL)

	wizard := handlers.NewWizardHandler(handlers.Deps{
		Sessions:   sessions,
		Repo:       repo,
		Storage:    service.NewExportStorage(cfg.ExportDir),
		Rasterizer: capture.NewRasterizer(cfg.AssetRoot, cfg.PixelRatio, log),
		Renderer:   mapper.NewRenderer(cfg.AssetBaseURL),
		Catalog:    cat,
		ShareURL:   cfg.ShareURL,
		Logger:     log,
	})

	app := server.New(cfg, wizard, db, log)

	// ============================================================
	// Server Start
	// ============================================================

	go func() {
		<-ctx.Done()
		log.Info("shutting down")
		if err := app.Shutdown(); err != nil {
			log.Error("shutdown failed", zap.Error(err))
		}
	}()

	addr := fmt.Sprintf(":%s", cfg.Port)
	log.Info("starting Bed Rot Simulator",
		zap.String("addr", addr),
		zap.String("env", cfg.Environment),
		zap.String("assets", cfg.AssetRoot))

	if err := app.Listen(addr); err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}
	return nil
}
