package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/subosito/gotenv"
	"go.uber.org/zap"

	"github.com/sgvops/night-check-reporter/internal/config"
	"github.com/sgvops/night-check-reporter/internal/drive"
	httpserver "github.com/sgvops/night-check-reporter/internal/interfaces/http"
	"github.com/sgvops/night-check-reporter/internal/report"
	"github.com/sgvops/night-check-reporter/internal/repository"
	"github.com/sgvops/night-check-reporter/internal/session"
	"github.com/sgvops/night-check-reporter/internal/sheets"
	"github.com/sgvops/night-check-reporter/internal/storage"
	"github.com/sgvops/night-check-reporter/pkg/database"
	"github.com/sgvops/night-check-reporter/pkg/utils"
)

func main() {
	// Optional .env for local development; environment wins in deployment
	_ = gotenv.Load()

	cfg, err := config.Load("configs/config.yaml")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger, err := utils.NewLogger(utils.LoggerConfig{
		Level:      cfg.Logger.Level,
		OutputPath: cfg.Logger.OutputPath,
		Format:     cfg.Logger.Format,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("Starting Night Check Report Service",
		zap.String("version", "1.0.0"),
		zap.Int("port", cfg.Server.Port))

	if err := os.MkdirAll("data", 0755); err != nil {
		logger.Fatal("Failed to create data directory", zap.Error(err))
	}
	if cfg.Report.ScratchDir != "" {
		if err := os.MkdirAll(cfg.Report.ScratchDir, 0755); err != nil {
			logger.Fatal("Failed to create scratch directory", zap.Error(err))
		}
	}

	db, err := database.New(database.Config{
		Path:            cfg.Database.Path,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
	}, logger)
	if err != nil {
		logger.Fatal("Failed to initialize database", zap.Error(err))
	}
	defer db.Close()

	migrator := database.NewMigrator(db, logger)
	if err := migrator.RunMigrations(); err != nil {
		logger.Fatal("Failed to run database migrations", zap.Error(err))
	}

	loader := sheets.NewLoader(sheets.Config{
		ExportBaseURL: cfg.Sheets.ExportBaseURL,
		FetchTimeout:  cfg.Sheets.FetchTimeout,
		DateLayouts:   cfg.Sheets.DateLayouts,
	}, logger)

	downloader := drive.NewDownloader(drive.Config{
		DownloadBaseURL: cfg.Drive.DownloadBaseURL,
		ImageTimeout:    cfg.Drive.ImageTimeout,
	}, logger)

	renderer := report.NewDocxRenderer(cfg.Report.TemplatePath, cfg.Report.ImageWidthInch, logger)
	converter := report.NewPDFConverter(report.ConverterConfig{
		ScratchDir:     cfg.Report.ScratchDir,
		ConverterBin:   cfg.Report.ConverterBin,
		ConvertTimeout: cfg.Report.ConvertTimeout,
	}, logger)

	exporter := report.NewExporter(downloader, renderer, converter, logger)

	store := session.NewStore()
	exportRepo := repository.NewExportRepository(db.DB, logger)
	archives := storage.NewArchiveStore(cfg.Report.ArchiveDir, logger)

	handlers := httpserver.NewHandlers(loader, store, exporter, exportRepo, archives, logger)
	server := httpserver.NewServer(httpserver.ServerConfig{
		Host:         cfg.Server.Host,
		Port:         cfg.Server.Port,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}, handlers, logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := server.Start(ctx); err != nil {
		logger.Fatal("Server exited with error", zap.Error(err))
	}

	logger.Info("Shutdown complete")
}
