package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"time"

	"go.uber.org/zap"

	"github.com/satyammall/stockledger/internal/config"
	"github.com/satyammall/stockledger/internal/repository/mongodb"
	"github.com/satyammall/stockledger/internal/repository/sheets"
	"github.com/satyammall/stockledger/internal/scheduler"
	"github.com/satyammall/stockledger/internal/server/handlers"
	"github.com/satyammall/stockledger/internal/server/router"
	authsvc "github.com/satyammall/stockledger/internal/service/auth"
	reportsvc "github.com/satyammall/stockledger/internal/service/report"
	submitsvc "github.com/satyammall/stockledger/internal/service/submit"
	driveclient "github.com/satyammall/stockledger/pkg/clients/drive"
	rendererclient "github.com/satyammall/stockledger/pkg/clients/renderer"
	"github.com/satyammall/stockledger/pkg/logger"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		panic(err)
	}

	baseLogger := logger.Must(logger.New())
	defer func() { _ = baseLogger.Sync() }()

	zap.ReplaceGlobals(baseLogger)

	sheetsRepo, err := sheets.NewGoogleSheetRepository(context.Background(), cfg.Sheets, baseLogger.Named("repo.sheets"))
	if err != nil {
		baseLogger.Fatal("failed to init sheets repository", zap.Error(err))
	}

	archive, err := mongodb.NewMongoDBArchive(context.Background(), cfg.MongoDB.URI, cfg.MongoDB.DBName)
	if err != nil {
		baseLogger.Fatal("failed to init mongodb archive", zap.Error(err))
	}
	defer func() {
		if err := archive.Close(context.Background()); err != nil {
			baseLogger.Error("failed to close mongodb connection", zap.Error(err))
		}
	}()

	uploader, err := driveclient.NewClient(context.Background(), cfg.Drive, baseLogger.Named("client.drive"))
	if err != nil {
		baseLogger.Fatal("failed to init drive client", zap.Error(err))
	}

	pdfRenderer := rendererclient.NewClient(cfg.Renderer)

	reportSvc := reportsvc.NewService(sheetsRepo, baseLogger.Named("svc.report"))
	authSvc := authsvc.NewService(sheetsRepo, baseLogger.Named("svc.auth"))

	pipeline := submitsvc.NewPipeline(sheetsRepo, uploader, baseLogger.Named("svc.submit"))
	pipeline.OnProgress(func(current, total int) {
		baseLogger.Debug("submission progress", zap.Int("current", current), zap.Int("total", total))
	})
	pipeline.OnSuccess(func() {
		baseLogger.Info("ledger updated")
	})

	txHandler := handlers.NewTransactionHandler(sheetsRepo, pipeline, reportSvc, baseLogger.Named("handlers.transactions"))
	reportHandler := handlers.NewReportHandler(reportSvc, pdfRenderer, baseLogger.Named("handlers.reports"))
	authHandler := handlers.NewAuthHandler(authSvc, baseLogger.Named("handlers.auth"))
	engine := router.New(txHandler, reportHandler, authHandler, baseLogger.Named("router"))

	sched := scheduler.NewScheduler(cfg.Reporting, reportSvc, archive, baseLogger.Named("scheduler"))
	sched.Start()
	defer sched.Stop()

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	go func() {
		baseLogger.Info("server starting", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			baseLogger.Fatal("http server crashed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	baseLogger.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		baseLogger.Error("graceful shutdown failed", zap.Error(err))
	}
}
