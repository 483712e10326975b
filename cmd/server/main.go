package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/mamadbah2/fleetstock/internal/auth"
	"github.com/mamadbah2/fleetstock/internal/config"
	"github.com/mamadbah2/fleetstock/internal/export"
	"github.com/mamadbah2/fleetstock/internal/lock"
	"github.com/mamadbah2/fleetstock/internal/repository"
	"github.com/mamadbah2/fleetstock/internal/repository/memory"
	"github.com/mamadbah2/fleetstock/internal/repository/mongodb"
	"github.com/mamadbah2/fleetstock/internal/repository/sheets"
	"github.com/mamadbah2/fleetstock/internal/scheduler"
	"github.com/mamadbah2/fleetstock/internal/server/handlers"
	"github.com/mamadbah2/fleetstock/internal/server/router"
	commandsvc "github.com/mamadbah2/fleetstock/internal/service/commands"
	inventorysvc "github.com/mamadbah2/fleetstock/internal/service/inventory"
	reportingsvc "github.com/mamadbah2/fleetstock/internal/service/reporting"
	userssvc "github.com/mamadbah2/fleetstock/internal/service/users"
	whatsappsvc "github.com/mamadbah2/fleetstock/internal/service/whatsapp"
	whatsappclient "github.com/mamadbah2/fleetstock/pkg/clients/whatsapp"
	"github.com/mamadbah2/fleetstock/pkg/logger"
)

type store interface {
	repository.StockRepository
	repository.UserRepository
}

func main() {
	cfg, err := config.Load("")
	if err != nil {
		panic(err)
	}

	baseLogger := logger.Must(logger.New(cfg.Log.Level))
	defer func() { _ = baseLogger.Sync() }()

	zap.ReplaceGlobals(baseLogger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var repo store
	switch cfg.Storage.Driver {
	case "memory":
		baseLogger.Warn("using in-memory storage, data is lost on restart")
		repo = memory.NewRepository()
	default:
		mongoRepo, err := mongodb.NewMongoDBRepository(ctx, cfg.MongoDB.URI, cfg.MongoDB.DBName, cfg.MongoDB.Transactions)
		if err != nil {
			baseLogger.Fatal("failed to init mongodb repository", zap.Error(err))
		}
		defer func() {
			if err := mongoRepo.Close(context.Background()); err != nil {
				baseLogger.Error("failed to close mongodb connection", zap.Error(err))
			}
		}()
		baseLogger.Info("mongodb repository ready",
			zap.String("db", cfg.MongoDB.DBName),
			zap.Bool("transactions", mongoRepo.Transactions()))
		if cfg.MongoDB.Transactions && !mongoRepo.Transactions() {
			baseLogger.Warn("mongodb is not a replica set, paired writes run without a transaction")
		}
		repo = mongoRepo
	}

	var locker lock.Locker = lock.NewLocal()
	shared := false
	if cfg.Redis.Address != "" {
		rdb, err := lock.Connect(ctx, cfg.Redis.Address)
		if err != nil {
			baseLogger.Fatal("failed to connect to redis", zap.Error(err))
		}
		defer func() { _ = rdb.Close() }()
		locker = lock.NewRedis(rdb, logger.Named(baseLogger, "lock.redis"))
		shared = true
		baseLogger.Info("shared stock lock enabled", zap.String("redis", cfg.Redis.Address))
	}

	inventory, err := inventorysvc.NewService(repo, locker, inventorysvc.Options{
		Tools:  cfg.Checklist.Tools,
		Shared: shared,
	}, logger.Named(baseLogger, "svc.inventory"))
	if err != nil {
		baseLogger.Fatal("failed to init inventory service", zap.Error(err))
	}
	if err := inventory.Load(ctx); err != nil {
		baseLogger.Fatal("failed to load stock", zap.Error(err))
	}

	users := userssvc.NewService(repo, logger.Named(baseLogger, "svc.users"))
	if err := users.EnsureDefaultAdmin(ctx, cfg.Auth.DefaultAdminPassword); err != nil {
		baseLogger.Fatal("failed to bootstrap admin account", zap.Error(err))
	}

	tokens := auth.NewTokenIssuer(cfg.Auth.Secret, time.Duration(cfg.Auth.TokenTTLHours)*time.Hour)
	authSvc := auth.NewService(repo, tokens, logger.Named(baseLogger, "svc.auth"))

	var (
		countSink   handlers.CountSink
		sheetSyncer handlers.InventorySyncer
		jobSyncer   scheduler.InventorySyncer
	)
	if cfg.Sheets.Enabled() {
		sheetsRepo, err := sheets.NewGoogleSheetRepository(ctx, cfg.Sheets, logger.Named(baseLogger, "repo.sheets"))
		if err != nil {
			baseLogger.Fatal("failed to init sheets repository", zap.Error(err))
		}
		exporter := export.NewSheetsExporter(sheetsRepo, inventory, cfg.Sheets.InventoryRange, cfg.Sheets.CountsRange, logger.Named(baseLogger, "export.sheets"))
		countSink, sheetSyncer, jobSyncer = exporter, exporter, exporter
	} else {
		baseLogger.Info("google sheets export disabled")
	}

	reporting := reportingsvc.NewService(inventory, logger.Named(baseLogger, "svc.reporting"))

	var (
		webhookHandler *handlers.WebhookHandler
		alerter        scheduler.Alerter
	)
	if cfg.WhatsApp.Enabled() {
		dispatcher := commandsvc.NewService(reporting, logger.Named(baseLogger, "svc.commands"))
		whatsClient := whatsappclient.NewClient(cfg.WhatsApp)
		messagingSvc := whatsappsvc.NewMetaWhatsAppService(cfg.WhatsApp, whatsClient, dispatcher, logger.Named(baseLogger, "svc.whatsapp"))
		webhookHandler = handlers.NewWebhookHandler(messagingSvc, logger.Named(baseLogger, "handlers.whatsapp"))
		if cfg.WhatsApp.AlertRecipient != "" {
			alerter = messagingSvc
		}
	} else {
		baseLogger.Info("whatsapp integration disabled")
	}

	sched, err := scheduler.NewScheduler(cfg.Schedule, inventory, reporting, alerter, jobSyncer, logger.Named(baseLogger, "scheduler"))
	if err != nil {
		baseLogger.Fatal("failed to init scheduler", zap.Error(err))
	}
	if err := sched.Register(); err != nil {
		baseLogger.Fatal("failed to register jobs", zap.Error(err))
	}
	sched.Start()
	defer sched.Stop()

	engine := router.New(router.Handlers{
		Auth:      handlers.NewAuthHandler(authSvc, logger.Named(baseLogger, "handlers.auth")),
		Inventory: handlers.NewInventoryHandler(inventory, countSink, logger.Named(baseLogger, "handlers.inventory")),
		Export:    handlers.NewExportHandler(inventory, sheetSyncer, logger.Named(baseLogger, "handlers.export")),
		Users:     handlers.NewUserHandler(users, logger.Named(baseLogger, "handlers.users")),
		Webhook:   webhookHandler,
	}, logger.Named(baseLogger, "router"))

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

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
