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

	"github.com/mamadbah2/stockroom/internal/app"
	"github.com/mamadbah2/stockroom/internal/config"
	"github.com/mamadbah2/stockroom/internal/domain/models"
	"github.com/mamadbah2/stockroom/internal/metrics"
	"github.com/mamadbah2/stockroom/internal/repository"
	"github.com/mamadbah2/stockroom/internal/repository/mongodb"
	"github.com/mamadbah2/stockroom/internal/repository/sheets"
	"github.com/mamadbah2/stockroom/internal/scheduler"
	"github.com/mamadbah2/stockroom/internal/server/handlers"
	"github.com/mamadbah2/stockroom/internal/server/router"
	alertsvc "github.com/mamadbah2/stockroom/internal/service/alerts"
	reportingsvc "github.com/mamadbah2/stockroom/internal/service/reporting"
	"github.com/mamadbah2/stockroom/pkg/clients/notify"
	"github.com/mamadbah2/stockroom/pkg/logger"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		panic(err)
	}

	baseLogger := logger.Must(logger.New(cfg.Log.Level))
	defer func() { _ = baseLogger.Sync() }()

	zap.ReplaceGlobals(baseLogger)

	var adapter repository.Adapter = repository.NewMemoryRepository()
	if cfg.MongoDB.URI != "" {
		mongoRepo, err := mongodb.NewMongoDBRepository(context.Background(), cfg.MongoDB.URI, cfg.MongoDB.DBName)
		if err != nil {
			baseLogger.Fatal("failed to init mongodb repository", zap.Error(err))
		}
		defer func() {
			if err := mongoRepo.Close(context.Background()); err != nil {
				baseLogger.Error("failed to close mongodb connection", zap.Error(err))
			}
		}()
		adapter = mongoRepo
	} else {
		baseLogger.Warn("MONGODB_URI not set, data will not survive a restart")
	}

	var journal sheets.Journal
	if cfg.Sheets.Enabled() {
		sheetsJournal, err := sheets.NewGoogleSheetJournal(context.Background(), cfg.Sheets, baseLogger.Named("repo.sheets"))
		if err != nil {
			baseLogger.Fatal("failed to init sheets journal", zap.Error(err))
		}
		journal = sheetsJournal
	}

	var notifier notify.Client
	if cfg.Alerts.WebhookURL != "" {
		notifier = notify.NewClient(cfg.Alerts)
		baseLogger.Info("alert webhook enabled")
	} else {
		baseLogger.Warn("ALERT_WEBHOOK_URL not set, alerts are logged only")
	}

	var meter *metrics.Metrics
	if cfg.Metrics.Enabled {
		meter = metrics.New()
	}

	location, err := time.LoadLocation(cfg.Reporting.Timezone)
	if err != nil {
		baseLogger.Fatal("failed to load timezone", zap.Error(err))
	}

	reportingSvc := reportingsvc.NewService(cfg.Reporting.Currency, baseLogger.Named("svc.reporting"))
	alertSvc := alertsvc.NewService(notifier, reportingSvc, cfg.Alerts.LowStockEnabled, baseLogger.Named("svc.alerts"))

	workspace := app.New(context.Background(), adapter, app.Options{
		Policy:    models.AdjustPolicy(cfg.Inventory.AdjustPolicy),
		Journal:   journal,
		Alerts:    alertSvc,
		Metrics:   meter,
		Reporting: reportingSvc,
		Location:  location,
	}, baseLogger.Named("app"))

	routes := router.Handlers{
		Products: handlers.NewProductHandler(workspace, baseLogger.Named("handlers.products")),
		Records:  handlers.NewRecordHandler(workspace, baseLogger.Named("handlers.records")),
		Quotes:   handlers.NewQuoteHandler(workspace, baseLogger.Named("handlers.quotes")),
	}
	if meter != nil {
		routes.Metrics = meter.Handler()
	}
	engine := router.New(routes, baseLogger.Named("router"))

	sched, err := scheduler.NewScheduler(cfg.Reporting, workspace, alertSvc, baseLogger.Named("scheduler"))
	if err != nil {
		baseLogger.Fatal("failed to init scheduler", zap.Error(err))
	}
	if err := sched.Start(); err != nil {
		baseLogger.Fatal("failed to start scheduler", zap.Error(err))
	}
	defer sched.Stop()

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
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
