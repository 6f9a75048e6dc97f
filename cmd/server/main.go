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
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/mamadbah2/farmsim/internal/config"
	"github.com/mamadbah2/farmsim/internal/domain/farm"
	"github.com/mamadbah2/farmsim/internal/repository/mongodb"
	"github.com/mamadbah2/farmsim/internal/repository/sheets"
	"github.com/mamadbah2/farmsim/internal/scheduler"
	"github.com/mamadbah2/farmsim/internal/server/handlers"
	"github.com/mamadbah2/farmsim/internal/server/router"
	commandsvc "github.com/mamadbah2/farmsim/internal/service/commands"
	reportingsvc "github.com/mamadbah2/farmsim/internal/service/reporting"
	whatsappsvc "github.com/mamadbah2/farmsim/internal/service/whatsapp"
	whatsappclient "github.com/mamadbah2/farmsim/pkg/clients/whatsapp"
	"github.com/mamadbah2/farmsim/pkg/logger"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		panic(err)
	}

	baseLogger := logger.Must(logger.New(logger.Options{
		Level:       cfg.Log.Level,
		Development: cfg.Log.Development,
		OutputPath:  cfg.Log.Output,
	}))
	defer func() { _ = baseLogger.Sync() }()

	zap.ReplaceGlobals(baseLogger)

	game, err := farm.NewGame(cfg.Game.Settings())
	if err != nil {
		baseLogger.Fatal("failed to start game", zap.Error(err))
	}
	printer := message.NewPrinter(language.MustParse(cfg.Game.Locale))

	var sinks []reportingsvc.NamedSink
	var reports handlers.ReportLister

	if cfg.MongoDB.Enabled() {
		mongoRepo, err := mongodb.NewMongoDBRepository(context.Background(), cfg.MongoDB)
		if err != nil {
			baseLogger.Fatal("failed to init mongodb repository", zap.Error(err))
		}
		defer func() {
			if err := mongoRepo.Close(context.Background()); err != nil {
				baseLogger.Error("failed to close mongodb connection", zap.Error(err))
			}
		}()
		sinks = append(sinks, reportingsvc.NamedSink{Name: "mongodb", Sink: mongoRepo})
		reports = mongoRepo
	} else {
		baseLogger.Warn("mongodb uri missing, day reports will not be stored")
	}

	if cfg.Sheets.Enabled() {
		sheetsRepo, err := sheets.NewGoogleSheetRepository(context.Background(), cfg.Sheets, baseLogger.Named("repo.sheets"))
		if err != nil {
			baseLogger.Fatal("failed to init sheets repository", zap.Error(err))
		}
		sinks = append(sinks, reportingsvc.NamedSink{Name: "sheets", Sink: sheets.NewDayLedger(sheetsRepo, cfg.Sheets.SheetName)})
	}

	reportingSvc := reportingsvc.NewService(printer, baseLogger.Named("svc.reporting"), sinks...)
	commandDispatcher := commandsvc.NewService(game, reportingSvc, printer, baseLogger.Named("svc.commands"))

	var webhookHandler *handlers.WebhookHandler
	if cfg.WhatsApp.Enabled() {
		whatsClient := whatsappclient.NewClient(cfg.WhatsApp)
		messagingSvc := whatsappsvc.NewMetaWhatsAppService(cfg.WhatsApp, cfg.Reporting.Recipient, whatsClient, commandDispatcher, whatsappsvc.NewSessionManager(), baseLogger.Named("svc.whatsapp"))
		webhookHandler = handlers.NewWebhookHandler(messagingSvc, baseLogger.Named("handlers.whatsapp"))

		sched, err := scheduler.NewScheduler(cfg.Reporting, commandDispatcher, reportingSvc, messagingSvc, baseLogger.Named("scheduler"))
		if err != nil {
			baseLogger.Fatal("failed to init scheduler", zap.Error(err))
		}
		if err := sched.Start(); err != nil {
			baseLogger.Fatal("failed to start scheduler", zap.Error(err))
		}
		defer sched.Stop()
	} else {
		baseLogger.Warn("whatsapp token missing, chat channel and scheduled reports disabled")
	}

	gameHandler := handlers.NewGameHandler(commandDispatcher, reports, baseLogger.Named("handlers.game"))
	engine := router.New(gameHandler, webhookHandler, baseLogger.Named("router"))

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		baseLogger.Info("server starting", zap.String("port", cfg.Server.Port), zap.Int("day", game.Day()))
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
