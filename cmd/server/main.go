package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"transaction-ledger/internal/config"
	"transaction-ledger/internal/handlers"
	"transaction-ledger/internal/logging"
	"transaction-ledger/internal/services"
	"transaction-ledger/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("config.Load")
	}

	logger, err := logging.SetupLogging(cfg.LogLevel)
	if err != nil {
		logrus.WithError(err).Fatal("logging.SetupLogging")
	}

	transactionStore := store.NewTransactionStore()
	transactionService := services.NewTransactionService(transactionStore)
	transactionHandler := handlers.NewTransactionHandler(transactionService, logger, cfg.ResponseDelay)
	statusHandler := handlers.NewStatusHandler(transactionService, logger)

	server := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           handlers.NewRouter(transactionHandler, statusHandler, logger, cfg.AllowedOrigins),
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       10 * time.Second,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.WithFields(logrus.Fields{
			"addr":          cfg.Addr(),
			"responseDelay": cfg.ResponseDelay.String(),
		}).Info("HttpServer.Serve.listening")

		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.WithError(err).Error("HttpServer.Serve.listen error")
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("HttpServer.Serve.shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.WithError(err).Error("HttpServer.Shutdown")
	}
}
