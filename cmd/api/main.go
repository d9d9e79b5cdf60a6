package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/arthurazevedods/maker-challenge-server/internal/config"
	"github.com/arthurazevedods/maker-challenge-server/internal/database"
	"github.com/arthurazevedods/maker-challenge-server/internal/handler"
	"github.com/arthurazevedods/maker-challenge-server/internal/logger"
	"github.com/arthurazevedods/maker-challenge-server/internal/repository"
	"github.com/arthurazevedods/maker-challenge-server/internal/router"
	"github.com/arthurazevedods/maker-challenge-server/internal/server"
	"github.com/arthurazevedods/maker-challenge-server/internal/service"
)

const (
	migrationTimeout = 30 * time.Second
	shutdownTimeout  = 30 * time.Second
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		bootstrap := logger.NewLogger(config.DefaultObservabilityConfig())
		bootstrap.Fatal().Err(err).Msg("failed to load config")
	}

	// Flushed by srv.Shutdown.
	loggerService := logger.NewLoggerService(cfg.Observability)

	log := logger.NewLoggerWithService(cfg.Observability, loggerService)

	srv, err := server.New(cfg, &log, loggerService)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize server")
	}

	ctx, cancel := context.WithTimeout(context.Background(), migrationTimeout)
	err = database.Migrate(ctx, &log, srv.DB)
	cancel()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to migrate database")
	}

	repos := repository.NewRepositories(srv)

	services, err := service.NewService(srv, repos)
	if err != nil {
		log.Fatal().Err(err).Msg("could not create services")
	}

	handlers := handler.NewHandlers(srv, services)
	r := router.NewRouter(srv, handlers)

	srv.SetupHTTPServer(r)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := srv.Start(); err != nil {
			log.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server exited properly")
}
