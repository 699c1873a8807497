// Command server is the entry point for the foliocms backend.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"foliocms/config"
	"foliocms/observability"
	"foliocms/server"

	"github.com/gofiber/fiber/v2"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	shutdownTracing, err := observability.InitTracing(observability.TracingConfig{
		ServiceName: "foliocms",
		Enabled:     cfg.TracingEnabled,
		Exporter:    cfg.TracingExporter,
		Endpoint:    cfg.TracingEndpoint,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize tracing")
	}

	srv, err := server.NewServer(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create server")
	}

	if cfg.SeedDemo {
		if err := srv.Seed(); err != nil {
			log.Fatal().Err(err).Msg("failed to seed database")
		}
	}

	app := fiber.New(fiber.Config{
		AppName:   "foliocms API",
		BodyLimit: 10 * 1024 * 1024,
	})

	srv.SetupMiddleware(app)
	srv.SetupRoutes(app)

	// Graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		log.Info().Msg("shutting down server")
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := app.ShutdownWithContext(ctx); err != nil {
			log.Error().Err(err).Msg("server shutdown error")
		}
		if err := srv.Shutdown(ctx); err != nil {
			log.Error().Err(err).Msg("resource shutdown error")
		}
		if err := shutdownTracing(ctx); err != nil {
			log.Error().Err(err).Msg("tracing shutdown error")
		}
	}()

	log.Info().Str("port", cfg.Port).Msg("server starting")
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
