package main

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/jmcateer/pulselog/internal/api"
	"github.com/jmcateer/pulselog/internal/db"
)

func main() {
	// Missing .env is fine; the environment wins either way.
	_ = godotenv.Load()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	zerolog.SetGlobalLevel(resolveLogLevel(getEnv("LOG_LEVEL", "info")))

	dbPath := getEnv("DB_PATH", filepath.Join("data", "pulselog.db"))
	port := getEnv("PORT", "8080")

	database, err := db.OpenSQLite(dbPath)
	if err != nil {
		log.Fatal().Err(err).Str("db_path", dbPath).Msg("database init failed")
	}

	handler := api.NewHandler(db.NewRepositories(database))

	app := fiber.New(fiber.Config{
		AppName:               "Pulselog",
		DisableStartupMessage: true,
	})

	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(compress.New())

	api.RegisterRoutes(app, handler)

	sigCtx, stopSignals := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	go func() {
		<-sigCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := app.ShutdownWithContext(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("server shutdown failed")
		}
	}()

	log.Info().Str("port", port).Str("db_path", dbPath).Msg("pulselog listening")
	if err := app.Listen(":" + port); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}

func resolveLogLevel(name string) zerolog.Level {
	level, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(name)))
	if err != nil || level == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return level
}

func getEnv(key string, fallback string) string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	return value
}
