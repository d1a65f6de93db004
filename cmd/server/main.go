package main

import (
	"context"
	"net/http"
	"os"

	webAdapter "bodyshop-manager/internal/adapters/web"
	"bodyshop-manager/internal/ai"
	"bodyshop-manager/internal/app"
	"bodyshop-manager/internal/db"
	"bodyshop-manager/internal/store"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
)

func main() {
	_ = godotenv.Load()

	logger := newLogger()

	ctx := context.Background()
	pool, err := db.NewPool(ctx)
	if err != nil {
		logger.Fatal().Err(err).Msg("database connection failed")
	}
	defer pool.Close()

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		logger.Fatal().Msg("JWT_SECRET is not set")
	}

	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		logger.Warn().Msg("OPENAI_API_KEY is not set, AI advisory runs in neutral mode")
	}
	advisor := ai.NewAdvisor(apiKey, logger)

	orders := store.NewOrderStore(pool)
	collaborators := store.NewCollaboratorStore(pool)
	users := store.NewUserStore(pool)

	svc := app.NewAppService(orders, collaborators, users, advisor, logger)

	port := os.Getenv("SERVER_PORT")
	if port == "" {
		port = "8080"
	}

	allowedOrigins := os.Getenv("ALLOWED_ORIGINS")
	handler := webAdapter.NewHandler(svc, allowedOrigins, jwtSecret, logger)

	logger.Info().Str("port", port).Msg("server starting")
	if err := http.ListenAndServe(":"+port, handler); err != nil {
		logger.Fatal().Err(err).Msg("server stopped")
	}
}

// newLogger builds the process logger. LOG_LEVEL selects verbosity and
// LOG_PRETTY=true switches to human-readable console output.
func newLogger() zerolog.Logger {
	level, err := zerolog.ParseLevel(os.Getenv("LOG_LEVEL"))
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}

	var logger zerolog.Logger
	if os.Getenv("LOG_PRETTY") == "true" {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr})
	} else {
		logger = zerolog.New(os.Stderr)
	}
	return logger.Level(level).With().Timestamp().Logger()
}
