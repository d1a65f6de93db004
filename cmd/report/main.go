// report runs one-shot reporting commands against a workspace, bypassing
// the HTTP surface. Useful for ops checks and cron-driven snapshots.
//
// Usage: go run ./cmd/report <stats|orders|rollup|commission|kanban> [args]
package main

import (
	"context"
	"log"
	"os"

	"bodyshop-manager/internal/adapters/cli"
	"bodyshop-manager/internal/ai"
	"bodyshop-manager/internal/app"
	"bodyshop-manager/internal/db"
	"bodyshop-manager/internal/store"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
)

func main() {
	_ = godotenv.Load()

	if len(os.Args) < 2 {
		log.Fatal("Usage: report <stats|orders|rollup|commission|kanban> [args]")
	}

	ctx := context.Background()
	pool, err := db.NewPool(ctx)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer pool.Close()

	logger := zerolog.New(os.Stderr).With().Timestamp().Logger()
	svc := app.NewAppService(
		store.NewOrderStore(pool),
		store.NewCollaboratorStore(pool),
		store.NewUserStore(pool),
		ai.NewAdvisor("", logger), // reporting never needs the advisor
		logger,
	)

	cli.Run(ctx, svc, os.Args[1:])
}
