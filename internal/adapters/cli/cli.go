// Package cli is a one-shot command adapter for operators: it runs a single
// reporting command against a user's workspace and prints JSON to stdout.
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strings"

	"bodyshop-manager/internal/app"
	"bodyshop-manager/internal/core"
)

// Run executes a one-shot CLI command and exits.
// args is os.Args[1:] — the first element is the subcommand name.
// The target workspace comes from the APP_USER_ID environment variable.
func Run(ctx context.Context, svc app.ApplicationService, args []string) {
	userID := os.Getenv("APP_USER_ID")
	if userID == "" {
		log.Fatal("APP_USER_ID is not set — it selects the workspace to report on")
	}
	if user, err := svc.GetUser(ctx, userID); err != nil {
		log.Fatalf("Failed to load user: %v", err)
	} else if user == nil {
		log.Fatalf("No user with id %s", userID)
	}

	switch args[0] {
	case "stats":
		stats, err := svc.DashboardStats(ctx, userID)
		if err != nil {
			log.Fatalf("Stats failed: %v", err)
		}
		printJSON(stats)

	case "orders":
		result, err := svc.ListOrders(ctx, userID)
		if err != nil {
			log.Fatalf("Listing orders failed: %v", err)
		}
		printJSON(result)

	case "rollup":
		filter := core.RollupFilter{Status: core.StatusClassAll}
		if len(args) > 1 {
			filter.Status = core.StatusClass(args[1])
		}
		if len(args) > 2 {
			filter.From = args[2]
		}
		if len(args) > 3 {
			filter.To = args[3]
		}
		report, err := svc.FinancialRollup(ctx, userID, filter)
		if err != nil {
			log.Fatalf("Rollup failed: %v", err)
		}
		printJSON(report)

	case "commission", "comm":
		if len(args) < 2 {
			log.Fatal("Usage: report commission <collaborator-id> [from] [to]")
		}
		from, to := "", ""
		if len(args) > 2 {
			from = args[2]
		}
		if len(args) > 3 {
			to = args[3]
		}
		report, err := svc.CommissionReport(ctx, userID, args[1], from, to)
		if err != nil {
			log.Fatalf("Commission report failed: %v", err)
		}
		printJSON(report)

	case "kanban":
		board, err := svc.Kanban(ctx, userID)
		if err != nil {
			log.Fatalf("Kanban failed: %v", err)
		}
		printJSON(board)

	default:
		fmt.Fprintf(os.Stderr, "Unknown command %q.\nCommands: %s\n",
			args[0], strings.Join([]string{"stats", "orders", "rollup", "commission", "kanban"}, ", "))
		os.Exit(2)
	}
}

func printJSON(v any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(v)
}
