package ai_test

import (
	"context"
	"testing"

	"bodyshop-manager/internal/ai"
	"bodyshop-manager/internal/core"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// An advisor built without an API key must return neutral results, never errors.
func TestAdvisor_UnconfiguredReturnsNeutralResults(t *testing.T) {
	advisor := ai.NewAdvisor("", zerolog.Nop())
	ctx := context.Background()

	parts, err := advisor.SuggestParts(ctx, "rear-end collision, trunk crushed", "Fiat Argo")
	if err != nil {
		t.Fatalf("SuggestParts returned error: %v", err)
	}
	if parts == nil {
		t.Error("expected empty slice, got nil")
	}
	if len(parts) != 0 {
		t.Errorf("expected no suggestions, got %d", len(parts))
	}

	est, err := advisor.EstimateWorkload(ctx, "door panel replacement", "VW Gol")
	if err != nil {
		t.Fatalf("EstimateWorkload returned error: %v", err)
	}
	if est == nil {
		t.Fatal("expected neutral estimate, got nil")
	}
	if est.EstimatedDays != 0 || est.EstimatedLaborCost != "" {
		t.Errorf("expected zero-valued estimate, got %+v", est)
	}
	if est.Reasoning != "AI not configured" {
		t.Errorf("expected 'AI not configured' reasoning, got %q", est.Reasoning)
	}

	order := core.NewServiceOrder("OS-2026-0001", "2026-08-01", "2026-08-10",
		core.Client{Name: "Carlos"}, core.Vehicle{Plate: "ABC1D23", Brand: "Fiat", Model: "Argo"},
		"front bumper", "Marcos", decimal.NewFromInt(800))

	risk, err := advisor.AnalyzeOrderRisk(ctx, order)
	if err != nil {
		t.Fatalf("AnalyzeOrderRisk returned error: %v", err)
	}
	if risk != "" {
		t.Errorf("expected empty risk summary, got %q", risk)
	}
}
