package core_test

import (
	"testing"

	"bodyshop-manager/internal/core"

	"github.com/shopspring/decimal"
)

func TestDateInRange_BoundaryInclusive(t *testing.T) {
	tests := []struct {
		name string
		date string
		from string
		to   string
		want bool
	}{
		{"inside range", "2026-03-15", "2026-03-01", "2026-03-31", true},
		{"equal to start", "2026-03-01", "2026-03-01", "2026-03-31", true},
		{"equal to end", "2026-03-31", "2026-03-01", "2026-03-31", true},
		{"before start", "2026-02-28", "2026-03-01", "2026-03-31", false},
		{"after end", "2026-04-01", "2026-03-01", "2026-03-31", false},
		{"no lower bound", "2020-01-01", "", "2026-03-31", true},
		{"no upper bound", "2030-01-01", "2026-03-01", "", true},
		{"no bounds", "2026-06-06", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := core.DateInRange(tt.date, tt.from, tt.to); got != tt.want {
				t.Errorf("DateInRange(%q, %q, %q) = %v, want %v", tt.date, tt.from, tt.to, got, tt.want)
			}
		})
	}
}

func TestPercent_ZeroWholeGuard(t *testing.T) {
	if got := core.Percent(decimal.NewFromInt(500), decimal.Zero); !got.IsZero() {
		t.Errorf("Percent over zero whole: want 0, got %s", got)
	}
	if got := core.Percent(decimal.NewFromInt(500), decimal.NewFromInt(-100)); !got.IsZero() {
		t.Errorf("Percent over negative whole: want 0, got %s", got)
	}

	got := core.Percent(decimal.NewFromInt(50), decimal.NewFromInt(200))
	if !got.Equal(decimal.NewFromInt(25)) {
		t.Errorf("Percent(50, 200): want 25, got %s", got)
	}
}

func TestRoundCurrency(t *testing.T) {
	in, _ := decimal.NewFromString("10.005")
	want, _ := decimal.NewFromString("10.01")
	if got := core.RoundCurrency(in); !got.Equal(want) {
		t.Errorf("RoundCurrency(10.005): want %s, got %s", want, got)
	}
}

func TestValidDate(t *testing.T) {
	if !core.ValidDate("2026-02-28") {
		t.Error("2026-02-28 should be valid")
	}
	if core.ValidDate("2026-13-01") {
		t.Error("month 13 should be invalid")
	}
	if core.ValidDate("28/02/2026") {
		t.Error("non ISO format should be invalid")
	}
}
