package core_test

import (
	"testing"

	"bodyshop-manager/internal/core"

	"github.com/shopspring/decimal"
)

// orderWith builds a finished-state order with one part carrying the given
// revenue and cost as a single line, entered on entryDate.
func orderWith(id, entryDate string, revenue, cost int64) *core.ServiceOrder {
	o := core.NewServiceOrder(
		id, entryDate, "2026-12-31",
		core.Client{ID: "C-" + id, Name: "Client " + id},
		core.Vehicle{Plate: "PLT-" + id, Model: "Gol", Brand: "VW", Year: 2020},
		"damage", "tech",
		decimal.Zero,
	)
	o.AddPart(core.Part{
		ID: "P-" + id, Name: "bundle", Type: core.PartTypePart, Quantity: 1,
		UnitSalePrice: decimal.NewFromInt(revenue),
		UnitCost:      decimal.NewFromInt(cost),
		Status:        core.PartUsed,
	})
	return o
}

func TestMargin_ZeroRevenueGuard(t *testing.T) {
	o := core.NewServiceOrder(
		"OS-0", "2026-01-01", "2026-01-15",
		core.Client{ID: "C", Name: "C"}, core.Vehicle{}, "", "",
		decimal.Zero,
	)
	o.AddLaborAllocation(core.LaborAllocation{
		ID: "L1", WorkerName: "w", Cost: decimal.NewFromInt(300),
	})

	fin := core.ComputeFinancials(o)
	if !fin.Revenue.IsZero() {
		t.Fatalf("revenue: want 0, got %s", fin.Revenue)
	}
	if !fin.Margin.IsZero() {
		t.Errorf("margin with zero revenue must be 0, got %s", fin.Margin)
	}
	if !fin.Profit.Equal(decimal.NewFromInt(-300)) {
		t.Errorf("profit: want -300, got %s", fin.Profit)
	}
}

// Aggregate margin must be profit-over-revenue on the totals, not the mean
// of per-order margins. Revenues {100, 900} with costs {50, 100}:
// aggregate (1000-150)/1000 = 85%; mean of 50% and 88.9% would be 69.4%.
func TestRollup_AggregateMarginNotMeanOfMargins(t *testing.T) {
	orders := []*core.ServiceOrder{
		orderWith("A", "2026-01-05", 100, 50),
		orderWith("B", "2026-01-06", 900, 100),
	}

	report := core.Rollup(orders, core.RollupFilter{Status: core.StatusClassAll})

	if !report.TotalRevenue.Equal(decimal.NewFromInt(1000)) {
		t.Fatalf("totalRevenue: want 1000, got %s", report.TotalRevenue)
	}
	if !report.TotalCost.Equal(decimal.NewFromInt(150)) {
		t.Fatalf("totalCost: want 150, got %s", report.TotalCost)
	}
	if !report.TotalProfit.Equal(decimal.NewFromInt(850)) {
		t.Fatalf("totalProfit: want 850, got %s", report.TotalProfit)
	}
	if report.AvgMargin.StringFixed(1) != "85.0" {
		t.Errorf("avgMargin: want 85.0 (aggregate form), got %s", report.AvgMargin.StringFixed(1))
	}

	// The mean of the two individual margins is distinguishably different.
	meanOfMargins := report.Orders[0].Margin.Add(report.Orders[1].Margin).Div(decimal.NewFromInt(2))
	if report.AvgMargin.Sub(meanOfMargins).Abs().LessThan(decimal.NewFromFloat(0.1)) {
		t.Fatalf("test orders do not distinguish aggregate margin (%s) from mean of margins (%s)",
			report.AvgMargin, meanOfMargins)
	}
}

func TestRollup_DateFilterBoundaryInclusive(t *testing.T) {
	orders := []*core.ServiceOrder{
		orderWith("start", "2026-03-01", 100, 10),
		orderWith("mid", "2026-03-15", 100, 10),
		orderWith("end", "2026-03-31", 100, 10),
		orderWith("before", "2026-02-28", 100, 10),
		orderWith("after", "2026-04-01", 100, 10),
	}

	report := core.Rollup(orders, core.RollupFilter{
		Status: core.StatusClassAll,
		From:   "2026-03-01",
		To:     "2026-03-31",
	})

	if report.OrderCount != 3 {
		t.Fatalf("want 3 orders in range, got %d", report.OrderCount)
	}
	for _, row := range report.Orders {
		if row.OrderID == "before" || row.OrderID == "after" {
			t.Errorf("order %s must be outside the range", row.OrderID)
		}
	}
}

func TestRollup_StatusClassFilters(t *testing.T) {
	open := orderWith("open", "2026-01-01", 100, 10)
	finished := orderWith("done", "2026-01-02", 200, 20)
	finished.SetStatus(core.StatusFinished)
	orders := []*core.ServiceOrder{open, finished}

	tests := []struct {
		name    string
		class   core.StatusClass
		wantIDs []string
	}{
		{"all", core.StatusClassAll, []string{"open", "done"}},
		{"open only", core.StatusClassOpen, []string{"open"}},
		{"finished only", core.StatusClassFinished, []string{"done"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			report := core.Rollup(orders, core.RollupFilter{Status: tt.class})
			if report.OrderCount != len(tt.wantIDs) {
				t.Fatalf("want %d orders, got %d", len(tt.wantIDs), report.OrderCount)
			}
			for i, id := range tt.wantIDs {
				if report.Orders[i].OrderID != id {
					t.Errorf("order %d: want %s, got %s", i, id, report.Orders[i].OrderID)
				}
			}
		})
	}
}

func TestRollup_FinanciallyInactiveExcluded(t *testing.T) {
	idle := core.NewServiceOrder(
		"OS-idle", "2026-01-03", "2026-01-20",
		core.Client{ID: "C", Name: "C"}, core.Vehicle{}, "", "",
		decimal.Zero,
	)
	active := orderWith("active", "2026-01-04", 500, 100)
	orders := []*core.ServiceOrder{idle, active}

	report := core.Rollup(orders, core.RollupFilter{Status: core.StatusClassAll})
	if report.OrderCount != 1 {
		t.Fatalf("rollup must exclude orders with no financial movement: want 1, got %d", report.OrderCount)
	}
	if report.Orders[0].OrderID != "active" {
		t.Errorf("want active order in rollup, got %s", report.Orders[0].OrderID)
	}

	// The idle order still counts in plain order statistics.
	stats := core.ComputeStats(orders)
	if stats.TotalActive != 2 {
		t.Errorf("stats must count every order: want 2 active, got %d", stats.TotalActive)
	}
}

func TestCommissions_GranularityAndRangeFilter(t *testing.T) {
	o1 := orderWith("OS-1", "2026-05-02", 100, 10)
	o1.AddLaborAllocation(core.LaborAllocation{
		ID: "L1", CollaboratorID: "collab-1", WorkerName: "João", Role: "Funileiro",
		Cost: decimal.NewFromInt(200), Date: "2026-05-10",
	})

	o2 := orderWith("OS-2", "2026-05-03", 100, 10)
	o2.AddLaborAllocation(core.LaborAllocation{
		ID: "L2", CollaboratorID: "collab-1", WorkerName: "João", Role: "Funileiro",
		Cost: decimal.NewFromInt(300), Date: "2026-05-20",
	})
	// Outside the range — must not appear.
	o2.AddLaborAllocation(core.LaborAllocation{
		ID: "L3", CollaboratorID: "collab-1", WorkerName: "João", Role: "Funileiro",
		Cost: decimal.NewFromInt(999), Date: "2026-06-15",
	})
	// Different collaborator — must not appear.
	o2.AddLaborAllocation(core.LaborAllocation{
		ID: "L4", CollaboratorID: "collab-2", WorkerName: "Pedro", Role: "Pintor",
		Cost: decimal.NewFromInt(50), Date: "2026-05-12",
	})

	report := core.Commissions([]*core.ServiceOrder{o1, o2}, "collab-1", "2026-05-01", "2026-05-31")

	if len(report.Rows) != 2 {
		t.Fatalf("want exactly 2 rows (one per in-range allocation), got %d", len(report.Rows))
	}
	if !report.TotalCommission.Equal(decimal.NewFromInt(500)) {
		t.Errorf("totalCommission: want 500, got %s", report.TotalCommission)
	}
	for _, row := range report.Rows {
		if row.AllocationID == "L3" || row.AllocationID == "L4" {
			t.Errorf("allocation %s must be filtered out", row.AllocationID)
		}
		if row.Vehicle != "VW Gol (PLT-OS-1)" && row.Vehicle != "VW Gol (PLT-OS-2)" {
			t.Errorf("unexpected vehicle description %q", row.Vehicle)
		}
	}
}

func TestCommissions_EmptyCollaboratorIDMatchesNothing(t *testing.T) {
	o := orderWith("OS-1", "2026-05-02", 100, 10)
	// Unassigned labor carries an empty collaborator id.
	o.AddLaborAllocation(core.LaborAllocation{
		ID: "L1", WorkerName: "Diarista", Role: "Geral", Cost: decimal.NewFromInt(80),
	})

	report := core.Commissions([]*core.ServiceOrder{o}, "", "", "")
	if len(report.Rows) != 0 {
		t.Fatalf("empty collaborator id must not match unassigned allocations, got %d rows", len(report.Rows))
	}
	if !report.TotalCommission.IsZero() {
		t.Errorf("totalCommission: want 0, got %s", report.TotalCommission)
	}
}

func TestCommissions_UndatedAllocationFallsBackToEntryDate(t *testing.T) {
	o := orderWith("OS-9", "2026-07-15", 100, 10)
	o.AddLaborAllocation(core.LaborAllocation{
		ID: "L1", CollaboratorID: "collab-1", WorkerName: "João", Role: "Montador",
		Cost: decimal.NewFromInt(120), // no Date set
	})

	// The order's entry date is inside the range, so the undated allocation
	// must be attributed there and included.
	report := core.Commissions([]*core.ServiceOrder{o}, "collab-1", "2026-07-01", "2026-07-31")
	if len(report.Rows) != 1 {
		t.Fatalf("undated allocation must fall back to order entry date: want 1 row, got %d", len(report.Rows))
	}
	if report.Rows[0].Date != "2026-07-15" {
		t.Errorf("row date: want order entry date 2026-07-15, got %s", report.Rows[0].Date)
	}

	// Outside the range the same allocation must vanish.
	report = core.Commissions([]*core.ServiceOrder{o}, "collab-1", "2026-08-01", "2026-08-31")
	if len(report.Rows) != 0 {
		t.Fatalf("want 0 rows outside entry-date range, got %d", len(report.Rows))
	}
}
