package core

import "github.com/shopspring/decimal"

// ── Rollup types ──────────────────────────────────────────────────────────────

// StatusClass partitions orders for rollup filtering.
type StatusClass string

const (
	StatusClassAll      StatusClass = "all"
	StatusClassOpen     StatusClass = "open"     // status != Finished
	StatusClassFinished StatusClass = "finished" // status == Finished
)

// RollupFilter selects the order subset a rollup runs over. From/To bound
// the order entry date inclusively; empty strings are unbounded.
type RollupFilter struct {
	Status StatusClass
	From   string // YYYY-MM-DD
	To     string // YYYY-MM-DD
}

// Matches reports whether the order passes the status and date filters.
func (f RollupFilter) Matches(o *ServiceOrder) bool {
	switch f.Status {
	case StatusClassOpen:
		if o.Status == StatusFinished {
			return false
		}
	case StatusClassFinished:
		if o.Status != StatusFinished {
			return false
		}
	}
	return DateInRange(o.EntryDate, f.From, f.To)
}

// OrderFinancials is the derived profitability row for one order.
// Revenue is the sale-side FinalPrice; the cost figures are internal and
// never stored on the order itself.
type OrderFinancials struct {
	OrderID   string          `json:"order_id"`
	Vehicle   string          `json:"vehicle"`
	Plate     string          `json:"plate"`
	Status    OrderStatus     `json:"status"`
	EntryDate string          `json:"entry_date"`
	Revenue   decimal.Decimal `json:"revenue"`
	PartsCost decimal.Decimal `json:"parts_cost"`
	LaborCost decimal.Decimal `json:"labor_cost"`
	TotalCost decimal.Decimal `json:"total_cost"`
	Profit    decimal.Decimal `json:"profit"`
	Margin    decimal.Decimal `json:"margin"` // percent; 0 when Revenue == 0
}

// FinanciallyActive reports whether the order has any financial movement.
// Orders without movement stay out of profitability tables and charts but
// still count in plain order-count statistics.
func (f OrderFinancials) FinanciallyActive() bool {
	return f.Revenue.IsPositive() || f.TotalCost.IsPositive()
}

// RollupReport aggregates profitability across a filtered order set.
//
// AvgMargin is computed on the aggregate profit over aggregate revenue,
// NOT as the mean of per-order margins — the two differ whenever order
// revenues are unequal, and the aggregate form is the correct one for
// "margin of the business over this period".
type RollupReport struct {
	Orders         []OrderFinancials `json:"orders"` // financially active orders only
	OrderCount     int               `json:"order_count"`
	TotalRevenue   decimal.Decimal   `json:"total_revenue"`
	TotalPartsCost decimal.Decimal   `json:"total_parts_cost"`
	TotalLaborCost decimal.Decimal   `json:"total_labor_cost"`
	TotalCost      decimal.Decimal   `json:"total_cost"`
	TotalProfit    decimal.Decimal   `json:"total_profit"`
	AvgMargin      decimal.Decimal   `json:"avg_margin"`        // percent, aggregate form
	AvgProfitOrder decimal.Decimal   `json:"avg_profit_order"`  // TotalProfit / OrderCount
}

// CommissionRow is one labor allocation matched by a commission report.
// Granularity is one row per allocation, never collapsed per order.
type CommissionRow struct {
	AllocationID string          `json:"allocation_id"`
	OrderID      string          `json:"order_id"`
	Vehicle      string          `json:"vehicle"` // "Brand Model (Plate)"
	Date         string          `json:"date"`    // effective date (allocation date or order entry date)
	Role         string          `json:"role"`
	Cost         decimal.Decimal `json:"cost"`
}

// CommissionReport lists everything owed to one collaborator in a period.
type CommissionReport struct {
	CollaboratorID  string          `json:"collaborator_id"`
	From            string          `json:"from"`
	To              string          `json:"to"`
	Rows            []CommissionRow `json:"rows"`
	TotalCommission decimal.Decimal `json:"total_commission"`
}

// ── Derivation ────────────────────────────────────────────────────────────────

// ComputeFinancials derives the profitability row for a single order.
func ComputeFinancials(o *ServiceOrder) OrderFinancials {
	partsCost := decimal.Zero
	for _, p := range o.Parts {
		partsCost = partsCost.Add(p.LineCost())
	}
	laborCost := decimal.Zero
	for _, l := range o.LaborAllocations {
		laborCost = laborCost.Add(l.Cost)
	}

	revenue := o.FinalPrice
	totalCost := partsCost.Add(laborCost)
	profit := revenue.Sub(totalCost)

	return OrderFinancials{
		OrderID:   o.ID,
		Vehicle:   o.Vehicle.Model,
		Plate:     o.Vehicle.Plate,
		Status:    o.Status,
		EntryDate: o.EntryDate,
		Revenue:   revenue,
		PartsCost: RoundCurrency(partsCost),
		LaborCost: RoundCurrency(laborCost),
		TotalCost: RoundCurrency(totalCost),
		Profit:    RoundCurrency(profit),
		Margin:    Percent(profit, revenue),
	}
}

// Rollup computes the aggregate profitability report over the orders that
// pass the filter. Orders with no financial movement are excluded from the
// rows and from every total.
func Rollup(orders []*ServiceOrder, filter RollupFilter) RollupReport {
	report := RollupReport{Orders: []OrderFinancials{}}

	for _, o := range orders {
		if !filter.Matches(o) {
			continue
		}
		fin := ComputeFinancials(o)
		if !fin.FinanciallyActive() {
			continue
		}
		report.Orders = append(report.Orders, fin)
		report.TotalRevenue = report.TotalRevenue.Add(fin.Revenue)
		report.TotalPartsCost = report.TotalPartsCost.Add(fin.PartsCost)
		report.TotalLaborCost = report.TotalLaborCost.Add(fin.LaborCost)
		report.TotalCost = report.TotalCost.Add(fin.TotalCost)
	}

	report.OrderCount = len(report.Orders)
	report.TotalProfit = report.TotalRevenue.Sub(report.TotalCost)
	report.AvgMargin = Percent(report.TotalProfit, report.TotalRevenue)
	if report.OrderCount > 0 {
		report.AvgProfitOrder = RoundCurrency(report.TotalProfit.Div(decimal.NewFromInt(int64(report.OrderCount))))
	}
	return report
}

// Commissions collects every labor allocation for the given collaborator
// whose effective date (allocation date, falling back to the order's entry
// date) lies within the inclusive [from, to] range. Empty bounds are
// unbounded. One row per allocation. An empty collaborator id yields an
// empty report: unassigned allocations also carry an empty id, and a pile
// of unassigned labor is not a commission report.
func Commissions(orders []*ServiceOrder, collaboratorID, from, to string) CommissionReport {
	report := CommissionReport{
		CollaboratorID: collaboratorID,
		From:           from,
		To:             to,
		Rows:           []CommissionRow{},
	}
	if collaboratorID == "" {
		return report
	}

	for _, o := range orders {
		for _, l := range o.LaborAllocations {
			if l.CollaboratorID != collaboratorID {
				continue
			}
			refDate := l.EffectiveDate(o.EntryDate)
			if !DateInRange(refDate, from, to) {
				continue
			}
			report.Rows = append(report.Rows, CommissionRow{
				AllocationID: l.ID,
				OrderID:      o.ID,
				Vehicle:      o.Vehicle.Description(),
				Date:         refDate,
				Role:         l.Role,
				Cost:         l.Cost,
			})
			report.TotalCommission = report.TotalCommission.Add(l.Cost)
		}
	}
	return report
}
