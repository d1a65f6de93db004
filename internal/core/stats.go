package core

import "github.com/shopspring/decimal"

// DashboardStats is the KPI card set shown on the dashboard.
//
// TotalFinishedMonth deliberately counts every Finished order in the given
// set regardless of date. The dashboard has always shown it that way; the
// field name is kept for wire compatibility.
type DashboardStats struct {
	TotalActive        int             `json:"total_active"`
	TotalFinishedMonth int             `json:"total_finished_month"`
	PartsPending       int             `json:"parts_pending"`
	RevenueMonth       decimal.Decimal `json:"revenue_month"`
}

// ComputeStats derives the dashboard KPI set over an order collection.
// Unlike the profitability rollup, every order counts here, including ones
// with no financial movement yet.
func ComputeStats(orders []*ServiceOrder) DashboardStats {
	stats := DashboardStats{}
	for _, o := range orders {
		if o.Status == StatusFinished {
			stats.TotalFinishedMonth++
		} else {
			stats.TotalActive++
		}
		for _, p := range o.Parts {
			if p.Status == PartRequested {
				stats.PartsPending++
			}
		}
		stats.RevenueMonth = stats.RevenueMonth.Add(o.FinalPrice)
	}
	return stats
}

// KanbanColumn is one production-stage column of the board.
type KanbanColumn struct {
	Stage  OrderStatus  `json:"stage"`
	Count  int          `json:"count"`
	Orders []KanbanCard `json:"orders"`
}

// KanbanCard is the board's compact view of one order.
type KanbanCard struct {
	OrderID          string `json:"order_id"`
	Vehicle          string `json:"vehicle"`
	Client           string `json:"client"`
	DeliveryForecast string `json:"delivery_forecast"`
	PendingParts     bool   `json:"pending_parts"`
}

// KanbanBoard groups orders by production stage in pipeline column order.
// Every stage appears even when empty.
func KanbanBoard(orders []*ServiceOrder) []KanbanColumn {
	columns := make([]KanbanColumn, len(PipelineStages))
	for i, stage := range PipelineStages {
		columns[i] = KanbanColumn{Stage: stage, Orders: []KanbanCard{}}
	}
	for _, o := range orders {
		idx := StageIndex(o.Status)
		if idx < 0 {
			continue
		}
		columns[idx].Orders = append(columns[idx].Orders, KanbanCard{
			OrderID:          o.ID,
			Vehicle:          o.Vehicle.Description(),
			Client:           o.Client.Name,
			DeliveryForecast: o.DeliveryForecast,
			PendingParts:     o.HasPendingParts(),
		})
	}
	for i := range columns {
		columns[i].Count = len(columns[i].Orders)
	}
	return columns
}
