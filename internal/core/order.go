package core

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// OrderStatus is one stage of the production pipeline. The declaration
// order of PipelineStages defines both the Kanban column order and the
// "how far along is this order" comparison via StageIndex.
type OrderStatus string

const (
	StatusDisassembly OrderStatus = "Disassembly"
	StatusBodywork    OrderStatus = "Bodywork"
	StatusPrep        OrderStatus = "Prep"
	StatusPaint       OrderStatus = "Paint"
	StatusAssembly    OrderStatus = "Assembly"
	StatusPolishing   OrderStatus = "Polishing"
	StatusFinished    OrderStatus = "Finished"
)

// PipelineStages lists every production stage in Kanban column order.
var PipelineStages = []OrderStatus{
	StatusDisassembly,
	StatusBodywork,
	StatusPrep,
	StatusPaint,
	StatusAssembly,
	StatusPolishing,
	StatusFinished,
}

// StageIndex returns the position of s in the pipeline, or -1 for an
// unknown status. Stages with a lower index are earlier in production.
func StageIndex(s OrderStatus) int {
	for i, stage := range PipelineStages {
		if stage == s {
			return i
		}
	}
	return -1
}

// Client is the vehicle owner, embedded in the order as a value object.
type Client struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
	Insurer string `json:"insurer,omitempty"`
}

// Vehicle identifies the car under repair, embedded in the order.
type Vehicle struct {
	Plate string `json:"plate"`
	Model string `json:"model"`
	Brand string `json:"brand"`
	Color string `json:"color"`
	Year  int    `json:"year"`
}

// Description is the short display form used on reports: "Brand Model (Plate)".
func (v Vehicle) Description() string {
	return fmt.Sprintf("%s %s (%s)", v.Brand, v.Model, v.Plate)
}

// ServiceOrder is one repair job tracked from intake to delivery.
//
// ServicesTotal, PartsTotal and FinalPrice are all sale-side figures.
// PartsTotal and FinalPrice are derived: any mutation of the parts
// collection must go through the aggregate methods in order.go's sibling
// file so the totals are recomputed before the order is read or persisted.
// Cost-side figures (parts cost, labor cost) are never stored on the order;
// the rollup engine derives them on demand.
type ServiceOrder struct {
	ID                   string      `json:"id"`                // business-formatted, e.g. OS-2026-0001
	EntryDate            string      `json:"entry_date"`        // YYYY-MM-DD
	DeliveryForecast     string      `json:"delivery_forecast"` // YYYY-MM-DD
	Client               Client      `json:"client"`
	Vehicle              Vehicle     `json:"vehicle"`
	Status               OrderStatus `json:"status"`
	Description          string      `json:"description"`
	TechnicalResponsible string      `json:"technical_responsible"`

	Parts            []Part            `json:"parts"`
	LaborAllocations []LaborAllocation `json:"labor_allocations"`

	ServicesTotal decimal.Decimal `json:"services_total"` // manually entered labor sale quote
	PartsTotal    decimal.Decimal `json:"parts_total"`    // derived: Σ part sale line totals
	FinalPrice    decimal.Decimal `json:"final_price"`    // derived: ServicesTotal + PartsTotal

	Notes          []string `json:"notes"`
	RiskAssessment string   `json:"risk_assessment,omitempty"` // AI-generated, advisory text
}

// NewServiceOrder creates an order at the first pipeline stage with empty
// part/labor collections and totals derived from the given services quote.
func NewServiceOrder(id, entryDate, deliveryForecast string, client Client, vehicle Vehicle, description, technicalResponsible string, servicesTotal decimal.Decimal) *ServiceOrder {
	o := &ServiceOrder{
		ID:                   id,
		EntryDate:            entryDate,
		DeliveryForecast:     deliveryForecast,
		Client:               client,
		Vehicle:              vehicle,
		Status:               StatusDisassembly,
		Description:          description,
		TechnicalResponsible: technicalResponsible,
		Parts:                []Part{},
		LaborAllocations:     []LaborAllocation{},
		ServicesTotal:        servicesTotal,
		Notes:                []string{},
	}
	o.recomputeTotals()
	return o
}

// Validate checks the order is admissible for persistence.
func (o *ServiceOrder) Validate() error {
	if o.ID == "" {
		return errors.New("order must have an id")
	}
	if !ValidDate(o.EntryDate) {
		return fmt.Errorf("order %s: invalid entry date %q", o.ID, o.EntryDate)
	}
	if o.Client.Name == "" {
		return fmt.Errorf("order %s: client name is required", o.ID)
	}
	if o.ServicesTotal.IsNegative() {
		return fmt.Errorf("order %s: services total cannot be negative", o.ID)
	}
	for _, p := range o.Parts {
		if err := p.Validate(); err != nil {
			return fmt.Errorf("order %s: %w", o.ID, err)
		}
	}
	for _, l := range o.LaborAllocations {
		if err := l.Validate(); err != nil {
			return fmt.Errorf("order %s: %w", o.ID, err)
		}
	}
	return nil
}

// HasPendingParts reports whether any part is still in the Requested state.
// The Kanban board flags these orders.
func (o *ServiceOrder) HasPendingParts() bool {
	for _, p := range o.Parts {
		if p.Status == PartRequested {
			return true
		}
	}
	return false
}
