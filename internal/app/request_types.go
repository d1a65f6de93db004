package app

import (
	"bodyshop-manager/internal/core"

	"github.com/shopspring/decimal"
)

// CreateOrderRequest is the input for opening a new service order.
// EntryDate defaults to today when empty.
type CreateOrderRequest struct {
	EntryDate            string // YYYY-MM-DD
	DeliveryForecast     string // YYYY-MM-DD, optional
	Client               core.Client
	Vehicle              core.Vehicle
	Description          string
	TechnicalResponsible string
	ServicesTotal        decimal.Decimal
}

// UpdateOrderRequest replaces an order's header fields and services quote.
// Parts, labor allocations and status are managed by their own operations.
type UpdateOrderRequest struct {
	OrderID              string
	EntryDate            string
	DeliveryForecast     string
	Client               core.Client
	Vehicle              core.Vehicle
	Description          string
	TechnicalResponsible string
	ServicesTotal        decimal.Decimal
}

// PartInput is the input for adding or updating a part line. An empty ID
// on add gets a generated one; on update the ID selects the line.
type PartInput struct {
	ID            string
	Name          string
	Code          string
	Type          core.PartType
	Quantity      int
	UnitSalePrice decimal.Decimal
	UnitCost      decimal.Decimal
	Status        core.PartStatus
	Supplier      string
	ArrivalDate   string // YYYY-MM-DD, optional
}

// LaborInput is the input for recording a labor allocation. WorkerName and
// Role are optional overrides; when the referenced collaborator exists in
// the workspace its name and role win.
type LaborInput struct {
	CollaboratorID string
	WorkerName     string
	Role           string
	Cost           decimal.Decimal
	Date           string // YYYY-MM-DD, optional — reports fall back to the order's entry date
}

// CollaboratorInput is the input for adding or updating a collaborator.
type CollaboratorInput struct {
	ID     string
	Name   string
	Role   core.CollaboratorRole
	Phone  string
	Status core.CollaboratorStatus
}
