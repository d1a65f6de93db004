package core

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

type PartType string

const (
	PartTypePart   PartType = "Part"
	PartTypeSupply PartType = "Supply"
)

// PartStatus tracks a part through procurement. Transitions are free-form:
// the shop moves parts between states in any order (returns, re-orders),
// so no state machine is enforced.
type PartStatus string

const (
	PartRequested PartStatus = "Requested"
	PartShipped   PartStatus = "Shipped"
	PartDelivered PartStatus = "Delivered"
	PartInUse     PartStatus = "InUse"
	PartUsed      PartStatus = "Used"
	PartReturned  PartStatus = "Returned"
)

// Part is a purchased/installed line item on a service order. UnitCost is
// what the shop pays the supplier; UnitSalePrice is what the customer is
// billed. The two sides are kept separate everywhere downstream.
type Part struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	Code          string          `json:"code"`
	Type          PartType        `json:"type"`
	Quantity      int             `json:"quantity"`
	UnitSalePrice decimal.Decimal `json:"unit_sale_price"`
	UnitCost      decimal.Decimal `json:"unit_cost"`
	Status        PartStatus      `json:"status"`
	Supplier      string          `json:"supplier"`
	ArrivalDate   string          `json:"arrival_date,omitempty"` // YYYY-MM-DD, optional
}

// LineRevenue is the sale-side total for this line: unit sale price × quantity.
func (p Part) LineRevenue() decimal.Decimal {
	return p.UnitSalePrice.Mul(decimal.NewFromInt(int64(p.Quantity)))
}

// LineCost is the cost-side total for this line: unit cost × quantity.
func (p Part) LineCost() decimal.Decimal {
	return p.UnitCost.Mul(decimal.NewFromInt(int64(p.Quantity)))
}

// Validate checks the part is admissible into an order.
func (p Part) Validate() error {
	if p.ID == "" {
		return errors.New("part must have an id")
	}
	if p.Name == "" {
		return errors.New("part must have a name")
	}
	if p.Quantity < 1 {
		return fmt.Errorf("part %s: quantity must be a positive integer, got %d", p.ID, p.Quantity)
	}
	if p.UnitSalePrice.IsNegative() {
		return fmt.Errorf("part %s: unit sale price cannot be negative", p.ID)
	}
	if p.UnitCost.IsNegative() {
		return fmt.Errorf("part %s: unit cost cannot be negative", p.ID)
	}
	return nil
}
