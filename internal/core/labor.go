package core

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// LaborAllocation records pay owed to one worker for work on one order.
// It is cost-only: the sale-side labor figure lives on the order as
// ServicesTotal and is entered independently.
//
// Allocations are immutable once created — a mistake is corrected by
// removing the allocation and adding a new one.
type LaborAllocation struct {
	ID string `json:"id"`
	// CollaboratorID is a weak reference: deleting the collaborator does not
	// cascade here, the denormalized WorkerName/Role snapshot survives.
	CollaboratorID string          `json:"collaborator_id,omitempty"`
	WorkerName     string          `json:"worker_name"`
	Role           string          `json:"role"`
	Cost           decimal.Decimal `json:"cost"`
	Date           string          `json:"date,omitempty"` // YYYY-MM-DD, optional
}

// EffectiveDate resolves the date the work is attributed to: the
// allocation's own date when set, otherwise the owning order's entry date.
// Date-filtered reports must use this resolution or undated allocations
// silently vanish from them.
func (l LaborAllocation) EffectiveDate(orderEntryDate string) string {
	if l.Date != "" {
		return l.Date
	}
	return orderEntryDate
}

// Validate checks the allocation is admissible into an order.
func (l LaborAllocation) Validate() error {
	if l.ID == "" {
		return errors.New("labor allocation must have an id")
	}
	if l.WorkerName == "" {
		return errors.New("labor allocation must have a worker name")
	}
	if l.Cost.IsNegative() {
		return fmt.Errorf("labor allocation %s: cost cannot be negative", l.ID)
	}
	if l.Date != "" && !ValidDate(l.Date) {
		return fmt.Errorf("labor allocation %s: invalid date %q", l.ID, l.Date)
	}
	return nil
}
