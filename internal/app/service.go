package app

import (
	"context"

	"bodyshop-manager/internal/ai"
	"bodyshop-manager/internal/core"
)

// ApplicationService is the single interface all transport adapters call.
// It decouples presentation from business logic. Implementations must
// contain no display logic of any kind.
//
// All data operations are scoped to the authenticated user's workspace.
// Mutations apply to the in-memory snapshot first and persist in the
// background; the returned value reflects the local state, which may be
// ahead of the database. Mutations targeting ids that do not exist are
// silent no-ops; lookups return explicit absence as (nil, nil).
type ApplicationService interface {
	// AuthenticateUser verifies credentials and returns the user on success.
	AuthenticateUser(ctx context.Context, email, password string) (*UserResult, error)

	// GetUser returns a user profile by id, or (nil, nil) when absent.
	GetUser(ctx context.Context, userID string) (*UserResult, error)

	// ListOrders returns all service orders in the user's workspace.
	ListOrders(ctx context.Context, userID string) (*OrderListResult, error)

	// GetOrder returns one order, or (nil, nil) when absent.
	GetOrder(ctx context.Context, userID, orderID string) (*OrderResult, error)

	// CreateOrder assigns the next OS-<year>-NNNN id and creates the order
	// at the first pipeline stage.
	CreateOrder(ctx context.Context, userID string, req CreateOrderRequest) (*OrderResult, error)

	// UpdateOrder replaces the order's header fields and services quote.
	UpdateOrder(ctx context.Context, userID string, req UpdateOrderRequest) (*OrderResult, error)

	// RemoveOrder deletes the order from the workspace.
	RemoveOrder(ctx context.Context, userID, orderID string) error

	// SetOrderStatus moves the order to any pipeline stage, forward or back.
	SetOrderStatus(ctx context.Context, userID, orderID string, status core.OrderStatus) (*OrderResult, error)

	AddPart(ctx context.Context, userID, orderID string, in PartInput) (*OrderResult, error)
	UpdatePart(ctx context.Context, userID, orderID string, in PartInput) (*OrderResult, error)
	RemovePart(ctx context.Context, userID, orderID, partID string) (*OrderResult, error)
	SetPartStatus(ctx context.Context, userID, orderID, partID string, status core.PartStatus) (*OrderResult, error)

	// AddLaborAllocation records pay owed to a worker on an order. The
	// worker name and role are snapshotted from the collaborator when the
	// referenced collaborator exists.
	AddLaborAllocation(ctx context.Context, userID, orderID string, in LaborInput) (*OrderResult, error)
	RemoveLaborAllocation(ctx context.Context, userID, orderID, allocationID string) (*OrderResult, error)

	// AddOrderNote appends a free-text note to the order's log.
	AddOrderNote(ctx context.Context, userID, orderID, note string) (*OrderResult, error)

	ListCollaborators(ctx context.Context, userID string) (*CollaboratorListResult, error)
	AddCollaborator(ctx context.Context, userID string, in CollaboratorInput) (*core.Collaborator, error)
	UpdateCollaborator(ctx context.Context, userID string, in CollaboratorInput) (*core.Collaborator, error)

	// RemoveCollaborator deletes the collaborator. Existing labor
	// allocations keep their denormalized worker snapshot.
	RemoveCollaborator(ctx context.Context, userID, collaboratorID string) error

	// DashboardStats returns the headline counters for the workspace.
	DashboardStats(ctx context.Context, userID string) (*core.DashboardStats, error)

	// Kanban returns orders grouped by pipeline stage in column order.
	Kanban(ctx context.Context, userID string) ([]core.KanbanColumn, error)

	// FinancialRollup computes per-order and aggregate profitability for
	// the orders matching the filter.
	FinancialRollup(ctx context.Context, userID string, filter core.RollupFilter) (*core.RollupReport, error)

	// CommissionReport lists one row per labor allocation for the
	// collaborator within the inclusive date range.
	CommissionReport(ctx context.Context, userID, collaboratorID, from, to string) (*core.CommissionReport, error)

	// SuggestParts asks the advisor for likely-needed parts. Advisory only.
	SuggestParts(ctx context.Context, damageDescription, vehicleModel string) ([]ai.PartSuggestion, error)

	// EstimateWorkload asks the advisor for a repair estimate. Advisory only;
	// values pre-fill forms and are never applied automatically.
	EstimateWorkload(ctx context.Context, damageDescription, vehicleModel string) (*ai.WorkloadEstimate, error)

	// AnalyzeOrderRisk runs the advisor over the order and stores the
	// resulting summary on it.
	AnalyzeOrderRisk(ctx context.Context, userID, orderID string) (*OrderResult, error)
}
