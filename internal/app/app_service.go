package app

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"bodyshop-manager/internal/ai"
	"bodyshop-manager/internal/core"
	"bodyshop-manager/internal/store"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidCredentials is returned by AuthenticateUser for a wrong email
// or password. Adapters must not distinguish the two cases.
var ErrInvalidCredentials = errors.New("invalid credentials")

const persistTimeout = 10 * time.Second

// workspace is one user's in-memory snapshot. Mutations hit the snapshot
// synchronously and the database in the background, so reads always see
// the latest local state even while writes are in flight.
type workspace struct {
	orders        map[string]*core.ServiceOrder
	collaborators map[string]*core.Collaborator
}

type appService struct {
	orders        store.OrderStore
	collaborators store.CollaboratorStore
	users         store.UserStore
	advisor       ai.AdvisorService
	logger        zerolog.Logger

	mu    sync.Mutex
	state map[string]*workspace // keyed by user id
}

// NewAppService constructs an appService that satisfies ApplicationService.
func NewAppService(
	orders store.OrderStore,
	collaborators store.CollaboratorStore,
	users store.UserStore,
	advisor ai.AdvisorService,
	logger zerolog.Logger,
) ApplicationService {
	return &appService{
		orders:        orders,
		collaborators: collaborators,
		users:         users,
		advisor:       advisor,
		logger:        logger,
		state:         make(map[string]*workspace),
	}
}

// ── Auth ─────────────────────────────────────────────────────────────────

func (s *appService) AuthenticateUser(ctx context.Context, email, password string) (*UserResult, error) {
	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to authenticate: %w", err)
	}
	if u == nil {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return &UserResult{ID: u.ID, Email: u.Email, Name: u.Name}, nil
}

func (s *appService) GetUser(ctx context.Context, userID string) (*UserResult, error) {
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, nil
	}
	return &UserResult{ID: u.ID, Email: u.Email, Name: u.Name}, nil
}

// ── Workspace snapshot ───────────────────────────────────────────────────

// workspaceLocked returns the user's snapshot, loading it from the stores
// on first access. Callers must hold s.mu.
func (s *appService) workspaceLocked(ctx context.Context, userID string) (*workspace, error) {
	if ws, ok := s.state[userID]; ok {
		return ws, nil
	}

	orders, err := s.orders.ListForUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load orders: %w", err)
	}
	collaborators, err := s.collaborators.ListForUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load collaborators: %w", err)
	}

	ws := &workspace{
		orders:        make(map[string]*core.ServiceOrder, len(orders)),
		collaborators: make(map[string]*core.Collaborator, len(collaborators)),
	}
	for _, o := range orders {
		ws.orders[o.ID] = o
	}
	for _, c := range collaborators {
		ws.collaborators[c.ID] = c
	}
	s.state[userID] = ws
	return ws, nil
}

// persistOrder writes the order snapshot in the background. Failures are
// logged and never surfaced to the caller; local state stays ahead of the
// database until the next successful write.
func (s *appService) persistOrder(userID string, o *core.ServiceOrder, insert bool) {
	cp := o.Clone()
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
		defer cancel()

		var err error
		if insert {
			err = s.orders.Insert(ctx, userID, cp)
		} else {
			err = s.orders.Update(ctx, userID, cp)
		}
		if err != nil {
			s.logger.Error().Err(err).
				Str("user_id", userID).
				Str("order_id", cp.ID).
				Msg("background order persistence failed")
		}
	}()
}

func (s *appService) persistOrderDelete(userID, orderID string) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
		defer cancel()
		if err := s.orders.Delete(ctx, userID, orderID); err != nil {
			s.logger.Error().Err(err).
				Str("user_id", userID).
				Str("order_id", orderID).
				Msg("background order delete failed")
		}
	}()
}

// ── Orders ───────────────────────────────────────────────────────────────

func (s *appService) ListOrders(ctx context.Context, userID string) (*OrderListResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ws, err := s.workspaceLocked(ctx, userID)
	if err != nil {
		return nil, err
	}
	orders := make([]*core.ServiceOrder, 0, len(ws.orders))
	for _, o := range ws.orders {
		orders = append(orders, o.Clone())
	}
	sort.Slice(orders, func(i, j int) bool { return orders[i].ID > orders[j].ID })
	return &OrderListResult{Orders: orders}, nil
}

func (s *appService) GetOrder(ctx context.Context, userID, orderID string) (*OrderResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ws, err := s.workspaceLocked(ctx, userID)
	if err != nil {
		return nil, err
	}
	o, ok := ws.orders[orderID]
	if !ok {
		return nil, nil
	}
	return &OrderResult{Order: o.Clone()}, nil
}

func (s *appService) CreateOrder(ctx context.Context, userID string, req CreateOrderRequest) (*OrderResult, error) {
	entryDate := req.EntryDate
	if entryDate == "" {
		entryDate = core.Today()
	}

	year, err := core.YearOf(entryDate)
	if err != nil {
		return nil, err
	}
	id, err := s.orders.NextOrderID(ctx, userID, year)
	if err != nil {
		return nil, err
	}

	o := core.NewServiceOrder(id, entryDate, req.DeliveryForecast,
		req.Client, req.Vehicle, req.Description, req.TechnicalResponsible,
		req.ServicesTotal)
	if err := o.Validate(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	ws, err := s.workspaceLocked(ctx, userID)
	if err != nil {
		return nil, err
	}
	ws.orders[o.ID] = o
	s.persistOrder(userID, o, true)
	return &OrderResult{Order: o.Clone()}, nil
}

func (s *appService) UpdateOrder(ctx context.Context, userID string, req UpdateOrderRequest) (*OrderResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ws, err := s.workspaceLocked(ctx, userID)
	if err != nil {
		return nil, err
	}
	o, ok := ws.orders[req.OrderID]
	if !ok {
		return nil, nil
	}

	// Stage the edit on a copy so a rejected request never reaches the
	// snapshot.
	next := o.Clone()
	next.EntryDate = req.EntryDate
	next.DeliveryForecast = req.DeliveryForecast
	next.Client = req.Client
	next.Vehicle = req.Vehicle
	next.Description = req.Description
	next.TechnicalResponsible = req.TechnicalResponsible
	next.SetServicesTotal(req.ServicesTotal)
	if err := next.Validate(); err != nil {
		return nil, err
	}

	ws.orders[next.ID] = next
	s.persistOrder(userID, next, false)
	return &OrderResult{Order: next.Clone()}, nil
}

func (s *appService) RemoveOrder(ctx context.Context, userID, orderID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	ws, err := s.workspaceLocked(ctx, userID)
	if err != nil {
		return err
	}
	if _, ok := ws.orders[orderID]; !ok {
		return nil
	}
	delete(ws.orders, orderID)
	s.persistOrderDelete(userID, orderID)
	return nil
}

func (s *appService) SetOrderStatus(ctx context.Context, userID, orderID string, status core.OrderStatus) (*OrderResult, error) {
	if core.StageIndex(status) < 0 {
		return nil, fmt.Errorf("unknown pipeline stage %q", status)
	}
	return s.mutateOrder(ctx, userID, orderID, func(o *core.ServiceOrder) error {
		o.SetStatus(status)
		return nil
	})
}

// mutateOrder runs fn against the order under the snapshot lock and kicks
// off background persistence. A missing order returns (nil, nil).
func (s *appService) mutateOrder(ctx context.Context, userID, orderID string, fn func(*core.ServiceOrder) error) (*OrderResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ws, err := s.workspaceLocked(ctx, userID)
	if err != nil {
		return nil, err
	}
	o, ok := ws.orders[orderID]
	if !ok {
		return nil, nil
	}
	if err := fn(o); err != nil {
		return nil, err
	}
	s.persistOrder(userID, o, false)
	return &OrderResult{Order: o.Clone()}, nil
}

// ── Parts ────────────────────────────────────────────────────────────────

func (s *appService) AddPart(ctx context.Context, userID, orderID string, in PartInput) (*OrderResult, error) {
	p := partFromInput(in)
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if p.Status == "" {
		p.Status = core.PartRequested
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return s.mutateOrder(ctx, userID, orderID, func(o *core.ServiceOrder) error {
		o.AddPart(p)
		return nil
	})
}

func (s *appService) UpdatePart(ctx context.Context, userID, orderID string, in PartInput) (*OrderResult, error) {
	p := partFromInput(in)
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return s.mutateOrder(ctx, userID, orderID, func(o *core.ServiceOrder) error {
		o.UpdatePart(p)
		return nil
	})
}

func (s *appService) RemovePart(ctx context.Context, userID, orderID, partID string) (*OrderResult, error) {
	return s.mutateOrder(ctx, userID, orderID, func(o *core.ServiceOrder) error {
		o.RemovePart(partID)
		return nil
	})
}

func (s *appService) SetPartStatus(ctx context.Context, userID, orderID, partID string, status core.PartStatus) (*OrderResult, error) {
	return s.mutateOrder(ctx, userID, orderID, func(o *core.ServiceOrder) error {
		o.SetPartStatus(partID, status)
		return nil
	})
}

func partFromInput(in PartInput) core.Part {
	return core.Part{
		ID:            in.ID,
		Name:          in.Name,
		Code:          in.Code,
		Type:          in.Type,
		Quantity:      in.Quantity,
		UnitSalePrice: in.UnitSalePrice,
		UnitCost:      in.UnitCost,
		Status:        in.Status,
		Supplier:      in.Supplier,
		ArrivalDate:   in.ArrivalDate,
	}
}

// ── Labor ────────────────────────────────────────────────────────────────

func (s *appService) AddLaborAllocation(ctx context.Context, userID, orderID string, in LaborInput) (*OrderResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ws, err := s.workspaceLocked(ctx, userID)
	if err != nil {
		return nil, err
	}
	o, ok := ws.orders[orderID]
	if !ok {
		return nil, nil
	}

	l := core.LaborAllocation{
		ID:             uuid.NewString(),
		CollaboratorID: in.CollaboratorID,
		WorkerName:     in.WorkerName,
		Role:           in.Role,
		Cost:           in.Cost,
		Date:           in.Date,
	}
	// Snapshot the worker identity at allocation time; the allocation
	// survives later edits or removal of the collaborator.
	if c, ok := ws.collaborators[in.CollaboratorID]; ok {
		l.WorkerName = c.Name
		l.Role = string(c.Role)
	}
	if err := l.Validate(); err != nil {
		return nil, err
	}

	o.AddLaborAllocation(l)
	s.persistOrder(userID, o, false)
	return &OrderResult{Order: o.Clone()}, nil
}

func (s *appService) RemoveLaborAllocation(ctx context.Context, userID, orderID, allocationID string) (*OrderResult, error) {
	return s.mutateOrder(ctx, userID, orderID, func(o *core.ServiceOrder) error {
		o.RemoveLaborAllocation(allocationID)
		return nil
	})
}

func (s *appService) AddOrderNote(ctx context.Context, userID, orderID, note string) (*OrderResult, error) {
	if note == "" {
		return nil, errors.New("note must not be empty")
	}
	return s.mutateOrder(ctx, userID, orderID, func(o *core.ServiceOrder) error {
		o.AddNote(note)
		return nil
	})
}

// ── Collaborators ────────────────────────────────────────────────────────

func (s *appService) ListCollaborators(ctx context.Context, userID string) (*CollaboratorListResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ws, err := s.workspaceLocked(ctx, userID)
	if err != nil {
		return nil, err
	}
	collaborators := make([]*core.Collaborator, 0, len(ws.collaborators))
	for _, c := range ws.collaborators {
		cp := *c
		collaborators = append(collaborators, &cp)
	}
	sort.Slice(collaborators, func(i, j int) bool { return collaborators[i].Name < collaborators[j].Name })
	return &CollaboratorListResult{Collaborators: collaborators}, nil
}

func (s *appService) AddCollaborator(ctx context.Context, userID string, in CollaboratorInput) (*core.Collaborator, error) {
	c := &core.Collaborator{
		ID:     in.ID,
		Name:   in.Name,
		Role:   in.Role,
		Phone:  in.Phone,
		Status: in.Status,
	}
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	if c.Status == "" {
		c.Status = core.CollaboratorActive
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	ws, err := s.workspaceLocked(ctx, userID)
	if err != nil {
		return nil, err
	}
	ws.collaborators[c.ID] = c
	s.persistCollaborator(userID, c, true)
	cp := *c
	return &cp, nil
}

func (s *appService) UpdateCollaborator(ctx context.Context, userID string, in CollaboratorInput) (*core.Collaborator, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ws, err := s.workspaceLocked(ctx, userID)
	if err != nil {
		return nil, err
	}
	c, ok := ws.collaborators[in.ID]
	if !ok {
		return nil, nil
	}

	next := *c
	next.Name = in.Name
	next.Role = in.Role
	next.Phone = in.Phone
	next.Status = in.Status
	if err := next.Validate(); err != nil {
		return nil, err
	}

	ws.collaborators[next.ID] = &next
	s.persistCollaborator(userID, &next, false)
	cp := next
	return &cp, nil
}

func (s *appService) RemoveCollaborator(ctx context.Context, userID, collaboratorID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	ws, err := s.workspaceLocked(ctx, userID)
	if err != nil {
		return err
	}
	if _, ok := ws.collaborators[collaboratorID]; !ok {
		return nil
	}
	// Orders are untouched: labor allocations keep the worker snapshot.
	delete(ws.collaborators, collaboratorID)

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
		defer cancel()
		if err := s.collaborators.Delete(ctx, userID, collaboratorID); err != nil {
			s.logger.Error().Err(err).
				Str("user_id", userID).
				Str("collaborator_id", collaboratorID).
				Msg("background collaborator delete failed")
		}
	}()
	return nil
}

func (s *appService) persistCollaborator(userID string, c *core.Collaborator, insert bool) {
	cp := *c
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
		defer cancel()

		var err error
		if insert {
			err = s.collaborators.Insert(ctx, userID, &cp)
		} else {
			err = s.collaborators.Update(ctx, userID, &cp)
		}
		if err != nil {
			s.logger.Error().Err(err).
				Str("user_id", userID).
				Str("collaborator_id", cp.ID).
				Msg("background collaborator persistence failed")
		}
	}()
}

// ── Reports ──────────────────────────────────────────────────────────────

func (s *appService) DashboardStats(ctx context.Context, userID string) (*core.DashboardStats, error) {
	orders, err := s.orderSlice(ctx, userID)
	if err != nil {
		return nil, err
	}
	stats := core.ComputeStats(orders)
	return &stats, nil
}

func (s *appService) Kanban(ctx context.Context, userID string) ([]core.KanbanColumn, error) {
	orders, err := s.orderSlice(ctx, userID)
	if err != nil {
		return nil, err
	}
	return core.KanbanBoard(orders), nil
}

func (s *appService) FinancialRollup(ctx context.Context, userID string, filter core.RollupFilter) (*core.RollupReport, error) {
	orders, err := s.orderSlice(ctx, userID)
	if err != nil {
		return nil, err
	}
	report := core.Rollup(orders, filter)
	return &report, nil
}

func (s *appService) CommissionReport(ctx context.Context, userID, collaboratorID, from, to string) (*core.CommissionReport, error) {
	orders, err := s.orderSlice(ctx, userID)
	if err != nil {
		return nil, err
	}
	report := core.Commissions(orders, collaboratorID, from, to)
	return &report, nil
}

// orderSlice returns a stable snapshot of the user's orders for reporting.
func (s *appService) orderSlice(ctx context.Context, userID string) ([]*core.ServiceOrder, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ws, err := s.workspaceLocked(ctx, userID)
	if err != nil {
		return nil, err
	}
	orders := make([]*core.ServiceOrder, 0, len(ws.orders))
	for _, o := range ws.orders {
		orders = append(orders, o.Clone())
	}
	sort.Slice(orders, func(i, j int) bool { return orders[i].ID < orders[j].ID })
	return orders, nil
}

// ── Advisory AI ──────────────────────────────────────────────────────────

func (s *appService) SuggestParts(ctx context.Context, damageDescription, vehicleModel string) ([]ai.PartSuggestion, error) {
	return s.advisor.SuggestParts(ctx, damageDescription, vehicleModel)
}

func (s *appService) EstimateWorkload(ctx context.Context, damageDescription, vehicleModel string) (*ai.WorkloadEstimate, error) {
	return s.advisor.EstimateWorkload(ctx, damageDescription, vehicleModel)
}

func (s *appService) AnalyzeOrderRisk(ctx context.Context, userID, orderID string) (*OrderResult, error) {
	// Snapshot the order first; the advisor call goes to the network and
	// must not run under the workspace lock.
	res, err := s.GetOrder(ctx, userID, orderID)
	if err != nil || res == nil {
		return res, err
	}

	summary, err := s.advisor.AnalyzeOrderRisk(ctx, res.Order)
	if err != nil {
		return nil, err
	}
	if summary == "" {
		return res, nil
	}

	return s.mutateOrder(ctx, userID, orderID, func(o *core.ServiceOrder) error {
		o.RiskAssessment = summary
		return nil
	})
}
