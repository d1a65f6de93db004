package web

import (
	"net/http"

	"bodyshop-manager/internal/app"
	"bodyshop-manager/internal/core"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
)

// orderRequest is the JSON body for creating or updating a service order.
// decimal fields accept both JSON numbers and strings.
type orderRequest struct {
	EntryDate            string          `json:"entry_date"`
	DeliveryForecast     string          `json:"delivery_forecast"`
	Client               core.Client     `json:"client"`
	Vehicle              core.Vehicle    `json:"vehicle"`
	Description          string          `json:"description"`
	TechnicalResponsible string          `json:"technical_responsible"`
	ServicesTotal        decimal.Decimal `json:"services_total"`
}

// listOrders handles GET /api/orders.
func (h *Handler) listOrders(w http.ResponseWriter, r *http.Request) {
	result, err := h.svc.ListOrders(r.Context(), currentUserID(r))
	if err != nil {
		writeError(w, r, "failed to load orders", "INTERNAL_ERROR", http.StatusInternalServerError)
		return
	}
	writeJSON(w, result)
}

// getOrder handles GET /api/orders/{id}.
func (h *Handler) getOrder(w http.ResponseWriter, r *http.Request) {
	res, err := h.svc.GetOrder(r.Context(), currentUserID(r), orderID(r))
	if err != nil {
		writeError(w, r, "failed to load order", "INTERNAL_ERROR", http.StatusInternalServerError)
		return
	}
	if res == nil {
		writeError(w, r, "order not found", "NOT_FOUND", http.StatusNotFound)
		return
	}
	writeJSON(w, res)
}

// createOrder handles POST /api/orders.
func (h *Handler) createOrder(w http.ResponseWriter, r *http.Request) {
	var req orderRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	res, err := h.svc.CreateOrder(r.Context(), currentUserID(r), app.CreateOrderRequest{
		EntryDate:            req.EntryDate,
		DeliveryForecast:     req.DeliveryForecast,
		Client:               req.Client,
		Vehicle:              req.Vehicle,
		Description:          req.Description,
		TechnicalResponsible: req.TechnicalResponsible,
		ServicesTotal:        req.ServicesTotal,
	})
	if err != nil {
		writeError(w, r, err.Error(), "BAD_REQUEST", http.StatusBadRequest)
		return
	}
	writeJSONStatus(w, http.StatusCreated, res)
}

// updateOrder handles PUT /api/orders/{id}.
func (h *Handler) updateOrder(w http.ResponseWriter, r *http.Request) {
	var req orderRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	res, err := h.svc.UpdateOrder(r.Context(), currentUserID(r), app.UpdateOrderRequest{
		OrderID:              orderID(r),
		EntryDate:            req.EntryDate,
		DeliveryForecast:     req.DeliveryForecast,
		Client:               req.Client,
		Vehicle:              req.Vehicle,
		Description:          req.Description,
		TechnicalResponsible: req.TechnicalResponsible,
		ServicesTotal:        req.ServicesTotal,
	})
	writeOrderResult(w, r, res, err)
}

// deleteOrder handles DELETE /api/orders/{id}.
func (h *Handler) deleteOrder(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.RemoveOrder(r.Context(), currentUserID(r), orderID(r)); err != nil {
		writeError(w, r, "failed to delete order", "INTERNAL_ERROR", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// setOrderStatus handles POST /api/orders/{id}/status.
func (h *Handler) setOrderStatus(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Status core.OrderStatus `json:"status"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	res, err := h.svc.SetOrderStatus(r.Context(), currentUserID(r), orderID(r), req.Status)
	writeOrderResult(w, r, res, err)
}

// addOrderNote handles POST /api/orders/{id}/notes.
func (h *Handler) addOrderNote(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Note string `json:"note"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	res, err := h.svc.AddOrderNote(r.Context(), currentUserID(r), orderID(r), req.Note)
	writeOrderResult(w, r, res, err)
}

// ── Parts ────────────────────────────────────────────────────────────────

// partRequest is the JSON body for part add/update.
type partRequest struct {
	Name          string          `json:"name"`
	Code          string          `json:"code"`
	Type          core.PartType   `json:"type"`
	Quantity      int             `json:"quantity"`
	UnitSalePrice decimal.Decimal `json:"unit_sale_price"`
	UnitCost      decimal.Decimal `json:"unit_cost"`
	Status        core.PartStatus `json:"status"`
	Supplier      string          `json:"supplier"`
	ArrivalDate   string          `json:"arrival_date"`
}

func (req partRequest) toInput(id string) app.PartInput {
	return app.PartInput{
		ID:            id,
		Name:          req.Name,
		Code:          req.Code,
		Type:          req.Type,
		Quantity:      req.Quantity,
		UnitSalePrice: req.UnitSalePrice,
		UnitCost:      req.UnitCost,
		Status:        req.Status,
		Supplier:      req.Supplier,
		ArrivalDate:   req.ArrivalDate,
	}
}

// addPart handles POST /api/orders/{id}/parts.
func (h *Handler) addPart(w http.ResponseWriter, r *http.Request) {
	var req partRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	res, err := h.svc.AddPart(r.Context(), currentUserID(r), orderID(r), req.toInput(""))
	writeOrderResult(w, r, res, err)
}

// updatePart handles PUT /api/orders/{id}/parts/{partID}.
func (h *Handler) updatePart(w http.ResponseWriter, r *http.Request) {
	var req partRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	res, err := h.svc.UpdatePart(r.Context(), currentUserID(r), orderID(r), req.toInput(chi.URLParam(r, "partID")))
	writeOrderResult(w, r, res, err)
}

// removePart handles DELETE /api/orders/{id}/parts/{partID}.
func (h *Handler) removePart(w http.ResponseWriter, r *http.Request) {
	res, err := h.svc.RemovePart(r.Context(), currentUserID(r), orderID(r), chi.URLParam(r, "partID"))
	writeOrderResult(w, r, res, err)
}

// setPartStatus handles POST /api/orders/{id}/parts/{partID}/status.
func (h *Handler) setPartStatus(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Status core.PartStatus `json:"status"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	res, err := h.svc.SetPartStatus(r.Context(), currentUserID(r), orderID(r), chi.URLParam(r, "partID"), req.Status)
	writeOrderResult(w, r, res, err)
}

// ── Labor ────────────────────────────────────────────────────────────────

// addLaborAllocation handles POST /api/orders/{id}/labor.
func (h *Handler) addLaborAllocation(w http.ResponseWriter, r *http.Request) {
	var req struct {
		CollaboratorID string          `json:"collaborator_id"`
		WorkerName     string          `json:"worker_name"`
		Role           string          `json:"role"`
		Cost           decimal.Decimal `json:"cost"`
		Date           string          `json:"date"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	res, err := h.svc.AddLaborAllocation(r.Context(), currentUserID(r), orderID(r), app.LaborInput{
		CollaboratorID: req.CollaboratorID,
		WorkerName:     req.WorkerName,
		Role:           req.Role,
		Cost:           req.Cost,
		Date:           req.Date,
	})
	writeOrderResult(w, r, res, err)
}

// removeLaborAllocation handles DELETE /api/orders/{id}/labor/{allocationID}.
func (h *Handler) removeLaborAllocation(w http.ResponseWriter, r *http.Request) {
	res, err := h.svc.RemoveLaborAllocation(r.Context(), currentUserID(r), orderID(r), chi.URLParam(r, "allocationID"))
	writeOrderResult(w, r, res, err)
}
