package web

import (
	"net/http"

	"bodyshop-manager/internal/core"
)

// dashboardStats handles GET /api/reports/dashboard.
func (h *Handler) dashboardStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.svc.DashboardStats(r.Context(), currentUserID(r))
	if err != nil {
		writeError(w, r, "failed to compute dashboard stats", "INTERNAL_ERROR", http.StatusInternalServerError)
		return
	}
	writeJSON(w, stats)
}

// financialRollup handles GET /api/reports/rollup.
// Query parameters: status (all|open|finished), from, to (YYYY-MM-DD, inclusive).
func (h *Handler) financialRollup(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	status := core.StatusClass(q.Get("status"))
	switch status {
	case "", core.StatusClassAll:
		status = core.StatusClassAll
	case core.StatusClassOpen, core.StatusClassFinished:
	default:
		writeError(w, r, "status must be all, open or finished", "BAD_REQUEST", http.StatusBadRequest)
		return
	}

	from, to := q.Get("from"), q.Get("to")
	if from != "" && !core.ValidDate(from) {
		writeError(w, r, "from must be YYYY-MM-DD", "BAD_REQUEST", http.StatusBadRequest)
		return
	}
	if to != "" && !core.ValidDate(to) {
		writeError(w, r, "to must be YYYY-MM-DD", "BAD_REQUEST", http.StatusBadRequest)
		return
	}

	report, err := h.svc.FinancialRollup(r.Context(), currentUserID(r), core.RollupFilter{
		Status: status,
		From:   from,
		To:     to,
	})
	if err != nil {
		writeError(w, r, "failed to compute rollup", "INTERNAL_ERROR", http.StatusInternalServerError)
		return
	}
	writeJSON(w, report)
}

// commissionReport handles GET /api/reports/commission.
// Query parameters: collaborator_id (required), from, to (YYYY-MM-DD, inclusive).
func (h *Handler) commissionReport(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	collaboratorID := q.Get("collaborator_id")
	if collaboratorID == "" {
		writeError(w, r, "collaborator_id is required", "BAD_REQUEST", http.StatusBadRequest)
		return
	}
	from, to := q.Get("from"), q.Get("to")
	if from != "" && !core.ValidDate(from) {
		writeError(w, r, "from must be YYYY-MM-DD", "BAD_REQUEST", http.StatusBadRequest)
		return
	}
	if to != "" && !core.ValidDate(to) {
		writeError(w, r, "to must be YYYY-MM-DD", "BAD_REQUEST", http.StatusBadRequest)
		return
	}

	report, err := h.svc.CommissionReport(r.Context(), currentUserID(r), collaboratorID, from, to)
	if err != nil {
		writeError(w, r, "failed to compute commission report", "INTERNAL_ERROR", http.StatusInternalServerError)
		return
	}
	writeJSON(w, report)
}

// kanban handles GET /api/kanban.
func (h *Handler) kanban(w http.ResponseWriter, r *http.Request) {
	board, err := h.svc.Kanban(r.Context(), currentUserID(r))
	if err != nil {
		writeError(w, r, "failed to build kanban board", "INTERNAL_ERROR", http.StatusInternalServerError)
		return
	}
	type response struct {
		Columns []core.KanbanColumn `json:"columns"`
	}
	writeJSON(w, response{Columns: board})
}
