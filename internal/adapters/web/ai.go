package web

import "net/http"

// suggestParts handles POST /api/ai/suggest-parts. Suggestions are advisory
// and only ever pre-fill the part form.
func (h *Handler) suggestParts(w http.ResponseWriter, r *http.Request) {
	var req struct {
		DamageDescription string `json:"damage_description"`
		VehicleModel      string `json:"vehicle_model"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.DamageDescription == "" {
		writeError(w, r, "damage_description is required", "BAD_REQUEST", http.StatusBadRequest)
		return
	}

	suggestions, err := h.svc.SuggestParts(r.Context(), req.DamageDescription, req.VehicleModel)
	if err != nil {
		writeError(w, r, "part suggestion failed", "INTERNAL_ERROR", http.StatusInternalServerError)
		return
	}
	type response struct {
		Suggestions any `json:"suggestions"`
	}
	writeJSON(w, response{Suggestions: suggestions})
}

// estimateWorkload handles POST /api/ai/estimate.
func (h *Handler) estimateWorkload(w http.ResponseWriter, r *http.Request) {
	var req struct {
		DamageDescription string `json:"damage_description"`
		VehicleModel      string `json:"vehicle_model"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.DamageDescription == "" {
		writeError(w, r, "damage_description is required", "BAD_REQUEST", http.StatusBadRequest)
		return
	}

	estimate, err := h.svc.EstimateWorkload(r.Context(), req.DamageDescription, req.VehicleModel)
	if err != nil {
		writeError(w, r, "workload estimate failed", "INTERNAL_ERROR", http.StatusInternalServerError)
		return
	}
	writeJSON(w, estimate)
}

// analyzeOrderRisk handles POST /api/orders/{id}/risk — runs the advisor
// over the order and stores the summary on it.
func (h *Handler) analyzeOrderRisk(w http.ResponseWriter, r *http.Request) {
	res, err := h.svc.AnalyzeOrderRisk(r.Context(), currentUserID(r), orderID(r))
	writeOrderResult(w, r, res, err)
}
