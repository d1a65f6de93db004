package web

import (
	"net/http"

	"bodyshop-manager/internal/app"
	"bodyshop-manager/internal/core"

	"github.com/go-chi/chi/v5"
)

// collaboratorRequest is the JSON body for collaborator add/update.
type collaboratorRequest struct {
	Name   string                  `json:"name"`
	Role   core.CollaboratorRole   `json:"role"`
	Phone  string                  `json:"phone"`
	Status core.CollaboratorStatus `json:"status"`
}

// listCollaborators handles GET /api/collaborators.
func (h *Handler) listCollaborators(w http.ResponseWriter, r *http.Request) {
	result, err := h.svc.ListCollaborators(r.Context(), currentUserID(r))
	if err != nil {
		writeError(w, r, "failed to load collaborators", "INTERNAL_ERROR", http.StatusInternalServerError)
		return
	}
	writeJSON(w, result)
}

// addCollaborator handles POST /api/collaborators.
func (h *Handler) addCollaborator(w http.ResponseWriter, r *http.Request) {
	var req collaboratorRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	c, err := h.svc.AddCollaborator(r.Context(), currentUserID(r), app.CollaboratorInput{
		Name:   req.Name,
		Role:   req.Role,
		Phone:  req.Phone,
		Status: req.Status,
	})
	if err != nil {
		writeError(w, r, err.Error(), "BAD_REQUEST", http.StatusBadRequest)
		return
	}
	writeJSONStatus(w, http.StatusCreated, c)
}

// updateCollaborator handles PUT /api/collaborators/{id}.
func (h *Handler) updateCollaborator(w http.ResponseWriter, r *http.Request) {
	var req collaboratorRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	c, err := h.svc.UpdateCollaborator(r.Context(), currentUserID(r), app.CollaboratorInput{
		ID:     chi.URLParam(r, "id"),
		Name:   req.Name,
		Role:   req.Role,
		Phone:  req.Phone,
		Status: req.Status,
	})
	if err != nil {
		writeError(w, r, err.Error(), "BAD_REQUEST", http.StatusBadRequest)
		return
	}
	if c == nil {
		writeError(w, r, "collaborator not found", "NOT_FOUND", http.StatusNotFound)
		return
	}
	writeJSON(w, c)
}

// removeCollaborator handles DELETE /api/collaborators/{id}.
func (h *Handler) removeCollaborator(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.RemoveCollaborator(r.Context(), currentUserID(r), chi.URLParam(r, "id")); err != nil {
		writeError(w, r, "failed to delete collaborator", "INTERNAL_ERROR", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
