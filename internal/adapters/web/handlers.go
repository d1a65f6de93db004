package web

import (
	"encoding/json"
	"errors"
	"net/http"

	"bodyshop-manager/internal/app"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

// Handler holds the ApplicationService and the chi router.
type Handler struct {
	svc       app.ApplicationService
	router    chi.Router
	jwtSecret string
	logger    zerolog.Logger
}

// NewHandler creates and wires the chi router with all routes.
func NewHandler(svc app.ApplicationService, allowedOrigins, jwtSecret string, logger zerolog.Logger) http.Handler {
	h := &Handler{
		svc:       svc,
		jwtSecret: jwtSecret,
		logger:    logger,
	}

	r := chi.NewRouter()
	r.Use(RequestID)
	r.Use(Logger(logger))
	r.Use(Recoverer(logger))
	r.Use(CORS(allowedOrigins))

	// ── Public ────────────────────────────────────────────────────────────
	r.Get("/api/health", h.health)
	r.Group(func(r chi.Router) {
		r.Use(RequestBodyLimit(1 << 20)) // 1 MB
		r.Post("/api/auth/login", h.login)
		r.Post("/api/auth/logout", h.logout)
	})

	// ── Protected API routes (401 JSON if unauthenticated) ────────────────
	r.Group(func(r chi.Router) {
		r.Use(h.RequireAuth)
		r.Use(RequestBodyLimit(1 << 20)) // 1 MB

		r.Get("/api/auth/me", h.me)

		// Service orders
		r.Get("/api/orders", h.listOrders)
		r.Post("/api/orders", h.createOrder)
		r.Get("/api/orders/{id}", h.getOrder)
		r.Put("/api/orders/{id}", h.updateOrder)
		r.Delete("/api/orders/{id}", h.deleteOrder)
		r.Post("/api/orders/{id}/status", h.setOrderStatus)
		r.Post("/api/orders/{id}/notes", h.addOrderNote)

		// Parts on an order
		r.Post("/api/orders/{id}/parts", h.addPart)
		r.Put("/api/orders/{id}/parts/{partID}", h.updatePart)
		r.Delete("/api/orders/{id}/parts/{partID}", h.removePart)
		r.Post("/api/orders/{id}/parts/{partID}/status", h.setPartStatus)

		// Labor allocations on an order
		r.Post("/api/orders/{id}/labor", h.addLaborAllocation)
		r.Delete("/api/orders/{id}/labor/{allocationID}", h.removeLaborAllocation)

		// Collaborators
		r.Get("/api/collaborators", h.listCollaborators)
		r.Post("/api/collaborators", h.addCollaborator)
		r.Put("/api/collaborators/{id}", h.updateCollaborator)
		r.Delete("/api/collaborators/{id}", h.removeCollaborator)

		// Reports
		r.Get("/api/reports/dashboard", h.dashboardStats)
		r.Get("/api/reports/rollup", h.financialRollup)
		r.Get("/api/reports/commission", h.commissionReport)
		r.Get("/api/kanban", h.kanban)

		// Advisory AI
		r.Post("/api/ai/suggest-parts", h.suggestParts)
		r.Post("/api/ai/estimate", h.estimateWorkload)
		r.Post("/api/orders/{id}/risk", h.analyzeOrderRisk)
	})

	h.router = r
	return r
}

// health returns service status.
func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	type response struct {
		Status string `json:"status"`
	}
	writeJSON(w, response{Status: "ok"})
}

// currentUserID extracts the authenticated user id; RequireAuth guarantees
// it is present on protected routes.
func currentUserID(r *http.Request) string {
	claims := authFromContext(r.Context())
	if claims == nil {
		return ""
	}
	return claims.UserID
}

// orderID extracts the {id} URL parameter.
func orderID(r *http.Request) string {
	return chi.URLParam(r, "id")
}

// decodeJSON decodes the request body into v and returns false + writes an appropriate
// error response on failure. Returns HTTP 413 when the body exceeds the size limit set
// by RequestBodyLimit middleware; HTTP 400 for all other decode errors.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			writeError(w, r, "request body too large", "REQUEST_TOO_LARGE", http.StatusRequestEntityTooLarge)
			return false
		}
		writeError(w, r, "invalid JSON body: "+err.Error(), "BAD_REQUEST", http.StatusBadRequest)
		return false
	}
	return true
}

// writeOrderResult maps the app layer's (nil, nil) absence convention to 404.
func writeOrderResult(w http.ResponseWriter, r *http.Request, res *app.OrderResult, err error) {
	if err != nil {
		writeError(w, r, err.Error(), "BAD_REQUEST", http.StatusBadRequest)
		return
	}
	if res == nil {
		writeError(w, r, "order not found", "NOT_FOUND", http.StatusNotFound)
		return
	}
	writeJSON(w, res)
}
