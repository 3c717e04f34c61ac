package web

import (
	"encoding/json"
	"errors"
	"net/http"

	"workon-intranet/internal/app"

	"github.com/go-chi/chi/v5"
)

// Handler holds the ApplicationService and the chi router.
type Handler struct {
	svc       app.ApplicationService
	router    chi.Router
	jwtSecret string
}

// NewHandler creates and wires the chi router with all routes.
func NewHandler(svc app.ApplicationService, allowedOrigins, jwtSecret string) http.Handler {
	h := &Handler{
		svc:       svc,
		jwtSecret: jwtSecret,
	}

	r := chi.NewRouter()
	r.Use(RequestID)
	r.Use(Logger)
	r.Use(Recoverer)
	r.Use(CORS(allowedOrigins))

	// ── Public ────────────────────────────────────────────────────────────────
	r.Get("/api/health", h.health)
	r.Post("/api/auth/login", h.login)

	// ── Protected (401 JSON if unauthenticated) ──────────────────────────────
	r.Group(func(r chi.Router) {
		r.Use(h.RequireAuth)
		r.Use(RequestBodyLimit(1 << 20)) // 1 MB

		// Auth / session
		r.Post("/api/auth/logout", h.logout)
		r.Get("/api/auth/me", h.me)
		r.Post("/api/auth/reauth", h.reauth)
		r.Post("/api/auth/reauth/cancel", h.reauthCancel)

		// Workspace (view, gate, departments, modal)
		r.Get("/api/workspace", h.workspaceState)
		r.Post("/api/workspace/navigate", h.navigate)
		r.Post("/api/workspace/departments/toggle", h.toggleDepartment)
		r.Post("/api/workspace/modal/close", h.closeModal)

		// Chat assistant
		r.Post("/api/chat", h.chat)

		// Data
		r.Get("/api/financial", h.listFinancial)
		r.Get("/api/financial/report", h.financialReport)
		r.Get("/api/documents", h.listDocuments)
		r.Get("/api/legal", h.listLegal)
		r.Patch("/api/legal/{id}", h.updateLegalStatus)
		r.Get("/api/legal/summary", h.legalSummary)
		r.Get("/api/audit", h.listAudit)
		r.Post("/api/audit", h.recordAudit)
		r.Get("/api/dossier/search", h.searchDossier)
		r.Get("/api/clients", h.listClients)
		r.Get("/api/clients/{id}", h.getClient)
		r.Get("/api/users", h.listUsers)
		r.Get("/api/users/{id}", h.getUser)
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

// decodeJSON decodes the request body into v and writes an appropriate
// error response on failure. Returns HTTP 413 when the body exceeds the
// limit set by RequestBodyLimit; HTTP 400 for all other decode errors.
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
