package web

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"workon-intranet/internal/app"
	"workon-intranet/internal/core"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
)

// dataError maps app-layer errors onto the JSON error envelope.
func dataError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, app.ErrWorkspaceNotFound):
		writeError(w, r, "session expired", "UNAUTHORIZED", http.StatusUnauthorized)
	case errors.Is(err, app.ErrPermissionDenied):
		writeError(w, r, "access denied for this role", "FORBIDDEN", http.StatusForbidden)
	default:
		writeError(w, r, err.Error(), "INTERNAL_ERROR", http.StatusInternalServerError)
	}
}

// ── Financial ─────────────────────────────────────────────────────────────────

type financialEntryResponse struct {
	Month   string          `json:"month"`
	Receita decimal.Decimal `json:"receita"`
	Despesa decimal.Decimal `json:"despesa"`
}

// listFinancial handles GET /api/financial.
func (h *Handler) listFinancial(w http.ResponseWriter, r *http.Request) {
	entries, err := h.svc.ListFinancial(r.Context())
	if err != nil {
		dataError(w, r, err)
		return
	}
	out := make([]financialEntryResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, financialEntryResponse{Month: e.Month, Receita: e.Receita, Despesa: e.Despesa})
	}
	writeJSON(w, out)
}

// financialReport handles GET /api/financial/report?month=.
func (h *Handler) financialReport(w http.ResponseWriter, r *http.Request) {
	report, err := h.svc.FinancialReport(r.Context(), r.URL.Query().Get("month"))
	if err != nil {
		writeError(w, r, "report not available for that month", "NOT_FOUND", http.StatusNotFound)
		return
	}

	type reportResponse struct {
		Month     string          `json:"month"`
		Receita   decimal.Decimal `json:"receita"`
		Despesa   decimal.Decimal `json:"despesa"`
		Saldo     decimal.Decimal `json:"saldo"`
		MargemPct decimal.Decimal `json:"margem_pct"`
	}
	writeJSON(w, reportResponse{
		Month:     report.Month,
		Receita:   report.Receita,
		Despesa:   report.Despesa,
		Saldo:     report.Saldo,
		MargemPct: report.MargemPct,
	})
}

// ── Documents ─────────────────────────────────────────────────────────────────

// listDocuments handles GET /api/documents.
func (h *Handler) listDocuments(w http.ResponseWriter, r *http.Request) {
	docs, err := h.svc.ListDocuments(r.Context())
	if err != nil {
		dataError(w, r, err)
		return
	}

	type documentResponse struct {
		ID         int    `json:"id"`
		Name       string `json:"name"`
		Department string `json:"department"`
		Category   string `json:"category"`
		Version    string `json:"version"`
		UploadedBy string `json:"uploaded_by"`
		UploadDate string `json:"upload_date"`
	}
	out := make([]documentResponse, 0, len(docs))
	for _, d := range docs {
		out = append(out, documentResponse{
			ID:         d.ID,
			Name:       d.Name,
			Department: d.Department,
			Category:   d.Category,
			Version:    d.Version,
			UploadedBy: d.UploadedBy,
			UploadDate: d.UploadDate.Format("2006-01-02"),
		})
	}
	writeJSON(w, out)
}

// ── Legal board ───────────────────────────────────────────────────────────────

type legalRecordResponse struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`
	Category  string `json:"category"`
	Status    string `json:"status"`
	RiskLevel string `json:"risk_level"`
	UpdatedBy string `json:"updated_by"`
	UpdatedAt string `json:"updated_at"`
}

func legalRecordResponseFrom(rec core.LegalRecord) legalRecordResponse {
	return legalRecordResponse{
		ID:        rec.ID,
		Name:      rec.Name,
		Category:  rec.Category,
		Status:    string(rec.Status),
		RiskLevel: rec.RiskLevel,
		UpdatedBy: rec.UpdatedBy,
		UpdatedAt: rec.UpdatedAt.Format(time.RFC3339),
	}
}

// listLegal handles GET /api/legal.
func (h *Handler) listLegal(w http.ResponseWriter, r *http.Request) {
	claims := authFromContext(r.Context())
	records, err := h.svc.ListLegal(r.Context(), claims.SessionID)
	if err != nil {
		dataError(w, r, err)
		return
	}
	out := make([]legalRecordResponse, 0, len(records))
	for _, rec := range records {
		out = append(out, legalRecordResponseFrom(rec))
	}
	writeJSON(w, out)
}

// updateLegalStatus handles PATCH /api/legal/{id} — a board column move.
func (h *Handler) updateLegalStatus(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, "invalid record id", "BAD_REQUEST", http.StatusBadRequest)
		return
	}

	var req struct {
		Status string `json:"status"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	if !core.ValidLegalStatus(core.LegalStatus(req.Status)) {
		writeError(w, r, "unknown status", "BAD_REQUEST", http.StatusBadRequest)
		return
	}

	claims := authFromContext(r.Context())
	record, err := h.svc.UpdateLegalStatus(r.Context(), claims.SessionID, id, req.Status)
	if err != nil {
		dataError(w, r, err)
		return
	}
	writeJSON(w, legalRecordResponseFrom(*record))
}

// legalSummary handles GET /api/legal/summary.
func (h *Handler) legalSummary(w http.ResponseWriter, r *http.Request) {
	claims := authFromContext(r.Context())
	summary, err := h.svc.LegalSummary(r.Context(), claims.SessionID)
	if err != nil {
		dataError(w, r, err)
		return
	}

	type summaryResponse struct {
		Total      int            `json:"total"`
		Active     int            `json:"active"`
		InReview   int            `json:"in_review"`
		Archived   int            `json:"archived"`
		ByCategory map[string]int `json:"by_category"`
	}
	writeJSON(w, summaryResponse{
		Total:      summary.Total,
		Active:     summary.Active,
		InReview:   summary.InReview,
		Archived:   summary.Archived,
		ByCategory: summary.ByCategory,
	})
}

// ── Audit ─────────────────────────────────────────────────────────────────────

// listAudit handles GET /api/audit.
func (h *Handler) listAudit(w http.ResponseWriter, r *http.Request) {
	claims := authFromContext(r.Context())
	entries, err := h.svc.ListAudit(r.Context(), claims.SessionID)
	if err != nil {
		dataError(w, r, err)
		return
	}

	type auditResponse struct {
		ID        int    `json:"id"`
		UserEmail string `json:"user_email"`
		Action    string `json:"action"`
		Resource  string `json:"resource"`
		CreatedAt string `json:"created_at"`
	}
	out := make([]auditResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, auditResponse{
			ID:        e.ID,
			UserEmail: e.UserEmail,
			Action:    e.Action,
			Resource:  e.Resource,
			CreatedAt: e.CreatedAt.Format(time.RFC3339),
		})
	}
	writeJSON(w, out)
}

// recordAudit handles POST /api/audit.
func (h *Handler) recordAudit(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Action   string `json:"action"`
		Resource string `json:"resource"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Action == "" {
		writeError(w, r, "action is required", "BAD_REQUEST", http.StatusBadRequest)
		return
	}

	claims := authFromContext(r.Context())
	if err := h.svc.RecordAudit(r.Context(), claims.SessionID, req.Action, req.Resource); err != nil {
		dataError(w, r, err)
		return
	}
	writeJSON(w, map[string]any{"ok": true})
}

// ── Dossier ───────────────────────────────────────────────────────────────────

// searchDossier handles GET /api/dossier/search?q=.
func (h *Handler) searchDossier(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	if query == "" {
		writeError(w, r, "q is required", "BAD_REQUEST", http.StatusBadRequest)
		return
	}

	claims := authFromContext(r.Context())
	dossiers, err := h.svc.SearchDossier(r.Context(), claims.SessionID, query)
	if err != nil {
		dataError(w, r, err)
		return
	}

	type occurrenceResponse struct {
		ID          int    `json:"id"`
		Type        string `json:"type"`
		Date        string `json:"date"`
		Description string `json:"description"`
	}
	type dossierDocResponse struct {
		ID   int    `json:"id"`
		Name string `json:"name"`
		Type string `json:"type"`
		Date string `json:"date"`
	}
	type dossierResponse struct {
		ID              string               `json:"id"`
		Name            string               `json:"name"`
		CPF             string               `json:"cpf"`
		JobTitle        string               `json:"job_title"`
		Department      string               `json:"department"`
		Status          string               `json:"status"`
		RiskLevel       string               `json:"risk_level"`
		AdmissionDate   string               `json:"admission_date"`
		TerminationDate string               `json:"termination_date,omitempty"`
		Occurrences     []occurrenceResponse `json:"occurrences"`
		Documents       []dossierDocResponse `json:"documents"`
	}

	out := make([]dossierResponse, 0, len(dossiers))
	for _, d := range dossiers {
		resp := dossierResponse{
			ID:            d.Employee.ID,
			Name:          d.Employee.Name,
			CPF:           d.Employee.CPF,
			JobTitle:      d.Employee.JobTitle,
			Department:    d.Employee.Department,
			Status:        d.Employee.Status,
			RiskLevel:     d.Employee.RiskLevel,
			AdmissionDate: d.Employee.AdmissionDate.Format("2006-01-02"),
			Occurrences:   []occurrenceResponse{},
			Documents:     []dossierDocResponse{},
		}
		if d.Employee.TerminationDate != nil {
			resp.TerminationDate = d.Employee.TerminationDate.Format("2006-01-02")
		}
		for _, o := range d.Occurrences {
			resp.Occurrences = append(resp.Occurrences, occurrenceResponse{
				ID:          o.ID,
				Type:        o.Type,
				Date:        o.Date.Format("2006-01-02"),
				Description: o.Description,
			})
		}
		for _, doc := range d.Documents {
			resp.Documents = append(resp.Documents, dossierDocResponse{
				ID:   doc.ID,
				Name: doc.Name,
				Type: doc.Type,
				Date: doc.Date.Format("2006-01-02"),
			})
		}
		out = append(out, resp)
	}
	writeJSON(w, out)
}

// ── Clients ───────────────────────────────────────────────────────────────────

type clientResponse struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	Segment      string          `json:"segment"`
	Status       string          `json:"status"`
	SellOut      decimal.Decimal `json:"sell_out"`
	ShareOfShelf decimal.Decimal `json:"share_of_shelf"`
	Ruptura      decimal.Decimal `json:"ruptura"`
	Visitas      int             `json:"visitas"`
	SKUsAtivos   int             `json:"skus_ativos"`
	LastUpdate   string          `json:"last_update"`
}

func clientResponseFrom(c core.Client) clientResponse {
	return clientResponse{
		ID:           c.ID,
		Name:         c.Name,
		Segment:      c.Segment,
		Status:       c.Status,
		SellOut:      c.SellOut,
		ShareOfShelf: c.ShareOfShelf,
		Ruptura:      c.Ruptura,
		Visitas:      c.Visitas,
		SKUsAtivos:   c.SKUsAtivos,
		LastUpdate:   c.LastUpdate.Format("2006-01-02"),
	}
}

// listClients handles GET /api/clients.
func (h *Handler) listClients(w http.ResponseWriter, r *http.Request) {
	clients, err := h.svc.ListClients(r.Context())
	if err != nil {
		dataError(w, r, err)
		return
	}
	out := make([]clientResponse, 0, len(clients))
	for _, c := range clients {
		out = append(out, clientResponseFrom(c))
	}
	writeJSON(w, out)
}

// getClient handles GET /api/clients/{id}.
func (h *Handler) getClient(w http.ResponseWriter, r *http.Request) {
	client, err := h.svc.GetClient(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, "client not found", "NOT_FOUND", http.StatusNotFound)
		return
	}
	writeJSON(w, clientResponseFrom(*client))
}

// ── Users ─────────────────────────────────────────────────────────────────────

type userResponse struct {
	ID          int    `json:"id"`
	Email       string `json:"email"`
	DisplayName string `json:"display_name"`
	Role        string `json:"role"`
	Department  string `json:"department"`
	IsActive    bool   `json:"is_active"`
}

func userResponseFrom(u core.User) userResponse {
	return userResponse{
		ID:          u.ID,
		Email:       u.Email,
		DisplayName: u.DisplayName,
		Role:        string(u.Role),
		Department:  u.Department,
		IsActive:    u.IsActive,
	}
}

// listUsers handles GET /api/users. Admin only.
func (h *Handler) listUsers(w http.ResponseWriter, r *http.Request) {
	claims := authFromContext(r.Context())
	users, err := h.svc.ListUsers(r.Context(), claims.SessionID)
	if err != nil {
		dataError(w, r, err)
		return
	}
	out := make([]userResponse, 0, len(users))
	for _, u := range users {
		out = append(out, userResponseFrom(u))
	}
	writeJSON(w, out)
}

// getUser handles GET /api/users/{id}. A user may always fetch their own
// profile; anyone else's requires the admin view.
func (h *Handler) getUser(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, "invalid user id", "BAD_REQUEST", http.StatusBadRequest)
		return
	}

	claims := authFromContext(r.Context())
	user, err := h.svc.GetUser(r.Context(), claims.SessionID, id)
	if err != nil {
		dataError(w, r, err)
		return
	}
	writeJSON(w, userResponseFrom(*user))
}
