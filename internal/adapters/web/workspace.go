package web

import (
	"errors"
	"net/http"

	"workon-intranet/internal/ai"
	"workon-intranet/internal/app"
	"workon-intranet/internal/core"
)

// workspaceResponse is the JSON shape of a workspace snapshot.
type workspaceResponse struct {
	View           string         `json:"view"`
	AwaitingReauth bool           `json:"awaiting_reauth"`
	Departments    []string       `json:"departments"`
	Modal          *modalResponse `json:"modal,omitempty"`
	Busy           bool           `json:"busy"`
}

type modalResponse struct {
	Title string `json:"title"`
	Kind  string `json:"report_kind"`
	Month string `json:"month,omitempty"`
}

func workspaceResponseFrom(state core.State) workspaceResponse {
	resp := workspaceResponse{
		View:           string(state.View),
		AwaitingReauth: state.AwaitingReauth,
		Departments:    state.Departments,
		Busy:           state.Busy,
	}
	if state.Modal != nil {
		resp.Modal = &modalResponse{
			Title: state.Modal.Title,
			Kind:  string(state.Modal.Kind),
			Month: state.Modal.Month,
		}
	}
	return resp
}

// workspaceState handles GET /api/workspace.
func (h *Handler) workspaceState(w http.ResponseWriter, r *http.Request) {
	claims := authFromContext(r.Context())
	state, err := h.svc.WorkspaceState(claims.SessionID)
	if err != nil {
		writeError(w, r, "session expired", "UNAUTHORIZED", http.StatusUnauthorized)
		return
	}
	writeJSON(w, workspaceResponseFrom(*state))
}

// navigate handles POST /api/workspace/navigate.
func (h *Handler) navigate(w http.ResponseWriter, r *http.Request) {
	var req struct {
		View string `json:"view"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}

	claims := authFromContext(r.Context())
	outcome, state, err := h.svc.Navigate(claims.SessionID, req.View)
	if err != nil {
		writeError(w, r, "session expired", "UNAUTHORIZED", http.StatusUnauthorized)
		return
	}

	type navigateResponse struct {
		Outcome   string            `json:"outcome"`
		Workspace workspaceResponse `json:"workspace"`
	}
	writeJSON(w, navigateResponse{
		Outcome:   string(outcome),
		Workspace: workspaceResponseFrom(*state),
	})
}

// toggleDepartment handles POST /api/workspace/departments/toggle.
func (h *Handler) toggleDepartment(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ID string `json:"id"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.ID == "" {
		writeError(w, r, "id is required", "BAD_REQUEST", http.StatusBadRequest)
		return
	}

	claims := authFromContext(r.Context())
	state, err := h.svc.ToggleDepartment(claims.SessionID, req.ID)
	if err != nil {
		writeError(w, r, "session expired", "UNAUTHORIZED", http.StatusUnauthorized)
		return
	}
	writeJSON(w, workspaceResponseFrom(*state))
}

// closeModal handles POST /api/workspace/modal/close.
func (h *Handler) closeModal(w http.ResponseWriter, r *http.Request) {
	claims := authFromContext(r.Context())
	state, err := h.svc.CloseModal(claims.SessionID)
	if err != nil {
		writeError(w, r, "session expired", "UNAUTHORIZED", http.StatusUnauthorized)
		return
	}
	writeJSON(w, workspaceResponseFrom(*state))
}

// chat handles POST /api/chat: one user message plus prior turns, answered
// with the assistant's reply and the workspace state after any dispatched
// intent. While a request is in flight, further submissions for the same
// workspace get 409 and change nothing.
func (h *Handler) chat(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Text    string `json:"text"`
		History []struct {
			Role string `json:"role"`
			Text string `json:"text"`
		} `json:"history"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Text == "" {
		writeError(w, r, "text is required", "BAD_REQUEST", http.StatusBadRequest)
		return
	}

	history := make([]ai.Message, 0, len(req.History)+1)
	for _, m := range req.History {
		history = append(history, ai.Message{Role: m.Role, Text: m.Text})
	}
	history = append(history, ai.Message{Role: "user", Text: req.Text})

	claims := authFromContext(r.Context())
	result, err := h.svc.Chat(r.Context(), claims.SessionID, history)
	switch {
	case errors.Is(err, app.ErrBusy):
		writeError(w, r, "a message is already being processed", "BUSY", http.StatusConflict)
		return
	case errors.Is(err, app.ErrWorkspaceNotFound):
		writeError(w, r, "session expired", "UNAUTHORIZED", http.StatusUnauthorized)
		return
	case err != nil:
		writeError(w, r, "o assistente está indisponível no momento, tente novamente", "AI_ERROR", http.StatusBadGateway)
		return
	}

	type chatResponse struct {
		Reply     string            `json:"reply"`
		Workspace workspaceResponse `json:"workspace"`
	}
	writeJSON(w, chatResponse{
		Reply:     result.Reply,
		Workspace: workspaceResponseFrom(result.State),
	})
}
