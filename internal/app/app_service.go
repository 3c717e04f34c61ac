package app

import (
	"context"
	"fmt"
	"log"

	"workon-intranet/internal/ai"
	"workon-intranet/internal/core"

	"github.com/google/uuid"
)

type appService struct {
	users      core.UserService
	financial  core.FinancialService
	documents  core.DocumentService
	legal      core.LegalService
	audit      core.AuditService
	clients    core.ClientService
	dossiers   core.DossierService
	classifier *ai.Classifier
	workspaces *workspaceStore
}

// NewAppService constructs an appService that satisfies ApplicationService
// and starts the workspace purge loop. Cancelling ctx stops the loop.
func NewAppService(
	ctx context.Context,
	users core.UserService,
	financial core.FinancialService,
	documents core.DocumentService,
	legal core.LegalService,
	audit core.AuditService,
	clients core.ClientService,
	dossiers core.DossierService,
	classifier *ai.Classifier,
) ApplicationService {
	s := &appService{
		users:      users,
		financial:  financial,
		documents:  documents,
		legal:      legal,
		audit:      audit,
		clients:    clients,
		dossiers:   dossiers,
		classifier: classifier,
		workspaces: newWorkspaceStore(),
	}
	s.workspaces.startPurge(ctx)
	return s
}

// ── Session lifecycle ─────────────────────────────────────────────────────────

func (s *appService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil || !user.CheckPassword(password) {
		return nil, ErrInvalidCredentials
	}

	sessionID := uuid.NewString()
	session := core.NewSession(user.Email, user.DisplayName, user.Role)
	ws := core.NewWorkspace(session)
	s.workspaces.put(sessionID, ws)

	if err := s.audit.Record(ctx, user.Email, "login", "auth"); err != nil {
		log.Printf("audit: %v", err)
	}

	return &LoginResult{SessionID: sessionID, UserID: user.ID, State: ws.State()}, nil
}

func (s *appService) Logout(sessionID string) {
	s.workspaces.delete(sessionID)
}

func (s *appService) WorkspaceState(sessionID string) (*core.State, error) {
	ws, ok := s.workspaces.get(sessionID)
	if !ok {
		return nil, ErrWorkspaceNotFound
	}
	state := ws.State()
	return &state, nil
}

// ── Gate operations ───────────────────────────────────────────────────────────

func (s *appService) Navigate(sessionID, view string) (core.NavigateOutcome, *core.State, error) {
	ws, ok := s.workspaces.get(sessionID)
	if !ok {
		return "", nil, ErrWorkspaceNotFound
	}
	outcome := ws.RequestNavigate(core.NormalizeView(view))
	state := ws.State()
	return outcome, &state, nil
}

func (s *appService) Reauthenticate(ctx context.Context, sessionID, password string) (*core.State, error) {
	ws, ok := s.workspaces.get(sessionID)
	if !ok {
		return nil, ErrWorkspaceNotFound
	}
	if !ws.TryBeginRequest() {
		return nil, ErrBusy
	}
	defer ws.EndRequest()

	email := ws.State().Session.Email
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil || !user.CheckPassword(password) {
		ws.ReauthFailed()
		return nil, ErrReauthFailed
	}

	ws.ReauthSucceeded()
	if err := s.audit.Record(ctx, email, "reauth", "legal"); err != nil {
		log.Printf("audit: %v", err)
	}

	state := ws.State()
	return &state, nil
}

func (s *appService) CancelReauth(sessionID string) (*core.State, error) {
	ws, ok := s.workspaces.get(sessionID)
	if !ok {
		return nil, ErrWorkspaceNotFound
	}
	ws.CancelReauth()
	state := ws.State()
	return &state, nil
}

// ── Workspace operations ──────────────────────────────────────────────────────

func (s *appService) ToggleDepartment(sessionID, departmentID string) (*core.State, error) {
	ws, ok := s.workspaces.get(sessionID)
	if !ok {
		return nil, ErrWorkspaceNotFound
	}
	ws.ToggleDepartment(departmentID)
	state := ws.State()
	return &state, nil
}

func (s *appService) CloseModal(sessionID string) (*core.State, error) {
	ws, ok := s.workspaces.get(sessionID)
	if !ok {
		return nil, ErrWorkspaceNotFound
	}
	ws.CloseModal()
	state := ws.State()
	return &state, nil
}

func (s *appService) Chat(ctx context.Context, sessionID string, history []ai.Message) (*ChatResult, error) {
	ws, ok := s.workspaces.get(sessionID)
	if !ok {
		return nil, ErrWorkspaceNotFound
	}
	if !ws.TryBeginRequest() {
		return nil, ErrBusy
	}
	defer ws.EndRequest()

	reply, err := s.classifier.Classify(ctx, history)
	if err != nil {
		// Transport failure: surface it, mutate nothing.
		return nil, fmt.Errorf("classify: %w", err)
	}

	// The user may have logged out while the classifier was in flight; a
	// late reply must not write anywhere.
	if _, ok := s.workspaces.get(sessionID); !ok {
		return nil, ErrWorkspaceNotFound
	}

	ws.Dispatch(reply.Intent)
	return &ChatResult{Reply: reply.Text, State: ws.State()}, nil
}

// ── Data operations ───────────────────────────────────────────────────────────

func (s *appService) ListFinancial(ctx context.Context) ([]core.FinancialEntry, error) {
	return s.financial.ListMonthly(ctx)
}

func (s *appService) FinancialReport(ctx context.Context, month string) (*core.FinancialReport, error) {
	return s.financial.MonthlyReport(ctx, core.NormalizeMonth(month))
}

func (s *appService) ListDocuments(ctx context.Context) ([]core.Document, error) {
	return s.documents.List(ctx)
}

func (s *appService) ListLegal(ctx context.Context, sessionID string) ([]core.LegalRecord, error) {
	if err := s.requireView(sessionID, core.ViewLegal); err != nil {
		return nil, err
	}
	return s.legal.List(ctx)
}

func (s *appService) UpdateLegalStatus(ctx context.Context, sessionID string, recordID int, status string) (*core.LegalRecord, error) {
	state, err := s.sessionState(sessionID)
	if err != nil {
		return nil, err
	}
	if !core.Allows(state.Session.Role, core.ViewLegal) {
		return nil, ErrPermissionDenied
	}

	record, err := s.legal.UpdateStatus(ctx, recordID, core.LegalStatus(status), state.Session.Email)
	if err != nil {
		return nil, err
	}

	if err := s.audit.Record(ctx, state.Session.Email, "legal_status_update", fmt.Sprintf("legal/%d", recordID)); err != nil {
		log.Printf("audit: %v", err)
	}
	return record, nil
}

func (s *appService) LegalSummary(ctx context.Context, sessionID string) (*core.LegalSummary, error) {
	if err := s.requireView(sessionID, core.ViewLegal); err != nil {
		return nil, err
	}
	return s.legal.Summary(ctx)
}

func (s *appService) ListAudit(ctx context.Context, sessionID string) ([]core.AuditEntry, error) {
	if err := s.requireView(sessionID, core.ViewLegal); err != nil {
		return nil, err
	}
	return s.audit.List(ctx)
}

func (s *appService) RecordAudit(ctx context.Context, sessionID, action, resource string) error {
	state, err := s.sessionState(sessionID)
	if err != nil {
		return err
	}
	return s.audit.Record(ctx, state.Session.Email, action, resource)
}

func (s *appService) SearchDossier(ctx context.Context, sessionID, query string) ([]core.Dossier, error) {
	state, err := s.sessionState(sessionID)
	if err != nil {
		return nil, err
	}
	if !core.Allows(state.Session.Role, core.ViewLegal) {
		return nil, ErrPermissionDenied
	}

	dossiers, err := s.dossiers.Search(ctx, query)
	if err != nil {
		return nil, err
	}

	if err := s.audit.Record(ctx, state.Session.Email, "dossier_search", query); err != nil {
		log.Printf("audit: %v", err)
	}
	return dossiers, nil
}

func (s *appService) ListClients(ctx context.Context) ([]core.Client, error) {
	return s.clients.List(ctx)
}

func (s *appService) GetClient(ctx context.Context, clientID string) (*core.Client, error) {
	return s.clients.GetByID(ctx, clientID)
}

func (s *appService) ListUsers(ctx context.Context, sessionID string) ([]core.User, error) {
	if err := s.requireView(sessionID, core.ViewAdmin); err != nil {
		return nil, err
	}
	return s.users.List(ctx)
}

func (s *appService) GetUser(ctx context.Context, sessionID string, userID int) (*core.User, error) {
	state, err := s.sessionState(sessionID)
	if err != nil {
		return nil, err
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	// Own profile is always visible; other profiles need the admin view.
	if user.Email != state.Session.Email && !core.Allows(state.Session.Role, core.ViewAdmin) {
		return nil, ErrPermissionDenied
	}
	return user, nil
}

// ── Helpers ───────────────────────────────────────────────────────────────────

func (s *appService) sessionState(sessionID string) (*core.State, error) {
	ws, ok := s.workspaces.get(sessionID)
	if !ok {
		return nil, ErrWorkspaceNotFound
	}
	state := ws.State()
	return &state, nil
}

// requireView enforces a role check through the permission evaluator.
func (s *appService) requireView(sessionID string, view core.View) error {
	state, err := s.sessionState(sessionID)
	if err != nil {
		return err
	}
	if !core.Allows(state.Session.Role, view) {
		return ErrPermissionDenied
	}
	return nil
}
