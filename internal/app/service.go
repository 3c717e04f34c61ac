package app

import (
	"context"
	"errors"

	"workon-intranet/internal/ai"
	"workon-intranet/internal/core"
)

// Sentinel errors adapters translate into transport-level responses.
var (
	// ErrInvalidCredentials — wrong email or password at primary login.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrReauthFailed — wrong password at the sensitive-area prompt. The
	// gate stays open for retry.
	ErrReauthFailed = errors.New("reauthentication failed")

	// ErrWorkspaceNotFound — no live workspace for the session id (logged
	// out, expired, or never existed). Late classifier responses land here
	// and are dropped.
	ErrWorkspaceNotFound = errors.New("workspace not found")

	// ErrBusy — a chat or reauth submission is already in flight for this
	// workspace. The second submission is rejected, not queued.
	ErrBusy = errors.New("request already in flight")

	// ErrPermissionDenied — the role check refused a data operation.
	ErrPermissionDenied = errors.New("permission denied")
)

// LoginResult is what a successful primary login hands back to the adapter.
type LoginResult struct {
	SessionID string
	UserID    int
	State     core.State
}

// ChatResult is the outcome of one chat turn: the assistant's reply text
// and the workspace state after any dispatched intent.
type ChatResult struct {
	Reply string
	State core.State
}

// ApplicationService is the single interface all UI adapters call. It owns
// the workspace lifecycle (construct at login, tear down at logout) and is
// the only path to the gate and dispatcher. Implementations contain no
// display logic.
type ApplicationService interface {
	// Login verifies credentials, creates the login session and its
	// workspace, and returns the session id that keys both.
	Login(ctx context.Context, email, password string) (*LoginResult, error)

	// Logout destroys the workspace. Idempotent.
	Logout(sessionID string)

	// WorkspaceState returns a snapshot of the live workspace.
	WorkspaceState(sessionID string) (*core.State, error)

	// Navigate runs a view change through the navigation gate.
	Navigate(sessionID, view string) (core.NavigateOutcome, *core.State, error)

	// Reauthenticate verifies the sensitive-area password. On success the
	// gate commits the legal view and replays any deferred modal; on a
	// wrong password the gate stays open for retry and ErrReauthFailed is
	// returned.
	Reauthenticate(ctx context.Context, sessionID, password string) (*core.State, error)

	// CancelReauth dismisses the sensitive-area prompt without access.
	CancelReauth(sessionID string) (*core.State, error)

	// ToggleDepartment flips one department panel on the dashboard.
	ToggleDepartment(sessionID, departmentID string) (*core.State, error)

	// CloseModal clears the open report modal.
	CloseModal(sessionID string) (*core.State, error)

	// Chat classifies the conversation and dispatches the resulting
	// intent. Transport failures leave the workspace untouched.
	Chat(ctx context.Context, sessionID string, history []ai.Message) (*ChatResult, error)

	// ListFinancial returns the monthly revenue/expense series.
	ListFinancial(ctx context.Context) ([]core.FinancialEntry, error)

	// FinancialReport returns the financial-detail report for a canonical
	// month name ("Atual" selects the latest month).
	FinancialReport(ctx context.Context, month string) (*core.FinancialReport, error)

	// ListDocuments returns the document library.
	ListDocuments(ctx context.Context) ([]core.Document, error)

	// ListLegal returns the legal case-tracking board. Admin/Jurídico only.
	ListLegal(ctx context.Context, sessionID string) ([]core.LegalRecord, error)

	// UpdateLegalStatus moves a record between board columns and audits
	// the move. Admin/Jurídico only.
	UpdateLegalStatus(ctx context.Context, sessionID string, recordID int, status string) (*core.LegalRecord, error)

	// LegalSummary aggregates the board for the legal-summary modal.
	// Admin/Jurídico only.
	LegalSummary(ctx context.Context, sessionID string) (*core.LegalSummary, error)

	// ListAudit returns the access trail. Admin/Jurídico only.
	ListAudit(ctx context.Context, sessionID string) ([]core.AuditEntry, error)

	// RecordAudit appends a trail entry attributed to the session's user.
	RecordAudit(ctx context.Context, sessionID, action, resource string) error

	// SearchDossier assembles employee dossiers matching the query and
	// audits the search. Admin/Jurídico only.
	SearchDossier(ctx context.Context, sessionID, query string) ([]core.Dossier, error)

	// ListClients returns the client-center accounts.
	ListClients(ctx context.Context) ([]core.Client, error)

	// GetClient returns one client-center account.
	GetClient(ctx context.Context, clientID string) (*core.Client, error)

	// ListUsers returns the user directory. Admin only.
	ListUsers(ctx context.Context, sessionID string) ([]core.User, error)

	// GetUser returns one user profile by id. A session may fetch its own
	// profile; fetching another user's requires the admin view.
	GetUser(ctx context.Context, sessionID string, userID int) (*core.User, error)
}
