package app

import (
	"context"
	"errors"
	"testing"

	"workon-intranet/internal/core"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// fakeUserService serves a fixed directory keyed by email.
type fakeUserService struct {
	byEmail map[string]*core.User
}

func (f *fakeUserService) GetByEmail(_ context.Context, email string) (*core.User, error) {
	u, ok := f.byEmail[email]
	if !ok {
		return nil, errors.New("user not found")
	}
	return u, nil
}

func (f *fakeUserService) GetByID(_ context.Context, userID int) (*core.User, error) {
	for _, u := range f.byEmail {
		if u.ID == userID {
			return u, nil
		}
	}
	return nil, errors.New("user not found")
}

func (f *fakeUserService) List(_ context.Context) ([]core.User, error) {
	out := make([]core.User, 0, len(f.byEmail))
	for _, u := range f.byEmail {
		out = append(out, *u)
	}
	return out, nil
}

// fakeAuditService records entries in memory.
type fakeAuditService struct {
	entries []core.AuditEntry
}

func (f *fakeAuditService) List(_ context.Context) ([]core.AuditEntry, error) {
	return f.entries, nil
}

func (f *fakeAuditService) Record(_ context.Context, userEmail, action, resource string) error {
	f.entries = append(f.entries, core.AuditEntry{UserEmail: userEmail, Action: action, Resource: resource})
	return nil
}

func newTestService(t *testing.T) (*appService, *fakeAuditService) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("workon123"), bcrypt.MinCost)
	require.NoError(t, err)

	users := &fakeUserService{byEmail: map[string]*core.User{
		"ana@workon.com": {
			ID: 1, Email: "ana@workon.com", DisplayName: "Ana",
			PasswordHash: string(hash), Role: core.RoleAdmin, IsActive: true,
		},
		"carlos@workon.com": {
			ID: 2, Email: "carlos@workon.com", DisplayName: "Carlos",
			PasswordHash: string(hash), Role: core.RoleCollaborator, IsActive: true,
		},
	}}
	audit := &fakeAuditService{}

	return &appService{
		users:      users,
		audit:      audit,
		workspaces: newWorkspaceStore(),
	}, audit
}

func login(t *testing.T, svc *appService, email string) *LoginResult {
	t.Helper()
	result, err := svc.Login(context.Background(), email, "workon123")
	require.NoError(t, err)
	return result
}

func TestLogin(t *testing.T) {
	svc, audit := newTestService(t)

	result := login(t, svc, "ana@workon.com")
	assert.NotEmpty(t, result.SessionID)
	assert.Equal(t, 1, result.UserID)
	assert.Equal(t, core.ViewDashboard, result.State.View)
	assert.True(t, result.State.Session.PrimaryAuthenticated)
	assert.False(t, result.State.Session.SensitiveAreaAuthenticated)

	require.Len(t, audit.entries, 1)
	assert.Equal(t, "login", audit.entries[0].Action)

	// Two logins for the same user get independent workspaces.
	second := login(t, svc, "ana@workon.com")
	assert.NotEqual(t, result.SessionID, second.SessionID)
}

func TestLogin_InvalidCredentials(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Login(context.Background(), "ana@workon.com", "errada")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(context.Background(), "ninguem@workon.com", "workon123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(context.Background(), "ana@workon.com", "")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogout(t *testing.T) {
	svc, _ := newTestService(t)
	result := login(t, svc, "carlos@workon.com")

	svc.Logout(result.SessionID)

	_, err := svc.WorkspaceState(result.SessionID)
	assert.ErrorIs(t, err, ErrWorkspaceNotFound)
}

func TestNavigate(t *testing.T) {
	svc, _ := newTestService(t)
	result := login(t, svc, "carlos@workon.com")

	outcome, state, err := svc.Navigate(result.SessionID, "configuracoes")
	require.NoError(t, err)
	assert.Equal(t, core.NavigateCommitted, outcome)
	assert.Equal(t, core.ViewSettings, state.View)

	outcome, state, err = svc.Navigate(result.SessionID, "juridico")
	require.NoError(t, err)
	assert.Equal(t, core.NavigateReauthRequired, outcome)
	assert.True(t, state.AwaitingReauth)
	assert.Equal(t, core.ViewSettings, state.View)

	_, _, err = svc.Navigate("sessao-inexistente", "dashboard")
	assert.ErrorIs(t, err, ErrWorkspaceNotFound)
}

func TestReauthenticate(t *testing.T) {
	svc, audit := newTestService(t)
	result := login(t, svc, "ana@workon.com")
	_, _, err := svc.Navigate(result.SessionID, "legal")
	require.NoError(t, err)

	t.Run("wrong password keeps prompt open", func(t *testing.T) {
		_, err := svc.Reauthenticate(context.Background(), result.SessionID, "errada")
		assert.ErrorIs(t, err, ErrReauthFailed)

		state, err := svc.WorkspaceState(result.SessionID)
		require.NoError(t, err)
		assert.True(t, state.AwaitingReauth)
		assert.False(t, state.Session.SensitiveAreaAuthenticated)
	})

	t.Run("correct password commits legal view", func(t *testing.T) {
		state, err := svc.Reauthenticate(context.Background(), result.SessionID, "workon123")
		require.NoError(t, err)
		assert.False(t, state.AwaitingReauth)
		assert.Equal(t, core.ViewLegal, state.View)
		assert.True(t, state.Session.SensitiveAreaAuthenticated)

		last := audit.entries[len(audit.entries)-1]
		assert.Equal(t, "reauth", last.Action)
	})
}

func TestReauthenticate_BusyWorkspace(t *testing.T) {
	svc, _ := newTestService(t)
	result := login(t, svc, "ana@workon.com")

	ws, ok := svc.workspaces.get(result.SessionID)
	require.True(t, ok)
	require.True(t, ws.TryBeginRequest())
	defer ws.EndRequest()

	_, err := svc.Reauthenticate(context.Background(), result.SessionID, "workon123")
	assert.ErrorIs(t, err, ErrBusy)
}

func TestCancelReauth(t *testing.T) {
	svc, _ := newTestService(t)
	result := login(t, svc, "ana@workon.com")
	_, _, err := svc.Navigate(result.SessionID, "legal")
	require.NoError(t, err)

	state, err := svc.CancelReauth(result.SessionID)
	require.NoError(t, err)
	assert.False(t, state.AwaitingReauth)
	assert.Equal(t, core.ViewDashboard, state.View)
}

func TestToggleDepartmentAndCloseModal(t *testing.T) {
	svc, _ := newTestService(t)
	result := login(t, svc, "carlos@workon.com")

	state, err := svc.ToggleDepartment(result.SessionID, "ti")
	require.NoError(t, err)
	assert.Equal(t, []string{"rh", "vendas", "ti"}, state.Departments)

	state, err = svc.CloseModal(result.SessionID)
	require.NoError(t, err)
	assert.Nil(t, state.Modal)
}

func TestLegalOperationsRequireLegalView(t *testing.T) {
	svc, _ := newTestService(t)
	result := login(t, svc, "carlos@workon.com")

	_, err := svc.ListLegal(context.Background(), result.SessionID)
	assert.ErrorIs(t, err, ErrPermissionDenied)

	_, err = svc.UpdateLegalStatus(context.Background(), result.SessionID, 1, "Ativo")
	assert.ErrorIs(t, err, ErrPermissionDenied)

	_, err = svc.SearchDossier(context.Background(), result.SessionID, "Maria")
	assert.ErrorIs(t, err, ErrPermissionDenied)
}

func TestListUsersRequiresAdmin(t *testing.T) {
	svc, _ := newTestService(t)

	collab := login(t, svc, "carlos@workon.com")
	_, err := svc.ListUsers(context.Background(), collab.SessionID)
	assert.ErrorIs(t, err, ErrPermissionDenied)

	admin := login(t, svc, "ana@workon.com")
	users, err := svc.ListUsers(context.Background(), admin.SessionID)
	require.NoError(t, err)
	assert.Len(t, users, 2)
}

func TestGetUser(t *testing.T) {
	svc, _ := newTestService(t)

	collab := login(t, svc, "carlos@workon.com")

	// Own profile is always visible.
	user, err := svc.GetUser(context.Background(), collab.SessionID, 2)
	require.NoError(t, err)
	assert.Equal(t, "carlos@workon.com", user.Email)

	// Someone else's profile needs the admin view.
	_, err = svc.GetUser(context.Background(), collab.SessionID, 1)
	assert.ErrorIs(t, err, ErrPermissionDenied)

	admin := login(t, svc, "ana@workon.com")
	user, err = svc.GetUser(context.Background(), admin.SessionID, 2)
	require.NoError(t, err)
	assert.Equal(t, "carlos@workon.com", user.Email)
}
