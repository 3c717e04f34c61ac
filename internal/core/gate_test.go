package core_test

import (
	"testing"

	"workon-intranet/internal/core"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newWorkspace(role core.Role) *core.Workspace {
	return core.NewWorkspace(core.NewSession("user@workon.com", "User", role))
}

func TestNewWorkspaceDefaults(t *testing.T) {
	st := newWorkspace(core.RoleCollaborator).State()

	assert.Equal(t, core.ViewDashboard, st.View)
	assert.False(t, st.AwaitingReauth)
	assert.Equal(t, []string{"rh", "vendas"}, st.Departments)
	assert.Nil(t, st.Modal)
	assert.False(t, st.Busy)
	assert.True(t, st.Session.PrimaryAuthenticated)
	assert.False(t, st.Session.SensitiveAreaAuthenticated)
}

func TestRequestNavigate_Allowed(t *testing.T) {
	ws := newWorkspace(core.RoleIntern)

	assert.Equal(t, core.NavigateCommitted, ws.RequestNavigate(core.ViewSettings))
	assert.Equal(t, core.ViewSettings, ws.State().View)

	assert.Equal(t, core.NavigateCommitted, ws.RequestNavigate(core.ViewClientCenter))
	assert.Equal(t, core.ViewClientCenter, ws.State().View)
}

func TestRequestNavigate_LegalOpensReauthPrompt(t *testing.T) {
	// The legal area demands a password confirmation even from roles the
	// permission evaluator would allow in.
	for _, role := range []core.Role{core.RoleAdmin, core.RoleLegal, core.RoleCollaborator} {
		ws := newWorkspace(role)

		got := ws.RequestNavigate(core.ViewLegal)
		assert.Equal(t, core.NavigateReauthRequired, got, "role %s", role)

		st := ws.State()
		assert.True(t, st.AwaitingReauth, "role %s", role)
		assert.Equal(t, core.ViewDashboard, st.View, "view must not change before reauth, role %s", role)
	}
}

func TestRequestNavigate_AdminRefusedSilently(t *testing.T) {
	ws := newWorkspace(core.RoleManager)

	assert.Equal(t, core.NavigateRefused, ws.RequestNavigate(core.ViewAdmin))

	st := ws.State()
	assert.Equal(t, core.ViewDashboard, st.View)
	assert.False(t, st.AwaitingReauth, "silent refusal must not open any prompt")
}

func TestRequestNavigate_Idempotent(t *testing.T) {
	ws := newWorkspace(core.RoleManager)

	ws.RequestNavigate(core.ViewDashboard)
	once := ws.State()
	ws.RequestNavigate(core.ViewDashboard)
	twice := ws.State()

	assert.Equal(t, once, twice)
}

func TestReauthSucceeded(t *testing.T) {
	ws := newWorkspace(core.RoleLegal)
	require.Equal(t, core.NavigateReauthRequired, ws.RequestNavigate(core.ViewLegal))

	ws.ReauthSucceeded()

	st := ws.State()
	assert.False(t, st.AwaitingReauth)
	assert.Equal(t, core.ViewLegal, st.View)
	assert.True(t, st.Session.SensitiveAreaAuthenticated)

	// The flag survives for the rest of the login: navigating away and back
	// commits directly with no second prompt.
	ws.RequestNavigate(core.ViewDashboard)
	assert.Equal(t, core.NavigateCommitted, ws.RequestNavigate(core.ViewLegal))
}

func TestReauthFailed_RetryInPlace(t *testing.T) {
	ws := newWorkspace(core.RoleAdmin)
	require.Equal(t, core.NavigateReauthRequired, ws.RequestNavigate(core.ViewLegal))

	ws.ReauthFailed()

	st := ws.State()
	assert.True(t, st.AwaitingReauth, "wrong password keeps the prompt open")
	assert.Equal(t, core.ViewDashboard, st.View)
	assert.False(t, st.Session.SensitiveAreaAuthenticated)
}

func TestCancelReauth(t *testing.T) {
	ws := newWorkspace(core.RoleAdmin)
	ws.RequestNavigate(core.ViewSettings)
	require.Equal(t, core.NavigateReauthRequired, ws.RequestNavigate(core.ViewLegal))

	ws.CancelReauth()

	st := ws.State()
	assert.False(t, st.AwaitingReauth)
	assert.Equal(t, core.ViewSettings, st.View, "cancel keeps the view the user was on")
	assert.False(t, st.Session.SensitiveAreaAuthenticated)
}

func TestToggleDepartment(t *testing.T) {
	ws := newWorkspace(core.RoleManager)

	assert.Equal(t, []string{"rh", "vendas", "ti"}, ws.ToggleDepartment("ti"))
	assert.Equal(t, []string{"vendas", "ti"}, ws.ToggleDepartment("rh"))
	assert.Equal(t, []string{"vendas", "ti", "rh"}, ws.ToggleDepartment("rh"))
	assert.Equal(t, []string{"vendas", "ti", "rh"}, ws.ToggleDepartment("marketing"), "unknown ids are ignored")
}

func TestTryBeginRequest(t *testing.T) {
	ws := newWorkspace(core.RoleCollaborator)

	assert.True(t, ws.TryBeginRequest())
	assert.False(t, ws.TryBeginRequest(), "second submission while busy is rejected")
	assert.True(t, ws.State().Busy)

	ws.EndRequest()
	assert.True(t, ws.TryBeginRequest())
	ws.EndRequest()
}
