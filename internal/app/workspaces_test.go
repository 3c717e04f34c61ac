package app

import (
	"testing"
	"time"

	"workon-intranet/internal/core"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWorkspaceStore(t *testing.T) {
	store := newWorkspaceStore()
	ws := core.NewWorkspace(core.NewSession("ana@workon.com", "Ana", core.RoleAdmin))

	_, ok := store.get("missing")
	assert.False(t, ok)

	store.put("sess-1", ws)
	got, ok := store.get("sess-1")
	require.True(t, ok)
	assert.Same(t, ws, got)

	store.delete("sess-1")
	_, ok = store.get("sess-1")
	assert.False(t, ok, "logout removes the workspace")
}

func TestWorkspaceStore_IdleExpiry(t *testing.T) {
	store := newWorkspaceStore()
	store.put("sess-1", core.NewWorkspace(core.NewSession("ana@workon.com", "Ana", core.RoleAdmin)))

	// Backdate the entry past the TTL instead of waiting.
	store.mu.Lock()
	store.entries["sess-1"].lastSeen = time.Now().Add(-workspaceTTL - time.Minute)
	store.mu.Unlock()

	_, ok := store.get("sess-1")
	assert.False(t, ok)

	store.mu.Lock()
	_, still := store.entries["sess-1"]
	store.mu.Unlock()
	assert.False(t, still, "expired entries are evicted on access")
}

func TestWorkspaceStore_Purge(t *testing.T) {
	store := newWorkspaceStore()
	store.put("fresh", core.NewWorkspace(core.NewSession("ana@workon.com", "Ana", core.RoleAdmin)))
	store.put("stale", core.NewWorkspace(core.NewSession("carlos@workon.com", "Carlos", core.RoleCollaborator)))

	store.mu.Lock()
	store.entries["stale"].lastSeen = time.Now().Add(-workspaceTTL - time.Minute)
	store.mu.Unlock()

	store.purge()

	store.mu.Lock()
	_, fresh := store.entries["fresh"]
	_, stale := store.entries["stale"]
	store.mu.Unlock()
	assert.True(t, fresh)
	assert.False(t, stale)
}

func TestWorkspaceStore_GetRefreshesTimer(t *testing.T) {
	store := newWorkspaceStore()
	store.put("sess-1", core.NewWorkspace(core.NewSession("ana@workon.com", "Ana", core.RoleAdmin)))

	store.mu.Lock()
	store.entries["sess-1"].lastSeen = time.Now().Add(-workspaceTTL + time.Minute)
	store.mu.Unlock()

	_, ok := store.get("sess-1")
	require.True(t, ok)

	store.mu.Lock()
	seen := store.entries["sess-1"].lastSeen
	store.mu.Unlock()
	assert.WithinDuration(t, time.Now(), seen, time.Second)
}
