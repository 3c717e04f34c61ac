package app

import (
	"context"
	"sync"
	"time"

	"workon-intranet/internal/core"
)

// workspaceTTL is how long an idle workspace survives without being
// touched. It comfortably exceeds the auth-token lifetime so a valid token
// never points at a purged workspace.
const workspaceTTL = 2 * time.Hour

type workspaceEntry struct {
	ws       *core.Workspace
	lastSeen time.Time
}

// workspaceStore is a thread-safe in-memory map of session id → workspace
// with idle expiry.
type workspaceStore struct {
	mu      sync.Mutex
	entries map[string]*workspaceEntry
}

func newWorkspaceStore() *workspaceStore {
	return &workspaceStore{entries: make(map[string]*workspaceEntry)}
}

func (s *workspaceStore) put(sessionID string, ws *core.Workspace) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[sessionID] = &workspaceEntry{ws: ws, lastSeen: time.Now()}
}

// get returns the workspace and refreshes its idle timer.
func (s *workspaceStore) get(sessionID string) (*core.Workspace, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[sessionID]
	if !ok {
		return nil, false
	}
	if time.Since(e.lastSeen) > workspaceTTL {
		delete(s.entries, sessionID)
		return nil, false
	}
	e.lastSeen = time.Now()
	return e.ws, true
}

func (s *workspaceStore) delete(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, sessionID)
}

// purge evicts every workspace idle past the TTL.
func (s *workspaceStore) purge() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, e := range s.entries {
		if time.Since(e.lastSeen) > workspaceTTL {
			delete(s.entries, id)
		}
	}
}

// startPurge starts a background goroutine that evicts idle workspaces
// every 10 minutes until ctx is cancelled.
func (s *workspaceStore) startPurge(ctx context.Context) {
	go func() {
		ticker := time.NewTicker(10 * time.Minute)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				s.purge()
			}
		}
	}()
}
