package core

// NavigateOutcome describes what the gate did with a navigation request.
type NavigateOutcome string

const (
	// NavigateCommitted — the view changed.
	NavigateCommitted NavigateOutcome = "committed"
	// NavigateReauthRequired — the legal area wants a password confirmation.
	NavigateReauthRequired NavigateOutcome = "reauth_required"
	// NavigateRefused — silent refusal, no view change and no prompt.
	NavigateRefused NavigateOutcome = "refused"
)

// RequestNavigate runs a navigation request through the permission evaluator
// and the sensitive-area gate. Allowed targets commit immediately; the legal
// view without a completed sensitive-area confirmation opens the reauth
// prompt instead; any other denied view is refused silently. Re-navigating
// to the current view is a no-op commit.
func (w *Workspace) RequestNavigate(view View) NavigateOutcome {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.requestNavigateLocked(view)
}

func (w *Workspace) requestNavigateLocked(view View) NavigateOutcome {
	if Allows(w.session.Role, view) && (view != ViewLegal || w.session.SensitiveAreaAuthenticated) {
		w.view = view
		// Committing a navigation abandons an open reauth prompt, and a
		// modal waiting behind that prompt must not outlive it.
		w.gate = GateIdle
		w.deferredModal = nil
		return NavigateCommitted
	}
	if view == ViewLegal {
		// Only the legal area is reauth-protected; the prompt opens even
		// when the role check alone would have denied it.
		w.gate = GateAwaitingReauth
		return NavigateReauthRequired
	}
	return NavigateRefused
}

// ReauthSucceeded records a verified sensitive-area confirmation: the
// session flag is set, the gate returns to idle, the legal view commits,
// and a modal deferred by the gate is opened.
func (w *Workspace) ReauthSucceeded() {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.session.SensitiveAreaAuthenticated = true
	if w.gate != GateAwaitingReauth {
		return
	}
	w.gate = GateIdle
	w.view = ViewLegal
	if w.deferredModal != nil {
		w.modal = w.deferredModal
		w.deferredModal = nil
	}
}

// ReauthFailed records a wrong password. The gate stays in AwaitingReauth
// so the user can retry in place; nothing else changes.
func (w *Workspace) ReauthFailed() {
	w.mu.Lock()
	defer w.mu.Unlock()
	// Retry in place: state intentionally not advanced.
}

// CancelReauth dismisses the reauth prompt without granting access. The
// current view is untouched and any modal deferred by the gate is dropped.
func (w *Workspace) CancelReauth() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.gate = GateIdle
	w.deferredModal = nil
}
