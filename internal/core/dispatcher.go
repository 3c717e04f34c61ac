package core

import "strings"

// Modal title fallbacks used when the classifier provides none.
const (
	defaultFinancialTitle = "Análise Financeira"
	defaultLegalTitle     = "Jurídico"
)

// Dispatch routes a classifier intent into the workspace. Malformed or
// unrecognized intents are no-ops: whatever the classifier produced, this
// method never fails and never panics. Repeating an identical navigation
// intent leaves the workspace observably unchanged.
func (w *Workspace) Dispatch(intent *Intent) {
	if !intent.Valid() {
		return
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	switch intent.Kind {
	case IntentNavigate:
		w.dispatchNavigateLocked(intent)
	case IntentOpenModal:
		w.dispatchModalLocked(intent)
	}
}

func (w *Workspace) dispatchNavigateLocked(intent *Intent) {
	raw := strings.ToLower(strings.TrimSpace(intent.Target))

	// The financial department token is not a view: it means "stay on the
	// dashboard and make sure the financial panel is expanded".
	if raw == DepartmentFinancial {
		w.view = ViewDashboard
		w.addDepartmentLocked(DepartmentFinancial)
		return
	}

	// Everything else goes through the gate, so the legal reauth rule and
	// the admin role check hold even for classifier-triggered navigation.
	w.requestNavigateLocked(NormalizeView(intent.Target))
}

func (w *Workspace) dispatchModalLocked(intent *Intent) {
	switch intent.Target {
	case ModalTargetFinancial:
		title := intent.Title
		if title == "" {
			title = defaultFinancialTitle
		}
		w.modal = &ModalContent{
			Title: title,
			Kind:  ReportFinancial,
			Month: NormalizeMonth(intent.Filter),
		}

	case ModalTargetLegal:
		title := intent.Title
		if title == "" {
			title = defaultLegalTitle
		}
		content := &ModalContent{Title: title, Kind: ReportLegal}
		if !w.session.SensitiveAreaAuthenticated {
			// Same rule as navigating to the legal view: no legal content
			// before a sensitive-area confirmation, whatever the role.
			// The modal is deferred behind the reauth prompt; it opens when
			// the confirmation succeeds and is dropped on cancel.
			w.gate = GateAwaitingReauth
			w.deferredModal = content
			return
		}
		w.modal = content
	}
	// Unrecognized modal targets fall through silently.
}
